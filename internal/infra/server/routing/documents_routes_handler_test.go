package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/wikid/wikid/internal/api/models/common"
	apiDocument "github.com/wikid/wikid/internal/api/models/document"
	"github.com/wikid/wikid/internal/config"
	domainDocument "github.com/wikid/wikid/internal/domain/document"
	"github.com/wikid/wikid/internal/domain/document/history"
	"github.com/wikid/wikid/internal/domain/locale"
	"github.com/wikid/wikid/internal/infra/server/binding/validation"
)

func init() {
	validation.SetUpValidators()
}

var testAuth = config.Auth{
	BasicAuth: []config.BasicAuthUser{
		{Name: "editor", Password: "s3cret"},
	},
}

func setupRouter(auth *config.Auth) (*gin.Engine, *mockDocumentsController) {
	engine := gin.Default()
	engine.UseRawPath = true
	mockController := mockDocumentsController{}
	handler := DocumentsRoutesHandler{AuthSettings: auth, Controller: &mockController}
	handler.RegisterRoutes(engine)

	return engine, &mockController
}

func performRequest(r http.Handler, method, url string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	var bodyToSend io.Reader
	if body != nil {
		asBytes, _ := json.Marshal(body)
		bodyToSend = bytes.NewBuffer(asBytes)
	}
	req, _ := http.NewRequest(method, url, bodyToSend)
	if header != nil {
		req.Header = header
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func basicAuthHeaders(user, password string) http.Header {
	h := http.Header{}
	req := http.Request{Header: h}
	req.SetBasicAuth(user, password)
	return h
}

func TestDocumentCreate_Ok(t *testing.T) {
	router, mockController := setupRouter(nil)
	newDocument := apiDocument.NewDocument{
		Slug:   "Web/CSS/color",
		Locale: "en-US",
		Title:  "color",
	}
	resp := performRequest(router, http.MethodPost, "/docs", newDocument, nil)
	assert.EqualValues(t, http.StatusCreated, resp.Code)
	assert.EqualValues(t, 1, mockController.createCalled)
	var respDocument apiDocument.Document
	if err := json.Unmarshal(resp.Body.Bytes(), &respDocument); err != nil {
		t.Error(err)
	} else {
		assert.EqualValues(t, newDocument.Slug, respDocument.Slug)
		assert.EqualValues(t, newDocument.Locale, respDocument.Locale)
	}
}

func TestDocumentCreate_InvalidLocaleName(t *testing.T) {
	router, mockController := setupRouter(nil)
	newDocument := apiDocument.NewDocument{
		Slug:   "Web/CSS/color",
		Locale: "en_US",
		Title:  "color",
	}
	resp := performRequest(router, http.MethodPost, "/docs", newDocument, nil)
	assert.EqualValues(t, 0, mockController.createCalled)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDocumentCreate_AuthRequired(t *testing.T) {
	router, mockController := setupRouter(&testAuth)
	newDocument := apiDocument.NewDocument{
		Slug:   "Web/CSS/color",
		Locale: "en-US",
		Title:  "color",
	}
	resp := performRequest(router, http.MethodPost, "/docs", newDocument, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.EqualValues(t, 0, mockController.createCalled)

	resp = performRequest(router, http.MethodPost, "/docs", newDocument, basicAuthHeaders("editor", "s3cret"))
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.EqualValues(t, 1, mockController.createCalled)
}

func TestDocumentGet_Ok(t *testing.T) {
	router, mockController := setupRouter(nil)
	resp := performRequest(router, http.MethodGet, "/docs/en-US/Web%2FCSS%2Fcolor", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, mockController.getCalled)
	var respDocument apiDocument.Document
	if err := json.Unmarshal(resp.Body.Bytes(), &respDocument); err != nil {
		t.Error(err)
	} else {
		assert.EqualValues(t, "en-US", respDocument.Locale)
		assert.EqualValues(t, "Web/CSS/color", respDocument.Slug)
	}
}

func TestDocumentGet_InvalidLocaleName(t *testing.T) {
	router, mockController := setupRouter(nil)
	resp := performRequest(router, http.MethodGet, "/docs/en_US/color", nil, nil)
	assert.EqualValues(t, 0, mockController.getCalled)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDocumentGet_NotFound(t *testing.T) {
	router, mockController := setupRouter(nil)
	err := common.ApiError{
		StatusCode: http.StatusNotFound,
	}
	mockController.getOverride = func(ctx context.Context, loc locale.Name, slug domainDocument.Slug) (*apiDocument.Document, *common.ApiError) {
		return nil, &err
	}
	resp := performRequest(router, http.MethodGet, "/docs/en-US/nope", nil, nil)
	assert.Equal(t, err.StatusCode, resp.Code)
	assert.EqualValues(t, 1, mockController.getCalled)
}

func TestDocumentList_Ok(t *testing.T) {
	router, mockController := setupRouter(nil)
	resp := performRequest(router, http.MethodGet, "/docs/en-US", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, mockController.listCalled)
	var respList apiDocument.DocumentList
	if err := json.Unmarshal(resp.Body.Bytes(), &respList); err != nil {
		t.Error(err)
	} else {
		assert.Len(t, respList.Documents, 1)
	}
}

func TestDocumentList_TagFilter(t *testing.T) {
	router, mockController := setupRouter(nil)
	var gotFilter domainDocument.ListFilter
	mockController.listOverride = func(ctx context.Context, loc locale.Name, filter domainDocument.ListFilter, page uint) (*apiDocument.DocumentList, *common.ApiError) {
		gotFilter = filter
		return &apiDocument.DocumentList{}, nil
	}
	resp := performRequest(router, http.MethodGet, "/docs/en-US?tag=CSS&filter=toplevel", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	if assert.NotNil(t, gotFilter.Tag) {
		assert.EqualValues(t, "CSS", *gotFilter.Tag)
	}
	assert.True(t, gotFilter.TopLevel)
}

func TestDocumentList_UnknownFilter(t *testing.T) {
	router, mockController := setupRouter(nil)
	resp := performRequest(router, http.MethodGet, "/docs/en-US?filter=wat", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.EqualValues(t, 0, mockController.listCalled)
}

func TestDocumentList_PageParsing(t *testing.T) {
	router, mockController := setupRouter(nil)
	var gotPage uint
	mockController.listOverride = func(ctx context.Context, loc locale.Name, filter domainDocument.ListFilter, page uint) (*apiDocument.DocumentList, *common.ApiError) {
		gotPage = page
		return &apiDocument.DocumentList{}, nil
	}
	performRequest(router, http.MethodGet, "/docs/en-US?page=3", nil, nil)
	assert.EqualValues(t, 3, gotPage)
	performRequest(router, http.MethodGet, "/docs/en-US?page=wat", nil, nil)
	assert.EqualValues(t, 1, gotPage)
	performRequest(router, http.MethodGet, "/docs/en-US", nil, nil)
	assert.EqualValues(t, 1, gotPage)
}

func TestDocumentHistory_Ok(t *testing.T) {
	router, mockController := setupRouter(nil)
	resp := performRequest(router, http.MethodGet, "/docs/en-US/Web%2FCSS%2Fcolor/history", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, mockController.historyCalled)
	var respHistory apiDocument.RevisionHistory
	if err := json.Unmarshal(resp.Body.Bytes(), &respHistory); err != nil {
		t.Error(err)
	} else {
		assert.Len(t, respHistory.Revisions, 1)
	}
}

func TestDocumentHistory_RequestPassthrough(t *testing.T) {
	router, mockController := setupRouter(nil)
	var gotReq history.Request
	mockController.historyOverride = func(ctx context.Context, loc locale.Name, slug domainDocument.Slug, req history.Request) (*apiDocument.RevisionHistory, *common.ApiError) {
		gotReq = req
		return &apiDocument.RevisionHistory{}, nil
	}
	performRequest(router, http.MethodGet, "/docs/en-US/color/history?page=2&limit=25", nil, nil)
	assert.EqualValues(t, 2, gotReq.Page)
	assert.EqualValues(t, "25", gotReq.Limit)
	// no auth configured: the server runs open
	assert.True(t, gotReq.Authorized)
}

func TestDocumentHistory_AuthorizedFlag(t *testing.T) {
	router, mockController := setupRouter(&testAuth)
	var gotReq history.Request
	mockController.historyOverride = func(ctx context.Context, loc locale.Name, slug domainDocument.Slug, req history.Request) (*apiDocument.RevisionHistory, *common.ApiError) {
		gotReq = req
		return &apiDocument.RevisionHistory{}, nil
	}

	performRequest(router, http.MethodGet, "/docs/en-US/color/history?limit=all", nil, nil)
	assert.False(t, gotReq.Authorized)

	performRequest(router, http.MethodGet, "/docs/en-US/color/history?limit=all", nil, basicAuthHeaders("editor", "wrong"))
	assert.False(t, gotReq.Authorized)

	performRequest(router, http.MethodGet, "/docs/en-US/color/history?limit=all", nil, basicAuthHeaders("editor", "s3cret"))
	assert.True(t, gotReq.Authorized)
}

func TestDocumentHistory_Forbidden(t *testing.T) {
	router, mockController := setupRouter(nil)
	err := common.ApiError{
		StatusCode: http.StatusForbidden,
		Body: common.Body{
			Reason: history.ReasonLoginRequired,
		},
	}
	mockController.historyOverride = func(ctx context.Context, loc locale.Name, slug domainDocument.Slug, req history.Request) (*apiDocument.RevisionHistory, *common.ApiError) {
		return nil, &err
	}
	resp := performRequest(router, http.MethodGet, "/docs/en-US/color/history?limit=all", nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)
	var respBody common.Body
	if jsonErr := json.Unmarshal(resp.Body.Bytes(), &respBody); jsonErr != nil {
		t.Error(jsonErr)
	} else {
		assert.EqualValues(t, history.ReasonLoginRequired, respBody.Reason)
	}
}

func TestRevisionCreate_Ok(t *testing.T) {
	router, mockController := setupRouter(nil)
	newRevision := apiDocument.NewRevision{
		Creator: "jdoe",
		Comment: "tweaks",
	}
	resp := performRequest(router, http.MethodPost, "/docs/en-US/color/revisions", newRevision, nil)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.EqualValues(t, 1, mockController.createRevisionCalled)
}

func TestRevisionCreate_AuthRequired(t *testing.T) {
	router, mockController := setupRouter(&testAuth)
	newRevision := apiDocument.NewRevision{
		Creator: "jdoe",
	}
	resp := performRequest(router, http.MethodPost, "/docs/en-US/color/revisions", newRevision, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.EqualValues(t, 0, mockController.createRevisionCalled)
}

func TestRevisionApprove_Ok(t *testing.T) {
	router, mockController := setupRouter(nil)
	var gotId domainDocument.RevisionId
	mockController.approveRevisionOverride = func(ctx context.Context, loc locale.Name, slug domainDocument.Slug, id domainDocument.RevisionId) (*apiDocument.Revision, *common.ApiError) {
		gotId = id
		return &mockApiRevision, nil
	}
	resp := performRequest(router, http.MethodPut, "/docs/en-US/color/revisions/42/approve", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, mockController.approveRevisionCalled)
	assert.EqualValues(t, 42, gotId)
}

func TestRevisionApprove_BadId(t *testing.T) {
	router, mockController := setupRouter(nil)
	resp := performRequest(router, http.MethodPut, "/docs/en-US/color/revisions/wat/approve", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.EqualValues(t, 0, mockController.approveRevisionCalled)
}

func TestTagsList_Ok(t *testing.T) {
	router, mockController := setupRouter(nil)
	resp := performRequest(router, http.MethodGet, "/tags", nil, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, mockController.tagsCalled)
	var respTags apiDocument.TagList
	if err := json.Unmarshal(resp.Body.Bytes(), &respTags); err != nil {
		t.Error(err)
	} else {
		assert.EqualValues(t, []string{"CSS"}, respTags.Tags)
	}
}

// Mocks

var mockApiDocument = apiDocument.FromDomainDocument(&domainDocument.MockDomainDocument)
var mockApiRevision = apiDocument.FromDomainRevision(&domainDocument.MockDomainRevision)

type mockDocumentsController struct {
	createCalled            uint
	createOverride          func(ctx context.Context, newDocument *apiDocument.NewDocument) (*apiDocument.Document, *common.ApiError)
	getCalled               uint
	getOverride             func(ctx context.Context, loc locale.Name, slug domainDocument.Slug) (*apiDocument.Document, *common.ApiError)
	listCalled              uint
	listOverride            func(ctx context.Context, loc locale.Name, filter domainDocument.ListFilter, page uint) (*apiDocument.DocumentList, *common.ApiError)
	tagsCalled              uint
	tagsOverride            func(ctx context.Context, page uint) (*apiDocument.TagList, *common.ApiError)
	historyCalled           uint
	historyOverride         func(ctx context.Context, loc locale.Name, slug domainDocument.Slug, req history.Request) (*apiDocument.RevisionHistory, *common.ApiError)
	createRevisionCalled    uint
	createRevisionOverride  func(ctx context.Context, loc locale.Name, slug domainDocument.Slug, newRevision *apiDocument.NewRevision) (*apiDocument.Revision, *common.ApiError)
	approveRevisionCalled   uint
	approveRevisionOverride func(ctx context.Context, loc locale.Name, slug domainDocument.Slug, id domainDocument.RevisionId) (*apiDocument.Revision, *common.ApiError)
}

func (m *mockDocumentsController) Create(ctx context.Context, newDocument *apiDocument.NewDocument) (*apiDocument.Document, *common.ApiError) {
	m.createCalled++
	if m.createOverride != nil {
		return m.createOverride(ctx, newDocument)
	} else {
		apiDoc := mockApiDocument
		apiDoc.Slug = newDocument.Slug
		apiDoc.Locale = newDocument.Locale
		apiDoc.Title = newDocument.Title
		return &apiDoc, nil
	}
}

func (m *mockDocumentsController) Get(ctx context.Context, loc locale.Name, slug domainDocument.Slug) (*apiDocument.Document, *common.ApiError) {
	m.getCalled++
	if m.getOverride != nil {
		return m.getOverride(ctx, loc, slug)
	} else {
		apiDoc := mockApiDocument
		apiDoc.Locale = loc
		apiDoc.Slug = string(slug)
		return &apiDoc, nil
	}
}

func (m *mockDocumentsController) List(ctx context.Context, loc locale.Name, filter domainDocument.ListFilter, page uint) (*apiDocument.DocumentList, *common.ApiError) {
	m.listCalled++
	if m.listOverride != nil {
		return m.listOverride(ctx, loc, filter, page)
	} else {
		return &apiDocument.DocumentList{
			Documents: []apiDocument.Document{mockApiDocument},
			Count:     1,
			Page:      apiDocument.PageInfo{Number: page},
		}, nil
	}
}

func (m *mockDocumentsController) Tags(ctx context.Context, page uint) (*apiDocument.TagList, *common.ApiError) {
	m.tagsCalled++
	if m.tagsOverride != nil {
		return m.tagsOverride(ctx, page)
	} else {
		return &apiDocument.TagList{
			Tags: []string{"CSS"},
			Page: apiDocument.PageInfo{Number: page},
		}, nil
	}
}

func (m *mockDocumentsController) History(ctx context.Context, loc locale.Name, slug domainDocument.Slug, req history.Request) (*apiDocument.RevisionHistory, *common.ApiError) {
	m.historyCalled++
	if m.historyOverride != nil {
		return m.historyOverride(ctx, loc, slug, req)
	} else {
		return &apiDocument.RevisionHistory{
			Revisions: []apiDocument.Revision{mockApiRevision},
			Page:      apiDocument.PageInfo{Number: req.Page},
		}, nil
	}
}

func (m *mockDocumentsController) CreateRevision(ctx context.Context, loc locale.Name, slug domainDocument.Slug, newRevision *apiDocument.NewRevision) (*apiDocument.Revision, *common.ApiError) {
	m.createRevisionCalled++
	if m.createRevisionOverride != nil {
		return m.createRevisionOverride(ctx, loc, slug, newRevision)
	} else {
		return &mockApiRevision, nil
	}
}

func (m *mockDocumentsController) ApproveRevision(ctx context.Context, loc locale.Name, slug domainDocument.Slug, id domainDocument.RevisionId) (*apiDocument.Revision, *common.ApiError) {
	m.approveRevisionCalled++
	if m.approveRevisionOverride != nil {
		return m.approveRevisionOverride(ctx, loc, slug, id)
	} else {
		return &mockApiRevision, nil
	}
}
