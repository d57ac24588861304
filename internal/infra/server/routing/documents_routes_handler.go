package routing

import (
	"net/http"
	"strconv"
	"strings"

	documentController "github.com/wikid/wikid/internal/api/controllers/document"
	"github.com/wikid/wikid/internal/config"
	domainDocument "github.com/wikid/wikid/internal/domain/document"
	"github.com/wikid/wikid/internal/domain/document/history"
	"github.com/wikid/wikid/internal/domain/locale"

	"github.com/gin-gonic/gin"

	"github.com/wikid/wikid/internal/api/models/common"
	apiDocument "github.com/wikid/wikid/internal/api/models/document"
)

var docsPath = "/docs"
var tagsPath = "/tags"
var localePathKey = "locale"
var slugPathKey = "slug"
var revisionIdPathKey = "revision_id"

var pageQueryKey = "page"
var limitQueryKey = "limit"
var tagQueryKey = "tag"
var reviewTagQueryKey = "review_tag"
var localizationTagQueryKey = "localization_tag"
var filterQueryKey = "filter"

// DocumentsRoutesHandler registers the Document routes.
//
// Reads are always public; writes go behind basic auth when auth is
// configured. Slugs can contain slashes, so they are sent URL-escaped as a
// single path segment (the server matches on the raw path).
type DocumentsRoutesHandler struct {
	AuthSettings *config.Auth
	Controller   documentController.Controller
}

func (h *DocumentsRoutesHandler) RegisterRoutes(ginEngine *gin.Engine) {
	readGroup := ginEngine.Group(docsPath)
	readGroup.GET("/:"+localePathKey, h.list)
	readGroup.GET("/:"+localePathKey+"/:"+slugPathKey, h.get)
	readGroup.GET("/:"+localePathKey+"/:"+slugPathKey+"/history", h.history)
	ginEngine.GET(tagsPath, h.tags)

	accounts := make(gin.Accounts)
	if h.AuthSettings != nil {
		for _, bAuthUser := range h.AuthSettings.BasicAuth {
			accounts[bAuthUser.Name] = bAuthUser.Password
		}
	}
	var writeGroup *gin.RouterGroup
	if len(accounts) > 0 {
		writeGroup = ginEngine.Group(docsPath, gin.BasicAuth(accounts))
	} else {
		writeGroup = ginEngine.Group(docsPath)
	}
	writeGroup.POST("", h.create)
	writeGroup.POST("/:"+localePathKey+"/:"+slugPathKey+"/revisions", h.createRevision)
	writeGroup.PUT("/:"+localePathKey+"/:"+slugPathKey+"/revisions/:"+revisionIdPathKey+"/approve", h.approveRevision)
}

// @Summary Add a new Document
// @ID create-document
// @Tags documents
// @Description Creates a new Document
// @Accept  json
// @Produce  json
// @Param   newDocument body document.NewDocument true "The request body"
// @Success 201 {object} document.Document
// @Failure 400 {object} common.Body "Invalid JSON"
// @Failure 409 {object} common.Body "Slug and locale in use"
// @Router /docs [post]
func (h *DocumentsRoutesHandler) create(c *gin.Context) {
	var newDocument apiDocument.NewDocument
	if err := c.ShouldBindJSON(&newDocument); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		if d, err := h.Controller.Create(c.Request.Context(), &newDocument); err == nil {
			c.JSON(http.StatusCreated, d)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary List Documents in a locale
// @ID list-documents
// @Tags documents
// @Description Lists Documents in a locale, optionally narrowed down by tag or by a named filter (errors, noparent, toplevel)
// @Accept  json
// @Produce  json
// @Param   locale path string true "The locale to list"
// @Param   tag query string false "Only Documents carrying this tag"
// @Param   review_tag query string false "Only Documents carrying this review tag"
// @Param   localization_tag query string false "Only Documents carrying this localization tag"
// @Param   filter query string false "One of: errors, noparent, toplevel"
// @Param   page query int false "1-based page number"
// @Success 200 {object} document.DocumentList
// @Failure 400 {object} common.Body "Bad locale or filter"
// @Router /docs/{locale} [get]
func (h *DocumentsRoutesHandler) list(c *gin.Context) {
	localeName, err := locale.NameFromString(c.Param(localePathKey))
	if err != nil {
		badLocaleName(c, []error{err})
		return
	}
	filter, filterErr := listFilterFromQuery(c)
	if filterErr != nil {
		HandleApiErr(c, filterErr)
		return
	}
	if listing, err := h.Controller.List(c.Request.Context(), *localeName, *filter, pageFromQuery(c)); err == nil {
		c.JSON(http.StatusOK, listing)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}

// @Summary Get a Document
// @ID get-existing-document
// @Tags documents
// @Description Retrieves a persisted Document
// @Accept  json
// @Produce  json
// @Param   locale path string true "The locale of the Document"
// @Param   slug path string true "The slug of the Document, URL-escaped"
// @Success 200 {object} document.Document
// @Failure 404 {object} common.Body "Document does not exist"
// @Router /docs/{locale}/{slug} [get]
func (h *DocumentsRoutesHandler) get(c *gin.Context) {
	localeName, err := locale.NameFromString(c.Param(localePathKey))
	if err != nil {
		badLocaleName(c, []error{err})
		return
	}
	slug := domainDocument.Slug(c.Param(slugPathKey))
	if d, err := h.Controller.Get(c.Request.Context(), *localeName, slug); err == nil {
		c.JSON(http.StatusOK, d)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}

// @Summary Get a Document's revision history
// @ID get-document-history
// @Tags documents
// @Description Retrieves one page of a Document's revision history, most recent first. Each revision links to the approved revision that preceded it. Pass limit=all to get the entire history in one response; that variant needs credentials.
// @Accept  json
// @Produce  json
// @Param   locale path string true "The locale of the Document"
// @Param   slug path string true "The slug of the Document, URL-escaped"
// @Param   page query int false "1-based page number"
// @Param   limit query string false "Page size, or 'all'"
// @Success 200 {object} document.RevisionHistory
// @Failure 403 {object} common.Body "limit=all without credentials"
// @Failure 404 {object} common.Body "Document does not exist or has no visible history"
// @Router /docs/{locale}/{slug}/history [get]
func (h *DocumentsRoutesHandler) history(c *gin.Context) {
	localeName, err := locale.NameFromString(c.Param(localePathKey))
	if err != nil {
		badLocaleName(c, []error{err})
		return
	}
	slug := domainDocument.Slug(c.Param(slugPathKey))
	req := history.Request{
		Page:       pageFromQuery(c),
		Limit:      c.Query(limitQueryKey),
		Authorized: h.requestIsAuthorized(c),
	}
	if hist, err := h.Controller.History(c.Request.Context(), *localeName, slug, req); err == nil {
		c.JSON(http.StatusOK, hist)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}

// @Summary Add a new Revision
// @ID create-document-revision
// @Tags documents
// @Description Creates a new Revision of a Document
// @Accept  json
// @Produce  json
// @Param   locale path string true "The locale of the Document"
// @Param   slug path string true "The slug of the Document, URL-escaped"
// @Param   newRevision body document.NewRevision true "The request body"
// @Success 201 {object} document.Revision
// @Failure 400 {object} common.Body "Invalid JSON or based-on reference"
// @Failure 404 {object} common.Body "Document does not exist"
// @Router /docs/{locale}/{slug}/revisions [post]
func (h *DocumentsRoutesHandler) createRevision(c *gin.Context) {
	localeName, err := locale.NameFromString(c.Param(localePathKey))
	if err != nil {
		badLocaleName(c, []error{err})
		return
	}
	slug := domainDocument.Slug(c.Param(slugPathKey))
	var newRevision apiDocument.NewRevision
	if err := c.ShouldBindJSON(&newRevision); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		if r, err := h.Controller.CreateRevision(c.Request.Context(), *localeName, slug, &newRevision); err == nil {
			c.JSON(http.StatusCreated, r)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary Approve a Revision
// @ID approve-document-revision
// @Tags documents
// @Description Marks a Revision as approved and makes it the Document's current revision
// @Accept  json
// @Produce  json
// @Param   locale path string true "The locale of the Document"
// @Param   slug path string true "The slug of the Document, URL-escaped"
// @Param   revision_id path int true "The id of the Revision"
// @Success 200 {object} document.Revision
// @Failure 404 {object} common.Body "Document or Revision does not exist"
// @Failure 409 {object} common.Body "Conflicting concurrent update"
// @Router /docs/{locale}/{slug}/revisions/{revision_id}/approve [put]
func (h *DocumentsRoutesHandler) approveRevision(c *gin.Context) {
	localeName, err := locale.NameFromString(c.Param(localePathKey))
	if err != nil {
		badLocaleName(c, []error{err})
		return
	}
	slug := domainDocument.Slug(c.Param(slugPathKey))
	revisionId, parseErr := strconv.ParseUint(c.Param(revisionIdPathKey), 10, 64)
	if parseErr != nil {
		HandleJsonSerdesErr(c, parseErr)
		return
	}
	if r, err := h.Controller.ApproveRevision(c.Request.Context(), *localeName, slug, domainDocument.RevisionId(revisionId)); err == nil {
		c.JSON(http.StatusOK, r)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}

// @Summary List Document tags
// @ID list-document-tags
// @Tags documents
// @Description Lists all Document tags in use, ordered by name
// @Accept  json
// @Produce  json
// @Param   page query int false "1-based page number"
// @Success 200 {object} document.TagList
// @Router /tags [get]
func (h *DocumentsRoutesHandler) tags(c *gin.Context) {
	if tagList, err := h.Controller.Tags(c.Request.Context(), pageFromQuery(c)); err == nil {
		c.JSON(http.StatusOK, tagList)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}

// requestIsAuthorized reports whether the caller presented valid credentials.
// A server with no auth configured runs open, so everything is authorized.
func (h *DocumentsRoutesHandler) requestIsAuthorized(c *gin.Context) bool {
	if h.AuthSettings == nil || len(h.AuthSettings.BasicAuth) == 0 {
		return true
	}
	user, password, ok := c.Request.BasicAuth()
	if !ok {
		return false
	}
	for _, bAuthUser := range h.AuthSettings.BasicAuth {
		if bAuthUser.Name == user && bAuthUser.Password == password {
			return true
		}
	}
	return false
}

// pageFromQuery falls back to the first page when the param is absent or
// unparseable
func pageFromQuery(c *gin.Context) uint {
	raw := c.Query(pageQueryKey)
	if len(raw) == 0 {
		return 1
	}
	if parsed, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return uint(parsed)
	}
	return 1
}

func listFilterFromQuery(c *gin.Context) (*domainDocument.ListFilter, *common.ApiError) {
	var filter domainDocument.ListFilter
	if v := c.Query(tagQueryKey); len(v) > 0 {
		t := domainDocument.Tag(v)
		filter.Tag = &t
	}
	if v := c.Query(reviewTagQueryKey); len(v) > 0 {
		t := domainDocument.Tag(v)
		filter.ReviewTag = &t
	}
	if v := c.Query(localizationTagQueryKey); len(v) > 0 {
		t := domainDocument.Tag(v)
		filter.LocalizationTag = &t
	}
	switch c.Query(filterQueryKey) {
	case "":
	case "errors":
		filter.Errors = true
	case "noparent":
		filter.NoParent = true
	case "toplevel":
		filter.TopLevel = true
	default:
		return nil, &common.ApiError{
			StatusCode: http.StatusBadRequest,
			Body: common.Body{
				Message: "Unknown filter, expected one of: errors, noparent, toplevel",
			},
		}
	}
	return &filter, nil
}

func badLocaleName(c *gin.Context, localeNameErrors []error) {
	errorMsgs := make([]string, 0, len(localeNameErrors))
	for _, err := range localeNameErrors {
		errorMsgs = append(errorMsgs, err.Error())
	}
	errResp := common.ApiError{
		StatusCode: http.StatusBadRequest,
		Body: common.Body{
			Message: strings.Join(errorMsgs, ", "),
		},
	}
	HandleApiErr(c, &errResp)
}
