package document

import (
	"context"
	"net/http"

	"github.com/wikid/wikid/internal/api/models/common"
	apiDocument "github.com/wikid/wikid/internal/api/models/document"
	"github.com/wikid/wikid/internal/config"
	domainDocument "github.com/wikid/wikid/internal/domain/document"
	"github.com/wikid/wikid/internal/domain/document/history"
	"github.com/wikid/wikid/internal/domain/locale"
)

// Controller is an interface that defines the methods that are available to
// the routing layer. It is framework-agnostic
type Controller interface {

	// Create persists a Document based on the passed-in NewDocument
	Create(ctx context.Context, newDocument *apiDocument.NewDocument) (*apiDocument.Document, *common.ApiError)

	// Get returns a Document based on the passed-in locale and slug
	Get(ctx context.Context, loc locale.Name, slug domainDocument.Slug) (*apiDocument.Document, *common.ApiError)

	// List returns one page of Documents in a locale, narrowed by the filter
	List(ctx context.Context, loc locale.Name, filter domainDocument.ListFilter, page uint) (*apiDocument.DocumentList, *common.ApiError)

	// Tags returns one page of all Document tags in use, ordered by name
	Tags(ctx context.Context, page uint) (*apiDocument.TagList, *common.ApiError)

	// History returns the projected revision history page for a Document:
	// revisions most-recent-first with previous-revision links, the
	// pagination descriptor, and (on the last page of a translation's
	// history) the revision the translation was based on
	History(ctx context.Context, loc locale.Name, slug domainDocument.Slug, req history.Request) (*apiDocument.RevisionHistory, *common.ApiError)

	// CreateRevision persists a new Revision of a Document
	CreateRevision(ctx context.Context, loc locale.Name, slug domainDocument.Slug, newRevision *apiDocument.NewRevision) (*apiDocument.Revision, *common.ApiError)

	// ApproveRevision marks a Revision as approved and makes it the
	// Document's current revision
	ApproveRevision(ctx context.Context, loc locale.Name, slug domainDocument.Slug, id domainDocument.RevisionId) (*apiDocument.Revision, *common.ApiError)
}

func New(documentsService domainDocument.Service, documentsConfig config.Documents) Controller {
	return &impl{
		documentsService: documentsService,
		documentsConfig:  documentsConfig,
	}
}

type impl struct {
	documentsService domainDocument.Service
	documentsConfig  config.Documents
}

func (c *impl) Create(ctx context.Context, newDocument *apiDocument.NewDocument) (*apiDocument.Document, *common.ApiError) {
	domainNewDocument := newDocument.ToDomainNewDocument()
	result, err := c.documentsService.Create(ctx, &domainNewDocument)
	if err != nil {
		return nil, handleErr(err)
	} else {
		d := apiDocument.FromDomainDocument(result)
		return &d, nil
	}
}

func (c *impl) Get(ctx context.Context, loc locale.Name, slug domainDocument.Slug) (*apiDocument.Document, *common.ApiError) {
	result, err := c.documentsService.Get(ctx, loc, slug)
	if err != nil {
		return nil, handleErr(err)
	} else {
		d := apiDocument.FromDomainDocument(result)
		return &d, nil
	}
}

func (c *impl) List(ctx context.Context, loc locale.Name, filter domainDocument.ListFilter, page uint) (*apiDocument.DocumentList, *common.ApiError) {
	result, err := c.documentsService.List(ctx, loc, filter, page)
	if err != nil {
		return nil, handleErr(err)
	} else {
		apiDocs := make([]apiDocument.Document, 0, len(result.Documents))
		for _, d := range result.Documents {
			apiDocs = append(apiDocs, apiDocument.FromDomainDocument(&d))
		}
		return &apiDocument.DocumentList{
			Documents: apiDocs,
			Count:     result.Count,
			Page: apiDocument.PageInfo{
				Number:  result.Page,
				HasNext: result.HasNext,
			},
		}, nil
	}
}

func (c *impl) Tags(ctx context.Context, page uint) (*apiDocument.TagList, *common.ApiError) {
	allTags, err := c.documentsService.Tags(ctx)
	if err != nil {
		return nil, handleErr(err)
	}
	perPage := c.documentsConfig.Defaults.ListPerPage
	if perPage == 0 {
		perPage = uint(history.DocumentsPerPage)
	}
	if page == 0 {
		page = 1
	}
	start := (page - 1) * perPage
	if start > uint(len(allTags)) {
		start = uint(len(allTags))
	}
	end := start + perPage
	if end > uint(len(allTags)) {
		end = uint(len(allTags))
	}
	tags := make([]string, 0, end-start)
	for _, t := range allTags[start:end] {
		tags = append(tags, string(t))
	}
	return &apiDocument.TagList{
		Tags: tags,
		Page: apiDocument.PageInfo{
			Number:  page,
			HasNext: end < uint(len(allTags)),
		},
	}, nil
}

func (c *impl) History(ctx context.Context, loc locale.Name, slug domainDocument.Slug, req history.Request) (*apiDocument.RevisionHistory, *common.ApiError) {
	doc, err := c.documentsService.Get(ctx, loc, slug)
	if err != nil {
		return nil, handleErr(err)
	}
	// The current-revision and authorization gates come before the snapshot
	// fetch; no point pulling revisions we would refuse to show.
	if doc.CurrentRevisionID == nil {
		return nil, handleErr(domainDocument.NoCurrentRevision{Slug: doc.Slug, Locale: doc.Locale})
	}
	if req.Limit == history.AllLimit && !req.Authorized {
		return nil, handleErr(history.Unauthorized{Reason: history.ReasonLoginRequired})
	}
	revs, err := c.documentsService.Revisions(ctx, doc.ID)
	if err != nil {
		return nil, handleErr(err)
	}
	pg, err := history.Project(doc, revs, req)
	if err != nil {
		return nil, handleErr(err)
	}
	apiRevs := make([]apiDocument.Revision, 0, len(pg.Revisions))
	for _, r := range pg.Revisions {
		apiRevs = append(apiRevs, apiDocument.FromDomainRevision(&r))
	}
	return &apiDocument.RevisionHistory{
		Revisions: apiRevs,
		Page: apiDocument.PageInfo{
			Number:  pg.Number,
			HasNext: pg.HasNext,
			All:     pg.All,
		},
	}, nil
}

func (c *impl) CreateRevision(ctx context.Context, loc locale.Name, slug domainDocument.Slug, newRevision *apiDocument.NewRevision) (*apiDocument.Revision, *common.ApiError) {
	doc, err := c.documentsService.Get(ctx, loc, slug)
	if err != nil {
		return nil, handleErr(err)
	}
	domainNewRevision := newRevision.ToDomainNewRevision()
	result, err := c.documentsService.CreateRevision(ctx, doc, &domainNewRevision)
	if err != nil {
		return nil, handleErr(err)
	} else {
		r := apiDocument.FromDomainRevision(result)
		return &r, nil
	}
}

func (c *impl) ApproveRevision(ctx context.Context, loc locale.Name, slug domainDocument.Slug, id domainDocument.RevisionId) (*apiDocument.Revision, *common.ApiError) {
	doc, err := c.documentsService.Get(ctx, loc, slug)
	if err != nil {
		return nil, handleErr(err)
	}
	result, err := c.documentsService.ApproveRevision(ctx, doc, id)
	if err != nil {
		return nil, handleErr(err)
	} else {
		r := apiDocument.FromDomainRevision(result)
		return &r, nil
	}
}

func handleErr(err error) *common.ApiError {
	switch v := err.(type) {
	case domainDocument.NotFound:
		return notFound(v)
	case domainDocument.NoCurrentRevision:
		return noCurrentRevision(v)
	case domainDocument.RevisionNotFound:
		return revisionNotFound(v)
	case history.Empty:
		return emptyHistory(v)
	case history.Unauthorized:
		return unauthorized(v)
	case domainDocument.AlreadyExists:
		return alreadyExists(v)
	case domainDocument.InvalidVersion:
		return versionConflict(v)
	case domainDocument.InvalidBasedOn:
		return invalidBasedOn(v)
	case domainDocument.InvalidPersistedData:
		return invalidPersistedData(v)
	default:
		return unhandledErr(v)
	}
}

func notFound(notFound domainDocument.NotFound) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusNotFound,
		Body: common.Body{
			Message: notFound.Error(),
		},
	}
}

func noCurrentRevision(err domainDocument.NoCurrentRevision) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusNotFound,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func revisionNotFound(err domainDocument.RevisionNotFound) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusNotFound,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func emptyHistory(err history.Empty) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusNotFound,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func unauthorized(err history.Unauthorized) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusForbidden,
		Body: common.Body{
			Message: err.Error(),
			Reason:  err.Reason,
		},
	}
}

func alreadyExists(err domainDocument.AlreadyExists) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusConflict,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func versionConflict(err domainDocument.InvalidVersion) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusConflict,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func invalidBasedOn(err domainDocument.InvalidBasedOn) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusBadRequest,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func invalidPersistedData(err domainDocument.InvalidPersistedData) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusInternalServerError,
		Body: common.Body{
			Message: err.Error(),
		},
	}
}

func unhandledErr(e error) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusInternalServerError,
		Body: common.Body{
			Message: e.Error(),
		},
	}
}
