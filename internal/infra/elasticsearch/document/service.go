package document

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"

	"github.com/wikid/wikid/internal/config"
	"github.com/wikid/wikid/internal/domain/document"
	"github.com/wikid/wikid/internal/domain/locale"
	"github.com/wikid/wikid/internal/domain/metadata"
	"github.com/wikid/wikid/internal/infra/elasticsearch/common"
)

var DocumentsIndexName common.IndexName = ".wikid_documents"
var RevisionsIndexName common.IndexName = ".wikid_revisions"

var defaultListPerPage = uint(100)
var defaultScrollSize = uint(500)
var defaultScrollTtl = 1 * time.Minute

// The tags aggregation is bounded; a wiki with more distinct tags than this
// needs a composite aggregation instead.
var maxTagBuckets = uint(10000)

type EsService struct {
	client   *elasticsearch.Client
	settings config.DocumentsDefaults
	getUTC   func() time.Time // for mocking
}

// For testing
func (e *EsService) SetUTCGetter(getter func() time.Time) {
	e.getUTC = getter
}

func NewService(client *elasticsearch.Client, settings config.DocumentsDefaults) document.Service {
	return &EsService{client: client, settings: settings, getUTC: func() time.Time {
		return time.Now().UTC()
	}}
}

func (e *EsService) Create(ctx context.Context, newDocument *document.NewDocument) (*document.Document, error) {
	existing, err := e.searchDocument(ctx, newDocument.Locale, newDocument.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, document.AlreadyExists{Slug: newDocument.Slug, Locale: newDocument.Locale}
	}

	now := e.getUTC()
	var parentId *string
	if newDocument.ParentID != nil {
		id := string(*newDocument.ParentID)
		parentId = &id
	}
	toPersist := persistedDocumentData{
		Slug:     string(newDocument.Slug),
		Locale:   string(newDocument.Locale),
		Title:    string(newDocument.Title),
		ParentId: parentId,
		Tags:     tagsToStrings(newDocument.Tags),
		TopLevel: newDocument.TopLevel,
		Metadata: persistedMetadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	toPersistBytes, err := json.Marshal(toPersist)
	if err != nil {
		return nil, common.JsonSerdesErr{Underlying: []error{err}}
	}

	documentId := document.GenerateId()
	createReq := esapi.CreateRequest{
		DocumentID: string(documentId),
		Index:      string(DocumentsIndexName),
		Body:       bytes.NewReader(toPersistBytes),
	}

	rawResp, err := createReq.Do(ctx, e.client)
	if err != nil {
		return nil, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	statusCode := rawResp.StatusCode
	switch {
	case 200 <= statusCode && statusCode <= 299:
		var response common.EsCreateResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&response); err != nil {
			return nil, common.JsonSerdesErr{Underlying: []error{err}}
		}
		domainDocument := toPersist.toDomainDocument(documentId, response.Version())
		return &domainDocument, nil
	default:
		return nil, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsService) Get(ctx context.Context, loc locale.Name, slug document.Slug) (*document.Document, error) {
	hit, err := e.searchDocument(ctx, loc, slug)
	if err != nil {
		return nil, err
	}
	if hit == nil {
		return nil, document.NotFound{Slug: slug, Locale: loc}
	}
	retrieved := hit.toDomainDocument()
	return &retrieved, nil
}

func (e *EsService) List(ctx context.Context, loc locale.Name, filter document.ListFilter, page uint) (*document.Listing, error) {
	perPage := e.settings.ListPerPage
	if perPage == 0 {
		perPage = defaultListPerPage
	}
	if page == 0 {
		page = 1
	}

	queryBody := buildListingQueryBody(loc, filter, (page-1)*perPage, perPage)
	queryBodyAsJsonBytes, err := json.Marshal(queryBody)
	if err != nil {
		return nil, common.JsonSerdesErr{Underlying: []error{err}}
	}

	searchReq := esapi.SearchRequest{
		Index:             []string{string(DocumentsIndexName)},
		IgnoreUnavailable: esapi.BoolPtr(true),
		AllowNoIndices:    esapi.BoolPtr(true),
		Body:              bytes.NewReader(queryBodyAsJsonBytes),
	}

	rawResp, err := searchReq.Do(ctx, e.client)
	if err != nil {
		return nil, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()

	switch rawResp.StatusCode {
	case 200:
		var searchResp esDocumentSearchResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&searchResp); err != nil {
			return nil, common.JsonSerdesErr{Underlying: []error{err}}
		}
		docs := make([]document.Document, 0, len(searchResp.Hits.Hits))
		for _, hit := range searchResp.Hits.Hits {
			docs = append(docs, hit.toDomainDocument())
		}
		total := searchResp.Hits.Total.Value
		return &document.Listing{
			Documents: docs,
			Count:     total,
			Page:      page,
			HasNext:   uint64(page)*uint64(perPage) < total,
		}, nil
	case 404:
		return &document.Listing{Documents: []document.Document{}, Page: page}, nil
	default:
		return nil, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsService) Tags(ctx context.Context) ([]document.Tag, error) {
	queryBody := jsonObjMap{
		"size": 0,
		"aggs": jsonObjMap{
			"tags": jsonObjMap{
				"terms": jsonObjMap{
					"field": "tags",
					"size":  maxTagBuckets,
					"order": jsonObjMap{
						"_key": "asc",
					},
				},
			},
		},
	}
	queryBodyAsJsonBytes, err := json.Marshal(queryBody)
	if err != nil {
		return nil, common.JsonSerdesErr{Underlying: []error{err}}
	}

	searchReq := esapi.SearchRequest{
		Index:             []string{string(DocumentsIndexName)},
		IgnoreUnavailable: esapi.BoolPtr(true),
		AllowNoIndices:    esapi.BoolPtr(true),
		Body:              bytes.NewReader(queryBodyAsJsonBytes),
	}

	rawResp, err := searchReq.Do(ctx, e.client)
	if err != nil {
		return nil, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()

	switch rawResp.StatusCode {
	case 200:
		var aggResp esTagsAggResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&aggResp); err != nil {
			return nil, common.JsonSerdesErr{Underlying: []error{err}}
		}
		tags := make([]document.Tag, 0, len(aggResp.Aggregations.Tags.Buckets))
		for _, bucket := range aggResp.Aggregations.Tags.Buckets {
			tags = append(tags, document.Tag(bucket.Key))
		}
		return tags, nil
	case 404:
		return nil, nil
	default:
		return nil, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsService) CreateRevision(ctx context.Context, doc *document.Document, newRevision *document.NewRevision) (*document.Revision, error) {
	// BasedOn references only make sense on translations, and must point at a
	// revision of the parent document.
	var basedOnId *uint64
	if doc.IsTranslation() && newRevision.BasedOnID != nil {
		basedOnRev, err := e.GetRevision(ctx, *newRevision.BasedOnID)
		if err != nil {
			if _, isNotFound := err.(document.RevisionNotFound); isNotFound {
				return nil, document.InvalidBasedOn{BasedOnID: *newRevision.BasedOnID, ParentID: doc.ParentID}
			}
			return nil, err
		}
		if basedOnRev.DocumentID != *doc.ParentID {
			return nil, document.InvalidBasedOn{BasedOnID: *newRevision.BasedOnID, ParentID: doc.ParentID}
		}
		id := uint64(*newRevision.BasedOnID)
		basedOnId = &id
	}

	nextId, err := e.nextRevisionId(ctx)
	if err != nil {
		return nil, err
	}

	now := e.getUTC()
	toPersist := persistedRevisionData{
		ID:         uint64(nextId),
		DocumentId: string(doc.ID),
		Creator:    string(newRevision.Creator),
		Comment:    string(newRevision.Comment),
		Summary:    string(newRevision.Summary),
		Content:    string(newRevision.Content),
		CreatedAt:  now,
		IsApproved: false,
		BasedOnId:  basedOnId,
		Metadata: persistedMetadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
	toPersistBytes, err := json.Marshal(toPersist)
	if err != nil {
		return nil, common.JsonSerdesErr{Underlying: []error{err}}
	}

	// The revision id doubles as the _id; a concurrent creator racing us to
	// the same id turns into a 409 instead of a silent overwrite.
	createReq := esapi.CreateRequest{
		DocumentID: strconv.FormatUint(uint64(nextId), 10),
		Index:      string(RevisionsIndexName),
		Body:       bytes.NewReader(toPersistBytes),
	}

	rawResp, err := createReq.Do(ctx, e.client)
	if err != nil {
		return nil, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	statusCode := rawResp.StatusCode
	switch {
	case 200 <= statusCode && statusCode <= 299:
		var response common.EsCreateResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&response); err != nil {
			return nil, common.JsonSerdesErr{Underlying: []error{err}}
		}
		domainRevision := toPersist.toDomainRevision(response.Version())
		return &domainRevision, nil
	case statusCode == 409:
		return nil, document.InvalidVersion{ID: nextId}
	default:
		return nil, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsService) GetRevision(ctx context.Context, id document.RevisionId) (*document.Revision, error) {
	getReq := esapi.GetRequest{
		Index:      string(RevisionsIndexName),
		DocumentID: strconv.FormatUint(uint64(id), 10),
	}
	rawResp, err := getReq.Do(ctx, e.client)
	if err != nil {
		return nil, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()

	switch rawResp.StatusCode {
	case 200:
		var response esHitPersistedRevision
		if err := json.NewDecoder(rawResp.Body).Decode(&response); err != nil {
			return nil, common.JsonSerdesErr{Underlying: []error{err}}
		}
		retrieved := response.toDomainRevision()
		return &retrieved, nil
	case 404:
		return nil, document.RevisionNotFound{ID: id}
	default:
		return nil, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsService) Revisions(ctx context.Context, docId document.Id) ([]document.Revision, error) {
	scrollSize := e.settings.ScrollSize
	if scrollSize == 0 {
		scrollSize = defaultScrollSize
	}
	scrollTtl := e.settings.ScrollTtl
	if scrollTtl == 0 {
		scrollTtl = defaultScrollTtl
	}

	var revisions []document.Revision
	searchBody := buildRevisionsSearchBody(docId, scrollSize)
	err := e.scanRevisions(ctx, searchBody, scrollTtl, func(batch []document.Revision) error {
		revisions = append(revisions, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Resolve the earliest revision's based-on reference so that translation
	// history can be projected without another round trip. A dangling
	// reference just stays unresolved.
	if len(revisions) > 0 && revisions[0].BasedOnID != nil {
		basedOn, err := e.GetRevision(ctx, *revisions[0].BasedOnID)
		if err != nil {
			if _, isNotFound := err.(document.RevisionNotFound); !isNotFound {
				return nil, err
			}
		} else {
			revisions[0].BasedOn = basedOn
		}
	}
	return revisions, nil
}

func (e *EsService) ApproveRevision(ctx context.Context, doc *document.Document, id document.RevisionId) (*document.Revision, error) {
	rev, err := e.GetRevision(ctx, id)
	if err != nil {
		return nil, err
	}
	if rev.DocumentID != doc.ID {
		return nil, document.RevisionNotFound{ID: id}
	}

	now := e.getUTC()
	rev.IsApproved = true
	rev.Metadata.ModifiedAt = metadata.ModifiedAt(now)
	if err := e.updateRevision(ctx, rev); err != nil {
		return nil, err
	}

	currentId := id
	doc.CurrentRevisionID = &currentId
	doc.Metadata.ModifiedAt = metadata.ModifiedAt(now)
	if err := e.updateDocument(ctx, doc, id); err != nil {
		return nil, err
	}
	return rev, nil
}

func (e *EsService) Refresh(ctx context.Context) error {
	refreshReq := esapi.IndicesRefreshRequest{
		Index:             []string{string(DocumentsIndexName), string(RevisionsIndexName)},
		IgnoreUnavailable: esapi.BoolPtr(true),
		AllowNoIndices:    esapi.BoolPtr(true),
	}
	rawResp, err := refreshReq.Do(ctx, e.client)
	if err != nil {
		return common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	if rawResp.IsError() {
		return common.UnexpectedEsStatusError(rawResp)
	}
	return nil
}

// searchDocument looks up a single Document by locale and slug. Returns nil
// without an error when there is no such Document (or no index yet).
func (e *EsService) searchDocument(ctx context.Context, loc locale.Name, slug document.Slug) (*esHitPersistedDocument, error) {
	queryBody := jsonObjMap{
		"size":                1,
		"seq_no_primary_term": true,
		"query": jsonObjMap{
			"bool": jsonObjMap{
				"filter": jsonObjMap{
					"bool": jsonObjMap{
						"must": []jsonObjMap{
							{
								"term": jsonObjMap{
									"locale": string(loc),
								},
							},
							{
								"term": jsonObjMap{
									"slug": string(slug),
								},
							},
						},
					},
				},
			},
		},
	}
	queryBodyAsJsonBytes, err := json.Marshal(queryBody)
	if err != nil {
		return nil, common.JsonSerdesErr{Underlying: []error{err}}
	}

	searchReq := esapi.SearchRequest{
		Index:             []string{string(DocumentsIndexName)},
		IgnoreUnavailable: esapi.BoolPtr(true),
		AllowNoIndices:    esapi.BoolPtr(true),
		Body:              bytes.NewReader(queryBodyAsJsonBytes),
	}

	rawResp, err := searchReq.Do(ctx, e.client)
	if err != nil {
		return nil, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()

	switch rawResp.StatusCode {
	case 200:
		var searchResp esDocumentSearchResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&searchResp); err != nil {
			return nil, common.JsonSerdesErr{Underlying: []error{err}}
		}
		if len(searchResp.Hits.Hits) == 0 {
			return nil, nil
		}
		return &searchResp.Hits.Hits[0], nil
	case 404:
		return nil, nil
	default:
		return nil, common.UnexpectedEsStatusError(rawResp)
	}
}

// nextRevisionId returns one past the highest persisted revision id. Ids are
// global, not per document, so they are usable as a creation-order tiebreak.
func (e *EsService) nextRevisionId(ctx context.Context) (document.RevisionId, error) {
	queryBody := jsonObjMap{
		"size": 1,
		"sort": []jsonObjMap{
			{
				"id": jsonObjMap{
					"order": "desc",
				},
			},
		},
	}
	queryBodyAsJsonBytes, err := json.Marshal(queryBody)
	if err != nil {
		return 0, common.JsonSerdesErr{Underlying: []error{err}}
	}

	searchReq := esapi.SearchRequest{
		Index:             []string{string(RevisionsIndexName)},
		IgnoreUnavailable: esapi.BoolPtr(true),
		AllowNoIndices:    esapi.BoolPtr(true),
		Body:              bytes.NewReader(queryBodyAsJsonBytes),
	}

	rawResp, err := searchReq.Do(ctx, e.client)
	if err != nil {
		return 0, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()

	switch rawResp.StatusCode {
	case 200:
		var searchResp esRevisionSearchResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&searchResp); err != nil {
			return 0, common.JsonSerdesErr{Underlying: []error{err}}
		}
		if len(searchResp.Hits.Hits) == 0 {
			return 1, nil
		}
		return document.RevisionId(searchResp.Hits.Hits[0].Source.ID + 1), nil
	case 404:
		return 1, nil
	default:
		return 0, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsService) updateRevision(ctx context.Context, rev *document.Revision) error {
	updatePayload := toPersistedRevision(rev)
	updatePayloadBytes, err := json.Marshal(updatePayload)
	if err != nil {
		return common.JsonSerdesErr{Underlying: []error{err}}
	}
	// The Index API with optimistic locking data, so a stale read turns into
	// a conflict instead of clobbering a concurrent update
	updateReq := esapi.IndexRequest{
		Index:         string(RevisionsIndexName),
		DocumentID:    strconv.FormatUint(uint64(rev.ID), 10),
		Body:          bytes.NewReader(updatePayloadBytes),
		IfPrimaryTerm: esapi.IntPtr(int(rev.Metadata.Version.PrimaryTerm)),
		IfSeqNo:       esapi.IntPtr(int(rev.Metadata.Version.SeqNum)),
	}
	rawResp, err := updateReq.Do(ctx, e.client)
	if err != nil {
		return common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	respStatus := rawResp.StatusCode
	switch {
	case 200 <= respStatus && respStatus <= 299:
		var resp common.EsUpdateResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&resp); err != nil {
			return common.JsonSerdesErr{Underlying: []error{err}}
		}
		rev.Metadata.Version = resp.Version()
		return nil
	case respStatus == 409:
		return document.InvalidVersion{ID: rev.ID}
	case respStatus == 404:
		return document.RevisionNotFound{ID: rev.ID}
	default:
		return common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsService) updateDocument(ctx context.Context, doc *document.Document, revisionId document.RevisionId) error {
	updatePayload := toPersistedDocument(doc)
	updatePayloadBytes, err := json.Marshal(updatePayload)
	if err != nil {
		return common.JsonSerdesErr{Underlying: []error{err}}
	}
	updateReq := esapi.IndexRequest{
		Index:         string(DocumentsIndexName),
		DocumentID:    string(doc.ID),
		Body:          bytes.NewReader(updatePayloadBytes),
		IfPrimaryTerm: esapi.IntPtr(int(doc.Metadata.Version.PrimaryTerm)),
		IfSeqNo:       esapi.IntPtr(int(doc.Metadata.Version.SeqNum)),
	}
	rawResp, err := updateReq.Do(ctx, e.client)
	if err != nil {
		return common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	respStatus := rawResp.StatusCode
	switch {
	case 200 <= respStatus && respStatus <= 299:
		var resp common.EsUpdateResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&resp); err != nil {
			return common.JsonSerdesErr{Underlying: []error{err}}
		}
		doc.Metadata.Version = resp.Version()
		return nil
	case respStatus == 409:
		return document.InvalidVersion{ID: revisionId}
	case respStatus == 404:
		return document.NotFound{Slug: doc.Slug, Locale: doc.Locale}
	default:
		return common.UnexpectedEsStatusError(rawResp)
	}
}

// Scrolls through all revisions matched by a search body, taking care to
// close response bodies and scrolls
func (e *EsService) scanRevisions(ctx context.Context, searchBody jsonObjMap, scrollTtl time.Duration, doWithBatch func(batch []document.Revision) error) error {
	log.Debug().Interface("searchBody", searchBody).Msg("Scanning revisions")
	revisionsWithId, err := e.initSearch(ctx, searchBody, scrollTtl)
	if err != nil {
		return err
	}
	if revisionsWithId == nil {
		return nil
	}
	batch := revisionsWithId.Revisions
	var scrollIds []string
	scrollId := revisionsWithId.ScrollId
	scrollIds = append(scrollIds, scrollId)
	defer func() {
		if scrollErr := e.clearScroll(ctx, scrollIds); scrollErr != nil && err == nil {
			err = scrollErr
		}
	}()

	for len(batch) > 0 {
		if err := doWithBatch(batch); err != nil {
			return err
		}
		nextRevisionsWithId, err := e.scroll(ctx, scrollId, scrollTtl)
		if err != nil {
			return err
		}
		if nextRevisionsWithId == nil {
			break
		}
		batch = nextRevisionsWithId.Revisions
		scrollId = nextRevisionsWithId.ScrollId
		scrollIds = append(scrollIds, nextRevisionsWithId.ScrollId)
	}
	return nil
}

func (e *EsService) initSearch(ctx context.Context, searchBody jsonObjMap, scrollTtl time.Duration) (*revisionsWithScrollId, error) {
	searchBodyBytes, err := json.Marshal(searchBody)
	if err != nil {
		return nil, common.JsonSerdesErr{Underlying: []error{err}}
	}
	searchReq := esapi.SearchRequest{
		Scroll:         scrollTtl,
		Index:          []string{string(RevisionsIndexName)},
		AllowNoIndices: esapi.BoolPtr(true),
		Body:           bytes.NewReader(searchBodyBytes),
	}

	rawResp, err := searchReq.Do(ctx, e.client)
	if err != nil {
		return nil, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	return processScrollResp(rawResp)
}

func (e *EsService) scroll(ctx context.Context, scrollId string, scrollTtl time.Duration) (*revisionsWithScrollId, error) {
	scrollReq := esapi.ScrollRequest{
		Scroll:   scrollTtl,
		ScrollID: scrollId,
	}

	rawResp, err := scrollReq.Do(ctx, e.client)
	if err != nil {
		return nil, common.ElasticsearchErr{Underlying: err}
	}
	defer rawResp.Body.Close()
	return processScrollResp(rawResp)
}

func processScrollResp(rawResp *esapi.Response) (*revisionsWithScrollId, error) {
	switch rawResp.StatusCode {
	case 200:
		var scrollResp esRevisionScrollingResponse
		if err := json.NewDecoder(rawResp.Body).Decode(&scrollResp); err != nil {
			return nil, common.JsonSerdesErr{Underlying: []error{err}}
		}
		revisions := make([]document.Revision, 0, len(scrollResp.Hits.Hits))
		for _, hit := range scrollResp.Hits.Hits {
			revisions = append(revisions, hit.toDomainRevision())
		}
		return &revisionsWithScrollId{
			ScrollId:  scrollResp.ScrollId,
			Revisions: revisions,
		}, nil
	case 404:
		return nil, nil
	default:
		return nil, common.UnexpectedEsStatusError(rawResp)
	}
}

func (e *EsService) clearScroll(ctx context.Context, scrollIds []string) error {
	if len(scrollIds) > 0 {
		clearScrollReq := esapi.ClearScrollRequest{ScrollID: scrollIds}
		rawResp, err := clearScrollReq.Do(ctx, e.client)
		if err != nil {
			return err
		} else {
			defer rawResp.Body.Close()
			switch rawResp.StatusCode {
			case 200:
				return nil
			default:
				return common.UnexpectedEsStatusError(rawResp)
			}
		}
	} else {
		return nil
	}
}

type jsonObjMap map[string]interface{}

func buildListingQueryBody(loc locale.Name, filter document.ListFilter, from uint, size uint) jsonObjMap {
	must := []jsonObjMap{
		{
			"term": jsonObjMap{
				"locale": string(loc),
			},
		},
	}
	if filter.Tag != nil {
		must = append(must, jsonObjMap{
			"term": jsonObjMap{
				"tags": string(*filter.Tag),
			},
		})
	}
	if filter.ReviewTag != nil {
		must = append(must, jsonObjMap{
			"term": jsonObjMap{
				"review_tags": string(*filter.ReviewTag),
			},
		})
	}
	if filter.LocalizationTag != nil {
		must = append(must, jsonObjMap{
			"term": jsonObjMap{
				"localization_tags": string(*filter.LocalizationTag),
			},
		})
	}
	if filter.Errors {
		must = append(must, jsonObjMap{
			"term": jsonObjMap{
				"has_errors": true,
			},
		})
	}
	if filter.TopLevel {
		must = append(must, jsonObjMap{
			"term": jsonObjMap{
				"top_level": true,
			},
		})
	}
	boolQuery := jsonObjMap{
		"must": must,
	}
	if filter.NoParent {
		boolQuery["must_not"] = []jsonObjMap{
			{
				"exists": jsonObjMap{
					"field": "parent_id",
				},
			},
		}
	}
	return jsonObjMap{
		"from":                from,
		"size":                size,
		"seq_no_primary_term": true,
		"track_total_hits":    true,
		"sort": []jsonObjMap{
			{
				"slug": jsonObjMap{
					"order": "asc",
				},
			},
		},
		"query": jsonObjMap{
			"bool": jsonObjMap{
				"filter": jsonObjMap{
					"bool": boolQuery,
				},
			},
		},
	}
}

func buildRevisionsSearchBody(docId document.Id, pageSize uint) jsonObjMap {
	return jsonObjMap{
		"size":                pageSize,
		"seq_no_primary_term": true,
		"sort": []jsonObjMap{
			{
				"created_at": jsonObjMap{
					"order": "asc",
				},
			},
			{
				"id": jsonObjMap{
					"order": "asc",
				},
			},
		},
		"query": jsonObjMap{
			"bool": jsonObjMap{
				"filter": jsonObjMap{
					"term": jsonObjMap{
						"document_id": string(docId),
					},
				},
			},
		},
	}
}

// Private persistence doc structures based entirely on basic types for ease of
// guaranteeing serdes.

type persistedDocumentData struct {
	Slug              string            `json:"slug"`
	Locale            string            `json:"locale"`
	Title             string            `json:"title"`
	CurrentRevisionId *uint64           `json:"current_revision_id,omitempty"`
	ParentId          *string           `json:"parent_id,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	ReviewTags        []string          `json:"review_tags,omitempty"`
	LocalizationTags  []string          `json:"localization_tags,omitempty"`
	HasErrors         bool              `json:"has_errors"`
	TopLevel          bool              `json:"top_level"`
	Metadata          persistedMetadata `json:"metadata"`
}

type persistedRevisionData struct {
	// The revision id is also stored in the body so that it can be sorted and
	// aggregated on
	ID         uint64            `json:"id"`
	DocumentId string            `json:"document_id"`
	Creator    string            `json:"creator"`
	Comment    string            `json:"comment,omitempty"`
	Summary    string            `json:"summary,omitempty"`
	Content    string            `json:"content,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	IsApproved bool              `json:"is_approved"`
	BasedOnId  *uint64           `json:"based_on_id,omitempty"`
	Metadata   persistedMetadata `json:"metadata"`
}

type persistedMetadata struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

func (pDoc *persistedDocumentData) toDomainDocument(documentId document.Id, version metadata.Version) document.Document {
	var currentRevisionId *document.RevisionId
	if pDoc.CurrentRevisionId != nil {
		id := document.RevisionId(*pDoc.CurrentRevisionId)
		currentRevisionId = &id
	}
	var parentId *document.Id
	if pDoc.ParentId != nil {
		id := document.Id(*pDoc.ParentId)
		parentId = &id
	}
	return document.Document{
		ID:                documentId,
		Slug:              document.Slug(pDoc.Slug),
		Locale:            locale.Name(pDoc.Locale),
		Title:             document.Title(pDoc.Title),
		CurrentRevisionID: currentRevisionId,
		ParentID:          parentId,
		Tags:              stringsToTags(pDoc.Tags),
		ReviewTags:        stringsToTags(pDoc.ReviewTags),
		LocalizationTags:  stringsToTags(pDoc.LocalizationTags),
		HasErrors:         pDoc.HasErrors,
		TopLevel:          pDoc.TopLevel,
		Metadata: metadata.Metadata{
			CreatedAt:  metadata.CreatedAt(pDoc.Metadata.CreatedAt),
			ModifiedAt: metadata.ModifiedAt(pDoc.Metadata.ModifiedAt),
			Version:    version,
		},
	}
}

func (pRev *persistedRevisionData) toDomainRevision(version metadata.Version) document.Revision {
	var basedOnId *document.RevisionId
	if pRev.BasedOnId != nil {
		id := document.RevisionId(*pRev.BasedOnId)
		basedOnId = &id
	}
	return document.Revision{
		ID:         document.RevisionId(pRev.ID),
		DocumentID: document.Id(pRev.DocumentId),
		Creator:    document.Creator(pRev.Creator),
		Comment:    document.Comment(pRev.Comment),
		Summary:    document.Summary(pRev.Summary),
		Content:    document.Content(pRev.Content),
		CreatedAt:  pRev.CreatedAt,
		IsApproved: pRev.IsApproved,
		BasedOnID:  basedOnId,
		Metadata: metadata.Metadata{
			CreatedAt:  metadata.CreatedAt(pRev.Metadata.CreatedAt),
			ModifiedAt: metadata.ModifiedAt(pRev.Metadata.ModifiedAt),
			Version:    version,
		},
	}
}

func toPersistedDocument(doc *document.Document) persistedDocumentData {
	var currentRevisionId *uint64
	if doc.CurrentRevisionID != nil {
		id := uint64(*doc.CurrentRevisionID)
		currentRevisionId = &id
	}
	var parentId *string
	if doc.ParentID != nil {
		id := string(*doc.ParentID)
		parentId = &id
	}
	return persistedDocumentData{
		Slug:              string(doc.Slug),
		Locale:            string(doc.Locale),
		Title:             string(doc.Title),
		CurrentRevisionId: currentRevisionId,
		ParentId:          parentId,
		Tags:              tagsToStrings(doc.Tags),
		ReviewTags:        tagsToStrings(doc.ReviewTags),
		LocalizationTags:  tagsToStrings(doc.LocalizationTags),
		HasErrors:         doc.HasErrors,
		TopLevel:          doc.TopLevel,
		Metadata: persistedMetadata{
			CreatedAt:  time.Time(doc.Metadata.CreatedAt),
			ModifiedAt: time.Time(doc.Metadata.ModifiedAt),
		},
	}
}

func toPersistedRevision(rev *document.Revision) persistedRevisionData {
	var basedOnId *uint64
	if rev.BasedOnID != nil {
		id := uint64(*rev.BasedOnID)
		basedOnId = &id
	}
	return persistedRevisionData{
		ID:         uint64(rev.ID),
		DocumentId: string(rev.DocumentID),
		Creator:    string(rev.Creator),
		Comment:    string(rev.Comment),
		Summary:    string(rev.Summary),
		Content:    string(rev.Content),
		CreatedAt:  rev.CreatedAt,
		IsApproved: rev.IsApproved,
		BasedOnId:  basedOnId,
		Metadata: persistedMetadata{
			CreatedAt:  time.Time(rev.Metadata.CreatedAt),
			ModifiedAt: time.Time(rev.Metadata.ModifiedAt),
		},
	}
}

type esHitPersistedDocument struct {
	ID          string                `json:"_id"`
	SeqNum      uint64                `json:"_seq_no"`
	PrimaryTerm uint64                `json:"_primary_term"`
	Source      persistedDocumentData `json:"_source"`
}

func (hit *esHitPersistedDocument) toDomainDocument() document.Document {
	return hit.Source.toDomainDocument(document.Id(hit.ID), metadata.Version{
		SeqNum:      metadata.SeqNum(hit.SeqNum),
		PrimaryTerm: metadata.PrimaryTerm(hit.PrimaryTerm),
	})
}

type esHitPersistedRevision struct {
	ID          string                `json:"_id"`
	SeqNum      uint64                `json:"_seq_no"`
	PrimaryTerm uint64                `json:"_primary_term"`
	Source      persistedRevisionData `json:"_source"`
}

func (hit *esHitPersistedRevision) toDomainRevision() document.Revision {
	return hit.Source.toDomainRevision(metadata.Version{
		SeqNum:      metadata.SeqNum(hit.SeqNum),
		PrimaryTerm: metadata.PrimaryTerm(hit.PrimaryTerm),
	})
}

type esDocumentSearchResponse struct {
	Hits struct {
		Total struct {
			Value uint64 `json:"value"`
		} `json:"total"`
		Hits []esHitPersistedDocument `json:"hits"`
	} `json:"hits"`
}

type esRevisionSearchResponse struct {
	Hits struct {
		Hits []esHitPersistedRevision `json:"hits"`
	} `json:"hits"`
}

type revisionsWithScrollId struct {
	ScrollId  string
	Revisions []document.Revision
}

type esRevisionScrollingResponse struct {
	Hits struct {
		Hits []esHitPersistedRevision `json:"hits"`
	} `json:"hits"`
	ScrollId string `json:"_scroll_id"`
}

type esTagsAggResponse struct {
	Aggregations struct {
		Tags struct {
			Buckets []struct {
				Key string `json:"key"`
			} `json:"buckets"`
		} `json:"tags"`
	} `json:"aggregations"`
}

func tagsToStrings(tags []document.Tag) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, string(t))
	}
	return out
}

func stringsToTags(strs []string) []document.Tag {
	if len(strs) == 0 {
		return nil
	}
	out := make([]document.Tag, 0, len(strs))
	for _, s := range strs {
		out = append(out, document.Tag(s))
	}
	return out
}
