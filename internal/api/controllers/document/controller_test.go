package document

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apiDocument "github.com/wikid/wikid/internal/api/models/document"
	"github.com/wikid/wikid/internal/config"
	domainDocument "github.com/wikid/wikid/internal/domain/document"
	"github.com/wikid/wikid/internal/domain/document/history"
)

func TestNewDocumentsController(t *testing.T) {
	type args struct {
		documentsService domainDocument.Service
		config           config.Documents
	}
	tests := []struct {
		name string
		args args
	}{
		{
			"should not panic",
			args{
				documentsService: &domainDocument.MockDocumentsService{},
				config:           documentsConfig,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { New(tt.args.documentsService, documentsConfig) })
		})
	}
}

func Test_handleErr(t *testing.T) {
	type args struct {
		err error
	}
	tests := []struct {
		name     string
		args     args
		wantCode int
	}{
		{
			"random errors should 500",
			args{
				fmt.Errorf("wtf"),
			},
			500,
		},
		{
			"InvalidPersistedData errors should 500",
			args{
				domainDocument.InvalidPersistedData{},
			},
			500,
		},
		{
			"NotFound errors should 404",
			args{
				domainDocument.NotFound{},
			},
			404,
		},
		{
			"NoCurrentRevision errors should 404",
			args{
				domainDocument.NoCurrentRevision{},
			},
			404,
		},
		{
			"RevisionNotFound errors should 404",
			args{
				domainDocument.RevisionNotFound{},
			},
			404,
		},
		{
			"Empty history errors should 404",
			args{
				history.Empty{},
			},
			404,
		},
		{
			"Unauthorized errors should 403",
			args{
				history.Unauthorized{Reason: history.ReasonLoginRequired},
			},
			403,
		},
		{
			"InvalidVersion errors should 409",
			args{
				domainDocument.InvalidVersion{},
			},
			409,
		},
		{
			"AlreadyExists errors should 409",
			args{
				domainDocument.AlreadyExists{},
			},
			409,
		},
		{
			"InvalidBasedOn errors should 400",
			args{
				domainDocument.InvalidBasedOn{},
			},
			400,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := handleErr(tt.args.err)
			assert.EqualValues(t, tt.wantCode, got.StatusCode)
		})
	}
}

func Test_handleErr_unauthorizedReason(t *testing.T) {
	got := handleErr(history.Unauthorized{Reason: history.ReasonLoginRequired})
	assert.EqualValues(t, history.ReasonLoginRequired, got.Body.Reason)
}

func Test_documentsControllerImpl_Create(t *testing.T) {
	type fields struct {
		documentsService *domainDocument.MockDocumentsService
	}
	type args struct {
		newDocument *apiDocument.NewDocument
	}
	tests := []struct {
		name    string
		fields  fields
		args    args
		want    *apiDocument.Document
		wantErr bool
	}{
		{
			"successful service return",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			args{
				&apiDocument.NewDocument{
					Slug:   "Web/CSS/color",
					Locale: "en-US",
					Title:  "color",
				},
			},
			&mockApiDocument,
			false,
		},
		{
			"failed service return",
			fields{documentsService: &domainDocument.MockDocumentsService{
				CreateOverride: func() (*domainDocument.Document, error) {
					return nil, fmt.Errorf("yikes")
				},
			}},
			args{
				&apiDocument.NewDocument{
					Slug:   "Web/CSS/color",
					Locale: "en-US",
					Title:  "color",
				},
			},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &impl{
				documentsService: tt.fields.documentsService,
				documentsConfig:  documentsConfig,
			}
			got, err := c.Create(context.Background(), tt.args.newDocument)
			assert.EqualValues(t, 1, tt.fields.documentsService.CreateCalled)
			if err != nil && !tt.wantErr {
				t.Error(err)
			} else {
				assert.EqualValues(t, tt.want, got)
			}
		})
	}
}

func Test_documentsControllerImpl_Get(t *testing.T) {
	type fields struct {
		documentsService *domainDocument.MockDocumentsService
	}
	tests := []struct {
		name    string
		fields  fields
		want    *apiDocument.Document
		wantErr bool
	}{
		{
			"successful service return",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			&mockApiDocument,
			false,
		},
		{
			"failed service return",
			fields{documentsService: &domainDocument.MockDocumentsService{
				GetOverride: func() (*domainDocument.Document, error) {
					return nil, domainDocument.NotFound{Slug: "nope", Locale: "en-US"}
				},
			}},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &impl{
				documentsService: tt.fields.documentsService,
				documentsConfig:  documentsConfig,
			}
			got, err := c.Get(context.Background(), "en-US", "Web/CSS/color")
			assert.EqualValues(t, 1, tt.fields.documentsService.GetCalled)
			if err != nil && !tt.wantErr {
				t.Error(err)
			} else {
				assert.EqualValues(t, tt.want, got)
			}
		})
	}
}

func Test_documentsControllerImpl_List(t *testing.T) {
	type fields struct {
		documentsService *domainDocument.MockDocumentsService
	}
	tests := []struct {
		name    string
		fields  fields
		want    *apiDocument.DocumentList
		wantErr bool
	}{
		{
			"successful service return",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			&apiDocument.DocumentList{
				Documents: []apiDocument.Document{mockApiDocument},
				Count:     1,
				Page: apiDocument.PageInfo{
					Number:  1,
					HasNext: false,
				},
			},
			false,
		},
		{
			"failed service return",
			fields{documentsService: &domainDocument.MockDocumentsService{
				ListOverride: func() (*domainDocument.Listing, error) {
					return nil, fmt.Errorf("boom")
				},
			}},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &impl{
				documentsService: tt.fields.documentsService,
				documentsConfig:  documentsConfig,
			}
			got, err := c.List(context.Background(), "en-US", domainDocument.ListFilter{}, 1)
			assert.EqualValues(t, 1, tt.fields.documentsService.ListCalled)
			if err != nil && !tt.wantErr {
				t.Error(err)
			} else {
				assert.EqualValues(t, tt.want, got)
			}
		})
	}
}

func Test_documentsControllerImpl_Tags(t *testing.T) {
	type fields struct {
		documentsService *domainDocument.MockDocumentsService
	}
	type args struct {
		page uint
	}
	tests := []struct {
		name    string
		fields  fields
		args    args
		want    *apiDocument.TagList
		wantErr bool
	}{
		{
			"successful service return",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			args{page: 1},
			&apiDocument.TagList{
				Tags: []string{"mock-tag"},
				Page: apiDocument.PageInfo{
					Number:  1,
					HasNext: false,
				},
			},
			false,
		},
		{
			"zero page is treated as the first",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			args{page: 0},
			&apiDocument.TagList{
				Tags: []string{"mock-tag"},
				Page: apiDocument.PageInfo{
					Number:  1,
					HasNext: false,
				},
			},
			false,
		},
		{
			"page past the end returns an empty page",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			args{page: 5},
			&apiDocument.TagList{
				Tags: []string{},
				Page: apiDocument.PageInfo{
					Number:  5,
					HasNext: false,
				},
			},
			false,
		},
		{
			"failed service return",
			fields{documentsService: &domainDocument.MockDocumentsService{
				TagsOverride: func() ([]domainDocument.Tag, error) {
					return nil, fmt.Errorf("boom")
				},
			}},
			args{page: 1},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &impl{
				documentsService: tt.fields.documentsService,
				documentsConfig:  documentsConfig,
			}
			got, err := c.Tags(context.Background(), tt.args.page)
			assert.EqualValues(t, 1, tt.fields.documentsService.TagsCalled)
			if err != nil && !tt.wantErr {
				t.Error(err)
			} else {
				assert.EqualValues(t, tt.want, got)
			}
		})
	}
}

func Test_documentsControllerImpl_Tags_paginates(t *testing.T) {
	documentsService := &domainDocument.MockDocumentsService{
		TagsOverride: func() ([]domainDocument.Tag, error) {
			tags := make([]domainDocument.Tag, 0, 30)
			for i := 0; i < 30; i++ {
				tags = append(tags, domainDocument.Tag(fmt.Sprintf("tag-%02d", i)))
			}
			return tags, nil
		},
	}
	c := &impl{
		documentsService: documentsService,
		documentsConfig:  documentsConfig,
	}
	got, err := c.Tags(context.Background(), 2)
	if assert.Nil(t, err) {
		assert.Len(t, got.Tags, 5)
		assert.EqualValues(t, "tag-25", got.Tags[0])
		assert.False(t, got.Page.HasNext)
	}
}

func Test_documentsControllerImpl_History(t *testing.T) {
	type fields struct {
		documentsService *domainDocument.MockDocumentsService
	}
	type args struct {
		req history.Request
	}
	tests := []struct {
		name         string
		fields       fields
		args         args
		wantErr      bool
		wantErrCode  int
		wantRevCount int
	}{
		{
			"successful service return",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			args{req: history.Request{Page: 1, Limit: ""}},
			false,
			0,
			1,
		},
		{
			"document lookup failure",
			fields{documentsService: &domainDocument.MockDocumentsService{
				GetOverride: func() (*domainDocument.Document, error) {
					return nil, domainDocument.NotFound{Slug: "nope", Locale: "en-US"}
				},
			}},
			args{req: history.Request{Page: 1}},
			true,
			404,
			0,
		},
		{
			"document without a current revision",
			fields{documentsService: &domainDocument.MockDocumentsService{
				GetOverride: func() (*domainDocument.Document, error) {
					d := domainDocument.MockDomainDocument
					d.CurrentRevisionID = nil
					return &d, nil
				},
			}},
			args{req: history.Request{Page: 1}},
			true,
			404,
			0,
		},
		{
			"full history without authorization",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			args{req: history.Request{Page: 1, Limit: history.AllLimit, Authorized: false}},
			true,
			403,
			0,
		},
		{
			"full history with authorization",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			args{req: history.Request{Page: 1, Limit: history.AllLimit, Authorized: true}},
			false,
			0,
			1,
		},
		{
			"revision snapshot failure",
			fields{documentsService: &domainDocument.MockDocumentsService{
				RevisionsOverride: func() ([]domainDocument.Revision, error) {
					return nil, fmt.Errorf("boom")
				},
			}},
			args{req: history.Request{Page: 1}},
			true,
			500,
			0,
		},
		{
			"empty revision snapshot",
			fields{documentsService: &domainDocument.MockDocumentsService{
				RevisionsOverride: func() ([]domainDocument.Revision, error) {
					return []domainDocument.Revision{}, nil
				},
			}},
			args{req: history.Request{Page: 1}},
			true,
			404,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &impl{
				documentsService: tt.fields.documentsService,
				documentsConfig:  documentsConfig,
			}
			got, err := c.History(context.Background(), "en-US", "Web/CSS/color", tt.args.req)
			assert.EqualValues(t, 1, tt.fields.documentsService.GetCalled)
			if tt.wantErr {
				if assert.NotNil(t, err) {
					assert.EqualValues(t, tt.wantErrCode, err.StatusCode)
				}
			} else {
				if assert.Nil(t, err) {
					assert.Len(t, got.Revisions, tt.wantRevCount)
				}
			}
		})
	}
}

func Test_documentsControllerImpl_History_unauthorizedSkipsSnapshot(t *testing.T) {
	documentsService := &domainDocument.MockDocumentsService{}
	c := &impl{
		documentsService: documentsService,
		documentsConfig:  documentsConfig,
	}
	_, err := c.History(context.Background(), "en-US", "Web/CSS/color", history.Request{
		Page:  1,
		Limit: history.AllLimit,
	})
	if assert.NotNil(t, err) {
		assert.EqualValues(t, 403, err.StatusCode)
		assert.EqualValues(t, history.ReasonLoginRequired, err.Body.Reason)
	}
	assert.EqualValues(t, 0, documentsService.RevisionsCalled)
}

func Test_documentsControllerImpl_CreateRevision(t *testing.T) {
	type fields struct {
		documentsService *domainDocument.MockDocumentsService
	}
	type args struct {
		newRevision *apiDocument.NewRevision
	}
	tests := []struct {
		name    string
		fields  fields
		args    args
		want    *apiDocument.Revision
		wantErr bool
	}{
		{
			"successful service return",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			args{
				&apiDocument.NewRevision{
					Creator: "jdoe",
					Comment: "tweaks",
				},
			},
			&mockApiRevision,
			false,
		},
		{
			"failed service return",
			fields{documentsService: &domainDocument.MockDocumentsService{
				CreateRevisionOverride: func() (*domainDocument.Revision, error) {
					return nil, fmt.Errorf("yikes")
				},
			}},
			args{
				&apiDocument.NewRevision{
					Creator: "jdoe",
				},
			},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &impl{
				documentsService: tt.fields.documentsService,
				documentsConfig:  documentsConfig,
			}
			got, err := c.CreateRevision(context.Background(), "en-US", "Web/CSS/color", tt.args.newRevision)
			assert.EqualValues(t, 1, tt.fields.documentsService.GetCalled)
			if err != nil && !tt.wantErr {
				t.Error(err)
			} else if !tt.wantErr {
				assert.EqualValues(t, 1, tt.fields.documentsService.CreateRevisionCalled)
				assert.EqualValues(t, tt.want, got)
			}
		})
	}
}

func Test_documentsControllerImpl_ApproveRevision(t *testing.T) {
	type fields struct {
		documentsService *domainDocument.MockDocumentsService
	}
	tests := []struct {
		name    string
		fields  fields
		want    *apiDocument.Revision
		wantErr bool
	}{
		{
			"successful service return",
			fields{documentsService: &domainDocument.MockDocumentsService{}},
			&mockApiRevision,
			false,
		},
		{
			"version conflict",
			fields{documentsService: &domainDocument.MockDocumentsService{
				ApproveRevisionOverride: func() (*domainDocument.Revision, error) {
					return nil, domainDocument.InvalidVersion{ID: 1}
				},
			}},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &impl{
				documentsService: tt.fields.documentsService,
				documentsConfig:  documentsConfig,
			}
			got, err := c.ApproveRevision(context.Background(), "en-US", "Web/CSS/color", 1)
			assert.EqualValues(t, 1, tt.fields.documentsService.ApproveRevisionCalled)
			if err != nil && !tt.wantErr {
				t.Error(err)
			} else if !tt.wantErr {
				assert.EqualValues(t, tt.want, got)
			}
		})
	}
}

var documentsConfig = config.Documents{
	Defaults: config.DocumentsDefaults{
		ListPerPage: 25,
		ScrollSize:  500,
	},
}

var mockApiDocument = apiDocument.FromDomainDocument(&domainDocument.MockDomainDocument)
var mockApiRevision = apiDocument.FromDomainRevision(&domainDocument.MockDomainRevision)
