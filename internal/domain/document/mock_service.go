package document

import (
	"context"

	"github.com/wikid/wikid/internal/domain/locale"
)

var MockDomainRevisionId = RevisionId(1)

var MockDomainDocument = Document{
	ID:                "mock",
	Slug:              "mock-doc",
	Locale:            "en-US",
	Title:             "Mock",
	CurrentRevisionID: &MockDomainRevisionId,
}

var MockDomainRevision = Revision{
	ID:         MockDomainRevisionId,
	DocumentID: "mock",
	IsApproved: true,
}

type MockDocumentsService struct {
	CreateCalled            uint
	CreateOverride          func() (*Document, error)
	GetCalled               uint
	GetOverride             func() (*Document, error)
	ListCalled              uint
	ListOverride            func() (*Listing, error)
	TagsCalled              uint
	TagsOverride            func() ([]Tag, error)
	CreateRevisionCalled    uint
	CreateRevisionOverride  func() (*Revision, error)
	GetRevisionCalled       uint
	GetRevisionOverride     func() (*Revision, error)
	RevisionsCalled         uint
	RevisionsOverride       func() ([]Revision, error)
	ApproveRevisionCalled   uint
	ApproveRevisionOverride func() (*Revision, error)
	RefreshCalled           uint
	RefreshOverride         func() error
}

func (m *MockDocumentsService) Create(ctx context.Context, newDocument *NewDocument) (*Document, error) {
	m.CreateCalled++
	if m.CreateOverride != nil {
		return m.CreateOverride()
	} else {
		return &MockDomainDocument, nil
	}
}

func (m *MockDocumentsService) Get(ctx context.Context, loc locale.Name, slug Slug) (*Document, error) {
	m.GetCalled++
	if m.GetOverride != nil {
		return m.GetOverride()
	} else {
		return &MockDomainDocument, nil
	}
}

func (m *MockDocumentsService) List(ctx context.Context, loc locale.Name, filter ListFilter, page uint) (*Listing, error) {
	m.ListCalled++
	if m.ListOverride != nil {
		return m.ListOverride()
	} else {
		return &Listing{
			Documents: []Document{MockDomainDocument},
			Count:     1,
			Page:      1,
			HasNext:   false,
		}, nil
	}
}

func (m *MockDocumentsService) Tags(ctx context.Context) ([]Tag, error) {
	m.TagsCalled++
	if m.TagsOverride != nil {
		return m.TagsOverride()
	} else {
		return []Tag{"mock-tag"}, nil
	}
}

func (m *MockDocumentsService) CreateRevision(ctx context.Context, doc *Document, newRevision *NewRevision) (*Revision, error) {
	m.CreateRevisionCalled++
	if m.CreateRevisionOverride != nil {
		return m.CreateRevisionOverride()
	} else {
		return &MockDomainRevision, nil
	}
}

func (m *MockDocumentsService) GetRevision(ctx context.Context, id RevisionId) (*Revision, error) {
	m.GetRevisionCalled++
	if m.GetRevisionOverride != nil {
		return m.GetRevisionOverride()
	} else {
		return &MockDomainRevision, nil
	}
}

func (m *MockDocumentsService) Revisions(ctx context.Context, docId Id) ([]Revision, error) {
	m.RevisionsCalled++
	if m.RevisionsOverride != nil {
		return m.RevisionsOverride()
	} else {
		return []Revision{MockDomainRevision}, nil
	}
}

func (m *MockDocumentsService) ApproveRevision(ctx context.Context, doc *Document, id RevisionId) (*Revision, error) {
	m.ApproveRevisionCalled++
	if m.ApproveRevisionOverride != nil {
		return m.ApproveRevisionOverride()
	} else {
		return &MockDomainRevision, nil
	}
}

func (m *MockDocumentsService) Refresh(ctx context.Context) error {
	m.RefreshCalled++
	if m.RefreshOverride != nil {
		return m.RefreshOverride()
	} else {
		return nil
	}
}
