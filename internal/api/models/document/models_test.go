package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wikid/wikid/internal/domain/document"
)

func Test_NewDocument_ToDomainNewDocument(t *testing.T) {
	parentId := "parent-id"
	apiModel := NewDocument{
		Slug:     "Web/CSS/color",
		Locale:   "en-US",
		Title:    "color",
		ParentID: &parentId,
		Tags:     []string{"CSS", "Reference"},
		TopLevel: true,
	}
	got := apiModel.ToDomainNewDocument()
	assert.EqualValues(t, "Web/CSS/color", got.Slug)
	assert.EqualValues(t, "en-US", got.Locale)
	assert.EqualValues(t, "color", got.Title)
	if assert.NotNil(t, got.ParentID) {
		assert.EqualValues(t, "parent-id", *got.ParentID)
	}
	assert.EqualValues(t, []document.Tag{"CSS", "Reference"}, got.Tags)
	assert.True(t, got.TopLevel)
}

func Test_NewRevision_ToDomainNewRevision(t *testing.T) {
	basedOn := uint64(42)
	apiModel := NewRevision{
		Creator:   "jdoe",
		Comment:   "first translation",
		BasedOnID: &basedOn,
	}
	got := apiModel.ToDomainNewRevision()
	assert.EqualValues(t, "jdoe", got.Creator)
	if assert.NotNil(t, got.BasedOnID) {
		assert.EqualValues(t, 42, *got.BasedOnID)
	}
}

func Test_FromDomainRevision(t *testing.T) {
	now := time.Now().UTC()
	prev := document.Revision{
		ID:         1,
		DocumentID: "doc",
		CreatedAt:  now.Add(-time.Hour),
		IsApproved: true,
	}
	domainRev := document.Revision{
		ID:               3,
		DocumentID:       "doc",
		Creator:          "jdoe",
		CreatedAt:        now,
		IsApproved:       true,
		PreviousRevision: &prev,
	}
	got := FromDomainRevision(&domainRev)
	assert.EqualValues(t, 3, got.ID)
	if assert.NotNil(t, got.PreviousRevision) {
		assert.EqualValues(t, 1, got.PreviousRevision.ID)
		// the link is one level deep, never a chain
		assert.Nil(t, got.PreviousRevision.PreviousRevision)
	}
}

func Test_FromDomainRevision_withoutPrevious(t *testing.T) {
	domainRev := document.Revision{
		ID:         1,
		DocumentID: "doc",
		CreatedAt:  time.Now().UTC(),
	}
	got := FromDomainRevision(&domainRev)
	assert.Nil(t, got.PreviousRevision)
	assert.Nil(t, got.BasedOnID)
}

func Test_FromDomainDocument(t *testing.T) {
	currentRev := document.RevisionId(9)
	domainDoc := document.Document{
		ID:                "abc",
		Slug:              "Web/CSS/color",
		Locale:            "fr",
		Title:             "color",
		CurrentRevisionID: &currentRev,
		Tags:              []document.Tag{"CSS"},
	}
	got := FromDomainDocument(&domainDoc)
	assert.EqualValues(t, "abc", got.ID)
	assert.EqualValues(t, "fr", got.Locale)
	if assert.NotNil(t, got.CurrentRevisionID) {
		assert.EqualValues(t, 9, *got.CurrentRevisionID)
	}
	assert.Nil(t, got.ParentID)
	assert.EqualValues(t, []string{"CSS"}, got.Tags)
}
