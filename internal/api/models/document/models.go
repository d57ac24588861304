// document holds the API models for Documents, Revisions and projected
// revision history. The fields translate closely to the domain models; the
// transient projection annotations (previous revision, translation parent)
// become plain nested JSON here.
package document

import (
	"time"

	"github.com/wikid/wikid/internal/api/models/common"
	"github.com/wikid/wikid/internal/domain/document"
	"github.com/wikid/wikid/internal/domain/locale"
)

type NewDocument struct {
	Slug     string      `json:"slug" binding:"required" example:"Web/CSS/color"`
	Locale   locale.Name `json:"locale" binding:"required,localeName" swaggertype:"string" example:"en-US"`
	Title    string      `json:"title" binding:"required" example:"color"`
	ParentID *string     `json:"parent_id,omitempty" example:"4425f11bb2224dbe9fa2f2dab55c5e5e"`
	Tags     []string    `json:"tags,omitempty" example:"CSS,Reference"`
	TopLevel bool        `json:"top_level,omitempty"`
}

type Document struct {
	ID                string          `json:"id" binding:"required"`
	Slug              string          `json:"slug" binding:"required" example:"Web/CSS/color"`
	Locale            locale.Name     `json:"locale" binding:"required" swaggertype:"string" example:"en-US"`
	Title             string          `json:"title" binding:"required" example:"color"`
	CurrentRevisionID *uint64         `json:"current_revision_id,omitempty"`
	ParentID          *string         `json:"parent_id,omitempty"`
	Tags              []string        `json:"tags,omitempty"`
	ReviewTags        []string        `json:"review_tags,omitempty"`
	LocalizationTags  []string        `json:"localization_tags,omitempty"`
	HasErrors         bool            `json:"has_errors,omitempty"`
	TopLevel          bool            `json:"top_level,omitempty"`
	Metadata          common.Metadata `json:"metadata" binding:"required"`
}

type NewRevision struct {
	Creator   string  `json:"creator" binding:"required" example:"jdoe"`
	Comment   string  `json:"comment,omitempty" example:"Fixed the examples"`
	Summary   string  `json:"summary,omitempty"`
	Content   string  `json:"content,omitempty"`
	BasedOnID *uint64 `json:"based_on_id,omitempty"`
}

// Revision as rendered in history listings. PreviousRevision is only ever one
// level deep: the linked revision itself never carries another link.
type Revision struct {
	ID               uint64    `json:"id" binding:"required"`
	DocumentID       string    `json:"document_id" binding:"required"`
	Creator          string    `json:"creator,omitempty"`
	Comment          string    `json:"comment,omitempty"`
	CreatedAt        time.Time `json:"created_at" binding:"required" swaggertype:"string" format:"date-time"`
	IsApproved       bool      `json:"is_approved"`
	BasedOnID        *uint64   `json:"based_on_id,omitempty"`
	PreviousRevision *Revision `json:"previous_revision,omitempty"`
}

// PageInfo describes the window a listing or history response covers
type PageInfo struct {
	Number  uint `json:"number" example:"1"`
	HasNext bool `json:"has_next"`
	// All is true when the whole sequence was returned in one batch
	All bool `json:"all,omitempty"`
}

// RevisionHistory is a projected history page: revisions most-recent-first,
// each with its previous approved revision; on the final page of a
// translation's history the last entry may be the parent-document revision
// the translation was based on.
type RevisionHistory struct {
	Revisions []Revision `json:"revisions"`
	Page      PageInfo   `json:"page"`
}

type DocumentList struct {
	Documents []Document `json:"documents"`
	Count     uint64     `json:"count"`
	Page      PageInfo   `json:"page"`
}

type TagList struct {
	Tags []string `json:"tags"`
	Page PageInfo `json:"page"`
}

// Converts an API model to the domain model
func (d *NewDocument) ToDomainNewDocument() document.NewDocument {
	var parentId *document.Id
	if d.ParentID != nil {
		id := document.Id(*d.ParentID)
		parentId = &id
	}
	tags := make([]document.Tag, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, document.Tag(t))
	}
	return document.NewDocument{
		Slug:     document.Slug(d.Slug),
		Locale:   d.Locale,
		Title:    document.Title(d.Title),
		ParentID: parentId,
		Tags:     tags,
		TopLevel: d.TopLevel,
	}
}

// Converts an API model to the domain model
func (r *NewRevision) ToDomainNewRevision() document.NewRevision {
	var basedOnId *document.RevisionId
	if r.BasedOnID != nil {
		id := document.RevisionId(*r.BasedOnID)
		basedOnId = &id
	}
	return document.NewRevision{
		Creator:   document.Creator(r.Creator),
		Comment:   document.Comment(r.Comment),
		Summary:   document.Summary(r.Summary),
		Content:   document.Content(r.Content),
		BasedOnID: basedOnId,
	}
}

// Converts a domain model to the API model
func FromDomainDocument(d *document.Document) Document {
	var currentRevisionId *uint64
	if d.CurrentRevisionID != nil {
		id := uint64(*d.CurrentRevisionID)
		currentRevisionId = &id
	}
	var parentId *string
	if d.ParentID != nil {
		id := string(*d.ParentID)
		parentId = &id
	}
	return Document{
		ID:                string(d.ID),
		Slug:              string(d.Slug),
		Locale:            d.Locale,
		Title:             string(d.Title),
		CurrentRevisionID: currentRevisionId,
		ParentID:          parentId,
		Tags:              tagsToStrings(d.Tags),
		ReviewTags:        tagsToStrings(d.ReviewTags),
		LocalizationTags:  tagsToStrings(d.LocalizationTags),
		HasErrors:         d.HasErrors,
		TopLevel:          d.TopLevel,
		Metadata: common.Metadata{
			CreatedAt:  time.Time(d.Metadata.CreatedAt),
			ModifiedAt: time.Time(d.Metadata.ModifiedAt),
			Version: common.Version{
				SeqNum:      uint64(d.Metadata.Version.SeqNum),
				PrimaryTerm: uint64(d.Metadata.Version.PrimaryTerm),
			},
		},
	}
}

// Converts a domain model to the API model, flattening the transient
// PreviousRevision annotation into a single nested level
func FromDomainRevision(r *document.Revision) Revision {
	out := Revision{
		ID:         uint64(r.ID),
		DocumentID: string(r.DocumentID),
		Creator:    string(r.Creator),
		Comment:    string(r.Comment),
		CreatedAt:  r.CreatedAt,
		IsApproved: r.IsApproved,
	}
	if r.BasedOnID != nil {
		id := uint64(*r.BasedOnID)
		out.BasedOnID = &id
	}
	if r.PreviousRevision != nil {
		prev := FromDomainRevision(r.PreviousRevision)
		prev.PreviousRevision = nil
		out.PreviousRevision = &prev
	}
	return out
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
