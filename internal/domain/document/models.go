package document

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wikid/wikid/internal/domain/locale"
	"github.com/wikid/wikid/internal/domain/metadata"
)

// Id for a Document that has been persisted
type Id string

// Generates a random document id
func GenerateId() Id {
	return Id(strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// Slug is the path-ish name a Document is addressed by, unique per locale
type Slug string

type Title string

// Tag on a Document; also used for review and localization tags
type Tag string

// RevisionId identifies a Revision. Ids are assigned monotonically at creation
// time, so they double as a creation-order tiebreak when timestamps collide.
type RevisionId uint64

type Creator string
type Comment string
type Summary string
type Content string

// A Document that has yet to be created
type NewDocument struct {
	Slug     Slug
	Locale   locale.Name
	Title    Title
	ParentID *Id
	Tags     []Tag
	TopLevel bool
}

// A Document that has been persisted.
//
// A Document with a non-nil ParentID is a translation of the parent (original
// language) Document. A Document with a nil CurrentRevisionID has no
// publishable history.
type Document struct {
	ID                Id
	Slug              Slug
	Locale            locale.Name
	Title             Title
	CurrentRevisionID *RevisionId
	ParentID          *Id
	Tags              []Tag
	ReviewTags        []Tag
	LocalizationTags  []Tag
	HasErrors         bool
	TopLevel          bool
	Metadata          metadata.Metadata
}

// IsTranslation returns true if this Document was translated from another one
func (d *Document) IsTranslation() bool {
	return d.ParentID != nil
}

// A Revision that has yet to be created.
//
// BasedOnID is only honoured when the owning Document is a translation; it
// must then point at a Revision of the parent Document.
type NewRevision struct {
	Creator   Creator
	Comment   Comment
	Summary   Summary
	Content   Content
	BasedOnID *RevisionId
}

// Revision is one saved version of a Document's content.
//
// PreviousRevision and BasedOn are transient: they are never persisted and are
// only filled in on projected results (see the history package and
// Service.Revisions).
type Revision struct {
	ID         RevisionId
	DocumentID Id
	Creator    Creator
	Comment    Comment
	Summary    Summary
	Content    Content
	CreatedAt  time.Time
	IsApproved bool
	BasedOnID  *RevisionId
	Metadata   metadata.Metadata

	// The nearest (earliest qualifying) approved Revision of the same
	// Document that precedes this one. Projection-only.
	PreviousRevision *Revision
	// The parent-document Revision this one was translated from, resolved
	// from BasedOnID. Projection-only.
	BasedOn *Revision
}

// ListFilter narrows a Document listing. Zero value lists everything in a
// locale. At most one of the tag filters is expected to be set at a time;
// behaviour with several set is an AND.
type ListFilter struct {
	Tag             *Tag
	ReviewTag       *Tag
	LocalizationTag *Tag
	Errors          bool
	NoParent        bool
	TopLevel        bool
}

// Listing is one page of a filtered Document listing
type Listing struct {
	Documents []Document
	Count     uint64
	Page      uint
	HasNext   bool
}
