package document

import (
	"context"
	"fmt"

	"github.com/wikid/wikid/internal/domain/locale"
)

// A Service that takes care of the persistence of Documents and their
// Revisions.
type Service interface {
	// Persists the given NewDocument.
	//
	// Errors out with AlreadyExists if a Document with the same slug and
	// locale is already persisted.
	Create(ctx context.Context, newDocument *NewDocument) (*Document, error)

	// Retrieves a Document by locale and slug, errors out with NotFound if
	// there is no such Document.
	Get(ctx context.Context, loc locale.Name, slug Slug) (*Document, error)

	// List returns one page of Documents in the given locale, narrowed by the
	// given filter. Pages are 1-based and sized by the service's configured
	// listing page size.
	List(ctx context.Context, loc locale.Name, filter ListFilter, page uint) (*Listing, error)

	// Tags returns all Document tags in use, ordered by name.
	Tags(ctx context.Context) ([]Tag, error)

	// Persists the given NewRevision for the given Document, assigning it the
	// next Revision id.
	//
	// BasedOnID is only honoured when the Document is a translation; it then
	// must reference a Revision of the parent Document, otherwise the call
	// errors out with InvalidBasedOn.
	CreateRevision(ctx context.Context, doc *Document, newRevision *NewRevision) (*Revision, error)

	// Retrieves a single Revision by id.
	GetRevision(ctx context.Context, id RevisionId) (*Revision, error)

	// Revisions returns the full Revision snapshot for the given Document,
	// ordered ascending by (created_at, id).
	//
	// If the earliest Revision carries a BasedOnID, the referenced
	// parent-document Revision is resolved onto its transient BasedOn field
	// so that callers can project translation history without further
	// round trips. A dangling BasedOnID (orphaned translation) is not an
	// error; BasedOn is simply left nil.
	Revisions(ctx context.Context, docId Id) ([]Revision, error)

	// ApproveRevision marks the given Revision as approved and moves the
	// Document's current revision pointer to it. Uses optimistic concurrency;
	// errors out with InvalidVersion on conflicting concurrent updates.
	ApproveRevision(ctx context.Context, doc *Document, id RevisionId) (*Revision, error)

	// This refreshes the backing indices so that the next search is
	// guaranteed to see the latest writes.
	//
	// Note that this method is meant to be idempotent, so errors can be
	// ignored or handled by simply logging
	Refresh(ctx context.Context) error
}

// <-- Domain Errors

// NotFound is returned when no Document exists for a locale and slug
type NotFound struct {
	Slug   Slug
	Locale locale.Name
}

func (e NotFound) Error() string {
	return fmt.Sprintf("Could not find [%v] in locale [%v]", e.Slug, e.Locale)
}

// AlreadyExists is returned when the service tries to create a Document, but
// there already exists one with the same slug and locale
type AlreadyExists struct {
	Slug   Slug
	Locale locale.Name
}

func (e AlreadyExists) Error() string {
	return fmt.Sprintf("Document [%v] already exists in locale [%v]", e.Slug, e.Locale)
}

// NoCurrentRevision is returned when a Document exists but has no current
// (publishable) revision; callers surface it as not-found
type NoCurrentRevision struct {
	Slug   Slug
	Locale locale.Name
}

func (e NoCurrentRevision) Error() string {
	return fmt.Sprintf("Document [%v] in locale [%v] has no current revision", e.Slug, e.Locale)
}

// RevisionNotFound is returned when no Revision exists for an id
type RevisionNotFound struct {
	ID RevisionId
}

func (e RevisionNotFound) Error() string {
	return fmt.Sprintf("Could not find revision [%v]", e.ID)
}

// InvalidBasedOn is returned when a new Revision references a based-on
// Revision that does not belong to the Document's parent
type InvalidBasedOn struct {
	BasedOnID RevisionId
	ParentID  *Id
}

func (e InvalidBasedOn) Error() string {
	return fmt.Sprintf("Revision [%v] does not belong to the parent document [%v]", e.BasedOnID, e.ParentID)
}

// InvalidVersion is returned when the version is invalid (stale concurrent
// update)
type InvalidVersion struct {
	ID RevisionId
}

func (e InvalidVersion) Error() string {
	return fmt.Sprintf("Version provided did not match persisted version for revision [%v]", e.ID)
}

// Invalid data
type InvalidPersistedData struct {
	PersistedData interface{}
}

func (e InvalidPersistedData) Error() string {
	return fmt.Sprintf("Invalid persisted data [%v]", e.PersistedData)
}

//     Errors -->
