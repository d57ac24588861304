// history projects a Document's Revision snapshot into the ordered, paginated,
// predecessor-annotated sequence that the history page renders.
//
// Everything in here is pure: inputs are never mutated, annotations live only
// on the returned copies, and no I/O happens. Callers fetch the snapshot (see
// document.Service.Revisions) and hand it in whole.
package history

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/wikid/wikid/internal/domain/document"
)

// PerPage is a history page size
type PerPage uint

const (
	// DefaultPerPage is used when no limit is requested at all
	DefaultPerPage PerPage = 10
	// DocumentsPerPage is the fallback when a requested limit fails to parse
	// as a positive integer. Same default as Document listings.
	DocumentsPerPage PerPage = 100
)

// AllLimit is the magic limit value that requests the entire history in one
// unpaginated batch. Gated on Request.Authorized.
const AllLimit = "all"

// Request carries the pagination inputs for a single projection. Authorized
// is an explicit capability: true iff the requester may retrieve the complete
// unpaginated history.
type Request struct {
	// 1-based page index; 0 is treated as 1
	Page uint
	// the raw requested page size; may be empty, AllLimit, or any string
	Limit string
	Authorized bool
}

// Page is one projected window of history, ready for display
type Page struct {
	// descending by (created_at, id), each with PreviousRevision filled in
	// where one exists; on the final page of a translation's history, may be
	// followed by one foreign Revision (the translation source)
	Revisions []document.Revision
	Number    uint
	PerPage   PerPage
	HasNext   bool
	// All is true when the whole history was returned in one batch
	All bool
}

// Link returns a copy of the given Revisions with PreviousRevision populated
// on every Revision that has a qualifying predecessor: approved, not itself,
// and created strictly earlier.
//
// Candidates are scanned in ascending (created_at, id) order and the first
// qualifying one wins, so when several approved revisions precede a revision,
// the link points at the *earliest* of them, not the nearest. That matches
// the behaviour history pages have always had; do not "fix" it to
// nearest-preceding without changing the contract here and in the tests.
//
// O(n²) over one Document's revisions, which stay in the tens to low
// hundreds. Input order is irrelevant and preserved.
func Link(revs []document.Revision) []document.Revision {
	out := make([]document.Revision, len(revs))
	copy(out, revs)
	for i := range out {
		// recomputed from scratch; stale annotations on the input don't count
		out[i].PreviousRevision = nil
	}

	candidates := sortedAscending(out)
	for i := range out {
		for j := range candidates {
			if !candidates[j].IsApproved || candidates[j].ID == out[i].ID {
				continue
			}
			if candidates[j].CreatedAt.Before(out[i].CreatedAt) {
				prev := candidates[j]
				out[i].PreviousRevision = &prev
				break
			}
		}
	}
	return out
}

// SortedDescending returns a copy of the given Revisions in display order:
// most recent first, ids descending as the tiebreak for equal timestamps.
func SortedDescending(revs []document.Revision) []document.Revision {
	out := sortedAscending(revs)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func sortedAscending(revs []document.Revision) []document.Revision {
	out := make([]document.Revision, len(revs))
	copy(out, revs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Paginate slices one display window out of the full, descending-ordered,
// linked sequence.
//
// Errors out with Unauthorized when AllLimit is requested without
// authorization (before touching any revision data), and with Empty when
// there are no revisions at all. A page index past the end clamps to the
// last page rather than erroring.
func Paginate(ordered []document.Revision, req Request) (*Page, error) {
	if req.Limit == AllLimit && !req.Authorized {
		return nil, Unauthorized{Reason: ReasonLoginRequired}
	}
	if len(ordered) == 0 {
		return nil, Empty{}
	}
	if req.Limit == AllLimit {
		all := make([]document.Revision, len(ordered))
		copy(all, ordered)
		return &Page{
			Revisions: all,
			Number:    1,
			PerPage:   PerPage(len(ordered)),
			HasNext:   false,
			All:       true,
		}, nil
	}

	perPage := parsePerPage(req.Limit)
	number := req.Page
	if number == 0 {
		number = 1
	}
	lastPage := uint((len(ordered)-1)/int(perPage)) + 1
	if number > lastPage {
		number = lastPage
	}
	start := (number - 1) * uint(perPage)
	end := start + uint(perPage)
	if end > uint(len(ordered)) {
		end = uint(len(ordered))
	}
	window := make([]document.Revision, end-start)
	copy(window, ordered[start:end])
	return &Page{
		Revisions: window,
		Number:    number,
		PerPage:   perPage,
		HasNext:   end < uint(len(ordered)),
		All:       false,
	}, nil
}

// parsePerPage recovers locally from bad input: an absent limit means the
// documented default, anything unparseable or non-positive falls back to the
// listing page size. Neither case surfaces an error.
func parsePerPage(limit string) PerPage {
	if limit == "" {
		return DefaultPerPage
	}
	parsed, err := strconv.ParseUint(limit, 10, 32)
	if err != nil || parsed == 0 {
		return DocumentsPerPage
	}
	return PerPage(parsed)
}

// AttachTranslationParent returns the page's revisions, with the revision the
// translation's first revision was based on appended when all of these hold:
//
//   - the page is the last one (or the whole history was returned), so the
//     chronologically earliest revision is visible
//   - the Document is a translation (has a parent)
//   - the earliest revision's BasedOn is resolved; an orphaned translation
//     (deleted source revision) appends nothing and is not an error
//
// ordered must be the full descending sequence the page was sliced from; the
// earliest revision is its last element. The appended Revision belongs to a
// different Document and never carries a PreviousRevision link.
func AttachTranslationParent(doc *document.Document, pg *Page, ordered []document.Revision) []document.Revision {
	out := make([]document.Revision, len(pg.Revisions))
	copy(out, pg.Revisions)

	if pg.HasNext && !pg.All {
		return out
	}
	if doc == nil || !doc.IsTranslation() || len(ordered) == 0 {
		return out
	}
	earliest := ordered[len(ordered)-1]
	if earliest.BasedOn == nil {
		return out
	}
	return append(out, *earliest.BasedOn)
}

// Project runs the whole projection for one Document: predecessor linking,
// display ordering, pagination, and the translation-parent append.
//
// Checks happen in a fixed order so that failures don't leak data: a
// Document with no current revision is not-found before anything else, an
// unauthorized AllLimit request is rejected before the revisions are even
// looked at, and only then does an empty snapshot turn into Empty.
func Project(doc *document.Document, revs []document.Revision, req Request) (*Page, error) {
	if doc.CurrentRevisionID == nil {
		return nil, document.NoCurrentRevision{Slug: doc.Slug, Locale: doc.Locale}
	}
	if req.Limit == AllLimit && !req.Authorized {
		return nil, Unauthorized{Reason: ReasonLoginRequired}
	}
	ordered := SortedDescending(Link(revs))
	pg, err := Paginate(ordered, req)
	if err != nil {
		return nil, err
	}
	pg.Revisions = AttachTranslationParent(doc, pg, ordered)
	return pg, nil
}

// <-- Domain Errors

// ReasonLoginRequired is the machine-readable reason attached to an
// Unauthorized full-history request
var ReasonLoginRequired = "revisions_login_required"

// Unauthorized is returned when the complete unpaginated history is requested
// without authorization
type Unauthorized struct {
	Reason string
}

func (e Unauthorized) Error() string {
	return fmt.Sprintf("Retrieving the complete history requires authentication [%v]", e.Reason)
}

// Empty is returned when a Document's revision snapshot has no revisions in
// it; callers surface it as not-found
type Empty struct {
}

func (e Empty) Error() string {
	return "The document has no revisions to list"
}

//     Errors -->
