// Package manifest defines the publication model shared across the toolkit:
// reading-order links, author page lists, and locators.
package manifest

// Layout describes how a resource is laid out when rendered.
type Layout string

const (
	// LayoutReflowable resources flow into a variable number of pages;
	// their position count must be estimated.
	LayoutReflowable Layout = "reflowable"
	// LayoutFixed resources render as a single non-reflowing page and
	// always contribute exactly one position.
	LayoutFixed Layout = "fixed"
)

// Metadata holds publication-level metadata.
type Metadata struct {
	Title      string
	Authors    []string
	Language   string
	Identifier string
	Publisher  string
	Published  string
}

// Link is one entry in the publication's reading order. The href is unique
// within the publication but not across publications.
type Link struct {
	Href      string
	MediaType string
	Title     string
	Layout    Layout

	// OriginalLength is the declared pre-encryption byte length of the
	// resource, 0 when unknown.
	OriginalLength int64
	// ArchiveLength is the stored (compressed) size of the resource in
	// the container, 0 when unknown.
	ArchiveLength int64
}

// PageTarget is an author-declared pagination hint: a page label anchored to
// a location inside a resource.
type PageTarget struct {
	// Href targets a resource, optionally with a #fragment suffix.
	Href string
	// Label is the declared page number string, parsed as an integer by
	// the positions engine.
	Label string
}

// TOCEntry is one table-of-contents entry.
type TOCEntry struct {
	Title    string
	Href     string
	Children []TOCEntry
}
