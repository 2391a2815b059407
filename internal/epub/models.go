package epub

// OPF represents the parsed Open Package Format document
type OPF struct {
	Metadata      Metadata
	Manifest      map[string]ManifestItem // id -> item
	ManifestOrder []string                // manifest ids in declaration order
	Spine         []SpineItem
	Guide         []GuideReference
	NCXPath       string
	NavPath       string // EPUB 3.0 navigation document (properties="nav")
}

// Metadata represents the metadata section of the OPF
type Metadata struct {
	Title           string
	Creators        []Creator
	Language        string
	Identifier      string
	Publisher       string
	Date            string
	Description     string
	Subjects        []string
	Rights          string
	CoverID         string // EPUB 2.0 cover image manifest item ID (from meta name="cover")
	RenditionLayout string // publication-wide rendition:layout value
}

// Creator represents a creator (author, editor, etc.) of the book
type Creator struct {
	Name string
	Role string // e.g., "aut" for author, "edt" for editor
	Lang string // xml:lang attribute
}

// ManifestItem represents an item in the manifest
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties []string
}

// SpineItem represents an item reference in the spine
type SpineItem struct {
	IDRef      string
	Linear     bool
	Properties []string
}

// GuideReference represents a reference in the EPUB 2.0 guide section
type GuideReference struct {
	Type  string
	Title string
	Href  string
}

// Rendition layout values as they appear in OPF metadata and itemref properties.
const (
	RenditionLayoutReflowable   = "reflowable"
	RenditionLayoutPrePaginated = "pre-paginated"
)

// ItemLayout resolves the rendition layout for a spine item. A per-itemref
// property override wins over the publication-wide rendition:layout meta;
// reflowable is the default when neither is declared.
func (opf *OPF) ItemLayout(item SpineItem) string {
	for _, prop := range item.Properties {
		switch prop {
		case "rendition:layout-pre-paginated":
			return RenditionLayoutPrePaginated
		case "rendition:layout-reflowable":
			return RenditionLayoutReflowable
		}
	}
	if opf.Metadata.RenditionLayout == RenditionLayoutPrePaginated {
		return RenditionLayoutPrePaginated
	}
	return RenditionLayoutReflowable
}
