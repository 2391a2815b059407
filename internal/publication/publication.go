// Package publication assembles the publication model from an EPUB container
// and wires the services that operate on it.
package publication

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/ALC-PRESS-INC/folio/internal/epub"
	"github.com/ALC-PRESS-INC/folio/internal/fetcher"
	"github.com/ALC-PRESS-INC/folio/internal/manifest"
	"github.com/ALC-PRESS-INC/folio/internal/positions"
)

// Publication is one open publication session. It owns the container handle
// and the per-session services; Close releases the container.
type Publication struct {
	Metadata     manifest.Metadata
	ReadingOrder []manifest.Link
	PageList     []manifest.PageTarget
	TOC          []manifest.TOCEntry

	container *epub.EPUBReader
	cover     *epub.CoverInfo
	positions *positions.Service
}

// OpenOptions configures how a publication is opened. The zero value opens
// with the default archive-entry-length estimation strategy.
type OpenOptions struct {
	Strategy positions.Strategy
}

// Open opens an EPUB file with default options.
func Open(path string) (*Publication, error) {
	return OpenWithOptions(path, OpenOptions{})
}

// OpenWithOptions opens an EPUB file and builds the publication model:
// container → OPF → declared lengths → reading order → page list → TOC.
// Optional metadata that fails to load degrades with a warning; only a
// broken container or OPF is fatal.
func OpenWithOptions(path string, opts OpenOptions) (*Publication, error) {
	reader, err := epub.Open(path)
	if err != nil {
		return nil, err
	}

	pub, err := build(reader, opts)
	if err != nil {
		reader.Close()
		return nil, err
	}
	return pub, nil
}

func build(reader *epub.EPUBReader, opts OpenOptions) (*Publication, error) {
	opfContent, err := reader.ReadFile(reader.OPFPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read OPF: %w", err)
	}
	opf, err := epub.ParseOPF(opfContent, filepath.Dir(reader.OPFPath()))
	if err != nil {
		return nil, err
	}

	originalLengths, err := epub.LoadEncryption(reader)
	if err != nil {
		log.Printf("warning: failed to load encryption metadata: %v", err)
		originalLengths = map[string]int64{}
	}

	nav, err := epub.LoadNav(reader, opf)
	if err != nil {
		log.Printf("warning: failed to load nav document: %v", err)
	}
	ncx, err := epub.LoadNCX(reader, opf)
	if err != nil {
		log.Printf("warning: failed to load NCX: %v", err)
	}

	toc := buildTOC(nav, ncx)
	titles := tocTitles(toc)

	pub := &Publication{
		Metadata:     buildMetadata(&opf.Metadata),
		ReadingOrder: buildReadingOrder(reader, opf, originalLengths, titles),
		PageList:     buildPageList(nav, ncx),
		TOC:          toc,
		container:    reader,
		cover:        opf.DetectCover(),
	}

	pub.positions = positions.NewService(
		pub.ReadingOrder,
		pub.PageList,
		fetcher.NewArchiveFetcher(reader),
		opts.Strategy,
	)
	return pub, nil
}

// PositionsByReadingOrder returns the publication's positions table, grouped
// by reading-order resource. Computed on first call, cached for the session.
func (p *Publication) PositionsByReadingOrder(ctx context.Context) ([][]manifest.Locator, error) {
	return p.positions.PositionsByReadingOrder(ctx)
}

// Positions returns the positions table flattened into reading order.
func (p *Publication) Positions(ctx context.Context) ([]manifest.Locator, error) {
	return p.positions.Positions(ctx)
}

// Close releases the underlying container. The positions table, if already
// computed, stays valid: it holds no container references.
func (p *Publication) Close() error {
	return p.container.Close()
}

// buildMetadata maps OPF metadata onto the publication model.
func buildMetadata(md *epub.Metadata) manifest.Metadata {
	out := manifest.Metadata{
		Title:      md.Title,
		Language:   md.Language,
		Identifier: md.Identifier,
		Publisher:  md.Publisher,
		Published:  md.Date,
	}
	for _, c := range md.Creators {
		out.Authors = append(out.Authors, c.Name)
	}
	return out
}

// buildReadingOrder converts the spine into reading-order links, resolving
// each item's layout hint and declared lengths. Spine entries whose idref is
// missing from the manifest are dropped with a warning.
func buildReadingOrder(reader *epub.EPUBReader, opf *epub.OPF, originalLengths map[string]int64, titles map[string]string) []manifest.Link {
	links := make([]manifest.Link, 0, len(opf.Spine))
	for _, item := range opf.Spine {
		mi, ok := opf.Manifest[item.IDRef]
		if !ok {
			log.Printf("warning: spine itemref %q not in manifest", item.IDRef)
			continue
		}

		layout := manifest.LayoutReflowable
		if opf.ItemLayout(item) == epub.RenditionLayoutPrePaginated {
			layout = manifest.LayoutFixed
		}

		link := manifest.Link{
			Href:           mi.Href,
			MediaType:      mi.MediaType,
			Title:          titles[mi.Href],
			Layout:         layout,
			OriginalLength: originalLengths[mi.Href],
		}
		if info, ok := reader.EntryInfo(mi.Href); ok {
			link.ArchiveLength = info.CompressedSize
		}
		links = append(links, link)
	}
	return links
}

// buildPageList prefers the EPUB 3.0 page-list nav, falling back to the NCX
// pageList, both kept in declaration order.
func buildPageList(nav *epub.Nav, ncx *epub.NCX) []manifest.PageTarget {
	var targets []epub.PageTarget
	switch {
	case nav != nil && len(nav.PageTargets) > 0:
		targets = nav.PageTargets
	case ncx != nil:
		targets = ncx.PageTargets
	}

	pageList := make([]manifest.PageTarget, 0, len(targets))
	for _, t := range targets {
		href := t.ContentPath
		if t.Fragment != "" {
			href += "#" + t.Fragment
		}
		pageList = append(pageList, manifest.PageTarget{
			Href:  href,
			Label: t.Value,
		})
	}
	return pageList
}

// buildTOC prefers the EPUB 3.0 toc nav, falling back to the NCX navMap.
func buildTOC(nav *epub.Nav, ncx *epub.NCX) []manifest.TOCEntry {
	switch {
	case nav != nil && len(nav.TOC) > 0:
		return tocFromNavPoints(nav.TOC)
	case ncx != nil:
		return tocFromNavPoints(ncx.NavPoints)
	}
	return nil
}

func tocFromNavPoints(points []epub.NavPoint) []manifest.TOCEntry {
	var entries []manifest.TOCEntry
	for _, np := range points {
		href := np.ContentPath
		if np.Fragment != "" {
			href += "#" + np.Fragment
		}
		entries = append(entries, manifest.TOCEntry{
			Title:    np.Label,
			Href:     href,
			Children: tocFromNavPoints(np.Children),
		})
	}
	return entries
}

// tocTitles maps fragment-free resource paths to their first TOC title, so
// reading-order links can carry a human-readable title.
func tocTitles(entries []manifest.TOCEntry) map[string]string {
	titles := make(map[string]string)
	var walk func([]manifest.TOCEntry)
	walk = func(list []manifest.TOCEntry) {
		for _, e := range list {
			path := e.Href
			if idx := strings.Index(path, "#"); idx >= 0 {
				path = path[:idx]
			}
			if path != "" {
				if _, seen := titles[path]; !seen {
					titles[path] = e.Title
				}
			}
			walk(e.Children)
		}
	}
	walk(entries)
	return titles
}
