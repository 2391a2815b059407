// Package positions computes a publication's global positions table: a
// stable, reproducible sequence of locations usable for page numbers,
// progress bars and bookmarks, independent of any rendering engine.
package positions

import "github.com/ALC-PRESS-INC/folio/internal/manifest"

// DefaultPageLength is the bytes-per-page divisor used when a strategy is
// constructed with a non-positive page length.
const DefaultPageLength int64 = 1024

type strategyKind int

const (
	archiveEntryLength strategyKind = iota
	originalLength
)

// Strategy selects how a reflowable resource's byte length is turned into a
// position count. The zero value is the archive-entry-length strategy with
// the default page length.
type Strategy struct {
	kind       strategyKind
	pageLength int64
}

// ArchiveEntryLengthStrategy estimates from the resource's stored size in
// the container, falling back to the observed byte length.
func ArchiveEntryLengthStrategy(pageLength int64) Strategy {
	return Strategy{kind: archiveEntryLength, pageLength: pageLength}
}

// OriginalLengthStrategy estimates from the resource's declared
// pre-encryption length, falling back to the observed byte length.
func OriginalLengthStrategy(pageLength int64) Strategy {
	return Strategy{kind: originalLength, pageLength: pageLength}
}

// positionCount returns the number of positions a reflowable resource spans.
// observed is the byte length reported by the resource handle, 0 when
// unknown. The result is never less than 1: a resource with unknown or zero
// length still counts as one position.
func (s Strategy) positionCount(link manifest.Link, observed int64) int {
	var length int64
	switch s.kind {
	case originalLength:
		length = link.OriginalLength
	case archiveEntryLength:
		length = link.ArchiveLength
	}
	if length <= 0 {
		length = observed
	}
	if length <= 0 {
		return 1
	}

	pageLength := s.pageLength
	if pageLength <= 0 {
		pageLength = DefaultPageLength
	}

	count := (length + pageLength - 1) / pageLength
	if count < 1 {
		count = 1
	}
	return int(count)
}
