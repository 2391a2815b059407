package positions

import (
	"strconv"
	"strings"

	"github.com/ALC-PRESS-INC/folio/internal/manifest"
)

// collectPageLabels gathers the integer page labels targeting one resource,
// in page-list declaration order. An entry targets the resource when its
// href, with any #fragment suffix stripped, equals the resource href exactly;
// matching on the bare path avoids over-collecting across sibling resources
// whose paths share a prefix (chapter1.xhtml vs chapter10.xhtml).
//
// ok is false when any matching label fails to parse as an integer, in which
// case the whole set is rejected and the caller falls back to pure
// estimation for the resource.
func collectPageLabels(pageList []manifest.PageTarget, href string) (labels []int, ok bool) {
	for _, target := range pageList {
		path := target.Href
		if idx := strings.Index(path, "#"); idx >= 0 {
			path = path[:idx]
		}
		if path != href {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(target.Label))
		if err != nil {
			return nil, false
		}
		labels = append(labels, n)
	}
	return labels, true
}

// pageIndices maps collected labels to the global indices emitted for the
// resource. Numbering starts at the first declared label. Integers inside
// the closed min..max label range with no corresponding entry are skipped
// numbers (author-declared blank or removed pages): emission advances past
// them, so exactly len(labels) positions come out.
func pageIndices(labels []int) []int {
	if len(labels) == 0 {
		return nil
	}

	skipped := skippedNumbers(labels)

	indices := make([]int, 0, len(labels))
	candidate := labels[0]
	for len(indices) < len(labels) {
		if !skipped[candidate] {
			indices = append(indices, candidate)
		}
		candidate++
	}
	return indices
}

// skippedNumbers returns the integers inside the closed min..max span of
// labels that are absent from the label set.
func skippedNumbers(labels []int) map[int]bool {
	min, max := labels[0], labels[0]
	present := make(map[int]bool, len(labels))
	for _, n := range labels {
		present[n] = true
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}

	skipped := make(map[int]bool)
	for n := min; n <= max; n++ {
		if !present[n] {
			skipped[n] = true
		}
	}
	return skipped
}
