package epub

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// NCX represents the parsed navigation control structure from an NCX document.
type NCX struct {
	UID         string
	Depth       int
	DocTitle    string
	NavPoints   []NavPoint
	PageTargets []PageTarget
}

// NavPoint represents a single navigation point in the table of contents.
type NavPoint struct {
	ID          string
	PlayOrder   int
	Label       string
	ContentPath string // fragment-free, absolute path within EPUB
	Fragment    string // fragment identifier (without #)
	Children    []NavPoint
}

// PageTarget represents a single pageList entry: an author-declared page
// number anchored to a location in a content document.
type PageTarget struct {
	ID          string
	Type        string // "normal", "front", "special"
	Value       string // page label as declared
	ContentPath string // fragment-free, absolute path within EPUB
	Fragment    string // fragment identifier (without #)
}

// ncxDocument represents the NCX XML structure
type ncxDocument struct {
	XMLName  xml.Name `xml:"ncx"`
	Head     ncxHead  `xml:"head"`
	DocTitle struct {
		Text string `xml:"text"`
	} `xml:"docTitle"`
	NavMap struct {
		NavPoints []ncxNavPoint `xml:"navPoint"`
	} `xml:"navMap"`
	PageList struct {
		PageTargets []ncxPageTarget `xml:"pageTarget"`
	} `xml:"pageList"`
}

type ncxHead struct {
	Meta []struct {
		Name    string `xml:"name,attr"`
		Content string `xml:"content,attr"`
	} `xml:"meta"`
}

type ncxNavPoint struct {
	ID        string `xml:"id,attr"`
	PlayOrder string `xml:"playOrder,attr"`
	NavLabel  struct {
		Text string `xml:"text"`
	} `xml:"navLabel"`
	Content struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
	Children []ncxNavPoint `xml:"navPoint"`
}

type ncxPageTarget struct {
	ID       string `xml:"id,attr"`
	Type     string `xml:"type,attr"`
	Value    string `xml:"value,attr"`
	NavLabel struct {
		Text string `xml:"text"`
	} `xml:"navLabel"`
	Content struct {
		Src string `xml:"src,attr"`
	} `xml:"content"`
}

// ParseNCX parses NCX file content. ncxDir is the directory containing the
// NCX file, used to resolve relative content src paths.
func ParseNCX(content []byte, ncxDir string) (*NCX, error) {
	var doc ncxDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX XML: %w", err)
	}

	ncx := &NCX{
		DocTitle: strings.TrimSpace(doc.DocTitle.Text),
	}

	for _, m := range doc.Head.Meta {
		switch m.Name {
		case "dtb:uid":
			ncx.UID = m.Content
		case "dtb:depth":
			if d, err := strconv.Atoi(m.Content); err == nil {
				ncx.Depth = d
			}
		}
	}

	ncx.NavPoints = parseNavPoints(doc.NavMap.NavPoints, ncxDir)

	for _, pt := range doc.PageList.PageTargets {
		path, fragment := splitFragment(pt.Content.Src)
		label := strings.TrimSpace(pt.NavLabel.Text)
		if label == "" {
			label = pt.Value
		}
		ncx.PageTargets = append(ncx.PageTargets, PageTarget{
			ID:          pt.ID,
			Type:        pt.Type,
			Value:       label,
			ContentPath: resolveNCXPath(ncxDir, path),
			Fragment:    fragment,
		})
	}

	return ncx, nil
}

// parseNavPoints converts raw navPoint elements, recursing into children.
func parseNavPoints(points []ncxNavPoint, ncxDir string) []NavPoint {
	var result []NavPoint
	for _, p := range points {
		path, fragment := splitFragment(p.Content.Src)
		np := NavPoint{
			ID:          p.ID,
			Label:       strings.TrimSpace(p.NavLabel.Text),
			ContentPath: resolveNCXPath(ncxDir, path),
			Fragment:    fragment,
		}
		if p.PlayOrder != "" {
			if po, err := strconv.Atoi(p.PlayOrder); err == nil {
				np.PlayOrder = po
			}
		}
		if len(p.Children) > 0 {
			np.Children = parseNavPoints(p.Children, ncxDir)
		}
		result = append(result, np)
	}
	return result
}

// LoadNCX reads and parses the NCX document referenced by the OPF spine.
// Returns nil without error when the publication declares no NCX.
func LoadNCX(r *EPUBReader, opf *OPF) (*NCX, error) {
	if opf.NCXPath == "" {
		return nil, nil
	}
	content, err := r.ReadFile(opf.NCXPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read NCX: %w", err)
	}
	return ParseNCX(content, filepath.Dir(opf.NCXPath))
}

// resolveNCXPath resolves a content src path relative to the NCX directory.
func resolveNCXPath(ncxDir, path string) string {
	if path == "" {
		return ""
	}
	if ncxDir == "" || ncxDir == "." {
		return filepath.ToSlash(filepath.Clean(path))
	}
	return filepath.ToSlash(filepath.Clean(filepath.Join(ncxDir, path)))
}

// splitFragment splits a source path into the path and fragment identifier.
func splitFragment(src string) (path, fragment string) {
	if src == "" {
		return "", ""
	}
	parts := strings.SplitN(src, "#", 2)
	path = parts[0]
	if len(parts) == 2 {
		fragment = parts[1]
	}
	return path, fragment
}
