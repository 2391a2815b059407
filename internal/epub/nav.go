package epub

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Nav represents the parsed EPUB 3.0 navigation document.
type Nav struct {
	TOC         []NavPoint
	PageTargets []PageTarget
}

// ParseNav parses an EPUB 3.0 navigation document (XHTML). navDir is the
// directory containing the nav document, used to resolve relative hrefs.
//
// Only the toc and page-list nav elements are extracted; landmarks and other
// nav types are ignored.
func ParseNav(content []byte, navDir string) (*Nav, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse nav document: %w", err)
	}

	nav := &Nav{}

	doc.Find("nav").Each(func(i int, s *goquery.Selection) {
		// The epub:type attribute survives the HTML tokenizer with its
		// prefix intact, so match on the raw attribute name.
		navType, _ := s.Attr("epub:type")
		switch navType {
		case "toc":
			if nav.TOC == nil {
				nav.TOC = parseNavList(s.ChildrenFiltered("ol"), navDir)
			}
		case "page-list":
			if nav.PageTargets == nil {
				nav.PageTargets = parseNavPageList(s, navDir)
			}
		}
	})

	return nav, nil
}

// parseNavList converts an <ol> of nav entries into NavPoints, recursing
// into nested lists.
func parseNavList(ol *goquery.Selection, navDir string) []NavPoint {
	var result []NavPoint
	ol.ChildrenFiltered("li").Each(func(i int, li *goquery.Selection) {
		a := li.ChildrenFiltered("a").First()
		if a.Length() == 0 {
			// A <span> heading without a target still carries children.
			span := li.ChildrenFiltered("span").First()
			np := NavPoint{Label: strings.TrimSpace(span.Text())}
			np.Children = parseNavList(li.ChildrenFiltered("ol"), navDir)
			if np.Label != "" || len(np.Children) > 0 {
				result = append(result, np)
			}
			return
		}

		href, _ := a.Attr("href")
		path, fragment := splitFragment(href)
		np := NavPoint{
			Label:       strings.TrimSpace(a.Text()),
			ContentPath: resolveNavPath(navDir, path),
			Fragment:    fragment,
		}
		np.Children = parseNavList(li.ChildrenFiltered("ol"), navDir)
		result = append(result, np)
	})
	return result
}

// parseNavPageList extracts page-list anchors in declaration order.
func parseNavPageList(nav *goquery.Selection, navDir string) []PageTarget {
	var result []PageTarget
	nav.Find("li > a").Each(func(i int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		path, fragment := splitFragment(href)
		result = append(result, PageTarget{
			Type:        "normal",
			Value:       strings.TrimSpace(a.Text()),
			ContentPath: resolveNavPath(navDir, path),
			Fragment:    fragment,
		})
	})
	return result
}

// LoadNav reads and parses the EPUB 3.0 navigation document declared in the
// manifest. Returns nil without error when the publication declares none.
func LoadNav(r *EPUBReader, opf *OPF) (*Nav, error) {
	if opf.NavPath == "" {
		return nil, nil
	}
	content, err := r.ReadFile(opf.NavPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read nav document: %w", err)
	}
	return ParseNav(content, filepath.Dir(opf.NavPath))
}

// resolveNavPath resolves an href path relative to the nav document directory.
func resolveNavPath(navDir, path string) string {
	return resolveNCXPath(navDir, path)
}
