package epub

import (
	"testing"
)

func TestParseNav_TOC(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head><title>Navigation</title></head>
<body>
  <nav epub:type="toc">
    <h1>Contents</h1>
    <ol>
      <li><a href="chapter1.xhtml">Chapter 1</a>
        <ol>
          <li><a href="chapter1.xhtml#s1">Section 1.1</a></li>
        </ol>
      </li>
      <li><a href="chapter2.xhtml">Chapter 2</a></li>
    </ol>
  </nav>
</body>
</html>`

	nav, err := ParseNav([]byte(content), "OEBPS")
	if err != nil {
		t.Fatalf("ParseNav failed: %v", err)
	}

	if len(nav.TOC) != 2 {
		t.Fatalf("TOC count = %d, want 2", len(nav.TOC))
	}

	first := nav.TOC[0]
	if first.Label != "Chapter 1" {
		t.Errorf("Label = %q, want %q", first.Label, "Chapter 1")
	}
	if first.ContentPath != "OEBPS/chapter1.xhtml" {
		t.Errorf("ContentPath = %q, want %q", first.ContentPath, "OEBPS/chapter1.xhtml")
	}
	if len(first.Children) != 1 {
		t.Fatalf("Children count = %d, want 1", len(first.Children))
	}
	if got := first.Children[0].Fragment; got != "s1" {
		t.Errorf("child Fragment = %q, want %q", got, "s1")
	}
}

func TestParseNav_PageList(t *testing.T) {
	content := `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<body>
  <nav epub:type="toc"><ol><li><a href="chapter1.xhtml">Chapter 1</a></li></ol></nav>
  <nav epub:type="page-list">
    <ol>
      <li><a href="chapter1.xhtml#page1">1</a></li>
      <li><a href="chapter1.xhtml#page2">2</a></li>
      <li><a href="chapter2.xhtml#page3">3</a></li>
    </ol>
  </nav>
</body>
</html>`

	nav, err := ParseNav([]byte(content), "OEBPS")
	if err != nil {
		t.Fatalf("ParseNav failed: %v", err)
	}

	if len(nav.PageTargets) != 3 {
		t.Fatalf("PageTargets count = %d, want 3", len(nav.PageTargets))
	}

	pt := nav.PageTargets[0]
	if pt.Value != "1" {
		t.Errorf("Value = %q, want %q", pt.Value, "1")
	}
	if pt.ContentPath != "OEBPS/chapter1.xhtml" {
		t.Errorf("ContentPath = %q, want %q", pt.ContentPath, "OEBPS/chapter1.xhtml")
	}
	if pt.Fragment != "page1" {
		t.Errorf("Fragment = %q, want %q", pt.Fragment, "page1")
	}

	// Declaration order is preserved.
	if got := nav.PageTargets[2].Value; got != "3" {
		t.Errorf("last Value = %q, want %q", got, "3")
	}
}

func TestParseNav_SpanHeading(t *testing.T) {
	content := `<html xmlns:epub="http://www.idpf.org/2007/ops">
<body>
  <nav epub:type="toc">
    <ol>
      <li><span>Part I</span>
        <ol>
          <li><a href="chapter1.xhtml">Chapter 1</a></li>
        </ol>
      </li>
    </ol>
  </nav>
</body>
</html>`

	nav, err := ParseNav([]byte(content), "")
	if err != nil {
		t.Fatalf("ParseNav failed: %v", err)
	}

	if len(nav.TOC) != 1 {
		t.Fatalf("TOC count = %d, want 1", len(nav.TOC))
	}
	part := nav.TOC[0]
	if part.Label != "Part I" {
		t.Errorf("Label = %q, want %q", part.Label, "Part I")
	}
	if part.ContentPath != "" {
		t.Errorf("ContentPath = %q, want empty for span heading", part.ContentPath)
	}
	if len(part.Children) != 1 {
		t.Errorf("Children count = %d, want 1", len(part.Children))
	}
}

func TestParseNav_NoPageList(t *testing.T) {
	content := `<html xmlns:epub="http://www.idpf.org/2007/ops">
<body>
  <nav epub:type="toc"><ol><li><a href="ch1.xhtml">Ch 1</a></li></ol></nav>
</body>
</html>`

	nav, err := ParseNav([]byte(content), "")
	if err != nil {
		t.Fatalf("ParseNav failed: %v", err)
	}
	if nav.PageTargets != nil {
		t.Errorf("PageTargets = %v, want nil", nav.PageTargets)
	}
}
