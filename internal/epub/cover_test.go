package epub

import (
	"testing"
)

func coverOPF(items []ManifestItem) *OPF {
	opf := &OPF{Manifest: make(map[string]ManifestItem)}
	for _, item := range items {
		opf.Manifest[item.ID] = item
		opf.ManifestOrder = append(opf.ManifestOrder, item.ID)
	}
	return opf
}

func TestDetectCover_Properties(t *testing.T) {
	opf := coverOPF([]ManifestItem{
		{ID: "img1", Href: "images/front.jpg", MediaType: "image/jpeg", Properties: []string{"cover-image"}},
		{ID: "img2", Href: "images/other.jpg", MediaType: "image/jpeg"},
	})

	c := opf.DetectCover()
	if c == nil {
		t.Fatal("DetectCover returned nil")
	}
	if c.Href != "images/front.jpg" {
		t.Errorf("Href = %q, want %q", c.Href, "images/front.jpg")
	}
	if c.DetectionMethod != "properties" {
		t.Errorf("DetectionMethod = %q, want %q", c.DetectionMethod, "properties")
	}
}

func TestDetectCover_Meta(t *testing.T) {
	opf := coverOPF([]ManifestItem{
		{ID: "img1", Href: "images/front.jpg", MediaType: "image/jpeg"},
	})
	opf.Metadata.CoverID = "img1"

	c := opf.DetectCover()
	if c == nil {
		t.Fatal("DetectCover returned nil")
	}
	if c.DetectionMethod != "meta" {
		t.Errorf("DetectionMethod = %q, want %q", c.DetectionMethod, "meta")
	}
}

func TestDetectCover_Guide(t *testing.T) {
	opf := coverOPF([]ManifestItem{
		{ID: "img1", Href: "images/front.jpg", MediaType: "image/jpeg"},
	})
	opf.Guide = []GuideReference{{Type: "cover", Href: "images/front.jpg"}}

	c := opf.DetectCover()
	if c == nil {
		t.Fatal("DetectCover returned nil")
	}
	if c.DetectionMethod != "guide" {
		t.Errorf("DetectionMethod = %q, want %q", c.DetectionMethod, "guide")
	}
}

func TestDetectCover_Filename(t *testing.T) {
	opf := coverOPF([]ManifestItem{
		{ID: "img1", Href: "images/MyCover.png", MediaType: "image/png"},
		{ID: "svg1", Href: "images/cover.svg", MediaType: "image/svg+xml"},
	})

	c := opf.DetectCover()
	if c == nil {
		t.Fatal("DetectCover returned nil")
	}
	if c.Href != "images/MyCover.png" {
		t.Errorf("Href = %q, want the raster cover, not the SVG", c.Href)
	}
	if c.DetectionMethod != "filename" {
		t.Errorf("DetectionMethod = %q, want %q", c.DetectionMethod, "filename")
	}
}

func TestDetectCover_None(t *testing.T) {
	opf := coverOPF([]ManifestItem{
		{ID: "ch1", Href: "chapter1.xhtml", MediaType: "application/xhtml+xml"},
	})

	if c := opf.DetectCover(); c != nil {
		t.Errorf("DetectCover = %+v, want nil", c)
	}
}

func TestFindCoverImage(t *testing.T) {
	opf := coverOPF([]ManifestItem{
		{ID: "img1", Href: "cover.jpg", MediaType: "image/jpeg", Properties: []string{"cover-image"}},
	})

	href, ok := opf.FindCoverImage()
	if !ok {
		t.Fatal("FindCoverImage = ok=false")
	}
	if href != "cover.jpg" {
		t.Errorf("href = %q, want %q", href, "cover.jpg")
	}
}
