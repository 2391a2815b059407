package epub

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createTestEPUB creates a minimal valid EPUB file for testing
func createTestEPUB(t *testing.T, dir string) string {
	t.Helper()
	epubPath := filepath.Join(dir, "test.epub")
	f, err := os.Create(epubPath)
	if err != nil {
		t.Fatalf("failed to create test epub: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	defer w.Close()

	// mimetype (must be uncompressed/stored)
	mw, err := w.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		t.Fatalf("failed to create mimetype: %v", err)
	}
	mw.Write([]byte("application/epub+zip"))

	// META-INF/container.xml
	cw, err := w.Create("META-INF/container.xml")
	if err != nil {
		t.Fatalf("failed to create container.xml: %v", err)
	}
	cw.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`))

	// OEBPS/content.opf (minimal)
	ow, err := w.Create("OEBPS/content.opf")
	if err != nil {
		t.Fatalf("failed to create content.opf: %v", err)
	}
	ow.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>Test Book</dc:title>
    <dc:language>en</dc:language>
  </metadata>
  <manifest>
    <item id="chapter1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="chapter1"/>
  </spine>
</package>`))

	// OEBPS/chapter1.xhtml
	chw, err := w.Create("OEBPS/chapter1.xhtml")
	if err != nil {
		t.Fatalf("failed to create chapter1.xhtml: %v", err)
	}
	chw.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>Chapter 1</title></head>
<body><h1>Chapter 1</h1><p>Hello, World!</p></body>
</html>`))

	return epubPath
}

// createInvalidMimetypeEPUB creates an EPUB with wrong mimetype content
func createInvalidMimetypeEPUB(t *testing.T, dir string) string {
	t.Helper()
	epubPath := filepath.Join(dir, "invalid.epub")
	f, err := os.Create(epubPath)
	if err != nil {
		t.Fatalf("failed to create test epub: %v", err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	defer w.Close()

	mw, err := w.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		t.Fatalf("failed to create mimetype: %v", err)
	}
	mw.Write([]byte("text/plain"))

	return epubPath
}

func TestOpen_Valid(t *testing.T) {
	path := createTestEPUB(t, t.TempDir())

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	if r.OPFPath() != "OEBPS/content.opf" {
		t.Errorf("OPFPath = %q, want %q", r.OPFPath(), "OEBPS/content.opf")
	}
}

func TestOpen_InvalidMimetype(t *testing.T) {
	path := createInvalidMimetypeEPUB(t, t.TempDir())

	_, err := Open(path)
	if !errors.Is(err, ErrInvalidMimetype) {
		t.Errorf("err = %v, want ErrInvalidMimetype", err)
	}
}

func TestOpen_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notazip.epub")
	if err := os.WriteFile(path, []byte("this is not a zip"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Error("Open accepted a non-zip file")
	}
}

func TestReadFile(t *testing.T) {
	path := createTestEPUB(t, t.TempDir())

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	content, err := r.ReadFile("OEBPS/chapter1.xhtml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(content) == 0 {
		t.Error("ReadFile returned empty content")
	}

	if _, err := r.ReadFile("OEBPS/missing.xhtml"); err == nil {
		t.Error("ReadFile succeeded for a missing entry")
	}
}

func TestHas(t *testing.T) {
	path := createTestEPUB(t, t.TempDir())

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	if !r.Has("OEBPS/chapter1.xhtml") {
		t.Error("Has = false for existing entry")
	}
	if r.Has("META-INF/encryption.xml") {
		t.Error("Has = true for missing entry")
	}
}

func TestEntryInfo(t *testing.T) {
	path := createTestEPUB(t, t.TempDir())

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	info, ok := r.EntryInfo("OEBPS/chapter1.xhtml")
	if !ok {
		t.Fatal("EntryInfo = ok=false for existing entry")
	}

	content, err := r.ReadFile("OEBPS/chapter1.xhtml")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if info.UncompressedSize != int64(len(content)) {
		t.Errorf("UncompressedSize = %d, want %d", info.UncompressedSize, len(content))
	}
	if info.CompressedSize <= 0 {
		t.Errorf("CompressedSize = %d, want > 0", info.CompressedSize)
	}

	if _, ok := r.EntryInfo("OEBPS/missing.xhtml"); ok {
		t.Error("EntryInfo = ok=true for missing entry")
	}
}

func TestEntryInfo_StoredEntryEqualSizes(t *testing.T) {
	path := createTestEPUB(t, t.TempDir())

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	// mimetype is stored uncompressed, so both sizes match.
	info, ok := r.EntryInfo("mimetype")
	if !ok {
		t.Fatal("EntryInfo = ok=false for mimetype")
	}
	if info.CompressedSize != info.UncompressedSize {
		t.Errorf("stored entry sizes differ: compressed %d, uncompressed %d",
			info.CompressedSize, info.UncompressedSize)
	}
}
