package fetcher

import (
	"fmt"

	"github.com/ALC-PRESS-INC/folio/internal/epub"
)

// archiveFetcher serves resources out of an opened EPUB container.
type archiveFetcher struct {
	reader *epub.EPUBReader
}

// NewArchiveFetcher returns a Fetcher over an opened EPUB container. The
// fetcher does not own the reader; closing it is the caller's concern.
func NewArchiveFetcher(r *epub.EPUBReader) Fetcher {
	return &archiveFetcher{reader: r}
}

func (f *archiveFetcher) Get(href string) (Resource, error) {
	info, ok := f.reader.EntryInfo(href)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, href)
	}
	return &archiveResource{length: info.UncompressedSize}, nil
}

// archiveResource answers length queries from the zip central directory, so
// no entry data is ever decompressed.
type archiveResource struct {
	length int64
}

func (r *archiveResource) Length() (int64, error) {
	return r.length, nil
}

func (r *archiveResource) Close() error {
	return nil
}
