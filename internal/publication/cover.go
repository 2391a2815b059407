package publication

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrNoCover is returned when no cover image could be detected.
var ErrNoCover = errors.New("no cover image found")

// CoverHref returns the detected cover image path within the container.
func (p *Publication) CoverHref() (string, bool) {
	if p.cover == nil {
		return "", false
	}
	return p.cover.Href, true
}

// Cover decodes and returns the publication's cover image.
func (p *Publication) Cover() (image.Image, error) {
	if p.cover == nil {
		return nil, ErrNoCover
	}

	data, err := p.container.ReadFile(p.cover.Href)
	if err != nil {
		return nil, fmt.Errorf("failed to read cover %s: %w", p.cover.Href, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover %s: %w", p.cover.Href, err)
	}
	return img, nil
}

// CoverFitting returns the cover scaled down to fit within maxWidth x
// maxHeight, preserving aspect ratio. Covers already small enough are
// returned as-is.
func (p *Publication) CoverFitting(maxWidth, maxHeight int) (image.Image, error) {
	img, err := p.Cover()
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth && bounds.Dy() <= maxHeight {
		return img, nil
	}
	return imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos), nil
}
