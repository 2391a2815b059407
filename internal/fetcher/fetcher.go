// Package fetcher abstracts access to publication resources. The positions
// engine only ever inspects resource lengths; content bytes stay in the
// container.
package fetcher

import "errors"

// ErrNotFound is returned by Get when the container has no such resource.
var ErrNotFound = errors.New("resource not found")

// Resource is a scoped handle on one publication resource. Callers must
// Close the handle as soon as they are done inspecting it.
type Resource interface {
	// Length returns the resource's observed byte length.
	Length() (int64, error)
	Close() error
}

// Fetcher resolves hrefs to resource handles.
type Fetcher interface {
	Get(href string) (Resource, error)
}
