package positions

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ALC-PRESS-INC/folio/internal/fetcher"
	"github.com/ALC-PRESS-INC/folio/internal/manifest"
)

// lengthScanParallelism bounds the number of resource handles inspected
// concurrently during the first pass.
const lengthScanParallelism = 4

type state int

const (
	stateUninitialized state = iota
	stateComputing
	stateReady
)

// Service computes and caches a publication's positions table. The table is
// computed once, on first request, and is immutable for the lifetime of the
// service; callers must not modify the returned slices.
type Service struct {
	readingOrder []manifest.Link
	pageList     []manifest.PageTarget
	fetcher      fetcher.Fetcher
	strategy     Strategy

	mu    sync.Mutex
	state state
	table [][]manifest.Locator
}

// NewService creates a positions service for one open publication session.
func NewService(readingOrder []manifest.Link, pageList []manifest.PageTarget, f fetcher.Fetcher, strategy Strategy) *Service {
	return &Service{
		readingOrder: readingOrder,
		pageList:     pageList,
		fetcher:      f,
		strategy:     strategy,
	}
}

// PositionsByReadingOrder returns the positions table grouped by resource,
// preserving reading-order indices. The only possible error is a cancelled
// context; per-resource failures degrade to empty contributions instead.
func (s *Service) PositionsByReadingOrder(ctx context.Context) ([][]manifest.Locator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == stateReady {
		return s.table, nil
	}

	s.state = stateComputing
	table, err := s.compute(ctx)
	if err != nil {
		s.state = stateUninitialized
		return nil, err
	}

	s.table = table
	s.state = stateReady
	return s.table, nil
}

// Positions returns the table flattened into a single reading-order list.
func (s *Service) Positions(ctx context.Context) ([]manifest.Locator, error) {
	table, err := s.PositionsByReadingOrder(ctx)
	if err != nil {
		return nil, err
	}
	var flat []manifest.Locator
	for _, list := range table {
		flat = append(flat, list...)
	}
	return flat, nil
}

// itemScan is the per-item result of the parallel length pass.
type itemScan struct {
	count      int
	unreadable bool
}

// compute builds the full table: a parallel length scan, a sequential
// numbering pass, then the totals pass once the grand total is known.
func (s *Service) compute(ctx context.Context) ([][]manifest.Locator, error) {
	scans, err := s.scanLengths(ctx)
	if err != nil {
		return nil, err
	}

	table := make([][]manifest.Locator, 0, len(s.readingOrder))
	offset := 0 // last assigned global index

	for i, link := range s.readingOrder {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		list := s.positionsOf(link, scans[i], offset)
		if len(list) > 0 {
			offset = list[len(list)-1].Locations.Position
		}
		table = append(table, list)
	}

	applyTotalProgression(table)
	return table, nil
}

// scanLengths acquires each reflowable resource handle, inspects its length
// and releases it, computing the raw position count per item. Items are
// independent, so the scan fans out; ordering is restored by indexing into
// the result slice.
func (s *Service) scanLengths(ctx context.Context) ([]itemScan, error) {
	scans := make([]itemScan, len(s.readingOrder))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(lengthScanParallelism)

	for i, link := range s.readingOrder {
		if link.Layout == manifest.LayoutFixed {
			scans[i] = itemScan{count: 1}
			continue
		}

		i, link := i, link
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			res, err := s.fetcher.Get(link.Href)
			if err != nil {
				log.Printf("warning: resource %s unreadable: %v", link.Href, err)
				scans[i] = itemScan{unreadable: true}
				return nil
			}
			length, lerr := res.Length()
			res.Close()
			if lerr != nil {
				log.Printf("warning: resource %s length lookup failed: %v", link.Href, lerr)
				scans[i] = itemScan{unreadable: true}
				return nil
			}

			scans[i] = itemScan{count: s.strategy.positionCount(link, length)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scans, nil
}

// positionsOf emits the final locator list for one reading-order item.
// offset is the last global index assigned to a preceding item.
func (s *Service) positionsOf(link manifest.Link, scan itemScan, offset int) []manifest.Locator {
	if scan.unreadable {
		// The resource still occupies its reading-order slot, it just
		// contributes nothing and the numbering does not advance.
		return []manifest.Locator{}
	}

	if link.Layout == manifest.LayoutFixed {
		return []manifest.Locator{locatorOf(link, offset+1, 0)}
	}

	labels, ok := collectPageLabels(s.pageList, link.Href)
	if !ok {
		log.Printf("warning: malformed page label for %s, falling back to estimation", link.Href)
	}
	if ok && len(labels) > 0 {
		// Author intent overrides the running offset for where this
		// resource's numbering starts.
		indices := pageIndices(labels)
		list := make([]manifest.Locator, 0, len(indices))
		for j, index := range indices {
			list = append(list, locatorOf(link, index, float64(j)/float64(len(indices))))
		}
		return list
	}

	list := make([]manifest.Locator, 0, scan.count)
	for j := 0; j < scan.count; j++ {
		list = append(list, locatorOf(link, offset+1+j, float64(j)/float64(scan.count)))
	}
	return list
}

// locatorOf builds one locator; totalProgression is filled in later, once
// every resource's count is known.
func locatorOf(link manifest.Link, position int, progression float64) manifest.Locator {
	return manifest.Locator{
		Href:      link.Href,
		MediaType: link.MediaType,
		Title:     link.Title,
		Locations: manifest.Locations{
			Progression: progression,
			Position:    position,
		},
	}
}

// applyTotalProgression recomputes every locator's totalProgression against
// the grand position total. An empty table has no total to divide by, so the
// fractions are left at zero.
func applyTotalProgression(table [][]manifest.Locator) {
	total := 0
	for _, list := range table {
		total += len(list)
	}
	if total == 0 {
		return
	}

	for _, list := range table {
		for i := range list {
			list[i].Locations.TotalProgression = float64(list[i].Locations.Position-1) / float64(total)
		}
	}
}
