// Package driver runs the layout engine over a batch of catalog samples in
// parallel and persists results to a disk cache, grounded on the teacher's
// internal/driver/parallel.go (errgroup-based fan-out over a file list,
// indexed results so no mutex is needed) and internal/driver/dcache.go
// (a msgpack-backed disk cache keyed by a content hash).
package driver

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"ctypes/internal/catalog"
	"ctypes/internal/layout"
)

// Status is the lifecycle stage of one sample's layout computation, mirrored
// to the UI over an Event channel.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports one sample's progress, for a UI (or a plain log) to render.
type Event struct {
	Name   string
	Status Status
}

// Result is one sample's computed layout, or the Error that prevented it.
type Result struct {
	Name   string
	Type   uint32
	Layout layout.Layout
	Err    *layout.Error
}

// Batch computes eng.LayoutOf for every sample from a pool of workers
// bounded by jobs (GOMAXPROCS when jobs <= 0), and streams progress to
// events if non-nil. eng and its Interner are not safe for concurrent use,
// so the LayoutOf calls themselves are serialized by a mutex.
// Results preserve samples' order: each goroutine writes to its own index,
// so no result mutex is needed.
func Batch(ctx context.Context, eng *layout.Engine, samples []catalog.Sample, jobs int, events chan<- Event) ([]Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(samples))
	var engMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(samples), 1)))

	for i, s := range samples {
		g.Go(func(i int, s catalog.Sample) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				emit(events, Event{Name: s.Name, Status: StatusWorking})
				engMu.Lock()
				l, err := eng.LayoutOf(s.Type)
				engMu.Unlock()
				results[i] = Result{Name: s.Name, Type: uint32(s.Type), Layout: l, Err: err}
				status := StatusDone
				if err != nil {
					status = StatusError
				}
				emit(events, Event{Name: s.Name, Status: status})
				return nil
			}
		}(i, s))
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func emit(events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	events <- ev
}
