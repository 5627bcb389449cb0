// Package lookup runs identifier lookups on a single background worker.
package lookup

import (
	"context"
	"fmt"
	"time"

	"pkt.systems/sndbq/internal/logx"
	"pkt.systems/sndbq/schema"
	"pkt.systems/pslog"
)

// Store executes one lookup. found is false when there is no matching row.
type Store interface {
	Lookup(ctx context.Context, req schema.LookupRequest) (program schema.Program, found bool, err error)
}

// Sink receives the worker's updates. Push must not block.
type Sink interface {
	Push(schema.Update) bool
}

// Worker owns the store and executes requests strictly in arrival order.
type Worker struct {
	store    Store
	requests <-chan schema.LookupRequest
	updates  Sink
}

// NewWorker returns a worker reading requests until the channel closes.
func NewWorker(store Store, requests <-chan schema.LookupRequest, updates Sink) *Worker {
	return &Worker{store: store, requests: requests, updates: updates}
}

// Run consumes requests until the request channel is closed and drained or
// ctx is cancelled. Failed lookups never stop the loop.
func (w *Worker) Run(ctx context.Context) error {
	log := pslog.Ctx(ctx)
	log.Debug("lookup worker start")
	handled := 0
	defer func() {
		log.Debug("lookup worker stop", "handled", handled)
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-w.requests:
			if !ok {
				return nil
			}
			w.handle(ctx, req)
			handled++
		}
	}
}

func (w *Worker) handle(ctx context.Context, req schema.LookupRequest) {
	log := logx.WithRequest(pslog.Ctx(ctx), req)
	start := time.Now()
	program, found, err := w.store.Lookup(ctx, req)
	if err != nil {
		log.Error("lookup failed", "err", err, "elapsed", time.Since(start))
		w.updates.Push(schema.MessageUpdate("Failed to get database result"))
		return
	}
	if !found {
		log.Info("lookup not found", "elapsed", time.Since(start))
		w.updates.Push(schema.MessageUpdate(fmt.Sprintf("%s `%s` not found", req.Kind.Label(), req.Identifier)))
		return
	}
	log.Debug("lookup ok", "program", program.Name, "status", program.State.Kind, "elapsed", time.Since(start))
	w.updates.Push(schema.ResultUpdate(program))
}
