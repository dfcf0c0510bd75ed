package planner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/02loveslollipop/heroic-planner/internal/logging"
)

// Transport issues one backend request. A cancelled ctx must surface as an error
// matching context.Canceled.
type Transport interface {
	Send(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// prepareFunc validates the state and builds the payload for one attempt.
type prepareFunc func(state FilterState, overrides Overrides) (Payload, *QueryError)

// handle identifies one in-flight request and is the only way to cancel it.
type handle struct {
	id        uuid.UUID
	cancel    context.CancelFunc
	cancelled bool
}

// Coordinator owns the request lifecycle for one query kind: at most one request in
// flight, cancel-and-restart on a new query, and a single current outcome.
type Coordinator struct {
	kind      Kind
	path      string
	ctx       context.Context
	transport Transport
	filters   *FilterStore
	prepare   prepareFunc
	logger    logging.Logger
	now       func() time.Time

	// onStart runs with the lock held after a request is created.
	onStart func()
	// onSuccess runs with the lock held after a successful outcome is stored.
	onSuccess func(json.RawMessage)

	mu      sync.Mutex
	loading bool
	outcome Outcome
	current *handle

	restartPending   bool
	restartOverrides Overrides

	wg sync.WaitGroup
}

func newCoordinator(ctx context.Context, kind Kind, path string, transport Transport, filters *FilterStore, prepare prepareFunc, logger logging.Logger, now func() time.Time) *Coordinator {
	return &Coordinator{
		kind:      kind,
		path:      path,
		ctx:       ctx,
		transport: transport,
		filters:   filters,
		prepare:   prepare,
		logger:    logger,
		now:       now,
		outcome:   Outcome{Status: StatusIdle, UpdatedAt: now()},
	}
}

// Kind returns the query kind this coordinator serves.
func (c *Coordinator) Kind() Kind {
	return c.kind
}

// Query starts a request built from the latest filter state. If one is already in
// flight it is cancelled and a single restart is issued once the cancellation
// settles; further calls before then collapse into that restart, the last
// overrides winning. Invalid state fails the attempt without contacting the
// backend, supersedes anything in flight and is returned to the caller.
func (c *Coordinator) Query(overrides Overrides) *QueryError {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, qerr := c.prepare(c.filters.Snapshot(), overrides)
	if qerr != nil {
		c.supersedeLocked()
		c.failLocked("", qerr)
		return qerr
	}

	if c.current != nil {
		c.restartPending = true
		c.restartOverrides = overrides
		c.cancelLocked()
		return nil
	}

	c.sendLocked(payload)
	return nil
}

// Cancel aborts the in-flight request, if any, without restarting. It reports
// whether there was something to cancel.
func (c *Coordinator) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current == nil {
		return false
	}
	c.restartPending = false
	c.restartOverrides = Overrides{}
	c.cancelLocked()
	return true
}

// Clear drops the current outcome and supersedes any in-flight request.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeLocked()
	c.loading = false
	c.outcome = Outcome{Status: StatusIdle, UpdatedAt: c.now()}
}

// Snapshot returns the current outcome and loading flag.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Kind: c.kind, Loading: c.loading, Outcome: c.outcome}
}

// Wait blocks until every request started so far has settled.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) startLocked(overrides Overrides) {
	payload, qerr := c.prepare(c.filters.Snapshot(), overrides)
	if qerr != nil {
		c.failLocked("", qerr)
		return
	}
	c.sendLocked(payload)
}

func (c *Coordinator) sendLocked(payload Payload) {
	ctx, cancel := context.WithCancel(c.ctx)
	h := &handle{id: uuid.New(), cancel: cancel}

	c.current = h
	c.loading = true
	c.outcome = Outcome{Status: StatusLoading, RequestID: h.id.String(), UpdatedAt: c.now()}
	if c.onStart != nil {
		c.onStart()
	}

	c.logger.Printf("%s: sending request %s", c.kind, h.id)
	c.wg.Add(1)
	go c.run(ctx, h, payload)
}

func (c *Coordinator) run(ctx context.Context, h *handle, payload Payload) {
	defer c.wg.Done()
	data, err := c.transport.Send(ctx, http.MethodPost, c.path, payload)
	h.cancel()
	c.settle(h, data, err)
}

// settle applies a response, but only if h is still the tracked handle.
func (c *Coordinator) settle(h *handle, data json.RawMessage, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != h {
		c.logger.Printf("%s: dropping stale response for %s", c.kind, h.id)
		return
	}
	c.current = nil

	if h.cancelled || errors.Is(err, context.Canceled) {
		if c.restartPending {
			overrides := c.restartOverrides
			c.restartPending = false
			c.restartOverrides = Overrides{}
			c.logger.Printf("%s: request %s aborted, restarting", c.kind, h.id)
			c.startLocked(overrides)
			return
		}
		c.loading = false
		c.outcome = Outcome{Status: StatusAborted, RequestID: h.id.String(), UpdatedAt: c.now()}
		c.logger.Printf("%s: request %s aborted", c.kind, h.id)
		return
	}

	if err != nil {
		c.failLocked(h.id.String(), transportError(err))
		return
	}

	c.loading = false
	c.outcome = Outcome{Status: StatusSuccess, RequestID: h.id.String(), Result: data, UpdatedAt: c.now()}
	c.logger.Printf("%s: request %s succeeded", c.kind, h.id)
	if c.onSuccess != nil {
		c.onSuccess(data)
	}
}

func (c *Coordinator) cancelLocked() {
	if c.current != nil && !c.current.cancelled {
		c.current.cancelled = true
		c.current.cancel()
	}
}

// supersedeLocked cancels and forgets the in-flight request so its response is ignored.
func (c *Coordinator) supersedeLocked() {
	c.cancelLocked()
	c.current = nil
	c.restartPending = false
	c.restartOverrides = Overrides{}
}

func (c *Coordinator) failLocked(requestID string, qerr *QueryError) {
	c.loading = false
	c.outcome = Outcome{Status: StatusFailure, RequestID: requestID, Error: qerr, UpdatedAt: c.now()}
	c.logger.Printf("%s: %v", c.kind, qerr)
}
