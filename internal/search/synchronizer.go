package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/shelf/internal/filter"
	"github.com/five82/shelf/internal/metrics"
	"github.com/five82/shelf/internal/state"
	"github.com/five82/shelf/internal/wps"
)

// Options configure a Synchronizer.
type Options struct {
	Searcher wps.Searcher
	Store    *state.Store
	Logger   *zap.Logger
	Metrics  *metrics.Recorder
}

// Synchronizer issues one shop request per distinct filter state. Starting a
// request cancels the previous one, and a superseded request never touches
// the result store.
type Synchronizer struct {
	ctx      context.Context
	searcher wps.Searcher
	store    *state.Store
	logger   *zap.Logger
	metrics  *metrics.Recorder

	mu         sync.Mutex
	last       filter.State
	hasLast    bool
	generation uint64
	cancel     context.CancelFunc
	notify     func(state.Snapshot)
	closed     bool
	wg         sync.WaitGroup
}

// New creates a Synchronizer whose requests derive from ctx.
func New(ctx context.Context, opts Options) *Synchronizer {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	return &Synchronizer{
		ctx:      ctx,
		searcher: opts.Searcher,
		store:    store,
		logger:   logger,
		metrics:  opts.Metrics,
	}
}

// SetNotify registers fn to receive the snapshot after a request goroutine
// applies a transition. fn runs without locks held, so snapshots from
// different generations may arrive out of order; compare Generation.
func (s *Synchronizer) SetNotify(fn func(state.Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// Store returns the result store the synchronizer writes to.
func (s *Synchronizer) Store() *state.Store {
	return s.store
}

// Observe starts a request for st unless it equals the last observed state.
// It reports whether a request was started.
func (s *Synchronizer) Observe(st filter.State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || (s.hasLast && s.last.Equal(st)) {
		return false
	}
	s.last = st
	s.hasLast = true

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	gen := s.generation
	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("request_id", requestID), zap.Uint64("generation", gen))

	u, err := wps.BuildURL(st.Endpoint, st.Query())
	if err != nil {
		s.store.Begin(gen, wps.ShopURL(st.Endpoint))
		s.store.Fail(gen, err)
		s.metrics.ObserveRequest(metrics.OutcomeFailed, 0)
		logger.Warn("cannot build shop url", zap.String("endpoint", st.Endpoint), zap.Error(err))
		return false
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.store.Begin(gen, u.String())
	logger.Debug("shop request started", zap.String("url", u.String()))

	s.wg.Add(1)
	go s.run(ctx, gen, u.String(), logger, func() (*wps.ShopResponse, error) {
		return s.searcher.Search(ctx, u)
	})
	return true
}

func (s *Synchronizer) run(ctx context.Context, gen uint64, url string, logger *zap.Logger, fetch func() (*wps.ShopResponse, error)) {
	defer s.wg.Done()

	started := time.Now()
	resp, err := fetch()
	elapsed := time.Since(started)

	if snap, ok := s.apply(ctx, gen, url, logger, resp, err, elapsed); ok {
		s.mu.Lock()
		notify := s.notify
		s.mu.Unlock()
		if notify != nil {
			notify(snap)
		}
	}
}

// apply records the outcome of request gen and returns the resulting
// snapshot when the store changed.
func (s *Synchronizer) apply(ctx context.Context, gen uint64, url string, logger *zap.Logger, resp *wps.ShopResponse, err error, elapsed time.Duration) (state.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || ctx.Err() != nil || errors.Is(err, context.Canceled) {
		s.metrics.ObserveRequest(metrics.OutcomeCancelled, elapsed)
		logger.Debug("shop request cancelled", zap.Duration("elapsed", elapsed))
		// Only a request that was not superseded, i.e. one cut off by Close,
		// still owns the store.
		if s.store.Cancel(gen) {
			return s.store.Snapshot(), true
		}
		return state.Snapshot{}, false
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	if resp != nil {
		s.store.Complete(gen, resp, err)
		s.metrics.SetResultTotal(resp.Products.Total)
		if statusErr, ok := wps.IsStatusError(err); ok {
			s.metrics.ObserveRequest(metrics.OutcomeFailed, elapsed)
			logger.Warn("shop responded with error status; applied body",
				zap.String("url", url), zap.Int("status", statusErr.Code), zap.Duration("elapsed", elapsed))
		} else {
			s.metrics.ObserveRequest(metrics.OutcomeCompleted, elapsed)
			logger.Debug("shop request completed",
				zap.Int("products", len(resp.Products.Products)),
				zap.Int("total", resp.Products.Total),
				zap.Duration("elapsed", elapsed))
		}
		return s.store.Snapshot(), true
	}

	if err == nil {
		err = errors.New("empty response")
	}
	s.store.Fail(gen, err)
	s.metrics.ObserveRequest(metrics.OutcomeFailed, elapsed)
	logger.Warn("shop request failed", zap.String("url", url), zap.Error(err), zap.Duration("elapsed", elapsed))
	return s.store.Snapshot(), true
}

// Wait blocks until no request goroutine is running.
func (s *Synchronizer) Wait() {
	s.wg.Wait()
}

// Close cancels the in-flight request, waits for its goroutine and ignores
// later observations.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}
