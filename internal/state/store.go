package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/shelf/internal/wps"
)

// RequestState is the lifecycle position of the most recent request.
type RequestState int

const (
	RequestIdle RequestState = iota
	RequestInFlight
	RequestCompleted
	RequestCancelled
	RequestFailed
)

func (r RequestState) String() string {
	switch r {
	case RequestInFlight:
		return "in-flight"
	case RequestCompleted:
		return "completed"
	case RequestCancelled:
		return "cancelled"
	case RequestFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot represents the latest result data available to views.
type Snapshot struct {
	Result              wps.ShopResponse
	HasResult           bool
	Request             RequestState
	Generation          uint64
	URL                 string
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the endpoint has failed for multiple requests in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Loading reports whether a request is in flight.
func (s Snapshot) Loading() bool {
	return s.Request == RequestInFlight
}

// Store coordinates the synchronizer goroutines writing results and the view
// reading them. Transitions for any generation other than the current one are
// ignored.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Begin marks generation gen as in flight for url, superseding any earlier one.
func (s *Store) Begin(gen uint64, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Generation = gen
	s.snapshot.URL = url
	s.snapshot.Request = RequestInFlight
}

// Complete replaces the result data wholesale. statusErr carries a
// non-success status when the payload was applied best-effort.
func (s *Store) Complete(gen uint64, resp *wps.ShopResponse, statusErr error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation || resp == nil {
		return false
	}
	s.snapshot.Result = cloneResponse(*resp)
	s.snapshot.HasResult = true
	s.snapshot.Request = RequestCompleted
	s.snapshot.LastError = statusErr
	s.snapshot.LastUpdated = time.Now()
	if statusErr != nil {
		s.snapshot.ConsecutiveFailures++
	} else {
		s.snapshot.ConsecutiveFailures = 0
	}
	return true
}

// Fail records err and keeps the previous result data.
func (s *Store) Fail(gen uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation {
		return false
	}
	s.snapshot.Request = RequestFailed
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	return true
}

// Cancel marks gen as cancelled. Cancellation is not a failure.
func (s *Store) Cancel(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.snapshot.Generation || s.snapshot.Request != RequestInFlight {
		return false
	}
	s.snapshot.Request = RequestCancelled
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Result = cloneResponse(s.snapshot.Result)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneResponse(resp wps.ShopResponse) wps.ShopResponse {
	out := wps.ShopResponse{Products: wps.ProductPage{Total: resp.Products.Total}}
	if len(resp.Products.Products) > 0 {
		out.Products.Products = make([]wps.Product, len(resp.Products.Products))
		for i, p := range resp.Products.Products {
			p.Images = cloneImages(p.Images)
			out.Products.Products[i] = p
		}
	}
	if len(resp.Terms) > 0 {
		out.Terms = make([]wps.TermGroup, len(resp.Terms))
		for i, group := range resp.Terms {
			terms := make([]wps.Term, len(group.Terms))
			for j, term := range group.Terms {
				term.Images = cloneImages(term.Images)
				terms[j] = term
			}
			out.Terms[i] = wps.TermGroup{Taxonomy: group.Taxonomy, Terms: terms}
		}
	}
	return out
}

func cloneImages(images []wps.Image) []wps.Image {
	if len(images) == 0 {
		return nil
	}
	dup := make([]wps.Image, len(images))
	copy(dup, images)
	return dup
}
