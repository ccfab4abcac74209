package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/shelf/internal/wps"
)

func sampleResponse(total int) *wps.ShopResponse {
	return &wps.ShopResponse{
		Products: wps.ProductPage{
			Products: []wps.Product{{ID: 1, Images: []wps.Image{{Src: "a"}}}, {ID: 2}},
			Total:    total,
		},
		Terms: []wps.TermGroup{{Taxonomy: wps.TaxonomyCategory, Terms: []wps.Term{{ID: 7}}}},
	}
}

func TestStore_CompleteAndSnapshotClone(t *testing.T) {
	var s Store

	s.Begin(1, "https://x/shop")
	if snap := s.Snapshot(); snap.Request != RequestInFlight || !snap.Loading() {
		t.Fatalf("Request = %v, want in-flight", snap.Request)
	}

	before := time.Now()
	if !s.Complete(1, sampleResponse(12), nil) {
		t.Fatalf("Complete returned false for current generation")
	}

	snap := s.Snapshot()
	if !snap.HasResult || snap.Result.Products.Total != 12 {
		t.Fatalf("snapshot result = %#v, want total=12", snap.Result)
	}
	if snap.Request != RequestCompleted {
		t.Fatalf("Request = %v, want completed", snap.Request)
	}
	if snap.URL != "https://x/shop" {
		t.Fatalf("URL = %q", snap.URL)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Result.Products.Products[0].ID = 999
	snap.Result.Products.Products[0].Images[0].Src = "mutated"
	snap.Result.Terms[0].Terms[0].ID = 999
	snap2 := s.Snapshot()
	if snap2.Result.Products.Products[0].ID != 1 ||
		snap2.Result.Products.Products[0].Images[0].Src != "a" ||
		snap2.Result.Terms[0].Terms[0].ID != 7 {
		t.Fatalf("Snapshot should deep-copy result data; got %#v", snap2.Result)
	}
}

func TestStore_StaleGenerationsIgnored(t *testing.T) {
	var s Store

	s.Begin(1, "first")
	s.Begin(2, "second")

	if s.Complete(1, sampleResponse(1), nil) {
		t.Fatalf("Complete accepted a superseded generation")
	}
	if s.Fail(1, errors.New("late")) {
		t.Fatalf("Fail accepted a superseded generation")
	}
	if s.Cancel(1) {
		t.Fatalf("Cancel accepted a superseded generation")
	}
	snap := s.Snapshot()
	if snap.HasResult || snap.LastError != nil || snap.Request != RequestInFlight {
		t.Fatalf("stale transitions leaked: %#v", snap)
	}

	if !s.Complete(2, sampleResponse(2), nil) {
		t.Fatalf("Complete rejected the current generation")
	}
	if got := s.Snapshot().Result.Products.Total; got != 2 {
		t.Fatalf("Total = %d, want 2", got)
	}
}

func TestStore_FailKeepsPreviousData(t *testing.T) {
	var s Store

	s.Begin(1, "u")
	s.Complete(1, sampleResponse(5), nil)
	prev := s.Snapshot()

	s.Begin(2, "u2")
	origErr := errors.New("boom")
	s.Fail(2, origErr)

	snap := s.Snapshot()
	if !snap.HasResult || snap.Result.Products.Total != prev.Result.Products.Total {
		t.Fatalf("result changed on error: got %#v want %#v", snap.Result, prev.Result)
	}
	if snap.Request != RequestFailed {
		t.Fatalf("Request = %v, want failed", snap.Request)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_CancelOnlyFromInFlight(t *testing.T) {
	var s Store

	s.Begin(1, "u")
	if !s.Cancel(1) {
		t.Fatalf("Cancel rejected in-flight generation")
	}
	if s.Snapshot().Request != RequestCancelled {
		t.Fatalf("Request = %v, want cancelled", s.Snapshot().Request)
	}
	if s.Snapshot().ConsecutiveFailures != 0 {
		t.Fatalf("cancellation counted as failure")
	}

	s.Begin(2, "u")
	s.Complete(2, sampleResponse(1), nil)
	if s.Cancel(2) {
		t.Fatalf("Cancel accepted a completed generation")
	}
}

func TestStore_BestEffortStatusCountsAsFailure(t *testing.T) {
	var s Store

	s.Begin(1, "u")
	statusErr := &wps.StatusError{URL: "u", Code: 502}
	s.Complete(1, sampleResponse(3), statusErr)

	snap := s.Snapshot()
	if !snap.HasResult || snap.Result.Products.Total != 3 {
		t.Fatalf("best-effort payload not applied: %#v", snap.Result)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
	var target *wps.StatusError
	if !errors.As(snap.LastError, &target) || target.Code != 502 {
		t.Fatalf("LastError = %v, want status 502", snap.LastError)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store should be online with 0 failures")
	}

	for gen := uint64(1); gen <= 3; gen++ {
		s.Begin(gen, "u")
		s.Fail(gen, errors.New("fail"))
		snap := s.Snapshot()
		if snap.ConsecutiveFailures != int(gen) {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, gen)
		}
		if wantOffline := gen >= 2; snap.IsOffline() != wantOffline {
			t.Fatalf("IsOffline() = %v after %d failures", snap.IsOffline(), gen)
		}
	}

	s.Begin(4, "u")
	s.Complete(4, sampleResponse(0), nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("success should reset failures, got %d", snap.ConsecutiveFailures)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil after success", snap.LastError)
	}
}

func TestRequestState_String(t *testing.T) {
	want := map[RequestState]string{
		RequestIdle:      "idle",
		RequestInFlight:  "in-flight",
		RequestCompleted: "completed",
		RequestCancelled: "cancelled",
		RequestFailed:    "failed",
	}
	for st, s := range want {
		if st.String() != s {
			t.Fatalf("%d.String() = %q, want %q", st, st.String(), s)
		}
	}
}
