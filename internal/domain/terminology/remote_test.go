package terminology

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestRemoteClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "fever" {
			t.Errorf("expected query=fever, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"namaste_code":"A01","diagnosis":"Fever","icd10_code":"MG50","icd_diagnosis_name":"Fever, unspecified"}]`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL)
	results, err := client.Search(context.Background(), "fever")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].NamasteCode != "A01" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestRemoteClient_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL)
	results, err := client.Search(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("empty result set must not error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestRemoteClient_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL)
	_, err := client.Search(context.Background(), "fever")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRemoteClient_ConnectionFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewRemoteClient(srv.URL)
	_, err := client.Search(context.Background(), "fever")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestDebouncer_OnlyLastTriggerRuns(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		n := int32(i)
		d.Trigger(func(ctx context.Context) {
			calls.Add(1)
			last.Store(n)
		})
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 dispatched call, got %d", got)
	}
	if got := last.Load(); got != 5 {
		t.Errorf("expected last trigger to win, got %d", got)
	}
}

func TestDebouncer_SupersededContextIsCancelled(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	first := make(chan context.Context, 1)
	d.Trigger(func(ctx context.Context) { first <- ctx })

	var firstCtx context.Context
	select {
	case firstCtx = <-first:
	case <-time.After(time.Second):
		t.Fatal("first trigger never ran")
	}

	done := make(chan struct{})
	d.Trigger(func(ctx context.Context) { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second trigger never ran")
	}

	select {
	case <-firstCtx.Done():
	case <-time.After(time.Second):
		t.Error("expected first context to be cancelled by the second trigger")
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var ran atomic.Bool
	d.Trigger(func(ctx context.Context) { ran.Store(true) })
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if ran.Load() {
		t.Error("expected pending trigger to be stopped")
	}
}
