package fetchweb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestFetchPageStatic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html><body>company page</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	page, html, err := f.FetchPage(context.Background(), "careers", srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.FetchMode != "static" {
		t.Errorf("expected static mode, got %q", page.FetchMode)
	}
	if page.ContentHash == "" {
		t.Error("expected a content hash")
	}
	if page.Label != "careers" || page.URL != srv.URL {
		t.Errorf("unexpected page metadata: %+v", page)
	}
	if html == "" {
		t.Error("expected the page body")
	}
}

func TestFetchPageRetriesOnServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	page, _, err := f.FetchPage(context.Background(), "home", srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.FetchMode != "static" {
		t.Errorf("expected static mode after retries, got %q", page.FetchMode)
	}
	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestContentHashStableAcrossWhitespace(t *testing.T) {
	body := "<html><body>same</body></html>"
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("\n" + body + "\n  "))
	}))
	defer second.Close()

	f := NewFetcher()
	p1, _, err := f.FetchPage(context.Background(), "a", first.URL)
	if err != nil {
		t.Fatal(err)
	}
	p2, _, err := f.FetchPage(context.Background(), "b", second.URL)
	if err != nil {
		t.Fatal(err)
	}
	if p1.ContentHash != p2.ContentHash {
		t.Error("expected identical hashes for whitespace-trimmed bodies")
	}
}

func TestLooksComplete(t *testing.T) {
	if looksComplete("partial response without markup") {
		t.Error("accepted an incomplete body")
	}
	if !looksComplete("<HTML><BODY>x</BODY></HTML>") {
		t.Error("rejected a complete document")
	}
}
