// internal/resolvers/remote/remote_test.go
package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"ipsift/internal/core/domain"
	"ipsift/internal/platform/httpclient"
	"ipsift/internal/platform/logx"
)

// fakeBatchServer responde al estilo ip-api.com/batch: clasifica por un mapa
// fijo y marca "fail" lo que no conoce.
func fakeBatchServer(t *testing.T, known map[string]string, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)

		var entries []batchEntry
		if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
			t.Errorf("bad request body: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		results := make([]batchResult, 0, len(entries))
		for _, e := range entries {
			if cc, ok := known[e.Query]; ok {
				results = append(results, batchResult{Query: e.Query, Status: "success", CountryCode: cc})
			} else {
				results = append(results, batchResult{Query: e.Query, Status: "fail"})
			}
		}
		json.NewEncoder(w).Encode(results)
	}))
}

func newTestResolver(url string, batchLimit int) *Resolver {
	return New(Options{
		Client:     httpclient.New(httpclient.DefaultConfig(), logx.NewSilent()),
		BatchURL:   url,
		BatchLimit: batchLimit,
		Timeout:    5 * time.Second,
		Logger:     logx.NewSilent(),
	})
}

func TestResolveSingleAddress(t *testing.T) {
	var calls int32
	srv := fakeBatchServer(t, map[string]string{"1.1.1.1": "SG"}, &calls)
	defer srv.Close()

	r := newTestResolver(srv.URL, 0)

	got, err := r.Resolve(context.Background(), "", "1.1.1.1")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != domain.CountrySG {
		t.Errorf("Resolve = %q, want sg (lowercased)", got)
	}
}

func TestResolveBatchChunksRequests(t *testing.T) {
	known := map[string]string{
		"1.1.1.1": "SG",
		"2.2.2.2": "HK",
		"3.3.3.3": "JP",
	}
	var calls int32
	srv := fakeBatchServer(t, known, &calls)
	defer srv.Close()

	r := newTestResolver(srv.URL, 2)

	result, err := r.ResolveBatch(context.Background(), []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"})
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}

	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("server calls = %d, want 2 chunks for limit 2", calls)
	}
	if len(result) != 3 {
		t.Fatalf("classified %d addresses, want 3", len(result))
	}
	if result["2.2.2.2"] != domain.CountryHK {
		t.Errorf("2.2.2.2 = %q, want hk", result["2.2.2.2"])
	}
}

func TestResolveBatchOmitsFailedLookups(t *testing.T) {
	var calls int32
	srv := fakeBatchServer(t, map[string]string{"1.1.1.1": "US"}, &calls)
	defer srv.Close()

	r := newTestResolver(srv.URL, 0)

	result, err := r.ResolveBatch(context.Background(), []string{"1.1.1.1", "10.0.0.1"})
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if _, ok := result["10.0.0.1"]; ok {
		t.Error("failed lookup should be absent from the result map")
	}
	if result["1.1.1.1"] != domain.CountryUS {
		t.Errorf("1.1.1.1 = %q, want us", result["1.1.1.1"])
	}
}

func TestResolveServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL, 0)

	if _, err := r.Resolve(context.Background(), "", "1.1.1.1"); err == nil {
		t.Error("5xx from the endpoint should surface as an error")
	}
}

func TestResolveMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	r := newTestResolver(srv.URL, 0)

	if _, err := r.Resolve(context.Background(), "", "1.1.1.1"); err == nil {
		t.Error("unparseable body should surface as an error")
	}
}

func TestBatchLimitClamped(t *testing.T) {
	if got := newTestResolver("http://unused", 500).BatchLimit(); got != defaultBatchLimit {
		t.Errorf("BatchLimit = %d, want clamped to %d", got, defaultBatchLimit)
	}
	if got := newTestResolver("http://unused", 25).BatchLimit(); got != 25 {
		t.Errorf("BatchLimit = %d, want 25", got)
	}
}
