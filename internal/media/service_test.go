package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/swiftbasket/swiftbasket-backend/pkg/config"
)

func newTestService(t *testing.T, upstream string) *Service {
	t.Helper()

	svc, err := NewService(config.MediaConfig{
		CacheDir:     t.TempDir(),
		GeneratorURL: upstream,
		FetchTimeout: 5 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestEnsureFetchesAndCaches(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Query().Get("width") != "400" {
			t.Errorf("missing width param: %s", r.URL.RawQuery)
		}
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	svc := newTestService(t, upstream.URL)
	req := Request{Kind: "product", ID: "cumin", SubID: 0, Prompt: "cumin seeds", Width: 400, Height: 400}

	path, err := svc.Ensure(context.Background(), req)
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cached file: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected cached content %q", data)
	}

	// second call is served from disk
	if _, err := svc.Ensure(context.Background(), req); err != nil {
		t.Fatalf("ensure cached: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one upstream fetch, got %d", hits.Load())
	}
}

func TestEnsureDeduplicatesConcurrentFetches(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	svc := newTestService(t, upstream.URL)
	req := Request{Kind: "product", ID: "milk", Prompt: "milk carton"}

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Ensure(context.Background(), req); err != nil {
				t.Errorf("ensure: %v", err)
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if hits.Load() != 1 {
		t.Fatalf("expected one deduplicated fetch, got %d", hits.Load())
	}
}

func TestEnsureSurvivesCallerCancellation(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	svc := newTestService(t, upstream.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path, err := svc.Ensure(ctx, Request{Kind: "product", ID: "cumin", Prompt: "cumin"})
	if err != nil {
		t.Fatalf("ensure with cancelled context: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected cached file: %v", err)
	}
}

func TestEnsureUpstreamFailure(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	svc := newTestService(t, upstream.URL)
	_, err := svc.Ensure(context.Background(), Request{Kind: "product", ID: "ghost", Prompt: "nothing"})
	if err == nil {
		t.Fatal("expected upstream failure")
	}
}

func TestEnsureValidatesRequest(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, "http://unused.invalid")
	if _, err := svc.Ensure(context.Background(), Request{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestClearCache(t *testing.T) {
	t.Parallel()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("png-bytes"))
	}))
	defer upstream.Close()

	svc := newTestService(t, upstream.URL)
	path, err := svc.Ensure(context.Background(), Request{Kind: "product", ID: "cumin", Prompt: "cumin"})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}

	if err := svc.ClearCache(); err != nil {
		t.Fatalf("clear cache: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("cached file survived clear")
	}
}
