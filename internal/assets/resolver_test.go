package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/smallbiznis/papermill/internal/config"
)

func testResolver(t *testing.T, assets config.AssetConfig) *Resolver {
	t.Helper()
	if assets.HTTPTimeout == 0 {
		assets.HTTPTimeout = 5 * time.Second
	}
	return NewResolver(ResolverParam{
		Log:    zap.NewNop(),
		Config: config.Config{Assets: assets},
	})
}

func TestResolveEmptyRef(t *testing.T) {
	r := testResolver(t, config.AssetConfig{})
	if got := r.Resolve(context.Background(), "  "); got != nil {
		t.Fatal("blank ref must resolve to nil")
	}
}

func TestResolveDataURI(t *testing.T) {
	r := testResolver(t, config.AssetConfig{})
	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	got := r.Resolve(context.Background(), ref)
	if !bytes.Equal(got, payload) {
		t.Fatalf("data URI bytes = %v, want %v", got, payload)
	}

	if got := r.Resolve(context.Background(), "data:image/png;base64,!!!"); got != nil {
		t.Fatal("invalid base64 must resolve to nil")
	}
	if got := r.Resolve(context.Background(), "data:image/png,rawdata"); got != nil {
		t.Fatal("non-base64 data URI must resolve to nil")
	}
}

func TestResolveDiskPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := testResolver(t, config.AssetConfig{})
	if got := r.Resolve(context.Background(), path); string(got) != "png-bytes" {
		t.Fatalf("disk bytes = %q", got)
	}
}

func TestResolveUploadsBasename(t *testing.T) {
	uploads := t.TempDir()
	if err := os.WriteFile(filepath.Join(uploads, "sig.png"), []byte("sig"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := testResolver(t, config.AssetConfig{UploadsDir: uploads})
	// The caller saved the image elsewhere; only the basename matches.
	if got := r.Resolve(context.Background(), "/var/tmp/nowhere/sig.png"); string(got) != "sig" {
		t.Fatalf("uploads bytes = %q", got)
	}
}

func TestResolveStaticRelative(t *testing.T) {
	static := t.TempDir()
	if err := os.MkdirAll(filepath.Join(static, "img"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(static, "img", "banner.png"), []byte("banner"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := testResolver(t, config.AssetConfig{StaticDir: static})
	if got := r.Resolve(context.Background(), "img/banner.png"); string(got) != "banner" {
		t.Fatalf("static bytes = %q", got)
	}
}

func TestResolveMissingFileIsNil(t *testing.T) {
	r := testResolver(t, config.AssetConfig{})
	if got := r.Resolve(context.Background(), "no/such/file.png"); got != nil {
		t.Fatal("missing file must resolve to nil")
	}
}

func TestResolveHTTP(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt64(&hits, 1)
		switch req.URL.Path {
		case "/ok.png":
			_, _ = w.Write([]byte("remote"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	r := testResolver(t, config.AssetConfig{CacheTTL: time.Minute})
	if got := r.Resolve(context.Background(), srv.URL+"/ok.png"); string(got) != "remote" {
		t.Fatalf("http bytes = %q", got)
	}
	if got := r.Resolve(context.Background(), srv.URL+"/missing.png"); got != nil {
		t.Fatal("404 must resolve to nil")
	}

	// Second hit for the same ref is served from cache.
	before := atomic.LoadInt64(&hits)
	if got := r.Resolve(context.Background(), srv.URL+"/ok.png"); string(got) != "remote" {
		t.Fatal("cached resolve failed")
	}
	if atomic.LoadInt64(&hits) != before {
		t.Fatal("cache was not used")
	}
}

func TestResolveHTTPSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	r := testResolver(t, config.AssetConfig{MaxFetchBytes: 1024})
	if got := r.Resolve(context.Background(), srv.URL+"/big.png"); got != nil {
		t.Fatal("oversized asset must resolve to nil")
	}
}

func TestResolveAllPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.png"), []byte("aaa"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := testResolver(t, config.AssetConfig{UploadsDir: dir})
	out := r.ResolveAll(context.Background(), []string{
		"a.png",
		"",
		"missing.png",
	})
	if len(out) != 3 {
		t.Fatalf("out len = %d", len(out))
	}
	if string(out[0]) != "aaa" {
		t.Fatalf("out[0] = %q", out[0])
	}
	if out[1] != nil || out[2] != nil {
		t.Fatal("empty and missing refs must yield nil entries")
	}
}
