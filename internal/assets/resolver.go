package assets

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smallbiznis/papermill/internal/config"
	"github.com/smallbiznis/papermill/internal/tracing"
)

// resolveConcurrency bounds the fan-out when a document references several
// images; a document carries at most a logo and three signatures.
const resolveConcurrency = 4

// ResolverParam wires the resolver dependencies.
type ResolverParam struct {
	fx.In

	Log    *zap.Logger
	Config config.Config
}

// Resolver turns image references into bytes. References may be disk paths,
// upload basenames, data URIs or HTTP(S) URLs; candidates are tried in that
// order. Resolution never fails the render: any reference that cannot be
// resolved yields nil bytes and a structured log line, and the layout falls
// back to its placeholder.
type Resolver struct {
	log    *zap.Logger
	cfg    config.AssetConfig
	client *http.Client
	cache  *byteCache
}

func NewResolver(p ResolverParam) *Resolver {
	return &Resolver{
		log:    p.Log.Named("assets"),
		cfg:    p.Config.Assets,
		client: tracing.WrapHTTPClient(&http.Client{Timeout: p.Config.Assets.HTTPTimeout}),
		cache:  newByteCache(p.Config.Assets.CacheTTL),
	}
}

// ResolveAll resolves refs concurrently, returning bytes in ref order. Empty
// refs and failed resolutions both yield nil entries.
func (r *Resolver) ResolveAll(ctx context.Context, refs []string) [][]byte {
	out := make([][]byte, len(refs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, ref := range refs {
		if strings.TrimSpace(ref) == "" {
			continue
		}
		i, ref := i, ref
		g.Go(func() error {
			out[i] = r.Resolve(ctx, ref)
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()
	return out
}

// Resolve resolves one reference, or nil if every candidate fails.
func (r *Resolver) Resolve(ctx context.Context, ref string) []byte {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}
	if data, ok := r.cache.get(ref); ok {
		return data
	}

	var data []byte
	switch {
	case strings.HasPrefix(ref, "data:"):
		data = r.fromDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		data = r.fromURL(ctx, ref)
	default:
		data = r.fromDisk(ref)
	}
	if data == nil {
		r.log.Warn("asset reference could not be resolved",
			zap.String("ref", truncateRef(ref)))
		return nil
	}
	r.cache.set(ref, data)
	return data
}

// fromDisk tries the reference as a path, then by basename under the uploads
// directory, then relative to the static and root directories.
func (r *Resolver) fromDisk(ref string) []byte {
	clean := filepath.Clean(filepath.FromSlash(ref))
	candidates := []string{
		clean,
		filepath.Join(r.cfg.UploadsDir, filepath.Base(clean)),
		filepath.Join(r.cfg.StaticDir, clean),
		filepath.Join(r.cfg.RootDir, clean),
	}
	for _, path := range candidates {
		if escapesDir(path) {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if r.cfg.MaxFetchBytes > 0 && int64(len(data)) > r.cfg.MaxFetchBytes {
			r.log.Warn("asset file exceeds size limit",
				zap.String("path", path),
				zap.Int("size", len(data)))
			continue
		}
		return data
	}
	return nil
}

func (r *Resolver) fromDataURI(ref string) []byte {
	idx := strings.Index(ref, ",")
	if idx < 0 || !strings.Contains(ref[:idx], "base64") {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(ref[idx+1:])
	if err != nil {
		r.log.Warn("asset data URI is not valid base64", zap.Error(err))
		return nil
	}
	return data
}

func (r *Resolver) fromURL(ctx context.Context, ref string) []byte {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn("asset fetch failed", zap.String("url", ref), zap.Error(err))
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		r.log.Warn("asset fetch returned non-200",
			zap.String("url", ref),
			zap.Int("status", resp.StatusCode))
		return nil
	}

	limit := r.cfg.MaxFetchBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		r.log.Warn("asset body read failed", zap.String("url", ref), zap.Error(err))
		return nil
	}
	if int64(len(data)) > limit {
		r.log.Warn("asset exceeds size limit", zap.String("url", ref))
		return nil
	}
	return data
}

// escapesDir rejects paths that climb out of their anchor after cleaning.
func escapesDir(path string) bool {
	return strings.HasPrefix(path, ".."+string(filepath.Separator)) || path == ".."
}

// truncateRef keeps log lines short when the ref is an inline data URI.
func truncateRef(ref string) string {
	if len(ref) > 64 {
		return ref[:64] + "..."
	}
	return ref
}
