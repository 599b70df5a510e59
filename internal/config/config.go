package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServiceConfig identifies the running instance in logs and traces.
type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	RenderRateLimit  int
	RenderRateWindow time.Duration
}

// AssetConfig configures image reference resolution.
type AssetConfig struct {
	// UploadsDir is searched by basename for caller-saved images.
	UploadsDir string
	// StaticDir and RootDir anchor relative references.
	StaticDir string
	RootDir   string

	HTTPTimeout   time.Duration
	MaxFetchBytes int64
	CacheTTL      time.Duration
}

// FontConfig points at the TTF pair embedded into rendered documents.
type FontConfig struct {
	Dir     string
	Family  string
	Regular string
	Bold    string
}

// TracingConfig configures the OTLP exporter.
type TracingConfig struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

// Config is the full service configuration, loaded once at startup from the
// environment plus the optional theme file.
type Config struct {
	Service ServiceConfig
	HTTP    HTTPConfig
	Assets  AssetConfig
	Fonts   FontConfig
	Tracing TracingConfig

	// ThemePath names the optional TOML theme file; empty disables theming.
	ThemePath string
}

// Load reads configuration from the environment, applying defaults suited to
// local development. It fails only on unparseable values, never on absent
// ones.
func Load() (Config, error) {
	cfg := Config{
		Service: ServiceConfig{
			Name:        envStr("SERVICE_NAME", "papermill"),
			Version:     envStr("SERVICE_VERSION", "dev"),
			Environment: envStr("ENVIRONMENT", "development"),
		},
		HTTP: HTTPConfig{
			Addr: envStr("HTTP_ADDR", ":8080"),
		},
		Assets: AssetConfig{
			UploadsDir: envStr("ASSET_UPLOADS_DIR", "uploads"),
			StaticDir:  envStr("ASSET_STATIC_DIR", "public"),
			RootDir:    envStr("ASSET_ROOT_DIR", "."),
		},
		Fonts: FontConfig{
			Dir:     envStr("FONT_DIR", "fonts"),
			Family:  envStr("FONT_FAMILY", "THSarabun"),
			Regular: envStr("FONT_REGULAR", "THSarabunNew.ttf"),
			Bold:    envStr("FONT_BOLD", "THSarabunNew Bold.ttf"),
		},
		Tracing: TracingConfig{
			ExporterEndpoint: envStr("OTEL_EXPORTER_ENDPOINT", ""),
			ExporterProtocol: envStr("OTEL_EXPORTER_PROTOCOL", "grpc"),
		},
		ThemePath: envStr("THEME_PATH", ""),
	}

	var err error
	if cfg.HTTP.ReadTimeout, err = envDuration("HTTP_READ_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.HTTP.WriteTimeout, err = envDuration("HTTP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.HTTP.ShutdownTimeout, err = envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.HTTP.RenderRateLimit, err = envInt("RENDER_RATE_LIMIT", 60); err != nil {
		return Config{}, err
	}
	if cfg.HTTP.RenderRateWindow, err = envDuration("RENDER_RATE_WINDOW", time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.Assets.HTTPTimeout, err = envDuration("ASSET_HTTP_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Assets.MaxFetchBytes, err = envInt64("ASSET_MAX_FETCH_BYTES", 10<<20); err != nil {
		return Config{}, err
	}
	if cfg.Assets.CacheTTL, err = envDuration("ASSET_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.Tracing.Enabled, err = envBool("OTEL_TRACING_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.Tracing.SamplingRatio, err = envFloat("OTEL_SAMPLING_RATIO", 0.1); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the instance runs with production hardening.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Service.Environment, "production")
}

func envStr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envInt64(key string, fallback int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
