package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/papermill/internal/config"
	docservice "github.com/smallbiznis/papermill/internal/document/service"
	"github.com/smallbiznis/papermill/internal/logger"
	"github.com/smallbiznis/papermill/internal/metrics"
	"github.com/smallbiznis/papermill/internal/tracing"
)

// ServerParam wires the HTTP server dependencies.
type ServerParam struct {
	fx.In

	Log     *zap.Logger
	Config  config.Config
	Docs    *docservice.Service
	Metrics *metrics.HTTPMetrics `optional:"true"`
}

// Server exposes the render API over HTTP.
type Server struct {
	cfg     config.Config
	log     *zap.Logger
	docs    *docservice.Service
	metrics *metrics.HTTPMetrics
	limiter *renderLimiter
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:     p.Config,
		log:     p.Log.Named("server"),
		docs:    p.Docs,
		metrics: p.Metrics,
		limiter: newRenderLimiter(p.Config.HTTP.RenderRateLimit, p.Config.HTTP.RenderRateWindow),
	}
}

// NewEngine builds the gin engine with the standard middleware chain and
// registers all routes.
func NewEngine(cfg config.Config, s *Server) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	e := gin.New()
	e.Use(gin.Recovery())
	e.Use(traceContextMiddleware())
	e.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	e.Use(metrics.GinMiddleware(s.metrics))

	e.GET("/healthz", s.Healthz)

	api := e.Group("/api")
	api.POST("/documents/render", s.rateLimit(), s.RenderDocument)
	return e
}

// Healthz reports liveness. The service has no downstream dependencies that
// can go unhealthy while the process is up.
func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.cfg.Service.Name,
		"version": s.cfg.Service.Version,
	})
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			AbortWithError(c, errRateLimited)
			return
		}
		c.Next()
	}
}

// traceContextMiddleware extracts inbound W3C trace headers into the request
// context so render spans join the caller's trace.
func traceContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := tracing.ExtractContext(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RunHTTP starts the listener under the fx lifecycle with graceful shutdown.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTP.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewServer),
	fx.Provide(NewEngine),
	fx.Invoke(RunHTTP),
)
