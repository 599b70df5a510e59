package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/papermill/internal/assets"
	"github.com/smallbiznis/papermill/internal/document"
	"github.com/smallbiznis/papermill/internal/render"
)

// ServiceParam wires the document service dependencies.
type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	Assets *assets.Resolver
	Engine *render.Engine
	Node   *snowflake.Node
}

// Service is the render entry point: it assembles the normalized document,
// resolves its image assets, and hands it to the layout engine. Each render
// carries a generated ID that threads through every log line and span.
type Service struct {
	log    *zap.Logger
	assets *assets.Resolver
	engine *render.Engine
	node   *snowflake.Node
}

func NewService(p ServiceParam) *Service {
	return &Service{
		log:    p.Log.Named("document"),
		assets: p.Assets,
		engine: p.Engine,
		node:   p.Node,
	}
}

// Render produces the PDF for one caller payload.
func (s *Service) Render(ctx context.Context, req document.RenderRequest) (*render.Result, error) {
	renderID := s.node.Generate().String()
	ctx, span := otel.Tracer("papermill/document").Start(ctx, "document.render")
	defer span.End()
	span.SetAttributes(
		attribute.String("render.id", renderID),
		attribute.String("document.kind", string(req.Kind)),
	)

	log := s.log.With(
		zap.String("render_id", renderID),
		zap.String("kind", string(req.Kind)),
		zap.String("number", req.Metadata.Number),
	)

	doc, err := document.Assemble(req)
	if err != nil {
		span.SetStatus(codes.Error, "assemble failed")
		log.Warn("document payload rejected", zap.Error(err))
		return nil, err
	}

	start := time.Now()
	doc.AttachAssets(s.assets.ResolveAll(ctx, doc.AssetRefs()))

	result, err := s.engine.Render(ctx, doc)
	if err != nil {
		span.SetStatus(codes.Error, "render failed")
		log.Error("render failed", zap.Error(err))
		return nil, err
	}

	log.Info("document rendered",
		zap.String("filename", result.Filename),
		zap.Int("bytes", len(result.Bytes)),
		zap.Bool("content_overflow", result.ContentOverflow),
		zap.Bool("terms_clipped", result.TermsClipped),
		zap.Duration("duration", time.Since(start)))
	return result, nil
}
