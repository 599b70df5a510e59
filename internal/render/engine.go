package render

import (
	"context"
	"math"
	"time"

	"github.com/smallbiznis/papermill/internal/document"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Result is one finished render: the page bytes, a suggested filename and
// the recovered-overflow signals callers may want to act on.
type Result struct {
	Bytes    []byte
	Filename string

	// ContentOverflow is set when table rows ran past the safe content area
	// (warn-and-continue policy; the document still renders).
	ContentOverflow bool
	// TermsClipped is set when terms text was hard-clipped with an ellipsis
	// to keep it out of the signature zone.
	TermsClipped bool
}

// EngineParam wires the engine dependencies.
type EngineParam struct {
	fx.In

	Log    *zap.Logger
	Config RenderConfig
}

// Engine lays out and renders one Document per call. It is stateless across
// renders; every call owns its own surface, so concurrent renders of
// different documents need no coordination.
type Engine struct {
	log *zap.Logger
	cfg RenderConfig
}

func NewEngine(p EngineParam) *Engine {
	return &Engine{
		log: p.Log.Named("render.engine"),
		cfg: p.Config,
	}
}

// Render produces the PDF for one normalized document. Layout invariant
// violations and surface finalization failures are fatal; asset problems and
// content overflow have been recovered before or during drawing.
func (e *Engine) Render(ctx context.Context, doc *document.Document) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	style := StyleFor(doc.Kind, e.cfg)
	surface := newPDFSurface(e.cfg, e.creationDate(doc), e.log)

	r := newRun(e.cfg, style, doc, surface, e.log)
	if err := r.render(); err != nil {
		return nil, err
	}

	out, err := surface.Finalize()
	if err != nil {
		return nil, err
	}
	return &Result{
		Bytes:           out,
		Filename:        style.Filename(doc.Metadata.Number),
		ContentOverflow: r.overflow,
		TermsClipped:    r.termsClipped,
	}, nil
}

// creationDate pins the embedded PDF timestamps so identical input renders
// byte-identical output. No wall clock is consulted.
func (e *Engine) creationDate(doc *document.Document) time.Time {
	if !e.cfg.CreationDate.IsZero() {
		return e.cfg.CreationDate
	}
	if !doc.Metadata.IssueDate.IsZero() {
		return doc.Metadata.IssueDate
	}
	return time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// run carries the state of one render pass: the cursor threading through
// section renderers and the recovered-condition flags.
type run struct {
	cfg   RenderConfig
	style KindStyle
	doc   *document.Document
	s     DrawingSurface
	fmtr  formatter
	log   *zap.Logger

	overflow     bool
	termsClipped bool
}

func newRun(cfg RenderConfig, style KindStyle, doc *document.Document, s DrawingSurface, log *zap.Logger) *run {
	return &run{
		cfg:   cfg,
		style: style,
		doc:   doc,
		s:     s,
		fmtr:  newFormatter(doc.Locale),
		log:   log,
	}
}

// section wraps a renderer call with the monotonic-advance validator: the
// returned cursor must be finite and never behind the input. A renderer that
// is expected to always produce content but returns an unchanged cursor is
// logged, which catches "section silently drew nothing" bugs.
func (r *run) section(name string, mustAdvance bool, startY float64, fn func(float64) (float64, error)) (float64, error) {
	endY, err := fn(startY)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(endY) || math.IsInf(endY, 0) {
		return 0, &InvariantViolationError{Section: name, StartY: startY, EndY: endY, Reason: "non_finite_cursor"}
	}
	if endY < startY {
		return 0, &InvariantViolationError{Section: name, StartY: startY, EndY: endY, Reason: "cursor_moved_backward"}
	}
	if endY == startY && mustAdvance {
		r.log.Warn("section did not advance the layout cursor",
			zap.String("section", name),
			zap.Float64("y", startY))
	}
	return endY, nil
}

func (r *run) render() error {
	y := r.s.Margins().Top

	y, err := r.section("header", true, y, r.drawHeader)
	if err != nil {
		return err
	}
	y, err = r.section("party_info", true, y, r.drawPartyInfo)
	if err != nil {
		return err
	}

	if cn := r.doc.CreditNote; cn != nil {
		if cn.ReasonCode != "" || cn.ReasonDetail != "" {
			y, err = r.section("credit_reason", true, y, r.drawCreditReason)
			if err != nil {
				return err
			}
		}
		if cn.RefundMethod != "" {
			y, err = r.section("refund_details", true, y, r.drawRefundDetails)
			if err != nil {
				return err
			}
		}
	}

	y, err = r.section("line_items", true, y, r.drawLineItems)
	if err != nil {
		return err
	}

	plan, err := r.planBottomCluster(y)
	if err != nil {
		return err
	}
	y, err = r.section("summary_totals", true, plan.SummaryY, r.drawSummary)
	if err != nil {
		return err
	}

	termsMax := plan.SignatureTop - y - r.cfg.Layout.TermsGap
	y, err = r.section("terms_notes", false, y, func(startY float64) (float64, error) {
		return r.drawTerms(startY, termsMax)
	})
	if err != nil {
		return err
	}

	sigY := math.Max(plan.SignatureTop, y)
	if _, err = r.section("signature_block", true, sigY, r.drawSignatures); err != nil {
		return err
	}

	r.drawPageFooter()
	return nil
}

// clusterPlan is the placement decision for the bottom cluster. SummaryY is
// where SummaryTotals starts; SignatureTop is the fixed top of the reserved
// signature+footer zone.
type clusterPlan struct {
	SummaryY       float64
	SignatureTop   float64
	AnchoredBottom bool
}

// planBottomCluster implements the reserve-from-bottom strategy. When the
// space left after the table comfortably exceeds the estimated summary and
// terms heights, the summary anchors low so the page reads bottom-balanced;
// otherwise it flows directly after the table. Estimates drive only this
// decision - the actual drawn end positions anchor everything after.
func (r *run) planBottomCluster(tableEndY float64) (clusterPlan, error) {
	l := r.cfg.Layout
	m := r.s.Margins()

	sigTop := r.s.PageHeight() - m.Bottom - l.FooterHeight - l.SignatureHeight
	flowY := tableEndY + l.SpacingAfterTable

	summaryEst, err := r.estimateHeight(sectionSummary, r.s.BodyWidth())
	if err != nil {
		return clusterPlan{}, err
	}
	termsEst, err := r.estimateHeight(sectionTerms, r.s.BodyWidth())
	if err != nil {
		return clusterPlan{}, err
	}

	spaceAboveReserved := sigTop - flowY
	if spaceAboveReserved > summaryEst+termsEst+l.SafetyMargin {
		anchored := sigTop - summaryEst - l.SpacingBeforeSignatures
		if anchored > flowY {
			return clusterPlan{SummaryY: anchored, SignatureTop: sigTop, AnchoredBottom: true}, nil
		}
	}
	return clusterPlan{SummaryY: flowY, SignatureTop: sigTop}, nil
}

type sectionKind int

const (
	sectionSummary sectionKind = iota
	sectionTerms
	sectionSignatures
	sectionFooter
)

// estimateHeight is the single height estimator shared by the placement
// decision and the section renderers, so the two can never drift apart.
func (r *run) estimateHeight(kind sectionKind, width float64) (float64, error) {
	l := r.cfg.Layout
	switch kind {
	case sectionSummary:
		return l.SummaryHeightEstimate, nil
	case sectionTerms:
		terms := r.termsText()
		if terms == "" {
			return 0, nil
		}
		labelH := r.s.MeasureText("x", TextStyle{Bold: true, Size: r.cfg.Sizes.Body}, 0).H
		textH := r.s.MeasureText(terms, TextStyle{Size: r.cfg.Sizes.Small}, width).H
		if !positiveFinite(textH) || !positiveFinite(labelH) {
			return 0, &InvariantViolationError{Section: "terms_notes", Reason: "non_finite_measurement", EndY: textH}
		}
		return labelH + l.TermsGap + textH, nil
	case sectionSignatures:
		return l.SignatureHeight, nil
	case sectionFooter:
		return l.FooterHeight, nil
	}
	return 0, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
