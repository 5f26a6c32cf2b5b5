// Package service exposes the catalog and pre-install risk previews.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"consentintel/internal/catalog/metrics"
	"consentintel/internal/catalog/models"
	"consentintel/internal/risk"
	dErrors "consentintel/pkg/domain-errors"
	"consentintel/pkg/platform/sentinel"
	"consentintel/pkg/platform/tracer"
)

// ErrAppNotFound is the client-facing message for unknown catalog ids.
const ErrAppNotFound = "App not found"

// Store is the read side of the catalog.
type Store interface {
	List(ctx context.Context) ([]models.App, error)
	FindByID(ctx context.Context, id string) (*models.App, error)
}

type Service struct {
	store   Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  tracer.Tracer
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

func New(store Store, opts ...Option) *Service {
	svc := &Service{
		store:  store,
		logger: slog.Default(),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// ListApps returns the catalog in its stored order.
func (s *Service) ListApps(ctx context.Context) ([]models.App, error) {
	apps, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list apps")
	}
	if s.metrics != nil {
		s.metrics.SetCatalogSize(len(apps))
	}
	return apps, nil
}

// FindApp resolves a catalog entry, mapping a miss to a NotFound domain error.
func (s *Service) FindApp(ctx context.Context, appID string) (*models.App, error) {
	app, err := s.store.FindByID(ctx, appID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NotFound(ErrAppNotFound)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load app")
	}
	return app, nil
}

// PreviewRisk scores a catalog app without touching any install state.
func (s *Service) PreviewRisk(ctx context.Context, appID string) (_ *risk.Assessment, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanPreviewRisk, tracer.String(tracer.AttrAppID, appID))
	defer func() { span.End(err) }()

	start := time.Now()
	app, err := s.FindApp(ctx, appID)
	if err != nil {
		if s.metrics != nil && dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.metrics.IncrementPreviewMiss()
		}
		return nil, err
	}

	assessment := risk.Assess(*app)
	span.SetAttributes(
		tracer.Int(tracer.AttrRiskScore, assessment.Score),
		tracer.String(tracer.AttrRiskLevel, string(assessment.Level)),
	)
	if s.metrics != nil {
		s.metrics.IncrementRiskPreview(string(assessment.Level))
		s.metrics.ObservePreviewLatency(time.Since(start).Seconds())
	}
	s.logger.DebugContext(ctx, "risk previewed",
		"app_id", appID,
		"score", assessment.Score,
		"level", assessment.Level,
	)
	return &assessment, nil
}
