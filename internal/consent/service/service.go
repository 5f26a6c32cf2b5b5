// Package service owns installed-app state: install, runtime queries, the
// timeline, alerts, reset and simulated activity.
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	catalogmodels "consentintel/internal/catalog/models"
	"consentintel/internal/consent/metrics"
	"consentintel/internal/consent/models"
	"consentintel/internal/risk"
	pkgerrors "consentintel/pkg/domain-errors"
	"consentintel/pkg/platform/sentinel"
	"consentintel/pkg/platform/tracer"
	"consentintel/pkg/requestcontext"
)

// Client-facing not-found messages.
const (
	MsgAppNotFound     = "App not found"
	MsgAppNotInstalled = "App not installed"
	MsgAppNotMonitored = "App is not installed/monitored."
)

// Store defines the persistence interface for installed apps and timeline events.
// Error Contract:
// - FindInstalled returns sentinel.ErrNotFound when the app is not installed
// - Other methods return nil on success or wrapped errors on failure
type Store interface {
	FindInstalled(ctx context.Context, appID string) (*models.InstalledApp, error)
	ListInstalled(ctx context.Context) ([]*models.InstalledApp, error)
	SaveInstalled(ctx context.Context, app *models.InstalledApp) error
	DeleteInstalled(ctx context.Context, appID string) error
	AppendEvent(ctx context.Context, event *models.TimelineEvent) error
	ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.TimelineEvent, error)
	CountInstalled(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

// Catalog resolves catalog entries. FindByID returns sentinel.ErrNotFound for unknown ids.
type Catalog interface {
	FindByID(ctx context.Context, id string) (*catalogmodels.App, error)
}

// Publisher receives every appended timeline event after it is stored.
type Publisher interface {
	Publish(ctx context.Context, event models.TimelineEvent)
}

// IDGenerator returns a fresh, unique event id.
type IDGenerator func() string

type Option func(*Service)

type Service struct {
	store     Store
	tx        ConsentStoreTx
	catalog   Catalog
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    tracer.Tracer
	publisher Publisher
	clock     func() time.Time
	newID     IDGenerator
}

func NewService(store Store, catalog Catalog, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		store:   store,
		catalog: catalog,
		logger:  logger,
		tracer:  tracer.NewNoop(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tx == nil {
		svc.tx = newShardedConsentTx(store, svc.metrics)
	}
	return svc
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithPublisher fans appended timeline events out to live subscribers.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithClock overrides the request-scoped time used for new timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithTx replaces the default sharded in-memory transaction.
func WithTx(tx ConsentStoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func (s *Service) now(ctx context.Context) time.Time {
	if s.clock != nil {
		return s.clock()
	}
	return requestcontext.Now(ctx)
}

// Install records a catalog app as installed with its baseline risk score and
// appends one install event. Installing twice returns the existing record
// unchanged and appends nothing.
func (s *Service) Install(ctx context.Context, appID string) (_ *models.InstallResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanInstall, tracer.String(tracer.AttrAppID, appID))
	defer func() { span.End(err) }()

	app, err := s.catalog.FindByID(ctx, appID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, pkgerrors.NotFound(MsgAppNotFound)
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to load app")
	}
	assessment := risk.Assess(*app)

	var (
		result *models.InstallResult
		event  *models.TimelineEvent
	)
	err = s.tx.RunInTx(ctx, appID, func(txCtx context.Context, txStore Store) error {
		existing, err := txStore.FindInstalled(txCtx, appID)
		if err == nil {
			result = &models.InstallResult{App: existing, Created: false}
			return nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to read installed app")
		}

		now := s.now(txCtx)
		installed, err := models.NewInstalledApp(app.ID, app.Name, assessment.Score, now)
		if err != nil {
			return err
		}
		if err := txStore.SaveInstalled(txCtx, installed); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to save installed app")
		}

		event = &models.TimelineEvent{
			ID:          s.newID(),
			AppID:       appID,
			Date:        now,
			Type:        models.EventTypeInstall,
			Description: models.InstallEventDescription(string(assessment.Level)),
			Severity:    models.SeverityInfo,
		}
		if err := txStore.AppendEvent(txCtx, event); err != nil {
			// An installed record always has its install event.
			if delErr := txStore.DeleteInstalled(txCtx, appID); delErr != nil {
				err = errors.Join(err, delErr)
			}
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to append install event")
		}
		result = &models.InstallResult{App: installed, Created: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		tracer.Bool(tracer.AttrCreated, result.Created),
		tracer.Int(tracer.AttrRiskScore, result.App.RiskScore),
	)
	if s.metrics != nil {
		s.metrics.IncrementInstalls(result.Created)
	}
	if result.Created {
		s.logger.InfoContext(ctx, "app installed",
			"app_id", appID,
			"risk_score", result.App.RiskScore,
			"risk_level", assessment.Level,
			"request_id", requestcontext.RequestID(ctx),
		)
		s.recordEvent(ctx, event, result.App.RiskScore)
		s.refreshInstalledGauge(ctx)
	}
	return result, nil
}

// GetInstalled returns the installed record for appID.
func (s *Service) GetInstalled(ctx context.Context, appID string) (*models.InstalledApp, error) {
	app, err := s.store.FindInstalled(ctx, appID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, pkgerrors.NotFound(MsgAppNotInstalled)
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to read installed app")
	}
	return app, nil
}

// RuntimeRisk returns the live score, access count and last activity of an installed app.
func (s *Service) RuntimeRisk(ctx context.Context, appID string) (*models.RuntimeRisk, error) {
	app, err := s.store.FindInstalled(ctx, appID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, pkgerrors.NotFound(MsgAppNotMonitored)
		}
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to read installed app")
	}
	snapshot := app.RuntimeRisk()
	return &snapshot, nil
}

// ListInstalled returns installed apps in install order.
func (s *Service) ListInstalled(ctx context.Context) ([]*models.InstalledApp, error) {
	apps, err := s.store.ListInstalled(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to list installed apps")
	}
	return apps, nil
}

// Timeline returns an app's events newest first. Events with equal dates keep
// insertion order. Unknown or uninstalled apps yield an empty list.
func (s *Service) Timeline(ctx context.Context, appID string) ([]*models.TimelineEvent, error) {
	events, err := s.store.ListEvents(ctx, models.EventFilter{AppID: appID})
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to list timeline")
	}
	sortNewestFirst(events, func(e *models.TimelineEvent) time.Time { return e.Date })
	return events, nil
}

// Alerts returns warning and alert events across all apps, newest first,
// with each app's display name resolved from the catalog.
func (s *Service) Alerts(ctx context.Context) ([]models.Alert, error) {
	events, err := s.store.ListEvents(ctx, models.EventFilter{Severities: models.AlertSeverities})
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to list alerts")
	}

	names := make(map[string]string)
	alerts := make([]models.Alert, 0, len(events))
	for _, e := range events {
		name, ok := names[e.AppID]
		if !ok {
			name = s.resolveAppName(ctx, e.AppID)
			names[e.AppID] = name
		}
		alerts = append(alerts, models.Alert{TimelineEvent: *e, AppName: name})
	}
	sortNewestFirst(alerts, func(a models.Alert) time.Time { return a.Date })
	return alerts, nil
}

func (s *Service) resolveAppName(ctx context.Context, appID string) string {
	app, err := s.catalog.FindByID(ctx, appID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to resolve app name for alert",
				"app_id", appID,
				"error", err,
			)
		}
		return models.UnknownAppName
	}
	return app.Name
}

// Reset clears every installed app and timeline event. It waits for in-flight
// installs and activities so none straddles the reset.
func (s *Service) Reset(ctx context.Context) (err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanReset)
	defer func() { span.End(err) }()

	err = s.tx.RunExclusive(ctx, func(txCtx context.Context, txStore Store) error {
		if err := txStore.Reset(txCtx); err != nil {
			return pkgerrors.Wrap(err, pkgerrors.CodeInternal, "failed to reset simulation")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.IncrementResets()
		s.metrics.SetInstalledApps(0)
	}
	s.logger.InfoContext(ctx, "simulation reset",
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// recordEvent publishes a stored event and updates metrics.
func (s *Service) recordEvent(ctx context.Context, event *models.TimelineEvent, score int) {
	if s.metrics != nil {
		s.metrics.IncrementTimelineEvents(string(event.Type))
		s.metrics.ObserveRiskScore(score)
	}
	if s.publisher != nil {
		s.publisher.Publish(ctx, *event)
	}
}

func (s *Service) refreshInstalledGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	count, err := s.store.CountInstalled(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to count installed apps", "error", err)
		return
	}
	s.metrics.SetInstalledApps(count)
}

// sortNewestFirst is a stable descending sort by date.
func sortNewestFirst[T any](items []T, date func(T) time.Time) {
	slices.SortStableFunc(items, func(a, b T) int {
		return date(b).Compare(date(a))
	})
}
