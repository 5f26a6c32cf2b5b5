package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"consentintel/internal/consent/models"
	"consentintel/pkg/platform/httputil"
	"consentintel/pkg/requestcontext"
)

// Service defines the interface for installed-app operations.
type Service interface {
	Install(ctx context.Context, appID string) (*models.InstallResult, error)
	RuntimeRisk(ctx context.Context, appID string) (*models.RuntimeRisk, error)
	SimulateActivity(ctx context.Context, appID string, activity models.ActivityType) (*models.ActivityResult, error)
	ListInstalled(ctx context.Context) ([]*models.InstalledApp, error)
	Timeline(ctx context.Context, appID string) ([]*models.TimelineEvent, error)
	Alerts(ctx context.Context) ([]models.Alert, error)
	Reset(ctx context.Context) error
}

// Handler handles install, runtime, timeline, alert and simulation endpoints.
type Handler struct {
	logger  *slog.Logger
	consent Service
}

func New(consent Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		consent: consent,
	}
}

// Register mounts the routes; the caller supplies the /api prefix.
func (h *Handler) Register(r chi.Router) {
	r.Post("/install-app", h.HandleInstall)
	r.Get("/runtime-risk/{appId}", h.HandleRuntimeRisk)
	r.Post("/simulate-activity", h.HandleSimulateActivity)
	r.Get("/installed-apps", h.HandleListInstalled)
	r.Get("/timeline/{appId}", h.HandleTimeline)
	r.Get("/alerts", h.HandleAlerts)
	r.Post("/reset", h.HandleReset)
}

func (h *Handler) HandleInstall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[InstallRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.consent.Install(ctx, req.AppID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to install app",
			"app_id", req.AppID,
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, InstallResponse{
		Message: result.Message(),
		App:     result.App,
	})
}

func (h *Handler) HandleRuntimeRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	appID, err := appIDParam(chi.URLParam(r, "appId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	snapshot, err := h.consent.RuntimeRisk(ctx, appID)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to read runtime risk",
			"app_id", appID,
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) HandleSimulateActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SimulateActivityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.consent.SimulateActivity(ctx, req.AppID, req.ActivityType())
	if err != nil {
		h.logger.WarnContext(ctx, "failed to simulate activity",
			"app_id", req.AppID,
			"activity_type", req.Type,
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleListInstalled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	apps, err := h.consent.ListInstalled(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list installed apps",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	appID, err := appIDParam(chi.URLParam(r, "appId"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.consent.Timeline(ctx, appID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load timeline",
			"app_id", appID,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	alerts, err := h.consent.Alerts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load alerts",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, alerts)
}

func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.consent.Reset(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to reset simulation",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: resetMessage})
}
