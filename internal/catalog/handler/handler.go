package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"consentintel/internal/catalog/models"
	"consentintel/internal/risk"
	"consentintel/pkg/platform/httputil"
	"consentintel/pkg/requestcontext"
)

// Service defines the catalog operations the handler needs.
type Service interface {
	ListApps(ctx context.Context) ([]models.App, error)
	PreviewRisk(ctx context.Context, appID string) (*risk.Assessment, error)
}

type Handler struct {
	logger  *slog.Logger
	catalog Service
}

func New(catalog Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		catalog: catalog,
	}
}

// Register mounts catalog routes; the caller supplies the /api prefix.
func (h *Handler) Register(r chi.Router) {
	r.Get("/apps", h.HandleListApps)
	r.Post("/preview-risk", h.HandlePreviewRisk)
}

func (h *Handler) HandleListApps(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	apps, err := h.catalog.ListApps(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list apps",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) HandlePreviewRisk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[PreviewRiskRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	assessment, err := h.catalog.PreviewRisk(ctx, req.AppID)
	if err != nil {
		h.logger.WarnContext(ctx, "risk preview failed",
			"app_id", req.AppID,
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, assessment)
}
