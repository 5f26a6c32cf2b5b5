package handler

// PreviewRiskRequest is the body of POST /api/preview-risk.
// AppID is matched exactly against the catalog.
type PreviewRiskRequest struct {
	AppID string `json:"appId" validate:"required,notblank"`
}
