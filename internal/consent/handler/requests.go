package handler

import (
	"consentintel/internal/consent/models"
	dErrors "consentintel/pkg/domain-errors"
)

// InstallRequest is the body of POST /api/install-app.
// AppID is matched exactly against the catalog.
type InstallRequest struct {
	AppID string `json:"appId" validate:"required,notblank"`
}

// SimulateActivityRequest is the body of POST /api/simulate-activity.
// Type is optional and passed through as sent; anything that is not an exact
// activity name is treated as routine access.
type SimulateActivityRequest struct {
	AppID string `json:"appId" validate:"required,notblank"`
	Type  string `json:"type"`
}

func (r *SimulateActivityRequest) ActivityType() models.ActivityType {
	return models.ActivityType(r.Type)
}

// appIDParam checks an app id taken from the URL path.
func appIDParam(raw string) (string, error) {
	if raw == "" {
		return "", dErrors.New(dErrors.CodeValidation, "appId is required")
	}
	return raw, nil
}
