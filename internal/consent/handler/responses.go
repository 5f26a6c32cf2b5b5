package handler

import "consentintel/internal/consent/models"

// InstallResponse is returned by POST /api/install-app.
type InstallResponse struct {
	Message string               `json:"message"`
	App     *models.InstalledApp `json:"app"`
}

// MessageResponse carries a bare status message.
type MessageResponse struct {
	Message string `json:"message"`
}

const resetMessage = "Simulation reset."
