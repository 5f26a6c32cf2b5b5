package models

import (
	"strings"
	"time"

	dErrors "consentintel/pkg/domain-errors"
)

const maxRiskScore = 100

// InstalledApp is the monitored state of one installed catalog app.
//
// At most one InstalledApp exists per AppID. After install, RiskScore and
// PermissionAccessCount only ever grow; RiskScore never exceeds 100.
type InstalledApp struct {
	AppID                 string    `json:"appId"`
	Name                  string    `json:"name"`
	InstallDate           time.Time `json:"installDate"`
	PermissionAccessCount int       `json:"permissionAccessCount"`
	LastActive            time.Time `json:"lastActive"`
	RiskScore             int       `json:"riskScore"`
}

// NewInstalledApp creates an InstalledApp with domain invariant checks.
func NewInstalledApp(appID, name string, baselineScore int, now time.Time) (*InstalledApp, error) {
	if strings.TrimSpace(appID) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "app ID required")
	}
	if baselineScore < 0 || baselineScore > maxRiskScore {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "baseline risk score out of range")
	}
	if now.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "install time required")
	}
	return &InstalledApp{
		AppID:       appID,
		Name:        name,
		InstallDate: now,
		LastActive:  now,
		RiskScore:   baselineScore,
	}, nil
}

// ApplyActivity folds one activity into the record. Score is capped at 100.
func (a *InstalledApp) ApplyActivity(policy ActivityPolicy, now time.Time) {
	a.PermissionAccessCount += policy.AccessDelta
	a.RiskScore = min(maxRiskScore, a.RiskScore+policy.ScoreDelta)
	a.LastActive = now
}

// RuntimeRisk is the live risk snapshot of an installed app.
type RuntimeRisk struct {
	RiskScore   int       `json:"riskScore"`
	AccessCount int       `json:"accessCount"`
	LastActive  time.Time `json:"lastActive"`
}

func (a *InstalledApp) RuntimeRisk() RuntimeRisk {
	return RuntimeRisk{
		RiskScore:   a.RiskScore,
		AccessCount: a.PermissionAccessCount,
		LastActive:  a.LastActive,
	}
}

type EventType string

const (
	EventTypeInstall           EventType = "install"
	EventTypePermissionGranted EventType = "permission_granted"
	EventTypeUnusualAccess     EventType = "unusual_access"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityAlert   Severity = "alert"
)

// AlertSeverities are the severities surfaced by the alerts feed.
var AlertSeverities = []Severity{SeverityWarning, SeverityAlert}

// TimelineEvent is an append-only record of something that happened to an app.
type TimelineEvent struct {
	ID          string    `json:"id"`
	AppID       string    `json:"appId"`
	Date        time.Time `json:"date"`
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
}

// InstallEventDescription is the description of the event recorded on install.
func InstallEventDescription(level string) string {
	return "App installed. Initial risk assessment: " + level
}

// Alert is a warning or alert event with its app's display name resolved.
type Alert struct {
	TimelineEvent
	AppName string `json:"appName"`
}

// UnknownAppName is shown for alerts whose app is missing from the catalog.
const UnknownAppName = "Unknown App"

// EventFilter narrows ListEvents. Zero values match everything.
type EventFilter struct {
	AppID      string
	Severities []Severity
}

// InstallResult reports the installed record and whether this call created it.
type InstallResult struct {
	App     *InstalledApp
	Created bool
}

// Message is the client-facing summary of the install outcome.
func (r InstallResult) Message() string {
	if r.Created {
		return "App installed successfully"
	}
	return "App already installed"
}

// ActivityResult is the outcome of one simulated activity.
type ActivityResult struct {
	Success  bool   `json:"success"`
	NewScore int    `json:"newScore"`
	Event    string `json:"event"`
}
