// Package risk scores catalog apps before install. Assess is pure: the same
// app always yields the same assessment.
package risk

import (
	"slices"
	"strings"

	"consentintel/internal/catalog/models"
)

type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

const (
	MinScore = 0
	MaxScore = 100

	highThreshold   = 60
	mediumThreshold = 30
)

// Rule weights.
const (
	weightHighRiskPermissions = 30
	weightCategoryMismatch    = 25
	weightPartnerSharing      = 20
	weightAdvertising         = 20
	weightRetention           = 15
)

// HighRiskPermissions are flagged wherever they appear in a request.
var HighRiskPermissions = []string{"Microphone", "Contacts", "Location"}

const (
	RecommendationHigh   = "High risk detected. Proceed with caution or deny permissions."
	RecommendationMedium = "Review permissions carefully before installing."
	RecommendationLow    = "Safe to install."
)

// Assessment is the outcome of scoring one app.
type Assessment struct {
	Level          Level    `json:"level"`
	Score          int      `json:"score"`
	Reasons        []string `json:"reasons"`
	Recommendation string   `json:"recommendation"`
}

type keywordRule struct {
	keyword string
	weight  int
	reason  string
}

var keywordRules = []keywordRule{
	{"share with partners", weightPartnerSharing, "Policy allows data sharing with 3rd parties."},
	{"advertising", weightAdvertising, "Data used for advertising purposes."},
	{"retain data", weightRetention, "Data retention period is indefinite/long-term."},
}

// Assess applies the rules in order: high-risk permissions, category
// mismatches, then policy keywords. The sum is clamped to [0,100].
func Assess(app models.App) Assessment {
	score := 0
	reasons := []string{}

	var flagged []string
	for _, p := range app.RequestedPermissions {
		if slices.Contains(HighRiskPermissions, p) {
			flagged = append(flagged, p)
		}
	}
	if len(flagged) > 0 {
		score += weightHighRiskPermissions
		reasons = append(reasons, "Requests high-risk permissions: "+strings.Join(flagged, ", "))
	}

	// Independent checks; an app could in principle trip both.
	if app.Category == "Tools" && app.HasPermission("Contacts") {
		score += weightCategoryMismatch
		reasons = append(reasons, "Permission mismatch: 'Tools' app asking for Contacts.")
	}
	if app.Category == "Game" && app.HasPermission("Location") {
		score += weightCategoryMismatch
		reasons = append(reasons, "Permission mismatch: 'Game' app asking for Location.")
	}

	for _, rule := range keywordRules {
		if hasKeyword(app.PolicyKeywords, rule.keyword) {
			score += rule.weight
			reasons = append(reasons, rule.reason)
		}
	}

	score = Clamp(score)
	level := LevelFor(score)
	return Assessment{
		Level:          level,
		Score:          score,
		Reasons:        reasons,
		Recommendation: RecommendationFor(level),
	}
}

// hasKeyword reports whether any policy keyword contains needle.
func hasKeyword(keywords []string, needle string) bool {
	for _, k := range keywords {
		if strings.Contains(k, needle) {
			return true
		}
	}
	return false
}

func Clamp(score int) int {
	return min(max(score, MinScore), MaxScore)
}

// LevelFor uses strict thresholds: 60 is MEDIUM, 61 is HIGH; 30 is LOW.
func LevelFor(score int) Level {
	switch {
	case score > highThreshold:
		return LevelHigh
	case score > mediumThreshold:
		return LevelMedium
	default:
		return LevelLow
	}
}

func RecommendationFor(level Level) string {
	switch level {
	case LevelHigh:
		return RecommendationHigh
	case LevelMedium:
		return RecommendationMedium
	default:
		return RecommendationLow
	}
}
