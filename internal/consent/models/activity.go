package models

// ActivityType names a simulated runtime behavior. Unknown values are valid
// and fall through to the routine policy.
type ActivityType string

const (
	ActivityAccessSensitive ActivityType = "access_sensitive"
	ActivityDormantAccess   ActivityType = "dormant_access"
)

// ActivityPolicy describes how one activity changes an installed app and
// what gets recorded on its timeline.
type ActivityPolicy struct {
	AccessDelta int
	ScoreDelta  int
	Severity    Severity
	Description string
}

// EventType is derived from severity: only alerts are unusual access.
func (p ActivityPolicy) EventType() EventType {
	return EventTypeForSeverity(p.Severity)
}

func EventTypeForSeverity(s Severity) EventType {
	if s == SeverityAlert {
		return EventTypeUnusualAccess
	}
	return EventTypePermissionGranted
}

var (
	accessSensitivePolicy = ActivityPolicy{
		AccessDelta: 5,
		ScoreDelta:  5,
		Severity:    SeverityWarning,
		Description: "Frequent access to sensitive permission (Microphone) detected.",
	}
	dormantAccessPolicy = ActivityPolicy{
		AccessDelta: 0,
		ScoreDelta:  20,
		Severity:    SeverityAlert,
		Description: "App accessed location while running in background (Dormant Access).",
	}
	routinePolicy = ActivityPolicy{
		AccessDelta: 1,
		ScoreDelta:  0,
		Severity:    SeverityInfo,
		Description: "Routine permission access.",
	}
)

// ActivityPolicyFor returns the policy for t, defaulting to routine access.
func ActivityPolicyFor(t ActivityType) ActivityPolicy {
	switch t {
	case ActivityAccessSensitive:
		return accessSensitivePolicy
	case ActivityDormantAccess:
		return dormantAccessPolicy
	default:
		return routinePolicy
	}
}
