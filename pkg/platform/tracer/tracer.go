// Package tracer is the tracing facade used by services, so domain code
// depends on span names and attribute keys rather than on a tracing backend.
package tracer

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
)

// Span represents an active trace span. End must be called exactly once.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

type Attribute = attribute.KeyValue

func String(key, value string) Attribute {
	return attribute.String(key, value)
}

func Bool(key string, value bool) Attribute {
	return attribute.Bool(key, value)
}

func Int(key string, value int) Attribute {
	return attribute.Int(key, value)
}

// Span names.
const (
	SpanInstall          = "consent.install"
	SpanSimulateActivity = "consent.simulate_activity"
	SpanReset            = "consent.reset"
	SpanPreviewRisk      = "catalog.preview_risk"
)

// Attribute keys shared across spans.
const (
	AttrAppID        = "app.id"
	AttrActivityType = "activity.type"
	AttrRiskScore    = "risk.score"
	AttrRiskLevel    = "risk.level"
	AttrCreated      = "install.created"
	AttrErrorCode    = "error.code"
)
