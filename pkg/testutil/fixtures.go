package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	catalogmodels "consentintel/internal/catalog/models"
)

// BaseTime is the fixed instant fixtures and clocks start from.
var BaseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// AppBuilder builds catalog apps for tests.
type AppBuilder struct {
	app catalogmodels.App
}

func NewApp(id string) *AppBuilder {
	return &AppBuilder{app: catalogmodels.App{
		ID:                   id,
		Name:                 "Test App " + id,
		Category:             "Utility",
		RequestedPermissions: []string{},
		PolicyKeywords:       []string{},
	}}
}

func (b *AppBuilder) Named(name string) *AppBuilder {
	b.app.Name = name
	return b
}

func (b *AppBuilder) InCategory(category string) *AppBuilder {
	b.app.Category = category
	return b
}

func (b *AppBuilder) WithPermissions(perms ...string) *AppBuilder {
	b.app.RequestedPermissions = append(b.app.RequestedPermissions, perms...)
	return b
}

func (b *AppBuilder) WithKeywords(keywords ...string) *AppBuilder {
	b.app.PolicyKeywords = append(b.app.PolicyKeywords, keywords...)
	return b
}

func (b *AppBuilder) Build() catalogmodels.App {
	return b.app.Clone()
}

// StepClock returns BaseTime, then advances by step on every call. Safe for
// concurrent use.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func NewStepClock(step time.Duration) *StepClock {
	return &StepClock{next: BaseTime, step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}

// FixedClock always returns t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SequenceIDs returns an id generator yielding prefix-1, prefix-2, ...
func SequenceIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
