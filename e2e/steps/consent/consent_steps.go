package consent

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string) error
	GetResponseList() ([]map[string]interface{}, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers install, activity, timeline and alert step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &consentSteps{tc: tc}

	// Action steps
	ctx.Step(`^I install "([^"]*)"$`, steps.install)
	ctx.Step(`^"([^"]*)" is installed$`, steps.isInstalled)
	ctx.Step(`^I simulate "([^"]*)" activity on "([^"]*)"$`, steps.simulateActivity)
	ctx.Step(`^I simulate "([^"]*)" activity on "([^"]*)" (\d+) times$`, steps.simulateActivityTimes)
	ctx.Step(`^I request the runtime risk of "([^"]*)"$`, steps.requestRuntimeRisk)
	ctx.Step(`^I request the timeline of "([^"]*)"$`, steps.requestTimeline)
	ctx.Step(`^I request the alerts feed$`, steps.requestAlerts)
	ctx.Step(`^I reset the simulation$`, steps.reset)

	// Assertion steps
	ctx.Step(`^the installed apps should be "([^"]*)"$`, steps.installedAppsShouldBe)
	ctx.Step(`^the runtime risk of "([^"]*)" should be score (\d+) with (\d+) accesses$`, steps.runtimeRiskShouldBe)
	ctx.Step(`^the timeline should have (\d+) events?$`, steps.timelineShouldHaveEvents)
	ctx.Step(`^the newest event should be "([^"]*)" with severity "([^"]*)"$`, steps.newestEventShouldBe)
	ctx.Step(`^the timeline should be ordered newest first$`, steps.timelineOrderedNewestFirst)
	ctx.Step(`^the alerts feed should have (\d+) entr(?:y|ies)$`, steps.alertsShouldHave)
	ctx.Step(`^every alert should name app "([^"]*)"$`, steps.everyAlertShouldName)
}

type consentSteps struct {
	tc TestContext
}

func (s *consentSteps) install(ctx context.Context, appID string) error {
	return s.tc.POST("/api/install-app", map[string]interface{}{"appId": appID})
}

func (s *consentSteps) isInstalled(ctx context.Context, appID string) error {
	if err := s.install(ctx, appID); err != nil {
		return err
	}
	return s.expectOK()
}

func (s *consentSteps) simulateActivity(ctx context.Context, activity, appID string) error {
	return s.tc.POST("/api/simulate-activity", map[string]interface{}{
		"appId": appID,
		"type":  activity,
	})
}

func (s *consentSteps) simulateActivityTimes(ctx context.Context, activity, appID string, n int) error {
	for i := 0; i < n; i++ {
		if err := s.simulateActivity(ctx, activity, appID); err != nil {
			return err
		}
		if err := s.expectOK(); err != nil {
			return err
		}
	}
	return nil
}

func (s *consentSteps) requestRuntimeRisk(ctx context.Context, appID string) error {
	return s.tc.GET("/api/runtime-risk/" + appID)
}

func (s *consentSteps) requestTimeline(ctx context.Context, appID string) error {
	return s.tc.GET("/api/timeline/" + appID)
}

func (s *consentSteps) requestAlerts(ctx context.Context) error {
	return s.tc.GET("/api/alerts")
}

func (s *consentSteps) reset(ctx context.Context) error {
	return s.tc.POST("/api/reset", map[string]interface{}{})
}

func (s *consentSteps) installedAppsShouldBe(ctx context.Context, csv string) error {
	if err := s.tc.GET("/api/installed-apps"); err != nil {
		return err
	}
	apps, err := s.tc.GetResponseList()
	if err != nil {
		return err
	}
	var got []string
	for _, app := range apps {
		got = append(got, fmt.Sprint(app["appId"]))
	}
	want := splitCSV(csv)
	if !slices.Equal(got, want) {
		return fmt.Errorf("expected installed apps %v but got %v", want, got)
	}
	return nil
}

func (s *consentSteps) runtimeRiskShouldBe(ctx context.Context, appID string, score, accesses int) error {
	if err := s.requestRuntimeRisk(ctx, appID); err != nil {
		return err
	}
	if err := s.expectOK(); err != nil {
		return err
	}
	var risk struct {
		RiskScore   int       `json:"riskScore"`
		AccessCount int       `json:"accessCount"`
		LastActive  time.Time `json:"lastActive"`
	}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &risk); err != nil {
		return fmt.Errorf("failed to parse runtime risk: %w", err)
	}
	if risk.RiskScore != score || risk.AccessCount != accesses {
		return fmt.Errorf("expected score %d with %d accesses but got %d with %d", score, accesses, risk.RiskScore, risk.AccessCount)
	}
	if risk.LastActive.IsZero() {
		return fmt.Errorf("lastActive missing")
	}
	return nil
}

func (s *consentSteps) timelineShouldHaveEvents(ctx context.Context, n int) error {
	events, err := s.tc.GetResponseList()
	if err != nil {
		return err
	}
	if len(events) != n {
		return fmt.Errorf("expected %d events but got %d", n, len(events))
	}
	return nil
}

func (s *consentSteps) newestEventShouldBe(ctx context.Context, eventType, severity string) error {
	events, err := s.tc.GetResponseList()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("timeline is empty")
	}
	newest := events[0]
	if newest["type"] != eventType || newest["severity"] != severity {
		return fmt.Errorf("expected newest event %s/%s but got %v/%v", eventType, severity, newest["type"], newest["severity"])
	}
	return nil
}

func (s *consentSteps) timelineOrderedNewestFirst(ctx context.Context) error {
	events, err := s.tc.GetResponseList()
	if err != nil {
		return err
	}
	var prev time.Time
	for i, e := range events {
		date, err := time.Parse(time.RFC3339Nano, fmt.Sprint(e["date"]))
		if err != nil {
			return fmt.Errorf("event %d has unparseable date %v", i, e["date"])
		}
		if i > 0 && date.After(prev) {
			return fmt.Errorf("event %d is newer than event %d", i, i-1)
		}
		prev = date
	}
	return nil
}

func (s *consentSteps) alertsShouldHave(ctx context.Context, n int) error {
	return s.timelineShouldHaveEvents(ctx, n)
}

func (s *consentSteps) everyAlertShouldName(ctx context.Context, name string) error {
	alerts, err := s.tc.GetResponseList()
	if err != nil {
		return err
	}
	for i, a := range alerts {
		if a["appName"] != name {
			return fmt.Errorf("alert %d names %v, expected %s", i, a["appName"], name)
		}
	}
	return nil
}

func (s *consentSteps) expectOK() error {
	if status := s.tc.GetLastResponseStatus(); status != 200 {
		return fmt.Errorf("expected status 200 but got %d: %s", status, string(s.tc.GetLastResponseBody()))
	}
	return nil
}

func splitCSV(csv string) []string {
	var out []string
	for _, part := range strings.Split(csv, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
