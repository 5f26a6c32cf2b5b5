package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string) error
	GetResponseList() ([]map[string]interface{}, error)
	GetLastResponseBody() []byte
}

// RegisterSteps registers catalog and risk preview step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &catalogSteps{tc: tc}

	ctx.Step(`^I list the app catalog$`, steps.listCatalog)
	ctx.Step(`^the catalog should contain apps "([^"]*)"$`, steps.catalogShouldContainApps)
	ctx.Step(`^app "([^"]*)" should request permission "([^"]*)"$`, steps.appShouldRequestPermission)
	ctx.Step(`^I preview the risk of "([^"]*)"$`, steps.previewRisk)
	ctx.Step(`^the risk preview should be "([^"]*)" with score (\d+)$`, steps.riskPreviewShouldBe)
	ctx.Step(`^the risk reasons should include "([^"]*)"$`, steps.riskReasonsShouldInclude)
	ctx.Step(`^the risk reasons should be empty$`, steps.riskReasonsShouldBeEmpty)
	ctx.Step(`^the recommendation should be "([^"]*)"$`, steps.recommendationShouldBe)
}

type catalogSteps struct {
	tc TestContext
}

type assessment struct {
	Level          string   `json:"level"`
	Score          int      `json:"score"`
	Reasons        []string `json:"reasons"`
	Recommendation string   `json:"recommendation"`
}

func (s *catalogSteps) listCatalog(ctx context.Context) error {
	return s.tc.GET("/api/apps")
}

func (s *catalogSteps) catalogShouldContainApps(ctx context.Context, csv string) error {
	apps, err := s.tc.GetResponseList()
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(apps))
	for _, app := range apps {
		ids = append(ids, fmt.Sprint(app["id"]))
	}
	want := splitCSV(csv)
	if !slices.Equal(ids, want) {
		return fmt.Errorf("expected catalog %v but got %v", want, ids)
	}
	return nil
}

func (s *catalogSteps) appShouldRequestPermission(ctx context.Context, appID, permission string) error {
	apps, err := s.tc.GetResponseList()
	if err != nil {
		return err
	}
	for _, app := range apps {
		if app["id"] != appID {
			continue
		}
		perms, _ := app["requestedPermissions"].([]interface{})
		for _, p := range perms {
			if p == permission {
				return nil
			}
		}
		return fmt.Errorf("app %s does not request %s: %v", appID, permission, perms)
	}
	return fmt.Errorf("app %s not in catalog", appID)
}

func (s *catalogSteps) previewRisk(ctx context.Context, appID string) error {
	return s.tc.POST("/api/preview-risk", map[string]interface{}{"appId": appID})
}

func (s *catalogSteps) decode() (assessment, error) {
	var a assessment
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &a); err != nil {
		return a, fmt.Errorf("failed to parse risk preview: %w", err)
	}
	return a, nil
}

func (s *catalogSteps) riskPreviewShouldBe(ctx context.Context, level string, score int) error {
	a, err := s.decode()
	if err != nil {
		return err
	}
	if a.Level != level || a.Score != score {
		return fmt.Errorf("expected %s/%d but got %s/%d", level, score, a.Level, a.Score)
	}
	return nil
}

func (s *catalogSteps) riskReasonsShouldInclude(ctx context.Context, reason string) error {
	a, err := s.decode()
	if err != nil {
		return err
	}
	if !slices.Contains(a.Reasons, reason) {
		return fmt.Errorf("reason %q not in %v", reason, a.Reasons)
	}
	return nil
}

func (s *catalogSteps) riskReasonsShouldBeEmpty(ctx context.Context) error {
	a, err := s.decode()
	if err != nil {
		return err
	}
	if a.Reasons == nil {
		return fmt.Errorf("reasons should be an empty list, not null")
	}
	if len(a.Reasons) != 0 {
		return fmt.Errorf("expected no reasons but got %v", a.Reasons)
	}
	return nil
}

func (s *catalogSteps) recommendationShouldBe(ctx context.Context, expected string) error {
	a, err := s.decode()
	if err != nil {
		return err
	}
	if a.Recommendation != expected {
		return fmt.Errorf("expected recommendation %q but got %q", expected, a.Recommendation)
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
