package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"consentintel/internal/catalog/models"
)

var (
	gameX = models.App{
		ID: "app_1", Name: "GameX - Ultimate Battle", Category: "Game",
		RequestedPermissions: []string{"Microphone", "Contacts", "Location", "Storage"},
		PolicyKeywords:       []string{"advertising", "share with partners", "retain data", "analytics"},
	}
	photoEditor = models.App{
		ID: "app_2", Name: "PhotoEditor Pro", Category: "Photography",
		RequestedPermissions: []string{"Camera", "Storage", "Location"},
		PolicyKeywords:       []string{"user content", "enhance photos", "location tag"},
	}
	flashlight = models.App{
		ID: "app_3", Name: "Flashlight Utility", Category: "Tools",
		RequestedPermissions: []string{"Camera", "Contacts", "Location"},
		PolicyKeywords:       []string{"advertising", "tracking", "3rd party share"},
	}
	secureNotes = models.App{
		ID: "app_4", Name: "Secure Notes", Category: "Productivity",
		RequestedPermissions: []string{"Storage"},
		PolicyKeywords:       []string{"encrypted", "local only"},
	}
)

func TestAssess_CatalogApps(t *testing.T) {
	tests := []struct {
		name string
		app  models.App
		want Assessment
	}{
		{
			name: "game with every rule clamps to 100",
			app:  gameX,
			want: Assessment{
				Level: LevelHigh,
				Score: 100,
				Reasons: []string{
					"Requests high-risk permissions: Microphone, Contacts, Location",
					"Permission mismatch: 'Game' app asking for Location.",
					"Policy allows data sharing with 3rd parties.",
					"Data used for advertising purposes.",
					"Data retention period is indefinite/long-term.",
				},
				Recommendation: RecommendationHigh,
			},
		},
		{
			name: "photo editor only trips high-risk permissions",
			app:  photoEditor,
			want: Assessment{
				Level:          LevelLow,
				Score:          30,
				Reasons:        []string{"Requests high-risk permissions: Location"},
				Recommendation: RecommendationLow,
			},
		},
		{
			name: "flashlight asking for contacts",
			app:  flashlight,
			want: Assessment{
				Level: LevelHigh,
				Score: 75,
				Reasons: []string{
					"Requests high-risk permissions: Contacts, Location",
					"Permission mismatch: 'Tools' app asking for Contacts.",
					"Data used for advertising purposes.",
				},
				Recommendation: RecommendationHigh,
			},
		},
		{
			name: "notes app has no reasons",
			app:  secureNotes,
			want: Assessment{
				Level:          LevelLow,
				Score:          0,
				Reasons:        []string{},
				Recommendation: RecommendationLow,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Assess(tc.app))
		})
	}
}

func TestAssess_ReasonsNeverNil(t *testing.T) {
	got := Assess(models.App{ID: "empty"})
	assert.NotNil(t, got.Reasons)
	assert.Empty(t, got.Reasons)
}

func TestAssess_KeywordSubstringMatch(t *testing.T) {
	got := Assess(models.App{
		ID:             "kw",
		PolicyKeywords: []string{"we may share with partners worldwide", "targeted advertising"},
	})
	assert.Equal(t, 40, got.Score)
	assert.Equal(t, LevelMedium, got.Level)
	assert.Equal(t, RecommendationMedium, got.Recommendation)
}

func TestAssess_Deterministic(t *testing.T) {
	first := Assess(gameX)
	for range 10 {
		assert.Equal(t, first, Assess(gameX))
	}
}

func TestAssess_DoesNotMutateInput(t *testing.T) {
	app := flashlight.Clone()
	Assess(app)
	assert.Equal(t, flashlight, app)
}

func TestLevelFor_Thresholds(t *testing.T) {
	tests := []struct {
		score int
		want  Level
	}{
		{0, LevelLow},
		{30, LevelLow},
		{31, LevelMedium},
		{60, LevelMedium},
		{61, LevelHigh},
		{100, LevelHigh},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, LevelFor(tc.score), "score %d", tc.score)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5))
	assert.Equal(t, 55, Clamp(55))
	assert.Equal(t, 100, Clamp(130))
}
