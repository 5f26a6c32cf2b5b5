package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"consentintel/internal/catalog/models"
	"consentintel/pkg/platform/sentinel"
)

type CatalogStoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestCatalogStoreSuite(t *testing.T) {
	suite.Run(t, new(CatalogStoreSuite))
}

func (s *CatalogStoreSuite) SetupTest() {
	store, err := LoadDefault()
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func (s *CatalogStoreSuite) TestDefaultCatalog() {
	apps, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(apps, 4)

	ids := make([]string, len(apps))
	for i, a := range apps {
		ids[i] = a.ID
	}
	s.Equal([]string{"app_1", "app_2", "app_3", "app_4"}, ids)

	game := apps[0]
	s.Equal("GameX - Ultimate Battle", game.Name)
	s.Equal("Game", game.Category)
	s.Equal("Gamepad", game.Icon)
	s.Equal([]string{"Microphone", "Contacts", "Location", "Storage"}, game.RequestedPermissions)
	s.Equal([]string{"advertising", "share with partners", "retain data", "analytics"}, game.PolicyKeywords)
}

func (s *CatalogStoreSuite) TestFindByID() {
	s.Run("known id", func() {
		app, err := s.store.FindByID(s.ctx, "app_3")
		s.Require().NoError(err)
		s.Equal("Flashlight Utility", app.Name)
		s.Equal("Tools", app.Category)
	})

	s.Run("unknown id returns ErrNotFound", func() {
		app, err := s.store.FindByID(s.ctx, "app_999")
		s.Nil(app)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *CatalogStoreSuite) TestReturnsCopies() {
	app, err := s.store.FindByID(s.ctx, "app_4")
	s.Require().NoError(err)
	app.RequestedPermissions[0] = "Microphone"
	app.Name = "tampered"

	again, err := s.store.FindByID(s.ctx, "app_4")
	s.Require().NoError(err)
	s.Equal("Secure Notes", again.Name)
	s.Equal([]string{"Storage"}, again.RequestedPermissions)
}

func TestNew_RejectsInvalidEntries(t *testing.T) {
	_, err := New([]models.App{{ID: " "}})
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)

	_, err = New([]models.App{{ID: "a"}, {ID: "a"}})
	assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("apps: [::"))
	assert.Error(t, err)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := []byte(`apps:
  - id: custom
    name: Custom
    category: Weather
    requestedPermissions: [Location]
`)
	require.NoError(t, os.WriteFile(path, doc, 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	app, err := s.FindByID(context.Background(), "custom")
	require.NoError(t, err)
	assert.Equal(t, []string{}, app.PolicyKeywords)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, s.Len())
}
