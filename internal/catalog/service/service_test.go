package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"consentintel/internal/catalog/metrics"
	"consentintel/internal/catalog/models"
	"consentintel/internal/catalog/store"
	"consentintel/internal/risk"
	dErrors "consentintel/pkg/domain-errors"
)

type CatalogServiceSuite struct {
	suite.Suite
	ctx     context.Context
	metrics *metrics.Metrics
	service *Service
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}

func (s *CatalogServiceSuite) SetupTest() {
	s.ctx = context.Background()
	catalog, err := store.LoadDefault()
	s.Require().NoError(err)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(catalog, WithMetrics(s.metrics))
}

func (s *CatalogServiceSuite) TestListApps() {
	apps, err := s.service.ListApps(s.ctx)
	s.Require().NoError(err)
	s.Len(apps, 4)
	s.Equal(float64(4), testutil.ToFloat64(s.metrics.CatalogSize))
}

func (s *CatalogServiceSuite) TestPreviewRisk() {
	s.Run("scores a catalog app", func() {
		got, err := s.service.PreviewRisk(s.ctx, "app_3")
		s.Require().NoError(err)
		s.Equal(75, got.Score)
		s.Equal(risk.LevelHigh, got.Level)
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.RiskPreviews.WithLabelValues("HIGH")))
	})

	s.Run("unknown app is not found", func() {
		got, err := s.service.PreviewRisk(s.ctx, "app_999")
		s.Nil(got)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal(ErrAppNotFound, err.Error())
		s.Equal(float64(1), testutil.ToFloat64(s.metrics.PreviewMisses))
	})

	s.Run("preview leaves catalog untouched", func() {
		before, err := s.service.ListApps(s.ctx)
		s.Require().NoError(err)
		_, err = s.service.PreviewRisk(s.ctx, "app_1")
		s.Require().NoError(err)
		after, err := s.service.ListApps(s.ctx)
		s.Require().NoError(err)
		s.Equal(before, after)
	})
}

type failingStore struct{}

func (failingStore) List(context.Context) ([]models.App, error) {
	return nil, errors.New("disk on fire")
}

func (failingStore) FindByID(context.Context, string) (*models.App, error) {
	return nil, errors.New("disk on fire")
}

func (s *CatalogServiceSuite) TestStoreFailuresAreInternal() {
	svc := New(failingStore{})

	_, err := svc.ListApps(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	_, err = svc.FindApp(s.ctx, "app_1")
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}
