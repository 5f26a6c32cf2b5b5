package handler

// Handler tests cover status mapping and request validation. Scoring itself is
// covered in internal/risk and end to end in e2e/features.

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"consentintel/internal/catalog/handler/mocks"
	"consentintel/internal/catalog/models"
	"consentintel/internal/risk"
	dErrors "consentintel/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/catalog-mocks.go -package=mocks Service

type CatalogHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerSuite))
}

func (s *CatalogHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func (s *CatalogHandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *CatalogHandlerSuite) assertStatusAndError(w *httptest.ResponseRecorder, status int, code string) {
	s.Equal(status, w.Code)
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Equal(code, resp["error"])
}

func (s *CatalogHandlerSuite) TestListApps() {
	s.Run("returns catalog with camelCase fields", func() {
		s.service.EXPECT().ListApps(gomock.Any()).Return([]models.App{
			{ID: "app_4", Name: "Secure Notes", RequestedPermissions: []string{"Storage"}, PolicyKeywords: []string{}},
		}, nil)

		w := s.do(http.MethodGet, "/apps", nil)

		s.Equal(http.StatusOK, w.Code)
		var apps []map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &apps))
		s.Require().Len(apps, 1)
		s.Equal("app_4", apps[0]["id"])
		s.Equal([]any{"Storage"}, apps[0]["requestedPermissions"])
	})

	s.Run("service failure returns 500", func() {
		s.service.EXPECT().ListApps(gomock.Any()).Return(nil, dErrors.New(dErrors.CodeInternal, "boom"))

		w := s.do(http.MethodGet, "/apps", nil)

		s.assertStatusAndError(w, http.StatusInternalServerError, "internal_error")
	})
}

func (s *CatalogHandlerSuite) TestPreviewRisk() {
	s.Run("returns assessment", func() {
		s.service.EXPECT().PreviewRisk(gomock.Any(), "app_2").Return(&risk.Assessment{
			Level:          risk.LevelLow,
			Score:          30,
			Reasons:        []string{"Requests high-risk permissions: Location"},
			Recommendation: risk.RecommendationLow,
		}, nil)

		w := s.do(http.MethodPost, "/preview-risk", map[string]string{"appId": "app_2"})

		s.Equal(http.StatusOK, w.Code)
		var got risk.Assessment
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
		s.Equal(30, got.Score)
		s.Equal(risk.LevelLow, got.Level)
	})

	s.Run("unknown app returns 404", func() {
		s.service.EXPECT().PreviewRisk(gomock.Any(), "app_999").Return(nil, dErrors.NotFound("App not found"))

		w := s.do(http.MethodPost, "/preview-risk", map[string]string{"appId": "app_999"})

		s.assertStatusAndError(w, http.StatusNotFound, "not_found")
	})

	s.Run("appId is looked up exactly as sent", func() {
		s.service.EXPECT().PreviewRisk(gomock.Any(), " app_2 ").Return(nil, dErrors.NotFound("App not found"))

		w := s.do(http.MethodPost, "/preview-risk", map[string]string{"appId": " app_2 "})

		s.assertStatusAndError(w, http.StatusNotFound, "not_found")
	})

	s.Run("missing appId returns 400 without calling service", func() {
		w := s.do(http.MethodPost, "/preview-risk", map[string]string{})

		s.assertStatusAndError(w, http.StatusBadRequest, "validation_error")
	})

	s.Run("malformed body returns 400", func() {
		req := httptest.NewRequest(http.MethodPost, "/preview-risk", bytes.NewBufferString("{"))
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.assertStatusAndError(w, http.StatusBadRequest, "bad_request")
	})
}
