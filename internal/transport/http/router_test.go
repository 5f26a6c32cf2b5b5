package httptransport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	catalogHandler "consentintel/internal/catalog/handler"
	catalogService "consentintel/internal/catalog/service"
	catalogStore "consentintel/internal/catalog/store"
	consentHandler "consentintel/internal/consent/handler"
	consentModels "consentintel/internal/consent/models"
	consentService "consentintel/internal/consent/service"
	consentStore "consentintel/internal/consent/store"
	"consentintel/internal/platform/health"
	"consentintel/internal/realtime"
	"consentintel/pkg/platform/middleware/request"
)

// RouterSuite drives the assembled router over a real listener so middleware
// ordering and websocket upgrades are exercised end to end.
type RouterSuite struct {
	suite.Suite
	server  *httptest.Server
	hub     *realtime.Hub
	metrics *request.Metrics
	cancel  context.CancelFunc
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog, err := catalogStore.LoadDefault()
	s.Require().NoError(err)

	s.hub = realtime.NewHub(logger, realtime.WithAllowedOrigins([]string{"*"}))
	var ctx context.Context
	ctx, s.cancel = context.WithCancel(context.Background())
	go func() { _ = s.hub.Run(ctx) }()
	s.Require().Eventually(func() bool { return s.hub.Ready(ctx) == nil }, time.Second, 5*time.Millisecond)

	consent := consentService.NewService(consentStore.New(), catalog, logger, consentService.WithPublisher(s.hub))
	healthHandler := health.New("test")
	healthHandler.RegisterCheck("realtime", s.hub.Ready)

	s.metrics = request.NewMetrics(prometheus.NewRegistry())
	s.server = httptest.NewServer(NewRouter(RouterConfig{
		Logger:         logger,
		Metrics:        s.metrics,
		AllowedOrigins: []string{"*"},
		RequestTimeout: 5 * time.Second,
		MaxBodyBytes:   1 << 20,
		Health:         healthHandler,
		API: []RouteRegistrar{
			catalogHandler.New(catalogService.New(catalog, catalogService.WithLogger(logger)), logger),
			consentHandler.New(consent, logger),
		},
		Streaming: []RouteRegistrar{s.hub},
	}))
}

func (s *RouterSuite) TearDownTest() {
	s.server.Close()
	s.cancel()
}

func (s *RouterSuite) send(method, path, body string) (*http.Response, []byte) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp, raw
}

func (s *RouterSuite) TestBanner() {
	resp, body := s.send(http.MethodGet, "/", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(BannerText, string(body))
	s.NotEmpty(resp.Header.Get("X-Request-ID"))
}

func (s *RouterSuite) TestHealthReady() {
	resp, _ := s.send(http.MethodGet, "/health/ready", "")
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *RouterSuite) TestInstallThenListThroughAPI() {
	resp, body := s.send(http.MethodPost, "/api/install-app", `{"appId":"app_2"}`)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(body))
	s.Equal("application/json", resp.Header.Get("Content-Type"))

	resp, body = s.send(http.MethodGet, "/api/installed-apps", "")
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	var installed []map[string]any
	s.Require().NoError(json.Unmarshal(body, &installed))
	s.Require().Len(installed, 1)
	s.Equal("app_2", installed[0]["appId"])
}

func (s *RouterSuite) TestRejectsNonJSONBody() {
	req, err := http.NewRequest(http.MethodPost, s.server.URL+"/api/install-app", strings.NewReader("appId=app_1"))
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnsupportedMediaType, resp.StatusCode)
}

func (s *RouterSuite) TestCORSPreflight() {
	req, err := http.NewRequest(http.MethodOptions, s.server.URL+"/api/install-app", nil)
	s.Require().NoError(err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusNoContent, resp.StatusCode)
	s.Equal("*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func (s *RouterSuite) TestLatencyUsesRoutePattern() {
	s.send(http.MethodGet, "/api/timeline/app_1", "")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/api/timeline/{appId}", "200")))
}

func (s *RouterSuite) TestWebSocketReceivesSimulatedActivity() {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http") + "/api/ws/timeline"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer conn.Close()
	defer resp.Body.Close()
	s.Require().Eventually(func() bool { return s.hub.ConnectedClients() == 1 }, time.Second, 5*time.Millisecond)

	installResp, _ := s.send(http.MethodPost, "/api/install-app", `{"appId":"app_1"}`)
	s.Require().Equal(http.StatusOK, installResp.StatusCode)

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var evt realtime.Event
	s.Require().NoError(conn.ReadJSON(&evt))
	s.Equal(realtime.EventTimeline, evt.Type)
	s.Equal("app_1", evt.Data.AppID)
	s.Equal(consentModels.EventTypeInstall, evt.Data.Type)
}
