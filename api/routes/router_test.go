package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kisanmitra/kisanmitra/internal/farmdata"
	"github.com/kisanmitra/kisanmitra/pkg/config"
	"github.com/kisanmitra/kisanmitra/pkg/metrics"
	"github.com/kisanmitra/kisanmitra/pkg/types"
)

func testConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Env: config.AppEnvDev, Name: "KisanMitra", Version: "test"},
		Server: config.ServerConfig{CORSOrigins: []string{"http://localhost:8081"}},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	repo := farmdata.NewSeededRepository(
		farmdata.WithClock(func() time.Time { return time.Date(2026, 10, 17, 6, 0, 0, 0, time.UTC) }),
	)
	return NewRouter(testConfig(), nil, repo, metrics.NewHTTPMetrics(reg), promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) types.ErrorBody {
	t.Helper()
	var body types.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := serve(router, http.MethodGet, path, "")
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		if resp.Header().Get("X-KisanMitra-Env") != config.AppEnvDev {
			t.Fatalf("%s: missing env header", path)
		}
	}
}

func TestWeatherValidatesCoordinates(t *testing.T) {
	router := newTestRouter(t)

	resp := serve(router, http.MethodGet, "/api/weather?lat=120&lon=77", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Message != "query parameter out of range" || body.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error body %+v", body)
	}

	resp = serve(router, http.MethodGet, "/api/weather/forecast?lat=28.6&lon=77.2&days=3", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var forecast []types.WeatherData
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		t.Fatalf("decode forecast: %v", err)
	}
	if len(forecast) != 3 || forecast[0].Date != "2026-10-17" {
		t.Fatalf("unexpected forecast %+v", forecast)
	}
}

func TestWeatherAdvisoryRoute(t *testing.T) {
	router := newTestRouter(t)

	resp := serve(router, http.MethodGet, "/api/weather/farming-advisory?lat=28.6&lon=77.2&days=2", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var adv types.FarmingAdvisory
	if err := json.NewDecoder(resp.Body).Decode(&adv); err != nil {
		t.Fatalf("decode advisory: %v", err)
	}
	if adv.Date != "2026-10-17" || len(adv.Outlook) != 2 {
		t.Fatalf("unexpected advisory %+v", adv)
	}
	if len(adv.Alerts) == 0 || len(adv.Advice) == 0 || adv.Activity == "" {
		t.Fatalf("advisory missing guidance %+v", adv)
	}

	resp = serve(router, http.MethodGet, "/api/weather/farming-advisory?lat=28.6", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without lon, got %d", resp.Code)
	}
}

func TestCropRoutes(t *testing.T) {
	router := newTestRouter(t)

	resp := serve(router, http.MethodGet, "/api/crops", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected userId to be required, got %d", resp.Code)
	}

	resp = serve(router, http.MethodPost, "/api/crops", `{"userId":1,"name":"Gram","variety":"Pusa 256","plantingDate":"2026-11-01","harvestDate":"2026-10-01","stage":"planted"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected harvest-before-planting to be rejected, got %d", resp.Code)
	}

	resp = serve(router, http.MethodPost, "/api/crops", `{"userId":1,"name":"Gram","variety":"Pusa 256","plantingDate":"2026-11-01","harvestDate":"2027-03-01","stage":"planted"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created types.CropInfo
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode crop: %v", err)
	}
	if created.ID == "" || created.Name != "Gram" {
		t.Fatalf("unexpected crop %+v", created)
	}

	resp = serve(router, http.MethodPut, "/api/crops/"+created.ID, `{}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected empty patch to be rejected, got %d", resp.Code)
	}

	resp = serve(router, http.MethodPut, "/api/crops/does-not-exist", `{"stage":"growing"}`)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Message != "crop not found" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestAdviceRejectsUnknownCategory(t *testing.T) {
	router := newTestRouter(t)

	resp := serve(router, http.MethodGet, "/api/advice?category=weeding", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	resp = serve(router, http.MethodGet, "/api/advice?category=Harvest", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected case-insensitive category, got %d", resp.Code)
	}
}

func TestUserUpdateNormalizesPhone(t *testing.T) {
	router := newTestRouter(t)

	resp := serve(router, http.MethodPut, "/api/user/1", `{"phone":"98765-01234"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var user types.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Phone != "9876501234" {
		t.Fatalf("expected digits-only phone, got %q", user.Phone)
	}

	resp = serve(router, http.MethodPut, "/api/user/1", `{"phone":"12345"}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid phone to be rejected, got %d", resp.Code)
	}

	resp = serve(router, http.MethodGet, "/api/user/abc", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected invalid id to be rejected, got %d", resp.Code)
	}
}

func TestUnknownRoutesUseErrorBody(t *testing.T) {
	router := newTestRouter(t)

	resp := serve(router, http.MethodGet, "/api/tractors", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	if body := decodeError(t, resp); body.Code != "NOT_FOUND" {
		t.Fatalf("unexpected body %+v", body)
	}

	resp = serve(router, http.MethodDelete, "/api/crops/abc", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected method not allowed to map to 400, got %d", resp.Code)
	}
}

func TestMetricsEndpointExposesHTTPMetrics(t *testing.T) {
	router := newTestRouter(t)
	serve(router, http.MethodGet, "/api/advice?userId=1", "")

	resp := serve(router, http.MethodGet, "/metrics", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `kisanmitra_http_requests_total{method="GET",route="/api/advice",status="200"} 1`) {
		t.Fatalf("expected advice request to be counted:\n%s", resp.Body.String())
	}
}
