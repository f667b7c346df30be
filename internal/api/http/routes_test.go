package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/stormwind/internal/config"
	"github.com/i474232898/stormwind/internal/store"
	"github.com/i474232898/stormwind/internal/weather"
)

type stubProvider struct{}

func (stubProvider) Name() string { return "stub" }

func (stubProvider) FetchReport(ctx context.Context, cfg config.Config) (weather.Report, error) {
	return weather.Report{
		Current: weather.Current{Temperature: -0.3, WeatherCode: 95},
		Hourly: weather.Hourly{
			Time:                     []string{},
			Temperature:              []float64{},
			PrecipitationProbability: []float64{},
			Precipitation:            []float64{},
		},
	}, nil
}

func (stubProvider) FetchAirQuality(ctx context.Context, cfg config.Config) (*weather.AirQuality, error) {
	return nil, nil
}

func setup(t *testing.T) (*fiber.App, *weather.Service, config.Config) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Lat, cfg.Lon = 50.11, 19.92
	cfg.CacheSeconds = 0

	svc := weather.NewService(stubProvider{}, nil, nil).WithStore(store.NewMemoryStore(10, time.Hour))
	app := fiber.New()
	RegisterRoutes(app, svc, weather.LocationOf(cfg))
	return app, svc, cfg
}

func get(t *testing.T, app *fiber.App, target string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestLatestBeforeFirstRun(t *testing.T) {
	app, _, _ := setup(t)
	status, _ := get(t, app, "/api/v1/weather")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLatestAfterRender(t *testing.T) {
	app, svc, cfg := setup(t)
	want, err := svc.Render(context.Background(), cfg)
	require.NoError(t, err)

	status, body := get(t, app, "/api/v1/weather")
	require.Equal(t, http.StatusOK, status)

	var got weather.Output
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, want, got)
	assert.Equal(t, weather.DefaultIcons.Thunderstorm+" 0°", got.Text)
}

func TestHistoryValidation(t *testing.T) {
	app, _, _ := setup(t)

	testCases := []struct {
		name   string
		target string
	}{
		{"missing parameters", "/api/v1/weather/history"},
		{"missing to", "/api/v1/weather/history?from=2026-10-19T10:00:00Z"},
		{"bad format", "/api/v1/weather/history?from=yesterday&to=today"},
		{"reversed range", "/api/v1/weather/history?from=2026-10-19T12:00:00Z&to=2026-10-19T10:00:00Z"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := get(t, app, tc.target)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}

func TestHistory(t *testing.T) {
	app, svc, cfg := setup(t)
	_, err := svc.Render(context.Background(), cfg)
	require.NoError(t, err)

	now := time.Now().UTC()
	from := strconv.FormatInt(now.Add(-time.Hour).Unix(), 10)
	to := now.Add(time.Hour).Format(time.RFC3339)

	status, body := get(t, app, "/api/v1/weather/history?from="+from+"&to="+to)
	require.Equal(t, http.StatusOK, status)

	var got struct {
		Location  weather.Location   `json:"location"`
		Snapshots []weather.Snapshot `json:"snapshots"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, weather.LocationOf(cfg), got.Location)
	require.Len(t, got.Snapshots, 1)

	status, _ = get(t, app, "/api/v1/weather/history?from=0&to=1")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestParseTime(t *testing.T) {
	ts, err := parseTime("1760900400")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 19, 19, 0, 0, 0, time.UTC), ts)

	ts, err = parseTime("2025-10-19T21:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 19, 19, 0, 0, 0, time.UTC), ts)

	_, err = parseTime("19/10/2025")
	assert.Error(t, err)
}
