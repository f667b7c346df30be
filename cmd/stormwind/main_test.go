package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/stormwind/internal/cache"
	"github.com/i474232898/stormwind/internal/config"
	"github.com/i474232898/stormwind/internal/weather"
)

// mockRoundTripper answers requests by host and records every URL it sees.
type mockRoundTripper struct {
	mu        sync.Mutex
	responses map[string]response
	requests  []string
}

type response struct {
	status int
	body   string
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req.URL.String())

	r, ok := m.responses[req.URL.Host]
	if !ok {
		r = response{status: http.StatusNotFound}
	}
	return &http.Response{
		StatusCode: r.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(r.body)),
		Request:    req,
	}, nil
}

const (
	forecastHost   = "api.open-meteo.com"
	airQualityHost = "air-quality-api.open-meteo.com"
)

type conditions struct {
	code          int
	isDay         int
	temperature   float64
	precipitation float64
	snowfall      float64
}

func forecastBody(c conditions) string {
	return fmt.Sprintf(`{
  "current_units": {"temperature_2m": "°C", "apparent_temperature": "°C", "relative_humidity_2m": "%%",
    "precipitation": "mm", "snowfall": "cm", "cloud_cover": "%%", "wind_speed_10m": "km/h"},
  "current": {"time": "2026-10-19T12:00", "temperature_2m": %v, "apparent_temperature": %v,
    "relative_humidity_2m": 70, "precipitation": %v, "snowfall": %v, "weather_code": %d,
    "cloud_cover": 20, "wind_speed_10m": 8.5, "is_day": %d},
  "hourly_units": {"temperature_2m": "°C", "precipitation_probability": "%%", "precipitation": "mm"},
  "hourly": {"time": [], "temperature_2m": [], "precipitation_probability": [], "precipitation": []}
}`, c.temperature, c.temperature, c.precipitation, c.snowfall, c.code, c.isDay)
}

type harness struct {
	rt       *mockRoundTripper
	cacheDir string
}

func newHarness(t *testing.T, forecast string) *harness {
	t.Helper()
	h := &harness{
		rt:       &mockRoundTripper{responses: map[string]response{}},
		cacheDir: t.TempDir(),
	}
	if forecast != "" {
		h.rt.responses[forecastHost] = response{status: http.StatusOK, body: forecast}
	}
	t.Setenv("XDG_CACHE_HOME", h.cacheDir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvConfigPath, "")
	return h
}

func (h *harness) run(t *testing.T, args ...string) (int, weather.Output, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, &http.Client{Transport: h.rt})

	var out weather.Output
	if code == 0 && stdout.Len() > 0 && strings.HasPrefix(stdout.String(), "{") {
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
		assert.True(t, strings.HasSuffix(stdout.String(), "}\n"))
	}
	return code, out, stderr.String()
}

func TestClearDayWithoutAirQuality(t *testing.T) {
	h := newHarness(t, forecastBody(conditions{code: 0, isDay: 1, temperature: 12.4}))

	code, out, _ := h.run(t, "--lat", "50.11", "--lon", "19.92")
	require.Equal(t, 0, code)

	assert.Equal(t, weather.DefaultIcons.Clear+" 12°", out.Text)
	assert.NotContains(t, out.Tooltip, "Precipitation")
	assert.NotContains(t, out.Tooltip, "Snowfall")
	assert.NotContains(t, out.Tooltip, "Air Quality")
	assert.NotContains(t, out.Tooltip, "AQI:")
	assert.Len(t, h.rt.requests, 2)
}

func TestThunderstormBelowZero(t *testing.T) {
	h := newHarness(t, forecastBody(conditions{code: 95, isDay: 0, temperature: -0.3, precipitation: 1.2}))

	code, out, _ := h.run(t, "--lat", "50.11", "--lon", "19.92")
	require.Equal(t, 0, code)

	assert.Equal(t, weather.DefaultIcons.Thunderstorm+" 0°", out.Text)
	assert.Contains(t, out.Tooltip, "Precipitation 1.2 mm")
	assert.NotContains(t, out.Tooltip, "Snowfall")
}

func TestSnowAtNight(t *testing.T) {
	h := newHarness(t, forecastBody(conditions{code: 71, isDay: 0, temperature: -2, precipitation: 3.1, snowfall: 3.1}))

	code, out, _ := h.run(t, "--lat", "50.11", "--lon", "19.92")
	require.Equal(t, 0, code)

	assert.Equal(t, weather.DefaultIcons.Snow+" 2°", out.Text)
	assert.Contains(t, out.Tooltip, "Precipitation 3.1 mm")
	assert.Contains(t, out.Tooltip, "Snowfall 3.1 cm")
}

func TestEuropeanAirQuality(t *testing.T) {
	h := newHarness(t, forecastBody(conditions{code: 3, isDay: 1, temperature: 9}))
	h.rt.responses[airQualityHost] = response{status: http.StatusOK, body: `{
  "hourly": {
    "time": ["2026-10-19T12:00", "2026-10-19T13:00", "2026-10-19T14:00"],
    "european_aqi": [18, 35, 62],
    "us_aqi": []
  }
}`}

	code, out, _ := h.run(t, "--lat", "50.11", "--lon", "19.92", "--aqi-standard", "european")
	require.Equal(t, 0, code)
	assert.Contains(t, out.Tooltip, "Air Quality 18 🟢")
}

func TestConfigFileOverriddenByCommandLine(t *testing.T) {
	h := newHarness(t, forecastBody(conditions{code: 0, isDay: 1, temperature: 20}))
	path := filepath.Join(t.TempDir(), "stormwind.toml")
	require.NoError(t, os.WriteFile(path, []byte("[config]\nlat = 52.23\nlon = 21.01\n"), 0o644))

	code, _, _ := h.run(t, "--config", path, "--lat", "10.0")
	require.Equal(t, 0, code)

	require.NotEmpty(t, h.rt.requests)
	req, err := http.NewRequest(http.MethodGet, h.rt.requests[0], nil)
	require.NoError(t, err)
	assert.Equal(t, "10", req.URL.Query().Get("latitude"))
	assert.Equal(t, "21.01", req.URL.Query().Get("longitude"))
}

func TestFreshCacheSkipsNetwork(t *testing.T) {
	h := newHarness(t, "")

	cfg := config.Defaults()
	cfg.Lat, cfg.Lon = 50.11, 19.92
	report, err := weather.DecodeReport(strings.NewReader(forecastBody(conditions{code: 2, isDay: 1, temperature: 17.6})))
	require.NoError(t, err)

	path := filepath.Join(h.cacheDir, cache.FileName)
	require.NoError(t, cache.New(path, version).Write(report, cfg))
	aged := time.Now().Add(-300 * time.Second)
	require.NoError(t, os.Chtimes(path, aged, aged))

	code, out, _ := h.run(t, "--lat", "50.11", "--lon", "19.92", "--cache", "600")
	require.Equal(t, 0, code)

	assert.Empty(t, h.rt.requests)
	assert.Equal(t, weather.DefaultIcons.PartlyCloudy+" 18°", out.Text)
}

func TestNetworkPathWritesCache(t *testing.T) {
	h := newHarness(t, forecastBody(conditions{code: 0, isDay: 1, temperature: 12.4}))

	code, _, _ := h.run(t, "--lat", "50.11", "--lon", "19.92")
	require.Equal(t, 0, code)
	require.Len(t, h.rt.requests, 2)

	code, out, _ := h.run(t, "--lat", "50.11", "--lon", "19.92")
	require.Equal(t, 0, code)
	assert.Len(t, h.rt.requests, 2, "second run is served from the cache")
	assert.Equal(t, weather.DefaultIcons.Clear+" 12°", out.Text)

	code, _, _ = h.run(t, "--lat", "50.11", "--lon", "19.92", "--cache", "0")
	require.Equal(t, 0, code)
	assert.Len(t, h.rt.requests, 4)
}

func TestExitCodes(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		forecast response
		wantCode int
		wantErr  string
	}{
		{"missing coordinates", nil, response{}, 1, "--lat is required"},
		{"latitude out of range", []string{"--lat", "91", "--lon", "0"}, response{}, 1, "bad argument"},
		{"unknown unit", []string{"--lat", "1", "--lon", "1", "--units-wind-speed", "furlongs"}, response{}, 1, "bad argument"},
		{"transport failure", []string{"--lat", "1", "--lon", "1"}, response{status: http.StatusBadGateway}, 1, "transport failure"},
		{"bad response", []string{"--lat", "1", "--lon", "1"}, response{status: http.StatusOK, body: `{"current":{}}`}, 1, "bad weather response"},
		{"missing key", []string{"--lat", "1", "--lon", "1", "--provider", "openweathermap", "--key-path", "/nonexistent/.owm-key"}, response{}, 0, "/nonexistent/.owm-key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, "")
			if tc.forecast.status != 0 {
				h.rt.responses[forecastHost] = tc.forecast
			}

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tc.args, &stdout, &stderr, &http.Client{Transport: h.rt})
			assert.Equal(t, tc.wantCode, code)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), tc.wantErr)
		})
	}
}

func TestHelpAndVersion(t *testing.T) {
	h := newHarness(t, "")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--help"}, &stdout, &stderr, &http.Client{Transport: h.rt})
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "--units-wind-speed")

	stdout.Reset()
	code = run(context.Background(), []string{"--version"}, &stdout, &stderr, &http.Client{Transport: h.rt})
	assert.Equal(t, 0, code)
	assert.Equal(t, "stormwind dev\n", stdout.String())
	assert.Empty(t, h.rt.requests)
}
