package providers

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/stormwind/internal/common"
	"github.com/i474232898/stormwind/internal/config"
	"github.com/i474232898/stormwind/internal/weather"
)

const (
	OpenMeteoForecastURL   = "https://api.open-meteo.com/v1/forecast"
	OpenMeteoAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

	forecastHours = 8
)

var currentFields = strings.Join([]string{
	"temperature_2m",
	"relative_humidity_2m",
	"apparent_temperature",
	"is_day",
	"precipitation",
	"rain",
	"showers",
	"snowfall",
	"weather_code",
	"cloud_cover",
	"pressure_msl",
	"surface_pressure",
	"wind_speed_10m",
	"wind_direction_10m",
	"wind_gusts_10m",
}, ",")

const hourlyFields = "temperature_2m,precipitation_probability,precipitation"

// query builds a query string in the order the pairs are given. Values are
// taken verbatim; callers pass only numbers, enum spellings and field lists.
func query(base string, pairs ...[2]string) string {
	var b strings.Builder
	b.WriteString(base)
	for i, p := range pairs {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(p[1])
	}
	return b.String()
}

// ForecastRequestURL returns the Open-Meteo forecast URL for cfg. The
// parameter order is fixed.
func ForecastRequestURL(base string, cfg config.Config) string {
	return query(base,
		[2]string{"latitude", common.FormatFloat(cfg.Lat)},
		[2]string{"longitude", common.FormatFloat(cfg.Lon)},
		[2]string{"current", currentFields},
		[2]string{"hourly", hourlyFields},
		[2]string{"forecast_hours", strconv.Itoa(forecastHours)},
		[2]string{"timezone", "auto"},
		[2]string{"temperature_unit", string(cfg.TemperatureUnit)},
		[2]string{"wind_speed_unit", string(cfg.WindUnit)},
		[2]string{"precipitation_unit", string(cfg.PrecipitationUnit)},
	)
}

// AirQualityRequestURL returns the Open-Meteo air quality URL for cfg.
func AirQualityRequestURL(base string, cfg config.Config) string {
	return query(base,
		[2]string{"latitude", common.FormatFloat(cfg.Lat)},
		[2]string{"longitude", common.FormatFloat(cfg.Lon)},
		[2]string{"hourly", "european_aqi,us_aqi"},
		[2]string{"forecast_hours", strconv.Itoa(forecastHours)},
		[2]string{"domains", string(cfg.AQIDomain)},
	)
}

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name          string
	forecastURL   string
	airQualityURL string
	client        *http.Client
	circuit       *gobreaker.CircuitBreaker
	airCircuit    *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:          "openmeteo",
		forecastURL:   OpenMeteoForecastURL,
		airQualityURL: OpenMeteoAirQualityURL,
		client:        client,
		circuit:       newCircuitBreaker("openmeteo"),
		airCircuit:    newCircuitBreaker("openmeteo-air-quality"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchReport(ctx context.Context, cfg config.Config) (weather.Report, error) {
	body, err := fetch(ctx, p.client, p.circuit, ForecastRequestURL(p.forecastURL, cfg))
	if err != nil {
		return weather.Report{}, err
	}
	return weather.DecodeReport(bytes.NewReader(body))
}

func (p *OpenMeteoProvider) FetchAirQuality(ctx context.Context, cfg config.Config) (*weather.AirQuality, error) {
	body, err := fetch(ctx, p.client, p.airCircuit, AirQualityRequestURL(p.airQualityURL, cfg))
	if err != nil {
		return nil, err
	}
	return weather.DecodeAirQuality(bytes.NewReader(body))
}
