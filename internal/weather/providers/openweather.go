package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/stormwind/internal/common"
	"github.com/i474232898/stormwind/internal/config"
	"github.com/i474232898/stormwind/internal/weather"
)

const OpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

var validate = validator.New()

// OpenWeatherRequestURL returns the legacy OpenWeatherMap current-weather URL.
func OpenWeatherRequestURL(base string, cfg config.Config, apiKey string) string {
	return query(base,
		[2]string{"lat", common.FormatFloat(cfg.Lat)},
		[2]string{"lon", common.FormatFloat(cfg.Lon)},
		[2]string{"lang", url.QueryEscape(cfg.Lang)},
		[2]string{"units", string(cfg.Units)},
		[2]string{"appid", url.QueryEscape(apiKey)},
	)
}

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
// It has no hourly data and no air quality report.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: OpenWeatherURL,
		client:  client,
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

func (p *OpenWeatherProvider) FetchReport(ctx context.Context, cfg config.Config) (weather.Report, error) {
	if p.apiKey == "" {
		return weather.Report{}, fmt.Errorf("%w: openweather api key is not configured", config.ErrMissingSecret)
	}

	body, err := fetch(ctx, p.client, p.circuit, OpenWeatherRequestURL(p.baseURL, cfg, p.apiKey))
	if err != nil {
		return weather.Report{}, err
	}
	return decodeOpenWeather(body, cfg.Units)
}

func (p *OpenWeatherProvider) FetchAirQuality(ctx context.Context, cfg config.Config) (*weather.AirQuality, error) {
	return nil, nil
}

type owmPayload struct {
	Dt      int64 `json:"dt"`
	Weather []struct {
		ID   int    `json:"id"`
		Icon string `json:"icon"`
	} `json:"weather" validate:"min=1"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  float64 `json:"pressure"`
		Humidity  float64 `json:"humidity"`
	} `json:"main" validate:"required"`
	Wind *struct {
		Speed float64  `json:"speed"`
		Deg   *float64 `json:"deg"`
		Gust  *float64 `json:"gust"`
	} `json:"wind" validate:"required"`
	Clouds *struct {
		All float64 `json:"all"`
	} `json:"clouds" validate:"required"`
	Rain *struct {
		OneH *float64 `json:"1h"`
	} `json:"rain"`
	Snow *struct {
		OneH *float64 `json:"1h"`
	} `json:"snow"`
}

type owmUnitLabels struct {
	temperature, wind string
}

var owmUnits = map[config.Units]owmUnitLabels{
	config.UnitsStandard: {"K", "m/s"},
	config.UnitsMetric:   {"°C", "m/s"},
	config.UnitsImperial: {"°F", "mph"},
}

// decodeOpenWeather maps an OpenWeatherMap response onto the report shape.
func decodeOpenWeather(body []byte, units config.Units) (weather.Report, error) {
	var payload owmPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Report{}, fmt.Errorf("%w: %v", weather.ErrBadResponse, err)
	}
	if err := validate.Struct(payload); err != nil {
		return weather.Report{}, fmt.Errorf("%w: %v", weather.ErrBadResponse, err)
	}

	var rain, snow float64
	var rainPtr *float64
	if payload.Rain != nil && payload.Rain.OneH != nil {
		rain = *payload.Rain.OneH
		rainPtr = &rain
	}
	if payload.Snow != nil && payload.Snow.OneH != nil {
		snow = *payload.Snow.OneH
	}

	isDay := 1
	if strings.HasSuffix(payload.Weather[0].Icon, "n") {
		isDay = 0
	}

	pressure := payload.Main.Pressure
	labels, ok := owmUnits[units]
	if !ok {
		labels = owmUnits[config.UnitsMetric]
	}

	return weather.Report{
		CurrentUnits: weather.CurrentUnits{
			Temperature:         labels.temperature,
			ApparentTemperature: labels.temperature,
			RelativeHumidity:    "%",
			Precipitation:       "mm",
			Snowfall:            "mm",
			CloudCover:          "%",
			WindSpeed:           labels.wind,
			PressureMSL:         "hPa",
		},
		Current: weather.Current{
			Time:                time.Unix(payload.Dt, 0).UTC().Format("2006-01-02T15:04"),
			Temperature:         payload.Main.Temp,
			ApparentTemperature: payload.Main.FeelsLike,
			RelativeHumidity:    payload.Main.Humidity,
			Precipitation:       rain + snow,
			Snowfall:            snow,
			WeatherCode:         wmoCode(payload.Weather[0].ID),
			CloudCover:          payload.Clouds.All,
			WindSpeed:           payload.Wind.Speed,
			IsDay:               isDay,
			Rain:                rainPtr,
			PressureMSL:         &pressure,
			WindDirection:       payload.Wind.Deg,
			WindGusts:           payload.Wind.Gust,
		},
		HourlyUnits: weather.HourlyUnits{
			Temperature:              labels.temperature,
			PrecipitationProbability: "%",
			Precipitation:            "mm",
		},
		Hourly: weather.Hourly{
			Time:                     []string{},
			Temperature:              []float64{},
			PrecipitationProbability: []float64{},
			Precipitation:            []float64{},
		},
	}, nil
}

// wmoCode translates an OpenWeatherMap condition id into the nearest WMO weather code.
func wmoCode(id int) int {
	switch {
	case id >= 200 && id < 300:
		return 95
	case id >= 300 && id < 400:
		return 53
	case id == 500:
		return 61
	case id == 501:
		return 63
	case id >= 502 && id <= 504:
		return 65
	case id == 511:
		return 66
	case id >= 520 && id < 600:
		return 81
	case id == 600:
		return 71
	case id == 601:
		return 73
	case id == 602:
		return 75
	case id >= 611 && id <= 616:
		return 67
	case id >= 620 && id < 700:
		return 85
	case id >= 700 && id < 800:
		return 45
	case id == 800:
		return 0
	case id == 801:
		return 1
	case id == 802:
		return 2
	case id == 803 || id == 804:
		return 3
	default:
		// In range for the report schema but without an icon of its own.
		return 4
	}
}
