package weather

import (
	"time"

	"github.com/i474232898/stormwind/internal/common"
	"github.com/i474232898/stormwind/internal/config"
)

// Location is the point a report was requested for.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LocationOf returns the location named by the effective configuration.
func LocationOf(cfg config.Config) Location {
	return Location{Lat: cfg.Lat, Lon: cfg.Lon}
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return common.FormatFloat(l.Lat) + "," + common.FormatFloat(l.Lon)
}

// Report is the provider's current conditions plus a short hourly forecast.
// Field names follow the Open-Meteo wire format.
type Report struct {
	CurrentUnits CurrentUnits `json:"current_units"`
	Current      Current      `json:"current"`
	HourlyUnits  HourlyUnits  `json:"hourly_units"`
	Hourly       Hourly       `json:"hourly"`
}

type CurrentUnits struct {
	Temperature         string `json:"temperature_2m"`
	ApparentTemperature string `json:"apparent_temperature"`
	RelativeHumidity    string `json:"relative_humidity_2m"`
	Precipitation       string `json:"precipitation"`
	Snowfall            string `json:"snowfall"`
	CloudCover          string `json:"cloud_cover"`
	WindSpeed           string `json:"wind_speed_10m"`
	PressureMSL         string `json:"pressure_msl,omitempty"`
}

// Current holds scalar readings. Pointer fields are optional in the response.
type Current struct {
	Time                string   `json:"time,omitempty"`
	Temperature         float64  `json:"temperature_2m"`
	ApparentTemperature float64  `json:"apparent_temperature"`
	RelativeHumidity    float64  `json:"relative_humidity_2m" validate:"min=0,max=100"`
	Precipitation       float64  `json:"precipitation" validate:"gte=0"`
	Snowfall            float64  `json:"snowfall" validate:"gte=0"`
	WeatherCode         int      `json:"weather_code" validate:"min=0,max=99"`
	CloudCover          float64  `json:"cloud_cover" validate:"min=0,max=100"`
	WindSpeed           float64  `json:"wind_speed_10m" validate:"gte=0"`
	IsDay               int      `json:"is_day" validate:"oneof=0 1"`
	Rain                *float64 `json:"rain,omitempty"`
	Showers             *float64 `json:"showers,omitempty"`
	PressureMSL         *float64 `json:"pressure_msl,omitempty"`
	SurfacePressure     *float64 `json:"surface_pressure,omitempty"`
	WindDirection       *float64 `json:"wind_direction_10m,omitempty"`
	WindGusts           *float64 `json:"wind_gusts_10m,omitempty"`
}

type HourlyUnits struct {
	Temperature              string `json:"temperature_2m"`
	PrecipitationProbability string `json:"precipitation_probability"`
	Precipitation            string `json:"precipitation"`
}

// Hourly holds parallel arrays indexed by hour.
type Hourly struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	PrecipitationProbability []float64 `json:"precipitation_probability" validate:"dive,min=0,max=100"`
	Precipitation            []float64 `json:"precipitation" validate:"dive,gte=0"`
}

// AirQuality is the optional companion report. Null entries decode to nil.
type AirQuality struct {
	Hourly AirQualityHourly `json:"hourly"`
}

type AirQualityHourly struct {
	Time        []string `json:"time"`
	EuropeanAQI []*int   `json:"european_aqi,omitempty" validate:"dive,omitempty,min=0,max=255"`
	USAQI       []*int   `json:"us_aqi,omitempty" validate:"dive,omitempty,min=0,max=65535"`
}

// Stream returns the index stream for the given standard.
func (a *AirQuality) Stream(std config.AQIStandard) []*int {
	if a == nil {
		return nil
	}
	if std == config.AQIUS {
		return a.Hourly.USAQI
	}
	return a.Hourly.EuropeanAQI
}

// Output is the status-bar document.
type Output struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
}

// Snapshot is a rendered output kept by the daemon.
type Snapshot struct {
	Location  Location  `json:"location"`
	Timestamp time.Time `json:"timestamp"` // always UTC
	Output    Output    `json:"output"`
}
