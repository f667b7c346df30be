package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrBadResponse is returned when the weather response does not match the schema.
	ErrBadResponse = errors.New("bad weather response")
	// ErrBadAirQuality is returned when the air quality response does not match the schema.
	ErrBadAirQuality = errors.New("bad air quality response")
)

var validate = validator.New()

// requiredFields lists, per section, the keys that must be present and non-null.
var requiredFields = []struct {
	section string
	keys    []string
}{
	{"current_units", []string{
		"temperature_2m", "apparent_temperature", "relative_humidity_2m",
		"precipitation", "snowfall", "cloud_cover", "wind_speed_10m",
	}},
	{"current", []string{
		"temperature_2m", "apparent_temperature", "relative_humidity_2m",
		"precipitation", "snowfall", "weather_code", "cloud_cover",
		"wind_speed_10m", "is_day",
	}},
	{"hourly_units", []string{"temperature_2m", "precipitation_probability", "precipitation"}},
	{"hourly", []string{"time", "temperature_2m", "precipitation_probability", "precipitation"}},
}

// DecodeReport strictly decodes a weather response. Any missing mandatory
// field, out-of-range reading or ragged hourly table yields ErrBadResponse.
func DecodeReport(r io.Reader) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if err := checkRequired(data); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if err := validate.Struct(report); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	h := report.Hourly
	n := len(h.Time)
	if len(h.Temperature) != n || len(h.PrecipitationProbability) != n || len(h.Precipitation) != n {
		return Report{}, fmt.Errorf("%w: hourly arrays differ in length", ErrBadResponse)
	}
	return report, nil
}

func checkRequired(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	for _, req := range requiredFields {
		raw, ok := top[req.section]
		if !ok || isNull(raw) {
			return fmt.Errorf("missing %q", req.section)
		}
		var section map[string]json.RawMessage
		if err := json.Unmarshal(raw, &section); err != nil {
			return fmt.Errorf("%s: %v", req.section, err)
		}
		for _, key := range req.keys {
			if v, ok := section[key]; !ok || isNull(v) {
				return fmt.Errorf("missing %s.%s", req.section, key)
			}
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// DecodeAirQuality decodes the air quality response permissively: both index
// streams are optional. It returns nil when the report carries no usable data.
func DecodeAirQuality(r io.Reader) (*AirQuality, error) {
	var aq AirQuality
	if err := json.NewDecoder(r).Decode(&aq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAirQuality, err)
	}
	if err := validate.Struct(aq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAirQuality, err)
	}

	h := aq.Hourly
	n := len(h.Time)
	for name, stream := range map[string][]*int{"european_aqi": h.EuropeanAQI, "us_aqi": h.USAQI} {
		if len(stream) > 0 && len(stream) != n {
			return nil, fmt.Errorf("%w: %s has %d entries for %d times", ErrBadAirQuality, name, len(stream), n)
		}
	}

	if n == 0 || (len(h.EuropeanAQI) == 0 && len(h.USAQI) == 0) {
		return nil, nil
	}
	return &aq, nil
}
