package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// EnvConfigPath names the environment variable that overrides the config file location.
const EnvConfigPath = "STORMWIND_CONFIG"

var validate = validator.New()

// Config is the effective configuration of one invocation.
type Config struct {
	Lat               float64           `validate:"min=-90,max=90"`
	Lon               float64           `validate:"min=-180,max=180"`
	TemperatureUnit   TemperatureUnit   `validate:"oneof=celsius fahrenheit"`
	WindUnit          WindUnit          `validate:"oneof=kmh ms mph kn"`
	PrecipitationUnit PrecipitationUnit `validate:"oneof=mm inch"`
	AQIStandard       AQIStandard       `validate:"oneof=european us"`
	AQIDomain         AQIDomain         `validate:"oneof=auto cams_europe cams_global"`
	Provider          Provider          `validate:"oneof=openmeteo openweathermap"`

	// Legacy fields. Lang and Units take part in the cache key and
	// drive the OpenWeatherMap back-end.
	Lang         string
	Units        Units `validate:"oneof=standard metric imperial"`
	CacheSeconds uint16
	KeyPath      string
}

// Overrides is one configuration layer. Nil fields leave the value below untouched.
type Overrides struct {
	Lat               *float64           `toml:"lat"`
	Lon               *float64           `toml:"lon"`
	TemperatureUnit   *TemperatureUnit   `toml:"temperature_unit"`
	WindUnit          *WindUnit          `toml:"wind_unit"`
	PrecipitationUnit *PrecipitationUnit `toml:"precipitation_unit"`
	AQIStandard       *AQIStandard       `toml:"aqi_standard"`
	AQIDomain         *AQIDomain         `toml:"aqi_domain"`
	Provider          *Provider          `toml:"provider"`
	Lang              *string            `toml:"lang"`
	Units             *Units             `toml:"units"`
	CacheSeconds      *uint16            `toml:"cache_seconds"`
	KeyPath           *string            `toml:"key_path"`
}

// Defaults returns the hard-coded base layer.
func Defaults() Config {
	return Config{
		TemperatureUnit:   Celsius,
		WindUnit:          KilometresPerHour,
		PrecipitationUnit: Millimetres,
		AQIStandard:       AQIEuropean,
		AQIDomain:         DomainAuto,
		Provider:          ProviderOpenMeteo,
		Lang:              "en",
		Units:             UnitsMetric,
		CacheSeconds:      600,
		KeyPath:           DefaultKeyPath(),
	}
}

// Merge applies the layers over base in order; the last layer that sets a field wins.
func Merge(base Config, layers ...Overrides) Config {
	cfg := base
	for _, o := range layers {
		cfg.Lat = pick(o.Lat, cfg.Lat)
		cfg.Lon = pick(o.Lon, cfg.Lon)
		cfg.TemperatureUnit = pick(o.TemperatureUnit, cfg.TemperatureUnit)
		cfg.WindUnit = pick(o.WindUnit, cfg.WindUnit)
		cfg.PrecipitationUnit = pick(o.PrecipitationUnit, cfg.PrecipitationUnit)
		cfg.AQIStandard = pick(o.AQIStandard, cfg.AQIStandard)
		cfg.AQIDomain = pick(o.AQIDomain, cfg.AQIDomain)
		cfg.Provider = pick(o.Provider, cfg.Provider)
		cfg.Lang = pick(o.Lang, cfg.Lang)
		cfg.Units = pick(o.Units, cfg.Units)
		cfg.CacheSeconds = pick(o.CacheSeconds, cfg.CacheSeconds)
		cfg.KeyPath = pick(o.KeyPath, cfg.KeyPath)
	}
	return cfg
}

func pick[T any](override *T, base T) T {
	if override != nil {
		return *override
	}
	return base
}

// Validate checks coordinate ranges and enumeration values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrBadArgument, err)
	}
	// Lang is one record of the line-based cache file.
	if strings.ContainsAny(c.Lang, "\r\n") {
		return fmt.Errorf("%w: --lang must not contain line breaks", ErrBadArgument)
	}
	return nil
}

// Resolve merges defaults, the configuration file and the parsed flags
// into the effective configuration.
func Resolve(f *Flags) (Config, error) {
	path, required := f.ConfigPath(), true
	if path == "" {
		path, required = DefaultConfigPath()
	}

	file, err := LoadFile(path, required)
	if err != nil {
		return Config{}, err
	}
	cli := f.Overrides()

	if file.Lat == nil && cli.Lat == nil {
		return Config{}, fmt.Errorf("%w: --lat is required", ErrBadArgument)
	}
	if file.Lon == nil && cli.Lon == nil {
		return Config{}, fmt.Errorf("%w: --lon is required", ErrBadArgument)
	}

	cfg := Merge(Defaults(), file, cli)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the configuration file location and whether it was
// named explicitly through the environment.
func DefaultConfigPath() (string, bool) {
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "stormwind", "stormwind.toml"), false
}

type fileLayout struct {
	Config Overrides `toml:"config"`
}

// LoadFile reads the [config] table of a TOML file. A missing file yields an
// empty layer unless required is set.
func LoadFile(path string, required bool) (Overrides, error) {
	if path == "" {
		return Overrides{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Overrides{}, nil
		}
		return Overrides{}, fmt.Errorf("%w: %s: %v", ErrBadConfig, path, err)
	}

	var layout fileLayout
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&layout); err != nil {
		return Overrides{}, fmt.Errorf("%w: %s: %v", ErrBadConfig, path, err)
	}
	return layout.Config, nil
}
