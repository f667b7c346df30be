package config

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Flags binds the command-line surface shared by the CLI and the daemon.
type Flags struct {
	name string
	fs   *flag.FlagSet

	lat, lon          float64
	temperatureUnit   TemperatureUnit
	windUnit          WindUnit
	precipitationUnit PrecipitationUnit
	aqiStandard       AQIStandard
	aqiDomain         AQIDomain
	provider          Provider
	lang              string
	units             Units
	cacheSeconds      uint16
	keyPath           string

	configPath  string
	showVersion bool
}

// NewFlags registers every option on a fresh flag set named name.
func NewFlags(name string) *Flags {
	d := Defaults()
	f := &Flags{
		name:              name,
		fs:                flag.NewFlagSet(name, flag.ContinueOnError),
		temperatureUnit:   d.TemperatureUnit,
		windUnit:          d.WindUnit,
		precipitationUnit: d.PrecipitationUnit,
		aqiStandard:       d.AQIStandard,
		aqiDomain:         d.AQIDomain,
		provider:          d.Provider,
		units:             d.Units,
	}
	f.fs.SetOutput(io.Discard)
	f.fs.SortFlags = false

	f.fs.Float64Var(&f.lat, "lat", 0, "latitude of location")
	f.fs.Float64Var(&f.lon, "lon", 0, "longitude of location")
	f.fs.Var(&f.temperatureUnit, "units-temperature", "temperature unit")
	f.fs.Var(&f.windUnit, "units-wind-speed", "wind speed unit")
	f.fs.Var(&f.precipitationUnit, "units-precipitation", "precipitation unit")
	f.fs.Var(&f.aqiStandard, "aqi-standard", "air quality index scale")
	f.fs.Var(&f.aqiDomain, "aqi-domain", "air quality model domain")
	f.fs.Var(&f.provider, "provider", "weather back-end")
	f.fs.StringVar(&f.lang, "lang", d.Lang, "language of the legacy back-end")
	f.fs.Var(&f.units, "units", "unit system of the legacy back-end")
	f.fs.Uint16Var(&f.cacheSeconds, "cache", d.CacheSeconds, "cache lifetime in seconds, 0 disables the cache")
	f.fs.StringVar(&f.keyPath, "key-path", d.KeyPath, "file holding the OpenWeatherMap API key")
	f.fs.StringVar(&f.configPath, "config", "", "configuration file (default <user-config>/stormwind/stormwind.toml)")
	f.fs.BoolVar(&f.showVersion, "version", false, "print the version and exit")
	return f
}

// FlagSet exposes the underlying set so callers can register extra flags.
func (f *Flags) FlagSet() *flag.FlagSet {
	return f.fs
}

// Parse parses argv (without the program name). flag.ErrHelp is returned unchanged.
func (f *Flags) Parse(argv []string) error {
	if err := f.fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrBadArgument, err)
	}
	if f.fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrBadArgument, f.fs.Arg(0))
	}
	return nil
}

// Usage writes the flag defaults to w.
func (f *Flags) Usage(w io.Writer) {
	fmt.Fprintf(w, "Usage of %s:\n", f.name)
	f.fs.SetOutput(w)
	f.fs.PrintDefaults()
	f.fs.SetOutput(io.Discard)
}

// Overrides returns the layer made of the flags actually present on the command line.
func (f *Flags) Overrides() Overrides {
	var o Overrides
	if f.fs.Changed("lat") {
		o.Lat = &f.lat
	}
	if f.fs.Changed("lon") {
		o.Lon = &f.lon
	}
	if f.fs.Changed("units-temperature") {
		o.TemperatureUnit = &f.temperatureUnit
	}
	if f.fs.Changed("units-wind-speed") {
		o.WindUnit = &f.windUnit
	}
	if f.fs.Changed("units-precipitation") {
		o.PrecipitationUnit = &f.precipitationUnit
	}
	if f.fs.Changed("aqi-standard") {
		o.AQIStandard = &f.aqiStandard
	}
	if f.fs.Changed("aqi-domain") {
		o.AQIDomain = &f.aqiDomain
	}
	if f.fs.Changed("provider") {
		o.Provider = &f.provider
	}
	if f.fs.Changed("lang") {
		o.Lang = &f.lang
	}
	if f.fs.Changed("units") {
		o.Units = &f.units
	}
	if f.fs.Changed("cache") {
		o.CacheSeconds = &f.cacheSeconds
	}
	if f.fs.Changed("key-path") {
		o.KeyPath = &f.keyPath
	}
	return o
}

// ConfigPath is the value of --config, empty when absent.
func (f *Flags) ConfigPath() string {
	return f.configPath
}

// ShowVersion reports whether --version was given.
func (f *Flags) ShowVersion() bool {
	return f.showVersion
}
