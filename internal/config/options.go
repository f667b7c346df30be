package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadArgument is returned when a command-line value fails validation.
	ErrBadArgument = errors.New("bad argument")
	// ErrBadConfig is returned when a configuration file exists but cannot be used.
	ErrBadConfig = errors.New("bad config")
	// ErrMissingSecret is returned when the API key file cannot be read.
	ErrMissingSecret = errors.New("missing secret")
)

// TemperatureUnit is the unit the provider reports temperatures in.
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

// WindUnit is the unit the provider reports wind speed in.
type WindUnit string

const (
	KilometresPerHour WindUnit = "kmh"
	MetresPerSecond   WindUnit = "ms"
	MilesPerHour      WindUnit = "mph"
	Knots             WindUnit = "kn"
)

// PrecipitationUnit is the unit the provider reports rain and snow in.
type PrecipitationUnit string

const (
	Millimetres PrecipitationUnit = "mm"
	Inches      PrecipitationUnit = "inch"
)

// AQIStandard selects which air quality index scale is shown.
type AQIStandard string

const (
	AQIEuropean AQIStandard = "european"
	AQIUS       AQIStandard = "us"
)

// AQIDomain selects the air quality model domain.
type AQIDomain string

const (
	DomainAuto       AQIDomain = "auto"
	DomainCAMSEurope AQIDomain = "cams_europe"
	DomainCAMSGlobal AQIDomain = "cams_global"
)

// Units is the unit system of the legacy OpenWeatherMap back-end.
type Units string

const (
	UnitsStandard Units = "standard"
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Provider names a weather back-end.
type Provider string

const (
	ProviderOpenMeteo      Provider = "openmeteo"
	ProviderOpenWeatherMap Provider = "openweathermap"
)

func (u *TemperatureUnit) Set(s string) error {
	return setEnum(u, s, Celsius, Fahrenheit)
}
func (u *TemperatureUnit) String() string               { return string(*u) }
func (u *TemperatureUnit) Type() string                 { return "celsius|fahrenheit" }
func (u *TemperatureUnit) UnmarshalText(b []byte) error { return u.Set(string(b)) }

func (u *WindUnit) Set(s string) error {
	return setEnum(u, s, KilometresPerHour, MetresPerSecond, MilesPerHour, Knots)
}
func (u *WindUnit) String() string               { return string(*u) }
func (u *WindUnit) Type() string                 { return "kmh|ms|mph|kn" }
func (u *WindUnit) UnmarshalText(b []byte) error { return u.Set(string(b)) }

func (u *PrecipitationUnit) Set(s string) error {
	return setEnum(u, s, Millimetres, Inches)
}
func (u *PrecipitationUnit) String() string               { return string(*u) }
func (u *PrecipitationUnit) Type() string                 { return "mm|inch" }
func (u *PrecipitationUnit) UnmarshalText(b []byte) error { return u.Set(string(b)) }

func (a *AQIStandard) Set(s string) error {
	return setEnum(a, s, AQIEuropean, AQIUS)
}
func (a *AQIStandard) String() string               { return string(*a) }
func (a *AQIStandard) Type() string                 { return "european|us" }
func (a *AQIStandard) UnmarshalText(b []byte) error { return a.Set(string(b)) }

func (d *AQIDomain) Set(s string) error {
	return setEnum(d, s, DomainAuto, DomainCAMSEurope, DomainCAMSGlobal)
}
func (d *AQIDomain) String() string               { return string(*d) }
func (d *AQIDomain) Type() string                 { return "auto|cams_europe|cams_global" }
func (d *AQIDomain) UnmarshalText(b []byte) error { return d.Set(string(b)) }

func (u *Units) Set(s string) error {
	return setEnum(u, s, UnitsStandard, UnitsMetric, UnitsImperial)
}
func (u *Units) String() string               { return string(*u) }
func (u *Units) Type() string                 { return "standard|metric|imperial" }
func (u *Units) UnmarshalText(b []byte) error { return u.Set(string(b)) }

func (p *Provider) Set(s string) error {
	return setEnum(p, s, ProviderOpenMeteo, ProviderOpenWeatherMap)
}
func (p *Provider) String() string               { return string(*p) }
func (p *Provider) Type() string                 { return "openmeteo|openweathermap" }
func (p *Provider) UnmarshalText(b []byte) error { return p.Set(string(b)) }

// setEnum stores s into dst if it spells one of the allowed values.
func setEnum[T ~string](dst *T, s string, allowed ...T) error {
	names := make([]string, 0, len(allowed))
	for _, a := range allowed {
		if string(a) == s {
			*dst = a
			return nil
		}
		names = append(names, string(a))
	}
	return fmt.Errorf("%w: %q is not one of %s", ErrBadArgument, s, strings.Join(names, ", "))
}
