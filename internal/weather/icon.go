package weather

// Icons is a glyph alphabet for the weather codes.
type Icons struct {
	Clear             string
	ClearNight        string
	PartlyCloudy      string
	PartlyCloudyNight string
	Overcast          string
	Fog               string
	Drizzle           string
	FreezingDrizzle   string
	Rain              string
	FreezingRain      string
	Snow              string
	RainShowers       string
	SnowShowers       string
	Thunderstorm      string
	Unknown           string
}

// DefaultIcons uses Nerd Font weather glyphs.
var DefaultIcons = Icons{
	Clear:             "\U000F0599",
	ClearNight:        "\U000F0594",
	PartlyCloudy:      "\U000F0595",
	PartlyCloudyNight: "\U000F0F31",
	Overcast:          "\U000F0590",
	Fog:               "\U000F0591",
	Drizzle:           "\U000F0F33",
	FreezingDrizzle:   "\U000F0F35",
	Rain:              "\U000F0597",
	FreezingRain:      "\U000F067F",
	Snow:              "\U000F0598",
	RainShowers:       "\U000F0596",
	SnowShowers:       "\U000F0F36",
	Thunderstorm:      "\U000F0593",
	Unknown:           "\U000F0F2F",
}

// Select maps a WMO weather code to a glyph. At night, codes 0, 1 and 2 get
// their night variants; every other code keeps the day glyph.
func (i Icons) Select(code int, isDay bool) string {
	if !isDay {
		switch code {
		case 0:
			return i.ClearNight
		case 1, 2:
			return i.PartlyCloudyNight
		}
	}

	switch code {
	case 0:
		return i.Clear
	case 1, 2:
		return i.PartlyCloudy
	case 3:
		return i.Overcast
	case 45, 48:
		return i.Fog
	case 51, 53, 55:
		return i.Drizzle
	case 56, 57:
		return i.FreezingDrizzle
	case 61, 63, 65:
		return i.Rain
	case 66, 67:
		return i.FreezingRain
	case 71, 73, 75, 77:
		return i.Snow
	case 80, 81, 82:
		return i.RainShowers
	case 85, 86:
		return i.SnowShowers
	case 95, 96, 97:
		return i.Thunderstorm
	default:
		return i.Unknown
	}
}

// Icon selects from DefaultIcons.
func Icon(code int, isDay bool) string {
	return DefaultIcons.Select(code, isDay)
}
