package weather

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/i474232898/stormwind/internal/common"
	"github.com/i474232898/stormwind/internal/config"
)

// MaxHourlyRows bounds the hourly table.
const MaxHourlyRows = 8

type aqiBand struct {
	upTo  int
	emoji string
}

var aqiBands = map[config.AQIStandard][]aqiBand{
	config.AQIEuropean: {
		{20, "🟢"},  // good
		{40, "🟡"},  // fair
		{60, "🟠"},  // moderate
		{80, "🔴"},  // poor
		{100, "🟣"}, // very poor
	},
	config.AQIUS: {
		{50, "🟢"},  // good
		{100, "🟡"}, // moderate
		{150, "🟠"}, // unhealthy for sensitive groups
		{200, "🔴"}, // unhealthy
		{300, "🟣"}, // very unhealthy
	},
}

// aqiExtreme covers everything above the last band.
const aqiExtreme = "🟤"

// AQIEmoji grades an index value on the given scale.
func AQIEmoji(std config.AQIStandard, aqi int) string {
	for _, b := range aqiBands[std] {
		if aqi <= b.upTo {
			return b.emoji
		}
	}
	return aqiExtreme
}

// Tooltip composes the multi-line tooltip. aq may be nil.
func Tooltip(r Report, aq *AirQuality, std config.AQIStandard) string {
	c, u := r.Current, r.CurrentUnits

	lines := []string{
		fmt.Sprintf("Feels like %s%s", num(c.ApparentTemperature), u.ApparentTemperature),
		fmt.Sprintf("Wind %s %s", num(c.WindSpeed), u.WindSpeed),
		fmt.Sprintf("Humidity %s%s", num(c.RelativeHumidity), u.RelativeHumidity),
		fmt.Sprintf("Cloud cover %s%s", num(c.CloudCover), u.CloudCover),
	}
	if c.Precipitation > 0 {
		lines = append(lines, fmt.Sprintf("Precipitation %s %s", num(c.Precipitation), u.Precipitation))
	}
	if c.Snowfall > 0 {
		lines = append(lines, fmt.Sprintf("Snowfall %s %s", num(c.Snowfall), u.Snowfall))
	}

	stream := aq.Stream(std)
	if aq != nil && len(aq.Hourly.Time) > 0 && len(stream) > 0 && stream[0] != nil {
		lines = append(lines, fmt.Sprintf("Air Quality %d %s", *stream[0], AQIEmoji(std, *stream[0])))
	}

	lines = append(lines, "")
	lines = append(lines, hourlyRows(r, stream)...)
	return strings.Join(lines, "\n")
}

func hourlyRows(r Report, aqi []*int) []string {
	h := r.Hourly
	n := min(MaxHourlyRows, len(h.Time))

	rows := make([]string, 0, n)
	for i := 0; i < n; i++ {
		index := "NA"
		if i < len(aqi) && aqi[i] != nil {
			index = strconv.Itoa(*aqi[i])
		}
		rows = append(rows, fmt.Sprintf("%s | %s° | 🌧%s%% %s%s | AQI: %s",
			common.HourOf(h.Time[i]),
			num(at(h.Temperature, i)),
			num(at(h.PrecipitationProbability, i)),
			num(at(h.Precipitation, i)),
			r.HourlyUnits.Precipitation,
			index,
		))
	}
	return rows
}

func at(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func num(f float64) string {
	return common.FormatFloat(f)
}
