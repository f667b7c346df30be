package weather

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/i474232898/stormwind/internal/config"
)

// Render builds the status-bar document for a report. aq may be nil.
func Render(r Report, aq *AirQuality, std config.AQIStandard) Output {
	return Output{
		Text:    Text(Icon(r.Current.WeatherCode, r.Current.IsDay == 1), r.Current.Temperature),
		Tooltip: Tooltip(r, aq, std),
	}
}

// Text is "<glyph> <n>°" with n = |round(temp)|, so -0.3 shows as 0.
func Text(glyph string, temp float64) string {
	return glyph + " " + strconv.Itoa(int(math.Abs(math.Round(temp)))) + "°"
}

// Write emits o as one newline-terminated JSON document.
func (o Output) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(o)
}
