package weather

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/stormwind/internal/config"
)

func TestText(t *testing.T) {
	testCases := []struct {
		temp float64
		want string
	}{
		{12.4, "x 12°"},
		{12.5, "x 13°"},
		{-0.3, "x 0°"},
		{-0.5, "x 1°"},
		{-7.6, "x 8°"},
		{0, "x 0°"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Text("x", tc.temp), "temp %v", tc.temp)
	}
}

func TestRender(t *testing.T) {
	r := sampleReport(0)
	r.Current.WeatherCode = 95
	r.Current.IsDay = 0
	r.Current.Temperature = -0.3

	out := Render(r, nil, config.AQIEuropean)
	assert.Equal(t, DefaultIcons.Thunderstorm+" 0°", out.Text)
	assert.True(t, strings.HasPrefix(out.Tooltip, "Feels like"))
}

func TestOutputWrite(t *testing.T) {
	var buf bytes.Buffer
	out := Output{Text: DefaultIcons.Clear + " 12°", Tooltip: "Feels like 10.9°C\nWind 9.7 km/h <gusty>"}
	require.NoError(t, out.Write(&buf))

	raw := buf.String()
	assert.True(t, strings.HasSuffix(raw, "}\n"))
	assert.Equal(t, 1, strings.Count(raw, "\n"))
	assert.Contains(t, raw, "<gusty>")

	var fields map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &fields))
	assert.Equal(t, map[string]string{"text": out.Text, "tooltip": out.Tooltip}, fields)
}
