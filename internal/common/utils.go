package common

import (
	"strconv"
	"strings"
)

// FormatFloat renders f in its shortest exact decimal form, e.g. 50.11 or 10.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// HourOf returns the part of an ISO-8601 timestamp after the 'T', or s itself
// when there is no 'T'.
func HourOf(s string) string {
	if _, after, ok := strings.Cut(s, "T"); ok {
		return after
	}
	return s
}
