package common

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe = regexp.MustCompile(`[0-9]+\.?[0-9]*`)
	timeRe   = regexp.MustCompile(`^[0-9]{1,2}:[0-9]{2}$`)
)

// Numbers returns every bare numeric substring of line, in order. Substrings
// that fail to parse are skipped rather than aborting the line.
func Numbers(line string) []float64 {
	var out []float64
	for _, m := range numberRe.FindAllString(line, -1) {
		v, err := strconv.ParseFloat(strings.TrimSuffix(m, "."), 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// FirstBareNumber returns the first number in line that is not part of an
// HH:MM clock token, or nil when the line carries none. Clock tokens have to
// be skipped: an operations line starts with two of them and its depth column
// comes after.
func FirstBareNumber(line string) *float64 {
	for _, field := range strings.Fields(line) {
		if strings.Contains(field, ":") {
			continue
		}
		m := numberRe.FindString(field)
		if m == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(m, "."), 64)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

// StripNumbers removes every numeric substring from line and trims the rest.
func StripNumbers(line string) string {
	return strings.TrimSpace(numberRe.ReplaceAllString(line, ""))
}

// IsClockToken reports whether tok looks like an HH:MM time.
func IsClockToken(tok string) bool {
	return timeRe.MatchString(tok)
}

// Float returns a pointer to v. Handy for nullable record fields.
func Float(v float64) *float64 {
	return &v
}
