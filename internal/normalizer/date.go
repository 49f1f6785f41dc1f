package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// spanishMonths maps lowercase Spanish month names to calendar months.
var spanishMonths = map[string]time.Month{
	"enero":      time.January,
	"febrero":    time.February,
	"marzo":      time.March,
	"abril":      time.April,
	"mayo":       time.May,
	"junio":      time.June,
	"julio":      time.July,
	"agosto":     time.August,
	"septiembre": time.September,
	"octubre":    time.October,
	"noviembre":  time.November,
	"diciembre":  time.December,
}

var spanishDatePattern = regexp.MustCompile(`^(\d{1,2}) de ([a-záéíóúñ]+) de (\d{4})$`)

// ParseSpanishDate converts a long-form Spanish date ("15 de marzo de 2024")
// to a calendar date. Input that does not match the pattern, or that names an
// unknown month, yields nil.
func ParseSpanishDate(raw string) *time.Time {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}

	m := spanishDatePattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}

	month, ok := spanishMonths[m[2]]
	if !ok {
		return nil
	}

	day, err := strconv.Atoi(m[1])
	if err != nil || day < 1 || day > 31 {
		return nil
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return nil
	}

	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	// Reject overflowed days such as "31 de febrero".
	if d.Day() != day || d.Month() != month {
		return nil
	}
	return &d
}
