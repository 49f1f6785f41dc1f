package normalizer

import (
	"strings"
	"unicode"
)

// tagRules maps substrings of the uppercased raw tag to canonical labels.
var tagRules = []struct {
	match     string
	canonical string
}{
	{"MET GALA", "Met Gala"},
	{"METGALA", "Met Gala"},
	{"PAREJAS", "Parejas"},
	{"PAREJA", "Parejas"},
}

// CanonicalTag normalizes a raw category label. The decision is a pure
// function of the uppercased input: the first matching substring rule wins,
// otherwise the tag is capitalized.
func CanonicalTag(raw string) string {
	tag := strings.ToUpper(strings.TrimSpace(raw))
	for _, rule := range tagRules {
		if strings.Contains(tag, rule.match) {
			return rule.canonical
		}
	}
	return capitalize(tag)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
