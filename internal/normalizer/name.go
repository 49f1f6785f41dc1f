package normalizer

import (
	"encoding/json"
	"strings"
	"unicode"
)

// bannedArtists are false-positive entity mentions excluded after
// canonicalization, compared lowercase.
var bannedArtists = map[string]struct{}{
	"estilo de vida": {},
}

// CleanArtistName canonicalizes a raw person mention: trims whitespace and
// surrounding quote characters, then title-cases each word. Returns "" when
// nothing remains.
func CleanArtistName(name string) string {
	cleaned := strings.TrimSpace(name)
	cleaned = strings.Trim(cleaned, `'"`)
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return ""
	}
	return titleCase(cleaned)
}

// ParseArtists is the tolerant list-field parser. It accepts values that are
// already list-shaped as well as string-encoded lists, canonicalizes every
// element and drops banned phrases. It never fails: malformed input yields an
// empty list.
func ParseArtists(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanArtistList(v)
	case []interface{}:
		items := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
		return cleanArtistList(items)
	case string:
		return parseArtistString(v)
	default:
		return []string{}
	}
}

func parseArtistString(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return []string{}
	}

	// Structured parse first: the JSON form the record dataset writes.
	var parsed []string
	if err := json.Unmarshal([]byte(s), &parsed); err == nil {
		return cleanArtistList(parsed)
	}

	// Fallback: strip brackets and split on commas. Covers single-quoted
	// encodings and bare comma-separated names.
	s = strings.ReplaceAll(s, "[", "")
	s = strings.ReplaceAll(s, "]", "")
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return cleanArtistList(strings.Split(s, ","))
}

func cleanArtistList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		name := CleanArtistName(item)
		if name == "" {
			continue
		}
		if _, banned := bannedArtists[strings.ToLower(name)]; banned {
			continue
		}
		out = append(out, name)
	}
	return out
}

// titleCase capitalizes every letter that follows a non-letter and lowercases
// the rest, so apostrophes and hyphens start a new word ("o'brien" →
// "O'Brien"). Interior whitespace runs collapse to single spaces.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range strings.Join(strings.Fields(s), " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
