package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses runs", "uno   dos\t\ttres", "uno dos tres"},
		{"flattens newlines", "primera\nsegunda\r\ntercera", "primera segunda tercera"},
		{"trims ends", "  centrado  ", "centrado"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeWhitespace(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"shorter than budget", "corto", 10, "corto"},
		{"exact budget", "cinco", 5, "cinco"},
		{"ascii cut", "abcdef", 3, "abc"},
		{"zero budget keeps input", "texto", 0, "texto"},
		{"accented cut counts runes", "áéíóú", 3, "áéí"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.max))
		})
	}
}

func TestTruncateCountsRunesNotBytes(t *testing.T) {
	// 900 two-byte runes stay intact under a 1000-rune budget.
	body := strings.Repeat("á", 900)
	assert.Equal(t, body, Truncate(body, 1000))

	cut := Truncate(strings.Repeat("á", 10), 5)
	assert.Equal(t, 5, utf8.RuneCountInString(cut))
	assert.True(t, utf8.ValidString(cut))
}
