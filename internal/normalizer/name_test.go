package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanArtistName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"quoted and padded", " 'zendaya' ", "Zendaya"},
		{"double quotes", `"taylor swift"`, "Taylor Swift"},
		{"already clean", "Rosalía", "Rosalía"},
		{"uppercase input", "BAD BUNNY", "Bad Bunny"},
		{"apostrophe starts a word", "conan o'brien", "Conan O'Brien"},
		{"hyphenated name", "jean-paul gaultier", "Jean-Paul Gaultier"},
		{"only quotes", `''`, ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanArtistName(tt.input))
		})
	}
}

func TestCleanArtistNameIdempotent(t *testing.T) {
	inputs := []string{" 'zendaya' ", "Taylor Swift", "BAD BUNNY", "dua lipa", "conan o'brien"}
	for _, in := range inputs {
		once := CleanArtistName(in)
		assert.Equal(t, once, CleanArtistName(once))
	}
}

func TestParseArtists(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  []string
	}{
		{
			name:  "nil value",
			input: nil,
			want:  []string{},
		},
		{
			name:  "native list",
			input: []string{"zendaya", " 'dua lipa' "},
			want:  []string{"Zendaya", "Dua Lipa"},
		},
		{
			name:  "json encoded list",
			input: `["Zendaya", "Dua Lipa"]`,
			want:  []string{"Zendaya", "Dua Lipa"},
		},
		{
			name:  "single quoted encoding",
			input: `['Zendaya', 'Dua Lipa']`,
			want:  []string{"Zendaya", "Dua Lipa"},
		},
		{
			name:  "bare comma separated",
			input: "zendaya, dua lipa",
			want:  []string{"Zendaya", "Dua Lipa"},
		},
		{
			name:  "banned phrase removed",
			input: `['Zendaya', 'estilo de vida']`,
			want:  []string{"Zendaya"},
		},
		{
			name:  "empty brackets",
			input: "[]",
			want:  []string{},
		},
		{
			name:  "empty string",
			input: "",
			want:  []string{},
		},
		{
			name:  "garbage input",
			input: "[[,,']",
			want:  []string{},
		},
		{
			name:  "unsupported type",
			input: 42,
			want:  []string{},
		},
		{
			name:  "interface slice from json decode",
			input: []interface{}{"zendaya", 7, "bad bunny"},
			want:  []string{"Zendaya", "Bad Bunny"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseArtists(tt.input)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}
