package dto

// Editorial palette used by the dashboard charts.
var Palette = map[string]string{
	"black":      "#0E0E0E",
	"dark_gray":  "#4A4A4A",
	"light_gray": "#E6E6E6",
	"cream":      "#F5EFE6",
	"rose":       "#C78885",
}

var sentimentColors = map[string]string{
	"positive": "#97C3E3",
	"neutral":  "#F2E1C4",
	"negative": "#C78885",
	"unknown":  "#4A4A4A",
}

// SentimentColor maps a sentiment label to its display color; labels outside
// the fixed vocabulary get the unknown color.
func SentimentColor(sentiment string) string {
	if color, ok := sentimentColors[sentiment]; ok {
		return color
	}
	return sentimentColors["unknown"]
}
