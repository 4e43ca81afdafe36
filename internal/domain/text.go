package domain

import (
	"math"
	"strconv"
)

// TruncateText shortens text to maxLen runes and appends "..." when it was cut.
func TruncateText(text string, maxLen int) string {
	runes := []rune(text)
	if maxLen < 0 || len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with binary units and at most two decimals,
// e.g. 1536 -> "1.5 KB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	value := float64(bytes) / math.Pow(1024, float64(i))
	value = math.Round(value*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizeUnits[i]
}
