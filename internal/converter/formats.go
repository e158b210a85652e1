package converter

import (
	"path/filepath"
	"strings"
)

// videoInputFormats kaynak olarak desteklenen video formatları.
var videoInputFormats = []string{"mp4", "mov", "mkv", "avi", "webm", "m4v", "wmv", "flv"}

// VideoInputFormats desteklenen kaynak formatlarının kopyasını döner.
func VideoInputFormats() []string {
	out := make([]string, len(videoInputFormats))
	copy(out, videoInputFormats)
	return out
}

// NormalizeFormat format adını standartlaştırır (.MP4 → mp4 vb.)
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	return strings.TrimPrefix(format, ".")
}

// DetectFormat dosya uzantısından format algılar.
func DetectFormat(filename string) string {
	return NormalizeFormat(filepath.Ext(filename))
}

// HasFormatExtension dosyanın verilen formata ait uzantı taşıyıp
// taşımadığını kontrol eder.
func HasFormatExtension(filename, format string) bool {
	return DetectFormat(filename) == NormalizeFormat(format)
}

// IsVideoSource dosyanın GIF'e dönüştürülebilir bir video olup olmadığını
// uzantısından anlar.
func IsVideoSource(filename string) bool {
	format := DetectFormat(filename)
	for _, f := range videoInputFormats {
		if f == format {
			return true
		}
	}
	return false
}
