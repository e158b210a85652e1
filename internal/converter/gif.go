package converter

import (
	"fmt"
	"strconv"

	"github.com/mlihgenel/gifconverter-cli/internal/profile"
)

// FilterGraph preset parametrelerinden sabit GIF filtre zincirini üretir:
// kare oranını düşür, genişliği Lanczos ile ölçekle (yükseklik oranla),
// ölçeklenen akıştan palet üret ve paleti bayer dithering ile geri uygula.
func FilterGraph(p profile.Preset) string {
	return fmt.Sprintf(
		"fps=%d,scale=%d:-1:flags=lanczos,split[s0][s1];[s0]palettegen=max_colors=%d[p];[s1][p]paletteuse=dither=bayer:bayer_scale=%d",
		p.FPS, p.Width, p.MaxColors, p.BayerScale)
}

// EncodeArgs kırpma penceresi ve filtre zinciriyle ffmpeg argümanlarını
// kurar. endSeek 0 ise pencere bilinmiyor demektir; -ss/-to verilmez ve
// dosyanın tamamı dönüştürülür.
func EncodeArgs(input, output string, startSeek, endSeek float64, graph string) []string {
	args := []string{}
	if endSeek > 0 {
		args = append(args,
			"-ss", formatSeconds(startSeek),
			"-to", formatSeconds(endSeek),
		)
	}
	args = append(args,
		"-i", input,
		"-vf", graph,
		"-y",
		output,
	)
	return args
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
