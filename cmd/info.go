package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifconverter-cli/internal/converter"
	"github.com/mlihgenel/gifconverter-cli/internal/ui"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <video>",
	Short: "Video hakkında detaylı bilgi göster",
	Long: `Bir videonun format, boyut, süre, çözünürlük ve codec bilgilerini gösterir.

Örnekler:
  gifconverter-cli info klip.mp4
  gifconverter-cli info klip.mp4 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filePath := args[0]

		info, err := converter.GetVideoInfo(filePath)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		if infoJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		printVideoInfo(info)
		return nil
	},
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "JSON formatında çıktı")
	rootCmd.AddCommand(infoCmd)
}

func printVideoInfo(info converter.VideoInfo) {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E2E8F0")).
		Width(16)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#64748B"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#334155")).
		Padding(1, 2).
		MarginTop(1)

	var lines []string

	// Başlık
	lines = append(lines, headerStyle.Render(fmt.Sprintf("%s  %s", ui.IconVideo, info.FileName)))
	lines = append(lines, dimStyle.Render(strings.Repeat("─", 40)))

	// Temel bilgiler
	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Format", info.Format))
	lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Boyut", info.SizeText))

	if info.DurationText != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Süre", info.DurationText))
	}
	if info.Resolution != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Çözünürlük", info.Resolution))
	}
	if info.VideoCodec != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Video Codec", info.VideoCodec))
	}
	if info.AudioCodec != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Ses Codec", info.AudioCodec))
	}
	if info.Bitrate != "" {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Bitrate", info.Bitrate))
	}
	if info.FPS > 0 {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "FPS", fmt.Sprintf("%.2f", info.FPS)))
	}
	if info.FrameCount > 0 {
		lines = append(lines, formatInfoLine(labelStyle, valueStyle, "Kare Sayısı", fmt.Sprintf("%d", info.FrameCount)))
	}

	fmt.Println(boxStyle.Render(strings.Join(lines, "\n")))
}

func formatInfoLine(labelStyle, valueStyle lipgloss.Style, label, value string) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}
