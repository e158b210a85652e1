package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	verbose   bool
	outputDir string
	workers   int

	appVersion = "dev"
	appDate    = ""
)

// SetVersionInfo build-time version bilgisini ayarlar
func SetVersionInfo(version, date string) {
	if strings.TrimSpace(version) != "" {
		appVersion = version
	}
	appDate = strings.TrimSpace(date)
	if appDate == "" || appDate == "unknown" {
		appDate = time.Now().Format("2006-01-02 15:04:05")
	}
	rootCmd.Version = appVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	return fmt.Sprintf(
		"GIFConverter CLI v%s\nTarih:  %s\nGo:     %s\nOS:     %s/%s\n",
		appVersion, appDate, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}

var rootCmd = &cobra.Command{
	Use:   "gifconverter-cli",
	Short: "GIF Converter CLI - yerel video -> GIF donusturucu",
	Long: `GIF Converter CLI — Videolarınızı yerel ortamda GIF'e dönüştürün.

Videoyu internet'e yüklemeden, tamamen yerel olarak kaliteli paletli GIF
üretir. Baştan ve sondan kırpma, hazır kalite preset'leri ve terminal
içinde kare kare video önizleme destekler.

Interaktif mod:
  Dosya seç, önizlemede oynat/duraklat, kırpma noktalarını işaretle,
  dönüşümü canlı ilerlemeyle izle.

Desteklenen girişler:
  MP4, MOV, MKV, AVI, WEBM, M4V, WMV, FLV  (FFmpeg gerekir)

Örnekler:
  gifconverter-cli convert klip.mp4
  gifconverter-cli convert klip.mp4 --skip-start 2 --skip-end 1.5
  gifconverter-cli convert klip.mp4 --preset smooth --name cevap
  gifconverter-cli batch ./videolar --preset mini
  gifconverter-cli watch ./gelen --recursive
  gifconverter-cli presets
  gifconverter-cli info klip.mp4`,
	Version: appVersion,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Argümansız çalıştırıldığında interaktif mod başlat
		return RunInteractive()
	},
}

// Execute CLI'ı çalıştırır
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Detaylı çıktı modu")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Çıktı dizini (varsayılan: kaynak dizin)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Paralel worker sayısı (batch modunda)")

	SetVersionInfo(appVersion, appDate)

	// Hata mesajlarını özelleştir
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(os.Stderr, "Hata: %s\n\n", err.Error())
		cmd.Usage()
		return err
	})
}
