package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifconverter-cli/internal/converter"
	"github.com/mlihgenel/gifconverter-cli/internal/profile"
	"github.com/mlihgenel/gifconverter-cli/internal/ui"
)

var (
	skipStart  float64
	skipEnd    float64
	presetName string
	customName string
	onConflict string
)

var convertCmd = &cobra.Command{
	Use:   "convert <video>",
	Short: "Tek bir videoyu GIF'e dönüştür",
	Long: `Bir videoyu paletli GIF'e dönüştürür.

Baştan ve sondan saniye cinsinden kırpma yapılabilir; çıktı aynı dizine
aynı gövde adıyla .gif uzantısıyla yazılır.

Örnekler:
  gifconverter-cli convert klip.mp4
  gifconverter-cli convert klip.mp4 --skip-start 2 --skip-end 1.5
  gifconverter-cli convert klip.mp4 --preset smooth
  gifconverter-cli convert klip.mp4 --name cevap --output ./gifler/
  gifconverter-cli convert klip.mp4 --on-conflict versioned`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		// Dosya varlık kontrolü
		if _, err := os.Stat(inputFile); os.IsNotExist(err) {
			ui.PrintError(fmt.Sprintf("Dosya bulunamadı: %s", inputFile))
			return fmt.Errorf("dosya bulunamadı: %s", inputFile)
		}

		// Kaynak format kontrolü
		if !converter.IsVideoSource(inputFile) {
			ui.PrintError(fmt.Sprintf("Desteklenmeyen video formatı: %s", converter.DetectFormat(inputFile)))
			return fmt.Errorf("desteklenmeyen video formatı")
		}

		// Preset seç
		preset, err := profile.Resolve(presetName)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		// Video süresini oku
		duration := converter.ProbeDuration(inputFile)
		if duration <= 0 && (skipStart > 0 || skipEnd > 0) {
			ui.PrintError("Video süresi okunamadı; kırpma parametreleri kullanılamaz.")
			return converter.ErrDurationUnknown
		}

		// İşi kur
		job, err := converter.NewJob(inputFile, skipStart, skipEnd, duration, preset)
		if err != nil {
			var trimErr *converter.InvalidTrimRangeError
			if errors.As(err, &trimErr) {
				ui.PrintError(trimErr.Error())
			} else {
				ui.PrintError(err.Error())
			}
			return err
		}

		// Çıktı yolunu oluştur ve çakışmayı çöz
		outputFile := converter.BuildOutputPath(inputFile, outputDir, customName)
		outputFile, skip, err := converter.ResolveOutputPathConflict(outputFile, onConflict)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}
		if skip {
			ui.PrintWarning(fmt.Sprintf("Çıktı zaten var, atlandı: %s", outputFile))
			return nil
		}
		job.SetOutput(outputFile)

		if verbose {
			ui.PrintInfo(fmt.Sprintf("Preset: %s (%s)", preset.Name, preset.Description))
			ui.PrintInfo(fmt.Sprintf("Kaynak: %s", inputFile))
			ui.PrintInfo(fmt.Sprintf("Hedef:  %s", outputFile))
			if job.EffectiveDuration > 0 {
				ui.PrintInfo(fmt.Sprintf("Pencere: %.2fs - %.2fs (%.2fs)", job.StartSeek, job.EndSeek, job.EffectiveDuration))
			}
		}

		ui.PrintConversion(inputFile, outputFile)

		// Dönüşümü başlat ve olayları tüket
		start := time.Now()
		if err := job.Start(); err != nil {
			ui.PrintError(fmt.Sprintf("Encoder başlatılamadı: %s", err.Error()))
			return err
		}

		bar := ui.NewProgressBar(100, "Dönüştürülüyor")
		var resultErr error
		for event := range job.Events() {
			switch ev := event.(type) {
			case converter.LogLine:
				if verbose {
					fmt.Println("  " + ui.Dim + ev.Text + ui.Reset)
				}
			case converter.Progress:
				if !verbose {
					bar.UpdatePercent(ev.Percent)
				}
			case converter.Result:
				resultErr = ev.Err
			}
		}

		if resultErr != nil {
			fmt.Println()
			ui.PrintError(fmt.Sprintf("Dönüşüm başarısız: %s", resultErr.Error()))
			return resultErr
		}

		if !verbose && job.EffectiveDuration > 0 {
			bar.UpdatePercent(100)
		}
		ui.PrintSuccess("Dönüşüm tamamlandı!")
		ui.PrintDuration(time.Since(start))

		// Dosya boyutu bilgisi
		if info, err := os.Stat(outputFile); err == nil {
			ui.PrintInfo(fmt.Sprintf("Çıktı boyutu: %s", converter.FormatFileSize(info.Size())))
		}

		return nil
	},
}

func init() {
	convertCmd.Flags().Float64Var(&skipStart, "skip-start", 0, "Baştan atlanacak saniye")
	convertCmd.Flags().Float64Var(&skipEnd, "skip-end", 0, "Sondan atlanacak saniye")
	convertCmd.Flags().StringVarP(&presetName, "preset", "p", "", "Kalite preset'i (default, mini, smooth, hd)")
	convertCmd.Flags().StringVarP(&customName, "name", "n", "", "Çıktı dosya adı (uzantısız)")
	convertCmd.Flags().StringVar(&onConflict, "on-conflict", "", "Çakışma politikası (overwrite, skip, versioned)")

	rootCmd.AddCommand(convertCmd)
}
