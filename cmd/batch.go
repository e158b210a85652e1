package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifconverter-cli/internal/batch"
	"github.com/mlihgenel/gifconverter-cli/internal/converter"
	"github.com/mlihgenel/gifconverter-cli/internal/profile"
	"github.com/mlihgenel/gifconverter-cli/internal/ui"
)

var (
	batchPreset     string
	batchSkipStart  float64
	batchSkipEnd    float64
	batchRecursive  bool
	batchDryRun     bool
	batchOnConflict string
	batchRetry      int
	batchRetryDelay time.Duration
	batchReport     string
	batchReportFile string
)

var batchCmd = &cobra.Command{
	Use:   "batch <dizin veya glob>",
	Short: "Birden fazla videoyu toplu GIF'e dönüştür",
	Long: `Bir dizindeki veya glob pattern'e uyan tüm videoları toplu olarak GIF'e
dönüştürür. Worker pool kullanarak paralel dönüşüm yapar.

Örnekler:
  gifconverter-cli batch ./videolar
  gifconverter-cli batch ./videolar --recursive --preset mini
  gifconverter-cli batch "*.mp4" --skip-start 1
  gifconverter-cli batch ./videolar --dry-run
  gifconverter-cli batch ./videolar --on-conflict versioned --report json --report-file rapor.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		preset, err := profile.Resolve(batchPreset)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		conflictPolicy := converter.NormalizeConflictPolicy(batchOnConflict)
		if conflictPolicy == "" {
			ui.PrintError(fmt.Sprintf("Geçersiz on-conflict politikası: %s", batchOnConflict))
			return fmt.Errorf("gecersiz on-conflict politikasi: %s", batchOnConflict)
		}

		reportFormat := batch.NormalizeReportFormat(batchReport)
		if reportFormat == "" {
			ui.PrintError(fmt.Sprintf("Geçersiz report formatı: %s", batchReport))
			return fmt.Errorf("gecersiz report formati: %s", batchReport)
		}

		// Dosyaları topla
		var files []string
		info, statErr := os.Stat(source)
		if statErr == nil && info.IsDir() {
			// Dizin modu
			files, err = batch.CollectFiles(source, batchRecursive)
			if err != nil {
				ui.PrintError(fmt.Sprintf("Dizin taranamadı: %s", err.Error()))
				return err
			}
		} else {
			// Glob pattern modu
			files, err = batch.CollectFilesFromGlob(source)
			if err != nil {
				ui.PrintError(fmt.Sprintf("Glob pattern hatası: %s", err.Error()))
				return err
			}
		}

		if len(files) == 0 {
			ui.PrintWarning("Dönüştürülecek video bulunamadı.")
			return nil
		}

		ui.PrintInfo(fmt.Sprintf("%d adet video bulundu", len(files)))

		if verbose {
			for _, f := range files {
				fmt.Printf("  %s %s\n", ui.IconVideo, f)
			}
			fmt.Println()
		}

		// Dry-run modu
		if batchDryRun {
			ui.PrintInfo("Ön izleme modu (--dry-run) — dönüşüm yapılmayacak:")
			fmt.Println()
			for _, f := range files {
				outputFile := converter.BuildOutputPath(f, outputDir, "")
				ui.PrintConversion(f, outputFile)
			}
			fmt.Println()
			ui.PrintInfo(fmt.Sprintf("Toplam %d video dönüştürülecek.", len(files)))
			ui.PrintInfo("Dönüşümü başlatmak için --dry-run flag'ini kaldırın.")
			return nil
		}

		// İşleri oluştur
		jobs := make([]batch.Job, 0, len(files))
		reserved := make(map[string]struct{}, len(files))
		for _, f := range files {
			baseOutput := converter.BuildOutputPath(f, outputDir, "")
			resolvedOutput, skipReason, err := resolveBatchOutputPath(baseOutput, conflictPolicy, reserved)
			if err != nil {
				ui.PrintError(fmt.Sprintf("Çıktı yolu oluşturulamadı: %s", err.Error()))
				continue
			}
			jobs = append(jobs, batch.Job{
				InputPath:  f,
				OutputPath: resolvedOutput,
				SkipStart:  batchSkipStart,
				SkipEnd:    batchSkipEnd,
				Preset:     preset,
				SkipReason: skipReason,
			})
		}

		// Worker pool oluştur
		pool := batch.NewPool(workers)
		pool.SetRetry(batchRetry, batchRetryDelay)

		// Progress bar
		pb := ui.NewProgressBar(len(jobs), "Dönüştürülüyor")
		pool.OnProgress = func(completed, total int) {
			pb.Update(completed)
		}

		// Çalıştır
		fmt.Println()
		startedAt := time.Now()
		results := pool.Execute(jobs)
		endedAt := time.Now()
		totalDuration := endedAt.Sub(startedAt)

		// Sonuçları özetle
		summary := batch.GetSummary(results, totalDuration)
		ui.PrintBatchSummary(summary.Total, summary.Succeeded, summary.Skipped, summary.Failed, totalDuration)

		// Hataları göster
		if len(summary.Errors) > 0 {
			ui.PrintError("Başarısız dönüşümler:")
			for _, e := range summary.Errors {
				fmt.Printf("  %s %s: %s (deneme: %d)\n", ui.IconError, e.InputFile, e.Error, e.Attempts)
			}
			fmt.Println()
		}

		// Rapor yaz
		if reportFormat != batch.ReportOff {
			report, err := batch.RenderReport(reportFormat, summary, results, startedAt, endedAt)
			if err != nil {
				ui.PrintError(fmt.Sprintf("Rapor üretilemedi: %s", err.Error()))
			} else if batchReportFile != "" {
				if err := os.WriteFile(batchReportFile, []byte(report), 0644); err != nil {
					ui.PrintError(fmt.Sprintf("Rapor yazılamadı: %s", err.Error()))
				} else {
					ui.PrintInfo(fmt.Sprintf("Rapor yazıldı: %s", batchReportFile))
				}
			} else {
				fmt.Println(report)
			}
		}

		if summary.Failed > 0 {
			return fmt.Errorf("%d video dönüştürülemedi", summary.Failed)
		}

		return nil
	},
}

// resolveBatchOutputPath çakışma politikasını uygular ve aynı batch içinde
// iki işin aynı çıktıya yazmasını engeller.
func resolveBatchOutputPath(baseOutput, policy string, reserved map[string]struct{}) (string, string, error) {
	resolved, skip, err := converter.ResolveOutputPathConflict(baseOutput, policy)
	if err != nil {
		return "", "", err
	}
	if skip {
		return resolved, "çıktı zaten mevcut", nil
	}
	if _, taken := reserved[resolved]; taken {
		return resolved, "aynı çıktı yoluna başka bir iş yazıyor", nil
	}
	reserved[resolved] = struct{}{}
	return resolved, "", nil
}

func init() {
	batchCmd.Flags().StringVarP(&batchPreset, "preset", "p", "", "Kalite preset'i (default, mini, smooth, hd)")
	batchCmd.Flags().Float64Var(&batchSkipStart, "skip-start", 0, "Her videodan baştan atlanacak saniye")
	batchCmd.Flags().Float64Var(&batchSkipEnd, "skip-end", 0, "Her videodan sondan atlanacak saniye")
	batchCmd.Flags().BoolVarP(&batchRecursive, "recursive", "r", false, "Alt dizinleri de tara")
	batchCmd.Flags().BoolVar(&batchDryRun, "dry-run", false, "Ön izleme — dönüşüm yapmadan listele")
	batchCmd.Flags().StringVar(&batchOnConflict, "on-conflict", converter.ConflictOverwrite, "Çakışma politikası: overwrite, skip, versioned")
	batchCmd.Flags().IntVar(&batchRetry, "retry", 0, "Başarısız işler için otomatik tekrar sayısı")
	batchCmd.Flags().DurationVar(&batchRetryDelay, "retry-delay", 500*time.Millisecond, "Retry denemeleri arası bekleme (örn: 500ms, 2s)")
	batchCmd.Flags().StringVar(&batchReport, "report", batch.ReportOff, "Rapor formatı: off, txt, json")
	batchCmd.Flags().StringVar(&batchReportFile, "report-file", "", "Raporun yazılacağı dosya")

	rootCmd.AddCommand(batchCmd)
}
