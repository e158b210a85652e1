package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifconverter-cli/internal/batch"
	"github.com/mlihgenel/gifconverter-cli/internal/converter"
	"github.com/mlihgenel/gifconverter-cli/internal/profile"
	"github.com/mlihgenel/gifconverter-cli/internal/ui"
	gifwatch "github.com/mlihgenel/gifconverter-cli/internal/watch"
)

var (
	watchPreset     string
	watchSkipStart  float64
	watchSkipEnd    float64
	watchRecursive  bool
	watchOnConflict string
	watchRetry      int
	watchRetryDelay time.Duration
	watchInterval   time.Duration
	watchSettle     time.Duration
	watchPollOnly   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <dizin>",
	Short: "Klasörü izleyip yeni videoları otomatik GIF'e dönüştür",
	Long: `Belirtilen klasörü izler ve yeni/degisen videoları otomatik olarak GIF'e
dönüştürür. Varsayılan olarak fsnotify tabanlı event izleme kullanılır;
desteklenmeyen sistemlerde polling'e düşer.

Örnekler:
  gifconverter-cli watch ./gelen
  gifconverter-cli watch ./videolar --recursive --preset mini
  gifconverter-cli watch ./gelen --on-conflict versioned --retry 2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sourceDir := args[0]

		preset, err := profile.Resolve(watchPreset)
		if err != nil {
			return err
		}

		conflictPolicy := converter.NormalizeConflictPolicy(watchOnConflict)
		if conflictPolicy == "" {
			return fmt.Errorf("gecersiz on-conflict politikasi: %s", watchOnConflict)
		}

		var engine gifwatch.Engine
		if watchPollOnly {
			engine = gifwatch.NewWatcher(sourceDir, watchRecursive, watchSettle)
		} else {
			engine, err = gifwatch.NewAdaptiveWatcher(sourceDir, watchRecursive, watchSettle)
			if err != nil {
				ui.PrintWarning(fmt.Sprintf("Event izleme kullanılamıyor, polling'e geçildi: %s", err.Error()))
			}
		}
		if err := engine.Bootstrap(); err != nil {
			return err
		}

		pool := batch.NewPool(workers)
		pool.SetRetry(watchRetry, watchRetryDelay)

		ui.PrintInfo(fmt.Sprintf("İzleme başladı: %s (mod: %s, preset: %s)", sourceDir, engine.Mode(), preset.Name))
		ui.PrintInfo("Durdurmak için Ctrl+C kullanın.")

		ticker := time.NewTicker(watchInterval)
		defer ticker.Stop()

		var wake <-chan struct{}
		if ew, ok := engine.(*gifwatch.EventWatcher); ok {
			wake = ew.Events()
			defer ew.Close()
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-ticker.C:
				runWatchCycle(engine, pool, preset, conflictPolicy)
			case <-wake:
				runWatchCycle(engine, pool, preset, conflictPolicy)
			case <-sigCh:
				ui.PrintInfo("İzleme durduruldu.")
				return nil
			}
		}
	},
}

func runWatchCycle(engine gifwatch.Engine, pool *batch.Pool, preset profile.Preset, conflictPolicy string) {
	files, err := engine.Poll(time.Now())
	if err != nil {
		ui.PrintError(fmt.Sprintf("İzleme hatası: %s", err.Error()))
		return
	}
	if len(files) == 0 {
		return
	}

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
			SkipStart:  watchSkipStart,
			SkipEnd:    watchSkipEnd,
			Preset:     preset,
			SkipReason: skipReason,
		})
	}

	if len(jobs) == 0 {
		return
	}

	startedAt := time.Now()
	results := pool.Execute(jobs)
	endedAt := time.Now()
	summary := batch.GetSummary(results, endedAt.Sub(startedAt))
	ui.PrintBatchSummary(summary.Total, summary.Succeeded, summary.Skipped, summary.Failed, summary.Duration)

	if len(summary.Errors) > 0 {
		ui.PrintError("Başarısız dönüşümler:")
		for _, e := range summary.Errors {
			fmt.Printf("  %s %s: %s (deneme: %d)\n", ui.IconError, e.InputFile, e.Error, e.Attempts)
		}
		fmt.Println()
	}
}

func init() {
	watchCmd.Flags().StringVarP(&watchPreset, "preset", "p", "", "Kalite preset'i (default, mini, smooth, hd)")
	watchCmd.Flags().Float64Var(&watchSkipStart, "skip-start", 0, "Her videodan baştan atlanacak saniye")
	watchCmd.Flags().Float64Var(&watchSkipEnd, "skip-end", 0, "Her videodan sondan atlanacak saniye")
	watchCmd.Flags().BoolVarP(&watchRecursive, "recursive", "r", false, "Alt dizinleri de izle")
	watchCmd.Flags().StringVar(&watchOnConflict, "on-conflict", converter.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	watchCmd.Flags().IntVar(&watchRetry, "retry", 0, "Başarısız işler için otomatik tekrar sayısı")
	watchCmd.Flags().DurationVar(&watchRetryDelay, "retry-delay", 500*time.Millisecond, "Retry denemeleri arası bekleme (örn: 500ms, 2s)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "Klasör tarama aralığı")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 1500*time.Millisecond, "Dosyanın stabil sayılması için bekleme süresi")
	watchCmd.Flags().BoolVar(&watchPollOnly, "poll", false, "Sadece polling kullan (fsnotify devre dışı)")

	rootCmd.AddCommand(watchCmd)
}
