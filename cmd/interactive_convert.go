package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/gifconverter-cli/internal/converter"
)

// ========================================
// Dönüşüm Ekranı — Tekli
// ========================================

// startConversion önizlemeyi kapatır, işi kurar ve olay pompasını başlatır.
func (m interactiveModel) startConversion() (tea.Model, tea.Cmd) {
	m.convStart = time.Now()

	// Encoder ile decode oturumu aynı anda açık kalmasın
	duration := 0.0
	if m.engine != nil {
		duration = m.engine.Duration()
	}
	m.releasePreview()

	if duration <= 0 {
		duration = converter.ProbeDuration(m.selectedFile)
	}

	job, err := converter.NewJob(m.selectedFile, m.skipStart, m.skipEnd, duration, m.selectedPreset)
	if err != nil {
		return m.finishWithError(err), nil
	}

	baseOutput := converter.BuildOutputPath(m.selectedFile, m.defaultOutput, "")
	resolvedOutput, _, err := converter.ResolveOutputPathConflict(baseOutput, converter.ConflictVersioned)
	if err != nil {
		return m.finishWithError(err), nil
	}
	job.SetOutput(resolvedOutput)

	if err := os.MkdirAll(filepath.Dir(resolvedOutput), 0755); err != nil {
		return m.finishWithError(err), nil
	}

	if err := job.Start(); err != nil {
		return m.finishWithError(err), nil
	}

	m.job = job
	m.state = stateConverting
	m.convPercent = 0
	m.convLogs = nil
	return m, waitForJobEvent(job.Events())
}

func (m interactiveModel) finishWithError(err error) interactiveModel {
	m.state = stateConvertDone
	m.resultErr = true
	m.resultMsg = err.Error()
	m.duration = time.Since(m.convStart)
	return m
}

// waitForJobEvent olay kanalından tek olay okur; Update her olayı
// işledikten sonra pompayı yeniden kurar.
func waitForJobEvent(ch <-chan converter.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		return jobEventMsg{event: e, ok: ok}
	}
}

func (m interactiveModel) handleJobEvent(msg jobEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		// Kanal kapandı; Result zaten işlendi
		return m, nil
	}

	switch e := msg.event.(type) {
	case converter.LogLine:
		m.convLogs = append(m.convLogs, e.Text)
		if len(m.convLogs) > 6 {
			m.convLogs = m.convLogs[len(m.convLogs)-6:]
		}

	case converter.Progress:
		m.convPercent = e.Percent

	case converter.Result:
		m.duration = time.Since(m.convStart)
		m.state = stateConvertDone
		if e.Err != nil {
			m.resultErr = true
			m.resultMsg = e.Err.Error()
		} else {
			m.resultErr = false
			m.resultMsg = e.Output
			m.convPercent = 100
		}
		return m, nil
	}

	if m.job == nil {
		return m, nil
	}
	return m, waitForJobEvent(m.job.Events())
}

func (m interactiveModel) viewConverting() string {
	var b strings.Builder

	b.WriteString("\n\n")

	frame := spinnerFrames[m.spinnerIdx]
	spinnerStyleLocal := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)

	b.WriteString(spinnerStyleLocal.Render(fmt.Sprintf("  %s GIF oluşturuluyor", frame)))
	dots := strings.Repeat(".", (m.spinnerTick/3)%4)
	b.WriteString(dimStyle.Render(dots))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("  🎬 %s", filepath.Base(m.selectedFile))))
	b.WriteString(dimStyle.Render(fmt.Sprintf("   preset: %s", m.selectedPreset.Name)))
	b.WriteString("\n\n")

	// İlerleme çubuğu
	barWidth := 40
	filled := int(m.convPercent / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	if m.job != nil && m.job.EffectiveDuration > 0 {
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(accentColor).Render(bar))
		b.WriteString(fmt.Sprintf(" %.1f%%", m.convPercent))
	} else {
		b.WriteString(dimStyle.Render("  Süre bilinmiyor, ilerleme yüzdesi gösterilemiyor..."))
	}
	b.WriteString("\n\n")

	// Son log satırları
	if len(m.convLogs) > 0 {
		for _, line := range m.convLogs {
			if len(line) > m.width-6 && m.width > 10 {
				line = line[:m.width-6]
			}
			b.WriteString(dimStyle.Render("  " + line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m interactiveModel) viewConvertDone() string {
	var b strings.Builder

	b.WriteString("\n")

	var content string
	if m.resultErr {
		content = errorStyle.Render("  ❌ Dönüşüm Başarısız") + "\n\n"
		content += fmt.Sprintf("  %s\n", m.resultMsg)
		content += dimStyle.Render(fmt.Sprintf("  Süre: %s", formatDuration(m.duration)))
	} else {
		content = successStyle.Render("  🎉 GIF Hazır!") + "\n\n"
		content += fmt.Sprintf("  📍 %s\n", shortenPath(m.resultMsg))

		if info, err := os.Stat(m.resultMsg); err == nil {
			content += dimStyle.Render(fmt.Sprintf("  Boyut: %s\n", converter.FormatFileSize(info.Size())))
		}
		content += dimStyle.Render(fmt.Sprintf("  Süre:  %s", formatDuration(m.duration)))
	}

	b.WriteString(resultBoxStyle.Render(content))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Enter Ana Menü"))
	b.WriteString("\n")

	return b.String()
}
