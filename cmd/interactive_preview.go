package cmd

import (
	"fmt"
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/gifconverter-cli/internal/preview"
)

// ========================================
// Önizleme Ekranı
// ========================================

// previewViewportSize terminal boyutundan önizleme alanının piksel boyutunu
// hesaplar. Yarım blok karakteri hücre başına iki piksel satırı taşır.
func previewViewportSize(termWidth, termHeight int) (int, int) {
	w := termWidth - 4
	if w < 20 {
		w = 20
	}
	if w > 120 {
		w = 120
	}

	rows := termHeight - 12
	if rows < 6 {
		rows = 6
	}
	if rows > 40 {
		rows = 40
	}

	return w, rows * 2
}

// openPreview seçili dosya için önizleme motorunu kurar. Önizleme açılamazsa
// dönüşüm yine de yapılabilir; hata ekranda gösterilir ve Enter preset
// seçimine geçer.
func (m interactiveModel) openPreview() interactiveModel {
	m.releasePreview()
	m.previewErr = ""
	m.skipStart = 0
	m.skipEnd = 0
	m.scrubPos = 0

	source, err := preview.NewFFmpegSource()
	if err != nil {
		m.previewErr = err.Error()
		m.state = statePreview
		return m
	}

	w, h := previewViewportSize(m.width, m.height)
	m.viewport = preview.NewViewport(w, h)
	m.engine = preview.NewEngine(source, m.viewport, nil)

	if err := m.engine.Load(m.selectedFile); err != nil {
		m.previewErr = err.Error()
		m.engine = nil
		m.viewport = nil
	}

	m.state = statePreview
	return m
}

func (m *interactiveModel) releasePreview() {
	if m.engine != nil {
		m.engine.Release()
		m.engine = nil
	}
	m.viewport = nil
	m.lastFrameGen = 0
}

func (m interactiveModel) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.engine == nil {
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc", "q":
			return m.goBack(), nil
		case "enter":
			m.state = statePresetSelect
			m.cursor = 0
			return m, nil
		}
		return m, nil
	}

	snap := m.engine.Snapshot()

	// Sürükleme modunda ok tuşları zaman çubuğunu taşır
	if snap.Scrubbing {
		switch msg.String() {
		case "left":
			m.scrubPos -= 0.01
			if m.scrubPos < 0 {
				m.scrubPos = 0
			}
			m.engine.Scrub(m.scrubPos)
		case "right":
			m.scrubPos += 0.01
			if m.scrubPos > 1 {
				m.scrubPos = 1
			}
			m.engine.Scrub(m.scrubPos)
		case "shift+left":
			m.scrubPos -= 0.05
			if m.scrubPos < 0 {
				m.scrubPos = 0
			}
			m.engine.Scrub(m.scrubPos)
		case "shift+right":
			m.scrubPos += 0.05
			if m.scrubPos > 1 {
				m.scrubPos = 1
			}
			m.engine.Scrub(m.scrubPos)
		case "s", "enter":
			m.engine.EndScrub(m.scrubPos)
		case "esc":
			m.engine.EndScrub(snap.SliderPosition())
		case "ctrl+c":
			m.quitting = true
			m.releasePreview()
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.releasePreview()
		return m, tea.Quit

	case "esc", "q":
		return m.goBack(), nil

	case " ":
		if snap.Playing {
			m.engine.Pause()
		} else {
			m.engine.Play()
		}

	case "left":
		m.engine.Seek(snap.CurrentFrame - 1)

	case "right":
		m.engine.Seek(snap.CurrentFrame + 1)

	case "shift+left":
		m.engine.SeekToTime(m.engine.CurrentDuration() - 1)

	case "shift+right":
		m.engine.SeekToTime(m.engine.CurrentDuration() + 1)

	case "home":
		m.engine.Seek(0)

	case "end":
		m.engine.Seek(snap.FrameCount - 1)

	case "s":
		m.scrubPos = snap.SliderPosition()
		m.engine.BeginScrub()
		m.engine.Scrub(m.scrubPos)

	case "[":
		start := m.engine.CurrentDuration()
		if start+m.skipEnd < m.engine.Duration() {
			m.skipStart = start
		}

	case "]":
		end := m.engine.Duration() - m.engine.CurrentDuration()
		if end < 0 {
			end = 0
		}
		if m.skipStart+end < m.engine.Duration() {
			m.skipEnd = end
		}

	case "r":
		m.skipStart = 0
		m.skipEnd = 0

	case "enter":
		m.engine.Pause()
		m.state = statePresetSelect
		m.cursor = 0
	}

	return m, nil
}

func (m interactiveModel) viewPreview() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" 🎬 Önizleme "))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(shortenPath(m.selectedFile)))
	b.WriteString("\n\n")

	if m.engine == nil {
		b.WriteString(errorStyle.Render("  ⚠ Önizleme kullanılamıyor"))
		b.WriteString("\n")
		if m.previewErr != "" {
			b.WriteString(dimStyle.Render("  " + m.previewErr))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(infoStyle.Render("  Dönüşüm yine de yapılabilir."))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  Enter Dönüşüme Geç  •  Esc Geri"))
		b.WriteString("\n")
		return b.String()
	}

	snap := m.engine.Snapshot()

	frame, _ := m.viewport.Frame()
	if frame != nil {
		b.WriteString(renderHalfBlocks(frame))
	} else {
		b.WriteString(dimStyle.Render("  Kare yükleniyor..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	// Zaman çubuğu
	pos := snap.SliderPosition()
	if snap.Scrubbing {
		pos = m.scrubPos
	}
	barWidth := m.width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 80 {
		barWidth = 80
	}
	filled := int(pos * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}

	bar := strings.Repeat("━", filled) + "●" + strings.Repeat("─", barWidth-filled)
	clock := fmt.Sprintf("%s / %s", preview.FormatClock(snap.Position), preview.FormatClock(snap.Duration))

	barStyle := infoStyle
	if snap.Scrubbing {
		barStyle = lipgloss.NewStyle().Bold(true).Foreground(warningColor)
	}

	b.WriteString("  ")
	b.WriteString(barStyle.Render(bar))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render(clock))
	b.WriteString("\n")

	// Durum satırı
	status := "⏸ Duraklatıldı"
	if snap.Playing {
		status = "▶ Oynatılıyor"
	}
	if snap.Scrubbing {
		status = "⇄ Sürükleme"
	}
	b.WriteString("  ")
	b.WriteString(infoStyle.Render(status))
	b.WriteString(dimStyle.Render(fmt.Sprintf("   kare %d/%d   %.1f fps", snap.CurrentFrame+1, snap.FrameCount, snap.FrameRate)))
	b.WriteString("\n")

	// Kırpma bilgisi
	if m.skipStart > 0 || m.skipEnd > 0 {
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Render(
			fmt.Sprintf("✂️  Kırpma: baştan %.1fs, sondan %.1fs (GIF süresi: %.1fs)",
				m.skipStart, m.skipEnd, snap.Duration-m.skipStart-m.skipEnd)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if snap.Scrubbing {
		b.WriteString(dimStyle.Render("  ←→ Taşı  •  Shift+←→ Hızlı  •  s Bırak  •  Esc İptal"))
	} else {
		b.WriteString(dimStyle.Render("  Boşluk Oynat/Durdur  •  ←→ Kare  •  Shift+←→ ±1sn  •  s Sürükle"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  [ Baş kırp  •  ] Son kırp  •  r Sıfırla  •  Enter Dönüştür  •  Esc Geri"))
	}
	b.WriteString("\n")

	return b.String()
}

// renderHalfBlocks kareyi üst yarı blok karakteriyle çizer: her terminal
// hücresi iki piksel satırı taşır, üst piksel ön plan, alt piksel arka plan
// rengi olur.
func renderHalfBlocks(img *image.RGBA) string {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	var b strings.Builder
	b.Grow(h / 2 * (w*40 + 8))

	for y := 0; y < h-1; y += 2 {
		b.WriteString("  ")
		for x := 0; x < w; x++ {
			ti := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			bi := img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y+1)
			tr, tg, tb := img.Pix[ti], img.Pix[ti+1], img.Pix[ti+2]
			br, bg, bb := img.Pix[bi], img.Pix[bi+1], img.Pix[bi+2]
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		b.WriteString("\x1b[0m\n")
	}

	return b.String()
}
