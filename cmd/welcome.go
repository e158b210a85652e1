package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/gifconverter-cli/internal/installer"
)

// ========================================
// Karşılama Ekranı — İlk Kullanım
// ========================================

// Hoşgeldin ASCII art
var welcomeArt = []string{
	"",
	"     ██████╗ ██╗███████╗",
	"    ██╔════╝ ██║██╔════╝",
	"    ██║  ███╗██║█████╗  ",
	"    ██║   ██║██║██╔══╝  ",
	"    ╚██████╔╝██║██║     ",
	"     ╚═════╝ ╚═╝╚═╝     ",
	"",
	"   ██████╗ ██████╗ ███╗   ██╗██╗   ██╗███████╗██████╗ ████████╗███████╗██████╗ ",
	"  ██╔════╝██╔═══██╗████╗  ██║██║   ██║██╔════╝██╔══██╗╚══██╔══╝██╔════╝██╔══██╗",
	"  ██║     ██║   ██║██╔██╗ ██║██║   ██║█████╗  ██████╔╝   ██║   █████╗  ██████╔╝",
	"  ██║     ██║   ██║██║╚██╗██║╚██╗ ██╔╝██╔══╝  ██╔══██╗   ██║   ██╔══╝  ██╔══██╗",
	"  ╚██████╗╚██████╔╝██║ ╚████║ ╚████╔╝ ███████╗██║  ██║   ██║   ███████╗██║  ██║",
	"   ╚═════╝ ╚═════╝ ╚═╝  ╚═══╝  ╚═══╝  ╚══════╝╚═╝  ╚═╝   ╚═╝   ╚══════╝╚═╝  ╚═╝",
	"",
}

var (
	welcomePrimaryColor   = lipgloss.Color("#334155")
	welcomeSecondaryColor = lipgloss.Color("#E2E8F0")
	welcomeTextColor      = lipgloss.Color("#E2E8F0")
	welcomeDimColor       = lipgloss.Color("#94A3B8")
)

// İlk açılış için sade, logo ile uyumlu tonlar
var welcomeGradient = []lipgloss.Color{
	"#F1F5F9", "#E2E8F0", "#CBD5E1", "#94A3B8", "#64748B", "#94A3B8",
}

// Uygulama tanıtım metni
var welcomeDescLines = []string{
	"",
	"  GIFConverter'a hos geldiniz!",
	"",
	"  Bu uygulama, videolarınızı yerel ortamda yüksek kaliteli GIF'lere",
	"  dönüştürmenizi sağlar. İnternet'e yükleme gerektirmez.",
	"",
	"  Ozellikler:",
	"",
	"     Canli Onizleme    — Videoyu terminalde oynat, kare kare gez",
	"     Kirpma            — Baştan ve sondan saniye atarak GIF'i kısalt",
	"     Kalite Preset'i   — default, mini, smooth, hd palet profilleri",
	"     Toplu Donusum     — Dizindeki tüm videoları paralel dönüştür",
	"     Klasor Izleme     — Yeni gelen videoları otomatik dönüştür",
	"",
	"  Tum islemler tamamen yerel — verileriniz sizde kalir.",
	"",
}

// ========================================
// Karşılama Ekranı Render
// ========================================

func welcomeTotalChars() int {
	total := 0
	for _, line := range welcomeDescLines {
		total += len([]rune(line))
	}
	return total
}

// viewWelcomeIntro animasyonlu karşılama ekranı
func (m interactiveModel) viewWelcomeIntro() string {
	var b strings.Builder

	welcomeSkipStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(welcomeSecondaryColor).
		PaddingLeft(2)

	// Logo renklerinde ASCII banner
	for i, line := range welcomeArt {
		colorIdx := i % len(welcomeGradient)
		style := lipgloss.NewStyle().Bold(true).Foreground(welcomeGradient[colorIdx])
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	// Versiyon bilgisi
	versionLine := fmt.Sprintf("v%s  •  Video → GIF Dönüştürücü", appVersion)
	b.WriteString(lipgloss.NewStyle().Foreground(welcomeDimColor).Italic(true).Render(versionLine))
	b.WriteString("\n")

	// Typing animasyonu — metni charIdx'e kadar göster
	totalChars := 0
	for _, line := range welcomeDescLines {
		lineRunes := []rune(line)
		if totalChars+len(lineRunes) <= m.welcomeCharIdx {
			// Tam satır göster
			b.WriteString(lipgloss.NewStyle().Foreground(welcomeTextColor).Render(line))
			b.WriteString("\n")
			totalChars += len(lineRunes)
		} else {
			// Kısmen göster
			remaining := m.welcomeCharIdx - totalChars
			if remaining > 0 {
				partial := string(lineRunes[:remaining])
				b.WriteString(lipgloss.NewStyle().Foreground(welcomeTextColor).Render(partial))
				// Yanıp sönen cursor
				if m.showCursor {
					b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(welcomeSecondaryColor).Render("▌"))
				}
			}
			b.WriteString("\n")
			break
		}
	}

	totalDesiredChars := welcomeTotalChars()

	b.WriteString("\n")
	quickSkipText := "  ⏩ Yazıyı hızlı geçmek için Enter'a basın"
	if m.welcomeCharIdx < totalDesiredChars {
		if m.showCursor {
			b.WriteString(welcomeSkipStyle.Render(quickSkipText))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(welcomeDimColor).Render(quickSkipText))
		}
		b.WriteString("\n")
	}

	if m.welcomeCharIdx >= totalDesiredChars {
		b.WriteString("\n")
		// Yanıp sönen devam mesajı
		continueText := "  ▸ Devam etmek için Enter'a basın"
		if m.showCursor {
			b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(welcomeSecondaryColor).Render(continueText))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(welcomeDimColor).Render(continueText))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// viewWelcomeDeps bağımlılık kontrol ve kurulum ekranı
func (m interactiveModel) viewWelcomeDeps() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(welcomePrimaryColor).
		Padding(0, 2).
		MarginBottom(1)

	welcomeSelectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(welcomeSecondaryColor).
		PaddingLeft(2)

	welcomeNormalStyle := lipgloss.NewStyle().
		Foreground(welcomeTextColor).
		PaddingLeft(4)

	welcomeDimStyle := lipgloss.NewStyle().
		Foreground(welcomeDimColor)

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(" Sistem Kontrolu "))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(welcomeTextColor).Render(
		"  GIF dönüşümü ve önizleme için FFmpeg gereklidir.\n  Durumu kontrol ediliyor...\n"))
	b.WriteString("\n")

	if m.installResult != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(welcomeTextColor).Render("  " + m.installResult))
		b.WriteString("\n\n")
	}

	// Bağımlılık durumu tablosu
	hasMissing := false
	for _, dep := range m.dependencies {
		var statusIcon, statusText string
		var style lipgloss.Style

		if dep.Available {
			statusIcon = "OK"
			statusText = "Kurulu"
			style = successStyle
		} else {
			statusIcon = "NO"
			statusText = "Kurulu Değil"
			style = errorStyle
			hasMissing = true
		}

		nameStyle := lipgloss.NewStyle().Bold(true).Foreground(welcomeTextColor).Width(15)
		line := fmt.Sprintf("  %s %s %s",
			statusIcon,
			nameStyle.Render(dep.Name),
			style.Render(statusText))

		if dep.Available && dep.Version != "" {
			ver := dep.Version
			if len(ver) > 40 {
				ver = ver[:40] + "…"
			}
			line += welcomeDimStyle.Render(fmt.Sprintf("  (%s)", ver))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")

	// Eksik araçlar varsa kurulum seçenekleri
	if hasMissing {
		pm := installer.DetectPackageManager()

		if pm != "" {
			b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(warningColor).Render(
				"  FFmpeg eksik"))
			b.WriteString("\n\n")

			b.WriteString(welcomeDimStyle.Render(fmt.Sprintf("  Paket yöneticisi: %s", pm)))
			b.WriteString("\n\n")

			installOptions := []string{"FFmpeg'i otomatik kur", "Atla ve devam et"}
			for i, opt := range installOptions {
				if i == m.cursor {
					b.WriteString(welcomeSelectedStyle.Render(fmt.Sprintf("  ▸ %s", opt)))
				} else {
					b.WriteString(welcomeNormalStyle.Render(fmt.Sprintf("    %s", opt)))
				}
				b.WriteString("\n")
			}
		} else {
			info := installer.GetFFmpegInstallInfo()
			b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Render(
				"  Paket yoneticisi bulunamadi. FFmpeg'i manuel olarak kurmaniz gerekiyor."))
			b.WriteString("\n\n")
			b.WriteString(welcomeDimStyle.Render(fmt.Sprintf("  • FFmpeg: %s", info.ManualURL)))
			b.WriteString("\n\n")
			b.WriteString(welcomeDimStyle.Render("  Enter ile devam edin"))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(successStyle.Render("  FFmpeg kurulu. Hazirsiniz."))
		b.WriteString("\n\n")
		b.WriteString(welcomeDimStyle.Render("  Enter ile devam edin"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(welcomeDimStyle.Render("  ↑↓ Gezin  •  Enter Seç"))
	b.WriteString("\n")

	return b.String()
}

// viewWelcomeInstalling kurulum sırasında gösterilen ekran
func (m interactiveModel) viewWelcomeInstalling() string {
	var b strings.Builder

	b.WriteString("\n\n")

	frame := spinnerFrames[m.spinnerIdx]
	spinnerStyle := lipgloss.NewStyle().Bold(true).Foreground(welcomeSecondaryColor)

	b.WriteString(spinnerStyle.Render(fmt.Sprintf("  %s FFmpeg kuruluyor", frame)))

	dots := strings.Repeat(".", (m.spinnerTick/3)%4)
	b.WriteString(lipgloss.NewStyle().Foreground(welcomeDimColor).Render(dots))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(welcomeDimColor).Render("  Lütfen bekleyin, kurulum devam ediyor..."))
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(warningColor).Italic(true).Render(
		"  ⓘ Linux'ta sudo şifresi istenebilir."))
	b.WriteString("\n")

	return b.String()
}
