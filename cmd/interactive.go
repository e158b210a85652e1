package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/gifconverter-cli/internal/batch"
	"github.com/mlihgenel/gifconverter-cli/internal/config"
	"github.com/mlihgenel/gifconverter-cli/internal/converter"
	"github.com/mlihgenel/gifconverter-cli/internal/installer"
	"github.com/mlihgenel/gifconverter-cli/internal/preview"
	"github.com/mlihgenel/gifconverter-cli/internal/profile"
)

// ========================================
// Renk Paleti ve Stiller
// ========================================

var (
	// Ana renk paleti
	primaryColor   = lipgloss.Color("#7C3AED") // Mor
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	accentColor    = lipgloss.Color("#10B981") // Yeşil
	warningColor   = lipgloss.Color("#F59E0B") // Sarı
	dangerColor    = lipgloss.Color("#EF4444") // Kırmızı
	textColor      = lipgloss.Color("#E2E8F0") // Açık gri
	dimTextColor   = lipgloss.Color("#64748B") // Koyu gri

	// Gradient renkleri (banner için)
	gradientColors = []lipgloss.Color{
		"#818CF8", "#A78BFA", "#C084FC", "#E879F9", "#F472B6",
	}

	// Stiller
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2).
			MarginBottom(1)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(secondaryColor).
				PaddingLeft(2)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(textColor).
			PaddingLeft(4)

	descStyle = lipgloss.NewStyle().
			Foreground(dimTextColor).
			Italic(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(dangerColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	pathStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 3).
			MarginTop(1)

	selectedFileStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				PaddingLeft(2)

	folderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// ========================================
// State Machine
// ========================================

type screenState int

const (
	stateWelcomeIntro screenState = iota
	stateWelcomeDeps
	stateWelcomeInstalling
	stateMainMenu
	stateFileBrowser
	statePreview
	statePresetSelect
	stateConverting
	stateConvertDone
	stateBatchBrowser
	stateBatchConverting
	stateBatchDone
	statePresets
	stateDependencies
	stateSettings
	stateSettingsBrowser
)

// ========================================
// Model
// ========================================

type interactiveModel struct {
	state  screenState
	cursor int

	// Menü
	choices     []string
	choiceIcons []string
	choiceDescs []string

	// Seçilen dosya
	selectedFile string

	// Dosya tarayıcı
	browserDir    string
	browserItems  []browserEntry
	defaultOutput string

	// Önizleme
	engine       *preview.Engine
	viewport     *preview.Viewport
	previewErr   string
	lastFrameGen uint64
	scrubPos     float64
	skipStart    float64
	skipEnd      float64

	// Dönüşüm
	selectedPreset profile.Preset
	job            *converter.Job
	convPercent    float64
	convLogs       []string

	// Sonuçlar
	resultMsg string
	resultErr bool
	duration  time.Duration
	convStart time.Time

	// Batch
	batchTotal     int
	batchSucceeded int
	batchSkipped   int
	batchFailed    int

	// Spinner
	spinnerIdx  int
	spinnerTick int

	// Pencere
	width  int
	height int

	// Çıkış
	quitting bool

	// Sistem durumu
	dependencies []converter.ExternalTool

	// Karşılama ekranı
	isFirstRun     bool
	welcomeCharIdx int
	showCursor     bool
	installResult  string

	// Ayarlar
	settingsBrowserDir   string
	settingsBrowserItems []browserEntry
}

type browserEntry struct {
	name  string
	path  string
	isDir bool
}

// Mesajlar
type jobEventMsg struct {
	event converter.Event
	ok    bool
}

type batchDoneMsg struct {
	total     int
	succeeded int
	skipped   int
	failed    int
	duration  time.Duration
}

type installDoneMsg struct {
	err error
}

type tickMsg time.Time

func newInteractiveModel(deps []converter.ExternalTool, firstRun bool) interactiveModel {
	homeDir := getHomeDir()

	initialState := stateMainMenu
	if firstRun {
		initialState = stateWelcomeIntro
	}

	// Varsayılan çıktı dizinini config'den oku
	outDir := config.GetDefaultOutputDir()
	if outDir == "" {
		outDir = filepath.Join(homeDir, "Desktop")
	}

	m := interactiveModel{
		state:         initialState,
		cursor:        0,
		browserDir:    outDir,
		defaultOutput: outDir,
		width:         80,
		height:        24,
		dependencies:  deps,
		isFirstRun:    firstRun,
		showCursor:    true,
	}
	return m.withMainMenuChoices()
}

func (m interactiveModel) withMainMenuChoices() interactiveModel {
	m.choices = []string{
		"Video Dönüştür",
		"Toplu Dönüştür (Batch)",
		"Preset'ler",
		"Sistem Kontrolü",
		"Ayarlar",
		"Çıkış",
	}
	m.choiceIcons = []string{"🎬", "📦", "🎚️", "🔧", "⚙️", "👋"}
	m.choiceDescs = []string{
		"Videoyu önizle, kırp ve GIF'e dönüştür",
		"Dizindeki tüm videoları toplu dönüştür",
		"Hazır kalite preset'lerini gör",
		"Harici araçların (FFmpeg, FFprobe) durumu",
		"Varsayılan çıktı dizini ve tercihler",
		"Uygulamadan çık",
	}
	return m
}

// ========================================
// bubbletea Interface
// ========================================

func (m interactiveModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewport != nil {
			w, h := previewViewportSize(m.width, m.height)
			m.viewport.SetSize(w, h)
		}
		return m, nil

	case tickMsg:
		// Spinner animasyonu
		if m.state == stateConverting || m.state == stateBatchConverting || m.state == stateWelcomeInstalling {
			m.spinnerTick++
			m.spinnerIdx = m.spinnerTick % len(spinnerFrames)
			if m.spinnerTick%5 == 0 {
				m.showCursor = !m.showCursor
			}
		}

		// Önizleme karesi değiştiyse View yeniden çizilir
		if m.state == statePreview && m.viewport != nil {
			_, gen := m.viewport.Frame()
			m.lastFrameGen = gen
		}

		// Karşılama ekranı typing animasyonu
		if m.state == stateWelcomeIntro {
			totalDesiredChars := welcomeTotalChars()
			if m.welcomeCharIdx < totalDesiredChars {
				m.welcomeCharIdx += 2
				if m.welcomeCharIdx > totalDesiredChars {
					m.welcomeCharIdx = totalDesiredChars
				}
			}
			if m.spinnerTick%5 == 0 {
				m.showCursor = !m.showCursor
			}
			m.spinnerTick++
		}

		if m.state == stateWelcomeDeps {
			m.spinnerTick++
			if m.spinnerTick%5 == 0 {
				m.showCursor = !m.showCursor
			}
		}

		return m, tickCmd()

	case jobEventMsg:
		return m.handleJobEvent(msg)

	case batchDoneMsg:
		m.state = stateBatchDone
		m.batchTotal = msg.total
		m.batchSucceeded = msg.succeeded
		m.batchSkipped = msg.skipped
		m.batchFailed = msg.failed
		m.duration = msg.duration
		return m, nil

	case installDoneMsg:
		m.dependencies = converter.CheckDependencies()
		if msg.err != nil {
			m.installResult = fmt.Sprintf("❌ Kurulum hatası: %s", msg.err.Error())
		} else {
			m.installResult = "✅ Kurulum tamamlandı!"
		}
		config.MarkFirstRunDone()
		m.state = stateWelcomeDeps
		m.cursor = 0
		return m, nil

	case tea.KeyMsg:
		// Karşılama ekranında "q" çıkmaya yönlendirmesin
		if m.state == stateWelcomeIntro || m.state == stateWelcomeDeps || m.state == stateWelcomeInstalling {
			switch msg.String() {
			case "ctrl+c":
				m.quitting = true
				return m, tea.Quit
			case "enter":
				return m.handleEnter()
			case "up", "k":
				if m.cursor > 0 {
					m.cursor--
				}
			case "down", "j":
				if m.cursor < m.getMaxCursor() {
					m.cursor++
				}
			}
			return m, nil
		}

		// Önizleme ekranının kendi tuş haritası var
		if m.state == statePreview {
			return m.handlePreviewKey(msg)
		}

		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			m.releasePreview()
			return m, tea.Quit

		case "q":
			if m.state == stateMainMenu {
				m.quitting = true
				return m, tea.Quit
			}
			if m.state == stateConverting {
				// Dönüşüm sürerken çıkılmaz
				return m, nil
			}
			return m.goToMainMenu(), nil

		case "esc":
			if m.state == stateConverting {
				return m, nil
			}
			return m.goBack(), nil

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < m.getMaxCursor() {
				m.cursor++
			}

		case "enter":
			return m.handleEnter()
		}
	}

	return m, nil
}

func (m interactiveModel) getMaxCursor() int {
	switch m.state {
	case stateFileBrowser:
		return len(m.browserItems) - 1
	case stateWelcomeIntro:
		return 0
	case stateWelcomeDeps:
		return 1
	case statePresetSelect:
		return len(profile.All()) - 1
	case stateSettings:
		return 1
	case stateSettingsBrowser:
		return len(m.settingsBrowserItems) // +1: "Bu dizini seç" butonu
	case stateBatchBrowser:
		dirCount := 0
		for _, item := range m.browserItems {
			if item.isDir {
				dirCount++
			}
		}
		return dirCount // son klasör + "Dönüştür" butonu
	default:
		return len(m.choices) - 1
	}
}

func (m interactiveModel) View() string {
	if m.quitting {
		return gradientText("  👋 Görüşürüz!", gradientColors) + "\n\n"
	}

	switch m.state {
	case stateWelcomeIntro:
		return m.viewWelcomeIntro()
	case stateWelcomeDeps:
		return m.viewWelcomeDeps()
	case stateWelcomeInstalling:
		return m.viewWelcomeInstalling()
	case stateMainMenu:
		return m.viewMainMenu()
	case stateFileBrowser:
		return m.viewFileBrowser()
	case statePreview:
		return m.viewPreview()
	case statePresetSelect:
		return m.viewPresetSelect()
	case stateConverting:
		return m.viewConverting()
	case stateConvertDone:
		return m.viewConvertDone()
	case stateBatchBrowser:
		return m.viewBatchBrowser()
	case stateBatchConverting:
		return m.viewBatchConverting()
	case stateBatchDone:
		return m.viewBatchDone()
	case statePresets:
		return m.viewPresets()
	case stateDependencies:
		return m.viewDependencies()
	case stateSettings:
		return m.viewSettings()
	case stateSettingsBrowser:
		return m.viewSettingsBrowser()
	default:
		return ""
	}
}

// ========================================
// Ekranlar
// ========================================

func (m interactiveModel) viewMainMenu() string {
	var b strings.Builder

	for i, line := range welcomeArt {
		colorIdx := i % len(welcomeGradient)
		style := lipgloss.NewStyle().Bold(true).Foreground(welcomeGradient[colorIdx])
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	versionLine := fmt.Sprintf("             v%s  •  Video → GIF Dönüştürücü", appVersion)
	b.WriteString(lipgloss.NewStyle().Foreground(dimTextColor).Italic(true).Render(versionLine))
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Ana Menü "))
	b.WriteString("\n\n")

	for i, choice := range m.choices {
		icon := m.choiceIcons[i]
		desc := ""
		if i < len(m.choiceDescs) {
			desc = m.choiceDescs[i]
		}

		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ %s  %s", icon, choice)))
			b.WriteString("\n")
			if desc != "" {
				b.WriteString(lipgloss.NewStyle().PaddingLeft(7).Foreground(dimTextColor).Italic(true).Render(desc))
				b.WriteString("\n")
			}
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s  %s", icon, choice)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç  •  q Çıkış"))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewFileBrowser() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Video Seçin "))
	b.WriteString("\n")

	shortDir := shortenPath(m.browserDir)
	b.WriteString(pathStyle.Render(fmt.Sprintf("  📁 %s", shortDir)))
	b.WriteString("\n\n")

	if len(m.browserItems) == 0 {
		b.WriteString(errorStyle.Render("  Bu dizinde video dosyası veya klasör bulunamadı!"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  Esc Geri"))
		b.WriteString("\n")
		return b.String()
	}

	// Sayfala
	pageSize := 15
	startIdx := 0
	if m.cursor >= pageSize {
		startIdx = m.cursor - pageSize + 1
	}
	endIdx := startIdx + pageSize
	if endIdx > len(m.browserItems) {
		endIdx = len(m.browserItems)
	}

	for i := startIdx; i < endIdx; i++ {
		item := m.browserItems[i]

		if item.isDir {
			if i == m.cursor {
				b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ 📁 %s/", item.name)))
			} else {
				b.WriteString(normalItemStyle.Render(fmt.Sprintf("  📁 %s/", folderStyle.Render(item.name))))
			}
		} else {
			if i == m.cursor {
				b.WriteString(selectedFileStyle.Render(fmt.Sprintf("▸ 🎬 %s", item.name)))
			} else {
				b.WriteString(normalItemStyle.Render(fmt.Sprintf("  🎬 %s", item.name)))
			}
		}
		b.WriteString("\n")
	}

	fileCount := 0
	dirCount := 0
	for _, item := range m.browserItems {
		if item.isDir {
			dirCount++
		} else {
			fileCount++
		}
	}

	b.WriteString("\n")
	info := fmt.Sprintf("  %d video", fileCount)
	if dirCount > 0 {
		info += fmt.Sprintf(", %d klasör", dirCount)
	}
	b.WriteString(infoStyle.Render(info))
	if len(m.browserItems) > pageSize {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d-%d arası)", startIdx+1, endIdx)))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç/Gir  •  Esc Geri"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  💾 Çıktı: %s", shortenPath(m.defaultOutput))))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewPresetSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Kalite Preset'i Seçin "))
	b.WriteString("\n\n")

	if m.selectedFile != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  🎬 %s", filepath.Base(m.selectedFile))))
		b.WriteString("\n")
		if m.skipStart > 0 || m.skipEnd > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ✂️  Kırpma: baştan %.1fs, sondan %.1fs", m.skipStart, m.skipEnd)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	for i, p := range profile.All() {
		label := fmt.Sprintf("%s — %s", p.Name, p.Description)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ 🎚️  %s", label)))
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  🎚️  %s", label)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Dönüştür  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewBatchBrowser() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" 📦 Kaynak Dizin Seçin "))
	b.WriteString("\n")

	shortDir := shortenPath(m.browserDir)
	b.WriteString(pathStyle.Render(fmt.Sprintf("  📁 %s", shortDir)))
	b.WriteString("\n\n")

	fileCount := 0
	for _, item := range m.browserItems {
		if !item.isDir {
			fileCount++
		}
	}

	if fileCount > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("  ✅ Bu dizinde %d adet video bulundu", fileCount)))
	} else {
		b.WriteString(errorStyle.Render("  ⚠ Bu dizinde video bulunamadı"))
	}
	b.WriteString("\n\n")

	dirIdx := 0
	for _, item := range m.browserItems {
		if !item.isDir {
			continue
		}
		if dirIdx == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ 📁 %s/", item.name)))
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  📁 %s/", folderStyle.Render(item.name))))
		}
		b.WriteString("\n")
		dirIdx++
	}

	b.WriteString("\n")
	if m.cursor == dirIdx {
		btn := fmt.Sprintf("▸ 🚀 Bu dizindeki %d videoyu dönüştür", fileCount)
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("  " + btn))
	} else {
		btn := fmt.Sprintf("  🚀 Bu dizindeki %d videoyu dönüştür", fileCount)
		b.WriteString(dimStyle.Render("  " + btn))
	}
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç/Gir  •  Esc Geri"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  💾 Çıktı: %s", shortenPath(m.defaultOutput))))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewBatchConverting() string {
	var b strings.Builder
	b.WriteString("\n\n")

	frame := spinnerFrames[m.spinnerIdx]
	spinnerStyleLocal := lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)

	b.WriteString(spinnerStyleLocal.Render(fmt.Sprintf("  %s Toplu dönüşüm sürüyor", frame)))
	dots := strings.Repeat(".", (m.spinnerTick/3)%4)
	b.WriteString(dimStyle.Render(dots))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render(fmt.Sprintf("  📁 %s", shortenPath(m.browserDir))))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  ⏳ İşlem devam ediyor, lütfen bekleyin..."))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewBatchDone() string {
	var b strings.Builder

	b.WriteString("\n")

	content := successStyle.Render("  🎉 Toplu Dönüşüm Tamamlandı!") + "\n\n"
	content += fmt.Sprintf("  Toplam:    %d video\n", m.batchTotal)
	content += successStyle.Render(fmt.Sprintf("  Başarılı:  %d video\n", m.batchSucceeded))
	if m.batchSkipped > 0 {
		content += dimStyle.Render(fmt.Sprintf("  Atlanan:   %d video\n", m.batchSkipped))
	}
	if m.batchFailed > 0 {
		content += errorStyle.Render(fmt.Sprintf("  Başarısız: %d video\n", m.batchFailed))
	}
	content += fmt.Sprintf("  Süre:      %s", formatDuration(m.duration))

	b.WriteString(resultBoxStyle.Render(content))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Enter Ana Menü"))
	b.WriteString("\n")

	return b.String()
}

func (m interactiveModel) viewPresets() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Kalite Preset'leri "))
	b.WriteString("\n\n")

	for _, p := range profile.All() {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(fmt.Sprintf("  🎚️  %s", p.Name)))
		b.WriteString("\n")
		b.WriteString(descStyle.Render(fmt.Sprintf("      %s", p.Description)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("      fps=%d genişlik=%dpx renk=%d bayer=%d", p.FPS, p.Width, p.MaxColors, p.BayerScale)))
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render("  Esc Ana Menü"))
	b.WriteString("\n")

	return b.String()
}

// viewDependencies sistem bağımlılıklarını gösterir
func (m interactiveModel) viewDependencies() string {
	var b strings.Builder

	b.WriteString(bannerStyle.Render("SİSTEM KONTROLÜ & BAĞIMLILIKLAR"))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("GIF dönüşümü ve önizleme için FFmpeg ile FFprobe gereklidir."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-15s %-10s %-35s %s", "ARAÇ", "DURUM", "YOL", "VERSİYON")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("-", 80)))
	b.WriteString("\n")

	for _, tool := range m.dependencies {
		status := "❌ Yok"
		statusStyle := errorStyle
		if tool.Available {
			status = "✅ Var"
			statusStyle = successStyle
		}

		path := tool.Path
		if len(path) > 35 {
			path = "..." + path[len(path)-32:]
		}
		if path == "" {
			path = "-"
		}

		ver := tool.Version
		if ver == "" {
			ver = "-"
		}

		line := fmt.Sprintf("%-15s %-10s %-35s %s", tool.Name, status, path, ver)

		if tool.Available {
			b.WriteString(statusStyle.Render(line))
		} else {
			b.WriteString(dimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("ESC: Geri dön"))

	return b.String()
}

// viewSettings ayarlar ekranı
func (m interactiveModel) viewSettings() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ⚙️  Ayarlar "))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().Foreground(textColor).Render("  Varsayılan çıktı dizini:"))
	b.WriteString("\n")
	b.WriteString(pathStyle.Render("  " + m.defaultOutput))
	b.WriteString("\n\n")

	options := []string{"📂  Varsayılan dizini değiştir", "↩️   Ana menüye dön"}
	for i, opt := range options {
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ %s", opt)))
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s", opt)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

// viewSettingsBrowser dizin seçici ekranı
func (m interactiveModel) viewSettingsBrowser() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" 📂 Varsayılan Çıktı Dizini Seç "))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("  Konum: "))
	b.WriteString(pathStyle.Render(m.settingsBrowserDir))
	b.WriteString("\n\n")

	for i, item := range m.settingsBrowserItems {
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ %s", item.name)))
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s", item.name)))
		}
		b.WriteString("\n")
	}

	selectIdx := len(m.settingsBrowserItems)
	b.WriteString("\n")
	if m.cursor == selectIdx {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("  ▸ ✅ Bu dizini seç"))
	} else {
		b.WriteString(dimStyle.Render("    ✅ Bu dizini seç"))
	}
	b.WriteString("\n")

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç/Gir  •  Esc Geri"))
	b.WriteString("\n")

	return b.String()
}

// ========================================
// İşlem Mantığı
// ========================================

func (m interactiveModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateWelcomeIntro:
		totalDesiredChars := welcomeTotalChars()
		if m.welcomeCharIdx < totalDesiredChars {
			m.welcomeCharIdx = totalDesiredChars
			return m, nil
		}
		m.state = stateWelcomeDeps
		m.cursor = 0
		return m, nil

	case stateWelcomeDeps:
		hasMissing := false
		for _, dep := range m.dependencies {
			if !dep.Available {
				hasMissing = true
				break
			}
		}

		pm := installer.DetectPackageManager()

		if hasMissing && pm != "" {
			if m.cursor == 0 {
				m.state = stateWelcomeInstalling
				return m, doInstallFFmpeg()
			}
			config.MarkFirstRunDone()
			return m.goToMainMenu(), nil
		}

		config.MarkFirstRunDone()
		return m.goToMainMenu(), nil

	case stateMainMenu:
		switch m.cursor {
		case 0:
			m.browserDir = m.defaultOutput
			m.loadBrowserItems()
			m.state = stateFileBrowser
			m.cursor = 0
			return m, nil
		case 1:
			m.browserDir = m.defaultOutput
			m.loadBrowserItems()
			m.state = stateBatchBrowser
			m.cursor = 0
			return m, nil
		case 2:
			m.state = statePresets
			m.cursor = 0
			return m, nil
		case 3:
			m.state = stateDependencies
			m.cursor = 0
			return m, nil
		case 4:
			m.state = stateSettings
			m.cursor = 0
			return m, nil
		case 5:
			m.quitting = true
			return m, tea.Quit
		}

	case stateFileBrowser:
		if m.cursor < len(m.browserItems) {
			item := m.browserItems[m.cursor]
			if item.isDir {
				m.browserDir = item.path
				m.cursor = 0
				m.loadBrowserItems()
				return m, nil
			}
			m.selectedFile = item.path
			return m.openPreview(), nil
		}

	case statePresetSelect:
		presets := profile.All()
		if m.cursor < len(presets) {
			m.selectedPreset = presets[m.cursor]
			return m.startConversion()
		}

	case stateBatchBrowser:
		dirItems := []browserEntry{}
		for _, item := range m.browserItems {
			if item.isDir {
				dirItems = append(dirItems, item)
			}
		}
		if m.cursor < len(dirItems) {
			m.browserDir = dirItems[m.cursor].path
			m.loadBrowserItems()
			m.cursor = 0
			return m, nil
		}
		// "Dönüştür" butonu
		m.state = stateBatchConverting
		return m, m.doBatchConvert()

	case stateSettings:
		switch m.cursor {
		case 0:
			m.settingsBrowserDir = m.defaultOutput
			m.loadSettingsBrowserItems()
			m.state = stateSettingsBrowser
			m.cursor = 0
			return m, nil
		case 1:
			return m.goToMainMenu(), nil
		}

	case stateSettingsBrowser:
		if m.cursor < len(m.settingsBrowserItems) {
			item := m.settingsBrowserItems[m.cursor]
			if item.isDir {
				m.settingsBrowserDir = item.path
				m.cursor = 0
				m.loadSettingsBrowserItems()
				return m, nil
			}
		} else if m.cursor == len(m.settingsBrowserItems) {
			m.defaultOutput = m.settingsBrowserDir
			config.SetDefaultOutputDir(m.settingsBrowserDir)
			m.state = stateSettings
			m.cursor = 0
			return m, nil
		}

	case stateConvertDone, stateBatchDone:
		return m.goToMainMenu(), nil
	}

	return m, nil
}

func (m interactiveModel) goToMainMenu() interactiveModel {
	m.releasePreview()
	m.state = stateMainMenu
	m.cursor = 0
	m.selectedFile = ""
	m.browserItems = nil
	m.resultMsg = ""
	m.resultErr = false
	m.skipStart = 0
	m.skipEnd = 0
	m.convPercent = 0
	m.convLogs = nil
	m.job = nil
	return m.withMainMenuChoices()
}

func (m interactiveModel) goBack() interactiveModel {
	switch m.state {
	case stateFileBrowser, stateBatchBrowser:
		return m.goToMainMenu()
	case statePreview:
		m.releasePreview()
		m.state = stateFileBrowser
		m.cursor = 0
		m.loadBrowserItems()
		return m
	case statePresetSelect:
		// Önizlemeye geri dön
		if m.engine != nil {
			m.state = statePreview
			return m
		}
		m.state = stateFileBrowser
		m.cursor = 0
		return m
	case stateConvertDone, stateBatchDone, statePresets, stateDependencies, stateSettings:
		return m.goToMainMenu()
	case stateSettingsBrowser:
		m.state = stateSettings
		m.cursor = 0
		return m
	default:
		return m.goToMainMenu()
	}
}

func (m *interactiveModel) loadBrowserItems() {
	m.browserItems = nil

	entries, err := os.ReadDir(m.browserDir)
	if err != nil {
		return
	}

	// Üst dizin (.. )
	parent := filepath.Dir(m.browserDir)
	if parent != m.browserDir {
		m.browserItems = append(m.browserItems, browserEntry{
			name:  ".. (üst dizin)",
			path:  parent,
			isDir: true,
		})
	}

	var dirs []browserEntry
	var files []browserEntry

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue // Gizli dosyaları atla
		}

		fullPath := filepath.Join(m.browserDir, e.Name())

		if e.IsDir() {
			dirs = append(dirs, browserEntry{
				name:  e.Name(),
				path:  fullPath,
				isDir: true,
			})
		} else if converter.IsVideoSource(e.Name()) {
			files = append(files, browserEntry{
				name:  e.Name(),
				path:  fullPath,
				isDir: false,
			})
		}
	}

	// Önce klasörler, sonra dosyalar
	m.browserItems = append(m.browserItems, dirs...)
	m.browserItems = append(m.browserItems, files...)
}

func (m interactiveModel) doBatchConvert() tea.Cmd {
	scanDir := m.browserDir
	outDir := m.defaultOutput
	return func() tea.Msg {
		start := time.Now()

		files, err := batch.CollectFiles(scanDir, false)
		if err != nil {
			return batchDoneMsg{duration: time.Since(start)}
		}

		jobs := make([]batch.Job, 0, len(files))
		reserved := make(map[string]struct{}, len(files))
		for _, f := range files {
			baseOutput := converter.BuildOutputPath(f, outDir, "")
			resolvedOutput, skipReason, err := resolveBatchOutputPath(baseOutput, converter.ConflictVersioned, reserved)
			if err != nil {
				continue
			}
			jobs = append(jobs, batch.Job{
				InputPath:  f,
				OutputPath: resolvedOutput,
				Preset:     profile.Default(),
				SkipReason: skipReason,
			})
		}

		pool := batch.NewPool(0)
		results := pool.Execute(jobs)
		summary := batch.GetSummary(results, time.Since(start))

		return batchDoneMsg{
			total:     summary.Total,
			succeeded: summary.Succeeded,
			skipped:   summary.Skipped,
			failed:    summary.Failed,
			duration:  summary.Duration,
		}
	}
}

// doInstallFFmpeg eksik FFmpeg'i kurar
func doInstallFFmpeg() tea.Cmd {
	return func() tea.Msg {
		_, err := installer.InstallFFmpeg()
		return installDoneMsg{err: err}
	}
}

// loadSettingsBrowserItems ayarlar dizin tarayıcısına öğeleri yükler
func (m *interactiveModel) loadSettingsBrowserItems() {
	entries, err := os.ReadDir(m.settingsBrowserDir)
	if err != nil {
		m.settingsBrowserItems = nil
		return
	}

	var items []browserEntry

	parent := filepath.Dir(m.settingsBrowserDir)
	if parent != m.settingsBrowserDir {
		items = append(items, browserEntry{
			name:  "📁 ..",
			path:  parent,
			isDir: true,
		})
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue // Sadece dizinler
		}
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		items = append(items, browserEntry{
			name:  "📁 " + e.Name(),
			path:  filepath.Join(m.settingsBrowserDir, e.Name()),
			isDir: true,
		})
	}

	m.settingsBrowserItems = items
}

// ========================================
// Yardımcı fonksiyonlar
// ========================================

func getHomeDir() string {
	u, err := user.Current()
	if err != nil {
		return "/"
	}
	return u.HomeDir
}

func shortenPath(path string) string {
	home := getHomeDir()
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

func gradientText(text string, colors []lipgloss.Color) string {
	if len(colors) == 0 {
		return text
	}
	runes := []rune(text)
	var result strings.Builder
	for i, r := range runes {
		colorIdx := i % len(colors)
		style := lipgloss.NewStyle().Bold(true).Foreground(colors[colorIdx])
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.2fµs", float64(d.Microseconds()))
	}
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Milliseconds()))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// ========================================
// Giriş noktası
// ========================================

func RunInteractive() error {
	deps := converter.CheckDependencies()
	firstRun := config.IsFirstRun()
	p := tea.NewProgram(newInteractiveModel(deps, firstRun), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
