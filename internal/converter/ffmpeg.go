package converter

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

var (
	ffmpegOnce sync.Once
	ffmpegPath string
	ffmpegErr  error
)

// FindFFmpeg sistemde FFmpeg'i arar. Sonuç süreç ömrü boyunca önbelleğe
// alınır.
func FindFFmpeg() (string, error) {
	ffmpegOnce.Do(func() {
		ffmpegPath, ffmpegErr = locateFFmpeg()
	})
	return ffmpegPath, ffmpegErr
}

func locateFFmpeg() (string, error) {
	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	paths := []string{"ffmpeg"}
	if runtime.GOOS == "darwin" {
		paths = append(paths, "/opt/homebrew/bin/ffmpeg", "/usr/local/bin/ffmpeg")
	} else if runtime.GOOS == "linux" {
		paths = append(paths, "/usr/bin/ffmpeg", "/usr/local/bin/ffmpeg")
	}

	for _, p := range paths {
		if path, err := exec.LookPath(p); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf(
		"FFmpeg bulunamadı! GIF dönüşümü için FFmpeg kurulu olmalıdır.\n\n" +
			"Kurulum:\n" +
			"  macOS:   brew install ffmpeg\n" +
			"  Ubuntu:  sudo apt install ffmpeg\n" +
			"  Windows: https://ffmpeg.org/download.html\n")
}

// FindFFprobe sistemde ffprobe'u arar; bulunamazsa boş string döner.
func FindFFprobe() string {
	paths := []string{"ffprobe"}
	if runtime.GOOS == "darwin" {
		paths = append(paths, "/opt/homebrew/bin/ffprobe", "/usr/local/bin/ffprobe")
	} else if runtime.GOOS == "linux" {
		paths = append(paths, "/usr/bin/ffprobe", "/usr/local/bin/ffprobe")
	}

	for _, p := range paths {
		if path, err := exec.LookPath(p); err == nil {
			return path
		}
	}
	return ""
}

// IsFFmpegAvailable FFmpeg'in kullanılabilir olup olmadığını kontrol eder.
func IsFFmpegAvailable() bool {
	_, err := FindFFmpeg()
	return err == nil
}

// ExternalTool harici bir aracın durumunu temsil eder.
type ExternalTool struct {
	Name      string
	Available bool
	Path      string
	Version   string
}

// CheckDependencies harici bağımlılıkları (FFmpeg ve FFprobe) kontrol eder.
func CheckDependencies() []ExternalTool {
	tools := []ExternalTool{}

	ffmpegTool := ExternalTool{Name: "FFmpeg"}
	if path, err := FindFFmpeg(); err == nil {
		ffmpegTool.Available = true
		ffmpegTool.Path = path
		ffmpegTool.Version = toolVersion(path)
	}
	tools = append(tools, ffmpegTool)

	ffprobeTool := ExternalTool{Name: "FFprobe"}
	if path := FindFFprobe(); path != "" {
		ffprobeTool.Available = true
		ffprobeTool.Path = path
		ffprobeTool.Version = toolVersion(path)
	}
	tools = append(tools, ffprobeTool)

	return tools
}

func toolVersion(path string) string {
	out, err := exec.Command(path, "-version").Output()
	if err != nil {
		return ""
	}
	lines := strings.SplitN(string(out), "\n", 2)
	return strings.TrimSpace(lines[0])
}
