package converter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// VideoInfo kaynak video hakkındaki bilgileri tutar
type VideoInfo struct {
	Path     string `json:"path"`
	FileName string `json:"file_name"`
	Format   string `json:"format"`
	Size     int64  `json:"size_bytes"`
	SizeText string `json:"size_text"`

	// FFprobe
	Duration     float64 `json:"duration_seconds,omitempty"`
	DurationText string  `json:"duration,omitempty"`
	VideoCodec   string  `json:"video_codec,omitempty"`
	AudioCodec   string  `json:"audio_codec,omitempty"`
	Bitrate      string  `json:"bitrate,omitempty"`
	FPS          float64 `json:"fps,omitempty"`
	FrameCount   int     `json:"frame_count,omitempty"`
	Width        int     `json:"width,omitempty"`
	Height       int     `json:"height,omitempty"`
	Resolution   string  `json:"resolution,omitempty"`
}

// GetVideoInfo dosya hakkında bilgi toplar
func GetVideoInfo(path string) (VideoInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("dosya bulunamadı: %w", err)
	}

	format := DetectFormat(path)
	if !IsVideoSource(path) {
		return VideoInfo{}, fmt.Errorf("desteklenmeyen video formatı: %s", format)
	}

	info := VideoInfo{
		Path:     path,
		FileName: filepath.Base(path),
		Format:   strings.ToUpper(format),
		Size:     stat.Size(),
		SizeText: FormatFileSize(stat.Size()),
	}
	fillProbeInfo(&info, path)

	return info, nil
}

// ffprobeResult ffprobe JSON çıktısının ilgili alanları
type ffprobeResult struct {
	Format struct {
		Duration string `json:"duration"`
		BitRate  string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width,omitempty"`
		Height     int    `json:"height,omitempty"`
		RFrameRate string `json:"r_frame_rate,omitempty"`
		NbFrames   string `json:"nb_frames,omitempty"`
	} `json:"streams"`
}

// fillProbeInfo FFprobe ile video akış bilgilerini okur
func fillProbeInfo(info *VideoInfo, path string) {
	ffprobePath := FindFFprobe()
	if ffprobePath == "" {
		return
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return
	}

	var result ffprobeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return
	}

	if result.Format.Duration != "" {
		if dur, err := strconv.ParseFloat(result.Format.Duration, 64); err == nil {
			info.Duration = dur
			info.DurationText = FormatDuration(dur)
		}
	}

	if result.Format.BitRate != "" {
		if br, err := strconv.ParseInt(result.Format.BitRate, 10, 64); err == nil {
			info.Bitrate = fmt.Sprintf("%d kbps", br/1000)
		}
	}

	for _, s := range result.Streams {
		switch s.CodecType {
		case "video":
			info.VideoCodec = s.CodecName
			if s.Width > 0 && s.Height > 0 {
				info.Width = s.Width
				info.Height = s.Height
				info.Resolution = fmt.Sprintf("%dx%d", s.Width, s.Height)
			}
			if s.RFrameRate != "" {
				info.FPS = parseFrameRate(s.RFrameRate)
			}
			if s.NbFrames != "" {
				if n, err := strconv.Atoi(s.NbFrames); err == nil {
					info.FrameCount = n
				}
			}
		case "audio":
			if info.AudioCodec == "" {
				info.AudioCodec = s.CodecName
			}
		}
	}
}

// ProbeDuration video süresini FFmpeg'in tanı başlığından okur. FFmpeg
// çıktı argümanı olmadan çağrıldığında hata koduyla çıkar ama Duration
// satırını yine de yazar; bu yüzden çıkış kodu önemsenmez. Süre
// bulunamazsa 0 döner.
func ProbeDuration(path string) float64 {
	ffmpeg, err := FindFFmpeg()
	if err != nil {
		return 0
	}

	cmd := exec.Command(ffmpeg, "-i", path)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return 0
	}
	if err := cmd.Start(); err != nil {
		return 0
	}

	duration := 0.0
	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		if sec, ok := ScanDuration(scanner.Text()); ok {
			duration = sec
			break
		}
	}
	// Kalan çıktı boşaltılır, süreç toplanır.
	_, _ = io.Copy(io.Discard, stderr)
	_ = cmd.Wait()

	return duration
}

// FormatDuration saniyeyi HH:MM:SS veya MM:SS metnine çevirir.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// parseFrameRate "30000/1001" gibi kare oranlarını float'a çevirir
func parseFrameRate(rate string) float64 {
	parts := strings.SplitN(rate, "/", 2)
	if len(parts) == 2 {
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 == nil && err2 == nil && den != 0 {
			return num / den
		}
	}
	if f, err := strconv.ParseFloat(rate, 64); err == nil {
		return f
	}
	return 0
}

// FormatFileSize dosya boyutunu okunabilir hale getirir
func FormatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
