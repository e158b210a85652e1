package preview

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mlihgenel/gifconverter-cli/internal/converter"
)

// FFmpegSource FFmpeg'in mjpeg image2pipe akışı üzerinden kare çözen Source
// implementasyonudur. Seek, süreci hedef zamandan yeniden başlatarak yapılır;
// sıralı okuma mevcut akıştan devam eder.
type FFmpegSource struct {
	ffmpegPath  string
	ffprobePath string
}

// NewFFmpegSource sistemdeki ffmpeg/ffprobe ikililerini bulup kaynak oluşturur.
func NewFFmpegSource() (*FFmpegSource, error) {
	ffmpegPath, err := converter.FindFFmpeg()
	if err != nil {
		return nil, err
	}
	ffprobePath := converter.FindFFprobe()
	if ffprobePath == "" {
		return nil, fmt.Errorf("ffprobe bulunamadı; video önizleme kullanılamıyor")
	}
	return &FFmpegSource{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}, nil
}

// Open dosyayı probe eder ve bir decode oturumu döner.
func (s *FFmpegSource) Open(path string) (Clip, error) {
	info, err := probeClipInfo(s.ffprobePath, path)
	if err != nil {
		return nil, err
	}
	return &ffmpegClip{ffmpegPath: s.ffmpegPath, info: info}, nil
}

// probeStreams ffprobe JSON çıktısının ilgili alanları
type probeStreams struct {
	Streams []struct {
		RFrameRate string `json:"r_frame_rate"`
		NBFrames   string `json:"nb_frames"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// probeClipInfo kare oranı ve kare sayısını okur. nb_frames yoksa kare sayısı
// süre * fps üzerinden tahmin edilir.
func probeClipInfo(ffprobePath, path string) (ClipInfo, error) {
	cmd := exec.Command(ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=r_frame_rate,nb_frames",
		"-show_entries", "format=duration",
		"-print_format", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return ClipInfo{}, fmt.Errorf("video açılamadı: %s: %w", path, err)
	}

	var result probeStreams
	if err := json.Unmarshal(out, &result); err != nil {
		return ClipInfo{}, fmt.Errorf("ffprobe çıktısı çözümlenemedi: %w", err)
	}
	if len(result.Streams) == 0 {
		return ClipInfo{}, fmt.Errorf("video akışı bulunamadı: %s", path)
	}

	info := ClipInfo{Path: path}
	info.FrameRate = parseRate(result.Streams[0].RFrameRate)

	if n, err := strconv.Atoi(strings.TrimSpace(result.Streams[0].NBFrames)); err == nil && n > 0 {
		info.FrameCount = n
	} else if dur, err := strconv.ParseFloat(strings.TrimSpace(result.Format.Duration), 64); err == nil && dur > 0 && info.FrameRate > 0 {
		info.FrameCount = int(math.Round(dur * info.FrameRate))
	}

	return info, nil
}

// parseRate "30000/1001" gibi kare oranlarını float'a çevirir.
func parseRate(rate string) float64 {
	parts := strings.SplitN(strings.TrimSpace(rate), "/", 2)
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

type ffmpegClip struct {
	ffmpegPath string
	info       ClipInfo

	cmd    *exec.Cmd
	stdout io.ReadCloser
	reader *bufio.Reader
}

func (c *ffmpegClip) Info() ClipInfo {
	return c.info
}

// SeekFrame akışı hedef kareden yeniden başlatır ve ilk kareyi çözer.
func (c *ffmpegClip) SeekFrame(frame int) (image.Image, error) {
	if err := c.start(frame); err != nil {
		return nil, err
	}
	return c.readFrame()
}

func (c *ffmpegClip) NextFrame() (image.Image, error) {
	if c.cmd == nil {
		if err := c.start(0); err != nil {
			return nil, err
		}
	}
	return c.readFrame()
}

func (c *ffmpegClip) Close() error {
	c.stop()
	return nil
}

// start mevcut süreci kapatıp ffmpeg'i verilen kareye denk gelen zamandan
// başlatır.
func (c *ffmpegClip) start(frame int) error {
	c.stop()

	rate := c.info.FrameRate
	if rate <= 0 {
		rate = defaultFrameRate
	}
	offset := float64(frame) / rate

	cmd := exec.Command(c.ffmpegPath,
		"-loglevel", "error",
		"-ss", strconv.FormatFloat(offset, 'f', 6, 64),
		"-i", c.info.Path,
		"-f", "image2pipe",
		"-vcodec", "mjpeg",
		"-q:v", "5",
		"-",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("decode akışı açılamadı: %w", err)
	}
	if err := cmd.Start(); err != nil {
		stdout.Close()
		return fmt.Errorf("ffmpeg başlatılamadı: %w", err)
	}

	c.cmd = cmd
	c.stdout = stdout
	c.reader = bufio.NewReaderSize(stdout, 1<<16)
	return nil
}

func (c *ffmpegClip) stop() {
	if c.cmd == nil {
		return
	}
	if c.cmd.Process != nil {
		c.cmd.Process.Kill()
	}
	c.cmd.Wait()
	if c.stdout != nil {
		c.stdout.Close()
	}
	c.cmd = nil
	c.stdout = nil
	c.reader = nil
}

// readFrame akıştan tek bir JPEG karesi ayıklayıp çözer. mjpeg akışında her
// kare SOI (FFD8) ile başlar, EOI (FFD9) ile biter.
func (c *ffmpegClip) readFrame() (image.Image, error) {
	if c.reader == nil {
		return nil, io.EOF
	}

	// SOI'ye kadar ilerle
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != 0xFF {
			continue
		}
		next, err := c.reader.ReadByte()
		if err != nil {
			return nil, err
		}
		if next == 0xD8 {
			break
		}
	}

	buf := bytes.NewBuffer([]byte{0xFF, 0xD8})
	prev := byte(0)
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return nil, err
		}
		buf.WriteByte(b)
		if prev == 0xFF && b == 0xD9 {
			break
		}
		prev = b
	}

	img, err := jpeg.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("kare çözülemedi: %w", err)
	}
	return img, nil
}
