package converter

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/mlihgenel/gifconverter-cli/internal/profile"
)

// Status bir dönüşüm işinin durum makinesidir:
// Idle -> Running -> {Succeeded, Failed}. Uç durumlar kalıcıdır; iş nesnesi
// yeniden kullanılmaz, her dönüşüm için yeni bir Job kurulur.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EncoderProcess asenkron encoder sürecinin soyutlamasıdır. Start tanı
// akışını döner; Wait süreç bitene kadar bloklar.
type EncoderProcess interface {
	Start() (io.ReadCloser, error)
	Wait() error
}

// LaunchFunc encoder sürecini kuran fabrikadır; testler sahte süreç verir.
type LaunchFunc func(name string, args ...string) EncoderProcess

type execProcess struct {
	cmd *exec.Cmd
}

func launchExec(name string, args ...string) EncoderProcess {
	return &execProcess{cmd: exec.Command(name, args...)}
}

func (p *execProcess) Start() (io.ReadCloser, error) {
	stderr, err := p.cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := p.cmd.Start(); err != nil {
		return nil, err
	}
	return stderr, nil
}

func (p *execProcess) Wait() error {
	return p.cmd.Wait()
}

// Job tek bir video -> GIF dönüşümünü temsil eder.
type Job struct {
	Input             string
	Output            string
	StartSeek         float64
	EndSeek           float64
	EffectiveDuration float64 // 0 = süre bilinmiyor, ilerleme yüzdesi yok
	Preset            profile.Preset

	mu     sync.Mutex
	status Status

	events      chan Event
	launch      LaunchFunc
	encoderPath string
}

// NewJob kırpma parametrelerini doğrular ve çalıştırılmaya hazır bir iş
// döner. Süre bilinmiyorken (knownDuration <= 0) kırpma istenirse
// ErrDurationUnknown; etkili pencere boş kalırsa InvalidTrimRangeError
// döner ve hiçbir süreç başlatılmaz.
func NewJob(input string, skipStart, skipEnd, knownDuration float64, p profile.Preset) (*Job, error) {
	if skipStart < 0 {
		skipStart = 0
	}
	if skipEnd < 0 {
		skipEnd = 0
	}

	job := &Job{
		Input:  input,
		Preset: p,
		events: make(chan Event, 512),
		launch: launchExec,
	}

	if knownDuration <= 0 {
		if skipStart > 0 || skipEnd > 0 {
			return nil, ErrDurationUnknown
		}
		// Süre yok ama kırpma da istenmiyor: dosyanın tamamı dönüştürülür,
		// ilerleme yüzdesi raporlanamaz.
	} else {
		startSeek := skipStart
		endSeek := knownDuration - skipEnd
		if endSeek <= startSeek {
			return nil, &InvalidTrimRangeError{
				Duration:  knownDuration,
				SkipStart: skipStart,
				SkipEnd:   skipEnd,
			}
		}
		job.StartSeek = startSeek
		job.EndSeek = endSeek
		job.EffectiveDuration = endSeek - startSeek
	}

	job.Output = BuildOutputPath(input, "", "")
	return job, nil
}

// SetOutput çıktı yolunu değiştirir (batch/watch çakışma çözümü ve --name
// için). Start'tan önce çağrılmalıdır.
func (j *Job) SetOutput(path string) {
	j.Output = path
}

// SetLauncher encoder süreç fabrikasını değiştirir (test için).
func (j *Job) SetLauncher(launch LaunchFunc) {
	j.launch = launch
}

// SetEncoderPath encoder ikilisinin yolunu sabitler; verilmezse Start
// sistemdeki FFmpeg'i arar.
func (j *Job) SetEncoderPath(path string) {
	j.encoderPath = path
}

// Events işin olay kanalını döner. Kanal Result olayından sonra kapanır;
// tek tüketici tarafından okunmalıdır.
func (j *Job) Events() <-chan Event {
	return j.events
}

// Status işin o anki durumunu döner.
func (j *Job) Status() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Start encoder sürecini asenkron başlatır ve tanı akışını ayrı bir worker
// goroutine üzerinde tüketir. Yalnızca Idle durumundan çağrılabilir; aynı
// anda tek dönüşüm sürebileceğini sunum katmanı garanti eder.
func (j *Job) Start() error {
	j.mu.Lock()
	if j.status != StatusIdle {
		j.mu.Unlock()
		return fmt.Errorf("dönüşüm işi %s durumunda, yeniden başlatılamaz", j.status)
	}
	j.status = StatusRunning
	j.mu.Unlock()

	if j.encoderPath == "" {
		path, err := FindFFmpeg()
		if err != nil {
			launchErr := &EncoderLaunchError{Err: err}
			j.finish(StatusFailed, Result{Err: launchErr})
			return launchErr
		}
		j.encoderPath = path
	}

	go j.run()
	return nil
}

func (j *Job) run() {
	args := EncodeArgs(j.Input, j.Output, j.StartSeek, j.EndSeek, FilterGraph(j.Preset))

	proc := j.launch(j.encoderPath, args...)
	stderr, err := proc.Start()
	if err != nil {
		j.finish(StatusFailed, Result{Err: &EncoderLaunchError{Err: err}})
		return
	}

	// Tanı akışı satır satır, geldikçe okunur; süreç dolu bir pipe yüzünden
	// asla bloklanmaz. FFmpeg ilerleme satırlarını \r ile bitirir.
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanCRLines)

	coalescer := newProgressCoalescer()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		j.emit(LogLine{Text: line})

		if sec, ok := ScanProgressTime(line); ok && j.EffectiveDuration > 0 {
			percent := ProgressPercent(sec, j.EffectiveDuration)
			if coalescer.Step(percent) {
				j.emit(Progress{Percent: percent})
			}
		}
	}

	waitErr := proc.Wait()
	exitCode := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			j.finish(StatusFailed, Result{Err: &EncoderLaunchError{Err: waitErr}})
			return
		}
	}

	// Sıfır çıkış kodu tek başına yeterli değil: çıktı dosyası da diskte
	// olmalı.
	if exitCode == 0 {
		if _, statErr := os.Stat(j.Output); statErr == nil {
			j.finish(StatusSucceeded, Result{Output: j.Output})
			return
		}
		j.finish(StatusFailed, Result{Err: &EncoderExitError{ExitCode: 0, OutputMissing: true}})
		return
	}
	j.finish(StatusFailed, Result{Err: &EncoderExitError{ExitCode: exitCode}})
}

func (j *Job) emit(e Event) {
	j.events <- e
}

func (j *Job) finish(status Status, result Result) {
	j.mu.Lock()
	j.status = status
	j.mu.Unlock()

	j.emit(result)
	close(j.events)
}

// scanCRLines \n veya \r ile biten satırları ayırır; FFmpeg ilerleme
// satırları yalnızca \r ile güncellendiği için standart satır bölme yetmez.
func scanCRLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
