package converter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mlihgenel/gifconverter-cli/internal/profile"
)

type fakeProcess struct {
	stderr   string
	startErr error
	waitErr  error
}

func (p *fakeProcess) Start() (io.ReadCloser, error) {
	if p.startErr != nil {
		return nil, p.startErr
	}
	return io.NopCloser(strings.NewReader(p.stderr)), nil
}

func (p *fakeProcess) Wait() error {
	return p.waitErr
}

func fakeLauncher(proc *fakeProcess, gotArgs *[]string) LaunchFunc {
	return func(name string, args ...string) EncoderProcess {
		if gotArgs != nil {
			*gotArgs = append([]string{name}, args...)
		}
		return proc
	}
}

// realExitError gerçek bir *exec.ExitError üretir; exit kodu taşıyan hata
// başka türlü kurulamıyor.
func realExitError(t *testing.T, code int) error {
	t.Helper()
	err := exec.Command("sh", "-c", fmt.Sprintf("exit %d", code)).Run()
	if err == nil {
		t.Fatalf("expected command to fail with exit code %d", code)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exec.ExitError, got %T", err)
	}
	return err
}

func drainEvents(t *testing.T, job *Job) (logs []LogLine, progress []Progress, result Result) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case e, ok := <-job.Events():
			if !ok {
				return logs, progress, result
			}
			switch ev := e.(type) {
			case LogLine:
				logs = append(logs, ev)
			case Progress:
				progress = append(progress, ev)
			case Result:
				result = ev
			}
		case <-timeout:
			t.Fatalf("timed out waiting for job events")
		}
	}
}

func TestNewJobComputesSeekWindow(t *testing.T) {
	job, err := NewJob("in.mp4", 10, 20, 100, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.StartSeek != 10 {
		t.Fatalf("expected start seek 10, got %f", job.StartSeek)
	}
	if job.EndSeek != 80 {
		t.Fatalf("expected end seek 80, got %f", job.EndSeek)
	}
	if job.EffectiveDuration != 70 {
		t.Fatalf("expected effective duration 70, got %f", job.EffectiveDuration)
	}
}

func TestNewJobNegativeTrimsTreatedAsZero(t *testing.T) {
	job, err := NewJob("in.mp4", -3, -7, 100, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.StartSeek != 0 || job.EndSeek != 100 {
		t.Fatalf("expected full window, got [%f, %f]", job.StartSeek, job.EndSeek)
	}
}

func TestNewJobUnknownDurationWithTrimFails(t *testing.T) {
	_, err := NewJob("in.mp4", 1, 0, 0, profile.Default())
	if !errors.Is(err, ErrDurationUnknown) {
		t.Fatalf("expected ErrDurationUnknown, got %v", err)
	}
}

func TestNewJobUnknownDurationWithoutTrim(t *testing.T) {
	job, err := NewJob("in.mp4", 0, 0, 0, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.EffectiveDuration != 0 || job.EndSeek != 0 {
		t.Fatalf("expected zero window sentinel, got end=%f effective=%f", job.EndSeek, job.EffectiveDuration)
	}
}

func TestNewJobInvalidTrimRangeCarriesNumbers(t *testing.T) {
	_, err := NewJob("in.mp4", 6, 5, 10, profile.Default())

	var trimErr *InvalidTrimRangeError
	if !errors.As(err, &trimErr) {
		t.Fatalf("expected InvalidTrimRangeError, got %v", err)
	}
	if trimErr.Duration != 10 || trimErr.SkipStart != 6 || trimErr.SkipEnd != 5 {
		t.Fatalf("unexpected error payload: %+v", trimErr)
	}
	msg := trimErr.Error()
	for _, want := range []string{"10.00", "6.00", "5.00", "-1.00"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected error message to contain %q, got: %s", want, msg)
		}
	}
}

func TestJobSuccessEmitsLogProgressAndResult(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.gif")
	if err := os.WriteFile(output, []byte("gif"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	proc := &fakeProcess{
		stderr: "  Duration: 00:01:10.00, start: 0.000000\r" +
			"frame=  100 fps= 30 q=20.0 size= 128KiB time=00:00:35.00 bitrate= 512kbits/s\r" +
			"frame=  200 fps= 30 q=20.0 size= 256KiB time=00:01:10.00 bitrate= 512kbits/s\r",
	}

	job, err := NewJob("in.mp4", 0, 0, 70, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job.SetOutput(output)
	job.SetEncoderPath("ffmpeg-test")
	job.SetLauncher(fakeLauncher(proc, nil))

	if err := job.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	logs, progress, result := drainEvents(t, job)
	if len(logs) != 3 {
		t.Fatalf("expected 3 log lines, got %d", len(logs))
	}
	if len(progress) < 2 {
		t.Fatalf("expected at least 2 progress events, got %d", len(progress))
	}
	if progress[0].Percent != 50 {
		t.Fatalf("expected first progress 50%%, got %f", progress[0].Percent)
	}
	if progress[len(progress)-1].Percent != 100 {
		t.Fatalf("expected final progress 100%%, got %f", progress[len(progress)-1].Percent)
	}
	if result.Err != nil {
		t.Fatalf("expected success, got error: %v", result.Err)
	}
	if result.Output != output {
		t.Fatalf("expected output %s, got %s", output, result.Output)
	}
	if job.Status() != StatusSucceeded {
		t.Fatalf("expected StatusSucceeded, got %v", job.Status())
	}
}

func TestJobUnknownDurationEmitsNoProgress(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.gif")
	if err := os.WriteFile(output, []byte("gif"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	proc := &fakeProcess{
		stderr: "frame=  100 fps= 30 q=20.0 size= 128KiB time=00:00:35.00 bitrate= 512kbits/s\r",
	}

	job, err := NewJob("in.mp4", 0, 0, 0, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job.SetOutput(output)
	job.SetEncoderPath("ffmpeg-test")
	job.SetLauncher(fakeLauncher(proc, nil))

	if err := job.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	logs, progress, result := drainEvents(t, job)
	if len(logs) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(logs))
	}
	if len(progress) != 0 {
		t.Fatalf("expected no progress events for unknown duration, got %d", len(progress))
	}
	if result.Err != nil {
		t.Fatalf("expected success, got error: %v", result.Err)
	}
}

func TestJobZeroExitMissingOutputFails(t *testing.T) {
	dir := t.TempDir()

	job, err := NewJob("in.mp4", 0, 0, 70, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job.SetOutput(filepath.Join(dir, "missing.gif"))
	job.SetEncoderPath("ffmpeg-test")
	job.SetLauncher(fakeLauncher(&fakeProcess{stderr: "encoding\n"}, nil))

	if err := job.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	_, _, result := drainEvents(t, job)
	var exitErr *EncoderExitError
	if !errors.As(result.Err, &exitErr) {
		t.Fatalf("expected EncoderExitError, got %v", result.Err)
	}
	if exitErr.ExitCode != 0 || !exitErr.OutputMissing {
		t.Fatalf("expected zero exit with missing output, got %+v", exitErr)
	}
	if job.Status() != StatusFailed {
		t.Fatalf("expected StatusFailed, got %v", job.Status())
	}
}

func TestJobNonzeroExitFails(t *testing.T) {
	job, err := NewJob("in.mp4", 0, 0, 70, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job.SetEncoderPath("ffmpeg-test")
	job.SetLauncher(fakeLauncher(&fakeProcess{
		stderr:  "conversion failed\n",
		waitErr: realExitError(t, 2),
	}, nil))

	if err := job.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	_, _, result := drainEvents(t, job)
	var exitErr *EncoderExitError
	if !errors.As(result.Err, &exitErr) {
		t.Fatalf("expected EncoderExitError, got %v", result.Err)
	}
	if exitErr.ExitCode != 2 {
		t.Fatalf("expected exit code 2, got %d", exitErr.ExitCode)
	}
}

func TestJobLaunchFailureEmitsLaunchError(t *testing.T) {
	job, err := NewJob("in.mp4", 0, 0, 70, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job.SetEncoderPath("ffmpeg-test")
	job.SetLauncher(fakeLauncher(&fakeProcess{startErr: errors.New("pipe kurulamadı")}, nil))

	if err := job.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	_, _, result := drainEvents(t, job)
	var launchErr *EncoderLaunchError
	if !errors.As(result.Err, &launchErr) {
		t.Fatalf("expected EncoderLaunchError, got %v", result.Err)
	}
	if job.Status() != StatusFailed {
		t.Fatalf("expected StatusFailed, got %v", job.Status())
	}
}

func TestJobCannotRestart(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.gif")
	if err := os.WriteFile(output, []byte("gif"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	job, err := NewJob("in.mp4", 0, 0, 70, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job.SetOutput(output)
	job.SetEncoderPath("ffmpeg-test")
	job.SetLauncher(fakeLauncher(&fakeProcess{stderr: "x\n"}, nil))

	if err := job.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	drainEvents(t, job)

	if err := job.Start(); err == nil {
		t.Fatalf("expected restart to fail")
	}
}

func TestJobPassesSeekWindowToEncoder(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.gif")
	if err := os.WriteFile(output, []byte("gif"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	var gotArgs []string
	job, err := NewJob("in.mp4", 2, 3, 10, profile.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job.SetOutput(output)
	job.SetEncoderPath("ffmpeg-test")
	job.SetLauncher(fakeLauncher(&fakeProcess{stderr: ""}, &gotArgs))

	if err := job.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	drainEvents(t, job)

	joined := strings.Join(gotArgs, " ")
	if !strings.Contains(joined, "-ss 2 -to 7") {
		t.Fatalf("expected seek window in args, got: %s", joined)
	}
	if gotArgs[0] != "ffmpeg-test" {
		t.Fatalf("expected pinned encoder path, got %s", gotArgs[0])
	}
}
