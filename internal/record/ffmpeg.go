package record

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"syscall"
)

// FFmpegDevice captures the default input device through an ffmpeg child
// process. Pause and resume map to SIGSTOP/SIGCONT on the process; stop
// sends SIGINT so ffmpeg finalizes the container before exiting.
type FFmpegDevice struct {
	cmd *exec.Cmd
	log *os.File
}

// NewFFmpegDevice verifies ffmpeg is installed.
func NewFFmpegDevice() (*FFmpegDevice, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found in PATH")
	}
	return &FFmpegDevice{}, nil
}

func captureArgs(outPath string) []string {
	// Mono 16 kHz keeps long recordings small and is what the
	// transcription engine expects.
	var in []string
	switch runtime.GOOS {
	case "darwin":
		in = []string{"-f", "avfoundation", "-i", ":default"}
	default:
		in = []string{"-f", "pulse", "-i", "default"}
	}
	return append(in, "-ac", "1", "-ar", "16000", "-y", outPath)
}

func (d *FFmpegDevice) Start(outPath string) error {
	if d.cmd != nil {
		return fmt.Errorf("capture already running")
	}

	cmd := exec.Command("ffmpeg", captureArgs(outPath)...)

	// Keep ffmpeg diagnostics next to the recording.
	var logFile *os.File
	if f, err := os.Create(outPath + ".ffmpeg.log"); err == nil {
		cmd.Stderr = f
		logFile = f
	}

	if err := cmd.Start(); err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	d.cmd = cmd
	d.log = logFile
	return nil
}

// closeLog releases the diagnostics file once the process has exited.
func (d *FFmpegDevice) closeLog() {
	if d.log != nil {
		d.log.Close()
		d.log = nil
	}
}

func (d *FFmpegDevice) Pause() error {
	if d.cmd == nil || d.cmd.Process == nil {
		return fmt.Errorf("no capture running")
	}
	return d.cmd.Process.Signal(syscall.SIGSTOP)
}

func (d *FFmpegDevice) Resume() error {
	if d.cmd == nil || d.cmd.Process == nil {
		return fmt.Errorf("no capture running")
	}
	return d.cmd.Process.Signal(syscall.SIGCONT)
}

func (d *FFmpegDevice) Stop() error {
	if d.cmd == nil || d.cmd.Process == nil {
		return fmt.Errorf("no capture running")
	}
	// A paused process cannot handle SIGINT; wake it first.
	_ = d.cmd.Process.Signal(syscall.SIGCONT)
	if err := d.cmd.Process.Signal(syscall.SIGINT); err != nil {
		_ = d.cmd.Process.Kill()
	}
	err := d.cmd.Wait()
	d.cmd = nil
	d.closeLog()
	// ffmpeg exits non-zero on SIGINT even after a clean finalize.
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return fmt.Errorf("ffmpeg did not exit cleanly: %w", err)
	}
	return nil
}

func (d *FFmpegDevice) Abort() error {
	if d.cmd == nil || d.cmd.Process == nil {
		return nil
	}
	_ = d.cmd.Process.Signal(syscall.SIGCONT)
	_ = d.cmd.Process.Kill()
	_ = d.cmd.Wait()
	d.cmd = nil
	d.closeLog()
	return nil
}
