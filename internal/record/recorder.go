// Package record owns the microphone for the duration of one recording and
// turns a start/pause/resume/stop lifecycle into a single finished audio
// file. Capture itself happens behind the CaptureDevice port so the state
// machine is testable without a microphone or ffmpeg.
package record

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// State is the recorder position.
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StatePaused    State = "paused"
	StateStopped   State = "stopped" // result available
)

var (
	ErrAlreadyRecording = errors.New("a recording is already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
)

// PermissionError signals that the capture device could not be opened.
// The controller stays idle and no pipeline state changes.
type PermissionError struct {
	Cause error
}

func (e *PermissionError) Error() string {
	return "microphone unavailable: " + e.Cause.Error()
}

func (e *PermissionError) Unwrap() error { return e.Cause }

// CaptureDevice is the port to the actual audio capture. Exactly one Stop
// (or Abort) call follows every successful Start; that pairing is the
// resource-release contract.
type CaptureDevice interface {
	// Start begins writing captured audio to outPath.
	Start(outPath string) error
	// Pause suspends capture without finalizing the file.
	Pause() error
	// Resume continues a paused capture.
	Resume() error
	// Stop finalizes the file and releases the microphone.
	Stop() error
	// Abort releases the microphone discarding the capture.
	Abort() error
}

// Result is the immutable outcome of one recording.
type Result struct {
	AudioPath string
	Elapsed   time.Duration
	StoppedAt time.Time
}

// Controller runs the recording state machine. All methods are meant for a
// single goroutine (the TUI update loop).
type Controller struct {
	device  CaptureDevice
	destDir string

	state    State
	elapsed  int // whole seconds
	path     string
	result   *Result
	released bool
}

// NewController creates a controller writing finished recordings to destDir.
func NewController(device CaptureDevice, destDir string) *Controller {
	return &Controller{device: device, destDir: destDir, state: StateIdle}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// IsRecording reports whether capture is active (including paused).
func (c *Controller) IsRecording() bool {
	return c.state == StateRecording || c.state == StatePaused
}

// IsPaused reports whether capture is suspended.
func (c *Controller) IsPaused() bool { return c.state == StatePaused }

// ElapsedSeconds returns the captured duration so far, excluding pauses.
func (c *Controller) ElapsedSeconds() int { return c.elapsed }

// Result returns the finished recording, or nil before stop.
func (c *Controller) Result() *Result { return c.result }

// Start requests the capture device and begins recording. On device failure
// the controller stays idle and returns a *PermissionError.
func (c *Controller) Start() error {
	if c.IsRecording() {
		return ErrAlreadyRecording
	}

	name := fmt.Sprintf("recording-%s-%s.wav", time.Now().Format("20060102-150405"), uuid.New().String()[:8])
	path := filepath.Join(c.destDir, name)

	if err := c.device.Start(path); err != nil {
		return &PermissionError{Cause: err}
	}

	c.state = StateRecording
	c.elapsed = 0
	c.path = path
	c.result = nil
	c.released = false
	return nil
}

// Pause suspends capture. The elapsed timer is suspended, not reset.
func (c *Controller) Pause() error {
	if c.state != StateRecording {
		return ErrNotRecording
	}
	if err := c.device.Pause(); err != nil {
		return fmt.Errorf("pause capture: %w", err)
	}
	c.state = StatePaused
	return nil
}

// Resume continues a paused recording; the timer picks up where it left off.
func (c *Controller) Resume() error {
	if c.state != StatePaused {
		return ErrNotRecording
	}
	if err := c.device.Resume(); err != nil {
		return fmt.Errorf("resume capture: %w", err)
	}
	c.state = StateRecording
	return nil
}

// Tick advances the elapsed timer by one second. The caller drives it once
// per second; ticks outside active recording are ignored.
func (c *Controller) Tick() {
	if c.state == StateRecording {
		c.elapsed++
	}
}

// Stop finalizes the capture into an immutable result and releases the
// microphone. Valid from both recording and paused.
func (c *Controller) Stop() (*Result, error) {
	if !c.IsRecording() {
		return nil, ErrNotRecording
	}

	err := c.device.Stop()
	c.released = true
	if err != nil {
		c.state = StateIdle
		return nil, fmt.Errorf("stop capture: %w", err)
	}

	c.result = &Result{
		AudioPath: c.path,
		Elapsed:   time.Duration(c.elapsed) * time.Second,
		StoppedAt: time.Now(),
	}
	c.state = StateStopped
	return c.result, nil
}

// Discard drops a finished result and returns to the pre-recording state
// with zero elapsed time.
func (c *Controller) Discard() {
	if c.IsRecording() {
		return
	}
	c.state = StateIdle
	c.elapsed = 0
	c.path = ""
	c.result = nil
}

// Teardown releases the microphone if a recording is still active, e.g. on
// program exit. Release happens at most once per start.
func (c *Controller) Teardown() {
	if c.IsRecording() && !c.released {
		_ = c.device.Abort()
		c.released = true
	}
	c.state = StateIdle
	c.elapsed = 0
	c.path = ""
}
