package record

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeDevice records the calls made against the capture port.
type fakeDevice struct {
	startErr  error
	pauseErr  error
	resumeErr error
	stopErr   error

	startPath string
	starts    int
	pauses    int
	resumes   int
	stops     int
	aborts    int
}

func (d *fakeDevice) Start(outPath string) error {
	d.starts++
	d.startPath = outPath
	return d.startErr
}
func (d *fakeDevice) Pause() error  { d.pauses++; return d.pauseErr }
func (d *fakeDevice) Resume() error { d.resumes++; return d.resumeErr }
func (d *fakeDevice) Stop() error   { d.stops++; return d.stopErr }
func (d *fakeDevice) Abort() error  { d.aborts++; return nil }

func (d *fakeDevice) releases() int { return d.stops + d.aborts }

func TestRecordLifecycle(t *testing.T) {
	dev := &fakeDevice{}
	c := NewController(dev, t.TempDir())

	if c.State() != StateIdle {
		t.Fatalf("state = %q, want idle", c.State())
	}

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if c.State() != StateRecording {
		t.Fatalf("state = %q, want recording", c.State())
	}
	if !strings.HasSuffix(dev.startPath, ".wav") {
		t.Errorf("capture path = %q, want a .wav file", dev.startPath)
	}

	c.Tick()
	c.Tick()
	c.Tick()

	result, err := c.Stop()
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if c.State() != StateStopped {
		t.Errorf("state = %q, want stopped", c.State())
	}
	if result.AudioPath != dev.startPath {
		t.Errorf("result path = %q, want %q", result.AudioPath, dev.startPath)
	}
	if result.Elapsed != 3*time.Second {
		t.Errorf("elapsed = %v, want 3s", result.Elapsed)
	}
	if dev.releases() != 1 {
		t.Errorf("releases = %d, want exactly one", dev.releases())
	}
}

func TestStartWhileRecordingRejected(t *testing.T) {
	dev := &fakeDevice{}
	c := NewController(dev, t.TempDir())

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Start(); !errors.Is(err, ErrAlreadyRecording) {
		t.Fatalf("second Start = %v, want ErrAlreadyRecording", err)
	}
	if dev.starts != 1 {
		t.Errorf("device starts = %d, rejection must not touch the device", dev.starts)
	}
}

func TestPermissionDenialStaysIdle(t *testing.T) {
	dev := &fakeDevice{startErr: errors.New("pulse: access denied")}
	c := NewController(dev, t.TempDir())

	err := c.Start()
	var perm *PermissionError
	if !errors.As(err, &perm) {
		t.Fatalf("err = %v, want *PermissionError", err)
	}
	if c.State() != StateIdle {
		t.Errorf("state = %q, denial must keep the controller idle", c.State())
	}
	if dev.releases() != 0 {
		t.Error("failed start must not release anything")
	}

	// denial is recoverable
	dev.startErr = nil
	if err := c.Start(); err != nil {
		t.Fatalf("retry Start: %v", err)
	}
}

func TestPauseSuspendsTimer(t *testing.T) {
	dev := &fakeDevice{}
	c := NewController(dev, t.TempDir())

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Tick()
	c.Tick()

	if err := c.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if !c.IsPaused() || !c.IsRecording() {
		t.Error("paused capture still counts as an active recording")
	}

	c.Tick()
	c.Tick()
	if c.ElapsedSeconds() != 2 {
		t.Errorf("elapsed = %d, ticks while paused must not count", c.ElapsedSeconds())
	}

	if err := c.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	c.Tick()
	if c.ElapsedSeconds() != 3 {
		t.Errorf("elapsed = %d, want 3 after resume", c.ElapsedSeconds())
	}
}

func TestPauseResumeOutOfOrder(t *testing.T) {
	dev := &fakeDevice{}
	c := NewController(dev, t.TempDir())

	if err := c.Pause(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Pause while idle = %v, want ErrNotRecording", err)
	}
	if err := c.Resume(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Resume while idle = %v, want ErrNotRecording", err)
	}

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := c.Resume(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Resume while recording = %v, want ErrNotRecording", err)
	}
}

func TestStopFromPaused(t *testing.T) {
	dev := &fakeDevice{}
	c := NewController(dev, t.TempDir())

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Tick()
	if err := c.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}

	result, err := c.Stop()
	if err != nil {
		t.Fatalf("Stop from paused: %v", err)
	}
	if result.Elapsed != time.Second {
		t.Errorf("elapsed = %v, want 1s", result.Elapsed)
	}
	if dev.releases() != 1 {
		t.Errorf("releases = %d, want exactly one", dev.releases())
	}
}

func TestStopWithoutRecording(t *testing.T) {
	c := NewController(&fakeDevice{}, t.TempDir())
	if _, err := c.Stop(); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("Stop while idle = %v, want ErrNotRecording", err)
	}
}

func TestDiscardClearsResult(t *testing.T) {
	dev := &fakeDevice{}
	c := NewController(dev, t.TempDir())

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Tick()
	if _, err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	c.Discard()
	if c.State() != StateIdle {
		t.Errorf("state = %q, want idle", c.State())
	}
	if c.Result() != nil {
		t.Error("discard must drop the result")
	}
	if c.ElapsedSeconds() != 0 {
		t.Error("discard must reset the timer")
	}
}

func TestTeardownReleasesActiveCapture(t *testing.T) {
	dev := &fakeDevice{}
	c := NewController(dev, t.TempDir())

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	c.Teardown()

	if dev.releases() != 1 {
		t.Fatalf("releases = %d, want exactly one", dev.releases())
	}
	if c.State() != StateIdle {
		t.Errorf("state = %q, want idle", c.State())
	}

	// teardown after a clean stop must not double-release
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	before := dev.releases()
	c.Teardown()
	if dev.releases() != before {
		t.Error("teardown after stop must not release again")
	}
}

func TestNewRecordingReplacesResult(t *testing.T) {
	dev := &fakeDevice{}
	c := NewController(dev, t.TempDir())

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := c.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	first := c.Result().AudioPath

	if err := c.Start(); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if c.Result() != nil {
		t.Error("starting again must clear the previous result")
	}
	if _, err := c.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	if c.Result().AudioPath == first {
		t.Error("each recording gets its own file")
	}
}
