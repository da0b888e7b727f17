// Package pipeline drives the upload → transcribe → summarize → index flow
// as an explicit state machine. It performs no I/O itself: the caller issues
// the remote calls and feeds results back through the Apply methods, which
// keeps the whole machine testable without a network or a UI.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/minute-tui/minute/internal/api"
	"github.com/minute-tui/minute/internal/meeting"
)

// Step is the pipeline position. Exactly one step is active at a time.
type Step string

const (
	StepIdle         Step = "idle"
	StepUploading    Step = "uploading"
	StepTranscribing Step = "transcribing"
	StepSummarizing  Step = "summarizing"
	StepComplete     Step = "complete"
	StepError        Step = "error"
)

// ErrBusy is returned when a submit arrives while a run is in flight.
// Concurrent runs are rejected, never queued or interleaved.
var ErrBusy = errors.New("a meeting is already being processed")

// Input is what a run starts from: a recorded or dropped audio file, or raw
// transcript text that skips straight to summarization.
type Input struct {
	AudioPath  string
	Transcript string
}

// Mode selects the summarization flavor.
type Mode int

const (
	ModeEnhanced Mode = iota // hierarchical structure + background indexing
	ModeLegacy               // flat tldr/key points/decisions/actions
)

// ProcessingInfo decorates the summarizing stage once an estimate arrives.
type ProcessingInfo struct {
	Strategy         string
	EstimatedSeconds int
	EstimatedLabel   string
}

// Pipeline holds one meeting-creation run. It is independently
// constructible and carries no UI lifecycle; Reset returns it to the zero
// state.
type Pipeline struct {
	step       Step
	mode       Mode
	generation int

	audioPath  string
	s3Path     string
	meetingID  string
	transcript string

	summary   *api.SummaryResponse
	structure *meeting.Structure
	analysis  *api.TranscriptAnalysis
	info      ProcessingInfo

	errMsg string
}

// New returns an idle pipeline.
func New() *Pipeline {
	return &Pipeline{step: StepIdle}
}

// Step returns the current step.
func (p *Pipeline) Step() Step { return p.step }

// Generation identifies the current run. Stage results stamped with an older
// generation are discarded, which is how responses that outlive a Reset are
// tolerated.
func (p *Pipeline) Generation() int { return p.generation }

// IsProcessing reports whether a stage is in flight.
func (p *Pipeline) IsProcessing() bool {
	switch p.step {
	case StepUploading, StepTranscribing, StepSummarizing:
		return true
	}
	return false
}

// MeetingID returns the backend meeting id of the current run, if assigned.
func (p *Pipeline) MeetingID() string { return p.meetingID }

// Transcript returns the transcript of the current run.
func (p *Pipeline) Transcript() string { return p.transcript }

// Structure returns the hierarchical summary, or nil before completion or in
// legacy mode.
func (p *Pipeline) Structure() *meeting.Structure { return p.structure }

// Summary returns the flat summary, or nil outside legacy mode.
func (p *Pipeline) Summary() *api.SummaryResponse { return p.summary }

// Analysis returns the backend's transcript analysis, if any.
func (p *Pipeline) Analysis() *api.TranscriptAnalysis { return p.analysis }

// Info returns the processing estimate decoration.
func (p *Pipeline) Info() ProcessingInfo { return p.info }

// Err returns the error message when step is error, else "".
func (p *Pipeline) Err() string { return p.errMsg }

// AudioPath returns the file the run started from, if any.
func (p *Pipeline) AudioPath() string { return p.audioPath }

// S3Path returns the uploaded object path, once known.
func (p *Pipeline) S3Path() string { return p.s3Path }

// Mode returns the summarization mode of the current run.
func (p *Pipeline) Mode() Mode { return p.mode }

// StageLabel is the user-visible progress notification for the current
// stage. Each stage's label replaces the previous one.
func (p *Pipeline) StageLabel() string {
	switch p.step {
	case StepUploading:
		return "Uploading audio file…"
	case StepTranscribing:
		return "Transcribing audio… This may take 2-3 minutes"
	case StepSummarizing:
		if p.info.EstimatedLabel != "" {
			return fmt.Sprintf("Generating AI summary (%s)…", p.info.EstimatedLabel)
		}
		return "Generating AI summary…"
	case StepComplete:
		return "All done! Your meeting notes are ready."
	}
	return ""
}

// Begin starts a run. Audio input enters at uploading; transcript input
// skips straight to summarizing. A run already in flight is rejected with
// ErrBusy; input with neither field is rejected before any state change.
func (p *Pipeline) Begin(in Input, mode Mode) error {
	if p.IsProcessing() {
		return ErrBusy
	}
	if in.AudioPath == "" && in.Transcript == "" {
		return errors.New("nothing to process: provide an audio file or a transcript")
	}

	// starting a fresh run clears leftovers from a previous one
	gen := p.generation + 1
	*p = Pipeline{generation: gen, mode: mode}

	if in.AudioPath != "" {
		p.audioPath = in.AudioPath
		p.step = StepUploading
		return nil
	}
	p.transcript = in.Transcript
	p.step = StepSummarizing
	return nil
}

// stale reports whether a stage result belongs to a superseded run.
func (p *Pipeline) stale(gen int) bool { return gen != p.generation }

// ApplyUpload consumes the upload stage result.
func (p *Pipeline) ApplyUpload(gen int, resp api.UploadResponse, err error) {
	if p.stale(gen) || p.step != StepUploading {
		return
	}
	if err != nil {
		p.fail(err)
		return
	}
	p.meetingID = resp.MeetingID
	p.s3Path = resp.S3Path
	p.step = StepTranscribing
}

// ApplyTranscript consumes the transcription stage result.
func (p *Pipeline) ApplyTranscript(gen int, resp api.TranscribeResponse, err error) {
	if p.stale(gen) || p.step != StepTranscribing {
		return
	}
	if err != nil {
		p.fail(err)
		return
	}
	p.transcript = resp.Transcript
	p.step = StepSummarizing
}

// ApplyEstimate decorates the summarizing stage. Estimation is best-effort:
// an error leaves the pipeline untouched.
func (p *Pipeline) ApplyEstimate(gen int, est api.ProcessingEstimate, err error) {
	if p.stale(gen) || p.step != StepSummarizing || err != nil {
		return
	}
	p.info = ProcessingInfo{
		Strategy:         est.Strategy,
		EstimatedSeconds: est.EstimatedSeconds,
		EstimatedLabel:   est.EstimatedDuration,
	}
}

// ApplyEnhancedSummary consumes the summarize/v2 result and completes the
// run. Indexing is expected to be issued by the caller afterwards.
func (p *Pipeline) ApplyEnhancedSummary(gen int, resp api.EnhancedSummaryResponse, err error) {
	if p.stale(gen) || p.step != StepSummarizing {
		return
	}
	if err != nil {
		p.fail(err)
		return
	}
	structure := resp.Structure
	p.structure = &structure
	analysis := resp.Analysis
	p.analysis = &analysis
	p.step = StepComplete
}

// ApplySummary consumes the flat summarize result and completes the run.
func (p *Pipeline) ApplySummary(gen int, resp api.SummaryResponse, err error) {
	if p.stale(gen) || p.step != StepSummarizing {
		return
	}
	if err != nil {
		p.fail(err)
		return
	}
	summary := resp
	p.summary = &summary
	p.step = StepComplete
}

// ApplyIngest consumes the background indexing result. Indexing failure is
// soft: the finished summary stays usable and the step never regresses from
// complete; the returned message, if any, is a transient notification.
func (p *Pipeline) ApplyIngest(gen int, resp api.IngestResponse, err error) string {
	if p.stale(gen) || p.step != StepComplete {
		return ""
	}
	if err != nil {
		return "Indexing failed; chat answers about this meeting may be limited. " + err.Error()
	}
	if p.meetingID == "" {
		p.meetingID = resp.MeetingID
	}
	return ""
}

// Reset returns the pipeline to idle, clearing transcript, summary, error,
// meeting id and processing info in one step. A run in flight is simply
// abandoned; its eventual responses are discarded by the generation check.
func (p *Pipeline) Reset() {
	gen := p.generation + 1
	*p = Pipeline{step: StepIdle, generation: gen}
}

func (p *Pipeline) fail(err error) {
	p.step = StepError
	p.errMsg = errorMessage(err)
}

// errorMessage reduces any stage error to a single display string,
// preferring the server-provided message.
func errorMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return "an unknown error occurred"
}
