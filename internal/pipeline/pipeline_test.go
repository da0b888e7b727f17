package pipeline

import (
	"errors"
	"strings"
	"testing"

	"github.com/minute-tui/minute/internal/api"
	"github.com/minute-tui/minute/internal/meeting"
)

func enhancedResponse() api.EnhancedSummaryResponse {
	return api.EnhancedSummaryResponse{
		Structure: meeting.Structure{
			Title: "Sprint Planning",
			Sections: []meeting.Section{
				{ID: "s1", Heading: "Scope", Level: 2},
			},
		},
		Analysis: api.TranscriptAnalysis{WordCount: 1200, Strategy: "single-pass"},
	}
}

func runToSummarizing(t *testing.T, p *Pipeline) {
	t.Helper()
	if err := p.Begin(Input{AudioPath: "/tmp/m.wav"}, ModeEnhanced); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	p.ApplyUpload(p.Generation(), api.UploadResponse{MeetingID: "m-1", S3Path: "audio/m-1.wav"}, nil)
	p.ApplyTranscript(p.Generation(), api.TranscribeResponse{Transcript: "we agreed on the scope"}, nil)
	if p.Step() != StepSummarizing {
		t.Fatalf("step = %q, want summarizing", p.Step())
	}
}

func TestAudioRunWalksAllStages(t *testing.T) {
	p := New()
	if p.Step() != StepIdle {
		t.Fatalf("new pipeline step = %q", p.Step())
	}

	runToSummarizing(t, p)

	if p.MeetingID() != "m-1" {
		t.Errorf("meetingID = %q", p.MeetingID())
	}
	if p.S3Path() != "audio/m-1.wav" {
		t.Errorf("s3Path = %q", p.S3Path())
	}

	p.ApplyEnhancedSummary(p.Generation(), enhancedResponse(), nil)
	if p.Step() != StepComplete {
		t.Fatalf("step = %q, want complete", p.Step())
	}
	if p.Structure() == nil || p.Structure().Title != "Sprint Planning" {
		t.Error("structure not retained")
	}
	if p.Analysis() == nil || p.Analysis().WordCount != 1200 {
		t.Error("analysis not retained")
	}
}

func TestTranscriptInputSkipsToSummarizing(t *testing.T) {
	p := New()
	if err := p.Begin(Input{Transcript: "pasted transcript"}, ModeEnhanced); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if p.Step() != StepSummarizing {
		t.Errorf("step = %q, want summarizing", p.Step())
	}
	if p.Transcript() != "pasted transcript" {
		t.Errorf("transcript = %q", p.Transcript())
	}
}

func TestEmptyInputRejected(t *testing.T) {
	p := New()
	if err := p.Begin(Input{}, ModeEnhanced); err == nil {
		t.Fatal("empty input should be rejected")
	}
	if p.Step() != StepIdle {
		t.Errorf("step = %q, rejection must not change state", p.Step())
	}
}

func TestSecondSubmitRejectedWithErrBusy(t *testing.T) {
	p := New()
	if err := p.Begin(Input{AudioPath: "/tmp/a.wav"}, ModeEnhanced); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	err := p.Begin(Input{AudioPath: "/tmp/b.wav"}, ModeEnhanced)
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("err = %v, want ErrBusy", err)
	}
	if p.AudioPath() != "/tmp/a.wav" {
		t.Error("rejected submit must not touch the running job")
	}
}

func TestStageErrorEntersErrorState(t *testing.T) {
	p := New()
	if err := p.Begin(Input{AudioPath: "/tmp/m.wav"}, ModeEnhanced); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	p.ApplyUpload(p.Generation(), api.UploadResponse{}, &api.Error{StatusCode: 500, Message: "upload rejected"})
	if p.Step() != StepError {
		t.Fatalf("step = %q, want error", p.Step())
	}
	if p.Err() != "upload rejected" {
		t.Errorf("err = %q, want the server message", p.Err())
	}
}

func TestResetClearsEverything(t *testing.T) {
	p := New()
	runToSummarizing(t, p)
	p.ApplyEnhancedSummary(p.Generation(), enhancedResponse(), nil)

	p.Reset()

	if p.Step() != StepIdle {
		t.Errorf("step = %q, want idle", p.Step())
	}
	if p.Transcript() != "" || p.MeetingID() != "" || p.Structure() != nil || p.Err() != "" {
		t.Error("reset must clear transcript, meeting id, structure, and error")
	}
	if p.Info() != (ProcessingInfo{}) {
		t.Error("reset must clear the processing estimate")
	}
}

func TestStaleResponseAfterResetDiscarded(t *testing.T) {
	p := New()
	runToSummarizing(t, p)
	gen := p.Generation()

	p.Reset()
	p.ApplyEnhancedSummary(gen, enhancedResponse(), nil)

	if p.Step() != StepIdle {
		t.Errorf("step = %q, stale response must be discarded", p.Step())
	}
	if p.Structure() != nil {
		t.Error("stale structure must not be kept")
	}
}

func TestStaleResponseAfterNewRunDiscarded(t *testing.T) {
	p := New()
	runToSummarizing(t, p)
	oldGen := p.Generation()

	p.Reset()
	if err := p.Begin(Input{Transcript: "second run"}, ModeEnhanced); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	p.ApplyEnhancedSummary(oldGen, enhancedResponse(), nil)
	if p.Step() != StepSummarizing {
		t.Errorf("step = %q, old run's response must not complete the new run", p.Step())
	}
}

func TestEstimateDecoratesStageLabel(t *testing.T) {
	p := New()
	runToSummarizing(t, p)

	if got := p.StageLabel(); got != "Generating AI summary…" {
		t.Errorf("label before estimate = %q", got)
	}

	p.ApplyEstimate(p.Generation(), api.ProcessingEstimate{
		Strategy:          "hierarchical",
		EstimatedSeconds:  45,
		EstimatedDuration: "about 45 seconds",
	}, nil)

	if got := p.StageLabel(); !strings.Contains(got, "about 45 seconds") {
		t.Errorf("label after estimate = %q", got)
	}
	if p.Info().Strategy != "hierarchical" {
		t.Errorf("strategy = %q", p.Info().Strategy)
	}
}

func TestEstimateFailureIsIgnored(t *testing.T) {
	p := New()
	runToSummarizing(t, p)

	p.ApplyEstimate(p.Generation(), api.ProcessingEstimate{}, errors.New("estimate down"))

	if p.Step() != StepSummarizing {
		t.Errorf("step = %q, estimate failure must not fail the run", p.Step())
	}
	if p.Info() != (ProcessingInfo{}) {
		t.Error("failed estimate must not set info")
	}
}

func TestIngestFailureIsSoft(t *testing.T) {
	p := New()
	runToSummarizing(t, p)
	p.ApplyEnhancedSummary(p.Generation(), enhancedResponse(), nil)

	note := p.ApplyIngest(p.Generation(), api.IngestResponse{}, errors.New("vector store down"))

	if p.Step() != StepComplete {
		t.Errorf("step = %q, ingest failure must not revert complete", p.Step())
	}
	if note == "" {
		t.Error("ingest failure should produce a transient notification")
	}
	if p.Structure() == nil {
		t.Error("summary must stay usable after ingest failure")
	}
}

func TestIngestSuccessFillsMeetingID(t *testing.T) {
	p := New()
	if err := p.Begin(Input{Transcript: "pasted"}, ModeEnhanced); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	p.ApplyEnhancedSummary(p.Generation(), enhancedResponse(), nil)

	note := p.ApplyIngest(p.Generation(), api.IngestResponse{MeetingID: "m-9", Chunks: 4}, nil)
	if note != "" {
		t.Errorf("note = %q, want none on success", note)
	}
	if p.MeetingID() != "m-9" {
		t.Errorf("meetingID = %q, want the ingest-assigned id", p.MeetingID())
	}
}

func TestLegacyModeKeepsFlatSummary(t *testing.T) {
	p := New()
	if err := p.Begin(Input{Transcript: "pasted"}, ModeLegacy); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	p.ApplySummary(p.Generation(), api.SummaryResponse{
		TLDR:      "Short recap",
		Decisions: []string{"ship it"},
	}, nil)

	if p.Step() != StepComplete {
		t.Fatalf("step = %q", p.Step())
	}
	if p.Summary() == nil || p.Summary().TLDR != "Short recap" {
		t.Error("flat summary not retained")
	}
	if p.Structure() != nil {
		t.Error("legacy mode must not produce a structure")
	}
}

func TestStageLabelsReplaceEachOther(t *testing.T) {
	p := New()
	if err := p.Begin(Input{AudioPath: "/tmp/m.wav"}, ModeEnhanced); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	var labels []string
	labels = append(labels, p.StageLabel())
	p.ApplyUpload(p.Generation(), api.UploadResponse{MeetingID: "m-1"}, nil)
	labels = append(labels, p.StageLabel())
	p.ApplyTranscript(p.Generation(), api.TranscribeResponse{Transcript: "text"}, nil)
	labels = append(labels, p.StageLabel())
	p.ApplyEnhancedSummary(p.Generation(), enhancedResponse(), nil)
	labels = append(labels, p.StageLabel())

	want := []string{
		"Uploading audio file…",
		"Transcribing audio… This may take 2-3 minutes",
		"Generating AI summary…",
		"All done! Your meeting notes are ready.",
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}
