package app

import (
	"github.com/minute-tui/minute/internal/api"
	"github.com/minute-tui/minute/internal/store"
)

// Pipeline stage results. Gen stamps the pipeline generation the call was
// issued under so responses that outlive a reset are discarded.

// UploadResultMsg carries the upload stage outcome.
type UploadResultMsg struct {
	Gen  int
	Resp api.UploadResponse
	Err  error
}

// TranscribeResultMsg carries the transcription stage outcome.
type TranscribeResultMsg struct {
	Gen  int
	Resp api.TranscribeResponse
	Err  error
}

// EstimateResultMsg carries the best-effort processing estimate.
type EstimateResultMsg struct {
	Gen  int
	Resp api.ProcessingEstimate
	Err  error
}

// EnhancedSummaryResultMsg carries the hierarchical summary outcome.
type EnhancedSummaryResultMsg struct {
	Gen  int
	Resp api.EnhancedSummaryResponse
	Err  error
}

// SummaryResultMsg carries the flat legacy summary outcome.
type SummaryResultMsg struct {
	Gen  int
	Resp api.SummaryResponse
	Err  error
}

// IngestResultMsg carries the background indexing outcome.
type IngestResultMsg struct {
	Gen  int
	Resp api.IngestResponse
	Err  error
}

// RecordTickMsg advances the recording timer once per second.
type RecordTickMsg struct{}

// InboxFileMsg surfaces an audio file dropped into the watched inbox.
type InboxFileMsg struct {
	Path string
}

// ChatAnswerMsg carries one answered question; the exchange still has to be
// persisted to a session.
type ChatAnswerMsg struct {
	User      api.ChatMessage
	Assistant api.ChatMessage
	Err       error
}

// ExchangeSavedMsg reports the session persistence outcome of a turn.
type ExchangeSavedMsg struct {
	Err error
}

// SessionsLoadedMsg carries a session list, either from the server or the
// local mirror.
type SessionsLoadedMsg struct {
	Sessions   []api.ChatSession
	FromMirror bool
	Err        error
}

// SessionLoadedMsg carries one opened session.
type SessionLoadedMsg struct {
	Session api.ChatSession
	Err     error
}

// SessionDeletedMsg reports a session deletion.
type SessionDeletedMsg struct {
	SessionID string
	Err       error
}

// MeetingsLoadedMsg carries the indexed meeting list for the chat filter.
type MeetingsLoadedMsg struct {
	Meetings []api.MeetingListItem
	Err      error
}

// MirrorOpenedMsg carries the opened local session mirror.
type MirrorOpenedMsg struct {
	Store *store.Store
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
