// Package api provides the typed HTTP client for the minute backend and the
// wire types it exchanges. Every response arrives in a {success, data,
// message} envelope; the client unwraps it and surfaces failures as a single
// human-readable error.
package api

import "github.com/minute-tui/minute/internal/meeting"

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	MeetingID string `json:"meetingId"`
	S3Path    string `json:"s3Path"`
	S3URI     string `json:"s3Uri"`
}

// TranscribeRequest is the body of POST /api/transcribe.
type TranscribeRequest struct {
	MeetingID string `json:"meetingId"`
	S3Path    string `json:"s3Path"`
}

// TranscribeResponse is returned by POST /api/transcribe.
type TranscribeResponse struct {
	Transcript string `json:"transcript"`
	MeetingID  string `json:"meetingId"`
}

// SummaryResponse is the flat summary returned by POST /api/summarize.
type SummaryResponse struct {
	TLDR        string   `json:"tldr"`
	KeyPoints   []string `json:"key_points"`
	Decisions   []string `json:"decisions"`
	ActionItems []string `json:"action_items"`
}

// MeetingMetadataHint carries caller-supplied context for enhanced
// summarization.
type MeetingMetadataHint struct {
	Participants []string `json:"participants,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Type         string   `json:"type,omitempty"`
	Date         string   `json:"date,omitempty"`
}

// EnhancedSummarizeRequest is the body of POST /api/summarize/v2.
type EnhancedSummarizeRequest struct {
	Transcript      string               `json:"transcript"`
	MeetingMetadata *MeetingMetadataHint `json:"meetingMetadata,omitempty"`
}

// TranscriptAnalysis describes what the backend saw in the transcript.
type TranscriptAnalysis struct {
	WordCount                int      `json:"wordCount"`
	EstimatedDurationMinutes int      `json:"estimatedDurationMinutes"`
	SpeakerCount             int      `json:"speakerCount"`
	Speakers                 []string `json:"speakers"`
	MeetingType              string   `json:"meetingType"`
	Strategy                 string   `json:"strategy"`
	Complexity               string   `json:"complexity"`
	Language                 string   `json:"language"`
}

// EnhancedSummaryResponse is returned by POST /api/summarize/v2.
type EnhancedSummaryResponse struct {
	Structure      meeting.Structure  `json:"structure"`
	Analysis       TranscriptAnalysis `json:"analysis"`
	ProcessingTime float64            `json:"processingTime"`
}

// ProcessingEstimate is returned by POST /api/summarize/estimate.
type ProcessingEstimate struct {
	Strategy          string `json:"strategy"`
	EstimatedSeconds  int    `json:"estimatedSeconds"`
	EstimatedDuration string `json:"estimatedDuration"`
}

// IngestRequest is the body of POST /api/meetings/ingest.
type IngestRequest struct {
	Transcript string               `json:"transcript"`
	TenantID   string               `json:"tenantId"`
	MeetingID  string               `json:"meetingId,omitempty"`
	Metadata   *MeetingMetadataHint `json:"metadata,omitempty"`
}

// IngestResponse is returned by POST /api/meetings/ingest.
type IngestResponse struct {
	MeetingID string `json:"meetingId"`
	Chunks    int    `json:"chunks,omitempty"`
}

// MeetingListItem is one entry of GET /api/meetings.
type MeetingListItem struct {
	MeetingID       string `json:"meetingId"`
	Title           string `json:"title,omitempty"`
	MeetingType     string `json:"meetingType"`
	CreatedAt       string `json:"createdAt"`
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	SpeakerCount    int    `json:"speakerCount,omitempty"`
	WordCount       int    `json:"wordCount,omitempty"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Question  string `json:"question"`
	MeetingID string `json:"meetingId,omitempty"`
	TenantID  string `json:"tenantId"`
}

// ChatSource is one retrieval hit backing an answer.
type ChatSource struct {
	MeetingID string  `json:"meetingId"`
	ChunkID   string  `json:"chunkId"`
	Content   string  `json:"content"`
	Score     float64 `json:"score"`
}

// ChatResponse is returned by POST /api/chat.
type ChatResponse struct {
	Answer  string       `json:"answer"`
	Sources []ChatSource `json:"sources"`
}

// ChatMessage is a single conversational turn.
type ChatMessage struct {
	ID        string       `json:"id"`
	Role      string       `json:"role"` // "user" or "assistant"
	Content   string       `json:"content"`
	Timestamp string       `json:"timestamp"`
	Sources   []ChatSource `json:"sources,omitempty"`
}

// ChatSession is a stored conversation.
type ChatSession struct {
	SessionID     string        `json:"sessionId"`
	TenantID      string        `json:"tenantId,omitempty"`
	Title         string        `json:"title"`
	Messages      []ChatMessage `json:"messages"`
	MeetingID     string        `json:"meetingId,omitempty"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
	LastMessageAt string        `json:"lastMessageAt"`
}

// CreateChatSessionRequest is the body of POST /api/chat/sessions.
type CreateChatSessionRequest struct {
	Title        string       `json:"title"`
	MeetingID    string       `json:"meetingId,omitempty"`
	FirstMessage *ChatMessage `json:"firstMessage,omitempty"`
}

// AddMessageRequest is the body of POST /api/chat/sessions/{id}/messages.
type AddMessageRequest struct {
	Message ChatMessage `json:"message"`
}
