package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Error is a remote failure reduced to a single message suitable for display.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

// Config carries the credential and tenant context for a Client.
type Config struct {
	BaseURL     string
	Token       string
	WorkspaceID string
	Timeout     time.Duration
	HTTPClient  *http.Client // optional; tests inject their own
}

// Client talks to the minute backend. It is an explicit object rather than a
// package-level singleton so the orchestrator and session manager receive
// their credential context by construction.
type Client struct {
	baseURL     string
	token       string
	workspaceID string
	http        *http.Client
}

// New creates a Client. A zero WorkspaceID falls back to the default tenant.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 5 * time.Minute
		}
		hc = &http.Client{Timeout: timeout}
	}
	workspace := cfg.WorkspaceID
	if workspace == "" {
		workspace = "default"
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		token:       cfg.Token,
		workspaceID: workspace,
		http:        hc,
	}
}

// WorkspaceID returns the tenant identifier this client attaches to requests.
func (c *Client) WorkspaceID() string { return c.workspaceID }

// envelope is the wrapper every endpoint responds with.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Workspace-ID", c.workspaceID)
	return req, nil
}

// do executes the request and decodes the envelope into out (which may be
// nil for calls with no payload). Transport errors, non-2xx statuses and
// success:false envelopes all come back as *Error.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: "No response from server. Is the backend running? (" + err.Error() + ")"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: "reading server response failed"}
	}

	var env envelope
	decodable := json.Unmarshal(raw, &env) == nil

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := serverMessage(env)
		if msg == "" {
			msg = fmt.Sprintf("server returned %s", resp.Status)
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	if !decodable {
		// DELETE-style endpoints respond with an empty body on success.
		if out == nil {
			return nil
		}
		return &Error{StatusCode: resp.StatusCode, Message: "server returned an unreadable response"}
	}
	if !env.Success {
		msg := serverMessage(env)
		if msg == "" {
			msg = "the request failed"
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{StatusCode: resp.StatusCode, Message: "server returned an unexpected payload"}
		}
	}
	return nil
}

func serverMessage(env envelope) string {
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// UploadAudio sends the audio file as multipart form data.
func (c *Client) UploadAudio(ctx context.Context, audioPath string) (UploadResponse, error) {
	var out UploadResponse

	f, err := os.Open(audioPath)
	if err != nil {
		return out, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return out, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return out, fmt.Errorf("read audio file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return out, fmt.Errorf("finalize upload form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/upload", &buf)
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return out, c.do(req, &out)
}

// TranscribeAudio asks the backend to transcribe a previously uploaded file.
func (c *Client) TranscribeAudio(ctx context.Context, meetingID, s3Path string) (TranscribeResponse, error) {
	var out TranscribeResponse
	err := c.postJSON(ctx, "/api/transcribe", TranscribeRequest{MeetingID: meetingID, S3Path: s3Path}, &out)
	return out, err
}

// GenerateSummary produces the flat legacy summary.
func (c *Client) GenerateSummary(ctx context.Context, transcript string) (SummaryResponse, error) {
	var out SummaryResponse
	err := c.postJSON(ctx, "/api/summarize", map[string]string{"transcript": transcript}, &out)
	return out, err
}

// GenerateEnhancedSummary produces the hierarchical meeting structure.
func (c *Client) GenerateEnhancedSummary(ctx context.Context, req EnhancedSummarizeRequest) (EnhancedSummaryResponse, error) {
	var out EnhancedSummaryResponse
	err := c.postJSON(ctx, "/api/summarize/v2", req, &out)
	return out, err
}

// EstimateProcessingTime predicts how long summarization will take.
func (c *Client) EstimateProcessingTime(ctx context.Context, transcript string) (ProcessingEstimate, error) {
	var out ProcessingEstimate
	err := c.postJSON(ctx, "/api/summarize/estimate", map[string]string{"transcript": transcript}, &out)
	return out, err
}

// IngestMeeting indexes a transcript for retrieval.
func (c *Client) IngestMeeting(ctx context.Context, req IngestRequest) (IngestResponse, error) {
	if req.TenantID == "" {
		req.TenantID = c.workspaceID
	}
	var out IngestResponse
	err := c.postJSON(ctx, "/api/meetings/ingest", req, &out)
	return out, err
}

// ListMeetings returns the indexed meetings of the tenant.
func (c *Client) ListMeetings(ctx context.Context) ([]MeetingListItem, error) {
	var out []MeetingListItem
	err := c.get(ctx, "/api/meetings?tenantId="+url.QueryEscape(c.workspaceID), &out)
	return out, err
}

// AskChat answers a question against indexed meetings.
func (c *Client) AskChat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if req.TenantID == "" {
		req.TenantID = c.workspaceID
	}
	var out ChatResponse
	err := c.postJSON(ctx, "/api/chat", req, &out)
	return out, err
}

// CreateChatSession stores a new conversation, optionally seeded with its
// first message.
func (c *Client) CreateChatSession(ctx context.Context, req CreateChatSessionRequest) (ChatSession, error) {
	var out ChatSession
	err := c.postJSON(ctx, "/api/chat/sessions", req, &out)
	return out, err
}

// AddMessageToSession appends one message and returns the updated session.
func (c *Client) AddMessageToSession(ctx context.Context, sessionID string, msg ChatMessage) (ChatSession, error) {
	var out ChatSession
	err := c.postJSON(ctx, "/api/chat/sessions/"+url.PathEscape(sessionID)+"/messages", AddMessageRequest{Message: msg}, &out)
	return out, err
}

// GetChatSession loads one stored conversation.
func (c *Client) GetChatSession(ctx context.Context, sessionID string) (ChatSession, error) {
	var out ChatSession
	err := c.get(ctx, "/api/chat/sessions/"+url.PathEscape(sessionID), &out)
	return out, err
}

// ListChatSessions returns stored conversations, most recent first.
func (c *Client) ListChatSessions(ctx context.Context, limit int) ([]ChatSession, error) {
	var out []ChatSession
	err := c.get(ctx, fmt.Sprintf("/api/chat/sessions?limit=%d", limit), &out)
	return out, err
}

// DeleteChatSession removes a stored conversation.
func (c *Client) DeleteChatSession(ctx context.Context, sessionID string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/chat/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}
