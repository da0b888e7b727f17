// Package chat maintains the conversational sessions: a local
// most-recently-updated cache mirroring the server, the create-on-first-turn
// policy, and the strict user-then-assistant append order within a turn.
package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minute-tui/minute/internal/api"
)

// titleLimit is how much of the first question becomes the session title.
const titleLimit = 50

// Manager owns the session list and the active conversation. The local
// cache is best-effort and may diverge from the server on failure; it is
// reconciled by Refresh. The mutating methods run on command goroutines
// while the event loop reads Sessions and ActiveID, so the cache is guarded
// by a mutex; network calls happen outside the lock.
type Manager struct {
	client *api.Client

	mu       sync.Mutex
	sessions []api.ChatSession
	activeID string
}

// NewManager creates a Manager around a configured api client.
func NewManager(client *api.Client) *Manager {
	return &Manager{client: client}
}

// Sessions returns a snapshot of the cached list, most recently updated
// first.
func (m *Manager) Sessions() []api.ChatSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.ChatSession, len(m.sessions))
	copy(out, m.sessions)
	return out
}

// ActiveID returns the session the UI is currently in, or "".
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeID
}

// StartNew leaves the active session; the next exchange creates a fresh one.
func (m *Manager) StartNew() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activeID = ""
}

// Seed installs a cached list (e.g. from the local mirror) without touching
// the server.
func (m *Manager) Seed(sessions []api.ChatSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = sessions
}

// Refresh replaces the cache with the server's list.
func (m *Manager) Refresh(ctx context.Context, limit int) error {
	sessions, err := m.client.ListChatSessions(ctx, limit)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.sessions = sessions
	m.mu.Unlock()
	return nil
}

// NewMessage builds a message for the given role.
func NewMessage(role, content string, sources []api.ChatSource) api.ChatMessage {
	return api.ChatMessage{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Sources:   sources,
	}
}

// RecordExchange persists one user/assistant turn. For a fresh conversation
// the user message creates the session and the assistant message is appended
// afterwards, as two sequential calls, not a transaction; a crash in between
// leaves a session holding only the user message, which Load tolerates. For
// an existing conversation both messages are appended in order. The local
// cache is updated optimistically either way.
func (m *Manager) RecordExchange(ctx context.Context, userMsg, assistantMsg api.ChatMessage, meetingID string) error {
	m.mu.Lock()
	active := m.activeID
	m.mu.Unlock()

	if active == "" {
		session, err := m.client.CreateChatSession(ctx, api.CreateChatSessionRequest{
			Title:        truncateTitle(userMsg.Content),
			MeetingID:    meetingID,
			FirstMessage: &userMsg,
		})
		if err != nil {
			return fmt.Errorf("create chat session: %w", err)
		}
		if len(session.Messages) == 0 {
			session.Messages = []api.ChatMessage{userMsg}
		}
		session.Messages = append(session.Messages, assistantMsg)
		session.LastMessageAt = assistantMsg.Timestamp

		m.mu.Lock()
		m.activeID = session.SessionID
		m.sessions = append([]api.ChatSession{session}, m.sessions...)
		m.mu.Unlock()

		if _, err := m.client.AddMessageToSession(ctx, session.SessionID, assistantMsg); err != nil {
			return fmt.Errorf("save assistant reply: %w", err)
		}
		return nil
	}

	// Existing conversation: move to front and extend locally before the
	// server confirms.
	m.touch(active, userMsg, assistantMsg)

	if _, err := m.client.AddMessageToSession(ctx, active, userMsg); err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	if _, err := m.client.AddMessageToSession(ctx, active, assistantMsg); err != nil {
		return fmt.Errorf("save assistant reply: %w", err)
	}
	return nil
}

// Load fetches a stored session and makes it active. A session containing
// only a user message (interrupted first exchange) loads without error.
func (m *Manager) Load(ctx context.Context, sessionID string) (api.ChatSession, error) {
	session, err := m.client.GetChatSession(ctx, sessionID)
	if err != nil {
		return api.ChatSession{}, fmt.Errorf("load chat session: %w", err)
	}
	m.mu.Lock()
	m.activeID = session.SessionID
	m.mu.Unlock()
	return session, nil
}

// Delete removes a session from the server and the cache. Deleting the
// active session returns the UI to the no-active-session state.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	if err := m.client.DeleteChatSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete chat session: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.sessions[:0]
	for _, s := range m.sessions {
		if s.SessionID != sessionID {
			kept = append(kept, s)
		}
	}
	m.sessions = kept
	if m.activeID == sessionID {
		m.activeID = ""
	}
	return nil
}

// touch appends the turn to the cached session and moves it to the front.
func (m *Manager) touch(sessionID string, msgs ...api.ChatMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sessions {
		if m.sessions[i].SessionID != sessionID {
			continue
		}
		s := m.sessions[i]
		s.Messages = append(s.Messages, msgs...)
		if len(msgs) > 0 {
			s.LastMessageAt = msgs[len(msgs)-1].Timestamp
			s.UpdatedAt = s.LastMessageAt
		}
		m.sessions = append(m.sessions[:i], m.sessions[i+1:]...)
		m.sessions = append([]api.ChatSession{s}, m.sessions...)
		return
	}
}

func truncateTitle(s string) string {
	runes := []rune(s)
	if len(runes) <= titleLimit {
		return s
	}
	return string(runes[:titleLimit])
}
