// Package store is a best-effort local SQLite mirror of chat sessions so
// the chat view renders instantly before the network answers. It may lag
// the server; Refresh results overwrite it wholesale.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/minute-tui/minute/internal/api"
)

// Store wraps the mirror database.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns the default mirror location.
func DefaultDBPath() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "minute", "minute.sqlite")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "minute", "minute.sqlite")
}

// Open opens (and if needed creates) the mirror.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_journal_mode=WAL", path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS chat_sessions (
			sessionId     TEXT PRIMARY KEY,
			title         TEXT NOT NULL,
			meetingId     TEXT,
			createdAt     TEXT,
			updatedAt     TEXT,
			lastMessageAt TEXT,
			messages      TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSessions replaces the mirrored session set.
func (s *Store) SaveSessions(sessions []api.ChatSession) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM chat_sessions`); err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	for _, sess := range sessions {
		messages, err := json.Marshal(sess.Messages)
		if err != nil {
			return fmt.Errorf("marshal messages: %w", err)
		}
		if _, err := tx.Exec(`
			INSERT INTO chat_sessions (sessionId, title, meetingId, createdAt, updatedAt, lastMessageAt, messages)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, sess.SessionID, sess.Title, sess.MeetingID, sess.CreatedAt, sess.UpdatedAt, sess.LastMessageAt, string(messages)); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
	}
	return tx.Commit()
}

// LoadSessions returns mirrored sessions, most recently active first.
func (s *Store) LoadSessions(limit int) ([]api.ChatSession, error) {
	rows, err := s.db.Query(`
		SELECT sessionId, title, meetingId, createdAt, updatedAt, lastMessageAt, messages
		FROM chat_sessions
		ORDER BY lastMessageAt DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []api.ChatSession
	for rows.Next() {
		var sess api.ChatSession
		var meetingID sql.NullString
		var messages string
		if err := rows.Scan(&sess.SessionID, &sess.Title, &meetingID,
			&sess.CreatedAt, &sess.UpdatedAt, &sess.LastMessageAt, &messages); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if meetingID.Valid {
			sess.MeetingID = meetingID.String
		}
		if err := json.Unmarshal([]byte(messages), &sess.Messages); err != nil {
			// A damaged row should not take the whole mirror down.
			sess.Messages = nil
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession drops one mirrored session.
func (s *Store) DeleteSession(sessionID string) error {
	_, err := s.db.Exec(`DELETE FROM chat_sessions WHERE sessionId = ?`, sessionID)
	return err
}
