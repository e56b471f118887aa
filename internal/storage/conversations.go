// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists conversation history in a local SQLite database.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jeranaias/quickllm/internal/conversation"
)

// schema is applied on open; IF NOT EXISTS keeps it idempotent across runs.
const schema = `
CREATE TABLE IF NOT EXISTS conversations (
    id         TEXT PRIMARY KEY,
    started_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS turns (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    conversation_id TEXT NOT NULL REFERENCES conversations(id),
    role            TEXT NOT NULL,
    text            TEXT NOT NULL,
    created_at      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS context_items (
    conversation_id TEXT NOT NULL REFERENCES conversations(id),
    kind            TEXT NOT NULL,
    label           TEXT NOT NULL,
    truncated       INTEGER NOT NULL DEFAULT 0,
    added_at        INTEGER NOT NULL,
    PRIMARY KEY (conversation_id, kind, label)
);

CREATE INDEX IF NOT EXISTS idx_turns_conversation ON turns(conversation_id);
`

// ConversationMeta is one row of the conversation listing.
type ConversationMeta struct {
	ID        string
	StartedAt time.Time
	TurnCount int
}

// Store is the on-disk conversation history. History is an audit trail of
// what was said; context payloads are deliberately not persisted, only their
// labels, since payloads can hold clipboard and file content the user never
// asked to keep.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// WRITES
// =============================================================================

// SaveTurn records one history turn, creating the conversation row on first
// use.
func (s *Store) SaveTurn(convID string, turn conversation.Turn) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT OR IGNORE INTO conversations (id, started_at) VALUES (?, ?)`,
		convID, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO turns (conversation_id, role, text, created_at) VALUES (?, ?, ?, ?)`,
		convID, turn.Role, turn.Text, turn.At.Unix(),
	); err != nil {
		return fmt.Errorf("save turn: %w", err)
	}

	return tx.Commit()
}

// SaveContext records the labels of the conversation's current context set,
// replacing per (kind, label) the way the in-memory context does.
func (s *Store) SaveContext(convID string, items []conversation.ContextItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		if _, err := tx.Exec(
			`INSERT INTO context_items (conversation_id, kind, label, truncated, added_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (conversation_id, kind, label)
			 DO UPDATE SET truncated = excluded.truncated, added_at = excluded.added_at`,
			convID, item.Kind.String(), item.Label, boolInt(item.Truncated), item.AddedAt,
		); err != nil {
			return fmt.Errorf("save context item %s: %w", item.Label, err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// READS
// =============================================================================

// History returns the turns of one conversation in order.
func (s *Store) History(convID string) ([]conversation.Turn, error) {
	rows, err := s.db.Query(
		`SELECT role, text, created_at FROM turns WHERE conversation_id = ? ORDER BY id`,
		convID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []conversation.Turn
	for rows.Next() {
		var t conversation.Turn
		var at int64
		if err := rows.Scan(&t.Role, &t.Text, &at); err != nil {
			return nil, err
		}
		t.At = time.Unix(at, 0)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// Conversations lists stored conversations, most recent first.
func (s *Store) Conversations() ([]ConversationMeta, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.started_at, COUNT(t.id)
		FROM conversations c
		LEFT JOIN turns t ON t.conversation_id = c.id
		GROUP BY c.id
		ORDER BY c.started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConversationMeta
	for rows.Next() {
		var m ConversationMeta
		var started int64
		if err := rows.Scan(&m.ID, &started, &m.TurnCount); err != nil {
			return nil, err
		}
		m.StartedAt = time.Unix(started, 0)
		out = append(out, m)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
