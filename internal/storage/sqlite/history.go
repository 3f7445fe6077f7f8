package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jkruckivey/assessments/internal/core"
	"github.com/jkruckivey/assessments/pkg/log"
)

// History is a core.SessionStore backed by the conversation_turns table.
type History struct {
	db *sql.DB
}

func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

func (h *History) GetHistory(ctx context.Context, sessionID string) ([]core.Turn, error) {
	// Fetch the LAST turns by ordering DESC
	query := `SELECT role, content, timestamp FROM conversation_turns WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := h.db.QueryContext(ctx, query, sessionID, core.MaxHistoryTurns)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var turn core.Turn
		if err := rows.Scan(&turn.Role, &turn.Content, &turn.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, turn)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Newest first from the query; callers expect oldest first.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Str("session", sessionID).Int("count", len(turns)).Msg("loaded history turns")
	return turns, nil
}

// SaveHistory replaces the stored turns of sessionID with the latest
// core.MaxHistoryTurns of turns.
func (h *History) SaveHistory(ctx context.Context, sessionID string, turns []core.Turn) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conversation_turns WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to delete turns: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO conversation_turns (session_id, role, content, timestamp) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, turn := range core.TrimHistory(turns, core.MaxHistoryTurns) {
		if _, err := stmt.ExecContext(ctx, sessionID, string(turn.Role), turn.Content, turn.Timestamp); err != nil {
			return fmt.Errorf("failed to insert turn: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit turns: %w", err)
	}
	return nil
}

func (h *History) ClearHistory(ctx context.Context, sessionID string) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM conversation_turns WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to clear turns: %w", err)
	}
	return nil
}
