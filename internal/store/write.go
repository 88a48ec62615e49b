package store

import (
	"context"
	"fmt"

	"github.com/roach88/precisemath/internal/canonical"
)

// Session groups evaluations: one CLI eval session or one scenario run.
type Session struct {
	ID     string
	Label  string
	Scalar string

	// Pass is nil for sessions without expectations (plain evals).
	Pass *bool

	// TraceHash is the canonical hash of a scenario run's snapshot.
	TraceHash string
}

// Evaluation is one stored step.
type Evaluation struct {
	ID        string
	SessionID string
	Seq       int64
	Op        string

	// Record is the step as canonical JSON.
	Record string
}

// WriteSession inserts a session. Duplicate IDs are silently ignored.
func (s *Store) WriteSession(ctx context.Context, sess Session) error {
	var pass any
	if sess.Pass != nil {
		pass = *sess.Pass
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, label, scalar, pass, trace_hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, sess.ID, sess.Label, sess.Scalar, pass, sess.TraceHash)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// FinishSession records the outcome of a scenario run.
func (s *Store) FinishSession(ctx context.Context, id string, pass bool, traceHash string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET pass = ?, trace_hash = ? WHERE id = ?
	`, pass, traceHash, id)
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish session %s: %w", id, ErrNotFound)
	}
	return nil
}

// WriteEvaluation stores record, a map accepted by canonical.Marshal, as
// step seq of the session and returns its content-addressed ID.
//
// Writing the same (session, seq, record) twice is a no-op. Writing a
// different record under an existing (session, seq) is an error.
func (s *Store) WriteEvaluation(ctx context.Context, sessionID string, seq int64, op string, record map[string]any) (string, error) {
	data, err := canonical.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("write evaluation: %w", err)
	}

	id, err := EvaluationID(sessionID, seq, string(data))
	if err != nil {
		return "", fmt.Errorf("write evaluation: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, session_id, seq, op, record)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, sessionID, seq, op, string(data))
	if err != nil {
		return "", fmt.Errorf("write evaluation: %w", err)
	}

	return id, nil
}

// EvaluationID computes the content-addressed ID of a stored step.
func EvaluationID(sessionID string, seq int64, record string) (string, error) {
	return canonical.Hash(canonical.DomainEvaluation, map[string]any{
		"session_id": sessionID,
		"seq":        seq,
		"record":     record,
	})
}
