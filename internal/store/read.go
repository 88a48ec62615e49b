package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("not found")

// ReadSession returns a single session.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, label, scalar, pass, trace_hash FROM sessions WHERE id = ?
	`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("read session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}
	return sess, nil
}

// ReadSessions returns up to limit sessions, most recently written first.
// A limit of 0 or less returns all sessions.
func (s *Store) ReadSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, scalar, pass, trace_hash FROM sessions
		ORDER BY rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("read sessions: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sessions: %w", err)
	}
	return sessions, nil
}

// ReadEvaluations returns a session's steps ordered by seq.
func (s *Store) ReadEvaluations(ctx context.Context, sessionID string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, seq, op, record FROM evaluations
		WHERE session_id = ?
		ORDER BY seq ASC, id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read evaluations: %w", err)
	}
	defer rows.Close()

	evals := []Evaluation{}
	for rows.Next() {
		var e Evaluation
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Seq, &e.Op, &e.Record); err != nil {
			return nil, fmt.Errorf("read evaluations: %w", err)
		}
		evals = append(evals, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read evaluations: %w", err)
	}
	return evals, nil
}

// NextSeq returns the next free seq of a session, starting at 1.
func (s *Store) NextSeq(ctx context.Context, sessionID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM evaluations WHERE session_id = ?
	`, sessionID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess Session
		pass sql.NullBool
	)
	if err := row.Scan(&sess.ID, &sess.Label, &sess.Scalar, &pass, &sess.TraceHash); err != nil {
		return Session{}, err
	}
	if pass.Valid {
		p := pass.Bool
		sess.Pass = &p
	}
	return sess, nil
}
