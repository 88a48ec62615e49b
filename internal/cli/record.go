package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/roach88/precisemath/internal/harness"
	"github.com/roach88/precisemath/internal/store"
)

// sessionIDs generates IDs for new sessions. Tests swap in a
// store.FixedGenerator.
var sessionIDs store.IDGenerator = store.UUIDv7Generator{}

// openStore opens the history database. When mustExist is set a missing
// file is a command error instead of a new empty database.
func openStore(path string, mustExist bool) (*store.Store, error) {
	if mustExist {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// ensureSession returns the ID of the session to record into, creating it
// when needed. An existing session must use the same scalar kind.
func ensureSession(ctx context.Context, st *store.Store, id, label, scalar string) (string, error) {
	if id == "" {
		id = sessionIDs.Generate()
	}

	existing, err := st.ReadSession(ctx, id)
	switch {
	case err == nil:
		if existing.Scalar != scalar {
			return "", NewExitError(ExitCommandError,
				fmt.Sprintf("session %s uses scalar %q, not %q", id, existing.Scalar, scalar))
		}
		return id, nil
	case errors.Is(err, store.ErrNotFound):
	default:
		return "", err
	}

	if err := st.WriteSession(ctx, store.Session{ID: id, Label: label, Scalar: scalar}); err != nil {
		return "", err
	}
	return id, nil
}

// recordEvents appends trace events to a session. Events keep their own
// sequence numbers.
func recordEvents(ctx context.Context, st *store.Store, sessionID string, events []harness.TraceEvent) error {
	for _, e := range events {
		if _, err := st.WriteEvaluation(ctx, sessionID, e.Seq, e.Op, e.Canonical()); err != nil {
			return fmt.Errorf("record seq %d: %w", e.Seq, err)
		}
	}
	return nil
}

// formatResult renders the outcome of an event for text output.
func formatResult(e harness.TraceEvent) string {
	switch {
	case e.Fraction != nil:
		return e.Fraction.String()
	case e.Equal != nil:
		return fmt.Sprintf("%t", *e.Equal)
	case e.Count != nil:
		return fmt.Sprintf("%d", *e.Count)
	}
	return ""
}
