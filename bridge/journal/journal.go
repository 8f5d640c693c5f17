// Package journal persists bridge output in SQLite: one run per simulation,
// with its construct notices and forwarded events in arrival order.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/svaunit/svabridge/bridge"
)

//go:embed schema.sql
var schemaSQL string

// ErrNoRun is recorded when a consumer call arrives before BeginRun.
var ErrNoRun = errors.New("journal: no run started")

// Journal is a bridge.Consumer writing to a SQLite database.
//
// Consumer calls cannot return errors, so the first write failure is kept
// and reported by Err; later calls are dropped.
type Journal struct {
	db *sql.DB

	runID     string
	scope     string
	assertSeq int64
	eventSeq  int64
	err       error
}

var _ bridge.Consumer = (*Journal)(nil)

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// BeginRun starts a new run and makes it the target of consumer calls.
// It returns the run ID.
func (j *Journal) BeginRun(ctx context.Context, label string) (string, error) {
	id := uuid.NewString()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, label, started_at) VALUES (?, ?, ?)`,
		id, label, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	j.runID = id
	j.assertSeq = 0
	j.eventSeq = 0
	j.err = nil
	return id, nil
}

// RunID returns the current run, or "" before BeginRun.
func (j *Journal) RunID() string { return j.runID }

// Err returns the first write failure of the current run.
func (j *Journal) Err() error { return j.err }

// SetScope implements bridge.Consumer.
func (j *Journal) SetScope(s bridge.Scope) {
	j.scope = s.FullName()
}

// CreateAssertion implements bridge.Consumer.
func (j *Journal) CreateAssertion(name, kind string) {
	if !j.writable() {
		return
	}
	j.assertSeq++
	_, err := j.db.Exec(
		`INSERT INTO assertions (run_id, seq, name, kind) VALUES (?, ?, ?, ?)`,
		j.runID, j.assertSeq, name, kind)
	if err != nil {
		j.err = fmt.Errorf("recording assertion %q: %w", name, err)
	}
}

// ForwardEvent implements bridge.Consumer.
func (j *Journal) ForwardEvent(requestor string, rec bridge.Record) {
	if !j.writable() {
		return
	}
	j.eventSeq++
	_, err := j.db.Exec(
		`INSERT INTO events (run_id, seq, requestor, scope, name, kind, reason, start_time, callback_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.runID, j.eventSeq, requestor, j.scope, rec.Name, rec.Kind, rec.Reason.String(), rec.StartTime, rec.CallbackTime)
	if err != nil {
		j.err = fmt.Errorf("recording event for %q: %w", rec.Name, err)
	}
}

func (j *Journal) writable() bool {
	if j.err != nil {
		return false
	}
	if j.runID == "" {
		j.err = ErrNoRun
		return false
	}
	return true
}
