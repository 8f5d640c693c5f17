package journal

import (
	"context"
	"fmt"

	"github.com/svaunit/svabridge/bridge"
)

// Run is one recorded simulation.
type Run struct {
	ID        string
	Label     string
	StartedAt string
}

// Assertion is one recorded construct notice.
type Assertion struct {
	Name string
	Kind string
}

// Event is one recorded forwarded event.
type Event struct {
	Requestor string
	Scope     string
	bridge.Record
}

// Runs returns every run in creation order.
func (j *Journal) Runs(ctx context.Context) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT id, label, started_at FROM runs ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Label, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Assertions returns the construct notices of a run in arrival order.
func (j *Journal) Assertions(ctx context.Context, runID string) ([]Assertion, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT name, kind FROM assertions WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query assertions: %w", err)
	}
	defer rows.Close()

	var out []Assertion
	for rows.Next() {
		var a Assertion
		if err := rows.Scan(&a.Name, &a.Kind); err != nil {
			return nil, fmt.Errorf("scan assertion: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Events returns the forwarded events of a run in arrival order.
func (j *Journal) Events(ctx context.Context, runID string) ([]Event, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT requestor, scope, name, kind, reason, start_time, callback_time
		 FROM events WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e      Event
			reason string
		)
		if err := rows.Scan(&e.Requestor, &e.Scope, &e.Name, &e.Kind, &reason, &e.StartTime, &e.CallbackTime); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Reason, _ = bridge.ParseReason(reason)
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountByReason returns how many events of a run carry each reason.
func (j *Journal) CountByReason(ctx context.Context, runID string) (map[bridge.Reason]int, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT reason, COUNT(*) FROM events WHERE run_id = ? GROUP BY reason`, runID)
	if err != nil {
		return nil, fmt.Errorf("query reason counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[bridge.Reason]int)
	for rows.Next() {
		var (
			reason string
			n      int
		)
		if err := rows.Scan(&reason, &n); err != nil {
			return nil, fmt.Errorf("scan reason count: %w", err)
		}
		r, _ := bridge.ParseReason(reason)
		counts[r] += n
	}
	return counts, rows.Err()
}
