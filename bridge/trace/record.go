// Package trace records what a bridge hands to its consumer: construct
// notifications and forwarded events, in arrival order.
// It stores plain data and is meant for tests, reports and golden files.
package trace

import "github.com/svaunit/svabridge/bridge"

// AssertionRecord captures one construct creation notice.
type AssertionRecord struct {
	Name string
	Kind string
}

// EventRecord captures one forwarded event.
type EventRecord struct {
	Requestor string
	// Scope is the consumer scope that was current when the event arrived.
	Scope string
	bridge.Record
}
