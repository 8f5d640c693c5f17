// Package bridge connects a simulator's assertion introspection API to an
// external test framework that checks assertion and coverage behavior.
//
// # Reading Guide
//
// Start with these files to understand the bridge:
//   - vpi.go: the host simulator surface the bridge consumes (handles, object
//     types, callback reasons, control operations, time values)
//   - bridge.go: the Bridge context object threaded through every operation
//   - walker.go: hierarchy traversal that builds the discovery list
//   - registrar.go and handler.go: callback attachment and event normalization
//   - drain.go: the pull operation that forwards queued records to the consumer
//
// # Architecture
//
// The simulator invokes callbacks synchronously from its event loop. The
// handler never talks to the consumer; it only appends a Record to the
// Bridge's queue. The consumer later calls Drain, which re-asserts the active
// scope and forwards records one at a time in arrival order.
//
// Related packages:
//   - bridge/hostsim: a reference discrete-event host
//   - bridge/design: YAML descriptions of hierarchies and scripted scenarios
//   - bridge/trace, bridge/journal: Consumer implementations
//
// # Key Interfaces
//
//   - Simulator: hierarchy iteration, attributes, callbacks and control
//   - Consumer: construct creation notices and event forwarding
//   - Scope: the consumer-side execution context required for forwarding
package bridge
