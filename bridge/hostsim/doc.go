// Package hostsim is a reference host for the bridge: a small discrete-event
// simulator with a design hierarchy, assertion constructs that run scripted
// attempts, and the callback and control surface of bridge.Simulator.
//
// Events are ordered by timestamp, then type priority (attempt ends, attempt
// starts, tasks), then creation order, so runs are deterministic. Tasks
// scheduled with At model consumer requests such as drains and controls.
package hostsim
