package trace

import "github.com/svaunit/svabridge/bridge"

// ConstructSummary aggregates the events of one construct.
type ConstructSummary struct {
	Name     string
	Kind     string
	Events   int
	ByReason map[bridge.Reason]int
}

// Summary aggregates a Collector's contents.
type Summary struct {
	Assertions  int
	TotalEvents int
	ByReason    map[bridge.Reason]int
	// Constructs is in first-notice order; constructs that only appear in
	// events follow in first-event order.
	Constructs []*ConstructSummary
}

// Summarize computes aggregate statistics from a Collector.
// Safe for nil or empty collectors (returns zero-value fields).
func Summarize(c *Collector) *Summary {
	summary := &Summary{ByReason: make(map[bridge.Reason]int)}
	if c == nil {
		return summary
	}

	index := make(map[string]*ConstructSummary)
	get := func(name, kind string) *ConstructSummary {
		cs, ok := index[name]
		if !ok {
			cs = &ConstructSummary{Name: name, Kind: kind, ByReason: make(map[bridge.Reason]int)}
			index[name] = cs
			summary.Constructs = append(summary.Constructs, cs)
		}
		return cs
	}

	summary.Assertions = len(c.Assertions)
	for _, a := range c.Assertions {
		get(a.Name, a.Kind)
	}
	summary.TotalEvents = len(c.Events)
	for _, e := range c.Events {
		summary.ByReason[e.Reason]++
		cs := get(e.Name, e.Kind)
		cs.Events++
		cs.ByReason[e.Reason]++
	}
	return summary
}
