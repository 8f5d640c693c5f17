package bridge

// CoverStats holds the cumulative trigger counts of a cover construct.
type CoverStats struct {
	Failed    int64
	Succeeded int64
}

// CoverStatistics returns the counts of the cover construct called name.
// If several covers share the name the last one in discovery order wins.
// ok is false when no cover construct matched.
func (b *Bridge) CoverStatistics(name string) (stats CoverStats, ok bool) {
	for _, c := range b.constructs {
		if c.Name != name || c.Kind != KindCoverProperty {
			continue
		}
		stats.Failed, stats.Succeeded = b.sim.CoverCounts(c.Handle)
		ok = true
	}
	return stats, ok
}

// ReadCoverStatistics writes the counts of the cover construct called name
// into failed and succeeded. If none matches both are left untouched, so
// callers wanting a default must set it beforehand.
func (b *Bridge) ReadCoverStatistics(name string, failed, succeeded *int64) {
	if stats, ok := b.CoverStatistics(name); ok {
		*failed = stats.Failed
		*succeeded = stats.Succeeded
	}
}
