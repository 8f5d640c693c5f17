package bridge

// canonicalReasons maps host reasons that are always understood.
var canonicalReasons = map[RawReason]Reason{
	CbAssertionStart:   ReasonStart,
	CbAssertionSuccess: ReasonSuccess,
	CbAssertionFailure: ReasonFailure,
	CbAssertionDisable: ReasonDisable,
	CbAssertionEnable:  ReasonEnable,
	CbAssertionReset:   ReasonReset,
	CbAssertionKill:    ReasonKill,
}

// canonicalReason maps a host reason to a Reason. Step reasons are only
// meaningful on hosts that deliver them; anything else is ReasonUnknown.
func (c Capabilities) canonicalReason(raw RawReason) Reason {
	if r, ok := canonicalReasons[raw]; ok {
		return r
	}
	if c.StepCallbacks {
		switch raw {
		case CbAssertionStepSuccess:
			return ReasonStepSuccess
		case CbAssertionStepFailure:
			return ReasonStepFailure
		}
	}
	return ReasonUnknown
}

// handle is the CallbackFunc attached to every construct. It normalizes the
// event into a Record and queues it; it never calls the consumer.
func (b *Bridge) handle(raw RawReason, cbTime *Time, h Handle, info *AttemptInfo) {
	rec := Record{
		Name:   b.sim.Name(h),
		Kind:   KindOf(b.sim.Type(h)).Label(),
		Reason: b.caps.canonicalReason(raw),
	}
	if cbTime != nil {
		rec.CallbackTime = cbTime.Ticks()
	}
	if info != nil {
		rec.StartTime = info.StartTime.Ticks()
	} else {
		rec.StartTime = rec.CallbackTime
	}

	b.log.Debugf("Detected assertion callback -> name: %s, reason: %s, time: %d, start_time: %d",
		b.sim.FullName(h), rec.Reason, rec.CallbackTime, rec.StartTime)
	b.queue.Push(rec)
}
