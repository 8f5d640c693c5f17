package bridge

// register attaches the callback handler to c for every reason the host
// capabilities allow. Host rejections are logged and skipped.
func (b *Bridge) register(c Construct) {
	reasons := b.caps.registeredReasons(c.Kind)
	if reasons == nil {
		b.log.Infof("Skipping callbacks on %s: host does not support %s callbacks", c.Name, c.Kind.Label())
		return
	}

	b.log.Infof("Set callback on assertion: %s", c.Name)
	for _, reason := range reasons {
		id, err := b.sim.RegisterAssertionCallback(c.Handle, reason, b.handle)
		if err != nil {
			b.log.Warnf("Callback %d on %s rejected: %v", reason, c.FullName, err)
			continue
		}
		b.registrations = append(b.registrations, registration{handle: c.Handle, reason: reason, id: id})
	}
}
