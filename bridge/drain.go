package bridge

// Drain forwards every queued record to the consumer on behalf of
// requestor, oldest first, and returns how many were forwarded.
//
// The active scope is re-asserted before the first record since Drain is
// typically reached from a context that has none. Each record is fully
// forwarded before the next is popped, so records queued while forwarding
// are delivered in the same pass. Drain never waits for new records.
func (b *Bridge) Drain(requestor string) (int, error) {
	if b.scope == nil {
		return 0, ErrNoActiveScope
	}
	b.consumer.SetScope(b.scope)

	n := 0
	for {
		rec, ok := b.queue.Pop()
		if !ok {
			break
		}
		b.consumer.ForwardEvent(requestor, rec)
		n++
	}
	if n > 0 {
		b.log.Debugf("Drained %d records for %s", n, requestor)
	}
	return n, nil
}
