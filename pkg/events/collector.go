package events

import "slices"

// EventCollector gathers the domain events an aggregate raises until they are
// handed to a publisher. The zero value is ready to use.
type EventCollector struct {
	pending []DomainEvent
}

// Record queues events in the order they were raised.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Events returns a copy of the queued events.
func (c *EventCollector) Events() []DomainEvent {
	return slices.Clone(c.pending)
}

// ClearEvents returns the queued events and empties the queue.
func (c *EventCollector) ClearEvents() []DomainEvent {
	collected := c.pending
	c.pending = nil
	return collected
}
