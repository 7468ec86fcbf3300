package tasks

import "sync/atomic"

// Ticket identifies one request issued by a [Tracker].
type Ticket uint64

// Tracker issues tickets so only the response to the latest request is applied.
//
// The zero value is ready to use. Safe for concurrent use.
type Tracker struct {
	current atomic.Uint64
}

// Next issues a new ticket, superseding every earlier one.
func (t *Tracker) Next() Ticket {
	return Ticket(t.current.Add(1))
}

// Current reports whether ticket is the most recent one issued.
func (t *Tracker) Current(ticket Ticket) bool {
	return ticket != 0 && uint64(ticket) == t.current.Load()
}

// Invalidate supersedes every outstanding ticket without issuing a new one.
func (t *Tracker) Invalidate() {
	t.current.Add(1)
}
