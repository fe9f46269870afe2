// Package signal provides a synchronous observer list for zero-argument
// notifications.
package signal

import (
	"log/slog"
	"runtime/debug"
)

// ID identifies a connected slot.
type ID uint64

type slot struct {
	id ID
	fn func()
}

// Signal is a list of slots invoked in connection order by Emit. The zero
// value is ready to use. A Signal is not safe for concurrent use.
type Signal struct {
	name   string
	log    *slog.Logger
	slots  []slot
	nextID ID
}

// New creates a named signal. The name and logger are only used to report
// panicking slots; a nil logger uses slog.Default.
func New(name string, log *slog.Logger) *Signal {
	return &Signal{name: name, log: log}
}

// Connect adds fn and returns an ID for Disconnect.
func (s *Signal) Connect(fn func()) ID {
	s.nextID++
	s.slots = append(s.slots, slot{id: s.nextID, fn: fn})
	return s.nextID
}

// Disconnect removes a slot. It reports whether the slot was connected.
func (s *Signal) Disconnect(id ID) bool {
	for i, sl := range s.slots {
		if sl.id == id {
			s.slots = append(s.slots[:i:i], s.slots[i+1:]...)
			return true
		}
	}
	return false
}

// Emit calls every slot. Slots connected or disconnected during emission
// take effect from the next Emit. A panicking slot is logged and does not
// stop delivery to the others.
func (s *Signal) Emit() {
	slots := make([]slot, len(s.slots))
	copy(slots, s.slots)
	for _, sl := range slots {
		s.safeCall(sl.fn)
	}
}

// Len returns the number of connected slots.
func (s *Signal) Len() int { return len(s.slots) }

func (s *Signal) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log := s.log
			if log == nil {
				log = slog.Default()
			}
			log.Error("signal slot panicked", "signal", s.name, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn()
}
