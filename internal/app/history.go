package app

import "radar-panel.klederson.com/internal/control"

// CommandRing is a circular buffer of the most recent commands sent.
type CommandRing struct {
	buf   []control.Command
	pos   int
	count int
}

// NewCommandRing creates a new circular buffer with the given capacity.
func NewCommandRing(capacity int) *CommandRing {
	if capacity < 1 {
		capacity = 1
	}
	return &CommandRing{
		buf: make([]control.Command, capacity),
	}
}

// Push adds a command to the ring buffer.
func (r *CommandRing) Push(cmd control.Command) {
	r.buf[r.pos] = cmd
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Values returns all stored commands in chronological order.
func (r *CommandRing) Values() []control.Command {
	if r.count == 0 {
		return nil
	}
	result := make([]control.Command, r.count)
	if r.count < len(r.buf) {
		copy(result, r.buf[:r.count])
	} else {
		start := r.pos
		n := copy(result, r.buf[start:])
		copy(result[n:], r.buf[:start])
	}
	return result
}

// Last returns the most recent command.
func (r *CommandRing) Last() (control.Command, bool) {
	if r.count == 0 {
		return control.Command{}, false
	}
	idx := (r.pos - 1 + len(r.buf)) % len(r.buf)
	return r.buf[idx], true
}

// Len returns the number of stored commands.
func (r *CommandRing) Len() int {
	return r.count
}
