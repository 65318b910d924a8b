// Package diag collects the non-fatal diagnostic events the diff pipeline
// can raise: MalformedInput, UnplacedInsert and InvariantViolation. None
// of these abort a diff; they are gathered on a per-call Diagnostics
// value and logged by the caller (see internal/corelog) without letting
// any single bad node or placement fail the whole request.
package diag

import "fmt"

// Kind identifies which diagnostic category an event belongs to.
type Kind string

const (
	MalformedInput     Kind = "malformed_input"
	UnplacedInsert     Kind = "unplaced_insert"
	InvariantViolation Kind = "invariant_violation"
)

// Event is one recorded diagnostic.
type Event struct {
	Kind    Kind
	Message string
}

// Diagnostics accumulates events for a single Diff call. The zero value is
// ready to use.
type Diagnostics struct {
	Events []Event
}

// Addf records an event of the given kind.
func (d *Diagnostics) Addf(kind Kind, format string, args ...any) {
	d.Events = append(d.Events, Event{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Count returns how many events of kind were recorded.
func (d *Diagnostics) Count(kind Kind) int {
	n := 0
	for _, e := range d.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Empty reports whether no events were recorded.
func (d *Diagnostics) Empty() bool { return len(d.Events) == 0 }
