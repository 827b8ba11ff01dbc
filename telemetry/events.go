// Package telemetry records game events, windowed session statistics and
// per-phase frame timings, and writes them as CSV.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/skyhunt/systems"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventTargetConsumed EventType = iota
	EventAvatarConsumed
	EventAllConsumed
	EventReset
)

var eventNames = [...]string{"target_consumed", "avatar_consumed", "all_consumed", "reset"}

// String returns the event's name.
func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (t EventType) MarshalCSV() (string, error) { return t.String(), nil }

// Event is a single game event.
type Event struct {
	Type      EventType `csv:"type"`
	Frame     uint64    `csv:"frame"`
	Time      float32   `csv:"time"`
	Target    int       `csv:"target"` // Target index, -1 when not applicable
	Remaining int       `csv:"remaining"`
}

// LogValue implements slog.LogValuer.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.Uint64("frame", e.Frame),
		slog.Float64("time", float64(e.Time)),
		slog.Int("remaining", e.Remaining),
	}
	if e.Target >= 0 {
		attrs = append(attrs, slog.Int("target", e.Target))
	}
	return slog.GroupValue(attrs...)
}

// EventsFrom returns the events a logic outcome produced, appended to dst.
// All-consumed fires on the update that ate the last target.
func EventsFrom(dst []Event, out systems.Outcome, t float32) []Event {
	if out.AvatarJustConsumed {
		dst = append(dst, Event{Type: EventAvatarConsumed, Frame: out.Frame, Time: t, Target: -1, Remaining: out.Remaining})
	}
	for _, i := range out.ConsumedTargets {
		dst = append(dst, Event{Type: EventTargetConsumed, Frame: out.Frame, Time: t, Target: i, Remaining: out.Remaining})
	}
	if len(out.ConsumedTargets) > 0 && out.AllConsumed() {
		dst = append(dst, Event{Type: EventAllConsumed, Frame: out.Frame, Time: t, Target: -1})
	}
	return dst
}

// ResetEvent records a session reset.
func ResetEvent(frame uint64, t float32, total int) Event {
	return Event{Type: EventReset, Frame: frame, Time: t, Target: -1, Remaining: total}
}
