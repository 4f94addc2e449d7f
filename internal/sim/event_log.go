package sim

import (
	"fmt"
	"strings"
)

// Event categories recorded by the simulation.
const (
	CatMove   = "move"
	CatCombat = "combat"
	CatSpawn  = "spawn"
	CatRecall = "recall"
)

// Event is one recorded occurrence during a tick.
type Event struct {
	Tick     int
	Category string // move, combat, spawn, recall
	Key      string // specific event name within the category
	From     int    // source cell index, -1 when not applicable
	To       int    // destination cell index, -1 when not applicable
	Value    string // human-readable detail
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] move    step             (10,10)->(11,10)
func (e Event) String() string {
	return fmt.Sprintf("[T=%03d] %-7s %-16s %s", e.Tick, e.Category, e.Key, e.Value)
}

// EventLog collects structured events for headless runs and tests. It is
// unbounded, so interactive frontends run without one. Per-unit move steps
// are only recorded in verbose mode.
type EventLog struct {
	entries []Event
	verbose bool
}

// NewEventLog creates an EventLog; verbose also records every move step.
func NewEventLog(verbose bool) *EventLog {
	return &EventLog{verbose: verbose}
}

// Verbose reports whether move steps are recorded.
func (l *EventLog) Verbose() bool { return l != nil && l.verbose }

// Add records a new entry. It is a no-op on a nil log.
func (l *EventLog) Add(e Event) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, e)
}

// Entries returns all recorded entries.
func (l *EventLog) Entries() []Event {
	if l == nil {
		return nil
	}
	return l.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (l *EventLog) Filter(category, key string) []Event {
	var out []Event
	for _, e := range l.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterTick returns entries recorded during tick.
func (l *EventLog) FilterTick(tick int) []Event {
	var out []Event
	for _, e := range l.Entries() {
		if e.Tick == tick {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match the given category and key.
func (l *EventLog) Count(category, key string) int {
	return len(l.Filter(category, key))
}

// Format returns the full log as a single string for t.Log output.
func (l *EventLog) Format() string {
	var sb strings.Builder
	for _, e := range l.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
