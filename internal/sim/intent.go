package sim

import "sync/atomic"

// ExportKind selects what an export request captures.
type ExportKind uint8

const (
	ExportNone  ExportKind = iota
	ExportFrame            // the rendered frame as shown
	ExportOwned            // player-owned units only, transparent elsewhere
)

func (k ExportKind) String() string {
	switch k {
	case ExportFrame:
		return "frame"
	case ExportOwned:
		return "owned"
	}
	return "none"
}

// Intent is the player's command state as seen by one tick. Target and
// Recall persist until changed; SpawnBatches and Export are one-shot requests
// that are handed to exactly one tick.
type Intent struct {
	Target    Point
	HasTarget bool
	Recall    bool
	Color     CellType

	SpawnBatches int
	Export       ExportKind
}

// Mailbox publishes Intent snapshots from input producers to the tick
// consumer. Producers may run on any goroutine; every update is a
// copy-on-write swap so the consumer always sees a complete snapshot.
type Mailbox struct {
	cur atomic.Pointer[Intent]
}

// NewMailbox starts with no target, no recall and the given spawn color.
func NewMailbox(color CellType) *Mailbox {
	m := &Mailbox{}
	m.cur.Store(&Intent{Color: color})
	return m
}

func (m *Mailbox) update(fn func(*Intent)) {
	for {
		old := m.cur.Load()
		next := *old
		fn(&next)
		if m.cur.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Peek returns the current snapshot without consuming one-shot requests.
func (m *Mailbox) Peek() Intent { return *m.cur.Load() }

// Take returns the current snapshot and clears its one-shot requests.
func (m *Mailbox) Take() Intent {
	for {
		old := m.cur.Load()
		if old.SpawnBatches == 0 && old.Export == ExportNone {
			return *old
		}
		next := *old
		next.SpawnBatches = 0
		next.Export = ExportNone
		if m.cur.CompareAndSwap(old, &next) {
			return *old
		}
	}
}

// SetTarget points every unit at p and cancels a recall.
func (m *Mailbox) SetTarget(p Point) {
	m.update(func(in *Intent) {
		in.Target = p
		in.HasTarget = true
		in.Recall = false
	})
}

// Recall sends units home and drops the move target.
func (m *Mailbox) Recall() {
	m.update(func(in *Intent) {
		in.Recall = true
		in.HasTarget = false
	})
}

// SelectColor changes the spawn color and cancels a recall. Non-unit colors
// are ignored.
func (m *Mailbox) SelectColor(c CellType) {
	if !c.IsUnitColor() {
		return
	}
	m.update(func(in *Intent) {
		in.Color = c
		in.Recall = false
	})
}

// RequestSpawn queues one spawn batch of the selected color.
func (m *Mailbox) RequestSpawn() {
	m.update(func(in *Intent) { in.SpawnBatches++ })
}

// RequestExport queues an export of the given kind for the next tick.
func (m *Mailbox) RequestExport(k ExportKind) {
	m.update(func(in *Intent) { in.Export = k })
}
