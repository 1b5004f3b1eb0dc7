package sim

import "sort"

// snapshot is one queue slot: the raw levels applied together in one gather.
// Keys are action names, values are the desired pressed level.
type snapshot map[string]bool

// actions returns the snapshot's action names in sorted order so that
// reconciliation and logging are deterministic.
func (s snapshot) actions() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// requestQueue is the FIFO of pending raw-level snapshots for one domain.
//
// Slot i is applied i+1 gathers from now. A request is placed with place(),
// which guarantees:
//   - a request never lands in an earlier slot than any request placed before it
//   - two requests for the same action never share a slot
//   - requests for different actions placed back to back share a slot
type requestQueue struct {
	slots []snapshot
}

func newRequestQueue() *requestQueue {
	return &requestQueue{slots: make([]snapshot, 0, 4)}
}

// place records the desired level for action no earlier than slot from and
// returns the slot used.
func (q *requestQueue) place(action string, pressed bool, from int) int {
	slot := from
	if tail := len(q.slots) - 1; tail > slot {
		slot = tail
	}
	if last := q.lastSlot(action); last+1 > slot {
		slot = last + 1
	}

	for len(q.slots) <= slot {
		q.slots = append(q.slots, snapshot{})
	}
	q.slots[slot][action] = pressed
	return slot
}

// lastSlot returns the index of the newest slot holding action, or -1.
func (q *requestQueue) lastSlot(action string) int {
	for i := len(q.slots) - 1; i >= 0; i-- {
		if _, ok := q.slots[i][action]; ok {
			return i
		}
	}
	return -1
}

// pop removes and returns the front snapshot.
// Returns (nil, false) if the queue is empty.
func (q *requestQueue) pop() (snapshot, bool) {
	if len(q.slots) == 0 {
		return nil, false
	}

	s := q.slots[0]

	// Nil out the slot so the backing array does not retain the map.
	q.slots[0] = nil

	if len(q.slots) == 1 {
		q.slots = q.slots[:0]
	} else {
		q.slots = q.slots[1:]
	}
	return s, true
}

// Len returns the number of pending snapshots.
func (q *requestQueue) Len() int {
	return len(q.slots)
}
