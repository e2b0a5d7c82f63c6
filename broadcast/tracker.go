package broadcast

import "github.com/drakeaxelrod/yxa/hid"

// tracker is a fixed-capacity set of matrix coordinates believed held down.
// It is the deduplication oracle for the two key-event submission hooks: a
// press is only accepted while its coordinate is absent, a release only while
// present.
type tracker struct {
	keys []hid.Coord
	cap  int
}

func newTracker(capacity int) tracker {
	return tracker{keys: make([]hid.Coord, 0, capacity), cap: capacity}
}

func (t *tracker) contains(row, col uint8) bool {
	for _, k := range t.keys {
		if k.Row == row && k.Col == col {
			return true
		}
	}
	return false
}

// insert adds a coordinate. Duplicates are a no-op. At capacity the key is
// silently dropped: capacity exceeds any realistic simultaneous key count,
// and an untracked key only costs one dropped release later.
func (t *tracker) insert(row, col uint8) {
	if t.contains(row, col) {
		return
	}
	if len(t.keys) >= t.cap {
		return
	}
	t.keys = append(t.keys, hid.Coord{Row: row, Col: col})
}

// remove deletes a coordinate if present. Order among the remaining entries
// is not preserved.
func (t *tracker) remove(row, col uint8) {
	for i, k := range t.keys {
		if k.Row == row && k.Col == col {
			last := len(t.keys) - 1
			t.keys[i] = t.keys[last]
			t.keys = t.keys[:last]
			return
		}
	}
}

func (t *tracker) len() int { return len(t.keys) }
