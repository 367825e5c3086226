// Package initiative keeps the in-memory roll list for the current tabletop
// encounter. State lives for the process (or until an explicit clear) and is
// owned by whoever constructs the Tracker, not by the package.
package initiative

import (
	"sort"
	"sync"
)

// Entry is a participant key paired with their last-submitted roll.
// The key is either a stringified Discord ID or an NPC display name;
// resolving IDs to display names is the caller's concern at render time.
type Entry struct {
	Key   string
	Value int
}

// Tracker maps participant keys to their latest roll
type Tracker struct {
	mu    sync.Mutex
	rolls map[string]int
	order []string // keys in first-insertion order, for stable ties
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{
		rolls: make(map[string]int),
	}
}

// Clear empties the roll list unconditionally
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolls = make(map[string]int)
	t.order = nil
}

// SetRoll records a roll for the given participant; the last write wins.
// Re-rolling does not move a participant's position among equal values.
func (t *Tracker) SetRoll(key string, value int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, seen := t.rolls[key]; !seen {
		t.order = append(t.order, key)
	}
	t.rolls[key] = value
}

// Len returns the number of participants with a recorded roll
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.rolls)
}

// Order returns all entries sorted by roll value descending.
// Ties keep the participants' first-insertion order.
func (t *Tracker) Order() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, Entry{Key: key, Value: t.rolls[key]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})

	return entries
}
