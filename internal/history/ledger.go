// Package history keeps the bounded, process-lifetime log of successful
// calculations together with the last numeric answer.
package history

import (
	"regexp"
	"strconv"
	"sync"
	"time"
)

// DefaultCapacity is the ledger size used when none is configured.
const DefaultCapacity = 50

// Entry is an immutable snapshot of one successful calculation.
type Entry struct {
	Input         string    `json:"input"`
	Expression    string    `json:"expression"`
	OperationType string    `json:"operation_type"`
	Value         *float64  `json:"value,omitempty"`
	Display       string    `json:"display"`
	Timestamp     time.Time `json:"timestamp"`
}

// Ledger is a fixed-capacity ring of entries plus the last-answer slot.
// Record and Clear each update both under a single lock.
type Ledger struct {
	mu      sync.RWMutex
	entries []Entry
	head    int // index of the oldest entry
	size    int
	last    float64
	hasLast bool
}

// NewLedger returns an empty ledger. A non-positive capacity selects
// DefaultCapacity.
func NewLedger(capacity int) *Ledger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ledger{entries: make([]Entry, capacity)}
}

// Cap returns the maximum number of entries kept.
func (l *Ledger) Cap() int {
	return len(l.entries)
}

// Len returns the number of entries currently held.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Record appends e, evicting the oldest entry when full. When answer is
// non-nil it becomes the new last answer in the same step.
func (l *Ledger) Record(e Entry, answer *float64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.size < len(l.entries) {
		l.entries[(l.head+l.size)%len(l.entries)] = e
		l.size++
	} else {
		l.entries[l.head] = e
		l.head = (l.head + 1) % len(l.entries)
	}

	if answer != nil {
		l.last = *answer
		l.hasLast = true
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns all of them.
func (l *Ledger) Recent(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > l.size {
		n = l.size
	}
	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = l.at(i)
	}
	return out
}

// Get returns the i-th most recent entry, 1-based.
func (l *Ledger) Get(i int) (Entry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i < 1 || i > l.size {
		return Entry{}, false
	}
	return l.at(i - 1), true
}

// at returns the entry k positions back from the newest. Caller holds mu.
func (l *Ledger) at(k int) Entry {
	idx := (l.head + l.size - 1 - k) % len(l.entries)
	return l.entries[idx]
}

// LastAnswer returns the most recent numeric result, if any.
func (l *Ledger) LastAnswer() (float64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.last, l.hasLast
}

// Clear drops every entry and the last answer.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.entries)
	l.head, l.size = 0, 0
	l.last, l.hasLast = 0, false
}

var ansToken = regexp.MustCompile(`(?i)\bans\b`)

// Substitute replaces every whole-word "ans" in text with the last answer.
// With parenthesize set a negative answer becomes "(-7)" so it stays one
// operand in a symbolic expression. Without an answer text is returned
// unchanged.
func (l *Ledger) Substitute(text string, parenthesize bool) string {
	v, ok := l.LastAnswer()
	if !ok {
		return text
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if parenthesize && v < 0 {
		s = "(" + s + ")"
	}
	return ansToken.ReplaceAllLiteralString(text, s)
}
