// Package history keeps append-only, in-memory result logs.
//
// Every entry is chained to its predecessor with a SHA-256 hash so the
// sequence can be re-verified; nothing is ever removed and nothing outlives
// the process.
package history

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded value together with its position in the chain.
type Entry[T any] struct {
	ID         string    `json:"id"`
	Seq        int       `json:"seq"`
	RecordedAt time.Time `json:"recordedAt"`
	Value      T         `json:"value"`
	PrevHash   string    `json:"prevHash"`
	Hash       string    `json:"hash"`
}

// Log is an ordered, append-only sequence of values.
type Log[T any] struct {
	mu      sync.RWMutex
	entries []Entry[T]
	now     func() time.Time
}

// New returns an empty log.
func New[T any]() *Log[T] {
	return &Log[T]{now: func() time.Time { return time.Now().UTC() }}
}

// Append records v after the current tail and returns the stored entry.
func (l *Log[T]) Append(v T) (Entry[T], error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := Entry[T]{
		ID:         uuid.NewString(),
		Seq:        len(l.entries) + 1,
		RecordedAt: l.now(),
		Value:      v,
	}
	if n := len(l.entries); n > 0 {
		entry.PrevHash = l.entries[n-1].Hash
	}
	hash, err := hashEntry(entry)
	if err != nil {
		return Entry[T]{}, fmt.Errorf("hash entry: %w", err)
	}
	entry.Hash = hash
	l.entries = append(l.entries, entry)
	return entry, nil
}

// List returns a copy of all entries, oldest first.
func (l *Log[T]) List() []Entry[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Entry[T]{}, l.entries...)
}

// Tail returns a copy of the last n entries, oldest first. n <= 0 returns everything.
func (l *Log[T]) Tail(n int) []Entry[T] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	start := 0
	if n > 0 && n < len(l.entries) {
		start = len(l.entries) - n
	}
	return append([]Entry[T]{}, l.entries[start:]...)
}

// Verify recomputes the hash chain and reports the first broken link.
func (l *Log[T]) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	prev := ""
	for i, e := range l.entries {
		if e.Seq != i+1 {
			return &ChainError{Seq: e.Seq, Reason: fmt.Sprintf("expected seq %d", i+1)}
		}
		if e.PrevHash != prev {
			return &ChainError{Seq: e.Seq, Reason: "prevHash does not match predecessor"}
		}
		want, err := hashEntry(e)
		if err != nil {
			return fmt.Errorf("hash entry %d: %w", e.Seq, err)
		}
		if e.Hash != want {
			return &ChainError{Seq: e.Seq, Reason: "hash mismatch"}
		}
		prev = e.Hash
	}
	return nil
}

// ChainError reports a tampered or out-of-order entry.
type ChainError struct {
	Seq    int
	Reason string
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("history chain broken at entry %d: %s", e.Seq, e.Reason)
}

func hashEntry[T any](e Entry[T]) (string, error) {
	value, err := json.Marshal(e.Value)
	if err != nil {
		return "", err
	}
	payload := fmt.Sprintf("%s|%d|%s|%s|%s", e.ID, e.Seq, e.RecordedAt.UTC().Format(time.RFC3339Nano), value, e.PrevHash)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:]), nil
}
