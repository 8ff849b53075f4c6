package history

import (
	"errors"
	"testing"
)

type sample struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

func TestAppendKeepsInsertionOrder(t *testing.T) {
	log := New[sample]()
	for i, name := range []string{"a", "b", "c"} {
		entry, err := log.Append(sample{Name: name, Total: float64(i)})
		if err != nil {
			t.Fatalf("Append(%s) error = %v", name, err)
		}
		if entry.Seq != i+1 {
			t.Errorf("Seq = %d, want %d", entry.Seq, i+1)
		}
		if entry.ID == "" {
			t.Errorf("entry %s has no ID", name)
		}
	}

	got := log.List()
	if len(got) != 3 {
		t.Fatalf("len(List()) = %d, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Value.Name != want {
			t.Errorf("List()[%d] = %s, want %s", i, got[i].Value.Name, want)
		}
	}
	if got[1].PrevHash != got[0].Hash {
		t.Errorf("entry 2 not chained to entry 1")
	}
	if got[0].PrevHash != "" {
		t.Errorf("first entry PrevHash = %q, want empty", got[0].PrevHash)
	}
}

func TestListReturnsCopy(t *testing.T) {
	log := New[sample]()
	if _, err := log.Append(sample{Name: "a"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	first := log.List()
	first[0].Value.Name = "mutated"

	second := log.List()
	if second[0].Value.Name != "a" {
		t.Fatalf("List() leaked internal storage: %s", second[0].Value.Name)
	}
}

func TestListIsIdempotent(t *testing.T) {
	log := New[sample]()
	_, _ = log.Append(sample{Name: "a"})
	_, _ = log.Append(sample{Name: "b"})

	first, second := log.List(), log.List()
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Hash != second[i].Hash {
			t.Errorf("entry %d differs between calls", i)
		}
	}
}

func TestTail(t *testing.T) {
	log := New[sample]()
	for _, name := range []string{"a", "b", "c", "d"} {
		_, _ = log.Append(sample{Name: name})
	}

	tests := []struct {
		n     int
		first string
		count int
	}{
		{n: 0, first: "a", count: 4},
		{n: 2, first: "c", count: 2},
		{n: 10, first: "a", count: 4},
		{n: -1, first: "a", count: 4},
	}
	for _, tt := range tests {
		got := log.Tail(tt.n)
		if len(got) != tt.count {
			t.Errorf("Tail(%d) len = %d, want %d", tt.n, len(got), tt.count)
			continue
		}
		if got[0].Value.Name != tt.first {
			t.Errorf("Tail(%d)[0] = %s, want %s", tt.n, got[0].Value.Name, tt.first)
		}
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	log := New[sample]()
	for _, name := range []string{"a", "b", "c"} {
		_, _ = log.Append(sample{Name: name, Total: 10})
	}
	if err := log.Verify(); err != nil {
		t.Fatalf("Verify() on intact log error = %v", err)
	}

	log.mu.Lock()
	log.entries[1].Value.Total = 99
	log.mu.Unlock()

	err := log.Verify()
	var chainErr *ChainError
	if !errors.As(err, &chainErr) {
		t.Fatalf("Verify() error = %v, want *ChainError", err)
	}
	if chainErr.Seq != 2 {
		t.Errorf("broken seq = %d, want 2", chainErr.Seq)
	}
}
