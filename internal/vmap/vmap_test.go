package vmap

import (
	"cmp"
	"errors"
	"fmt"
	"strconv"
	"testing"
)

func kindOf[K, V any](m Map[K, V]) string { return m.current().kind() }

// TestMap_MatchesReferenceMap drives the same Set sequence into a Map and a Go
// map and compares every lookup at the sizes where the representation changes.
func TestMap_MatchesReferenceMap(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 12, 50, 2000} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			m := NewString[int]()
			ref := map[string]int{}
			for i := 0; i < n; i++ {
				k := fmt.Sprintf("Ns.Type%03d", (i*7919)%n)
				m = m.Set(k, i)
				ref[k] = i
			}
			if m.Len() != len(ref) {
				t.Fatalf("len mismatch: got %d want %d", m.Len(), len(ref))
			}
			for k, want := range ref {
				got, ok := m.TryGet(k)
				if !ok || got != want {
					t.Fatalf("TryGet(%q) = %d,%v want %d", k, got, ok, want)
				}
			}
			if _, ok := m.TryGet("Ns.Missing"); ok {
				t.Fatalf("unexpected hit for missing key")
			}
			seen := 0
			for k, v := range m.All() {
				if ref[k] != v {
					t.Fatalf("All yielded %q=%d, want %d", k, v, ref[k])
				}
				seen++
			}
			if seen != len(ref) {
				t.Fatalf("All yielded %d entries, want %d", seen, len(ref))
			}
		})
	}
}

func TestMap_RepresentationTransitions(t *testing.T) {
	m := New[int, string](cmp.Compare[int], func(k int) uint64 { return uint64(k) })
	want := []string{"empty", "one", "two", "tree"}
	for i := 0; i < 3; i++ {
		if got := kindOf(m); got != want[i] {
			t.Fatalf("after %d sets: kind %q want %q", i, got, want[i])
		}
		m = m.Set(i, strconv.Itoa(i))
	}
	if got := kindOf(m); got != "tree" {
		t.Fatalf("after 3 sets: kind %q want tree", got)
	}
	for i := 3; kindOf(m) == "tree"; i++ {
		if i > 5000 {
			t.Fatalf("tree never promoted to hash")
		}
		m = m.Set(i, strconv.Itoa(i))
	}
	if got := kindOf(m); got != "hash" {
		t.Fatalf("kind %q want hash", got)
	}
	for i := 0; i < m.Len(); i++ {
		if v, err := m.Get(i); err != nil || v != strconv.Itoa(i) {
			t.Fatalf("Get(%d) = %q,%v", i, v, err)
		}
	}
}

func TestMap_SetDoesNotDisturbOldVersions(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 12, 50, 600, 1500} {
		base := NewString[int]()
		for i := 0; i < n; i++ {
			base = base.Set("k"+strconv.Itoa(i), i)
		}
		next := base.Set("k0", -1).Set("extra", 99)
		if _, ok := base.TryGet("extra"); ok {
			t.Fatalf("n=%d: old version observed a later Set", n)
		}
		if n > 0 {
			if v, _ := base.TryGet("k0"); v != 0 {
				t.Fatalf("n=%d: old version k0=%d, want 0", n, v)
			}
			if v, _ := next.TryGet("k0"); v != -1 {
				t.Fatalf("n=%d: new version k0=%d, want -1", n, v)
			}
		}
		for i := 1; i < n; i++ {
			k := "k" + strconv.Itoa(i)
			a, _ := base.TryGet(k)
			b, _ := next.TryGet(k)
			if a != b {
				t.Fatalf("n=%d: %s differs between versions (%d vs %d)", n, k, a, b)
			}
		}
		if base.Len() != n {
			t.Fatalf("n=%d: old version length changed to %d", n, base.Len())
		}
	}
}

func TestMap_Remove(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 12, 50, 600, 1500} {
		m := NewString[int]()
		for i := 0; i < n; i++ {
			m = m.Set("k"+strconv.Itoa(i), i)
		}
		before := m
		for i := 0; i < n; i++ {
			k := "k" + strconv.Itoa(i)
			next, err := m.Remove(k)
			if err != nil {
				t.Fatalf("n=%d: Remove(%q): %v", n, k, err)
			}
			if _, ok := next.TryGet(k); ok {
				t.Fatalf("n=%d: %q still present after Remove", n, k)
			}
			if _, ok := m.TryGet(k); !ok {
				t.Fatalf("n=%d: Remove mutated the previous version", n)
			}
			m = next
			for j := i + 1; j < n; j++ {
				if v, ok := m.TryGet("k" + strconv.Itoa(j)); !ok || v != j {
					t.Fatalf("n=%d: lost k%d after removing %q", n, j, k)
				}
			}
		}
		if m.Len() != 0 {
			t.Fatalf("n=%d: expected empty map, len=%d", n, m.Len())
		}
		if before.Len() != n {
			t.Fatalf("n=%d: original length changed", n)
		}
	}
}

func TestMap_MissingKey(t *testing.T) {
	m := NewString[int]().Set("a", 1)
	if _, err := m.Get("b"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Get: expected ErrKeyNotFound, got %v", err)
	}
	if _, err := m.Remove("b"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("Remove: expected ErrKeyNotFound, got %v", err)
	}
	var zero Map[string, int]
	if _, ok := zero.TryGet("a"); ok {
		t.Fatalf("zero map reported a hit")
	}
	if zero.Len() != 0 {
		t.Fatalf("zero map len = %d", zero.Len())
	}
}

func TestMap_TreeStaysBalanced(t *testing.T) {
	m := New[int, int](cmp.Compare[int], func(k int) uint64 { return uint64(k) })
	// Ascending inserts are the worst case for an unbalanced tree.
	for i := 0; i < 100; i++ {
		m = m.Set(i, i)
	}
	tr, ok := m.current().(*treeRep[int, int])
	if !ok {
		t.Fatalf("expected tree representation for 100 entries, got %s", kindOf(m))
	}
	if h := height(tr.root); h > 8 {
		t.Fatalf("tree height %d too large for 100 entries", h)
	}
	var check func(n *node[int, int]) int
	check = func(n *node[int, int]) int {
		if n == nil {
			return 0
		}
		l, r := check(n.left), check(n.right)
		if l-r > 1 || r-l > 1 {
			t.Fatalf("unbalanced node %d: %d vs %d", n.key, l, r)
		}
		if n.height != 1+max(l, r) {
			t.Fatalf("stale height at %d", n.key)
		}
		return n.height
	}
	check(tr.root)
}
