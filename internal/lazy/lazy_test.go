package lazy

import (
	"sync"
	"testing"
)

type node struct {
	name  string
	next  *node
	depth Cell[*node, int]
	calls int
}

const cycleDepth = -1

// chainDepth counts the links reachable from n. A link back into a node that
// is still computing yields cycleDepth.
func chainDepth(n *node) int {
	return n.depth.Value(n, func(n *node) int {
		n.calls++
		if n.next == nil {
			return 0
		}
		d := chainDepth(n.next)
		if d == cycleDepth {
			return cycleDepth
		}
		return d + 1
	}, cycleDepth)
}

func TestCell_ComputesOnce(t *testing.T) {
	c := &node{name: "c"}
	b := &node{name: "b", next: c}
	a := &node{name: "a", next: b}
	if got := chainDepth(a); got != 2 {
		t.Fatalf("depth(a) = %d, want 2", got)
	}
	for i := 0; i < 3; i++ {
		chainDepth(a)
		chainDepth(b)
	}
	if a.calls != 1 || b.calls != 1 || c.calls != 1 {
		t.Fatalf("compute ran more than once: a=%d b=%d c=%d", a.calls, b.calls, c.calls)
	}
	if a.depth.State() != Computed {
		t.Fatalf("state = %v, want computed", a.depth.State())
	}
}

func TestCell_ReentryReturnsCycleValue(t *testing.T) {
	var c Cell[string, string]
	var inner string
	got := c.Value("self", func(o string) string {
		inner = c.Value(o, func(string) string {
			t.Fatalf("nested compute must not run")
			return ""
		}, "<cycle>")
		if c.State() != InProgress {
			t.Fatalf("state during compute = %v", c.State())
		}
		return "resolved"
	}, "<cycle>")
	if inner != "<cycle>" {
		t.Fatalf("re-entrant call returned %q, want cycle value", inner)
	}
	if got != "resolved" {
		t.Fatalf("outer call returned %q, want the computed value", got)
	}
	if again := c.Value("self", nil, "<cycle>"); again != "resolved" {
		t.Fatalf("cached value = %q", again)
	}
}

func TestCell_MutualCycle(t *testing.T) {
	a := &node{name: "a"}
	b := &node{name: "b", next: a}
	a.next = b
	if got := chainDepth(a); got != cycleDepth {
		t.Fatalf("depth(a) = %d, want cycle", got)
	}
	if got := chainDepth(b); got != cycleDepth {
		t.Fatalf("depth(b) = %d, want cycle", got)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Fatalf("cycle recomputed: a=%d b=%d", a.calls, b.calls)
	}
}

func TestCell_TwoPass(t *testing.T) {
	var c Cell[int, string]
	var pass2, pass3 string
	got := c.ValueTwoPass(1, func(o int) string {
		pass2 = c.ValueTwoPass(o, nil, func(o int) string {
			if c.State() != InProgressSecondPass {
				t.Fatalf("state during onCycle = %v", c.State())
			}
			pass3 = c.ValueTwoPass(o, nil, nil, "unresolved")
			return "fallback"
		}, "unresolved")
		if c.State() != InProgress {
			t.Fatalf("state after onCycle = %v, want in-progress", c.State())
		}
		return "primary:" + pass2
	}, nil, "unresolved")
	if pass3 != "unresolved" {
		t.Fatalf("third entry = %q, want unresolved", pass3)
	}
	if pass2 != "fallback" {
		t.Fatalf("second entry = %q, want fallback", pass2)
	}
	if got != "primary:fallback" {
		t.Fatalf("outer = %q", got)
	}
}

func TestCell_PanicResetsState(t *testing.T) {
	var c Cell[int, int]
	func() {
		defer func() { _ = recover() }()
		c.Value(0, func(int) int { panic("boom") }, -1)
	}()
	if c.State() != Uncomputed {
		t.Fatalf("state after panic = %v", c.State())
	}
	if v := c.Value(0, func(int) int { return 7 }, -1); v != 7 {
		t.Fatalf("retry = %d, want 7", v)
	}
}

func TestCell_ConcurrentReadsAfterCompute(t *testing.T) {
	var c Cell[int, *int]
	first := c.Value(0, func(int) *int { v := 42; return &v }, nil)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := c.Value(0, func(int) *int { v := 0; return &v }, nil); got != first {
				t.Errorf("concurrent read observed a different value")
			}
		}()
	}
	wg.Wait()
}

func TestCell_OverlappingComputeSharesStoredValue(t *testing.T) {
	var c Cell[string, string]
	started := make(chan struct{})
	release := make(chan struct{})
	var first string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = c.Value("a", func(string) string {
			close(started)
			<-release
			return "slow"
		}, "<cycle>")
	}()
	<-started
	if c.State() != InProgress {
		t.Fatalf("state while another goroutine computes = %v", c.State())
	}
	second := c.Value("a", func(string) string { return "fast" }, "<cycle>")
	close(release)
	wg.Wait()
	if second != "fast" {
		t.Fatalf("concurrent caller got %q, want its own computed value", second)
	}
	if first != "fast" {
		t.Fatalf("slow computation returned %q, want the stored value", first)
	}
	if c.State() != Computed {
		t.Fatalf("state = %v, want computed", c.State())
	}
}

func TestCell_OverlappingTwoPassSkipsRecovery(t *testing.T) {
	var c Cell[int, string]
	started := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.ValueTwoPass(1, func(int) string {
			close(started)
			<-release
			return "primary"
		}, func(int) string { return "fallback" }, "unresolved")
	}()
	<-started
	got := c.ValueTwoPass(1, func(int) string { return "primary" }, func(int) string {
		t.Errorf("recovery pass ran for a caller that did not re-enter")
		return "fallback"
	}, "unresolved")
	close(release)
	wg.Wait()
	if got != "primary" {
		t.Fatalf("concurrent caller got %q, want primary", got)
	}
}

func TestCell_CrossGoroutineCycleStaysLocal(t *testing.T) {
	a := &node{name: "a"}
	b := &node{name: "b", next: a}
	a.next = b
	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				results[i] = chainDepthAtomic(a)
			} else {
				results[i] = chainDepthAtomic(b)
			}
		}()
	}
	wg.Wait()
	for i, r := range results {
		if r != cycleDepth {
			t.Fatalf("result %d = %d, want cycle", i, r)
		}
	}
}

// chainDepthAtomic is chainDepth without the call counter, which is not safe
// to bump from several goroutines.
func chainDepthAtomic(n *node) int {
	return n.depth.Value(n, func(n *node) int {
		if n.next == nil {
			return 0
		}
		d := chainDepthAtomic(n.next)
		if d == cycleDepth {
			return cycleDepth
		}
		return d + 1
	}, cycleDepth)
}
