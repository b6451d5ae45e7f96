// Package lazy provides memoization cells for derived properties of model
// elements that may reference each other circularly. A computation that
// re-enters its own cell gets a caller-chosen cycle value instead of
// recursing.
//
// Re-entry is tracked per goroutine. A goroutine that finds another one
// computing the same cell computes the value itself rather than waiting, so
// concurrent first use may run compute more than once. Only the first result
// is stored and every caller returns the stored value. A compute that panics
// leaves the cell uncomputed so the next call retries.
package lazy

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// State is the lifecycle state of a Cell.
type State uint32

const (
	Uncomputed State = iota
	InProgress
	InProgressSecondPass
	Computed
)

func (s State) String() string {
	switch s {
	case Uncomputed:
		return "uncomputed"
	case InProgress:
		return "in-progress"
	case InProgressSecondPass:
		return "in-progress-second-pass"
	case Computed:
		return "computed"
	}
	return "unknown"
}

// frame records one goroutine that is inside compute (or onCycle) for a cell.
type frame struct {
	g    uint64
	pass State
}

// Cell caches one derived property of one owner. The zero Cell is ready to
// use and must not be copied after first use.
type Cell[O, V any] struct {
	mu     sync.Mutex
	active []frame
	value  atomic.Pointer[V]
}

// State reports the current state. While the value is being computed it
// reports the furthest pass any goroutine has reached.
func (c *Cell[O, V]) State() State {
	if c.value.Load() != nil {
		return Computed
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Uncomputed
	for _, f := range c.active {
		s = max(s, f.pass)
	}
	return s
}

// Value returns the cached value, computing it with compute on first use.
// A call that re-enters the cell from inside its own compute returns cycle.
func (c *Cell[O, V]) Value(owner O, compute func(O) V, cycle V) V {
	if p := c.value.Load(); p != nil {
		return *p
	}
	g := goroutineID()
	if _, fresh := c.enter(g); !fresh {
		return cycle
	}
	return c.run(g, owner, compute)
}

// ValueTwoPass is Value with a recovery pass. The first re-entrant call runs
// onCycle and returns its result without caching it; a call that re-enters
// the cell again while onCycle is running returns unresolved.
func (c *Cell[O, V]) ValueTwoPass(owner O, compute, onCycle func(O) V, unresolved V) V {
	if p := c.value.Load(); p != nil {
		return *p
	}
	g := goroutineID()
	pass, fresh := c.enter(g)
	switch {
	case fresh:
		return c.run(g, owner, compute)
	case pass == InProgress:
		c.setPass(g, InProgressSecondPass)
		defer c.setPass(g, InProgress)
		return onCycle(owner)
	}
	return unresolved
}

func (c *Cell[O, V]) run(g uint64, owner O, compute func(O) V) V {
	defer c.leave(g)
	// Another goroutine may have stored the value since the caller looked.
	if p := c.value.Load(); p != nil {
		return *p
	}
	v := compute(owner)
	if !c.value.CompareAndSwap(nil, &v) {
		v = *c.value.Load()
	}
	return v
}

// enter registers g as computing the cell. It reports false, together with
// the pass g is in, when g is already inside the cell.
func (c *Cell[O, V]) enter(g uint64) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range c.active {
		if f.g == g {
			return f.pass, false
		}
	}
	c.active = append(c.active, frame{g: g, pass: InProgress})
	return InProgress, true
}

func (c *Cell[O, V]) leave(g uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, f := range c.active {
		if f.g == g {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

func (c *Cell[O, V]) setPass(g uint64, pass State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.active {
		if c.active[i].g == g {
			c.active[i].pass = pass
			return
		}
	}
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID returns the id of the calling goroutine, read from the first
// line of its stack trace ("goroutine 18 [running]:").
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}
