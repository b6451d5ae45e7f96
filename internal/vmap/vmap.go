package vmap

// Package vmap implements a persistent (versioning) associative map used for
// the growing name tables of a model under construction. Every Set and Remove
// returns a new Map; a Map that has been handed out never changes, so readers
// holding an older version need no synchronization.
//
// The representation is chosen by size: empty, one entry, two entries, a
// height-bounded AVL tree, and finally a fixed array of hash buckets, each of
// which holds its own AVL tree. Switching between them is not observable
// through the API.

import (
	"errors"
	"hash/fnv"
	"iter"
	"strings"
)

// ErrKeyNotFound is returned by Get and Remove when the key is absent.
var ErrKeyNotFound = errors.New("vmap: key not found")

const (
	maxTreeHeight = 10
	bucketCount   = 17
)

type keyOps[K any] struct {
	cmp  func(a, b K) int
	hash func(K) uint64
}

// Map is an immutable key/value map. The zero Map behaves as an empty map for
// reads, but must be created with New or NewString before Set is called.
type Map[K, V any] struct {
	ops *keyOps[K]
	rep rep[K, V]
}

// New returns an empty Map ordered by cmp. hash is used only once the map
// grows past the tree representation, and must be consistent with cmp
// (cmp(a, b) == 0 implies hash(a) == hash(b)).
func New[K, V any](cmp func(a, b K) int, hash func(K) uint64) Map[K, V] {
	if cmp == nil || hash == nil {
		panic("vmap: New requires non-nil cmp and hash functions")
	}
	return Map[K, V]{ops: &keyOps[K]{cmp: cmp, hash: hash}, rep: emptyRep[K, V]{}}
}

// NewString returns an empty string-keyed Map.
func NewString[V any]() Map[string, V] {
	return New[string, V](strings.Compare, HashString)
}

// HashString is the FNV-1a hash of s.
func HashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func (m Map[K, V]) current() rep[K, V] {
	if m.rep == nil {
		return emptyRep[K, V]{}
	}
	return m.rep
}

// Set returns a new Map with k bound to v. m itself is unchanged.
func (m Map[K, V]) Set(k K, v V) Map[K, V] {
	if m.ops == nil {
		panic("vmap: Set on uninitialized Map; create it with New or NewString")
	}
	return Map[K, V]{ops: m.ops, rep: m.current().set(m.ops, k, v)}
}

// Remove returns a new Map without k, or ErrKeyNotFound when k is absent.
func (m Map[K, V]) Remove(k K) (Map[K, V], error) {
	if m.ops == nil {
		return m, ErrKeyNotFound
	}
	r, ok := m.current().remove(m.ops, k)
	if !ok {
		return m, ErrKeyNotFound
	}
	return Map[K, V]{ops: m.ops, rep: r}, nil
}

// TryGet returns the value bound to k.
func (m Map[K, V]) TryGet(k K) (V, bool) {
	if m.ops == nil {
		var zero V
		return zero, false
	}
	return m.current().get(m.ops, k)
}

// Get returns the value bound to k, or ErrKeyNotFound.
func (m Map[K, V]) Get(k K) (V, error) {
	v, ok := m.TryGet(k)
	if !ok {
		return v, ErrKeyNotFound
	}
	return v, nil
}

// Len reports the number of entries.
func (m Map[K, V]) Len() int { return m.current().size() }

// All iterates over every entry. Entries are in key order for maps of up to
// the tree representation; larger maps iterate bucket by bucket.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.current().each(yield)
	}
}

// Keys returns the keys in iteration order.
func (m Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// rep is one of the size-specific representations. Implementations never
// mutate themselves; set and remove return fresh values.
type rep[K, V any] interface {
	set(o *keyOps[K], k K, v V) rep[K, V]
	remove(o *keyOps[K], k K) (rep[K, V], bool)
	get(o *keyOps[K], k K) (V, bool)
	size() int
	each(yield func(K, V) bool) bool
	kind() string
}

type emptyRep[K, V any] struct{}

func (emptyRep[K, V]) set(_ *keyOps[K], k K, v V) rep[K, V] { return &oneRep[K, V]{k: k, v: v} }

func (emptyRep[K, V]) remove(*keyOps[K], K) (rep[K, V], bool) { return nil, false }

func (emptyRep[K, V]) get(*keyOps[K], K) (V, bool) {
	var zero V
	return zero, false
}

func (emptyRep[K, V]) size() int                 { return 0 }
func (emptyRep[K, V]) each(func(K, V) bool) bool { return true }
func (emptyRep[K, V]) kind() string              { return "empty" }

type oneRep[K, V any] struct {
	k K
	v V
}

func (r *oneRep[K, V]) set(o *keyOps[K], k K, v V) rep[K, V] {
	if o.cmp(k, r.k) == 0 {
		return &oneRep[K, V]{k: k, v: v}
	}
	return &twoRep[K, V]{k1: r.k, v1: r.v, k2: k, v2: v}
}

func (r *oneRep[K, V]) remove(o *keyOps[K], k K) (rep[K, V], bool) {
	if o.cmp(k, r.k) == 0 {
		return emptyRep[K, V]{}, true
	}
	return r, false
}

func (r *oneRep[K, V]) get(o *keyOps[K], k K) (V, bool) {
	if o.cmp(k, r.k) == 0 {
		return r.v, true
	}
	var zero V
	return zero, false
}

func (r *oneRep[K, V]) size() int { return 1 }

func (r *oneRep[K, V]) each(yield func(K, V) bool) bool { return yield(r.k, r.v) }

func (r *oneRep[K, V]) kind() string { return "one" }

type twoRep[K, V any] struct {
	k1 K
	v1 V
	k2 K
	v2 V
}

func (r *twoRep[K, V]) set(o *keyOps[K], k K, v V) rep[K, V] {
	switch {
	case o.cmp(k, r.k1) == 0:
		return &twoRep[K, V]{k1: k, v1: v, k2: r.k2, v2: r.v2}
	case o.cmp(k, r.k2) == 0:
		return &twoRep[K, V]{k1: r.k1, v1: r.v1, k2: k, v2: v}
	}
	var root *node[K, V]
	root = insert(o.cmp, root, r.k1, r.v1)
	root = insert(o.cmp, root, r.k2, r.v2)
	root = insert(o.cmp, root, k, v)
	return &treeRep[K, V]{root: root, n: 3}
}

func (r *twoRep[K, V]) remove(o *keyOps[K], k K) (rep[K, V], bool) {
	switch {
	case o.cmp(k, r.k1) == 0:
		return &oneRep[K, V]{k: r.k2, v: r.v2}, true
	case o.cmp(k, r.k2) == 0:
		return &oneRep[K, V]{k: r.k1, v: r.v1}, true
	}
	return r, false
}

func (r *twoRep[K, V]) get(o *keyOps[K], k K) (V, bool) {
	switch {
	case o.cmp(k, r.k1) == 0:
		return r.v1, true
	case o.cmp(k, r.k2) == 0:
		return r.v2, true
	}
	var zero V
	return zero, false
}

func (r *twoRep[K, V]) size() int { return 2 }

func (r *twoRep[K, V]) each(yield func(K, V) bool) bool {
	return yield(r.k1, r.v1) && yield(r.k2, r.v2)
}

func (r *twoRep[K, V]) kind() string { return "two" }

type treeRep[K, V any] struct {
	root *node[K, V]
	n    int
}

func (r *treeRep[K, V]) set(o *keyOps[K], k K, v V) rep[K, V] {
	n := r.n
	if _, ok := lookup(o.cmp, r.root, k); !ok {
		n++
	}
	root := insert(o.cmp, r.root, k, v)
	if height(root) <= maxTreeHeight {
		return &treeRep[K, V]{root: root, n: n}
	}
	h := &hashRep[K, V]{}
	walk(root, func(k K, v V) bool {
		i := o.bucket(k)
		h.buckets[i] = insert(o.cmp, h.buckets[i], k, v)
		return true
	})
	h.n = n
	return h
}

func (r *treeRep[K, V]) remove(o *keyOps[K], k K) (rep[K, V], bool) {
	root, ok := remove(o.cmp, r.root, k)
	if !ok {
		return r, false
	}
	if r.n-1 == 2 {
		var keys []K
		var vals []V
		walk(root, func(k K, v V) bool {
			keys = append(keys, k)
			vals = append(vals, v)
			return true
		})
		return &twoRep[K, V]{k1: keys[0], v1: vals[0], k2: keys[1], v2: vals[1]}, true
	}
	return &treeRep[K, V]{root: root, n: r.n - 1}, true
}

func (r *treeRep[K, V]) get(o *keyOps[K], k K) (V, bool) { return lookup(o.cmp, r.root, k) }

func (r *treeRep[K, V]) size() int { return r.n }

func (r *treeRep[K, V]) each(yield func(K, V) bool) bool { return walk(r.root, yield) }

func (r *treeRep[K, V]) kind() string { return "tree" }

type hashRep[K, V any] struct {
	buckets [bucketCount]*node[K, V]
	n       int
}

func (o *keyOps[K]) bucket(k K) int { return int(o.hash(k) % bucketCount) }

func (r *hashRep[K, V]) set(o *keyOps[K], k K, v V) rep[K, V] {
	i := o.bucket(k)
	out := &hashRep[K, V]{buckets: r.buckets, n: r.n}
	if _, ok := lookup(o.cmp, r.buckets[i], k); !ok {
		out.n++
	}
	out.buckets[i] = insert(o.cmp, r.buckets[i], k, v)
	return out
}

func (r *hashRep[K, V]) remove(o *keyOps[K], k K) (rep[K, V], bool) {
	i := o.bucket(k)
	b, ok := remove(o.cmp, r.buckets[i], k)
	if !ok {
		return r, false
	}
	out := &hashRep[K, V]{buckets: r.buckets, n: r.n - 1}
	out.buckets[i] = b
	return out, true
}

func (r *hashRep[K, V]) get(o *keyOps[K], k K) (V, bool) {
	return lookup(o.cmp, r.buckets[o.bucket(k)], k)
}

func (r *hashRep[K, V]) size() int { return r.n }

func (r *hashRep[K, V]) each(yield func(K, V) bool) bool {
	for _, b := range r.buckets {
		if !walk(b, yield) {
			return false
		}
	}
	return true
}

func (r *hashRep[K, V]) kind() string { return "hash" }
