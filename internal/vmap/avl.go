package vmap

// node is an immutable AVL tree node. Insert and remove copy the path from the
// root to the changed node and share every other subtree.
type node[K, V any] struct {
	key         K
	value       V
	left, right *node[K, V]
	height      int
}

func height[K, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}
	return n.height
}

func mk[K, V any](k K, v V, l, r *node[K, V]) *node[K, V] {
	return &node[K, V]{key: k, value: v, left: l, right: r, height: 1 + max(height(l), height(r))}
}

func balance[K, V any](k K, v V, l, r *node[K, V]) *node[K, V] {
	hl, hr := height(l), height(r)
	switch {
	case hl > hr+1:
		if height(l.left) >= height(l.right) {
			return mk(l.key, l.value, l.left, mk(k, v, l.right, r))
		}
		lr := l.right
		return mk(lr.key, lr.value, mk(l.key, l.value, l.left, lr.left), mk(k, v, lr.right, r))
	case hr > hl+1:
		if height(r.right) >= height(r.left) {
			return mk(r.key, r.value, mk(k, v, l, r.left), r.right)
		}
		rl := r.left
		return mk(rl.key, rl.value, mk(k, v, l, rl.left), mk(r.key, r.value, rl.right, r.right))
	}
	return mk(k, v, l, r)
}

func insert[K, V any](cmp func(a, b K) int, n *node[K, V], k K, v V) *node[K, V] {
	if n == nil {
		return mk[K, V](k, v, nil, nil)
	}
	switch c := cmp(k, n.key); {
	case c < 0:
		return balance(n.key, n.value, insert(cmp, n.left, k, v), n.right)
	case c > 0:
		return balance(n.key, n.value, n.left, insert(cmp, n.right, k, v))
	}
	return &node[K, V]{key: k, value: v, left: n.left, right: n.right, height: n.height}
}

func remove[K, V any](cmp func(a, b K) int, n *node[K, V], k K) (*node[K, V], bool) {
	if n == nil {
		return nil, false
	}
	switch c := cmp(k, n.key); {
	case c < 0:
		l, ok := remove(cmp, n.left, k)
		if !ok {
			return n, false
		}
		return balance(n.key, n.value, l, n.right), true
	case c > 0:
		r, ok := remove(cmp, n.right, k)
		if !ok {
			return n, false
		}
		return balance(n.key, n.value, n.left, r), true
	}
	if n.left == nil {
		return n.right, true
	}
	if n.right == nil {
		return n.left, true
	}
	m := n.right
	for m.left != nil {
		m = m.left
	}
	return balance(m.key, m.value, n.left, removeMin(n.right)), true
}

func removeMin[K, V any](n *node[K, V]) *node[K, V] {
	if n.left == nil {
		return n.right
	}
	return balance(n.key, n.value, removeMin(n.left), n.right)
}

func lookup[K, V any](cmp func(a, b K) int, n *node[K, V], k K) (V, bool) {
	for n != nil {
		switch c := cmp(k, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

// walk visits n in key order and reports whether iteration ran to completion.
func walk[K, V any](n *node[K, V], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, yield) && yield(n.key, n.value) && walk(n.right, yield)
}
