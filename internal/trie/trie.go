// Package trie implements the prefix index used to resolve player ids
// from partial input. A lookup succeeds when the prefix identifies
// exactly one inserted id; exact full-id matches are privileged and
// resolve even when the id is also a prefix of other surviving ids.
package trie

import "errors"

// MaxIDLen is the longest id the index accepts.
const MaxIDLen = 14

var (
	// ErrInvalidID is returned for empty or over-long ids.
	ErrInvalidID = errors.New("invalid id")
	// ErrDuplicateID is returned when inserting an id that already exists.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrNotFound is returned when no inserted id matches the prefix.
	ErrNotFound = errors.New("no id matches prefix")
	// ErrAmbiguous is returned when more than one inserted id matches.
	ErrAmbiguous = errors.New("prefix is ambiguous")
)

// Index maps ids to values and resolves any unambiguous prefix of an
// inserted id back to its value. The zero value is not usable; use New.
type Index[V any] struct {
	root *node[V]
}

type node[V any] struct {
	children map[byte]*node[V]
	count    int // ids stored in this subtree
	leaf     bool
	value    V
}

// New returns an empty index.
func New[V any]() *Index[V] {
	return &Index[V]{root: newNode[V]()}
}

func newNode[V any]() *node[V] {
	return &node[V]{children: make(map[byte]*node[V])}
}

// Len returns the number of ids stored.
func (ix *Index[V]) Len() int {
	return ix.root.count
}

// Insert registers id so that every non-empty prefix of it can reach
// value. It fails without mutating the index if the id is empty, longer
// than MaxIDLen, or already present.
func (ix *Index[V]) Insert(id string, value V) error {
	if len(id) == 0 || len(id) > MaxIDLen {
		return ErrInvalidID
	}
	if n := ix.descend(id); n != nil && n.leaf {
		return ErrDuplicateID
	}
	n := ix.root
	n.count++
	for i := 0; i < len(id); i++ {
		child, ok := n.children[id[i]]
		if !ok {
			child = newNode[V]()
			n.children[id[i]] = child
		}
		child.count++
		n = child
	}
	n.leaf = true
	n.value = value
	return nil
}

// Find resolves prefix to the value of the unique id it identifies.
func (ix *Index[V]) Find(prefix string) (V, error) {
	_, v, err := ix.resolve(prefix)
	return v, err
}

// Delete resolves prefix the same way Find does, removes the mapping,
// prunes now-unreachable nodes, and returns the removed id.
func (ix *Index[V]) Delete(prefix string) (string, error) {
	id, _, err := ix.resolve(prefix)
	if err != nil {
		return "", err
	}
	n := ix.root
	n.count--
	for i := 0; i < len(id); i++ {
		child := n.children[id[i]]
		child.count--
		if child.count == 0 {
			delete(n.children, id[i])
			return id, nil
		}
		n = child
	}
	var zero V
	n.leaf = false
	n.value = zero
	return id, nil
}

// resolve maps a prefix to the unique id it identifies and that id's value.
func (ix *Index[V]) resolve(prefix string) (string, V, error) {
	var zero V
	if prefix == "" {
		return "", zero, ErrInvalidID
	}
	n := ix.descend(prefix)
	if n == nil {
		return "", zero, ErrNotFound
	}
	if n.leaf {
		// Exact match wins even when other ids share the prefix.
		return prefix, n.value, nil
	}
	if n.count > 1 {
		return "", zero, ErrAmbiguous
	}
	id := prefix
	for !n.leaf {
		for b, child := range n.children {
			id += string(b)
			n = child
			break
		}
	}
	return id, n.value, nil
}

func (ix *Index[V]) descend(prefix string) *node[V] {
	n := ix.root
	for i := 0; i < len(prefix); i++ {
		child, ok := n.children[prefix[i]]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}
