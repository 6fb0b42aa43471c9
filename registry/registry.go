// Package registry keeps an explicit hierarchy of named kinds, each holding a
// value, and answers which kinds descend from a given one.
//
// Kinds are registered up front, usually from a constructor, with the name
// of their parent. Parents must be registered before their children.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	ErrEmptyName     = errors.New("kind name is empty")
	ErrDuplicateName = errors.New("kind already registered")
	ErrUnknownParent = errors.New("parent kind not registered")
	ErrUnknownKind   = errors.New("kind not registered")
)

// Entry is one registered kind.
type Entry[T any] struct {
	name   string
	parent string
	value  T
}

func (e Entry[T]) Name() string   { return e.name }
func (e Entry[T]) Parent() string { return e.parent }
func (e Entry[T]) Value() T       { return e.value }

// Registry is safe for concurrent use.
type Registry[T any] struct {
	mu       sync.RWMutex
	entries  map[string]Entry[T]
	children map[string][]string
	order    []string
}

func New[T any]() *Registry[T] {
	return &Registry[T]{
		entries:  make(map[string]Entry[T]),
		children: make(map[string][]string),
	}
}

// Register adds name under parent. An empty parent makes name a root.
func (r *Registry[T]) Register(name, parent string, v T) error {
	if name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%s: %w", name, ErrDuplicateName)
	}
	if parent != "" {
		if _, ok := r.entries[parent]; !ok {
			return fmt.Errorf("%s (parent of %s): %w", parent, name, ErrUnknownParent)
		}
		r.children[parent] = append(r.children[parent], name)
	}
	r.entries[name] = Entry[T]{name: name, parent: parent, value: v}
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (r *Registry[T]) MustRegister(name, parent string, v T) {
	if err := r.Register(name, parent, v); err != nil {
		panic(err)
	}
}

// Entries returns every kind in registration order.
func (r *Registry[T]) Entries() []Entry[T] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry[T], 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.entries[n])
	}
	return out
}

// AllSubtypes returns every direct and indirect descendant of name, each
// once, sorted by name. name itself is not included.
func (r *Registry[T]) AllSubtypes(name string) ([]Entry[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.entries[name]; !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownKind)
	}
	seen := make(map[string]struct{})
	r.collect(name, seen)
	return r.sorted(seen), nil
}

// Leaves returns the descendants of name that have no children of their own.
func (r *Registry[T]) Leaves(name string) ([]Entry[T], error) {
	subs, err := r.AllSubtypes(name)
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.DeleteFunc(subs, func(e Entry[T]) bool {
		return len(r.children[e.name]) > 0
	}), nil
}

// IsSubtype reports whether name descends from ancestor.
func (r *Registry[T]) IsSubtype(name, ancestor string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	for ok && e.parent != "" {
		if e.parent == ancestor {
			return true
		}
		e, ok = r.entries[e.parent]
	}
	return false
}

func (r *Registry[T]) collect(name string, seen map[string]struct{}) {
	for _, c := range r.children[name] {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		r.collect(c, seen)
	}
}

func (r *Registry[T]) sorted(set map[string]struct{}) []Entry[T] {
	out := make([]Entry[T], 0, len(set))
	for n := range set {
		out = append(out, r.entries[n])
	}
	slices.SortFunc(out, func(a, b Entry[T]) int {
		return strings.Compare(a.name, b.name)
	})
	return out
}
