package domain

import (
	"slices"

	"github.com/bookswapapp/bookswap-server/internal/errors"
)

// AddRule is an extra invariant checked before an item joins a Collection.
// It sees the current items and the candidate, and returns the violation
// that should abort the add, or nil.
type AddRule[T any] func(items []T, candidate T) *errors.Error

// ImmutableRule guards identity-defining fields on Update. It compares the
// stored item with its replacement and returns a violation if the update
// tries to change a field that is fixed at creation time.
type ImmutableRule[T any] func(existing, updated T) *errors.Error

// Collection is a bounded, uniqueness-enforcing set of child items owned by
// an aggregate. Every aggregate-owned list in this package (wishlist,
// meetups, timeline, reviews, ...) is one of these with a different policy:
// a key extractor, an optional capacity, and optional extra invariants.
//
// Mutators short-circuit on the first violation and never panic for
// expected domain failures. The collection is not internally synchronized;
// the caller holds the single-writer rule per aggregate.
type Collection[T any] struct {
	label     string
	key       func(T) string
	maxSize   int // 0 means unbounded
	maxMsg    string
	addRules  []AddRule[T]
	immutable ImmutableRule[T]
	items     []T
}

// NewCollection creates an empty collection identified by label (used in
// default error messages) with the given key extractor.
func NewCollection[T any](label string, key func(T) string) Collection[T] {
	return Collection[T]{label: label, key: key}
}

// WithCap bounds the collection to n items. msg is the conflict message
// reported when the cap is hit.
func (c Collection[T]) WithCap(n int, msg string) Collection[T] {
	c.maxSize = n
	c.maxMsg = msg
	return c
}

// WithAddRule appends an extra invariant checked on Add and Update.
func (c Collection[T]) WithAddRule(rule AddRule[T]) Collection[T] {
	c.addRules = append(c.addRules, rule)
	return c
}

// WithImmutable sets the identity-field guard applied on Update.
func (c Collection[T]) WithImmutable(rule ImmutableRule[T]) Collection[T] {
	c.immutable = rule
	return c
}

// Add appends item. It fails with a conflict if an item with the same key
// exists, if the collection is at capacity, or if an extra invariant
// rejects the candidate. Insertion order is preserved.
func (c *Collection[T]) Add(item T) *errors.Error {
	if c.Contains(c.key(item)) {
		return errors.Conflictf("%s already exists - duplicate", c.label)
	}
	if c.maxSize > 0 && len(c.items) >= c.maxSize {
		return errors.Conflict(c.maxMsg)
	}
	for _, rule := range c.addRules {
		if err := rule(c.items, item); err != nil {
			return err
		}
	}
	c.items = append(c.items, item)
	return nil
}

// Remove deletes exactly one item with the given key, or fails not-found.
func (c *Collection[T]) Remove(key string) *errors.Error {
	for i, it := range c.items {
		if c.key(it) == key {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundf("%s not found", c.label)
}

// Update replaces the item sharing updated's key, preserving its position.
// It fails not-found if no such item exists, and rejects updates that touch
// identity-defining fields or break an add invariant against the remaining
// items.
func (c *Collection[T]) Update(updated T) *errors.Error {
	idx := c.indexOf(c.key(updated))
	if idx < 0 {
		return errors.NotFoundf("%s not found", c.label)
	}
	if c.immutable != nil {
		if err := c.immutable(c.items[idx], updated); err != nil {
			return err
		}
	}
	// Re-check extra invariants against every other item, so an update
	// cannot smuggle in a state Add would have rejected.
	rest := make([]T, 0, len(c.items)-1)
	rest = append(rest, c.items[:idx]...)
	rest = append(rest, c.items[idx+1:]...)
	for _, rule := range c.addRules {
		if err := rule(rest, updated); err != nil {
			return err
		}
	}
	c.items[idx] = updated
	return nil
}

// ReplaceAll swaps the whole content for the distinct-by-key union of
// newItems, dropping later duplicates. Capacity and extra invariants are
// not re-run; only Genres uses this.
func (c *Collection[T]) ReplaceAll(newItems []T) {
	distinct := make([]T, 0, len(newItems))
	seen := make(map[string]bool, len(newItems))
	for _, it := range newItems {
		k := c.key(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		distinct = append(distinct, it)
	}
	c.items = distinct
}

// Load installs items verbatim without running invariants. Reconstitution
// from storage uses this; stored data is valid by construction.
func (c *Collection[T]) Load(items []T) {
	c.items = slices.Clone(items)
}

// Items returns a copy of the backing slice in insertion order.
func (c *Collection[T]) Items() []T {
	return slices.Clone(c.items)
}

// Get returns the item with the given key.
func (c *Collection[T]) Get(key string) (T, bool) {
	if idx := c.indexOf(key); idx >= 0 {
		return c.items[idx], true
	}
	var zero T
	return zero, false
}

// Contains reports whether an item with the given key exists.
func (c *Collection[T]) Contains(key string) bool {
	return c.indexOf(key) >= 0
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

func (c *Collection[T]) indexOf(key string) int {
	for i, it := range c.items {
		if c.key(it) == key {
			return i
		}
	}
	return -1
}

// selfKey is the key extractor for collections of plain id strings.
func selfKey(s string) string { return s }
