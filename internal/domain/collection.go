package domain

import "slices"

// Collection is an ordered sequence of items, unique by ID. Order is
// user-visible and user-mutable (drag-to-reorder); filtering only derives
// subsequences and never touches the stored order.
type Collection struct {
	items []Item
}

// NewCollection builds a collection from the given items, upserting each so
// the uniqueness invariant holds even for duplicated input IDs.
func NewCollection(items ...Item) Collection {
	var c Collection
	for _, item := range items {
		c.Upsert(item)
	}
	return c
}

// Len reports the number of items.
func (c *Collection) Len() int {
	return len(c.items)
}

// Items returns a copy of the ordered items.
func (c *Collection) Items() []Item {
	return slices.Clone(c.items)
}

// At returns the item at the given position.
func (c *Collection) At(pos int) (Item, bool) {
	if pos < 0 || pos >= len(c.items) {
		return Item{}, false
	}
	return c.items[pos], true
}

// Get returns the item with the given ID.
func (c *Collection) Get(id string) (Item, bool) {
	idx := c.IndexOf(id)
	if idx < 0 {
		return Item{}, false
	}
	return c.items[idx], true
}

// IndexOf returns the position of the item with the given ID, or -1.
func (c *Collection) IndexOf(id string) int {
	return slices.IndexFunc(c.items, func(item Item) bool {
		return item.ID == id
	})
}

// Append adds an item at the end. The ID must not already be present.
func (c *Collection) Append(item Item) error {
	if item.ID == "" {
		return ErrInvalidID
	}
	if c.IndexOf(item.ID) >= 0 {
		return ErrDuplicateID
	}
	c.items = append(c.items, item)
	return nil
}

// Upsert replaces the item with the same ID in place, keeping its position,
// or appends when the ID is unseen.
func (c *Collection) Upsert(item Item) {
	if item.ID == "" {
		return
	}
	if idx := c.IndexOf(item.ID); idx >= 0 {
		c.items[idx] = item
		return
	}
	c.items = append(c.items, item)
}

// RemoveByID removes the item with the given ID and reports whether it was present.
func (c *Collection) RemoveByID(id string) bool {
	idx := c.IndexOf(id)
	if idx < 0 {
		return false
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	return true
}

// RemoveAt removes and returns the item at the given position.
func (c *Collection) RemoveAt(pos int) (Item, bool) {
	if pos < 0 || pos >= len(c.items) {
		return Item{}, false
	}
	item := c.items[pos]
	c.items = slices.Delete(c.items, pos, pos+1)
	return item, true
}

// Move extracts the elements at the given positions, in source order, and
// reinserts them as one block at the destination. Both kinds of index count
// against the pre-removal sequence; the block lands at the destination offset
// of what remains, clamped to its length, so Move([0], 2) on [A B C D] yields
// [B C A D].
func (c *Collection) Move(from []int, to int) error {
	if len(from) == 0 {
		return nil
	}
	if to < 0 || to > len(c.items) {
		return ErrInvalidPosition
	}

	picked := map[int]struct{}{}
	for _, pos := range from {
		if pos < 0 || pos >= len(c.items) {
			return ErrInvalidPosition
		}
		picked[pos] = struct{}{}
	}

	extracted := make([]Item, 0, len(picked))
	remaining := make([]Item, 0, len(c.items)-len(picked))
	for pos, item := range c.items {
		if _, ok := picked[pos]; ok {
			extracted = append(extracted, item)
			continue
		}
		remaining = append(remaining, item)
	}

	if to > len(remaining) {
		to = len(remaining)
	}
	c.items = slices.Insert(remaining, to, extracted...)
	return nil
}

// Filtered derives the order-preserving subsequence matching the filter.
func (c *Collection) Filtered(f Filter) []Item {
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		if f.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Stats computes the aggregate counters for the current items.
func (c *Collection) Stats() Stats {
	return ComputeStats(c.items)
}

// Clone returns an independent copy of the collection.
func (c Collection) Clone() Collection {
	return Collection{items: slices.Clone(c.items)}
}
