package state

import (
	"sort"
)

// Scene is the ordered list of canvas items. Index order is z-order: later
// items are drawn on top and hit-tested first.
//
// Scene performs no history bookkeeping; callers push a snapshot before
// mutating.
type Scene struct {
	items []Item
}

func NewScene(items ...Item) *Scene {
	return &Scene{items: items}
}

// Items returns the live item slice. Callers must not modify it.
func (s *Scene) Items() []Item { return s.items }

func (s *Scene) Len() int { return len(s.items) }

// At returns the item at i, or nil when i is out of range.
func (s *Scene) At(i int) Item {
	if i < 0 || i >= len(s.items) {
		return nil
	}
	return s.items[i]
}

// Append pushes item to the top of the scene.
func (s *Scene) Append(item Item) {
	s.items = append(s.items, item)
}

// Remove deletes the items at the given indices, keeping the relative order
// of the rest. Out-of-range and duplicate indices are ignored.
func (s *Scene) Remove(indices []int) {
	if len(indices) == 0 {
		return
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	kept := make([]Item, 0, len(s.items))
	for i, it := range s.items {
		if !drop[i] {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// Replace swaps the item at index in place.
func (s *Scene) Replace(index int, item Item) {
	if index < 0 || index >= len(s.items) {
		return
	}
	s.items[index] = item
}

// Reset replaces the whole item list.
func (s *Scene) Reset(items []Item) {
	s.items = items
}

// Clone returns a deep copy of the item list.
func (s *Scene) Clone() []Item {
	return CloneItems(s.items)
}

// Selection is a set of indices into the scene it was computed against.
type Selection struct {
	set map[int]struct{}
}

func (sel *Selection) Add(i int) {
	if sel.set == nil {
		sel.set = make(map[int]struct{})
	}
	sel.set[i] = struct{}{}
}

func (sel *Selection) Contains(i int) bool {
	_, ok := sel.set[i]
	return ok
}

func (sel *Selection) Len() int { return len(sel.set) }

func (sel *Selection) Clear() { sel.set = nil }

// Indices returns the selected indices in ascending order.
func (sel *Selection) Indices() []int {
	out := make([]int, 0, len(sel.set))
	for i := range sel.set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
