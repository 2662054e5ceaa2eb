// Package selection holds the state shared by every dashboard view: the set
// of selected (country, year) identities and the hovered country.
//
// The top-level controller owns the single Store. Views read it while
// rendering and route mutation requests back to the owner.
package selection

import (
	"slices"

	"happydash/internal/dataset"
)

// ChangeKind identifies which part of the store a Change touched.
type ChangeKind int

const (
	ChangeSelection ChangeKind = iota
	ChangeHover
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeSelection:
		return "selection"
	case ChangeHover:
		return "hover"
	default:
		return "unknown"
	}
}

// Change describes one applied mutation.
type Change struct {
	Kind ChangeKind
	// Key and Selected are set for ChangeSelection.
	Key      dataset.Key
	Selected bool
	// Hovered is the new hover value for ChangeHover ("" = none).
	Hovered string
}

// Store is the shared selection/hover state. It is not safe for concurrent
// use; Bubble Tea serializes all calls through Update.
type Store struct {
	entries   []dataset.Key
	hovered   string
	listeners map[int]func(Change)
	nextID    int
}

// New creates an empty store.
func New() *Store {
	return &Store{listeners: make(map[int]func(Change))}
}

// Toggle removes the identity if selected, otherwise appends it.
// Returns whether the identity is selected afterwards.
func (s *Store) Toggle(country string, year int) bool {
	k := dataset.Key{Country: country, Year: year}
	if i := slices.Index(s.entries, k); i >= 0 {
		s.entries = slices.Delete(s.entries, i, i+1)
		s.notify(Change{Kind: ChangeSelection, Key: k, Selected: false})
		return false
	}
	s.entries = append(s.entries, k)
	s.notify(Change{Kind: ChangeSelection, Key: k, Selected: true})
	return true
}

// SetHovered replaces the hover value unconditionally ("" clears it).
func (s *Store) SetHovered(country string) {
	if s.hovered == country {
		return
	}
	s.hovered = country
	s.notify(Change{Kind: ChangeHover, Hovered: country})
}

// ClearHover clears the hover only if it currently equals country, so a
// late leave event from a shape that is no longer hovered cannot wipe an
// unrelated hover. Returns true if the hover was cleared.
func (s *Store) ClearHover(country string) bool {
	if country == "" || s.hovered != country {
		return false
	}
	s.SetHovered("")
	return true
}

// Clear removes every selected identity.
func (s *Store) Clear() {
	old := s.entries
	s.entries = nil
	for _, k := range old {
		s.notify(Change{Kind: ChangeSelection, Key: k, Selected: false})
	}
}

// IsSelected reports whether (country, year) is selected.
func (s *Store) IsSelected(country string, year int) bool {
	return slices.Contains(s.entries, dataset.Key{Country: country, Year: year})
}

// IsHovered reports whether country is the hovered country.
func (s *Store) IsHovered(country string) bool {
	return country != "" && s.hovered == country
}

// Hovered returns the hovered country, or "" when none.
func (s *Store) Hovered() string {
	return s.hovered
}

// Entries returns the selected identities in insertion order.
func (s *Store) Entries() []dataset.Key {
	return slices.Clone(s.entries)
}

// Len returns the number of selected identities.
func (s *Store) Len() int {
	return len(s.entries)
}

// Subscribe registers fn to be called synchronously after every applied
// change. The returned func removes the listener.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store) notify(c Change) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		s.listeners[id](c)
	}
}
