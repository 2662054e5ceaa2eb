package ui

import "slices"

// FocusManager tracks and rotates focus across panels.
type FocusManager struct {
	Current  string   // ID of the currently focused panel
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// Next advances focus to the next panel in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus to the previous panel in order.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := slices.Index(f.Order, f.Current)
	n := len(f.Order)
	next := ((idx+delta)%n + n) % n
	if idx < 0 && delta < 0 {
		next = n - 1
	}
	f.set(f.Order[next])
	return f.Current
}

// SetFocus sets focus to the given panel ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	if !slices.Contains(f.Order, id) {
		return false
	}
	f.set(id)
	return true
}

// SetOrder replaces the tab order after panels were added or removed. Focus
// stays put when the current panel survives, otherwise it moves to the
// panel that took its position.
func (f *FocusManager) SetOrder(order []string) {
	idx := slices.Index(f.Order, f.Current)
	f.Order = order
	if slices.Contains(order, f.Current) || len(order) == 0 {
		return
	}
	f.set(order[min(max(idx, 0), len(order)-1)])
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
