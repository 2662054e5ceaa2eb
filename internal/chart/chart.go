// Package chart holds the render engines for the dashboard views. Engines
// turn dataset records and the current selection into scene.Scene values
// and translate pointer positions on their last scene back into dataset
// identities. They never mutate the selection themselves: recognised
// interactions are reported to a Dispatcher owned by the controller.
package chart

// Dispatcher receives the interactions recognised by an engine.
type Dispatcher interface {
	Toggle(country string, year int)
	Hover(country string)
	Unhover(country string)
}

// Selection is the read side of the selection store.
type Selection interface {
	IsSelected(country string, year int) bool
	Hovered() string
}

// Margin is the space reserved around a plot area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// HoverTracker turns a stream of "what is under the pointer" samples into
// enter/leave events. Leaving reports the country that was entered, so a
// late leave never clears a hover set by another view.
type HoverTracker struct {
	current string
}

// Move reports the country now under the pointer ("" for nothing).
func (h *HoverTracker) Move(country string, d Dispatcher) {
	if country == h.current {
		return
	}
	if h.current != "" {
		d.Unhover(h.current)
	}
	h.current = country
	if country != "" {
		d.Hover(country)
	}
}

// Current is the country the pointer is over, or "".
func (h *HoverTracker) Current() string {
	return h.current
}

// Sync forgets the tracked country once the store's hover no longer names
// it, so pointing at the same country again re-emits the hover.
func (h *HoverTracker) Sync(hovered string) {
	if h.current != hovered {
		h.current = ""
	}
}

// Reset forgets the tracked country without emitting events.
func (h *HoverTracker) Reset() {
	h.current = ""
}
