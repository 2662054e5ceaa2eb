// Package ui is the Bubble Tea front end of the dashboard.
//
// AppModel is the controller: it owns the dataset, geography, selection
// store, year slider, scatterplot containers and zoom. Panels render the
// chart engines onto terminal cells; mouse events are routed back to the
// engine under the pointer, and the interactions it recognises are applied
// to the selection store on the Update goroutine.
//
// Supporting pieces:
//   - Layout: places the map, scatterplot and table panels
//   - FocusManager: tracks and rotates focus across panels
//   - KeybindRegistry/KeyHandler: single keys and SPC-prefixed sequences
//   - OverlayStack: modal views (the axis field picker)
package ui
