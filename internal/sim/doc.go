// Package sim hosts the per-frame animation loops of the effect fields.
//
//   - [Loop]: cancellable frame handle delivered as bubbletea messages
//   - [Bus]: viewport resize and pointer events with per-listener cancel
//   - [Runner]: steps fields on a simulated clock without a terminal
//
// Everything here runs on the single bubbletea update goroutine; nothing
// is safe for concurrent use.
package sim
