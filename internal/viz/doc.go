// Package viz provides the drawing surfaces and styles of the typing view.
//
//   - [Surface]: the raster interface every effect field draws on
//   - [Canvas]: braille-based surface with per-dot color and alpha
//   - [Frame]: cell grid that composes canvases and text into one string
//   - [Theme]: color schemes shared by the terminal and window front ends
//
// # Compositing
//
// Canvas supports the two modes the effects need: [SourceOver] paints, and
// [DestinationOut] erases in proportion to alpha, which lets a field fade
// its previous strokes by filling the whole surface with translucent black.
package viz
