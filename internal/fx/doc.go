// Package fx provides the primitives shared by the animated effect fields.
//
// Every field (particles, snow, lightning) is built from the same pieces:
//
//   - [Vec2]: 2D position or velocity in surface pixels
//   - [Rand]: integer/float range helpers over an injected *rand.Rand
//   - [ErrNoSurface]: returned when a field is built without a surface
//
// Fields never read the wall clock or the global random source directly;
// both are injected so simulations can be replayed in tests.
package fx
