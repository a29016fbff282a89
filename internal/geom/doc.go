// Package geom implements ring reconstruction for boundary relations: it
// stitches an unordered collection of way segments into a single closed ring
// and normalizes its winding order.
//
// The package is pure: it performs no I/O and holds no state between calls.
// All coordinates are fixed-point decimicro degrees so that positions can be
// compared and hashed exactly, without floating-point tolerance.
package geom
