// Package sketch defines the value types handed from a sketch editor to the
// solid pipeline: points on a square grid, closed polygon outlines, one drawing
// per canonical axis, and the model that bundles up to three drawings with a
// material color. A Model is a snapshot; nothing in this package retains it.
package sketch
