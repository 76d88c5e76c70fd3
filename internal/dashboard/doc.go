// Package dashboard is the live terminal view of the plant.
//
// The Model is a Bubble Tea program that, on every refresh tick, loads one
// snapshot from the shared sample buffer, renders every chart of the active
// scene from it, and paints the frames onto a display canvas. Terminal
// resizes move it into a resized phase; the next rebuild message lays all
// scenes out again for the new size before ticks resume.
//
// Transport link changes reach the model through a Bridge, which the
// transport calls from its own goroutine.
package dashboard
