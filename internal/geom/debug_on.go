//go:build geomdebug

package geom

// debugChecks enables precondition panics on uninitialized shapes.
const debugChecks = true
