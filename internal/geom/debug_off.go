//go:build !geomdebug

package geom

const debugChecks = false
