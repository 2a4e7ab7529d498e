// Package physics implements the single-ball collision and response loop
// shared by the mini-games: static tagged colliders, tuning parameters and
// the fixed-step Stage resolver.
package physics

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/mayhem/internal/geom"
)

// Kind tags a static collider with the response it triggers.
// The numeric order is the scan order of a Layout.
type Kind int

const (
	KindWall     Kind = iota // reflects the ball
	KindBoost                // accelerates the ball
	KindFriction             // slows the ball (sand)
	KindHazard               // resets the ball to the start (water)

	numKinds = 4
)

// Kinds lists every collider kind in scan order.
var Kinds = [numKinds]Kind{KindWall, KindBoost, KindFriction, KindHazard}

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindBoost:
		return "boost"
	case KindFriction:
		return "friction"
	case KindHazard:
		return "hazard"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= KindWall && k < numKinds
}

// ParseKind accepts the kind names plus the tile names used by map files
// (sand, water, panel).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wall":
		return KindWall, nil
	case "boost", "panel":
		return KindBoost, nil
	case "friction", "sand":
		return KindFriction, nil
	case "hazard", "water":
		return KindHazard, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Collider is a static box with a response tag.
type Collider struct {
	Kind Kind
	Box  geom.AABB
}

// Wall, Boost, Friction and Hazard build colliders from two corners.
func Wall(a, b geom.Vec2) Collider     { return Collider{Kind: KindWall, Box: geom.NewAABB(a, b)} }
func Boost(a, b geom.Vec2) Collider    { return Collider{Kind: KindBoost, Box: geom.NewAABB(a, b)} }
func Friction(a, b geom.Vec2) Collider { return Collider{Kind: KindFriction, Box: geom.NewAABB(a, b)} }
func Hazard(a, b geom.Vec2) Collider   { return Collider{Kind: KindHazard, Box: geom.NewAABB(a, b)} }
