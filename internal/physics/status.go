package physics

import "strings"

// MotionStatus is the result of a tick.
type MotionStatus int

const (
	Moving MotionStatus = iota
	AtRest
)

// String returns "moving" or "at-rest".
func (s MotionStatus) String() string {
	if s == AtRest {
		return "at-rest"
	}
	return "moving"
}

// Event is a bitmask of what happened during the last tick.
type Event uint8

const (
	EventBounce   Event = 1 << iota // a wall reflected the ball
	EventTunnel                     // the tunneling guard reflected the ball
	EventBoost                      // at least one boost panel applied
	EventFriction                   // at least one friction tile applied
	EventHazard                     // the ball was reset by a hazard
	EventLipOut                     // the ball rolled over the goal too fast
	EventHoled                      // the stage was completed
	EventStopped                    // the ball came to rest
)

// Has reports whether e includes flag.
func (e Event) Has(flag Event) bool {
	return e&flag != 0
}

var eventNames = []struct {
	flag Event
	name string
}{
	{EventBounce, "bounce"},
	{EventTunnel, "tunnel"},
	{EventBoost, "boost"},
	{EventFriction, "friction"},
	{EventHazard, "hazard"},
	{EventLipOut, "lip-out"},
	{EventHoled, "holed"},
	{EventStopped, "stopped"},
}

// String lists the set flags, e.g. "bounce|friction".
func (e Event) String() string {
	var parts []string
	for _, en := range eventNames {
		if e.Has(en.flag) {
			parts = append(parts, en.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
