package character

import (
	gomath "math"
	"strings"

	"github.com/Faultbox/folio3d/pkg/math"
)

// Direction is one of the four planar movement directions.
type Direction int

const (
	DirNone Direction = iota
	DirForward
	DirBack
	DirLeft
	DirRight
)

// keyBindings maps lower-case key names to directions. Both WASD and the
// arrow keys are bound.
var keyBindings = map[string]Direction{
	"w":          DirForward,
	"arrowup":    DirForward,
	"s":          DirBack,
	"arrowdown":  DirBack,
	"a":          DirLeft,
	"arrowleft":  DirLeft,
	"d":          DirRight,
	"arrowright": DirRight,
}

// ParseKey maps a key name to a direction, ignoring case.
func ParseKey(name string) (Direction, bool) {
	dir, ok := keyBindings[strings.ToLower(name)]
	return dir, ok
}

// Impulse returns the velocity change applied for this direction.
// Forward is -Z, right is +X.
func (d Direction) Impulse(speed float32) math.Vec3 {
	switch d {
	case DirForward:
		return math.Vec3{Z: -speed}
	case DirBack:
		return math.Vec3{Z: speed}
	case DirLeft:
		return math.Vec3{X: -speed}
	case DirRight:
		return math.Vec3{X: speed}
	}
	return math.Vec3{}
}

// Facing returns the yaw the character turns to when moving this way.
func (d Direction) Facing() float32 {
	switch d {
	case DirForward:
		return gomath.Pi
	case DirBack:
		return 0
	case DirLeft:
		return -gomath.Pi / 2
	case DirRight:
		return gomath.Pi / 2
	}
	return 0
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirForward:
		return "forward"
	case DirBack:
		return "back"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "none"
}
