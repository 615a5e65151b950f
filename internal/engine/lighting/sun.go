// Package lighting describes the scene's directional sun and ambient fill.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sun is a directional light shining from Position towards Target.
type Sun struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Color    mgl32.Vec3
}

// Ambient is a uniform fill light.
type Ambient struct {
	Color     mgl32.Vec3
	Intensity float32
}

// Setup is everything the renderer needs to light a frame.
type Setup struct {
	Sun     Sun
	Ambient Ambient
}

// Default returns a white sun above the front-left of the scene and a soft
// grey ambient at three times its base intensity.
func Default() Setup {
	return Setup{
		Sun: Sun{
			Position: mgl32.Vec3{-40, 50, 50},
			Color:    mgl32.Vec3{1, 1, 1},
		},
		Ambient: Ambient{
			Color:     HexColor(0x404040),
			Intensity: 3,
		},
	}
}

// Direction returns the normalized direction light travels in.
// A sun sitting on its target falls back to straight down.
func (s Sun) Direction() mgl32.Vec3 {
	d := s.Target.Sub(s.Position)
	if d.Len() < 1e-6 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

// SunFromAngles places a sun at distance from the origin. Azimuth rotates
// around Y from +Z, elevation is measured up from the horizon, both in degrees.
func SunFromAngles(azimuth, elevation, distance float32) Sun {
	az := float64(mgl32.DegToRad(azimuth))
	el := float64(mgl32.DegToRad(elevation))
	pos := mgl32.Vec3{
		float32(math.Cos(el) * math.Sin(az)),
		float32(math.Sin(el)),
		float32(math.Cos(el) * math.Cos(az)),
	}.Mul(distance)
	return Sun{Position: pos, Color: mgl32.Vec3{1, 1, 1}}
}

// Level returns the ambient contribution clamped to [0, 1] per channel.
func (a Ambient) Level() mgl32.Vec3 {
	c := a.Color.Mul(a.Intensity)
	for i := range c {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	return c
}

// HexColor converts 0xRRGGBB to 0..1 components.
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(hex>>16&0xff) / 255,
		float32(hex>>8&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}
