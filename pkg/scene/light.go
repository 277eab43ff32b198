package scene

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Light is either an *AmbientLight or a *DirectionalLight.
type Light interface {
	light()
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     color.RGBA
	Intensity float64
}

// DirectionalLight lights surfaces facing Direction, which points from the
// scene toward the light.
type DirectionalLight struct {
	Color     color.RGBA
	Intensity float64
	Direction mgl64.Vec3
}

func (*AmbientLight) light()     {}
func (*DirectionalLight) light() {}

// NewAmbientLight creates an ambient light.
func NewAmbientLight(c color.RGBA, intensity float64) *AmbientLight {
	return &AmbientLight{Color: c, Intensity: intensity}
}

// NewDirectionalLight creates a directional light shining from position
// toward the origin.
func NewDirectionalLight(c color.RGBA, intensity float64, position mgl64.Vec3) *DirectionalLight {
	return &DirectionalLight{Color: c, Intensity: intensity, Direction: SafeNormalize(position)}
}
