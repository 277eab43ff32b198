package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/fitroom/pkg/scene"
)

// lighting is the per-frame summary of the scene lights.
type lighting struct {
	ambient     mgl64.Vec3
	directional []directional
}

type directional struct {
	dir   mgl64.Vec3 // Unit vector toward the light
	color mgl64.Vec3 // Color premultiplied by intensity
}

func newLighting(lights []scene.Light) lighting {
	var l lighting
	for _, light := range lights {
		switch v := light.(type) {
		case *scene.AmbientLight:
			l.ambient = l.ambient.Add(colorVec(v.Color).Mul(v.Intensity))
		case *scene.DirectionalLight:
			l.directional = append(l.directional, directional{
				dir:   scene.SafeNormalize(v.Direction),
				color: colorVec(v.Color).Mul(v.Intensity),
			})
		}
	}
	return l
}

// at returns the light factor for a surface with the given unit normal.
func (l lighting) at(normal mgl64.Vec3) mgl64.Vec3 {
	out := l.ambient
	for _, d := range l.directional {
		out = out.Add(d.color.Mul(math.Max(0, normal.Dot(d.dir))))
	}
	return out
}

func colorVec(c color.RGBA) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255}
}
