// Package controls implements a damped orbit camera controller.
package controls

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/fitroom/pkg/render"
)

// minPolar keeps the camera off the exact poles where the up vector
// degenerates.
const minPolar = 1e-6

// Options configures an OrbitControls.
type Options struct {
	EnableDamping bool
	DampingFactor float64

	EnableRotate bool
	RotateSpeed  float64

	// Polar angle limits in radians, measured from +Y.
	MinPolarAngle float64
	MaxPolarAngle float64

	EnableZoom  bool
	ZoomScale   float64 // Radius multiplier per wheel step toward the target
	MinDistance float64
	MaxDistance float64

	// FPS drives the dolly spring timestep.
	FPS int
}

// DefaultOptions returns the fitting-room setup: damped, horizontal-only
// orbit with wheel zoom.
func DefaultOptions() Options {
	return Options{
		EnableDamping: true,
		DampingFactor: 0.05,
		EnableRotate:  true,
		RotateSpeed:   1,
		MinPolarAngle: math.Pi / 2,
		MaxPolarAngle: math.Pi / 2,
		EnableZoom:    true,
		ZoomScale:     0.95,
		MinDistance:   1,
		MaxDistance:   500,
		FPS:           60,
	}
}

// OrbitControls orbits a camera around a target point. Input methods only
// accumulate deltas; Update applies them once per frame.
type OrbitControls struct {
	Target mgl64.Vec3

	cam  *render.Camera
	opts Options

	// Current spherical coordinates of the camera relative to Target
	radius float64
	theta  float64 // Azimuth around +Y, 0 on +Z
	phi    float64 // Polar angle from +Y

	// Pending rotation not yet applied
	deltaTheta float64
	deltaPhi   float64

	// Dolly spring state
	radiusTarget float64
	radiusVel    float64
	spring       harmonica.Spring
}

// New wraps cam, taking the initial orbit from the camera's position
// relative to its current target.
func New(cam *render.Camera, opts Options) *OrbitControls {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	c := &OrbitControls{
		Target: cam.Target,
		cam:    cam,
		opts:   opts,
		// Frequency 6.0 settles a wheel step in a few frames, damping 1.0 = no overshoot
		spring: harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 1.0),
	}
	c.radius, c.theta, c.phi = toSpherical(cam.Position.Sub(c.Target))
	c.radiusTarget = c.radius
	return c
}

// Options returns the active configuration.
func (c *OrbitControls) Options() Options {
	return c.opts
}

// Rotate converts a pointer drag of (dx, dy) framebuffer pixels into
// pending azimuth and polar rotation. viewportHeight scales the drag so a
// full-height drag is one turn.
func (c *OrbitControls) Rotate(dx, dy float64, viewportHeight int) {
	if !c.opts.EnableRotate || viewportHeight <= 0 {
		return
	}
	h := float64(viewportHeight)
	c.deltaTheta -= 2 * math.Pi * dx / h * c.opts.RotateSpeed
	c.deltaPhi -= 2 * math.Pi * dy / h * c.opts.RotateSpeed
}

// Dolly moves the zoom target by steps wheel notches. Positive steps move
// toward the target.
func (c *OrbitControls) Dolly(steps int) {
	if !c.opts.EnableZoom || steps == 0 {
		return
	}
	c.radiusTarget *= math.Pow(c.opts.ZoomScale, float64(steps))
	c.radiusTarget = c.clampRadius(c.radiusTarget)
}

// Update applies pending input to the camera and reports whether the camera
// moved. Call once per frame.
func (c *OrbitControls) Update() bool {
	before := c.cam.Position

	if c.opts.EnableDamping {
		c.theta += c.deltaTheta * c.opts.DampingFactor
		c.phi += c.deltaPhi * c.opts.DampingFactor
		c.deltaTheta *= 1 - c.opts.DampingFactor
		c.deltaPhi *= 1 - c.opts.DampingFactor
	} else {
		c.theta += c.deltaTheta
		c.phi += c.deltaPhi
		c.deltaTheta, c.deltaPhi = 0, 0
	}

	c.phi = mgl64.Clamp(c.phi, c.opts.MinPolarAngle, c.opts.MaxPolarAngle)
	c.phi = mgl64.Clamp(c.phi, minPolar, math.Pi-minPolar)

	c.radius, c.radiusVel = c.spring.Update(c.radius, c.radiusVel, c.radiusTarget)
	c.radius = c.clampRadius(c.radius)

	c.cam.SetPosition(c.Target.Add(fromSpherical(c.radius, c.theta, c.phi)))
	c.cam.LookAt(c.Target)

	return !c.cam.Position.ApproxEqualThreshold(before, 1e-9)
}

// Azimuth returns the current azimuth angle in radians.
func (c *OrbitControls) Azimuth() float64 { return c.theta }

// Polar returns the current polar angle in radians.
func (c *OrbitControls) Polar() float64 { return c.phi }

// Distance returns the current camera distance from the target.
func (c *OrbitControls) Distance() float64 { return c.radius }

func (c *OrbitControls) clampRadius(r float64) float64 {
	if c.opts.MaxDistance > 0 {
		r = math.Min(r, c.opts.MaxDistance)
	}
	return math.Max(r, c.opts.MinDistance)
}

// toSpherical converts a Y-up offset into radius, azimuth and polar angle.
func toSpherical(v mgl64.Vec3) (radius, theta, phi float64) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math.Atan2(v[0], v[2])
	phi = math.Acos(mgl64.Clamp(v[1]/radius, -1, 1))
	return radius, theta, phi
}

func fromSpherical(radius, theta, phi float64) mgl64.Vec3 {
	sinPhi := math.Sin(phi)
	return mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	}
}
