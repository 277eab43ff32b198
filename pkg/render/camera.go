package render

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking from Position toward Target.
type Camera struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in degrees
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached matrices (computed on demand)
	viewMatrix     mgl64.Mat4
	projMatrix     mgl64.Mat4
	viewProjMatrix mgl64.Mat4
	viewDirty      bool
	projDirty      bool
	vpDirty        bool
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera(fov, aspect, near, far float64) *Camera {
	return &Camera{
		Target:      mgl64.Vec3{0, 0, -1},
		Up:          mgl64.Vec3{0, 1, 0},
		FOV:         fov,
		AspectRatio: aspect,
		Near:        near,
		Far:         far,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetPosition moves the camera without changing its target.
func (c *Camera) SetPosition(pos mgl64.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.Target = target
	c.viewDirty = true
}

// SetAspectRatio sets the aspect ratio and marks the projection for
// recomputation.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// ViewMatrix returns the view matrix.
func (c *Camera) ViewMatrix() mgl64.Mat4 {
	if c.viewDirty {
		c.viewMatrix = mgl64.LookAtV(c.Position, c.Target, c.Up)
		c.viewDirty = false
		c.vpDirty = true
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() mgl64.Mat4 {
	if c.projDirty {
		c.projMatrix = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
		c.vpDirty = true
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix.
func (c *Camera) ViewProjectionMatrix() mgl64.Mat4 {
	view := c.ViewMatrix()
	proj := c.ProjectionMatrix()
	if c.vpDirty {
		c.viewProjMatrix = proj.Mul4(view)
		c.vpDirty = false
	}
	return c.viewProjMatrix
}

// WorldToScreen transforms a world point to framebuffer coordinates.
// Returns (screenX, screenY, depth, visible).
func (c *Camera) WorldToScreen(worldPos mgl64.Vec3, screenWidth, screenHeight int) (x, y, depth float64, visible bool) {
	clip := c.ViewProjectionMatrix().Mul4x1(worldPos.Vec4(1))

	// Behind the camera
	if clip[3] <= 0 {
		return 0, 0, 0, false
	}

	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[0] < -1 || ndc[0] > 1 || ndc[1] < -1 || ndc[1] > 1 || ndc[2] < -1 || ndc[2] > 1 {
		return 0, 0, 0, false
	}

	x = (ndc[0] + 1) * 0.5 * float64(screenWidth)
	y = (1 - ndc[1]) * 0.5 * float64(screenHeight) // Y is flipped
	return x, y, ndc[2], true
}
