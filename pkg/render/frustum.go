package render

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Plane represents a plane in 3D space using the equation: Ax + By + Cz + D = 0
// where (A, B, C) is the normal and D is the distance from origin.
type Plane struct {
	Normal mgl64.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Mul(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point mgl64.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum represents the 6 planes of a view frustum.
// Planes are ordered: Left, Right, Bottom, Top, Near, Far.
// Each plane's normal points inward.
type Frustum struct {
	Planes [6]Plane
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustumFromMatrix extracts frustum planes from a view-projection matrix
// with the Gribb/Hartmann method.
func NewFrustumFromMatrix(m mgl64.Mat4) Frustum {
	var f Frustum

	// m is column-major: row i, column j lives at m[i+j*4]
	row := func(i int) (mgl64.Vec3, float64) {
		return mgl64.Vec3{m[i], m[i+4], m[i+8]}, m[i+12]
	}
	r3n, r3d := row(3)
	for i := range 3 {
		rn, rd := row(i)
		f.Planes[2*i] = Plane{Normal: r3n.Add(rn), D: r3d + rd}
		f.Planes[2*i+1] = Plane{Normal: r3n.Sub(rn), D: r3d - rd}
	}

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Center returns the center point of the AABB.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Transform returns the box that encloses b after transformation by m.
func (b AABB) Transform(m mgl64.Mat4) AABB {
	var out AABB
	for i := range 8 {
		corner := mgl64.Vec3{
			selectComponent(i&1 != 0, b.Max[0], b.Min[0]),
			selectComponent(i&2 != 0, b.Max[1], b.Min[1]),
			selectComponent(i&4 != 0, b.Max[2], b.Min[2]),
		}
		p := mgl64.TransformCoordinate(corner, m)
		if i == 0 {
			out.Min, out.Max = p, p
			continue
		}
		for k := range 3 {
			out.Min[k] = min(out.Min[k], p[k])
			out.Max[k] = max(out.Max[k], p[k])
		}
	}
	return out
}

// ContainsPoint returns true if the point is inside the AABB.
func (b AABB) ContainsPoint(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// IntersectAABB reports whether any part of the box is inside the frustum.
// Uses the "positive vertex" test for early rejection.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		pVertex := mgl64.Vec3{
			selectComponent(plane.Normal[0] >= 0, box.Max[0], box.Min[0]),
			selectComponent(plane.Normal[1] >= 0, box.Max[1], box.Min[1]),
			selectComponent(plane.Normal[2] >= 0, box.Max[2], box.Min[2]),
		}
		if plane.DistanceToPoint(pVertex) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum.
func (f Frustum) ContainsPoint(p mgl64.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

func selectComponent(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// Frustum returns the current view frustum of the camera.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}
