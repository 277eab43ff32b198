package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Vertex holds all per-vertex attributes.
type Vertex struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	UV       mgl64.Vec2
}

// Face is a triangle referencing three vertices by index.
type Face [3]int

// Geometry is an indexed triangle list with its bounding box.
type Geometry struct {
	Vertices []Vertex
	Faces    []Face

	// Bounding box (calculated on load)
	BoundsMin mgl64.Vec3
	BoundsMax mgl64.Vec3
}

// NewGeometry creates an empty geometry.
func NewGeometry() *Geometry {
	return &Geometry{
		Vertices: make([]Vertex, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (g *Geometry) CalculateBounds() {
	if len(g.Vertices) == 0 {
		g.BoundsMin, g.BoundsMax = mgl64.Vec3{}, mgl64.Vec3{}
		return
	}

	g.BoundsMin = g.Vertices[0].Position
	g.BoundsMax = g.Vertices[0].Position

	for _, v := range g.Vertices[1:] {
		for i := range 3 {
			g.BoundsMin[i] = min(g.BoundsMin[i], v.Position[i])
			g.BoundsMax[i] = max(g.BoundsMax[i], v.Position[i])
		}
	}
}

// Center returns the center of the bounding box.
func (g *Geometry) Center() mgl64.Vec3 {
	return g.BoundsMin.Add(g.BoundsMax).Mul(0.5)
}

// Size returns the dimensions of the bounding box.
func (g *Geometry) Size() mgl64.Vec3 {
	return g.BoundsMax.Sub(g.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Faces)
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices)
}

// HasNormals reports whether any vertex carries a non-zero normal.
func (g *Geometry) HasNormals() bool {
	for _, v := range g.Vertices {
		if v.Normal.LenSqr() > 1e-6 {
			return true
		}
	}
	return false
}

// CalculateSmoothNormals computes averaged normals for smooth shading.
func (g *Geometry) CalculateSmoothNormals() {
	for i := range g.Vertices {
		g.Vertices[i].Normal = mgl64.Vec3{}
	}

	// Accumulate area-weighted face normals per vertex
	for _, f := range g.Faces {
		v0 := g.Vertices[f[0]].Position
		v1 := g.Vertices[f[1]].Position
		v2 := g.Vertices[f[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0))

		for _, idx := range f {
			g.Vertices[idx].Normal = g.Vertices[idx].Normal.Add(normal)
		}
	}

	for i := range g.Vertices {
		g.Vertices[i].Normal = SafeNormalize(g.Vertices[i].Normal)
	}
}

// SafeNormalize normalizes v, returning the zero vector for degenerate input.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}
