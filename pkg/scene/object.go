package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Object is a loaded root placed in the world with its own transform and
// display flag.
type Object struct {
	Name     string
	Root     *Group
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Rotation mgl64.Vec3 // Euler angles in radians, applied X then Y then Z
	Visible  bool
}

// NewObject wraps a loaded hierarchy with an identity transform. New objects
// are visible.
func NewObject(name string, root *Group) *Object {
	return &Object{
		Name:    name,
		Root:    root,
		Scale:   mgl64.Vec3{1, 1, 1},
		Visible: true,
	}
}

// Matrix returns the local-to-world transform: translate * rotate * scale.
func (o *Object) Matrix() mgl64.Mat4 {
	t := mgl64.Translate3D(o.Position[0], o.Position[1], o.Position[2])
	r := mgl64.HomogRotate3DX(o.Rotation[0]).
		Mul4(mgl64.HomogRotate3DY(o.Rotation[1])).
		Mul4(mgl64.HomogRotate3DZ(o.Rotation[2]))
	s := mgl64.Scale3D(o.Scale[0], o.Scale[1], o.Scale[2])
	return t.Mul4(r).Mul4(s)
}

// Meshes returns every mesh in the object's hierarchy.
func (o *Object) Meshes() []*Mesh {
	if o.Root == nil {
		return nil
	}
	return Meshes(o.Root)
}

// TriangleCount sums the triangles of every mesh in the object.
func (o *Object) TriangleCount() int {
	n := 0
	for _, m := range o.Meshes() {
		if m.Geometry != nil {
			n += m.Geometry.TriangleCount()
		}
	}
	return n
}
