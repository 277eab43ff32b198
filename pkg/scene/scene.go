package scene

import "image/color"

// Scene is the root container of every object and light that gets rendered.
type Scene struct {
	Background color.RGBA

	objects []*Object
	lights  []Light
}

// New creates an empty scene with the given background color.
func New(background color.RGBA) *Scene {
	return &Scene{Background: background}
}

// Add places an object in the scene. Adding the same object twice is a no-op.
func (s *Scene) Add(obj *Object) {
	if obj == nil || s.Contains(obj) {
		return
	}
	s.objects = append(s.objects, obj)
}

// AddLight adds a light to the scene.
func (s *Scene) AddLight(l Light) {
	s.lights = append(s.lights, l)
}

// Contains reports whether obj has been added.
func (s *Scene) Contains(obj *Object) bool {
	for _, o := range s.objects {
		if o == obj {
			return true
		}
	}
	return false
}

// Objects returns every object in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// VisibleObjects returns the objects whose display flag is set.
func (s *Scene) VisibleObjects() []*Object {
	out := make([]*Object, 0, len(s.objects))
	for _, o := range s.objects {
		if o.Visible {
			out = append(out, o)
		}
	}
	return out
}

// Lights returns every light in insertion order.
func (s *Scene) Lights() []Light {
	return s.lights
}

// TriangleCount sums the triangles of every visible object.
func (s *Scene) TriangleCount() int {
	n := 0
	for _, o := range s.VisibleObjects() {
		n += o.TriangleCount()
	}
	return n
}
