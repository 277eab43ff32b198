package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/fitroom/pkg/scene"
)

// drawTriangleEdges outlines a projected triangle. Back faces are kept so
// the silhouette stays closed.
func (r *Renderer) drawTriangleEdges(a, b, c screenVertex, col color.RGBA) {
	col = shade(col, a.Light)
	r.fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), col)
	r.fb.DrawLine(int(b.X), int(b.Y), int(c.X), int(c.Y), col)
	r.fb.DrawLine(int(c.X), int(c.Y), int(a.X), int(a.Y), col)
}

// DrawLine3D draws a world-space line on top of the framebuffer.
func (r *Renderer) DrawLine3D(cam *Camera, p1, p2 mgl64.Vec3, col color.RGBA) {
	x1, y1, _, vis1 := cam.WorldToScreen(p1, r.fb.Width, r.fb.Height)
	x2, y2, _, vis2 := cam.WorldToScreen(p2, r.fb.Width, r.fb.Height)

	// Only draw if both points project; partial lines would need clipping
	if !vis1 || !vis2 {
		return
	}
	r.fb.DrawLine(int(x1), int(y1), int(x2), int(y2), col)
}

// DrawBounds outlines a world-space box.
func (r *Renderer) DrawBounds(cam *Camera, box AABB, col color.RGBA) {
	corner := func(i int) mgl64.Vec3 {
		return mgl64.Vec3{
			selectComponent(i&1 != 0, box.Max[0], box.Min[0]),
			selectComponent(i&2 != 0, box.Max[1], box.Min[1]),
			selectComponent(i&4 != 0, box.Max[2], box.Min[2]),
		}
	}
	// Corners differing in exactly one bit share an edge
	for i := range 8 {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				r.DrawLine3D(cam, corner(i), corner(i|bit), col)
			}
		}
	}
}

// WorldBounds returns the world-space box enclosing every mesh of obj.
func WorldBounds(obj *scene.Object) (AABB, bool) {
	model := obj.Matrix()
	var out AABB
	found := false
	for _, m := range obj.Meshes() {
		if m.Geometry == nil || len(m.Geometry.Vertices) == 0 {
			continue
		}
		wb := AABB{Min: m.Geometry.BoundsMin, Max: m.Geometry.BoundsMax}.Transform(model)
		if !found {
			out, found = wb, true
			continue
		}
		for k := range 3 {
			out.Min[k] = min(out.Min[k], wb.Min[k])
			out.Max[k] = max(out.Max[k], wb.Max[k])
		}
	}
	return out, found
}
