package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/fitroom/pkg/scene"
)

// Stats describes the work done by the last Render call.
type Stats struct {
	ObjectsTested int // Visible objects considered
	ObjectsCulled int // Objects rejected by the frustum test
	Triangles     int // Triangles submitted to the rasterizer
}

// Renderer draws a scene from a camera into its framebuffer using a
// z-buffered, Gouraud-shaded software rasterizer.
type Renderer struct {
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (1D array, row-major)

	Wireframe              bool // Draw triangle edges instead of filled faces
	ShowBounds             bool // Outline each visible object's bounding box
	DisableBackfaceCulling bool // If true, render both sides of triangles
	Stats                  Stats

	// Per-mesh scratch space reused across frames
	verts []screenVertex
}

// screenVertex holds a vertex transformed to screen space with its lighting.
type screenVertex struct {
	X, Y  float64    // Screen coordinates
	Z     float64    // NDC depth (for the z-buffer)
	W     float64    // Clip W (for perspective-correct interpolation)
	Light mgl64.Vec3 // Per-channel light factor
	UV    mgl64.Vec2
}

// NewRenderer creates a renderer with a framebuffer of the given size.
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{fb: NewFramebuffer(width, height)}
	r.Resize(width, height)
	return r
}

// Framebuffer returns the surface the renderer draws into.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Resize reallocates the framebuffer and depth buffer.
func (r *Renderer) Resize(width, height int) {
	if r.fb.Width != width || r.fb.Height != height || len(r.fb.Pixels) != width*height {
		r.fb.Resize(width, height)
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Renderer) Width() int { return r.fb.Width }

// Height returns the framebuffer height.
func (r *Renderer) Height() int { return r.fb.Height }

// ClearDepth clears the Z-buffer (call before each frame).
func (r *Renderer) ClearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// Render clears the framebuffer to the scene background and draws every
// visible object.
func (r *Renderer) Render(s *scene.Scene, cam *Camera) {
	r.Stats = Stats{}
	r.fb.Clear(s.Background)
	r.ClearDepth()
	if r.fb.Width == 0 || r.fb.Height == 0 {
		return
	}

	lights := newLighting(s.Lights())
	viewProj := cam.ViewProjectionMatrix()
	frustum := NewFrustumFromMatrix(viewProj)

	for _, obj := range s.VisibleObjects() {
		r.Stats.ObjectsTested++
		model := obj.Matrix()
		normalMat := model.Inv().Transpose()

		drawn := false
		for _, m := range obj.Meshes() {
			if m.Geometry == nil || len(m.Geometry.Faces) == 0 {
				continue
			}
			bounds := AABB{Min: m.Geometry.BoundsMin, Max: m.Geometry.BoundsMax}
			if !frustum.IntersectAABB(bounds.Transform(model)) {
				continue
			}
			r.drawMesh(m, model, normalMat, viewProj, lights)
			drawn = true
		}
		if !drawn {
			r.Stats.ObjectsCulled++
		}
	}

	if r.ShowBounds {
		for _, obj := range s.VisibleObjects() {
			if box, ok := WorldBounds(obj); ok {
				r.DrawBounds(cam, box, boundsColor)
			}
		}
	}
}

var boundsColor = color.RGBA{255, 200, 0, 255}

func (r *Renderer) drawMesh(m *scene.Mesh, model, normalMat, viewProj mgl64.Mat4, lights lighting) {
	g := m.Geometry
	if cap(r.verts) < len(g.Vertices) {
		r.verts = make([]screenVertex, len(g.Vertices))
	}
	sv := r.verts[:len(g.Vertices)]

	width, height := float64(r.fb.Width), float64(r.fb.Height)
	for i, v := range g.Vertices {
		world := mgl64.TransformCoordinate(v.Position, model)
		clip := viewProj.Mul4x1(world.Vec4(1))

		out := screenVertex{W: clip[3], UV: v.UV}
		if clip[3] != 0 {
			invW := 1.0 / clip[3]
			out.X = (clip[0]*invW + 1) * 0.5 * width
			out.Y = (1 - clip[1]*invW) * 0.5 * height // Y flipped
			out.Z = clip[2] * invW
		}
		normal := scene.SafeNormalize(mgl64.TransformNormal(v.Normal, normalMat))
		out.Light = lights.at(normal)
		sv[i] = out
	}

	base := m.Material.Color
	tex := m.Material.Map
	for _, f := range g.Faces {
		a, b, c := sv[f[0]], sv[f[1]], sv[f[2]]
		// Triangles crossing the camera plane are dropped rather than clipped
		if a.W <= 0 || b.W <= 0 || c.W <= 0 {
			continue
		}
		r.Stats.Triangles++
		if r.Wireframe {
			r.drawTriangleEdges(a, b, c, base)
			continue
		}
		r.drawTriangle([3]screenVertex{a, b, c}, base, tex)
	}
}

// edgeCoeffs returns A, B, C for the edge function A*x + B*y + C of the
// edge running from (x0, y0) to (x1, y1).
func edgeCoeffs(x0, y0, x1, y1 float64) (A, B, C float64) {
	A = y0 - y1
	B = x1 - x0
	C = x0*y1 - x1*y0
	return
}

// drawTriangle rasterizes one triangle with incremental edge functions,
// perspective-correct UV and light interpolation.
func (r *Renderer) drawTriangle(sv [3]screenVertex, base color.RGBA, tex *scene.Texture) {
	// Signed double area; counter-clockwise faces come out negative because
	// screen Y points down
	area2 := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if area2 == 0 {
		return
	}
	if area2 > 0 && !r.DisableBackfaceCulling {
		return // Back-facing
	}
	invArea := 1.0 / area2

	// Bounding box (clamped to screen)
	minX := int(math.Max(0, math.Floor(min(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.fb.Width-1), math.Ceil(max(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.fb.Height-1), math.Ceil(max(sv[0].Y, sv[1].Y, sv[2].Y))))
	if minX > maxX || minY > maxY {
		return
	}

	// Edge 0: v1 -> v2, Edge 1: v2 -> v0, Edge 2: v0 -> v1
	A0, B0, C0 := edgeCoeffs(sv[1].X, sv[1].Y, sv[2].X, sv[2].Y)
	A1, B1, C1 := edgeCoeffs(sv[2].X, sv[2].Y, sv[0].X, sv[0].Y)
	A2, B2, C2 := edgeCoeffs(sv[0].X, sv[0].Y, sv[1].X, sv[1].Y)

	var invW [3]float64
	for i := range 3 {
		invW[i] = 1.0 / sv[i].W
	}

	px := float64(minX) + 0.5
	py := float64(minY) + 0.5
	w0Row := A0*px + B0*py + C0
	w1Row := A1*px + B1*py + C1
	w2Row := A2*px + B2*py + C2

	width := r.fb.Width
	for y := minY; y <= maxY; y++ {
		w0, w1, w2 := w0Row, w1Row, w2Row
		rowOffset := y * width

		for x := minX; x <= maxX; x++ {
			bc0, bc1, bc2 := w0*invArea, w1*invArea, w2*invArea
			w0 += A0
			w1 += A1
			w2 += A2

			if bc0 < 0 || bc1 < 0 || bc2 < 0 {
				continue
			}

			z := bc0*sv[0].Z + bc1*sv[1].Z + bc2*sv[2].Z
			idx := rowOffset + x
			if z < -1 || z > 1 || z >= r.zbuffer[idx] {
				continue
			}

			// Perspective-correct weights
			p0, p1, p2 := bc0*invW[0], bc1*invW[1], bc2*invW[2]
			sum := p0 + p1 + p2
			if sum == 0 {
				continue
			}
			p0, p1, p2 = p0/sum, p1/sum, p2/sum

			light := sv[0].Light.Mul(p0).Add(sv[1].Light.Mul(p1)).Add(sv[2].Light.Mul(p2))

			texel := base
			if tex != nil {
				u := p0*sv[0].UV[0] + p1*sv[1].UV[0] + p2*sv[2].UV[0]
				v := p0*sv[0].UV[1] + p1*sv[1].UV[1] + p2*sv[2].UV[1]
				texel = ModulateColor(tex.Sample(u, v), base)
			}

			r.zbuffer[idx] = z
			r.fb.Pixels[idx] = shade(texel, light)
		}

		w0Row += B0
		w1Row += B1
		w2Row += B2
	}
}

// shade scales a color per channel by a light factor, rounding and clamping
// to the byte range.
func shade(c color.RGBA, light mgl64.Vec3) color.RGBA {
	return color.RGBA{
		R: clampByte(float64(c.R) * light[0]),
		G: clampByte(float64(c.G) * light[1]),
		B: clampByte(float64(c.B) * light[2]),
		A: 255,
	}
}

// ModulateColor multiplies two colors component-wise.
func ModulateColor(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(a.R) * uint16(b.R) / 255),
		G: uint8(uint16(a.G) * uint16(b.G) / 255),
		B: uint8(uint16(a.B) * uint16(b.B) / 255),
		A: uint8(uint16(a.A) * uint16(b.A) / 255),
	}
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
