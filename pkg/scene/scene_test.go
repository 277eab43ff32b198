package scene

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func triangleGeometry() *Geometry {
	g := NewGeometry()
	g.Vertices = []Vertex{
		{Position: mgl64.Vec3{0, 0, 0}},
		{Position: mgl64.Vec3{1, 0, 0}},
		{Position: mgl64.Vec3{0, 1, 0}},
	}
	g.Faces = []Face{{0, 1, 2}}
	g.CalculateBounds()
	return g
}

func TestWalkVisitsGroupsAndMeshes(t *testing.T) {
	inner := NewGroup("inner", NewMesh("b", triangleGeometry(), nil))
	root := NewGroup("root", NewMesh("a", triangleGeometry(), nil), inner, NewMesh("c", triangleGeometry(), nil))

	var names []string
	Walk(root, func(n Node) {
		names = append(names, n.NodeName())
	})

	want := []string{"root", "a", "inner", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("Walk visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, names[i], want[i])
		}
	}

	meshes := Meshes(root)
	if len(meshes) != 3 {
		t.Errorf("Meshes returned %d nodes, want 3", len(meshes))
	}
}

func TestBindTextureOnlyTouchesMeshes(t *testing.T) {
	root := NewGroup("root",
		NewMesh("a", triangleGeometry(), nil),
		NewGroup("empty"),
		NewGroup("nested", NewMesh("b", triangleGeometry(), nil)),
	)
	tex := NewTexture("t", 2, 2)

	if n := BindTexture(root, tex); n != 2 {
		t.Errorf("BindTexture bound %d meshes, want 2", n)
	}
	for _, m := range Meshes(root) {
		if m.Material.Map != tex {
			t.Errorf("mesh %q map not bound", m.Name)
		}
		if m.Material.Version != 1 {
			t.Errorf("mesh %q version = %d, want 1", m.Name, m.Material.Version)
		}
	}
}

func TestObjectMatrix(t *testing.T) {
	obj := NewObject("o", NewGroup("root"))
	obj.Position = mgl64.Vec3{1, 2, 3}
	obj.Scale = mgl64.Vec3{2, 2, 2}

	p := mgl64.TransformCoordinate(mgl64.Vec3{1, 0, 0}, obj.Matrix())
	if !p.ApproxEqual(mgl64.Vec3{3, 2, 3}) {
		t.Errorf("scaled and translated point = %v, want (3,2,3)", p)
	}

	obj.Position = mgl64.Vec3{}
	obj.Scale = mgl64.Vec3{1, 1, 1}
	obj.Rotation = mgl64.Vec3{3 * math.Pi / 2, 0, 0}
	p = mgl64.TransformCoordinate(mgl64.Vec3{0, 1, 0}, obj.Matrix())
	// ApproxEqualThreshold turns strict when a component is zero, so compare
	// the distance
	if p.Sub(mgl64.Vec3{0, 0, -1}).Len() > 1e-9 {
		t.Errorf("rotated point = %v, want (0,0,-1)", p)
	}
}

func TestNewObjectDefaults(t *testing.T) {
	obj := NewObject("o", NewGroup("root"))
	if !obj.Visible {
		t.Error("new objects should be visible")
	}
	if obj.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("default scale = %v, want (1,1,1)", obj.Scale)
	}
}

func TestSceneAddIsIdempotent(t *testing.T) {
	s := New(color.RGBA{})
	obj := NewObject("o", NewGroup("root", NewMesh("m", triangleGeometry(), nil)))

	s.Add(obj)
	s.Add(obj)
	s.Add(nil)

	if len(s.Objects()) != 1 {
		t.Fatalf("scene has %d objects, want 1", len(s.Objects()))
	}
	if s.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", s.TriangleCount())
	}

	obj.Visible = false
	if len(s.VisibleObjects()) != 0 {
		t.Error("hidden object should not be listed as visible")
	}
	if s.TriangleCount() != 0 {
		t.Errorf("TriangleCount of hidden scene = %d, want 0", s.TriangleCount())
	}
}

func TestGeometryBoundsAndNormals(t *testing.T) {
	g := triangleGeometry()
	if g.Size() != (mgl64.Vec3{1, 1, 0}) {
		t.Errorf("Size = %v, want (1,1,0)", g.Size())
	}
	if g.HasNormals() {
		t.Error("fresh geometry should not report normals")
	}

	g.CalculateSmoothNormals()
	for i, v := range g.Vertices {
		if !v.Normal.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d normal = %v, want (0,0,1)", i, v.Normal)
		}
	}
}

func TestTextureSample(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255}) // top-left
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255}) // top-right
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255}) // bottom-left
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})

	tex := TextureFromImage("quad", img)
	tex.Filter = FilterNearest

	tests := []struct {
		name string
		u, v float64
		want color.RGBA
	}{
		{"bottom-left", 0.25, 0.25, color.RGBA{0, 0, 255, 255}},
		{"top-left", 0.25, 0.75, color.RGBA{255, 0, 0, 255}},
		{"top-right", 0.75, 0.75, color.RGBA{0, 255, 0, 255}},
		{"wrapped", 1.25, 0.75, color.RGBA{255, 0, 0, 255}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tex.Sample(tc.u, tc.v); got != tc.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tc.u, tc.v, got, tc.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := Hex(0x404040); got != (color.RGBA{0x40, 0x40, 0x40, 255}) {
		t.Errorf("Hex(0x404040) = %v", got)
	}
}
