package wardrobe

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/fitroom/pkg/assets"
	"github.com/taigrr/fitroom/pkg/scene"
)

// fakeMeshes records requests and lets the test complete them.
type fakeMeshes struct {
	paths   []string
	pending []assets.Callbacks[*scene.Group]
}

func (f *fakeMeshes) Load(path string, cb assets.Callbacks[*scene.Group]) {
	f.paths = append(f.paths, path)
	f.pending = append(f.pending, cb)
}

func (f *fakeMeshes) succeed(t *testing.T) *scene.Group {
	t.Helper()
	cb := f.pop(t)
	root := scene.NewGroup("top2",
		scene.NewMesh("front", scene.NewGeometry(), nil),
		scene.NewGroup("sleeves", scene.NewMesh("sleeve", scene.NewGeometry(), nil)),
	)
	cb.OnLoad(root)
	return root
}

func (f *fakeMeshes) fail(t *testing.T, err error) {
	t.Helper()
	f.pop(t).OnError(err)
}

func (f *fakeMeshes) pop(t *testing.T) assets.Callbacks[*scene.Group] {
	t.Helper()
	if len(f.pending) == 0 {
		t.Fatal("no pending mesh load")
	}
	cb := f.pending[0]
	f.pending = f.pending[1:]
	return cb
}

type fakeTextures struct {
	paths   []string
	pending []assets.Callbacks[*scene.Texture]
}

func (f *fakeTextures) Load(path string, cb assets.Callbacks[*scene.Texture]) {
	f.paths = append(f.paths, path)
	f.pending = append(f.pending, cb)
}

func (f *fakeTextures) pop(t *testing.T) assets.Callbacks[*scene.Texture] {
	t.Helper()
	if len(f.pending) == 0 {
		t.Fatal("no pending texture load")
	}
	cb := f.pending[0]
	f.pending = f.pending[1:]
	return cb
}

type fixture struct {
	scene    *scene.Scene
	meshes   *fakeMeshes
	textures *fakeTextures
	wardrobe *Wardrobe
	events   []Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		scene:    scene.New(scene.Hex(0xffffff)),
		meshes:   &fakeMeshes{},
		textures: &fakeTextures{},
	}
	w, err := New(f.scene, f.meshes, f.textures, Defaults())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w.OnChange(func(ev Event) { f.events = append(f.events, ev) })
	f.wardrobe = w
	return f
}

// load drives a garment from Absent to Visible.
func (f *fixture) load(t *testing.T, m *Manager) (*scene.Group, *scene.Texture) {
	t.Helper()
	m.Activate()
	root := f.meshes.succeed(t)
	tex := scene.NewTexture("swatch", 1, 1)
	f.textures.pop(t).OnLoad(tex)
	return root, tex
}

func TestUpperClothesScenario(t *testing.T) {
	f := newFixture(t)
	m := f.wardrobe.UpperClothes

	m.Activate()
	if m.State() != Loading {
		t.Fatalf("state = %v, want loading", m.State())
	}
	if len(f.meshes.paths) != 1 || f.meshes.paths[0] != "top2.obj" {
		t.Fatalf("mesh requests = %v, want [top2.obj]", f.meshes.paths)
	}

	root := f.meshes.succeed(t)
	if len(f.textures.paths) != 1 || f.textures.paths[0] != "top_texture.jpeg" {
		t.Fatalf("texture requests = %v, want [top_texture.jpeg]", f.textures.paths)
	}
	if f.scene.Contains(m.Object()) {
		t.Fatal("garment added before its texture was bound")
	}

	tex := scene.NewTexture("top_texture", 1, 1)
	f.textures.pop(t).OnLoad(tex)

	for _, mesh := range scene.Meshes(root) {
		if mesh.Material.Map != tex {
			t.Errorf("mesh %q not bound to texture", mesh.Name)
		}
	}
	if !f.scene.Contains(m.Object()) {
		t.Fatal("garment not added to scene")
	}
	if m.State() != Visible || !m.Visible() || !m.Object().Visible {
		t.Fatalf("after load: state %v, visible %v/%v", m.State(), m.Visible(), m.Object().Visible)
	}

	m.Activate()
	if m.State() != Hidden || m.Object().Visible {
		t.Errorf("second press: state %v, object visible %v", m.State(), m.Object().Visible)
	}

	m.Activate()
	if m.State() != Visible || !m.Object().Visible {
		t.Errorf("third press: state %v, object visible %v", m.State(), m.Object().Visible)
	}

	if len(f.meshes.paths) != 1 || len(f.textures.paths) != 1 {
		t.Errorf("loads = %d mesh, %d texture, want 1 each", len(f.meshes.paths), len(f.textures.paths))
	}
	if n := len(f.scene.Objects()); n != 1 {
		t.Errorf("scene has %d objects, want 1", n)
	}
}

func TestActivationsAlternateAfterLoad(t *testing.T) {
	f := newFixture(t)
	m := f.wardrobe.Shoes
	f.load(t, m)

	for i := range 10 {
		m.Activate()
		wantVisible := i%2 == 1
		if m.Visible() != wantVisible || m.Object().Visible != wantVisible {
			t.Fatalf("press %d: visible = %v, want %v", i+2, m.Visible(), wantVisible)
		}
	}
	if len(f.meshes.paths) != 1 || len(f.textures.paths) != 1 {
		t.Errorf("loads = %d mesh, %d texture, want 1 each", len(f.meshes.paths), len(f.textures.paths))
	}
}

func TestActivationsIgnoredWhileLoading(t *testing.T) {
	f := newFixture(t)
	m := f.wardrobe.LowerClothes

	for range 5 {
		m.Activate()
	}
	if len(f.meshes.paths) != 1 {
		t.Fatalf("mesh requests = %d, want 1", len(f.meshes.paths))
	}

	f.meshes.succeed(t)
	m.Activate()
	if m.State() != Loading || len(f.textures.paths) != 1 {
		t.Errorf("press during texture load: state %v, %d texture loads", m.State(), len(f.textures.paths))
	}
}

func TestMeshFailureIsTerminal(t *testing.T) {
	f := newFixture(t)
	m := f.wardrobe.Accessories
	loadErr := &assets.LoadError{Path: "hat.obj", Kind: assets.KindMesh, Err: errors.New("404")}

	m.Activate()
	f.meshes.fail(t, loadErr)

	if m.State() != Failed {
		t.Fatalf("state = %v, want failed", m.State())
	}
	if !errors.Is(m.Err(), loadErr) {
		t.Errorf("Err() = %v, want %v", m.Err(), loadErr)
	}

	for range 3 {
		m.Activate()
	}
	if len(f.meshes.paths) != 1 || len(f.textures.paths) != 0 {
		t.Errorf("loads after failure = %d mesh, %d texture", len(f.meshes.paths), len(f.textures.paths))
	}
	if m.Object() != nil || len(f.scene.Objects()) != 0 {
		t.Error("failed garment should never reach the scene")
	}
	if m.Visible() {
		t.Error("failed garment should not be visible")
	}
}

func TestTextureFailureStillShowsGarment(t *testing.T) {
	f := newFixture(t)
	m := f.wardrobe.UpperClothes

	m.Activate()
	root := f.meshes.succeed(t)
	f.textures.pop(t).OnError(errors.New("decode failed"))

	if m.State() != Visible || !f.scene.Contains(m.Object()) {
		t.Fatalf("state = %v, in scene = %v", m.State(), f.scene.Contains(m.Object()))
	}
	for _, mesh := range scene.Meshes(root) {
		if mesh.Material.Map != nil {
			t.Errorf("mesh %q has a map after texture failure", mesh.Name)
		}
	}
}

func TestTransformApplied(t *testing.T) {
	f := newFixture(t)
	m := f.wardrobe.LowerClothes
	f.load(t, m)

	obj := m.Object()
	if obj.Position != (mgl64.Vec3{0, 0, -0.8}) {
		t.Errorf("position = %v", obj.Position)
	}
	if obj.Scale != (mgl64.Vec3{0.29, 0.37, 0.26}) {
		t.Errorf("scale = %v", obj.Scale)
	}
	if math.Abs(obj.Rotation[0]-3*math.Pi/2) > 1e-12 {
		t.Errorf("rotation x = %v, want 3pi/2", obj.Rotation[0])
	}
	if obj.Name != LowerClothesID {
		t.Errorf("object name = %q", obj.Name)
	}
}

func TestOnChangeEvents(t *testing.T) {
	f := newFixture(t)
	f.load(t, f.wardrobe.Shoes)
	f.wardrobe.Shoes.Activate()

	want := []Event{
		{ID: ShoesID, State: "loading"},
		{ID: ShoesID, State: "visible", Visible: true},
		{ID: ShoesID, State: "hidden"},
	}
	if len(f.events) != len(want) {
		t.Fatalf("got %d events %v, want %v", len(f.events), f.events, want)
	}
	for i := range want {
		if f.events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, f.events[i], want[i])
		}
	}
}

func TestWardrobeRoutesByID(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		id   string
		mesh string
	}{
		{UpperClothesID, "top2.obj"},
		{LowerClothesID, "bottom.obj"},
		{AccessoriesID, "hat.obj"},
		{ShoesID, "shoes.obj"},
	}
	for i, tt := range tests {
		if err := f.wardrobe.Activate(tt.id); err != nil {
			t.Fatalf("Activate(%q) failed: %v", tt.id, err)
		}
		if got := f.meshes.paths[i]; got != tt.mesh {
			t.Errorf("Activate(%q) loaded %q, want %q", tt.id, got, tt.mesh)
		}
	}

	if err := f.wardrobe.Activate("cape-btn"); !errors.Is(err, ErrUnknownGarment) {
		t.Errorf("unknown id error = %v, want ErrUnknownGarment", err)
	}
}

func TestForKey(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		key  string
		want *Manager
	}{
		{"1", f.wardrobe.UpperClothes},
		{"u", f.wardrobe.UpperClothes},
		{"2", f.wardrobe.LowerClothes},
		{"a", f.wardrobe.Accessories},
		{"s", f.wardrobe.Shoes},
	}
	for _, tt := range tests {
		got, ok := f.wardrobe.ForKey(tt.key)
		if !ok || got != tt.want {
			t.Errorf("ForKey(%q) = %v, %v", tt.key, got, ok)
		}
	}
	if _, ok := f.wardrobe.ForKey("x"); ok {
		t.Error("ForKey(x) should not match")
	}
}

func TestNewValidatesGarmentTable(t *testing.T) {
	s := scene.New(scene.Hex(0))
	defaults := Defaults()

	tests := []struct {
		name     string
		garments []Garment
		wantErr  bool
	}{
		{"defaults", defaults, false},
		{"missing", defaults[:3], true},
		{"duplicate", append(append([]Garment{}, defaults...), defaults[0]), true},
		{"unknown", append(append([]Garment{}, defaults...), Garment{ID: "cape-btn"}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(s, &fakeMeshes{}, &fakeTextures{}, tt.garments)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t)
	f.wardrobe.Accessories.Activate()

	snap := f.wardrobe.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("snapshot has %d entries", len(snap))
	}
	if snap[2] != (Event{ID: AccessoriesID, State: "loading"}) {
		t.Errorf("accessories = %+v", snap[2])
	}
	if snap[0].State != "absent" {
		t.Errorf("upper clothes = %+v", snap[0])
	}
}
