package controls

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/taigrr/fitroom/pkg/render"
)

func newTestCamera() *render.Camera {
	cam := render.NewCamera(75, 16.0/9.0, 0.1, 1000)
	cam.SetPosition(mgl64.Vec3{1.5, 35, 30})
	cam.LookAt(mgl64.Vec3{})
	return cam
}

func TestFirstUpdateClampsPolarAngle(t *testing.T) {
	cam := newTestCamera()
	startRadius := cam.Position.Len()
	c := New(cam, DefaultOptions())

	if !c.Update() {
		t.Error("first update should move the camera onto the horizontal orbit")
	}
	if math.Abs(c.Polar()-math.Pi/2) > 1e-12 {
		t.Errorf("polar = %v, want pi/2", c.Polar())
	}
	if math.Abs(cam.Position[1]) > 1e-9 {
		t.Errorf("camera height = %v, want 0 (level with target)", cam.Position[1])
	}
	if math.Abs(cam.Position.Len()-startRadius) > 1e-9 {
		t.Errorf("radius = %v, want %v", cam.Position.Len(), startRadius)
	}
	if cam.Target != (mgl64.Vec3{}) {
		t.Errorf("camera target = %v, want origin", cam.Target)
	}
}

func TestVerticalDragIsNoOp(t *testing.T) {
	cam := newTestCamera()
	c := New(cam, DefaultOptions())
	c.Update()
	before := cam.Position

	c.Rotate(0, 50, 100)
	for range 200 {
		c.Update()
	}

	if !cam.Position.ApproxEqualThreshold(before, 1e-9) {
		t.Errorf("vertical drag moved camera from %v to %v", before, cam.Position)
	}
}

func TestDampedRotationConverges(t *testing.T) {
	cam := newTestCamera()
	c := New(cam, DefaultOptions())
	c.Update()
	start := c.Azimuth()

	// A quarter-height drag is a quarter turn
	c.Rotate(25, 0, 100)
	want := start - math.Pi/2

	c.Update()
	firstStep := start - c.Azimuth()
	if math.Abs(firstStep-math.Pi/2*0.05) > 1e-12 {
		t.Errorf("first damped step = %v, want %v", firstStep, math.Pi/2*0.05)
	}

	for range 1000 {
		c.Update()
	}
	if math.Abs(c.Azimuth()-want) > 1e-6 {
		t.Errorf("azimuth converged to %v, want %v", c.Azimuth(), want)
	}
}

func TestUndampedRotationAppliesImmediately(t *testing.T) {
	opts := DefaultOptions()
	opts.EnableDamping = false
	cam := newTestCamera()
	c := New(cam, opts)
	c.Update()
	start := c.Azimuth()

	c.Rotate(-50, 0, 100)
	c.Update()
	if math.Abs(c.Azimuth()-(start+math.Pi)) > 1e-12 {
		t.Errorf("azimuth = %v, want %v", c.Azimuth(), start+math.Pi)
	}

	c.Update()
	if math.Abs(c.Azimuth()-(start+math.Pi)) > 1e-12 {
		t.Error("undamped delta should be cleared after one update")
	}
}

func TestRotateDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.EnableRotate = false
	c := New(newTestCamera(), opts)
	c.Update()
	start := c.Azimuth()

	c.Rotate(40, 0, 100)
	c.Update()
	if c.Azimuth() != start {
		t.Errorf("azimuth changed to %v with rotation disabled", c.Azimuth())
	}
}

func TestDollyClampsDistance(t *testing.T) {
	opts := DefaultOptions()
	opts.MinDistance = 10
	opts.MaxDistance = 60
	cam := newTestCamera()
	c := New(cam, opts)

	c.Dolly(500)
	for range 600 {
		c.Update()
	}
	if math.Abs(c.Distance()-10) > 1e-3 {
		t.Errorf("distance after zooming in = %v, want 10", c.Distance())
	}

	c.Dolly(-500)
	for range 600 {
		c.Update()
	}
	if math.Abs(c.Distance()-60) > 1e-3 {
		t.Errorf("distance after zooming out = %v, want 60", c.Distance())
	}
	if math.Abs(cam.Position.Sub(c.Target).Len()-c.Distance()) > 1e-9 {
		t.Error("camera distance should match controller distance")
	}
}

func TestSphericalRoundTrip(t *testing.T) {
	v := mgl64.Vec3{1.5, 35, 30}
	r, theta, phi := toSpherical(v)
	if got := fromSpherical(r, theta, phi); !got.ApproxEqualThreshold(v, 1e-9) {
		t.Errorf("round trip = %v, want %v", got, v)
	}
}
