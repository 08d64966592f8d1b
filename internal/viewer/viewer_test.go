package viewer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"rolling-sphere/internal/geometry"
)

func TestMeshScale(t *testing.T) {
	cases := []struct {
		kind string
		dims []float64
		want mgl64.Vec3
		ok   bool
	}{
		{"box", []float64{5, 5, 1}, mgl64.Vec3{5, 5, 1}, true},
		{"sphere", []float64{0.05}, mgl64.Vec3{0.1, 0.1, 0.1}, true},
		{"cylinder", []float64{0.5, 2}, mgl64.Vec3{1, 1, 2}, true},
		{"sphere", []float64{1, 2}, mgl64.Vec3{}, false},
		{"capsule", []float64{1, 2}, mgl64.Vec3{}, false},
	}
	for _, c := range cases {
		got, ok := meshScale(c.kind, c.dims)
		if ok != c.ok || !got.ApproxEqual(c.want) {
			t.Errorf("meshScale(%s, %v) = %v, %v", c.kind, c.dims, got, ok)
		}
	}
}

func TestModelMatrix_Translation(t *testing.T) {
	pose := geometry.Translation(mgl64.Vec3{1, 2, 3})
	m, ok := modelMatrix(pose, "sphere", []float64{0.5})
	if !ok {
		t.Fatal("modelMatrix failed")
	}
	if m.M12 != 1 || m.M13 != 2 || m.M14 != 3 || m.M0 != 1 || m.M15 != 1 {
		t.Fatalf("matrix=%+v", m)
	}
}

func TestMeshCorrection_CylinderAxis(t *testing.T) {
	// The raylib cylinder spans y in [0, 1]; after correction it spans z in [-0.5, 0.5].
	c := meshCorrection("cylinder")
	top := c.Mul4x1(mgl64.Vec4{0, 1, 0, 1})
	bottom := c.Mul4x1(mgl64.Vec4{0, 0, 0, 1})
	if math.Abs(top.Z()-0.5) > 1e-12 || math.Abs(bottom.Z()+0.5) > 1e-12 {
		t.Fatalf("top=%v bottom=%v", top, bottom)
	}
}

func TestToColor(t *testing.T) {
	c := toColor(geometry.Rgba{R: 1, G: 0.55, B: -1, A: 2})
	if c.R != 255 || c.G != 140 || c.B != 0 || c.A != 255 {
		t.Fatalf("color=%+v", c)
	}
}
