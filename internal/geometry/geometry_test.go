package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestShapes_RejectBadDimensions(t *testing.T) {
	cases := []struct {
		name string
		make func() error
	}{
		{"box zero", func() error { _, err := NewBox(1, 0, 1); return err }},
		{"cube negative", func() error { _, err := NewCube(-5); return err }},
		{"sphere nan", func() error { _, err := NewSphere(math.NaN()); return err }},
		{"cylinder inf length", func() error { _, err := NewCylinder(1, math.Inf(1)); return err }},
		{"cylinder zero radius", func() error { _, err := NewCylinder(0, 1); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.make(); !errors.Is(err, ErrInvalidShape) {
				t.Fatalf("err=%v, want ErrInvalidShape", err)
			}
		})
	}
}

func TestShapes_KindVolumeDimensions(t *testing.T) {
	box, _ := NewCube(2)
	sph, _ := NewSphere(1)
	cyl, _ := NewCylinder(1, 2)

	if box.Kind() != "box" || sph.Kind() != "sphere" || cyl.Kind() != "cylinder" {
		t.Fatalf("kinds: %s %s %s", box.Kind(), sph.Kind(), cyl.Kind())
	}
	if box.Volume() != 8 {
		t.Fatalf("box volume=%v", box.Volume())
	}
	if math.Abs(sph.Volume()-4.0/3.0*math.Pi) > 1e-12 {
		t.Fatalf("sphere volume=%v", sph.Volume())
	}
	if math.Abs(cyl.Volume()-2*math.Pi) > 1e-12 {
		t.Fatalf("cylinder volume=%v", cyl.Volume())
	}
	if d := Dimensions(cyl); len(d) != 2 || d[0] != 1 || d[1] != 2 {
		t.Fatalf("cylinder dims=%v", d)
	}
}

func TestRigidTransform_ComposeAndTransform(t *testing.T) {
	quarterZ := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1})
	X_AB := NewRigidTransform(quarterZ, mgl64.Vec3{1, 0, 0})
	X_BC := Translation(mgl64.Vec3{1, 0, 0})

	p := X_AB.Compose(X_BC).TransformPoint(mgl64.Vec3{})
	want := mgl64.Vec3{1, 1, 0}
	if !p.ApproxEqualThreshold(want, 1e-12) {
		t.Fatalf("p=%v, want %v", p, want)
	}
	if v := Identity().RotateVector(mgl64.Vec3{0, 0, 1}); !v.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Fatalf("identity rotated z to %v", v)
	}
}

func TestNewRgba(t *testing.T) {
	if _, err := NewRgba(1, 0.5, 0, 1); err != nil {
		t.Fatalf("NewRgba: %v", err)
	}
	if _, err := NewRgba(1.5, 0, 0, 1); err == nil {
		t.Fatalf("expected error for channel > 1")
	}
}

func TestProperties_AddUpdateGet(t *testing.T) {
	var p ProximityProperties
	if err := p.AddProperty(MaterialGroup, ElasticModulus, 5e4); err != nil {
		t.Fatalf("AddProperty: %v", err)
	}
	if err := p.AddProperty(MaterialGroup, ElasticModulus, 1.0); !errors.Is(err, ErrPropertyExists) {
		t.Fatalf("second AddProperty err=%v", err)
	}
	p.UpdateProperty(MaterialGroup, ElasticModulus, 1e5)

	v, err := GetAs[float64](&p.Properties, MaterialGroup, ElasticModulus)
	if err != nil || v != 1e5 {
		t.Fatalf("GetAs=%v err=%v", v, err)
	}
	if _, err := GetAs[string](&p.Properties, MaterialGroup, ElasticModulus); err == nil {
		t.Fatalf("expected type mismatch error")
	}
	if _, err := p.Get(MaterialGroup, "missing"); !errors.Is(err, ErrPropertyMissing) {
		t.Fatalf("missing err=%v", err)
	}
	if g := p.GroupNames(); len(g) != 1 || g[0] != MaterialGroup {
		t.Fatalf("groups=%v", g)
	}
}

func TestProperties_CloneIsIndependent(t *testing.T) {
	var p Properties
	p.UpdateProperty("g", "n", 1.0)
	c := p.Clone()
	c.UpdateProperty("g", "n", 2.0)
	c.UpdateProperty("h", "m", true)

	if v, _ := GetAs[float64](&p, "g", "n"); v != 1.0 {
		t.Fatalf("original changed to %v", v)
	}
	if p.HasGroup("h") {
		t.Fatalf("original gained group h")
	}
}

func TestHydroelastic(t *testing.T) {
	var soft ProximityProperties
	if err := AddSoftHydroelasticProperties(0.05, &soft); err != nil {
		t.Fatalf("soft: %v", err)
	}
	c, err := GetAs[HydroelasticCompliance](&soft.Properties, HydroelasticGroup, ComplianceType)
	if err != nil || c != ComplianceSoft {
		t.Fatalf("compliance=%v err=%v", c, err)
	}
	if h, _ := GetAs[float64](&soft.Properties, HydroelasticGroup, ResolutionHint); h != 0.05 {
		t.Fatalf("hint=%v", h)
	}
	if err := AddRigidHydroelasticProperties(1, &soft); !errors.Is(err, ErrPropertyExists) {
		t.Fatalf("re-adding compliance err=%v", err)
	}

	var rigid ProximityProperties
	if err := AddRigidHydroelasticProperties(0, &rigid); err == nil {
		t.Fatalf("expected error for zero resolution hint")
	}
	if rigid.HasGroup(HydroelasticGroup) {
		t.Fatalf("failed call must not modify properties")
	}
}

func newTestInstance(name string) GeometryInstance {
	s, _ := NewSphere(1)
	return NewIllustrationInstance(Identity(), s, name, NewIllustrationProperties(Red))
}

func TestSceneGraph_RegisterAndInspect(t *testing.T) {
	sg := NewSceneGraph()
	src := sg.RegisterSource("plant")
	f, err := sg.RegisterFrame(src, "Ball")
	if err != nil {
		t.Fatalf("RegisterFrame: %v", err)
	}

	id, err := sg.RegisterGeometry(src, f, newTestInstance("visual"))
	if err != nil {
		t.Fatalf("RegisterGeometry: %v", err)
	}
	if _, err := sg.RegisterAnchoredGeometry(src, newTestInstance("visual")); err != nil {
		t.Fatalf("same name on another frame: %v", err)
	}

	if sg.NumGeometries() != 2 || sg.NumGeometriesWithRole(RoleIllustration) != 2 || sg.NumGeometriesWithRole(RoleProximity) != 0 {
		t.Fatalf("counts: total=%d", sg.NumGeometries())
	}
	name, err := sg.ScopedName(id)
	if err != nil || name != "Ball::visual" {
		t.Fatalf("scoped=%q err=%v", name, err)
	}

	g, err := sg.Geometry(id)
	if err != nil {
		t.Fatalf("Geometry: %v", err)
	}
	g.Illustration.UpdateProperty(PhongGroup, Diffuse, Blue)
	again, _ := sg.Geometry(id)
	if c, _ := GetAs[Rgba](&again.Illustration.Properties, PhongGroup, Diffuse); c != Red {
		t.Fatalf("registered record mutated through copy: %v", c)
	}
}

func TestSceneGraph_Errors(t *testing.T) {
	sg := NewSceneGraph()
	src := sg.RegisterSource("a")
	other := sg.RegisterSource("b")
	f, _ := sg.RegisterFrame(src, "body")

	if _, err := sg.RegisterGeometry(src, f, newTestInstance("x")); err != nil {
		t.Fatalf("RegisterGeometry: %v", err)
	}
	if _, err := sg.RegisterGeometry(src, f, newTestInstance("x")); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate err=%v", err)
	}
	if _, err := sg.RegisterGeometry(other, f, newTestInstance("y")); !errors.Is(err, ErrFrameNotOwned) {
		t.Fatalf("foreign frame err=%v", err)
	}
	if _, err := sg.RegisterGeometry(src, FrameID(99), newTestInstance("y")); !errors.Is(err, ErrUnknownFrame) {
		t.Fatalf("unknown frame err=%v", err)
	}
	if _, err := sg.RegisterFrame(SourceID{}, "z"); !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("unknown source err=%v", err)
	}
	bare := newTestInstance("z")
	bare.Illustration = nil
	if _, err := sg.RegisterGeometry(src, f, bare); !errors.Is(err, ErrMissingRole) {
		t.Fatalf("missing role err=%v", err)
	}
	if _, err := sg.Geometry(GeometryID(42)); !errors.Is(err, ErrUnknownGeometry) {
		t.Fatalf("unknown geometry err=%v", err)
	}
}
