package core

import (
	"math"
	"testing"
)

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func vecApproxEq(a, b Vec3) bool {
	return approxEq(a.X, b.X) && approxEq(a.Y, b.Y) && approxEq(a.Z, b.Z)
}

func TestVec3Arithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -5, 6)

	if got := a.Add(b); got != V3(5, -3, 9) {
		t.Errorf("Add = %v, expected (5, -3, 9)", got)
	}
	if got := a.Sub(b); got != V3(-3, 7, -3) {
		t.Errorf("Sub = %v, expected (-3, 7, -3)", got)
	}
	if got := a.Scale(2); got != V3(2, 4, 6) {
		t.Errorf("Scale = %v, expected (2, 4, 6)", got)
	}
	if got := a.Dot(b); got != 12 {
		t.Errorf("Dot = %v, expected 12", got)
	}
}

func TestVec3LenDist(t *testing.T) {
	v := V3(3, 4, 0)
	if !approxEq(v.Len(), 5) {
		t.Errorf("Len = %v, expected 5", v.Len())
	}

	a := V3(1, 1, 1)
	b := V3(1, 1, 3)
	if !approxEq(a.Dist(b), 2) {
		t.Errorf("Dist = %v, expected 2", a.Dist(b))
	}
}

func TestVec3Normalize(t *testing.T) {
	v := V3(0, 10, 0).Normalize()
	if !vecApproxEq(v, V3(0, 1, 0)) {
		t.Errorf("Normalize = %v, expected (0, 1, 0)", v)
	}

	// Zero vector stays zero instead of producing NaN.
	z := Vec3{}.Normalize()
	if z != (Vec3{}) {
		t.Errorf("Normalize of zero = %v, expected zero", z)
	}
}

func TestQuatIdentityRotation(t *testing.T) {
	v := V3(1, 2, -3)
	got := QuatIdentity().Rotate(v)
	if !vecApproxEq(got, v) {
		t.Errorf("identity rotation moved %v to %v", v, got)
	}

	fwd := QuatIdentity().Forward()
	if !vecApproxEq(fwd, V3(0, 0, -1)) {
		t.Errorf("identity forward = %v, expected (0, 0, -1)", fwd)
	}
}

func TestQuatYaw(t *testing.T) {
	// Positive yaw of 90 degrees turns the -Z forward toward -X.
	q := QuatYawPitch(math.Pi/2, 0)
	got := q.Forward()
	if !vecApproxEq(got, V3(-1, 0, 0)) {
		t.Errorf("forward after yaw 90 = %v, expected (-1, 0, 0)", got)
	}
}

func TestQuatPitch(t *testing.T) {
	// Positive pitch of 90 degrees tilts the forward vector straight up.
	q := QuatYawPitch(0, math.Pi/2)
	got := q.Forward()
	if !vecApproxEq(got, V3(0, 1, 0)) {
		t.Errorf("forward after pitch 90 = %v, expected (0, 1, 0)", got)
	}
}

func TestQuatYawPitchComposition(t *testing.T) {
	// Pitch applies in the yawed frame: yaw 90 then pitch 45 must keep the
	// forward vector in the -X / +Y plane.
	q := QuatYawPitch(math.Pi/2, math.Pi/4)
	got := q.Forward()
	inv := math.Sqrt(2) / 2
	if !vecApproxEq(got, V3(-inv, inv, 0)) {
		t.Errorf("forward after yaw 90 pitch 45 = %v, expected (%v, %v, 0)", got, -inv, inv)
	}
}

func TestQuatConjInverts(t *testing.T) {
	q := QuatYawPitch(0.7, -0.3)
	v := V3(2, -1, 5)
	back := q.Conj().Rotate(q.Rotate(v))
	if !vecApproxEq(back, v) {
		t.Errorf("conjugate did not invert rotation: %v -> %v", v, back)
	}
}

func TestQuatRotationPreservesLength(t *testing.T) {
	q := QuatYawPitch(1.1, 0.4)
	v := V3(3, -2, 7)
	if !approxEq(q.Rotate(v).Len(), v.Len()) {
		t.Errorf("rotation changed length: %v vs %v", q.Rotate(v).Len(), v.Len())
	}
}
