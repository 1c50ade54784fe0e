package gallery

import (
	"math"
	"testing"

	"github.com/vovakirdan/chromashot/internal/core"
)

func vecNear(a, b core.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestSpawnVelocityAndLifetime(t *testing.T) {
	p := NewProjectiles(10, 1)
	id := p.Spawn(core.V3(0, 0, 0), core.QuatIdentity(), ColorBlue)

	if p.Len() != 1 {
		t.Fatalf("Spawn should register one bolt, got %d", p.Len())
	}
	b := p.Live()[0]
	if b.ID != id {
		t.Errorf("Live bolt should carry the returned id %d, got %d", id, b.ID)
	}
	if !vecNear(b.Vel, core.V3(0, 0, -10), 1e-9) {
		t.Errorf("Identity orientation should fire along -Z at speed 10, got %+v", b.Vel)
	}
	if b.TTL != 1 {
		t.Errorf("Fresh bolt should have full lifetime, got %f", b.TTL)
	}
	if b.Color != ColorBlue {
		t.Errorf("Bolt should keep its charge color, got %v", b.Color)
	}

	id2 := p.Spawn(core.V3(0, 0, 0), core.QuatIdentity(), ColorRed)
	if id2 <= id {
		t.Errorf("Bolt ids should be monotonic, got %d after %d", id2, id)
	}
}

func TestSpawnDirectionFollowsOrientation(t *testing.T) {
	p := NewProjectiles(10, 1)

	// Quarter turn left: -Z rotates onto -X.
	p.Spawn(core.V3(0, 0, 0), core.QuatYawPitch(math.Pi/2, 0), ColorGreen)
	if b := p.Live()[0]; !vecNear(b.Vel, core.V3(-10, 0, 0), 1e-9) {
		t.Errorf("Yaw 90 should fire along -X, got %+v", b.Vel)
	}

	// Quarter turn up: -Z rotates onto +Y.
	p.Spawn(core.V3(0, 0, 0), core.QuatYawPitch(0, math.Pi/2), ColorGreen)
	if b := p.Live()[1]; !vecNear(b.Vel, core.V3(0, 10, 0), 1e-9) {
		t.Errorf("Pitch 90 should fire along +Y, got %+v", b.Vel)
	}
}

func TestAdvanceMovesAndAges(t *testing.T) {
	p := NewProjectiles(10, 1)
	p.Spawn(core.V3(0, 0, 0), core.QuatIdentity(), ColorBlue)

	p.Advance(0.5)

	b := p.Live()[0]
	if !vecNear(b.Pos, core.V3(0, 0, -5), 1e-9) {
		t.Errorf("Bolt should travel 5 units in 0.5s, got %+v", b.Pos)
	}
	if b.TTL != 0.5 {
		t.Errorf("Bolt should age by the advance delta, got TTL %f", b.TTL)
	}
}

func TestExpireRemovesSpentBolts(t *testing.T) {
	p := NewProjectiles(10, 1)
	p.Spawn(core.V3(0, 0, 0), core.QuatIdentity(), ColorBlue)
	p.Advance(0.6)
	second := p.Spawn(core.V3(0, 0, 0), core.QuatIdentity(), ColorRed)
	p.Advance(0.5)

	// The older bolt is past its lifetime, the younger has half left.
	if removed := p.Expire(); removed != 1 {
		t.Fatalf("Expire should drop exactly the spent bolt, removed %d", removed)
	}
	if p.Len() != 1 || p.Live()[0].ID != second {
		t.Errorf("Survivor should be the younger bolt %d, got %+v", second, p.Live())
	}
}

func TestExpireAtExactLifetime(t *testing.T) {
	p := NewProjectiles(10, 1)
	p.Spawn(core.V3(0, 0, 0), core.QuatIdentity(), ColorBlue)

	// Deltas summing to exactly the lifetime remove the bolt.
	p.Advance(0.5)
	p.Advance(0.5)

	if removed := p.Expire(); removed != 1 {
		t.Errorf("A bolt aged to exactly zero should expire, removed %d", removed)
	}
	if p.Len() != 0 {
		t.Errorf("No bolts should survive, got %d", p.Len())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	p := NewProjectiles(10, 1)
	a := p.Spawn(core.V3(0, 0, 0), core.QuatIdentity(), ColorBlue)
	p.Spawn(core.V3(0, 0, 0), core.QuatIdentity(), ColorRed)

	if !p.Remove(a) {
		t.Error("Removing a live bolt should report true")
	}
	if p.Remove(a) {
		t.Error("Removing the same bolt twice should report false")
	}
	if p.Len() != 1 {
		t.Errorf("One bolt should remain, got %d", p.Len())
	}
}

func TestClearDropsAllBolts(t *testing.T) {
	p := NewProjectiles(10, 1)
	for i := 0; i < 3; i++ {
		p.Spawn(core.V3(0, 0, 0), core.QuatIdentity(), ColorBlue)
	}

	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Clear should drop every bolt, got %d", p.Len())
	}
}
