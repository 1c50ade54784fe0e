package gallery

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/chromashot/internal/config"
	"github.com/vovakirdan/chromashot/internal/core"
)

func testFieldConfig() config.TargetsConfig {
	return config.TargetsConfig{
		Count:               12,
		RingRadius:          6.0,
		RadiusJitter:        0.5,
		RespawnRadiusJitter: 1.5,
		HeightCenter:        1.6,
		HeightSpread:        0.8,
		HitRadius:           1.0,
		ShrinkSeconds:       0.3,
		RespawnDelaySeconds: 1.0,
	}
}

func horizontalRadius(p core.Vec3) float64 {
	return math.Sqrt(p.X*p.X + p.Z*p.Z)
}

func TestPopulatePlacesAllOnRing(t *testing.T) {
	cfg := testFieldConfig()
	f := NewField(cfg)
	f.Populate(rand.New(rand.NewSource(1)))

	if f.Count() != 12 {
		t.Fatalf("Field should have 12 slots, got %d", f.Count())
	}
	for _, tgt := range f.All() {
		if !tgt.Visible || tgt.Scale != 1 || tgt.Shrinking {
			t.Errorf("Slot %d should start visible at full scale, got %+v", tgt.ID, tgt)
		}
		r := horizontalRadius(tgt.Pos)
		if r < cfg.RingRadius-cfg.RadiusJitter || r > cfg.RingRadius+cfg.RadiusJitter {
			t.Errorf("Slot %d radius %f outside the jittered ring band", tgt.ID, r)
		}
		if tgt.Pos.Y < cfg.HeightCenter-cfg.HeightSpread || tgt.Pos.Y > cfg.HeightCenter+cfg.HeightSpread {
			t.Errorf("Slot %d height %f outside the eye-level band", tgt.ID, tgt.Pos.Y)
		}
		if tgt.Color >= ColorCount {
			t.Errorf("Slot %d has out-of-palette color %d", tgt.ID, tgt.Color)
		}
	}
}

func TestPopulateSpreadsBearings(t *testing.T) {
	f := NewField(testFieldConfig())
	f.Populate(rand.New(rand.NewSource(2)))

	// Slots are evenly spaced with at most half a slot of jitter, so two
	// neighbouring bearings can never coincide.
	slot := 2 * math.Pi / 12
	for i, tgt := range f.All() {
		bearing := math.Atan2(tgt.Pos.X, -tgt.Pos.Z)
		if bearing < 0 {
			bearing += 2 * math.Pi
		}
		want := slot * float64(i)
		diff := math.Abs(bearing - want)
		if diff > math.Pi {
			diff = 2*math.Pi - diff
		}
		if diff > slot*0.5+1e-9 {
			t.Errorf("Slot %d bearing %f strayed %f from its lane center %f", i, bearing, diff, want)
		}
	}
}

func TestHitTestFiltersByDistanceAndState(t *testing.T) {
	cfg := testFieldConfig()
	cfg.Count = 3
	f := NewField(cfg)

	near := f.Get(0)
	near.Pos = core.V3(0, 1.6, -2)
	near.Visible = true
	near.Scale = 1

	far := f.Get(1)
	far.Pos = core.V3(0, 1.6, -9)
	far.Visible = true
	far.Scale = 1

	hidden := f.Get(2)
	hidden.Pos = core.V3(0, 1.6, -2.5)
	hidden.Visible = false

	hits := f.HitTest(core.V3(0, 1.6, -2), 1.0)
	if len(hits) != 1 || hits[0] != 0 {
		t.Fatalf("Only the near visible slot should answer, got %v", hits)
	}

	// A shrinking slot is consumed and must stop answering.
	f.BeginShrink(0, 0)
	if hits := f.HitTest(core.V3(0, 1.6, -2), 1.0); len(hits) != 0 {
		t.Errorf("A shrinking slot should not answer hit tests, got %v", hits)
	}
}

func TestHitTestBoundaryIsInclusive(t *testing.T) {
	cfg := testFieldConfig()
	cfg.Count = 1
	f := NewField(cfg)

	tgt := f.Get(0)
	tgt.Pos = core.V3(0, 0, -3)
	tgt.Visible = true
	tgt.Scale = 1

	if hits := f.HitTest(core.V3(0, 0, -2), 1.0); len(hits) != 1 {
		t.Errorf("A bolt at exactly the hit radius should connect, got %v", hits)
	}
	if hits := f.HitTest(core.V3(0, 0, -1.9), 1.0); len(hits) != 0 {
		t.Errorf("A bolt outside the hit radius should not connect, got %v", hits)
	}
}

func TestShrinkHideRespawnCycle(t *testing.T) {
	cfg := testFieldConfig()
	f := NewField(cfg)
	rng := rand.New(rand.NewSource(3))
	f.Populate(rng)

	f.BeginShrink(5, 2.0)
	tgt := f.Get(5)
	if !tgt.Shrinking || tgt.ShrinkStart != 2.0 {
		t.Fatalf("BeginShrink should mark the slot and stamp the time, got %+v", tgt)
	}
	if tgt.Hittable() {
		t.Error("A shrinking slot should not be hittable")
	}

	f.SetScale(5, 0.4)
	if tgt.Scale != 0.4 {
		t.Errorf("SetScale should update presence, got %f", tgt.Scale)
	}

	f.Hide(5)
	if tgt.Visible || tgt.Shrinking || tgt.Scale != 0 {
		t.Errorf("Hide should zero the slot, got %+v", tgt)
	}

	f.RespawnOne(5, rng)
	if !tgt.Visible || tgt.Scale != 1 || tgt.Shrinking {
		t.Errorf("Respawn should reveal at full scale, got %+v", tgt)
	}
	r := horizontalRadius(tgt.Pos)
	if r < cfg.RingRadius-cfg.RespawnRadiusJitter || r > cfg.RingRadius+cfg.RespawnRadiusJitter {
		t.Errorf("Respawn radius %f outside the widened band", r)
	}
	if tgt.Pos.Y < cfg.HeightCenter-cfg.HeightSpread || tgt.Pos.Y > cfg.HeightCenter+cfg.HeightSpread {
		t.Errorf("Respawn height %f outside the eye-level band", tgt.Pos.Y)
	}
}

func TestHideAllRevealAll(t *testing.T) {
	f := NewField(testFieldConfig())
	f.Populate(rand.New(rand.NewSource(4)))

	f.HideAll()
	if f.VisibleCount() != 0 {
		t.Errorf("HideAll should hide every slot, %d still visible", f.VisibleCount())
	}

	f.RevealAll()
	if f.VisibleCount() != f.Count() {
		t.Errorf("RevealAll should reveal every slot, got %d of %d", f.VisibleCount(), f.Count())
	}
	for _, tgt := range f.All() {
		if tgt.Scale != 1 || tgt.Shrinking {
			t.Errorf("RevealAll should rescale slot %d to full, got %+v", tgt.ID, tgt)
		}
	}
}

func TestGetOutOfRange(t *testing.T) {
	f := NewField(testFieldConfig())
	if f.Get(-1) != nil || f.Get(TargetID(f.Count())) != nil {
		t.Error("Get outside the slot range should return nil")
	}
}
