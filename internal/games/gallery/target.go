package gallery

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/chromashot/internal/config"
	"github.com/vovakirdan/chromashot/internal/core"
)

// TargetID indexes a target slot. The field size is constant for the
// process lifetime; slots are hidden and relocated, never removed.
type TargetID int

// Target is one orb slot in the field.
type Target struct {
	ID      TargetID
	Pos     core.Vec3
	Color   Color
	Visible bool

	// Scale is the orb's presence, 1 at rest. A hit tweens it to 0 over
	// the shrink duration before the slot hides and a respawn is
	// scheduled.
	Scale       float64
	Shrinking   bool
	ShrinkStart float64 // simulation time the shrink began
}

// Hittable reports whether a bolt can consume this target: it must be
// visible and not already consumed by a running shrink tween.
func (t Target) Hittable() bool {
	return t.Visible && !t.Shrinking
}

// Field owns the target slots: initial ring placement, hit lookups and
// respawn repositioning. Phase gating lives in the collision pass; the
// field itself only tracks visibility.
type Field struct {
	targets []Target
	cfg     config.TargetsConfig
}

// NewField creates a field with cfg.Count empty slots. Populate places
// them.
func NewField(cfg config.TargetsConfig) *Field {
	f := &Field{
		cfg:     cfg,
		targets: make([]Target, cfg.Count),
	}
	for i := range f.targets {
		f.targets[i].ID = TargetID(i)
	}
	return f
}

// Populate places every slot on a ring around the origin: evenly spaced
// bearings with angular jitter, radius jittered around the ring radius,
// height uniform in the configured band around eye level, color drawn
// uniformly from the palette.
func (f *Field) Populate(rng *rand.Rand) {
	slot := 2 * math.Pi / float64(len(f.targets))
	for i := range f.targets {
		angle := slot*float64(i) + (rng.Float64()-0.5)*slot*0.5
		radius := f.cfg.RingRadius + (rng.Float64()*2-1)*f.cfg.RadiusJitter
		f.targets[i].Pos = f.ringPoint(rng, angle, radius)
		f.targets[i].Color = randomColor(rng)
		f.targets[i].Visible = true
		f.targets[i].Scale = 1
		f.targets[i].Shrinking = false
	}
}

// RespawnOne relocates a hit slot to a fresh random bearing. The radius
// band is wider than at initial population to add variety, the color is
// re-rolled (and may repeat), and the slot becomes visible at full scale.
func (f *Field) RespawnOne(id TargetID, rng *rand.Rand) {
	t := f.Get(id)
	if t == nil {
		return
	}
	angle := rng.Float64() * 2 * math.Pi
	radius := f.cfg.RingRadius + (rng.Float64()*2-1)*f.cfg.RespawnRadiusJitter
	t.Pos = f.ringPoint(rng, angle, radius)
	t.Color = randomColor(rng)
	t.Visible = true
	t.Scale = 1
	t.Shrinking = false
}

// ringPoint converts a bearing and radius into a world position with a
// randomized height. Bearing 0 is straight ahead along -Z.
func (f *Field) ringPoint(rng *rand.Rand, angle, radius float64) core.Vec3 {
	height := f.cfg.HeightCenter + (rng.Float64()*2-1)*f.cfg.HeightSpread
	return core.V3(radius*math.Sin(angle), height, -radius*math.Cos(angle))
}

// RevealAll forces every slot visible at full scale, discarding any
// in-flight shrink state. Called by Prepare.
func (f *Field) RevealAll() {
	for i := range f.targets {
		f.targets[i].Visible = true
		f.targets[i].Scale = 1
		f.targets[i].Shrinking = false
	}
}

// HideAll hides every slot. Called on the GameOver transition.
func (f *Field) HideAll() {
	for i := range f.targets {
		f.targets[i].Visible = false
		f.targets[i].Shrinking = false
	}
}

// BeginShrink marks a slot consumed so it stops answering hit tests while
// its scale tweens to zero. now is the simulation time of the hit.
func (f *Field) BeginShrink(id TargetID, now float64) {
	if t := f.Get(id); t != nil {
		t.Shrinking = true
		t.ShrinkStart = now
	}
}

// SetScale updates a slot's tweened presence.
func (f *Field) SetScale(id TargetID, scale float64) {
	if t := f.Get(id); t != nil {
		t.Scale = core.ClampF(scale, 0, 1)
	}
}

// Hide makes a slot invisible at the end of its shrink tween.
func (f *Field) Hide(id TargetID) {
	if t := f.Get(id); t != nil {
		t.Visible = false
		t.Shrinking = false
		t.Scale = 0
	}
}

// HitTest returns the hittable slots within radius of p, in slot order.
// Callers gate on phase: only a Playing round consults the field.
func (f *Field) HitTest(p core.Vec3, radius float64) []TargetID {
	var hits []TargetID
	for i := range f.targets {
		if !f.targets[i].Hittable() {
			continue
		}
		if f.targets[i].Pos.Dist(p) <= radius {
			hits = append(hits, f.targets[i].ID)
		}
	}
	return hits
}

// Get returns the slot with the given id, nil if out of range.
func (f *Field) Get(id TargetID) *Target {
	if id < 0 || int(id) >= len(f.targets) {
		return nil
	}
	return &f.targets[id]
}

// All returns the backing slot slice for iteration and rendering.
func (f *Field) All() []Target {
	return f.targets
}

// Count returns the fixed field size.
func (f *Field) Count() int {
	return len(f.targets)
}

// VisibleCount returns how many slots are currently visible.
func (f *Field) VisibleCount() int {
	n := 0
	for i := range f.targets {
		if f.targets[i].Visible {
			n++
		}
	}
	return n
}
