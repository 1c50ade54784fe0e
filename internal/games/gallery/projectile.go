package gallery

import "github.com/vovakirdan/chromashot/internal/core"

// ProjectileID identifies a live bolt. IDs are monotonic and never reused
// within a game instance.
type ProjectileID uint64

// Projectile is a value-typed record for one bolt in flight. Ownership is
// exclusive to Projectiles; the collision pass mutates bolts only through
// registry removal.
type Projectile struct {
	ID    ProjectileID
	Pos   core.Vec3
	Vel   core.Vec3
	TTL   float64
	Color Color
}

// Projectiles owns every live bolt: spawning, per-frame advance and
// expiry. All three speed/lifetime knobs are fixed per round.
type Projectiles struct {
	speed  float64
	ttl    float64
	nextID ProjectileID
	live   []Projectile
}

// NewProjectiles creates an empty registry with the given bolt speed
// (units per second) and time-to-live (seconds).
func NewProjectiles(speed, ttl float64) *Projectiles {
	return &Projectiles{
		speed: speed,
		ttl:   ttl,
		live:  make([]Projectile, 0, 16),
	}
}

// Spawn creates a bolt at pos flying along the -Z axis rotated by orient,
// scaled to the fixed speed, with a full time-to-live. Returns the new
// bolt's identity.
func (p *Projectiles) Spawn(pos core.Vec3, orient core.Quat, c Color) ProjectileID {
	p.nextID++
	p.live = append(p.live, Projectile{
		ID:    p.nextID,
		Pos:   pos,
		Vel:   orient.Forward().Scale(p.speed),
		TTL:   p.ttl,
		Color: c,
	})
	return p.nextID
}

// Advance moves every live bolt by velocity*dt and ages it by dt. It runs
// over ALL bolts before any removal or collision test in the frame, so
// scoring sees one consistent position sample per bolt.
func (p *Projectiles) Advance(dt float64) {
	for i := range p.live {
		p.live[i].Pos = p.live[i].Pos.Add(p.live[i].Vel.Scale(dt))
		p.live[i].TTL -= dt
	}
}

// Expire removes every bolt whose time-to-live has run out and returns
// how many were dropped. The collision pass runs before Expire, so a bolt
// that both scores and ages out in one frame scores (collision wins).
func (p *Projectiles) Expire() int {
	kept := p.live[:0]
	for _, b := range p.live {
		if b.TTL > 0 {
			kept = append(kept, b)
		}
	}
	removed := len(p.live) - len(kept)
	p.live = kept
	return removed
}

// Remove drops the bolt with the given id. Removing an id that is no
// longer live is a no-op, so double removal within one frame is safe.
func (p *Projectiles) Remove(id ProjectileID) bool {
	for i := range p.live {
		if p.live[i].ID == id {
			p.live = append(p.live[:i], p.live[i+1:]...)
			return true
		}
	}
	return false
}

// Live returns the live bolts in spawn order. The slice is owned by the
// registry; callers must not retain it across mutations.
func (p *Projectiles) Live() []Projectile {
	return p.live
}

// Len returns the number of live bolts.
func (p *Projectiles) Len() int {
	return len(p.live)
}

// Clear drops all live bolts.
func (p *Projectiles) Clear() {
	p.live = p.live[:0]
}
