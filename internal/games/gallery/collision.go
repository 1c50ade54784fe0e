package gallery

import "github.com/vovakirdan/chromashot/internal/core"

// resolveCollisions runs the per-frame collision pass over every live
// bolt in spawn order. Consumed bolts are collected during the scan and
// removed after it, so the scan always sees a stable registry.
//
// Phase is read per bolt: when an early bolt hits the restart trigger,
// the bolts after it are already tested against the fresh Playing round.
func (g *Game) resolveCollisions() {
	var consumed []ProjectileID

	for _, bolt := range g.bolts.Live() {
		switch g.session.Phase() {
		case PhaseGameOver:
			if g.boltVsTrigger(bolt) {
				consumed = append(consumed, bolt.ID)
			}
		case PhasePlaying:
			if g.boltVsTargets(bolt) {
				consumed = append(consumed, bolt.ID)
			}
		}
	}

	for _, id := range consumed {
		g.bolts.Remove(id)
	}
}

// boltVsTrigger tests one bolt against the restart trigger. A bolt of the
// required color within the trigger radius restarts the round and is
// consumed. A mismatched bolt flies through untouched; the miss event is
// emitted only on the frame the bolt enters the radius, not on every
// frame it spends inside.
func (g *Game) boltVsTrigger(bolt Projectile) bool {
	trig := g.session.Trigger()
	if trig == nil {
		return false
	}
	if bolt.Pos.Dist(trig.Pos) > trig.Radius {
		return false
	}

	if bolt.Color != trig.Color {
		prev := bolt.Pos.Sub(bolt.Vel.Scale(g.dt))
		if prev.Dist(trig.Pos) > trig.Radius {
			g.emit(core.EventMissed)
		}
		return false
	}

	g.restartRound()
	g.emit(core.EventRestarted)
	return true
}

// boltVsTargets tests one bolt against every hittable orb within the hit
// radius, in slot order. The first orb of the bolt's own color consumes
// it; orbs of any other color are flown through and the scan continues.
func (g *Game) boltVsTargets(bolt Projectile) bool {
	for _, id := range g.field.HitTest(bolt.Pos, g.cfg.Targets.HitRadius) {
		if g.field.Get(id).Color != bolt.Color {
			continue
		}
		g.hitTarget(id)
		return true
	}
	return false
}

// hitTarget applies the scoring side effects for a consumed orb: the orb
// stops answering hit tests while its shrink tween runs, and the respawn
// delay starts only once the tween finishes and the orb hides.
func (g *Game) hitTarget(id TargetID) {
	g.field.BeginShrink(id, g.sched.Now())
	g.sched.After(g.cfg.Targets.ShrinkSeconds, eventShrinkDone, id)
	g.session.AddScore()
	g.hits++
	g.emit(core.EventScored)
}
