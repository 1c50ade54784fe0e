package gallery

// eventKind discriminates the delayed effects the round can schedule.
type eventKind uint8

const (
	eventShrinkDone eventKind = iota // a hit orb finished its shrink tween
	eventRespawn                     // a hidden orb's respawn delay elapsed
)

// timedEvent is one pending delayed effect. Events carry the round
// generation they were scheduled in; a stale generation means the round
// restarted and the effect must not fire.
type timedEvent struct {
	at     float64
	kind   eventKind
	target TargetID
	gen    uint64
}

// scheduler is the single per-frame-processed queue for delayed effects.
// It replaces fire-and-forget timers: everything due is delivered inside
// the frame that reaches its fire time, and Reset cancels the entire
// queue at once, so no timer can race a round restart.
type scheduler struct {
	now   float64
	gen   uint64
	queue []timedEvent
}

func newScheduler() *scheduler {
	return &scheduler{queue: make([]timedEvent, 0, 32)}
}

// Now returns the accumulated simulation time.
func (s *scheduler) Now() float64 {
	return s.now
}

// After enqueues an event due delay seconds from now, stamped with the
// current generation. The queue stays sorted by fire time.
func (s *scheduler) After(delay float64, kind eventKind, target TargetID) {
	ev := timedEvent{
		at:     s.now + delay,
		kind:   kind,
		target: target,
		gen:    s.gen,
	}
	// Insert sorted; the queue never holds more than a couple dozen
	// entries, so a linear scan beats heap bookkeeping.
	i := len(s.queue)
	for i > 0 && s.queue[i-1].at > ev.at {
		i--
	}
	s.queue = append(s.queue, timedEvent{})
	copy(s.queue[i+1:], s.queue[i:])
	s.queue[i] = ev
}

// Advance moves simulation time forward by dt and returns every event
// whose fire time has been reached, in fire-time order. Events from a
// superseded generation are dropped silently.
func (s *scheduler) Advance(dt float64) []timedEvent {
	s.now += dt

	var due []timedEvent
	n := 0
	for _, ev := range s.queue {
		if ev.at > s.now {
			s.queue[n] = ev
			n++
			continue
		}
		if ev.gen == s.gen {
			due = append(due, ev)
		}
	}
	s.queue = s.queue[:n]
	return due
}

// Reset cancels every pending event by bumping the generation and
// clearing the queue. Simulation time keeps running monotonically.
func (s *scheduler) Reset() {
	s.gen++
	s.queue = s.queue[:0]
}

// Pending returns the number of queued events, for tests.
func (s *scheduler) Pending() int {
	return len(s.queue)
}
