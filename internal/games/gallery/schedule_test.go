package gallery

import "testing"

func TestSchedulerDeliversInFireOrder(t *testing.T) {
	s := newScheduler()
	s.After(0.5, eventRespawn, 1)
	s.After(0.2, eventShrinkDone, 2)

	due := s.Advance(0.3)
	if len(due) != 1 || due[0].kind != eventShrinkDone || due[0].target != 2 {
		t.Fatalf("Only the earlier event should be due, got %+v", due)
	}

	due = s.Advance(0.3)
	if len(due) != 1 || due[0].kind != eventRespawn || due[0].target != 1 {
		t.Fatalf("The later event should follow, got %+v", due)
	}
	if s.Pending() != 0 {
		t.Errorf("Queue should drain, %d pending", s.Pending())
	}
}

func TestSchedulerBatchKeepsOrder(t *testing.T) {
	s := newScheduler()
	s.After(0.9, eventRespawn, 7)
	s.After(0.1, eventShrinkDone, 7)
	s.After(0.5, eventShrinkDone, 8)

	due := s.Advance(2)
	if len(due) != 3 {
		t.Fatalf("All events should be due, got %d", len(due))
	}
	if due[0].at > due[1].at || due[1].at > due[2].at {
		t.Errorf("Events should arrive in fire-time order, got %+v", due)
	}
	if due[0].target != 7 || due[1].target != 8 || due[2].target != 7 {
		t.Errorf("Unexpected delivery order: %+v", due)
	}
}

func TestSchedulerTiesStayFirstInFirstOut(t *testing.T) {
	s := newScheduler()
	s.After(0.1, eventShrinkDone, 1)
	s.After(0.1, eventShrinkDone, 2)

	due := s.Advance(0.2)
	if len(due) != 2 || due[0].target != 1 || due[1].target != 2 {
		t.Errorf("Same-time events should keep enqueue order, got %+v", due)
	}
}

func TestSchedulerResetCancelsEverything(t *testing.T) {
	s := newScheduler()
	s.After(0.1, eventShrinkDone, 1)
	s.After(0.4, eventRespawn, 1)

	s.Reset()
	if s.Pending() != 0 {
		t.Errorf("Reset should clear the queue, %d pending", s.Pending())
	}
	if due := s.Advance(5); len(due) != 0 {
		t.Errorf("No cancelled event may fire, got %+v", due)
	}

	// Fresh events after a reset still work.
	s.After(0.2, eventRespawn, 3)
	if due := s.Advance(0.3); len(due) != 1 || due[0].target != 3 {
		t.Errorf("Post-reset events should deliver, got %+v", due)
	}
}

func TestSchedulerTimeIsMonotonicAcrossReset(t *testing.T) {
	s := newScheduler()
	s.Advance(2)
	s.Reset()

	if s.Now() != 2 {
		t.Errorf("Reset should not rewind time, got %f", s.Now())
	}
	s.Advance(1)
	if s.Now() != 3 {
		t.Errorf("Time should keep accumulating, got %f", s.Now())
	}
}
