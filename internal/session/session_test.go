package session

import (
	"errors"
	"testing"
)

type captureSaver struct {
	saved []RoundResult
	err   error
}

func (c *captureSaver) SaveRoundResult(res RoundResult) error {
	c.saved = append(c.saved, res)
	return c.err
}

func TestRegistryRegisterUnregister(t *testing.T) {
	r := NewRegistry()

	id := NewID()
	r.Register(NewPlayer(id, "ada", "127.0.0.1:2222"))

	if r.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", r.Count())
	}

	p, ok := r.Get(id)
	if !ok {
		t.Fatal("Expected to find registered session")
	}
	if p.Handle() != "ada" {
		t.Errorf("Expected handle %q, got %q", "ada", p.Handle())
	}

	r.Unregister(id)
	if r.Count() != 0 {
		t.Errorf("Expected 0 sessions after unregister, got %d", r.Count())
	}
	if _, ok := r.Get(id); ok {
		t.Error("Expected session to be gone after unregister")
	}
}

func TestNewPlayerEmptyHandle(t *testing.T) {
	p := NewPlayer(NewID(), "", "")
	if p.Handle() != "anonymous" {
		t.Errorf("Expected empty handle to fall back to anonymous, got %q", p.Handle())
	}
}

func TestNewIDUnique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Error("Expected distinct session IDs")
	}
	if a == "" || b == "" {
		t.Error("Expected non-empty session IDs")
	}
}

func TestRecordResultUpdatesAggregates(t *testing.T) {
	r := NewRegistry()
	saver := &captureSaver{}
	r.SetResultSaver(saver)

	id := NewID()
	r.Register(NewPlayer(id, "ada", ""))

	results := []RoundResult{
		{SessionID: id, Mode: "gallery", Score: 4, Shots: 9, Hits: 4, Duration: 60},
		{SessionID: id, Mode: "gallery", Score: 11, Shots: 15, Hits: 11, Duration: 60},
		{SessionID: id, Mode: "gallery", Score: 7, Shots: 12, Hits: 7, Duration: 60},
	}
	for _, res := range results {
		if err := r.RecordResult(res); err != nil {
			t.Fatalf("RecordResult() failed: %v", err)
		}
	}

	p, _ := r.Get(id)
	if p.Rounds() != 3 {
		t.Errorf("Expected 3 rounds, got %d", p.Rounds())
	}
	if p.BestScore() != 11 {
		t.Errorf("Expected best score 11, got %d", p.BestScore())
	}

	if len(saver.saved) != 3 {
		t.Errorf("Expected 3 saved results, got %d", len(saver.saved))
	}
}

func TestRecordResultWithoutSaver(t *testing.T) {
	r := NewRegistry()

	id := NewID()
	r.Register(NewPlayer(id, "", ""))

	// No saver configured: aggregates still update, no error
	if err := r.RecordResult(RoundResult{SessionID: id, Score: 5}); err != nil {
		t.Errorf("Expected nil error without saver, got %v", err)
	}

	p, _ := r.Get(id)
	if p.Rounds() != 1 || p.BestScore() != 5 {
		t.Errorf("Expected aggregates to update without saver, got rounds=%d best=%d", p.Rounds(), p.BestScore())
	}
}

func TestRecordResultUnknownSessionStillSaved(t *testing.T) {
	r := NewRegistry()
	saver := &captureSaver{}
	r.SetResultSaver(saver)

	// Session disconnected before the round result arrived
	if err := r.RecordResult(RoundResult{SessionID: NewID(), Mode: "blitz", Score: 2}); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}

	if len(saver.saved) != 1 {
		t.Errorf("Expected result from unknown session to be saved, got %d", len(saver.saved))
	}
}

func TestRecordResultPropagatesSaverError(t *testing.T) {
	r := NewRegistry()
	saver := &captureSaver{err: errors.New("disk full")}
	r.SetResultSaver(saver)

	if err := r.RecordResult(RoundResult{SessionID: NewID()}); err == nil {
		t.Error("Expected saver error to propagate")
	}
}
