package settings

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStore points gdata at a throwaway HOME so tests never touch
// the real preference directory.
func openTestStore(t *testing.T) *gdata.Manager {
	t.Helper()

	tmpDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	store, err := gdata.Open(gdata.Config{AppName: "chromashot_test"})
	if err != nil {
		t.Fatalf("gdata.Open() failed: %v", err)
	}
	return store
}

func TestDefaultSettings(t *testing.T) {
	s := Default()

	if s.Mute {
		t.Error("Expected mute off by default")
	}
	if s.Volume != 0.8 {
		t.Errorf("Expected default volume 0.8, got %v", s.Volume)
	}
	if s.ReducedMotion {
		t.Error("Expected reduced motion off by default")
	}
	if s.Handle != "" {
		t.Errorf("Expected empty default handle, got %q", s.Handle)
	}
}

func TestManagerNilStore(t *testing.T) {
	m, err := NewManager(nil)
	if err != nil {
		t.Fatalf("NewManager(nil) failed: %v", err)
	}

	if m.Get().Volume != 0.8 {
		t.Errorf("Expected defaults in memory mode, got volume %v", m.Get().Volume)
	}

	// Save is a no-op, not an error
	m.SetMute(true)
	if err := m.Save(); err != nil {
		t.Errorf("Save() without store failed: %v", err)
	}
}

func TestManagerSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	m1, err := NewManager(store)
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}

	m1.SetHandle("ada")
	m1.SetMute(true)
	m1.SetVolume(0.3)
	m1.SetReducedMotion(true)
	if err := m1.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	// Fresh manager against the same store sees the saved values
	m2, err := NewManager(store)
	if err != nil {
		t.Fatalf("NewManager() on reload failed: %v", err)
	}

	s := m2.Get()
	if s.Handle != "ada" {
		t.Errorf("Expected handle %q, got %q", "ada", s.Handle)
	}
	if !s.Mute {
		t.Error("Expected mute to persist")
	}
	if s.Volume != 0.3 {
		t.Errorf("Expected volume 0.3, got %v", s.Volume)
	}
	if !s.ReducedMotion {
		t.Error("Expected reduced motion to persist")
	}
}

func TestManagerLoadWithoutSavedSettings(t *testing.T) {
	store := openTestStore(t)

	m, err := NewManager(store)
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}

	if m.Get().Volume != 0.8 {
		t.Errorf("Expected defaults when nothing saved, got volume %v", m.Get().Volume)
	}
}

func TestSetVolumeClamps(t *testing.T) {
	m, _ := NewManager(nil)

	m.SetVolume(1.7)
	if m.Get().Volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", m.Get().Volume)
	}

	m.SetVolume(-0.4)
	if m.Get().Volume != 0 {
		t.Errorf("Expected volume clamped to 0, got %v", m.Get().Volume)
	}
}
