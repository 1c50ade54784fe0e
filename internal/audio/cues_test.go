package audio

import (
	"testing"

	"github.com/gopxl/beep"
)

// streamAndCheck pulls samples from a generator and verifies they stay
// inside the valid [-1, 1] range.
func streamAndCheck(t *testing.T, name string, s beep.Streamer, count int) {
	t.Helper()

	samples := make([][2]float64, count)
	n, ok := s.Stream(samples)

	if !ok {
		t.Errorf("%s: expected stream to return ok=true", name)
	}
	if n != count {
		t.Errorf("%s: expected %d samples, got %d", name, count, n)
	}

	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("%s: sample %d out of range: %f", name, i, samples[i][0])
		}
		if samples[i][1] != samples[i][0] {
			t.Errorf("%s: expected mono output on both channels at %d", name, i)
		}
	}

	if s.Err() != nil {
		t.Errorf("%s: expected no error, got: %v", name, s.Err())
	}
}

func TestGeneratorsProduceValidSamples(t *testing.T) {
	// A full second exercises every phase of each cue
	count := int(sampleRate)

	streamAndCheck(t, "zap", NewZapGenerator(sampleRate, 1.0), count)
	streamAndCheck(t, "chime", NewChimeGenerator(sampleRate, 1.0), count)
	streamAndCheck(t, "slide", NewSlideGenerator(sampleRate, 1.0), count)
	streamAndCheck(t, "fanfare", NewFanfareGenerator(sampleRate, 1.0), count)
}

func TestGeneratorsRespectGain(t *testing.T) {
	silent := NewChimeGenerator(sampleRate, 0)

	samples := make([][2]float64, 512)
	silent.Stream(samples)

	for i, s := range samples {
		if s[0] != 0 {
			t.Fatalf("Expected zero gain to produce silence, got %f at %d", s[0], i)
		}
	}
}

func TestPlayerNoOpWithoutSpeaker(t *testing.T) {
	// An uninitialized player must swallow every cue without panicking
	p := NewPlayer()

	p.PlayFire()
	p.PlayScore()
	p.PlayRoundOver()
	p.PlayRestart()
	p.SetVolume(0.5)
	p.SetMuted(true)
	p.Cleanup()
}

func TestPlayerVolumeClamps(t *testing.T) {
	p := NewPlayer()

	p.SetVolume(2.5)
	if p.volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %v", p.volume)
	}

	p.SetVolume(-1)
	if p.volume != 0 {
		t.Errorf("Expected volume clamped to 0, got %v", p.volume)
	}
}
