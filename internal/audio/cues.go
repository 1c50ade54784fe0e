// Package audio plays short procedural sound cues through beep.
// Cues are best effort: when the speaker cannot be initialized (no
// audio device, headless host) every Play call is a silent no-op.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes and plays the game's sound cues.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	scoreCtrl   *beep.Ctrl
	volume      float64
	muted       bool
	initialized bool
}

// NewPlayer creates an uninitialized cue player.
func NewPlayer() *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: 0.8,
	}
}

// Initialize opens the speaker and starts the mixer.
// Returns the speaker error so the caller can log it; the player stays
// usable either way.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences all cues.
// beep has no speaker Close; clearing the mixer is enough to go quiet.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.scoreCtrl = nil
	p.mixer.Clear()
	speaker.Unlock()

	p.initialized = false
}

// SetVolume sets the cue volume, clamped to 0.0 ~ 1.0.
// Applies to cues started after the call.
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	p.volume = volume
}

// SetMuted toggles all cues off or on.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

func (p *Player) ready() bool {
	return p.initialized && !p.muted
}

// PlayFire plays a short blip when a bolt leaves the shooter.
func (p *Player) PlayFire() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() {
		return
	}

	cue := beep.Take(sampleRate.N(time.Millisecond*70), NewZapGenerator(sampleRate, p.volume))
	speaker.Lock()
	p.mixer.Add(cue)
	speaker.Unlock()
}

// PlayScore plays the rising chime for a color match.
// At most one chime plays at a time; rapid hits restart it instead of stacking.
func (p *Player) PlayScore() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() {
		return
	}

	cue := beep.Take(sampleRate.N(time.Millisecond*220), NewChimeGenerator(sampleRate, p.volume))
	ctrl := &beep.Ctrl{Streamer: cue}

	speaker.Lock()
	if p.scoreCtrl != nil {
		// A nil streamer drains immediately, dropping the old chime from the mixer
		p.scoreCtrl.Streamer = nil
	}
	p.scoreCtrl = ctrl
	p.mixer.Add(ctrl)
	speaker.Unlock()
}

// PlayRoundOver plays the descending tone when the countdown expires.
func (p *Player) PlayRoundOver() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() {
		return
	}

	cue := beep.Take(sampleRate.N(time.Millisecond*500), NewSlideGenerator(sampleRate, p.volume))
	speaker.Lock()
	p.mixer.Add(cue)
	speaker.Unlock()
}

// PlayRestart plays the three-note fanfare when a fresh round begins.
func (p *Player) PlayRestart() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() {
		return
	}

	cue := beep.Take(sampleRate.N(time.Millisecond*360), NewFanfareGenerator(sampleRate, p.volume))
	speaker.Lock()
	p.mixer.Add(cue)
	speaker.Unlock()
}

// ZapGenerator generates the firing blip: a fast falling pitch.
type ZapGenerator struct {
	sr   beep.SampleRate
	gain float64
	pos  int
}

// NewZapGenerator creates a fire blip generator.
func NewZapGenerator(sr beep.SampleRate, gain float64) *ZapGenerator {
	return &ZapGenerator{sr: sr, gain: gain}
}

func (g *ZapGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Pitch falls from 900Hz to 300Hz over the blip
		freq := 900 - 600*math.Min(t/0.07, 1)
		envelope := math.Exp(-t * 40)
		sample := g.gain * 0.25 * envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ZapGenerator) Err() error {
	return nil
}

// ChimeGenerator generates the score chime: two quick rising notes.
type ChimeGenerator struct {
	sr   beep.SampleRate
	gain float64
	pos  int
}

// NewChimeGenerator creates a score chime generator.
func NewChimeGenerator(sr beep.SampleRate, gain float64) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, gain: gain}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// E6 then B6, each with its own decay
		freq, noteT := 1318.5, t
		if t >= 0.1 {
			freq, noteT = 1975.5, t-0.1
		}
		envelope := math.Exp(-noteT * 22)
		sample := g.gain * 0.2 * envelope * math.Sin(2*math.Pi*freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// SlideGenerator generates the round-over tone: a slow falling slide
// over a low rumble.
type SlideGenerator struct {
	sr   beep.SampleRate
	gain float64
	pos  int
}

// NewSlideGenerator creates a round-over tone generator.
func NewSlideGenerator(sr beep.SampleRate, gain float64) *SlideGenerator {
	return &SlideGenerator{sr: sr, gain: gain}
}

func (g *SlideGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		freq := 520 - 320*math.Min(t/0.45, 1)
		envelope := math.Exp(-t * 5)
		slide := 0.22 * envelope * math.Sin(2*math.Pi*freq*t)
		rumble := 0.08 * envelope * math.Sin(2*math.Pi*90*t)
		sample := g.gain * (slide + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SlideGenerator) Err() error {
	return nil
}

// FanfareGenerator generates the restart fanfare: C5 E5 G5 in sequence.
type FanfareGenerator struct {
	sr   beep.SampleRate
	gain float64
	pos  int
}

// NewFanfareGenerator creates a restart fanfare generator.
func NewFanfareGenerator(sr beep.SampleRate, gain float64) *FanfareGenerator {
	return &FanfareGenerator{sr: sr, gain: gain}
}

func (g *FanfareGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	notes := [3]float64{523.25, 659.25, 784.0}

	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		note := int(t / 0.12)
		if note > 2 {
			note = 2
		}
		noteT := t - float64(note)*0.12
		envelope := math.Exp(-noteT * 16)
		sample := g.gain * 0.22 * envelope * math.Sin(2*math.Pi*notes[note]*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *FanfareGenerator) Err() error {
	return nil
}
