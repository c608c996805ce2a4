// Package audio plays short interaction cues through the speaker.
// Entirely optional: initialization failure leaves a disabled engine
// whose methods are no-ops, so the editor runs silent on machines
// without an audio device.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies an interaction sound
type Cue uint8

const (
	CueGrab   Cue = iota // Drag session started
	CueDrop              // Drag session released
	CueClamp             // Dragged dancer pressed against the stage edge
	CueAdd               // Dancer added to the roster
	CueRemove            // Dancer removed from the roster
)

// cueSpecs maps each cue to its tone
var cueSpecs = map[Cue]struct {
	freq     float64
	duration time.Duration
	wave     WaveType
}{
	CueGrab:   {660, 60 * time.Millisecond, WaveSine},
	CueDrop:   {440, 80 * time.Millisecond, WaveSine},
	CueClamp:  {180, 45 * time.Millisecond, WaveSquare},
	CueAdd:    {880, 70 * time.Millisecond, WaveTriangle},
	CueRemove: {220, 90 * time.Millisecond, WaveSquare},
}

// Engine owns the speaker and mixer
type Engine struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewEngine creates an engine; call Start before playing
func NewEngine() *Engine {
	return &Engine{mixer: &beep.Mixer{}}
}

// Start opens the speaker. Returns the speaker error on failure, after
// which the engine stays disabled and Play is a no-op
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(e.mixer)
	e.initialized = true
	return nil
}

// Stop closes the speaker
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Close()
	e.initialized = false
}

// ToggleMute flips the mute flag and returns the new value
func (e *Engine) ToggleMute() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = !e.muted
	return e.muted
}

// Muted reports the current mute flag
func (e *Engine) Muted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}

// Play queues a cue; no-op when disabled, muted, or the cue is unknown
func (e *Engine) Play(c Cue) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || e.muted {
		return
	}
	spec, ok := cueSpecs[c]
	if !ok {
		return
	}
	osc := newOscillator(spec.freq, spec.duration, spec.wave, sampleRate)
	blip := newFade(osc, spec.duration, 5*time.Millisecond, sampleRate)

	speaker.Lock()
	e.mixer.Add(blip)
	speaker.Unlock()
}
