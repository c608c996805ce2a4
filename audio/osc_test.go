package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain pulls a streamer to exhaustion and returns every sample
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	dur := 60 * time.Millisecond
	osc := newOscillator(660, dur, WaveSine, sampleRate)
	got := drain(osc)
	want := sampleRate.N(dur)
	if len(got) != want {
		t.Errorf("oscillator produced %d samples, want %d", len(got), want)
	}
}

func TestOscillatorAmplitudeBounded(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		osc := newOscillator(440, 20*time.Millisecond, wave, sampleRate)
		for i, s := range drain(osc) {
			if math.Abs(s[0]) > 1.0 || math.Abs(s[1]) > 1.0 {
				t.Fatalf("wave %d sample %d out of range: %v", wave, i, s)
			}
		}
	}
}

func TestFadeRampsToSilence(t *testing.T) {
	dur := 40 * time.Millisecond
	ramp := 5 * time.Millisecond
	osc := newOscillator(1000, dur, WaveSquare, sampleRate)
	got := drain(newFade(osc, dur, ramp, sampleRate))

	if len(got) == 0 {
		t.Fatal("fade produced no samples")
	}
	// Square wave is full-scale everywhere, so the first and last samples
	// show the ramp directly
	if math.Abs(got[0][0]) > 0.01 {
		t.Errorf("first sample %v, want ~0 (attack ramp)", got[0][0])
	}
	if last := got[len(got)-1][0]; math.Abs(last) > 0.01 {
		t.Errorf("last sample %v, want ~0 (release ramp)", last)
	}
	mid := got[len(got)/2][0]
	if math.Abs(mid) < 0.9 {
		t.Errorf("mid sample %v, want full scale", mid)
	}
}

func TestEngineDisabledPlayIsNoop(t *testing.T) {
	e := NewEngine()
	// Never started: must not panic or block
	e.Play(CueGrab)
	e.Stop()

	if e.Muted() {
		t.Error("fresh engine reports muted")
	}
	if !e.ToggleMute() {
		t.Error("first toggle should mute")
	}
	if e.ToggleMute() {
		t.Error("second toggle should unmute")
	}
}
