package analysis

import (
	"math"
	"testing"
)

func TestDecibelsFromRMS(t *testing.T) {
	tests := []struct {
		name string
		rms  float64
		want float64
		tol  float64
	}{
		{"full scale", 1.0, 0.0, 0.0},
		{"half scale", 0.5, -6.02, 0.1},
		{"zero floors without log(0)", 0.0, -60.0, 0.0},
		{"below silence floor", 1e-7, -60.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecibelsFromRMS(tt.rms)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("DecibelsFromRMS(%v) = %.4f, want %.2f ± %.2f", tt.rms, got, tt.want, tt.tol)
			}
		})
	}
}

func TestVelocityFromDecibels(t *testing.T) {
	tests := []struct {
		name string
		db   float64
		want int
		tol  int
	}{
		{"0 dB is maximum velocity", 0.0, 127, 0},
		{"-60 dB is zero velocity", -60.0, 0, 0},
		{"-30 dB is mid scale", -30.0, 63, 1},
		{"above range clamps high", 6.0, 127, 0},
		{"below range clamps low", -80.0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VelocityFromDecibels(tt.db)
			if got < tt.want-tt.tol || got > tt.want+tt.tol {
				t.Errorf("VelocityFromDecibels(%v) = %d, want %d ± %d", tt.db, got, tt.want, tt.tol)
			}
		})
	}
}

func TestAnalyzeDynamicsSegments(t *testing.T) {
	// Three contiguous constant-amplitude segments of 0.1s each at 44.1 kHz.
	// For a constant signal the RMS equals the amplitude exactly.
	amplitudes := []float64{0.1, 0.5, 0.9}
	segmentLen := 4410
	samples := make([]float64, 3*segmentLen)
	for i := range samples {
		samples[i] = amplitudes[i/segmentLen]
	}

	onsets := []OnsetEvent{
		{Timestamp: 0.0, SampleIndex: 0},
		{Timestamp: 0.1, SampleIndex: 4410},
		{Timestamp: 0.2, SampleIndex: 8820},
	}

	dynamics := AnalyzeDynamics(samples, onsets, 44100)

	if len(dynamics) != len(onsets) {
		t.Fatalf("AnalyzeDynamics() returned %d events, want %d (one per onset)", len(dynamics), len(onsets))
	}

	for i, d := range dynamics {
		if math.Abs(d.RMSLevel-amplitudes[i]) > 1e-9 {
			t.Errorf("segment %d: RMSLevel = %.6f, want %.6f", i, d.RMSLevel, amplitudes[i])
		}
		if math.Abs(d.PeakLevel-amplitudes[i]) > 1e-9 {
			t.Errorf("segment %d: PeakLevel = %.6f, want %.6f", i, d.PeakLevel, amplitudes[i])
		}
		if d.Timestamp != onsets[i].Timestamp {
			t.Errorf("segment %d: Timestamp = %.4f, want %.4f", i, d.Timestamp, onsets[i].Timestamp)
		}
	}

	for i := 1; i < len(dynamics); i++ {
		if dynamics[i].RMSLevel <= dynamics[i-1].RMSLevel {
			t.Errorf("RMSLevel should increase: %.4f then %.4f", dynamics[i-1].RMSLevel, dynamics[i].RMSLevel)
		}
		if dynamics[i].MIDIVelocity <= dynamics[i-1].MIDIVelocity {
			t.Errorf("MIDIVelocity should increase: %d then %d", dynamics[i-1].MIDIVelocity, dynamics[i].MIDIVelocity)
		}
	}
}

func TestAnalyzeDynamicsEdgeCases(t *testing.T) {
	t.Run("no onsets", func(t *testing.T) {
		samples := generateSineWave(440.0, 44100, 4096)
		dynamics := AnalyzeDynamics(samples, nil, 44100)
		if len(dynamics) != 0 {
			t.Errorf("AnalyzeDynamics() with no onsets returned %d events, want 0", len(dynamics))
		}
	})

	t.Run("silent segment", func(t *testing.T) {
		samples := make([]float64, 8820)
		onsets := []OnsetEvent{{Timestamp: 0.0, SampleIndex: 0}}

		dynamics := AnalyzeDynamics(samples, onsets, 44100)
		if len(dynamics) != 1 {
			t.Fatalf("AnalyzeDynamics() returned %d events, want 1", len(dynamics))
		}
		if dynamics[0].DBLevel != -60.0 {
			t.Errorf("DBLevel = %.2f, want -60 for silence", dynamics[0].DBLevel)
		}
		if dynamics[0].MIDIVelocity != 0 {
			t.Errorf("MIDIVelocity = %d, want 0 for silence", dynamics[0].MIDIVelocity)
		}
	})

	t.Run("last segment runs to buffer end", func(t *testing.T) {
		samples := make([]float64, 8820)
		// Only the tail is loud; a segment cut short at one hop would miss it
		for i := 8000; i < len(samples); i++ {
			samples[i] = 0.8
		}
		onsets := []OnsetEvent{{Timestamp: 0.1, SampleIndex: 4410}}

		dynamics := AnalyzeDynamics(samples, onsets, 44100)
		if len(dynamics) != 1 {
			t.Fatalf("AnalyzeDynamics() returned %d events, want 1", len(dynamics))
		}
		if dynamics[0].PeakLevel != 0.8 {
			t.Errorf("PeakLevel = %.2f, want 0.8 from the buffer tail", dynamics[0].PeakLevel)
		}
	})
}
