package spectral

import (
	"math"
	"testing"
)

func TestSpectralFluxCompute(t *testing.T) {
	sf := NewSpectralFlux()

	t.Run("too few frames", func(t *testing.T) {
		if got := sf.Compute(nil); len(got) != 0 {
			t.Errorf("Compute(nil) = %v, want empty", got)
		}
		if got := sf.Compute([][]float64{{1, 2, 3}}); len(got) != 0 {
			t.Errorf("Compute(one frame) = %v, want empty", got)
		}
	})

	t.Run("half-wave rectification", func(t *testing.T) {
		// Bin 0 rises by 2, bin 1 falls by 1, bin 2 rises by 0.5:
		// only the increases count, linearly
		spectrogram := [][]float64{
			{1.0, 3.0, 0.5},
			{3.0, 2.0, 1.0},
		}

		flux := sf.Compute(spectrogram)
		if len(flux) != 1 {
			t.Fatalf("len(flux) = %d, want frameCount-1 = 1", len(flux))
		}
		if math.Abs(flux[0]-2.5) > 1e-12 {
			t.Errorf("flux[0] = %v, want 2.5", flux[0])
		}
	})

	t.Run("steady spectrum has zero flux", func(t *testing.T) {
		frame := []float64{1.0, 2.0, 3.0}
		flux := sf.Compute([][]float64{frame, frame, frame})

		if len(flux) != 2 {
			t.Fatalf("len(flux) = %d, want 2", len(flux))
		}
		for i, f := range flux {
			if f != 0.0 {
				t.Errorf("flux[%d] = %v, want 0 for a steady spectrum", i, f)
			}
		}
	})

	t.Run("decreasing spectrum has zero flux", func(t *testing.T) {
		spectrogram := [][]float64{
			{5.0, 5.0},
			{1.0, 2.0},
		}
		flux := sf.Compute(spectrogram)
		if flux[0] != 0.0 {
			t.Errorf("flux[0] = %v, want 0 when all bins decrease", flux[0])
		}
	})
}
