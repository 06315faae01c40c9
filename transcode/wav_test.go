package transcode

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func TestFromIntBuffer(t *testing.T) {
	t.Run("mono 16-bit normalization", func(t *testing.T) {
		buf := &audio.IntBuffer{
			Format: &audio.Format{NumChannels: 1, SampleRate: 44100},
			Data:   []int{32767, -32768, 0, 16384},
		}

		data, err := FromIntBuffer(buf, 16)
		if err != nil {
			t.Fatalf("FromIntBuffer() error: %v", err)
		}

		want := []float64{32767.0 / 32768.0, -1.0, 0.0, 0.5}
		if len(data.PCM) != len(want) {
			t.Fatalf("len(PCM) = %d, want %d", len(data.PCM), len(want))
		}
		for i := range want {
			if math.Abs(data.PCM[i]-want[i]) > 1e-12 {
				t.Errorf("PCM[%d] = %v, want %v", i, data.PCM[i], want[i])
			}
		}
		if data.SampleRate != 44100 {
			t.Errorf("SampleRate = %d, want 44100", data.SampleRate)
		}
	})

	t.Run("stereo downmix averages channels", func(t *testing.T) {
		buf := &audio.IntBuffer{
			Format: &audio.Format{NumChannels: 2, SampleRate: 48000},
			Data:   []int{16384, -16384, 16384, 16384},
		}

		data, err := FromIntBuffer(buf, 16)
		if err != nil {
			t.Fatalf("FromIntBuffer() error: %v", err)
		}

		if len(data.PCM) != 2 {
			t.Fatalf("len(PCM) = %d, want 2 frames", len(data.PCM))
		}
		if data.PCM[0] != 0.0 {
			t.Errorf("PCM[0] = %v, want 0 (opposite channels cancel)", data.PCM[0])
		}
		if math.Abs(data.PCM[1]-0.5) > 1e-12 {
			t.Errorf("PCM[1] = %v, want 0.5", data.PCM[1])
		}
		if data.Channels != 2 {
			t.Errorf("Channels = %d, want 2", data.Channels)
		}
	})

	t.Run("nil buffer", func(t *testing.T) {
		if _, err := FromIntBuffer(nil, 16); err == nil {
			t.Error("FromIntBuffer(nil) = nil error, want error")
		}
	})
}

func TestDecodeWAVFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTestWAV(t, path, 44100, 4410)

	data, err := DecodeWAVFile(path)
	if err != nil {
		t.Fatalf("DecodeWAVFile() error: %v", err)
	}

	if data.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", data.SampleRate)
	}
	if len(data.PCM) != 4410 {
		t.Errorf("len(PCM) = %d, want 4410", len(data.PCM))
	}
	if got := data.Duration.Seconds(); math.Abs(got-0.1) > 1e-6 {
		t.Errorf("Duration = %.4fs, want 0.1s", got)
	}

	// 440 Hz sine at amplitude 0.5 survives the int16 round trip
	for i, s := range data.PCM {
		want := 0.5 * math.Sin(2.0*math.Pi*440.0*float64(i)/44100.0)
		if math.Abs(s-want) > 1e-3 {
			t.Fatalf("PCM[%d] = %v, want %v", i, s, want)
		}
	}
}

func TestDecodeWAVFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := DecodeWAVFile(filepath.Join(t.TempDir(), "missing.wav")); err == nil {
			t.Error("DecodeWAVFile(missing) = nil error, want error")
		}
	})

	t.Run("not a WAV file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "noise.wav")
		if err := os.WriteFile(path, []byte("definitely not riff data"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := DecodeWAVFile(path); err == nil {
			t.Error("DecodeWAVFile(garbage) = nil error, want error")
		}
	})
}

// writeTestWAV encodes a 440 Hz half-amplitude sine as mono 16-bit PCM
func writeTestWAV(t *testing.T, path string, sampleRate, numSamples int) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create test WAV: %v", err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, sampleRate, 16, 1, 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           make([]int, numSamples),
	}
	for i := range buf.Data {
		s := 0.5 * math.Sin(2.0*math.Pi*440.0*float64(i)/float64(sampleRate))
		buf.Data[i] = int(math.Round(s * 32767.0))
	}

	if err := encoder.Write(buf); err != nil {
		t.Fatalf("encode test WAV: %v", err)
	}
	if err := encoder.Close(); err != nil {
		t.Fatalf("close test WAV: %v", err)
	}
}
