// Package transcode decodes audio files into the normalized mono sample
// buffers the analysis pipeline consumes.
package transcode

import (
	"fmt"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/soniqlab/audition/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // Mono samples normalized to [-1, 1]
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // Channel count of the source file
	BitDepth   int           `json:"bit_depth"`
	Duration   time.Duration `json:"duration"`
}

// DecodeWAVFile reads a WAV file and returns its PCM content downmixed to
// mono and normalized to [-1, 1]
func DecodeWAVFile(path string) (*AudioData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode PCM data: %w", err)
	}

	data, err := FromIntBuffer(buf, int(decoder.BitDepth))
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", path, err)
	}

	logging.Debug("decoded WAV file", logging.Fields{
		"path":        path,
		"sample_rate": data.SampleRate,
		"channels":    data.Channels,
		"duration":    data.Duration.String(),
	})

	return data, nil
}

// FromIntBuffer converts a go-audio integer PCM buffer into normalized mono
// audio data. Multi-channel sources are downmixed by averaging the channels
// of each frame.
func FromIntBuffer(buf *audio.IntBuffer, bitDepth int) (*AudioData, error) {
	if buf == nil || buf.Format == nil {
		return nil, fmt.Errorf("nil PCM buffer")
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}

	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	numFrames := len(buf.Data) / channels
	pcm := make([]float64, numFrames)

	for i := 0; i < numFrames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		pcm[i] = sum / float64(channels) / scale
	}

	sampleRate := buf.Format.SampleRate
	var duration time.Duration
	if sampleRate > 0 {
		duration = time.Duration(float64(numFrames) / float64(sampleRate) * float64(time.Second))
	}

	return &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Duration:   duration,
	}, nil
}
