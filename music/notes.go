// Package music provides MIDI note and frequency conversions.
package music

import (
	"fmt"
	"math"
)

// MIDI note range of a standard 88-key piano (A0 through C8)
const (
	MinMIDINote = 21
	MaxMIDINote = 108
)

// ReferenceFrequency is A4 (MIDI note 69) in Hz
const ReferenceFrequency = 440.0

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ExactMIDIFromFrequency returns the unrounded MIDI note number for a
// frequency: 69 + 12*log2(f/440). The frequency must be positive.
func ExactMIDIFromFrequency(frequency float64) float64 {
	return 69.0 + 12.0*math.Log2(frequency/ReferenceFrequency)
}

// MIDIFromFrequency converts a frequency (Hz) to the nearest MIDI note
// number, clamped to the piano range [21, 108]
func MIDIFromFrequency(frequency float64) int {
	midi := math.Round(ExactMIDIFromFrequency(frequency))
	if midi < MinMIDINote {
		return MinMIDINote
	}
	if midi > MaxMIDINote {
		return MaxMIDINote
	}
	return int(midi)
}

// FrequencyFromMIDI converts a MIDI note number to its frequency in Hz
func FrequencyFromMIDI(midiNote int) float64 {
	return ReferenceFrequency * math.Pow(2.0, (float64(midiNote)-69.0)/12.0)
}

// NoteName returns the conventional name of a MIDI note (e.g. "C4", "A#5")
func NoteName(midiNote int) string {
	noteIndex := midiNote % 12
	octave := midiNote/12 - 1
	return fmt.Sprintf("%s%d", noteNames[noteIndex], octave)
}
