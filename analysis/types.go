// Package analysis extracts musically meaningful events from a raw audio
// recording: fundamental pitch, note onsets, and dynamic level, so that a
// performance can later be compared against an expected score.
//
// All detectors are pure, synchronous computations over a borrowed,
// immutable sample buffer. None of them mutates shared state, so separate
// buffers may be analyzed concurrently with zero coordination.
package analysis

// PitchResult is the outcome of fundamental-frequency estimation for one
// buffer. It is produced atomically: either every field is populated or no
// result is returned at all.
type PitchResult struct {
	Frequency   float64 `json:"frequency"`    // Detected frequency in Hz
	Confidence  float64 `json:"confidence"`   // Detection confidence (0-1)
	MIDINote    int     `json:"midi_note"`    // MIDI note number (21-108, A0-C8)
	CentsOffset float64 `json:"cents_offset"` // Tuning offset in cents, nominally -50..+50
	RMSLevel    float64 `json:"rms_level"`    // Buffer RMS level (for silence interpretation)
}

// OnsetEvent marks the detected start instant of a note or percussive event.
// Within one result list timestamps are strictly increasing and consecutive
// events are at least MinInterOnset seconds apart.
type OnsetEvent struct {
	Timestamp   float64 `json:"timestamp"`    // Onset time in seconds from buffer start
	SampleIndex int     `json:"sample_index"` // Sample offset consistent with Timestamp
	Strength    float64 `json:"strength"`     // Spectral flux at the onset frame
	Confidence  float64 `json:"confidence"`   // Flux relative to its local neighborhood (0-1)
}

// DynamicsEvent describes the loudness of one onset-delimited note segment.
// Segments are contiguous and non-overlapping; the last one extends to the
// buffer end.
type DynamicsEvent struct {
	Timestamp    float64 `json:"timestamp"`     // Segment start (the onset time) in seconds
	RMSLevel     float64 `json:"rms_level"`     // Root mean square of the segment
	PeakLevel    float64 `json:"peak_level"`    // Maximum absolute sample value
	DBLevel      float64 `json:"db_level"`      // 20*log10(rms), floored at -60 dB
	MIDIVelocity int     `json:"midi_velocity"` // Linear dB-to-velocity mapping (0-127)
}

// Result aggregates one full analysis pass over a recording
type Result struct {
	Pitch      *PitchResult    `json:"pitch,omitempty"` // nil when no usable pitch was found
	Onsets     []OnsetEvent    `json:"onsets"`
	Dynamics   []DynamicsEvent `json:"dynamics"`
	SampleRate int             `json:"sample_rate"`
	Duration   float64         `json:"duration"` // Buffer duration in seconds
}
