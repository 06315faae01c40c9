// Command audition analyzes a WAV recording and reports pitch, onset, and
// dynamics events as JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/soniqlab/audition/analysis"
	"github.com/soniqlab/audition/effects"
	"github.com/soniqlab/audition/logging"
	"github.com/soniqlab/audition/music"
	"github.com/soniqlab/audition/transcode"
	"github.com/soniqlab/audition/waveform"
)

var (
	outFile       = flag.String("o", "", "")
	applyReverb   = flag.Bool("reverb", false, "")
	waveformWidth = flag.Int("waveform", 0, "")
	verbose       = flag.Bool("v", false, "")
	showHelp      = flag.Bool("h", false, "")
)

// Report is the JSON document written for one recording
type Report struct {
	FileName   string              `json:"file_name"`
	SampleRate int                 `json:"sample_rate"`
	Channels   int                 `json:"channels"`
	Duration   float64             `json:"duration"`
	NoteName   string              `json:"note_name,omitempty"`
	Result     *analysis.Result    `json:"result"`
	Waveform   []waveform.PeakPair `json:"waveform,omitempty"`
}

func main() {
	flag.Parse()

	if *showHelp {
		usage()
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		fail("WAV file name required")
	}

	if *verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	inFileName := flag.Arg(0)

	data, err := transcode.DecodeWAVFile(inFileName)
	if err != nil {
		logging.Fatal(err, "failed to read input", logging.Fields{"file": inFileName})
	}

	pcm := data.PCM
	if *applyReverb {
		pcm = effects.NewReverb().Process(pcm)
	}

	analyzer := analysis.NewAnalyzer(data.SampleRate)
	result := analyzer.Analyze(pcm)

	report := &Report{
		FileName:   inFileName,
		SampleRate: data.SampleRate,
		Channels:   data.Channels,
		Duration:   data.Duration.Seconds(),
		Result:     result,
	}
	if result.Pitch != nil {
		report.NoteName = music.NoteName(result.Pitch.MIDINote)
	}
	if *waveformWidth > 0 {
		report.Waveform = waveform.ComputePeaks(pcm, *waveformWidth)
	}

	buf, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		logging.Fatal(err, "failed to encode report")
	}
	buf = append(buf, '\n')

	if *outFile == "" {
		os.Stdout.Write(buf)
		return
	}
	if err := os.WriteFile(*outFile, buf, 0o644); err != nil {
		logging.Fatal(err, "failed to write report", logging.Fields{"file": *outFile})
	}
}

func fail(msg string) {
	fmt.Printf("Error: %s\n", msg)
	usage()
	os.Exit(1)
}

func usage() {
	fmt.Println(usageString)
}

const usageString = `use: audition [-reverb] [-waveform width] [-v] [-o <out file>] <WAV file> or
     audition -h
where
    -h displays this help

    <WAV file> is the name of the recording to analyze.

    -reverb: Optional. Apply a room reverb before analysis.

    -waveform width: Optional. Include min/max waveform peaks for the
               given pixel width in the report.

    -v: Optional. Verbose (debug) logging.

    -o <out file>: Optional. Write the JSON report to a file instead
               of stdout.`
