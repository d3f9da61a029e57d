// Package audio synthesises short cues for store mutations and rejected input
// and plays them through the beep speaker.
package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/efield/constants"
)

// Cue names an audible event
type Cue int

const (
	CueAdd Cue = iota
	CueDelete
	CueClear
	CueError
)

var cueNames = [...]string{"add", "delete", "clear", "error"}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// Config controls cue playback
type Config struct {
	Enabled    bool
	Volume     float64 // linear gain 0..1
	SampleRate int
}

// DefaultConfig returns audio disabled at half volume
func DefaultConfig() Config {
	return Config{
		Volume:     constants.AudioVolume,
		SampleRate: constants.AudioSampleRate,
	}
}

// cueNotes is the score of every cue
var cueNotes = [...][]note{
	CueAdd: { // E5 then B5
		{659.25, sine, constants.AddNote1Duration, constants.AddAttack, constants.AddNote1Release},
		{987.77, sine, constants.AddNote2Duration, constants.AddAttack, constants.AddNote2Release},
	},
	CueDelete: { // A4 then E4
		{440, square, constants.DeleteNote1Duration, constants.DeleteAttack, constants.DeleteRelease},
		{329.63, square, constants.DeleteNote2Duration, constants.DeleteAttack, constants.DeleteRelease},
	},
	CueClear: {
		{0, noise, constants.ClearDuration, constants.ClearAttack, constants.ClearRelease},
	},
	CueError: {
		{100, saw, constants.ErrorDuration, constants.ErrorAttack, constants.ErrorRelease},
	},
}

// Streamer renders cue at the configured rate and volume; nil for an unknown cue
func Streamer(c Cue, cfg Config) beep.Streamer {
	if c < 0 || int(c) >= len(cueNotes) {
		return nil
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if rate <= 0 {
		rate = constants.AudioSampleRate
	}
	return withVolume(&clip{data: synthesize(cueNotes[c], rate, int64(c))}, cfg.Volume)
}
