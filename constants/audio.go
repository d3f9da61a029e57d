package constants

import "time"

// Playback
const (
	AudioSampleRate = 44100
	AudioBuffer     = 100 * time.Millisecond
	AudioVolume     = 0.5
)

// Add cue: rising two-note chime
const (
	AddNote1Duration = 60 * time.Millisecond
	AddNote2Duration = 140 * time.Millisecond
	AddAttack        = 5 * time.Millisecond
	AddNote1Release  = 30 * time.Millisecond
	AddNote2Release  = 110 * time.Millisecond
)

// Delete cue: short falling blip
const (
	DeleteNote1Duration = 50 * time.Millisecond
	DeleteNote2Duration = 90 * time.Millisecond
	DeleteAttack        = 5 * time.Millisecond
	DeleteRelease       = 40 * time.Millisecond
)

// Clear cue: noise sweep
const (
	ClearDuration = 250 * time.Millisecond
	ClearAttack   = 100 * time.Millisecond
	ClearRelease  = 150 * time.Millisecond
)

// Error cue: harsh buzz
const (
	ErrorDuration = 150 * time.Millisecond
	ErrorAttack   = 5 * time.Millisecond
	ErrorRelease  = 40 * time.Millisecond
)
