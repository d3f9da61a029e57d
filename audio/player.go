package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/efield/constants"
)

// Player plays cues; implementations must not block the caller
type Player interface {
	Play(c Cue)
	Close()
}

// Nop discards every cue
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Close()   {}

// SpeakerPlayer mixes cues onto the system speaker
type SpeakerPlayer struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeakerPlayer creates a player; Initialize must succeed before cues are heard
func NewSpeakerPlayer(cfg Config) *SpeakerPlayer {
	return &SpeakerPlayer{cfg: cfg, mixer: &beep.Mixer{}}
}

// Initialize opens the speaker and starts the mixer
// Calling it again after success is a no-op
func (p *SpeakerPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	rate := beep.SampleRate(p.cfg.SampleRate)
	if rate <= 0 {
		rate = constants.AudioSampleRate
	}
	if err := speaker.Init(rate, rate.N(constants.AudioBuffer)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues cue on the mixer; silently dropped before Initialize
func (p *SpeakerPlayer) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Streamer(c, p.cfg)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close drops queued cues
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// New returns a speaker-backed player when enabled, Nop otherwise
// A speaker that fails to open degrades to Nop and reports the error
func New(cfg Config) (Player, error) {
	if !cfg.Enabled {
		return Nop{}, nil
	}
	p := NewSpeakerPlayer(cfg)
	if err := p.Initialize(); err != nil {
		return Nop{}, err
	}
	return p, nil
}
