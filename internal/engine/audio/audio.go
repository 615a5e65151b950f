// Package audio plays short interface feedback sounds.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Cue identifies a feedback sound.
type Cue int

const (
	CueHover    Cue = iota // pointer entered a target
	CueActivate            // target clicked
)

func (c Cue) String() string {
	switch c {
	case CueHover:
		return "hover"
	case CueActivate:
		return "activate"
	default:
		return "unknown"
	}
}

// tone describes the synthesized fallback for a cue.
type tone struct {
	freq     float64
	duration time.Duration
}

var defaultTones = map[Cue]tone{
	CueHover:    {freq: 660, duration: 60 * time.Millisecond},
	CueActivate: {freq: 880, duration: 140 * time.Millisecond},
}

// device is the audio output. The speaker package in production, a fake in tests.
type device interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
	Clear()
	Close()
}

type speakerDevice struct{}

func (speakerDevice) Init(sr beep.SampleRate, bufferSize int) error {
	return speaker.Init(sr, bufferSize)
}
func (speakerDevice) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerDevice) Lock()                   { speaker.Lock() }
func (speakerDevice) Unlock()                 { speaker.Unlock() }
func (speakerDevice) Clear()                  { speaker.Clear() }
func (speakerDevice) Close()                  { speaker.Close() }

// Config holds feedback sound settings.
type Config struct {
	Volume        float64 // 0.0 to 1.0
	HoverSound    string  // optional WAV file, synthesized tone when empty
	ActivateSound string
}

// Manager owns the speaker and the preloaded cue clips.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate
	volume      float64

	// SFX mixer for concurrent cues
	mixer *beep.Mixer
	clips map[Cue]*beep.Buffer

	out device
	log *zap.Logger
}

// New creates a manager and prepares the cue clips. A clip that fails to
// load falls back to its synthesized tone.
func New(cfg Config, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		sampleRate: DefaultSampleRate,
		volume:     clamp(cfg.Volume, 0, 1),
		mixer:      &beep.Mixer{},
		clips:      make(map[Cue]*beep.Buffer),
		out:        speakerDevice{},
		log:        log,
	}

	files := map[Cue]string{CueHover: cfg.HoverSound, CueActivate: cfg.ActivateSound}
	for cue, t := range defaultTones {
		if path := files[cue]; path != "" {
			buf, err := m.loadClip(path)
			if err == nil {
				m.clips[cue] = buf
				continue
			}
			log.Warn("sound file unusable, using tone",
				zap.Stringer("cue", cue), zap.String("path", path), zap.Error(err))
		}
		buf, err := m.toneClip(t)
		if err != nil {
			log.Warn("tone synthesis failed", zap.Stringer("cue", cue), zap.Error(err))
			continue
		}
		m.clips[cue] = buf
	}
	return m
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := m.out.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	m.out.Play(m.mixer)

	m.initialized = true
	m.log.Debug("audio initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close stops playback and releases the output device.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	m.out.Clear()
	m.out.Close()
	m.initialized = false
}

// IsInitialized reports whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the cue volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Play mixes the clip for cue into the output.
func (m *Manager) Play(cue Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.volume
	buf := m.clips[cue]
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if buf == nil {
		return fmt.Errorf("no clip for cue %s", cue)
	}

	m.out.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   volumeToDb(vol) / 6,
		Silent:   vol <= 0,
	})
	m.out.Unlock()
	return nil
}

// ClipLength returns the number of samples in the clip for cue.
func (m *Manager) ClipLength(cue Cue) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if buf := m.clips[cue]; buf != nil {
		return buf.Len()
	}
	return 0
}

func (m *Manager) format() beep.Format {
	return beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2}
}

func (m *Manager) toneClip(t tone) (*beep.Buffer, error) {
	sine, err := generators.SineTone(m.sampleRate, t.freq)
	if err != nil {
		return nil, fmt.Errorf("sine tone %.0fHz: %w", t.freq, err)
	}
	buf := beep.NewBuffer(m.format())
	buf.Append(&effects.Gain{
		Streamer: beep.Take(m.sampleRate.N(t.duration), sine),
		Gain:     -0.7,
	})
	return buf, nil
}

func (m *Manager) loadClip(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if format.SampleRate != m.sampleRate {
		src = beep.Resample(4, format.SampleRate, m.sampleRate, streamer)
	}
	buf := beep.NewBuffer(m.format())
	buf.Append(src)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	return buf, nil
}

// volumeToDb converts a 0-1 volume to decibels: 1 -> 0dB, 0.5 -> about -6dB.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
