package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"golang.org/x/time/rate"
)

type SoundEvent int

const (
	SoundLock SoundEvent = iota
	SoundLine1
	SoundLine2
	SoundLine3
	SoundLine4
	SoundRotate
	SoundMove
	SoundDrop
	SoundHold
	SoundMenuMove
	SoundMenuSelect
	SoundGameOver
)

// Key repeat can fire far faster than tones finish; extra events are dropped.
const (
	soundsPerSecond = 25
	soundBurst      = 6
)

// SoundEngine synthesizes short tones for game events on a shared oto
// context. A nil context leaves it silent.
type SoundEngine struct {
	enabled    bool
	sampleRate int
	ctx        *oto.Context
	volume     float64
	limiter    *rate.Limiter
	mu         sync.RWMutex
}

func NewSoundEngine(ctx *oto.Context, sampleRate int, enabled bool) *SoundEngine {
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	return &SoundEngine{
		enabled:    enabled,
		sampleRate: sampleRate,
		ctx:        ctx,
		volume:     0.7,
		limiter:    rate.NewLimiter(soundsPerSecond, soundBurst),
	}
}

func (s *SoundEngine) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

func (s *SoundEngine) SetVolume(volume float64) {
	s.mu.Lock()
	s.volume = clampVolume(volume)
	s.mu.Unlock()
}

func (s *SoundEngine) Play(event SoundEvent) {
	if s == nil {
		return
	}
	s.mu.RLock()
	ctx := s.ctx
	enabled := s.enabled
	volume := s.volume
	s.mu.RUnlock()
	if !enabled || ctx == nil || !s.limiter.Allow() {
		return
	}
	sequence := tonesForEvent(event)
	if len(sequence) == 0 {
		return
	}
	go func() {
		buffer := renderToneSequence(sequence, s.sampleRate, volume)
		reader := bytes.NewReader(buffer)
		player := ctx.NewPlayer(reader)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		_ = player.Close()
	}()
}

type toneSpec struct {
	frequency float64
	duration  time.Duration
	volume    float64
}

func tonesForEvent(event SoundEvent) []toneSpec {
	switch event {
	case SoundLock:
		return []toneSpec{{frequency: 220, duration: 70 * time.Millisecond, volume: 0.3}}
	case SoundLine1:
		return []toneSpec{{frequency: 440, duration: 90 * time.Millisecond, volume: 0.3}}
	case SoundLine2:
		return []toneSpec{
			{frequency: 440, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 660, duration: 90 * time.Millisecond, volume: 0.3},
		}
	case SoundLine3:
		return []toneSpec{
			{frequency: 440, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 660, duration: 70 * time.Millisecond, volume: 0.3},
			{frequency: 880, duration: 90 * time.Millisecond, volume: 0.3},
		}
	case SoundLine4:
		return []toneSpec{
			{frequency: 660, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 880, duration: 80 * time.Millisecond, volume: 0.3},
			{frequency: 990, duration: 120 * time.Millisecond, volume: 0.3},
		}
	case SoundRotate:
		return []toneSpec{{frequency: 520, duration: 40 * time.Millisecond, volume: 0.25}}
	case SoundMove:
		return []toneSpec{{frequency: 380, duration: 25 * time.Millisecond, volume: 0.18}}
	case SoundDrop:
		return []toneSpec{{frequency: 240, duration: 55 * time.Millisecond, volume: 0.22}}
	case SoundHold:
		return []toneSpec{
			{frequency: 330, duration: 35 * time.Millisecond, volume: 0.2},
			{frequency: 440, duration: 45 * time.Millisecond, volume: 0.2},
		}
	case SoundMenuMove:
		return []toneSpec{{frequency: 260, duration: 24 * time.Millisecond, volume: 0.16}}
	case SoundMenuSelect:
		return []toneSpec{{frequency: 520, duration: 70 * time.Millisecond, volume: 0.2}}
	case SoundGameOver:
		return []toneSpec{{frequency: 180, duration: 160 * time.Millisecond, volume: 0.28}}
	default:
		return nil
	}
}

const (
	toneGap        = 10 * time.Millisecond
	toneFade       = 3 * time.Millisecond
	bytesPerFrame  = 4
	defaultToneVol = 0.3
)

func samplesFor(d time.Duration, sampleRate int) int {
	return int(float64(sampleRate) * d.Seconds())
}

// renderToneSequence lays the tones out back to back with a short silence
// between them, as interleaved stereo 16-bit frames.
func renderToneSequence(sequence []toneSpec, sampleRate int, masterVolume float64) []byte {
	gapBytes := samplesFor(toneGap, sampleRate) * bytesPerFrame
	total := 0
	for i, tone := range sequence {
		total += samplesFor(tone.duration, sampleRate) * bytesPerFrame
		if i < len(sequence)-1 {
			total += gapBytes
		}
	}
	buffer := make([]byte, total)
	offset := 0
	for _, tone := range sequence {
		volume := defaultToneVol
		if tone.volume > 0 {
			volume = tone.volume
		}
		offset += renderTone(buffer[offset:], tone, sampleRate, volume*clampVolume(masterVolume))
		offset += gapBytes
	}
	return buffer
}

// renderTone writes one enveloped sine into buf and returns the bytes used.
func renderTone(buf []byte, tone toneSpec, sampleRate int, volume float64) int {
	const maxInt16 = 1<<15 - 1
	samples := samplesFor(tone.duration, sampleRate)
	fade := samplesFor(toneFade, sampleRate)
	for i := 0; i < samples; i++ {
		env := 1.0
		switch {
		case fade <= 0:
		case i < fade:
			env = float64(i) / float64(fade)
		case i > samples-fade:
			env = math.Max(0, float64(samples-i)/float64(fade))
		}
		sample := math.Sin(2 * math.Pi * tone.frequency * float64(i) / float64(sampleRate))
		value := uint16(int16(sample * volume * env * maxInt16))
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame:], value)
		binary.LittleEndian.PutUint16(buf[i*bytesPerFrame+2:], value)
	}
	return samples * bytesPerFrame
}

func clampVolume(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
