package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/llehouerou/go-mp3"
)

// MusicPlayer loops a user supplied mp3 during play. A nil player is valid
// and silent, which is what you get without an audio device or a track.
type MusicPlayer struct {
	ctx     *oto.Context
	path    string
	mu      sync.Mutex
	playing bool
	player  *oto.Player
	dec     *safeDecoder
	stop    chan struct{}
	volume  float64
}

func NewMusicPlayer(ctx *oto.Context, path string, volume float64) *MusicPlayer {
	if ctx == nil || path == "" {
		return nil
	}
	return &MusicPlayer{
		ctx:    ctx,
		path:   path,
		volume: clampVolume(volume),
	}
}

func (m *MusicPlayer) SetVolume(volume float64) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.volume = clampVolume(volume)
	m.mu.Unlock()
}

func (m *MusicPlayer) StartGame() {
	if m == nil {
		return
	}
	m.mu.Lock()
	if m.playing && m.player != nil {
		m.mu.Unlock()
		return
	}
	m.stopLocked()
	dec, err := openTrack(m.path)
	if err != nil {
		m.mu.Unlock()
		DebugLogf("music disabled: %v", err)
		return
	}
	loopEnd := dec.Duration()
	vr := &volumeReader{
		reader:    dec,
		getVolume: m.volumeValue,
	}
	player := m.ctx.NewPlayer(vr)
	player.Play()
	m.player = player
	m.dec = dec
	m.stop = make(chan struct{})
	m.playing = true
	stop := m.stop
	m.mu.Unlock()

	go loopTrack(stop, player, dec, loopEnd)
}

func loopTrack(stop <-chan struct{}, player *oto.Player, dec *safeDecoder, loopEnd time.Duration) {
	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ended := !player.IsPlaying()
			if loopEnd > 0 && dec.Position() >= loopEnd {
				ended = true
			}
			if ended {
				_ = dec.SeekToTime(0)
				player.Play()
			}
		}
	}
}

func (m *MusicPlayer) Stop() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.stopLocked()
	m.playing = false
	m.mu.Unlock()
}

func (m *MusicPlayer) stopLocked() {
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
	if m.player != nil {
		_ = m.player.Close()
		m.player = nil
	}
	m.dec = nil
}

func (m *MusicPlayer) volumeValue() float64 {
	m.mu.Lock()
	volume := m.volume
	m.mu.Unlock()
	return volume
}

type safeDecoder struct {
	mu  sync.Mutex
	dec *mp3.Decoder
}

func openTrack(path string) (*safeDecoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode track %s: %w", path, err)
	}
	return &safeDecoder{dec: dec}, nil
}

func (s *safeDecoder) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.Read(p)
}

func (s *safeDecoder) SampleRate() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.SampleRate()
}

func (s *safeDecoder) SeekToTime(t time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.SeekToTime(t)
}

func (s *safeDecoder) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.Position()
}

func (s *safeDecoder) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dec.Duration()
}

// volumeReader scales 16-bit little-endian samples on the way to oto.
type volumeReader struct {
	reader    io.Reader
	getVolume func() float64
}

func (v *volumeReader) Read(p []byte) (int, error) {
	n, err := v.reader.Read(p)
	scaleSamples(p[:n], clampVolume(v.getVolume()))
	return n, err
}

func scaleSamples(p []byte, volume float64) {
	if volume >= 0.999 {
		return
	}
	for i := 0; i+1 < len(p); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(p[i:]))
		scaled := int16(float64(sample) * volume)
		binary.LittleEndian.PutUint16(p[i:], uint16(scaled))
	}
}
