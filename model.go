package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/dariolbs/termetris/internal/game"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenThemes
	screenConfig
	screenGameOver
)

type soundMsg struct{}

const eventLabelDuration = 900 * time.Millisecond

type Model struct {
	screen       Screen
	width        int
	height       int
	menuIndex    int
	configIndex  int
	themeIndex   int
	config       Config
	gameID       string
	session      *game.Session
	sound        *SoundEngine
	music        *MusicPlayer
	paused       bool
	pausedAt     time.Time
	tickGen      int
	lastDelta    uint64
	lastEvent    string
	lastEventTil time.Time
}

func NewModel(config Config, seed int64) Model {
	index := themeIndexByName(config.Theme)
	if index < 0 {
		index = 0
		config.Theme = themes[index].Name
	}
	ctx, sampleRate, err := initAudioContext(config.MusicFile)
	if err != nil {
		DebugLogf("audio context init error: %v", err)
	}
	sound := NewSoundEngine(ctx, sampleRate, config.Sound)
	sound.SetVolume(volumeFromPercent(config.Volume))
	session := game.NewSession(
		game.WithGenerator(game.NewRandomGenerator(seed)),
		game.WithLogger(DebugLogger().With().Str("component", "session").Logger()),
	)
	return Model{
		screen:     screenMenu,
		config:     config,
		themeIndex: index,
		session:    session,
		sound:      sound,
		music:      NewMusicPlayer(ctx, config.MusicFile, volumeFromPercent(config.Volume)),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if msg.gen != m.tickGen || m.screen != screenGame {
			return m, nil
		}
		m.expireEvent(msg.at)
		if m.paused {
			return m, tickCmd(idleTickInterval, msg.gen)
		}
		result := m.session.Tick(msg.at)
		cmd := m.applyResult(result, game.CmdNone, msg.at)
		if m.screen != screenGame {
			return m, cmd
		}
		return m, tea.Batch(cmd, tickCmd(tickInterval(m.session, msg.at), msg.gen))
	case soundMsg:
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.music.Stop()
			return m, tea.Quit
		case "ctrl+=", "ctrl++":
			m.adjustScale(1)
			return m, nil
		case "ctrl+-", "ctrl+_":
			m.adjustScale(-1)
			return m, nil
		}
		var cmd tea.Cmd
		switch m.screen {
		case screenMenu:
			cmd = m.updateMenu(msg)
		case screenGame:
			cmd = m.updateGame(msg)
		case screenThemes:
			cmd = m.updateThemes(msg)
		case screenConfig:
			cmd = m.updateConfig(msg)
		case screenGameOver:
			cmd = m.updateGameOver(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenThemes:
		return viewThemes(m)
	case screenConfig:
		return viewConfig(m)
	case screenGameOver:
		return viewGameOver(m)
	default:
		return ""
	}
}

func playSound(engine *SoundEngine, event SoundEvent) tea.Cmd {
	return func() tea.Msg {
		if engine != nil {
			engine.Play(event)
		}
		return soundMsg{}
	}
}

// soundForResult picks the single most relevant sound for what an event did.
func soundForResult(result game.Result, cmd game.Command) (SoundEvent, bool) {
	switch {
	case result.GameOver:
		return SoundGameOver, true
	case result.Cleared >= 4:
		return SoundLine4, true
	case result.Cleared == 3:
		return SoundLine3, true
	case result.Cleared == 2:
		return SoundLine2, true
	case result.Cleared == 1:
		return SoundLine1, true
	case result.Locked && cmd == game.CmdHardDrop:
		return SoundDrop, true
	case result.Locked:
		return SoundLock, true
	case result.Held:
		return SoundHold, true
	case result.Rotated:
		return SoundRotate, true
	case result.Moved && cmd != game.CmdNone:
		return SoundMove, true
	}
	return SoundLock, false
}

func clearLabel(rows int) string {
	switch rows {
	case 1:
		return "SINGLE"
	case 2:
		return "DOUBLE"
	case 3:
		return "TRIPLE"
	default:
		return "TETRIS"
	}
}

func (m *Model) applyResult(result game.Result, cmd game.Command, now time.Time) tea.Cmd {
	if result.Cleared > 0 {
		m.lastDelta = result.Points
		m.lastEvent = clearLabel(result.Cleared)
		m.lastEventTil = now.Add(eventLabelDuration)
	}
	var cmds []tea.Cmd
	if event, ok := soundForResult(result, cmd); ok && m.config.Sound {
		cmds = append(cmds, playSound(m.sound, event))
	}
	if result.GameOver {
		stats := m.session.Stats()
		logger := DebugLogger()
		logger.Debug().
			Str("game", m.gameID).
			Uint64("score", stats.Score).
			Int("lines", stats.Lines).
			Int("level", stats.Level).
			Msg("game over")
		cmds = append(cmds, m.setScreen(screenGameOver))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) expireEvent(now time.Time) {
	if !m.lastEventTil.IsZero() && now.After(m.lastEventTil) {
		m.lastEvent = ""
		m.lastDelta = 0
		m.lastEventTil = time.Time{}
	}
}

func (m *Model) adjustScale(delta int) {
	newScale := clampScale(m.config.Scale + delta)
	if newScale != m.config.Scale {
		m.config.Scale = newScale
		m.persistConfig()
	}
}

func (m *Model) adjustVolume(delta int) {
	newVolume := clampVolumePercent(m.config.Volume + delta)
	if newVolume == m.config.Volume {
		return
	}
	m.config.Volume = newVolume
	if m.sound != nil {
		m.sound.SetVolume(volumeFromPercent(newVolume))
	}
	if m.music != nil {
		m.music.SetVolume(volumeFromPercent(newVolume))
	}
	m.persistConfig()
}

func (m *Model) persistConfig() {
	if err := saveConfig(m.config); err != nil {
		DebugLogf("config save error: %v", err)
	}
}

func volumeFromPercent(value int) float64 {
	return float64(clampVolumePercent(value)) / 100
}

func (m *Model) setScreen(screen Screen) tea.Cmd {
	m.screen = screen
	m.syncMusicForScreen()
	return nil
}

func (m *Model) syncMusicForScreen() {
	if m.music == nil {
		return
	}
	if !m.config.Music || m.screen != screenGame || m.paused {
		m.music.Stop()
		return
	}
	m.music.StartGame()
}

func (m *Model) startGame(now time.Time) tea.Cmd {
	m.session.Reset()
	m.gameID = uuid.NewString()
	logger := DebugLogger()
	logger.Debug().Str("game", m.gameID).Msg("game start")
	m.session.Start(now)
	m.paused = false
	m.lastEvent = ""
	m.lastDelta = 0
	m.lastEventTil = time.Time{}
	m.tickGen++
	return tea.Batch(m.setScreen(screenGame), tickCmd(tickInterval(m.session, now), m.tickGen))
}

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
			if m.config.Sound {
				cmd = playSound(m.sound, SoundMenuMove)
			}
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
			if m.config.Sound {
				cmd = playSound(m.sound, SoundMenuMove)
			}
		}
	case "enter":
		if m.config.Sound {
			cmd = playSound(m.sound, SoundMenuSelect)
		}
		switch m.menuIndex {
		case 0:
			return tea.Batch(cmd, m.startGame(time.Now()))
		case 1:
			return tea.Batch(cmd, m.setScreen(screenThemes))
		case 2:
			return tea.Batch(cmd, m.setScreen(screenConfig))
		case 3:
			m.music.Stop()
			return tea.Quit
		}
	case "q", "esc":
		m.music.Stop()
		return tea.Quit
	}
	return cmd
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	now := time.Now()
	key := msg.String()
	if key == "p" {
		m.togglePause(now)
		return nil
	}
	cmd := commandForKey(key)
	if cmd == game.CmdQuit {
		m.session.Reset()
		m.paused = false
		return m.setScreen(screenMenu)
	}
	if m.paused {
		return nil
	}
	result := m.session.Handle(cmd, now)
	return m.applyResult(result, cmd, now)
}

func (m *Model) togglePause(now time.Time) {
	if m.paused {
		m.session.Delay(now.Sub(m.pausedAt))
		m.paused = false
		m.pausedAt = time.Time{}
	} else {
		m.paused = true
		m.pausedAt = now
	}
	DebugLogf("paused=%v", m.paused)
	m.syncMusicForScreen()
}

func (m *Model) updateGameOver(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "r":
		return m.startGame(time.Now())
	case "q", "esc":
		m.session.Reset()
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateThemes(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.themeIndex > 0 {
			m.themeIndex--
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "down", "j":
		if m.themeIndex < len(themes)-1 {
			m.themeIndex++
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "enter":
		m.config.Theme = themes[m.themeIndex].Name
		m.persistConfig()
		cmd := m.setScreen(screenMenu)
		if m.config.Sound {
			return tea.Batch(cmd, playSound(m.sound, SoundMenuSelect))
		}
		return cmd
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

func (m *Model) updateConfig(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.configIndex > 0 {
			m.configIndex--
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "down", "j":
		if m.configIndex < len(configItems)-1 {
			m.configIndex++
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "enter":
		switch m.configIndex {
		case 0:
			m.config.Sound = !m.config.Sound
			if m.sound != nil {
				m.sound.SetEnabled(m.config.Sound)
			}
		case 1:
			m.config.Music = !m.config.Music
			m.syncMusicForScreen()
		case 2:
			m.adjustVolume(5)
			return nil
		case 3:
			m.config.Ghost = !m.config.Ghost
		case 4:
			m.adjustScale(1)
			return nil
		}
		m.persistConfig()
		if m.config.Sound {
			return playSound(m.sound, SoundMenuSelect)
		}
	case "left", "h", "right", "l":
		delta := 1
		if msg.String() == "left" || msg.String() == "h" {
			delta = -1
		}
		switch m.configIndex {
		case 2:
			m.adjustVolume(5 * delta)
		case 4:
			m.adjustScale(delta)
		default:
			return nil
		}
		if m.config.Sound {
			return playSound(m.sound, SoundMenuMove)
		}
	case "q", "esc":
		return m.setScreen(screenMenu)
	}
	return nil
}

var menuItems = []string{
	"Start Game",
	"Themes",
	"Config",
	"Quit",
}

var configItems = []string{
	"Sound Effects",
	"Music",
	"Volume",
	"Ghost Piece",
	"Game Scale",
}

func statusLine(stats game.Stats) string {
	return fmt.Sprintf("Points: %d  Level: %d  Lines: %d", stats.Score, stats.Level, stats.Lines)
}
