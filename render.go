package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dariolbs/termetris/internal/game"
)

// Theme maps the four piece colors plus chrome onto terminal colors.
// PieceColors is indexed by game.Color minus one.
type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	PieceColors []lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "Classic",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: []lipgloss.Color{"196", "51", "226", "46"},
	},
	{
		Name:        "Amber Terminal",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		PieceColors: []lipgloss.Color{"202", "220", "214", "223"},
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		PieceColors: []lipgloss.Color{"45", "39", "51", "75"},
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		PieceColors: []lipgloss.Color{"239", "245", "251", "255"},
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

func (t Theme) pieceColor(c game.Color) lipgloss.Color {
	if c == 0 || len(t.PieceColors) == 0 {
		return t.BorderColor
	}
	return t.PieceColors[int(c-1)%len(t.PieceColors)]
}

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	content := renderMenu("TERMETRIS", menuItems, m.menuIndex, "Enter to select, Q to quit", theme)
	return center(m.width, m.height, content)
}

func viewThemes(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(themes))
	for _, t := range themes {
		items = append(items, t.Name)
	}
	preview := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle(theme).Render("Theme Preview"),
		renderPreviewPieces(theme),
	)
	menu := renderMenu("Themes", items, m.themeIndex, "Enter to apply, Esc to back", theme)
	content := lipgloss.JoinVertical(lipgloss.Left, preview, "", menu)
	return center(m.width, m.height, content)
}

func renderPreviewPieces(theme Theme) string {
	shapes := game.Shapes()
	items := make([]string, 0, len(shapes))
	color := game.Red
	for _, shape := range shapes {
		piece := game.Piece{Shape: shape, Color: color}
		items = append(items, lipgloss.NewStyle().MarginRight(1).Render(renderMiniPiece(piece, theme, 1)))
		color = game.NextColor(color)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func viewConfig(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(configItems))
	for i, item := range configItems {
		switch i {
		case 0:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Sound)))
		case 1:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Music)))
		case 2:
			items = append(items, fmt.Sprintf("%s: %d%%", item, clampVolumePercent(m.config.Volume)))
		case 3:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Ghost)))
		case 4:
			items = append(items, fmt.Sprintf("%s: %dx", item, clampScale(m.config.Scale)))
		}
	}
	content := renderMenu("Config", items, m.configIndex, "Enter to toggle, Left/Right to adjust, Esc to back", theme)
	return center(m.width, m.height, content)
}

func onOff(value bool) string {
	if value {
		return "ON"
	}
	return "OFF"
}

func viewGameOver(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Game Over"))
	b.WriteString("\n\n")
	b.WriteString(statusLine(m.session.Stats()))
	b.WriteString("\n\n")
	b.WriteString(helpStyle(theme).Render("Enter to play again, Esc to menu"))
	return center(m.width, m.height, b.String())
}

func viewGame(m Model) string {
	theme := themes[m.themeIndex]
	scale := clampScale(m.config.Scale)
	minWidth, minHeight := minGameSize(scale)
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	view := m.session.View()
	board := renderBoard(view, theme, scale, m.config.Ghost)
	info := renderInfo(view, theme, scale, m.lastEvent, m.lastDelta, m.paused)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if m.width > 0 && m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, board, info)
	}
	return center(m.width, m.height, content)
}

// renderBoard draws the locked cells, the falling piece and, when enabled,
// its landing position. View points are 1-based, board rows are 0-based.
func renderBoard(view game.View, theme Theme, scale int, showGhost bool) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	cellText := strings.Repeat(" ", cellWidth(scale))
	ghostText := strings.Repeat(".", cellWidth(scale))

	active := make(map[game.Point]struct{}, len(view.Active))
	for _, p := range view.Active {
		active[p] = struct{}{}
	}
	ghost := make(map[game.Point]struct{}, len(view.Ghost))
	if showGhost {
		for _, p := range view.Ghost {
			if _, ok := active[p]; !ok {
				ghost[p] = struct{}{}
			}
		}
	}

	var b strings.Builder
	edge := border.Render("+" + strings.Repeat("-", game.Width*cellWidth(scale)) + "+")
	b.WriteString(edge)
	b.WriteString("\n")
	for y, row := range view.Board {
		for repeat := 0; repeat < scale; repeat++ {
			b.WriteString(border.Render("|"))
			for x, cell := range row {
				point := game.Point{Col: x + 1, Row: y + 1}
				if _, ok := active[point]; ok {
					b.WriteString(lipgloss.NewStyle().Background(theme.pieceColor(view.ActiveColor)).Render(cellText))
					continue
				}
				if color, ok := cell.Color(); ok {
					b.WriteString(lipgloss.NewStyle().Background(theme.pieceColor(color)).Render(cellText))
					continue
				}
				if _, ok := ghost[point]; ok {
					style := lipgloss.NewStyle().Foreground(theme.pieceColor(view.ActiveColor)).Faint(true)
					b.WriteString(style.Render(ghostText))
					continue
				}
				b.WriteString(cellText)
			}
			b.WriteString(border.Render("|"))
			b.WriteString("\n")
		}
	}
	b.WriteString(edge)
	return b.String()
}

func renderInfo(view game.View, theme Theme, scale int, lastEvent string, lastDelta uint64, paused bool) string {
	var b strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(2)
	b.WriteString(pad.Render(titleStyle(theme).Render("Next")))
	b.WriteString("\n")
	b.WriteString(pad.Render(renderMiniPiece(view.Next, theme, scale)))
	b.WriteString("\n\n")
	holdTitle := "Hold"
	if view.HoldUsed {
		holdTitle = "Hold (used)"
	}
	b.WriteString(pad.Render(titleStyle(theme).Render(holdTitle)))
	b.WriteString("\n")
	if view.Held.None() {
		b.WriteString(pad.Render("(empty)"))
	} else {
		b.WriteString(pad.Render(renderMiniPiece(view.Held, theme, scale)))
	}
	b.WriteString("\n\n")
	b.WriteString(pad.Render(fmt.Sprintf("Points: %d", view.Stats.Score)))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Lines: %d", view.Stats.Lines)))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Level: %d", view.Stats.Level)))
	b.WriteString("\n\n")
	if lastEvent != "" {
		b.WriteString(pad.Render(highlightStyle(theme).Render(lastEvent)))
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render(fmt.Sprintf("+%d", lastDelta))))
		b.WriteString("\n\n")
	}
	if view.FastSlide {
		b.WriteString(pad.Render(highlightStyle(theme).Render("Fast slide armed")))
		b.WriteString("\n\n")
	}
	keys := []string{
		"Arrows/HL: move",
		"Shift+H/L: slide",
		"<: fast slide",
		"Z/X or Up: rotate",
		"Down: soft drop",
		"Space: hard drop",
		"C: hold",
		"P: pause",
		"Q: menu",
	}
	for _, line := range keys {
		b.WriteString(pad.Render(helpStyle(theme).Render(line)))
		b.WriteString("\n")
	}
	if paused {
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render("Paused")))
	}
	return b.String()
}

// renderMiniPiece draws a piece in its spawn orientation on a 3x4 grid.
func renderMiniPiece(piece game.Piece, theme Theme, scale int) string {
	const cols, rows = 3, 4
	var grid [rows][cols]bool
	if !piece.None() {
		for _, p := range game.Offsets(piece.Shape, piece.Inverted) {
			grid[p.Row-1][p.Col+1] = true
		}
	}
	cellText := strings.Repeat(" ", cellWidth(scale))
	filled := lipgloss.NewStyle().Background(theme.pieceColor(piece.Color))
	var b strings.Builder
	for y := 0; y < rows; y++ {
		for repeat := 0; repeat < scale; repeat++ {
			for x := 0; x < cols; x++ {
				if grid[y][x] {
					b.WriteString(filled.Render(cellText))
					continue
				}
				b.WriteString(cellText)
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func minGameSize(scale int) (int, int) {
	width := game.Width*cellWidth(scale) + 4
	height := game.Height*scale + 4
	return width, height
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func clampScale(value int) int {
	if value < 1 {
		return 1
	}
	if value > 3 {
		return 3
	}
	return value
}

func clampVolumePercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func cellWidth(scale int) int {
	if scale < 1 {
		scale = 1
	}
	return 2 * scale
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		if width := lipgloss.Width(item); width > maxWidth {
			maxWidth = width
		}
	}
	if width := lipgloss.Width(footer); width > maxWidth {
		maxWidth = width
	}
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, line := range items {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(line)))
		} else {
			b.WriteString(lineStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}
