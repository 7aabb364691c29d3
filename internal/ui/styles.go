package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("212") // Pink
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorBorder    = lipgloss.Color("63")

	hexBackground = "#1e1e2e"
	hexLike       = "#3fb950"
	hexNope       = "#f85149"
)

// TitleStyle for the app name.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary)

// CounterStyle for the "Cat i of N" label.
var CounterStyle = lipgloss.NewStyle().
	Foreground(colorSecondary)

// CardStyle frames the current card.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBorder).
	Padding(0, 1)

// CardName style for the display name.
var CardName = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// CardVibe style for the descriptor.
var CardVibe = lipgloss.NewStyle().
	Italic(true).
	Foreground(colorSecondary)

// CardTags style for the tag list.
var CardTags = lipgloss.NewStyle().
	Foreground(colorPrimary)

// ButtonStyle for the on-screen decision buttons.
var ButtonStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236"))

// OverlayStyle for the tutorial and loading boxes.
var OverlayStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 3)

// TileCaption style for summary tile names.
var TileCaption = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Bold(true)

// SummaryCount style for the aggregate sentence.
var SummaryCount = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary).
	MarginBottom(1)

// HelpStyle wraps the key help line.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// badgeStyle fades a badge in from the background colour. intensity is
// clamped to [0,1].
func badgeStyle(hex string, intensity float64) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(lipgloss.Color("255")).
		Background(blend(hexBackground, hex, intensity))
}

func blend(from, to string, t float64) lipgloss.Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	a, err := colorful.Hex(from)
	if err != nil {
		return lipgloss.Color(to)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return lipgloss.Color(to)
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}
