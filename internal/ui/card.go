package ui

import (
	"math"
	"strings"

	"github.com/abelbrown/kittyswipe/internal/art"
	"github.com/abelbrown/kittyswipe/internal/preload"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// CardView is everything needed to draw one card. It is a plain value so
// that rendering can be compared in tests.
type CardView struct {
	Visible  bool
	ImageURL string
	Name     string
	Vibe     string
	Tags     []string
	Counter  string

	Offset   float64 // horizontal displacement in pixels
	Rotation float64 // degrees, positive is clockwise
	Like     float64 // LIKE badge intensity
	Nope     float64 // NOPE badge intensity
}

// rect is a screen region in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

const (
	nopeLabel = "[ ✕ Nope ]"
	likeLabel = "[ ♥ Like ]"
	buttonGap = 4

	// deckTop is the first row of the card: title, counter, badges above it.
	deckTop = 3
)

// deckLayout positions the card and buttons for the current window.
type deckLayout struct {
	card rect
	nope rect
	like rect
}

func (a App) layout() deckLayout {
	cardW := a.cfg.ArtWidth + 4  // border + padding
	cardH := a.cfg.ArtHeight + 5 // border + name, vibe, tags

	left := maxInt(0, (a.width-cardW)/2)
	card := rect{x: left, y: deckTop, w: cardW, h: cardH}

	nopeW := lipgloss.Width(nopeLabel)
	likeW := lipgloss.Width(likeLabel)
	bx := maxInt(0, (a.width-(nopeW+buttonGap+likeW))/2)
	by := card.y + card.h + 1

	return deckLayout{
		card: card,
		nope: rect{x: bx, y: by, w: nopeW, h: 1},
		like: rect{x: bx + nopeW + buttonGap, y: by, w: likeW, h: 1},
	}
}

// cardArt returns the image block for url, or a placeholder.
func (a App) cardArt(url string) string {
	w, h := a.cfg.ArtWidth, a.cfg.ArtHeight
	if a.cfg.ArtFor == nil {
		return art.Placeholder(w, h, "loading…")
	}
	s, state := a.cfg.ArtFor(url)
	switch state {
	case preload.StateReady:
		return s
	case preload.StateFailed:
		return art.Placeholder(w, h, "✕ image unavailable")
	default:
		return art.Placeholder(w, h, "loading…")
	}
}

// renderCard draws the framed card without any transform applied.
func (a App) renderCard(cv CardView) string {
	w := a.cfg.ArtWidth
	line := lipgloss.NewStyle().Width(w)

	body := lipgloss.JoinVertical(lipgloss.Left,
		a.cardArt(cv.ImageURL),
		line.Render(CardName.Render(ansi.Truncate(cv.Name, w, "…"))),
		line.Render(CardVibe.Render(ansi.Truncate(cv.Vibe, w, "…"))),
		line.Render(CardTags.Render(ansi.Truncate(strings.Join(cv.Tags, " · "), w, "…"))),
	)
	return CardStyle.Render(body)
}

// renderBadges draws the LIKE/NOPE row above the card. Only one is ever lit.
func (a App) renderBadges(cv CardView, width int) string {
	switch {
	case cv.Like > 0:
		return badgeStyle(hexLike, cv.Like).Render("LIKE")
	case cv.Nope > 0:
		b := badgeStyle(hexNope, cv.Nope).Render("NOPE")
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, b)
	default:
		return ""
	}
}

// placeCard lays the card out on screen rows, shifted by the view's offset
// and sheared to suggest rotation.
func (a App) placeCard(cv CardView, l deckLayout) []string {
	lines := strings.Split(a.renderCard(cv), "\n")

	shift := int(math.Round(cv.Offset / a.cfg.CellWidth))
	tan := math.Tan(cv.Rotation * math.Pi / 180)
	mid := float64(len(lines)-1) / 2

	out := make([]string, 0, len(lines)+1)
	badges := a.renderBadges(cv, l.card.w)
	out = append(out, placeLine(badges, l.card.x+shift, a.width))

	for i, ln := range lines {
		// cells are about twice as tall as wide
		skew := int(math.Round(tan * (mid - float64(i)) * 2))
		out = append(out, placeLine(ln, l.card.x+shift+skew, a.width))
	}
	return out
}

// placeLine puts s at column x, clipping anything outside [0,width).
func placeLine(s string, x, width int) string {
	if width <= 0 {
		return ""
	}
	if x < 0 {
		s = ansi.TruncateLeft(s, -x, "")
		x = 0
	}
	if x >= width {
		return ""
	}
	return ansi.Truncate(strings.Repeat(" ", x)+s, width, "")
}

func renderButtons(l deckLayout) string {
	return strings.Repeat(" ", l.nope.x) +
		ButtonStyle.Render(nopeLabel) +
		strings.Repeat(" ", buttonGap) +
		ButtonStyle.Render(likeLabel)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
