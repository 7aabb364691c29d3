package ui

import (
	"fmt"
	"strings"

	"github.com/abelbrown/kittyswipe/internal/art"
	"github.com/abelbrown/kittyswipe/internal/gesture"
	"github.com/abelbrown/kittyswipe/internal/logging"
	"github.com/abelbrown/kittyswipe/internal/model"
	"github.com/abelbrown/kittyswipe/internal/preload"
	"github.com/abelbrown/kittyswipe/internal/session"
	"github.com/abelbrown/kittyswipe/internal/summary"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenIntro screen = iota
	screenLoading
	screenDeck
	screenSummary
)

// AppConfig injects the side-effecting operations. Any field may be nil.
type AppConfig struct {
	// LoadDeck fetches a batch, preloads the first image and returns DeckLoaded.
	LoadDeck func() tea.Cmd
	// AwaitArt waits for the given items' images and returns ArtSettled.
	AwaitArt func(items []model.Item) tea.Cmd
	// ArtFor returns the rendered image for a URL.
	ArtFor func(url string) (string, preload.State)
	// Reset discards everything loaded for the previous session.
	Reset func()

	CellWidth float64 // pixels per terminal column
	ArtWidth  int
	ArtHeight int
}

// App is the root Bubble Tea model. It owns the session and the gesture
// recognizer; IO is reached only through AppConfig.
type App struct {
	cfg AppConfig

	screen   screen
	session  *session.Session
	drag     gesture.Recognizer
	frame    gesture.Frame // live drag feedback
	anim     animation
	seq      int // identifies the running animation
	tutorial bool

	summaryLoading bool
	summary        summary.Summary

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width  int
	height int
	err    error
}

// NewApp creates an App on the intro screen.
func NewApp(cfg AppConfig) App {
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = 8
	}
	if cfg.ArtWidth <= 0 {
		cfg.ArtWidth = 32
	}
	if cfg.ArtHeight <= 0 {
		cfg.ArtHeight = 16
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return App{
		cfg:     cfg,
		screen:  screenIntro,
		session: session.New(),
		spinner: s,
		help:    help.New(),
		keys:    defaultKeys(),
	}
}

// Init does nothing until the user starts a session.
func (a App) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case spinner.TickMsg:
		if a.screen == screenLoading || a.summaryLoading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case DeckLoaded:
		return a.handleDeckLoaded(msg)

	case animTick:
		return a.handleAnimTick(msg)

	case ArtSettled:
		return a.handleArtSettled(msg)
	}

	return a, nil
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}
	a.err = nil

	switch a.screen {
	case screenIntro:
		if key.Matches(msg, a.keys.Start) {
			return a.start()
		}

	case screenDeck:
		if a.tutorial {
			a.tutorial = false
			return a, nil
		}
		switch {
		case key.Matches(msg, a.keys.Like):
			return a.decide(session.Accept)
		case key.Matches(msg, a.keys.Nope):
			return a.decide(session.Reject)
		}

	case screenSummary:
		if key.Matches(msg, a.keys.Restart) && !a.summaryLoading {
			return a.restart()
		}
	}
	return a, nil
}

// handleMouseMsg drives clicks and drag gestures.
func (a App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch a.screen {
	case screenIntro:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return a.start()
		}
		return a, nil

	case screenDeck:
	default:
		return a, nil
	}

	x := float64(msg.X) * a.cfg.CellWidth

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		if a.tutorial {
			a.tutorial = false
			return a, nil
		}
		if a.anim.kind == animExit {
			return a, nil
		}
		l := a.layout()
		switch {
		case l.like.contains(msg.X, msg.Y):
			return a.decide(session.Accept)
		case l.nope.contains(msg.X, msg.Y):
			return a.decide(session.Reject)
		case l.card.contains(msg.X, msg.Y):
			a.anim = animation{}
			a.drag.Start(x)
			a.frame = gesture.Neutral
		}

	case tea.MouseActionMotion:
		if f, ok := a.drag.Move(x); ok {
			a.frame = f
		}

	case tea.MouseActionRelease:
		release := a.frame.Delta
		outcome, ok := a.drag.End()
		if !ok {
			return a, nil
		}
		a.frame = gesture.Neutral
		switch outcome {
		case gesture.Accept:
			return a.decide(session.Accept)
		case gesture.Reject:
			return a.decide(session.Reject)
		default:
			return a.snapBack(release)
		}
	}
	return a, nil
}

func (a App) start() (tea.Model, tea.Cmd) {
	if a.cfg.LoadDeck == nil {
		return a, nil
	}
	a.screen = screenLoading
	return a, tea.Batch(a.spinner.Tick, a.cfg.LoadDeck())
}

func (a App) handleDeckLoaded(msg DeckLoaded) (tea.Model, tea.Cmd) {
	if a.screen != screenLoading {
		return a, nil
	}
	if msg.Err == nil {
		msg.Err = a.session.Load(msg.Items)
	}
	if msg.Err != nil {
		logging.Error("deck load failed", "err", msg.Err)
		a.err = msg.Err
		a.screen = screenIntro
		return a, nil
	}

	logging.Info("session started", "session", a.session.ID(), "cards", a.session.Len())
	a.screen = screenDeck
	a.tutorial = true
	a.frame = gesture.Neutral
	return a, nil
}

// decide is the single path for accept/reject, whether it came from a key,
// a button or a drag. The session transition happens immediately; the exit
// animation only decorates it.
func (a App) decide(d session.Decision) (tea.Model, tea.Cmd) {
	if a.screen != screenDeck || a.tutorial || a.anim.kind == animExit {
		return a, nil
	}
	counter := a.session.Counter()
	t, err := a.session.Decide(d)
	if err != nil {
		logging.Warn("decision ignored", "err", err)
		return a, nil
	}
	logging.Debug("decision", "session", a.session.ID(), "index", t.Index, "decision", t.Decision, "complete", t.Complete)

	a.drag.Reset()
	a.frame = gesture.Neutral
	a.seq++
	a.anim = animation{
		kind:     animExit,
		item:     t.Item,
		decision: t.Decision,
		counter:  counter,
		complete: t.Complete,
	}
	return a, tickAnimation(a.seq, a.anim.interval())
}

// snapBack springs the card home from where it was released.
func (a App) snapBack(from float64) (tea.Model, tea.Cmd) {
	a.seq++
	a.anim = animation{kind: animSnap, pos: from}
	return a, tickAnimation(a.seq, a.anim.interval())
}

func (a App) handleAnimTick(msg animTick) (tea.Model, tea.Cmd) {
	if msg.seq != a.seq || !a.anim.running() {
		return a, nil
	}
	a.anim.frame++
	a.anim.step()
	if a.anim.frame < a.anim.frames() {
		return a, tickAnimation(a.seq, a.anim.interval())
	}

	finished := a.anim
	a.anim = animation{}
	a.frame = gesture.Neutral
	if finished.kind == animExit && finished.complete {
		return a.enterSummary()
	}
	return a, nil
}

func (a App) enterSummary() (tea.Model, tea.Cmd) {
	a.screen = screenSummary
	a.summary = summary.Summary{}
	a.summaryLoading = true

	accepted := a.session.Accepted()
	if a.cfg.AwaitArt == nil {
		return a.handleArtSettled(ArtSettled{})
	}
	return a, tea.Batch(a.spinner.Tick, a.cfg.AwaitArt(accepted))
}

func (a App) handleArtSettled(msg ArtSettled) (tea.Model, tea.Cmd) {
	if a.screen != screenSummary || !a.summaryLoading {
		return a, nil
	}
	if msg.Err != nil {
		logging.Warn("summary images did not all settle", "err", msg.Err)
	}
	a.summaryLoading = false
	a.summary = summary.Build(a.session.Accepted(), a.session.Len(), a.tileArt)
	logging.Info("session complete", "session", a.session.ID(), "liked", a.summary.Liked, "total", a.summary.Total)
	return a, nil
}

func (a App) tileArt(it model.Item) (string, bool) {
	if a.cfg.ArtFor == nil {
		return "", false
	}
	s, state := a.cfg.ArtFor(it.ImageURL)
	return s, state == preload.StateReady
}

// restart discards the session, like reloading the page.
func (a App) restart() (tea.Model, tea.Cmd) {
	if a.cfg.Reset != nil {
		a.cfg.Reset()
	}
	fresh := NewApp(a.cfg)
	fresh.width = a.width
	fresh.height = a.height
	fresh.help.Width = a.width
	return fresh, nil
}

// RenderCurrent describes the card under the cursor in its resting state.
// It has no side effects.
func (a App) RenderCurrent() CardView {
	it, ok := a.session.Current()
	if !ok {
		return CardView{}
	}
	return CardView{
		Visible:  true,
		ImageURL: it.ImageURL,
		Name:     it.Name,
		Vibe:     it.Vibe,
		Tags:     append([]string(nil), it.Tags...),
		Counter:  a.session.Counter(),
	}
}

// visibleCard is RenderCurrent with the drag or animation applied.
func (a App) visibleCard() CardView {
	switch a.anim.kind {
	case animExit:
		cv := CardView{
			Visible:  true,
			ImageURL: a.anim.item.ImageURL,
			Name:     a.anim.item.Name,
			Vibe:     a.anim.item.Vibe,
			Tags:     a.anim.item.Tags,
			Counter:  a.anim.counter,
		}
		cv.Offset, cv.Rotation = a.anim.exitTransform(float64(a.width) * a.cfg.CellWidth)
		if a.anim.decision == session.Accept {
			cv.Like = 1
		} else {
			cv.Nope = 1
		}
		return cv
	case animSnap:
		cv := a.RenderCurrent()
		cv.Offset = a.anim.pos
		cv.Rotation = gesture.FrameFor(a.anim.pos).Rotation
		return cv
	}

	cv := a.RenderCurrent()
	cv.Offset = a.frame.Delta
	cv.Rotation = a.frame.Rotation
	cv.Like = a.frame.Like
	cv.Nope = a.frame.Nope
	return cv
}

// View renders the UI.
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var body string
	switch a.screen {
	case screenIntro:
		body = a.viewIntro()
	case screenLoading:
		body = a.viewOverlay(fmt.Sprintf("%s Fetching cats...", a.spinner.View()))
	case screenDeck:
		if a.tutorial {
			body = a.viewOverlay(tutorialText)
		} else {
			body = a.viewDeck()
		}
	case screenSummary:
		body = a.viewSummary()
	}

	footer := HelpStyle.Render(a.help.View(a.keys.forScreen(a.screen, a.tutorial)))
	if a.err != nil {
		footer = ErrorStyle.Render("Error: "+a.err.Error()) + "\n" + footer
	}

	room := a.height - lipgloss.Height(footer)
	body = clipHeight(body, room)
	gap := maxInt(0, room-lipgloss.Height(body))
	return body + strings.Repeat("\n", gap+1) + footer
}

// clipHeight keeps the first n lines of s.
func clipHeight(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:maxInt(0, n)], "\n")
}

const tutorialText = `How to play

Drag a card right to LIKE, left to NOPE.
Or use the buttons, or ← / → on the keyboard.
A short drag snaps the card back.

Click or press any key to begin.`

func (a App) viewIntro() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		TitleStyle.Render("kittyswipe"),
		"",
		"Swipe through a dozen cats.",
		"Keep the ones you like.",
		"",
		ButtonStyle.Render("[ Start ]"),
	)
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, content)
}

func (a App) viewOverlay(text string) string {
	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, OverlayStyle.Render(text))
}

func (a App) viewDeck() string {
	l := a.layout()
	cv := a.visibleCard()

	rows := []string{
		lipgloss.PlaceHorizontal(a.width, lipgloss.Center, TitleStyle.Render("kittyswipe")),
		lipgloss.PlaceHorizontal(a.width, lipgloss.Center, CounterStyle.Render(cv.Counter)),
	}
	if cv.Visible {
		rows = append(rows, a.placeCard(cv, l)...)
	} else {
		for i := 0; i < l.card.h+1; i++ {
			rows = append(rows, "")
		}
	}
	rows = append(rows, "", renderButtons(l))
	return strings.Join(rows, "\n")
}

func (a App) viewSummary() string {
	if a.summaryLoading {
		return a.viewOverlay(fmt.Sprintf("%s Gathering your favourites...", a.spinner.View()))
	}

	header := SummaryCount.Render(a.summary.Message)
	if len(a.summary.Tiles) == 0 {
		return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, header, ButtonStyle.Render("[ r  Play again ]")))
	}

	tileW := a.cfg.ArtWidth + 2
	perRow := maxInt(1, a.width/tileW)

	var rows []string
	var row []string
	for i, t := range a.summary.Tiles {
		row = append(row, a.renderTile(t))
		if len(row) == perRow || i == len(a.summary.Tiles)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header),
		lipgloss.PlaceHorizontal(a.width, lipgloss.Center, grid),
	)
}

// renderTile draws a liked cat with its name underneath.
func (a App) renderTile(t summary.Tile) string {
	w, h := a.cfg.ArtWidth, a.cfg.ArtHeight
	img := art.Placeholder(w, h, "✕ image unavailable")
	if t.Ready {
		img = t.Art
	}
	return lipgloss.NewStyle().MarginRight(2).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			img,
			TileCaption.Width(w).Render(t.Name),
		),
	)
}
