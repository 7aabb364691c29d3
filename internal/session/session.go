// Package session implements the deck model and its state machine.
//
// A Session moves through three phases:
//
//	Intro  --Load-->  Active  --Decide (cursor reaches N)-->  Summary
//
// Decide is the only transition while Active. It is synchronous and has no
// timing; any animation is driven afterwards from the returned Transition.
// A Session is not safe for concurrent use. It is owned by the UI goroutine.
package session

import (
	"errors"
	"fmt"

	"github.com/abelbrown/kittyswipe/internal/model"
	"github.com/google/uuid"
)

// Phase is the macro-state of a session.
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseActive
	PhaseSummary
)

func (p Phase) String() string {
	switch p {
	case PhaseIntro:
		return "intro"
	case PhaseActive:
		return "active"
	case PhaseSummary:
		return "summary"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Decision is the outcome for the current item.
type Decision int

const (
	Reject Decision = iota
	Accept
)

func (d Decision) String() string {
	if d == Accept {
		return "accept"
	}
	return "reject"
}

var (
	// ErrEmptyDeck is returned when loading a deck with no items.
	ErrEmptyDeck = errors.New("session: deck is empty")
	// ErrWrongPhase is returned when Load is called outside Intro.
	ErrWrongPhase = errors.New("session: deck already loaded")
	// ErrNotActive is returned when deciding outside the Active phase.
	ErrNotActive = errors.New("session: no active card")
)

// Transition describes the result of one decision.
type Transition struct {
	Item     model.Item
	Decision Decision
	Index    int  // position of Item in the deck
	Cursor   int  // cursor after the decision
	Total    int  // deck size
	Complete bool // cursor == Total
}

// Session owns one deck and the choices made on it.
type Session struct {
	id       string
	phase    Phase
	items    []model.Item
	cursor   int
	accepted []model.Item
}

// New creates a session in the Intro phase.
func New() *Session {
	return &Session{id: uuid.NewString(), phase: PhaseIntro}
}

// ID identifies the session in logs.
func (s *Session) ID() string { return s.id }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Load installs the deck and enters the Active phase.
func (s *Session) Load(items []model.Item) error {
	if s.phase != PhaseIntro {
		return fmt.Errorf("load in phase %s: %w", s.phase, ErrWrongPhase)
	}
	if len(items) == 0 {
		return ErrEmptyDeck
	}
	s.items = model.CloneAll(items)
	s.cursor = 0
	s.accepted = nil
	s.phase = PhaseActive
	return nil
}

// Current returns the item under the cursor.
func (s *Session) Current() (model.Item, bool) {
	if s.cursor < 0 || s.cursor >= len(s.items) {
		return model.Item{}, false
	}
	return s.items[s.cursor], true
}

// Decide records d for the current item and advances the cursor.
func (s *Session) Decide(d Decision) (Transition, error) {
	if s.phase != PhaseActive {
		return Transition{}, fmt.Errorf("decide in phase %s: %w", s.phase, ErrNotActive)
	}

	item := s.items[s.cursor]
	if d == Accept {
		s.accepted = append(s.accepted, item)
	}

	t := Transition{
		Item:     item,
		Decision: d,
		Index:    s.cursor,
		Total:    len(s.items),
	}

	s.cursor++
	if s.cursor == len(s.items) {
		s.phase = PhaseSummary
	}

	t.Cursor = s.cursor
	t.Complete = s.phase == PhaseSummary
	return t, nil
}

// Cursor returns the index of the current item; Len() once complete.
func (s *Session) Cursor() int { return s.cursor }

// Len returns the deck size.
func (s *Session) Len() int { return len(s.items) }

// Complete reports whether every card has been decided.
func (s *Session) Complete() bool {
	return s.phase == PhaseSummary
}

// Items returns a copy of the deck.
func (s *Session) Items() []model.Item {
	return model.CloneAll(s.items)
}

// Accepted returns a copy of the accepted items in deck order.
func (s *Session) Accepted() []model.Item {
	return model.CloneAll(s.accepted)
}

// Counter returns the position label for the current card.
func (s *Session) Counter() string {
	return fmt.Sprintf("Cat %d of %d", s.cursor+1, len(s.items))
}
