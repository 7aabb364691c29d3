// Package ui provides the Bubble Tea TUI for kittyswipe.
package ui

import "github.com/abelbrown/kittyswipe/internal/model"

// DeckLoaded is sent when the batch has been fetched and the first image
// has settled.
type DeckLoaded struct {
	Items []model.Item
	Err   error
}

// ArtSettled is sent when every liked image has settled, or the wait gave
// up. Err is non-nil when the wait timed out.
type ArtSettled struct {
	Err error
}
