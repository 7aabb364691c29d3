// Package summary builds the end-of-session view data.
package summary

import (
	"fmt"

	"github.com/abelbrown/kittyswipe/internal/model"
)

// NoneLiked is shown when nothing was accepted.
const NoneLiked = "You didn't like any cats this round."

// Tile is one liked card on the summary screen.
type Tile struct {
	Name  string
	Art   string
	Ready bool // false when the image never loaded or is still pending
}

// Summary is everything the summary screen shows.
type Summary struct {
	Message string
	Liked   int
	Total   int
	Tiles   []Tile
}

// ArtFunc looks up the rendered image for an item.
type ArtFunc func(it model.Item) (art string, ready bool)

// Message returns the aggregate sentence for liked out of total.
func Message(liked, total int) string {
	if liked == 0 {
		return NoneLiked
	}
	return fmt.Sprintf("You liked %d out of %d cats.", liked, total)
}

// Build creates one tile per accepted item, in acceptance order.
func Build(accepted []model.Item, total int, artFor ArtFunc) Summary {
	s := Summary{
		Message: Message(len(accepted), total),
		Liked:   len(accepted),
		Total:   total,
		Tiles:   make([]Tile, 0, len(accepted)),
	}
	for _, it := range accepted {
		t := Tile{Name: it.Name}
		if artFor != nil {
			t.Art, t.Ready = artFor(it)
		}
		s.Tiles = append(s.Tiles, t)
	}
	return s
}
