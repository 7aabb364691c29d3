// Package model holds the card data shared by every layer.
package model

// Item is one card in a deck. Items are created by the fetcher and never
// modified afterwards; share them by value.
type Item struct {
	ID       string   // remote id, or "fallback-N" for synthesized items
	ImageURL string   // unique per session (cache-busting token)
	Name     string   // display name, e.g. "Kitty #3"
	Vibe     string   // short descriptor
	Tags     []string // fixed count, ordered
}

// Clone returns a copy whose Tags slice does not alias the original.
func (it Item) Clone() Item {
	tags := make([]string, len(it.Tags))
	copy(tags, it.Tags)
	it.Tags = tags
	return it
}

// CloneAll copies a slice of items, cloning each element.
func CloneAll(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
