package model

import "testing"

func TestItemCloneDoesNotAlias(t *testing.T) {
	orig := Item{ID: "a", Name: "Kitty #1", Tags: []string{"x", "y", "z"}}

	c := orig.Clone()
	c.Tags[0] = "changed"

	if orig.Tags[0] != "x" {
		t.Errorf("Clone should copy tags, original now %v", orig.Tags)
	}
	if c.ID != orig.ID || c.Name != orig.Name {
		t.Errorf("Clone should keep fields, got %+v", c)
	}
}

func TestCloneAll(t *testing.T) {
	if CloneAll(nil) != nil {
		t.Error("CloneAll(nil) should be nil")
	}

	items := []Item{{ID: "a", Tags: []string{"t"}}, {ID: "b"}}
	out := CloneAll(items)
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	out[0].Tags[0] = "changed"
	out[1].ID = "changed"
	if items[0].Tags[0] != "t" || items[1].ID != "b" {
		t.Error("CloneAll should not share storage with its input")
	}
}
