package summary

import (
	"testing"

	"github.com/abelbrown/kittyswipe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage(t *testing.T) {
	assert.Equal(t, NoneLiked, Message(0, 12))
	assert.Equal(t, "You liked 5 out of 12 cats.", Message(5, 12))
	assert.Equal(t, "You liked 12 out of 12 cats.", Message(12, 12))
}

func TestBuildPreservesOrder(t *testing.T) {
	accepted := []model.Item{
		{Name: "Kitty #2", ImageURL: "u2"},
		{Name: "Kitty #5", ImageURL: "u5"},
		{Name: "Kitty #9", ImageURL: "u9"},
	}
	artFor := func(it model.Item) (string, bool) {
		if it.ImageURL == "u5" {
			return "", false
		}
		return "art:" + it.ImageURL, true
	}

	s := Build(accepted, 12, artFor)

	assert.Equal(t, "You liked 3 out of 12 cats.", s.Message)
	assert.Equal(t, 3, s.Liked)
	assert.Equal(t, 12, s.Total)
	require.Len(t, s.Tiles, 3)
	assert.Equal(t, []string{"Kitty #2", "Kitty #5", "Kitty #9"},
		[]string{s.Tiles[0].Name, s.Tiles[1].Name, s.Tiles[2].Name})
	assert.Equal(t, "art:u2", s.Tiles[0].Art)
	assert.False(t, s.Tiles[1].Ready)
	assert.True(t, s.Tiles[2].Ready)
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil, 12, nil)
	assert.Equal(t, NoneLiked, s.Message)
	assert.Empty(t, s.Tiles)
}
