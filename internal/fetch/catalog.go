package fetch

import "math/rand"

// TagsPerItem is the fixed number of tags on every card.
const TagsPerItem = 3

// Vibes is the descriptor catalog.
var Vibes = []string{
	"Sleepy loaf",
	"Chaos gremlin",
	"Soft and shy",
	"Zoomies expert",
	"Couch potato",
	"Midnight singer",
	"Little stalker",
}

// TagPool is the catalog tags are sampled from.
var TagPool = []string{
	"Cuddle bug",
	"Window watcher",
	"Treat lover",
	"Laser chaser",
	"Box enthusiast",
	"Purr machine",
	"Chair thief",
	"Nap master",
	"Sunbeam seeker",
	"Tiny tornado",
}

func randomVibe(rng *rand.Rand) string {
	return Vibes[rng.Intn(len(Vibes))]
}

// randomTags returns count distinct tags in random order.
func randomTags(rng *rand.Rand, count int) []string {
	if count > len(TagPool) {
		count = len(TagPool)
	}
	perm := rng.Perm(len(TagPool))
	tags := make([]string, count)
	for i := 0; i < count; i++ {
		tags[i] = TagPool[perm[i]]
	}
	return tags
}
