package bird

import (
	"math"
	"sort"
	"strings"
)

// extremeThreshold is the normalized distance from mid-range that makes a trait notable.
const extremeThreshold = 0.3

type traitWords struct {
	low, high string
}

var fieldWords = map[Field]traitWords{
	BeakLength:    {"stub-billed", "long-billed"},
	BeakSize:      {"dainty-beaked", "big-beaked"},
	BeakWidth:     {"needle-nosed", "blunt-nosed"},
	BeakRoundness: {"flat-tipped", "round-tipped"},
	HeadSize:      {"pin-headed", "big-headed"},
	HeadToBelly:   {"hunched", "far-reaching"},
	EyeSize:       {"squinting", "wide-eyed"},
	HeadLevel:     {"low-slung", "long-necked"},
	HeadPitch:     {"sulking", "stargazing"},
	BellyLength:   {"compact", "elongated"},
	BellySize:     {"slender", "stout"},
	BellyFat:      {"lean", "pot-bellied"},
	BottomSize:    {"narrow-hipped", "round-bottomed"},
	TailLength:    {"bobtailed", "long-tailed"},
	TailWidth:     {"thin-tailed", "fan-tailed"},
	TailPitch:     {"droopy-tailed", "perky-tailed"},
}

var nouns = []string{
	"songbird", "warbler", "chirper", "peeper", "fowl", "fluffball",
	"flapper", "nestling", "waddler", "sky-snack", "featherbag", "tweeter",
}

// Describe returns a short description of the bird. Adjectives come from the
// bird's most extreme traits; the noun is chosen with pick, which must return a
// value in [0,n).
func Describe(p Params, pick func(n int) int) string {
	type scored struct {
		field Field
		dist  float64
		high  bool
	}
	var notable []scored
	for f := range fieldWords {
		spec := Fields[f]
		n := float64(spec.Normalize(spec.Get(&p))) - 0.5
		if math.Abs(n) >= extremeThreshold {
			notable = append(notable, scored{field: f, dist: math.Abs(n), high: n > 0})
		}
	}
	sort.Slice(notable, func(i, j int) bool {
		if notable[i].dist != notable[j].dist {
			return notable[i].dist > notable[j].dist
		}
		return notable[i].field < notable[j].field
	})

	var adjectives []string
	for i := 0; i < len(notable) && i < 2; i++ {
		w := fieldWords[notable[i].field]
		if notable[i].high {
			adjectives = append(adjectives, w.high)
		} else {
			adjectives = append(adjectives, w.low)
		}
	}
	if len(adjectives) == 0 {
		adjectives = append(adjectives, "thoroughly average")
	}

	noun := nouns[pick(len(nouns))]
	desc := strings.Join(adjectives, ", ") + " " + noun
	if strings.ContainsAny(desc[:1], "aeiou") {
		return "an " + desc
	}
	return "a " + desc
}
