// Package trivia builds multiple-choice questions from the country dataset.
package trivia

import (
	"math/rand/v2"
	"slices"

	"github.com/playperu/geoduel/internal/geo"
)

type Type string

const (
	Flag    Type = "flag"
	Capital Type = "capital"
	Outline Type = "outline"
	Audio   Type = "audio"
	Dish    Type = "dish"
	Animal  Type = "animal"
)

// Types lists every type a lobby may enable. Outline is accepted but
// never generated.
var Types = []Type{Flag, Capital, Outline, Audio, Dish, Animal}

// DefaultTypes is the selection a new challenge lobby starts with.
var DefaultTypes = []Type{Flag, Capital, Audio, Dish, Animal}

func (t Type) Valid() bool { return slices.Contains(Types, t) }

// Question is the stored form of a generated question. Text carries every
// language so each player reads their own.
type Question struct {
	Type            Type           `json:"type"`
	CorrectAnswerID string         `json:"correctAnswerId"`
	OptionIDs       []string       `json:"optionIds"`
	Image           string         `json:"image,omitempty"`
	Text            *geo.Localized `json:"text,omitempty"`
	Audio           string         `json:"audio,omitempty"`
}

// Key identifies the (country, type) pair a question was built from.
func (q Question) Key() string { return Key(q.CorrectAnswerID, q.Type) }

func Key(countryID string, t Type) string { return countryID + "-" + string(t) }

// HasOption reports whether id is one of the offered options.
func (q Question) HasOption(id string) bool { return slices.Contains(q.OptionIDs, id) }

const maxDistractors = 3

type candidate struct {
	country geo.Country
	typ     Type
}

// supports reports whether c carries the data a question of type t needs.
func supports(c geo.Country, t Type) bool {
	switch t {
	case Audio:
		return c.Anthem != ""
	case Dish:
		return c.Dish != nil
	case Animal:
		return c.Animal != nil
	case Outline:
		return false
	default:
		return true
	}
}

// Generate picks a random question among the enabled types, skipping the
// keys in exclude. When every candidate is excluded the full pool is used
// again.
func Generate(rng *rand.Rand, countries []geo.Country, enabled []Type, exclude map[string]bool) Question {
	var types []Type
	for _, t := range enabled {
		if t != Outline && t.Valid() && !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = []Type{Flag}
	}

	var pool []candidate
	for _, c := range countries {
		for _, t := range types {
			if supports(c, t) {
				pool = append(pool, candidate{country: c, typ: t})
			}
		}
	}

	available := make([]candidate, 0, len(pool))
	for _, cand := range pool {
		if !exclude[Key(cand.country.ID, cand.typ)] {
			available = append(available, cand)
		}
	}
	if len(available) == 0 {
		available = pool
	}
	if len(available) == 0 {
		// None of the enabled types has data in this country list.
		if len(countries) == 0 {
			return Question{Type: Flag}
		}
		c := countries[rng.IntN(len(countries))]
		available = []candidate{{country: c, typ: Flag}}
	}

	pick := available[rng.IntN(len(available))]
	return build(rng, countries, pick)
}

func build(rng *rand.Rand, countries []geo.Country, pick candidate) Question {
	var others []geo.Country
	for _, c := range countries {
		if c.ID != pick.country.ID && supports(c, pick.typ) {
			others = append(others, c)
		}
	}
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	others = others[:min(maxDistractors, len(others))]

	options := make([]string, 0, len(others)+1)
	options = append(options, pick.country.ID)
	for _, c := range others {
		options = append(options, c.ID)
	}
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	q := Question{
		Type:            pick.typ,
		CorrectAnswerID: pick.country.ID,
		OptionIDs:       options,
	}
	switch pick.typ {
	case Flag:
		q.Image = pick.country.FlagURL()
	case Capital:
		q.Text = clone(&pick.country.Capital)
	case Dish:
		q.Text = clone(pick.country.Dish)
	case Animal:
		q.Text = clone(pick.country.Animal)
	case Audio:
		q.Audio = pick.country.Anthem
	}
	return q
}

func clone(l *geo.Localized) *geo.Localized {
	c := *l
	return &c
}

// Batch generates n questions, avoiding repeats within the batch for as
// long as the pool allows.
func Batch(rng *rand.Rand, countries []geo.Country, enabled []Type, n int) []Question {
	asked := make(map[string]bool, n)
	out := make([]Question, 0, n)
	for range n {
		q := Generate(rng, countries, enabled, asked)
		asked[q.Key()] = true
		out = append(out, q)
	}
	return out
}
