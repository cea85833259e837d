package geo

import (
	"slices"
	"strings"
)

// Atlas indexes a country list by id and by localized name.
type Atlas struct {
	countries []Country
	byID      map[string]int
	byName    map[Language]map[string]int
}

func NewAtlas(list []Country) *Atlas {
	a := &Atlas{
		countries: slices.Clone(list),
		byID:      make(map[string]int, len(list)),
		byName:    make(map[Language]map[string]int, len(Languages)),
	}
	for _, lang := range Languages {
		a.byName[lang] = make(map[string]int, len(list))
	}
	for i, c := range a.countries {
		a.byID[c.ID] = i
		for _, lang := range Languages {
			a.byName[lang][normalize(c.Name.In(lang))] = i
		}
	}
	return a
}

var defaultAtlas = NewAtlas(countries)

// Default returns the atlas over the built-in dataset.
func Default() *Atlas { return defaultAtlas }

// All returns a copy of every country in dataset order.
func (a *Atlas) All() []Country { return slices.Clone(a.countries) }

func (a *Atlas) Len() int { return len(a.countries) }

func (a *Atlas) ByID(id string) (Country, bool) {
	i, ok := a.byID[id]
	if !ok {
		return Country{}, false
	}
	return a.countries[i], true
}

// ByName resolves a typed country name. The requested language is tried
// first, then every other language.
func (a *Atlas) ByName(name string, lang Language) (Country, bool) {
	key := normalize(name)
	if key == "" {
		return Country{}, false
	}
	if i, ok := a.byName[lang][key]; ok {
		return a.countries[i], true
	}
	for _, other := range Languages {
		if other == lang {
			continue
		}
		if i, ok := a.byName[other][key]; ok {
			return a.countries[i], true
		}
	}
	return Country{}, false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
