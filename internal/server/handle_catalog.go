package server

import (
	"net/http"
	"sort"

	"github.com/playperu/geoduel/internal/geo"
	"github.com/playperu/geoduel/internal/profile"
)

type CountryItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// handleCountries lists country names in the requested language for
// guess autocompletion.
func handleCountries(atlas *geo.Atlas) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := geo.ParseLanguage(r.URL.Query().Get("lang"))

		all := atlas.All()
		items := make([]CountryItem, 0, len(all))
		for _, c := range all {
			items = append(items, CountryItem{ID: c.ID, Name: c.Name.In(lang)})
		}
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

		writeJSON(w, http.StatusOK, items)
	}
}

func handleAvatars() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, profile.Avatars())
	}
}
