// Package geo holds the static country dataset and the guess evaluator.
// It has zero external dependencies and nothing in it is mutated at runtime.
package geo

import "strings"

type Language string

const (
	LangEN Language = "en"
	LangHU Language = "hu"
)

// Languages lists every language the dataset carries text for.
var Languages = []Language{LangEN, LangHU}

// ParseLanguage maps a user supplied code to a supported language,
// defaulting to English.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LangHU:
		return LangHU
	default:
		return LangEN
	}
}

// Localized is a piece of text in every supported language.
type Localized struct {
	EN string `json:"en"`
	HU string `json:"hu"`
}

// In returns the text for lang, falling back to English.
func (l Localized) In(lang Language) string {
	if lang == LangHU && l.HU != "" {
		return l.HU
	}
	return l.EN
}

type TempClass int

const (
	TempCold TempClass = iota + 1
	TempCool
	TempMild
	TempWarm
	TempHot
)

type ElevClass int

const (
	ElevLow ElevClass = iota + 1
	ElevMedium
	ElevHigh
)

type Country struct {
	ID         string     `json:"id"`
	Name       Localized  `json:"name"`
	Continent  Localized  `json:"continent"`
	Hemisphere Localized  `json:"hemisphere"`
	Capital    Localized  `json:"capital"`
	Temp       TempClass  `json:"temp"`
	Elev       ElevClass  `json:"elev"`
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	Anthem     string     `json:"anthem,omitempty"`
	Dish       *Localized `json:"dish,omitempty"`
	Animal     *Localized `json:"animal,omitempty"`
}

// FlagURL is the flag image used by flag questions.
func (c Country) FlagURL() string {
	return "https://flagcdn.com/w320/" + strings.ToLower(c.ID) + ".png"
}
