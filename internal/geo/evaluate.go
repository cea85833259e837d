package geo

// Comparison states where the guessed value sits relative to the target.
type Comparison string

const (
	Match  Comparison = "match"
	Higher Comparison = "higher"
	Lower  Comparison = "lower"
)

func compare(guess, target int) Comparison {
	switch {
	case guess == target:
		return Match
	case guess > target:
		return Higher
	default:
		return Lower
	}
}

type Direction string

const (
	DirNone      Direction = ""
	DirNorth     Direction = "N"
	DirNorthEast Direction = "NE"
	DirEast      Direction = "E"
	DirSouthEast Direction = "SE"
	DirSouth     Direction = "S"
	DirSouthWest Direction = "SW"
	DirWest      Direction = "W"
	DirNorthWest Direction = "NW"
)

const (
	ArrowCorrect = "✅"
	ArrowNear    = "↔️"
)

var arrows = map[Direction]string{
	DirNorth:     "⬆️",
	DirNorthEast: "↗️",
	DirEast:      "➡️",
	DirSouthEast: "↘️",
	DirSouth:     "⬇️",
	DirSouthWest: "↙️",
	DirWest:      "⬅️",
	DirNorthWest: "↖️",
}

// directionThreshold is the per-axis distance in degrees below which an
// axis contributes nothing to the direction.
const directionThreshold = 5.0

// Result is the structured comparison of a guess against the target.
type Result struct {
	IsCorrect       bool       `json:"isCorrect"`
	ContinentMatch  bool       `json:"continentMatch"`
	HemisphereMatch bool       `json:"hemisphereMatch"`
	TempComparison  Comparison `json:"tempComparison"`
	ElevComparison  Comparison `json:"elevComparison"`
	Direction       Direction  `json:"direction"`
	DirectionArrow  string     `json:"directionArrow"`
}

// Evaluate compares guessed against target. The direction points from the
// guess toward the target.
func Evaluate(guessed, target Country) Result {
	r := Result{
		IsCorrect:       guessed.ID == target.ID,
		ContinentMatch:  guessed.Continent.EN == target.Continent.EN,
		HemisphereMatch: guessed.Hemisphere.EN == target.Hemisphere.EN,
		TempComparison:  compare(int(guessed.Temp), int(target.Temp)),
		ElevComparison:  compare(int(guessed.Elev), int(target.Elev)),
	}
	if r.IsCorrect {
		r.DirectionArrow = ArrowCorrect
		return r
	}
	r.Direction = direction(target.Lat-guessed.Lat, target.Lng-guessed.Lng)
	if r.Direction == DirNone {
		r.DirectionArrow = ArrowNear
	} else {
		r.DirectionArrow = arrows[r.Direction]
	}
	return r
}

func direction(latDiff, lngDiff float64) Direction {
	var ns, ew string
	switch {
	case latDiff > directionThreshold:
		ns = "N"
	case latDiff < -directionThreshold:
		ns = "S"
	}
	switch {
	case lngDiff > directionThreshold:
		ew = "E"
	case lngDiff < -directionThreshold:
		ew = "W"
	}
	return Direction(ns + ew)
}
