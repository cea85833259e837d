package lobby

import (
	"math/rand/v2"
	"strconv"
)

const (
	pinMin = 100000
	pinMax = 999999
)

func newPIN(rng *rand.Rand) string {
	return strconv.Itoa(pinMin + rng.IntN(pinMax-pinMin+1))
}

// ValidPIN reports whether s looks like a lobby PIN.
func ValidPIN(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && len(s) == 6 && n >= pinMin && n <= pinMax
}
