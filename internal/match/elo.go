package match

import "math"

const (
	InitialElo = 1500
	eloK       = 32
	eloD       = 400
)

// ExpectedScore is the score a player rated a expects against one rated b.
func ExpectedScore(a int, b int) float64 {
	return 1 / (1 + math.Pow(10, float64(b-a)/eloD))
}

// UpdateElo returns both ratings after a game where a scored score (1, 0.5
// or 0) against b.
func UpdateElo(a int, b int, score float64) (int, int) {
	delta := int(math.Round(eloK * (score - ExpectedScore(a, b))))
	return a + delta, b - delta
}
