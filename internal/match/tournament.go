package match

import (
	"fmt"
	"io"
	"sort"
	"strings"

	combinations "github.com/mxschmitt/golang-combinations"

	. "github.com/cricklet/chessbot/internal/helpers"
)

type Entrant struct {
	Name string
	// Called once per game so sources don't share state across games.
	NewSource func() MoveSource
}

type Standing struct {
	Name   string
	Wins   int
	Draws  int
	Losses int
	Points float64
	// Estimated from InitialElo, updated after every game in play order.
	Elo    int
}

type Tournament struct {
	Entrants        []Entrant
	GamesPerPairing int
	Fen             string
	MaxPlies        int

	// Where each game's banners go.
	Out      io.Writer
	Progress *ProgressBar
}

// Pairings lists every pair of names once, in the order the names are given.
func Pairings(names []string) [][]string {
	return FilterSlice(combinations.All(names), func(subset []string) bool {
		return len(subset) == 2
	})
}

// RoundRobin plays GamesPerPairing games for every pair of entrants,
// alternating who has white.
func RoundRobin(t Tournament) ([]Standing, []Result, Error) {
	entrants := map[string]Entrant{}
	standings := map[string]*Standing{}
	names := []string{}
	for _, entrant := range t.Entrants {
		if _, ok := entrants[entrant.Name]; ok {
			return nil, nil, Errorf("duplicate entrant %v", entrant.Name)
		}
		entrants[entrant.Name] = entrant
		standings[entrant.Name] = &Standing{Name: entrant.Name, Elo: InitialElo}
		names = append(names, entrant.Name)
	}

	results := []Result{}
	completed := 0
	for _, pair := range Pairings(names) {
		for i := 0; i < t.GamesPerPairing; i++ {
			white, black := pair[0], pair[1]
			if i%2 == 1 {
				white, black = black, white
			}

			sources := [2]MoveSource{entrants[white].NewSource(), entrants[black].NewSource()}
			result, err := Play(Game{
				Sources:  sources,
				Fen:      t.Fen,
				MaxPlies: t.MaxPlies,
				Out:      t.Out,
				Quiet:    true,
			})
			closeSources(sources)
			if !IsNil(err) {
				return nil, results, err
			}
			results = append(results, result)

			standings[white].record(result.ScoreFor(White))
			standings[black].record(result.ScoreFor(Black))
			standings[white].Elo, standings[black].Elo = UpdateElo(
				standings[white].Elo, standings[black].Elo, result.ScoreFor(White))

			completed++
			if t.Progress != nil {
				t.Progress.Set(completed)
			}
		}
	}
	if t.Progress != nil {
		t.Progress.Close()
	}

	sorted := MapSlice(names, func(name string) Standing {
		return *standings[name]
	})
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Points > sorted[j].Points
	})

	return sorted, results, NilError
}

func (s *Standing) record(score float64) {
	s.Points += score
	switch score {
	case 1:
		s.Wins++
	case 0:
		s.Losses++
	default:
		s.Draws++
	}
}

func StandingsTable(standings []Standing) string {
	width := len("name")
	for _, s := range standings {
		width = MaxInt(width, len(s.Name))
	}

	lines := []string{fmt.Sprintf("%-*s %4s %4s %4s %6s %5s", width, "name", "W", "D", "L", "points", "elo")}
	for _, s := range standings {
		lines = append(lines, fmt.Sprintf("%-*s %4d %4d %4d %6.1f %5d", width, s.Name, s.Wins, s.Draws, s.Losses, s.Points, s.Elo))
	}
	return strings.Join(lines, "\n")
}

// closeSources stops sources that hold a subprocess, eg UciBinarySource.
func closeSources(sources [2]MoveSource) {
	for _, source := range sources {
		if closer, ok := source.(interface{ Close() }); ok {
			closer.Close()
		}
	}
}
