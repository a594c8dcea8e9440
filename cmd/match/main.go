package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/profile"

	"github.com/cricklet/chessbot/internal/config"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/match"
	"github.com/cricklet/chessbot/internal/search"
)

// Runs a round robin between a random mover and the engine at every depth
// from 1 to depth, eg
//
//	go run cmd/match/main.go depth=3 games=4 maxPlies=200
//
// An external UCI engine joins when opponentPath is set.
func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
			os.Exit(1)
		}
	}()

	c, err := config.FromArgs(os.Args[1:]...)
	if !IsNil(err) {
		panic(err)
	}

	if c.Profile {
		p := profile.Start(profile.ProfilePath(RootDir() + "/data/CmdMatchMain"))
		defer p.Stop()
	}

	logger, err := c.Logger()
	if !IsNil(err) {
		panic(err)
	}

	entrants := []match.Entrant{{
		Name: "random",
		NewSource: func() match.MoveSource {
			return match.NewRandomSource(c.Seed)
		},
	}}
	for depth := 1; depth <= c.Depth; depth++ {
		entrants = append(entrants, match.Entrant{
			Name: fmt.Sprintf("depth%v", depth),
			NewSource: func() match.MoveSource {
				return match.NewEngineSource(SilentLogger, depth, search.WithLogger(SilentLogger))
			},
		})
	}

	if c.OpponentPath != "" {
		entrants = append(entrants, match.Entrant{
			Name: "uci",
			NewSource: func() match.MoveSource {
				source, err := match.NewUciBinarySource(c.OpponentPath, c.OpponentDepth, SilentLogger)
				if !IsNil(err) {
					panic(err)
				}
				return source
			},
		})
	}

	numGames := len(match.Pairings(MapSlice(entrants, func(e match.Entrant) string { return e.Name }))) * c.Games
	logger.Printf("playing %v games between %v entrants", numGames, len(entrants))

	standings, _, err := match.RoundRobin(match.Tournament{
		Entrants:        entrants,
		GamesPerPairing: c.Games,
		Fen:             c.Fen,
		MaxPlies:        c.MaxPlies,
		Out:             io.Discard,
		Progress:        CreateProgressBar(numGames, "games"),
	})
	if !IsNil(err) {
		panic(err)
	}

	fmt.Println(match.StandingsTable(standings))
}
