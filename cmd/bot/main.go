package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"

	"github.com/cricklet/chessbot/internal/bot"
	"github.com/cricklet/chessbot/internal/config"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/match"
	"github.com/cricklet/chessbot/internal/search"
)

// Plays one game between the bot and the configured opponent, eg
//
//	go run cmd/bot/main.go depth=3 perspective=black opponent=random
//	go run cmd/bot/main.go opponent=uci opponentPath=/usr/local/bin/stockfish
func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
			os.Exit(1)
		}
	}()

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "options" {
		for _, option := range config.AllOptions {
			fmt.Println(option)
		}
		return
	}

	c, err := config.FromArgs(args...)
	if !IsNil(err) {
		panic(err)
	}

	if c.Profile {
		p := profile.Start(profile.ProfilePath(RootDir() + "/data/CmdBotMain"))
		defer p.Stop()
	}

	logger, err := c.Logger()
	if !IsNil(err) {
		panic(err)
	}

	searchOptions, tree := c.SearchOptions(logger)
	var engine match.MoveSource = match.NewEngineSource(&FuncLogger{Log: func(s string) { fmt.Println(s) }}, c.Depth, searchOptions...)
	if tree != nil {
		engine = &treeSource{engine, tree, logger}
	}

	opponent, err := match.NewSource(c.Opponent, c.OpponentPath, c.OpponentDepth, c.Seed, SilentLogger, search.WithLogger(logger))
	if !IsNil(err) {
		panic(err)
	}
	if closer, ok := opponent.(interface{ Close() }); ok {
		defer closer.Close()
	}

	sources := [2]match.MoveSource{}
	sources[c.PerspectivePlayer()] = engine
	sources[c.PerspectivePlayer().Other()] = opponent

	_, err = match.Play(match.Game{
		Sources:  sources,
		Fen:      c.Fen,
		MaxPlies: c.MaxPlies,
		Out:      os.Stdout,
		Color:    match.StdoutIsTerminal(),
	})
	if !IsNil(err) {
		panic(err)
	}
}

// treeSource logs the root moves of each search after the engine moves.
type treeSource struct {
	match.MoveSource
	tree   *search.DebugSearchTree
	logger Logger
}

func (t *treeSource) NextMove(game *bot.Bot) (Optional[string], Error) {
	move, err := t.MoveSource.NextMove(game)
	t.logger.Println("search tree:\n" + t.tree.DebugString(1))
	return move, err
}
