package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/cricklet/chessbot/internal/bot"
	"github.com/cricklet/chessbot/internal/config"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/uci"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, "recover()", r)
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
		p := profile.Start(profile.ProfilePath(RootDir() + "/data/CmdUciMain"))
		defer p.Stop()
	}

	// stdout carries the protocol, so logs go to stderr
	logger, err := c.Logger()
	if !IsNil(err) {
		panic(err)
	}
	searchOptions, _ := c.SearchOptions(logger)

	r := uci.NewUciRunner(bot.NewBot(
		bot.WithDepth(c.Depth),
		bot.WithLogger(logger),
		bot.WithSearchOptions(searchOptions...),
	))

	scanner := bufio.NewScanner(os.Stdin)

	for scanner.Scan() {
		input := scanner.Text()
		if input == "quit" {
			break
		}
		result, err := r.HandleInput(input)
		if !IsNil(err) {
			fmt.Fprintln(os.Stderr, "error:", err)
			time.Sleep(200 * time.Millisecond)
			break
		}
		for _, v := range result {
			fmt.Println(v)
		}
	}
}
