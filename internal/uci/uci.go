package uci

import (
	"fmt"
	"strings"

	"github.com/cricklet/chessbot/internal/game"
	. "github.com/cricklet/chessbot/internal/helpers"
)

type UciRunner struct {
	Runner Runner
}

func NewUciRunner(runner Runner) *UciRunner {
	return &UciRunner{Runner: runner}
}

func parseFen(input string) (string, Error) {
	s := strings.TrimPrefix(input, "position ")

	if strings.HasPrefix(s, "fen ") {
		s = strings.TrimPrefix(s, "fen ")
		return strings.TrimSpace(strings.Split(s, " moves")[0]), NilError
	} else if strings.HasPrefix(s, "startpos") {
		return game.StartFen, NilError
	}

	return "", Errorf("couldn't parse '%v'", input)
}

func parseMoves(input string) []string {
	result := []string{}
	if strings.Contains(input, " moves ") {
		fields := strings.Fields(strings.SplitN(input, " moves ", 2)[1])
		result = append(result, fields...)
	}
	return result
}

func parsePosition(input string) (RunnerPosition, Error) {
	fen, err := parseFen(input)
	if !IsNil(err) {
		return RunnerPosition{}, err
	}
	return RunnerPosition{Fen: fen, Moves: parseMoves(input)}, NilError
}

// parseGo reads `go depth N`. Everything else after `go` is ignored since the
// search has no clock.
func parseGo(input string) (SearchParams, Error) {
	params := SearchParams{}
	fields := strings.Fields(input)
	for i := 1; i < len(fields); i++ {
		if fields[i] != "depth" {
			continue
		}
		if i+1 >= len(fields) {
			return params, Errorf("missing depth in '%v'", input)
		}
		depth, err := ParseInt(fields[i+1])
		if !IsNil(err) {
			return params, Join(Errorf("invalid depth in '%v'", input), err)
		}
		params.Depth = Some(depth)
	}
	return params, NilError
}

func (u *UciRunner) HandleInput(input string) ([]string, Error) {
	input = strings.TrimSpace(input)

	result := []string{}
	if input == "uci" {
		result = append(result, "id name chessbot 1")
		result = append(result, "id author cricklet")
		result = append(result, "uciok")
	} else if input == "ucinewgame" {
		u.Runner.Reset()
	} else if input == "isready" {
		result = append(result, "readyok")
	} else if input == "fen" {
		if r, ok := u.Runner.(interface{ FenString() string }); ok && !u.Runner.IsNew() {
			result = append(result, "position fen "+r.FenString())
		}
	} else if strings.HasPrefix(input, "position ") {
		position, err := parsePosition(input)
		if !IsNil(err) {
			return result, err
		}
		if u.Runner.IsNew() {
			err = u.Runner.SetupPosition(position)
		} else {
			err = u.Runner.PerformMoves(position.Fen, position.Moves)
			if !IsNil(err) {
				// a different game; start over
				err = u.Runner.SetupPosition(position)
			}
		}
		if !IsNil(err) {
			return result, err
		}
	} else if input == "go" || strings.HasPrefix(input, "go ") {
		params, err := parseGo(input)
		if !IsNil(err) {
			return result, err
		}

		move, err := u.Runner.Search(params)
		if !IsNil(err) {
			return result, err
		}

		if move.IsEmpty() {
			result = append(result, "bestmove 0000")
		} else {
			result = append(result, fmt.Sprintf("bestmove %v", move.Value()))
		}
	}
	return result, NilError
}
