package match

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/cricklet/chessbot/internal/binary"
	"github.com/cricklet/chessbot/internal/bot"
	. "github.com/cricklet/chessbot/internal/helpers"
)

const DefaultUciTimeout = 10 * time.Second

// UciBinarySource asks an external UCI engine for moves, eg stockfish or
// another build of this bot.
type UciBinarySource struct {
	runner  *binary.BinaryRunner
	depth   int
	timeout time.Duration
}

var _ MoveSource = (*UciBinarySource)(nil)

func NewUciBinarySource(cmdPath string, depth int, logger Logger) (*UciBinarySource, Error) {
	runner, err := binary.SetupBinaryRunner(cmdPath, []string{}, binary.WithLogger(logger))
	if !IsNil(err) {
		runner.Close()
		return nil, err
	}

	u := &UciBinarySource{
		runner:  runner,
		depth:   depth,
		timeout: DefaultUciTimeout,
	}

	_, err = runner.Run("uci", Some("uciok"), u.timeout)
	if !IsNil(err) {
		u.Close()
		return nil, err
	}
	_, err = runner.Run("isready", Some("readyok"), u.timeout)
	if !IsNil(err) {
		u.Close()
		return nil, err
	}

	return u, NilError
}

func (u *UciBinarySource) Name() string {
	return fmt.Sprintf("uci(%v, depth=%v)", filepath.Base(u.runner.CmdPath()), u.depth)
}

func (u *UciBinarySource) NextMove(game *bot.Bot) (Optional[string], Error) {
	position := "position fen " + game.StartFen
	if moves := game.MoveHistory(); len(moves) > 0 {
		position += " moves " + strings.Join(moves, " ")
	}

	err := u.runner.RunAsync(position)
	if !IsNil(err) {
		return Empty[string](), err
	}

	output, err := u.runner.Run(fmt.Sprintf("go depth %v", u.depth), Some("bestmove"), u.timeout)
	if !IsNil(err) {
		return Empty[string](), err
	}

	move, err := findMoveInOutput(output)
	if !IsNil(err) {
		return Empty[string](), Join(err, Errorf("%v", u.runner.Flush()))
	}
	if move == "0000" || move == "(none)" {
		return Empty[string](), NilError
	}
	if len(move) < 4 || !game.CheckMoveIsLegal(move[0:2], move[2:]) {
		return Empty[string](), Errorf("%v played illegal move %v", u.Name(), move)
	}
	return Some(move), NilError
}

func (u *UciBinarySource) Close() {
	if u.runner != nil {
		_ = u.runner.RunAsync("quit")
		u.runner.Close()
	}
}

func findMoveInOutput(output []string) (string, Error) {
	for _, line := range output {
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == "bestmove" {
			return fields[1], NilError
		}
	}
	return "", Errorf("couldn't find bestmove in %v", output)
}
