package match

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/exp/rand"

	"github.com/cricklet/chessbot/internal/bot"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/search"
)

// MoveSource picks the next move for whoever is to move in game. An empty
// move means the source forfeits.
type MoveSource interface {
	Name() string
	NextMove(game *bot.Bot) (Optional[string], Error)
}

// EngineSource searches the game's position for the side to move.
type EngineSource struct {
	Logger        Logger
	Depth         int
	SearchOptions []search.SearchOption
}

var _ MoveSource = (*EngineSource)(nil)

func NewEngineSource(logger Logger, depth int, options ...search.SearchOption) *EngineSource {
	return &EngineSource{
		Logger:        logger,
		Depth:         depth,
		SearchOptions: options,
	}
}

func (e *EngineSource) Name() string {
	return fmt.Sprintf("engine(depth=%v)", e.Depth)
}

func (e *EngineSource) NextMove(game *bot.Bot) (Optional[string], Error) {
	move, _, err := search.BestMove(game.Position(), e.Depth, game.Player(), e.SearchOptions...)
	if !IsNil(err) {
		return Empty[string](), err
	}
	if move.IsEmpty() {
		return Empty[string](), NilError
	}

	e.Logger.Println("My move: " + move.Value().String())
	return Some(move.Value().String()), NilError
}

// RandomSource plays a uniformly random legal move.
type RandomSource struct {
	rand *rand.Rand
}

var _ MoveSource = (*RandomSource)(nil)

func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rand.New(rand.NewSource(seed))}
}

func (r *RandomSource) Name() string {
	return "random"
}

func (r *RandomSource) NextMove(game *bot.Bot) (Optional[string], Error) {
	moves, err := game.LegalMoves()
	if !IsNil(err) {
		return Empty[string](), err
	}
	if len(moves) == 0 {
		return Empty[string](), NilError
	}
	return Some(moves[r.rand.Intn(len(moves))]), NilError
}

// NewSource builds a source by kind: "engine", "random", "human" or "uci".
// cmdPath is only used by "uci".
func NewSource(kind string, cmdPath string, depth int, seed uint64, logger Logger, options ...search.SearchOption) (MoveSource, Error) {
	switch kind {
	case "engine":
		return NewEngineSource(logger, depth, options...), NilError
	case "random":
		return NewRandomSource(seed), NilError
	case "human":
		human, err := NewHumanSource(os.Stdout)
		if !IsNil(err) {
			return nil, err
		}
		return human, NilError
	case "uci":
		if cmdPath == "" {
			return nil, Errorf("uci source needs a binary path")
		}
		engine, err := NewUciBinarySource(cmdPath, depth, logger)
		if !IsNil(err) {
			return nil, err
		}
		return engine, NilError
	}
	return nil, Errorf("unknown move source %q", kind)
}

type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// HumanSource prompts for moves in coordinate notation until a legal one is
// entered. "resign" or end of input forfeits.
type HumanSource struct {
	out    io.Writer
	reader lineReader
}

var _ MoveSource = (*HumanSource)(nil)

func NewHumanSource(out io.Writer) (*HumanSource, Error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "move> ",
		HistoryFile:     ".chessbot_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "resign",
	})
	if err != nil {
		return nil, Wrap(err)
	}
	return &HumanSource{out: out, reader: rl}, NilError
}

// Close restores the terminal and flushes the history file.
func (h *HumanSource) Close() {
	_ = h.reader.Close()
}

func (h *HumanSource) Name() string {
	return "human"
}

func (h *HumanSource) NextMove(game *bot.Bot) (Optional[string], Error) {
	h.reader.SetPrompt(fmt.Sprintf("%v move> ", game.Player()))

	for {
		line, err := h.reader.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return Empty[string](), NilError
		}
		if err != nil {
			return Empty[string](), Wrap(err)
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "resign":
			return Empty[string](), NilError
		case len(line) >= 4 && game.CheckMoveIsLegal(line[0:2], line[2:]):
			return Some(line), NilError
		default:
			moves, err := game.LegalMoves()
			if !IsNil(err) {
				return Empty[string](), err
			}
			fmt.Fprintf(h.out, "illegal move %q, try one of: %v\n", line, strings.Join(moves, " "))
		}
	}
}
