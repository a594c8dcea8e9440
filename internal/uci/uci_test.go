package uci

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cricklet/chessbot/internal/bot"
	"github.com/cricklet/chessbot/internal/game"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/search"
)

func newTestRunner(depth int) *UciRunner {
	return NewUciRunner(bot.NewBot(
		bot.WithLogger(SilentLogger),
		bot.WithDepth(depth),
		bot.WithSearchOptions(search.WithLogger(SilentLogger)),
	))
}

func handle(t *testing.T, r *UciRunner, input string) []string {
	output, err := r.HandleInput(input)
	assert.True(t, IsNil(err), err)
	return output
}

func TestHandshake(t *testing.T) {
	r := newTestRunner(1)
	assert.Equal(t, []string{"readyok"}, handle(t, r, "isready"))

	output := handle(t, r, "uci")
	assert.Equal(t, "uciok", output[len(output)-1])
	assert.Equal(t, "id name chessbot 1", output[0])
}

func TestStartPosGo(t *testing.T) {
	r := newTestRunner(1)
	assert.Empty(t, handle(t, r, "position startpos"))
	assert.Equal(t, []string{"bestmove d2d4"}, handle(t, r, "go"))
}

func TestPositionWithMoves(t *testing.T) {
	r := newTestRunner(1)
	handle(t, r, "position startpos moves e2e4")
	assert.Equal(t, []string{"position fen rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"}, handle(t, r, "fen"))

	handle(t, r, "position startpos moves e2e4 e7e5")
	assert.Equal(t, []string{"position fen rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"}, handle(t, r, "fen"))

	// a different game resets the runner
	handle(t, r, "position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	assert.Equal(t, []string{"position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1"}, handle(t, r, "fen"))
}

func TestGoDepth(t *testing.T) {
	r := newTestRunner(1)
	handle(t, r, "position fen 6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	assert.Equal(t, []string{"bestmove a1a8"}, handle(t, r, "go depth 2"))

	_, err := r.HandleInput("go depth")
	assert.False(t, IsNil(err))
	_, err = r.HandleInput("go depth x")
	assert.False(t, IsNil(err))
}

func TestGoIgnoresClock(t *testing.T) {
	r := newTestRunner(1)
	handle(t, r, "position startpos")
	assert.Equal(t, []string{"bestmove d2d4"}, handle(t, r, "go wtime 1000 btime 1000"))
}

func TestNoLegalMoves(t *testing.T) {
	r := newTestRunner(2)
	handle(t, r, "position fen kQK5/8/8/8/8/8/8/8 b - - 0 1")
	assert.Equal(t, []string{"bestmove 0000"}, handle(t, r, "go"))
}

func TestNewGame(t *testing.T) {
	r := newTestRunner(1)
	handle(t, r, "position startpos moves d2d4")
	handle(t, r, "ucinewgame")
	assert.True(t, r.Runner.IsNew())
	assert.Empty(t, handle(t, r, "fen"))

	handle(t, r, "position startpos")
	assert.Equal(t, []string{"position fen " + game.StartFen}, handle(t, r, "fen"))
}

func TestBadInput(t *testing.T) {
	r := newTestRunner(1)
	_, err := r.HandleInput("position nonsense")
	assert.False(t, IsNil(err))

	_, err = r.HandleInput("position startpos moves e2e5")
	assert.False(t, IsNil(err))

	_, err = r.HandleInput("go")
	assert.False(t, IsNil(err))
}
