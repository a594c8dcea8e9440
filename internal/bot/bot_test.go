package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cricklet/chessbot/internal/game"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/rules"
	"github.com/cricklet/chessbot/internal/search"
)

func newTestBot(t *testing.T, fen string, options ...BotOption) *Bot {
	options = append([]BotOption{
		WithLogger(SilentLogger),
		WithSearchOptions(search.WithLogger(SilentLogger)),
	}, options...)
	b, err := NewBotFromFen(fen, options...)
	assert.True(t, IsNil(err), err)
	return b
}

func TestDefaultsToStartPosition(t *testing.T) {
	b := newTestBot(t, "")
	assert.Equal(t, game.StartFen, b.FenString())
	assert.Equal(t, game.StartFen, b.StartFen)
	assert.Equal(t, White, b.Player())
	assert.Equal(t, DefaultDepth, b.Depth())
	assert.False(t, b.IsNew())
}

func TestNotSetup(t *testing.T) {
	b := NewBot(WithLogger(SilentLogger))
	assert.True(t, b.IsNew())

	_, err := b.Search(SearchParams{})
	assert.False(t, IsNil(err))
	assert.False(t, IsNil(b.PerformMoveFromString("e2e4")))
	assert.False(t, b.CheckMoveIsLegal("e2", "e4"))
}

func TestInvalidFen(t *testing.T) {
	_, err := NewBotFromFen("rnbqkbnr/pppppppp w")
	assert.False(t, IsNil(err))
}

func TestCheckMoveIsLegal(t *testing.T) {
	b := newTestBot(t, "")
	assert.True(t, b.CheckMoveIsLegal("e2", "e4"))
	assert.True(t, b.CheckMoveIsLegal("g1", "f3"))
	assert.False(t, b.CheckMoveIsLegal("e2", "e5"))
	assert.False(t, b.CheckMoveIsLegal("e7", "e5"))
	assert.False(t, b.CheckMoveIsLegal("z9", "e5"))

	promoting := newTestBot(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	assert.True(t, promoting.CheckMoveIsLegal("a7", "a8"))
}

func TestPerformMovesReusesHistory(t *testing.T) {
	b := newTestBot(t, "")

	err := b.PerformMoves(game.StartFen, []string{"e2e4", "e7e5"})
	assert.True(t, IsNil(err), err)
	assert.Equal(t, []string{"e2e4", "e7e5"}, b.MoveHistory())

	err = b.PerformMoves(game.StartFen, []string{"e2e4", "e7e5", "g1f3"})
	assert.True(t, IsNil(err), err)
	assert.Equal(t, []string{"e2e4", "e7e5", "g1f3"}, b.MoveHistory())

	// diverging from the history rewinds to the shared prefix
	err = b.PerformMoves(game.StartFen, []string{"e2e4", "c7c5"})
	assert.True(t, IsNil(err), err)
	assert.Equal(t, []string{"e2e4", "c7c5"}, b.MoveHistory())

	err = b.PerformMoves("8/8/8/8/8/8/8/8 w - - 0 1", []string{})
	assert.False(t, IsNil(err))
}

func TestSetupPositionWithMoves(t *testing.T) {
	b := newTestBot(t, "")
	err := b.SetupPosition(RunnerPosition{Fen: game.StartFen, Moves: []string{"d2d4", "d7d5", "c2c4"}})
	assert.True(t, IsNil(err), err)
	assert.Equal(t, "rnbqkbnr/ppp1pppp/8/3p4/2PP4/8/PP2PPPP/RNBQKBNR b KQkq c3 0 2", b.FenString())

	lines := []string{}
	b.Logger = &FuncLogger{Log: func(s string) { lines = append(lines, s) }}

	err = b.SetupPosition(RunnerPosition{Fen: game.StartFen, Moves: []string{"d2d5"}})
	assert.False(t, IsNil(err))
	assert.True(t, b.IsNew())
	assert.Equal(t, []string{"warning: couldn't play d2d5 from " + game.StartFen + ", resetting"}, lines)
}

func TestRewind(t *testing.T) {
	b := newTestBot(t, "")
	for _, move := range []string{"e2e4", "e7e5", "g1f3"} {
		assert.True(t, IsNil(b.PerformMoveFromString(move)))
	}

	err := b.Rewind(2)
	assert.True(t, IsNil(err), err)
	assert.Equal(t, []string{"e2e4"}, b.MoveHistory())

	err = b.Rewind(10)
	assert.True(t, IsNil(err), err)
	assert.Equal(t, game.StartFen, b.FenString())
}

func TestMovesForSelection(t *testing.T) {
	b := newTestBot(t, "")

	moves, err := b.MovesForSelection("e2")
	assert.True(t, IsNil(err), err)
	assert.ElementsMatch(t, []string{"e2e3", "e2e4"}, moves)

	moves, err = b.MovesForSelection("b1")
	assert.True(t, IsNil(err), err)
	assert.ElementsMatch(t, []string{"b1a3", "b1c3"}, moves)

	moves, err = b.MovesForSelection("e4")
	assert.True(t, IsNil(err), err)
	assert.Empty(t, moves)

	_, err = b.MovesForSelection("k9")
	assert.False(t, IsNil(err))
}

func TestPgn(t *testing.T) {
	b := newTestBot(t, "")
	assert.Equal(t, "", b.PgnFromMoveHistory())

	for _, move := range []string{"e2e4", "e7e5", "g1f3"} {
		assert.True(t, IsNil(b.PerformMoveFromString(move)))
	}
	assert.Equal(t, "1. e2e4 e7e5 2. g1f3", b.PgnFromMoveHistory())

	b = newTestBot(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 12")
	assert.Equal(t, "", b.PgnFromMoveHistory())
	for _, move := range []string{"e7e5", "g1f3", "b8c6"} {
		assert.True(t, IsNil(b.PerformMoveFromString(move)))
	}
	assert.Equal(t, "12... e7e5 13. g1f3 b8c6", b.PgnFromMoveHistory())
}

func TestNextMoveFindsMate(t *testing.T) {
	lines := []string{}
	b := newTestBot(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
		WithDepth(2),
		WithLogger(&FuncLogger{Log: func(s string) { lines = append(lines, s) }}))

	move, err := b.NextMove()
	assert.True(t, IsNil(err), err)
	assert.Equal(t, "a1a8", move.Value())
	assert.Equal(t, []string{"My move: a1a8"}, lines)
	assert.GreaterOrEqual(t, float64(b.LastScore.Value()), 50.0)

	// searching leaves the game untouched
	assert.Equal(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", b.FenString())

	assert.True(t, IsNil(b.PerformMoveFromString(move.Value())))
	assert.True(t, b.IsGameOver())
	assert.Equal(t, Some(rules.Outcome{Termination: rules.Checkmate, Winner: Some(White)}), b.Outcome())
}

func TestSearchWithoutMoves(t *testing.T) {
	b := newTestBot(t, "k7/8/1Q6/8/8/8/8/7K b - - 0 1")
	assert.True(t, b.IsStalemate())

	move, err := b.NextMove()
	assert.True(t, IsNil(err), err)
	assert.True(t, move.IsEmpty())
}

func TestSearchDepthOverride(t *testing.T) {
	b := newTestBot(t, "", WithPerspective(White))
	move, err := b.Search(SearchParams{Depth: Some(1)})
	assert.True(t, IsNil(err), err)
	assert.Equal(t, "d2d4", move.Value())
}

func TestInsufficientMaterial(t *testing.T) {
	b := newTestBot(t, "8/8/4k3/8/8/3K4/8/8 w - - 0 1")
	assert.True(t, b.IsInsufficientMaterial())
	assert.True(t, b.IsGameOver())
	assert.Equal(t, "1/2-1/2", b.Outcome().Value().Result())
}
