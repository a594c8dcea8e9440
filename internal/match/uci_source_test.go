package match

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cricklet/chessbot/internal/bot"
	"github.com/cricklet/chessbot/internal/game"
	. "github.com/cricklet/chessbot/internal/helpers"
)

// fakeEngine writes a UCI engine script that answers every "go" with the
// next of bestmoves, then repeats the last one.
func fakeEngine(t *testing.T, bestmoves ...string) string {
	script := "#!/bin/sh\n" +
		"set -- '" + strings.Join(bestmoves, "' '") + "'\n" +
		`while read line; do
  case "$line" in
    uci) echo "id name fake"; echo "uciok" ;;
    isready) echo "readyok" ;;
    go*)
      echo "info depth 1 score cp 0"
      echo "bestmove $1"
      if [ $# -gt 1 ]; then shift; fi
      ;;
    quit) exit 0 ;;
  esac
done
`
	path := filepath.Join(t.TempDir(), "fake-engine")
	assert.Nil(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestUciBinarySource(t *testing.T) {
	engine, err := NewUciBinarySource(fakeEngine(t, "e2e4", "g1f3"), 3, SilentLogger)
	assert.True(t, IsNil(err), err)
	defer engine.Close()

	assert.Equal(t, "uci(fake-engine, depth=3)", engine.Name())

	b, err := bot.NewBotFromFen(game.StartFen, bot.WithLogger(SilentLogger))
	assert.True(t, IsNil(err), err)

	move, err := engine.NextMove(b)
	assert.True(t, IsNil(err), err)
	assert.Equal(t, Some("e2e4"), move)

	assert.True(t, IsNil(b.PerformMoves(game.StartFen, []string{"e2e4", "e7e5"})))

	move, err = engine.NextMove(b)
	assert.True(t, IsNil(err), err)
	assert.Equal(t, Some("g1f3"), move)

	record := engine.runner.Flush()
	assert.Contains(t, record, "in:  position fen "+game.StartFen+"\n")
	assert.Contains(t, record, "in:  position fen "+game.StartFen+" moves e2e4 e7e5")
	assert.Contains(t, record, "in:  go depth 3")
}

func TestUciBinarySourcePlaysGame(t *testing.T) {
	engine, err := NewUciBinarySource(fakeEngine(t, "f2f3", "g2g4"), 1, SilentLogger)
	assert.True(t, IsNil(err), err)
	defer engine.Close()

	result, err := Play(Game{
		Sources: [2]MoveSource{engine, scripted("e7e5", "d8h4")},
		Out:     io.Discard,
	})
	assert.True(t, IsNil(err), err)
	assert.Equal(t, []string{"f2f3", "e7e5", "g2g4", "d8h4"}, result.Moves)
	assert.Equal(t, Some(Black), result.Winner())
}

func TestUciBinarySourceForfeits(t *testing.T) {
	engine, err := NewUciBinarySource(fakeEngine(t, "(none)"), 1, SilentLogger)
	assert.True(t, IsNil(err), err)
	defer engine.Close()

	b, err := bot.NewBotFromFen(game.StartFen, bot.WithLogger(SilentLogger))
	assert.True(t, IsNil(err), err)

	move, err := engine.NextMove(b)
	assert.True(t, IsNil(err), err)
	assert.True(t, move.IsEmpty())
}

func TestUciBinarySourceIllegalMove(t *testing.T) {
	engine, err := NewUciBinarySource(fakeEngine(t, "e2e5"), 1, SilentLogger)
	assert.True(t, IsNil(err), err)
	defer engine.Close()

	b, err := bot.NewBotFromFen(game.StartFen, bot.WithLogger(SilentLogger))
	assert.True(t, IsNil(err), err)

	_, err = engine.NextMove(b)
	assert.False(t, IsNil(err))
	assert.Contains(t, err.Error(), "illegal move e2e5")
}

func TestUciBinarySourceMissingBinary(t *testing.T) {
	_, err := NewUciBinarySource(filepath.Join(t.TempDir(), "missing"), 1, SilentLogger)
	assert.False(t, IsNil(err))
}

func TestFindMoveInOutput(t *testing.T) {
	move, err := findMoveInOutput([]string{"info depth 2", "bestmove a1a8 ponder g8h8"})
	assert.True(t, IsNil(err), err)
	assert.Equal(t, "a1a8", move)

	_, err = findMoveInOutput([]string{"info depth 2"})
	assert.False(t, IsNil(err))
}
