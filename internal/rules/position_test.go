package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/cricklet/chessbot/internal/bitboards"
	. "github.com/cricklet/chessbot/internal/helpers"
)

func positionFromFen(t *testing.T, fen string) *Position {
	p, err := NewPosition(fen)
	assert.True(t, IsNil(err), err)
	return p
}

func moveStrings(moves []Move) []string {
	return MapSlice(moves, func(m Move) string { return m.String() })
}

func TestNewPositionRejectsBadFen(t *testing.T) {
	_, err := NewPosition("not a fen")
	assert.False(t, IsNil(err))
}

func TestLegalMovesStartPosition(t *testing.T) {
	p := NewStartPosition()
	moves, err := p.LegalMoves()
	assert.True(t, IsNil(err), err)
	assert.Equal(t, 20, len(moves))
	assert.Contains(t, moveStrings(moves), "e2e4")
	assert.Contains(t, moveStrings(moves), "b1c3")
}

func TestLegalMovesAllPromotions(t *testing.T) {
	p := positionFromFen(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	moves, err := p.LegalMoves()
	assert.True(t, IsNil(err), err)

	strings := moveStrings(moves)
	for _, s := range []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n"} {
		assert.Contains(t, strings, s)
	}
}

func TestCastlingRequiresRook(t *testing.T) {
	p := positionFromFen(t, "4k3/8/8/8/8/8/8/4K2R w KQ - 0 1")
	moves, err := p.LegalMoves()
	assert.True(t, IsNil(err), err)
	assert.Contains(t, moveStrings(moves), "e1g1")
	assert.NotContains(t, moveStrings(moves), "e1c1")
}

func TestCastlingThroughCheck(t *testing.T) {
	p := positionFromFen(t, "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	moves, err := p.LegalMoves()
	assert.True(t, IsNil(err), err)
	assert.NotContains(t, moveStrings(moves), "e1g1")
	assert.Contains(t, moveStrings(moves), "e1c1")
}

func TestPerformAndUndo(t *testing.T) {
	p := NewStartPosition()
	fen := p.Fen()

	for _, s := range []string{"e2e4", "e7e5", "g1f3"} {
		move, err := p.MoveFromString(s)
		assert.True(t, IsNil(err), err)
		assert.True(t, IsNil(p.PerformMove(move)))
	}
	assert.Equal(t, []string{"e2e4", "e7e5", "g1f3"}, moveStrings(p.History()))
	assert.Equal(t, Black, p.Player())

	for i := 0; i < 3; i++ {
		assert.True(t, IsNil(p.UndoMove()))
	}
	assert.Equal(t, fen, p.Fen())
	assert.Equal(t, 0, len(p.History()))

	assert.False(t, IsNil(p.UndoMove()))
}

func TestMoveFromString(t *testing.T) {
	p := NewStartPosition()

	_, err := p.MoveFromString("e2e5")
	assert.False(t, IsNil(err))

	_, err = p.MoveFromString("e2e4q")
	assert.False(t, IsNil(err))

	_, err = p.MoveFromString("zz")
	assert.False(t, IsNil(err))

	promotion := positionFromFen(t, "8/P6k/8/8/8/8/8/K7 w - - 0 1")
	move, err := promotion.MoveFromString("a7a8")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, Queen, move.PromotionPiece.Value())

	move, err = promotion.MoveFromString("a7a8n")
	assert.True(t, IsNil(err), err)
	assert.Equal(t, Knight, move.PromotionPiece.Value())
}

func TestQueries(t *testing.T) {
	p := positionFromFen(t, "4k3/8/8/3q4/8/2N5/8/R3K3 w Q - 0 1")

	assert.Equal(t, E1, p.KingSquare(White).Value())
	assert.Equal(t, E8, p.KingSquare(Black).Value())
	assert.Equal(t, WN, p.PieceAt(BoardIndexFromString("c3")))
	assert.Equal(t, SingleBitboard(BoardIndexFromString("d5")), p.PiecesOf(Queen, Black))
	assert.True(t, p.CastlingRights(White, Queenside))
	assert.False(t, p.CastlingRights(White, Kingside))

	d5 := BoardIndexFromString("d5")
	assert.Equal(t, 1, p.AttackersOf(White, d5))
	assert.Equal(t, 1, p.AttackersOf(Black, BoardIndexFromString("d1")))
	assert.True(t, p.IsAttacked(Black, d5-8))
	assert.False(t, p.IsAttacked(White, d5-8))

	// The knight on c3 attacks a2, a4, b1, b5, d1, d5, e2, e4.
	assert.Equal(t, 8, p.AttackedSquaresFrom(BoardIndexFromString("c3")))
	// The white king on e1 attacks d1, d2, e2, f2, f1.
	assert.Equal(t, 5, p.AttackedSquaresFrom(E1))
	assert.Equal(t, 0, p.AttackedSquaresFrom(BoardIndexFromString("h4")))

	assert.False(t, p.InCheck())
}

func TestKingSquareMissing(t *testing.T) {
	p := positionFromFen(t, "8/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.True(t, p.KingSquare(Black).IsEmpty())
	assert.False(t, p.InCheck())
}

func TestAttackedSquaresExcludeOwnPieces(t *testing.T) {
	p := NewStartPosition()
	// Every square around the king holds a white piece. The knight still
	// reaches f3 and h3.
	assert.Equal(t, 0, p.AttackedSquaresFrom(E1))
	assert.Equal(t, 2, p.AttackedSquaresFrom(BoardIndexFromString("g1")))

	// The raw attack set around each king has five squares.
	assert.Equal(t, 5, OnesCount(attacksFrom(&p.game.Bitboards, WK, E1)))
	assert.Equal(t, 5, OnesCount(attacksFrom(&p.game.Bitboards, BK, E8)))
	assert.Equal(t, 0, p.AttackedSquaresFrom(E8))

	// Enemy pieces stay in the count, they can be captured.
	p = positionFromFen(t, "4k3/8/8/8/8/8/3ppp2/4K3 w - - 0 1")
	assert.Equal(t, 5, p.AttackedSquaresFrom(E1))
}
