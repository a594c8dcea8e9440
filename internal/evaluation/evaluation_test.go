package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/rules"
)

func positionFromFen(t *testing.T, fen string) *rules.Position {
	p, err := rules.NewPosition(fen)
	assert.True(t, IsNil(err), err)
	return p
}

var _ Board = (*rules.Position)(nil)

func TestStartPositionTerms(t *testing.T) {
	p := rules.NewStartPosition()
	terms := EvaluateTerms(p, White)

	assert.True(t, terms.BothKingsSeen)
	assert.Equal(t, Score(0), terms.Material)
	assert.Equal(t, Score(4), terms.KingSafety)
	assert.Equal(t, Score(0), terms.KingExposure)
	assert.Equal(t, Score(0), terms.CentralKing)
	assert.Equal(t, Score(0), terms.Checkmate)
	// The black king is boxed in by its own pieces.
	assert.Equal(t, Score(20), terms.FewEscapes)
	// queen +4, their queen -2, rooks +4, their rooks -2, minors +4
	assert.Equal(t, Score(8), terms.Protection)
	assert.Equal(t, Score(32), Evaluate(p, White))
	assert.Equal(t, Score(32), Evaluate(p, Black))
}

func TestFewEscapesCountsFreeSquares(t *testing.T) {
	// A lone black king on e8 has five free squares around it.
	p := positionFromFen(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, Score(0), EvaluateTerms(p, White).FewEscapes)

	// Walled in by its own pawns it has only d8 and f8 left.
	p = positionFromFen(t, "4k3/3ppp2/8/8/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, Score(20), EvaluateTerms(p, White).FewEscapes)

	// In the corner it has three.
	p = positionFromFen(t, "k7/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.Equal(t, Score(0), EvaluateTerms(p, White).FewEscapes)
}

func TestCenterControl(t *testing.T) {
	p := positionFromFen(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	assert.Equal(t, Score(0.5), EvaluateMaterial(p, White))
	assert.Equal(t, Score(-0.5), EvaluateMaterial(p, Black))
}

func TestMaterialSymmetry(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"4k3/8/8/3q4/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range fens {
		p := positionFromFen(t, fen)
		assert.Equal(t, EvaluateMaterial(p, White), -EvaluateMaterial(p, Black), fen)
	}
}

func TestMaterialValues(t *testing.T) {
	p := positionFromFen(t, "4k3/8/8/8/8/8/8/QRBNPK2 w - - 0 1")
	// queen 9 + rook 5 + bishop 3 + knight 3 + pawn 1
	assert.Equal(t, Score(21), EvaluateMaterial(p, White))
}

func TestMissingKingOnlyScoresMaterial(t *testing.T) {
	p := positionFromFen(t, "8/8/8/q7/8/8/8/R3K3 w Q - 0 1")
	terms := EvaluateTerms(p, White)

	assert.False(t, terms.BothKingsSeen)
	assert.Equal(t, terms.Material, Evaluate(p, White))
	assert.Equal(t, Score(100+5-9), Evaluate(p, White))
}

func TestKingTerms(t *testing.T) {
	// Black king on e5 with no castling rights; white keeps both.
	p := positionFromFen(t, "8/8/8/4k3/8/8/8/R3K2R w KQ - 0 1")
	terms := EvaluateTerms(p, White)

	assert.Equal(t, Score(4), terms.KingSafety)
	assert.Equal(t, KingExposureBonus, terms.KingExposure)
	assert.Equal(t, CentralKingBonus, terms.CentralKing)
	assert.Equal(t, Score(0), terms.FewEscapes)

	// From black's side both white rights are held, so nothing is exposed,
	// and black has no rights of its own.
	terms = EvaluateTerms(p, Black)
	assert.Equal(t, Score(0), terms.KingSafety)
	assert.Equal(t, Score(0), terms.KingExposure)
	assert.Equal(t, Score(0), terms.CentralKing)
}

func TestLostCastlingPenalty(t *testing.T) {
	p := positionFromFen(t, "r3k2r/8/8/8/8/8/8/4K3 w - - 0 1")
	terms := EvaluateTerms(p, White)
	assert.Equal(t, Score(-4), terms.KingSafety)
	assert.Equal(t, KingExposureBonus, terms.KingExposure)
}

func TestCheckmateBonus(t *testing.T) {
	p := positionFromFen(t, "kQK5/8/8/8/8/8/8/8 b - - 0 1")
	terms := EvaluateTerms(p, White)
	assert.Equal(t, CheckmateBonus, terms.Checkmate)
	// The cornered king only reaches a7, b7, b8.
	assert.Equal(t, Score(0), terms.FewEscapes)

	mated := positionFromFen(t, "R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	terms = EvaluateTerms(mated, White)
	assert.Equal(t, CheckmateBonus, terms.Checkmate)
	assert.Equal(t, FewEscapesBonus, terms.FewEscapes)
}

func TestProtection(t *testing.T) {
	// The black rook hits the white queen and the white queen hits it back.
	// Both the white rook and the black queen are safe.
	p := positionFromFen(t, "k2r4/8/8/8/8/8/8/R2QK1q1 w - - 0 1")
	score := evaluateProtection(p, White)
	assert.Equal(t, Score(0-2+2-0), score)
}

func TestEvaluateDoesNotMutate(t *testing.T) {
	p := positionFromFen(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	fen, hash := p.Fen(), p.Hash()
	Evaluate(p, White)
	Evaluate(p, Black)
	assert.Equal(t, fen, p.Fen())
	assert.Equal(t, hash, p.Hash())
}
