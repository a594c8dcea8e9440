package evaluation

import (
	"fmt"
	"math"

	. "github.com/cricklet/chessbot/internal/bitboards"
	. "github.com/cricklet/chessbot/internal/helpers"
)

// Score is fractional. Infinities only appear as search bounds.
type Score float64

var Inf = Score(math.Inf(1))

func (s Score) String() string {
	return fmt.Sprintf("%.1f", float64(s))
}

// Board is the read-only view of a position the evaluator needs.
type Board interface {
	PieceAt(index int) Piece
	PiecesOf(pieceType PieceType, player Player) Bitboard
	KingSquare(player Player) Optional[int]
	AttackersOf(by Player, index int) int
	AttackedSquaresFrom(index int) int
	CastlingRights(player Player, side CastlingSide) bool
	IsCheckmate() bool
}

type Evaluator func(board Board, perspective Player) Score

var _ Evaluator = Evaluate
var _ Evaluator = EvaluateMaterial

var PieceValues = [7]Score{
	Rook:         5,
	Knight:       3,
	Bishop:       3,
	King:         100,
	Queen:        9,
	Pawn:         1,
	InvalidPiece: 0,
}

const (
	CenterBonus          Score = 0.5
	CastlingRightBonus   Score = 2
	LostCastlingPenalty  Score = 2
	KingExposureBonus    Score = 10
	CentralKingBonus     Score = 5
	CheckmateBonus       Score = 50
	FewEscapesBonus      Score = 20
	FewEscapesThreshold        = 2
	SafeQueenBonus       Score = 4
	SafeEnemyQueenMalus  Score = 2
	SafeRookBonus        Score = 2
	SafeEnemyRookMalus   Score = 1
	SafeMinorPieceBonus  Score = 1
)

// Terms is the evaluation split by heuristic. Evaluate is their sum.
type Terms struct {
	Material      Score
	KingSafety    Score
	KingExposure  Score
	CentralKing   Score
	Checkmate     Score
	FewEscapes    Score
	Protection    Score
	BothKingsSeen bool
}

func (t Terms) Total() Score {
	return t.Material + t.KingSafety + t.KingExposure + t.CentralKing + t.Checkmate + t.FewEscapes + t.Protection
}

func (t Terms) String() string {
	return fmt.Sprintf(
		"material %v, king safety %v, king exposure %v, central king %v, checkmate %v, few escapes %v, protection %v => %v",
		t.Material, t.KingSafety, t.KingExposure, t.CentralKing, t.Checkmate, t.FewEscapes, t.Protection, t.Total())
}

func Evaluate(board Board, perspective Player) Score {
	return EvaluateTerms(board, perspective).Total()
}

// EvaluateMaterial sums piece values and center occupation. It is
// antisymmetric: swapping the perspective negates it.
func EvaluateMaterial(board Board, perspective Player) Score {
	score := Score(0)
	for index := 0; index < 64; index++ {
		piece := board.PieceAt(index)
		if piece == XX {
			continue
		}

		value := PieceValues[piece.PieceType()]
		if CenterSquares.IsSet(index) {
			value += CenterBonus
		}

		if piece.Player() == perspective {
			score += value
		} else {
			score -= value
		}
	}
	return score
}

func EvaluateTerms(board Board, perspective Player) Terms {
	opponent := perspective.Other()
	terms := Terms{Material: EvaluateMaterial(board, perspective)}

	ownKing := board.KingSquare(perspective)
	opponentKing := board.KingSquare(opponent)
	if ownKing.IsEmpty() || opponentKing.IsEmpty() {
		return terms
	}
	terms.BothKingsSeen = true

	for _, side := range AllCastlingSides {
		if board.CastlingRights(perspective, side) && ownKing.Value() == KingHomeSquares[perspective] {
			terms.KingSafety += CastlingRightBonus
		}
		if !board.CastlingRights(opponent, side) && opponentKing.Value() == KingHomeSquares[opponent] {
			terms.KingSafety -= LostCastlingPenalty
		}
	}

	if !board.CastlingRights(opponent, Kingside) && !board.CastlingRights(opponent, Queenside) {
		terms.KingExposure = KingExposureBonus
	}

	if CenterSquares.IsSet(opponentKing.Value()) {
		terms.CentralKing = CentralKingBonus
	}

	if board.IsCheckmate() {
		terms.Checkmate = CheckmateBonus
	}
	if board.AttackedSquaresFrom(opponentKing.Value()) <= FewEscapesThreshold {
		terms.FewEscapes = FewEscapesBonus
	}

	terms.Protection = evaluateProtection(board, perspective)

	return terms
}

// A piece counts as safe when nothing of the other side attacks it.
func evaluateProtection(board Board, perspective Player) Score {
	opponent := perspective.Other()
	score := Score(0)

	unattacked := func(pieceType PieceType, player Player) int {
		count := 0
		board.PiecesOf(pieceType, player).EachIndexOfOne(func(index int) {
			if board.AttackersOf(player.Other(), index) == 0 {
				count++
			}
		})
		return count
	}

	if unattacked(Queen, perspective) > 0 {
		score += SafeQueenBonus
	}
	if unattacked(Queen, opponent) > 0 {
		score -= SafeEnemyQueenMalus
	}

	score += SafeRookBonus * Score(unattacked(Rook, perspective))
	score -= SafeEnemyRookMalus * Score(unattacked(Rook, opponent))

	score += SafeMinorPieceBonus * Score(unattacked(Knight, perspective)+unattacked(Bishop, perspective))

	return score
}
