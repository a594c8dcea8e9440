package rules

import (
	"fmt"

	. "github.com/cricklet/chessbot/internal/bitboards"
	. "github.com/cricklet/chessbot/internal/helpers"
)

type Termination int

const (
	Checkmate Termination = iota + 1
	Stalemate
	InsufficientMaterial
	SeventyFiveMoves
	FivefoldRepetition
)

func (t Termination) String() string {
	switch t {
	case Checkmate:
		return "CHECKMATE"
	case Stalemate:
		return "STALEMATE"
	case InsufficientMaterial:
		return "INSUFFICIENT_MATERIAL"
	case SeventyFiveMoves:
		return "SEVENTYFIVE_MOVES"
	case FivefoldRepetition:
		return "FIVEFOLD_REPETITION"
	}
	return "UNKNOWN"
}

type Outcome struct {
	Termination Termination
	// Empty for draws.
	Winner Optional[Player]
}

func (o Outcome) String() string {
	winner := "none"
	if o.Winner.HasValue() {
		winner = o.Winner.Value().String()
	}
	return fmt.Sprintf("Outcome(termination=%v, winner=%v)", o.Termination, winner)
}

// Result is "1-0", "0-1" or "1/2-1/2".
func (o Outcome) Result() string {
	if o.Winner.IsEmpty() {
		return "1/2-1/2"
	}
	if o.Winner.Value() == White {
		return "1-0"
	}
	return "0-1"
}

func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.hasLegalMove()
}

func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.hasLegalMove()
}

// IsInsufficientMaterial holds when neither side has a pawn, rook or queen
// and the remaining minor pieces can't force mate: at most one minor in
// total, or only bishops that all stand on one square colour.
func (p *Position) IsInsufficientMaterial() bool {
	b := &p.game.Bitboards
	all := func(pieceType PieceType) Bitboard {
		return b.Players[White].Pieces[pieceType] | b.Players[Black].Pieces[pieceType]
	}

	if all(Pawn)|all(Rook)|all(Queen) != 0 {
		return false
	}

	knights, bishops := all(Knight), all(Bishop)
	if OnesCount(knights|bishops) <= 1 {
		return true
	}
	if knights != 0 {
		return false
	}
	return bishops&LightSquares == 0 || bishops & ^LightSquares == 0
}

func (p *Position) IsSeventyFiveMoves() bool {
	return p.game.HalfMoveClock >= 150
}

func (p *Position) IsFivefoldRepetition() bool {
	return p.game.HashHistory.Count(p.game.Hash) >= 5
}

func (p *Position) IsGameOver() bool {
	return p.Outcome().HasValue()
}

// Outcome checks terminations in the order checkmate, stalemate,
// insufficient material, seventy-five moves, fivefold repetition.
func (p *Position) Outcome() Optional[Outcome] {
	hasLegalMove := p.hasLegalMove()
	if !hasLegalMove {
		if p.InCheck() {
			return Some(Outcome{Checkmate, Some(p.Player().Other())})
		}
		return Some(Outcome{Stalemate, Empty[Player]()})
	}
	if p.IsInsufficientMaterial() {
		return Some(Outcome{InsufficientMaterial, Empty[Player]()})
	}
	if p.IsSeventyFiveMoves() {
		return Some(Outcome{SeventyFiveMoves, Empty[Player]()})
	}
	if p.IsFivefoldRepetition() {
		return Some(Outcome{FivefoldRepetition, Empty[Player]()})
	}
	return Empty[Outcome]()
}
