package rules

import (
	. "github.com/cricklet/chessbot/internal/bitboards"
	. "github.com/cricklet/chessbot/internal/helpers"
)

// attackersOf returns the pieces of player `by` that attack index.
func attackersOf(b *Bitboards, by Player, index int) Bitboard {
	enemy := &b.Players[by]

	attackers := BishopAttacks(index, b.Occupied) & (enemy.Pieces[Bishop] | enemy.Pieces[Queen])
	attackers |= RookAttacks(index, b.Occupied) & (enemy.Pieces[Rook] | enemy.Pieces[Queen])
	attackers |= KnightAttackMasks[index] & enemy.Pieces[Knight]
	attackers |= KingAttackMasks[index] & enemy.Pieces[King]

	// A pawn of `by` attacks index exactly when a pawn of the other side on
	// index would attack it back.
	attackers |= PawnAttackMasks[by.Other()][index] & enemy.Pieces[Pawn]

	return attackers
}

func isAttacked(b *Bitboards, by Player, index int) bool {
	return attackersOf(b, by, index) != 0
}

func kingIsInCheck(b *Bitboards, player Player) bool {
	kingBoard := b.Players[player].Pieces[King]
	if kingBoard == 0 {
		return false
	}
	return isAttacked(b, player.Other(), kingBoard.FirstIndexOfOne())
}

// attacksFrom is every square the piece on index attacks, including squares
// held by its own side.
func attacksFrom(b *Bitboards, piece Piece, index int) Bitboard {
	switch piece.PieceType() {
	case Rook:
		return RookAttacks(index, b.Occupied)
	case Bishop:
		return BishopAttacks(index, b.Occupied)
	case Queen:
		return QueenAttacks(index, b.Occupied)
	case Knight:
		return KnightAttackMasks[index]
	case King:
		return KingAttackMasks[index]
	case Pawn:
		return PawnAttackMasks[piece.Player()][index]
	}
	return 0
}
