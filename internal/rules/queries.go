package rules

import (
	. "github.com/cricklet/chessbot/internal/bitboards"
	. "github.com/cricklet/chessbot/internal/helpers"
)

func (p *Position) PieceAt(index int) Piece {
	return p.game.Board[index]
}

func (p *Position) PiecesOf(pieceType PieceType, player Player) Bitboard {
	return p.game.Bitboards.Players[player].Pieces[pieceType]
}

func (p *Position) KingSquare(player Player) Optional[int] {
	kings := p.PiecesOf(King, player)
	if kings == 0 {
		return Empty[int]()
	}
	return Some(kings.FirstIndexOfOne())
}

// AttackersOf counts the pieces of player `by` attacking index.
func (p *Position) AttackersOf(by Player, index int) int {
	return OnesCount(attackersOf(&p.game.Bitboards, by, index))
}

func (p *Position) IsAttacked(by Player, index int) bool {
	return isAttacked(&p.game.Bitboards, by, index)
}

// AttackedSquaresFrom counts the squares the piece on index attacks, leaving
// out squares held by its own side. An empty square attacks nothing.
func (p *Position) AttackedSquaresFrom(index int) int {
	piece := p.game.Board[index]
	if piece == XX {
		return 0
	}
	own := p.game.Bitboards.Players[piece.Player()].Occupied
	return OnesCount(attacksFrom(&p.game.Bitboards, piece, index) & ^own)
}

func (p *Position) CastlingRights(player Player, side CastlingSide) bool {
	return p.game.PlayerAndCastlingSideAllowed[player][side]
}

func (p *Position) InCheck() bool {
	return kingIsInCheck(&p.game.Bitboards, p.game.Player)
}
