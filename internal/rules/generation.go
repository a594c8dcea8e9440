package rules

import (
	. "github.com/cricklet/chessbot/internal/bitboards"
	. "github.com/cricklet/chessbot/internal/game"
	. "github.com/cricklet/chessbot/internal/helpers"
)

var _movesPool = NewPool(
	func() []Move { return make([]Move, 0, 256) },
	func(moves *[]Move) { *moves = (*moves)[:0] },
)

var possiblePromotions = []PieceType{Queen, Rook, Bishop, Knight}

func eachMoveTo(f func(Move), moveType MoveType, startIndex int, targets Bitboard) {
	for targets != 0 {
		var endIndex int
		endIndex, targets = targets.NextIndexOfOne()
		f(Move{MoveType: moveType, StartIndex: startIndex, EndIndex: endIndex})
	}
}

func generateMovesFromAttacks(
	f func(Move),
	pieces Bitboard,
	b *Bitboards,
	selfOccupied Bitboard,
	attacks func(index int) Bitboard,
) {
	for pieces != 0 {
		var startIndex int
		startIndex, pieces = pieces.NextIndexOfOne()

		potential := attacks(startIndex) & ^selfOccupied
		eachMoveTo(f, QuietMove, startIndex, potential & ^b.Occupied)
		eachMoveTo(f, CaptureMove, startIndex, potential&b.Occupied)
	}
}

func generatePawnMoves(f func(Move), moveType MoveType, player Player, startIndex int, endIndex int) {
	if !IsPromotionIndex(endIndex, player) {
		f(Move{MoveType: moveType, StartIndex: startIndex, EndIndex: endIndex})
		return
	}
	for _, piece := range possiblePromotions {
		f(Move{
			MoveType:       moveType,
			StartIndex:     startIndex,
			EndIndex:       endIndex,
			PromotionPiece: Some(piece),
		})
	}
}

func canCastle(g *GameState, player Player, side CastlingSide) bool {
	if !g.PlayerAndCastlingSideAllowed[player][side] {
		return false
	}

	b := &g.Bitboards
	requirements := AllCastlingRequirements[player][side]

	if b.Occupied&requirements.Empty != 0 {
		return false
	}
	if g.Board[requirements.Move.StartIndex] != PieceForPlayer[player][King] ||
		g.Board[requirements.RookStart] != PieceForPlayer[player][Rook] {
		return false
	}
	for _, index := range requirements.Safe {
		if isAttacked(b, player.Other(), index) {
			return false
		}
	}
	return true
}

// generatePseudoMoves yields every move for the side to move that follows
// piece movement rules, including ones that leave the king in check.
func generatePseudoMoves(g *GameState, f func(Move)) {
	player := g.Player
	b := &g.Bitboards

	playerBoards := &b.Players[player]
	enemyBoards := &b.Players[player.Other()]

	for _, side := range AllCastlingSides {
		if canCastle(g, player, side) {
			f(AllCastlingRequirements[player][side].Move)
		}
	}

	{
		pawns := playerBoards.Pieces[Pawn]
		pushDir := N
		if player == Black {
			pushDir = S
		}
		pushOffset := PawnPushOffsets[player]

		singles := Step(pawns, pushDir) & ^b.Occupied
		for temp := singles; temp != 0; {
			var index int
			index, temp = temp.NextIndexOfOne()
			generatePawnMoves(f, QuietMove, player, index-pushOffset, index)
		}

		doubles := Step(Step(pawns&StartingPawnRanks[player], pushDir) & ^b.Occupied, pushDir) & ^b.Occupied
		for temp := doubles; temp != 0; {
			var index int
			index, temp = temp.NextIndexOfOne()
			f(Move{MoveType: QuietMove, StartIndex: index - 2*pushOffset, EndIndex: index})
		}

		for _, captureDir := range PawnCaptureDirs[player] {
			captureOffset := Offsets[captureDir]
			captures := Step(pawns, captureDir) & enemyBoards.Occupied
			for temp := captures; temp != 0; {
				var index int
				index, temp = temp.NextIndexOfOne()
				generatePawnMoves(f, CaptureMove, player, index-captureOffset, index)
			}

			if g.EnPassantTarget.HasValue() {
				target := SingleBitboard(IndexFromFileRank(g.EnPassantTarget.Value()))
				if enPassant := Step(pawns, captureDir) & target & ^b.Occupied; enPassant != 0 {
					index := enPassant.FirstIndexOfOne()
					f(Move{MoveType: EnPassantMove, StartIndex: index - captureOffset, EndIndex: index})
				}
			}
		}
	}

	rookAttacks := func(index int) Bitboard { return RookAttacks(index, b.Occupied) }
	bishopAttacks := func(index int) Bitboard { return BishopAttacks(index, b.Occupied) }

	generateMovesFromAttacks(f, playerBoards.Pieces[Rook], b, playerBoards.Occupied, rookAttacks)
	generateMovesFromAttacks(f, playerBoards.Pieces[Bishop], b, playerBoards.Occupied, bishopAttacks)
	generateMovesFromAttacks(f, playerBoards.Pieces[Queen], b, playerBoards.Occupied, rookAttacks)
	generateMovesFromAttacks(f, playerBoards.Pieces[Queen], b, playerBoards.Occupied, bishopAttacks)

	generateMovesFromAttacks(f, playerBoards.Pieces[Knight], b, playerBoards.Occupied, func(index int) Bitboard {
		return KnightAttackMasks[index]
	})
	generateMovesFromAttacks(f, playerBoards.Pieces[King], b, playerBoards.Occupied, func(index int) Bitboard {
		return KingAttackMasks[index]
	})
}

// eachLegalMove plays each pseudo move, keeps the ones that don't leave the
// mover in check, and stops early when f returns false.
func eachLegalMove(g *GameState, f func(Move) bool) Error {
	pseudoMoves := _movesPool.Get()
	defer _movesPool.Release(pseudoMoves)

	generatePseudoMoves(g, func(move Move) {
		*pseudoMoves = append(*pseudoMoves, move)
	})

	player := g.Player
	update := BoardUpdate{}
	for _, move := range *pseudoMoves {
		err := g.PerformMove(move, &update)
		if !IsNil(err) {
			return err
		}

		legal := !kingIsInCheck(&g.Bitboards, player)

		err = g.UndoUpdate(&update)
		if !IsNil(err) {
			return err
		}

		if legal && !f(move) {
			return NilError
		}
	}
	return NilError
}
