package zobrist

import (
	"golang.org/x/exp/rand"

	. "github.com/cricklet/chessbot/internal/helpers"
)

// Empty squares keep a zero key so they never change the hash.
var ZobristPieceAtSquare [13][64]uint64
var ZobristSideToMove uint64
var ZobristCastlingRights [2][2]uint64
var ZobristEnPassant [8]uint64

func init() {
	r := rand.New(rand.NewSource(32879419))
	ZobristSideToMove = r.Uint64()
	for _, player := range []Player{White, Black} {
		for _, side := range AllCastlingSides {
			ZobristCastlingRights[player][side] = r.Uint64()
		}
	}
	for file := range ZobristEnPassant {
		ZobristEnPassant[file] = r.Uint64()
	}
	for piece := WR; piece <= BP; piece++ {
		for index := 0; index < 64; index++ {
			ZobristPieceAtSquare[piece][index] = r.Uint64()
		}
	}
}

func HashForBoardPosition(
	board *BoardArray,
	player Player,
	castlingRights *[2][2]bool,
	enPassantTarget Optional[FileRank],
) uint64 {
	hash := uint64(0)
	for index, piece := range board {
		hash ^= ZobristPieceAtSquare[piece][index]
	}
	if player == Black {
		hash ^= ZobristSideToMove
	}
	for player := range castlingRights {
		for side := range castlingRights[player] {
			if castlingRights[player][side] {
				hash ^= ZobristCastlingRights[player][side]
			}
		}
	}
	if enPassantTarget.HasValue() {
		hash ^= ZobristEnPassant[enPassantTarget.Value().File]
	}
	return hash
}

// UpdateHash applies a move recorded in update to the previous hash. The
// update's Prev fields hold the state before the move.
func UpdateHash(update *BoardUpdate, newCastlingRights *[2][2]bool, newEnPassant Optional[FileRank]) uint64 {
	hash := update.PrevHash
	for i := 0; i < update.Num; i++ {
		index := update.Indices[i]
		hash ^= ZobristPieceAtSquare[update.PrevPieces[i]][index]
		hash ^= ZobristPieceAtSquare[update.Pieces[i]][index]
	}

	hash ^= ZobristSideToMove

	for player := range newCastlingRights {
		for side := range newCastlingRights[player] {
			if newCastlingRights[player][side] != update.PrevPlayerAndCastlingSideAllowed[player][side] {
				hash ^= ZobristCastlingRights[player][side]
			}
		}
	}

	if newEnPassant != update.PrevEnPassantTarget {
		if newEnPassant.HasValue() {
			hash ^= ZobristEnPassant[newEnPassant.Value().File]
		}
		if update.PrevEnPassantTarget.HasValue() {
			hash ^= ZobristEnPassant[update.PrevEnPassantTarget.Value().File]
		}
	}

	return hash
}
