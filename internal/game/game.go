package game

import (
	. "github.com/cricklet/chessbot/internal/bitboards"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/zobrist"
)

// GameState keeps the mailbox board and the bitboards in sync. Every move
// is recorded in a BoardUpdate so it can be undone exactly.
type GameState struct {
	Board                        BoardArray
	Bitboards                    Bitboards
	Player                       Player
	PlayerAndCastlingSideAllowed [2][2]bool
	EnPassantTarget              Optional[FileRank]
	HalfMoveClock                int
	FullMoveClock                int

	Hash        uint64
	HashHistory *zobrist.HashHistory
}

func NewGameState(
	board BoardArray,
	player Player,
	castlingRights [2][2]bool,
	enPassantTarget Optional[FileRank],
	halfMoveClock int,
	fullMoveClock int,
) (*GameState, Error) {
	bitboards, err := BitboardsFromBoardArray(board)
	if !IsNil(err) {
		return nil, err
	}

	g := &GameState{
		Board:                        board,
		Bitboards:                    bitboards,
		Player:                       player,
		PlayerAndCastlingSideAllowed: castlingRights,
		EnPassantTarget:              enPassantTarget,
		HalfMoveClock:                halfMoveClock,
		FullMoveClock:                fullMoveClock,
		HashHistory:                  zobrist.NewHashHistory(),
	}
	g.Hash = zobrist.HashForBoardPosition(&g.Board, g.Player, &g.PlayerAndCastlingSideAllowed, g.EnPassantTarget)
	g.HashHistory.Push(g.Hash)
	return g, NilError
}

func (g *GameState) Enemy() Player {
	return g.Player.Other()
}

func (g *GameState) CanCastle(player Player, side CastlingSide) bool {
	return g.PlayerAndCastlingSideAllowed[player][side]
}

func isPawnCapture(startPieceType PieceType, startIndex int, endIndex int) bool {
	if startPieceType != Pawn {
		return false
	}

	start := FileRankFromIndex(startIndex)
	end := FileRankFromIndex(endIndex)

	return AbsDiff(int(start.File), int(end.File)) == 1 && AbsDiff(int(start.Rank), int(end.Rank)) == 1
}

// MoveFromString reads coordinate notation ("e2e4", "e7e8n") and infers the
// move type from the board. It does not check legality.
func (g *GameState) MoveFromString(s string) (Move, Error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, Errorf("invalid move %q", s)
	}

	startLocation, startErr := FileRankFromString(s[0:2])
	endLocation, endErr := FileRankFromString(s[2:4])
	if !IsNil(startErr) || !IsNil(endErr) {
		return Move{}, Join(Errorf("invalid move %q", s), startErr, endErr)
	}
	start := IndexFromFileRank(startLocation)
	end := IndexFromFileRank(endLocation)

	startPieceType := g.Board[start].PieceType()
	if !startPieceType.IsValid() {
		return Move{}, Errorf("no piece at %v for move %q", s[0:2], s)
	}

	promotion := Empty[PieceType]()
	if len(s) == 5 {
		pieceType := PieceTypeFromString(s[4:5])
		if pieceType != Queen && pieceType != Rook && pieceType != Bishop && pieceType != Knight {
			return Move{}, Errorf("invalid promotion in move %q", s)
		}
		promotion = Some(pieceType)
	}

	var moveType MoveType
	if g.Board[end] != XX {
		moveType = CaptureMove
	} else if startPieceType == King && AbsDiff(start, end) == 2 {
		moveType = CastlingMove
	} else if isPawnCapture(startPieceType, start, end) {
		moveType = EnPassantMove
	} else {
		moveType = QuietMove
	}

	return Move{MoveType: moveType, StartIndex: start, EndIndex: end, PromotionPiece: promotion}, NilError
}

func isPawnSkip(startPiece Piece, move Move) bool {
	return move.MoveType == QuietMove &&
		startPiece.PieceType() == Pawn &&
		AbsDiff(move.StartIndex, move.EndIndex) == OffsetN+OffsetN
}

func EnPassantTarget(move Move) int {
	return (move.StartIndex + move.EndIndex) / 2
}

// The piece that lands on the end square, promoted if a pawn reaches the
// last rank.
func (g *GameState) landingPiece(move Move, startPiece Piece) Piece {
	if startPiece.PieceType() != Pawn || !IsPromotionIndex(move.EndIndex, g.Player) {
		return startPiece
	}
	return PieceForPlayer[g.Player][move.PromotionPiece.ValueOr(Queen)]
}

func (g *GameState) setupBoardUpdate(move Move, startPiece Piece, output *BoardUpdate) Error {
	switch move.MoveType {
	case QuietMove, CaptureMove:
		output.Add(startPiece, move.StartIndex, XX)
		output.Add(g.Board[move.EndIndex], move.EndIndex, g.landingPiece(move, startPiece))
	case EnPassantMove:
		captureIndex := move.EndIndex - PawnPushOffsets[g.Player]
		if g.Board[captureIndex] != PieceForPlayer[g.Enemy()][Pawn] {
			return Errorf("no pawn to capture en passant for %v", move)
		}
		output.Add(g.Board[captureIndex], captureIndex, XX)
		output.Add(startPiece, move.StartIndex, XX)
		output.Add(g.Board[move.EndIndex], move.EndIndex, startPiece)
	case CastlingMove:
		rookStartIndex, rookEndIndex, err := RookMoveForCastle(move.StartIndex, move.EndIndex)
		if !IsNil(err) {
			return err
		}
		rookPiece := g.Board[rookStartIndex]
		if rookPiece != PieceForPlayer[g.Player][Rook] {
			return Errorf("no rook to castle with for %v", move)
		}

		output.Add(startPiece, move.StartIndex, XX)
		output.Add(rookPiece, rookStartIndex, XX)
		output.Add(g.Board[move.EndIndex], move.EndIndex, startPiece)
		output.Add(g.Board[rookEndIndex], rookEndIndex, rookPiece)
	default:
		return Errorf("unknown move type %v", move.MoveType)
	}
	return NilError
}

// PerformMove plays a pseudo-legal move for the side to move. The update is
// overwritten and must be passed back to UndoUpdate.
func (g *GameState) PerformMove(move Move, update *BoardUpdate) Error {
	startPiece := g.Board[move.StartIndex]
	if startPiece == XX || startPiece.Player() != g.Player {
		return Errorf("%v has no %v piece on %v", move, g.Player, StringFromBoardIndex(move.StartIndex))
	}

	*update = BoardUpdate{
		PrevPlayer:                       g.Player,
		PrevPlayerAndCastlingSideAllowed: g.PlayerAndCastlingSideAllowed,
		PrevEnPassantTarget:              g.EnPassantTarget,
		PrevHalfMoveClock:                g.HalfMoveClock,
		PrevFullMoveClock:                g.FullMoveClock,
		PrevHash:                         g.Hash,
	}

	err := g.setupBoardUpdate(move, startPiece, update)
	if !IsNil(err) {
		return err
	}

	for i := 0; i < update.Num; i++ {
		index := update.Indices[i]
		if prev := update.PrevPieces[i]; prev != XX {
			err = g.Bitboards.ClearSquare(index, prev)
			if !IsNil(err) {
				return err
			}
		}
		if next := update.Pieces[i]; next != XX {
			g.Bitboards.SetSquare(index, next)
		}
		g.Board[index] = update.Pieces[i]
	}

	g.EnPassantTarget = Empty[FileRank]()
	if isPawnSkip(startPiece, move) {
		g.EnPassantTarget = Some(FileRankFromIndex(EnPassantTarget(move)))
	}

	if startPiece.PieceType() == Pawn || move.MoveType.Captures() {
		g.HalfMoveClock = 0
	} else {
		g.HalfMoveClock++
	}
	if g.Player == Black {
		g.FullMoveClock++
	}
	g.Player = g.Player.Other()

	// Moving from or onto a king or rook home square forfeits those rights.
	moveBitboard := SingleBitboard(move.StartIndex) | SingleBitboard(move.EndIndex)
	for player, forPlayer := range AllCastlingRequirements {
		for side, requirements := range forPlayer {
			if moveBitboard&requirements.Pieces != 0 {
				g.PlayerAndCastlingSideAllowed[player][side] = false
			}
		}
	}

	g.Hash = zobrist.UpdateHash(update, &g.PlayerAndCastlingSideAllowed, g.EnPassantTarget)
	g.HashHistory.Push(g.Hash)

	return NilError
}

func (g *GameState) UndoUpdate(update *BoardUpdate) Error {
	for i := update.Num - 1; i >= 0; i-- {
		index := update.Indices[i]
		if next := update.Pieces[i]; next != XX {
			err := g.Bitboards.ClearSquare(index, next)
			if !IsNil(err) {
				return err
			}
		}
		if prev := update.PrevPieces[i]; prev != XX {
			g.Bitboards.SetSquare(index, prev)
		}
		g.Board[index] = update.PrevPieces[i]
	}

	g.Player = update.PrevPlayer
	g.PlayerAndCastlingSideAllowed = update.PrevPlayerAndCastlingSideAllowed
	g.EnPassantTarget = update.PrevEnPassantTarget
	g.FullMoveClock = update.PrevFullMoveClock
	g.HalfMoveClock = update.PrevHalfMoveClock
	g.Hash = update.PrevHash
	g.HashHistory.Pop()

	return NilError
}
