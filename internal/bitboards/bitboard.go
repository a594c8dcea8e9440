package bitboards

import (
	"fmt"
	"math/bits"
	"strings"

	. "github.com/cricklet/chessbot/internal/helpers"
)

// Bit i is set when square i (a1 = 0, h8 = 63) is occupied.
type Bitboard uint64

type PlayerBitboards struct {
	Occupied Bitboard
	Pieces   [6]Bitboard // indexed via PieceType
}

type Bitboards struct {
	Occupied Bitboard
	Players  [2]PlayerBitboards
}

func BitboardsFromBoardArray(board BoardArray) (Bitboards, Error) {
	result := Bitboards{}
	for index, piece := range board {
		if piece == XX {
			continue
		}
		if !piece.PieceType().IsValid() {
			return result, Errorf("invalid piece %v at %v", piece, StringFromBoardIndex(index))
		}
		result.SetSquare(index, piece)
	}
	return result, NilError
}

func (b *Bitboards) ClearSquare(index int, piece Piece) Error {
	pieceType := piece.PieceType()
	if !pieceType.IsValid() {
		return Errorf("can't clear %v with invalid piece %q", StringFromBoardIndex(index), piece.String())
	}
	player := piece.Player()
	zeroBitboard := ^SingleBitboard(index)

	b.Occupied &= zeroBitboard
	b.Players[player].Occupied &= zeroBitboard
	b.Players[player].Pieces[pieceType] &= zeroBitboard

	return NilError
}

func (b *Bitboards) SetSquare(index int, piece Piece) {
	player := piece.Player()
	pieceType := piece.PieceType()
	oneBitboard := SingleBitboard(index)

	b.Occupied |= oneBitboard
	b.Players[player].Occupied |= oneBitboard
	b.Players[player].Pieces[pieceType] |= oneBitboard
}

func (b Bitboard) LeastSignificantOne() Bitboard {
	return b & -b
}

func (b Bitboard) FirstIndexOfOne() int {
	return bits.TrailingZeros64(uint64(b))
}

// NextIndexOfOne pops the lowest set bit.
func (b Bitboard) NextIndexOfOne() (int, Bitboard) {
	index := bits.TrailingZeros64(uint64(b))
	return index, b ^ b.LeastSignificantOne()
}

func (b Bitboard) EachIndexOfOne(callback func(int)) {
	for temp := b; temp != 0; {
		var index int
		index, temp = temp.NextIndexOfOne()
		callback(index)
	}
}

func (b Bitboard) IsSet(index int) bool {
	return b&SingleBitboard(index) != 0
}

func OnesCount(b Bitboard) int {
	return bits.OnesCount64(uint64(b))
}

type Dir int

const (
	N Dir = iota
	S
	E
	W

	NE
	NW
	SE
	SW

	NNE
	NNW
	SSE
	SSW
	ENE
	ESE
	WNW
	WSW

	NumDirs
)

var KnightDirs = []Dir{NNE, NNW, SSE, SSW, ENE, ESE, WNW, WSW}
var RookDirs = []Dir{N, S, E, W}
var BishopDirs = []Dir{NE, NW, SE, SW}
var KingDirs = []Dir{N, S, E, W, NE, NW, SE, SW}

const (
	OffsetN int = 8
	OffsetS int = -8
	OffsetE int = 1
	OffsetW int = -1
)

var Offsets = [NumDirs]int{
	OffsetN,
	OffsetS,
	OffsetE,
	OffsetW,

	OffsetN + OffsetE,
	OffsetN + OffsetW,
	OffsetS + OffsetE,
	OffsetS + OffsetW,

	OffsetN + OffsetN + OffsetE,
	OffsetN + OffsetN + OffsetW,
	OffsetS + OffsetS + OffsetE,
	OffsetS + OffsetS + OffsetW,
	OffsetE + OffsetN + OffsetE,
	OffsetE + OffsetS + OffsetE,
	OffsetW + OffsetN + OffsetW,
	OffsetW + OffsetS + OffsetW,
}

var PawnPushOffsets = [2]int{OffsetN, OffsetS}

var PawnCaptureDirs = [2][2]Dir{
	{NE, NW}, // white
	{SE, SW}, // black
}

var AllZeros Bitboard = Bitboard(0)
var AllOnes Bitboard = ^AllZeros

func RankBitboard(rank Rank) Bitboard {
	return Bitboard(0xff) << (8 * uint(rank))
}

func FileBitboard(file File) Bitboard {
	return Bitboard(0x0101010101010101) << uint(file)
}

var (
	// Masks remove pieces that would leave the board when stepping in a direction.
	MaskN = ^RankBitboard(7)
	MaskS = ^RankBitboard(0)
	MaskE = ^FileBitboard(7)
	MaskW = ^FileBitboard(0)

	MaskNN = ^RankBitboard(6)
	MaskSS = ^RankBitboard(1)
	MaskEE = ^FileBitboard(6)
	MaskWW = ^FileBitboard(1)
)

var PreMoveMasks = [NumDirs]Bitboard{
	MaskN,
	MaskS,
	MaskE,
	MaskW,

	MaskN & MaskE,
	MaskN & MaskW,
	MaskS & MaskE,
	MaskS & MaskW,

	MaskNN & MaskN & MaskE,
	MaskNN & MaskN & MaskW,
	MaskSS & MaskS & MaskE,
	MaskSS & MaskS & MaskW,
	MaskEE & MaskN & MaskE,
	MaskEE & MaskS & MaskE,
	MaskWW & MaskN & MaskW,
	MaskWW & MaskS & MaskW,
}

var StartingPawnRanks = [2]Bitboard{RankBitboard(1), RankBitboard(6)}

var PromotionRanks = [2]Bitboard{RankBitboard(7), RankBitboard(0)}

func IsPromotionIndex(index int, player Player) bool {
	return PromotionRanks[player].IsSet(index)
}

// Step moves every piece on b one step in dir, dropping those that would
// fall off the board.
func Step(b Bitboard, dir Dir) Bitboard {
	return RotateTowardsIndex64(b&PreMoveMasks[dir], Offsets[dir])
}

func attackMasksFromDirs(dirs []Dir) [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		for _, dir := range dirs {
			result[i] |= Step(SingleBitboard(i), dir)
		}
	}
	return result
}

var KnightAttackMasks = attackMasksFromDirs(KnightDirs)
var KingAttackMasks = attackMasksFromDirs(KingDirs)

// PawnAttackMasks[player][i] are the squares a pawn of player on i attacks.
var PawnAttackMasks = [2][64]Bitboard{
	attackMasksFromDirs(PawnCaptureDirs[White][:]),
	attackMasksFromDirs(PawnCaptureDirs[Black][:]),
}

var (
	A1 = BoardIndexFromString("a1")
	B1 = BoardIndexFromString("b1")
	C1 = BoardIndexFromString("c1")
	D1 = BoardIndexFromString("d1")
	E1 = BoardIndexFromString("e1")
	F1 = BoardIndexFromString("f1")
	G1 = BoardIndexFromString("g1")
	H1 = BoardIndexFromString("h1")
	A8 = BoardIndexFromString("a8")
	B8 = BoardIndexFromString("b8")
	C8 = BoardIndexFromString("c8")
	D8 = BoardIndexFromString("d8")
	E8 = BoardIndexFromString("e8")
	F8 = BoardIndexFromString("f8")
	G8 = BoardIndexFromString("g8")
	H8 = BoardIndexFromString("h8")
)

// The king's starting square for each player.
var KingHomeSquares = [2]int{E1, E8}

var CenterSquares = BitboardWithAllLocationsSet([]string{"d4", "e4", "d5", "e5"})

// a1 is dark, so light squares have an odd file + rank.
var LightSquares = func() Bitboard {
	result := Bitboard(0)
	for i := 0; i < 64; i++ {
		location := FileRankFromIndex(i)
		if (int(location.File)+int(location.Rank))%2 == 1 {
			result |= SingleBitboard(i)
		}
	}
	return result
}()

type CastlingRequirements struct {
	Empty Bitboard
	Safe  []int
	Move  Move
	// King and rook must both be in place.
	Pieces    Bitboard
	RookStart int
	RookEnd   int
}

func castlingRequirements(king string, rook string, empty []string, safe []string, move string, rookEnd string) CastlingRequirements {
	return CastlingRequirements{
		Empty:     BitboardWithAllLocationsSet(empty),
		Safe:      MapSlice(safe, BoardIndexFromString),
		Move:      MoveFromString(move, CastlingMove),
		Pieces:    BitboardWithAllLocationsSet([]string{king, rook}),
		RookStart: BoardIndexFromString(rook),
		RookEnd:   BoardIndexFromString(rookEnd),
	}
}

var AllCastlingRequirements = func() [2][2]CastlingRequirements {
	result := [2][2]CastlingRequirements{}
	result[White][Kingside] = castlingRequirements("e1", "h1", []string{"f1", "g1"}, []string{"e1", "f1", "g1"}, "e1g1", "f1")
	result[White][Queenside] = castlingRequirements("e1", "a1", []string{"b1", "c1", "d1"}, []string{"e1", "d1", "c1"}, "e1c1", "d1")
	result[Black][Kingside] = castlingRequirements("e8", "h8", []string{"f8", "g8"}, []string{"e8", "f8", "g8"}, "e8g8", "f8")
	result[Black][Queenside] = castlingRequirements("e8", "a8", []string{"b8", "c8", "d8"}, []string{"e8", "d8", "c8"}, "e8c8", "d8")
	return result
}()

func RookMoveForCastle(startIndex int, endIndex int) (int, int, Error) {
	for _, forPlayer := range AllCastlingRequirements {
		for _, requirements := range forPlayer {
			if requirements.Move.StartIndex == startIndex && requirements.Move.EndIndex == endIndex {
				return requirements.RookStart, requirements.RookEnd, NilError
			}
		}
	}
	return 0, 0, Errorf("unknown castling move %v%v", StringFromBoardIndex(startIndex), StringFromBoardIndex(endIndex))
}

var SingleBitboards [64]Bitboard = func() [64]Bitboard {
	result := [64]Bitboard{}
	for i := 0; i < 64; i++ {
		result[i] = Bitboard(1) << i
	}
	return result
}()

func SingleBitboard(index int) Bitboard {
	return SingleBitboards[index]
}

func BitboardWithAllLocationsSet(locations []string) Bitboard {
	return ReduceSlice(
		MapSlice(locations, BoardIndexFromString),
		0,
		func(result Bitboard, index int) Bitboard {
			return result | SingleBitboard(index)
		},
	)
}

func RotateTowardsIndex64(b Bitboard, n int) Bitboard {
	return Bitboard(bits.RotateLeft64(uint64(b), n))
}

func (b Bitboard) String() string {
	ranks := [8]string{}
	for rank := 0; rank < 8; rank++ {
		row := uint8(b >> (8 * rank))
		// mirror the bits so a-file prints on the left
		ranks[7-rank] = fmt.Sprintf("%08b", ReverseBits(row))
	}
	return strings.Join(ranks[:], "\n")
}

// BitboardFromStrings reads rank 8 first, a-file on the left.
func BitboardFromStrings(rows [8]string) Bitboard {
	b := Bitboard(0)
	for inverseRank, line := range rows {
		for file, c := range line {
			if c == '1' {
				b |= SingleBitboard(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(7 - inverseRank)}))
			}
		}
	}
	return b
}
