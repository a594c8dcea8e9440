package helpers

import "strings"

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

func PlayerFromString(c string) (Player, Error) {
	switch strings.ToLower(c) {
	case "b", "black":
		return Black, NilError
	case "w", "white":
		return White, NilError
	default:
		return White, Errorf("invalid player %v", c)
	}
}

type Piece uint

const (
	XX Piece = iota
	WR
	WN
	WB
	WK
	WQ
	WP
	BR
	BN
	BB
	BK
	BQ
	BP
)

type PieceType uint

const (
	Rook PieceType = iota
	Knight
	Bishop
	King
	Queen
	Pawn
	InvalidPiece
)

var AllPieceTypes = [6]PieceType{Rook, Knight, Bishop, King, Queen, Pawn}

func (p PieceType) String() string {
	return [7]string{
		"r", "n", "b", "k", "q", "p", "?",
	}[p]
}

func (p PieceType) IsValid() bool {
	return p >= Rook && p <= Pawn
}

func PieceTypeFromString(s string) PieceType {
	switch s {
	case "r":
		return Rook
	case "n":
		return Knight
	case "b":
		return Bishop
	case "k":
		return King
	case "q":
		return Queen
	case "p":
		return Pawn
	default:
		return InvalidPiece
	}
}

var PieceTypeLookup [16]PieceType = func() [16]PieceType {
	result := [16]PieceType{}
	for i := range result {
		result[i] = InvalidPiece
	}
	result[WR] = Rook
	result[WN] = Knight
	result[WB] = Bishop
	result[WK] = King
	result[WQ] = Queen
	result[WP] = Pawn
	result[BR] = Rook
	result[BN] = Knight
	result[BB] = Bishop
	result[BK] = King
	result[BQ] = Queen
	result[BP] = Pawn
	return result
}()

func (p Piece) PieceType() PieceType {
	return PieceTypeLookup[p]
}

func (p Piece) Player() Player {
	if p < BR {
		return White
	}
	return Black
}

func (p Piece) IsWhite() bool {
	return p <= WP && p >= WR
}

func (p Piece) IsEmpty() bool {
	return p == XX
}

var PieceForPlayer [2][8]Piece = func() [2][8]Piece {
	result := [2][8]Piece{}

	result[White][Rook] = WR
	result[White][Knight] = WN
	result[White][Bishop] = WB
	result[White][King] = WK
	result[White][Queen] = WQ
	result[White][Pawn] = WP

	result[Black][Rook] = BR
	result[Black][Knight] = BN
	result[Black][Bishop] = BB
	result[Black][King] = BK
	result[Black][Queen] = BQ
	result[Black][Pawn] = BP

	return result
}()

func PieceFromRune(c rune) (Piece, Error) {
	switch c {
	case 'R':
		return WR, NilError
	case 'N':
		return WN, NilError
	case 'B':
		return WB, NilError
	case 'K':
		return WK, NilError
	case 'Q':
		return WQ, NilError
	case 'P':
		return WP, NilError
	case 'r':
		return BR, NilError
	case 'n':
		return BN, NilError
	case 'b':
		return BB, NilError
	case 'k':
		return BK, NilError
	case 'q':
		return BQ, NilError
	case 'p':
		return BP, NilError
	default:
		return XX, Errorf("invalid piece %v", string(c))
	}
}

func (p Piece) String() string {
	return []string{
		" ",
		"R",
		"N",
		"B",
		"K",
		"Q",
		"P",
		"r",
		"n",
		"b",
		"k",
		"q",
		"p",
	}[p]
}

func (p PieceType) Unicode() string {
	return []string{
		"♜",
		"♞",
		"♝",
		"♚",
		"♛",
		"♟",
		" ",
	}[p]
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}

func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %v", string(c))
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %v", string(c))
	}
	return File(file), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Join(Errorf("invalid location %v", s), fileErr, rankErr)
	}

	return FileRank{file, rank}, NilError
}

func IndexFromFileRank(location FileRank) int {
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

func StringFromBoardIndex(index int) string {
	return FileRankFromIndex(index).String()
}

func BoardIndexFromString(s string) int {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return IndexFromFileRank(location)
}

// Index 0 is a1, index 63 is h8.
type BoardArray [64]Piece

func PieceAtFileRank(board BoardArray, location FileRank) Piece {
	return board[IndexFromFileRank(location)]
}

func (b BoardArray) String() string {
	result := ""
	for rank := 7; rank >= 0; rank-- {
		row := b[rank*8 : (rank+1)*8]
		for _, p := range row {
			result += p.String()
		}
		if rank != 0 {
			result += "\n"
		}
	}
	return result
}

const _hintForeground = "\033[38;5;244m"
const _whiteForeground = "\033[38;5;255m"
const _blackForeground = "\033[38;5;232m"
const _whiteBackground = "\033[48;5;244m"
const _blackBackground = "\033[48;5;243m"
const _resetColors = "\x1b[0m"

func (b BoardArray) Unicode() string {
	result := "  "
	for file := 0; file < 8; file++ {
		result += _hintForeground + " " + File(file).String() + " " + _resetColors
	}
	result += "\n"

	for rank := 7; rank >= 0; rank-- {
		result += _hintForeground + Rank(rank).String() + " " + _resetColors
		for file := 0; file < 8; file++ {
			squareColor := (file%2 + rank%2) % 2
			piece := PieceAtFileRank(b, FileRank{File(file), Rank(rank)})

			if squareColor == int(White) {
				result += _whiteBackground
			} else {
				result += _blackBackground
			}
			if piece.IsWhite() {
				result += _whiteForeground
			} else {
				result += _blackForeground
			}

			result += " " + piece.PieceType().Unicode() + " "
			result += _resetColors
		}
		result += "\n"
	}

	return result
}

type CastlingSide int

const (
	Kingside CastlingSide = iota
	Queenside
)

var AllCastlingSides = [2]CastlingSide{Kingside, Queenside}

func (s CastlingSide) String() string {
	if s == Kingside {
		return "kingside"
	}
	return "queenside"
}

type MoveType int

const (
	QuietMove MoveType = iota
	CaptureMove
	CastlingMove
	EnPassantMove
)

func (t MoveType) Captures() bool {
	return t == CaptureMove || t == EnPassantMove
}

func (t MoveType) String() string {
	switch t {
	case QuietMove:
		return "QuietMove"
	case CaptureMove:
		return "CaptureMove"
	case CastlingMove:
		return "CastlingMove"
	case EnPassantMove:
		return "EnPassantMove"
	}
	return "Invalid"
}

type Move struct {
	MoveType       MoveType
	StartIndex     int
	EndIndex       int
	PromotionPiece Optional[PieceType]
}

func MoveFromString(s string, m MoveType) Move {
	first := s[0:2]
	second := s[2:4]
	return Move{m, BoardIndexFromString(first), BoardIndexFromString(second), Empty[PieceType]()}
}

func (m Move) String() string {
	if m.PromotionPiece.HasValue() {
		return StringFromBoardIndex(m.StartIndex) + StringFromBoardIndex(m.EndIndex) + m.PromotionPiece.Value().String()
	}
	return StringFromBoardIndex(m.StartIndex) + StringFromBoardIndex(m.EndIndex)
}

func (m Move) DebugString() string {
	if m.PromotionPiece.HasValue() {
		return m.String()
	}
	if m.MoveType.Captures() {
		return StringFromBoardIndex(m.StartIndex) + "x" + StringFromBoardIndex(m.EndIndex)
	}
	return m.String()
}

// Every square a move touches is recorded along with the state it replaced,
// so the move can be undone exactly.
type BoardUpdate struct {
	Indices [4]int
	Pieces  [4]Piece
	Num     int

	PrevPieces                       [4]Piece
	PrevPlayer                       Player
	PrevPlayerAndCastlingSideAllowed [2][2]bool
	PrevEnPassantTarget              Optional[FileRank]
	PrevHalfMoveClock                int
	PrevFullMoveClock                int
	PrevHash                         uint64
}

func (u *BoardUpdate) Add(prevPiece Piece, index int, piece Piece) {
	u.Indices[u.Num] = index
	u.Pieces[u.Num] = piece
	u.PrevPieces[u.Num] = prevPiece
	u.Num++
}
