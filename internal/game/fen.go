package game

import (
	"fmt"
	"strings"

	. "github.com/cricklet/chessbot/internal/helpers"
)

const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func FenStringForPlayer(p Player) string {
	if p == White {
		return "w"
	}
	return "b"
}

var fenStringForCastling = [2][2]string{
	{"K", "Q"},
	{"k", "q"},
}

func fenStringForCastlingAllowed(castlingRights [2][2]bool) string {
	s := ""
	for player := range castlingRights {
		for side := range castlingRights[player] {
			if castlingRights[player][side] {
				s += fenStringForCastling[player][side]
			}
		}
	}
	if len(s) == 0 {
		return "-"
	}
	return s
}

func fenStringForEnPassant(enPassant Optional[FileRank]) string {
	if enPassant.IsEmpty() {
		return "-"
	}
	return enPassant.Value().String()
}

func FenStringForBoard(b BoardArray) string {
	s := ""
	for rank := 7; rank >= 0; rank-- {
		numSpaces := 0
		for file := 0; file < 8; file++ {
			piece := b[IndexFromFileRank(FileRank{File: File(file), Rank: Rank(rank)})]
			if piece == XX {
				numSpaces++
				continue
			}
			if numSpaces > 0 {
				s += fmt.Sprint(numSpaces)
				numSpaces = 0
			}
			s += piece.String()
		}
		if numSpaces > 0 {
			s += fmt.Sprint(numSpaces)
		}
		if rank != 0 {
			s += "/"
		}
	}
	return s
}

func FenStringForGame(g *GameState) string {
	return fmt.Sprintf("%v %v %v %v %v %v",
		FenStringForBoard(g.Board),
		FenStringForPlayer(g.Player),
		fenStringForCastlingAllowed(g.PlayerAndCastlingSideAllowed),
		fenStringForEnPassant(g.EnPassantTarget),
		g.HalfMoveClock,
		g.FullMoveClock)
}

func boardFromFenString(boardStr string) (BoardArray, Error) {
	var board BoardArray

	ranks := strings.Split(boardStr, "/")
	if len(ranks) != 8 {
		return board, Errorf("expected 8 ranks in '%v'", boardStr)
	}

	for i, rankStr := range ranks {
		rank := Rank(7 - i)
		file := 0
		for _, c := range rankStr {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece, err := PieceFromRune(c)
			if !IsNil(err) {
				return board, Join(Errorf("unknown character '%v' in '%v'", string(c), boardStr), err)
			}
			if file >= 8 {
				return board, Errorf("rank %v is too long in '%v'", rank, boardStr)
			}
			board[IndexFromFileRank(FileRank{File: File(file), Rank: rank})] = piece
			file++
		}
		if file != 8 {
			return board, Errorf("rank %v has %v squares in '%v'", rank, file, boardStr)
		}
	}

	return board, NilError
}

// GamestateFromFenString accepts the full six fields, or just the first four
// or two with the rest defaulted.
func GamestateFromFenString(s string) (*GameState, Error) {
	fields := strings.Fields(s)
	if len(fields) != 6 && len(fields) != 4 && len(fields) != 2 {
		return nil, Errorf("wrong num %v of fields in fen '%v'", len(fields), s)
	}

	board, err := boardFromFenString(fields[0])
	if !IsNil(err) {
		return nil, err
	}

	player, err := PlayerFromString(fields[1])
	if !IsNil(err) {
		return nil, Join(Errorf("invalid player in '%v'", s), err)
	}

	castlingRightsString, enPassantTargetString := "-", "-"
	if len(fields) >= 4 {
		castlingRightsString, enPassantTargetString = fields[2], fields[3]
	}

	halfMoveClockString, fullMoveClockString := "0", "1"
	if len(fields) == 6 {
		halfMoveClockString, fullMoveClockString = fields[4], fields[5]
	}

	castlingRights := [2][2]bool{}
	for _, c := range castlingRightsString {
		switch c {
		case '-':
		case 'K':
			castlingRights[White][Kingside] = true
		case 'Q':
			castlingRights[White][Queenside] = true
		case 'k':
			castlingRights[Black][Kingside] = true
		case 'q':
			castlingRights[Black][Queenside] = true
		default:
			return nil, Errorf("invalid castling rights '%v' in '%v'", castlingRightsString, s)
		}
	}

	enPassantTarget := Empty[FileRank]()
	if enPassantTargetString != "-" {
		target, err := FileRankFromString(enPassantTargetString)
		if !IsNil(err) {
			return nil, Join(Errorf("invalid en-passant target in '%v'", s), err)
		}
		enPassantTarget = Some(target)
	}

	halfMoveClock, err := ParseInt(halfMoveClockString)
	if !IsNil(err) {
		return nil, Join(Errorf("invalid half move clock in '%v'", s), err)
	}
	fullMoveClock, err := ParseInt(fullMoveClockString)
	if !IsNil(err) {
		return nil, Join(Errorf("invalid full move clock in '%v'", s), err)
	}

	return NewGameState(board, player, castlingRights, enPassantTarget, halfMoveClock, fullMoveClock)
}
