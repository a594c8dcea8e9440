package rules

import (
	. "github.com/cricklet/chessbot/internal/bitboards"
	. "github.com/cricklet/chessbot/internal/game"
	. "github.com/cricklet/chessbot/internal/helpers"
)

// Position is a game state plus the stack of moves played on it. Moves are
// undone in reverse order.
type Position struct {
	game    *GameState
	updates []BoardUpdate
	moves   []Move
}

func NewPosition(fen string) (*Position, Error) {
	g, err := GamestateFromFenString(fen)
	if !IsNil(err) {
		return nil, err
	}
	return &Position{game: g}, NilError
}

func NewStartPosition() *Position {
	p, err := NewPosition(StartFen)
	if !IsNil(err) {
		panic(err)
	}
	return p
}

func (p *Position) Player() Player {
	return p.game.Player
}

func (p *Position) Fen() string {
	return FenStringForGame(p.game)
}

func (p *Position) Hash() uint64 {
	return p.game.Hash
}

func (p *Position) Board() BoardArray {
	return p.game.Board
}

func (p *Position) Bitboards() Bitboards {
	return p.game.Bitboards
}

func (p *Position) HalfMoveClock() int {
	return p.game.HalfMoveClock
}

func (p *Position) FullMoveClock() int {
	return p.game.FullMoveClock
}

// Moves played since the position was created.
func (p *Position) History() []Move {
	return append([]Move{}, p.moves...)
}

// PerformMove plays a move without checking legality. Moves should come
// from LegalMoves or MoveFromString.
func (p *Position) PerformMove(move Move) Error {
	p.updates = append(p.updates, BoardUpdate{})
	err := p.game.PerformMove(move, &p.updates[len(p.updates)-1])
	if !IsNil(err) {
		p.updates = p.updates[:len(p.updates)-1]
		return err
	}
	p.moves = append(p.moves, move)
	return NilError
}

func (p *Position) UndoMove() Error {
	if len(p.updates) == 0 {
		return Errorf("no moves to undo from %v", p.Fen())
	}
	err := p.game.UndoUpdate(&p.updates[len(p.updates)-1])
	if !IsNil(err) {
		return err
	}
	p.updates = p.updates[:len(p.updates)-1]
	p.moves = p.moves[:len(p.moves)-1]
	return NilError
}

// LegalMoves lists every legal move in generation order, with one entry per
// promotion piece.
func (p *Position) LegalMoves() ([]Move, Error) {
	result := []Move{}
	err := eachLegalMove(p.game, func(move Move) bool {
		result = append(result, move)
		return true
	})
	return result, err
}

func (p *Position) hasLegalMove() bool {
	found := false
	err := eachLegalMove(p.game, func(move Move) bool {
		found = true
		return false
	})
	if !IsNil(err) {
		panic(err)
	}
	return found
}

// MoveFromString finds the legal move written in coordinate notation. A
// promotion without a piece letter promotes to a queen.
func (p *Position) MoveFromString(s string) (Move, Error) {
	parsed, err := p.game.MoveFromString(s)
	if !IsNil(err) {
		return Move{}, err
	}

	legalMoves, err := p.LegalMoves()
	if !IsNil(err) {
		return Move{}, err
	}

	for _, move := range legalMoves {
		if move.StartIndex != parsed.StartIndex || move.EndIndex != parsed.EndIndex {
			continue
		}
		if move.PromotionPiece.IsEmpty() {
			if parsed.PromotionPiece.IsEmpty() {
				return move, NilError
			}
			continue
		}
		if move.PromotionPiece.Value() == parsed.PromotionPiece.ValueOr(Queen) {
			return move, NilError
		}
	}

	return Move{}, Errorf("%v is not legal in %v", s, p.Fen())
}
