package rules

import (
	. "github.com/cricklet/chessbot/internal/helpers"
)

// Perft counts the leaf nodes of the legal move tree to the given depth.
func (p *Position) Perft(depth int) (int, Error) {
	if depth < 0 {
		return 0, Errorf("perft depth %v is negative", depth)
	}
	if depth == 0 {
		return 1, NilError
	}

	moves, err := p.LegalMoves()
	if !IsNil(err) {
		return 0, err
	}
	if depth == 1 {
		return len(moves), NilError
	}

	total := 0
	for _, move := range moves {
		err = p.PerformMove(move)
		if !IsNil(err) {
			return 0, err
		}

		count, countErr := p.Perft(depth - 1)

		err = p.UndoMove()
		if !IsNil(err) || !IsNil(countErr) {
			return 0, Join(countErr, err)
		}
		total += count
	}
	return total, NilError
}

// Divide reports the perft count under each root move, keyed by the move's
// coordinate notation.
func (p *Position) Divide(depth int) (map[string]int, Error) {
	result := map[string]int{}
	if depth < 1 {
		return result, Errorf("divide depth %v must be at least 1", depth)
	}

	moves, err := p.LegalMoves()
	if !IsNil(err) {
		return result, err
	}
	for _, move := range moves {
		err = p.PerformMove(move)
		if !IsNil(err) {
			return result, err
		}
		count, countErr := p.Perft(depth - 1)
		err = p.UndoMove()
		if !IsNil(err) || !IsNil(countErr) {
			return result, Join(countErr, err)
		}
		result[move.String()] = count
	}
	return result, NilError
}
