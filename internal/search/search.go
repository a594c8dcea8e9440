package search

import (
	"github.com/dustin/go-humanize"

	"github.com/cricklet/chessbot/internal/evaluation"
	. "github.com/cricklet/chessbot/internal/helpers"
)

// Position is the mutable game the searcher walks. PerformMove and UndoMove
// must nest like a stack.
type Position interface {
	evaluation.Board

	Player() Player
	LegalMoves() ([]Move, Error)
	PerformMove(move Move) Error
	UndoMove() Error
	IsGameOver() bool
}

type SearchStats struct {
	Nodes       int
	Evaluations int
	Cutoffs     int
}

type Searcher struct {
	Logger Logger

	Position    Position
	Perspective Player
	Evaluator   evaluation.Evaluator

	DebugTree *DebugSearchTree
	Stats     SearchStats

	pruning bool
}

type SearchOption func(*Searcher)

func WithLogger(logger Logger) SearchOption {
	return func(s *Searcher) {
		s.Logger = logger
	}
}

func WithEvaluator(evaluator evaluation.Evaluator) SearchOption {
	return func(s *Searcher) {
		s.Evaluator = evaluator
	}
}

func WithDebugSearchTree(tree *DebugSearchTree) SearchOption {
	return func(s *Searcher) {
		s.DebugTree = tree
	}
}

// WithoutPruning makes BestMove run the full minimax tree.
func WithoutPruning() SearchOption {
	return func(s *Searcher) {
		s.pruning = false
	}
}

func NewSearcher(position Position, perspective Player, options ...SearchOption) *Searcher {
	s := &Searcher{
		Logger:      DefaultLogger,
		Position:    position,
		Perspective: perspective,
		Evaluator:   evaluation.Evaluate,
		pruning:     true,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *Searcher) evaluate() evaluation.Score {
	s.Stats.Evaluations++
	return s.Evaluator(s.Position, s.Perspective)
}

func (s *Searcher) searchMove(
	move Move, depth int, alpha evaluation.Score, beta evaluation.Score, isMaximizing bool, pruning bool,
) (returnScore evaluation.Score, returnError Error) {
	if s.DebugTree != nil {
		s.DebugTree.MovePush(move.String(), isMaximizing, alpha, beta)
		defer func() {
			s.DebugTree.MovePop(move.String(), isMaximizing, alpha, beta, returnScore)
		}()
	}

	err := s.Position.PerformMove(move)
	if !IsNil(err) {
		return 0, err
	}
	defer func() {
		returnError = Join(returnError, s.Position.UndoMove())
	}()

	returnScore, _, returnError = s.search(depth-1, alpha, beta, !isMaximizing, pruning)
	return returnScore, returnError
}

func (s *Searcher) search(
	depth int, alpha evaluation.Score, beta evaluation.Score, isMaximizing bool, pruning bool,
) (evaluation.Score, Optional[Move], Error) {
	if depth < 0 {
		return 0, Empty[Move](), Errorf("search depth must not be negative, got %v", depth)
	}

	s.Stats.Nodes++

	if depth == 0 || s.Position.IsGameOver() {
		return s.evaluate(), Empty[Move](), NilError
	}

	moves, err := s.Position.LegalMoves()
	if !IsNil(err) {
		return 0, Empty[Move](), err
	}

	bestScore := -evaluation.Inf
	if !isMaximizing {
		bestScore = evaluation.Inf
	}
	bestMove := Empty[Move]()

	for _, move := range moves {
		score, err := s.searchMove(move, depth, alpha, beta, isMaximizing, pruning)
		if !IsNil(err) {
			return bestScore, bestMove, err
		}

		if isMaximizing {
			if score > bestScore {
				bestScore = score
				bestMove = Some(move)
			}
			if bestScore > alpha {
				alpha = bestScore
			}
		} else {
			if score < bestScore {
				bestScore = score
				bestMove = Some(move)
			}
			if bestScore < beta {
				beta = bestScore
			}
		}

		if pruning && beta <= alpha {
			s.Stats.Cutoffs++
			break
		}
	}

	return bestScore, bestMove, NilError
}

// AlphaBeta scores the position from the searcher's perspective, looking
// depth plies ahead. Ties keep the first move in generation order.
func (s *Searcher) AlphaBeta(depth int, alpha evaluation.Score, beta evaluation.Score, isMaximizing bool) (evaluation.Score, Optional[Move], Error) {
	return s.search(depth, alpha, beta, isMaximizing, true)
}

// Minimax walks the full tree without cutoffs.
func (s *Searcher) Minimax(depth int, isMaximizing bool) (evaluation.Score, Optional[Move], Error) {
	return s.search(depth, -evaluation.Inf, evaluation.Inf, isMaximizing, false)
}

func (s *Searcher) BestMove(depth int) (Optional[Move], evaluation.Score, Error) {
	s.Stats = SearchStats{}
	if s.DebugTree != nil {
		s.DebugTree.Reset()
	}
	isMaximizing := s.Perspective == s.Position.Player()

	score, move, err := s.search(depth, -evaluation.Inf, evaluation.Inf, isMaximizing, s.pruning)
	if !IsNil(err) {
		return Empty[Move](), score, err
	}

	s.Logger.Debugf("searched depth %v for %v: %v nodes, %v evaluations, %v cutoffs, score %v",
		depth, s.Perspective,
		humanize.Comma(int64(s.Stats.Nodes)),
		humanize.Comma(int64(s.Stats.Evaluations)),
		humanize.Comma(int64(s.Stats.Cutoffs)),
		score)

	return move, score, NilError
}

func BestMove(position Position, depth int, perspective Player, options ...SearchOption) (Optional[Move], evaluation.Score, Error) {
	return NewSearcher(position, perspective, options...).BestMove(depth)
}
