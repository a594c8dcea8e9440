package search

import (
	"fmt"
	"strings"

	"github.com/cricklet/chessbot/internal/evaluation"
	. "github.com/cricklet/chessbot/internal/helpers"
)

type debugSearchLine struct {
	DebugString string
	Depth       int
	Alpha       evaluation.Score
	Beta        evaluation.Score
	Score       Optional[evaluation.Score]
}

// DebugSearchTree records every move the searcher explores. Lines are
// appended as moves are pushed and popped, so the rendered tree lists each
// finished move with its window and score.
type DebugSearchTree struct {
	CurrentDepth int
	Result       []debugSearchLine
}

func NewDebugSearchTree() *DebugSearchTree {
	return &DebugSearchTree{}
}

// DebugString renders the finished moves shallower than depth, deepest first
// under each parent.
func (s *DebugSearchTree) DebugString(depth int) string {
	result := ""
	for i := range s.Result {
		line := s.Result[len(s.Result)-i-1]
		if line.Depth >= depth {
			continue
		}
		if line.Score.IsEmpty() {
			continue
		}
		result += fmt.Sprintf("%v%v (%v %v) %v\n",
			strings.Repeat(" ", line.Depth),
			line.DebugString,
			line.Alpha,
			line.Beta,
			line.Score.Value())
	}
	return result
}

func playerString(isMaximizing bool) string {
	if isMaximizing {
		return "player"
	}
	return "enemy"
}

func (s *DebugSearchTree) MovePush(move string, isMaximizing bool, alpha evaluation.Score, beta evaluation.Score) {
	s.Result = append(s.Result, debugSearchLine{
		DebugString: fmt.Sprintf("> %v (%v)", playerString(isMaximizing), move),
		Depth:       s.CurrentDepth,
		Alpha:       alpha,
		Beta:        beta,
	})
	s.CurrentDepth += 1
}

func (s *DebugSearchTree) MovePop(move string, isMaximizing bool, alpha evaluation.Score, beta evaluation.Score, result evaluation.Score) {
	s.CurrentDepth -= 1
	s.Result = append(s.Result, debugSearchLine{
		DebugString: fmt.Sprintf("$ %v (%v)", playerString(isMaximizing), move),
		Depth:       s.CurrentDepth,
		Alpha:       alpha,
		Beta:        beta,
		Score:       Some(result),
	})
}

// Reset drops every recorded line.
func (s *DebugSearchTree) Reset() {
	s.CurrentDepth = 0
	s.Result = s.Result[:0]
}

func (s *DebugSearchTree) NumMoves() int {
	n := 0
	for _, line := range s.Result {
		if line.Score.HasValue() {
			n++
		}
	}
	return n
}
