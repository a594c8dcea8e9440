package helpers

type RunnerPosition struct {
	Fen   string
	Moves []string
}

type SearchParams struct {
	Depth Optional[int]
}

// Runner is anything that can be driven by the UCI loop or the match loop.
type Runner interface {
	SetupPosition(position RunnerPosition) Error
	PerformMoveFromString(s string) Error
	PerformMoves(startPos string, moves []string) Error
	MovesForSelection(s string) ([]string, Error)
	Rewind(num int) Error
	Reset()
	IsNew() bool
	Search(params SearchParams) (Optional[string], Error)
}
