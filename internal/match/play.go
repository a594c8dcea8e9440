package match

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/cricklet/chessbot/internal/bot"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/rules"
)

const DefaultMaxPlies = 400

type Game struct {
	Sources  [2]MoveSource // indexed by Player
	Fen      string
	MaxPlies int

	Out   io.Writer
	Color bool
	// Skips the board after every ply; banners and the result still print.
	Quiet bool
}

type Result struct {
	ID       string
	Outcome  Optional[rules.Outcome]
	Forfeit  Optional[Player]
	Moves    []string
	Fen      string
	Duration time.Duration
}

func (r Result) Winner() Optional[Player] {
	if r.Forfeit.HasValue() {
		return Some(r.Forfeit.Value().Other())
	}
	if r.Outcome.HasValue() {
		return r.Outcome.Value().Winner
	}
	return Empty[Player]()
}

// ScoreFor is 1 for a win, 0.5 for a draw and 0 for a loss. Games cut off at
// the ply limit count as draws.
func (r Result) ScoreFor(player Player) float64 {
	winner := r.Winner()
	if winner.IsEmpty() {
		return 0.5
	}
	if winner.Value() == player {
		return 1
	}
	return 0
}

func (r Result) String() string {
	if r.Forfeit.HasValue() {
		return fmt.Sprintf("%v forfeits", r.Forfeit.Value())
	}
	if r.Outcome.HasValue() {
		return r.Outcome.Value().String()
	}
	return fmt.Sprintf("no result after %v plies", len(r.Moves))
}

// Play runs a game between the two sources and reports it to game.Out.
func Play(game Game) (Result, Error) {
	result := Result{ID: uuid.New().String()}

	referee, err := bot.NewBotFromFen(game.Fen, bot.WithLogger(SilentLogger))
	if !IsNil(err) {
		return result, err
	}

	maxPlies := game.MaxPlies
	if maxPlies <= 0 {
		maxPlies = DefaultMaxPlies
	}

	fmt.Fprintln(game.Out, "===== GAME STARTED =====")
	start := time.Now()
	defer func() {
		fmt.Fprintf(game.Out, "Total game time = %.3f seconds\n", time.Since(start).Seconds())
		fmt.Fprintln(game.Out, "===== GAME ENDED =====")
	}()

	for ply := 0; ply < maxPlies && !referee.IsGameOver(); ply++ {
		player := referee.Player()
		move, err := game.Sources[player].NextMove(referee)
		if !IsNil(err) {
			return result, err
		}
		if move.IsEmpty() {
			result.Forfeit = Some(player)
			break
		}

		err = referee.PerformMoveFromString(move.Value())
		if !IsNil(err) {
			return result, Join(Errorf("%v played an illegal move", game.Sources[player].Name()), err)
		}

		if !game.Quiet {
			fmt.Fprintf(game.Out, "%v\n\n", RenderBoard(referee.Board(), game.Color))
		}
	}

	result.Outcome = referee.Outcome()
	result.Moves = referee.MoveHistory()
	result.Fen = referee.FenString()
	result.Duration = time.Since(start)

	if result.Outcome.HasValue() {
		if referee.IsStalemate() {
			fmt.Fprintln(game.Out, "Is stalemate")
		} else if referee.IsInsufficientMaterial() {
			fmt.Fprintln(game.Out, "Is insufficient material")
		}
	}
	fmt.Fprintln(game.Out, result.String())

	return result, NilError
}
