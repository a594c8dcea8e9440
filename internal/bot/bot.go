package bot

import (
	"fmt"
	"strings"

	"github.com/cricklet/chessbot/internal/evaluation"
	"github.com/cricklet/chessbot/internal/game"
	. "github.com/cricklet/chessbot/internal/helpers"
	"github.com/cricklet/chessbot/internal/rules"
	"github.com/cricklet/chessbot/internal/search"
)

const DefaultDepth = 3

// Bot owns a game and answers with the searcher's best move for it.
type Bot struct {
	Logger Logger

	position *rules.Position

	StartFen string

	depth         int
	perspective   Optional[Player]
	searchOptions []search.SearchOption

	LastScore Optional[evaluation.Score]
}

var _ Runner = (*Bot)(nil)

type BotOption func(*Bot)

func WithLogger(logger Logger) BotOption {
	return func(b *Bot) {
		b.Logger = logger
	}
}

func WithDepth(depth int) BotOption {
	return func(b *Bot) {
		b.depth = depth
	}
}

// WithPerspective fixes the side the bot scores for. Without it the bot
// plays for whoever is to move.
func WithPerspective(player Player) BotOption {
	return func(b *Bot) {
		b.perspective = Some(player)
	}
}

func WithSearchOptions(options ...search.SearchOption) BotOption {
	return func(b *Bot) {
		b.searchOptions = append(b.searchOptions, options...)
	}
}

func NewBot(options ...BotOption) *Bot {
	b := &Bot{
		Logger: DefaultLogger,
		depth:  DefaultDepth,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// NewBotFromFen sets up the position right away. An empty fen means the
// standard starting position.
func NewBotFromFen(fen string, options ...BotOption) (*Bot, Error) {
	b := NewBot(options...)
	err := b.SetupPosition(RunnerPosition{Fen: fen})
	if !IsNil(err) {
		return nil, err
	}
	return b, NilError
}

func (b *Bot) Reset() {
	b.position = nil
	b.StartFen = ""
	b.LastScore = Empty[evaluation.Score]()
}

func (b *Bot) IsNew() bool {
	return b.position == nil
}

func (b *Bot) Depth() int {
	return b.depth
}

func (b *Bot) SetupPosition(position RunnerPosition) Error {
	if !b.IsNew() {
		b.Reset()
	}

	fen := position.Fen
	if fen == "" {
		fen = game.StartFen
	}

	p, err := rules.NewPosition(fen)
	if !IsNil(err) {
		return Join(Errorf("couldn't create game from %v", position), err)
	}
	b.position = p
	b.StartFen = fen

	for _, m := range position.Moves {
		err := b.PerformMoveFromString(m)
		if !IsNil(err) {
			b.Logger.Warnf("couldn't play %v from %v, resetting", m, fen)
			b.Reset()
			return err
		}
	}

	return NilError
}

func (b *Bot) checkSetup() Error {
	if b.IsNew() {
		return Errorf("position not setup")
	}
	return NilError
}

func (b *Bot) PerformMoveFromString(s string) Error {
	err := b.checkSetup()
	if !IsNil(err) {
		return err
	}

	move, err := b.position.MoveFromString(s)
	if !IsNil(err) {
		return err
	}
	return b.position.PerformMove(move)
}

func firstIndexNotMatching[A any, B any](a []A, b []B, matches func(A, B) bool) int {
	for i := 0; i < MinInt(len(a), len(b)); i++ {
		if !matches(a[i], b[i]) {
			return i
		}
	}
	return MinInt(len(a), len(b))
}

// PerformMoves brings the game to startPos followed by moves, only playing
// the moves past the history both share.
func (b *Bot) PerformMoves(startPos string, moves []string) Error {
	err := b.checkSetup()
	if !IsNil(err) {
		return err
	}
	if b.StartFen != startPos {
		return Errorf("positions don't match: %v != %v", b.StartFen, startPos)
	}

	history := b.position.History()
	startIndex := firstIndexNotMatching(history, moves, func(m Move, s string) bool {
		return m.String() == s
	})

	if startIndex < len(history) {
		b.Logger.Debugf("rewinding %v moves", len(history)-startIndex)
	}
	err = b.Rewind(len(history) - startIndex)
	if !IsNil(err) {
		return err
	}

	for i := startIndex; i < len(moves); i++ {
		err := b.PerformMoveFromString(moves[i])
		if !IsNil(err) {
			return err
		}
	}

	return NilError
}

func (b *Bot) Rewind(num int) Error {
	err := b.checkSetup()
	if !IsNil(err) {
		return err
	}

	for i := MinInt(num, len(b.position.History())); i > 0; i-- {
		err := b.position.UndoMove()
		if !IsNil(err) {
			return Join(Errorf("Rewind"), err)
		}
	}
	return NilError
}

func (b *Bot) LegalMoves() ([]string, Error) {
	err := b.checkSetup()
	if !IsNil(err) {
		return nil, err
	}

	moves, err := b.position.LegalMoves()
	if !IsNil(err) {
		return nil, err
	}
	return MapSlice(moves, func(m Move) string {
		return m.String()
	}), NilError
}

func (b *Bot) MovesForSelection(selection string) ([]string, Error) {
	selectionFileRank, err := FileRankFromString(selection)
	if !IsNil(err) {
		return nil, Join(Errorf("failed to parse selection"), err)
	}
	selectionIndex := IndexFromFileRank(selectionFileRank)

	err = b.checkSetup()
	if !IsNil(err) {
		return nil, err
	}
	legalMoves, err := b.position.LegalMoves()
	if !IsNil(err) {
		return nil, err
	}

	moves := FilterSlice(legalMoves, func(m Move) bool {
		return m.StartIndex == selectionIndex
	})
	return MapSlice(moves, func(m Move) string {
		return m.String()
	}), NilError
}

// CheckMoveIsLegal takes the start and end squares separately, eg
// ("e2", "e4"). Promotions default to a queen.
func (b *Bot) CheckMoveIsLegal(from string, to string) bool {
	if b.IsNew() {
		return false
	}
	_, err := b.position.MoveFromString(from + to)
	return IsNil(err)
}

func (b *Bot) Search(params SearchParams) (Optional[string], Error) {
	err := b.checkSetup()
	if !IsNil(err) {
		return Empty[string](), err
	}

	perspective := b.perspective.ValueOr(b.position.Player())
	move, score, err := search.BestMove(b.position, params.Depth.ValueOr(b.depth), perspective, b.searchOptions...)
	if !IsNil(err) {
		return Empty[string](), err
	}
	b.LastScore = Some(score)

	if move.IsEmpty() {
		return Empty[string](), NilError
	}
	return Some(move.Value().String()), NilError
}

// NextMove searches at the bot's depth and announces the move it found.
func (b *Bot) NextMove() (Optional[string], Error) {
	move, err := b.Search(SearchParams{})
	if !IsNil(err) {
		return move, err
	}
	if move.HasValue() {
		b.Logger.Println("My move: " + move.Value())
	}
	return move, NilError
}

func (b *Bot) FenString() string {
	return b.position.Fen()
}

func (b *Bot) MoveHistory() []string {
	return MapSlice(b.position.History(), func(m Move) string {
		return m.String()
	})
}

// PgnFromMoveHistory numbers the moves from the start position, eg
// "12... e7e5 13. g1f3" when black moved first.
func (b *Bot) PgnFromMoveHistory() string {
	if b.IsNew() {
		return ""
	}
	start, err := game.GamestateFromFenString(b.StartFen)
	if !IsNil(err) {
		panic(err)
	}

	result := ""
	fullMove := start.FullMoveClock
	player := start.Player
	for i, move := range b.MoveHistory() {
		if player == White {
			result += fmt.Sprintf("%v. ", fullMove)
		} else if i == 0 {
			result += fmt.Sprintf("%v... ", fullMove)
		}

		result += fmt.Sprintf("%v ", move)

		if player == Black {
			fullMove += 1
		}
		player = player.Other()
	}
	return strings.TrimSpace(result)
}

func (b *Bot) Player() Player {
	return b.position.Player()
}

func (b *Bot) Board() BoardArray {
	return b.position.Board()
}

func (b *Bot) Position() *rules.Position {
	return b.position
}

func (b *Bot) IsGameOver() bool {
	return b.position.IsGameOver()
}

func (b *Bot) IsStalemate() bool {
	return b.position.IsStalemate()
}

func (b *Bot) IsInsufficientMaterial() bool {
	return b.position.IsInsufficientMaterial()
}

func (b *Bot) Outcome() Optional[rules.Outcome] {
	return b.position.Outcome()
}

func (b *Bot) Evaluate(player Player) evaluation.Score {
	return evaluation.Evaluate(b.position, player)
}
