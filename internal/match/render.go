package match

import (
	"os"

	"github.com/acarl005/stripansi"
	"golang.org/x/term"

	. "github.com/cricklet/chessbot/internal/helpers"
)

func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// RenderBoard draws the board with unicode pieces. Colours are only kept
// for terminals.
func RenderBoard(board BoardArray, color bool) string {
	result := board.Unicode()
	if !color {
		result = stripansi.Strip(result)
	}
	return result
}
