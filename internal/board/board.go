package board

const (
	TypeTicTacToe   = "tic-tac-toe"
	TypeConnectFour = "connect-four"

	// EmptyCell is the marker for a cell no player has claimed yet.
	EmptyCell = " "

	ticTacToeCells   = 9
	connectFourCells = 16
)

// New produces the initial empty board for a game type. Tic-tac-toe gets
// 9 cells; every other type is treated as connect-four and gets 16.
func New(gameType string) []string {
	size := connectFourCells
	if gameType == TypeTicTacToe {
		size = ticTacToeCells
	}

	cells := make([]string, size)
	for i := range cells {
		cells[i] = EmptyCell
	}

	return cells
}
