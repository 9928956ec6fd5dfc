package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
)

const (
	cellDelimiter = "|"
	emptyCell     = " "
)

var (
	rowDelimiter = "\n" + strings.Repeat("-", 2*entity.BoardSize-1) + "\n"

	markStyles = map[entity.Mark]color.Style{
		entity.MarkX: color.New(color.FgLightRed, color.OpBold),
		entity.MarkO: color.New(color.FgLightCyan, color.OpBold),
	}
)

// Options controls how a board is drawn.
type Options struct {
	// Hints draws empty cells as their index.
	Hints bool
	Color bool
}

// Board renders the board as three rows of cells separated by dashed lines.
func Board(board entity.Board, opts Options) string {
	cells := board.Cells()

	rows := lo.Map(lo.Chunk(cells[:], entity.BoardSize), func(row []entity.Mark, rowIndex int) string {
		items := lo.Map(row, func(mark entity.Mark, col int) string {
			return renderCell(mark, rowIndex*entity.BoardSize+col, opts)
		})
		return strings.Join(items, cellDelimiter)
	})

	return strings.Join(rows, rowDelimiter)
}

func renderCell(mark entity.Mark, index int, opts Options) string {
	if mark == entity.MarkNone {
		if opts.Hints {
			return strconv.Itoa(index)
		}
		return emptyCell
	}

	if opts.Color {
		return markStyles[mark].Render(string(mark))
	}

	return string(mark)
}

// Result describes how the game ended.
func Result(board entity.Board) string {
	if winner := board.Winner(); winner != entity.MarkNone {
		return fmt.Sprintf("Winner: %s", winner)
	}
	return "Draw"
}

// Scoreboard renders a table of finished games followed by the totals.
func Scoreboard(games []*entity.Game) string {
	var builder strings.Builder

	table := tablewriter.NewWriter(&builder)
	table.SetHeader([]string{"Round", "Winner", "Moves"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, game := range games {
		table.Append([]string{strconv.Itoa(game.Round), winnerLabel(game), movesLabel(game.Moves)})
	}
	table.Render()

	xWins := lo.CountBy(games, func(game *entity.Game) bool { return game.Winner == string(entity.MarkX) })
	oWins := lo.CountBy(games, func(game *entity.Game) bool { return game.Winner == string(entity.MarkO) })
	draws := lo.CountBy(games, func(game *entity.Game) bool { return game.IsDraw() })

	fmt.Fprintf(&builder, "X: %d  O: %d  Draw: %d\n", xWins, oWins, draws)

	return builder.String()
}

func winnerLabel(game *entity.Game) string {
	switch {
	case game.IsDraw():
		return "Draw"
	case game.IsFinished():
		return game.Winner
	default:
		return "Unfinished"
	}
}

func movesLabel(moves []entity.Move) string {
	return strings.Join(lo.Map(moves, func(move entity.Move, _ int) string {
		return string(move.Mark) + strconv.Itoa(move.Cell)
	}), " ")
}
