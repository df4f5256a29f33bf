package tui

import (
	"fmt"
	"strconv"

	"gamma/internal/game"

	"github.com/gdamore/tcell/v2"
)

var (
	rgbFree   = tcell.NewRGBColor(120, 120, 120)
	rgbStatus = tcell.NewRGBColor(255, 255, 255)
	rgbError  = tcell.NewRGBColor(255, 80, 80)
	rgbCursor = tcell.NewRGBColor(255, 165, 0)

	playerColors = []tcell.Color{
		tcell.NewRGBColor(0, 200, 0),
		tcell.NewRGBColor(100, 150, 255),
		tcell.NewRGBColor(255, 255, 0),
		tcell.NewRGBColor(200, 50, 200),
		tcell.NewRGBColor(0, 200, 200),
		tcell.NewRGBColor(255, 120, 120),
	}
)

// statusRows is the space kept under the board.
const statusRows = 3

// cellWidth fits the widest player id, plus a separating space once ids
// need more than one digit.
func cellWidth(players uint32) int {
	w := len(strconv.FormatUint(uint64(players), 10))
	if w > 1 {
		w++
	}
	return w
}

func cellText(p game.Player, width int) string {
	s := "."
	if p != game.Free {
		s = strconv.FormatUint(uint64(p), 10)
	}
	return fmt.Sprintf("%*s", width, s)
}

func cellStyle(p game.Player) tcell.Style {
	if p == game.Free {
		return tcell.StyleDefault.Foreground(rgbFree)
	}
	return tcell.StyleDefault.Foreground(playerColors[(int(p)-1)%len(playerColors)])
}

// viewport returns the first board column and the first screen row (counted
// from the top board row) that keep the cursor visible.
func viewport(cx, cy, height, cols, rows int) (offX, offRow int) {
	if cols > 0 && cx >= cols {
		offX = cx - cols + 1
	}
	row := height - 1 - cy
	if rows > 0 && row >= rows {
		offRow = row - rows + 1
	}
	return offX, offRow
}

// Draw paints the board, cursor and status area.
func Draw(screen tcell.Screen, c *Controller) {
	screen.Clear()

	board := c.table.Board()
	cw := cellWidth(c.table.Players())
	sw, sh := screen.Size()
	cols, rows := sw/cw, sh-statusRows
	cx, cy := c.Cursor()
	offX, offRow := viewport(cx, cy, board.Height, cols, rows)

	for row := 0; row < rows && offRow+row < board.Height; row++ {
		y := board.Height - 1 - (offRow + row)
		for col := 0; col < cols && offX+col < board.Width; col++ {
			x := offX + col
			p := board.At(x, y)
			style := cellStyle(p)
			if x == cx && y == cy {
				style = style.Reverse(true).Foreground(rgbCursor)
			}
			drawText(screen, col*cw, row, cellText(p, cw), style)
		}
	}

	base := rows
	if board.Height < rows {
		base = board.Height
	}
	drawText(screen, 0, base, statusLine(c), tcell.StyleDefault.Foreground(rgbStatus).Bold(true))
	if msg := c.Message(); msg != "" {
		drawText(screen, 0, base+1, msg, tcell.StyleDefault.Foreground(rgbError))
	}
	if last := c.LastEvent(); last != "" {
		drawText(screen, 0, base+2, last, tcell.StyleDefault.Foreground(rgbFree))
	}
	screen.Show()
}

// statusLine reads "PLAYER p busy free", with a trailing G while a golden
// move is still possible.
func statusLine(c *Controller) string {
	p := c.Player()
	s := fmt.Sprintf("PLAYER %d %d %d", p, c.table.BusyFields(p), c.table.FreeFields(p))
	if c.table.GoldenPossible(p) {
		s += " G"
	}
	return s
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
