// Package tui is the interactive terminal front end of a table.
package tui

import (
	"fmt"

	"gamma/internal/game"
	"gamma/internal/hub"
	"gamma/internal/table"

	"github.com/gdamore/tcell/v2"
)

// Controller holds the interactive session: cursor, player on turn and the
// last thing worth telling the user.
type Controller struct {
	table  *table.Table
	x, y   int
	player game.Player
	done   bool

	message string
	last    string
}

// NewController starts with the cursor at (x, y), clamped to the board, and
// the first player able to act on turn.
func NewController(t *table.Table, x, y int) *Controller {
	c := &Controller{table: t}
	c.x = clamp(x, 0, t.Width()-1)
	c.y = clamp(y, 0, t.Height()-1)
	c.player = game.Player(t.Players())
	c.advance()
	return c
}

func (c *Controller) Cursor() (x, y int)  { return c.x, c.y }
func (c *Controller) Player() game.Player { return c.player }
func (c *Controller) Done() bool          { return c.done }
func (c *Controller) Message() string     { return c.message }
func (c *Controller) LastEvent() string   { return c.last }
func (c *Controller) Table() *table.Table { return c.table }

// HandleEvent applies one terminal event. It returns false once the game is
// over.
func (c *Controller) HandleEvent(ev tcell.Event) bool {
	if c.done {
		return false
	}
	if key, ok := ev.(*tcell.EventKey); ok {
		c.handleKey(key)
	}
	return !c.done
}

func (c *Controller) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlD, tcell.KeyCtrlC:
		c.done = true
	case tcell.KeyUp:
		if c.y < c.table.Height()-1 {
			c.y++
		}
	case tcell.KeyDown:
		if c.y > 0 {
			c.y--
		}
	case tcell.KeyRight:
		if c.x < c.table.Width()-1 {
			c.x++
		}
	case tcell.KeyLeft:
		if c.x > 0 {
			c.x--
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			c.act(c.table.TryMove)
		case 'g', 'G':
			c.act(c.table.TryGoldenMove)
		case 'c', 'C':
			c.message = fmt.Sprintf("player %d skipped", c.player)
			c.advance()
		}
	}
}

func (c *Controller) act(try func(game.Player, int, int) error) {
	if err := try(c.player, c.x, c.y); err != nil {
		c.message = err.Error()
		return
	}
	c.message = ""
	c.advance()
}

// advance hands the turn to the next player, in cyclic order, who can still
// move or golden move. The current player comes last. Nobody left ends the
// game.
func (c *Controller) advance() {
	n := c.table.Players()
	p := c.player
	for i := uint32(0); i < n; i++ {
		if uint32(p) >= n {
			p = 1
		} else {
			p++
		}
		if c.table.CanPlay(p) {
			c.player = p
			return
		}
	}
	c.done = true
}

// Observe records a table event for the status area.
func (c *Controller) Observe(msg hub.Message) {
	ev, ok := msg.Data.(table.Event)
	if !ok {
		c.last = msg.Action
		return
	}
	c.last = fmt.Sprintf("%s by player %d at (%d,%d)", ev.Action, ev.Player, ev.X, ev.Y)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
