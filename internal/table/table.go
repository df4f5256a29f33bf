package table

import (
	"sort"
	"sync"
	"time"

	"gamma/internal/game"
)

// Event describes one attempted mutation of a table.
type Event struct {
	Action string      `json:"action"` // "move" or "golden_move"
	Player game.Player `json:"player"`
	X      int         `json:"x"`
	Y      int         `json:"y"`
	OK     bool        `json:"ok"`
	Err    error       `json:"-"`
}

// Table serializes every operation on one game behind a single mutex.
// Queries take the lock too: they mutate and roll back internally.
type Table struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	mu     sync.Mutex
	game   *game.Game
	notify func(Event)
}

func NewTable(id string, g *game.Game) *Table {
	return &Table{ID: id, CreatedAt: time.Now(), game: g}
}

func (t *Table) Width() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Width()
}

func (t *Table) Height() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Height()
}

func (t *Table) Players() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Players()
}

func (t *Table) Areas() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.MaxAreas()
}

func (t *Table) Move(p game.Player, x, y int) bool { return t.TryMove(p, x, y) == nil }

func (t *Table) TryMove(p game.Player, x, y int) error {
	t.mu.Lock()
	err := t.game.TryMove(p, x, y)
	t.mu.Unlock()

	t.emit(Event{Action: "move", Player: p, X: x, Y: y, OK: err == nil, Err: err})
	return err
}

func (t *Table) GoldenMove(p game.Player, x, y int) bool { return t.TryGoldenMove(p, x, y) == nil }

func (t *Table) TryGoldenMove(p game.Player, x, y int) error {
	t.mu.Lock()
	err := t.game.TryGoldenMove(p, x, y)
	t.mu.Unlock()

	t.emit(Event{Action: "golden_move", Player: p, X: x, Y: y, OK: err == nil, Err: err})
	return err
}

// emit runs outside the lock so observers may query the table.
func (t *Table) emit(ev Event) {
	if t.notify != nil {
		t.notify(ev)
	}
}

func (t *Table) FreeFields(p game.Player) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.FreeFields(p)
}

func (t *Table) BusyFields(p game.Player) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.BusyFields(p)
}

func (t *Table) GoldenPossible(p game.Player) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.GoldenPossible(p)
}

// CanPlay reports whether p has any legal move or golden move left.
func (t *Table) CanPlay(p game.Player) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.FreeFields(p) > 0 || t.game.GoldenPossible(p)
}

func (t *Table) Render() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Render()
}

// Board returns a snapshot of the grid.
func (t *Table) Board() *game.Board {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Board()
}

type Standing struct {
	Player     game.Player `json:"player"`
	Busy       uint64      `json:"busy"`
	Areas      int         `json:"areas"`
	GoldenUsed bool        `json:"goldenUsed"`
}

// Standings lists every player, most fields first, ties by player id.
func (t *Table) Standings() []Standing {
	t.mu.Lock()
	defer t.mu.Unlock()

	grouping := game.GroupAreas(t.game.Board())
	out := make([]Standing, 0, t.game.Players())
	for i := uint32(1); i <= t.game.Players(); i++ {
		p := game.Player(i)
		out = append(out, Standing{
			Player:     p,
			Busy:       t.game.BusyFields(p),
			Areas:      len(grouping.Areas(p)),
			GoldenUsed: t.game.GoldenUsed(p),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Busy != out[j].Busy {
			return out[i].Busy > out[j].Busy
		}
		return out[i].Player < out[j].Player
	})
	return out
}
