package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("invalid game config")
	ErrInvalidPlayer = errors.New("invalid player")
	ErrOutOfBounds   = errors.New("out of bounds")
	ErrOccupied      = errors.New("field is not free")
	ErrAreaLimit     = errors.New("area limit exceeded")
	ErrGoldenUsed    = errors.New("golden move already used")
	ErrFreeTarget    = errors.New("golden move target is free")
	ErrOwnTarget     = errors.New("golden move target already owned by player")
)

// Game is one session: a board, the player count, the area ceiling and the
// players who already spent their golden move. It is not safe for
// concurrent use; even the queries mutate and roll back internally.
type Game struct {
	board      *Board
	players    uint32
	maxAreas   uint32
	goldenDone map[Player]struct{}
}

func New(width, height int, players, areas uint32) (*Game, error) {
	switch {
	case width < 1 || height < 1:
		return nil, fmt.Errorf("%w: board %dx%d has no fields", ErrInvalidConfig, width, height)
	case width > MaxFields || height > MaxFields || width*height > MaxFields:
		return nil, fmt.Errorf("%w: board %dx%d exceeds %d fields", ErrInvalidConfig, width, height, MaxFields)
	case players < 1:
		return nil, fmt.Errorf("%w: need at least one player", ErrInvalidConfig)
	case areas < 1:
		return nil, fmt.Errorf("%w: need at least one area", ErrInvalidConfig)
	}
	return &Game{
		board:      NewBoard(width, height),
		players:    players,
		maxAreas:   areas,
		goldenDone: map[Player]struct{}{},
	}, nil
}

func (g *Game) Width() int       { return g.board.Width }
func (g *Game) Height() int      { return g.board.Height }
func (g *Game) Players() uint32  { return g.players }
func (g *Game) MaxAreas() uint32 { return g.maxAreas }

// Board returns a copy of the current grid.
func (g *Game) Board() *Board { return g.board.Clone() }

// Render is the text view of the board, top row first.
func (g *Game) Render() string { return g.board.String() }

func (g *Game) validPlayer(p Player) bool {
	return p >= 1 && uint32(p) <= g.players
}

func (g *Game) GoldenUsed(p Player) bool {
	_, ok := g.goldenDone[p]
	return ok
}

// AreaCount is the number of areas p owns right now.
func (g *Game) AreaCount(p Player) int {
	return len(GroupAreas(g.board).Areas(p))
}

func (g *Game) Move(p Player, x, y int) bool { return g.TryMove(p, x, y) == nil }

// TryMove claims the free field (x,y) for p. On any error the board is left
// exactly as it was.
func (g *Game) TryMove(p Player, x, y int) error {
	if !g.validPlayer(p) {
		return ErrInvalidPlayer
	}
	if !g.board.Contains(x, y) {
		return ErrOutOfBounds
	}
	if g.board.At(x, y) != Free {
		return ErrOccupied
	}
	return g.claim(p, x, y)
}

func (g *Game) GoldenMove(p Player, x, y int) bool { return g.TryGoldenMove(p, x, y) == nil }

// TryGoldenMove reassigns a field owned by another player to p. It must pass
// the same area check as a regular move, for every player at once.
func (g *Game) TryGoldenMove(p Player, x, y int) error {
	if !g.validPlayer(p) {
		return ErrInvalidPlayer
	}
	if g.GoldenUsed(p) {
		return ErrGoldenUsed
	}
	if !g.board.Contains(x, y) {
		return ErrOutOfBounds
	}
	switch g.board.At(x, y) {
	case Free:
		return ErrFreeTarget
	case p:
		return ErrOwnTarget
	}
	if err := g.claim(p, x, y); err != nil {
		return err
	}
	g.goldenDone[p] = struct{}{}
	return nil
}

// claim writes p at (x,y), regroups the whole board and rolls back if any
// player ends up above the ceiling.
func (g *Game) claim(p Player, x, y int) error {
	prev := g.board.At(x, y)
	g.board.Set(x, y, p)
	if GroupAreas(g.board).ExceedsLimit(g.maxAreas) {
		g.board.Set(x, y, prev)
		return ErrAreaLimit
	}
	return nil
}

// BusyFields counts fields owned by p.
func (g *Game) BusyFields(p Player) uint64 {
	if !g.validPlayer(p) {
		return 0
	}
	var n uint64
	for _, owner := range g.board.Cells {
		if owner == p {
			n++
		}
	}
	return n
}

// FreeFields counts free fields p could move into right now.
func (g *Game) FreeFields(p Player) uint64 {
	if !g.validPlayer(p) {
		return 0
	}
	grouping := GroupAreas(g.board)
	free := grouping.Free()
	areas := grouping.Areas(p)
	if uint64(len(areas)) < uint64(g.maxAreas) {
		return uint64(free.Len())
	}

	var n uint64
	for c := range free {
		if g.touchesAny(c, areas) {
			n++
		}
	}
	return n
}

func (g *Game) touchesAny(c Coord, areas []Area) bool {
	found := false
	g.board.forEachNeighbour(c.X, c.Y, func(nx, ny int) {
		if found {
			return
		}
		for _, a := range areas {
			if a.Contains(Coord{nx, ny}) {
				found = true
				return
			}
		}
	})
	return found
}

// GoldenPossible reports whether some golden move by p would succeed now.
// The answer is exact. Below the ceiling the mover cannot overflow, and every
// victim area has a field whose loss does not split it, so some capture is
// always legal. At the ceiling every candidate goes through the same check as
// TryGoldenMove and is rolled back.
func (g *Game) GoldenPossible(p Player) bool {
	if !g.validPlayer(p) || g.GoldenUsed(p) {
		return false
	}
	foreign := false
	for _, owner := range g.board.Cells {
		if owner != Free && owner != p {
			foreign = true
			break
		}
	}
	if !foreign {
		return false
	}
	if uint64(g.AreaCount(p)) < uint64(g.maxAreas) {
		return true
	}

	for y := 0; y < g.board.Height; y++ {
		for x := 0; x < g.board.Width; x++ {
			prev := g.board.At(x, y)
			if prev == Free || prev == p {
				continue
			}
			if g.claim(p, x, y) == nil {
				g.board.Set(x, y, prev)
				return true
			}
		}
	}
	return false
}
