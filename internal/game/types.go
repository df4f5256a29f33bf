package game

import "sort"

// Player is an owner id. Valid ids start at 1.
type Player uint32

// Free marks an unclaimed field. It is never a valid player id.
const Free Player = 0

// MaxFields caps width*height of any board.
const MaxFields = 1000 * 1000

type Coord struct {
	X int `json:"x"` // column
	Y int `json:"y"` // row
}

// 4-neighbourhood; no diagonals, no wraparound.
var neighbourOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Area is a set of coordinates. For a player it is one maximal 4-connected
// region; under the Free key it is just the set of unclaimed fields.
type Area map[Coord]struct{}

func (a Area) Add(c Coord) { a[c] = struct{}{} }

func (a Area) Contains(c Coord) bool {
	_, ok := a[c]
	return ok
}

func (a Area) Len() int { return len(a) }

// Coords returns the members ordered by row, then column.
func (a Area) Coords() []Coord {
	out := make([]Coord, 0, len(a))
	for c := range a {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
