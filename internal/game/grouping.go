package game

import "gamma/internal/unionfind"

// Grouping maps every owner present on a board to its areas. Free fields,
// if any, sit under the Free key as a single undifferentiated Area.
type Grouping map[Player][]Area

// GroupAreas partitions the claimed fields of b into maximal 4-connected
// same-owner areas. It always scans the whole board.
func GroupAreas(b *Board) Grouping {
	uf := unionfind.NewWithCapacity[Coord](len(b.Cells))
	free := Area{}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			owner := b.At(x, y)
			if owner == Free {
				free.Add(Coord{x, y})
				continue
			}
			here := Coord{x, y}
			uf.Add(here)
			b.forEachNeighbour(x, y, func(nx, ny int) {
				if b.At(nx, ny) == owner {
					uf.Union(here, Coord{nx, ny})
				}
			})
		}
	}

	grouping := Grouping{}
	for _, component := range uf.Components() {
		area := make(Area, len(component))
		for _, c := range component {
			area.Add(c)
		}
		// components are owner-homogeneous
		owner := b.At(component[0].X, component[0].Y)
		grouping[owner] = append(grouping[owner], area)
	}
	if free.Len() > 0 {
		grouping[Free] = []Area{free}
	}
	return grouping
}

// Areas returns the areas of p; nil when p owns nothing.
func (g Grouping) Areas(p Player) []Area {
	if p == Free {
		return nil
	}
	return g[p]
}

// Free returns the set of unclaimed fields (possibly empty).
func (g Grouping) Free() Area {
	if areas := g[Free]; len(areas) > 0 {
		return areas[0]
	}
	return Area{}
}

// Owners lists players that own at least one field.
func (g Grouping) Owners() []Player {
	out := make([]Player, 0, len(g))
	for p := range g {
		if p != Free {
			out = append(out, p)
		}
	}
	return out
}

// ExceedsLimit reports whether any player owns more than limit areas.
func (g Grouping) ExceedsLimit(limit uint32) bool {
	for p, areas := range g {
		if p != Free && uint64(len(areas)) > uint64(limit) {
			return true
		}
	}
	return false
}
