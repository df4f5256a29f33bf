package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedBoard = errors.New("malformed board")

// Board is a dense row-major grid of owners. Bounds are the caller's job.
type Board struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  []Player `json:"cells"`
}

func NewBoard(width, height int) *Board {
	return &Board{
		Width:  width,
		Height: height,
		Cells:  make([]Player, width*height), // all Free
	}
}

func (b *Board) Contains(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

func (b *Board) At(x, y int) Player { return b.Cells[y*b.Width+x] }

func (b *Board) Set(x, y int, p Player) { b.Cells[y*b.Width+x] = p }

func (b *Board) Clone() *Board {
	cp := &Board{Width: b.Width, Height: b.Height, Cells: make([]Player, len(b.Cells))}
	copy(cp.Cells, b.Cells)
	return cp
}

// forEachNeighbour calls fn for every in-bounds 4-neighbour of (x,y).
func (b *Board) forEachNeighbour(x, y int, fn func(nx, ny int)) {
	for _, d := range neighbourOffsets {
		nx, ny := x+d[0], y+d[1]
		if b.Contains(nx, ny) {
			fn(nx, ny)
		}
	}
}

func (b *Board) GroupedAreas() Grouping { return GroupAreas(b) }

// String renders the board top row first: ids 0-9 as one digit, larger ids
// bracketed, free fields as '.'. Every row ends with a newline.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(b.Width*b.Height + b.Height)
	for y := b.Height - 1; y >= 0; y-- {
		for x := 0; x < b.Width; x++ {
			sb.WriteString(FieldGlyph(b.At(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FieldGlyph is the render form of a single field.
func FieldGlyph(p Player) string {
	switch {
	case p == Free:
		return "."
	case p < 10:
		return strconv.FormatUint(uint64(p), 10)
	default:
		return "[" + strconv.FormatUint(uint64(p), 10) + "]"
	}
}

// ParseBoard reads the output of Board.String back into a Board.
func ParseBoard(s string) (*Board, error) {
	if s == "" || !strings.HasSuffix(s, "\n") {
		return nil, fmt.Errorf("%w: missing trailing newline", ErrMalformedBoard)
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")

	rows := make([][]Player, len(lines))
	for i, line := range lines {
		row, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedBoard, i+1, err)
		}
		if i > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrMalformedBoard, i+1, len(row), len(rows[0]))
		}
		rows[i] = row
	}
	if len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrMalformedBoard)
	}

	b := NewBoard(len(rows[0]), len(rows))
	for i, row := range rows {
		y := b.Height - 1 - i
		for x, p := range row {
			b.Set(x, y, p)
		}
	}
	return b, nil
}

func parseRow(line string) ([]Player, error) {
	var row []Player
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '.':
			row = append(row, Free)
		case ch >= '0' && ch <= '9':
			row = append(row, Player(ch-'0'))
		case ch == '[':
			end := strings.IndexByte(line[i:], ']')
			if end < 0 {
				return nil, errors.New("unclosed bracket")
			}
			v, err := strconv.ParseUint(line[i+1:i+end], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("bad player id %q", line[i+1:i+end])
			}
			row = append(row, Player(v))
			i += end
		default:
			return nil, fmt.Errorf("unexpected %q", ch)
		}
	}
	return row, nil
}
