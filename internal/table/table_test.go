package table_test

import (
	"sync"
	"testing"

	"gamma/internal/game"
	"gamma/internal/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTable(t *testing.T, width, height int, players, areas uint32) *table.Table {
	t.Helper()
	g, err := game.New(width, height, players, areas)
	require.NoError(t, err)
	return table.NewTable("t", g)
}

func TestTableMirrorsGame(t *testing.T) {
	tb := newTable(t, 3, 1, 2, 1)

	require.NoError(t, tb.TryMove(1, 0, 0))
	require.NoError(t, tb.TryMove(2, 2, 0))
	assert.ErrorIs(t, tb.TryMove(1, 0, 0), game.ErrOccupied)

	assert.Equal(t, uint64(1), tb.BusyFields(1))
	assert.Equal(t, uint64(1), tb.FreeFields(1))
	assert.False(t, tb.GoldenPossible(1))
	assert.True(t, tb.CanPlay(1))
	assert.Equal(t, "1.2\n", tb.Render())
	assert.Equal(t, game.Player(2), tb.Board().At(2, 0))

	require.NoError(t, tb.TryMove(1, 1, 0))
	assert.Equal(t, uint64(0), tb.FreeFields(2))
	assert.True(t, tb.CanPlay(2))
	assert.ErrorIs(t, tb.TryGoldenMove(2, 0, 0), game.ErrAreaLimit)
	require.NoError(t, tb.TryGoldenMove(2, 1, 0))
	assert.Equal(t, "122\n", tb.Render())
	assert.False(t, tb.CanPlay(2))
}

func TestStandings(t *testing.T) {
	tb := newTable(t, 4, 4, 3, 2)
	require.True(t, tb.Move(2, 0, 0))
	require.True(t, tb.Move(2, 1, 0))
	require.True(t, tb.Move(3, 3, 3))
	require.True(t, tb.Move(1, 0, 3))
	require.True(t, tb.GoldenMove(1, 3, 3))

	assert.Equal(t, []table.Standing{
		{Player: 1, Busy: 2, Areas: 2, GoldenUsed: true},
		{Player: 2, Busy: 2, Areas: 1},
		{Player: 3, Busy: 0, Areas: 0},
	}, tb.Standings())
}

func TestTableSerializesConcurrentCalls(t *testing.T) {
	tb := newTable(t, 8, 8, 4, 64)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted uint64
	)
	for p := 1; p <= 4; p++ {
		wg.Add(1)
		go func(p game.Player) {
			defer wg.Done()
			for i := 0; i < 64; i++ {
				x, y := (i*7+int(p))%8, (i*3+int(p)*5)%8
				if tb.Move(p, x, y) {
					mu.Lock()
					accepted++
					mu.Unlock()
				}
				_ = tb.FreeFields(p)
				_ = tb.GoldenPossible(p)
			}
		}(game.Player(p))
	}
	wg.Wait()

	var busy uint64
	for p := game.Player(1); p <= 4; p++ {
		busy += tb.BusyFields(p)
	}
	assert.Equal(t, accepted, busy)
}

func TestTableEventsWithoutManager(t *testing.T) {
	tb := newTable(t, 2, 2, 1, 1)
	// no observer attached: moves still work
	assert.True(t, tb.Move(1, 0, 0))
	assert.False(t, tb.GoldenMove(1, 0, 0))
}
