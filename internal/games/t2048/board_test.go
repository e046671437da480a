package t2048

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always picks the same slot and float.
type fixedRand struct {
	slot int
	f    float64
}

func (r fixedRand) Intn(n int) int {
	return min(r.slot, n-1)
}

func (r fixedRand) Float64() float64 {
	return r.f
}

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// boardFrom builds a board holding exactly the given values.
func boardFrom(t *testing.T, rows [][]uint, r Rand) *Board {
	t.Helper()

	b := newEmptyBoard(len(rows))
	b.rng = r
	b.spawn4 = DefaultSpawn4Probability
	for row, vals := range rows {
		require.Len(t, vals, len(rows), "row %d", row)
		for col, v := range vals {
			if v == 0 {
				continue
			}
			b.grid[row][col].Value = v
			b.removeEmpty(row, col)
		}
	}
	return b
}

// requireConsistent checks the empty set against the grid.
func requireConsistent(t *testing.T, b *Board) {
	t.Helper()

	zeros := 0
	for row := range b.size {
		for col := range b.size {
			idx := row*b.size + col
			empty := b.grid[row][col].Empty()
			if empty {
				zeros++
			}
			require.Equal(t, empty, b.empty.contains(idx), "cell (%d, %d)", row, col)
		}
	}
	require.Equal(t, zeros, b.EmptyCount())
}

// assertAfterSpawn checks every non-zero cell of want and that exactly one
// zero cell of want received a 2 or 4.
func assertAfterSpawn(t *testing.T, b *Board, want [][]uint) {
	t.Helper()

	spawned := 0
	for row := range want {
		for col, w := range want[row] {
			got := b.Value(row, col)
			if w != 0 {
				assert.Equal(t, w, got, "cell (%d, %d)", row, col)
				continue
			}
			if got != 0 {
				assert.Contains(t, []uint{2, 4}, got, "spawned value at (%d, %d)", row, col)
				spawned++
			}
		}
	}
	assert.Equal(t, 1, spawned, "exactly one tile should spawn")
}

func TestNewBoard(t *testing.T) {
	b, err := NewBoard(4, WithRand(seeded(1)))
	require.NoError(t, err)

	assert.Equal(t, 4, b.Size())
	assert.Equal(t, uint64(0), b.Score())
	assert.Equal(t, 14, b.EmptyCount())
	requireConsistent(t, b)

	for row := range 4 {
		for col := range 4 {
			v := b.Value(row, col)
			assert.Contains(t, []uint{0, 2, 4}, v)
			assert.False(t, b.Tile(row, col).Merged)
		}
	}
}

func TestNewBoardOptions(t *testing.T) {
	b, err := NewBoard(3,
		WithRand(seeded(2)),
		WithInitialTiles(5),
		WithSpawn4Probability(1),
	)
	require.NoError(t, err)

	assert.Equal(t, 4, b.EmptyCount())
	assert.Equal(t, uint(4), b.MaxTile())
	requireConsistent(t, b)
}

func TestNewBoardDefaultRand(t *testing.T) {
	b, err := NewBoard(2)
	require.NoError(t, err)
	assert.Equal(t, 2, b.EmptyCount())
}

func TestNewBoardTooSmall(t *testing.T) {
	for _, size := range []int{-1, 0, 1} {
		b, err := NewBoard(size)
		assert.Nil(t, b)
		assert.True(t, errors.Is(err, ErrBoardTooSmall), "size %d", size)
	}
}

func TestUpdateLeftExample(t *testing.T) {
	b := boardFrom(t, [][]uint{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, seeded(3))

	assert.Equal(t, Changed, b.Update(DirLeft))
	assert.Equal(t, uint64(4), b.Score())
	assert.Equal(t, uint(4), b.Value(0, 0))
	assert.Equal(t, 14, b.EmptyCount())
	requireConsistent(t, b)
}

func TestUpdateRowMerges(t *testing.T) {
	tests := []struct {
		name  string
		dir   Direction
		in    []uint
		want  []uint
		score uint64
	}{
		{"three equal left", DirLeft, []uint{2, 2, 2}, []uint{4, 2, 0}, 4},
		{"three equal right", DirRight, []uint{2, 2, 2}, []uint{0, 2, 4}, 4},
		{"four equal left", DirLeft, []uint{2, 2, 2, 2}, []uint{4, 4, 0, 0}, 8},
		{"four equal right", DirRight, []uint{2, 2, 2, 2}, []uint{0, 0, 4, 4}, 8},
		{"one merge per tile", DirLeft, []uint{4, 4, 8, 0}, []uint{8, 8, 0, 0}, 8},
		{"gap", DirLeft, []uint{2, 0, 0, 2}, []uint{4, 0, 0, 0}, 4},
		{"trailing pair", DirLeft, []uint{0, 0, 2, 2}, []uint{4, 0, 0, 0}, 4},
		{"different values slide", DirRight, []uint{2, 4, 0, 0}, []uint{0, 0, 2, 4}, 0},
		{"single tile", DirLeft, []uint{0, 4, 0, 0}, []uint{4, 0, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.in)
			rows := make([][]uint, n)
			want := make([][]uint, n)
			for i := range rows {
				rows[i] = make([]uint, n)
				want[i] = make([]uint, n)
			}
			copy(rows[0], tt.in)
			copy(want[0], tt.want)

			b := boardFrom(t, rows, seeded(4))
			require.Equal(t, Changed, b.Update(tt.dir))

			assert.Equal(t, tt.score, b.Score())
			assertAfterSpawn(t, b, want)
			requireConsistent(t, b)
		})
	}
}

func TestUpdateAllDirections(t *testing.T) {
	start := [][]uint{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	}

	tests := []struct {
		dir   Direction
		want  [][]uint
		score uint64
	}{
		{DirUp, [][]uint{
			{4, 8, 4, 2},
			{0, 0, 4, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		}, 20},
		{DirDown, [][]uint{
			{0, 0, 0, 0},
			{0, 0, 0, 0},
			{0, 0, 4, 0},
			{4, 8, 4, 2},
		}, 20},
		{DirLeft, [][]uint{
			{2, 4, 2, 0},
			{4, 0, 0, 0},
			{4, 2, 0, 0},
			{4, 0, 0, 0},
		}, 8},
		{DirRight, [][]uint{
			{0, 2, 4, 2},
			{0, 0, 0, 4},
			{0, 0, 4, 2},
			{0, 0, 0, 4},
		}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			b := boardFrom(t, start, seeded(5))
			require.Equal(t, Changed, b.Update(tt.dir))

			assert.Equal(t, tt.score, b.Score())
			assertAfterSpawn(t, b, tt.want)
			requireConsistent(t, b)
		})
	}
}

func TestUpdateUnchanged(t *testing.T) {
	b := boardFrom(t, [][]uint{
		{4, 2, 0, 0},
		{8, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, seeded(6))
	before := b.Values()

	assert.Equal(t, Unchanged, b.Update(DirLeft))
	assert.Equal(t, before, b.Values())
	assert.Equal(t, uint64(0), b.Score())
	assert.Equal(t, 13, b.EmptyCount())

	// Repeating the same no-op stays a no-op.
	assert.Equal(t, Unchanged, b.Update(DirLeft))
	assert.Equal(t, before, b.Values())
}

func TestUpdateClearsMergedFlags(t *testing.T) {
	b := boardFrom(t, [][]uint{
		{2, 2, 0},
		{0, 0, 0},
		{0, 0, 0},
	}, seeded(7))

	require.Equal(t, Changed, b.Update(DirLeft))
	for row := range 3 {
		for col := range 3 {
			assert.False(t, b.Tile(row, col).Merged, "cell (%d, %d)", row, col)
		}
	}
}

func TestUpdateKey(t *testing.T) {
	rows := [][]uint{
		{0, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}

	t.Run("lowercase and uppercase move", func(t *testing.T) {
		for _, key := range []rune{'w', 'W', 'a', 'A', 's', 'S', 'd', 'D'} {
			b := boardFrom(t, rows, seeded(8))
			assert.Equal(t, Changed, b.UpdateKey(key), "key %q", key)
		}
	})

	t.Run("invalid key leaves board untouched", func(t *testing.T) {
		b := boardFrom(t, rows, seeded(8))
		before := b.Values()

		for _, key := range []rune{'Q', 'q', 'z', ' ', '1'} {
			assert.Equal(t, InvalidInput, b.UpdateKey(key), "key %q", key)
		}
		assert.Equal(t, before, b.Values())
		assert.Equal(t, 15, b.EmptyCount())
	})

	t.Run("quit", func(t *testing.T) {
		b := boardFrom(t, rows, seeded(8))
		before := b.Values()

		assert.Equal(t, QuitRequested, b.UpdateKey('x'))
		assert.Equal(t, QuitRequested, b.UpdateKey('X'))
		assert.Equal(t, before, b.Values())
	})
}

func TestUpdateInvalidDirection(t *testing.T) {
	b := boardFrom(t, [][]uint{{2, 0}, {0, 0}}, seeded(9))
	assert.Equal(t, InvalidInput, b.Update(Direction(42)))
	assert.Equal(t, [][]uint{{2, 0}, {0, 0}}, b.Values())
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		key  rune
		want Direction
		ok   bool
	}{
		{'w', DirUp, true},
		{'A', DirLeft, true},
		{'s', DirDown, true},
		{'D', DirRight, true},
		{'x', DirQuit, true},
		{'q', 0, false},
		{'\n', 0, false},
	}

	for _, tt := range tests {
		dir, ok := ParseDirection(tt.key)
		assert.Equal(t, tt.ok, ok, "key %q", tt.key)
		if tt.ok {
			assert.Equal(t, tt.want, dir, "key %q", tt.key)
		}
	}
}

func TestIsGameOver(t *testing.T) {
	tests := []struct {
		name string
		rows [][]uint
		want bool
	}{
		{"no moves", [][]uint{
			{2, 4, 8, 16},
			{32, 64, 128, 256},
			{512, 1024, 2048, 4096},
			{8192, 16384, 32768, 65536},
		}, true},
		{"checkerboard", [][]uint{
			{2, 4},
			{4, 2},
		}, true},
		{"horizontal merge", [][]uint{
			{2, 2, 8, 16},
			{32, 64, 128, 256},
			{512, 1024, 2048, 4096},
			{8192, 16384, 32768, 65536},
		}, false},
		{"vertical merge", [][]uint{
			{2, 4, 8, 16},
			{32, 64, 128, 16},
			{512, 1024, 2048, 4096},
			{8192, 16384, 32768, 65536},
		}, false},
		{"empty cell", [][]uint{
			{2, 4, 8, 16},
			{32, 64, 128, 256},
			{512, 1024, 0, 4096},
			{8192, 16384, 32768, 65536},
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := boardFrom(t, tt.rows, seeded(10))
			before := b.Values()

			assert.Equal(t, tt.want, b.IsGameOver())
			assert.Equal(t, before, b.Values(), "probe must not touch the board")
			assert.Equal(t, uint64(0), b.Score())
			requireConsistent(t, b)
		})
	}
}

func TestFullBoardMergeStillSpawns(t *testing.T) {
	b := boardFrom(t, [][]uint{
		{2, 2},
		{4, 8},
	}, seeded(11))

	require.Equal(t, Changed, b.Update(DirLeft))
	assert.Equal(t, uint(4), b.Value(0, 0))
	assert.Equal(t, uint64(4), b.Score())
	assert.Equal(t, 0, b.EmptyCount())
	requireConsistent(t, b)
}

func TestPlaceRandomValue(t *testing.T) {
	t.Run("fills an empty cell", func(t *testing.T) {
		b := boardFrom(t, [][]uint{
			{2, 4},
			{0, 8},
		}, fixedRand{slot: 0, f: 0.5})

		require.True(t, b.PlaceRandomValue())
		assert.Equal(t, uint(2), b.Value(1, 0))
		assert.Equal(t, 0, b.EmptyCount())
		requireConsistent(t, b)
	})

	t.Run("full board", func(t *testing.T) {
		b := boardFrom(t, [][]uint{
			{2, 4},
			{4, 2},
		}, seeded(12))
		before := b.Values()

		assert.False(t, b.PlaceRandomValue())
		assert.Equal(t, before, b.Values())
		assert.Equal(t, 0, b.EmptyCount())
	})

	t.Run("only empty cells", func(t *testing.T) {
		rng := seeded(13)
		for range 200 {
			b := boardFrom(t, [][]uint{
				{2, 0, 4},
				{0, 8, 0},
				{16, 0, 32},
			}, rng)
			require.True(t, b.PlaceRandomValue())
			assert.Equal(t, uint(2), b.Value(0, 0))
			assert.Equal(t, uint(8), b.Value(1, 1))
			assert.Equal(t, uint(32), b.Value(2, 2))
			requireConsistent(t, b)
		}
	})

	t.Run("every empty cell reachable", func(t *testing.T) {
		rng := seeded(14)
		hits := make(map[[2]int]int)
		for range 4000 {
			b := boardFrom(t, [][]uint{
				{2, 0},
				{0, 0},
			}, rng)
			require.True(t, b.PlaceRandomValue())
			for row := range 2 {
				for col := range 2 {
					if (row != 0 || col != 0) && !b.IsEmpty(row, col) {
						hits[[2]int{row, col}]++
					}
				}
			}
		}
		require.Len(t, hits, 3)
		for cell, n := range hits {
			assert.InDelta(t, 4000.0/3, float64(n), 200, "cell %v", cell)
		}
	})
}

func TestNextRandomValue(t *testing.T) {
	assert.Equal(t, uint(4), boardFrom(t, [][]uint{{0, 0}, {0, 0}}, fixedRand{f: 0.05}).NextRandomValue())
	assert.Equal(t, uint(2), boardFrom(t, [][]uint{{0, 0}, {0, 0}}, fixedRand{f: 0.10}).NextRandomValue())
	assert.Equal(t, uint(2), boardFrom(t, [][]uint{{0, 0}, {0, 0}}, fixedRand{f: 0.99}).NextRandomValue())
}

func TestNextRandomValueDistribution(t *testing.T) {
	const samples = 100_000

	b := boardFrom(t, [][]uint{{0, 0}, {0, 0}}, seeded(15))
	twos := 0
	for range samples {
		switch v := b.NextRandomValue(); v {
		case 2:
			twos++
		case 4:
		default:
			t.Fatalf("unexpected value %d", v)
		}
	}

	assert.InDelta(t, 0.9, float64(twos)/samples, 0.01)
}

func TestSetSpawn4Probability(t *testing.T) {
	b := boardFrom(t, [][]uint{{0, 0}, {0, 0}}, seeded(16))
	b.SetSpawn4Probability(1)
	for range 50 {
		assert.Equal(t, uint(4), b.NextRandomValue())
	}
	b.SetSpawn4Probability(0)
	for range 50 {
		assert.Equal(t, uint(2), b.NextRandomValue())
	}
}

func TestScoreNonDecreasing(t *testing.T) {
	b, err := NewBoard(4, WithRand(seeded(17)))
	require.NoError(t, err)

	dirs := []Direction{DirLeft, DirUp, DirRight, DirDown}
	var last uint64
	for i := range 500 {
		if b.IsGameOver() {
			break
		}
		b.Update(dirs[i%len(dirs)])
		assert.GreaterOrEqual(t, b.Score(), last)
		last = b.Score()
		requireConsistent(t, b)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() ([][]uint, uint64) {
		b, err := NewBoard(4, WithRand(seeded(18)))
		require.NoError(t, err)
		for _, key := range "wasdwasdddssaaww" {
			b.UpdateKey(key)
		}
		return b.Values(), b.Score()
	}

	v1, s1 := play()
	v2, s2 := play()
	assert.Equal(t, v1, v2)
	assert.Equal(t, s1, s2)
}

func TestMaxTile(t *testing.T) {
	b := boardFrom(t, [][]uint{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	}, seeded(19))

	assert.Equal(t, uint(2048), b.MaxTile())
}

func TestAccessorsOutOfRangePanic(t *testing.T) {
	b := boardFrom(t, [][]uint{{0, 0}, {0, 0}}, seeded(20))

	assert.Panics(t, func() { b.Tile(2, 0) })
	assert.Panics(t, func() { b.Value(0, -1) })
	assert.Panics(t, func() { b.vacate(5, 5) })
}

func TestEmptySet(t *testing.T) {
	s := newEmptySet(4)
	require.Equal(t, 4, s.len())

	s.remove(1)
	s.remove(1)
	assert.Equal(t, 3, s.len())
	assert.False(t, s.contains(1))

	c := s.clone()
	s.add(1)
	s.add(1)
	assert.Equal(t, 4, s.len())
	assert.True(t, s.contains(1))
	assert.False(t, c.contains(1), "clone is independent")

	seen := make(map[int]bool)
	for i := range s.len() {
		seen[s.at(i)] = true
	}
	assert.Len(t, seen, 4)
}
