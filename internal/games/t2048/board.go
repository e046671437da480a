package t2048

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Board limits and defaults.
const (
	MinBoardSize             = 2
	DefaultSpawn4Probability = 0.10
	DefaultInitialTiles      = 2
)

// ErrBoardTooSmall is returned by NewBoard for a size below MinBoardSize.
var ErrBoardTooSmall = errors.New("t2048: board size must be at least 2")

// Rand is the random source a Board draws spawn cells and values from.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Board is the N×N 2048 grid together with its score and the index of empty
// cells used for spawning. A Board is not safe for concurrent use.
type Board struct {
	size   int
	grid   [][]Tile
	empty  *emptySet
	score  uint64
	rng    Rand
	spawn4 float64
}

type boardOptions struct {
	rng          Rand
	spawn4       float64
	initialTiles int
}

// Option configures a Board at construction.
type Option func(*boardOptions)

// WithRand sets the random source. Tests pass a seeded *rand.Rand.
func WithRand(r Rand) Option {
	return func(o *boardOptions) {
		o.rng = r
	}
}

// WithSpawn4Probability sets the chance that a spawned tile is a 4.
func WithSpawn4Probability(p float64) Option {
	return func(o *boardOptions) {
		o.spawn4 = p
	}
}

// WithInitialTiles sets how many tiles are spawned by NewBoard.
func WithInitialTiles(n int) Option {
	return func(o *boardOptions) {
		o.initialTiles = n
	}
}

// NewBoard creates a size×size board and spawns the initial tiles.
// Without WithRand the board gets its own clock-seeded source.
func NewBoard(size int, opts ...Option) (*Board, error) {
	if size < MinBoardSize {
		return nil, fmt.Errorf("%w (got %d)", ErrBoardTooSmall, size)
	}

	o := boardOptions{
		spawn4:       DefaultSpawn4Probability,
		initialTiles: DefaultInitialTiles,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := newEmptyBoard(size)
	b.rng = o.rng
	b.spawn4 = o.spawn4

	for range o.initialTiles {
		b.PlaceRandomValue()
	}
	return b, nil
}

func newEmptyBoard(size int) *Board {
	grid := make([][]Tile, size)
	for r := range grid {
		grid[r] = make([]Tile, size)
	}
	return &Board{
		size:  size,
		grid:  grid,
		empty: newEmptySet(size * size),
	}
}

// Update applies one command. Moves that slide or merge anything spawn one
// new tile. Merge flags are cleared after every move, changed or not.
func (b *Board) Update(dir Direction) Outcome {
	if dir == DirQuit {
		return QuitRequested
	}
	if !dir.isMove() {
		return InvalidInput
	}

	changed := b.shift(dir)
	if changed {
		b.PlaceRandomValue()
	}
	b.clearMerged()

	if changed {
		return Changed
	}
	return Unchanged
}

// UpdateKey parses a W/A/S/D/X command key and applies it.
func (b *Board) UpdateKey(key rune) Outcome {
	dir, ok := ParseDirection(key)
	if !ok {
		return InvalidInput
	}
	return b.Update(dir)
}

// shift slides and merges every tile toward the wall dir points at.
// Lines are visited starting next to that wall, so a tile always meets
// neighbors that have already settled.
func (b *Board) shift(dir Direction) bool {
	dr, dc := dir.delta()
	n := b.size
	changed := false

	for dist := 1; dist < n; dist++ {
		line := dist
		if dr > 0 || dc > 0 {
			line = n - 1 - dist
		}
		for i := range n {
			row, col := i, line
			if dc == 0 {
				row, col = line, i
			}
			if b.advance(row, col, dr, dc) {
				changed = true
			}
		}
	}
	return changed
}

// advance pushes the tile at (row, col) one step at a time until it hits the
// wall, a different tile, or a tile that already merged this move.
func (b *Board) advance(row, col, dr, dc int) bool {
	if b.grid[row][col].Empty() {
		return false
	}

	moved := false
	for {
		nr, nc := row+dr, col+dc
		if !b.inBounds(nr, nc) {
			return moved
		}

		switch {
		case b.grid[nr][nc].Empty():
			b.move(row, col, nr, nc)
			row, col = nr, nc
			moved = true
		case b.canMerge(row, col, nr, nc):
			b.merge(row, col, nr, nc)
			return true
		default:
			return moved
		}
	}
}

func (b *Board) canMerge(fromRow, fromCol, toRow, toCol int) bool {
	to := b.grid[toRow][toCol]
	return !to.Merged && to.Value == b.grid[fromRow][fromCol].Value
}

func (b *Board) move(fromRow, fromCol, toRow, toCol int) {
	b.grid[toRow][toCol] = b.grid[fromRow][fromCol]
	b.removeEmpty(toRow, toCol)
	b.vacate(fromRow, fromCol)
}

func (b *Board) merge(fromRow, fromCol, toRow, toCol int) {
	to := &b.grid[toRow][toCol]
	to.Value += b.grid[fromRow][fromCol].Value
	to.Merged = true
	b.score += uint64(to.Value)
	b.vacate(fromRow, fromCol)
}

// vacate empties a cell and records it as a spawn candidate.
func (b *Board) vacate(row, col int) {
	b.mustInBounds(row, col)
	b.grid[row][col].reset()
	b.empty.add(row*b.size + col)
}

func (b *Board) removeEmpty(row, col int) {
	b.mustInBounds(row, col)
	b.empty.remove(row*b.size + col)
}

func (b *Board) clearMerged() {
	for r := range b.grid {
		for c := range b.grid[r] {
			b.grid[r][c].Merged = false
		}
	}
}

// PlaceRandomValue puts a 2 or 4 on a uniformly chosen empty cell.
// It returns false, leaving the board untouched, when no cell is empty.
func (b *Board) PlaceRandomValue() bool {
	if b.empty.len() == 0 {
		return false
	}

	idx := b.empty.at(b.rng.Intn(b.empty.len()))
	row, col := idx/b.size, idx%b.size
	b.removeEmpty(row, col)
	b.grid[row][col].Value = b.NextRandomValue()
	return true
}

// NextRandomValue returns 4 with the board's spawn probability, else 2.
func (b *Board) NextRandomValue() uint {
	if b.rng.Float64() < b.spawn4 {
		return 4
	}
	return 2
}

// SetSpawn4Probability changes the chance that later spawns are a 4.
func (b *Board) SetSpawn4Probability(p float64) {
	b.spawn4 = p
}

// IsGameOver reports whether no direction would change the board.
// Moves are simulated on a private copy; the board itself is not touched.
func (b *Board) IsGameOver() bool {
	probe := b.clone()
	for _, dir := range [...]Direction{DirLeft, DirRight, DirUp, DirDown} {
		if probe.shift(dir) {
			return false
		}
	}
	return true
}

// clone copies the grid and empty set. Score and random source are not
// carried over: the copy is only used to probe moves.
func (b *Board) clone() *Board {
	grid := make([][]Tile, b.size)
	for r := range grid {
		grid[r] = append([]Tile(nil), b.grid[r]...)
	}
	return &Board{
		size:  b.size,
		grid:  grid,
		empty: b.empty.clone(),
	}
}

// Score returns the sum of all merge results so far.
func (b *Board) Score() uint64 {
	return b.score
}

// Size returns the grid dimension N.
func (b *Board) Size() int {
	return b.size
}

// Tile returns the tile at (row, col).
func (b *Board) Tile(row, col int) Tile {
	b.mustInBounds(row, col)
	return b.grid[row][col]
}

// Value returns the tile value at (row, col); 0 means empty.
func (b *Board) Value(row, col int) uint {
	return b.Tile(row, col).Value
}

// IsEmpty reports whether (row, col) holds no tile.
func (b *Board) IsEmpty(row, col int) bool {
	return b.Tile(row, col).Empty()
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	return b.empty.len()
}

// Values returns a copy of the grid values, row-major.
func (b *Board) Values() [][]uint {
	values := make([][]uint, b.size)
	for r := range b.grid {
		values[r] = make([]uint, b.size)
		for c, t := range b.grid[r] {
			values[r][c] = t.Value
		}
	}
	return values
}

// MaxTile returns the highest tile value on the board.
func (b *Board) MaxTile() uint {
	var maxVal uint
	for r := range b.grid {
		for _, t := range b.grid[r] {
			maxVal = max(maxVal, t.Value)
		}
	}
	return maxVal
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// mustInBounds panics on coordinates outside the grid.
func (b *Board) mustInBounds(row, col int) {
	if !b.inBounds(row, col) {
		panic(fmt.Sprintf("t2048: cell (%d, %d) outside %dx%d board", row, col, b.size, b.size))
	}
}
