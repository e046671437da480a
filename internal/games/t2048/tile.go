package t2048

// Tile is one cell of the grid. Value 0 means the cell is empty.
// Merged is set on the tile a merge lands in and cleared at the end of every
// directional update, so a tile takes part in at most one merge per move.
type Tile struct {
	Value  uint
	Merged bool
}

// Empty reports whether the tile holds no value.
func (t Tile) Empty() bool {
	return t.Value == 0
}

func (t *Tile) reset() {
	t.Value = 0
	t.Merged = false
}
