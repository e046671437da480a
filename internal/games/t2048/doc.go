// Package t2048 implements 2048: an N×N grid of numbered tiles that slide
// and merge under four directional commands.
//
// Board is the self-contained state machine. It owns the grid, the score and
// an index of empty cells, and exposes Update, IsGameOver and Score plus read
// accessors for rendering. Game wraps a Board for the registry, adding the
// campaign and endless modes and drawing into a core.Screen.
package t2048
