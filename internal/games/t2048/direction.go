package t2048

import "unicode"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
	DirQuit // Not a move: asks the caller to end the game
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirQuit:
		return "quit"
	default:
		return "invalid"
	}
}

// delta returns the one-step row/column offset toward the wall tiles travel to.
func (d Direction) delta() (dr, dc int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

func (d Direction) isMove() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection maps a command key to a direction.
// Keys are case-insensitive: W up, A left, S down, D right, X quit.
func ParseDirection(key rune) (Direction, bool) {
	switch unicode.ToUpper(key) {
	case 'W':
		return DirUp, true
	case 'A':
		return DirLeft, true
	case 'S':
		return DirDown, true
	case 'D':
		return DirRight, true
	case 'X':
		return DirQuit, true
	default:
		return 0, false
	}
}

// Outcome is the result of a Board update.
type Outcome int

const (
	Unchanged     Outcome = iota // Valid move, nothing slid or merged
	Changed                      // At least one tile moved or merged
	InvalidInput                 // Unknown direction, board untouched
	QuitRequested                // Quit command, board untouched
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case InvalidInput:
		return "invalid_input"
	case QuitRequested:
		return "quit_requested"
	default:
		return "unknown"
	}
}
