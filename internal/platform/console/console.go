// Package console runs 2048 as a line-oriented prompt loop: the board is
// printed as ASCII, the player types W, A, S or D and presses enter.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	cellWidth   = 6
	clearLines  = 20
	movePrompt  = "Press W A S or D to shift values Up, Left, Down, or Right"
	choiceLabel = "Choice: "
	againLabel  = "Play again (Y/N)? "
)

// BoardFactory creates the board for a new round.
type BoardFactory func() (*t2048.Board, error)

// Session is one console play session over a reader and writer.
type Session struct {
	in       *bufio.Scanner
	out      io.Writer
	newBoard BoardFactory
	logger   *log.Logger
}

// NewSession creates a session reading commands from in and printing to out.
func NewSession(in io.Reader, out io.Writer, newBoard BoardFactory, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		in:       bufio.NewScanner(in),
		out:      out,
		newBoard: newBoard,
		logger:   logger,
	}
}

// Run plays rounds until the player quits, declines another round, the input
// ends, or ctx is cancelled. The end of input is not an error.
func (s *Session) Run(ctx context.Context) error {
	for round := 1; ; round++ {
		b, err := s.newBoard()
		if err != nil {
			return fmt.Errorf("console: new board: %w", err)
		}
		s.logger.Debug("round started", "round", round, "size", b.Size())

		done, err := s.playRound(ctx, b)
		if err != nil || done {
			return err
		}

		s.logger.Info("round over", "round", round, "score", b.Score(), "max_tile", b.MaxTile())
		again, err := s.askPlayAgain(ctx)
		if err != nil || !again {
			return err
		}
	}
}

// playRound runs one board to game over. done is true when the session
// should end without the play-again question.
func (s *Session) playRound(ctx context.Context, b *t2048.Board) (done bool, err error) {
	for !b.IsGameOver() {
		s.clearScreen()
		Display(s.out, b)
		fmt.Fprintln(s.out, movePrompt)
		fmt.Fprint(s.out, choiceLabel)

		for {
			line, ok, err := s.readLine(ctx)
			if err != nil || !ok {
				return true, err
			}

			outcome := b.UpdateKey(firstRune(line))
			if outcome == t2048.QuitRequested {
				fmt.Fprintln(s.out, "Exiting")
				s.logger.Debug("quit requested", "score", b.Score())
				return true, nil
			}
			if outcome != t2048.InvalidInput {
				break
			}
			fmt.Fprintln(s.out, "Invalid Choice: Choices are W, A, S, or D (X for eXit)")
			fmt.Fprint(s.out, choiceLabel)
		}
	}

	s.clearScreen()
	Display(s.out, b)
	fmt.Fprintln(s.out, "Game over!")
	fmt.Fprintf(s.out, "\n\n Your score: %d\n\n", b.Score())
	return false, nil
}

func (s *Session) askPlayAgain(ctx context.Context) (bool, error) {
	fmt.Fprint(s.out, againLabel)
	for {
		line, ok, err := s.readLine(ctx)
		if err != nil || !ok {
			return false, err
		}

		switch unicode.ToUpper(firstRune(line)) {
		case 'Y':
			return true, nil
		case 'N':
			return false, nil
		}
		fmt.Fprintln(s.out, "Invalid Choice: Enter a Y or N.")
		fmt.Fprint(s.out, againLabel)
	}
}

// readLine returns the next input line. ok is false at end of input.
func (s *Session) readLine(ctx context.Context) (line string, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", false, fmt.Errorf("console: read input: %w", err)
		}
		return "", false, nil
	}
	return s.in.Text(), true, nil
}

func (s *Session) clearScreen() {
	fmt.Fprint(s.out, strings.Repeat("\n", clearLines))
}

// firstRune returns the first character of line, or 0 for an empty line.
func firstRune(line string) rune {
	for _, r := range line {
		return r
	}
	return 0
}

// Display prints the score and the grid as ASCII, one boxed row per grid row.
func Display(w io.Writer, b *t2048.Board) {
	n := b.Size()
	rule := strings.Repeat("_", (cellWidth+1)*n) + "_\n\n"

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d\n", b.Score())
	sb.WriteString(rule)
	for row := range n {
		for col := range n {
			sb.WriteByte('|')
			if v := b.Value(row, col); v != 0 {
				fmt.Fprintf(&sb, "%*d", cellWidth, v)
			} else {
				sb.WriteString(strings.Repeat(" ", cellWidth))
			}
		}
		sb.WriteString("|\n")
		sb.WriteString(rule)
	}
	fmt.Fprint(w, sb.String())
}
