// Package shell implements a line-oriented command protocol for driving a
// board from a terminal or a script.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/render"
	"github.com/hailam/chesscore/internal/storage"
)

var errNoStore = errors.New("no storage configured")

// Shell reads commands and applies them to a board.
type Shell struct {
	board *board.Board
	store storage.Store
	out   io.Writer
}

// New creates a shell over b. store may be nil, which disables the
// save, load, list and delete commands.
func New(b *board.Board, store storage.Store, out io.Writer) *Shell {
	return &Shell{
		board: b,
		store: store,
		out:   out,
	}
}

// Run reads commands from in until EOF or "quit". Command errors are
// printed and do not stop the loop.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		if cmd == "quit" {
			return nil
		}

		if err := s.Execute(ctx, cmd, args); err != nil {
			log.WithError(err).WithField("cmd", cmd).Debug("command failed")
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}

	return scanner.Err()
}

// Execute runs a single command.
func (s *Shell) Execute(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "new":
		s.board.Clear()
		return nil
	case "position":
		return s.handlePosition(args)
	case "place":
		return s.handlePlace(args)
	case "move":
		return s.handleMove(args)
	case "moves":
		return s.handleMoves(args)
	case "attack":
		return s.handleAttack(args)
	case "get":
		return s.handleGet(args)
	case "d":
		fmt.Fprint(s.out, render.Text(s.board))
		return nil
	case "fen":
		fmt.Fprintln(s.out, s.board.FEN())
		return nil
	case "perft":
		return s.handlePerft(ctx, args)
	case "png":
		return s.handleImage(args)
	case "save":
		return s.handleSave(args)
	case "load":
		return s.handleLoad(args)
	case "list":
		return s.handleList()
	case "delete":
		return s.handleDelete(args)
	case "help":
		s.handleHelp()
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (s *Shell) handleHelp() {
	fmt.Fprintln(s.out, `commands:
  new                         clear the board
  position startpos|<fen>     set up a position
  place <P|n|...> <sq>        place a piece (uppercase is White)
  place <color> <type> <sq>   place a piece, e.g. place black rook a1
  move <from> <to>            move a piece (also: move e2e3)
  moves <sq>                  list possible moves of the piece on sq
  attack <from> <sq>          can the piece on from attack sq
  get <sq>                    show the piece on sq
  d                           display the board
  fen                         print the piece placement
  perft <depth> [w|b]         count move sequences
  png <file> [sq]             write a diagram, highlighting sq's moves
  save|load|delete <name>     manage saved positions
  list                        list saved positions
  quit`)
}

func needArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("usage: %s", usage)
	}
	return nil
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position <fen>
//   - position fen <fen>
func (s *Shell) handlePosition(args []string) error {
	if err := needArgs(args, 1, "position startpos|<fen>"); err != nil {
		return err
	}

	fen := strings.Join(args, " ")
	switch args[0] {
	case "startpos":
		fen = board.StartFEN
	case "fen":
		fen = strings.Join(args[1:], " ")
	}

	b, err := board.ParseFEN(fen)
	if err != nil {
		return err
	}
	return s.board.Load(b.Pieces())
}

func (s *Shell) handlePlace(args []string) error {
	const usage = "place <char> <sq> | place <color> <type> <sq>"
	if err := needArgs(args, 2, usage); err != nil {
		return err
	}

	var (
		p   board.Piece
		err error
	)
	switch len(args) {
	case 2:
		sq, serr := board.ParseSquare(args[1])
		if serr != nil {
			return serr
		}
		if len(args[0]) != 1 {
			return fmt.Errorf("%w: %q", board.ErrInvalidPiece, args[0])
		}
		p, err = board.ParsePiece(args[0][0], sq)
	case 3:
		c, cerr := board.ParseColor(args[0])
		if cerr != nil {
			return cerr
		}
		pt, perr := board.ParsePieceType(args[1])
		if perr != nil {
			return perr
		}
		sq, serr := board.ParseSquare(args[2])
		if serr != nil {
			return serr
		}
		p, err = board.NewPiece(pt, c, sq)
	default:
		return fmt.Errorf("usage: %s", usage)
	}
	if err != nil {
		return err
	}

	return s.board.Place(p)
}

func (s *Shell) parseMove(args []string) (board.Move, error) {
	switch len(args) {
	case 1:
		return board.ParseMove(args[0])
	case 2:
		from, err := board.ParseSquare(args[0])
		if err != nil {
			return board.Move{}, err
		}
		to, err := board.ParseSquare(args[1])
		if err != nil {
			return board.Move{}, err
		}
		return board.NewMove(from, to), nil
	default:
		return board.Move{}, errors.New("usage: move <from> <to>")
	}
}

func (s *Shell) handleMove(args []string) error {
	m, err := s.parseMove(args)
	if err != nil {
		return err
	}

	p, _ := s.board.Get(m.From)
	if err := s.board.MovePiece(m.From, m.To); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "moved %s %s %s\n", p.Color, p.Type, m)
	return nil
}

func (s *Shell) handleMoves(args []string) error {
	if err := needArgs(args, 1, "moves <sq>"); err != nil {
		return err
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}

	moves, err := s.board.PossibleMoves(sq)
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		fmt.Fprintln(s.out, "(none)")
		return nil
	}
	fmt.Fprintln(s.out, render.Squares(moves))
	return nil
}

func (s *Shell) handleAttack(args []string) error {
	if err := needArgs(args, 2, "attack <from> <sq>"); err != nil {
		return err
	}
	from, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}
	target, err := board.ParseSquare(args[1])
	if err != nil {
		return err
	}

	ok, err := s.board.CanAttack(from, target.File, target.Rank)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintln(s.out, "yes")
	} else {
		fmt.Fprintln(s.out, "no")
	}
	return nil
}

func (s *Shell) handleGet(args []string) error {
	if err := needArgs(args, 1, "get <sq>"); err != nil {
		return err
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		return err
	}

	p, ok := s.board.Get(sq)
	if !ok {
		fmt.Fprintln(s.out, "empty")
		return nil
	}
	fmt.Fprintf(s.out, "%s %s\n", p, p.Symbol())
	return nil
}

func (s *Shell) handlePerft(ctx context.Context, args []string) error {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid depth: %s", args[0])
		}
		depth = d
	}
	side := board.White
	if len(args) > 1 {
		c, err := board.ParseColor(args[1])
		if err != nil {
			return err
		}
		side = c
	}

	start := time.Now()
	nodes, err := board.Perft(ctx, s.board.Snapshot(), side, depth)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(s.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(s.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(s.out, "NPS: %.0f\n", nps)
	}
	return nil
}

func (s *Shell) handleImage(args []string) error {
	if err := needArgs(args, 1, "png <file> [sq]"); err != nil {
		return err
	}

	g := s.board.Snapshot()
	opts := render.Options{}
	if len(args) > 1 {
		sq, err := board.ParseSquare(args[1])
		if err != nil {
			return err
		}
		p, ok := g.PieceAt(sq)
		if !ok {
			return fmt.Errorf("%w: %s", board.ErrNoPieceAtSquare, sq)
		}
		opts.Highlight = p.PossibleMoves(&g)
		opts.Flip = p.Color == board.Black
	}

	img, err := render.Image(&g, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := render.Encode(f, render.FormatFromPath(args[0]), img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "wrote %s\n", args[0])
	return nil
}

func (s *Shell) handleSave(args []string) error {
	if s.store == nil {
		return errNoStore
	}
	if err := needArgs(args, 1, "save <name>"); err != nil {
		return err
	}

	rec, err := s.store.Save(args[0], s.board)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "saved %s %s\n", rec.Name, rec.FEN)
	return nil
}

func (s *Shell) handleLoad(args []string) error {
	if s.store == nil {
		return errNoStore
	}
	if err := needArgs(args, 1, "load <name>"); err != nil {
		return err
	}

	b, err := s.store.Load(args[0])
	if err != nil {
		return err
	}
	if err := s.board.Load(b.Pieces()); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "loaded %s %s\n", args[0], s.board.FEN())
	return nil
}

func (s *Shell) handleList() error {
	if s.store == nil {
		return errNoStore
	}

	records, err := s.store.List()
	if err != nil {
		return err
	}
	for _, rec := range records {
		fmt.Fprintf(s.out, "%s %s %d %s\n", rec.Name, rec.FEN, rec.Pieces, rec.SavedAt.Format(time.RFC3339))
	}
	return nil
}

func (s *Shell) handleDelete(args []string) error {
	if s.store == nil {
		return errNoStore
	}
	if err := needArgs(args, 1, "delete <name>"); err != nil {
		return err
	}
	return s.store.Delete(args[0])
}
