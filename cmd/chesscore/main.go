package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/render"
	"github.com/hailam/chesscore/internal/shell"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	dbDir      = flag.String("db", os.Getenv("CHESSCORE_DB"), "storage directory (default: platform data dir)")
	backend    = flag.String("backend", envOr("CHESSCORE_BACKEND", storage.BackendBadger), "storage backend: badger or sqlite")
	logLevel   = flag.String("v", envOr("CHESSCORE_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	demo       = flag.Bool("demo", false, "run the demo position and exit")
	noStore    = flag.Bool("nostore", false, "run without persistent storage")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	flag.Parse()

	log.SetHandler(cli.New(os.Stderr))
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.WithError(err).Fatal("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.WithError(err).Fatal("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
		log.WithField("path", profilePath).Info("CPU profiling enabled")
	}

	b := board.NewBoard(board.WithLogger(log.Log))

	if *demo {
		if err := runDemo(os.Stdout, b); err != nil {
			log.WithError(err).Fatal("demo failed")
		}
		return
	}

	var store storage.Store
	if !*noStore {
		store, err = openStore()
		if err != nil {
			log.WithError(err).Fatal("could not open storage")
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := shell.New(b, store, os.Stdout).Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.WithError(err).Error("shell stopped")
	}
}

func openStore() (storage.Store, error) {
	dir := *dbDir
	if dir == "" {
		var err error
		dir, err = storage.GetDatabaseDir()
		if err != nil {
			return nil, err
		}
	}
	return storage.Open(*backend, dir)
}

// runDemo places four pieces, shows the board, lists each piece's moves and
// checks whether the bishop attacks the pawn.
func runDemo(w io.Writer, b *board.Board) error {
	pieces := []struct {
		pt   board.PieceType
		c    board.Color
		file int
		rank int
	}{
		{board.Pawn, board.White, 4, 1},
		{board.Rook, board.Black, 0, 0},
		{board.Bishop, board.White, 2, 0},
		{board.Rook, board.Black, 5, 2},
	}

	var placed []board.Piece
	for _, d := range pieces {
		p, err := board.NewPiece(d.pt, d.c, board.NewSquare(d.file, d.rank))
		if err != nil {
			return err
		}
		if err := b.Place(p); err != nil {
			return err
		}
		placed = append(placed, p)
	}

	fmt.Fprint(w, render.Text(b))

	for _, p := range placed {
		moves, err := b.PossibleMoves(p.Position)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s %s possible moves (%s):\n", p.Symbol(), p.Type, p.Position)
		for _, m := range moves {
			fmt.Fprintf(w, "(%d, %d) %s\n", m.File, m.Rank, m)
		}
	}

	bishop, pawn := placed[2], placed[0]
	ok, err := b.CanAttack(bishop.Position, pawn.Position.File, pawn.Position.Rank)
	if err != nil {
		return err
	}
	answer := "No"
	if ok {
		answer = "Yes"
	}
	fmt.Fprintf(w, "\n%s Can the bishop attack the pawn on %s? %s\n", bishop.Symbol(), pawn.Position, answer)
	return nil
}
