package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"gamma/internal/batch"
	"gamma/internal/config"
	"gamma/internal/game"
	"gamma/internal/hub"
	"gamma/internal/logging"
	"gamma/internal/store"
	"gamma/internal/table"
	"gamma/internal/tui"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Stdin, os.Stdout, os.Stderr))
}

func run(stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	events := hub.New(64, log)
	tables := table.NewManager(store.NewMemoryStore(), events, log, cfg.MaxFields)

	out := bufio.NewWriter(stdout)
	t, err := batch.New(tables, out, stderr, log).Run(stdin)
	if ferr := out.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		log.Error("batch session failed", zap.Error(err))
		fmt.Fprintln(stderr, err)
		return 1
	}
	if t == nil {
		return 0
	}

	if err := interactive(t, cfg, events, log); err != nil {
		log.Error("interactive session failed", zap.Error(err))
		fmt.Fprintln(stderr, err)
		return 1
	}

	out.WriteString(t.Render())
	for p := uint64(1); p <= uint64(t.Players()); p++ {
		fmt.Fprintf(out, "PLAYER %d %d\n", p, t.BusyFields(game.Player(p)))
	}
	if err := out.Flush(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func interactive(t *table.Table, cfg config.Config, events *hub.Hub, log *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	sub := events.Subscribe(t.ID)
	defer sub.Close()

	x, y := cfg.CursorOrigin(t.Width(), t.Height())
	tui.Run(screen, tui.NewController(t, x, y), sub.C, log)
	return nil
}
