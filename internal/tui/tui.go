package tui

import (
	"gamma/internal/hub"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// Run drives c from screen events until the game is over. feed, if not
// nil, carries the table's events for the status area. The caller owns the
// screen and calls Fini afterwards.
func Run(screen tcell.Screen, c *Controller, feed <-chan hub.Message, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	log.Info("interactive session started",
		zap.String("table_id", c.Table().ID),
		zap.Uint32("player", uint32(c.Player())),
	)
	Draw(screen, c)
	for !c.Done() {
		select {
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			c.HandleEvent(ev)
		case msg, ok := <-feed:
			if !ok {
				feed = nil
				continue
			}
			c.Observe(msg)
		}
		Draw(screen, c)
	}
	log.Info("interactive session ended", zap.String("table_id", c.Table().ID))
}
