package table

import (
	"errors"
	"fmt"
	"sort"

	"gamma/internal/game"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrTableNotFound = errors.New("table not found")

type Store interface {
	GetTable(id string) (*Table, bool)
	SaveTable(t *Table)
	DeleteTable(id string)
	ListTables() []*Table
}

type Broadcaster interface {
	Broadcast(tableID string, action string, data interface{})
}

// Manager creates and tracks independent tables. Tables share no state.
type Manager struct {
	store     Store
	hub       Broadcaster
	log       *zap.Logger
	maxFields int
}

// NewManager wires a manager. hub may be nil; maxFields <= 0 means the
// engine's own cap.
func NewManager(s Store, hub Broadcaster, log *zap.Logger, maxFields int) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	if maxFields <= 0 || maxFields > game.MaxFields {
		maxFields = game.MaxFields
	}
	return &Manager{store: s, hub: hub, log: log, maxFields: maxFields}
}

func (m *Manager) Create(width, height int, players, areas uint32) (*Table, error) {
	if width > m.maxFields || height > m.maxFields || width*height > m.maxFields {
		return nil, fmt.Errorf("%w: board %dx%d exceeds %d fields", game.ErrInvalidConfig, width, height, m.maxFields)
	}
	g, err := game.New(width, height, players, areas)
	if err != nil {
		m.log.Debug("table rejected", zap.Error(err))
		return nil, err
	}

	t := NewTable(uuid.NewString(), g)
	t.notify = func(ev Event) { m.observe(t.ID, ev) }
	m.store.SaveTable(t)

	m.log.Info("table created",
		zap.String("table_id", t.ID),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Uint32("players", players),
		zap.Uint32("areas", areas),
	)
	m.broadcast(t.ID, "created", map[string]interface{}{
		"width":   width,
		"height":  height,
		"players": players,
		"areas":   areas,
	})
	return t, nil
}

func (m *Manager) Get(id string) (*Table, bool) {
	return m.store.GetTable(id)
}

func (m *Manager) Delete(id string) error {
	if _, ok := m.store.GetTable(id); !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	m.store.DeleteTable(id)
	m.log.Info("table deleted", zap.String("table_id", id))
	m.broadcast(id, "deleted", nil)
	return nil
}

// List returns tables oldest first.
func (m *Manager) List() []*Table {
	tables := m.store.ListTables()
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].CreatedAt.Before(tables[j].CreatedAt)
	})
	return tables
}

func (m *Manager) Move(id string, p game.Player, x, y int) (bool, error) {
	t, ok := m.store.GetTable(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	return t.Move(p, x, y), nil
}

func (m *Manager) GoldenMove(id string, p game.Player, x, y int) (bool, error) {
	t, ok := m.store.GetTable(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	return t.GoldenMove(p, x, y), nil
}

func (m *Manager) observe(id string, ev Event) {
	fields := []zap.Field{
		zap.String("table_id", id),
		zap.Uint32("player", uint32(ev.Player)),
		zap.Int("x", ev.X),
		zap.Int("y", ev.Y),
	}
	if !ev.OK {
		m.log.Debug(ev.Action+" rejected", append(fields, zap.Error(ev.Err))...)
		return
	}
	m.log.Info(ev.Action+" applied", fields...)
	m.broadcast(id, ev.Action, ev)
}

func (m *Manager) broadcast(id, action string, data interface{}) {
	if m.hub == nil {
		return
	}
	m.hub.Broadcast(id, action, data)
}
