// Package hub fans table events out to in-process subscribers.
package hub

import (
	"sync"

	"go.uber.org/zap"
)

type Message struct {
	TableID string      `json:"tableId"`
	Action  string      `json:"action"`
	Data    interface{} `json:"data"`
}

// Subscription receives the messages of one table until Close.
type Subscription struct {
	C <-chan Message

	ch      chan Message
	hub     *Hub
	tableID string
	once    sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() { s.hub.remove(s) })
}

type Hub struct {
	mu     sync.RWMutex
	tables map[string]map[*Subscription]struct{}
	buffer int
	log    *zap.Logger
}

// New creates a hub whose subscribers buffer up to buffer messages. A
// subscriber that falls behind loses messages instead of stalling moves.
func New(buffer int, log *zap.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		tables: make(map[string]map[*Subscription]struct{}),
		buffer: buffer,
		log:    log,
	}
}

func (h *Hub) Subscribe(tableID string) *Subscription {
	ch := make(chan Message, h.buffer)
	s := &Subscription{C: ch, ch: ch, hub: h, tableID: tableID}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.tables[tableID]; !ok {
		h.tables[tableID] = make(map[*Subscription]struct{})
	}
	h.tables[tableID][s] = struct{}{}
	return s
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.tables[s.tableID]
	delete(subs, s)
	if len(subs) == 0 {
		delete(h.tables, s.tableID)
	}
	close(s.ch)
}

func (h *Hub) Broadcast(tableID string, action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Message{TableID: tableID, Action: action, Data: data}
	for s := range h.tables[tableID] {
		select {
		case s.ch <- msg:
		default:
			h.log.Warn("subscriber lagging, message dropped",
				zap.String("table_id", tableID),
				zap.String("action", action),
			)
		}
	}
}

// Subscribers counts the live subscriptions of a table.
func (h *Hub) Subscribers(tableID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tables[tableID])
}
