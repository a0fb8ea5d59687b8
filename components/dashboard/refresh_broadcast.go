package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	TopicLayout = "layout"
	TopicOrders = "orders"
)

// RefreshEvent tells connected pages that something they render changed.
type RefreshEvent struct {
	Topic     string    `json:"topic"`
	Reason    string    `json:"reason"`
	AreaCode  string    `json:"area,omitempty"`
	WidgetID  string    `json:"widget,omitempty"`
	SessionID string    `json:"session,omitempty"`
	At        time.Time `json:"at"`
}

// RefreshHook receives refresh events from the layout service and the order commands.
type RefreshHook interface {
	Publish(ctx context.Context, event RefreshEvent) error
}

type noopRefreshHook struct{}

func (noopRefreshHook) Publish(context.Context, RefreshEvent) error { return nil }

func normalizeRefreshHook(h RefreshHook) RefreshHook {
	if h == nil {
		return noopRefreshHook{}
	}
	return h
}

// BroadcastHook fans out refresh events to in-process subscribers. Slow subscribers drop events.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]chan RefreshEvent
	next int
	now  func() time.Time
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]chan RefreshEvent),
		now:  time.Now,
	}
}

// Publish stamps the event and delivers it to every subscriber.
func (h *BroadcastHook) Publish(_ context.Context, event RefreshEvent) error {
	if event.At.IsZero() {
		event.At = h.now()
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of refresh events and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan RefreshEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan RefreshEvent, 8)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Subscribers returns the number of live subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams refresh events as JSON.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE streams refresh events as Server-Sent Events.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("event: " + event.Topic + "\ndata: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
