package websocket

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/dukerupert/sabzi/internal/model"
)

// Change types carried in Message.Type.
const (
	ItemCreated   = "item_created"
	ItemUpdated   = "item_updated"
	ItemDeleted   = "item_deleted"
	ItemsImported = "items_imported"
)

// Message is one change to the shopping list. Seq goes up by one per
// broadcast, so a client that sees a gap has missed a change and should
// refetch the list.
type Message struct {
	Seq    uint64           `json:"seq"`
	Type   string           `json:"type"`
	ItemID string           `json:"item_id,omitempty"`
	Status model.ItemStatus `json:"status,omitempty"`
	Count  int              `json:"count,omitempty"`
}

// ItemChanged reports a create, edit or delete of one item.
func ItemChanged(changeType, itemID string) Message {
	return Message{Type: changeType, ItemID: itemID}
}

// StatusChanged reports an item moving to another bucket.
func StatusChanged(itemID string, status model.ItemStatus) Message {
	return Message{Type: ItemUpdated, ItemID: itemID, Status: status}
}

// Imported reports a batch of count items appended at once.
func Imported(count int) Message {
	return Message{Type: ItemsImported, Count: count}
}

// Broadcaster is what handlers need from the hub.
type Broadcaster interface {
	Broadcast(msg Message)
}

// Hub fans list changes out to every connected client.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	seq     uint64
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Debug("client connected", "clients", n)
}

// Unregister removes a client and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast stamps msg with the next sequence number and queues it for every
// client. Sequence order is delivery order. Clients with a full buffer miss
// the message and see the gap on the next one.
func (h *Hub) Broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq++
	msg.Seq = h.seq
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal change", "type", msg.Type, "error", err)
		return
	}

	dropped := 0
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.logger.Warn("slow clients missed a change", "type", msg.Type, "seq", msg.Seq, "dropped", dropped)
	}
}

// Seq returns the sequence number of the last broadcast.
func (h *Hub) Seq() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.seq
}

func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
