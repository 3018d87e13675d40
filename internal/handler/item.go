package handler

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dukerupert/sabzi/internal/metrics"
	"github.com/dukerupert/sabzi/internal/model"
	"github.com/dukerupert/sabzi/internal/seed"
	"github.com/dukerupert/sabzi/internal/shopping"
	"github.com/dukerupert/sabzi/internal/store"
	ws "github.com/dukerupert/sabzi/internal/websocket"
)

type ItemHandler struct {
	itemStore *store.ItemStore
	hub       ws.Broadcaster
	metrics   *metrics.Registry
	logger    *slog.Logger
	now       func() time.Time
}

func NewItemHandler(is *store.ItemStore, hub ws.Broadcaster, m *metrics.Registry, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{itemStore: is, hub: hub, metrics: m, logger: logger, now: time.Now}
}

type itemRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Quantity string  `json:"quantity" validate:"max=100"`
	Note     *string `json:"note" validate:"omitempty,max=500"`
	Status   string  `json:"status" validate:"omitempty,item_status"`
}

// normalize trims every field, folds status to lower case the way
// shopping.ParseStatus does, and turns a blank note into an absent one.
func (req *itemRequest) normalize() {
	req.Name = strings.TrimSpace(req.Name)
	req.Quantity = strings.TrimSpace(req.Quantity)
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if req.Note != nil {
		note := strings.TrimSpace(*req.Note)
		if note == "" {
			req.Note = nil
		} else {
			req.Note = &note
		}
	}
}

func (h *ItemHandler) decodeItem(w http.ResponseWriter, r *http.Request) (*itemRequest, bool) {
	var req itemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return nil, false
	}
	req.normalize()
	if err := validate.Struct(req); err != nil {
		writeValidationError(w, err)
		return nil, false
	}
	return &req, true
}

// refreshCounts recomputes the per-bucket gauge after a mutation.
func (h *ItemHandler) refreshCounts() {
	items, err := h.itemStore.List()
	if err != nil {
		h.logger.Warn("refresh item counts", "error", err)
		return
	}
	h.metrics.SetItemCounts(items)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.itemStore.List()
	if err != nil {
		h.logger.Error("list items", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	writeJSON(w, http.StatusOK, shopping.Group(shopping.Search(items, r.URL.Query().Get("q"))))
}

func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.itemStore.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	status := model.StatusToBuy
	if req.Status != "" {
		status = model.ItemStatus(req.Status)
	}

	now := h.now().UTC()
	item, err := h.itemStore.Create(model.ShoppingItem{
		ID:        fmt.Sprintf("item-%d-%s", now.UnixMilli(), uuid.NewString()),
		Name:      req.Name,
		Quantity:  req.Quantity,
		Note:      req.Note,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		h.logger.Error("create item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.metrics.ItemsCreated.Inc()
	h.refreshCounts()
	h.hub.Broadcast(ws.ItemChanged(ws.ItemCreated, item.ID))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := h.itemStore.GetByID(id)
	if err != nil {
		h.logger.Error("get item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	req, ok := h.decodeItem(w, r)
	if !ok {
		return
	}

	status := existing.Status
	if req.Status != "" {
		status = model.ItemStatus(req.Status)
	}

	item, err := h.itemStore.Update(id, req.Name, req.Quantity, req.Note, status, h.now())
	if err != nil {
		h.logger.Error("update item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	if status != existing.Status {
		h.metrics.StatusChanges.WithLabelValues(string(status)).Inc()
		h.refreshCounts()
	}
	h.hub.Broadcast(ws.ItemChanged(ws.ItemUpdated, item.ID))
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	status, err := shopping.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, "status must be one of to-buy, not-needed, purchased")
		return
	}

	item, err := h.itemStore.SetStatus(r.PathValue("id"), status, h.now())
	if err != nil {
		h.logger.Error("set status", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set status")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	h.metrics.StatusChanges.WithLabelValues(string(status)).Inc()
	h.refreshCounts()
	h.hub.Broadcast(ws.StatusChanged(item.ID, status))
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := h.itemStore.GetByID(id)
	if err != nil {
		h.logger.Error("get item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	if err := h.itemStore.Delete(id); err != nil {
		h.logger.Error("delete item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.metrics.ItemsDeleted.Inc()
	h.refreshCounts()
	h.hub.Broadcast(ws.ItemChanged(ws.ItemDeleted, id))
	w.WriteHeader(http.StatusNoContent)
}

// readListText accepts either {"text": "..."} JSON or a raw text body.
func readListText(w http.ResponseWriter, r *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req struct {
			Text string `json:"text"`
		}
		if err := decodeJSON(w, r, &req); err != nil {
			return "", err
		}
		return req.Text, nil
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Import parses pasted list text and appends the items.
func (h *ItemHandler) Import(w http.ResponseWriter, r *http.Request) {
	text, err := readListText(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}

	records := seed.ParseLines(text)
	if len(records) == 0 {
		writeError(w, http.StatusBadRequest, "no items found")
		return
	}
	items := seed.FromRecords(records, h.now().UTC())

	// Batch ids only differ by position, so tag them with the request to keep
	// two imports in the same millisecond apart.
	batch := uuid.NewString()
	for i := range items {
		items[i].ID = items[i].ID + "-" + batch
	}

	if err := h.itemStore.CreateBatch(items); err != nil {
		h.logger.Error("import items", "count", len(items), "error", err)
		writeError(w, http.StatusInternalServerError, "failed to import items")
		return
	}

	h.metrics.ObserveRecords(records)
	h.metrics.ItemsImported.Add(float64(len(items)))
	h.refreshCounts()
	h.hub.Broadcast(ws.Imported(len(items)))
	h.logger.Info("imported items", "count", len(items))
	writeJSON(w, http.StatusCreated, map[string]any{"imported": len(items), "items": items})
}

// Parse previews how list text would be split without storing anything.
func (h *ItemHandler) Parse(w http.ResponseWriter, r *http.Request) {
	text, err := readListText(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	records := seed.ParseLines(text)
	if records == nil {
		records = []seed.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}
