package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/customizer"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/events"
)

const maxSessionIDLength = 128

type lineResponse struct {
	Item               cart.Item `json:"item"`
	Quantity           int       `json:"quantity"`
	LineTotal          int64     `json:"lineTotal"`
	LineTotalFormatted string    `json:"lineTotalFormatted"`
}

type cartResponse struct {
	SessionID           string         `json:"sessionId"`
	Lines               []lineResponse `json:"lines"`
	TotalItems          int            `json:"totalItems"`
	TotalValue          int64          `json:"totalValue"`
	TotalValueFormatted string         `json:"totalValueFormatted"`
	Outcome             cart.Outcome   `json:"outcome,omitempty"`
}

func (h *Handler) toCartResponse(s cart.Snapshot, outcome cart.Outcome) cartResponse {
	resp := cartResponse{
		SessionID:           s.SessionID,
		Lines:               make([]lineResponse, 0, len(s.Lines)),
		TotalItems:          s.TotalItems,
		TotalValue:          s.TotalValue.Round(0).IntPart(),
		TotalValueFormatted: h.formatter.Format(s.TotalValue),
		Outcome:             outcome,
	}
	for _, l := range s.Lines {
		total := cart.UnitValue(l.Item).Mul(decimal.NewFromInt(int64(l.Quantity)))
		resp.Lines = append(resp.Lines, lineResponse{
			Item:               l.Item,
			Quantity:           l.Quantity,
			LineTotal:          total.Round(0).IntPart(),
			LineTotalFormatted: h.formatter.Format(total),
		})
	}
	return resp
}

func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "sessionId")
	if id == "" || len(id) > maxSessionIDLength {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return "", false
	}
	return id, true
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.toCartResponse(h.store.View(sid), ""))
}

type addItemRequest struct {
	ProductID string                `json:"productId"`
	Custom    *customizer.Selection `json:"custom"`
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if (req.ProductID == "") == (req.Custom == nil) {
		writeError(w, http.StatusBadRequest, "exactly one of productId or custom is required")
		return
	}

	var item cart.Item
	if req.Custom != nil {
		sel, q, err := h.quote(*req.Custom)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		item = customizer.Materialize(sel, q, h.formatter, h.customImage)
	} else {
		p, err := h.products.Get(r.Context(), req.ProductID)
		if err != nil {
			h.writeDomainError(w, r, err)
			return
		}
		item = p.ToItem(h.formatter)
	}

	var outcome cart.Outcome
	snap := h.store.UpdateNotify(sid, func(c *cart.Cart) { outcome = c.Add(item) }, h.cartEventPublisher(r, sid))

	writeJSON(w, http.StatusOK, h.toCartResponse(snap, outcome))
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req setQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "quantity must be an integer")
		return
	}
	if req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	itemID := chi.URLParam(r, "itemId")
	snap := h.store.UpdateNotify(sid, func(c *cart.Cart) { c.SetQuantity(itemID, *req.Quantity) }, h.cartEventPublisher(r, sid))

	writeJSON(w, http.StatusOK, h.toCartResponse(snap, ""))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemId")
	snap := h.store.UpdateNotify(sid, func(c *cart.Cart) { c.Remove(itemID) }, h.cartEventPublisher(r, sid))

	writeJSON(w, http.StatusOK, h.toCartResponse(snap, ""))
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	snap := h.store.UpdateNotify(sid, func(c *cart.Cart) { c.Clear() }, h.cartEventPublisher(r, sid))

	writeJSON(w, http.StatusOK, h.toCartResponse(snap, ""))
}

type checkoutResponse struct {
	Status         string             `json:"status"`
	SessionID      string             `json:"sessionId"`
	Lines          []cart.SummaryLine `json:"lines"`
	TotalItems     int                `json:"totalItems"`
	Total          int64              `json:"total"`
	TotalFormatted string             `json:"totalFormatted"`
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionID(w, r)
	if !ok {
		return
	}

	meta := eventMeta(r, sid)
	var submitted events.CartCheckedOutPayload
	err := h.store.Checkout(sid, func(co cart.Checkout) error {
		submitted = events.CartCheckedOutPayload{
			SessionID:      sid,
			Lines:          co.Lines,
			TotalItems:     co.TotalItems,
			Total:          co.TotalValue.Round(0).IntPart(),
			TotalFormatted: h.formatter.Format(co.TotalValue),
		}
		if err := h.publisher.PublishCartCheckedOut(r.Context(), meta, submitted); err != nil {
			return fmt.Errorf("publish checkout: %w", err)
		}
		return nil
	}, h.cartEventPublisher(r, sid))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.logger.Info("cart checked out",
		zap.String("sessionId", sid),
		zap.Int("totalItems", submitted.TotalItems),
		zap.Int64("total", submitted.Total),
		zap.Int("activeSessions", h.store.Sessions()),
	)

	writeJSON(w, http.StatusOK, checkoutResponse{
		Status:         "checkout completed",
		SessionID:      sid,
		Lines:          submitted.Lines,
		TotalItems:     submitted.TotalItems,
		Total:          submitted.Total,
		TotalFormatted: submitted.TotalFormatted,
	})
}

// cartEventPublisher forwards notifications best-effort; the mutation has
// already happened and stands either way. The store runs it under the session
// lock, so sequence numbers follow mutation order.
func (h *Handler) cartEventPublisher(r *http.Request, sid string) func([]cart.Event) {
	return func(evs []cart.Event) { h.publishCartEvents(r, sid, evs) }
}

func (h *Handler) publishCartEvents(r *http.Request, sid string, evs []cart.Event) {
	meta := eventMeta(r, sid)
	for _, ev := range evs {
		if err := h.publisher.PublishCartEvent(r.Context(), meta, ev); err != nil {
			h.logger.Warn("publish cart event failed",
				zap.String("sessionId", sid),
				zap.String("kind", string(ev.Kind)),
				zap.String("itemId", ev.ItemID),
				zap.Error(err),
			)
		}
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
