package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/customizer"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/events"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/money"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/products"
)

// EventPublisher is implemented by events.Publisher and events.NopPublisher.
type EventPublisher interface {
	PublishCartEvent(ctx context.Context, meta events.EventMeta, ev cart.Event) error
	PublishCartCheckedOut(ctx context.Context, meta events.EventMeta, payload events.CartCheckedOutPayload) error
}

type Deps struct {
	Catalog         *catalog.Catalog
	Products        products.Repository
	Store           *cart.Store
	Publisher       EventPublisher
	Formatter       money.Formatter
	CustomCakeImage string
	Logger          *zap.Logger
}

type Handler struct {
	catalog     *catalog.Catalog
	products    products.Repository
	store       *cart.Store
	publisher   EventPublisher
	formatter   money.Formatter
	customImage string
	logger      *zap.Logger
}

func NewHandler(d Deps) *Handler {
	h := &Handler{
		catalog:     d.Catalog,
		products:    d.Products,
		store:       d.Store,
		publisher:   d.Publisher,
		formatter:   d.Formatter,
		customImage: d.CustomCakeImage,
		logger:      d.Logger,
	}
	if h.store == nil {
		h.store = cart.NewStore()
	}
	if h.publisher == nil {
		h.publisher = events.NopPublisher{}
	}
	if h.logger == nil {
		h.logger = zap.NewNop()
	}
	return h
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// quote composes a network selection after filling defaults and validating
// what the browser input would normally have prevented.
func (h *Handler) quote(sel customizer.Selection) (customizer.Selection, customizer.Quote, error) {
	if err := customizer.ValidateMessage(sel.Message); err != nil {
		return sel, customizer.Quote{}, err
	}
	sel = sel.WithDefaults(h.catalog)
	q, err := customizer.Compose(h.catalog, sel)
	return sel, q, err
}

func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownOption), errors.Is(err, products.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, customizer.ErrMessageTooLong),
		errors.Is(err, customizer.ErrDuplicateTopping),
		errors.Is(err, cart.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed",
			zap.String("requestId", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func eventMeta(r *http.Request, sessionID string) events.EventMeta {
	return events.EventMeta{
		CorrelationID: GetCorrelationID(r.Context()),
		CausationID:   middleware.GetReqID(r.Context()),
		PartitionKey:  sessionID,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"error": msg,
	})
}
