package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/cakeshop-service-go/internal/customizer"
)

type optionResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Price          int64  `json:"price"`
	PriceFormatted string `json:"priceFormatted"`
}

type sizeResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Servings   string          `json:"servings"`
}

type optionsResponse struct {
	Flavors          []optionResponse     `json:"flavors"`
	Sizes            []sizeResponse       `json:"sizes"`
	Frostings        []optionResponse     `json:"frostings"`
	Toppings         []optionResponse     `json:"toppings"`
	Defaults         customizer.Selection `json:"defaults"`
	MaxMessageLength int                  `json:"maxMessageLength"`
}

func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	sizes := h.catalog.Sizes()
	resp := optionsResponse{
		Flavors:          h.options(h.catalog.Flavors()),
		Sizes:            make([]sizeResponse, 0, len(sizes)),
		Frostings:        h.options(h.catalog.Frostings()),
		Toppings:         h.options(h.catalog.Toppings()),
		Defaults:         customizer.DefaultSelection(h.catalog),
		MaxMessageLength: customizer.MaxMessageLength,
	}
	for _, s := range sizes {
		resp.Sizes = append(resp.Sizes, sizeResponse{ID: s.ID, Name: s.Name, Multiplier: s.Multiplier, Servings: s.Servings})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) options(opts []catalog.Option) []optionResponse {
	out := make([]optionResponse, 0, len(opts))
	for _, o := range opts {
		out = append(out, optionResponse{
			ID:             o.ID,
			Name:           o.Name,
			Price:          o.Price.Round(0).IntPart(),
			PriceFormatted: h.formatter.Format(o.Price),
		})
	}
	return out
}

type productResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Price          int64  `json:"price"`
	PriceFormatted string `json:"priceFormatted"`
	Description    string `json:"description"`
	Tag            string `json:"tag,omitempty"`
	Image          string `json:"image"`
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.products.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	out := make([]productResponse, 0, len(list))
	for _, p := range list {
		out = append(out, productResponse{
			ID:             p.ID,
			Name:           p.Name,
			Category:       p.Category,
			Price:          p.Price,
			PriceFormatted: h.formatter.Format(decimal.NewFromInt(p.Price)),
			Description:    p.Description,
			Tag:            p.Tag,
			Image:          p.Image,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category,
		Price:          p.Price,
		PriceFormatted: h.formatter.Format(decimal.NewFromInt(p.Price)),
		Description:    p.Description,
		Tag:            p.Tag,
		Image:          p.Image,
	})
}

type quoteResponse struct {
	Price          int64                `json:"price"`
	PriceFormatted string               `json:"priceFormatted"`
	Description    string               `json:"description"`
	Selection      customizer.Selection `json:"selection"`
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var sel customizer.Selection
	if err := decodeJSON(r, &sel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sel, q, err := h.quote(sel)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, quoteResponse{
		Price:          q.Amount(),
		PriceFormatted: h.formatter.Format(q.Total),
		Description:    q.Description,
		Selection:      sel,
	})
}
