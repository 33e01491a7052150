// Package dispatch maps HTTP verb + entity name onto the typed store
// operations. Resolution of the entity name happens before any store call;
// the switch over registry.Entity is exhaustive.
package dispatch

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gestaopro/gestaopro/internal/cashmovements"
	"github.com/gestaopro/gestaopro/internal/marketplace"
	"github.com/gestaopro/gestaopro/internal/platform/httpx"
	"github.com/gestaopro/gestaopro/internal/products"
	"github.com/gestaopro/gestaopro/internal/registry"
	"github.com/gestaopro/gestaopro/internal/sales"
	"github.com/gestaopro/gestaopro/internal/users"
)

// Handler owns the generic /{entity} routes.
type Handler struct {
	logger *slog.Logger
	cash   *cashmovements.Service
	prod   *products.Service
	sale   *sales.Service
	order  *marketplace.Service
	user   *users.Service
}

func NewHandler(
	logger *slog.Logger,
	cash *cashmovements.Service,
	prod *products.Service,
	sale *sales.Service,
	order *marketplace.Service,
	user *users.Service,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, cash: cash, prod: prod, sale: sale, order: order, user: user}
}

type payloader interface {
	Payload() map[string]any
}

func toPayloads[T payloader](items []T, err error) ([]map[string]any, error) {
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, item.Payload())
	}
	return out, nil
}

func toPayload[T payloader](item T, err error) (map[string]any, error) {
	if err != nil {
		return nil, err
	}
	return item.Payload(), nil
}

// resolve short-circuits unknown entity names with 404 before any store call.
func resolve(w http.ResponseWriter, r *http.Request) (registry.Entity, bool) {
	entity, ok := registry.Parse(chi.URLParam(r, "entity"))
	if !ok {
		httpx.RespondError(w, httpx.ErrUnknownEntity)
		return "", false
	}
	return entity, true
}

// recordID parses the {id} segment. A non-numeric id behaves like a missing
// row.
func recordID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, httpx.ErrNotFound
	}
	return id, nil
}

func decodeForm[T any](r *http.Request) (T, error) {
	var form T
	if err := httpx.DecodeJSON(r, &form); err != nil {
		return form, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return form, nil
}

// List handles GET /{entity}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entity, ok := resolve(w, r)
	if !ok {
		return
	}

	var (
		rows []map[string]any
		err  error
	)
	switch entity {
	case registry.CashMovements:
		rows, err = toPayloads(h.cash.List(r.Context()))
	case registry.Products:
		rows, err = toPayloads(h.prod.List(r.Context()))
	case registry.Sales:
		rows, err = toPayloads(h.sale.List(r.Context()))
	case registry.MarketplaceOrders:
		rows, err = toPayloads(h.order.List(r.Context()))
	case registry.Users:
		rows, err = toPayloads(h.user.List(r.Context()))
	}
	if err != nil {
		h.logger.Error("list entity", slog.String("entity", string(entity)), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rows)
}

// Get handles GET /{entity}/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	entity, ok := resolve(w, r)
	if !ok {
		return
	}
	id, err := recordID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var row map[string]any
	switch entity {
	case registry.CashMovements:
		row, err = toPayload(h.cash.Get(r.Context(), id))
	case registry.Products:
		row, err = toPayload(h.prod.Get(r.Context(), id))
	case registry.Sales:
		row, err = toPayload(h.sale.Get(r.Context(), id))
	case registry.MarketplaceOrders:
		row, err = toPayload(h.order.Get(r.Context(), id))
	case registry.Users:
		row, err = toPayload(h.user.Get(r.Context(), id))
	}
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, row)
}

// Create handles POST /{entity}. Marketplace orders wrap the whole body;
// user creation may short-circuit on the admin account and answer 200.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	entity, ok := resolve(w, r)
	if !ok {
		return
	}

	status := http.StatusCreated
	var (
		row map[string]any
		err error
	)
	switch entity {
	case registry.CashMovements:
		var form cashmovements.CreateForm
		if form, err = decodeForm[cashmovements.CreateForm](r); err == nil {
			row, err = toPayload(h.cash.Create(r.Context(), form))
		}
	case registry.Products:
		var form products.CreateForm
		if form, err = decodeForm[products.CreateForm](r); err == nil {
			row, err = toPayload(h.prod.Create(r.Context(), form))
		}
	case registry.Sales:
		var form sales.CreateForm
		if form, err = decodeForm[sales.CreateForm](r); err == nil {
			row, err = toPayload(h.sale.Create(r.Context(), form))
		}
	case registry.MarketplaceOrders:
		var body []byte
		if body, err = io.ReadAll(r.Body); err == nil {
			row, err = toPayload(h.order.CreateFromPayload(r.Context(), body))
		}
	case registry.Users:
		var form users.CreateForm
		if form, err = decodeForm[users.CreateForm](r); err == nil {
			var user users.User
			var created bool
			user, created, err = h.user.Create(r.Context(), form)
			if err == nil {
				row = user.Payload()
				if !created {
					status = http.StatusOK
				}
			}
		}
	}
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, status, row)
}

// Update handles PUT /{entity}/{id} with a partial payload.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	entity, ok := resolve(w, r)
	if !ok {
		return
	}
	id, err := recordID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	var row map[string]any
	switch entity {
	case registry.CashMovements:
		var form cashmovements.UpdateForm
		if form, err = decodeForm[cashmovements.UpdateForm](r); err == nil {
			row, err = toPayload(h.cash.Update(r.Context(), id, form))
		}
	case registry.Products:
		var form products.UpdateForm
		if form, err = decodeForm[products.UpdateForm](r); err == nil {
			row, err = toPayload(h.prod.Update(r.Context(), id, form))
		}
	case registry.Sales:
		var form sales.UpdateForm
		if form, err = decodeForm[sales.UpdateForm](r); err == nil {
			row, err = toPayload(h.sale.Update(r.Context(), id, form))
		}
	case registry.MarketplaceOrders:
		var form marketplace.UpdateForm
		if form, err = decodeForm[marketplace.UpdateForm](r); err == nil {
			row, err = toPayload(h.order.Update(r.Context(), id, form))
		}
	case registry.Users:
		var form users.UpdateForm
		if form, err = decodeForm[users.UpdateForm](r); err == nil {
			row, err = toPayload(h.user.Update(r.Context(), id, form))
		}
	}
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, row)
}

// Delete handles DELETE /{entity}/{id} and answers 204 with no body.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	entity, ok := resolve(w, r)
	if !ok {
		return
	}
	id, err := recordID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	switch entity {
	case registry.CashMovements:
		err = h.cash.Delete(r.Context(), id)
	case registry.Products:
		err = h.prod.Delete(r.Context(), id)
	case registry.Sales:
		err = h.sale.Delete(r.Context(), id)
	case registry.MarketplaceOrders:
		err = h.order.Delete(r.Context(), id)
	case registry.Users:
		err = h.user.Delete(r.Context(), id)
	}
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MountRoutes registers the generic entity routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{entity}", h.List)
	r.Get("/{entity}/{id}", h.Get)
	r.Post("/{entity}", h.Create)
	r.Put("/{entity}/{id}", h.Update)
	r.Delete("/{entity}/{id}", h.Delete)
}
