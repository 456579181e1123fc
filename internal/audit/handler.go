package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rapidsphere/fleet-erp/internal/platform/httpx"
)

// Lister is the contract Handler needs from Service.
type Lister interface {
	Timeline(ctx context.Context, filters Filters) (Result, error)
}

// Handler serves the audit listing as JSON.
type Handler struct {
	logger  *slog.Logger
	service Lister
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service Lister) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches the listing. Callers restrict the route to administrators.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	result, err := h.service.Timeline(r.Context(), filters)
	if err != nil {
		h.logger.Error("load audit log", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func parseFilters(r *http.Request) (Filters, error) {
	q := r.URL.Query()
	filters := Filters{
		Actor:  q.Get("actor"),
		Action: q.Get("action"),
		Entity: q.Get("entity"),
	}
	var err error
	if filters.Page, err = positiveParam(q.Get("page")); err != nil {
		return Filters{}, fmt.Errorf("%w: page %v", httpx.ErrValidation, err)
	}
	if filters.PageSize, err = positiveParam(q.Get("limit")); err != nil {
		return Filters{}, fmt.Errorf("%w: limit %v", httpx.ErrValidation, err)
	}
	return filters, nil
}

// positiveParam parses an optional positive integer. Empty yields zero.
func positiveParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New("must be a positive integer")
	}
	return n, nil
}
