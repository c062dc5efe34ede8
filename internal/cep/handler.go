package cep

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/cadastro/internal/platform/httpx"
)

// AddressResolver is what the HTTP layer needs from a Resolver.
type AddressResolver interface {
	Resolve(ctx context.Context, raw string) Result
}

// Handler exposes CEP lookups over HTTP.
type Handler struct {
	logger   *slog.Logger
	resolver AddressResolver
}

// NewHandler creates a CEP handler.
func NewHandler(logger *slog.Logger, resolver AddressResolver) *Handler {
	return &Handler{logger: logger, resolver: resolver}
}

// MountRoutes registers the CEP routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{code}", h.Lookup)
}

// Lookup always answers 200; validity travels in the body.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	result := h.resolver.Resolve(r.Context(), chi.URLParam(r, "code"))
	httpx.JSON(w, http.StatusOK, result)
}
