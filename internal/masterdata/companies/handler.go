package companies

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/odyssey-erp/cadastro/internal/masterdata/shared"
	"github.com/odyssey-erp/cadastro/internal/platform/httpx"
)

// DefaultSort orders company listings when the request has no sort.
const DefaultSort = "nomeFantasia,asc"

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *httpx.Validator
}

func NewHandler(logger *slog.Logger, service *Service, validator *httpx.Validator) *Handler {
	return &Handler{logger: logger, service: service, validator: validator}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters := shared.ParseListFilters(r.URL.Query(), DefaultSort)
	page, err := h.service.List(r.Context(), filters)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, shared.MapPage(page, ToResponse))
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	company, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToResponse(*company))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, ToResponse(*created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToResponse(*updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.NoContent(w)
}

func (h *Handler) Link(w http.ResponseWriter, r *http.Request) {
	h.relation(w, r, h.service.LinkSupplier)
}

func (h *Handler) Unlink(w http.ResponseWriter, r *http.Request) {
	h.relation(w, r, h.service.UnlinkSupplier)
}

func (h *Handler) relation(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, companyID, supplierID int64) (*Company, error)) {
	companyID, err := httpx.IDParam(r, "id")
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	supplierID, err := httpx.IDParam(r, "fornecedorId")
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	company, err := apply(r.Context(), companyID, supplierID)
	if err != nil {
		httpx.RespondError(w, h.logger, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ToResponse(*company))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (CompanyRequest, bool) {
	var req CompanyRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, h.logger, err)
		return req, false
	}
	return req, true
}
