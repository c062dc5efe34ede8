package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/cadastro/internal/cep"
	"github.com/odyssey-erp/cadastro/internal/masterdata/companies"
	"github.com/odyssey-erp/cadastro/internal/masterdata/suppliers"
	"github.com/odyssey-erp/cadastro/internal/observability"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Metrics          *observability.Metrics
	CEPHandler       *cep.Handler
	CompaniesHandler *companies.Handler
	SuppliersHandler *suppliers.Handler
}

// NewRouter constructs the chi.Router with the API defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.CEPHandler != nil {
		r.Route("/cep", params.CEPHandler.MountRoutes)
	}
	if params.CompaniesHandler != nil {
		r.Route("/empresas", params.CompaniesHandler.MountRoutes)
	}
	if params.SuppliersHandler != nil {
		r.Route("/fornecedores", params.SuppliersHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
