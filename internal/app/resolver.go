package app

import (
	"log/slog"

	"github.com/odyssey-erp/cadastro/internal/cep"
)

// NewCEPResolver wires cep.la as primary and ViaCEP as fallback using the
// configured endpoints and per-call timeout.
func NewCEPResolver(cfg *Config, logger *slog.Logger, observer cep.LookupObserver) *cep.Resolver {
	client := cep.NewHTTPClient(cfg.CEPTimeout)
	return cep.NewResolver(
		cep.NewCepLa(cfg.CEPPrimaryURL, client),
		cep.NewViaCEP(cfg.CEPFallbackURL, client),
		cep.ResolverConfig{Timeout: cfg.CEPTimeout, Logger: logger, Observer: observer},
	)
}
