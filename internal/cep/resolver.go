// Package cep resolves Brazilian postal codes (CEP) into addresses by querying
// cep.la first and falling back to ViaCEP.
package cep

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

const (
	// MsgInvalidFormat is returned when the input does not hold exactly 8 digits.
	MsgInvalidFormat = "CEP deve conter 8 dígitos"
	// MsgNotFound is returned when the fallback provider reports an unknown CEP.
	MsgNotFound = "CEP não encontrado"
	// MsgUnavailable prefixes the failure detail when no provider could answer.
	MsgUnavailable = "Não foi possível validar o CEP: "

	// DefaultTimeout bounds a single provider call.
	DefaultTimeout = 5 * time.Second
)

// ErrNotFound is returned by providers that positively know the CEP does not exist.
var ErrNotFound = errors.New("CEP não encontrado")

// Address holds the fields a provider resolved for a CEP.
type Address struct {
	UF         string
	Cidade     string
	Bairro     string
	Logradouro string
}

// Result is the outcome of a resolution. Invalid results carry a Message and
// no address fields.
type Result struct {
	CEP        string `json:"cep"`
	UF         string `json:"uf"`
	Cidade     string `json:"cidade"`
	Bairro     string `json:"bairro"`
	Logradouro string `json:"logradouro"`
	Valido     bool   `json:"valido"`
	Mensagem   string `json:"mensagem"`
}

// Provider is one upstream address source.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, cep string) (Address, error)
}

// LookupObserver receives one observation per upstream call.
type LookupObserver interface {
	ObserveCEPLookup(provider, outcome string, elapsed time.Duration)
}

// ResolverConfig tunes a Resolver. Zero values select the defaults.
type ResolverConfig struct {
	Timeout  time.Duration
	Logger   *slog.Logger
	Observer LookupObserver
}

// Resolver sequences the primary and fallback providers.
type Resolver struct {
	primary  Provider
	fallback Provider
	timeout  time.Duration
	logger   *slog.Logger
	observer LookupObserver
}

// NewResolver builds a Resolver that asks primary first and fallback second.
func NewResolver(primary, fallback Provider, cfg ResolverConfig) *Resolver {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Resolver{
		primary:  primary,
		fallback: fallback,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}
}

// Normalize strips every non-digit character from raw.
func Normalize(raw string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
}

// Resolve never fails: every outcome, including upstream outages, is reported
// through the returned Result.
func (r *Resolver) Resolve(ctx context.Context, raw string) Result {
	cep := Normalize(raw)
	if len(cep) != 8 {
		return Result{CEP: raw, Mensagem: MsgInvalidFormat}
	}

	addr, err := r.lookup(ctx, r.primary, cep)
	if err == nil {
		return resolved(cep, addr)
	}
	r.logger.Warn("primary cep provider failed, falling back",
		slog.String("provider", r.primary.Name()),
		slog.String("cep", cep),
		slog.Any("error", err))

	addr, err = r.lookup(ctx, r.fallback, cep)
	switch {
	case err == nil:
		return resolved(cep, addr)
	case errors.Is(err, ErrNotFound):
		return Result{CEP: cep, Mensagem: MsgNotFound}
	default:
		r.logger.Error("cep resolution failed",
			slog.String("provider", r.fallback.Name()),
			slog.String("cep", cep),
			slog.Any("error", err))
		return Result{CEP: cep, Mensagem: MsgUnavailable + err.Error()}
	}
}

func (r *Resolver) lookup(ctx context.Context, p Provider, cep string) (Address, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	addr, err := p.Lookup(ctx, cep)
	if r.observer != nil {
		outcome := "ok"
		switch {
		case errors.Is(err, ErrNotFound):
			outcome = "not_found"
		case err != nil:
			outcome = "error"
		}
		r.observer.ObserveCEPLookup(p.Name(), outcome, time.Since(start))
	}
	return addr, err
}

func resolved(cep string, addr Address) Result {
	return Result{
		CEP:        cep,
		UF:         addr.UF,
		Cidade:     addr.Cidade,
		Bairro:     addr.Bairro,
		Logradouro: addr.Logradouro,
		Valido:     true,
	}
}
