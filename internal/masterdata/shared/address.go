package shared

import (
	"context"

	"github.com/odyssey-erp/cadastro/internal/cep"
	internalShared "github.com/odyssey-erp/cadastro/internal/shared"
)

// AddressResolver turns a raw CEP into an address.
type AddressResolver interface {
	Resolve(ctx context.Context, raw string) cep.Result
}

// ResolveAddress resolves raw and turns a negative result into a validation error.
func ResolveAddress(ctx context.Context, resolver AddressResolver, raw string) (cep.Result, error) {
	res := resolver.Resolve(ctx, raw)
	if !res.Valido {
		return res, internalShared.Invalid("CEP inválido: %s", res.Mensagem)
	}
	return res, nil
}
