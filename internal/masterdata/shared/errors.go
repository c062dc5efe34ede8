package shared

import (
	"fmt"

	internalShared "github.com/odyssey-erp/cadastro/internal/shared"
)

// AgeRestrictedError rejects linking an under-age individual supplier to a
// company registered in a region that disallows it.
type AgeRestrictedError struct {
	Region Region
	Age    int
}

func (e *AgeRestrictedError) Error() string { return e.UserMessage() }

// UserMessage implements the message contract used by the HTTP layer.
func (e *AgeRestrictedError) UserMessage() string {
	return fmt.Sprintf("Empresas %s não podem cadastrar fornecedor pessoa física menor de idade. Idade do fornecedor: %d anos.", e.Region.Of, e.Age)
}

// Unwrap makes the error a business-rule violation.
func (e *AgeRestrictedError) Unwrap() error { return internalShared.ErrValidation }
