package suppliers

import (
	"context"
	"fmt"
	"strings"

	"github.com/odyssey-erp/cadastro/internal/shared"
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

// ValidateShape applies the per-PersonType field rules.
func ValidateShape(req SupplierRequest) error {
	switch req.PersonType {
	case PersonIndividual:
		if !digitsOfLength(req.PersonID, cpfLength) {
			return shared.Invalid("Pessoa Física deve informar CPF com %d dígitos", cpfLength)
		}
		if strings.TrimSpace(req.GovernmentID) == "" {
			return shared.Invalid("RG é obrigatório para Pessoa Física")
		}
		if req.BirthDate == nil || req.BirthDate.IsZero() {
			return shared.Invalid("Data de Nascimento é obrigatória para Pessoa Física")
		}
	case PersonOrganization:
		if !digitsOfLength(req.PersonID, cnpjLength) {
			return shared.Invalid("Pessoa Jurídica deve informar CNPJ com %d dígitos", cnpjLength)
		}
	default:
		return shared.Invalid("tipoPessoa deve ser um de: %s %s", PersonIndividual, PersonOrganization)
	}
	return nil
}

func digitsOfLength(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateUniquePersonID rejects a CPF/CNPJ held by another supplier. excludeID
// is the supplier being updated, zero on create.
func validateUniquePersonID(ctx context.Context, repo Repository, personID string, excludeID int64) error {
	exists, err := repo.ExistsByPersonID(ctx, personID, excludeID)
	if err != nil {
		return fmt.Errorf("check cpf/cnpj: %w", err)
	}
	if !exists {
		return nil
	}
	if excludeID > 0 {
		return shared.Duplicate("CPF/CNPJ já cadastrado por outro fornecedor: %s", personID)
	}
	return shared.Duplicate("CPF/CNPJ já cadastrado: %s", personID)
}
