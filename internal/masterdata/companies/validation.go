package companies

import (
	"context"
	"fmt"
	"time"

	"github.com/odyssey-erp/cadastro/internal/masterdata/shared"
	"github.com/odyssey-erp/cadastro/internal/masterdata/suppliers"
	internalShared "github.com/odyssey-erp/cadastro/internal/shared"
)

// validateUniqueCNPJ rejects a CNPJ held by another company. excludeID is the
// company being updated, zero on create.
func validateUniqueCNPJ(ctx context.Context, repo Repository, cnpj string, excludeID int64) error {
	exists, err := repo.ExistsByCNPJ(ctx, cnpj, excludeID)
	if err != nil {
		return fmt.Errorf("check cnpj: %w", err)
	}
	if !exists {
		return nil
	}
	if excludeID > 0 {
		return internalShared.Duplicate("CNPJ já cadastrado por outra empresa: %s", cnpj)
	}
	return internalShared.Duplicate("CNPJ já cadastrado: %s", cnpj)
}

// ValidateLinkAge enforces the regional minimum age for individual suppliers.
// Organizations, suppliers without a birth date and companies in regions that
// allow minors always pass.
func ValidateLinkAge(company Company, supplier suppliers.Supplier, today time.Time) error {
	if shared.AllowsMinors(company.Region) {
		return nil
	}
	if supplier.PersonType != suppliers.PersonIndividual || supplier.BirthDate == nil {
		return nil
	}
	age := shared.AgeOn(*supplier.BirthDate, today)
	if age >= shared.AdultAge {
		return nil
	}
	region, _ := shared.LookupRegion(company.Region)
	return &shared.AgeRestrictedError{Region: region, Age: age}
}
