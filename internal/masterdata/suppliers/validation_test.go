package suppliers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	internalShared "github.com/odyssey-erp/cadastro/internal/shared"
)

func TestValidateShape(t *testing.T) {
	tests := []struct {
		name    string
		base    func() SupplierRequest
		mutate  func(*SupplierRequest)
		wantMsg string
	}{
		{name: "valid individual", base: individualRequest},
		{name: "valid organization", base: organizationRequest},
		{
			name:    "cpf with a letter",
			base:    individualRequest,
			mutate:  func(r *SupplierRequest) { r.PersonID = "1234567890a" },
			wantMsg: "Pessoa Física deve informar CPF com 11 dígitos",
		},
		{
			name:    "cpf too short",
			base:    individualRequest,
			mutate:  func(r *SupplierRequest) { r.PersonID = "1234567890" },
			wantMsg: "Pessoa Física deve informar CPF com 11 dígitos",
		},
		{
			name:    "individual with a cnpj",
			base:    individualRequest,
			mutate:  func(r *SupplierRequest) { r.PersonID = "98765432000110" },
			wantMsg: "Pessoa Física deve informar CPF com 11 dígitos",
		},
		{
			name:    "blank rg",
			base:    individualRequest,
			mutate:  func(r *SupplierRequest) { r.GovernmentID = "  " },
			wantMsg: "RG é obrigatório para Pessoa Física",
		},
		{
			name:    "missing birth date",
			base:    individualRequest,
			mutate:  func(r *SupplierRequest) { r.BirthDate = nil },
			wantMsg: "Data de Nascimento é obrigatória para Pessoa Física",
		},
		{
			name:    "cnpj with punctuation",
			base:    organizationRequest,
			mutate:  func(r *SupplierRequest) { r.PersonID = "98765432/00011" },
			wantMsg: "Pessoa Jurídica deve informar CNPJ com 14 dígitos",
		},
		{
			name:    "organization with a cpf",
			base:    organizationRequest,
			mutate:  func(r *SupplierRequest) { r.PersonID = "12345678901" },
			wantMsg: "Pessoa Jurídica deve informar CNPJ com 14 dígitos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.base()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			err := ValidateShape(req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, internalShared.ErrValidation)
			assert.Equal(t, tt.wantMsg, internalShared.Message(err))
		})
	}
}
