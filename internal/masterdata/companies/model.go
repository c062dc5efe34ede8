package companies

import (
	"time"

	"github.com/odyssey-erp/cadastro/internal/masterdata/suppliers"
)

// Company represents a company entity
type Company struct {
	ID        int64      `db:"id"`
	CNPJ      string     `db:"cnpj"`
	TradeName string     `db:"nome_fantasia"`
	CEP       string     `db:"cep"`
	Street    string     `db:"logradouro"`
	District  string     `db:"bairro"`
	City      string     `db:"cidade"`
	Region    string     `db:"uf"`
	CreatedAt time.Time  `db:"criado_em"`
	UpdatedAt *time.Time `db:"atualizado_em"`

	Suppliers []SupplierRef `db:"-"`
}

// SupplierRef is the supplier side of a company link.
type SupplierRef struct {
	ID         int64                `db:"id"`
	PersonID   string               `db:"cpf_cnpj"`
	PersonType suppliers.PersonType `db:"tipo_pessoa"`
	Name       string               `db:"nome"`
	Email      string               `db:"email"`
}

// HasSupplier reports whether supplierID is linked.
func (c Company) HasSupplier(supplierID int64) bool {
	for _, s := range c.Suppliers {
		if s.ID == supplierID {
			return true
		}
	}
	return false
}
