package companies

import (
	"time"

	"github.com/odyssey-erp/cadastro/internal/masterdata/suppliers"
)

// CompanyRequest is the body of POST and PUT /empresas.
type CompanyRequest struct {
	CNPJ      string `json:"cnpj" validate:"required,digits,len=14"`
	TradeName string `json:"nomeFantasia" validate:"required,notblank,max=200"`
	CEP       string `json:"cep" validate:"required,digits,len=8"`
}

// CompanyResponse is the company as served over HTTP.
type CompanyResponse struct {
	ID        int64             `json:"id"`
	CNPJ      string            `json:"cnpj"`
	TradeName string            `json:"nomeFantasia"`
	CEP       string            `json:"cep"`
	Street    string            `json:"logradouro"`
	District  string            `json:"bairro"`
	City      string            `json:"cidade"`
	Region    string            `json:"uf"`
	CreatedAt time.Time         `json:"criadoEm"`
	UpdatedAt *time.Time        `json:"atualizadoEm"`
	Suppliers []SupplierSummary `json:"fornecedores"`
}

// SupplierSummary is a linked supplier inside a CompanyResponse.
type SupplierSummary struct {
	ID         int64                `json:"id"`
	PersonID   string               `json:"cpfCnpj"`
	PersonType suppliers.PersonType `json:"tipoPessoa"`
	Name       string               `json:"nome"`
	Email      string               `json:"email"`
}

// ToResponse assembles the HTTP view of c.
func ToResponse(c Company) CompanyResponse {
	resp := CompanyResponse{
		ID:        c.ID,
		CNPJ:      c.CNPJ,
		TradeName: c.TradeName,
		CEP:       c.CEP,
		Street:    c.Street,
		District:  c.District,
		City:      c.City,
		Region:    c.Region,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Suppliers: make([]SupplierSummary, 0, len(c.Suppliers)),
	}
	for _, s := range c.Suppliers {
		resp.Suppliers = append(resp.Suppliers, SupplierSummary(s))
	}
	return resp
}
