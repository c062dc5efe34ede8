package suppliers

import (
	"strings"
	"time"

	"github.com/odyssey-erp/cadastro/internal/masterdata/shared"
)

// SupplierRequest is the body of POST and PUT /fornecedores.
type SupplierRequest struct {
	PersonID     string       `json:"cpfCnpj" validate:"required,digits,cpfcnpj"`
	PersonType   PersonType   `json:"tipoPessoa" validate:"required,oneof=FISICA JURIDICA"`
	Name         string       `json:"nome" validate:"required,notblank,max=200"`
	Email        string       `json:"email" validate:"required,notblank,email,max=200"`
	CEP          string       `json:"cep" validate:"required,digits,len=8"`
	GovernmentID string       `json:"rg" validate:"max=20"`
	BirthDate    *shared.Date `json:"dataNascimento"`
}

// SupplierResponse is the supplier as served over HTTP.
type SupplierResponse struct {
	ID         int64            `json:"id"`
	PersonID   string           `json:"cpfCnpj"`
	PersonType PersonType       `json:"tipoPessoa"`
	Name       string           `json:"nome"`
	Email      string           `json:"email"`
	CEP        string           `json:"cep"`
	RG         *string          `json:"rg"`
	BirthDate  *shared.Date     `json:"dataNascimento"`
	Street     string           `json:"logradouro"`
	District   string           `json:"bairro"`
	City       string           `json:"cidade"`
	Region     string           `json:"uf"`
	CreatedAt  time.Time        `json:"criadoEm"`
	UpdatedAt  *time.Time       `json:"atualizadoEm"`
	Companies  []CompanySummary `json:"empresas"`
}

// CompanySummary is a linked company inside a SupplierResponse.
type CompanySummary struct {
	ID        int64  `json:"id"`
	CNPJ      string `json:"cnpj"`
	TradeName string `json:"nomeFantasia"`
	CEP       string `json:"cep"`
	City      string `json:"cidade"`
	Region    string `json:"uf"`
}

// ToResponse assembles the HTTP view of s.
func ToResponse(s Supplier) SupplierResponse {
	resp := SupplierResponse{
		ID:         s.ID,
		PersonID:   s.PersonID,
		PersonType: s.PersonType,
		Name:       s.Name,
		Email:      s.Email,
		CEP:        s.CEP,
		RG:         s.GovernmentID,
		Street:     s.Street,
		District:   s.District,
		City:       s.City,
		Region:     s.Region,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
		Companies:  make([]CompanySummary, 0, len(s.Companies)),
	}
	if s.BirthDate != nil {
		d := shared.Date{Time: *s.BirthDate}
		resp.BirthDate = &d
	}
	for _, c := range s.Companies {
		resp.Companies = append(resp.Companies, CompanySummary(c))
	}
	return resp
}

func (req SupplierRequest) governmentID() *string {
	rg := strings.TrimSpace(req.GovernmentID)
	if rg == "" {
		return nil
	}
	return &rg
}

func (req SupplierRequest) birthDate() *time.Time {
	if req.BirthDate == nil || req.BirthDate.IsZero() {
		return nil
	}
	t := req.BirthDate.Time
	return &t
}
