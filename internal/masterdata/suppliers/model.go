package suppliers

import (
	"time"
)

// PersonType discriminates individual (CPF) from organization (CNPJ) suppliers.
type PersonType string

const (
	PersonIndividual   PersonType = "FISICA"
	PersonOrganization PersonType = "JURIDICA"
)

// Supplier represents a supplier entity
type Supplier struct {
	ID           int64      `db:"id"`
	PersonID     string     `db:"cpf_cnpj"`
	PersonType   PersonType `db:"tipo_pessoa"`
	Name         string     `db:"nome"`
	Email        string     `db:"email"`
	CEP          string     `db:"cep"`
	GovernmentID *string    `db:"rg"`
	BirthDate    *time.Time `db:"data_nascimento"`
	Street       string     `db:"logradouro"`
	District     string     `db:"bairro"`
	City         string     `db:"cidade"`
	Region       string     `db:"uf"`
	CreatedAt    time.Time  `db:"criado_em"`
	UpdatedAt    *time.Time `db:"atualizado_em"`

	Companies []CompanyRef `db:"-"`
}

// CompanyRef is the company side of a supplier link.
type CompanyRef struct {
	ID        int64  `db:"id"`
	CNPJ      string `db:"cnpj"`
	TradeName string `db:"nome_fantasia"`
	CEP       string `db:"cep"`
	City      string `db:"cidade"`
	Region    string `db:"uf"`
}
