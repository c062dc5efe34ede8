package suppliers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/cadastro/internal/cep"
	"github.com/odyssey-erp/cadastro/internal/masterdata/shared"
	internalShared "github.com/odyssey-erp/cadastro/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type link struct{ companyID, supplierID int64 }

type mockRepository struct {
	suppliers map[int64]*Supplier
	links     map[link]bool
	nextID    int64

	createCalls int
	updateCalls int
	deleteCalls int

	// Error injection
	txError     error
	listError   error
	deleteError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		suppliers: make(map[int64]*Supplier),
		links:     make(map[link]bool),
		nextID:    1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	return fn(ctx, m)
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Supplier, error) {
	s, ok := m.suppliers[id]
	if !ok {
		return nil, internalShared.NotFound("Fornecedor", id)
	}
	out := *s
	out.Companies = []CompanyRef{}
	for l := range m.links {
		if l.supplierID == id {
			out.Companies = append(out.Companies, CompanyRef{ID: l.companyID})
		}
	}
	return &out, nil
}

func (m *mockRepository) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int64, error) {
	if m.listError != nil {
		return nil, 0, m.listError
	}
	var result []Supplier
	for _, s := range m.suppliers {
		if filters.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filters.Name)) {
			continue
		}
		result = append(result, *s)
	}
	return result, int64(len(result)), nil
}

func (m *mockRepository) ExistsByPersonID(ctx context.Context, personID string, excludeID int64) (bool, error) {
	for _, s := range m.suppliers {
		if s.PersonID == personID && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) Create(ctx context.Context, supplier Supplier) (*Supplier, error) {
	m.createCalls++
	supplier.ID = m.nextID
	m.nextID++
	supplier.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	supplier.Companies = []CompanyRef{}
	stored := supplier
	m.suppliers[supplier.ID] = &stored
	return &supplier, nil
}

func (m *mockRepository) Update(ctx context.Context, supplier Supplier) (*Supplier, error) {
	m.updateCalls++
	if _, ok := m.suppliers[supplier.ID]; !ok {
		return nil, internalShared.NotFound("Fornecedor", supplier.ID)
	}
	stored := supplier
	m.suppliers[supplier.ID] = &stored
	return &supplier, nil
}

func (m *mockRepository) UnlinkAllCompanies(ctx context.Context, id int64) error {
	for l := range m.links {
		if l.supplierID == id {
			delete(m.links, l)
		}
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.suppliers, id)
	return nil
}

func (m *mockRepository) companiesOf(supplierID int64) []int64 {
	var ids []int64
	for l := range m.links {
		if l.supplierID == supplierID {
			ids = append(ids, l.companyID)
		}
	}
	return ids
}

// ============================================================================
// STUB RESOLVER
// ============================================================================

type stubResolver struct {
	results map[string]cep.Result
	calls   int
}

func (s *stubResolver) Resolve(ctx context.Context, raw string) cep.Result {
	s.calls++
	if res, ok := s.results[raw]; ok {
		return res
	}
	return cep.Result{CEP: raw, Mensagem: cep.MsgNotFound}
}

func newStubResolver() *stubResolver {
	return &stubResolver{results: map[string]cep.Result{
		"80000000": {CEP: "80000000", UF: "PR", Cidade: "Curitiba", Bairro: "Centro", Logradouro: "Rua XV de Novembro", Valido: true},
		"01001000": {CEP: "01001000", UF: "SP", Cidade: "São Paulo", Bairro: "Sé", Logradouro: "Praça da Sé", Valido: true},
	}}
}

// ============================================================================
// HELPERS
// ============================================================================

func individualRequest() SupplierRequest {
	birth := shared.NewDate(1990, time.May, 20)
	return SupplierRequest{
		PersonID:     "12345678901",
		PersonType:   PersonIndividual,
		Name:         "Maria Souza",
		Email:        "maria@example.com",
		CEP:          "80000000",
		GovernmentID: "123456789",
		BirthDate:    &birth,
	}
}

func organizationRequest() SupplierRequest {
	return SupplierRequest{
		PersonID:   "98765432000110",
		PersonType: PersonOrganization,
		Name:       "Distribuidora Sul",
		Email:      "contato@sul.com.br",
		CEP:        "01001000",
	}
}

func newTestService(repo *mockRepository, resolver *stubResolver) *Service {
	return NewService(repo, resolver, nil)
}

// ============================================================================
// CREATE
// ============================================================================

func TestService_Create_Individual(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())

	created, err := svc.Create(context.Background(), individualRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, PersonIndividual, created.PersonType)
	assert.Equal(t, "PR", created.Region)
	assert.Equal(t, "Curitiba", created.City)
	assert.Equal(t, "Rua XV de Novembro", created.Street)
	require.NotNil(t, created.GovernmentID)
	assert.Equal(t, "123456789", *created.GovernmentID)
	require.NotNil(t, created.BirthDate)
	assert.Equal(t, 1990, created.BirthDate.Year())
	assert.Empty(t, created.Companies)
}

func TestService_Create_OrganizationCarriesNoPersonalFields(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())

	created, err := svc.Create(context.Background(), organizationRequest())
	require.NoError(t, err)

	assert.Nil(t, created.GovernmentID)
	assert.Nil(t, created.BirthDate)
	assert.Equal(t, "SP", created.Region)
}

func TestService_Create_ShapeViolations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SupplierRequest)
		message string
	}{
		{
			name:    "individual missing rg",
			mutate:  func(r *SupplierRequest) { r.GovernmentID = "" },
			message: "RG é obrigatório para Pessoa Física",
		},
		{
			name:    "individual blank rg",
			mutate:  func(r *SupplierRequest) { r.GovernmentID = "   " },
			message: "RG é obrigatório para Pessoa Física",
		},
		{
			name:    "individual missing birth date",
			mutate:  func(r *SupplierRequest) { r.BirthDate = nil },
			message: "Data de Nascimento é obrigatória para Pessoa Física",
		},
		{
			name:    "individual with cnpj length",
			mutate:  func(r *SupplierRequest) { r.PersonID = "12345678000199" },
			message: "Pessoa Física deve informar CPF com 11 dígitos",
		},
		{
			name: "organization with cpf length",
			mutate: func(r *SupplierRequest) {
				r.PersonType = PersonOrganization
				r.PersonID = "12345678901"
			},
			message: "Pessoa Jurídica deve informar CNPJ com 14 dígitos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepository()
			resolver := newStubResolver()
			svc := newTestService(repo, resolver)

			req := individualRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, internalShared.ErrValidation)
			assert.Equal(t, tt.message, internalShared.Message(err))
			assert.Zero(t, repo.createCalls)
			assert.Zero(t, resolver.calls)
		})
	}
}

func TestService_Create_DuplicatePersonID(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())

	_, err := svc.Create(context.Background(), individualRequest())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), individualRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, internalShared.ErrDuplicate)
	assert.Equal(t, "CPF/CNPJ já cadastrado: 12345678901", internalShared.Message(err))
	assert.Equal(t, 1, repo.createCalls)
}

func TestService_Create_InvalidCEP(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())

	req := organizationRequest()
	req.CEP = "99999999"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, internalShared.ErrValidation)
	assert.Equal(t, "CEP inválido: CEP não encontrado", internalShared.Message(err))
	assert.Zero(t, repo.createCalls)
}

// ============================================================================
// UPDATE
// ============================================================================

func TestService_Update_ReplacesFields(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())
	created, err := svc.Create(context.Background(), individualRequest())
	require.NoError(t, err)

	req := individualRequest()
	req.Name = "Maria S. Lima"
	req.CEP = "01001000"

	updated, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Maria S. Lima", updated.Name)
	assert.Equal(t, "SP", updated.Region)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestService_Update_KeepsOwnPersonID(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())
	created, err := svc.Create(context.Background(), individualRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, individualRequest())
	assert.NoError(t, err)
}

func TestService_Update_DuplicateOfAnotherSupplier(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())
	_, err := svc.Create(context.Background(), organizationRequest())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), individualRequest())
	require.NoError(t, err)

	req := organizationRequest()
	_, err = svc.Update(context.Background(), second.ID, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, internalShared.ErrDuplicate)
	assert.Equal(t, "CPF/CNPJ já cadastrado por outro fornecedor: 98765432000110", internalShared.Message(err))
	assert.Zero(t, repo.updateCalls)
}

func TestService_Update_NotFound(t *testing.T) {
	repo := newMockRepository()
	resolver := newStubResolver()
	svc := newTestService(repo, resolver)

	_, err := svc.Update(context.Background(), 42, individualRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, internalShared.ErrNotFound)
	assert.Equal(t, "Fornecedor com ID 42 não encontrado(a)", internalShared.Message(err))
	assert.Zero(t, resolver.calls)
}

// ============================================================================
// DELETE
// ============================================================================

func TestService_Delete_RemovesFromEveryCompany(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())
	created, err := svc.Create(context.Background(), individualRequest())
	require.NoError(t, err)
	other, err := svc.Create(context.Background(), organizationRequest())
	require.NoError(t, err)

	repo.links[link{companyID: 10, supplierID: created.ID}] = true
	repo.links[link{companyID: 20, supplierID: created.ID}] = true
	repo.links[link{companyID: 10, supplierID: other.ID}] = true

	err = svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Empty(t, repo.companiesOf(created.ID))
	assert.Equal(t, []int64{10}, repo.companiesOf(other.ID))
	_, ok := repo.suppliers[created.ID]
	assert.False(t, ok)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())

	err := svc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, internalShared.ErrNotFound)
	assert.Zero(t, repo.deleteCalls)
}

func TestService_Delete_TxError(t *testing.T) {
	repo := newMockRepository()
	repo.txError = errors.New("connection reset")
	svc := newTestService(repo, newStubResolver())

	err := svc.Delete(context.Background(), 1)
	assert.EqualError(t, err, "connection reset")
}

// ============================================================================
// LIST
// ============================================================================

func TestService_List_BuildsPage(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, newStubResolver())
	_, err := svc.Create(context.Background(), individualRequest())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), organizationRequest())
	require.NoError(t, err)

	page, err := svc.List(context.Background(), shared.ListFilters{Page: 0, Size: 10, Name: "maria"})
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, 1, page.TotalPages)
	assert.True(t, page.First)
	assert.True(t, page.Last)
}

func TestService_List_Error(t *testing.T) {
	repo := newMockRepository()
	repo.listError = errors.New("db down")
	svc := newTestService(repo, newStubResolver())

	_, err := svc.List(context.Background(), shared.ListFilters{Size: 10})
	assert.Error(t, err)
}
