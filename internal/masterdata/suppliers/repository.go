package suppliers

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/cadastro/internal/masterdata/shared"
	"github.com/odyssey-erp/cadastro/internal/platform/db"
	internalShared "github.com/odyssey-erp/cadastro/internal/shared"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Supplier, error)
	List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int64, error)
	ExistsByPersonID(ctx context.Context, personID string, excludeID int64) (bool, error)
	Create(ctx context.Context, supplier Supplier) (*Supplier, error)
	Update(ctx context.Context, supplier Supplier) (*Supplier, error)
	UnlinkAllCompanies(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var supplierColumns = []string{
	"id", "cpf_cnpj", "tipo_pessoa", "nome", "email", "cep", "rg", "data_nascimento",
	"logradouro", "bairro", "cidade", "uf", "criado_em", "atualizado_em",
}

// sortColumns maps the API sort fields to columns.
var sortColumns = map[string]string{
	"id":         "id",
	"nome":       "nome",
	"cpfCnpj":    "cpf_cnpj",
	"tipoPessoa": "tipo_pessoa",
	"email":      "email",
	"cidade":     "cidade",
	"uf":         "uf",
	"criadoEm":   "criado_em",
}

type repository struct {
	db   db.Querier
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool, now: time.Now}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool, now: r.now})
	})
}

func (r *repository) Get(ctx context.Context, id int64) (*Supplier, error) {
	query, args, err := psql.Select(supplierColumns...).From("fornecedores").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var s Supplier
	if err := pgxscan.Get(ctx, r.db, &s, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internalShared.NotFound("Fornecedor", id)
		}
		return nil, err
	}
	companies, err := r.companiesFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	s.Companies = companies[id]
	return &s, nil
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Supplier, int64, error) {
	where := listConditions(filters)

	countSQL, countArgs, err := psql.Select("COUNT(*)").From("fornecedores").Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	query, args, err := listQuery(filters).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var suppliers []Supplier
	if err := pgxscan.Select(ctx, r.db, &suppliers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list suppliers: %w", err)
	}

	ids := make([]int64, 0, len(suppliers))
	for _, s := range suppliers {
		ids = append(ids, s.ID)
	}
	companies, err := r.companiesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range suppliers {
		suppliers[i].Companies = companies[suppliers[i].ID]
	}
	return suppliers, total, nil
}

func listConditions(filters shared.ListFilters) sq.And {
	where := sq.And{}
	if filters.Name != "" {
		where = append(where, sq.ILike{"nome": "%" + filters.Name + "%"})
	}
	if filters.PersonID != "" {
		where = append(where, sq.Like{"cpf_cnpj": "%" + filters.PersonID + "%"})
	}
	return where
}

func listQuery(filters shared.ListFilters) sq.SelectBuilder {
	return psql.Select(supplierColumns...).
		From("fornecedores").
		Where(listConditions(filters)).
		OrderBy(filters.OrderBy(sortColumns, "nome"), "id ASC").
		Limit(uint64(filters.Size)).
		Offset(filters.Offset())
}

// companiesFor loads the linked companies of every supplier in ids.
func (r *repository) companiesFor(ctx context.Context, ids []int64) (map[int64][]CompanyRef, error) {
	out := make(map[int64][]CompanyRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := psql.
		Select("ef.fornecedor_id", "e.id", "e.cnpj", "e.nome_fantasia", "e.cep", "e.cidade", "e.uf").
		From("empresa_fornecedor ef").
		Join("empresas e ON e.id = ef.empresa_id").
		Where(sq.Eq{"ef.fornecedor_id": ids}).
		OrderBy("e.nome_fantasia").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []struct {
		SupplierID int64 `db:"fornecedor_id"`
		CompanyRef
	}
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load supplier companies: %w", err)
	}
	for _, row := range rows {
		out[row.SupplierID] = append(out[row.SupplierID], row.CompanyRef)
	}
	return out, nil
}

func (r *repository) ExistsByPersonID(ctx context.Context, personID string, excludeID int64) (bool, error) {
	sub := psql.Select("1").From("fornecedores").Where(sq.Eq{"cpf_cnpj": personID})
	if excludeID > 0 {
		sub = sub.Where(sq.NotEq{"id": excludeID})
	}
	query, args, err := sub.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, err
	}
	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *repository) Create(ctx context.Context, supplier Supplier) (*Supplier, error) {
	query, args, err := psql.Insert("fornecedores").
		Columns("cpf_cnpj", "tipo_pessoa", "nome", "email", "cep", "rg", "data_nascimento",
			"logradouro", "bairro", "cidade", "uf", "criado_em").
		Values(supplier.PersonID, string(supplier.PersonType), supplier.Name, supplier.Email, supplier.CEP,
			supplier.GovernmentID, supplier.BirthDate, supplier.Street, supplier.District,
			supplier.City, supplier.Region, r.now()).
		Suffix("RETURNING id, criado_em").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&supplier.ID, &supplier.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, internalShared.Duplicate("CPF/CNPJ já cadastrado: %s", supplier.PersonID)
		}
		return nil, fmt.Errorf("insert supplier: %w", err)
	}
	supplier.Companies = []CompanyRef{}
	return &supplier, nil
}

func (r *repository) Update(ctx context.Context, supplier Supplier) (*Supplier, error) {
	now := r.now()
	query, args, err := psql.Update("fornecedores").
		SetMap(map[string]any{
			"cpf_cnpj":        supplier.PersonID,
			"tipo_pessoa":     string(supplier.PersonType),
			"nome":            supplier.Name,
			"email":           supplier.Email,
			"cep":             supplier.CEP,
			"rg":              supplier.GovernmentID,
			"data_nascimento": supplier.BirthDate,
			"logradouro":      supplier.Street,
			"bairro":          supplier.District,
			"cidade":          supplier.City,
			"uf":              supplier.Region,
			"atualizado_em":   now,
		}).
		Where(sq.Eq{"id": supplier.ID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, internalShared.Duplicate("CPF/CNPJ já cadastrado por outro fornecedor: %s", supplier.PersonID)
		}
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, internalShared.NotFound("Fornecedor", supplier.ID)
	}
	supplier.UpdatedAt = &now
	return &supplier, nil
}

func (r *repository) UnlinkAllCompanies(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("empresa_fornecedor").Where(sq.Eq{"fornecedor_id": id}).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("fornecedores").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return internalShared.NotFound("Fornecedor", id)
	}
	return nil
}
