package companies

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
	"github.com/odyssey-erp/cadastro/internal/masterdata/suppliers"
	"github.com/odyssey-erp/cadastro/internal/platform/db"
	internalShared "github.com/odyssey-erp/cadastro/internal/shared"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Company, error)
	GetSupplier(ctx context.Context, id int64) (*suppliers.Supplier, error)
	List(ctx context.Context, filters shared.ListFilters) ([]Company, int64, error)
	ExistsByCNPJ(ctx context.Context, cnpj string, excludeID int64) (bool, error)
	Create(ctx context.Context, company Company) (*Company, error)
	Update(ctx context.Context, company Company) (*Company, error)
	LinkSupplier(ctx context.Context, companyID, supplierID int64) error
	UnlinkSupplier(ctx context.Context, companyID, supplierID int64) error
	ClearSuppliers(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var companyColumns = []string{
	"id", "cnpj", "nome_fantasia", "cep", "logradouro", "bairro", "cidade", "uf", "criado_em", "atualizado_em",
}

// sortColumns maps the API sort fields to columns.
var sortColumns = map[string]string{
	"id":           "id",
	"cnpj":         "cnpj",
	"nomeFantasia": "nome_fantasia",
	"cidade":       "cidade",
	"uf":           "uf",
	"criadoEm":     "criado_em",
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

func (r *repository) Get(ctx context.Context, id int64) (*Company, error) {
	query, args, err := psql.Select(companyColumns...).From("empresas").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	var c Company
	if err := pgxscan.Get(ctx, r.db, &c, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internalShared.NotFound("Empresa", id)
		}
		return nil, err
	}
	linked, err := r.suppliersFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	c.Suppliers = linked[id]
	return &c, nil
}

// GetSupplier loads the supplier side of a link on the repository's own
// connection. The row is share-locked so a concurrent delete waits for the
// enclosing transaction.
func (r *repository) GetSupplier(ctx context.Context, id int64) (*suppliers.Supplier, error) {
	query, args, err := supplierQuery(id).ToSql()
	if err != nil {
		return nil, err
	}
	var s suppliers.Supplier
	if err := pgxscan.Get(ctx, r.db, &s, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, internalShared.NotFound("Fornecedor", id)
		}
		return nil, fmt.Errorf("load supplier: %w", err)
	}
	return &s, nil
}

func supplierQuery(id int64) sq.SelectBuilder {
	return psql.Select("id", "cpf_cnpj", "tipo_pessoa", "nome", "email", "cep", "rg", "data_nascimento",
		"logradouro", "bairro", "cidade", "uf", "criado_em", "atualizado_em").
		From("fornecedores").
		Where(sq.Eq{"id": id}).
		Suffix("FOR SHARE")
}

func (r *repository) List(ctx context.Context, filters shared.ListFilters) ([]Company, int64, error) {
	countSQL, countArgs, err := psql.Select("COUNT(*)").From("empresas").Where(listConditions(filters)).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	query, args, err := listQuery(filters).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var companies []Company
	if err := pgxscan.Select(ctx, r.db, &companies, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}

	ids := make([]int64, 0, len(companies))
	for _, c := range companies {
		ids = append(ids, c.ID)
	}
	linked, err := r.suppliersFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range companies {
		companies[i].Suppliers = linked[companies[i].ID]
	}
	return companies, total, nil
}

// listConditions matches the trade name case-insensitively or the CNPJ by substring.
func listConditions(filters shared.ListFilters) sq.Sqlizer {
	if filters.Search == "" {
		return sq.And{}
	}
	pattern := "%" + filters.Search + "%"
	return sq.Or{
		sq.ILike{"nome_fantasia": pattern},
		sq.Like{"cnpj": pattern},
	}
}

func listQuery(filters shared.ListFilters) sq.SelectBuilder {
	return psql.Select(companyColumns...).
		From("empresas").
		Where(listConditions(filters)).
		OrderBy(filters.OrderBy(sortColumns, "nome_fantasia"), "id ASC").
		Limit(uint64(filters.Size)).
		Offset(filters.Offset())
}

func (r *repository) suppliersFor(ctx context.Context, ids []int64) (map[int64][]SupplierRef, error) {
	out := make(map[int64][]SupplierRef, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := psql.
		Select("ef.empresa_id", "f.id", "f.cpf_cnpj", "f.tipo_pessoa", "f.nome", "f.email").
		From("empresa_fornecedor ef").
		Join("fornecedores f ON f.id = ef.fornecedor_id").
		Where(sq.Eq{"ef.empresa_id": ids}).
		OrderBy("f.nome").
		ToSql()
	if err != nil {
		return nil, err
	}
	var rows []struct {
		CompanyID int64 `db:"empresa_id"`
		SupplierRef
	}
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load company suppliers: %w", err)
	}
	for _, row := range rows {
		out[row.CompanyID] = append(out[row.CompanyID], row.SupplierRef)
	}
	return out, nil
}

func (r *repository) ExistsByCNPJ(ctx context.Context, cnpj string, excludeID int64) (bool, error) {
	sub := psql.Select("1").From("empresas").Where(sq.Eq{"cnpj": cnpj})
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

func (r *repository) Create(ctx context.Context, company Company) (*Company, error) {
	query, args, err := psql.Insert("empresas").
		Columns("cnpj", "nome_fantasia", "cep", "logradouro", "bairro", "cidade", "uf", "criado_em").
		Values(company.CNPJ, company.TradeName, company.CEP, company.Street, company.District,
			company.City, company.Region, r.now()).
		Suffix("RETURNING id, criado_em").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.QueryRow(ctx, query, args...).Scan(&company.ID, &company.CreatedAt); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, internalShared.Duplicate("CNPJ já cadastrado: %s", company.CNPJ)
		}
		return nil, fmt.Errorf("insert company: %w", err)
	}
	company.Suppliers = []SupplierRef{}
	return &company, nil
}

func (r *repository) Update(ctx context.Context, company Company) (*Company, error) {
	now := r.now()
	query, args, err := psql.Update("empresas").
		SetMap(map[string]any{
			"cnpj":          company.CNPJ,
			"nome_fantasia": company.TradeName,
			"cep":           company.CEP,
			"logradouro":    company.Street,
			"bairro":        company.District,
			"cidade":        company.City,
			"uf":            company.Region,
			"atualizado_em": now,
		}).
		Where(sq.Eq{"id": company.ID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, internalShared.Duplicate("CNPJ já cadastrado por outra empresa: %s", company.CNPJ)
		}
		return nil, fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, internalShared.NotFound("Empresa", company.ID)
	}
	company.UpdatedAt = &now
	return &company, nil
}

// LinkSupplier adds the pair to the join table; an existing pair is left as is.
func (r *repository) LinkSupplier(ctx context.Context, companyID, supplierID int64) error {
	query, args, err := psql.Insert("empresa_fornecedor").
		Columns("empresa_id", "fornecedor_id").
		Values(companyID, supplierID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("link supplier: %w", err)
	}
	return nil
}

func (r *repository) UnlinkSupplier(ctx context.Context, companyID, supplierID int64) error {
	query, args, err := psql.Delete("empresa_fornecedor").
		Where(sq.Eq{"empresa_id": companyID, "fornecedor_id": supplierID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("unlink supplier: %w", err)
	}
	return nil
}

func (r *repository) ClearSuppliers(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("empresa_fornecedor").Where(sq.Eq{"empresa_id": id}).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, query, args...)
	return err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("empresas").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return internalShared.NotFound("Empresa", id)
	}
	return nil
}
