package companies

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/odyssey-erp/cadastro/internal/masterdata/shared"
)

type Service struct {
	repo     Repository
	resolver shared.AddressResolver
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(repo Repository, resolver shared.AddressResolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, resolver: resolver, logger: logger, now: time.Now}
}

// WithClock replaces the clock used by the link age rule.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) (shared.Page[Company], error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return shared.Page[Company]{}, err
	}
	return shared.NewPage(items, filters, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Company, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CompanyRequest) (*Company, error) {
	if err := validateUniqueCNPJ(ctx, s.repo, req.CNPJ, 0); err != nil {
		return nil, err
	}
	company, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, company)
	if err != nil {
		return nil, err
	}
	s.logger.Info("company created", slog.Int64("id", created.ID), slog.String("uf", created.Region))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req CompanyRequest) (*Company, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateUniqueCNPJ(ctx, s.repo, req.CNPJ, id); err != nil {
		return nil, err
	}
	company, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	company.ID = id
	company.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, company)
	if err != nil {
		return nil, err
	}
	updated.Suppliers = existing.Suppliers
	return updated, nil
}

// Delete clears the company's supplier links, then removes it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		if err := repo.ClearSuppliers(ctx, id); err != nil {
			return fmt.Errorf("clear company suppliers: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		s.logger.Info("company deleted", slog.Int64("id", id))
		return nil
	})
}

// LinkSupplier attaches supplierID to companyID. Linking an already linked
// pair succeeds without changes.
func (s *Service) LinkSupplier(ctx context.Context, companyID, supplierID int64) (*Company, error) {
	var out *Company
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		company, err := repo.Get(ctx, companyID)
		if err != nil {
			return err
		}
		supplier, err := repo.GetSupplier(ctx, supplierID)
		if err != nil {
			return err
		}
		if err := ValidateLinkAge(*company, *supplier, s.now()); err != nil {
			s.logger.Warn("supplier link rejected",
				slog.Int64("empresa_id", companyID),
				slog.Int64("fornecedor_id", supplierID),
				slog.Any("error", err))
			return err
		}
		if !company.HasSupplier(supplierID) {
			if err := repo.LinkSupplier(ctx, companyID, supplierID); err != nil {
				return err
			}
		}
		out, err = repo.Get(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UnlinkSupplier detaches supplierID from companyID. Unlinking a pair that
// is not linked succeeds without changes.
func (s *Service) UnlinkSupplier(ctx context.Context, companyID, supplierID int64) (*Company, error) {
	var out *Company
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		company, err := repo.Get(ctx, companyID)
		if err != nil {
			return err
		}
		if _, err := repo.GetSupplier(ctx, supplierID); err != nil {
			return err
		}
		if company.HasSupplier(supplierID) {
			if err := repo.UnlinkSupplier(ctx, companyID, supplierID); err != nil {
				return err
			}
		}
		out, err = repo.Get(ctx, companyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) build(ctx context.Context, req CompanyRequest) (Company, error) {
	addr, err := shared.ResolveAddress(ctx, s.resolver, req.CEP)
	if err != nil {
		return Company{}, err
	}
	return Company{
		CNPJ:      req.CNPJ,
		TradeName: req.TradeName,
		CEP:       addr.CEP,
		Street:    addr.Logradouro,
		District:  addr.Bairro,
		City:      addr.Cidade,
		Region:    addr.UF,
	}, nil
}
