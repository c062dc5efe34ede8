package suppliers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/odyssey-erp/cadastro/internal/masterdata/shared"
)

type Service struct {
	repo     Repository
	resolver shared.AddressResolver
	logger   *slog.Logger
}

func NewService(repo Repository, resolver shared.AddressResolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, resolver: resolver, logger: logger}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) (shared.Page[Supplier], error) {
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		return shared.Page[Supplier]{}, err
	}
	return shared.NewPage(items, filters, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.Get(ctx, id)
}

// Create validates the shape and key of req, resolves its CEP and persists it.
func (s *Service) Create(ctx context.Context, req SupplierRequest) (*Supplier, error) {
	if err := ValidateShape(req); err != nil {
		return nil, err
	}
	if err := validateUniquePersonID(ctx, s.repo, req.PersonID, 0); err != nil {
		return nil, err
	}
	supplier, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, err
	}
	s.logger.Info("supplier created", slog.Int64("id", created.ID), slog.String("tipo_pessoa", string(created.PersonType)))
	return created, nil
}

// Update replaces every mutable field of supplier id.
func (s *Service) Update(ctx context.Context, id int64, req SupplierRequest) (*Supplier, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateShape(req); err != nil {
		return nil, err
	}
	if err := validateUniquePersonID(ctx, s.repo, req.PersonID, id); err != nil {
		return nil, err
	}
	supplier, err := s.build(ctx, req)
	if err != nil {
		return nil, err
	}
	supplier.ID = id
	supplier.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, supplier)
	if err != nil {
		return nil, err
	}
	updated.Companies = existing.Companies
	return updated, nil
}

// Delete detaches the supplier from every company, then removes it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
		if err := repo.UnlinkAllCompanies(ctx, id); err != nil {
			return fmt.Errorf("unlink supplier companies: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		s.logger.Info("supplier deleted", slog.Int64("id", id))
		return nil
	})
}

func (s *Service) build(ctx context.Context, req SupplierRequest) (Supplier, error) {
	addr, err := shared.ResolveAddress(ctx, s.resolver, req.CEP)
	if err != nil {
		return Supplier{}, err
	}
	return Supplier{
		PersonID:     req.PersonID,
		PersonType:   req.PersonType,
		Name:         req.Name,
		Email:        req.Email,
		CEP:          addr.CEP,
		GovernmentID: req.governmentID(),
		BirthDate:    req.birthDate(),
		Street:       addr.Logradouro,
		District:     addr.Bairro,
		City:         addr.Cidade,
		Region:       addr.UF,
	}, nil
}
