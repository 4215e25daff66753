package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

const minServiceDuration = 15

// CatalogService implements the public service listing and admin CRUD.
type CatalogService struct {
	catalog ports.CatalogRepository
	log     zerolog.Logger
}

func NewCatalogService(catalog ports.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, log: log}
}

func (s *CatalogService) ListActive(ctx context.Context) ([]*domain.ServiceCategory, error) {
	return s.catalog.ListActive(ctx)
}

func (s *CatalogService) ListAll(ctx context.Context) ([]*domain.ServiceCategory, error) {
	return s.catalog.ListAll(ctx)
}

func (s *CatalogService) Create(ctx context.Context, input ports.CreateServiceInput) (*domain.ServiceCategory, error) {
	if input.BasePrice < 0 {
		return nil, fmt.Errorf("%w: base price must not be negative", domain.ErrValidation)
	}
	if input.DurationMinutes < minServiceDuration {
		return nil, fmt.Errorf("%w: duration must be at least %d minutes", domain.ErrValidation, minServiceDuration)
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	discount := domain.Discount{}
	if input.Discount != nil {
		discount = *input.Discount
	}

	now := time.Now().UTC()
	created, err := s.catalog.Create(ctx, &domain.ServiceCategory{
		Name:            input.Name,
		Description:     input.Description,
		Icon:            input.Icon,
		BasePrice:       input.BasePrice,
		DurationMinutes: input.DurationMinutes,
		IsActive:        active,
		Discount:        discount,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("service_id", created.ID).Str("name", created.Name).Msg("service created")
	return created, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, upd ports.ServiceUpdate) (*domain.ServiceCategory, error) {
	if upd.BasePrice != nil && *upd.BasePrice < 0 {
		return nil, fmt.Errorf("%w: base price must not be negative", domain.ErrValidation)
	}
	if upd.DurationMinutes != nil && *upd.DurationMinutes < minServiceDuration {
		return nil, fmt.Errorf("%w: duration must be at least %d minutes", domain.ErrValidation, minServiceDuration)
	}

	updated, err := s.catalog.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("service_id", id).Msg("service updated")
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.catalog.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("service_id", id).Msg("service deleted")
	return nil
}
