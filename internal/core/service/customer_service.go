package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// CustomerService implements the customer's address book. The first address a
// user adds becomes their default regardless of the flag on the request.
type CustomerService struct {
	addresses ports.AddressRepository
	users     ports.UserRepository
	log       zerolog.Logger
}

func NewCustomerService(addresses ports.AddressRepository, users ports.UserRepository, log zerolog.Logger) *CustomerService {
	return &CustomerService{addresses: addresses, users: users, log: log}
}

func (s *CustomerService) AddAddress(ctx context.Context, userID string, input ports.AddressInput) (*domain.Address, error) {
	count, err := s.addresses.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.addresses.Create(ctx, &domain.Address{
		UserID:       userID,
		Label:        input.Label,
		AddressLine1: input.AddressLine1,
		AddressLine2: input.AddressLine2,
		City:         input.City,
		State:        input.State,
		Pincode:      input.Pincode,
		Country:      input.Country,
		Coordinates:  input.Coordinates,
		IsDefault:    input.IsDefault || count == 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}

	if created.IsDefault {
		if err := s.makeDefault(ctx, userID, created.ID); err != nil {
			return nil, err
		}
	}

	s.log.Info().Str("user_id", userID).Str("address_id", created.ID).Msg("address added")
	return created, nil
}

func (s *CustomerService) ListAddresses(ctx context.Context, userID string) ([]*domain.Address, error) {
	return s.addresses.ListByUser(ctx, userID)
}

func (s *CustomerService) UpdateAddress(ctx context.Context, userID, addressID string, input ports.AddressInput) (*domain.Address, error) {
	addr, err := s.addresses.FindByID(ctx, addressID, userID)
	if err != nil {
		return nil, err
	}

	addr.Label = input.Label
	addr.AddressLine1 = input.AddressLine1
	addr.AddressLine2 = input.AddressLine2
	addr.City = input.City
	addr.State = input.State
	addr.Pincode = input.Pincode
	addr.Country = input.Country
	addr.Coordinates = input.Coordinates
	addr.IsDefault = addr.IsDefault || input.IsDefault
	addr.UpdatedAt = time.Now().UTC()

	if err := s.addresses.Update(ctx, addr); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	if input.IsDefault {
		if err := s.makeDefault(ctx, userID, addr.ID); err != nil {
			return nil, err
		}
	}

	return addr, nil
}

// DeleteAddress removes the address. When the default is deleted the oldest
// remaining address, if any, is promoted.
func (s *CustomerService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	addr, err := s.addresses.FindByID(ctx, addressID, userID)
	if err != nil {
		return err
	}

	if err := s.addresses.Delete(ctx, addressID, userID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	if addr.IsDefault {
		remaining, err := s.addresses.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("delete address: list remaining: %w", err)
		}
		next := ""
		if len(remaining) > 0 {
			next = remaining[0].ID
			remaining[0].IsDefault = true
			remaining[0].UpdatedAt = time.Now().UTC()
			if err := s.addresses.Update(ctx, remaining[0]); err != nil {
				return fmt.Errorf("delete address: promote default: %w", err)
			}
		}
		if err := s.users.SetDefaultAddress(ctx, userID, next); err != nil {
			return fmt.Errorf("delete address: user default: %w", err)
		}
	}

	s.log.Info().Str("user_id", userID).Str("address_id", addressID).Msg("address deleted")
	return nil
}

func (s *CustomerService) makeDefault(ctx context.Context, userID, addressID string) error {
	if err := s.addresses.ClearDefault(ctx, userID, addressID); err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	if err := s.users.SetDefaultAddress(ctx, userID, addressID); err != nil {
		return fmt.Errorf("set default address: user: %w", err)
	}
	return nil
}
