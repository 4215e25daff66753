package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// AdminService implements user management, the provider approval workflow
// and the dashboard aggregate.
type AdminService struct {
	users     ports.UserRepository
	providers ports.ProviderRepository
	stats     ports.StatsRepository
	notifier  ports.Notifier
	log       zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	providers ports.ProviderRepository,
	stats ports.StatsRepository,
	notifier ports.Notifier,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:     users,
		providers: providers,
		stats:     stats,
		notifier:  notifier,
		log:       log,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, filter ports.UserListFilter) (*ports.UserPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	items, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// SetBlocked toggles the block flag. Admin accounts cannot be blocked.
func (s *AdminService) SetBlocked(ctx context.Context, userID string, blocked bool) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if err := s.users.SetBlocked(ctx, userID, blocked); err != nil {
		return nil, fmt.Errorf("set blocked: %w", err)
	}
	user.IsBlocked = blocked

	s.log.Info().Str("user_id", userID).Bool("blocked", blocked).Msg("user block flag updated")
	return user, nil
}

// PendingProviders returns unverified provider users joined with their
// profiles. A missing profile yields a nil Profile rather than an error.
func (s *AdminService) PendingProviders(ctx context.Context) ([]*ports.PendingProvider, error) {
	users, err := s.users.ListUnverifiedProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending providers: %w", err)
	}

	out := make([]*ports.PendingProvider, 0, len(users))
	for _, u := range users {
		profile, err := s.providers.FindByUserID(ctx, u.ID)
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("pending providers: profile for %s: %w", u.ID, err)
		}
		out = append(out, &ports.PendingProvider{User: u, Profile: profile})
	}
	return out, nil
}

// ApproveRejectProvider resolves a pending provider. Approval flips both
// User.IsVerified and the profile status; rejection only marks the profile.
// The two fields stay separate records of the same fact; see the note on
// domain.ProviderProfile.
func (s *AdminService) ApproveRejectProvider(ctx context.Context, input ports.ApproveRejectInput) (*domain.User, *domain.ProviderProfile, error) {
	user, err := s.users.FindByID(ctx, input.ProviderUserID)
	if err != nil {
		return nil, nil, err
	}
	if user.Role != domain.RoleProvider {
		return nil, nil, domain.ErrUserNotFound
	}

	profile, err := s.providers.FindByUserID(ctx, input.ProviderUserID)
	if err != nil {
		return nil, nil, err
	}

	if input.Approve {
		if err := s.users.SetVerified(ctx, user.ID, true); err != nil {
			return nil, nil, fmt.Errorf("approve provider: %w", err)
		}
		if err := s.providers.SetStatus(ctx, profile.ID, domain.ApprovalApproved, ""); err != nil {
			return nil, nil, fmt.Errorf("approve provider: profile status: %w", err)
		}
		user.IsVerified = true
		profile.Status = domain.ApprovalApproved

		s.log.Info().Str("user_id", user.ID).Msg("provider approved")
		s.notifier.Enqueue(providerApproved(user))
	} else {
		reason := input.RejectionReason
		if reason == "" {
			reason = "Registration rejected"
		}
		if err := s.providers.SetStatus(ctx, profile.ID, domain.ApprovalRejected, reason); err != nil {
			return nil, nil, fmt.Errorf("reject provider: %w", err)
		}
		profile.Status = domain.ApprovalRejected
		profile.RejectionReason = reason

		s.log.Info().Str("user_id", user.ID).Str("reason", reason).Msg("provider rejected")
		s.notifier.Enqueue(providerRejected(user, input.RejectionReason))
	}

	return user, profile, nil
}

func (s *AdminService) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	return s.stats.DashboardStats(ctx)
}
