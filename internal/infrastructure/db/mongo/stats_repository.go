package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

const recentBookingsLimit = 5

// StatsRepository computes the admin dashboard aggregate across collections.
type StatsRepository struct {
	db *mongo.Database
}

func NewStatsRepository(db *mongo.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) DashboardStats(ctx context.Context) (*ports.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	stats := &ports.DashboardStats{}

	users := r.db.Collection(collectionUsers)
	profiles := r.db.Collection(collectionProviderProfiles)
	bookings := r.db.Collection(collectionBookings)
	services := r.db.Collection(collectionServices)
	payments := r.db.Collection(collectionPayments)

	counts := []struct {
		col    *mongo.Collection
		filter bson.M
		dst    *int64
	}{
		{users, bson.M{"role": domain.RoleCustomer}, &stats.TotalCustomers},
		{users, bson.M{"role": domain.RoleProvider}, &stats.TotalProviders},
		{users, bson.M{"is_blocked": true}, &stats.BlockedUsers},
		{profiles, bson.M{"status": domain.ApprovalApproved}, &stats.ApprovedProviders},
		{profiles, bson.M{"status": domain.ApprovalPending}, &stats.PendingProviders},
		{bookings, bson.M{}, &stats.TotalBookings},
		{bookings, bson.M{"status": domain.BookingPending}, &stats.PendingBookings},
		{bookings, bson.M{"status": domain.BookingCompleted}, &stats.CompletedBookings},
		{bookings, bson.M{"status": domain.BookingCancelled}, &stats.CancelledBookings},
		{services, bson.M{}, &stats.TotalServices},
		{services, bson.M{"is_active": true}, &stats.ActiveServices},
	}
	for _, c := range counts {
		n, err := c.col.CountDocuments(ctx, c.filter)
		if err != nil {
			return nil, fmt.Errorf("dashboard stats: count: %w", err)
		}
		*c.dst = n
	}

	revenue, err := r.totalRevenue(ctx, payments)
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = revenue

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(recentBookingsLimit)
	cur, err := bookings.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: recent bookings: %w", err)
	}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &stats.RecentBookings); err != nil {
		return nil, fmt.Errorf("dashboard stats: decode bookings: %w", err)
	}

	return stats, nil
}

func (r *StatsRepository) totalRevenue(ctx context.Context, payments *mongo.Collection) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": domain.PaymentCompleted}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}}},
	}

	cur, err := payments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("dashboard stats: revenue: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("dashboard stats: decode revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
