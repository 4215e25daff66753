package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/careloop/booking-platform/internal/core/domain"
)

const collectionProviderProfiles = "provider_profiles"

type ProviderRepository struct {
	col *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepository {
	return &ProviderRepository{col: db.Collection(collectionProviderProfiles)}
}

func (r *ProviderRepository) Create(ctx context.Context, p *domain.ProviderProfile) (*domain.ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrProfileExists
		}
		return nil, fmt.Errorf("insert provider profile: %w", err)
	}

	p.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return p, nil
}

func (r *ProviderRepository) FindByUserID(ctx context.Context, userID string) (*domain.ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.ProviderProfile
	if err := r.col.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find provider profile: %w", err)
	}
	return &p, nil
}

func (r *ProviderRepository) FindByLicense(ctx context.Context, licenseNumber string) (*domain.ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.ProviderProfile
	if err := r.col.FindOne(ctx, bson.M{"license_number": licenseNumber}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find provider by license: %w", err)
	}
	return &p, nil
}

// FirstAvailableForService picks the oldest approved, available profile
// serving the category. First match wins.
func (r *ProviderRepository) FirstAvailableForService(ctx context.Context, serviceID string) (*domain.ProviderProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status":               domain.ApprovalApproved,
		"is_available":         true,
		"service_category_ids": serviceID,
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})

	var p domain.ProviderProfile
	if err := r.col.FindOne(ctx, filter, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find available provider: %w", err)
	}
	return &p, nil
}

func (r *ProviderRepository) SetStatus(ctx context.Context, profileID string, status domain.ApprovalStatus, rejectionReason string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return domain.ErrProfileNotFound
	}

	set := bson.M{
		"status":           status,
		"rejection_reason": rejectionReason,
		"updated_at":       time.Now().UTC(),
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update provider status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// AddEarnings increments the running totals in a single atomic update.
func (r *ProviderRepository) AddEarnings(ctx context.Context, profileID string, amount float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(profileID)
	if err != nil {
		return domain.ErrProfileNotFound
	}

	update := bson.M{
		"$inc": bson.M{"earnings.total": amount, "earnings.pending": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("add earnings: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes creates the unique user and license indexes plus the
// assignment lookup index.
func (r *ProviderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "license_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "is_available", Value: 1}, {Key: "service_category_ids", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
