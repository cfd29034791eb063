package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

const dealsCollection = "deals"

// DealRepository implements ports.DealRepository using MongoDB.
type DealRepository struct {
	coll *mongo.Collection
}

func NewDealRepository(db *mongo.Database) *DealRepository {
	return &DealRepository{coll: db.Collection(dealsCollection)}
}

// Create inserts a new deal document.
func (r *DealRepository) Create(ctx context.Context, d *domain.Deal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, d)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	if oid, ok := res.InsertedID.(interface{ Hex() string }); ok {
		d.ID = oid.Hex()
	}
	return nil
}

// FindByReference retrieves a deal by its external reference. When agentID is
// non-empty, an additional filter by agent_id is applied, so an agent asking
// for someone else's deal simply gets not-found.
func (r *DealRepository) FindByReference(ctx context.Context, reference string, agentID string) (*domain.Deal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"reference": reference}
	if agentID != "" {
		filter["agent_id"] = agentID
	}

	var d domain.Deal
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDealNotFound
		}
		return nil, fmt.Errorf("find deal: %w", err)
	}
	return &d, nil
}

// UpdateStatus performs the optimistic-concurrency transition: the update only
// matches while the stored status still equals expected. Exactly one of two
// racing callers can win; the loser observes ErrConcurrentModification.
func (r *DealRepository) UpdateStatus(ctx context.Context, reference string, expected, next domain.DealStatus, entry domain.StatusHistoryEntry) (*domain.Deal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"reference": reference, "status": string(expected)}
	update := bson.M{
		"$set": bson.M{
			"status":     string(next),
			"updated_at": entry.Timestamp,
		},
		"$push": bson.M{"status_history": entry},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Deal
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update deal status: %w", err)
	}

	// No match: either the deal is gone or its status moved underneath us.
	if _, findErr := r.FindByReference(ctx, reference, ""); findErr != nil {
		return nil, findErr
	}
	return nil, domain.ErrConcurrentModification
}

// List returns a page of deals matching filter and the total count.
func (r *DealRepository) List(ctx context.Context, filter ports.ListDealsFilter) ([]*domain.Deal, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.AgentID != "" {
		query["agent_id"] = filter.AgentID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.PropertyType != "" {
		query["property_type"] = filter.PropertyType
	}
	if filter.TransactionType != "" {
		query["transaction_type"] = filter.TransactionType
	}
	if filter.Location != "" {
		query["location"] = filter.Location
	}
	price := bson.M{}
	if filter.MinPrice > 0 {
		price["$gte"] = filter.MinPrice
	}
	if filter.MaxPrice > 0 {
		price["$lte"] = filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count deals: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list deals: %w", err)
	}
	defer cursor.Close(ctx)

	var deals []*domain.Deal
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, 0, fmt.Errorf("decode deals: %w", err)
	}
	return deals, total, nil
}

// EnsureIndexes creates necessary indexes on the deals collection.
func (r *DealRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "agent_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
