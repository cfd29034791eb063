package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/ports"
)

// ReportRepository runs the aggregation pipelines behind the admin dashboard.
type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(dealsCollection)}
}

func (r *ReportRepository) DealsByStatus(ctx context.Context) ([]ports.StatusCount, error) {
	rows, err := r.groupCount(ctx, "$status", nil)
	if err != nil {
		return nil, err
	}
	counts := make([]ports.StatusCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.StatusCount{Status: row.Label, Count: row.Count})
	}
	return counts, nil
}

func (r *ReportRepository) PropertyTypeCounts(ctx context.Context) ([]ports.LabelCount, error) {
	return r.groupCount(ctx, "$property_type", nil)
}

func (r *ReportRepository) LocationCounts(ctx context.Context) ([]ports.LabelCount, error) {
	return r.groupCount(ctx, "$location", nil)
}

// TopAgents ranks agents by number of approved deals, best first.
func (r *ReportRepository) TopAgents(ctx context.Context, limit int) ([]ports.AgentCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.StatusApproved)}}},
		{{Key: "$group", Value: bson.M{"_id": "$agent_id", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("top agents: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		AgentID string `bson:"_id"`
		Count   int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode top agents: %w", err)
	}

	agents := make([]ports.AgentCount, 0, len(rows))
	for _, row := range rows {
		agents = append(agents, ports.AgentCount{AgentID: row.AgentID, Count: row.Count})
	}
	return agents, nil
}

// TotalEarnings sums the price of all approved deals.
func (r *ReportRepository) TotalEarnings(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": string(domain.StatusApproved)}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$price"}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("total earnings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("decode total earnings: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

func (r *ReportRepository) groupCount(ctx context.Context, field string, match bson.M) ([]ports.LabelCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("group count %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Label string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode group count %s: %w", field, err)
	}

	counts := make([]ports.LabelCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, ports.LabelCount{Label: row.Label, Count: row.Count})
	}
	return counts, nil
}
