package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colisdirect/delivery-system/internal/core/domain"
)

const collectionHistory = "status_history"

// HistoryRepository persists the append-only status change log.
type HistoryRepository struct {
	col *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{col: db.Collection(collectionHistory)}
}

func (r *HistoryRepository) Append(ctx context.Context, c *domain.StatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	return err
}

// ListByParcel returns the parcel's status changes, newest first.
func (r *HistoryRepository) ListByParcel(ctx context.Context, parcelID string) ([]domain.StatusChange, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "changed_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"parcel_id": parcelID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var changes []domain.StatusChange
	if err := cursor.All(ctx, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

// EnsureIndexes creates necessary indexes on the history collection.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "parcel_id", Value: 1}, {Key: "changed_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
