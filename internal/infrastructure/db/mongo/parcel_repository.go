package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/colisdirect/delivery-system/internal/core/domain"
	"github.com/colisdirect/delivery-system/internal/core/ports"
)

const collectionParcels = "parcels"

type ParcelRepository struct {
	col *mongo.Collection
}

func NewParcelRepository(db *mongo.Database) *ParcelRepository {
	return &ParcelRepository{col: db.Collection(collectionParcels)}
}

// Create inserts a new parcel document.
func (r *ParcelRepository) Create(ctx context.Context, p *domain.Parcel) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *ParcelRepository) FindByID(ctx context.Context, id string) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Parcel
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrParcelNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByReference retrieves a parcel by its public reference code.
func (r *ParcelRepository) FindByReference(ctx context.Context, reference string) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Parcel
	err := r.col.FindOne(ctx, bson.M{"reference": reference}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrParcelNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ParcelRepository) Update(ctx context.Context, p *domain.Parcel) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrParcelNotFound
	}
	return nil
}

func (r *ParcelRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrParcelNotFound
	}
	return nil
}

func scopeFilter(scope ports.ParcelScope) bson.M {
	filter := bson.M{}
	if scope.CourierID != "" {
		filter["courier_id"] = scope.CourierID
	}
	if scope.ClientID != "" {
		filter["sender_client_id"] = scope.ClientID
	}
	if scope.RecipientID != "" {
		filter["recipient_id"] = scope.RecipientID
	}
	return filter
}

// List returns a page of parcels matching the filter plus the unpaged total.
func (r *ParcelRepository) List(ctx context.Context, f ports.ListParcelsFilter) ([]*domain.Parcel, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := scopeFilter(f.Scope)
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Search != "" {
		pattern := bson.M{"$regex": f.Search, "$options": "i"}
		filter["$or"] = bson.A{
			bson.M{"reference": pattern},
			bson.M{"description": pattern},
			bson.M{"destination_city": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []*domain.Parcel
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SetStatus atomically updates the status and returns the post-update document,
// so the caller hands back exactly what was committed.
func (r *ParcelRepository) SetStatus(ctx context.Context, id string, status domain.Status, modifiedAt time.Time) (*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":      string(status),
		"modified_at": modifiedAt.UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p domain.Parcel
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrParcelNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CountByStatus aggregates parcel counts per status within the given scope.
func (r *ParcelRepository) CountByStatus(ctx context.Context, scope ports.ParcelScope) (*domain.StatusCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: scopeFilter(scope)}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := &domain.StatusCounts{}
	for _, row := range rows {
		counts.Total += row.Count
		switch domain.Status(row.Status) {
		case domain.StatusCreated:
			counts.Created = row.Count
		case domain.StatusCollected:
			counts.Collected = row.Count
		case domain.StatusInStock:
			counts.InStock = row.Count
		case domain.StatusInTransit:
			counts.InTransit = row.Count
		case domain.StatusDelivered:
			counts.Delivered = row.Count
		case domain.StatusCancelled:
			counts.Cancelled = row.Count
		case domain.StatusReturned:
			counts.Returned = row.Count
		}
	}
	return counts, nil
}

// FindOverdue returns non-terminal parcels whose due date has passed.
func (r *ParcelRepository) FindOverdue(ctx context.Context, scope ports.ParcelScope, now time.Time) ([]*domain.Parcel, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := scopeFilter(scope)
	filter["due_date"] = bson.M{"$lt": now.UTC()}
	filter["status"] = bson.M{"$nin": bson.A{
		string(domain.StatusDelivered),
		string(domain.StatusCancelled),
		string(domain.StatusReturned),
	}}

	opts := options.Find().SetSort(bson.D{{Key: "due_date", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domain.Parcel
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// EnsureIndexes creates necessary indexes on the parcels collection.
func (r *ParcelRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "courier_id", Value: 1}}},
		{Keys: bson.D{{Key: "sender_client_id", Value: 1}}},
		{Keys: bson.D{{Key: "recipient_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
