package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rentdesk/property-system/internal/core/domain"
)

const rentalsCollection = "rentals"

// RentalRepository implements ports.RentalRepository on MongoDB.
type RentalRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewRentalRepository(db *mongo.Database) *RentalRepository {
	return &RentalRepository{db: db, coll: db.Collection(rentalsCollection)}
}

type rentalDoc struct {
	ID          int       `bson:"_id"`
	ApartmentID int       `bson:"apartment_id"`
	TenantID    int       `bson:"tenant_id"`
	StartDate   time.Time `bson:"start_date"`
	EndDate     time.Time `bson:"end_date"`
	Status      string    `bson:"status"`
	TotalAmount float64   `bson:"total_amount"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d rentalDoc) toDomain() *domain.Rental {
	return &domain.Rental{
		ID:          d.ID,
		ApartmentID: d.ApartmentID,
		TenantID:    d.TenantID,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Status:      domain.RentalStatus(d.Status),
		TotalAmount: d.TotalAmount,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *RentalRepository) Create(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, rentalsCollection)
	if err != nil {
		return nil, err
	}

	doc := rentalDoc{
		ID:          id,
		ApartmentID: rental.ApartmentID,
		TenantID:    rental.TenantID,
		StartDate:   rental.StartDate,
		EndDate:     rental.EndDate,
		Status:      string(rental.Status),
		TotalAmount: rental.TotalAmount,
		CreatedAt:   rental.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert rental: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RentalRepository) FindByID(ctx context.Context, id int) (*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc rentalDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRentalNotFound
		}
		return nil, fmt.Errorf("find rental: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RentalRepository) List(ctx context.Context, skip, limit int) ([]*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list rentals: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Rental
	for cur.Next(ctx) {
		var doc rentalDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode rental: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *RentalRepository) Update(ctx context.Context, rental *domain.Rental) (*domain.Rental, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"start_date":   rental.StartDate,
		"end_date":     rental.EndDate,
		"status":       string(rental.Status),
		"total_amount": rental.TotalAmount,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": rental.ID}, update)
	if err != nil {
		return nil, fmt.Errorf("update rental: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRentalNotFound
	}
	return r.FindByID(ctx, rental.ID)
}

func (r *RentalRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete rental: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}
