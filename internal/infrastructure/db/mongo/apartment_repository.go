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

const apartmentsCollection = "apartments"

// ApartmentRepository implements ports.ApartmentRepository on MongoDB.
type ApartmentRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewApartmentRepository(db *mongo.Database) *ApartmentRepository {
	return &ApartmentRepository{db: db, coll: db.Collection(apartmentsCollection)}
}

type apartmentDoc struct {
	ID          int       `bson:"_id"`
	Name        string    `bson:"name"`
	Address     string    `bson:"address"`
	RentPrice   float64   `bson:"rent_price"`
	Description string    `bson:"description,omitempty"`
	Status      string    `bson:"status"`
	LandlordID  int       `bson:"landlord_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d apartmentDoc) toDomain() *domain.Apartment {
	return &domain.Apartment{
		ID:          d.ID,
		Name:        d.Name,
		Address:     d.Address,
		RentPrice:   d.RentPrice,
		Description: d.Description,
		Status:      domain.ApartmentStatus(d.Status),
		LandlordID:  d.LandlordID,
		CreatedAt:   d.CreatedAt,
	}
}

func (r *ApartmentRepository) Create(ctx context.Context, a *domain.Apartment) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, apartmentsCollection)
	if err != nil {
		return nil, err
	}

	doc := apartmentDoc{
		ID:          id,
		Name:        a.Name,
		Address:     a.Address,
		RentPrice:   a.RentPrice,
		Description: a.Description,
		Status:      string(a.Status),
		LandlordID:  a.LandlordID,
		CreatedAt:   a.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert apartment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ApartmentRepository) FindByID(ctx context.Context, id int) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc apartmentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApartmentNotFound
		}
		return nil, fmt.Errorf("find apartment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ApartmentRepository) List(ctx context.Context, skip, limit int) ([]*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Apartment
	for cur.Next(ctx) {
		var doc apartmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode apartment: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *ApartmentRepository) Update(ctx context.Context, a *domain.Apartment) (*domain.Apartment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        a.Name,
		"address":     a.Address,
		"rent_price":  a.RentPrice,
		"description": a.Description,
		"status":      string(a.Status),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": a.ID}, update)
	if err != nil {
		return nil, fmt.Errorf("update apartment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrApartmentNotFound
	}
	return r.FindByID(ctx, a.ID)
}

func (r *ApartmentRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete apartment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrApartmentNotFound
	}
	return nil
}

// EnsureIndexes creates the landlord lookup index.
func (r *ApartmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "landlord_id", Value: 1}},
	})
	return err
}
