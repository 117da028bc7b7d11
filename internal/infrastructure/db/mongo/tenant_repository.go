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

const tenantsCollection = "tenants"

// TenantRepository implements ports.TenantRepository on MongoDB.
type TenantRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewTenantRepository(db *mongo.Database) *TenantRepository {
	return &TenantRepository{db: db, coll: db.Collection(tenantsCollection)}
}

type tenantDoc struct {
	ID        int       `bson:"_id"`
	UserID    int       `bson:"user_id"`
	Phone     string    `bson:"phone"`
	Address   string    `bson:"address,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d tenantDoc) toDomain() *domain.Tenant {
	return &domain.Tenant{
		ID:        d.ID,
		UserID:    d.UserID,
		Phone:     d.Phone,
		Address:   d.Address,
		CreatedAt: d.CreatedAt,
	}
}

func (r *TenantRepository) Create(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, tenantsCollection)
	if err != nil {
		return nil, err
	}

	doc := tenantDoc{ID: id, UserID: t.UserID, Phone: t.Phone, Address: t.Address, CreatedAt: t.CreatedAt}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert tenant: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TenantRepository) FindByID(ctx context.Context, id int) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tenantDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TenantRepository) List(ctx context.Context, skip, limit int) ([]*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Tenant
	for cur.Next(ctx) {
		var doc tenantDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tenant: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *TenantRepository) Update(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"user_id": t.UserID,
		"phone":   t.Phone,
		"address": t.Address,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": t.ID}, update)
	if err != nil {
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTenantNotFound
	}
	return r.FindByID(ctx, t.ID)
}

func (r *TenantRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}
