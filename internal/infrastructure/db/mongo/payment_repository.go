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

const paymentsCollection = "payments"

// PaymentRepository implements ports.PaymentRepository on MongoDB.
type PaymentRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{db: db, coll: db.Collection(paymentsCollection)}
}

type paymentDoc struct {
	ID          int       `bson:"_id"`
	RentalID    int       `bson:"rental_id"`
	PaymentDate time.Time `bson:"payment_date"`
	Amount      float64   `bson:"amount"`
	Method      string    `bson:"payment_method"`
	Status      string    `bson:"status"`
}

func (d paymentDoc) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:          d.ID,
		RentalID:    d.RentalID,
		PaymentDate: d.PaymentDate,
		Amount:      d.Amount,
		Method:      domain.PaymentMethod(d.Method),
		Status:      domain.PaymentStatus(d.Status),
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, paymentsCollection)
	if err != nil {
		return nil, err
	}

	doc := paymentDoc{
		ID:          id,
		RentalID:    p.RentalID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		Method:      string(p.Method),
		Status:      string(p.Status),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id int) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc paymentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PaymentRepository) List(ctx context.Context, skip, limit int) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Payment
	for cur.Next(ctx) {
		var doc paymentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode payment: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *PaymentRepository) Update(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"rental_id":      p.RentalID,
		"payment_date":   p.PaymentDate,
		"amount":         p.Amount,
		"payment_method": string(p.Method),
		"status":         string(p.Status),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPaymentNotFound
	}
	return r.FindByID(ctx, p.ID)
}

func (r *PaymentRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}
