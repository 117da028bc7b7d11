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

const (
	maintenanceCollection       = "maintenance_requests"
	maintenanceEventsCollection = "maintenance_events"
)

// MaintenanceRepository implements ports.MaintenanceRepository on MongoDB.
// Requests live in maintenance_requests; the append-only audit trail of
// status events lives in maintenance_events.
type MaintenanceRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMaintenanceRepository(db *mongo.Database) *MaintenanceRepository {
	return &MaintenanceRepository{db: db, coll: db.Collection(maintenanceCollection)}
}

type maintenanceDoc struct {
	ID          int       `bson:"_id"`
	ApartmentID int       `bson:"apartment_id"`
	TenantID    int       `bson:"tenant_id"`
	Description string    `bson:"description"`
	RequestDate time.Time `bson:"request_date"`
	Status      string    `bson:"status"`
}

func (d maintenanceDoc) toDomain() *domain.MaintenanceRequest {
	return &domain.MaintenanceRequest{
		ID:          d.ID,
		ApartmentID: d.ApartmentID,
		TenantID:    d.TenantID,
		Description: d.Description,
		RequestDate: d.RequestDate,
		Status:      domain.MaintenanceStatus(d.Status),
	}
}

func (r *MaintenanceRepository) Create(ctx context.Context, m *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, maintenanceCollection)
	if err != nil {
		return nil, err
	}

	doc := maintenanceDoc{
		ID:          id,
		ApartmentID: m.ApartmentID,
		TenantID:    m.TenantID,
		Description: m.Description,
		RequestDate: m.RequestDate,
		Status:      string(m.Status),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert maintenance request: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id int) (*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc maintenanceDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMaintenanceNotFound
		}
		return nil, fmt.Errorf("find maintenance request: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MaintenanceRepository) List(ctx context.Context, skip, limit int) ([]*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list maintenance requests: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.MaintenanceRequest
	for cur.Next(ctx) {
		var doc maintenanceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode maintenance request: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *MaintenanceRepository) Update(ctx context.Context, m *domain.MaintenanceRequest) (*domain.MaintenanceRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"apartment_id": m.ApartmentID,
		"tenant_id":    m.TenantID,
		"description":  m.Description,
		"request_date": m.RequestDate,
		"status":       string(m.Status),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": m.ID}, update)
	if err != nil {
		return nil, fmt.Errorf("update maintenance request: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrMaintenanceNotFound
	}
	return r.FindByID(ctx, m.ID)
}

func (r *MaintenanceRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete maintenance request: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMaintenanceNotFound
	}
	return nil
}

// InsertEvent appends an event to the audit trail.
func (r *MaintenanceRepository) InsertEvent(ctx context.Context, e *domain.MaintenanceEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"request_id":   e.RequestID,
		"apartment_id": e.ApartmentID,
		"status":       string(e.Status),
		"timestamp":    e.Timestamp.UTC(),
		"source":       e.Source,
		"processed_at": time.Now().UTC(),
	}
	if _, err := r.db.Collection(maintenanceEventsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert maintenance event: %w", err)
	}
	return nil
}
