package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/shopit-platform/courier-capacity-service/internal/domain"
	"github.com/shopit-platform/courier-capacity-service/pkg/cloudevents"
	"github.com/shopit-platform/courier-capacity-service/pkg/kafka"
	"github.com/shopit-platform/courier-capacity-service/pkg/metrics"
	"github.com/shopit-platform/courier-capacity-service/pkg/outbox"
	outboxMongo "github.com/shopit-platform/courier-capacity-service/pkg/outbox/mongodb"
	"github.com/shopit-platform/courier-capacity-service/pkg/tracing"
)

// CourierRepository is the MongoDB implementation of
// domain.CourierRepository. Aggregate writes and their domain events are
// committed in one transaction through the outbox collection.
type CourierRepository struct {
	collection   *mongo.Collection
	db           *mongo.Database
	outboxRepo   *outboxMongo.OutboxRepository
	eventFactory *cloudevents.EventFactory
	metrics      *metrics.Metrics
	tracer       trace.Tracer
}

// NewCourierRepository creates a new CourierRepository
func NewCourierRepository(db *mongo.Database, eventFactory *cloudevents.EventFactory, m *metrics.Metrics) *CourierRepository {
	collection := db.Collection("couriers")
	outboxRepo := outboxMongo.NewOutboxRepository(db)

	repo := &CourierRepository{
		collection:   collection,
		db:           db,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
		metrics:      m,
		tracer:       otel.Tracer("mongodb-courier-repository"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	repo.ensureIndexes(ctx)
	_ = outboxRepo.EnsureIndexes(ctx)

	return repo
}

func (r *CourierRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "courierId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "storeId", Value: 1}}},
		{Keys: bson.D{{Key: "storeId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "vehicle", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

// Save upserts the courier and stages its domain events in the outbox
// within a single transaction
func (r *CourierRepository) Save(ctx context.Context, courier *domain.Courier) error {
	return tracing.TracedVoidOperation(ctx, r.tracer, "couriers.save", func(ctx context.Context) error {
		return r.save(ctx, courier)
	})
}

func (r *CourierRepository) save(ctx context.Context, courier *domain.Courier) error {
	courier.UpdatedAt = time.Now()

	start := time.Now()
	session, err := r.db.Client().StartSession()
	if err != nil {
		r.metrics.RecordMongoDBOperation("couriers", "save", false, time.Since(start))
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"courierId": courier.CourierID}
		update := bson.M{"$set": courier}

		if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
			return nil, fmt.Errorf("failed to save courier: %w", err)
		}

		domainEvents := courier.GetDomainEvents()
		if len(domainEvents) > 0 {
			outboxEvents := make([]*outbox.OutboxEvent, 0, len(domainEvents))

			for _, event := range domainEvents {
				var cloudEvent *cloudevents.ShopCloudEvent
				switch e := event.(type) {
				case *domain.CourierRegisteredEvent:
					cloudEvent = r.eventFactory.CreateCourierRegisteredEvent(sessCtx, e.CourierID, e.StoreID, e.Name, e.Vehicle)
				case *domain.CourierVehicleChangedEvent:
					cloudEvent = r.eventFactory.CreateCourierVehicleChangedEvent(sessCtx, e.CourierID, e.FromVehicle, e.ToVehicle)
				case *domain.CourierStatusChangedEvent:
					cloudEvent = r.eventFactory.CreateCourierStatusChangedEvent(sessCtx, e.CourierID, e.FromStatus, e.ToStatus)
				default:
					continue
				}

				outboxEvent, err := outbox.NewOutboxEventFromCloudEvent(
					courier.CourierID,
					"Courier",
					kafka.Topics.CouriersEvents,
					cloudEvent,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create outbox event: %w", err)
				}

				outboxEvents = append(outboxEvents, outboxEvent)
			}

			if len(outboxEvents) > 0 {
				if err := r.outboxRepo.SaveAll(sessCtx, outboxEvents); err != nil {
					return nil, fmt.Errorf("failed to save outbox events: %w", err)
				}
			}
		}

		courier.ClearDomainEvents()

		return nil, nil
	})

	r.metrics.RecordMongoDBOperation("couriers", "save", err == nil, time.Since(start))
	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// FindByID returns a courier by ID, or nil if not found
func (r *CourierRepository) FindByID(ctx context.Context, courierID string) (*domain.Courier, error) {
	return tracing.TracedOperation(ctx, r.tracer, "couriers.findOne", func(ctx context.Context) (*domain.Courier, error) {
		start := time.Now()
		var courier domain.Courier
		err := r.collection.FindOne(ctx, bson.M{"courierId": courierID}).Decode(&courier)
		if err == mongo.ErrNoDocuments {
			r.metrics.RecordMongoDBOperation("couriers", "findOne", true, time.Since(start))
			return nil, nil
		}
		r.metrics.RecordMongoDBOperation("couriers", "findOne", err == nil, time.Since(start))
		if err != nil {
			return nil, err
		}
		return &courier, nil
	})
}

// FindByStore returns all couriers registered for a store
func (r *CourierRepository) FindByStore(ctx context.Context, storeID string) ([]*domain.Courier, error) {
	return r.findAll(ctx, bson.M{"storeId": storeID})
}

// FindActiveByStore returns the active couriers for a store
func (r *CourierRepository) FindActiveByStore(ctx context.Context, storeID string) ([]*domain.Courier, error) {
	return r.findAll(ctx, bson.M{"storeId": storeID, "status": domain.CourierStatusActive})
}

func (r *CourierRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Courier, error) {
	return tracing.TracedOperation(ctx, r.tracer, "couriers.find", func(ctx context.Context) ([]*domain.Courier, error) {
		start := time.Now()
		opts := options.Find().SetSort(bson.D{{Key: "courierId", Value: 1}})
		cursor, err := r.collection.Find(ctx, filter, opts)
		if err != nil {
			r.metrics.RecordMongoDBOperation("couriers", "find", false, time.Since(start))
			return nil, err
		}
		defer cursor.Close(ctx)

		var couriers []*domain.Courier
		err = cursor.All(ctx, &couriers)
		r.metrics.RecordMongoDBOperation("couriers", "find", err == nil, time.Since(start))
		return couriers, err
	})
}

// Delete removes a courier by ID
func (r *CourierRepository) Delete(ctx context.Context, courierID string) error {
	start := time.Now()
	_, err := r.collection.DeleteOne(ctx, bson.M{"courierId": courierID})
	r.metrics.RecordMongoDBOperation("couriers", "delete", err == nil, time.Since(start))
	return err
}

// GetOutboxRepository returns the outbox repository backed by the same
// database
func (r *CourierRepository) GetOutboxRepository() outbox.Repository {
	return r.outboxRepo
}
