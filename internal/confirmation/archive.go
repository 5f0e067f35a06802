package confirmation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "Confirmations"

// Record is the archived form of a Receipt. Dates and times are stored as
// their display strings so the archive reads the same as the receipt.
type Record struct {
	ID          string    `bson:"_id"`
	ServiceID   string    `bson:"service_id"`
	ServiceName string    `bson:"service_name"`
	Duration    string    `bson:"duration"`
	Price       int       `bson:"price"`
	Date        string    `bson:"date"`
	Time        string    `bson:"time"`
	Name        string    `bson:"name"`
	Phone       string    `bson:"phone"`
	Email       string    `bson:"email,omitempty"`
	Location    string    `bson:"location"`
	ConfirmedAt time.Time `bson:"confirmed_at"`
}

func RecordFromReceipt(r Receipt) Record {
	b := r.Booking
	return Record{
		ID:          r.ID,
		ServiceID:   b.Service.ID,
		ServiceName: b.Service.Name,
		Duration:    b.Service.DurationLabel,
		Price:       b.Service.Price,
		Date:        b.Date.String(),
		Time:        string(b.Time),
		Name:        b.Contact.Name,
		Phone:       b.Contact.Phone,
		Email:       b.Contact.Email,
		Location:    r.Location,
		ConfirmedAt: r.ConfirmedAt,
	}
}

var ErrDuplicateReceipt = errors.New("receipt already archived")

type Repository interface {
	Insert(ctx context.Context, rec Record) error
}

type mongoRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoRepository(db *mongo.Database, timeout time.Duration) Repository {
	return &mongoRepository{
		collection: db.Collection(CollectionName),
		timeout:    timeout,
	}
}

func (r *mongoRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *mongoRepository) Insert(ctx context.Context, rec Record) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateReceipt, rec.ID)
		}
		return fmt.Errorf("failed to archive receipt %s: %w", rec.ID, err)
	}
	return nil
}

type ArchiveSink struct {
	repo Repository
}

func NewArchiveSink(repo Repository) *ArchiveSink {
	return &ArchiveSink{repo: repo}
}

func (s *ArchiveSink) Name() string { return "archive" }

func (s *ArchiveSink) Deliver(ctx context.Context, r Receipt) error {
	return s.repo.Insert(ctx, RecordFromReceipt(r))
}
