package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smarthub/database"
	sequenceRepo "smarthub/database/repository/sequence"
	"smarthub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const sequenceName = "bookings"

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
	seq  sequenceRepo.SequenceRepository
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo(seq sequenceRepo.SequenceRepository) BookingRepository {
	repo := &MongoBookingRepo{
		coll: database.DB().Collection("bookings"),
		seq:  seq,
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("bookings: failed to create indexes", zap.Error(err))
	}
	return repo
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "bookingId", Value: -1}}

func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if b.ID == 0 {
		id, err := r.seq.Next(ctx, sequenceName)
		if err != nil {
			return err
		}
		b.ID = id
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("booking %d: %w", b.ID, database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"bookingId": id}).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %d: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoBookingRepo) ListByProvider(ctx context.Context, providerID int64) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"providerId": providerID})
}

func (r *MongoBookingRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoBookingRepo) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *MongoBookingRepo) CompareAndSetStatus(ctx context.Context, id int64, from, to models.BookingStatus, at time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"bookingId": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b models.Booking
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&b)
	if err == nil {
		return &b, nil
	}
	if database.IsStatusConflict(err) {
		// A concurrent transaction holds the document; it already moved the status.
		return nil, fmt.Errorf("booking %d: %w", id, database.ErrStatusConflict)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}

	// Nothing matched: tell a lost race apart from a missing booking.
	n, cerr := r.coll.CountDocuments(ctx, bson.M{"bookingId": id})
	if cerr != nil {
		return nil, fmt.Errorf("failed to check booking %d: %w", id, cerr)
	}
	if n == 0 {
		return nil, database.ErrNotFound
	}
	return nil, database.ErrStatusConflict
}
