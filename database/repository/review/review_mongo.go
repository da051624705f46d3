package reviewRepo

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

const sequenceName = "reviews"

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	coll *mongo.Collection
	seq  sequenceRepo.SequenceRepository
}

func NewMongoReviewRepo(seq sequenceRepo.SequenceRepository) ReviewRepository {
	repo := &MongoReviewRepo{
		coll: database.DB().Collection("reviews"),
		seq:  seq,
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("reviews: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoReviewRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "reviewId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "providerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) Create(ctx context.Context, rv *models.Review) error {
	if rv.ID == 0 {
		id, err := r.seq.Next(ctx, sequenceName)
		if err != nil {
			return err
		}
		rv.ID = id
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rv); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("review for booking %d: %w", rv.BookingID, database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) GetByBooking(ctx context.Context, bookingID int64) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rv models.Review
	if err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&rv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch review for booking %d: %w", bookingID, err)
	}
	return &rv, nil
}

func (r *MongoReviewRepo) ListByProvider(ctx context.Context, providerID int64) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "reviewId", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"providerId": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}
