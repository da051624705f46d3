package providerRepo

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

const sequenceName = "providers"

// MongoProviderRepo implements ProviderRepository using MongoDB.
type MongoProviderRepo struct {
	coll *mongo.Collection
	seq  sequenceRepo.SequenceRepository
}

// NewMongoProviderRepo creates a new instance of ProviderRepository using MongoDB.
func NewMongoProviderRepo(seq sequenceRepo.SequenceRepository) ProviderRepository {
	repo := &MongoProviderRepo{
		coll: database.DB().Collection("providers"),
		seq:  seq,
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("providers: failed to create indexes", zap.Error(err))
	}
	return repo
}

var byID = bson.D{{Key: "providerId", Value: 1}}

func (r *MongoProviderRepo) Create(ctx context.Context, p *models.Provider) error {
	if p.ID == 0 {
		id, err := r.seq.Next(ctx, sequenceName)
		if err != nil {
			return err
		}
		p.ID = id
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("provider %s: %w", p.Email, database.ErrDuplicate)
		}
		return fmt.Errorf("failed to create provider: %w", err)
	}
	return nil
}

func (r *MongoProviderRepo) GetByID(ctx context.Context, id int64) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Provider
	if err := r.coll.FindOne(ctx, bson.M{"providerId": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch provider with id %d: %w", id, err)
	}
	return &p, nil
}

func (r *MongoProviderRepo) GetAll(ctx context.Context) ([]models.Provider, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoProviderRepo) find(ctx context.Context, filter bson.M) ([]models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(byID))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve providers: %w", err)
	}
	defer cursor.Close(ctx)

	providers := []models.Provider{}
	if err := cursor.All(ctx, &providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers: %w", err)
	}
	return providers, nil
}

func (r *MongoProviderRepo) UpdateProfile(ctx context.Context, id int64, upd models.ProfileUpdate, at time.Time) (*models.Provider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"fullName":     upd.FullName,
		"email":        upd.Email,
		"mobile":       upd.Mobile,
		"serviceType":  upd.ServiceType,
		"experience":   upd.Experience,
		"price":        upd.Price,
		"availability": upd.Availability,
		"location":     upd.Location,
		"updatedAt":    at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Provider
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"providerId": id}, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("provider email %s: %w", upd.Email, database.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to update provider with id %d: %w", id, err)
	}
	return &p, nil
}
