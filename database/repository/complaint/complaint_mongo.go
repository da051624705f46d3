package complaintRepo

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

const sequenceName = "complaints"

// MongoComplaintRepo implements ComplaintRepository using MongoDB.
type MongoComplaintRepo struct {
	coll *mongo.Collection
	seq  sequenceRepo.SequenceRepository
}

func NewMongoComplaintRepo(seq sequenceRepo.SequenceRepository) ComplaintRepository {
	repo := &MongoComplaintRepo{
		coll: database.DB().Collection("complaints"),
		seq:  seq,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "complaintId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		zap.L().Warn("complaints: failed to create indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoComplaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	if c.ID == 0 {
		id, err := r.seq.Next(ctx, sequenceName)
		if err != nil {
			return err
		}
		c.ID = id
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}
	return nil
}

func (r *MongoComplaintRepo) ListAll(ctx context.Context) ([]models.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "complaintId", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve complaints: %w", err)
	}
	defer cursor.Close(ctx)

	complaints := []models.Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, fmt.Errorf("failed to decode complaints: %w", err)
	}
	return complaints, nil
}

func (r *MongoComplaintRepo) Resolve(ctx context.Context, id int64, response string, at time.Time) (*models.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"response":  response,
		"status":    models.ComplaintResolved,
		"updatedAt": at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Complaint
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"complaintId": id}, update, opts).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve complaint %d: %w", id, err)
	}
	return &c, nil
}
