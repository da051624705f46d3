package notificationRepo

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

const sequenceName = "notifications"

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
	seq  sequenceRepo.SequenceRepository
}

func NewMongoNotificationRepo(seq sequenceRepo.SequenceRepository) NotificationRepository {
	repo := &MongoNotificationRepo{
		coll: database.DB().Collection("notifications"),
		seq:  seq,
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("notifications: failed to create indexes", zap.Error(err))
	}
	return repo
}

func receiverFilter(r models.Receiver) bson.M {
	return bson.M{"receiverId": r.ID, "receiverType": r.Type}
}

func (r *MongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == 0 {
		id, err := r.seq.Next(ctx, sequenceName)
		if err != nil {
			return err
		}
		n.ID = id
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepo) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n models.Notification
	if err := r.coll.FindOne(ctx, bson.M{"notificationId": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, database.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch notification %d: %w", id, err)
	}
	return &n, nil
}

func (r *MongoNotificationRepo) ListByReceiver(ctx context.Context, rcv models.Receiver) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "notificationId", Value: -1}})
	cursor, err := r.coll.Find(ctx, receiverFilter(rcv), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve notifications: %w", err)
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

func (r *MongoNotificationRepo) MarkRead(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"notificationId": id},
		bson.M{"$set": bson.M{"status": models.NotificationRead}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoNotificationRepo) MarkAllRead(ctx context.Context, rcv models.Receiver) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := receiverFilter(rcv)
	filter["status"] = models.NotificationUnread

	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": models.NotificationRead}})
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoNotificationRepo) CountUnread(ctx context.Context, rcv models.Receiver) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := receiverFilter(rcv)
	filter["status"] = models.NotificationUnread

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return n, nil
}
