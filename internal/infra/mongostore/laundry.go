package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/uniease-api/internal/db"
	"github.com/BruksfildServices01/uniease-api/internal/domain/laundry"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type LaundryStore struct {
	requests *mongo.Collection
}

func NewLaundryStore(database *mongo.Database) *LaundryStore {
	return &LaundryStore{requests: database.Collection(db.CollLaundry)}
}

func (s *LaundryStore) Create(ctx context.Context, r *models.LaundryRequest) error {
	_, err := s.requests.InsertOne(ctx, r)
	return err
}

func (s *LaundryStore) Get(ctx context.Context, id string) (*models.LaundryRequest, error) {
	return findOne[models.LaundryRequest](ctx, s.requests, bson.M{"_id": id}, laundry.ErrNotFound)
}

func (s *LaundryStore) ListByUser(ctx context.Context, userID string) ([]models.LaundryRequest, error) {
	return findAll[models.LaundryRequest](ctx, s.requests, bson.M{"user_id": userID}, newestFirst())
}

func (s *LaundryStore) ListAll(ctx context.Context) ([]models.LaundryRequest, error) {
	return findAll[models.LaundryRequest](ctx, s.requests, bson.M{}, newestFirst())
}

func (s *LaundryStore) UpdateStatus(
	ctx context.Context,
	id string,
	status laundry.Status,
	completedAt *time.Time,
	at time.Time,
) (*models.LaundryRequest, error) {
	var r models.LaundryRequest
	err := s.requests.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":       string(status),
			"completed_at": completedAt,
			"updated_at":   at,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&r)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, laundry.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
}

var _ laundry.Repository = (*LaundryStore)(nil)
