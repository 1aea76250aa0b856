package mongostore

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BruksfildServices01/uniease-api/internal/db"
	"github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type UserStore struct {
	users *mongo.Collection
}

func NewUserStore(database *mongo.Database) *UserStore {
	return &UserStore{users: database.Collection(db.CollUsers)}
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"email": strings.ToLower(email)}, identity.ErrNotFound)
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"_id": id}, identity.ErrNotFound)
}

func (s *UserStore) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	return findAll[models.User](ctx, s.users, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	_, err := s.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return identity.ErrDuplicateEmail
	}
	return err
}

var _ identity.Repository = (*UserStore)(nil)
