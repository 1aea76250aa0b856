package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/uniease-api/internal/db"
	"github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type FoodStore struct {
	outlets *mongo.Collection
	menu    *mongo.Collection
	orders  *mongo.Collection
}

func NewFoodStore(database *mongo.Database) *FoodStore {
	return &FoodStore{
		outlets: database.Collection(db.CollOutlets),
		menu:    database.Collection(db.CollMenu),
		orders:  database.Collection(db.CollOrders),
	}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter any, notFound error) (*T, error) {
	var v T
	err := coll.FindOne(ctx, filter).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// --------------------------------------------------
// Outlets / menu
// --------------------------------------------------

func (s *FoodStore) ListOutlets(ctx context.Context) ([]models.FoodOutlet, error) {
	return findAll[models.FoodOutlet](ctx, s.outlets, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *FoodStore) GetOutlet(ctx context.Context, id string) (*models.FoodOutlet, error) {
	return findOne[models.FoodOutlet](ctx, s.outlets, bson.M{"_id": id}, food.ErrNotFound)
}

func (s *FoodStore) FindOutletByVendor(ctx context.Context, vendorID string) (*models.FoodOutlet, error) {
	return findOne[models.FoodOutlet](ctx, s.outlets, bson.M{"vendor_id": vendorID}, food.ErrNotFound)
}

func (s *FoodStore) UpsertOutletByName(ctx context.Context, o *models.FoodOutlet) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	return s.outlets.FindOneAndUpdate(ctx,
		bson.M{"name": o.Name},
		bson.M{
			"$set": bson.M{
				"vendor_id":       o.VendorID,
				"operating_hours": o.OperatingHours,
				"updated_at":      o.UpdatedAt,
			},
			"$setOnInsert": bson.M{"_id": o.ID, "created_at": o.CreatedAt},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(o)
}

func (s *FoodStore) ListMenu(ctx context.Context, outletID string) ([]models.MenuItem, error) {
	return findAll[models.MenuItem](ctx, s.menu, bson.M{"outlet_id": outletID},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *FoodStore) GetMenuItems(ctx context.Context, ids []string) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return []models.MenuItem{}, nil
	}
	return findAll[models.MenuItem](ctx, s.menu, bson.M{"_id": bson.M{"$in": ids}})
}

func (s *FoodStore) ReplaceMenu(ctx context.Context, outletID string, items []models.MenuItem) error {
	existing, err := s.ListMenu(ctx, outletID)
	if err != nil {
		return err
	}
	byName := make(map[string]models.MenuItem, len(existing))
	for _, it := range existing {
		byName[it.Name] = it
	}

	keep := make([]string, 0, len(items))
	for i := range items {
		items[i].OutletID = outletID
		if prev, ok := byName[items[i].Name]; ok {
			items[i].ID = prev.ID
			items[i].CreatedAt = prev.CreatedAt
		} else if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}

		if _, err := s.menu.ReplaceOne(ctx,
			bson.M{"_id": items[i].ID},
			items[i],
			options.Replace().SetUpsert(true),
		); err != nil {
			return err
		}
		keep = append(keep, items[i].ID)
	}

	_, err = s.menu.DeleteMany(ctx, bson.M{"outlet_id": outletID, "_id": bson.M{"$nin": keep}})
	return err
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

func cartFilter(userID, outletID string) bson.M {
	return bson.M{"user_id": userID, "outlet_id": outletID, "status": string(food.StatusCart)}
}

func (s *FoodStore) FindOrCreateCart(ctx context.Context, userID, outletID string) (*models.Order, error) {
	now := time.Now().UTC()

	var o models.Order
	err := s.orders.FindOneAndUpdate(ctx,
		cartFilter(userID, outletID),
		bson.M{"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"items":      []models.OrderLine{},
			"total":      0.0,
			"version":    0,
			"created_at": now,
			"updated_at": now,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&o)

	// two racing upserts: the partial unique index rejects the loser, whose read
	// then finds the winner's cart
	if mongo.IsDuplicateKeyError(err) {
		return s.FindCart(ctx, userID, outletID)
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *FoodStore) FindCart(ctx context.Context, userID, outletID string) (*models.Order, error) {
	return findOne[models.Order](ctx, s.orders, cartFilter(userID, outletID), food.ErrNotFound)
}

func (s *FoodStore) SaveCart(ctx context.Context, o *models.Order) error {
	now := time.Now().UTC()

	res, err := s.orders.UpdateOne(ctx,
		bson.M{"_id": o.ID, "status": string(food.StatusCart), "version": o.Version},
		bson.M{
			"$set": bson.M{"items": o.Items, "total": o.Total, "updated_at": now},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return food.ErrStaleCart
	}

	o.Version++
	o.UpdatedAt = now
	return nil
}

// --------------------------------------------------
// Orders
// --------------------------------------------------

func (s *FoodStore) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return findOne[models.Order](ctx, s.orders, bson.M{"_id": id}, food.ErrNotFound)
}

func (s *FoodStore) TransitionOrder(ctx context.Context, t food.OrderTransition) (*models.Order, error) {
	filter := bson.M{"_id": t.OrderID}
	if t.UserID != "" {
		filter["user_id"] = t.UserID
	}
	if t.OutletID != "" {
		filter["outlet_id"] = t.OutletID
	}
	if len(t.From) > 0 {
		filter["status"] = bson.M{"$in": food.StatusStrings(t.From)}
	}

	var o models.Order
	err := s.orders.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$set": bson.M{"status": string(t.To), "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)

	if errors.Is(err, mongo.ErrNoDocuments) {
		n, cerr := s.orders.CountDocuments(ctx, bson.M{"_id": t.OrderID})
		if cerr != nil {
			return nil, cerr
		}
		if n == 0 {
			return nil, food.ErrNotFound
		}
		return nil, food.ErrStateChanged
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *FoodStore) ListOrders(ctx context.Context, f food.OrderFilter) ([]models.Order, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.OutletID != "" {
		filter["outlet_id"] = f.OutletID
	}
	if f.ExcludeCart {
		filter["status"] = bson.M{"$ne": string(food.StatusCart)}
	}

	return findAll[models.Order](ctx, s.orders, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (s *FoodStore) PruneOrders(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	var pivot struct {
		CreatedAt time.Time `bson:"created_at"`
	}
	err := s.orders.FindOne(ctx, bson.M{},
		options.FindOne().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetSkip(int64(keep-1)).
			SetProjection(bson.M{"created_at": 1}),
	).Decode(&pivot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	res, err := s.orders.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": pivot.CreatedAt}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ food.Repository = (*FoodStore)(nil)
