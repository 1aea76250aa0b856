package db

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/BruksfildServices01/uniease-api/internal/config"
)

// Collection names shared by the mongo store and the index setup.
const (
	CollUsers    = "users"
	CollSlots    = "salon_slots"
	CollBookings = "salon_bookings"
	CollLaundry  = "laundry_requests"
	CollOutlets  = "food_outlets"
	CollMenu     = "menu_items"
	CollOrders   = "orders"
	CollAudit    = "audit_logs"
)

func NewMongo(cfg *config.Config) (*mongo.Client, *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect mongo")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logrus.WithError(err).Fatal("failed to ping mongo")
	}

	database := client.Database(cfg.MongoDatabase)
	if err := EnsureMongoIndexes(ctx, database); err != nil {
		logrus.WithError(err).Fatal("failed to create mongo indexes")
	}

	return client, database
}

func EnsureMongoIndexes(ctx context.Context, database *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollSlots: {
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollBookings: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		},
		CollLaundry: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		CollOutlets: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollMenu: {
			{Keys: bson.D{{Key: "outlet_id", Value: 1}, {Key: "name", Value: 1}}},
		},
		CollOrders: {
			{
				Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "outlet_id", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"status": "cart"}).
					SetName("one_cart_per_user_outlet"),
			},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		CollAudit: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}

	for coll, idx := range indexes {
		if _, err := database.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
