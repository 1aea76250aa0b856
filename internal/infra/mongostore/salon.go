// Package mongostore implements the repositories on MongoDB. Atomicity comes from
// single-document conditional updates and unique indexes; a booking that spans two
// documents compensates when its second write fails.
package mongostore

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/uniease-api/internal/db"
	"github.com/BruksfildServices01/uniease-api/internal/domain/salon"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
)

type SalonStore struct {
	slots    *mongo.Collection
	bookings *mongo.Collection
}

func NewSalonStore(database *mongo.Database) *SalonStore {
	return &SalonStore{
		slots:    database.Collection(db.CollSlots),
		bookings: database.Collection(db.CollBookings),
	}
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (s *SalonStore) InsertSlotsIfAbsent(
	ctx context.Context,
	_ time.Time,
	slots []models.SalonSlot,
) (int, error) {
	inserted := 0
	for _, sl := range slots {
		res, err := s.slots.UpdateOne(ctx,
			bson.M{"date": sl.Date, "time": sl.Time},
			bson.M{"$setOnInsert": sl},
			options.Update().SetUpsert(true),
		)
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		if err != nil {
			return inserted, err
		}
		inserted += int(res.UpsertedCount)
	}
	return inserted, nil
}

func (s *SalonStore) ListSlots(
	ctx context.Context,
	day time.Time,
	onlyAvailable bool,
) ([]models.SalonSlot, error) {
	filter := bson.M{"date": timezone.DayUTC(day)}
	if onlyAvailable {
		filter["is_available"] = true
	}

	cur, err := s.slots.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "time", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var out []models.SalonSlot
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SalonStore) ReleaseAllSlots(ctx context.Context, day time.Time) (int64, error) {
	res, err := s.slots.UpdateMany(ctx,
		bson.M{"date": timezone.DayUTC(day), "is_available": false},
		bson.M{"$set": bson.M{"is_available": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *SalonStore) claimSlot(ctx context.Context, day time.Time, clock string, at time.Time) error {
	err := s.slots.FindOneAndUpdate(ctx,
		bson.M{"date": day, "time": clock, "is_available": true},
		bson.M{"$set": bson.M{"is_available": false, "updated_at": at}},
	).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return salon.ErrSlotUnavailable
	}
	return err
}

func (s *SalonStore) releaseSlot(ctx context.Context, day time.Time, clock string, at time.Time) error {
	_, err := s.slots.UpdateOne(ctx,
		bson.M{"date": day, "time": clock},
		bson.M{"$set": bson.M{"is_available": true, "updated_at": at}},
	)
	return err
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (s *SalonStore) ClaimSlotAndCreateBooking(ctx context.Context, b *models.SalonBooking) error {
	if err := s.claimSlot(ctx, b.Date, b.Time, b.BookedAt); err != nil {
		return err
	}

	if _, err := s.bookings.InsertOne(ctx, b); err != nil {
		if rerr := s.releaseSlot(ctx, b.Date, b.Time, time.Now().UTC()); rerr != nil {
			logrus.WithError(rerr).
				WithFields(logrus.Fields{"date": b.Date, "time": b.Time}).
				Error("failed to release slot after booking insert error")
		}
		return err
	}
	return nil
}

func (s *SalonStore) GetBooking(ctx context.Context, id string) (*models.SalonBooking, error) {
	var b models.SalonBooking
	err := s.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, salon.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// TransitionBooking compares-and-sets on the status it read. The slot is claimed
// before the booking moves and released after, so a failure never leaves a booking
// holding nothing.
func (s *SalonStore) TransitionBooking(ctx context.Context, t salon.Transition) (*models.SalonBooking, error) {
	current, err := s.GetBooking(ctx, t.BookingID)
	if err != nil {
		return nil, err
	}

	prev := salon.Status(current.Status)
	if !salon.StatusAllowed(prev, t.From) {
		return nil, salon.ErrStateChanged
	}

	effect := salon.EffectOf(prev, t.To)
	if effect == salon.SlotClaim {
		if err := s.claimSlot(ctx, current.Date, current.Time, t.At); err != nil {
			return nil, err
		}
	}

	next := *current
	salon.ApplyTransition(&next, t.To, t.At)

	var updated models.SalonBooking
	err = s.bookings.FindOneAndUpdate(ctx,
		bson.M{"_id": t.BookingID, "status": string(prev)},
		bson.M{"$set": bson.M{
			"status":       next.Status,
			"cancelled_at": next.CancelledAt,
			"updated_at":   next.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)

	if err != nil {
		if effect == salon.SlotClaim {
			if rerr := s.releaseSlot(ctx, current.Date, current.Time, t.At); rerr != nil {
				logrus.WithError(rerr).WithField("booking_id", t.BookingID).Error("failed to undo slot claim")
			}
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, salon.ErrStateChanged
		}
		return nil, err
	}

	if effect == salon.SlotRelease {
		if err := s.releaseSlot(ctx, current.Date, current.Time, t.At); err != nil {
			return nil, err
		}
	}

	return &updated, nil
}

func (s *SalonStore) ListBookings(ctx context.Context, f salon.BookingFilter) ([]models.SalonBooking, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Date != nil {
		filter["date"] = timezone.DayUTC(*f.Date)
	}

	cur, err := s.bookings.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var out []models.SalonBooking
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SalonStore) CountByStatus(ctx context.Context) (map[salon.Status]int64, error) {
	cur, err := s.bookings.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[salon.Status]int64, len(rows))
	for _, r := range rows {
		out[salon.Status(r.Status)] = r.Count
	}
	return out, nil
}

func (s *SalonStore) CountOnDay(ctx context.Context, day time.Time) (int64, error) {
	return s.bookings.CountDocuments(ctx, bson.M{"date": timezone.DayUTC(day)})
}

var _ salon.Repository = (*SalonStore)(nil)
