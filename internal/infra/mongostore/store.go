package mongostore

import "go.mongodb.org/mongo-driver/mongo"

type Stores struct {
	Salon   *SalonStore
	Food    *FoodStore
	Laundry *LaundryStore
	Users   *UserStore
	Audit   *AuditStore
}

func New(database *mongo.Database) *Stores {
	return &Stores{
		Salon:   NewSalonStore(database),
		Food:    NewFoodStore(database),
		Laundry: NewLaundryStore(database),
		Users:   NewUserStore(database),
		Audit:   NewAuditStore(database),
	}
}
