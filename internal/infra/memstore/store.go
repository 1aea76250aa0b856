package memstore

// Stores bundles one of each in-memory repository.
type Stores struct {
	Salon   *SalonStore
	Food    *FoodStore
	Laundry *LaundryStore
	Users   *UserStore
	Audit   *AuditStore
}

func New() *Stores {
	return &Stores{
		Salon:   NewSalonStore(),
		Food:    NewFoodStore(),
		Laundry: NewLaundryStore(),
		Users:   NewUserStore(),
		Audit:   NewAuditStore(),
	}
}
