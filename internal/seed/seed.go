// Package seed loads the campus reference data: admin accounts, the food outlets
// with their menus, and the initial salon calendar. Every step is idempotent.
package seed

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/uniease-api/internal/app"
	"github.com/BruksfildServices01/uniease-api/internal/config"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	ucIdentity "github.com/BruksfildServices01/uniease-api/internal/usecase/identity"
	ucSalon "github.com/BruksfildServices01/uniease-api/internal/usecase/salon"
)

type Outlet struct {
	Name           string
	OperatingHours string
	Vendor         func(cfg *config.Config) config.AdminAccount
	Menu           []models.MenuItem
}

var Outlets = []Outlet{
	{
		Name:           "Southern Stories",
		OperatingHours: "9:00 AM - 9:00 PM",
		Vendor:         func(cfg *config.Config) config.AdminAccount { return cfg.SouthernStoriesAdmin },
		Menu: []models.MenuItem{
			{Name: "Classic Cheeseburger", Price: 199, DietaryTags: []string{"non-vegetarian"}},
			{Name: "Garden Salad", Price: 149, DietaryTags: []string{"vegetarian"}},
			{Name: "Margherita Pizza", Price: 249, DietaryTags: []string{"vegetarian"}},
			{Name: "Chicken Pasta", Price: 179, DietaryTags: []string{"non-vegetarian"}},
			{Name: "Veg Wrap", Price: 129, DietaryTags: []string{"vegetarian"}},
		},
	},
	{
		Name:           "Snap Eats",
		OperatingHours: "8:00 AM - 10:00 PM",
		Vendor:         func(cfg *config.Config) config.AdminAccount { return cfg.SnapEatsAdmin },
		Menu: []models.MenuItem{
			{Name: "Grilled Chicken Sandwich", Price: 179, DietaryTags: []string{"non-vegetarian"}},
			{Name: "Paneer Tikka", Price: 159, DietaryTags: []string{"vegetarian"}},
			{Name: "Fish & Chips", Price: 299, DietaryTags: []string{"non-vegetarian"}},
			{Name: "Vegetable Biryani", Price: 189, DietaryTags: []string{"vegetarian"}},
			{Name: "Falafel Plate", Price: 169, DietaryTags: []string{"vegetarian"}},
		},
	},
}

func Run(ctx context.Context, cfg *config.Config, s *app.Stores, today time.Time) error {
	admins, err := ucIdentity.NewBootstrapAdmins(s.Users).Execute(ctx, cfg.Admins())
	if err != nil {
		return err
	}

	for _, o := range Outlets {
		now := time.Now().UTC()
		outlet := &models.FoodOutlet{
			Name:           o.Name,
			OperatingHours: o.OperatingHours,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if vendor, ok := admins[o.Vendor(cfg).Email]; ok {
			outlet.VendorID = vendor.ID
		} else {
			logrus.WithField("outlet", o.Name).Warn("vendor admin not configured; outlet has no vendor")
		}

		if err := s.Food.UpsertOutletByName(ctx, outlet); err != nil {
			return err
		}

		menu := make([]models.MenuItem, len(o.Menu))
		for i, it := range o.Menu {
			it.CreatedAt, it.UpdatedAt = now, now
			menu[i] = it
		}
		if err := s.Food.ReplaceMenu(ctx, outlet.ID, menu); err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{"outlet": o.Name, "items": len(menu)}).Info("outlet seeded")
	}

	generate := ucSalon.NewGenerateDailySlots(s.Salon, cfg.SlotTimes)
	return ucSalon.NewEnsureWindow(generate, cfg.SlotWindowDays).Execute(ctx, today)
}
