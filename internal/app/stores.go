// Package app assembles the storage backend selected by configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/config"
	dbpkg "github.com/BruksfildServices01/uniease-api/internal/db"
	"github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/domain/laundry"
	"github.com/BruksfildServices01/uniease-api/internal/domain/salon"
	"github.com/BruksfildServices01/uniease-api/internal/infra/memstore"
	"github.com/BruksfildServices01/uniease-api/internal/infra/mongostore"
	infraRepo "github.com/BruksfildServices01/uniease-api/internal/infra/repository"
)

// Stores is one repository per domain, all from the same backend.
type Stores struct {
	Salon   salon.Repository
	Food    food.Repository
	Laundry laundry.Repository
	Users   identity.Repository
	Audit   audit.Store

	close func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

func OpenStores(cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db := dbpkg.NewDB(cfg)
		return &Stores{
			Salon:   infraRepo.NewSalonGormRepository(db),
			Food:    infraRepo.NewFoodGormRepository(db),
			Laundry: infraRepo.NewLaundryGormRepository(db),
			Users:   infraRepo.NewUserGormRepository(db),
			Audit:   infraRepo.NewAuditGormRepository(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil

	case config.DriverMongo:
		client, database := dbpkg.NewMongo(cfg)
		s := mongostore.New(database)
		return &Stores{
			Salon:   s.Salon,
			Food:    s.Food,
			Laundry: s.Laundry,
			Users:   s.Users,
			Audit:   s.Audit,
			close: func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(ctx); err != nil {
					logrus.WithError(err).Warn("mongo disconnect failed")
				}
			},
		}, nil

	case config.DriverMemory:
		logrus.Warn("using in-memory store; data is lost on restart")
		s := memstore.New()
		return &Stores{
			Salon:   s.Salon,
			Food:    s.Food,
			Laundry: s.Laundry,
			Users:   s.Users,
			Audit:   s.Audit,
		}, nil
	}

	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}
