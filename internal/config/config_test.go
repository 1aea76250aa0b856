package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SLOT_TIMES", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}, cfg.SlotTimes)
	assert.Equal(t, 7, cfg.SlotWindowDays)
	assert.Equal(t, 100, cfg.OrderRetention)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("SLOT_TIMES", " 08:00 , 12:30 ,")
	t.Setenv("ORDER_RETENTION", "not-a-number")
	t.Setenv("VERIFY_EMAIL_DOMAIN", "true")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"08:00", "12:30"}, cfg.SlotTimes)
	assert.Equal(t, 100, cfg.OrderRetention)
	assert.True(t, cfg.VerifyEmailDomain)
}

func TestAdminsSkipsIncompletePairs(t *testing.T) {
	t.Setenv("LAUNDRY_ADMIN_EMAIL", " Laundry@Uni.edu ")
	t.Setenv("LAUNDRY_ADMIN_PASSWORD", "secret")
	t.Setenv("SALON_ADMIN_EMAIL", "salon@uni.edu")
	t.Setenv("SALON_ADMIN_PASSWORD", "")
	t.Setenv("SOUTHERN_STORIES_EMAIL", "")
	t.Setenv("SNAP_EATS_EMAIL", "")

	admins := Load().Admins()

	if assert.Len(t, admins, 1) {
		assert.Equal(t, "laundry@uni.edu", admins[0].Email)
		assert.Equal(t, "Laundry Admin", admins[0].Name)
	}
}
