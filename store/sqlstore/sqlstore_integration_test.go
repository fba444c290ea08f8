//go:build integration

package sqlstore_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-nepal/models"
	"hotel-nepal/store"
	"hotel-nepal/store/memory"
	"hotel-nepal/store/sqlstore"
)

func startMySQL(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "dockertest")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel_nepal",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "run mysql")
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel_nepal?parseTime=true&charset=utf8mb4&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *gorm.DB
	pool.MaxWait = 2 * time.Minute
	err = pool.Retry(func() error {
		var e error
		db, e = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:         logger.Default.LogMode(logger.Silent),
			TranslateError: true,
		})
		if e != nil {
			return e
		}
		sqlDB, e := db.DB()
		if e != nil {
			return e
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err, "connect mysql")

	require.NoError(t, db.AutoMigrate(
		&models.Hotel{}, &models.Booking{}, &models.User{}, &models.Review{}, &models.Product{},
	))
	return db
}

func TestSQLStore_MySQL(t *testing.T) {
	db := startMySQL(t)
	dir := t.TempDir()
	repos := sqlstore.New(db, dir).Repositories()
	ctx := context.Background()

	for _, h := range memory.SeedHotels() {
		h := h
		require.NoError(t, repos.Hotels.Create(ctx, &h))
	}

	hotels, err := repos.Hotels.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, hotels, 3)
	assert.Equal(t, "Kathmandu", hotels[0].Location)

	t.Run("booking reads carry hotel fields", func(t *testing.T) {
		b := models.Booking{
			HotelID:        hotels[1].ID,
			GuestName:      "Sita",
			GuestEmail:     "sita@example.com",
			GuestPhone:     "+9779811111111",
			CheckInDate:    time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
			CheckOutDate:   time.Date(2030, 5, 3, 0, 0, 0, 0, time.UTC),
			NumberOfGuests: 2,
			Nights:         2,
			TotalPrice:     2 * hotels[1].PricePerNight,
			Status:         models.StatusConfirmed,
		}
		require.NoError(t, repos.Bookings.Create(ctx, &b))

		got, err := repos.Bookings.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, hotels[1].Name, got.HotelName)
		assert.Equal(t, "Pokhara", got.HotelLocation)

		cancelled := models.StatusCancelled
		got, err = repos.Bookings.Update(ctx, b.ID, models.BookingUpdate{Status: &cancelled})
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, got.Status)

		_, err = repos.Bookings.FindByID(ctx, 999999)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email", func(t *testing.T) {
		u := models.User{FirstName: "Ram", Email: "ram@example.com", Password: "x"}
		require.NoError(t, repos.Users.Create(ctx, &u))
		dup := models.User{FirstName: "Ram", Email: "RAM@example.com", Password: "y"}
		assert.ErrorIs(t, repos.Users.Create(ctx, &dup), store.ErrDuplicate)
	})

	t.Run("product delete removes image", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "p.png"), []byte("img"), 0o644))
		p := models.Product{Name: "Tea", Price: 5, Image: "p.png"}
		require.NoError(t, repos.Products.Create(ctx, &p))

		_, err := repos.Products.Delete(ctx, p.ID)
		require.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "p.png"))
		assert.True(t, os.IsNotExist(err))

		_, err = repos.Products.FindByID(ctx, p.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}
