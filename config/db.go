package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hotel-nepal/models"
	"hotel-nepal/observability"
	"hotel-nepal/store/memory"
)

const pingTimeout = 5 * time.Second

// ConnectDatabase opens the relational store chosen by DB_DRIVER, migrates the
// schema and seeds the demonstration hotels into an empty database.
func ConnectDatabase(ctx context.Context, cfg Config, l zerolog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	return open(ctx, dialector, cfg.DBDriver, l)
}

func open(ctx context.Context, dialector gorm.Dialector, name string, l zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         observability.NewGormLogger(l),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", name, err)
	}

	if err := db.WithContext(ctx).AutoMigrate(
		&models.Hotel{},
		&models.Booking{},
		&models.User{},
		&models.Review{},
		&models.Product{},
	); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := SeedDatabase(ctx, db, l); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SeedDatabase inserts the demonstration hotels when the table is empty.
func SeedDatabase(ctx context.Context, db *gorm.DB, l zerolog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Hotel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count hotels: %w", err)
	}
	if count > 0 {
		return nil
	}
	hotels := memory.SeedHotels()
	if err := db.WithContext(ctx).Create(&hotels).Error; err != nil {
		return fmt.Errorf("seed hotels: %w", err)
	}
	l.Info().Int("hotels", len(hotels)).Msg("hotels seeded")
	return nil
}

func dialectorFor(driver string) (gorm.Dialector, error) {
	switch driver {
	case "", "mysql":
		dsn, err := resolveMySQLDSN()
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		return postgres.Open(resolvePostgresDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	c := gomysql.NewConfig()
	c.User = u.User.Username()
	c.Passwd, _ = u.User.Password()
	port := u.Port()
	if port == "" {
		port = "3306"
	}
	c.Net = "tcp"
	c.Addr = u.Hostname() + ":" + port
	c.DBName = strings.TrimPrefix(u.Path, "/")
	if c.DBName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	for k, v := range u.Query() {
		if len(v) > 0 && k != "parseTime" && k != "loc" {
			c.Params[k] = v[0]
		}
	}
	return c.FormatDSN(), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	c := gomysql.NewConfig()
	c.User = envOrDefault("DB_USER", "root")
	c.Passwd = envOrDefault("DB_PASS", "")
	c.Net = "tcp"
	c.Addr = envOrDefault("DB_HOST", "127.0.0.1") + ":" + envOrDefault("DB_PORT", "3306")
	c.DBName = envOrDefault("DB_NAME", "hotel_nepal")
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN(), nil
}

func resolvePostgresDSN() string {
	if raw := strings.TrimSpace(os.Getenv("DATABASE_URL")); raw != "" {
		return raw
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		envOrDefault("DB_HOST", "127.0.0.1"),
		envOrDefault("DB_PORT", "5432"),
		envOrDefault("DB_USER", "postgres"),
		envOrDefault("DB_PASS", ""),
		envOrDefault("DB_NAME", "hotel_nepal"),
	)
}
