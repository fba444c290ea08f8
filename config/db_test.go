package config

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
)

var errNoSchema = errors.New("no schema")

// pingOnlyDriver answers pings and fails every statement, like a server that
// is up but refuses the migration.
type pingOnlyDriver struct{}

func (pingOnlyDriver) Open(string) (driver.Conn, error) { return pingOnlyConn{}, nil }

type pingOnlyConn struct{}

func (pingOnlyConn) Prepare(string) (driver.Stmt, error) { return nil, errNoSchema }
func (pingOnlyConn) Close() error                        { return nil }
func (pingOnlyConn) Begin() (driver.Tx, error)           { return nil, errNoSchema }
func (pingOnlyConn) Ping(context.Context) error          { return nil }

func init() {
	sql.Register("hotel-nepal-ping-only", pingOnlyDriver{})
}

func TestOpen_ClosesPoolWhenMigrationFails(t *testing.T) {
	sqlDB, err := sql.Open("hotel-nepal-ping-only", "")
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())

	dialector := mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true})
	db, err := open(context.Background(), dialector, "mysql", zerolog.Nop())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "migrate")

	assert.EqualError(t, sqlDB.Ping(), "sql: database is closed")
}
