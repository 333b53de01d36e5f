package persistence

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newMockDatabase wraps a sqlmock connection in a postgres dialect Database
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

// setupTestDB opens an in-memory sqlite database with every model migrated.
// Each call gets its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	database := &Database{DB: db}
	require.NoError(t, database.AutoMigrate())

	t.Cleanup(func() {
		_ = database.Close()
	})
	return db
}

func TestDatabase_Ping(t *testing.T) {
	t.Run("successful ping", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer mockDB.Close()

		// GORM may ping during Open, so expect it first
		mock.ExpectPing()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{
			Conn:       mockDB,
			DriverName: "postgres",
		}), &gorm.Config{SkipDefaultTransaction: true})
		require.NoError(t, err)

		db := &Database{DB: gormDB}
		mock.ExpectPing()

		assert.NoError(t, db.Ping())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDatabase_Close(t *testing.T) {
	t.Run("successful close", func(t *testing.T) {
		db, mock, _ := newMockDatabase(t)

		mock.ExpectClose()

		assert.NoError(t, db.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDatabase_AutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"restaurants", "dining_tables", "menu_items", "orders", "order_items"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.Len(t, AllModels(), 5)

	for table, index := range map[string]string{
		"dining_tables": "idx_dining_tables_restaurant_number",
		"menu_items":    "idx_menu_items_restaurant_name",
		"orders":        "idx_orders_restaurant_number",
	} {
		assert.True(t, db.Migrator().HasIndex(table, index), "missing index %s", index)
	}
}

func TestDatabase_Ping_Closed(t *testing.T) {
	db, mock, _ := newMockDatabase(t)
	mock.ExpectClose()
	require.NoError(t, db.Close())

	assert.Error(t, db.Ping())
}
