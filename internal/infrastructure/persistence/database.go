package persistence

import (
	"fmt"
	"time"

	"github.com/qrdine/backend/internal/infrastructure/config"
	"github.com/qrdine/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the GORM handle shared by every repository
type Database struct {
	DB *gorm.DB
}

// NewDatabaseWithLogger opens the PostgreSQL pool described by cfg and verifies
// it with a ping. Statements are logged through gormLogger.
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Ping()
}

// AllModels lists every persistence model, in dependency order
func AllModels() []any {
	return []any{
		&models.RestaurantModel{},
		&models.TableModel{},
		&models.MenuItemModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
	}
}

// uniqueIndexes mirror the composite and expression unique indexes of the SQL
// migrations that struct tags cannot express, since restaurant_id lives in the
// shared RestaurantAggregateModel.
var uniqueIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_dining_tables_restaurant_number ON dining_tables (restaurant_id, number)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_menu_items_restaurant_name ON menu_items (restaurant_id, LOWER(name))",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_orders_restaurant_number ON orders (restaurant_id, order_number)",
}

// AutoMigrate creates or updates the tables of every model along with the
// unique indexes the SQL migrations declare.
// Used for local development and tests; production runs the SQL migrations.
func (d *Database) AutoMigrate() error {
	if err := d.DB.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	for _, stmt := range uniqueIndexes {
		if err := d.DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create unique index: %w", err)
		}
	}
	return nil
}
