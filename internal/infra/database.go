package infra

import (
	"fmt"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate
// for the full schema and applies the SQL guards AutoMigrate cannot express.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Also used by the integration
// tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Bodega{},
		&model.BodegaConfig{},
		&model.Producto{},
		&model.ProductoBodega{},
		&model.TipoMovimiento{},
		&model.MovimientoStock{},
		&model.Pedido{},
		&model.DetallePedido{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.Notificacion{},
		&model.TipoMetodoPago{},
		&model.BodegaMetodoPago{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate may skip on an
// existing database. The stock check constraint is the load-bearing one: the
// conditional UPDATE in the repository already prevents negative stock, and
// this makes the database reject it even if a future writer bypasses that.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_productos_bodega_stock') THEN
		    ALTER TABLE productos_bodega
		      ADD CONSTRAINT chk_productos_bodega_stock CHECK (stock >= 0);
		  END IF;
		END $$`,
		// Partial index for the queue rehydration query.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_pedidos_pendientes') THEN
		    CREATE INDEX idx_pedidos_pendientes
		        ON pedidos (created_at, id)
		        WHERE estado = 'PENDIENTE';
		  END IF;
		END $$`,
	}
	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("schema patch: %w", err)
		}
	}
	return nil
}
