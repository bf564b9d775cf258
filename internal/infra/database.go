package infra

import (
	"fmt"

	"kajamart/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (check constraints, partial indexes, sentinel seed rows).
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

// RunMigrations applies AutoMigrate plus the schema patches. Also used by the
// integration tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Categoria{},
		&model.Producto{},
		&model.Lote{},
		&model.Usuario{},
		&model.Cliente{},
		&model.Venta{},
		&model.DetalleVenta{},
		&model.Baja{},
		&model.DetalleBaja{},
		&model.DevolucionProveedor{},
		&model.DetalleDevolucionProveedor{},
		&model.DevolucionCliente{},
		&model.DevolucionDevuelto{},
		&model.DevolucionEntregado{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot fully handle.
// Each statement uses IF NOT EXISTS / ON CONFLICT semantics so re-running on an
// already-patched DB is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		// Quantities can never go negative, even if a code path bypasses the
		// conditional updates.
		{"check stock_lote >= 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_detalle_productos_stock_lote') THEN
    ALTER TABLE detalle_productos
      ADD CONSTRAINT chk_detalle_productos_stock_lote CHECK (stock_lote >= 0);
  END IF;
END $$`},
		{"check stock_actual >= 0", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_productos_stock_actual') THEN
    ALTER TABLE productos
      ADD CONSTRAINT chk_productos_stock_actual CHECK (stock_actual >= 0);
  END IF;
END $$`},
		// Partial index for the hot path: active lots of a product.
		{"partial index active lots", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_detalle_productos_activos') THEN
    CREATE INDEX idx_detalle_productos_activos
        ON detalle_productos (producto_id)
        WHERE estado = true;
  END IF;
END $$`},
		// Seed the reserved register customer.
		{"seed cliente mostrador", `
INSERT INTO clientes (id, nombre, activo, created_at, updated_at)
VALUES ('00000000-0000-0000-0000-000000000001', 'Cliente mostrador', true, now(), now())
ON CONFLICT (id) DO NOTHING`},
	}

	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}
