package repository

import (
	"context"

	"kajamart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ─── Return to supplier ──────────────────────────────────────────────────────

type DevolucionProveedorRepository interface {
	CreateTx(tx *gorm.DB, d *model.DevolucionProveedor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DevolucionProveedor, error)
	List(ctx context.Context) ([]model.DevolucionProveedor, error)
	Search(ctx context.Context, q string) ([]model.DevolucionProveedor, error)
	DB() *gorm.DB
}

type devolucionProveedorRepo struct{ db *gorm.DB }

func NewDevolucionProveedorRepository(db *gorm.DB) DevolucionProveedorRepository {
	return &devolucionProveedorRepo{db: db}
}

func (r *devolucionProveedorRepo) DB() *gorm.DB { return r.db }

func (r *devolucionProveedorRepo) CreateTx(tx *gorm.DB, d *model.DevolucionProveedor) error {
	return tx.Create(d).Error
}

func (r *devolucionProveedorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DevolucionProveedor, error) {
	var d model.DevolucionProveedor
	err := r.db.WithContext(ctx).Preload("Detalles.Lote.Producto").
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *devolucionProveedorRepo) List(ctx context.Context) ([]model.DevolucionProveedor, error) {
	var devoluciones []model.DevolucionProveedor
	err := r.db.WithContext(ctx).Preload("Detalles.Lote.Producto").
		Order("fecha_devolucion DESC").Find(&devoluciones).Error
	return devoluciones, err
}

func (r *devolucionProveedorRepo) Search(ctx context.Context, q string) ([]model.DevolucionProveedor, error) {
	var devoluciones []model.DevolucionProveedor
	err := r.db.WithContext(ctx).Preload("Detalles").
		Where(`nombre_responsable ILIKE ?
			OR numero_factura ILIKE ?
			OR id IN (SELECT devolucion_id FROM detalle_devolucion_producto
			          WHERE motivo ILIKE ? OR nombre_producto ILIKE ?)`,
			"%"+q+"%", "%"+q+"%", "%"+q+"%", "%"+q+"%").
		Order("fecha_devolucion DESC").Find(&devoluciones).Error
	return devoluciones, err
}

// ─── Return from customer ────────────────────────────────────────────────────

type DevolucionClienteRepository interface {
	CreateTx(tx *gorm.DB, d *model.DevolucionCliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DevolucionCliente, error)
	List(ctx context.Context) ([]model.DevolucionCliente, error)
	DB() *gorm.DB
}

type devolucionClienteRepo struct{ db *gorm.DB }

func NewDevolucionClienteRepository(db *gorm.DB) DevolucionClienteRepository {
	return &devolucionClienteRepo{db: db}
}

func (r *devolucionClienteRepo) DB() *gorm.DB { return r.db }

func (r *devolucionClienteRepo) CreateTx(tx *gorm.DB, d *model.DevolucionCliente) error {
	return tx.Create(d).Error
}

func (r *devolucionClienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DevolucionCliente, error) {
	var d model.DevolucionCliente
	err := r.db.WithContext(ctx).
		Preload("Venta.Cliente").
		Preload("Devueltos.DetalleVenta.Lote.Producto").
		Preload("Entregados.Lote.Producto").
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *devolucionClienteRepo) List(ctx context.Context) ([]model.DevolucionCliente, error) {
	var devoluciones []model.DevolucionCliente
	err := r.db.WithContext(ctx).
		Preload("Venta.Cliente").
		Preload("Devueltos.DetalleVenta.Lote.Producto").
		Preload("Entregados.Lote.Producto").
		Order("fecha_devolucion DESC").Find(&devoluciones).Error
	return devoluciones, err
}
