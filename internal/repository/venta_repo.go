package repository

import (
	"context"

	"kajamart/internal/dto"
	"kajamart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VentaRepository defines data access for sales. Services depend on this
// interface, not on the concrete GORM implementation, enabling unit testing
// via in-memory stubs.
type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	Search(ctx context.Context, q string) ([]model.Venta, error)
	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Items.Lote.Producto").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).
		Update("estado_venta", estado).Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado_venta = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(fecha_venta) = ?", filter.Fecha)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("Items.Lote.Producto").
		Order("fecha_venta DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error
	return ventas, total, err
}

// Search mirrors the historic behavior: numeric input matches totals, text
// matches payment method or customer name.
func (r *ventaRepo) Search(ctx context.Context, q string) ([]model.Venta, error) {
	var ventas []model.Venta
	base := r.db.WithContext(ctx).Model(&model.Venta{}).
		Preload("Cliente").Preload("Items.Lote.Producto")
	err := base.
		Joins("LEFT JOIN clientes ON clientes.id = ventas.cliente_id").
		Where("CAST(ventas.total AS TEXT) LIKE ? OR ventas.metodo_pago ILIKE ? OR clientes.nombre ILIKE ?",
			q+"%", "%"+q+"%", "%"+q+"%").
		Order("ventas.fecha_venta DESC").
		Find(&ventas).Error
	return ventas, err
}
