package repository

import (
	"context"

	"kajamart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BajaRepository interface {
	// CreateTx persists the batch header together with its lines.
	CreateTx(tx *gorm.DB, b *model.Baja) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Baja, error)
	List(ctx context.Context) ([]model.Baja, error)
	Search(ctx context.Context, q string) ([]model.Baja, error)
	DB() *gorm.DB
}

type bajaRepo struct{ db *gorm.DB }

func NewBajaRepository(db *gorm.DB) BajaRepository { return &bajaRepo{db: db} }

func (r *bajaRepo) DB() *gorm.DB { return r.db }

func (r *bajaRepo) CreateTx(tx *gorm.DB, b *model.Baja) error {
	return tx.Create(b).Error
}

func (r *bajaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Baja, error) {
	var b model.Baja
	err := r.db.WithContext(ctx).Preload("Detalles").First(&b, "id = ?", id).Error
	return &b, err
}

func (r *bajaRepo) List(ctx context.Context) ([]model.Baja, error) {
	var bajas []model.Baja
	err := r.db.WithContext(ctx).Preload("Detalles").
		Order("fecha_baja DESC").Find(&bajas).Error
	return bajas, err
}

// Search matches the responsible name, or any line's motive / product name.
// Numeric input additionally matches batch quantities.
func (r *bajaRepo) Search(ctx context.Context, q string) ([]model.Baja, error) {
	var bajas []model.Baja
	err := r.db.WithContext(ctx).Preload("Detalles").
		Where(`nombre_responsable ILIKE ?
			OR CAST(cantidad_baja AS TEXT) = ?
			OR id IN (SELECT baja_id FROM detalle_productos_baja
			          WHERE motivo ILIKE ? OR nombre_producto ILIKE ?)`,
			"%"+q+"%", q, "%"+q+"%", "%"+q+"%").
		Order("fecha_baja DESC").Find(&bajas).Error
	return bajas, err
}
