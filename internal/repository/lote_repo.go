package repository

import (
	"context"

	"kajamart/internal/apierror"
	"kajamart/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoteRepository is the lot ledger. Every quantity mutation here is paired:
// the lot row and its owning product's stock_actual change inside the same
// transaction, through these methods only — no call site may update one side
// on its own.
type LoteRepository interface {
	// Crear inserts a lot and increments the product aggregate atomically.
	Crear(ctx context.Context, l *model.Lote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Lote, error)
	ListActivos(ctx context.Context) ([]model.Lote, error)
	ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.Lote, error)
	Update(ctx context.Context, l *model.Lote) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// CountReferencias counts rows in every relation that can reference the
	// lot, keyed by relation name. Used for the hard-delete dependency check.
	CountReferencias(ctx context.Context, id uuid.UUID) (map[string]int64, error)
	HardDelete(ctx context.Context, id uuid.UUID) error

	// DescontarStockTx applies a compare-and-decrement: the UPDATE carries
	// stock_lote >= cantidad in its WHERE clause, so two concurrent callers
	// can never both cross zero. Zero rows affected → StockInsuficiente (or
	// NO_ENCONTRADO when the lot does not exist).
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
	// ReponerStockTx increments the lot and the aggregate, reactivating a
	// soft-deleted lot on the way: restored stock must always live in an
	// active lot or the aggregate would drift from the active-lot sum.
	// Always succeeds for an existing lot.
	ReponerStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error

	DB() *gorm.DB
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) DB() *gorm.DB { return r.db }

func (r *loteRepo) Crear(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(l).Error; err != nil {
			return err
		}
		res := tx.Model(&model.Producto{}).Where("id = ?", l.ProductoID).
			Update("stock_actual", gorm.Expr("stock_actual + ?", l.StockLote))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apierror.NotFound("Producto %s no encontrado", l.ProductoID)
		}
		return nil
	})
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).Preload("Producto").First(&l, "id = ?", id).Error
	return &l, err
}

func (r *loteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := tx.First(&l, "id = ?", id).Error
	return &l, err
}

func (r *loteRepo) ListActivos(ctx context.Context) ([]model.Lote, error) {
	var lotes []model.Lote
	err := r.db.WithContext(ctx).Preload("Producto").
		Where("estado = true").Order("created_at DESC").Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) ListByProducto(ctx context.Context, productoID uuid.UUID) ([]model.Lote, error) {
	var lotes []model.Lote
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND estado = true", productoID).
		Order("created_at DESC").Find(&lotes).Error
	return lotes, err
}

func (r *loteRepo) Update(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *loteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Lote{}).
		Where("id = ?", id).Update("estado", false).Error
}

func (r *loteRepo) CountReferencias(ctx context.Context, id uuid.UUID) (map[string]int64, error) {
	refs := map[string]int64{}
	counts := []struct {
		name  string
		model interface{}
		col   string
	}{
		{"detalle_venta", &model.DetalleVenta{}, "lote_id"},
		{"detalle_productos_baja", &model.DetalleBaja{}, "lote_id"},
		{"detalle_devolucion_producto", &model.DetalleDevolucionProveedor{}, "lote_id"},
		{"devolucion_cliente_entregado", &model.DevolucionEntregado{}, "lote_id"},
	}
	for _, c := range counts {
		var n int64
		if err := r.db.WithContext(ctx).Model(c.model).
			Where(c.col+" = ?", id).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			refs[c.name] = n
		}
	}
	return refs, nil
}

func (r *loteRepo) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Lote{}, "id = ?", id).Error
}

func (r *loteRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	res := tx.Model(&model.Lote{}).
		Where("id = ? AND estado = true AND stock_lote >= ?", id, cantidad).
		Update("stock_lote", gorm.Expr("stock_lote - ?", cantidad))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing lot from a lost quantity race.
		var l model.Lote
		if err := tx.First(&l, "id = ?", id).Error; err != nil {
			return apierror.NotFound("Lote no existe: %s", id)
		}
		return apierror.StockInsuficiente(id.String(), l.StockLote, cantidad)
	}

	var l model.Lote
	if err := tx.Select("producto_id").First(&l, "id = ?", id).Error; err != nil {
		return err
	}
	return tx.Model(&model.Producto{}).Where("id = ?", l.ProductoID).
		Update("stock_actual", gorm.Expr("stock_actual - ?", cantidad)).Error
}

func (r *loteRepo) ReponerStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	var l model.Lote
	if err := tx.Select("producto_id").First(&l, "id = ?", id).Error; err != nil {
		return apierror.NotFound("Lote no existe: %s", id)
	}
	if err := tx.Model(&model.Lote{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_lote": gorm.Expr("stock_lote + ?", cantidad),
			"estado":     true,
		}).Error; err != nil {
		return err
	}
	return tx.Model(&model.Producto{}).Where("id = ?", l.ProductoID).
		Update("stock_actual", gorm.Expr("stock_actual + ?", cantidad)).Error
}
