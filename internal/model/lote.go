package model

import (
	"time"

	"github.com/google/uuid"
)

// Lote is the unit of stock: a received batch of a product with its own
// expiry date and remaining quantity. Every sale, write-off, return and
// transfer mutates lots; the product aggregate follows in the same
// transaction.
//
// Estado=false is a soft delete: the lot stops appearing in listings and can
// no longer be decremented, but its rows stay referenced by historic sale and
// write-off lines.
type Lote struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	CodigoBarrasCompra  string     `gorm:"not null"`
	FechaVencimiento    *time.Time
	StockLote           int  `gorm:"not null;default:0"` // remaining quantity, >= 0
	EsDevolucion        bool `gorm:"not null;default:false"`
	Estado              bool `gorm:"not null;default:true"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName keeps the historical schema name for the lot ledger.
func (Lote) TableName() string { return "detalle_productos" }
