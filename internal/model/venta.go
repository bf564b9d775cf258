package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale states. A sale leaves EstadoAnulada never.
const (
	EstadoVentaPagada    = "Pagada"
	EstadoVentaPendiente = "Pendiente"
	EstadoVentaAnulada   = "Anulada"
)

// AnulacionVentana is the business window for cancelling a sale, measured
// against FechaVenta.
const AnulacionVentana = 30 * time.Minute

// Venta is a sale header. Items are owned (created and deleted with the
// header); each item points at the lot it was drawn from, not at the product.
type Venta struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FechaVenta  time.Time `gorm:"not null;index"`
	MetodoPago  string    `gorm:"not null"`
	EstadoVenta string    `gorm:"not null;index"`
	ClienteID   *uuid.UUID `gorm:"type:uuid;index"`
	Total       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cliente *Cliente       `gorm:"foreignKey:ClienteID"`
	Items   []DetalleVenta `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }

// DetalleVenta is one sale line: quantity drawn from a specific lot.
type DetalleVenta struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID `gorm:"type:uuid;not null;index"`
	LoteID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Cantidad       int       `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Lote *Lote `gorm:"foreignKey:LoteID"`
}

func (DetalleVenta) TableName() string { return "detalle_venta" }
