package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Condition of goods a customer returns. Bueno and Vencido restock the
// originating lot; Danado produces a size-one write-off batch instead.
const (
	CondicionBueno   = "bueno"
	CondicionVencido = "vencido"
	CondicionDanado  = "dañado"
)

// DevolucionCliente is a customer return event: lines the customer handed
// back (Devueltos, one per original sale line) plus replacement lines
// delivered to the customer (Entregados). Both collections are applied in a
// single transaction; the damaged branch writes a Baja as a side effect.
type DevolucionCliente struct {
	ID                        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID                   uuid.UUID `gorm:"type:uuid;not null;index"`
	ResponsableID             uuid.UUID `gorm:"type:uuid;not null;index"`
	FechaDevolucion           time.Time `gorm:"not null"`
	ValorDevolucionTotal      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CantidadDevueltaCliente   int `gorm:"not null"` // Σ quantities returned by the customer
	CantidadEntregadaCliente  int `gorm:"not null"` // Σ replacement quantities delivered
	CreatedAt                 time.Time

	Venta      *Venta               `gorm:"foreignKey:VentaID"`
	Devueltos  []DevolucionDevuelto `gorm:"foreignKey:DevolucionID;constraint:OnDelete:CASCADE"`
	Entregados []DevolucionEntregado `gorm:"foreignKey:DevolucionID;constraint:OnDelete:CASCADE"`
}

func (DevolucionCliente) TableName() string { return "devolucion_cliente" }

// DevolucionDevuelto is one returned line, tied to the original sale line.
type DevolucionDevuelto struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DevolucionID   uuid.UUID `gorm:"type:uuid;not null;index"`
	DetalleVentaID uuid.UUID `gorm:"type:uuid;not null;index"`
	Cantidad       int       `gorm:"not null"`
	Motivo         string
	ValorUnitario  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Condicion      string          `gorm:"not null"`

	DetalleVenta *DetalleVenta `gorm:"foreignKey:DetalleVentaID"`
}

func (DevolucionDevuelto) TableName() string { return "devolucion_cliente_devuelto" }

// DevolucionEntregado is one replacement line delivered to the customer,
// drawn from a specific lot.
type DevolucionEntregado struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DevolucionID      uuid.UUID `gorm:"type:uuid;not null;index"`
	LoteID            uuid.UUID `gorm:"type:uuid;not null;index"`
	CantidadEntregada int       `gorm:"not null"`
	ValorUnitario     decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Lote *Lote `gorm:"foreignKey:LoteID"`
}

func (DevolucionEntregado) TableName() string { return "devolucion_cliente_entregado" }
