package model

import (
	"time"

	"github.com/google/uuid"
)

// DevolucionProveedor records goods sent back out of inventory to the
// originating supplier. Every line decrements its lot and the product
// aggregate — there is no compensating increment.
type DevolucionProveedor struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResponsableID     uuid.UUID `gorm:"type:uuid;not null;index"`
	NombreResponsable string    `gorm:"not null"`
	NumeroFactura     string    `gorm:"not null;index"`
	FechaDevolucion   time.Time `gorm:"not null"`
	CantidadTotal     int       `gorm:"not null"`
	CreatedAt         time.Time

	Detalles []DetalleDevolucionProveedor `gorm:"foreignKey:DevolucionID;constraint:OnDelete:CASCADE"`
}

func (DevolucionProveedor) TableName() string { return "devolucion_producto" }

type DetalleDevolucionProveedor struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DevolucionID     uuid.UUID `gorm:"type:uuid;not null;index"`
	LoteID           uuid.UUID `gorm:"type:uuid;not null;index"`
	CantidadDevuelta int       `gorm:"not null"`
	Motivo           string    `gorm:"not null"`
	NombreProducto   string    `gorm:"not null"`
	EsDescuento      bool      `gorm:"not null;default:false"`

	Lote *Lote `gorm:"foreignKey:LoteID"`
}

func (DetalleDevolucionProveedor) TableName() string { return "detalle_devolucion_producto" }
