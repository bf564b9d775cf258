package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-off motives. MotivoVentaUnitaria is the tagged transfer variant: the
// origin lot is decremented as usual and the target lot is incremented by
// CantidadTraslado, net stock-neutral across the pair. Free-text motives are
// not matched anywhere; only these constants drive behavior.
const (
	MotivoDanado        = "Dañado"
	MotivoVencido       = "Vencido"
	MotivoPerdida       = "Perdida"
	MotivoVentaUnitaria = "Venta unitaria"
)

// Baja is a write-off batch: one or more lots losing stock to damage, expiry,
// loss, or an internal unit-sale transfer. NombreResponsable is a snapshot of
// the responsible user's name at creation time.
type Baja struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResponsableID     uuid.UUID `gorm:"type:uuid;not null;index"`
	NombreResponsable string    `gorm:"not null"`
	FechaBaja         time.Time `gorm:"not null;index"`
	CantidadBaja      int       `gorm:"not null"`
	TotalPrecioBaja   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt         time.Time

	Detalles []DetalleBaja `gorm:"foreignKey:BajaID;constraint:OnDelete:CASCADE"`
}

func (Baja) TableName() string { return "productos_baja" }

// DetalleBaja is one write-off line against a lot. For MotivoVentaUnitaria the
// transfer target fields are set; for every other motive they must be nil.
type DetalleBaja struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BajaID            uuid.UUID `gorm:"type:uuid;not null;index"`
	LoteID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Cantidad          int       `gorm:"not null"`
	Motivo            string    `gorm:"not null"`
	TotalProductoBaja decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	NombreProducto    string    `gorm:"not null"`
	LoteTrasladoID    *uuid.UUID `gorm:"type:uuid"`
	CantidadTraslado  *int

	Lote *Lote `gorm:"foreignKey:LoteID"`
}

func (DetalleBaja) TableName() string { return "detalle_productos_baja" }
