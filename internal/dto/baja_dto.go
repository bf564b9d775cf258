package dto

import "github.com/shopspring/decimal"

// ItemBajaRequest is one write-off line. When Motivo is the unit-sale
// transfer motive, LoteTrasladoID and CantidadTraslado are required and the
// target lot is incremented by the same transaction.
type ItemBajaRequest struct {
	LoteID            string          `json:"id_detalle_productos" validate:"required,uuid"`
	Cantidad          int             `json:"cantidad"             validate:"required"`
	Motivo            string          `json:"motivo"               validate:"required"`
	TotalProductoBaja decimal.Decimal `json:"total_producto_baja"`
	LoteTrasladoID    *string         `json:"id_producto_traslado" validate:"omitempty,uuid"`
	CantidadTraslado  *int            `json:"cantidad_traslado"`
}

type CrearBajaRequest struct {
	ResponsableID string            `json:"id_responsable" validate:"required,uuid"`
	Products      []ItemBajaRequest `json:"products"       validate:"dive"`
}

// BajaFilter is bound from the query string of GET /lowProducts.
type BajaFilter struct {
	Q     string `form:"q"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type DetalleBajaResponse struct {
	ID                string          `json:"id"`
	LoteID            string          `json:"lote_id"`
	Cantidad          int             `json:"cantidad"`
	Motivo            string          `json:"motivo"`
	TotalProductoBaja decimal.Decimal `json:"total_producto_baja"`
	NombreProducto    string          `json:"nombre_producto"`
	LoteTrasladoID    *string         `json:"lote_traslado_id,omitempty"`
	CantidadTraslado  *int            `json:"cantidad_traslado,omitempty"`
}

type BajaResponse struct {
	ID                string                `json:"id"`
	ResponsableID     string                `json:"id_responsable"`
	NombreResponsable string                `json:"nombre_responsable"`
	FechaBaja         string                `json:"fecha_baja"`
	CantidadBaja      int                   `json:"cantidad_baja"`
	TotalPrecioBaja   decimal.Decimal       `json:"total_precio_baja"`
	Detalles          []DetalleBajaResponse `json:"detalles"`
}
