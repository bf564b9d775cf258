package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ItemVentaRequest is one requested sale line. ProductoID carries the LOT id
// (detalle_productos), not the catalog product id — stock is always drawn
// from a specific lot.
type ItemVentaRequest struct {
	ProductoID     string          `json:"productoId"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"       validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
}

type CrearVentaRequest struct {
	Fecha      string             `json:"fecha"     validate:"required,datetime=2006-01-02"`
	ClienteID  *string            `json:"clienteId" validate:"omitempty,uuid"`
	MedioPago  string             `json:"medioPago" validate:"required"`
	Estado     string             `json:"estado"    validate:"required,oneof=Pagada Pendiente"`
	Productos  []ItemVentaRequest `json:"productos" validate:"required,min=1,dive"`
}

type ActualizarEstadoVentaRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// VentaFilter is bound from the query string of GET /sales.
type VentaFilter struct {
	Fecha  string `form:"fecha"`
	Estado string `form:"estado"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ID             string          `json:"id"`
	LoteID         string          `json:"lote_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID         string              `json:"id"`
	Fecha      string              `json:"fecha"`
	ClienteID  *string             `json:"cliente_id,omitempty"`
	Cliente    string              `json:"cliente,omitempty"`
	MedioPago  string              `json:"medio_pago"`
	Estado     string              `json:"estado"`
	Total      decimal.Decimal     `json:"total"`
	Items      []ItemVentaResponse `json:"items"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
