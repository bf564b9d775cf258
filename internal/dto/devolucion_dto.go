package dto

import "github.com/shopspring/decimal"

// ─── Return to supplier ──────────────────────────────────────────────────────

type ItemDevolucionProveedorRequest struct {
	LoteID         string `json:"id_detalle_producto" validate:"required,uuid"`
	Cantidad       int    `json:"cantidad"            validate:"required"`
	Motivo         string `json:"motivo"              validate:"required"`
	NombreProducto string `json:"nombre_producto"`
	EsDescuento    bool   `json:"es_descuento"`
}

type CrearDevolucionProveedorRequest struct {
	ResponsableID string                           `json:"id_responsable" validate:"required,uuid"`
	NumeroFactura string                           `json:"numero_factura" validate:"required"`
	Products      []ItemDevolucionProveedorRequest `json:"products"       validate:"required,min=1,dive"`
}

type DetalleDevolucionProveedorResponse struct {
	ID             string `json:"id"`
	LoteID         string `json:"lote_id"`
	Cantidad       int    `json:"cantidad"`
	Motivo         string `json:"motivo"`
	NombreProducto string `json:"nombre_producto"`
	EsDescuento    bool   `json:"es_descuento"`
}

type DevolucionProveedorResponse struct {
	ID                string                               `json:"id"`
	ResponsableID     string                               `json:"id_responsable"`
	NombreResponsable string                               `json:"nombre_responsable"`
	NumeroFactura     string                               `json:"numero_factura"`
	FechaDevolucion   string                               `json:"fecha_devolucion"`
	CantidadTotal     int                                  `json:"cantidad_total"`
	Detalles          []DetalleDevolucionProveedorResponse `json:"detalles"`
}

// ─── Return from customer ────────────────────────────────────────────────────

// ItemDevueltoRequest is one line the customer hands back. DetalleVentaID must
// belong to the referenced sale. Condicion decides the branch: bueno/vencido
// restock the originating lot, dañado writes a size-one write-off batch.
type ItemDevueltoRequest struct {
	DetalleVentaID string          `json:"id_detalle_venta" validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"         validate:"required"`
	Motivo         string          `json:"motivo"`
	ValorUnitario  decimal.Decimal `json:"valor_unitario"`
	Condicion      string          `json:"condicion" validate:"required,oneof=bueno vencido dañado"`
}

// ItemEntregadoRequest is one replacement line delivered to the customer.
type ItemEntregadoRequest struct {
	LoteID        string          `json:"id_detalle_producto" validate:"required,uuid"`
	Cantidad      int             `json:"cantidad"            validate:"required"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
}

type CrearDevolucionClienteRequest struct {
	VentaID              string                 `json:"id_venta"               validate:"required,uuid"`
	ResponsableID        string                 `json:"id_responsable"         validate:"required,uuid"`
	ValorDevolucionTotal decimal.Decimal        `json:"valor_devolucion_total"`
	ProductosVenta       []ItemDevueltoRequest  `json:"productosVenta"   validate:"required,min=1,dive"`
	ProductosEntrega     []ItemEntregadoRequest `json:"productosEntrega" validate:"dive"`
}

type DevueltoResponse struct {
	ID             string          `json:"id"`
	DetalleVentaID string          `json:"id_detalle_venta"`
	Cantidad       int             `json:"cantidad"`
	Motivo         string          `json:"motivo"`
	ValorUnitario  decimal.Decimal `json:"valor_unitario"`
	Condicion      string          `json:"condicion"`
}

type EntregadoResponse struct {
	ID            string          `json:"id"`
	LoteID        string          `json:"lote_id"`
	Cantidad      int             `json:"cantidad"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
}

type DevolucionClienteResponse struct {
	ID                       string              `json:"id"`
	VentaID                  string              `json:"id_venta"`
	ResponsableID            string              `json:"id_responsable"`
	FechaDevolucion          string              `json:"fecha_devolucion"`
	ValorDevolucionTotal     decimal.Decimal     `json:"valor_devolucion_total"`
	CantidadDevueltaCliente  int                 `json:"cantidad_devuelta_cliente"`
	CantidadEntregadaCliente int                 `json:"cantidad_entregada_cliente"`
	Devueltos                []DevueltoResponse  `json:"devueltos"`
	Entregados               []EntregadoResponse `json:"entregados"`
}
