package dto

// CrearLoteRequest inserts a new lot (POST /detailsProducts). The product
// aggregate is incremented by StockLote in the same transaction.
type CrearLoteRequest struct {
	ProductoID       string  `json:"id_producto"       validate:"required,uuid"`
	CodigoBarras     string  `json:"codigo_barras"     validate:"required"`
	FechaVencimiento *string `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	StockLote        int     `json:"stock_producto"    validate:"required"`
	EsDevolucion     bool    `json:"es_devolucion"`
}

type ActualizarLoteRequest struct {
	CodigoBarras     *string `json:"codigo_barras"`
	FechaVencimiento *string `json:"fecha_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	EsDevolucion     *bool   `json:"es_devolucion"`
}

type LoteResponse struct {
	ID               string  `json:"id"`
	ProductoID       string  `json:"id_producto"`
	NombreProducto   string  `json:"nombre_producto,omitempty"`
	CodigoBarras     string  `json:"codigo_barras"`
	FechaVencimiento *string `json:"fecha_vencimiento,omitempty"`
	StockLote        int     `json:"stock_producto"`
	EsDevolucion     bool    `json:"es_devolucion"`
	Estado           bool    `json:"estado"`
}
