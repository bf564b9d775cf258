package handler

import (
	"net/http"

	"kajamart/internal/dto"
	"kajamart/internal/middleware"
	"kajamart/internal/model"
	"kajamart/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler { return &VentasHandler{svc: svc} }

// CrearVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Crea una venta ACID: descuenta stock por lote y mantiene el agregado del producto en la misma transacción.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /sales [post]
func (h *VentasHandler) CrearVenta(c *gin.Context) {
	var req dto.CrearVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearVenta(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.CountStockMutation("venta")
	c.JSON(http.StatusCreated, resp)
}

// ActualizarEstado godoc
// @Summary      Actualizar estado de una venta
// @Description  Cambia el estado. "Anulada" restaura stock dentro de la ventana de 30 minutos; re-anular es idempotente.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID de la venta"
// @Param        body body dto.ActualizarEstadoVentaRequest true "Nuevo estado"
// @Success      200  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /sales/{id}/status [put]
func (h *VentasHandler) ActualizarEstado(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Estado == model.EstadoVentaAnulada {
		middleware.CountStockMutation("anulacion")
	}
	c.JSON(http.StatusOK, resp)
}

// ListarVentas godoc
// @Summary      Listar ventas
// @Description  Lista paginada de ventas filtrada por fecha y estado.
// @Tags         ventas
// @Produce      json
// @Param        fecha  query string false "Fecha YYYY-MM-DD"
// @Param        estado query string false "Pagada | Pendiente | Anulada | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.VentaListResponse
// @Router       /sales [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, err)
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerVenta godoc
// @Summary      Obtener una venta
// @Tags         ventas
// @Produce      json
// @Param        id path string true "UUID de la venta"
// @Success      200 {object} dto.VentaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /sales/{id} [get]
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BuscarVentas godoc
// @Summary      Buscar ventas
// @Description  Busca por total, medio de pago o nombre de cliente.
// @Tags         ventas
// @Produce      json
// @Param        q query string true "Término de búsqueda"
// @Success      200 {array} dto.VentaResponse
// @Router       /sales/search [get]
func (h *VentasHandler) BuscarVentas(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
