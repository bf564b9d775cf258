package handler

import (
	"net/http"

	"kajamart/internal/dto"
	"kajamart/internal/middleware"
	"kajamart/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LotesHandler struct{ svc service.LoteService }

func NewLotesHandler(svc service.LoteService) *LotesHandler { return &LotesHandler{svc: svc} }

// CrearLote godoc
// @Summary      Registrar un lote
// @Description  Inserta el lote e incrementa el stock agregado del producto en la misma transacción.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearLoteRequest true "Detalle del lote"
// @Success      201  {object} dto.LoteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /detailsProducts [post]
func (h *LotesHandler) CrearLote(c *gin.Context) {
	var req dto.CrearLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.CountStockMutation("ingreso_lote")
	c.JSON(http.StatusCreated, resp)
}

// ListarLotes godoc
// @Summary      Listar lotes activos
// @Tags         lotes
// @Produce      json
// @Param        producto query string false "Filtrar por UUID de producto"
// @Success      200 {array} dto.LoteResponse
// @Router       /detailsProducts [get]
func (h *LotesHandler) ListarLotes(c *gin.Context) {
	if productoParam := c.Query("producto"); productoParam != "" {
		productoID, err := uuid.Parse(productoParam)
		if err != nil {
			respondError(c, err)
			return
		}
		resp, err := h.svc.ListarPorProducto(c.Request.Context(), productoID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerLote godoc
// @Summary      Obtener un lote
// @Tags         lotes
// @Produce      json
// @Param        id path string true "UUID del lote"
// @Success      200 {object} dto.LoteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /detailsProducts/{id} [get]
func (h *LotesHandler) ObtenerLote(c *gin.Context) {
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

// ActualizarLote godoc
// @Summary      Actualizar datos descriptivos de un lote
// @Description  Solo código de barras, vencimiento y marca de devolución; las cantidades se mueven por ventas, bajas y devoluciones.
// @Tags         lotes
// @Accept       json
// @Produce      json
// @Param        id   path string true "UUID del lote"
// @Param        body body dto.ActualizarLoteRequest true "Campos a actualizar"
// @Success      200  {object} dto.LoteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /detailsProducts/{id} [put]
func (h *LotesHandler) ActualizarLote(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarLoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DesactivarLote godoc
// @Summary      Desactivar un lote (borrado lógico)
// @Tags         lotes
// @Param        id path string true "UUID del lote"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /detailsProducts/{id} [delete]
func (h *LotesHandler) DesactivarLote(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// EliminarLote godoc
// @Summary      Eliminar un lote definitivamente
// @Description  Rechazado con CONFLICTO_DEPENDENCIA mientras existan movimientos históricos que lo referencien.
// @Tags         lotes
// @Param        id path string true "UUID del lote"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /detailsProducts/{id}/purge [delete]
func (h *LotesHandler) EliminarLote(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
