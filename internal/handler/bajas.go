package handler

import (
	"net/http"

	"kajamart/internal/dto"
	"kajamart/internal/middleware"
	"kajamart/internal/service"

	"github.com/gin-gonic/gin"
)

type BajasHandler struct{ svc service.BajaService }

func NewBajasHandler(svc service.BajaService) *BajasHandler { return &BajasHandler{svc: svc} }

// CrearBaja godoc
// @Summary      Registrar una baja de productos
// @Description  Descuenta stock de uno o más lotes en una transacción. El motivo "Venta unitaria" traslada stock a otro lote.
// @Tags         bajas
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearBajaRequest true "Detalle de la baja"
// @Success      201  {object} dto.BajaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /lowProducts [post]
func (h *BajasHandler) CrearBaja(c *gin.Context) {
	var req dto.CrearBajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearBaja(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.CountStockMutation("baja")
	c.JSON(http.StatusCreated, resp)
}

// ListarBajas godoc
// @Summary      Listar bajas
// @Tags         bajas
// @Produce      json
// @Success      200 {array} dto.BajaResponse
// @Router       /lowProducts [get]
func (h *BajasHandler) ListarBajas(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerBaja godoc
// @Summary      Obtener una baja
// @Tags         bajas
// @Produce      json
// @Param        id path string true "UUID de la baja"
// @Success      200 {object} dto.BajaResponse
// @Failure      404 {object} apierror.APIError
// @Router       /lowProducts/{id} [get]
func (h *BajasHandler) ObtenerBaja(c *gin.Context) {
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

// BuscarBajas godoc
// @Summary      Buscar bajas
// @Description  Busca por responsable, motivo, producto o cantidad.
// @Tags         bajas
// @Produce      json
// @Param        q query string true "Término de búsqueda"
// @Success      200 {array} dto.BajaResponse
// @Router       /lowProducts/search [get]
func (h *BajasHandler) BuscarBajas(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
