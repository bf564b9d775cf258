package handler

import (
	"net/http"

	"kajamart/internal/dto"
	"kajamart/internal/middleware"
	"kajamart/internal/service"

	"github.com/gin-gonic/gin"
)

// ─── Return to supplier ──────────────────────────────────────────────────────

type DevolucionesProveedorHandler struct {
	svc service.DevolucionProveedorService
}

func NewDevolucionesProveedorHandler(svc service.DevolucionProveedorService) *DevolucionesProveedorHandler {
	return &DevolucionesProveedorHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar devolución a proveedor
// @Description  Descuenta stock de los lotes devueltos, sin incremento compensatorio.
// @Tags         devoluciones
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearDevolucionProveedorRequest true "Detalle de la devolución"
// @Success      201  {object} dto.DevolucionProveedorResponse
// @Failure      400  {object} apierror.APIError
// @Router       /returnProducts [post]
func (h *DevolucionesProveedorHandler) Crear(c *gin.Context) {
	var req dto.CrearDevolucionProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.CountStockMutation("devolucion_proveedor")
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar devoluciones a proveedor
// @Tags         devoluciones
// @Produce      json
// @Success      200 {array} dto.DevolucionProveedorResponse
// @Router       /returnProducts [get]
func (h *DevolucionesProveedorHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener una devolución a proveedor
// @Tags         devoluciones
// @Produce      json
// @Param        id path string true "UUID de la devolución"
// @Success      200 {object} dto.DevolucionProveedorResponse
// @Failure      404 {object} apierror.APIError
// @Router       /returnProducts/{id} [get]
func (h *DevolucionesProveedorHandler) Obtener(c *gin.Context) {
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

// Buscar godoc
// @Summary      Buscar devoluciones a proveedor
// @Tags         devoluciones
// @Produce      json
// @Param        q query string true "Término de búsqueda"
// @Success      200 {array} dto.DevolucionProveedorResponse
// @Router       /returnProducts/search [get]
func (h *DevolucionesProveedorHandler) Buscar(c *gin.Context) {
	resp, err := h.svc.Buscar(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Return from customer ────────────────────────────────────────────────────

type DevolucionesClienteHandler struct {
	svc service.DevolucionClienteService
}

func NewDevolucionesClienteHandler(svc service.DevolucionClienteService) *DevolucionesClienteHandler {
	return &DevolucionesClienteHandler{svc: svc}
}

// Crear godoc
// @Summary      Registrar devolución de cliente
// @Description  Aplica condiciones por línea (bueno/vencido reponen, dañado genera baja) y descuenta los productos entregados.
// @Tags         devoluciones
// @Accept       json
// @Produce      json
// @Param        body body dto.CrearDevolucionClienteRequest true "Detalle de la devolución"
// @Success      201  {object} dto.DevolucionClienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /returnClient [post]
func (h *DevolucionesClienteHandler) Crear(c *gin.Context) {
	var req dto.CrearDevolucionClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	middleware.CountStockMutation("devolucion_cliente")
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar devoluciones de cliente
// @Tags         devoluciones
// @Produce      json
// @Success      200 {array} dto.DevolucionClienteResponse
// @Router       /returnClient [get]
func (h *DevolucionesClienteHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obtener godoc
// @Summary      Obtener una devolución de cliente
// @Tags         devoluciones
// @Produce      json
// @Param        id path string true "UUID de la devolución"
// @Success      200 {object} dto.DevolucionClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /returnClient/{id} [get]
func (h *DevolucionesClienteHandler) Obtener(c *gin.Context) {
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
