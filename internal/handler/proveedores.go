package handler

import (
	"errors"
	"net/http"

	"kajamart/internal/apierror"
	"kajamart/internal/infra"

	"github.com/gin-gonic/gin"
)

// ProveedoresHandler proxies the external suppliers catalog. Supplier data is
// not stored locally; return registration only snapshots the invoice number.
type ProveedoresHandler struct{ client *infra.SuppliersClient }

func NewProveedoresHandler(client *infra.SuppliersClient) *ProveedoresHandler {
	return &ProveedoresHandler{client: client}
}

// Listar godoc
// @Summary      Listar proveedores (catálogo externo)
// @Tags         proveedores
// @Produce      json
// @Success      200 {array}  infra.ProveedorExterno
// @Failure      503 {object} apierror.APIError
// @Router       /providers [get]
func (h *ProveedoresHandler) Listar(c *gin.Context) {
	proveedores, err := h.client.ListProveedores(c.Request.Context())
	if err != nil {
		if errors.Is(err, infra.ErrCircuitOpen) {
			c.JSON(http.StatusServiceUnavailable,
				apierror.New(apierror.CodeErrorInterno, http.StatusServiceUnavailable,
					"Catálogo de proveedores temporalmente no disponible"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, proveedores)
}

// PorFactura godoc
// @Summary      Resolver proveedor por número de factura
// @Tags         proveedores
// @Produce      json
// @Param        numero path string true "Número de factura"
// @Success      200 {object} infra.ProveedorExterno
// @Failure      503 {object} apierror.APIError
// @Router       /providers/byInvoice/{numero} [get]
func (h *ProveedoresHandler) PorFactura(c *gin.Context) {
	proveedor, err := h.client.FindProveedorPorFactura(c.Request.Context(), c.Param("numero"))
	if err != nil {
		if errors.Is(err, infra.ErrCircuitOpen) {
			c.JSON(http.StatusServiceUnavailable,
				apierror.New(apierror.CodeErrorInterno, http.StatusServiceUnavailable,
					"Catálogo de proveedores temporalmente no disponible"))
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, proveedor)
}
