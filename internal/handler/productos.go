package handler

import (
	"net/http"

	"kajamart/internal/repository"

	"github.com/gin-gonic/gin"
)

// ProductosHandler exposes catalog reads. Product quantities are never edited
// here — the aggregate only moves with its lots.
type ProductosHandler struct{ repo repository.ProductoRepository }

func NewProductosHandler(repo repository.ProductoRepository) *ProductosHandler {
	return &ProductosHandler{repo: repo}
}

// Listar godoc
// @Summary      Listar productos activos
// @Tags         productos
// @Produce      json
// @Success      200 {array} model.Producto
// @Router       /products [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	productos, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productos)
}

// ObtenerPorBarcode godoc
// @Summary      Buscar producto por código de barras
// @Tags         productos
// @Produce      json
// @Param        barcode path string true "Código de barras"
// @Success      200 {object} model.Producto
// @Failure      404 {object} apierror.APIError
// @Router       /products/barcode/{barcode} [get]
func (h *ProductosHandler) ObtenerPorBarcode(c *gin.Context) {
	producto, err := h.repo.FindByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, producto)
}

// BajoMinimo godoc
// @Summary      Listar productos bajo stock mínimo
// @Tags         productos
// @Produce      json
// @Success      200 {array} model.Producto
// @Router       /products/lowStock [get]
func (h *ProductosHandler) BajoMinimo(c *gin.Context) {
	productos, err := h.repo.ListBajoMinimo(c.Request.Context(), nil)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, productos)
}
