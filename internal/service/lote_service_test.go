package service_test

import (
	"context"
	"testing"

	"kajamart/internal/apierror"
	"kajamart/internal/dto"
	"kajamart/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLoteSvc() (service.LoteService, *stubLoteRepo, *stubProductoRepo) {
	productos := newStubProductoRepo()
	lotes := newStubLoteRepo(productos)
	return service.NewLoteService(lotes, productos), lotes, productos
}

func TestCrearLote_IncrementaAgregado(t *testing.T) {
	svc, lotes, productos := buildLoteSvc()
	p := productos.add("Cereal", 0, 5)

	fecha := "2026-12-31"
	out, err := svc.Crear(context.Background(), dto.CrearLoteRequest{
		ProductoID:       p.ID.String(),
		CodigoBarras:     "7701234567890",
		FechaVencimiento: &fecha,
		StockLote:        24,
	})
	require.NoError(t, err)

	assert.Equal(t, 24, out.StockLote)
	assert.Equal(t, 24, p.StockActual)
	assert.Equal(t, "Cereal", out.NombreProducto)
	require.NotNil(t, out.FechaVencimiento)
	assert.Equal(t, fecha, *out.FechaVencimiento)
	assert.True(t, invariantHolds(productos, lotes))
}

func TestCrearLote_Validaciones(t *testing.T) {
	svc, _, productos := buildLoteSvc()
	p := productos.add("Avena", 0, 5)

	t.Run("producto inexistente", func(t *testing.T) {
		_, err := svc.Crear(context.Background(), dto.CrearLoteRequest{
			ProductoID: uuid.NewString(), CodigoBarras: "1", StockLote: 1,
		})
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeNoEncontrado))
	})

	t.Run("stock negativo", func(t *testing.T) {
		_, err := svc.Crear(context.Background(), dto.CrearLoteRequest{
			ProductoID: p.ID.String(), CodigoBarras: "1", StockLote: -3,
		})
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeEntradaInvalida))
	})

	t.Run("sin codigo de barras", func(t *testing.T) {
		_, err := svc.Crear(context.Background(), dto.CrearLoteRequest{
			ProductoID: p.ID.String(), StockLote: 1,
		})
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeEntradaInvalida))
	})

	t.Run("fecha invalida", func(t *testing.T) {
		fecha := "31-12-2026"
		_, err := svc.Crear(context.Background(), dto.CrearLoteRequest{
			ProductoID: p.ID.String(), CodigoBarras: "1", StockLote: 1, FechaVencimiento: &fecha,
		})
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeEntradaInvalida))
	})

	assert.Equal(t, 0, p.StockActual)
}

func TestActualizarLote_SoloCamposDescriptivos(t *testing.T) {
	svc, lotes, productos := buildLoteSvc()
	p := productos.add("Granola", 12, 2)
	l := lotes.add(p, 12)
	l.CodigoBarrasCompra = "111"

	nuevo := "222"
	out, err := svc.Actualizar(context.Background(), l.ID, dto.ActualizarLoteRequest{CodigoBarras: &nuevo})
	require.NoError(t, err)

	assert.Equal(t, "222", out.CodigoBarras)
	// Quantities are untouched by descriptive updates.
	assert.Equal(t, 12, out.StockLote)
	assert.Equal(t, 12, p.StockActual)
}

func TestDesactivarLote(t *testing.T) {
	svc, lotes, productos := buildLoteSvc()
	p := productos.add("Café molido", 8, 2)
	conStock := lotes.add(p, 8)
	vacio := lotes.add(p, 0)

	t.Run("rechaza lote con stock", func(t *testing.T) {
		err := svc.Desactivar(context.Background(), conStock.ID)
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeConflicto))
		assert.True(t, conStock.Estado)
	})

	t.Run("desactiva lote vacío", func(t *testing.T) {
		require.NoError(t, svc.Desactivar(context.Background(), vacio.ID))
		assert.False(t, vacio.Estado)
	})

	t.Run("idempotente sobre lote inactivo", func(t *testing.T) {
		require.NoError(t, svc.Desactivar(context.Background(), vacio.ID))
	})

	t.Run("no encontrado", func(t *testing.T) {
		err := svc.Desactivar(context.Background(), uuid.New())
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeNoEncontrado))
	})

	assert.True(t, invariantHolds(productos, lotes))
}

func TestEliminarLote(t *testing.T) {
	svc, lotes, productos := buildLoteSvc()
	p := productos.add("Té verde", 5, 2)
	conStock := lotes.add(p, 5)
	conHistorial := lotes.add(p, 0)
	limpio := lotes.add(p, 0)

	lotes.refs[conHistorial.ID] = map[string]int64{"detalle_venta": 3, "detalle_baja": 1}

	t.Run("rechaza lote con stock", func(t *testing.T) {
		err := svc.Eliminar(context.Background(), conStock.ID)
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeConflicto))
	})

	t.Run("rechaza lote con movimientos", func(t *testing.T) {
		err := svc.Eliminar(context.Background(), conHistorial.ID)
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeConflictoDependencia))
		_, findErr := lotes.FindByID(context.Background(), conHistorial.ID)
		assert.NoError(t, findErr)
	})

	t.Run("elimina lote sin referencias", func(t *testing.T) {
		require.NoError(t, svc.Eliminar(context.Background(), limpio.ID))
		_, findErr := lotes.FindByID(context.Background(), limpio.ID)
		assert.Error(t, findErr)
	})
}
