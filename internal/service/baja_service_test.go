package service_test

import (
	"context"
	"testing"

	"kajamart/internal/apierror"
	"kajamart/internal/dto"
	"kajamart/internal/model"
	"kajamart/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildBajaSvc() (service.BajaService, *stubBajaRepo, *stubLoteRepo, *stubProductoRepo, *stubUsuarioRepo, *stubNotifier) {
	productos := newStubProductoRepo()
	lotes := newStubLoteRepo(productos)
	bajas := &stubBajaRepo{}
	usuarios := newStubUsuarioRepo()
	notifier := &stubNotifier{}
	svc := service.NewBajaService(bajas, lotes, usuarios, notifier, notifier)
	return svc, bajas, lotes, productos, usuarios, notifier
}

func TestCrearBaja_DescuentaVariasLineas(t *testing.T) {
	svc, bajas, lotes, productos, usuarios, notifier := buildBajaSvc()
	resp := usuarios.add("María", "Pérez")
	p1 := productos.add("Queso", 30, 5)
	p2 := productos.add("Jamón", 20, 5)
	l1 := lotes.add(p1, 30)
	l2 := lotes.add(p2, 20)

	out, err := svc.CrearBaja(context.Background(), dto.CrearBajaRequest{
		ResponsableID: resp.ID.String(),
		Products: []dto.ItemBajaRequest{
			{LoteID: l1.ID.String(), Cantidad: 4, Motivo: "Producto vencido", TotalProductoBaja: decimal.NewFromInt(12)},
			{LoteID: l2.ID.String(), Cantidad: 2, Motivo: "Producto dañado", TotalProductoBaja: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 26, l1.StockLote)
	assert.Equal(t, 18, l2.StockLote)
	assert.Equal(t, 6, out.CantidadBaja)
	assert.True(t, decimal.NewFromInt(20).Equal(out.TotalPrecioBaja))
	assert.Equal(t, "María Pérez", out.NombreResponsable)
	assert.True(t, invariantHolds(productos, lotes))

	require.Len(t, bajas.bajas, 1)
	assert.Len(t, notifier.calls, 1)
	require.Len(t, notifier.actas, 1)
	assert.Equal(t, bajas.bajas[0].ID, notifier.actas[0])
}

func TestCrearBaja_TrasladoVentaUnitaria(t *testing.T) {
	svc, _, lotes, productos, usuarios, _ := buildBajaSvc()
	resp := usuarios.add("Luis", "Gómez")
	// Same product, two lots: break a pack from origen into unidades.
	p := productos.add("Gaseosa sixpack", 36, 5)
	origen := lotes.add(p, 30)
	destino := lotes.add(p, 6)

	traslado := destino.ID.String()
	cantidad := 6
	_, err := svc.CrearBaja(context.Background(), dto.CrearBajaRequest{
		ResponsableID: resp.ID.String(),
		Products: []dto.ItemBajaRequest{{
			LoteID:           origen.ID.String(),
			Cantidad:         1,
			Motivo:           model.MotivoVentaUnitaria,
			LoteTrasladoID:   &traslado,
			CantidadTraslado: &cantidad,
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, 29, origen.StockLote)
	assert.Equal(t, 12, destino.StockLote)
	// Pack out, units in: the aggregate moves by the net of both mutations.
	assert.Equal(t, 41, p.StockActual)
	assert.True(t, invariantHolds(productos, lotes))
}

func TestCrearBaja_CamposTrasladoInvalidos(t *testing.T) {
	svc, _, lotes, productos, usuarios, _ := buildBajaSvc()
	resp := usuarios.add("Ana", "Ruiz")
	p := productos.add("Galletas", 10, 2)
	l := lotes.add(p, 10)
	otro := lotes.add(p, 5)

	traslado := otro.ID.String()

	t.Run("traslado con motivo distinto", func(t *testing.T) {
		_, err := svc.CrearBaja(context.Background(), dto.CrearBajaRequest{
			ResponsableID: resp.ID.String(),
			Products: []dto.ItemBajaRequest{{
				LoteID:         l.ID.String(),
				Cantidad:       1,
				Motivo:         "Producto vencido",
				LoteTrasladoID: &traslado,
			}},
		})
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeLineaInvalida))
	})

	t.Run("venta unitaria sin traslado", func(t *testing.T) {
		_, err := svc.CrearBaja(context.Background(), dto.CrearBajaRequest{
			ResponsableID: resp.ID.String(),
			Products: []dto.ItemBajaRequest{{
				LoteID:   l.ID.String(),
				Cantidad: 1,
				Motivo:   model.MotivoVentaUnitaria,
			}},
		})
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeLineaInvalida))
	})

	t.Run("venta unitaria con cantidad de traslado cero", func(t *testing.T) {
		cero := 0
		_, err := svc.CrearBaja(context.Background(), dto.CrearBajaRequest{
			ResponsableID: resp.ID.String(),
			Products: []dto.ItemBajaRequest{{
				LoteID:           l.ID.String(),
				Cantidad:         1,
				Motivo:           model.MotivoVentaUnitaria,
				LoteTrasladoID:   &traslado,
				CantidadTraslado: &cero,
			}},
		})
		require.Error(t, err)
		assert.True(t, apierror.IsCode(err, apierror.CodeLineaInvalida))
	})

	assert.Equal(t, 10, l.StockLote)
	assert.Equal(t, 5, otro.StockLote)
}

func TestCrearBaja_ResponsableInexistente(t *testing.T) {
	svc, _, lotes, productos, _, _ := buildBajaSvc()
	p := productos.add("Fideos", 10, 2)
	l := lotes.add(p, 10)

	_, err := svc.CrearBaja(context.Background(), dto.CrearBajaRequest{
		ResponsableID: uuid.NewString(),
		Products: []dto.ItemBajaRequest{
			{LoteID: l.ID.String(), Cantidad: 1, Motivo: "Producto vencido"},
		},
	})
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeNoEncontrado))
}

func TestCrearBaja_SinProductos(t *testing.T) {
	svc, _, _, _, usuarios, _ := buildBajaSvc()
	resp := usuarios.add("Eva", "Díaz")

	_, err := svc.CrearBaja(context.Background(), dto.CrearBajaRequest{
		ResponsableID: resp.ID.String(),
	})
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeEntradaInvalida))
}

func TestCrearBaja_StockInsuficiente(t *testing.T) {
	svc, bajas, lotes, productos, usuarios, _ := buildBajaSvc()
	resp := usuarios.add("Raúl", "Soto")
	p := productos.add("Atún", 3, 1)
	l := lotes.add(p, 3)

	_, err := svc.CrearBaja(context.Background(), dto.CrearBajaRequest{
		ResponsableID: resp.ID.String(),
		Products: []dto.ItemBajaRequest{
			{LoteID: l.ID.String(), Cantidad: 5, Motivo: "Producto vencido"},
		},
	})
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeStockInsuficiente))
	assert.Empty(t, bajas.bajas)
	assert.Equal(t, 3, l.StockLote)
}
