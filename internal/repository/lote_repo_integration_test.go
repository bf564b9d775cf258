//go:build integration

package repository_test

// Integration tests for the lot ledger against real Postgres via
// testcontainers. Run with: go test -tags integration ./internal/repository/... -v
//
// The in-memory stubs cannot prove the compare-and-decrement semantics or the
// CHECK constraints; these tests do.

import (
	"context"
	"sync"
	"testing"
	"time"

	"kajamart/internal/apierror"
	"kajamart/internal/infra"
	"kajamart/internal/model"
	"kajamart/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("kajamart_test"),
		tcPostgres.WithUsername("kajamart"),
		tcPostgres.WithPassword("kajamart"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := infra.NewDatabase(dsn)
	require.NoError(t, err)
	return db
}

func seedProducto(t *testing.T, db *gorm.DB) *model.Producto {
	t.Helper()
	p := &model.Producto{ID: uuid.New(), Nombre: "Producto integración", StockMinimo: 2, Activo: true}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestLoteRepo_CrearActualizaAgregado(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewLoteRepository(db)
	p := seedProducto(t, db)

	l := &model.Lote{ProductoID: p.ID, CodigoBarrasCompra: "770", StockLote: 10, Estado: true}
	require.NoError(t, repo.Crear(context.Background(), l))

	var stored model.Producto
	require.NoError(t, db.First(&stored, "id = ?", p.ID).Error)
	assert.Equal(t, 10, stored.StockActual)
}

func TestLoteRepo_DescuentoCondicional(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewLoteRepository(db)
	p := seedProducto(t, db)
	l := &model.Lote{ProductoID: p.ID, CodigoBarrasCompra: "771", StockLote: 1, Estado: true}
	require.NoError(t, repo.Crear(context.Background(), l))

	// Two concurrent transactions race for the last unit. Exactly one wins,
	// the loser gets the coded insufficient-stock error, and the aggregate
	// moves by exactly one.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = db.Transaction(func(tx *gorm.DB) error {
				return repo.DescontarStockTx(tx, l.ID, 1)
			})
		}(i)
	}
	wg.Wait()

	okCount, stockErrCount := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case apierror.IsCode(err, apierror.CodeStockInsuficiente):
			stockErrCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, stockErrCount)

	var stored model.Lote
	require.NoError(t, db.First(&stored, "id = ?", l.ID).Error)
	assert.Equal(t, 0, stored.StockLote)
	var prod model.Producto
	require.NoError(t, db.First(&prod, "id = ?", p.ID).Error)
	assert.Equal(t, 0, prod.StockActual)
}

func TestLoteRepo_DescuentoFallaEnLoteInactivo(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewLoteRepository(db)
	p := seedProducto(t, db)
	l := &model.Lote{ProductoID: p.ID, CodigoBarrasCompra: "772", StockLote: 5, Estado: true}
	require.NoError(t, repo.Crear(context.Background(), l))
	require.NoError(t, repo.SoftDelete(context.Background(), l.ID))

	err := db.Transaction(func(tx *gorm.DB) error {
		return repo.DescontarStockTx(tx, l.ID, 1)
	})
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeStockInsuficiente))
}

func TestLoteRepo_ReponerRestauraAmbosLados(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewLoteRepository(db)
	p := seedProducto(t, db)
	l := &model.Lote{ProductoID: p.ID, CodigoBarrasCompra: "773", StockLote: 8, Estado: true}
	require.NoError(t, repo.Crear(context.Background(), l))

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.DescontarStockTx(tx, l.ID, 3)
	}))
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.ReponerStockTx(tx, l.ID, 3)
	}))

	var stored model.Lote
	require.NoError(t, db.First(&stored, "id = ?", l.ID).Error)
	assert.Equal(t, 8, stored.StockLote)
	var prod model.Producto
	require.NoError(t, db.First(&prod, "id = ?", p.ID).Error)
	assert.Equal(t, 8, prod.StockActual)
}

func TestLoteRepo_ReponerReactivaLoteDesactivado(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewLoteRepository(db)
	p := seedProducto(t, db)
	l := &model.Lote{ProductoID: p.ID, CodigoBarrasCompra: "775", StockLote: 4, Estado: true}
	require.NoError(t, repo.Crear(context.Background(), l))

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.DescontarStockTx(tx, l.ID, 4)
	}))
	require.NoError(t, repo.SoftDelete(context.Background(), l.ID))

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return repo.ReponerStockTx(tx, l.ID, 4)
	}))

	var stored model.Lote
	require.NoError(t, db.First(&stored, "id = ?", l.ID).Error)
	assert.Equal(t, 4, stored.StockLote)
	assert.True(t, stored.Estado)
	var prod model.Producto
	require.NoError(t, db.First(&prod, "id = ?", p.ID).Error)
	assert.Equal(t, 4, prod.StockActual)
}

func TestClienteRepo_ListaMostradorPrimero(t *testing.T) {
	db := setupDB(t)
	repo := repository.NewClienteRepository(db)

	require.NoError(t, repo.Create(context.Background(), &model.Cliente{Nombre: "Ana Aguilar", Activo: true}))
	require.NoError(t, repo.Create(context.Background(), &model.Cliente{Nombre: "Zoe Zamora", Activo: true}))

	clientes, err := repo.List(context.Background())
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(clientes), 3)
	assert.Equal(t, model.ClienteMostradorID, clientes[0].ID)
	assert.Equal(t, "Ana Aguilar", clientes[1].Nombre)
	assert.Equal(t, "Zoe Zamora", clientes[2].Nombre)
}

func TestLoteRepo_CheckConstraintRechazaNegativos(t *testing.T) {
	db := setupDB(t)
	p := seedProducto(t, db)
	l := &model.Lote{ProductoID: p.ID, CodigoBarrasCompra: "774", StockLote: 2, Estado: true}
	repo := repository.NewLoteRepository(db)
	require.NoError(t, repo.Crear(context.Background(), l))

	// A raw unconditional update bypassing the ledger must hit the CHECK.
	err := db.Exec("UPDATE detalle_productos SET stock_lote = stock_lote - 5 WHERE id = ?", l.ID).Error
	require.Error(t, err)
}

func TestLoteRepo_SentinelClienteSembrado(t *testing.T) {
	db := setupDB(t)
	var cliente model.Cliente
	require.NoError(t, db.First(&cliente, "id = ?", model.ClienteMostradorID).Error)
	assert.Equal(t, "Cliente mostrador", cliente.Nombre)
}
