package service_test

import (
	"context"
	"testing"

	"kajamart/internal/apierror"
	"kajamart/internal/dto"
	"kajamart/internal/model"
	"kajamart/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildClienteSvc() (service.ClienteService, *stubClienteRepo) {
	clientes := newStubClienteRepo()
	return service.NewClienteService(clientes), clientes
}

func TestCrearCliente(t *testing.T) {
	svc, _ := buildClienteSvc()

	out, err := svc.Crear(context.Background(), dto.CrearClienteRequest{Nombre: "Julia Torres"})
	require.NoError(t, err)
	assert.Equal(t, "Julia Torres", out.Nombre)
	assert.True(t, out.Activo)
	assert.False(t, out.Mostrador)

	_, err = svc.Crear(context.Background(), dto.CrearClienteRequest{})
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeEntradaInvalida))
}

func TestClienteMostrador_Reservado(t *testing.T) {
	svc, repo := buildClienteSvc()

	nombre := "Otro nombre"
	_, err := svc.Actualizar(context.Background(), model.ClienteMostradorID, dto.ActualizarClienteRequest{Nombre: &nombre})
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeConflicto))

	err = svc.Eliminar(context.Background(), model.ClienteMostradorID)
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeConflicto))

	// Still present and still first in listings.
	mostrador, err := repo.FindByID(context.Background(), model.ClienteMostradorID)
	require.NoError(t, err)
	assert.Equal(t, "Cliente mostrador", mostrador.Nombre)

	out, err := svc.ObtenerPorID(context.Background(), model.ClienteMostradorID)
	require.NoError(t, err)
	assert.True(t, out.Mostrador)
}

func TestEliminarCliente_ConVentas(t *testing.T) {
	svc, repo := buildClienteSvc()
	c := &model.Cliente{Nombre: "Pedro Lara", Activo: true}
	require.NoError(t, repo.Create(context.Background(), c))
	repo.ventas[c.ID] = 4

	err := svc.Eliminar(context.Background(), c.ID)
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeConflictoDependencia))
	_, findErr := repo.FindByID(context.Background(), c.ID)
	assert.NoError(t, findErr)
}

func TestEliminarCliente_SinVentas(t *testing.T) {
	svc, repo := buildClienteSvc()
	c := &model.Cliente{Nombre: "Sin Historial", Activo: true}
	require.NoError(t, repo.Create(context.Background(), c))

	require.NoError(t, svc.Eliminar(context.Background(), c.ID))
	_, findErr := repo.FindByID(context.Background(), c.ID)
	assert.Error(t, findErr)

	err := svc.Eliminar(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeNoEncontrado))
}

func TestActualizarCliente(t *testing.T) {
	svc, repo := buildClienteSvc()
	c := &model.Cliente{Nombre: "Eva Marín", Activo: true}
	require.NoError(t, repo.Create(context.Background(), c))

	nombre := "Eva Marín de Soto"
	inactivo := false
	out, err := svc.Actualizar(context.Background(), c.ID, dto.ActualizarClienteRequest{
		Nombre: &nombre,
		Activo: &inactivo,
	})
	require.NoError(t, err)
	assert.Equal(t, nombre, out.Nombre)
	assert.False(t, out.Activo)

	vacio := ""
	_, err = svc.Actualizar(context.Background(), c.ID, dto.ActualizarClienteRequest{Nombre: &vacio})
	require.Error(t, err)
	assert.True(t, apierror.IsCode(err, apierror.CodeEntradaInvalida))
}
