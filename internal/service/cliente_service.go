package service

import (
	"context"

	"kajamart/internal/apierror"
	"kajamart/internal/dto"
	"kajamart/internal/model"
	"kajamart/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if req.Nombre == "" {
		return nil, apierror.InvalidInput("nombre requerido")
	}
	cliente := model.Cliente{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Telefono: req.Telefono,
		Activo:   true,
	}
	if err := s.repo.Create(ctx, &cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(&cliente), nil
}

func (s *clienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	return clienteToResponse(cliente), nil
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, *clienteToResponse(&c))
	}
	return out, nil
}

// Actualizar edits a customer. The register customer is reserved and cannot
// be edited.
func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	if id == model.ClienteMostradorID {
		return nil, apierror.Conflict("El cliente mostrador es reservado y no puede modificarse")
	}
	cliente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	if req.Nombre != nil {
		if *req.Nombre == "" {
			return nil, apierror.InvalidInput("nombre no puede ser vacío")
		}
		cliente.Nombre = *req.Nombre
	}
	if req.Email != nil {
		cliente.Email = req.Email
	}
	if req.Telefono != nil {
		cliente.Telefono = req.Telefono
	}
	if req.Activo != nil {
		cliente.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, cliente); err != nil {
		return nil, err
	}
	return clienteToResponse(cliente), nil
}

// Eliminar deletes a customer without sales. The register customer and any
// customer with sale history are refused.
func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if id == model.ClienteMostradorID {
		return apierror.Conflict("El cliente mostrador es reservado y no puede eliminarse")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NotFound("Cliente no encontrado")
	}
	n, err := s.repo.CountVentas(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apierror.DependencyConflict(
			"El cliente tiene ventas registradas y no puede eliminarse",
			map[string]int64{"ventas": n})
	}
	return s.repo.Delete(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Activo:    c.Activo,
		Mostrador: c.EsMostrador(),
	}
}
