package service

import (
	"context"
	"time"

	"kajamart/internal/apierror"
	"kajamart/internal/dto"
	"kajamart/internal/model"
	"kajamart/internal/repository"

	"github.com/google/uuid"
)

type LoteService interface {
	Crear(ctx context.Context, req dto.CrearLoteRequest) (*dto.LoteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error)
	Listar(ctx context.Context) ([]dto.LoteResponse, error)
	ListarPorProducto(ctx context.Context, productoID uuid.UUID) ([]dto.LoteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarLoteRequest) (*dto.LoteResponse, error)
	// Desactivar soft-deletes a lot. Only an empty lot can be deactivated; a
	// lot with remaining stock would desynchronize the product aggregate.
	Desactivar(ctx context.Context, id uuid.UUID) error
	// Eliminar hard-deletes a lot, refused while historic lines reference it.
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type loteService struct {
	repo         repository.LoteRepository
	productoRepo repository.ProductoRepository
}

func NewLoteService(repo repository.LoteRepository, productoRepo repository.ProductoRepository) LoteService {
	return &loteService{repo: repo, productoRepo: productoRepo}
}

func (s *loteService) Crear(ctx context.Context, req dto.CrearLoteRequest) (*dto.LoteResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.InvalidInput("id_producto inválido")
	}
	if req.StockLote < 0 {
		return nil, apierror.InvalidInput("stock_producto no puede ser negativo")
	}
	if req.CodigoBarras == "" {
		return nil, apierror.InvalidInput("codigo_barras requerido")
	}
	producto, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		return nil, apierror.NotFound("Producto %s no encontrado", productoID)
	}

	lote := model.Lote{
		ProductoID:         productoID,
		CodigoBarrasCompra: req.CodigoBarras,
		StockLote:          req.StockLote,
		EsDevolucion:       req.EsDevolucion,
		Estado:             true,
	}
	if req.FechaVencimiento != nil {
		fv, err := time.Parse("2006-01-02", *req.FechaVencimiento)
		if err != nil {
			return nil, apierror.InvalidInput("fecha_vencimiento inválida (YYYY-MM-DD)")
		}
		lote.FechaVencimiento = &fv
	}

	if err := s.repo.Crear(ctx, &lote); err != nil {
		return nil, err
	}
	lote.Producto = producto
	return loteToResponse(&lote), nil
}

func (s *loteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error) {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Lote no encontrado")
	}
	return loteToResponse(lote), nil
}

func (s *loteService) Listar(ctx context.Context) ([]dto.LoteResponse, error) {
	lotes, err := s.repo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	return lotesToResponse(lotes), nil
}

func (s *loteService) ListarPorProducto(ctx context.Context, productoID uuid.UUID) ([]dto.LoteResponse, error) {
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return nil, apierror.NotFound("Producto %s no encontrado", productoID)
	}
	lotes, err := s.repo.ListByProducto(ctx, productoID)
	if err != nil {
		return nil, err
	}
	return lotesToResponse(lotes), nil
}

// Actualizar edits descriptive fields only. Quantities never move through
// here — those belong to the paired stock mutations.
func (s *loteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarLoteRequest) (*dto.LoteResponse, error) {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Lote no encontrado")
	}
	if req.CodigoBarras != nil {
		if *req.CodigoBarras == "" {
			return nil, apierror.InvalidInput("codigo_barras no puede ser vacío")
		}
		lote.CodigoBarrasCompra = *req.CodigoBarras
	}
	if req.FechaVencimiento != nil {
		fv, err := time.Parse("2006-01-02", *req.FechaVencimiento)
		if err != nil {
			return nil, apierror.InvalidInput("fecha_vencimiento inválida (YYYY-MM-DD)")
		}
		lote.FechaVencimiento = &fv
	}
	if req.EsDevolucion != nil {
		lote.EsDevolucion = *req.EsDevolucion
	}
	if err := s.repo.Update(ctx, lote); err != nil {
		return nil, err
	}
	return loteToResponse(lote), nil
}

func (s *loteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Lote no encontrado")
	}
	if !lote.Estado {
		return nil // already inactive, idempotent
	}
	if lote.StockLote > 0 {
		return apierror.Conflict(
			"El lote %s aún tiene %d unidades; debe quedar en cero antes de desactivarlo", id, lote.StockLote)
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *loteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	lote, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return apierror.NotFound("Lote no encontrado")
	}
	if lote.StockLote > 0 {
		return apierror.Conflict(
			"El lote %s aún tiene %d unidades; debe quedar en cero antes de eliminarlo", id, lote.StockLote)
	}
	refs, err := s.repo.CountReferencias(ctx, id)
	if err != nil {
		return err
	}
	if len(refs) > 0 {
		return apierror.DependencyConflict(
			"El lote tiene movimientos históricos y no puede eliminarse", refs)
	}
	return s.repo.HardDelete(ctx, id)
}

func lotesToResponse(lotes []model.Lote) []dto.LoteResponse {
	out := make([]dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, *loteToResponse(&l))
	}
	return out
}

func loteToResponse(l *model.Lote) *dto.LoteResponse {
	resp := &dto.LoteResponse{
		ID:           l.ID.String(),
		ProductoID:   l.ProductoID.String(),
		CodigoBarras: l.CodigoBarrasCompra,
		StockLote:    l.StockLote,
		EsDevolucion: l.EsDevolucion,
		Estado:       l.Estado,
	}
	if l.Producto != nil {
		resp.NombreProducto = l.Producto.Nombre
	}
	if l.FechaVencimiento != nil {
		fv := l.FechaVencimiento.Format("2006-01-02")
		resp.FechaVencimiento = &fv
	}
	return resp
}
