package service

import (
	"context"
	"time"

	"kajamart/internal/apierror"
	"kajamart/internal/dto"
	"kajamart/internal/model"
	"kajamart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ActaNotifier receives the id of a committed write-off batch so the document
// worker can render and archive its acta. Fire-and-forget.
type ActaNotifier interface {
	NotificarActaBaja(ctx context.Context, bajaID uuid.UUID)
}

type BajaService interface {
	CrearBaja(ctx context.Context, req dto.CrearBajaRequest) (*dto.BajaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.BajaResponse, error)
	Listar(ctx context.Context) ([]dto.BajaResponse, error)
	Buscar(ctx context.Context, q string) ([]dto.BajaResponse, error)
}

type bajaService struct {
	repo        repository.BajaRepository
	loteRepo    repository.LoteRepository
	usuarioRepo repository.UsuarioRepository
	alertas     AlertaStockNotifier
	actas       ActaNotifier
}

func NewBajaService(
	repo repository.BajaRepository,
	loteRepo repository.LoteRepository,
	usuarioRepo repository.UsuarioRepository,
	alertas AlertaStockNotifier,
	actas ActaNotifier,
) BajaService {
	return &bajaService{
		repo:        repo,
		loteRepo:    loteRepo,
		usuarioRepo: usuarioRepo,
		alertas:     alertas,
		actas:       actas,
	}
}

// CrearBaja registers a write-off batch. Every line decrements its lot; the
// unit-sale motive additionally increments the transfer target, so that pair
// is stock-neutral at the product level. All lines commit or none do.
func (s *bajaService) CrearBaja(ctx context.Context, req dto.CrearBajaRequest) (*dto.BajaResponse, error) {
	responsableID, err := uuid.Parse(req.ResponsableID)
	if err != nil {
		return nil, apierror.InvalidInput("id_responsable inválido")
	}
	responsable, err := s.usuarioRepo.FindByID(ctx, responsableID)
	if err != nil {
		return nil, apierror.NotFound("Responsable no encontrado")
	}
	if len(req.Products) == 0 {
		return nil, apierror.InvalidInput("La baja debe incluir al menos un producto")
	}

	type lineaBaja struct {
		loteID           uuid.UUID
		cantidad         int
		motivo           string
		total            decimal.Decimal
		nombreProducto   string
		productoID       uuid.UUID
		trasladoID       *uuid.UUID
		cantidadTraslado *int
	}

	lineas := make([]lineaBaja, 0, len(req.Products))
	cantidadTotal := 0
	precioTotal := decimal.Zero

	for i, item := range req.Products {
		if item.Cantidad <= 0 {
			return nil, apierror.InvalidLine("products[%d]: cantidad inválida", i)
		}
		if item.Motivo == "" {
			return nil, apierror.InvalidLine("products[%d]: motivo requerido", i)
		}
		loteID, err := uuid.Parse(item.LoteID)
		if err != nil {
			return nil, apierror.InvalidLine("products[%d]: id_detalle_productos inválido", i)
		}

		linea := lineaBaja{
			loteID:   loteID,
			cantidad: item.Cantidad,
			motivo:   item.Motivo,
			total:    item.TotalProductoBaja,
		}

		// Transfer fields travel only with the unit-sale motive.
		if item.Motivo == model.MotivoVentaUnitaria {
			if item.LoteTrasladoID == nil || item.CantidadTraslado == nil {
				return nil, apierror.InvalidLine(
					"products[%d]: el motivo %q requiere id_producto_traslado y cantidad_traslado",
					i, model.MotivoVentaUnitaria)
			}
			if *item.CantidadTraslado <= 0 {
				return nil, apierror.InvalidLine("products[%d]: cantidad_traslado inválida", i)
			}
			trasladoID, err := uuid.Parse(*item.LoteTrasladoID)
			if err != nil {
				return nil, apierror.InvalidLine("products[%d]: id_producto_traslado inválido", i)
			}
			linea.trasladoID = &trasladoID
			ct := *item.CantidadTraslado
			linea.cantidadTraslado = &ct
		} else if item.LoteTrasladoID != nil || item.CantidadTraslado != nil {
			return nil, apierror.InvalidLine(
				"products[%d]: campos de traslado no permitidos para el motivo %q", i, item.Motivo)
		}

		lote, err := s.loteRepo.FindByID(ctx, loteID)
		if err != nil {
			return nil, apierror.InvalidLine("products[%d]: lote no existe: %s", i, loteID)
		}
		if lote.Producto != nil {
			linea.nombreProducto = lote.Producto.Nombre
		}
		linea.productoID = lote.ProductoID

		lineas = append(lineas, linea)
		cantidadTotal += item.Cantidad
		precioTotal = precioTotal.Add(item.TotalProductoBaja)
	}

	baja := model.Baja{
		ResponsableID:     responsableID,
		NombreResponsable: responsable.NombreCompleto(),
		FechaBaja:         time.Now(),
		CantidadBaja:      cantidadTotal,
		TotalPrecioBaja:   precioTotal,
	}
	productoIDs := make([]uuid.UUID, 0, len(lineas))
	for _, l := range lineas {
		baja.Detalles = append(baja.Detalles, model.DetalleBaja{
			LoteID:            l.loteID,
			Cantidad:          l.cantidad,
			Motivo:            l.motivo,
			TotalProductoBaja: l.total,
			NombreProducto:    l.nombreProducto,
			LoteTrasladoID:    l.trasladoID,
			CantidadTraslado:  l.cantidadTraslado,
		})
		productoIDs = append(productoIDs, l.productoID)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, l := range lineas {
			if err := s.loteRepo.DescontarStockTx(tx, l.loteID, l.cantidad); err != nil {
				return err
			}
			if l.trasladoID != nil {
				if err := s.loteRepo.ReponerStockTx(tx, *l.trasladoID, *l.cantidadTraslado); err != nil {
					return err
				}
			}
		}
		return s.repo.CreateTx(tx, &baja)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.alertas != nil {
		s.alertas.NotificarStockBajo(ctx, productoIDs)
	}
	if s.actas != nil {
		s.actas.NotificarActaBaja(ctx, baja.ID)
	}

	return bajaToResponse(&baja), nil
}

func (s *bajaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.BajaResponse, error) {
	baja, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Baja no encontrada")
	}
	return bajaToResponse(baja), nil
}

func (s *bajaService) Listar(ctx context.Context) ([]dto.BajaResponse, error) {
	bajas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return bajasToResponse(bajas), nil
}

func (s *bajaService) Buscar(ctx context.Context, q string) ([]dto.BajaResponse, error) {
	bajas, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return bajasToResponse(bajas), nil
}

func bajasToResponse(bajas []model.Baja) []dto.BajaResponse {
	out := make([]dto.BajaResponse, 0, len(bajas))
	for _, b := range bajas {
		out = append(out, *bajaToResponse(&b))
	}
	return out
}

func bajaToResponse(b *model.Baja) *dto.BajaResponse {
	detalles := make([]dto.DetalleBajaResponse, 0, len(b.Detalles))
	for _, d := range b.Detalles {
		resp := dto.DetalleBajaResponse{
			ID:                d.ID.String(),
			LoteID:            d.LoteID.String(),
			Cantidad:          d.Cantidad,
			Motivo:            d.Motivo,
			TotalProductoBaja: d.TotalProductoBaja,
			NombreProducto:    d.NombreProducto,
			CantidadTraslado:  d.CantidadTraslado,
		}
		if d.LoteTrasladoID != nil {
			id := d.LoteTrasladoID.String()
			resp.LoteTrasladoID = &id
		}
		detalles = append(detalles, resp)
	}
	return &dto.BajaResponse{
		ID:                b.ID.String(),
		ResponsableID:     b.ResponsableID.String(),
		NombreResponsable: b.NombreResponsable,
		FechaBaja:         b.FechaBaja.Format(time.RFC3339),
		CantidadBaja:      b.CantidadBaja,
		TotalPrecioBaja:   b.TotalPrecioBaja,
		Detalles:          detalles,
	}
}
