package service

import (
	"context"
	"time"

	"kajamart/internal/apierror"
	"kajamart/internal/dto"
	"kajamart/internal/model"
	"kajamart/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DevolucionProveedorService interface {
	Crear(ctx context.Context, req dto.CrearDevolucionProveedorRequest) (*dto.DevolucionProveedorResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.DevolucionProveedorResponse, error)
	Listar(ctx context.Context) ([]dto.DevolucionProveedorResponse, error)
	Buscar(ctx context.Context, q string) ([]dto.DevolucionProveedorResponse, error)
}

type devolucionProveedorService struct {
	repo        repository.DevolucionProveedorRepository
	loteRepo    repository.LoteRepository
	usuarioRepo repository.UsuarioRepository
	alertas     AlertaStockNotifier
}

func NewDevolucionProveedorService(
	repo repository.DevolucionProveedorRepository,
	loteRepo repository.LoteRepository,
	usuarioRepo repository.UsuarioRepository,
	alertas AlertaStockNotifier,
) DevolucionProveedorService {
	return &devolucionProveedorService{
		repo:        repo,
		loteRepo:    loteRepo,
		usuarioRepo: usuarioRepo,
		alertas:     alertas,
	}
}

// Crear registers goods going back to the supplier. Every line decrements its
// lot and the product aggregate; there is no compensating increment, so a
// supplier return always lowers net stock.
func (s *devolucionProveedorService) Crear(ctx context.Context, req dto.CrearDevolucionProveedorRequest) (*dto.DevolucionProveedorResponse, error) {
	responsableID, err := uuid.Parse(req.ResponsableID)
	if err != nil {
		return nil, apierror.InvalidInput("id_responsable inválido")
	}
	responsable, err := s.usuarioRepo.FindByID(ctx, responsableID)
	if err != nil {
		return nil, apierror.NotFound("Responsable no encontrado")
	}
	if req.NumeroFactura == "" {
		return nil, apierror.InvalidInput("numero_factura requerido")
	}
	if len(req.Products) == 0 {
		return nil, apierror.InvalidInput("La devolución debe incluir al menos un producto")
	}

	type lineaDev struct {
		loteID      uuid.UUID
		cantidad    int
		motivo      string
		nombre      string
		esDescuento bool
		productoID  uuid.UUID
	}

	lineas := make([]lineaDev, 0, len(req.Products))
	cantidadTotal := 0
	for i, item := range req.Products {
		if item.Cantidad <= 0 {
			return nil, apierror.InvalidLine("products[%d]: cantidad inválida", i)
		}
		if item.Motivo == "" {
			return nil, apierror.InvalidLine("products[%d]: motivo requerido", i)
		}
		loteID, err := uuid.Parse(item.LoteID)
		if err != nil {
			return nil, apierror.InvalidLine("products[%d]: id_detalle_producto inválido", i)
		}
		lote, err := s.loteRepo.FindByID(ctx, loteID)
		if err != nil {
			return nil, apierror.InvalidLine("products[%d]: lote no existe: %s", i, loteID)
		}
		nombre := item.NombreProducto
		if nombre == "" && lote.Producto != nil {
			nombre = lote.Producto.Nombre
		}
		lineas = append(lineas, lineaDev{
			loteID:      loteID,
			cantidad:    item.Cantidad,
			motivo:      item.Motivo,
			nombre:      nombre,
			esDescuento: item.EsDescuento,
			productoID:  lote.ProductoID,
		})
		cantidadTotal += item.Cantidad
	}

	devolucion := model.DevolucionProveedor{
		ResponsableID:     responsableID,
		NombreResponsable: responsable.NombreCompleto(),
		NumeroFactura:     req.NumeroFactura,
		FechaDevolucion:   time.Now(),
		CantidadTotal:     cantidadTotal,
	}
	productoIDs := make([]uuid.UUID, 0, len(lineas))
	for _, l := range lineas {
		devolucion.Detalles = append(devolucion.Detalles, model.DetalleDevolucionProveedor{
			LoteID:           l.loteID,
			CantidadDevuelta: l.cantidad,
			Motivo:           l.motivo,
			NombreProducto:   l.nombre,
			EsDescuento:      l.esDescuento,
		})
		productoIDs = append(productoIDs, l.productoID)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, l := range lineas {
			if err := s.loteRepo.DescontarStockTx(tx, l.loteID, l.cantidad); err != nil {
				return err
			}
		}
		return s.repo.CreateTx(tx, &devolucion)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.alertas != nil {
		s.alertas.NotificarStockBajo(ctx, productoIDs)
	}
	return devolucionProveedorToResponse(&devolucion), nil
}

func (s *devolucionProveedorService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.DevolucionProveedorResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Devolución no encontrada")
	}
	return devolucionProveedorToResponse(d), nil
}

func (s *devolucionProveedorService) Listar(ctx context.Context) ([]dto.DevolucionProveedorResponse, error) {
	devoluciones, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return devolucionesProveedorToResponse(devoluciones), nil
}

func (s *devolucionProveedorService) Buscar(ctx context.Context, q string) ([]dto.DevolucionProveedorResponse, error) {
	devoluciones, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return devolucionesProveedorToResponse(devoluciones), nil
}

func devolucionesProveedorToResponse(ds []model.DevolucionProveedor) []dto.DevolucionProveedorResponse {
	out := make([]dto.DevolucionProveedorResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, *devolucionProveedorToResponse(&d))
	}
	return out
}

func devolucionProveedorToResponse(d *model.DevolucionProveedor) *dto.DevolucionProveedorResponse {
	detalles := make([]dto.DetalleDevolucionProveedorResponse, 0, len(d.Detalles))
	for _, det := range d.Detalles {
		detalles = append(detalles, dto.DetalleDevolucionProveedorResponse{
			ID:             det.ID.String(),
			LoteID:         det.LoteID.String(),
			Cantidad:       det.CantidadDevuelta,
			Motivo:         det.Motivo,
			NombreProducto: det.NombreProducto,
			EsDescuento:    det.EsDescuento,
		})
	}
	return &dto.DevolucionProveedorResponse{
		ID:                d.ID.String(),
		ResponsableID:     d.ResponsableID.String(),
		NombreResponsable: d.NombreResponsable,
		NumeroFactura:     d.NumeroFactura,
		FechaDevolucion:   d.FechaDevolucion.Format(time.RFC3339),
		CantidadTotal:     d.CantidadTotal,
		Detalles:          detalles,
	}
}
