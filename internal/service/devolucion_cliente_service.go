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

type DevolucionClienteService interface {
	Crear(ctx context.Context, req dto.CrearDevolucionClienteRequest) (*dto.DevolucionClienteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.DevolucionClienteResponse, error)
	Listar(ctx context.Context) ([]dto.DevolucionClienteResponse, error)
}

type devolucionClienteService struct {
	repo        repository.DevolucionClienteRepository
	ventaRepo   repository.VentaRepository
	loteRepo    repository.LoteRepository
	bajaRepo    repository.BajaRepository
	usuarioRepo repository.UsuarioRepository
	alertas     AlertaStockNotifier
}

func NewDevolucionClienteService(
	repo repository.DevolucionClienteRepository,
	ventaRepo repository.VentaRepository,
	loteRepo repository.LoteRepository,
	bajaRepo repository.BajaRepository,
	usuarioRepo repository.UsuarioRepository,
	alertas AlertaStockNotifier,
) DevolucionClienteService {
	return &devolucionClienteService{
		repo:        repo,
		ventaRepo:   ventaRepo,
		loteRepo:    loteRepo,
		bajaRepo:    bajaRepo,
		usuarioRepo: usuarioRepo,
		alertas:     alertas,
	}
}

// Crear applies a customer return in a single transaction.
//
// Returned lines branch on condition: bueno and vencido restock the lot the
// line was originally drawn from; dañado records a size-one write-off batch
// for the audit trail and moves no stock. Replacement lines delivered to the
// customer decrement their lots like a sale would.
func (s *devolucionClienteService) Crear(ctx context.Context, req dto.CrearDevolucionClienteRequest) (*dto.DevolucionClienteResponse, error) {
	ventaID, err := uuid.Parse(req.VentaID)
	if err != nil {
		return nil, apierror.InvalidInput("id_venta inválido")
	}
	responsableID, err := uuid.Parse(req.ResponsableID)
	if err != nil {
		return nil, apierror.InvalidInput("id_responsable inválido")
	}
	venta, err := s.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}
	responsable, err := s.usuarioRepo.FindByID(ctx, responsableID)
	if err != nil {
		return nil, apierror.NotFound("Responsable no encontrado")
	}
	if len(req.ProductosVenta) == 0 {
		return nil, apierror.InvalidInput("La devolución debe incluir al menos un producto devuelto")
	}

	lineasVenta := make(map[uuid.UUID]*model.DetalleVenta, len(venta.Items))
	for i := range venta.Items {
		lineasVenta[venta.Items[i].ID] = &venta.Items[i]
	}

	type lineaDevuelta struct {
		detalleVentaID uuid.UUID
		loteID         uuid.UUID
		productoID     uuid.UUID
		nombreProducto string
		cantidad       int
		motivo         string
		valorUnitario  decimal.Decimal
		condicion      string
	}
	type lineaEntregada struct {
		loteID        uuid.UUID
		productoID    uuid.UUID
		cantidad      int
		valorUnitario decimal.Decimal
	}

	devueltos := make([]lineaDevuelta, 0, len(req.ProductosVenta))
	cantidadDevuelta := 0
	// The cap is per sale line, so repeated references to the same line are
	// summed before checking against what was sold.
	devueltoPorDetalle := make(map[uuid.UUID]int)
	for i, item := range req.ProductosVenta {
		if item.Cantidad <= 0 {
			return nil, apierror.InvalidLine("productosVenta[%d]: cantidad inválida", i)
		}
		detalleID, err := uuid.Parse(item.DetalleVentaID)
		if err != nil {
			return nil, apierror.InvalidLine("productosVenta[%d]: id_detalle_venta inválido", i)
		}
		detalle, ok := lineasVenta[detalleID]
		if !ok {
			return nil, apierror.LineaNoEnVenta(detalleID.String(), ventaID.String())
		}
		devueltoPorDetalle[detalleID] += item.Cantidad
		if devueltoPorDetalle[detalleID] > detalle.Cantidad {
			return nil, apierror.InvalidLine(
				"productosVenta[%d]: cantidad %d supera lo vendido (%d)", i, devueltoPorDetalle[detalleID], detalle.Cantidad)
		}
		switch item.Condicion {
		case model.CondicionBueno, model.CondicionVencido, model.CondicionDanado:
		default:
			return nil, apierror.InvalidLine("productosVenta[%d]: condición desconocida %q", i, item.Condicion)
		}

		linea := lineaDevuelta{
			detalleVentaID: detalleID,
			loteID:         detalle.LoteID,
			cantidad:       item.Cantidad,
			motivo:         item.Motivo,
			valorUnitario:  item.ValorUnitario,
			condicion:      item.Condicion,
		}
		if detalle.Lote != nil {
			linea.productoID = detalle.Lote.ProductoID
			if detalle.Lote.Producto != nil {
				linea.nombreProducto = detalle.Lote.Producto.Nombre
			}
		}
		devueltos = append(devueltos, linea)
		cantidadDevuelta += item.Cantidad
	}

	entregados := make([]lineaEntregada, 0, len(req.ProductosEntrega))
	cantidadEntregada := 0
	for i, item := range req.ProductosEntrega {
		if item.Cantidad <= 0 {
			return nil, apierror.InvalidLine("productosEntrega[%d]: cantidad inválida", i)
		}
		loteID, err := uuid.Parse(item.LoteID)
		if err != nil {
			return nil, apierror.InvalidLine("productosEntrega[%d]: id_detalle_producto inválido", i)
		}
		lote, err := s.loteRepo.FindByID(ctx, loteID)
		if err != nil {
			return nil, apierror.InvalidLine("productosEntrega[%d]: lote no existe: %s", i, loteID)
		}
		entregados = append(entregados, lineaEntregada{
			loteID:        loteID,
			productoID:    lote.ProductoID,
			cantidad:      item.Cantidad,
			valorUnitario: item.ValorUnitario,
		})
		cantidadEntregada += item.Cantidad
	}

	devolucion := model.DevolucionCliente{
		VentaID:                  ventaID,
		ResponsableID:            responsableID,
		FechaDevolucion:          time.Now(),
		ValorDevolucionTotal:     req.ValorDevolucionTotal,
		CantidadDevueltaCliente:  cantidadDevuelta,
		CantidadEntregadaCliente: cantidadEntregada,
	}
	for _, l := range devueltos {
		devolucion.Devueltos = append(devolucion.Devueltos, model.DevolucionDevuelto{
			DetalleVentaID: l.detalleVentaID,
			Cantidad:       l.cantidad,
			Motivo:         l.motivo,
			ValorUnitario:  l.valorUnitario,
			Condicion:      l.condicion,
		})
	}
	for _, l := range entregados {
		devolucion.Entregados = append(devolucion.Entregados, model.DevolucionEntregado{
			LoteID:            l.loteID,
			CantidadEntregada: l.cantidad,
			ValorUnitario:     l.valorUnitario,
		})
	}

	productoIDs := make([]uuid.UUID, 0, len(devueltos)+len(entregados))
	nombreResponsable := responsable.NombreCompleto()

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, l := range devueltos {
			switch l.condicion {
			case model.CondicionBueno, model.CondicionVencido:
				if err := s.loteRepo.ReponerStockTx(tx, l.loteID, l.cantidad); err != nil {
					return err
				}
			case model.CondicionDanado:
				// Audit record only: the goods never re-enter stock, and the
				// sale already removed them, so there is nothing to decrement.
				total := l.valorUnitario.Mul(decimal.NewFromInt(int64(l.cantidad)))
				baja := model.Baja{
					ResponsableID:     responsableID,
					NombreResponsable: nombreResponsable,
					FechaBaja:         time.Now(),
					CantidadBaja:      l.cantidad,
					TotalPrecioBaja:   total,
					Detalles: []model.DetalleBaja{{
						LoteID:            l.loteID,
						Cantidad:          l.cantidad,
						Motivo:            model.MotivoDanado,
						TotalProductoBaja: total,
						NombreProducto:    l.nombreProducto,
					}},
				}
				if err := s.bajaRepo.CreateTx(tx, &baja); err != nil {
					return err
				}
			}
		}
		for _, l := range entregados {
			if err := s.loteRepo.DescontarStockTx(tx, l.loteID, l.cantidad); err != nil {
				return err
			}
		}
		return s.repo.CreateTx(tx, &devolucion)
	})
	if txErr != nil {
		return nil, txErr
	}

	for _, l := range devueltos {
		if l.productoID != uuid.Nil {
			productoIDs = append(productoIDs, l.productoID)
		}
	}
	for _, l := range entregados {
		productoIDs = append(productoIDs, l.productoID)
	}
	if s.alertas != nil && len(productoIDs) > 0 {
		s.alertas.NotificarStockBajo(ctx, productoIDs)
	}

	return devolucionClienteToResponse(&devolucion), nil
}

func (s *devolucionClienteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.DevolucionClienteResponse, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Devolución no encontrada")
	}
	return devolucionClienteToResponse(d), nil
}

func (s *devolucionClienteService) Listar(ctx context.Context) ([]dto.DevolucionClienteResponse, error) {
	devoluciones, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DevolucionClienteResponse, 0, len(devoluciones))
	for _, d := range devoluciones {
		out = append(out, *devolucionClienteToResponse(&d))
	}
	return out, nil
}

func devolucionClienteToResponse(d *model.DevolucionCliente) *dto.DevolucionClienteResponse {
	devueltos := make([]dto.DevueltoResponse, 0, len(d.Devueltos))
	for _, l := range d.Devueltos {
		devueltos = append(devueltos, dto.DevueltoResponse{
			ID:             l.ID.String(),
			DetalleVentaID: l.DetalleVentaID.String(),
			Cantidad:       l.Cantidad,
			Motivo:         l.Motivo,
			ValorUnitario:  l.ValorUnitario,
			Condicion:      l.Condicion,
		})
	}
	entregados := make([]dto.EntregadoResponse, 0, len(d.Entregados))
	for _, l := range d.Entregados {
		entregados = append(entregados, dto.EntregadoResponse{
			ID:            l.ID.String(),
			LoteID:        l.LoteID.String(),
			Cantidad:      l.CantidadEntregada,
			ValorUnitario: l.ValorUnitario,
		})
	}
	return &dto.DevolucionClienteResponse{
		ID:                       d.ID.String(),
		VentaID:                  d.VentaID.String(),
		ResponsableID:            d.ResponsableID.String(),
		FechaDevolucion:          d.FechaDevolucion.Format(time.RFC3339),
		ValorDevolucionTotal:     d.ValorDevolucionTotal,
		CantidadDevueltaCliente:  d.CantidadDevueltaCliente,
		CantidadEntregadaCliente: d.CantidadEntregadaCliente,
		Devueltos:                devueltos,
		Entregados:               entregados,
	}
}
