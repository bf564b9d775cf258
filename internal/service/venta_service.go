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

type VentaService interface {
	CrearVenta(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.VentaResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
	Buscar(ctx context.Context, q string) ([]dto.VentaResponse, error)
}

type ventaService struct {
	repo        repository.VentaRepository
	loteRepo    repository.LoteRepository
	clienteRepo repository.ClienteRepository
	alertas     AlertaStockNotifier
}

func NewVentaService(
	repo repository.VentaRepository,
	loteRepo repository.LoteRepository,
	clienteRepo repository.ClienteRepository,
	alertas AlertaStockNotifier,
) VentaService {
	return &ventaService{repo: repo, loteRepo: loteRepo, clienteRepo: clienteRepo, alertas: alertas}
}

// ── CrearVenta ────────────────────────────────────────────────────────────────
// 1. Validate lines (qty > 0, price >= 0, lot id present)
// 2. Pre-check availability per distinct lot, duplicate lot refs summed —
//    produces the precise insufficient-stock error before any write
// 3. One transaction: conditional decrement per distinct lot, then header +
//    lines. A decrement losing the race aborts the whole transaction.

func (s *ventaService) CrearVenta(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	if _, err := time.Parse("2006-01-02", req.Fecha); err != nil {
		return nil, apierror.InvalidInput("fecha inválida (YYYY-MM-DD)")
	}
	if req.MedioPago == "" {
		return nil, apierror.InvalidInput("medioPago requerido")
	}

	type resolvedItem struct {
		loteID   uuid.UUID
		cantidad int
		precio   decimal.Decimal
		subtotal decimal.Decimal
	}

	resolved := make([]resolvedItem, 0, len(req.Productos))
	for i, item := range req.Productos {
		if item.Cantidad <= 0 {
			return nil, apierror.InvalidLine("Producto[%d]: cantidad inválida", i)
		}
		if item.PrecioUnitario.IsNegative() {
			return nil, apierror.InvalidLine("Producto[%d]: precioUnitario inválido", i)
		}
		loteID, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.InvalidLine("Producto[%d]: productoId (lote) inválido", i)
		}
		resolved = append(resolved, resolvedItem{
			loteID:   loteID,
			cantidad: item.Cantidad,
			precio:   item.PrecioUnitario,
			subtotal: item.PrecioUnitario.Mul(decimal.NewFromInt(int64(item.Cantidad))),
		})
	}

	// Resolve the customer; absent means the register customer.
	clienteID := model.ClienteMostradorID
	if req.ClienteID != nil {
		parsed, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, apierror.InvalidInput("clienteId inválido")
		}
		if _, err := s.clienteRepo.FindByID(ctx, parsed); err != nil {
			return nil, apierror.NotFound("Cliente %s no encontrado", parsed)
		}
		clienteID = parsed
	}

	// Pre-flight availability check per distinct lot (duplicates summed).
	qtyPorLote := make(map[uuid.UUID]int)
	ordenLotes := make([]uuid.UUID, 0, len(resolved))
	for _, it := range resolved {
		if _, seen := qtyPorLote[it.loteID]; !seen {
			ordenLotes = append(ordenLotes, it.loteID)
		}
		qtyPorLote[it.loteID] += it.cantidad
	}

	productoIDs := make([]uuid.UUID, 0, len(ordenLotes))
	for _, loteID := range ordenLotes {
		lote, err := s.loteRepo.FindByID(ctx, loteID)
		if err != nil {
			return nil, apierror.InvalidLine("Lote no existe: %s", loteID)
		}
		if qty := qtyPorLote[loteID]; lote.StockLote < qty {
			return nil, apierror.StockInsuficiente(loteID.String(), lote.StockLote, qty)
		}
		productoIDs = append(productoIDs, lote.ProductoID)
	}

	total := decimal.Zero
	for _, it := range resolved {
		total = total.Add(it.subtotal)
	}

	venta := model.Venta{
		FechaVenta:  time.Now(),
		MetodoPago:  req.MedioPago,
		EstadoVenta: req.Estado,
		ClienteID:   &clienteID,
		Total:       total,
	}
	for _, it := range resolved {
		venta.Items = append(venta.Items, model.DetalleVenta{
			LoteID:         it.loteID,
			Cantidad:       it.cantidad,
			PrecioUnitario: it.precio,
			Subtotal:       it.subtotal,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-validate under the transaction: the conditional update closes
		// the race window between the pre-check and the commit.
		for _, loteID := range ordenLotes {
			if err := s.loteRepo.DescontarStockTx(tx, loteID, qtyPorLote[loteID]); err != nil {
				return err
			}
		}
		return s.repo.Create(ctx, tx, &venta)
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.alertas != nil {
		s.alertas.NotificarStockBajo(ctx, productoIDs)
	}

	stored, err := s.repo.FindByID(ctx, venta.ID)
	if err != nil {
		return ventaToResponse(&venta), nil
	}
	return ventaToResponse(stored), nil
}

// ── ActualizarEstado ──────────────────────────────────────────────────────────
// "Anulada" triggers the cancellation path: idempotent when already cancelled,
// rejected outside the business window, otherwise restores every lot and the
// aggregates in one transaction. Any other estado is a plain overwrite.

func (s *ventaService) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}

	if estado != model.EstadoVentaAnulada {
		if err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
			return s.repo.UpdateEstadoTx(tx, id, estado)
		}); err != nil {
			return nil, err
		}
		return s.ObtenerPorID(ctx, id)
	}

	// Already cancelled: return current state, never double-restock.
	if venta.EstadoVenta == model.EstadoVentaAnulada {
		return ventaToResponse(venta), nil
	}

	if venta.FechaVenta.IsZero() {
		return nil, apierror.InvalidInput("La venta no tiene fecha válida para anular")
	}
	diff := time.Since(venta.FechaVenta)
	if diff > model.AnulacionVentana {
		return nil, apierror.AnularTiempoExcedido(int(diff.Minutes()), int(model.AnulacionVentana.Minutes()))
	}

	// Group restores per lot so duplicate lot references are applied once.
	qtyPorLote := make(map[uuid.UUID]int)
	ordenLotes := make([]uuid.UUID, 0, len(venta.Items))
	for _, item := range venta.Items {
		if _, seen := qtyPorLote[item.LoteID]; !seen {
			ordenLotes = append(ordenLotes, item.LoteID)
		}
		qtyPorLote[item.LoteID] += item.Cantidad
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, loteID := range ordenLotes {
			if qty := qtyPorLote[loteID]; qty > 0 {
				if err := s.loteRepo.ReponerStockTx(tx, loteID, qty); err != nil {
					return err
				}
			}
		}
		return s.repo.UpdateEstadoTx(tx, id, model.EstadoVentaAnulada)
	})
	if txErr != nil {
		return nil, txErr
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Venta no encontrada")
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		items = append(items, *ventaToResponse(&v))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *ventaService) Buscar(ctx context.Context, q string) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	result := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		result = append(result, *ventaToResponse(&v))
	}
	return result, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre := ""
		if item.Lote != nil && item.Lote.Producto != nil {
			nombre = item.Lote.Producto.Nombre
		}
		items = append(items, dto.ItemVentaResponse{
			ID:             item.ID.String(),
			LoteID:         item.LoteID.String(),
			Producto:       nombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	resp := &dto.VentaResponse{
		ID:        v.ID.String(),
		Fecha:     v.FechaVenta.Format(time.RFC3339),
		MedioPago: v.MetodoPago,
		Estado:    v.EstadoVenta,
		Total:     v.Total,
		Items:     items,
	}
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		resp.ClienteID = &id
	}
	if v.Cliente != nil {
		resp.Cliente = v.Cliente.Nombre
	}
	return resp
}
