package service_test

import (
	"context"
	"errors"
	"sync"

	"kajamart/internal/apierror"
	"kajamart/internal/dto"
	"kajamart/internal/model"
	"kajamart/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. Services run their transactions with a nil *gorm.DB,
// which makes runTx call the closure directly against these stubs.

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) add(nombre string, stock, minimo int) *model.Producto {
	p := &model.Producto{ID: uuid.New(), Nombre: nombre, StockActual: stock, StockMinimo: minimo, Activo: true}
	r.productos[p.ID] = p
	return p
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProductoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubProductoRepo) FindByBarcode(_ context.Context, barcode string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.CodigoBarras == barcode && p.Activo {
			return p, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) ListBajoMinimo(_ context.Context, ids []uuid.UUID) ([]model.Producto, error) {
	filter := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		filter[id] = true
	}
	var out []model.Producto
	for _, p := range r.productos {
		if !p.Activo || p.StockActual >= p.StockMinimo {
			continue
		}
		if len(ids) > 0 && !filter[p.ID] {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// stubLoteRepo keeps the paired-mutation invariant the same way the real
// repository does: every quantity change touches the lot and its product.
type stubLoteRepo struct {
	lotes     map[uuid.UUID]*model.Lote
	productos *stubProductoRepo
	refs      map[uuid.UUID]map[string]int64
}

func newStubLoteRepo(productos *stubProductoRepo) *stubLoteRepo {
	return &stubLoteRepo{
		lotes:     make(map[uuid.UUID]*model.Lote),
		productos: productos,
		refs:      make(map[uuid.UUID]map[string]int64),
	}
}

func (r *stubLoteRepo) add(p *model.Producto, stock int) *model.Lote {
	l := &model.Lote{ID: uuid.New(), ProductoID: p.ID, StockLote: stock, Estado: true, Producto: p}
	r.lotes[l.ID] = l
	return l
}

func (r *stubLoteRepo) Crear(_ context.Context, l *model.Lote) error {
	p, ok := r.productos.productos[l.ProductoID]
	if !ok {
		return apierror.NotFound("Producto %s no encontrado", l.ProductoID)
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	l.Producto = p
	r.lotes[l.ID] = l
	p.StockActual += l.StockLote
	return nil
}

func (r *stubLoteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Lote, error) {
	l, ok := r.lotes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return l, nil
}

func (r *stubLoteRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Lote, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubLoteRepo) ListActivos(_ context.Context) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.lotes {
		if l.Estado {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLoteRepo) ListByProducto(_ context.Context, productoID uuid.UUID) ([]model.Lote, error) {
	var out []model.Lote
	for _, l := range r.lotes {
		if l.Estado && l.ProductoID == productoID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLoteRepo) Update(_ context.Context, l *model.Lote) error {
	r.lotes[l.ID] = l
	return nil
}

func (r *stubLoteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	l, ok := r.lotes[id]
	if !ok {
		return errors.New("not found")
	}
	l.Estado = false
	return nil
}

func (r *stubLoteRepo) CountReferencias(_ context.Context, id uuid.UUID) (map[string]int64, error) {
	if refs, ok := r.refs[id]; ok {
		return refs, nil
	}
	return map[string]int64{}, nil
}

func (r *stubLoteRepo) HardDelete(_ context.Context, id uuid.UUID) error {
	delete(r.lotes, id)
	return nil
}

func (r *stubLoteRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	l, ok := r.lotes[id]
	if !ok {
		return apierror.NotFound("Lote no existe: %s", id)
	}
	if !l.Estado || l.StockLote < cantidad {
		return apierror.StockInsuficiente(id.String(), l.StockLote, cantidad)
	}
	l.StockLote -= cantidad
	r.productos.productos[l.ProductoID].StockActual -= cantidad
	return nil
}

func (r *stubLoteRepo) ReponerStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	l, ok := r.lotes[id]
	if !ok {
		return apierror.NotFound("Lote no existe: %s", id)
	}
	l.StockLote += cantidad
	l.Estado = true // restored stock always lands in an active lot
	r.productos.productos[l.ProductoID].StockActual += cantidad
	return nil
}

func (r *stubLoteRepo) DB() *gorm.DB { return nil }

var _ repository.LoteRepository = (*stubLoteRepo)(nil)

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	for i := range v.Items {
		if v.Items[i].ID == uuid.Nil {
			v.Items[i].ID = uuid.New()
		}
		v.Items[i].VentaID = v.ID
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return errors.New("not found")
	}
	v.EstadoVenta = estado
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) Search(_ context.Context, _ string) ([]model.Venta, error) {
	return nil, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
	ventas   map[uuid.UUID]int64
}

func newStubClienteRepo() *stubClienteRepo {
	r := &stubClienteRepo{
		clientes: make(map[uuid.UUID]*model.Cliente),
		ventas:   make(map[uuid.UUID]int64),
	}
	// The register customer exists in every deployment.
	r.clientes[model.ClienteMostradorID] = &model.Cliente{
		ID: model.ClienteMostradorID, Nombre: "Cliente mostrador", Activo: true,
	}
	return r
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	var out []model.Cliente
	if m, ok := r.clientes[model.ClienteMostradorID]; ok {
		out = append(out, *m)
	}
	for id, c := range r.clientes {
		if id != model.ClienteMostradorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) CountVentas(_ context.Context, id uuid.UUID) (int64, error) {
	return r.ventas[id], nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) add(nombre, apellido string) *model.Usuario {
	u := &model.Usuario{ID: uuid.New(), Nombre: nombre, Apellido: apellido, Activo: true}
	r.usuarios[u.ID] = u
	return u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

type stubBajaRepo struct {
	bajas []*model.Baja
}

func (r *stubBajaRepo) CreateTx(_ *gorm.DB, b *model.Baja) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	for i := range b.Detalles {
		if b.Detalles[i].ID == uuid.Nil {
			b.Detalles[i].ID = uuid.New()
		}
		b.Detalles[i].BajaID = b.ID
	}
	r.bajas = append(r.bajas, b)
	return nil
}

func (r *stubBajaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Baja, error) {
	for _, b := range r.bajas {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubBajaRepo) List(_ context.Context) ([]model.Baja, error) {
	var out []model.Baja
	for _, b := range r.bajas {
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubBajaRepo) Search(_ context.Context, _ string) ([]model.Baja, error) { return nil, nil }

func (r *stubBajaRepo) DB() *gorm.DB { return nil }

var _ repository.BajaRepository = (*stubBajaRepo)(nil)

type stubDevolucionProveedorRepo struct {
	devoluciones []*model.DevolucionProveedor
}

func (r *stubDevolucionProveedorRepo) CreateTx(_ *gorm.DB, d *model.DevolucionProveedor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.devoluciones = append(r.devoluciones, d)
	return nil
}

func (r *stubDevolucionProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DevolucionProveedor, error) {
	for _, d := range r.devoluciones {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubDevolucionProveedorRepo) List(_ context.Context) ([]model.DevolucionProveedor, error) {
	var out []model.DevolucionProveedor
	for _, d := range r.devoluciones {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDevolucionProveedorRepo) Search(_ context.Context, _ string) ([]model.DevolucionProveedor, error) {
	return nil, nil
}

func (r *stubDevolucionProveedorRepo) DB() *gorm.DB { return nil }

var _ repository.DevolucionProveedorRepository = (*stubDevolucionProveedorRepo)(nil)

type stubDevolucionClienteRepo struct {
	devoluciones []*model.DevolucionCliente
}

func (r *stubDevolucionClienteRepo) CreateTx(_ *gorm.DB, d *model.DevolucionCliente) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.devoluciones = append(r.devoluciones, d)
	return nil
}

func (r *stubDevolucionClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DevolucionCliente, error) {
	for _, d := range r.devoluciones {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubDevolucionClienteRepo) List(_ context.Context) ([]model.DevolucionCliente, error) {
	var out []model.DevolucionCliente
	for _, d := range r.devoluciones {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDevolucionClienteRepo) DB() *gorm.DB { return nil }

var _ repository.DevolucionClienteRepository = (*stubDevolucionClienteRepo)(nil)

// stubNotifier records the product ids handed to the alert hook.
type stubNotifier struct {
	mu    sync.Mutex
	calls [][]uuid.UUID
	actas []uuid.UUID
}

func (n *stubNotifier) NotificarStockBajo(_ context.Context, productoIDs []uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, productoIDs)
}

func (n *stubNotifier) NotificarActaBaja(_ context.Context, bajaID uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.actas = append(n.actas, bajaID)
}

// invariantHolds checks stock_actual == Σ stock_lote over active lots.
func invariantHolds(productos *stubProductoRepo, lotes *stubLoteRepo) bool {
	sums := make(map[uuid.UUID]int)
	for _, l := range lotes.lotes {
		if l.Estado {
			sums[l.ProductoID] += l.StockLote
		}
	}
	for id, p := range productos.productos {
		if p.StockActual != sums[id] {
			return false
		}
	}
	return true
}
