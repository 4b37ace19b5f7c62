package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Antoni2487/Bodeguita/internal/model"
	"github.com/Antoni2487/Bodeguita/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory stand-ins for the GORM repositories. DB() returns nil, which
// makes runTx execute callbacks directly without a transaction.

type stubBodegaRepo struct {
	bodegas map[uuid.UUID]*model.Bodega
	configs map[uuid.UUID]*model.BodegaConfig
}

func newStubBodegaRepo() *stubBodegaRepo {
	return &stubBodegaRepo{
		bodegas: make(map[uuid.UUID]*model.Bodega),
		configs: make(map[uuid.UUID]*model.BodegaConfig),
	}
}

func (r *stubBodegaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bodega, error) {
	b, ok := r.bodegas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBodegaRepo) FindConfigByBodegaID(_ context.Context, bodegaID uuid.UUID) (*model.BodegaConfig, error) {
	cfg, ok := r.configs[bodegaID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cfg, nil
}

type stubProductoBodegaRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.ProductoBodega
}

func newStubProductoBodegaRepo() *stubProductoBodegaRepo {
	return &stubProductoBodegaRepo{items: make(map[uuid.UUID]*model.ProductoBodega)}
}

func (r *stubProductoBodegaRepo) DB() *gorm.DB { return nil }

func (r *stubProductoBodegaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductoBodega, error) {
	return r.FindByIDTx(nil, id)
}

func (r *stubProductoBodegaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.ProductoBodega, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pb, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *pb
	return &copia, nil
}

func (r *stubProductoBodegaRepo) IncrementarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pb, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	pb.Stock += cantidad
	return nil
}

func (r *stubProductoBodegaRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pb, ok := r.items[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if pb.Stock < cantidad {
		return false, nil
	}
	pb.Stock -= cantidad
	return true, nil
}

func (r *stubProductoBodegaRepo) stock(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id].Stock
}

type stubInventarioRepo struct {
	mu          sync.Mutex
	tipos       map[string]*model.TipoMovimiento
	movimientos []*model.MovimientoStock
	reloj       time.Time
}

func newStubInventarioRepo() *stubInventarioRepo {
	return &stubInventarioRepo{
		tipos: make(map[string]*model.TipoMovimiento),
		reloj: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *stubInventarioRepo) conTipo(nombre, naturaleza string) *stubInventarioRepo {
	r.tipos[nombre] = &model.TipoMovimiento{ID: uuid.New(), Nombre: nombre, Naturaleza: naturaleza}
	return r
}

func (r *stubInventarioRepo) FindTipoByNombre(_ context.Context, nombre string) (*model.TipoMovimiento, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tipo, ok := r.tipos[nombre]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return tipo, nil
}

func (r *stubInventarioRepo) CreateMovimientoTx(_ *gorm.DB, mov *model.MovimientoStock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	mov.ID = uuid.New()
	r.reloj = r.reloj.Add(time.Second)
	mov.CreatedAt = r.reloj
	r.movimientos = append(r.movimientos, mov)
	return nil
}

func (r *stubInventarioRepo) ListByProductoBodega(_ context.Context, productoBodegaID uuid.UUID) ([]model.MovimientoStock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.MovimientoStock
	for i := len(r.movimientos) - 1; i >= 0; i-- {
		mov := r.movimientos[i]
		if mov.ProductoBodegaID != productoBodegaID {
			continue
		}
		copia := *mov
		for _, tipo := range r.tipos {
			if tipo.ID == mov.TipoMovimientoID {
				copia.TipoMovimiento = tipo
			}
		}
		out = append(out, copia)
	}
	return out, nil
}

type stubPedidoRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Pedido
	reloj time.Time
}

func newStubPedidoRepo() *stubPedidoRepo {
	return &stubPedidoRepo{
		items: make(map[uuid.UUID]*model.Pedido),
		reloj: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *stubPedidoRepo) DB() *gorm.DB { return nil }

func (r *stubPedidoRepo) CreateTx(_ context.Context, _ *gorm.DB, p *model.Pedido) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.New()
	r.reloj = r.reloj.Add(time.Second)
	p.CreatedAt = r.reloj
	for i := range p.Detalles {
		p.Detalles[i].ID = uuid.New()
		p.Detalles[i].PedidoID = p.ID
	}
	r.items[p.ID] = p
	return nil
}

func (r *stubPedidoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubPedidoRepo) FindByUsuario(_ context.Context, usuarioID uuid.UUID) ([]model.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Pedido
	for _, p := range r.items {
		if p.UsuarioID == usuarioID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubPedidoRepo) FindPendientesOrdenados(_ context.Context) ([]model.Pedido, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Pedido
	for _, p := range r.items {
		if p.Estado == model.PedidoPendiente {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubPedidoRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *stubPedidoRepo) VincularVentaTx(_ *gorm.DB, pedidoID, ventaID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[pedidoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.VentaID = &ventaID
	return nil
}

type stubVentaRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*model.Venta
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{items: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) CreateTx(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v.ID = uuid.New()
	for i := range v.Detalles {
		v.Detalles[i].ID = uuid.New()
		v.Detalles[i].VentaID = v.ID
	}
	r.items[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

type stubNotificacionRepo struct {
	mu    sync.Mutex
	items []*model.Notificacion
	reloj time.Time
}

func newStubNotificacionRepo() *stubNotificacionRepo {
	return &stubNotificacionRepo{reloj: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *stubNotificacionRepo) Create(_ context.Context, n *model.Notificacion) error {
	return r.CreateTx(nil, n)
}

func (r *stubNotificacionRepo) CreateTx(_ *gorm.DB, n *model.Notificacion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = uuid.New()
	r.reloj = r.reloj.Add(time.Second)
	n.CreatedAt = r.reloj
	r.items = append(r.items, n)
	return nil
}

func (r *stubNotificacionRepo) ListTodasOrdenadas(_ context.Context) ([]model.Notificacion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Notificacion, 0, len(r.items))
	for _, n := range r.items {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubNotificacionRepo) MarcarLeida(_ context.Context, id, usuarioID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id && n.UsuarioDestinoID == usuarioID {
			n.Leido = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type stubMetodoPagoRepo struct {
	metodos map[uuid.UUID][]model.BodegaMetodoPago
}

func newStubMetodoPagoRepo() *stubMetodoPagoRepo {
	return &stubMetodoPagoRepo{metodos: make(map[uuid.UUID][]model.BodegaMetodoPago)}
}

func (r *stubMetodoPagoRepo) FindActivosByBodega(_ context.Context, bodegaID uuid.UUID) ([]model.BodegaMetodoPago, error) {
	return r.metodos[bodegaID], nil
}

// stubAlertas records dispatches instead of enqueuing redis jobs.
type stubAlertas struct {
	mu              sync.Mutex
	reconciliciones []uuid.UUID
	tickets         []uuid.UUID
}

func (a *stubAlertas) AlertaReconciliacion(_ context.Context, p *model.Pedido, _ error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reconciliciones = append(a.reconciliciones, p.ID)
}

func (a *stubAlertas) TicketVenta(_ context.Context, ventaID uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tickets = append(a.tickets, ventaID)
}

var (
	_ repository.BodegaRepository         = (*stubBodegaRepo)(nil)
	_ repository.ProductoBodegaRepository = (*stubProductoBodegaRepo)(nil)
	_ repository.InventarioRepository     = (*stubInventarioRepo)(nil)
	_ repository.PedidoRepository         = (*stubPedidoRepo)(nil)
	_ repository.VentaRepository          = (*stubVentaRepo)(nil)
	_ repository.NotificacionRepository   = (*stubNotificacionRepo)(nil)
	_ repository.UsuarioRepository        = (*stubUsuarioRepo)(nil)
	_ repository.MetodoPagoRepository     = (*stubMetodoPagoRepo)(nil)
	_ Alertas                             = (*stubAlertas)(nil)
)
