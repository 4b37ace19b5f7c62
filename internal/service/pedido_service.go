package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Antoni2487/Bodeguita/internal/apierror"
	"github.com/Antoni2487/Bodeguita/internal/dto"
	"github.com/Antoni2487/Bodeguita/internal/geo"
	"github.com/Antoni2487/Bodeguita/internal/locks"
	"github.com/Antoni2487/Bodeguita/internal/model"
	"github.com/Antoni2487/Bodeguita/internal/queue"
	"github.com/Antoni2487/Bodeguita/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PedidoService is the fulfillment workflow: order creation with authoritative
// stock re-validation, strict FIFO confirmation per bodega, and the queue
// rehydration that makes the in-memory queues survive restarts.
//
// All mutations of one bodega's queue happen under that bodega's lock, and
// the in-memory enqueue runs after the creating transaction commits while the
// lock is still held, so queue order always equals commit order.
type PedidoService struct {
	pedidos        repository.PedidoRepository
	productos      repository.ProductoBodegaRepository
	bodegas        repository.BodegaRepository
	usuarios       repository.UsuarioRepository
	ventas         repository.VentaRepository
	inventario     *InventarioService
	notificaciones *NotificacionService
	colas          *queue.PedidoColas
	bodegaLocks    *locks.Keyed
	listingLocks   *locks.Keyed
	alertas        Alertas
}

func NewPedidoService(
	pedidos repository.PedidoRepository,
	productos repository.ProductoBodegaRepository,
	bodegas repository.BodegaRepository,
	usuarios repository.UsuarioRepository,
	ventas repository.VentaRepository,
	inventario *InventarioService,
	notificaciones *NotificacionService,
	colas *queue.PedidoColas,
	bodegaLocks *locks.Keyed,
	listingLocks *locks.Keyed,
	alertas Alertas,
) *PedidoService {
	return &PedidoService{
		pedidos:        pedidos,
		productos:      productos,
		bodegas:        bodegas,
		usuarios:       usuarios,
		ventas:         ventas,
		inventario:     inventario,
		notificaciones: notificaciones,
		colas:          colas,
		bodegaLocks:    bodegaLocks,
		listingLocks:   listingLocks,
		alertas:        alertas,
	}
}

// InicializarColas rebuilds every bodega's queue from the PENDIENTE rows in
// creation order. Call before serving traffic; orders dequeued in a previous
// process life whose confirmation never committed reappear here.
func (s *PedidoService) InicializarColas(ctx context.Context) error {
	pendientes, err := s.pedidos.FindPendientesOrdenados(ctx)
	if err != nil {
		return err
	}
	for i := range pendientes {
		p := pendientes[i]
		s.colas.Encolar(p.BodegaID, &p)
	}
	log.Info().Int("pedidos", len(pendientes)).Msg("colas de pedidos rehidratadas")
	return nil
}

// Crear registers a customer order. Stock is re-validated authoritatively but
// NOT decremented: units leave the ledger only when the order is confirmed.
func (s *PedidoService) Crear(ctx context.Context, req dto.CrearPedidoRequest) (*dto.PedidoResponse, error) {
	bodegaID, err := uuid.Parse(req.BodegaID)
	if err != nil {
		return nil, apierror.NoEncontrado("bodega")
	}
	usuarioID, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return nil, apierror.NoEncontrado("usuario")
	}
	return s.crear(ctx, "PED", bodegaID, usuarioID, req.DireccionEntrega, req.TelefonoContacto, req.Latitud, req.Longitud, req.Productos)
}

// CrearManual registers a staff-created order. Same authoritative stock
// re-validation, no geolocation and no delivery cost.
func (s *PedidoService) CrearManual(ctx context.Context, req dto.PedidoManualRequest) (*dto.PedidoResponse, error) {
	bodegaID, err := uuid.Parse(req.BodegaID)
	if err != nil {
		return nil, apierror.NoEncontrado("bodega")
	}
	usuarioID, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return nil, apierror.NoEncontrado("usuario")
	}
	return s.crear(ctx, "MAN", bodegaID, usuarioID, req.DireccionEntrega, nil, nil, nil, req.Productos)
}

func (s *PedidoService) crear(ctx context.Context, prefijo string, bodegaID, usuarioID uuid.UUID, direccion string, telefono *string, lat, lon *float64, items []dto.ItemCarritoRequest) (*dto.PedidoResponse, error) {
	if _, err := s.usuarios.FindByID(ctx, usuarioID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("usuario")
		}
		return nil, err
	}
	bodega, err := s.bodegas.FindByID(ctx, bodegaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("bodega")
		}
		return nil, err
	}
	if !bodega.Activa {
		return nil, apierror.ErrBodegaInactiva
	}

	costoDelivery := s.costoDelivery(ctx, bodega, lat, lon)

	productoIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ProductoBodegaID)
		if err != nil {
			return nil, apierror.NoEncontrado("producto de bodega")
		}
		productoIDs = append(productoIDs, id)
	}

	s.bodegaLocks.Lock(bodegaID)
	defer s.bodegaLocks.Unlock(bodegaID)

	var pedido *model.Pedido
	var notificacion *model.Notificacion
	err = runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		total := costoDelivery
		detalles := make([]model.DetallePedido, 0, len(items))
		for i, item := range items {
			pb, err := s.productos.FindByIDTx(tx, productoIDs[i])
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apierror.NoEncontrado("producto de bodega")
				}
				return err
			}
			if pb.BodegaID != bodegaID || !pb.Activo {
				return apierror.NoEncontrado("producto de bodega")
			}
			if pb.Stock < item.Cantidad {
				return &apierror.StockInsuficienteError{
					Producto:    nombreProducto(pb),
					StockActual: pb.Stock,
					Solicitado:  item.Cantidad,
				}
			}
			subtotal := pb.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
			total = total.Add(subtotal)
			detalles = append(detalles, model.DetallePedido{
				ProductoBodegaID: pb.ID,
				Cantidad:         item.Cantidad,
				PrecioUnitario:   pb.Precio,
				Subtotal:         subtotal,
			})
		}

		pedido = &model.Pedido{
			CodigoPedido:     fmt.Sprintf("%s-%d", prefijo, time.Now().UnixMilli()),
			Estado:           model.PedidoPendiente,
			Total:            total,
			CostoDelivery:    costoDelivery,
			DireccionEntrega: direccion,
			TelefonoContacto: telefono,
			LatitudEntrega:   lat,
			LongitudEntrega:  lon,
			UsuarioID:        usuarioID,
			BodegaID:         bodegaID,
			Detalles:         detalles,
		}
		if err := s.pedidos.CreateTx(ctx, tx, pedido); err != nil {
			return err
		}

		url := "/bodeguero/pedidos"
		notificacion, err = s.notificaciones.CrearTx(tx, bodega.UsuarioID,
			fmt.Sprintf("Nuevo Pedido #%s", pedido.CodigoPedido), NotificacionPedido, &url)
		return err
	})
	if err != nil {
		return nil, err
	}

	// The transaction committed and the bodega lock is still held, so the
	// queue position matches the commit order exactly.
	s.colas.Encolar(bodegaID, pedido)
	s.notificaciones.Publicar(notificacion)

	log.Info().
		Str("codigo_pedido", pedido.CodigoPedido).
		Str("bodega_id", bodegaID.String()).
		Str("total", pedido.Total.StringFixed(2)).
		Msg("pedido creado y encolado")

	return toPedidoResponse(pedido), nil
}

// costoDelivery freezes the delivery charge at order time. Missing customer
// coordinates or delivery configuration means no charge, never an error.
func (s *PedidoService) costoDelivery(ctx context.Context, bodega *model.Bodega, lat, lon *float64) decimal.Decimal {
	if lat == nil || lon == nil || bodega.Latitud == nil || bodega.Longitud == nil {
		return decimal.Zero
	}
	cfg, err := s.bodegas.FindConfigByBodegaID(ctx, bodega.ID)
	if err != nil || !cfg.RealizaDelivery {
		return decimal.Zero
	}
	distancia := geo.DistanciaKm(*bodega.Latitud, *bodega.Longitud, *lat, *lon)
	return geo.CostoDelivery(distancia, cfg.PrecioPorKm)
}

// ObtenerCola returns the bodega's pending orders in FIFO order, head first.
func (s *PedidoService) ObtenerCola(bodegaID uuid.UUID) []dto.PedidoResponse {
	items := s.colas.Snapshot(bodegaID)
	out := make([]dto.PedidoResponse, 0, len(items))
	for _, p := range items {
		out = append(out, *toPedidoResponse(p))
	}
	return out
}

// VerSiguiente returns the head of the bodega's queue without consuming it.
func (s *PedidoService) VerSiguiente(bodegaID uuid.UUID) (*dto.PedidoResponse, error) {
	p := s.colas.VerSiguiente(bodegaID)
	if p == nil {
		return nil, apierror.ErrColaVacia
	}
	return toPedidoResponse(p), nil
}

// ObtenerPorID returns one order from storage.
func (s *PedidoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.PedidoResponse, error) {
	p, err := s.pedidos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("pedido")
		}
		return nil, err
	}
	return toPedidoResponse(p), nil
}

// ListarPorUsuario returns a customer's orders, newest first.
func (s *PedidoService) ListarPorUsuario(ctx context.Context, usuarioID uuid.UUID) ([]dto.PedidoResponse, error) {
	ps, err := s.pedidos.FindByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PedidoResponse, 0, len(ps))
	for i := range ps {
		out = append(out, *toPedidoResponse(&ps[i]))
	}
	return out, nil
}

// ConfirmarSiguiente dequeues the bodega's oldest pending order and fulfills
// it atomically: state to EN_PREPARACION, one sale exit per line through the
// ledger, the immutable Venta with frozen prices, and the customer
// notification, all in one transaction.
//
// If the transaction fails the order has already left the in-memory queue
// while its row is still PENDIENTE. It is deliberately NOT re-enqueued: the
// returned ReconciliacionError and the dispatched operator alert make the
// divergence explicit, and a restart (rehydration) restores the queue.
func (s *PedidoService) ConfirmarSiguiente(ctx context.Context, bodegaID uuid.UUID) (*dto.VentaResponse, error) {
	s.bodegaLocks.Lock(bodegaID)
	defer s.bodegaLocks.Unlock(bodegaID)

	pedido := s.colas.Desencolar(bodegaID)
	if pedido == nil {
		return nil, apierror.ErrColaVacia
	}

	listingIDs := listingsDePedido(pedido)
	for _, id := range listingIDs {
		s.listingLocks.Lock(id)
	}
	defer func() {
		for _, id := range listingIDs {
			s.listingLocks.Unlock(id)
		}
	}()

	clienteNombre := ""
	if u, err := s.usuarios.FindByID(ctx, pedido.UsuarioID); err == nil {
		clienteNombre = u.Nombre
	}

	venta := &model.Venta{
		Fecha:            time.Now(),
		Monto:            pedido.Total,
		CostoDelivery:    pedido.CostoDelivery,
		DireccionEntrega: pedido.DireccionEntrega,
		LatitudEntrega:   pedido.LatitudEntrega,
		LongitudEntrega:  pedido.LongitudEntrega,
		BodegaID:         pedido.BodegaID,
		ClienteNombre:    clienteNombre,
		Estado:           model.VentaCompletada,
	}
	for _, d := range pedido.Detalles {
		venta.Detalles = append(venta.Detalles, model.DetalleVenta{
			ProductoBodegaID: d.ProductoBodegaID,
			Cantidad:         d.Cantidad,
			PrecioUnitario:   d.PrecioUnitario,
			Subtotal:         d.Subtotal,
		})
	}

	var notificacion *model.Notificacion
	err := runTx(ctx, s.pedidos.DB(), func(tx *gorm.DB) error {
		if err := s.ventas.CreateTx(ctx, tx, venta); err != nil {
			return err
		}
		for _, d := range pedido.Detalles {
			if _, err := s.inventario.RegistrarSalidaPorVentaTx(ctx, tx, d.ProductoBodegaID, d.Cantidad, venta.ID); err != nil {
				return err
			}
		}
		if err := s.pedidos.UpdateEstadoTx(tx, pedido.ID, model.PedidoEnPreparacion); err != nil {
			return err
		}
		if err := s.pedidos.VincularVentaTx(tx, pedido.ID, venta.ID); err != nil {
			return err
		}

		url := "/cliente/pedidos"
		var err error
		notificacion, err = s.notificaciones.CrearTx(tx, pedido.UsuarioID,
			fmt.Sprintf("Tu pedido #%s está en preparación", pedido.CodigoPedido), NotificacionPedido, &url)
		return err
	})
	if err != nil {
		recErr := &apierror.ReconciliacionError{
			PedidoID:     pedido.ID,
			CodigoPedido: pedido.CodigoPedido,
			Causa:        err,
		}
		log.Error().Err(err).
			Str("pedido_id", pedido.ID.String()).
			Str("codigo_pedido", pedido.CodigoPedido).
			Str("bodega_id", bodegaID.String()).
			Msg("pedido desencolado sin confirmar, requiere reconciliación manual")
		s.alertas.AlertaReconciliacion(ctx, pedido, err)
		return nil, recErr
	}

	pedido.Estado = model.PedidoEnPreparacion
	pedido.VentaID = &venta.ID
	s.notificaciones.Publicar(notificacion)
	s.alertas.TicketVenta(ctx, venta.ID)

	log.Info().
		Str("codigo_pedido", pedido.CodigoPedido).
		Str("venta_id", venta.ID.String()).
		Msg("pedido confirmado")

	return toVentaResponse(venta), nil
}

// listingsDePedido returns the distinct listing IDs of an order in a fixed
// global order, so multi-line confirmations always lock in the same sequence.
func listingsDePedido(p *model.Pedido) []uuid.UUID {
	vistos := make(map[uuid.UUID]struct{}, len(p.Detalles))
	ids := make([]uuid.UUID, 0, len(p.Detalles))
	for _, d := range p.Detalles {
		if _, ok := vistos[d.ProductoBodegaID]; ok {
			continue
		}
		vistos[d.ProductoBodegaID] = struct{}{}
		ids = append(ids, d.ProductoBodegaID)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})
	return ids
}

func toPedidoResponse(p *model.Pedido) *dto.PedidoResponse {
	resp := &dto.PedidoResponse{
		ID:               p.ID.String(),
		CodigoPedido:     p.CodigoPedido,
		Estado:           p.Estado,
		Total:            p.Total,
		CostoDelivery:    p.CostoDelivery,
		DireccionEntrega: p.DireccionEntrega,
		UsuarioID:        p.UsuarioID.String(),
		BodegaID:         p.BodegaID.String(),
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
	if p.VentaID != nil {
		v := p.VentaID.String()
		resp.VentaID = &v
	}
	for _, d := range p.Detalles {
		resp.Detalles = append(resp.Detalles, dto.DetallePedidoResponse{
			ProductoBodegaID: d.ProductoBodegaID.String(),
			Cantidad:         d.Cantidad,
			PrecioUnitario:   d.PrecioUnitario,
			Subtotal:         d.Subtotal,
		})
	}
	return resp
}
