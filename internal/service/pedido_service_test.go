package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Antoni2487/Bodeguita/internal/apierror"
	"github.com/Antoni2487/Bodeguita/internal/dto"
	"github.com/Antoni2487/Bodeguita/internal/locks"
	"github.com/Antoni2487/Bodeguita/internal/model"
	"github.com/Antoni2487/Bodeguita/internal/queue"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pedidoFixture struct {
	svc            *PedidoService
	pedidos        *stubPedidoRepo
	productos      *stubProductoBodegaRepo
	bodegas        *stubBodegaRepo
	usuarios       *stubUsuarioRepo
	ventas         *stubVentaRepo
	inventarioRepo *stubInventarioRepo
	notifRepo      *stubNotificacionRepo
	colas          *queue.PedidoColas
	pilas          *queue.NotificacionPilas
	notifSvc       *NotificacionService
	alertas        *stubAlertas

	bodegaID  uuid.UUID
	duenoID   uuid.UUID
	clienteID uuid.UUID
	listingID uuid.UUID
	lat, lon  float64
}

// nuevaPedidoFixture arma una bodega con delivery a S/ 1.00 por km y un
// producto a S/ 2.50 con stock 10.
func nuevaPedidoFixture() *pedidoFixture {
	f := &pedidoFixture{
		pedidos:   newStubPedidoRepo(),
		productos: newStubProductoBodegaRepo(),
		bodegas:   newStubBodegaRepo(),
		usuarios:  newStubUsuarioRepo(),
		ventas:    newStubVentaRepo(),
		inventarioRepo: newStubInventarioRepo().
			conTipo(model.MovimientoVenta, model.NaturalezaSalida).
			conTipo(model.MovimientoAnulacion, model.NaturalezaEntrada),
		notifRepo: newStubNotificacionRepo(),
		colas:     queue.NewPedidoColas(),
		pilas:     queue.NewNotificacionPilas(),
		alertas:   &stubAlertas{},
		bodegaID:  uuid.New(),
		duenoID:   uuid.New(),
		clienteID: uuid.New(),
		listingID: uuid.New(),
		lat:       -6.7714,
		lon:       -79.8409,
	}
	f.bodegas.bodegas[f.bodegaID] = &model.Bodega{
		ID:        f.bodegaID,
		Nombre:    "Bodega Carmencita",
		Latitud:   &f.lat,
		Longitud:  &f.lon,
		Activa:    true,
		UsuarioID: f.duenoID,
	}
	f.bodegas.configs[f.bodegaID] = &model.BodegaConfig{
		BodegaID:             f.bodegaID,
		RealizaDelivery:      true,
		RadioMaximoKm:        decimal.NewFromInt(5),
		PrecioPorKm:          decimal.RequireFromString("1.00"),
		PedidoMinimoDelivery: decimal.NewFromInt(1),
	}
	f.usuarios.usuarios[f.duenoID] = &model.Usuario{ID: f.duenoID, Nombre: "Carmen Díaz"}
	f.usuarios.usuarios[f.clienteID] = &model.Usuario{ID: f.clienteID, Nombre: "Luis Pérez"}
	f.productos.items[f.listingID] = &model.ProductoBodega{
		ID:       f.listingID,
		BodegaID: f.bodegaID,
		Precio:   decimal.RequireFromString("2.50"),
		Stock:    10,
		Activo:   true,
		Producto: &model.Producto{Nombre: "Leche Gloria"},
	}

	listingLocks := locks.NewKeyed()
	inventarioSvc := NewInventarioService(f.productos, f.inventarioRepo, listingLocks)
	f.notifSvc = NewNotificacionService(f.notifRepo, f.pilas)
	f.svc = NewPedidoService(
		f.pedidos, f.productos, f.bodegas, f.usuarios, f.ventas,
		inventarioSvc, f.notifSvc, f.colas, locks.NewKeyed(), listingLocks, f.alertas,
	)
	return f
}

func (f *pedidoFixture) crearPedido(t *testing.T, kmAlNorte float64, cantidad int) *dto.PedidoResponse {
	t.Helper()
	lat := f.lat + kmAlNorte/kmPorGradoLat
	resp, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		BodegaID:         f.bodegaID.String(),
		UsuarioID:        f.clienteID.String(),
		DireccionEntrega: "Av. Balta 123",
		Latitud:          &lat,
		Longitud:         &f.lon,
		Productos: []dto.ItemCarritoRequest{
			{ProductoBodegaID: f.listingID.String(), Cantidad: cantidad},
		},
	})
	require.NoError(t, err)
	return resp
}

func TestPedido_CrearEncolaYNotifica(t *testing.T) {
	f := nuevaPedidoFixture()

	resp := f.crearPedido(t, 3, 2)

	assert.True(t, strings.HasPrefix(resp.CodigoPedido, "PED-"))
	assert.Equal(t, model.PedidoPendiente, resp.Estado)
	// Subtotal 5.00 + envío 3.00 congelados al crear.
	assert.True(t, resp.CostoDelivery.Equal(decimal.RequireFromString("3.00")), "costo %s", resp.CostoDelivery)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("8.00")), "total %s", resp.Total)

	// Encolado al fondo de la cola de su bodega.
	assert.Equal(t, 1, f.colas.Largo(f.bodegaID))

	// El dueño recibe la notificación, persistida y en su pila.
	feed := f.notifSvc.Feed(f.duenoID)
	require.Len(t, feed, 1)
	assert.Equal(t, "Nuevo Pedido #"+resp.CodigoPedido, feed[0].Mensaje)
	assert.Equal(t, NotificacionPedido, feed[0].Tipo)

	// Crear no descuenta stock: eso ocurre recién al confirmar.
	assert.Equal(t, 10, f.productos.stock(f.listingID))
}

func TestPedido_CrearManualSinDelivery(t *testing.T) {
	f := nuevaPedidoFixture()

	resp, err := f.svc.CrearManual(context.Background(), dto.PedidoManualRequest{
		BodegaID:         f.bodegaID.String(),
		UsuarioID:        f.clienteID.String(),
		DireccionEntrega: "mostrador",
		Productos: []dto.ItemCarritoRequest{
			{ProductoBodegaID: f.listingID.String(), Cantidad: 1},
		},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.CodigoPedido, "MAN-"))
	assert.True(t, resp.CostoDelivery.IsZero())
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("2.50")))
}

func TestPedido_CrearSinStockNoEncola(t *testing.T) {
	f := nuevaPedidoFixture()

	lat := f.lat
	_, err := f.svc.Crear(context.Background(), dto.CrearPedidoRequest{
		BodegaID:         f.bodegaID.String(),
		UsuarioID:        f.clienteID.String(),
		DireccionEntrega: "Av. Balta 123",
		Latitud:          &lat,
		Longitud:         &f.lon,
		Productos: []dto.ItemCarritoRequest{
			{ProductoBodegaID: f.listingID.String(), Cantidad: 99},
		},
	})

	require.Error(t, err)
	assert.True(t, apierror.EsStockInsuficiente(err))
	assert.Equal(t, 0, f.colas.Largo(f.bodegaID))
	assert.Empty(t, f.notifSvc.Feed(f.duenoID))
}

func TestPedido_ConfirmarRespetaFIFO(t *testing.T) {
	f := nuevaPedidoFixture()

	p1 := f.crearPedido(t, 1, 1)
	p2 := f.crearPedido(t, 1, 1)
	p3 := f.crearPedido(t, 1, 1)

	for _, esperado := range []*dto.PedidoResponse{p1, p2, p3} {
		siguiente, err := f.svc.VerSiguiente(f.bodegaID)
		require.NoError(t, err)
		assert.Equal(t, esperado.CodigoPedido, siguiente.CodigoPedido)

		_, err = f.svc.ConfirmarSiguiente(context.Background(), f.bodegaID)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, f.colas.Largo(f.bodegaID))
}

func TestPedido_ConfirmarDescuentaStockYCreaVenta(t *testing.T) {
	f := nuevaPedidoFixture()
	resp := f.crearPedido(t, 3, 2)

	venta, err := f.svc.ConfirmarSiguiente(context.Background(), f.bodegaID)
	require.NoError(t, err)

	// Una salida VENTA por línea, stock 10 - 2.
	assert.Equal(t, 8, f.productos.stock(f.listingID))

	// La venta congela las líneas del pedido y conserva el total.
	require.Len(t, venta.Detalles, 1)
	assert.Equal(t, model.VentaCompletada, venta.Estado)
	suma := decimal.Zero
	for _, d := range venta.Detalles {
		suma = suma.Add(d.Subtotal)
	}
	assert.True(t, venta.Monto.Equal(suma.Add(venta.CostoDelivery)),
		"monto %s != subtotales %s + envío %s", venta.Monto, suma, venta.CostoDelivery)

	// El pedido queda EN_PREPARACION y enlazado a la venta.
	pedidoID := uuid.MustParse(resp.ID)
	guardado, err := f.pedidos.FindByID(context.Background(), pedidoID)
	require.NoError(t, err)
	assert.Equal(t, model.PedidoEnPreparacion, guardado.Estado)
	require.NotNil(t, guardado.VentaID)
	assert.Equal(t, venta.ID, guardado.VentaID.String())

	// El cliente recibe su notificación y se despacha el ticket.
	feed := f.notifSvc.Feed(f.clienteID)
	require.Len(t, feed, 1)
	assert.Contains(t, feed[0].Mensaje, "está en preparación")
	assert.Len(t, f.alertas.tickets, 1)
}

func TestPedido_ConfirmarConColaVacia(t *testing.T) {
	f := nuevaPedidoFixture()

	_, err := f.svc.ConfirmarSiguiente(context.Background(), f.bodegaID)
	assert.ErrorIs(t, err, apierror.ErrColaVacia)

	_, err = f.svc.VerSiguiente(f.bodegaID)
	assert.ErrorIs(t, err, apierror.ErrColaVacia)
}

func TestPedido_ConfirmarSinStockRequiereReconciliacion(t *testing.T) {
	f := nuevaPedidoFixture()
	resp := f.crearPedido(t, 3, 2)

	// El stock se agota entre la creación y la confirmación.
	f.productos.items[f.listingID].Stock = 0

	_, err := f.svc.ConfirmarSiguiente(context.Background(), f.bodegaID)

	require.Error(t, err)
	assert.True(t, apierror.EsReconciliacion(err))
	assert.True(t, apierror.EsStockInsuficiente(err), "la causa original debe seguir envuelta")

	// El pedido ya no está en la cola y NO se reencola solo.
	assert.Equal(t, 0, f.colas.Largo(f.bodegaID))

	// La fila sigue PENDIENTE: al reiniciar, la rehidratación lo recupera.
	guardado, findErr := f.pedidos.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, findErr)
	assert.Equal(t, model.PedidoPendiente, guardado.Estado)

	// Se alertó al operador.
	require.Len(t, f.alertas.reconciliciones, 1)
	assert.Equal(t, guardado.ID, f.alertas.reconciliciones[0])
}

func TestPedido_RehidratacionRestauraElOrden(t *testing.T) {
	f := nuevaPedidoFixture()
	p1 := f.crearPedido(t, 1, 1)
	p2 := f.crearPedido(t, 1, 1)

	// Proceso nuevo: mismas filas, colas vacías.
	reiniciado := nuevaPedidoFixture()
	reiniciado.pedidos = f.pedidos
	listingLocks := locks.NewKeyed()
	inventarioSvc := NewInventarioService(f.productos, f.inventarioRepo, listingLocks)
	reiniciado.svc = NewPedidoService(
		f.pedidos, f.productos, f.bodegas, f.usuarios, f.ventas,
		inventarioSvc, reiniciado.notifSvc, reiniciado.colas,
		locks.NewKeyed(), listingLocks, reiniciado.alertas,
	)

	require.NoError(t, reiniciado.svc.InicializarColas(context.Background()))

	cola := reiniciado.svc.ObtenerCola(f.bodegaID)
	require.Len(t, cola, 2)
	assert.Equal(t, p1.CodigoPedido, cola[0].CodigoPedido)
	assert.Equal(t, p2.CodigoPedido, cola[1].CodigoPedido)

	// La cola rehidratada es operable de inmediato.
	venta, err := reiniciado.svc.ConfirmarSiguiente(context.Background(), f.bodegaID)
	require.NoError(t, err)
	assert.NotEmpty(t, venta.ID)
}

func TestPedido_RehidratacionIgnoraNoPendientes(t *testing.T) {
	f := nuevaPedidoFixture()
	f.crearPedido(t, 1, 1)
	p2 := f.crearPedido(t, 1, 1)

	// El primero ya fue confirmado.
	_, err := f.svc.ConfirmarSiguiente(context.Background(), f.bodegaID)
	require.NoError(t, err)

	colas := queue.NewPedidoColas()
	f.svc.colas = colas
	require.NoError(t, f.svc.InicializarColas(context.Background()))

	require.Equal(t, 1, colas.Largo(f.bodegaID))
	assert.Equal(t, p2.CodigoPedido, colas.VerSiguiente(f.bodegaID).CodigoPedido)
}

func TestPedido_ColasDeBodegasIndependientes(t *testing.T) {
	f := nuevaPedidoFixture()
	f.crearPedido(t, 1, 1)

	otraBodega := uuid.New()
	_, err := f.svc.ConfirmarSiguiente(context.Background(), otraBodega)
	assert.ErrorIs(t, err, apierror.ErrColaVacia)
	assert.Equal(t, 1, f.colas.Largo(f.bodegaID))
}
