package service

import (
	"context"
	"testing"

	"github.com/Antoni2487/Bodeguita/internal/apierror"
	"github.com/Antoni2487/Bodeguita/internal/dto"
	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// One degree of latitude spans pi*R/180 km on the reference sphere.
const kmPorGradoLat = 111.19492664455873

type checkoutFixture struct {
	svc       *CheckoutService
	bodegas   *stubBodegaRepo
	productos *stubProductoBodegaRepo
	metodos   *stubMetodoPagoRepo

	bodegaID  uuid.UUID
	listingID uuid.UUID
	lat, lon  float64
}

// nuevaCheckoutFixture arma una bodega en Chiclayo con delivery de 5 km de
// radio, S/ 1.00 por km y pedido mínimo de S/ 10.00, con un producto a
// S/ 7.50 y stock 10.
func nuevaCheckoutFixture() *checkoutFixture {
	f := &checkoutFixture{
		bodegas:   newStubBodegaRepo(),
		productos: newStubProductoBodegaRepo(),
		metodos:   newStubMetodoPagoRepo(),
		bodegaID:  uuid.New(),
		listingID: uuid.New(),
		lat:       -6.7714,
		lon:       -79.8409,
	}
	f.bodegas.bodegas[f.bodegaID] = &model.Bodega{
		ID:       f.bodegaID,
		Nombre:   "Bodega Carmencita",
		Latitud:  &f.lat,
		Longitud: &f.lon,
		Activa:   true,
	}
	f.bodegas.configs[f.bodegaID] = &model.BodegaConfig{
		BodegaID:             f.bodegaID,
		RealizaDelivery:      true,
		RadioMaximoKm:        decimal.NewFromInt(5),
		PrecioPorKm:          decimal.RequireFromString("1.00"),
		PedidoMinimoDelivery: decimal.NewFromInt(10),
	}
	f.productos.items[f.listingID] = &model.ProductoBodega{
		ID:       f.listingID,
		BodegaID: f.bodegaID,
		Precio:   decimal.RequireFromString("7.50"),
		Stock:    10,
		Activo:   true,
		Producto: &model.Producto{Nombre: "Arroz Costeño 5kg"},
	}
	f.svc = NewCheckoutService(f.bodegas, f.productos, f.metodos)
	return f
}

func (f *checkoutFixture) request(kmAlNorte float64, cantidad int) dto.CheckoutRequest {
	return dto.CheckoutRequest{
		BodegaID: f.bodegaID.String(),
		Latitud:  f.lat + kmAlNorte/kmPorGradoLat,
		Longitud: f.lon,
		Productos: []dto.ItemCarritoRequest{
			{ProductoBodegaID: f.listingID.String(), Cantidad: cantidad},
		},
	}
}

func TestCheckout_DeliveryDisponible(t *testing.T) {
	f := nuevaCheckoutFixture()
	yape := "Yape"
	f.metodos.metodos[f.bodegaID] = []model.BodegaMetodoPago{{
		ID:             uuid.New(),
		BodegaID:       f.bodegaID,
		NombreTitular:  "Carmen Díaz",
		TipoMetodoPago: &model.TipoMetodoPago{Nombre: yape},
	}}

	// Cliente a 3 km, dos unidades: subtotal 15.00, envío 3.00, total 18.00.
	resp, err := f.svc.Evaluar(context.Background(), f.request(3, 2))
	require.NoError(t, err)

	assert.True(t, resp.Posible)
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("15.00")), "subtotal %s", resp.Subtotal)
	assert.True(t, resp.CostoDelivery.Equal(decimal.RequireFromString("3.00")), "costo %s", resp.CostoDelivery)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("18.00")), "total %s", resp.Total)
	require.Len(t, resp.MetodosPago, 1)
	assert.Equal(t, "Yape", resp.MetodosPago[0].Tipo)
}

func TestCheckout_FueraDelRadio(t *testing.T) {
	f := nuevaCheckoutFixture()

	resp, err := f.svc.Evaluar(context.Background(), f.request(6, 2))
	require.NoError(t, err)

	assert.False(t, resp.Posible)
	assert.Contains(t, resp.Mensaje, "fuera del radio de cobertura")
	assert.True(t, resp.Total.IsZero())
}

func TestCheckout_SinConfiguracionDeDelivery(t *testing.T) {
	f := nuevaCheckoutFixture()
	delete(f.bodegas.configs, f.bodegaID)

	resp, err := f.svc.Evaluar(context.Background(), f.request(3, 2))
	require.NoError(t, err)

	assert.False(t, resp.Posible)
	assert.Contains(t, resp.Mensaje, "no tiene configurado")
}

func TestCheckout_NoRealizaDelivery(t *testing.T) {
	f := nuevaCheckoutFixture()
	f.bodegas.configs[f.bodegaID].RealizaDelivery = false

	resp, err := f.svc.Evaluar(context.Background(), f.request(3, 2))
	require.NoError(t, err)

	assert.False(t, resp.Posible)
	assert.Contains(t, resp.Mensaje, "no realiza delivery")
}

func TestCheckout_StockInsuficiente(t *testing.T) {
	f := nuevaCheckoutFixture()
	f.productos.items[f.listingID].Stock = 1

	resp, err := f.svc.Evaluar(context.Background(), f.request(3, 2))
	require.NoError(t, err)

	assert.False(t, resp.Posible)
	assert.Equal(t,
		"Stock insuficiente para el producto: Arroz Costeño 5kg. Stock actual: 1, Solicitado: 2",
		resp.Mensaje)
}

func TestCheckout_PedidoMinimoNoAlcanzado(t *testing.T) {
	f := nuevaCheckoutFixture()

	resp, err := f.svc.Evaluar(context.Background(), f.request(3, 1))
	require.NoError(t, err)

	assert.False(t, resp.Posible)
	assert.Contains(t, resp.Mensaje, "pedido mínimo")
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("7.50")))
}

func TestCheckout_BodegaInexistente(t *testing.T) {
	f := nuevaCheckoutFixture()

	req := f.request(3, 2)
	req.BodegaID = uuid.New().String()

	_, err := f.svc.Evaluar(context.Background(), req)
	assert.ErrorIs(t, err, apierror.ErrNoEncontrado)
}

func TestCheckout_BodegaInactiva(t *testing.T) {
	f := nuevaCheckoutFixture()
	f.bodegas.bodegas[f.bodegaID].Activa = false

	resp, err := f.svc.Evaluar(context.Background(), f.request(3, 2))
	require.NoError(t, err)

	assert.False(t, resp.Posible)
}

func TestCheckout_NoReservaNiMutaStock(t *testing.T) {
	f := nuevaCheckoutFixture()

	_, err := f.svc.Evaluar(context.Background(), f.request(3, 2))
	require.NoError(t, err)

	assert.Equal(t, 10, f.productos.stock(f.listingID))
}
