package dto

import "github.com/shopspring/decimal"

// CrearPedidoRequest is bound from POST /v1/pedidos (customer checkout).
type CrearPedidoRequest struct {
	BodegaID         string               `json:"bodega_id"         validate:"required,uuid"`
	UsuarioID        string               `json:"usuario_id"        validate:"required,uuid"`
	DireccionEntrega string               `json:"direccion_entrega" validate:"required"`
	TelefonoContacto *string              `json:"telefono_contacto"`
	Latitud          *float64             `json:"latitud"`
	Longitud         *float64             `json:"longitud"`
	Productos        []ItemCarritoRequest `json:"productos"         validate:"required,min=1,dive"`
}

// PedidoManualRequest is bound from POST /v1/pedidos/manual, a staff-created
// order that skips eligibility evaluation but not the stock re-validation.
type PedidoManualRequest struct {
	BodegaID         string               `json:"bodega_id"         validate:"required,uuid"`
	UsuarioID        string               `json:"usuario_id"        validate:"required,uuid"`
	DireccionEntrega string               `json:"direccion_entrega" validate:"required"`
	Productos        []ItemCarritoRequest `json:"productos"         validate:"required,min=1,dive"`
}

// DetallePedidoResponse is one frozen order line.
type DetallePedidoResponse struct {
	ProductoBodegaID string          `json:"producto_bodega_id"`
	Producto         string          `json:"producto,omitempty"`
	Cantidad         int             `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// PedidoResponse is the order summary returned to customers and bodegueros.
type PedidoResponse struct {
	ID               string                  `json:"id"`
	CodigoPedido     string                  `json:"codigo_pedido"`
	Estado           string                  `json:"estado"`
	Total            decimal.Decimal         `json:"total"`
	CostoDelivery    decimal.Decimal         `json:"costo_delivery"`
	DireccionEntrega string                  `json:"direccion_entrega"`
	UsuarioID        string                  `json:"usuario_id"`
	BodegaID         string                  `json:"bodega_id"`
	VentaID          *string                 `json:"venta_id,omitempty"`
	Detalles         []DetallePedidoResponse `json:"detalles"`
	CreatedAt        string                  `json:"created_at"`
}
