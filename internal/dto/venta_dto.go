package dto

import "github.com/shopspring/decimal"

// DetalleVentaResponse is one frozen sale line.
type DetalleVentaResponse struct {
	ProductoBodegaID string          `json:"producto_bodega_id"`
	Producto         string          `json:"producto,omitempty"`
	Cantidad         int             `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

// VentaResponse is the sale summary for display.
type VentaResponse struct {
	ID               string                 `json:"id"`
	Fecha            string                 `json:"fecha"`
	Monto            decimal.Decimal        `json:"monto"`
	CostoDelivery    decimal.Decimal        `json:"costo_delivery"`
	DireccionEntrega string                 `json:"direccion_entrega,omitempty"`
	ClienteNombre    string                 `json:"cliente_nombre,omitempty"`
	Estado           string                 `json:"estado"`
	BodegaID         string                 `json:"bodega_id"`
	Detalles         []DetalleVentaResponse `json:"detalles"`
}

// AnularVentaRequest is bound from POST /v1/ventas/{id}/anular.
type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// PrecioResponse is the public, cacheable price-check payload.
type PrecioResponse struct {
	Producto        string          `json:"producto"`
	Precio          decimal.Decimal `json:"precio"`
	StockDisponible int             `json:"stock_disponible"`
	Bodega          string          `json:"bodega"`
}
