package dto

import "github.com/shopspring/decimal"

// ItemCarritoRequest is one cart line of a pre-checkout validation.
type ItemCarritoRequest struct {
	ProductoBodegaID string `json:"producto_bodega_id" validate:"required,uuid"`
	Cantidad         int    `json:"cantidad"           validate:"required,min=1"`
}

// CheckoutRequest is bound from POST /v1/checkout/validar.
type CheckoutRequest struct {
	BodegaID  string               `json:"bodega_id" validate:"required,uuid"`
	Latitud   float64              `json:"latitud"   validate:"required,min=-90,max=90"`
	Longitud  float64              `json:"longitud"  validate:"required,min=-180,max=180"`
	Productos []ItemCarritoRequest `json:"productos" validate:"required,min=1,dive"`
}

// MetodoPagoResponse is one active payment method of the bodega.
type MetodoPagoResponse struct {
	ID            string  `json:"id"`
	Tipo          string  `json:"tipo"`
	NombreTitular string  `json:"nombre_titular"`
	Telefono      *string `json:"telefono,omitempty"`
	ImagenQrURL   *string `json:"imagen_qr_url,omitempty"`
}

// CheckoutResponse is the eligibility result. Ineligibility is a normal
// outcome, not an error: Posible=false with a display message, still carrying
// whatever figures were computed (distance, subtotal) for the UI.
type CheckoutResponse struct {
	Posible       bool                 `json:"posible"`
	Mensaje       string               `json:"mensaje"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	CostoDelivery decimal.Decimal      `json:"costo_delivery"`
	Total         decimal.Decimal      `json:"total"`
	DistanciaKm   decimal.Decimal      `json:"distancia_km"`
	MetodosPago   []MetodoPagoResponse `json:"metodos_pago,omitempty"`
}
