package dto

// RegistrarMovimientoRequest is bound from POST /v1/inventario/movimientos:
// manual entries/exits by named movement type (restock, merma, ajuste).
type RegistrarMovimientoRequest struct {
	ProductoBodegaID string  `json:"producto_bodega_id" validate:"required,uuid"`
	TipoMovimiento   string  `json:"tipo_movimiento"    validate:"required"`
	Cantidad         int     `json:"cantidad"           validate:"required,min=1"`
	Motivo           string  `json:"motivo"`
	ReferenciaID     *string `json:"referencia_id"      validate:"omitempty,uuid"`
}

// MovimientoResponse is one ledger row, newest first in history listings.
type MovimientoResponse struct {
	ID               string  `json:"id"`
	ProductoBodegaID string  `json:"producto_bodega_id"`
	TipoMovimiento   string  `json:"tipo_movimiento"`
	Naturaleza       string  `json:"naturaleza"`
	Cantidad         int     `json:"cantidad"`
	StockAnterior    int     `json:"stock_anterior"`
	StockNuevo       int     `json:"stock_nuevo"`
	Motivo           string  `json:"motivo,omitempty"`
	ReferenciaID     *string `json:"referencia_id,omitempty"`
	UsuarioID        *string `json:"usuario_id,omitempty"`
	Fecha            string  `json:"fecha"`
}
