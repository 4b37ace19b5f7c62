package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pedido state machine. CANCELADO is reachable from any non-terminal state.
const (
	PedidoPendiente     = "PENDIENTE"
	PedidoConfirmado    = "CONFIRMADO"
	PedidoEnPreparacion = "EN_PREPARACION"
	PedidoEnCamino      = "EN_CAMINO"
	PedidoEntregado     = "ENTREGADO"
	PedidoCancelado     = "CANCELADO"
)

// Pedido is a customer's not-yet-fulfilled purchase request, queued per
// bodega in strict arrival order. CreatedAt is the FIFO ordering key. A
// pedido is only mutated by the fulfillment workflow and is never deleted
// while a Venta references it.
type Pedido struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoPedido string    `gorm:"uniqueIndex;not null"`
	Estado       string    `gorm:"not null;default:'PENDIENTE';index"`
	// Total = sum of line subtotals + CostoDelivery, frozen at creation.
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoDelivery decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	DireccionEntrega string
	TelefonoContacto *string
	LatitudEntrega   *float64
	LongitudEntrega  *float64

	UsuarioID uuid.UUID  `gorm:"type:uuid;not null;index"`
	BodegaID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	VentaID   *uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Detalles []DetallePedido `gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

// DetallePedido is one order line. PrecioUnitario is copied from the listing
// at order time, not re-read later, to freeze the charged amount.
type DetallePedido struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PedidoID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoBodegaID uuid.UUID `gorm:"type:uuid;not null"`

	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (DetallePedido) TableName() string { return "detalles_pedido" }
