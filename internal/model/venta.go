package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta states. A venta is immutable after creation except for this flag.
const (
	VentaCompletada = "COMPLETADA"
	VentaAnulada    = "ANULADA"
)

// Venta is the immutable financial record created exactly once when a pedido
// is fulfilled. Its lines are frozen copies of the pedido lines.
type Venta struct {
	ID    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Fecha time.Time       `gorm:"not null"`
	Monto decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CostoDelivery    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DireccionEntrega string
	LatitudEntrega   *float64
	LongitudEntrega  *float64

	BodegaID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	BodegaMetodoPagoID *uuid.UUID `gorm:"type:uuid"`
	ClienteNombre      string
	Estado             string `gorm:"not null;default:'COMPLETADA'"`

	CreatedAt time.Time

	Detalles []DetalleVenta `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

// DetalleVenta mirrors a DetallePedido with an independent lifecycle from the
// catalog: quantity, unit price and subtotal are frozen at fulfillment time.
type DetalleVenta struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductoBodegaID uuid.UUID `gorm:"type:uuid;not null"`

	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (DetalleVenta) TableName() string { return "detalles_venta" }
