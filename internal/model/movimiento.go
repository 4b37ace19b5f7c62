package model

import (
	"time"

	"github.com/google/uuid"
)

// Naturaleza of a movement type: entries add stock, exits subtract it.
const (
	NaturalezaEntrada = "ENTRADA"
	NaturalezaSalida  = "SALIDA"
)

// Movement types the system requires pre-provisioned before any sale or
// cancellation can be processed (see cmd/seedtipos).
const (
	MovimientoVenta     = "VENTA"           // SALIDA
	MovimientoAnulacion = "ANULACION_VENTA" // ENTRADA
)

// TipoMovimiento is a named movement type with a fixed nature.
type TipoMovimiento struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string    `gorm:"uniqueIndex;not null"`
	Naturaleza string    `gorm:"not null"` // ENTRADA | SALIDA

	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (TipoMovimiento) TableName() string { return "tipos_movimiento" }

// MovimientoStock is an immutable ledger entry against a listing. Rows are
// append-only: never updated, never deleted. Cancellations create inverse
// entries. Replaying all movements of a listing in timestamp order from its
// initial stock must reproduce the cached Stock column exactly.
type MovimientoStock struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoBodegaID uuid.UUID `gorm:"type:uuid;not null;index"`
	TipoMovimientoID uuid.UUID `gorm:"type:uuid;not null"`
	Cantidad         int       `gorm:"not null"` // always positive; the tipo's naturaleza gives the sign
	StockAnterior    int       `gorm:"not null"`
	StockNuevo       int       `gorm:"not null"`
	Motivo           string
	// ReferenciaID links to the originating venta, if any.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	// UsuarioID is the acting user; nil for system-generated movements.
	UsuarioID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time

	TipoMovimiento *TipoMovimiento `gorm:"foreignKey:TipoMovimientoID"`
}

// TableName overrides GORM's default pluralization.
func (MovimientoStock) TableName() string { return "movimientos_stock" }
