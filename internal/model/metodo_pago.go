package model

import (
	"time"

	"github.com/google/uuid"
)

// TipoMetodoPago is a payment channel (Yape, Plin, efectivo, ...).
type TipoMetodoPago struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"uniqueIndex;not null"`

	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (TipoMetodoPago) TableName() string { return "tipos_metodo_pago" }

// BodegaMetodoPago is a payment method as configured by one bodega, surfaced
// in eligibility results so the customer can pick how to pay.
type BodegaMetodoPago struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BodegaID         uuid.UUID `gorm:"type:uuid;not null;index"`
	TipoMetodoPagoID uuid.UUID `gorm:"type:uuid;not null"`

	NombreTitular  string
	NumeroTelefono *string
	ImagenQrURL    *string
	Activo         bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	TipoMetodoPago *TipoMetodoPago `gorm:"foreignKey:TipoMetodoPagoID"`
}

// TableName overrides GORM's default pluralization.
func (BodegaMetodoPago) TableName() string { return "bodega_metodos_pago" }
