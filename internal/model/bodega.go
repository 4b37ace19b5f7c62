package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bodega is an independent seller unit with its own location, inventory and
// delivery rules. Geolocation is mutable by the owner; everything money- or
// stock-related hangs off ProductoBodega listings, not the bodega itself.
type Bodega struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"not null"`
	Direccion string
	Latitud   *float64
	Longitud  *float64
	Activa    bool `gorm:"not null;default:true"`
	// UsuarioID is the owning bodeguero, the target of new-order notifications.
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Config is optional: absence means delivery unavailable.
	Config *BodegaConfig `gorm:"foreignKey:BodegaID;constraint:OnDelete:CASCADE"`
}

// BodegaConfig holds the delivery rules of exactly one bodega.
type BodegaConfig struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BodegaID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	RealizaDelivery      bool            `gorm:"not null;default:false"`
	RadioMaximoKm        decimal.Decimal `gorm:"type:decimal(10,2)"`
	PrecioPorKm          decimal.Decimal `gorm:"type:decimal(10,2)"`
	PedidoMinimoDelivery decimal.Decimal `gorm:"type:decimal(10,2)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
