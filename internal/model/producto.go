package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is the global catalog entry. It carries no stock and no price;
// both belong to the (producto, bodega) listing below.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Categoria   string `gorm:"not null"`
	ImagenURL   *string
	Activo      bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProductoBodega is the unit of inventory truth: one product as offered by one
// bodega, with its own price and integer stock. Stock is never mutated
// directly: every change goes through a MovimientoStock ledger entry, and the
// cached Stock column is a derived, eagerly-updated projection of the ledger.
type ProductoBodega struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index:idx_producto_bodega,unique"`
	BodegaID   uuid.UUID `gorm:"type:uuid;not null;index:idx_producto_bodega,unique"`

	Precio decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock  int             `gorm:"not null;default:0;check:stock >= 0"`
	Activo bool            `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

// TableName overrides GORM's default pluralization.
func (ProductoBodega) TableName() string { return "productos_bodega" }
