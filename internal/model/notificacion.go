package model

import (
	"time"

	"github.com/google/uuid"
)

// Notificacion is created by the fulfillment workflow on domain events and
// only ever mutated to flip the read flag. The per-user in-memory stack is a
// derived view; these rows are the source of truth across restarts.
type Notificacion struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioDestinoID uuid.UUID `gorm:"type:uuid;not null;index"`
	Mensaje          string    `gorm:"not null"`
	Tipo             string    `gorm:"not null"` // PEDIDO | VENTA | SISTEMA
	URLDestino       *string
	Leido            bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides GORM's default pluralization.
func (Notificacion) TableName() string { return "notificaciones" }
