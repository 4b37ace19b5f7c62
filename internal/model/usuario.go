package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is the minimal user record the core needs: notification target,
// ledger actor and bodega owner. Credentials and sessions live in the
// external auth service.
type Usuario struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre   string    `gorm:"not null"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Telefono *string
	Rol      string `gorm:"not null;default:'cliente'"` // cliente | bodeguero | admin
	Activo   bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
