package repository

import (
	"context"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BodegaRepository resolves bodegas and their delivery configuration.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type BodegaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bodega, error)
	// FindConfigByBodegaID returns gorm.ErrRecordNotFound when the bodega has
	// no delivery configuration. Absence means delivery unavailable.
	FindConfigByBodegaID(ctx context.Context, bodegaID uuid.UUID) (*model.BodegaConfig, error)
}

type bodegaRepo struct{ db *gorm.DB }

func NewBodegaRepository(db *gorm.DB) BodegaRepository { return &bodegaRepo{db: db} }

func (r *bodegaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Bodega, error) {
	var b model.Bodega
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *bodegaRepo) FindConfigByBodegaID(ctx context.Context, bodegaID uuid.UUID) (*model.BodegaConfig, error) {
	var cfg model.BodegaConfig
	err := r.db.WithContext(ctx).Where("bodega_id = ?", bodegaID).First(&cfg).Error
	return &cfg, err
}
