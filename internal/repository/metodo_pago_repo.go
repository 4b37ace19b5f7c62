package repository

import (
	"context"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MetodoPagoRepository lists payment methods configured by a bodega.
type MetodoPagoRepository interface {
	FindActivosByBodega(ctx context.Context, bodegaID uuid.UUID) ([]model.BodegaMetodoPago, error)
}

type metodoPagoRepo struct{ db *gorm.DB }

func NewMetodoPagoRepository(db *gorm.DB) MetodoPagoRepository {
	return &metodoPagoRepo{db: db}
}

func (r *metodoPagoRepo) FindActivosByBodega(ctx context.Context, bodegaID uuid.UUID) ([]model.BodegaMetodoPago, error) {
	var metodos []model.BodegaMetodoPago
	err := r.db.WithContext(ctx).
		Preload("TipoMetodoPago").
		Where("bodega_id = ? AND activo = true", bodegaID).
		Find(&metodos).Error
	return metodos, err
}
