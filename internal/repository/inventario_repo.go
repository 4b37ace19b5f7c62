package repository

import (
	"context"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventarioRepository persists the append-only stock movement ledger and
// resolves movement types. Ledger rows are never updated or deleted.
type InventarioRepository interface {
	FindTipoByNombre(ctx context.Context, nombre string) (*model.TipoMovimiento, error)
	CreateMovimientoTx(tx *gorm.DB, mov *model.MovimientoStock) error
	// ListByProductoBodega returns the full movement history, newest first.
	ListByProductoBodega(ctx context.Context, productoBodegaID uuid.UUID) ([]model.MovimientoStock, error)
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) FindTipoByNombre(ctx context.Context, nombre string) (*model.TipoMovimiento, error) {
	var tipo model.TipoMovimiento
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&tipo).Error
	return &tipo, err
}

func (r *inventarioRepo) CreateMovimientoTx(tx *gorm.DB, mov *model.MovimientoStock) error {
	return tx.Create(mov).Error
}

func (r *inventarioRepo) ListByProductoBodega(ctx context.Context, productoBodegaID uuid.UUID) ([]model.MovimientoStock, error) {
	var movs []model.MovimientoStock
	err := r.db.WithContext(ctx).
		Preload("TipoMovimiento").
		Where("producto_bodega_id = ?", productoBodegaID).
		Order("created_at DESC").
		Find(&movs).Error
	return movs, err
}
