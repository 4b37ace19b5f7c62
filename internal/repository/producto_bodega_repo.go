package repository

import (
	"context"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoBodegaRepository is the data access contract for listings. The
// cached stock column is only ever written through the Tx methods below,
// always inside the same transaction that appends the ledger row.
type ProductoBodegaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoBodega, error)

	// Used inside transactions; callers must pass the tx instance.
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ProductoBodega, error)
	// IncrementarStockTx adds cantidad (entries).
	IncrementarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
	// DescontarStockTx subtracts cantidad guarded by `stock >= cantidad` at the
	// SQL level; returns false without error when the guard rejects the update.
	DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoBodegaRepo struct{ db *gorm.DB }

func NewProductoBodegaRepository(db *gorm.DB) ProductoBodegaRepository {
	return &productoBodegaRepo{db: db}
}

func (r *productoBodegaRepo) DB() *gorm.DB { return r.db }

func (r *productoBodegaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductoBodega, error) {
	var pb model.ProductoBodega
	err := r.db.WithContext(ctx).Preload("Producto").First(&pb, id).Error
	return &pb, err
}

func (r *productoBodegaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ProductoBodega, error) {
	var pb model.ProductoBodega
	err := tx.Preload("Producto").First(&pb, id).Error
	return &pb, err
}

func (r *productoBodegaRepo) IncrementarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.ProductoBodega{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", cantidad)).Error
}

func (r *productoBodegaRepo) DescontarStockTx(tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	res := tx.Model(&model.ProductoBodega{}).
		Where("id = ? AND stock >= ?", id, cantidad).
		Update("stock", gorm.Expr("stock - ?", cantidad))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
