package repository

import (
	"context"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PedidoRepository is the data access contract for orders and their lines.
type PedidoRepository interface {
	// CreateTx persists the pedido together with its detalles (association
	// insert) inside the given transaction.
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Pedido, error)
	// FindPendientesOrdenados is the queue rehydration query: every PENDIENTE
	// pedido across all bodegas, ascending creation time (id breaks ties).
	FindPendientesOrdenados(ctx context.Context) ([]model.Pedido, error)
	UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error
	VincularVentaTx(tx *gorm.DB, pedidoID, ventaID uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).Preload("Detalles").First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) FindByUsuario(ctx context.Context, usuarioID uuid.UUID) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Where("usuario_id = ?", usuarioID).
		Order("created_at DESC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) FindPendientesOrdenados(ctx context.Context) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Detalles").
		Where("estado = ?", model.PedidoPendiente).
		Order("created_at ASC, id ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) UpdateEstadoTx(tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.Model(&model.Pedido{}).Where("id = ?", id).Update("estado", estado).Error
}

func (r *pedidoRepo) VincularVentaTx(tx *gorm.DB, pedidoID, ventaID uuid.UUID) error {
	return tx.Model(&model.Pedido{}).Where("id = ?", pedidoID).Update("venta_id", ventaID).Error
}
