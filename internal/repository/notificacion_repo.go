package repository

import (
	"context"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificacionRepository persists notifications. The per-user LIFO stack in
// memory is rebuilt from these rows at startup.
type NotificacionRepository interface {
	Create(ctx context.Context, n *model.Notificacion) error
	CreateTx(tx *gorm.DB, n *model.Notificacion) error
	// ListTodasOrdenadas returns every notification ascending by creation time,
	// the stack rehydration replay order (oldest pushed first).
	ListTodasOrdenadas(ctx context.Context) ([]model.Notificacion, error)
	MarcarLeida(ctx context.Context, id, usuarioID uuid.UUID) error
}

type notificacionRepo struct{ db *gorm.DB }

func NewNotificacionRepository(db *gorm.DB) NotificacionRepository {
	return &notificacionRepo{db: db}
}

func (r *notificacionRepo) Create(ctx context.Context, n *model.Notificacion) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificacionRepo) CreateTx(tx *gorm.DB, n *model.Notificacion) error {
	return tx.Create(n).Error
}

func (r *notificacionRepo) ListTodasOrdenadas(ctx context.Context) ([]model.Notificacion, error) {
	var ns []model.Notificacion
	err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&ns).Error
	return ns, err
}

func (r *notificacionRepo) MarcarLeida(ctx context.Context, id, usuarioID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notificacion{}).
		Where("id = ? AND usuario_destino_id = ?", id, usuarioID).
		Update("leido", true).Error
}
