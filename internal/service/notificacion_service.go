package service

import (
	"context"
	"time"

	"github.com/Antoni2487/Bodeguita/internal/dto"
	"github.com/Antoni2487/Bodeguita/internal/model"
	"github.com/Antoni2487/Bodeguita/internal/queue"
	"github.com/Antoni2487/Bodeguita/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Notification categories shown in the feed.
const (
	NotificacionPedido  = "PEDIDO"
	NotificacionVenta   = "VENTA"
	NotificacionSistema = "SISTEMA"
)

// NotificacionService persists notifications and feeds the per-user in-memory
// stacks. The stacks are a derived view: rows are the truth, and the stacks
// are rebuilt from them at startup.
type NotificacionService struct {
	repo  repository.NotificacionRepository
	pilas *queue.NotificacionPilas
}

func NewNotificacionService(repo repository.NotificacionRepository, pilas *queue.NotificacionPilas) *NotificacionService {
	return &NotificacionService{repo: repo, pilas: pilas}
}

// InicializarPilas rebuilds every user's stack from storage, replaying rows in
// ascending creation order so the most recent ends up on top. Call before
// serving traffic.
func (s *NotificacionService) InicializarPilas(ctx context.Context) error {
	ns, err := s.repo.ListTodasOrdenadas(ctx)
	if err != nil {
		return err
	}
	for i := range ns {
		n := ns[i]
		s.pilas.Apilar(n.UsuarioDestinoID, &n)
	}
	log.Info().Int("notificaciones", len(ns)).Msg("pilas de notificaciones rehidratadas")
	return nil
}

// Notificar persists a notification and pushes it onto the user's stack.
func (s *NotificacionService) Notificar(ctx context.Context, usuarioID uuid.UUID, mensaje, tipo string, urlDestino *string) (*model.Notificacion, error) {
	n := &model.Notificacion{
		UsuarioDestinoID: usuarioID,
		Mensaje:          mensaje,
		Tipo:             tipo,
		URLDestino:       urlDestino,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	s.pilas.Apilar(usuarioID, n)
	return n, nil
}

// CrearTx persists a notification inside the caller's transaction without
// touching the stack. Pair with Publicar after the transaction commits.
func (s *NotificacionService) CrearTx(tx *gorm.DB, usuarioID uuid.UUID, mensaje, tipo string, urlDestino *string) (*model.Notificacion, error) {
	n := &model.Notificacion{
		UsuarioDestinoID: usuarioID,
		Mensaje:          mensaje,
		Tipo:             tipo,
		URLDestino:       urlDestino,
	}
	if err := s.repo.CreateTx(tx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Publicar pushes an already persisted notification onto its user's stack.
// Used by workflows that persist the row inside their own transaction and
// must not touch the stack until that transaction commits.
func (s *NotificacionService) Publicar(n *model.Notificacion) {
	s.pilas.Apilar(n.UsuarioDestinoID, n)
}

// Feed returns the user's notifications, most recent first, from the stack.
func (s *NotificacionService) Feed(usuarioID uuid.UUID) []dto.NotificacionResponse {
	ns := s.pilas.Feed(usuarioID)
	out := make([]dto.NotificacionResponse, 0, len(ns))
	for _, n := range ns {
		out = append(out, dto.NotificacionResponse{
			ID:         n.ID.String(),
			Mensaje:    n.Mensaje,
			Tipo:       n.Tipo,
			URLDestino: n.URLDestino,
			Leido:      n.Leido,
			Fecha:      n.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

// MarcarLeida flips the read flag in storage and on the in-memory copy.
func (s *NotificacionService) MarcarLeida(ctx context.Context, usuarioID, notificacionID uuid.UUID) error {
	if err := s.repo.MarcarLeida(ctx, notificacionID, usuarioID); err != nil {
		return err
	}
	s.pilas.MarcarLeida(usuarioID, notificacionID)
	return nil
}
