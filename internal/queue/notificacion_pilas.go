package queue

import (
	"sync"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
)

// NotificacionPilas maintains one LIFO stack of notifications per user.
// Notifications are never popped by readers; the feed is a non-consuming
// view of the whole stack, most recent first.
type NotificacionPilas struct {
	mu    sync.RWMutex
	pilas map[uuid.UUID]*pilaUsuario
}

type pilaUsuario struct {
	mu    sync.Mutex
	items []*model.Notificacion
}

func NewNotificacionPilas() *NotificacionPilas {
	return &NotificacionPilas{pilas: make(map[uuid.UUID]*pilaUsuario)}
}

func (np *NotificacionPilas) pila(usuarioID uuid.UUID) *pilaUsuario {
	np.mu.RLock()
	p, ok := np.pilas[usuarioID]
	np.mu.RUnlock()
	if ok {
		return p
	}
	np.mu.Lock()
	defer np.mu.Unlock()
	if p, ok = np.pilas[usuarioID]; !ok {
		p = &pilaUsuario{}
		np.pilas[usuarioID] = p
	}
	return p
}

// Apilar places the notification on top of the user's stack.
func (np *NotificacionPilas) Apilar(usuarioID uuid.UUID, n *model.Notificacion) {
	p := np.pila(usuarioID)
	p.mu.Lock()
	p.items = append(p.items, n)
	p.mu.Unlock()
}

// Feed returns the stack contents most-recent-first without mutating it.
func (np *NotificacionPilas) Feed(usuarioID uuid.UUID) []*model.Notificacion {
	p := np.pila(usuarioID)
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*model.Notificacion, len(p.items))
	for i, n := range p.items {
		out[len(p.items)-1-i] = n
	}
	return out
}

// MarcarLeida flips the read flag on the in-memory copy, if present.
func (np *NotificacionPilas) MarcarLeida(usuarioID, notificacionID uuid.UUID) {
	p := np.pila(usuarioID)
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range p.items {
		if n.ID == notificacionID {
			n.Leido = true
			return
		}
	}
}
