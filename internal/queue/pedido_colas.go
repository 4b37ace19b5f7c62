// Package queue holds the process-local order queues and notification stacks.
// Both are derived views of persisted rows: rebuilt from storage at startup
// and never the sole record of anything's existence.
package queue

import (
	"sync"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
)

// PedidoColas maintains one FIFO queue of pending pedidos per bodega.
// Operations on the same bodega are mutually exclusive; different bodegas
// never block each other (one mutex per queue, not one over all of them).
type PedidoColas struct {
	mu    sync.RWMutex
	colas map[uuid.UUID]*colaBodega
}

type colaBodega struct {
	mu    sync.Mutex
	items []*model.Pedido
}

func NewPedidoColas() *PedidoColas {
	return &PedidoColas{colas: make(map[uuid.UUID]*colaBodega)}
}

func (c *PedidoColas) cola(bodegaID uuid.UUID) *colaBodega {
	c.mu.RLock()
	q, ok := c.colas[bodegaID]
	c.mu.RUnlock()
	if ok {
		return q
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if q, ok = c.colas[bodegaID]; !ok {
		q = &colaBodega{}
		c.colas[bodegaID] = q
	}
	return q
}

// Encolar appends the pedido to the tail of the bodega's queue.
func (c *PedidoColas) Encolar(bodegaID uuid.UUID, p *model.Pedido) {
	q := c.cola(bodegaID)
	q.mu.Lock()
	q.items = append(q.items, p)
	q.mu.Unlock()
}

// Desencolar removes and returns the head of the queue, or nil when empty.
func (c *PedidoColas) Desencolar(bodegaID uuid.UUID) *model.Pedido {
	q := c.cola(bodegaID)
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head
}

// VerSiguiente returns the head of the queue without removing it.
func (c *PedidoColas) VerSiguiente(bodegaID uuid.UUID) *model.Pedido {
	q := c.cola(bodegaID)
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Snapshot returns a copy of the queue contents in FIFO order, for display.
func (c *PedidoColas) Snapshot(bodegaID uuid.UUID) []*model.Pedido {
	q := c.cola(bodegaID)
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*model.Pedido, len(q.items))
	copy(out, q.items)
	return out
}

// Largo returns the number of queued pedidos for the bodega.
func (c *PedidoColas) Largo(bodegaID uuid.UUID) int {
	q := c.cola(bodegaID)
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
