package service

import (
	"context"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
)

// Alertas dispatches asynchronous side effects to the background worker pool.
// Implementations must be fire-and-forget: a dispatch failure is logged by the
// implementation and never propagated into the calling workflow.
type Alertas interface {
	// AlertaReconciliacion notifies the operator that a dequeued order failed
	// to confirm and needs manual attention.
	AlertaReconciliacion(ctx context.Context, pedido *model.Pedido, causa error)
	// TicketVenta requests the PDF ticket email for a completed sale.
	TicketVenta(ctx context.Context, ventaID uuid.UUID)
}

// NopAlertas discards every dispatch. Used when no broker is configured.
type NopAlertas struct{}

func (NopAlertas) AlertaReconciliacion(context.Context, *model.Pedido, error) {}
func (NopAlertas) TicketVenta(context.Context, uuid.UUID)                    {}
