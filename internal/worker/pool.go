package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Antoni2487/Bodeguita/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueAlertas = "jobs:alertas"
	QueueTickets = "jobs:tickets"

	maxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job payload. A returned error triggers a retry, and
// after maxAttempts the job lands in the dead letter queue.
type Handler interface {
	Process(ctx context.Context, raw json.RawMessage) error
}

// AlertaReconciliacionPayload is the operator alert job for an order that was
// dequeued but whose confirmation failed.
type AlertaReconciliacionPayload struct {
	PedidoID     string `json:"pedido_id"`
	CodigoPedido string `json:"codigo_pedido"`
	BodegaID     string `json:"bodega_id"`
	Causa        string `json:"causa"`
	Fecha        string `json:"fecha"` // ISO 8601
}

// TicketVentaPayload requests the PDF ticket email for a completed sale.
type TicketVentaPayload struct {
	VentaID string `json:"venta_id"`
}

// Dispatcher enqueues async jobs into Redis lists; the worker pool dequeues
// them via BRPOP. It satisfies service.Alertas: dispatch failures are logged
// and never propagated into the calling workflow.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) AlertaReconciliacion(ctx context.Context, pedido *model.Pedido, causa error) {
	payload := AlertaReconciliacionPayload{
		PedidoID:     pedido.ID.String(),
		CodigoPedido: pedido.CodigoPedido,
		BodegaID:     pedido.BodegaID.String(),
		Causa:        causa.Error(),
		Fecha:        time.Now().UTC().Format(time.RFC3339),
	}
	if err := d.enqueue(ctx, QueueAlertas, "alerta_reconciliacion", payload); err != nil {
		log.Error().Err(err).Str("codigo_pedido", pedido.CodigoPedido).
			Msg("dispatcher: no se pudo encolar la alerta de reconciliación")
	}
}

func (d *Dispatcher) TicketVenta(ctx context.Context, ventaID uuid.UUID) {
	payload := TicketVentaPayload{VentaID: ventaID.String()}
	if err := d.enqueue(ctx, QueueTickets, "ticket_venta", payload); err != nil {
		log.Error().Err(err).Str("venta_id", ventaID.String()).
			Msg("dispatcher: no se pudo encolar el ticket de venta")
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming every queue with a
// registered handler. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) {
	queues := make([]string, 0, len(handlers))
	for q := range handlers {
		queues = append(queues, q)
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, queues, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, queues []string, handlers map[string]Handler) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers map[string]Handler, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	handler, ok := handlers[queue]
	if !ok {
		log.Error().Str("queue", queue).Str("type", job.Type).Msg("no handler for queue")
		return
	}

	if err := handler.Process(ctx, job.Payload); err != nil {
		job.Attempts++
		if job.Attempts >= maxAttempts {
			SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts)
			return
		}
		encoded, mErr := json.Marshal(job)
		if mErr != nil {
			log.Error().Err(mErr).Str("queue", queue).Msg("failed to re-marshal job for retry")
			return
		}
		if pErr := rdb.LPush(ctx, queue, encoded).Err(); pErr != nil {
			log.Error().Err(pErr).Str("queue", queue).Msg("failed to requeue job")
		}
		return
	}
	log.Info().Str("type", job.Type).Str("queue", queue).Msg("job processed")
}
