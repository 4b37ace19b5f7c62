package worker

// alerta_worker.go
// Processes operator alerts from QueueAlertas: an order left its queue but
// its confirmation failed, so stock, queue and order row have to be checked
// by hand before the order can be retried.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Antoni2487/Bodeguita/internal/infra"

	"github.com/rs/zerolog/log"
)

type AlertaWorker struct {
	mailer        *infra.Mailer
	operatorEmail string
}

func NewAlertaWorker(mailer *infra.Mailer, operatorEmail string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, operatorEmail: operatorEmail}
}

// Process emails the operator with everything needed to reconcile by hand.
func (w *AlertaWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AlertaReconciliacionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if w.operatorEmail == "" {
		log.Warn().Str("codigo_pedido", payload.CodigoPedido).
			Msg("alerta_worker: OPERATOR_EMAIL vacío, alerta solo en logs")
		return nil
	}

	subject := fmt.Sprintf("[Bodeguita] Pedido %s requiere reconciliación manual", payload.CodigoPedido)
	body := fmt.Sprintf(
		"El pedido %s (id %s, bodega %s) fue desencolado pero su confirmación falló.\n\n"+
			"Causa: %s\nFecha: %s\n\n"+
			"La fila sigue PENDIENTE y el pedido ya no está en la cola en memoria. "+
			"Verifique el stock y reinicie el servicio para rehidratar la cola.",
		payload.CodigoPedido, payload.PedidoID, payload.BodegaID, payload.Causa, payload.Fecha)

	if err := w.mailer.Send(w.operatorEmail, subject, body, ""); err != nil {
		log.Error().Err(err).Str("codigo_pedido", payload.CodigoPedido).
			Msg("alerta_worker: failed to send alert email")
		return err
	}
	log.Info().Str("codigo_pedido", payload.CodigoPedido).Msg("alerta_worker: alerta enviada")
	return nil
}
