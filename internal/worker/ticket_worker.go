package worker

// ticket_worker.go
// Processes ticket jobs from QueueTickets: renders the PDF receipt of a
// fulfilled sale and emails it to the bodega owner.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Antoni2487/Bodeguita/internal/infra"
	"github.com/Antoni2487/Bodeguita/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type TicketWorker struct {
	ventas      repository.VentaRepository
	productos   repository.ProductoBodegaRepository
	bodegas     repository.BodegaRepository
	usuarios    repository.UsuarioRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewTicketWorker(
	ventas repository.VentaRepository,
	productos repository.ProductoBodegaRepository,
	bodegas repository.BodegaRepository,
	usuarios repository.UsuarioRepository,
	mailer *infra.Mailer,
	storagePath string,
) *TicketWorker {
	return &TicketWorker{
		ventas:      ventas,
		productos:   productos,
		bodegas:     bodegas,
		usuarios:    usuarios,
		mailer:      mailer,
		storagePath: storagePath,
	}
}

func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload TicketVentaPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("ticket_worker: invalid venta id")
		return nil
	}

	venta, err := w.ventas.FindByID(ctx, ventaID)
	if err != nil {
		return fmt.Errorf("ticket_worker: load venta: %w", err)
	}
	bodega, err := w.bodegas.FindByID(ctx, venta.BodegaID)
	if err != nil {
		return fmt.Errorf("ticket_worker: load bodega: %w", err)
	}

	nombres := make(map[uuid.UUID]string, len(venta.Detalles))
	for _, d := range venta.Detalles {
		pb, err := w.productos.FindByID(ctx, d.ProductoBodegaID)
		if err != nil || pb.Producto == nil {
			continue
		}
		nombres[d.ProductoBodegaID] = pb.Producto.Nombre
	}

	pdfPath, err := infra.GenerateTicketPDF(venta, bodega.Nombre, nombres, w.storagePath)
	if err != nil {
		return err
	}

	dueno, err := w.usuarios.FindByID(ctx, bodega.UsuarioID)
	if err != nil || dueno.Email == "" {
		log.Warn().Str("venta_id", ventaID.String()).
			Msg("ticket_worker: dueño sin email, ticket generado sin enviar")
		return nil
	}

	subject := fmt.Sprintf("[%s] Venta %s", bodega.Nombre, ventaID.String()[:8])
	body := fmt.Sprintf("Se adjunta el comprobante de la venta por S/ %s.", venta.Monto.StringFixed(2))
	if err := w.mailer.Send(dueno.Email, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("venta_id", ventaID.String()).
			Msg("ticket_worker: failed to send ticket email")
		return err
	}
	log.Info().Str("venta_id", ventaID.String()).Msg("ticket_worker: ticket enviado")
	return nil
}
