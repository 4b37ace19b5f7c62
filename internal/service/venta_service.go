package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Antoni2487/Bodeguita/internal/apierror"
	"github.com/Antoni2487/Bodeguita/internal/dto"
	"github.com/Antoni2487/Bodeguita/internal/locks"
	"github.com/Antoni2487/Bodeguita/internal/model"
	"github.com/Antoni2487/Bodeguita/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// VentaService reads sales and handles annulment. A venta is never created
// here: the fulfillment workflow is the only producer of sales.
type VentaService struct {
	ventas       repository.VentaRepository
	inventario   *InventarioService
	listingLocks *locks.Keyed
}

func NewVentaService(ventas repository.VentaRepository, inventario *InventarioService, listingLocks *locks.Keyed) *VentaService {
	return &VentaService{ventas: ventas, inventario: inventario, listingLocks: listingLocks}
}

// Obtener returns one sale with its frozen lines.
func (s *VentaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("venta")
		}
		return nil, err
	}
	return toVentaResponse(v), nil
}

// Anular marks the sale ANULADA and restores the stock of every line through
// inverse ledger entries. The original exit rows and the sale lines stay
// untouched; only the estado flag changes.
func (s *VentaService) Anular(ctx context.Context, id uuid.UUID, motivo string, actorID *uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("venta")
		}
		return nil, err
	}
	if venta.Estado == model.VentaAnulada {
		return nil, apierror.ErrVentaYaAnulada
	}

	for _, lid := range listingsDeVenta(venta) {
		s.listingLocks.Lock(lid)
		defer s.listingLocks.Unlock(lid)
	}

	motivoLedger := fmt.Sprintf("Anulación de venta: %s", motivo)
	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		for _, d := range venta.Detalles {
			if _, err := s.inventario.ReponerPorAnulacionTx(ctx, tx, d.ProductoBodegaID, d.Cantidad, venta.ID, motivoLedger, actorID); err != nil {
				return err
			}
		}
		return s.ventas.UpdateEstadoTx(tx, venta.ID, model.VentaAnulada)
	})
	if err != nil {
		return nil, err
	}

	venta.Estado = model.VentaAnulada
	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("motivo", motivo).
		Msg("venta anulada y stock repuesto")
	return toVentaResponse(venta), nil
}

func listingsDeVenta(v *model.Venta) []uuid.UUID {
	p := &model.Pedido{}
	for _, d := range v.Detalles {
		p.Detalles = append(p.Detalles, model.DetallePedido{ProductoBodegaID: d.ProductoBodegaID})
	}
	return listingsDePedido(p)
}

func toVentaResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:               v.ID.String(),
		Fecha:            v.Fecha.Format(time.RFC3339),
		Monto:            v.Monto,
		CostoDelivery:    v.CostoDelivery,
		DireccionEntrega: v.DireccionEntrega,
		ClienteNombre:    v.ClienteNombre,
		Estado:           v.Estado,
		BodegaID:         v.BodegaID.String(),
	}
	for _, d := range v.Detalles {
		resp.Detalles = append(resp.Detalles, dto.DetalleVentaResponse{
			ProductoBodegaID: d.ProductoBodegaID.String(),
			Cantidad:         d.Cantidad,
			PrecioUnitario:   d.PrecioUnitario,
			Subtotal:         d.Subtotal,
		})
	}
	return resp
}
