package service

import (
	"context"
	"errors"
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

// InventarioService is the only writer of stock. Every change, sale exits and
// cancellation re-entries included, lands as an immutable MovimientoStock row
// in the same transaction that updates the cached stock column.
type InventarioService struct {
	productos    repository.ProductoBodegaRepository
	inventario   repository.InventarioRepository
	listingLocks *locks.Keyed
}

func NewInventarioService(
	productos repository.ProductoBodegaRepository,
	inventario repository.InventarioRepository,
	listingLocks *locks.Keyed,
) *InventarioService {
	return &InventarioService{productos: productos, inventario: inventario, listingLocks: listingLocks}
}

// RegistrarMovimiento applies a manual movement (restock, merma, ajuste) to a
// listing. The listing lock is held across the whole transaction so the
// StockAnterior/StockNuevo pair in the ledger row is exact.
func (s *InventarioService) RegistrarMovimiento(ctx context.Context, req dto.RegistrarMovimientoRequest, actorID *uuid.UUID) (*dto.MovimientoResponse, error) {
	productoBodegaID, err := uuid.Parse(req.ProductoBodegaID)
	if err != nil {
		return nil, apierror.NoEncontrado("producto de bodega")
	}
	var referenciaID *uuid.UUID
	if req.ReferenciaID != nil {
		ref, err := uuid.Parse(*req.ReferenciaID)
		if err != nil {
			return nil, apierror.NoEncontrado("referencia")
		}
		referenciaID = &ref
	}

	tipo, err := s.inventario.FindTipoByNombre(ctx, req.TipoMovimiento)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("tipo de movimiento " + req.TipoMovimiento)
		}
		return nil, err
	}

	s.listingLocks.Lock(productoBodegaID)
	defer s.listingLocks.Unlock(productoBodegaID)

	var mov *model.MovimientoStock
	err = runTx(ctx, s.productos.DB(), func(tx *gorm.DB) error {
		var txErr error
		mov, txErr = s.aplicarTx(tx, productoBodegaID, tipo, req.Cantidad, req.Motivo, referenciaID, actorID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return toMovimientoResponse(mov, tipo), nil
}

// RegistrarSalidaPorVentaTx records the sale exit for one order line inside
// the caller's transaction. The caller must already hold the listing lock.
func (s *InventarioService) RegistrarSalidaPorVentaTx(ctx context.Context, tx *gorm.DB, productoBodegaID uuid.UUID, cantidad int, ventaID uuid.UUID) (*model.MovimientoStock, error) {
	tipo, err := s.tipoRequerido(ctx, model.MovimientoVenta)
	if err != nil {
		return nil, err
	}
	return s.aplicarTx(tx, productoBodegaID, tipo, cantidad, "Salida por venta", &ventaID, nil)
}

// ReponerPorAnulacionTx records the inverse entry that restores the units of
// one sale line when the sale is annulled. The original exit row is untouched.
func (s *InventarioService) ReponerPorAnulacionTx(ctx context.Context, tx *gorm.DB, productoBodegaID uuid.UUID, cantidad int, ventaID uuid.UUID, motivo string, actorID *uuid.UUID) (*model.MovimientoStock, error) {
	tipo, err := s.tipoRequerido(ctx, model.MovimientoAnulacion)
	if err != nil {
		return nil, err
	}
	return s.aplicarTx(tx, productoBodegaID, tipo, cantidad, motivo, &ventaID, actorID)
}

// Historial returns the full movement ledger of a listing, newest first.
func (s *InventarioService) Historial(ctx context.Context, productoBodegaID uuid.UUID) ([]dto.MovimientoResponse, error) {
	movs, err := s.inventario.ListByProductoBodega(ctx, productoBodegaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoResponse, 0, len(movs))
	for i := range movs {
		out = append(out, *toMovimientoResponse(&movs[i], movs[i].TipoMovimiento))
	}
	return out, nil
}

// tipoRequerido resolves a movement type the system cannot run without.
// Absence is a deployment defect, not a client error.
func (s *InventarioService) tipoRequerido(ctx context.Context, nombre string) (*model.TipoMovimiento, error) {
	tipo, err := s.inventario.FindTipoByNombre(ctx, nombre)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cfgErr := &apierror.ConfiguracionError{TipoMovimiento: nombre}
			log.Error().Str("tipo_movimiento", nombre).Msg(cfgErr.Error())
			return nil, cfgErr
		}
		return nil, err
	}
	return tipo, nil
}

// aplicarTx is the single write path of the ledger: read the listing, apply
// the movement by the tipo's naturaleza, append the row. Exits are doubly
// guarded, first against the read stock, then by the conditional UPDATE.
func (s *InventarioService) aplicarTx(tx *gorm.DB, productoBodegaID uuid.UUID, tipo *model.TipoMovimiento, cantidad int, motivo string, referenciaID, actorID *uuid.UUID) (*model.MovimientoStock, error) {
	pb, err := s.productos.FindByIDTx(tx, productoBodegaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("producto de bodega")
		}
		return nil, err
	}

	stockAnterior := pb.Stock
	var stockNuevo int
	switch tipo.Naturaleza {
	case model.NaturalezaSalida:
		if stockAnterior < cantidad {
			return nil, &apierror.StockInsuficienteError{
				Producto:    nombreProducto(pb),
				StockActual: stockAnterior,
				Solicitado:  cantidad,
			}
		}
		ok, err := s.productos.DescontarStockTx(tx, productoBodegaID, cantidad)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &apierror.StockInsuficienteError{
				Producto:    nombreProducto(pb),
				StockActual: stockAnterior,
				Solicitado:  cantidad,
			}
		}
		stockNuevo = stockAnterior - cantidad
	case model.NaturalezaEntrada:
		if err := s.productos.IncrementarStockTx(tx, productoBodegaID, cantidad); err != nil {
			return nil, err
		}
		stockNuevo = stockAnterior + cantidad
	default:
		return nil, &apierror.ConfiguracionError{TipoMovimiento: tipo.Nombre}
	}

	mov := &model.MovimientoStock{
		ProductoBodegaID: productoBodegaID,
		TipoMovimientoID: tipo.ID,
		Cantidad:         cantidad,
		StockAnterior:    stockAnterior,
		StockNuevo:       stockNuevo,
		Motivo:           motivo,
		ReferenciaID:     referenciaID,
		UsuarioID:        actorID,
	}
	if err := s.inventario.CreateMovimientoTx(tx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func nombreProducto(pb *model.ProductoBodega) string {
	if pb.Producto != nil {
		return pb.Producto.Nombre
	}
	return pb.ID.String()
}

func toMovimientoResponse(mov *model.MovimientoStock, tipo *model.TipoMovimiento) *dto.MovimientoResponse {
	resp := &dto.MovimientoResponse{
		ID:               mov.ID.String(),
		ProductoBodegaID: mov.ProductoBodegaID.String(),
		Cantidad:         mov.Cantidad,
		StockAnterior:    mov.StockAnterior,
		StockNuevo:       mov.StockNuevo,
		Motivo:           mov.Motivo,
		Fecha:            mov.CreatedAt.Format(time.RFC3339),
	}
	if tipo != nil {
		resp.TipoMovimiento = tipo.Nombre
		resp.Naturaleza = tipo.Naturaleza
	}
	if mov.ReferenciaID != nil {
		ref := mov.ReferenciaID.String()
		resp.ReferenciaID = &ref
	}
	if mov.UsuarioID != nil {
		act := mov.UsuarioID.String()
		resp.UsuarioID = &act
	}
	return resp
}
