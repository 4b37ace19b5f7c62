package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Antoni2487/Bodeguita/internal/apierror"
	"github.com/Antoni2487/Bodeguita/internal/dto"
	"github.com/Antoni2487/Bodeguita/internal/geo"
	"github.com/Antoni2487/Bodeguita/internal/model"
	"github.com/Antoni2487/Bodeguita/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService evaluates delivery eligibility for a cart. Evaluar is
// strictly read-only: it reserves nothing and mutates nothing, so a positive
// result is advisory and the authoritative re-check happens at order creation.
type CheckoutService struct {
	bodegas   repository.BodegaRepository
	productos repository.ProductoBodegaRepository
	metodos   repository.MetodoPagoRepository
}

func NewCheckoutService(
	bodegas repository.BodegaRepository,
	productos repository.ProductoBodegaRepository,
	metodos repository.MetodoPagoRepository,
) *CheckoutService {
	return &CheckoutService{bodegas: bodegas, productos: productos, metodos: metodos}
}

// Evaluar runs the eligibility checks in order: bodega active, delivery
// configured and enabled, customer inside the coverage radius, every line in
// stock, subtotal at or above the delivery minimum. Each failed check is a
// normal negative result with a display message, never an error; only a
// missing bodega or listing is an error.
func (s *CheckoutService) Evaluar(ctx context.Context, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	bodegaID, err := uuid.Parse(req.BodegaID)
	if err != nil {
		return nil, apierror.NoEncontrado("bodega")
	}

	bodega, err := s.bodegas.FindByID(ctx, bodegaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NoEncontrado("bodega")
		}
		return nil, err
	}
	if !bodega.Activa {
		return noElegible("La bodega no está disponible en este momento"), nil
	}

	cfg, err := s.bodegas.FindConfigByBodegaID(ctx, bodegaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return noElegible("La bodega no tiene configurado el servicio de delivery"), nil
		}
		return nil, err
	}
	if !cfg.RealizaDelivery {
		return noElegible("La bodega no realiza delivery"), nil
	}
	if bodega.Latitud == nil || bodega.Longitud == nil {
		return noElegible("La bodega no tiene una ubicación registrada"), nil
	}

	distancia := geo.DistanciaKm(*bodega.Latitud, *bodega.Longitud, req.Latitud, req.Longitud)
	distanciaDec := decimal.NewFromFloat(distancia).Round(2)
	if decimal.NewFromFloat(distancia).GreaterThan(cfg.RadioMaximoKm) {
		resp := noElegible(fmt.Sprintf(
			"Estás fuera del radio de cobertura de la bodega (%s km de %s km)",
			distanciaDec.StringFixed(2), cfg.RadioMaximoKm.StringFixed(2)))
		resp.DistanciaKm = distanciaDec
		return resp, nil
	}

	subtotal := decimal.Zero
	for _, item := range req.Productos {
		productoBodegaID, err := uuid.Parse(item.ProductoBodegaID)
		if err != nil {
			return nil, apierror.NoEncontrado("producto de bodega")
		}
		pb, err := s.productos.FindByID(ctx, productoBodegaID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NoEncontrado("producto de bodega")
			}
			return nil, err
		}
		if !pb.Activo || pb.Stock < item.Cantidad {
			resp := noElegible(fmt.Sprintf(
				"Stock insuficiente para el producto: %s. Stock actual: %d, Solicitado: %d",
				nombreProducto(pb), pb.Stock, item.Cantidad))
			resp.DistanciaKm = distanciaDec
			return resp, nil
		}
		subtotal = subtotal.Add(pb.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad))))
	}

	if subtotal.LessThan(cfg.PedidoMinimoDelivery) {
		resp := noElegible(fmt.Sprintf(
			"El pedido mínimo para delivery es S/ %s", cfg.PedidoMinimoDelivery.StringFixed(2)))
		resp.DistanciaKm = distanciaDec
		resp.Subtotal = subtotal
		return resp, nil
	}

	costoDelivery := geo.CostoDelivery(distancia, cfg.PrecioPorKm)

	metodos, err := s.metodos.FindActivosByBodega(ctx, bodegaID)
	if err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		Posible:       true,
		Mensaje:       "Delivery disponible",
		Subtotal:      subtotal,
		CostoDelivery: costoDelivery,
		Total:         subtotal.Add(costoDelivery),
		DistanciaKm:   distanciaDec,
		MetodosPago:   toMetodosPago(metodos),
	}, nil
}

func noElegible(mensaje string) *dto.CheckoutResponse {
	return &dto.CheckoutResponse{
		Posible:       false,
		Mensaje:       mensaje,
		Subtotal:      decimal.Zero,
		CostoDelivery: decimal.Zero,
		Total:         decimal.Zero,
		DistanciaKm:   decimal.Zero,
	}
}

func toMetodosPago(metodos []model.BodegaMetodoPago) []dto.MetodoPagoResponse {
	out := make([]dto.MetodoPagoResponse, 0, len(metodos))
	for _, m := range metodos {
		resp := dto.MetodoPagoResponse{
			ID:            m.ID.String(),
			NombreTitular: m.NombreTitular,
			Telefono:      m.NumeroTelefono,
			ImagenQrURL:   m.ImagenQrURL,
		}
		if m.TipoMetodoPago != nil {
			resp.Tipo = m.TipoMetodoPago.Nombre
		}
		out = append(out, resp)
	}
	return out
}
