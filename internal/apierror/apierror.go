// Package apierror provides standardized error response structures for the API
// and the business error taxonomy shared by the services. All errors returned
// to clients go through this package to ensure consistency and to prevent
// leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// ── Business error taxonomy ───────────────────────────────────────────────────
// Every error message is written for direct display: it names the offending
// product, quantity or limit instead of an opaque code.

// ErrNoEncontrado marks a missing bodega/producto/pedido/tipo de movimiento.
// Client error, never retried automatically.
var ErrNoEncontrado = errors.New("recurso no encontrado")

// ErrColaVacia is returned when confirming fulfillment with nothing pending.
var ErrColaVacia = errors.New("la cola de pedidos está vacía")

// ErrBodegaInactiva rejects orders against a deactivated bodega.
var ErrBodegaInactiva = errors.New("la bodega no está disponible")

// ErrVentaYaAnulada rejects a second annulment of the same sale.
var ErrVentaYaAnulada = errors.New("la venta ya fue anulada")

// NoEncontrado wraps ErrNoEncontrado with the missing resource name.
func NoEncontrado(recurso string) error {
	return fmt.Errorf("%w: %s", ErrNoEncontrado, recurso)
}

// StockInsuficienteError is a business rule violation: an exit movement asked
// for more units than the listing holds. The caller must not retry without
// changing the request.
type StockInsuficienteError struct {
	Producto    string
	StockActual int
	Solicitado  int
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("Stock insuficiente para el producto: %s. Stock actual: %d, Solicitado: %d",
		e.Producto, e.StockActual, e.Solicitado)
}

// EsStockInsuficiente reports whether err is (or wraps) a StockInsuficienteError.
func EsStockInsuficiente(err error) bool {
	var target *StockInsuficienteError
	return errors.As(err, &target)
}

// ConfiguracionError is an operator/deployment defect: a required
// TipoMovimiento (VENTA, ANULACION_VENTA) is missing, which blocks every sale
// for the affected bodega. Fatal for the operation; logged loudly.
type ConfiguracionError struct {
	TipoMovimiento string
}

func (e *ConfiguracionError) Error() string {
	return fmt.Sprintf("El tipo de movimiento '%s' no está configurado en la base de datos", e.TipoMovimiento)
}

// EsConfiguracion reports whether err is (or wraps) a ConfiguracionError.
func EsConfiguracion(err error) bool {
	var target *ConfiguracionError
	return errors.As(err, &target)
}

// ReconciliacionError flags a confirmation that failed AFTER the order was
// dequeued (e.g. concurrent stock depletion since order creation). The order
// is no longer in its queue and must not be silently re-enqueued; an operator
// has to intervene before the same order can be retried.
type ReconciliacionError struct {
	PedidoID     uuid.UUID
	CodigoPedido string
	Causa        error
}

func (e *ReconciliacionError) Error() string {
	return fmt.Sprintf("El pedido %s fue desencolado pero no pudo confirmarse y requiere atención manual: %v",
		e.CodigoPedido, e.Causa)
}

func (e *ReconciliacionError) Unwrap() error { return e.Causa }

// EsReconciliacion reports whether err is (or wraps) a ReconciliacionError.
func EsReconciliacion(err error) bool {
	var target *ReconciliacionError
	return errors.As(err, &target)
}
