package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Antoni2487/Bodeguita/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the business error taxonomy to HTTP statuses. Anything
// outside the taxonomy is left for the ErrorHandler middleware, which logs it
// and answers a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	// Reconciliation first: it wraps its cause (often insufficient stock) and
	// must not be downgraded to the cause's status.
	case apierror.EsReconciliacion(err), apierror.EsConfiguracion(err):
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
	case errors.Is(err, apierror.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case apierror.EsStockInsuficiente(err),
		errors.Is(err, apierror.ErrColaVacia),
		errors.Is(err, apierror.ErrVentaYaAnulada),
		errors.Is(err, apierror.ErrBodegaInactiva):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
		c.Abort()
	}
}
