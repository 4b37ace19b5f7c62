package handler

import (
	"net/http"

	"github.com/Antoni2487/Bodeguita/internal/dto"
	"github.com/Antoni2487/Bodeguita/internal/service"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct{ svc *service.CheckoutService }

func NewCheckoutHandler(svc *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// Validar godoc
// @Summary      Validar elegibilidad de delivery
// @Description  Evalúa cobertura, stock y pedido mínimo para un carrito. Solo lectura: no reserva stock y un resultado positivo no garantiza la creación posterior del pedido.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body body dto.CheckoutRequest true "Carrito y ubicación del cliente"
// @Success      200  {object} dto.CheckoutResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/checkout/validar [post]
func (h *CheckoutHandler) Validar(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Evaluar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
