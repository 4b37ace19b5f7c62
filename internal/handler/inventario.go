package handler

import (
	"net/http"

	"github.com/Antoni2487/Bodeguita/internal/apierror"
	"github.com/Antoni2487/Bodeguita/internal/dto"
	"github.com/Antoni2487/Bodeguita/internal/middleware"
	"github.com/Antoni2487/Bodeguita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventarioHandler struct{ svc *service.InventarioService }

func NewInventarioHandler(svc *service.InventarioService) *InventarioHandler {
	return &InventarioHandler{svc: svc}
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica un movimiento manual (reposición, merma, ajuste) por tipo nombrado. El stock cacheado y la fila del libro se escriben en la misma transacción; las salidas nunca dejan stock negativo.
// @Tags         inventario
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarMovimientoRequest true "Movimiento"
// @Success      201  {object} dto.MovimientoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/inventario/movimientos [post]
func (h *InventarioHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var actorID *uuid.UUID
	if claims := middleware.GetClaims(c); claims != nil {
		if id, err := uuid.Parse(claims.UserID); err == nil {
			actorID = &id
		}
	}

	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Historial godoc
// @Summary      Historial de movimientos de un producto
// @Description  Devuelve el libro de movimientos completo del producto en la bodega, el más reciente primero. Las filas son inmutables.
// @Tags         inventario
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del producto de bodega"
// @Success      200 {array} dto.MovimientoResponse
// @Router       /v1/inventario/{id}/movimientos [get]
func (h *InventarioHandler) Historial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
