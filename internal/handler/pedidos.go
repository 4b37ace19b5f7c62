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

type PedidosHandler struct{ svc *service.PedidoService }

func NewPedidosHandler(svc *service.PedidoService) *PedidosHandler {
	return &PedidosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear pedido
// @Description  Crea un pedido con precios congelados, revalida stock, lo encola al final de la cola de su bodega y notifica al bodeguero. El stock NO se descuenta hasta la confirmación.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CrearPedidoRequest true "Pedido"
// @Success      201  {object} dto.PedidoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/pedidos [post]
func (h *PedidosHandler) Crear(c *gin.Context) {
	var req dto.CrearPedidoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CrearManual godoc
// @Summary      Crear pedido manual
// @Description  Registra un pedido en mostrador (código MAN-) sin evaluación de delivery. La revalidación de stock aplica igual.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.PedidoManualRequest true "Pedido manual"
// @Success      201  {object} dto.PedidoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/pedidos/manual [post]
func (h *PedidosHandler) CrearManual(c *gin.Context) {
	var req dto.PedidoManualRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearManual(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obtener godoc
// @Summary      Obtener pedido
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID del pedido"
// @Success      200 {object} dto.PedidoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pedidos/{id} [get]
func (h *PedidosHandler) Obtener(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cola godoc
// @Summary      Ver la cola de pedidos de una bodega
// @Description  Devuelve los pedidos pendientes en orden FIFO, el primero es el siguiente a confirmar. Solo lectura.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la bodega"
// @Success      200 {array} dto.PedidoResponse
// @Router       /v1/bodegas/{id}/pedidos/cola [get]
func (h *PedidosHandler) Cola(c *gin.Context) {
	bodegaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	c.JSON(http.StatusOK, h.svc.ObtenerCola(bodegaID))
}

// Siguiente godoc
// @Summary      Ver el siguiente pedido sin confirmarlo
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la bodega"
// @Success      200 {object} dto.PedidoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/bodegas/{id}/pedidos/siguiente [get]
func (h *PedidosHandler) Siguiente(c *gin.Context) {
	bodegaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.VerSiguiente(bodegaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ConfirmarSiguiente godoc
// @Summary      Confirmar el siguiente pedido de la cola
// @Description  Desencola el pedido más antiguo y lo confirma atómicamente: estado EN_PREPARACION, salidas de stock por el libro de movimientos y creación de la venta inmutable. Si la confirmación falla el pedido queda fuera de la cola y se alerta al operador.
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la bodega"
// @Success      200 {object} dto.VentaResponse
// @Failure      409 {object} apierror.APIError
// @Failure      500 {object} apierror.APIError
// @Router       /v1/bodegas/{id}/pedidos/confirmar [post]
func (h *PedidosHandler) ConfirmarSiguiente(c *gin.Context) {
	bodegaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ConfirmarSiguiente(c.Request.Context(), bodegaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarMisPedidos godoc
// @Summary      Listar los pedidos del usuario autenticado
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PedidoResponse
// @Router       /v1/pedidos [get]
func (h *PedidosHandler) ListarMisPedidos(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ListarPorUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
