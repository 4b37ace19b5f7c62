package handler

import (
	"net/http"

	"github.com/Antoni2487/Bodeguita/internal/apierror"
	"github.com/Antoni2487/Bodeguita/internal/middleware"
	"github.com/Antoni2487/Bodeguita/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type NotificacionesHandler struct{ svc *service.NotificacionService }

func NewNotificacionesHandler(svc *service.NotificacionService) *NotificacionesHandler {
	return &NotificacionesHandler{svc: svc}
}

// Feed godoc
// @Summary      Notificaciones del usuario autenticado
// @Description  Devuelve la pila de notificaciones, la más reciente primero. Leerlas no las consume.
// @Tags         notificaciones
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.NotificacionResponse
// @Router       /v1/notificaciones [get]
func (h *NotificacionesHandler) Feed(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	c.JSON(http.StatusOK, h.svc.Feed(usuarioID))
}

// MarcarLeida godoc
// @Summary      Marcar notificación como leída
// @Tags         notificaciones
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID de la notificación"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/notificaciones/{id}/leida [patch]
func (h *NotificacionesHandler) MarcarLeida(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	notificacionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.MarcarLeida(c.Request.Context(), usuarioID, notificacionID); err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Notificacion no encontrada"))
		return
	}
	c.Status(http.StatusNoContent)
}
