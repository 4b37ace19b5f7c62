package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Antoni2487/Bodeguita/internal/apierror"
	"github.com/Antoni2487/Bodeguita/internal/dto"
	"github.com/Antoni2487/Bodeguita/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const precioCacheTTL = 5 * time.Minute

// PreciosHandler serves the public price check endpoint.
// No authentication required, no side effects whatsoever.
type PreciosHandler struct {
	productos repository.ProductoBodegaRepository
	bodegas   repository.BodegaRepository
	rdb       *redis.Client
}

func NewPreciosHandler(productos repository.ProductoBodegaRepository, bodegas repository.BodegaRepository, rdb *redis.Client) *PreciosHandler {
	return &PreciosHandler{productos: productos, bodegas: bodegas, rdb: rdb}
}

// GetPrecio godoc
// @Summary Consulta pública de precio y stock de un producto en una bodega
// @Tags precio
// @Produce json
// @Param id path string true "UUID del producto de bodega"
// @Success 200 {object} dto.PrecioResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{id} [get]
func (h *PreciosHandler) GetPrecio(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	ctx := c.Request.Context()
	cacheKey := "precio:" + id.String()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PrecioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss, query DB
	pb, err := h.productos.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	resp := dto.PrecioResponse{
		Precio:          pb.Precio,
		StockDisponible: pb.Stock,
	}
	if pb.Producto != nil {
		resp.Producto = pb.Producto.Nombre
	}
	if bodega, err := h.bodegas.FindByID(ctx, pb.BodegaID); err == nil {
		resp.Bodega = bodega.Nombre
	}

	// 3. Populate cache, best effort, short TTL because stock moves fast
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precioCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
