package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/truck-tco-calculator/internal/dto"
	"github.com/anyulbade/truck-tco-calculator/internal/middleware"
	"github.com/anyulbade/truck-tco-calculator/internal/service"
	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

type CorridorHandler struct {
	svc *service.CalculationService
}

func NewCorridorHandler(svc *service.CalculationService) *CorridorHandler {
	return &CorridorHandler{svc: svc}
}

func (h *CorridorHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CorridorsResponse{Corridors: tco.Corridors()})
}

// Defaults returns the full input set the wizard starts from for a corridor.
func (h *CorridorHandler) Defaults(c *gin.Context) {
	id := c.Param("id")
	if _, ok := tco.LookupCorridor(id); !ok {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "unknown corridor: " + id})
		return
	}
	c.JSON(http.StatusOK, h.svc.Defaults(id))
}
