package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/truck-tco-calculator/internal/dto"
	"github.com/anyulbade/truck-tco-calculator/internal/middleware"
	"github.com/anyulbade/truck-tco-calculator/internal/service"
)

type CalculationHandler struct {
	svc *service.CalculationService
}

func NewCalculationHandler(svc *service.CalculationService) *CalculationHandler {
	return &CalculationHandler{svc: svc}
}

func (h *CalculationHandler) History(c *gin.Context) {
	limit := dto.ParseLimit(c)
	page := dto.ParsePagination(c)

	history, err := h.svc.History(c.Request.Context(), middleware.SessionFrom(c), limit)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.HistoryResponse{
		Authenticated: history.Authenticated,
		Account:       history.Account,
		Local:         dto.Paginate(history.Local, page),
		Pagination:    dto.NewPagination(page.Page, page.PageSize, len(history.Local)),
	})
}

func (h *CalculationHandler) Save(c *gin.Context) {
	var req dto.SaveCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	out, err := h.svc.Save(c.Request.Context(), middleware.SessionFrom(c), service.SaveRequest{
		Name:     req.Name,
		Notes:    req.Notes,
		Corridor: req.Corridor,
		Inputs:   req.Inputs,
		Results:  req.Results,
	})
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusCreated
	if !out.Success {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.SaveResponse{
		Success:  out.Success,
		ID:       out.ID,
		Location: out.Location,
		Degraded: out.Degraded,
		Message:  out.Message,
	})
}

func (h *CalculationHandler) Load(c *gin.Context) {
	var req dto.LoadCalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	loaded, err := h.svc.Load(req.Record())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, loaded)
}

func (h *CalculationHandler) UpdateNotes(c *gin.Context) {
	var req dto.UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	if err := h.svc.UpdateNotes(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), req.Notes); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CalculationHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.SessionFrom(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
