package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/truck-tco-calculator/internal/dto"
	"github.com/anyulbade/truck-tco-calculator/internal/service"
)

type TCOHandler struct {
	svc    *service.CalculationService
	report *service.ReportService
}

func NewTCOHandler(svc *service.CalculationService, report *service.ReportService) *TCOHandler {
	return &TCOHandler{svc: svc, report: report}
}

func (h *TCOHandler) Calculate(c *gin.Context) {
	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	in, res, err := h.svc.Calculate(req.Corridor, req.Inputs)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.CalculateResponse{Inputs: in, Results: res})
}

func (h *TCOHandler) Report(c *gin.Context) {
	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	in, res, err := h.svc.Calculate(req.Corridor, req.Inputs)
	if err != nil {
		c.Error(err)
		return
	}
	data := h.report.Build(in, res)

	switch c.DefaultQuery("format", "html") {
	case "json":
		c.JSON(http.StatusOK, data)
	case "html":
		html, err := h.report.RenderHTML(data)
		if err != nil {
			c.Error(err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	default:
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: "format must be html or json"})
	}
}
