package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/anyulbade/truck-tco-calculator/internal/middleware"
)

type Handlers struct {
	Health      *HealthHandler
	Corridor    *CorridorHandler
	TCO         *TCOHandler
	Session     *SessionHandler
	Calculation *CalculationHandler
}

func RegisterRoutes(router *gin.Engine, h Handlers, sessions middleware.SessionChecker) {
	router.GET("/health", h.Health.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/corridors", h.Corridor.List)
		api.GET("/corridors/:id/defaults", h.Corridor.Defaults)
		api.POST("/tco/calculate", h.TCO.Calculate)
		api.POST("/tco/report", h.TCO.Report)
		api.GET("/auth/login", h.Session.Login)
		api.POST("/calculations/load", h.Calculation.Load)
	}

	authed := api.Group("", middleware.Session(sessions))
	{
		authed.GET("/session", h.Session.Get)
		authed.GET("/calculations", h.Calculation.History)
		authed.POST("/calculations", h.Calculation.Save)
		authed.PATCH("/calculations/:id/notes", h.Calculation.UpdateNotes)
		authed.DELETE("/calculations/:id", h.Calculation.Delete)
	}
}
