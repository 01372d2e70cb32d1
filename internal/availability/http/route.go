package http

import (
	"github.com/gin-gonic/gin"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/availability")

	group.GET("", h.List)
	group.GET("/calendar", h.Calendar)

	authed := group.Group("")
	authed.Use(authMiddleware, auth.RequireRole(auth.RoleProfessional))
	{
		authed.GET("/mine", h.ListMine)
		authed.POST("", h.Create)
		authed.PATCH("/:id/active", h.SetActive)
		authed.DELETE("/:id", h.Delete)
	}
}
