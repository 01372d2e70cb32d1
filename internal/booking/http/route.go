package http

import (
	"github.com/gin-gonic/gin"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	group.GET("/free-slots", h.FreeSlots)

	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.GET("", h.List)
		authed.GET("/:id", h.Get)
		authed.GET("/conflict-check", h.CheckConflict)
		authed.POST("", auth.RequireRole(auth.RoleArtist), h.Create)
		authed.PATCH("/:id", h.Reschedule)
		authed.PATCH("/:id/status", h.UpdateStatus)
	}
}
