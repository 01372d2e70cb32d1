package http

import (
	"github.com/gin-gonic/gin"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/artists")

	group.GET("", h.List)
	group.GET("/:id", h.Get)

	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.GET("/me", h.GetMe)
		authed.PATCH("/me", auth.RequireRole(auth.RoleArtist), h.UpdateMe)
	}
}
