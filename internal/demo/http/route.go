package http

import (
	"github.com/gin-gonic/gin"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/demos")

	group.GET("", h.ListByArtist)
	group.GET("/:id/audio", h.StreamAudio)
	group.GET("/:id/cover", h.Cover)

	authed := group.Group("")
	authed.Use(authMiddleware, auth.RequireRole(auth.RoleArtist))
	{
		authed.GET("/mine", h.ListMine)
		authed.POST("", h.Upload)
		authed.DELETE("/:id", h.Delete)
	}
}
