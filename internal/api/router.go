package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veloria-studio/session-booking-backend/internal/artist"
	artistHttp "github.com/veloria-studio/session-booking-backend/internal/artist/http"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/availability"
	availHttp "github.com/veloria-studio/session-booking-backend/internal/availability/http"
	"github.com/veloria-studio/session-booking-backend/internal/booking"
	bookingHttp "github.com/veloria-studio/session-booking-backend/internal/booking/http"
	"github.com/veloria-studio/session-booking-backend/internal/demo"
	demoHttp "github.com/veloria-studio/session-booking-backend/internal/demo/http"
	"github.com/veloria-studio/session-booking-backend/internal/notification"
	notifHttp "github.com/veloria-studio/session-booking-backend/internal/notification/http"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
	proHttp "github.com/veloria-studio/session-booking-backend/internal/professional/http"
	"github.com/veloria-studio/session-booking-backend/internal/user"
)

// Config bundles everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins in production

	UserService    user.Service
	ArtistService  artist.Service
	ProService     professional.Service
	AvailService   availability.Service
	BookingService booking.Service
	NotifService   notification.Service
	DemoService    demo.Service

	JWTManager *auth.JWTManager
	Logger     *zap.Logger
}

// NewRouter assembles middleware and registers every module's routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	authHandler := NewAuthHandler(cfg.UserService, cfg.ArtistService, cfg.ProService, cfg.JWTManager, cfg.Logger)
	artistHandler := artistHttp.NewHandler(cfg.ArtistService)
	proHandler := proHttp.NewHandler(cfg.ProService)
	availHandler := availHttp.NewHandler(cfg.AvailService, cfg.ProService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.ArtistService, cfg.ProService)
	notifHandler := notifHttp.NewHandler(cfg.NotifService)
	demoHandler := demoHttp.NewHandler(cfg.DemoService, cfg.ArtistService)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)
		v1.PATCH("/me", authMiddleware, authHandler.UpdateMe)

		artistHttp.RegisterRoutes(v1, artistHandler, authMiddleware)
		proHttp.RegisterRoutes(v1, proHandler, authMiddleware)
		availHttp.RegisterRoutes(v1, availHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		notifHttp.RegisterRoutes(v1, notifHandler, authMiddleware)
		demoHttp.RegisterRoutes(v1, demoHandler, authMiddleware)
	}

	return r
}
