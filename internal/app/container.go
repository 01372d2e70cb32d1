package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/veloria-studio/session-booking-backend/internal/api"
	"github.com/veloria-studio/session-booking-backend/internal/artist"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/availability"
	"github.com/veloria-studio/session-booking-backend/internal/booking"
	"github.com/veloria-studio/session-booking-backend/internal/demo"
	"github.com/veloria-studio/session-booking-backend/internal/notification"
	"github.com/veloria-studio/session-booking-backend/internal/pkg/storage"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
	"github.com/veloria-studio/session-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	StoragePath  string
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Policy       booking.Policy
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	store, err := storage.NewLocal(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init storage failed: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Artist Module
	artistRepo := artist.NewPgxRepository(cfg.DBPool)
	artistService := artist.NewService(artistRepo)

	// Professional Module
	proRepo := professional.NewPgxRepository(cfg.DBPool)
	proService := professional.NewService(proRepo)

	// Availability Module
	availRepo := availability.NewPgxRepository(cfg.DBPool)
	availService := availability.NewService(availRepo)

	// Notification Module
	notifRepo := notification.NewPgxRepository(cfg.DBPool)
	notifService := notification.NewService(notifRepo)
	notifier := notification.NewBookingNotifier(notifRepo, artistService, proService, cfg.Logger)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, proService, availService, notifier, cfg.Policy)

	// Demo Module
	demoRepo := demo.NewPgxRepository(cfg.DBPool)
	demoService := demo.NewService(demoRepo, store, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ArtistService:  artistService,
		ProService:     proService,
		AvailService:   availService,
		BookingService: bookingService,
		NotifService:   notifService,
		DemoService:    demoService,
		JWTManager:     jwtManager,
		Logger:         cfg.Logger,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		BookingService: bookingService,
	}, nil
}
