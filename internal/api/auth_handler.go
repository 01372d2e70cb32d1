package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/veloria-studio/session-booking-backend/internal/artist"
	"github.com/veloria-studio/session-booking-backend/internal/auth"
	"github.com/veloria-studio/session-booking-backend/internal/professional"
	"github.com/veloria-studio/session-booking-backend/internal/user"
)

type AuthHandler struct {
	userService   user.Service
	artistService artist.Service
	proService    professional.Service
	jwtManager    *auth.JWTManager
	logger        *zap.Logger
}

func NewAuthHandler(
	userService user.Service,
	artistService artist.Service,
	proService professional.Service,
	jwtManager *auth.JWTManager,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		artistService: artistService,
		proService:    proService,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

//
// POST /v1/auth/register
//

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	role := auth.Role(req.Role)

	u, err := h.userService.Register(ctx, req.Email, req.Password, req.DisplayName, role)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrEmailAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": "email already used"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	// The role profile is created together with the account so the user can
	// act immediately after registering.
	var profileID string
	switch role {
	case auth.RoleArtist:
		a, err := h.artistService.Create(ctx, artist.CreateRequest{
			UserID:    u.ID,
			StageName: req.StageName,
			Genres:    req.Genres,
		})
		if err != nil {
			h.logger.Error("artist profile creation failed", zap.String("user_id", u.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create artist profile"})
			return
		}
		profileID = a.ID
	case auth.RoleProfessional:
		p, err := h.proService.Create(ctx, professional.CreateRequest{
			UserID:         u.ID,
			Specialization: req.Specialization,
			Skills:         req.Skills,
		})
		if err != nil {
			h.logger.Error("professional profile creation failed", zap.String("user_id", u.ID), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		profileID = p.ID
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		User:      NewUserResponse(u),
		ProfileID: profileID,
	})
}

//
// POST /v1/auth/login
//

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ctx := c.Request.Context()

	u, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		h.logger.Error("token generation failed", zap.String("user_id", u.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        NewUserResponse(u),
	})
}

//
// GET /v1/me
//

func (h *AuthHandler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{User: NewUserResponse(u)})
}

// UpdateMe updates the profile of the authenticated user.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	u, err := h.userService.UpdateProfile(c.Request.Context(), auth.GetUserID(c), user.UpdateProfileRequest{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Location:    req.Location,
		Phone:       req.Phone,
		Website:     req.Website,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		h.logger.Error("failed to update profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{User: NewUserResponse(u)})
}
