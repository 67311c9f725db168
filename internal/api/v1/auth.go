package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tugohq/tugo/internal/api/dto"
	"github.com/tugohq/tugo/internal/config"
	ierr "github.com/tugohq/tugo/internal/errors"
	"github.com/tugohq/tugo/internal/logger"
	"github.com/tugohq/tugo/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
	cfg         *config.Configuration
}

func NewAuthHandler(cfg *config.Configuration, authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
		cfg:         cfg,
	}
}

// @Summary Login
// @Description Exchange operator credentials for a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.logger.Errorw("failed to log in", "error", err, "user_id", req.UserID)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
