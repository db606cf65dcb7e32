package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/coachify/internal/services"
	"github.com/yoockh/coachify/internal/utils"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// LoginRequest accepts the OAuth2 password form (username, password) as well
// as JSON with either username or email.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	const op = "AuthHandler.Login"

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	email := strings.TrimSpace(req.Username)
	if email == "" {
		email = strings.TrimSpace(req.Email)
	}
	if email == "" || req.Password == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "username and password are required", nil))
		return
	}

	token, err := h.svc.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
