package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/pkg/jwtutil"
	"github.com/tappyimob/tappy-imob/pkg/logger"
	"github.com/tappyimob/tappy-imob/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler issues session tokens
type AuthHandler struct {
	db         *gorm.DB
	jwt        *jwtutil.JWTUtil
	cookieName string
	sessionTTL time.Duration
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(db *gorm.DB, jwt *jwtutil.JWTUtil, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{db: db, jwt: jwt, cookieName: cookieName, sessionTTL: sessionTTL}
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// Login verifies the credentials of an active user and returns a session token
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		prometheus.RecordLogin("invalid_request")
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		prometheus.RecordLogin("invalid_request")
		return badRequest(c, err)
	}

	// Find user by email
	var user model.User
	err := h.db.WithContext(c.Request().Context()).Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn("Login for unknown email", zap.String("email", req.Email))
		prometheus.RecordLogin("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Credenciais inválidas"})
	}
	if err != nil {
		log.Error("Failed to load user for login", zap.Error(err))
		prometheus.RecordLogin("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro interno do servidor"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(req.Senha)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordLogin("invalid_credentials")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Credenciais inválidas"})
	}

	if !user.Active() {
		log.Warn("Login by inactive user", zap.String("user_id", user.ID), zap.String("status", string(user.Status)))
		prometheus.RecordLogin("inactive")
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Usuário inativo"})
	}

	token, err := h.jwt.GenerateToken(user.Email, user.ID, string(user.Role))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordLogin("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro interno do servidor"})
	}

	// Set the session cookie for browser clients
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(h.sessionTTL),
	})

	prometheus.RecordLogin("success")
	log.Info("User logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))

	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":    user.ID,
			"nome":  user.Nome,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Sessão encerrada"})
}
