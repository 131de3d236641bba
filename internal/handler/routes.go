package handler

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tappyimob/tappy-imob/internal/guard"
	"github.com/tappyimob/tappy-imob/internal/middleware"
	"github.com/tappyimob/tappy-imob/pkg/jwtutil"
	"gorm.io/gorm"
)

// Dependencies are the collaborators shared by all handlers
type Dependencies struct {
	DB         *gorm.DB
	JWT        *jwtutil.JWTUtil
	CookieName string
	SessionTTL time.Duration
}

// RegisterRoutes wires every endpoint on e
func RegisterRoutes(e *echo.Echo, deps Dependencies) {
	e.Validator = NewValidator()

	g := guard.New(deps.DB)
	auth := NewAuthHandler(deps.DB, deps.JWT, deps.CookieName, deps.SessionTTL)
	clientes := NewClienteHandler(deps.DB, g)
	corretores := NewCorretorHandler(deps.DB, g)
	integracoes := NewIntegracaoHandler(deps.DB, g)

	// Public routes
	e.GET("/health", HealthCheck)
	e.POST("/auth/login", auth.Login)
	e.POST("/auth/logout", auth.Logout)

	// Secured routes - require a session
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(deps.JWT, deps.CookieName))

	api.GET("/cliente", clientes.ListClientes)
	api.GET("/cliente/:id", clientes.GetCliente)
	api.PATCH("/cliente/:id", clientes.UpdateCliente)
	api.DELETE("/cliente/:id", clientes.DeleteCliente)

	api.GET("/corretor/:id", corretores.GetCorretor)
	api.PATCH("/corretor/:id", corretores.UpdateCorretor)
	api.DELETE("/corretor/:id", corretores.DeleteCorretor)

	api.GET("/ia/integracoes", integracoes.ListIntegracoes)
	api.PATCH("/ia/integracoes/:id/status", integracoes.UpdateStatus)
}
