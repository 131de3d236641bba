//go:build integration

package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/internal/testutil"
	"github.com/tappyimob/tappy-imob/pkg/config"
	"github.com/tappyimob/tappy-imob/pkg/database"
	"github.com/tappyimob/tappy-imob/pkg/jwtutil"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

func newPostgresServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tappy_imob"),
		postgres.WithUsername("tappy"),
		postgres.WithPassword("tappy"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := database.InitDB(&config.DBConfig{
		Host:            host,
		Port:            port.Port(),
		User:            "tappy",
		Password:        "tappy",
		DBName:          "tappy_imob",
		SSLMode:         "disable",
		MaxIdleConns:    2,
		MaxOpenConns:    5,
		ConnMaxLifetime: time.Minute,
		LogLevel:        logger.Silent,
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.MigrateModels(db, model.All()...))

	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})
	e := echo.New()
	RegisterRoutes(e, Dependencies{DB: db, JWT: jwt, CookieName: testCookie, SessionTTL: time.Hour})

	return &testServer{e: e, db: db, jwt: jwt}
}

func TestPostgresTenantIsolation(t *testing.T) {
	s := newPostgresServer(t)

	t1 := testutil.CreateTenant(t, s.db, "Imob Um")
	t2 := testutil.CreateTenant(t, s.db, "Imob Dois")
	cliente := testutil.CreateCliente(t, s.db, t1, "Carla")
	own := testutil.CreateCorretor(t, s.db, t1, "Paula")
	foreign := testutil.CreateCorretor(t, s.db, t2, "Outro")
	integracao := testutil.CreateIntegracao(t, s.db, t2, model.TipoWhatsApp, model.StatusAtiva)

	token := s.token(t, t1.Owner)

	rec := s.do(t, http.MethodPatch, "/api/cliente/"+cliente.ID, token,
		`{"telefone":"11999999999","corretorId":"`+foreign.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/cliente/"+cliente.ID, token, `{"corretorId":"`+own.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var stored model.Cliente
	require.NoError(t, s.db.Preload("User").Preload("Corretores").First(&stored, "id = ?", cliente.ID).Error)
	assert.Equal(t, "11999999999", stored.User.Telefone)
	require.Len(t, stored.Corretores, 1)
	assert.Equal(t, own.ID, stored.Corretores[0].ID)

	rec = s.do(t, http.MethodPatch, "/api/ia/integracoes/"+integracao.ID+"/status", token, `{"status":"PAUSADA"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/ia/integracoes", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"integracoes":[]}`, rec.Body.String())
}
