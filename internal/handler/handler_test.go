package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/tappyimob/tappy-imob/internal/model"
	"github.com/tappyimob/tappy-imob/internal/testutil"
	"github.com/tappyimob/tappy-imob/pkg/jwtutil"
	"gorm.io/gorm"
)

const testCookie = "tappy_session"

type testServer struct {
	e   *echo.Echo
	db  *gorm.DB
	jwt *jwtutil.JWTUtil
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.NewDB(t)
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	e := echo.New()
	RegisterRoutes(e, Dependencies{DB: db, JWT: jwt, CookieName: testCookie, SessionTTL: time.Hour})

	return &testServer{e: e, db: db, jwt: jwt}
}

func (s *testServer) token(t *testing.T, u model.User) string {
	t.Helper()
	token, err := s.jwt.GenerateToken(u.Email, u.ID, string(u.Role))
	require.NoError(t, err)
	return token
}

// do sends a request with an optional bearer token and JSON body
func (s *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := newJSONRequest(method, path, body)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	return serve(s, req)
}

func newJSONRequest(method, path, body string) *http.Request {
	if body == "" {
		return httptest.NewRequest(method, path, nil)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func serve(s *testServer, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
