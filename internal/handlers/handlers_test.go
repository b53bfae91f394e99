package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nstepanov-hw/shop-api/internal/handlers"
	"github.com/nstepanov-hw/shop-api/internal/models"
	"github.com/nstepanov-hw/shop-api/internal/store"
	httpserver "github.com/nstepanov-hw/shop-api/internal/transport/http"
	"github.com/nstepanov-hw/shop-api/internal/users"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Users *users.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.Cart{}, &models.CartLine{}, &models.User{}))

	userService := users.NewService(&store.UserStore{DB: db}, users.PasswordLongerThan8)

	e := echo.New()
	deps := httpserver.Deps{
		Users:         userService,
		MathHandler:   &handlers.MathHandler{},
		ItemHandler:   &handlers.ItemHandler{Store: &store.ItemStore{DB: db}},
		CartHandler:   &handlers.CartHandler{Store: &store.CartStore{DB: db}},
		UserHandler:   &handlers.UserHandler{Users: userService, JWTSecret: []byte("test_secret")},
		SearchHandler: &handlers.SearchHandler{},
	}
	httpserver.Register(e, &deps)

	return &testEnv{T: t, E: e, DB: db, Users: userService}
}

type reqOption func(*http.Request)

func withBasicAuth(username, password string) reqOption {
	return func(r *http.Request) { r.SetBasicAuth(username, password) }
}

func (env *testEnv) do(method, path string, body interface{}, opts ...reqOption) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
