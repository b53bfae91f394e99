package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type userBody struct {
	UID      uint   `json:"uid"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func (env *testEnv) registerUser(username, password string) userBody {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/user-register", map[string]any{
		"username":  username,
		"name":      "Test User",
		"birthdate": "1990-01-01T00:00:00Z",
		"password":  password,
	})
	require.Equal(env.T, http.StatusOK, rec.Code)
	var user userBody
	decode(env.T, rec, &user)
	return user
}

func TestUserRegister(t *testing.T) {
	env := newTestEnv(t)

	user := env.registerUser("alice", "longenough123")
	require.EqualValues(t, 1, user.UID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "user", user.Role)

	rec := env.do(http.MethodPost, "/user-register", map[string]any{
		"username": "alice",
		"name":     "Another Alice",
		"password": "longenough456",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/user-register", map[string]any{
		"username": "bob",
		"name":     "Bob",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserGet(t *testing.T) {
	env := newTestEnv(t)

	alice := env.registerUser("alice", "longenough123")
	auth := withBasicAuth("alice", "longenough123")

	rec := env.do(http.MethodPost, fmt.Sprintf("/user-get?id=%d", alice.UID), nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	var user userBody
	decode(t, rec, &user)
	require.Equal(t, "alice", user.Username)

	rec = env.do(http.MethodPost, "/user-get?username=alice", nil, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &user)
	require.Equal(t, alice.UID, user.UID)

	// exactly one of id and username must be supplied
	rec = env.do(http.MethodPost, "/user-get?id=1&username=alice", nil, auth)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/user-get", nil, auth)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/user-get?id=999", nil, auth)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/user-get?id=1", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/user-get?id=1", nil, withBasicAuth("alice", "wrongpassword"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserPromote(t *testing.T) {
	env := newTestEnv(t)

	alice := env.registerUser("alice", "longenough123")
	root := env.registerUser("root", "longenough123")
	require.NoError(t, env.Users.GrantAdmin(t.Context(), root.UID))

	// a plain user cannot promote anyone
	rec := env.do(http.MethodPost, fmt.Sprintf("/user-promote?id=%d", alice.UID), nil,
		withBasicAuth("alice", "longenough123"))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(http.MethodPost, fmt.Sprintf("/user-promote?id=%d", alice.UID), nil,
		withBasicAuth("root", "longenough123"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, fmt.Sprintf("/user-get?id=%d", alice.UID), nil,
		withBasicAuth("alice", "longenough123"))
	require.Equal(t, http.StatusOK, rec.Code)
	var user userBody
	decode(t, rec, &user)
	require.Equal(t, "admin", user.Role)

	rec = env.do(http.MethodPost, "/user-promote?id=999", nil,
		withBasicAuth("root", "longenough123"))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/user-promote", nil,
		withBasicAuth("root", "longenough123"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserLogin(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser("alice", "longenough123")

	rec := env.do(http.MethodPost, "/user-login", map[string]any{
		"username": "alice",
		"password": "longenough123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		AccessToken string `json:"access_token"`
		IsAdmin     bool   `json:"is_admin"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	require.False(t, resp.IsAdmin)

	rec = env.do(http.MethodPost, "/user-login", map[string]any{
		"username": "alice",
		"password": "wrongpassword",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
