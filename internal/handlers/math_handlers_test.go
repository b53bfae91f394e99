package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFactorialEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/factorial?n=5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Result int64 `json:"result"`
	}
	decode(t, rec, &resp)
	require.EqualValues(t, 120, resp.Result)

	rec = env.do(http.MethodGet, "/factorial?n=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	require.EqualValues(t, 1, resp.Result)

	rec = env.do(http.MethodGet, "/factorial", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(http.MethodGet, "/factorial?n=-1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/factorial?n=abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFactorialBigResult(t *testing.T) {
	env := newTestEnv(t)

	// 25! does not fit in 64 bits and must arrive undamaged
	rec := env.do(http.MethodGet, "/factorial?n=25", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "15511210043330985984000000")
}

func TestFibonacciEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/fibonacci/10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Result int64 `json:"result"`
	}
	decode(t, rec, &resp)
	require.EqualValues(t, 55, resp.Result)

	rec = env.do(http.MethodGet, "/fibonacci?n=7", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	require.EqualValues(t, 13, resp.Result)

	rec = env.do(http.MethodGet, "/fibonacci/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	require.EqualValues(t, 0, resp.Result)

	rec = env.do(http.MethodGet, "/fibonacci", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.do(http.MethodGet, "/fibonacci/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/fibonacci?n=-3", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeanEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/mean", []float64{2, 4, 6})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Result float64 `json:"result"`
	}
	decode(t, rec, &resp)
	require.Equal(t, 4.0, resp.Result)

	rec = env.do(http.MethodGet, "/mean", []float64{1, 2})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	require.Equal(t, 1.5, resp.Result)

	rec = env.do(http.MethodPost, "/mean", []float64{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/mean", []string{"not", "numbers"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
