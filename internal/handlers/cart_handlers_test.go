package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nstepanov-hw/shop-api/internal/models"
)

func (env *testEnv) createItem(name string, price float64) uint {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/item", map[string]any{"name": name, "price": price})
	require.Equal(env.T, http.StatusCreated, rec.Code)
	var item models.Item
	decode(env.T, rec, &item)
	return item.ID
}

func (env *testEnv) createCart() uint {
	env.T.Helper()
	rec := env.do(http.MethodPost, "/cart", nil)
	require.Equal(env.T, http.StatusCreated, rec.Code)
	var resp struct {
		ID uint `json:"id"`
	}
	decode(env.T, rec, &resp)
	return resp.ID
}

func TestCartFlow(t *testing.T) {
	env := newTestEnv(t)

	apple := env.createItem("apple", 5)
	pear := env.createItem("pear", 3)
	cartID := env.createCart()
	require.EqualValues(t, 1, cartID)

	rec := env.do(http.MethodGet, fmt.Sprintf("/cart/%d", cartID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cart models.Cart
	decode(t, rec, &cart)
	require.Equal(t, float64(0), cart.Price)
	require.Empty(t, cart.Items)

	for i := 0; i < 2; i++ {
		rec = env.do(http.MethodPost, fmt.Sprintf("/cart/%d/add/%d", cartID, apple), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	decode(t, rec, &cart)
	require.Len(t, cart.Items, 1)
	require.EqualValues(t, 2, cart.Items[0].Quantity)
	require.Equal(t, float64(10), cart.Price)

	rec = env.do(http.MethodPost, fmt.Sprintf("/cart/%d/add/%d", cartID, pear), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &cart)
	require.Len(t, cart.Items, 2)
	require.Equal(t, float64(13), cart.Price)
	require.Equal(t, "apple", cart.Items[0].Name)
	require.Equal(t, "pear", cart.Items[1].Name)
}

func TestCartAddErrors(t *testing.T) {
	env := newTestEnv(t)

	apple := env.createItem("apple", 5)
	cartID := env.createCart()

	rec := env.do(http.MethodPost, fmt.Sprintf("/cart/99/add/%d", apple), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, fmt.Sprintf("/cart/%d/add/99", cartID), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, fmt.Sprintf("/item/%d", apple), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, fmt.Sprintf("/cart/%d/add/%d", cartID, apple), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/cart/99", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/cart/abc/add/1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartListing(t *testing.T) {
	env := newTestEnv(t)

	cheap := env.createItem("cheap", 1)
	dear := env.createItem("dear", 100)

	first := env.createCart()
	for i := 0; i < 3; i++ {
		rec := env.do(http.MethodPost, fmt.Sprintf("/cart/%d/add/%d", first, cheap), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	second := env.createCart()
	rec := env.do(http.MethodPost, fmt.Sprintf("/cart/%d/add/%d", second, dear), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env.createCart()

	var carts []models.Cart

	rec = env.do(http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &carts)
	require.Len(t, carts, 3)

	rec = env.do(http.MethodGet, "/cart?min_price=50", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &carts)
	require.Len(t, carts, 1)
	require.Equal(t, second, carts[0].ID)

	rec = env.do(http.MethodGet, "/cart?min_quantity=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &carts)
	require.Len(t, carts, 1)
	require.Equal(t, first, carts[0].ID)

	rec = env.do(http.MethodGet, "/cart?max_quantity=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &carts)
	require.Len(t, carts, 1)

	rec = env.do(http.MethodGet, "/cart?offset=10&limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &carts)
	require.Empty(t, carts)

	rec = env.do(http.MethodGet, "/cart?limit=0", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/cart?min_quantity=-1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
