package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nstepanov-hw/shop-api/internal/events"
	"github.com/nstepanov-hw/shop-api/internal/logging"
	"github.com/nstepanov-hw/shop-api/internal/store"
)

type CartHandler struct {
	Store    *store.CartStore
	Producer *events.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["cartID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CartHandler) CreateCart(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.create")

	cart, err := h.Store.Create(c.Request().Context())
	if err != nil {
		l.Error("create_cart_failed", "error", err)
		return domainError(err)
	}

	h.publish(c, map[string]any{
		"type":   "cart_created",
		"cartID": cart.ID,
	})

	l.Info("create_cart_success", "cartID", cart.ID)
	return c.JSON(http.StatusCreated, echo.Map{"id": cart.ID})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	cart, err := h.Store.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, cart)
}

func (h *CartHandler) GetCarts(c echo.Context) error {
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		return err
	}
	minPrice, err := queryFloatPtr(c, "min_price")
	if err != nil {
		return err
	}
	maxPrice, err := queryFloatPtr(c, "max_price")
	if err != nil {
		return err
	}
	minQuantity, err := queryUintPtr(c, "min_quantity")
	if err != nil {
		return err
	}
	maxQuantity, err := queryUintPtr(c, "max_quantity")
	if err != nil {
		return err
	}

	filter := store.CartFilter{
		Offset:      offset,
		Limit:       limit,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		MinQuantity: minQuantity,
		MaxQuantity: maxQuantity,
	}
	carts, err := h.Store.List(c.Request().Context(), filter)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, carts)
}

func (h *CartHandler) AddItemToCart(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "cart.add_item")

	cartID, err := paramUint(c, "cart_id")
	if err != nil {
		return err
	}
	itemID, err := paramUint(c, "item_id")
	if err != nil {
		return err
	}

	cart, err := h.Store.AddItem(c.Request().Context(), cartID, itemID)
	if err != nil {
		l.Warn("add_item_failed", "cartID", cartID, "itemID", itemID, "error", err)
		return domainError(err)
	}

	h.publish(c, map[string]any{
		"type":   "cart_item_added",
		"cartID": cartID,
		"itemID": itemID,
		"price":  cart.Price,
	})

	l.Info("add_item_success", "cartID", cartID, "itemID", itemID)
	return c.JSON(http.StatusOK, cart)
}
