package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/nstepanov-hw/shop-api/internal/events"
	"github.com/nstepanov-hw/shop-api/internal/logging"
	"github.com/nstepanov-hw/shop-api/internal/models"
	"github.com/nstepanov-hw/shop-api/internal/service/search"
	"github.com/nstepanov-hw/shop-api/internal/store"
)

type ItemHandler struct {
	Store    *store.ItemStore
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (h *ItemHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "item_events", fmt.Sprint(event["itemID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *ItemHandler) indexItem(c echo.Context, item *models.Item) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexItem(ctx, h.ES, h.Index, item); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "item.create")

	var req struct {
		ID    uint    `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_item_failed", "status", 400, "reason", "invalid body")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Store.Create(c.Request().Context(), req.ID, req.Name, req.Price)
	if err != nil {
		l.Warn("create_item_failed", "error", err)
		return domainError(err)
	}

	h.publish(c, map[string]any{
		"type":   "item_created",
		"itemID": item.ID,
		"name":   item.Name,
	})
	h.indexItem(c, item)

	l.Info("create_item_success", "itemID", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	item, err := h.Store.Get(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) GetItems(c echo.Context) error {
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

	filter := store.ItemFilter{
		Offset:      offset,
		Limit:       limit,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		ShowDeleted: c.QueryParam("show_deleted") == "true",
	}
	items, err := h.Store.List(c.Request().Context(), filter)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) PatchItem(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "item.patch")

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var patch store.ItemPatch
	if err := c.Bind(&patch); err != nil {
		l.Warn("patch_item_failed", "status", 400, "reason", "invalid body")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Store.Patch(c.Request().Context(), id, patch)
	if err != nil {
		l.Warn("patch_item_failed", "itemID", id, "error", err)
		return domainError(err)
	}

	h.publish(c, map[string]any{
		"type":   "item_updated",
		"itemID": item.ID,
		"name":   item.Name,
	})
	h.indexItem(c, item)

	l.Info("patch_item_success", "itemID", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) ReplaceItem(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "item.replace")

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Name  *string  `json:"name"`
		Price *float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("replace_item_failed", "status", 400, "reason", "invalid body")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == nil || req.Price == nil {
		l.Warn("replace_item_failed", "status", 422, "reason", "name and price are required")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "name and price are required")
	}

	item, err := h.Store.Replace(c.Request().Context(), id, *req.Name, *req.Price)
	if err != nil {
		l.Warn("replace_item_failed", "itemID", id, "error", err)
		return domainError(err)
	}

	h.publish(c, map[string]any{
		"type":   "item_updated",
		"itemID": item.ID,
		"name":   item.Name,
	})
	h.indexItem(c, item)

	l.Info("replace_item_success", "itemID", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "item.delete")

	id, err := paramUint(c, "id")
	if err != nil {
		return err
	}

	already, err := h.Store.SoftDelete(c.Request().Context(), id)
	if err != nil {
		l.Warn("delete_item_failed", "itemID", id, "error", err)
		return domainError(err)
	}
	if already {
		return c.JSON(http.StatusOK, echo.Map{"status": "already deleted"})
	}

	h.publish(c, map[string]any{
		"type":   "item_deleted",
		"itemID": id,
	})
	if h.ES != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()
		if err := search.RemoveItem(ctx, h.ES, h.Index, id); err != nil {
			c.Logger().Errorf("ES delete error: %v", err)
		}
	}

	l.Info("delete_item_success", "itemID", id)
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}
