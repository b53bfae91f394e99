package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nstepanov-hw/shop-api/internal/models"
)

type CartStore struct {
	DB *gorm.DB
}

// CartFilter bounds are inclusive; quantity bounds compare the sum of line
// quantities per cart.
type CartFilter struct {
	Offset      int
	Limit       int
	MinPrice    *float64
	MaxPrice    *float64
	MinQuantity *uint
	MaxQuantity *uint
}

func (f CartFilter) validate() error {
	if f.Offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0", ErrInvalidArgument)
	}
	if f.Limit < 1 {
		return fmt.Errorf("%w: limit must be >= 1", ErrInvalidArgument)
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return fmt.Errorf("%w: min_price must be >= 0", ErrInvalidArgument)
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return fmt.Errorf("%w: max_price must be >= 0", ErrInvalidArgument)
	}
	return nil
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Order("cart_lines.line_id ASC")
}

// Create stores a new empty cart with price 0.
func (s *CartStore) Create(ctx context.Context) (*models.Cart, error) {
	cart := models.Cart{Items: []models.CartLine{}, Price: 0}
	if err := s.DB.WithContext(ctx).Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartStore) Get(ctx context.Context, id uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.DB.WithContext(ctx).Preload("Items", preloadLines).First(&cart, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	return &cart, nil
}

// List loads carts in insertion order, filters, then slices. The quantity
// bounds need per-cart line sums, so filtering happens over the loaded rows.
func (s *CartStore) List(ctx context.Context, f CartFilter) ([]models.Cart, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	var carts []models.Cart
	err := s.DB.WithContext(ctx).Preload("Items", preloadLines).Order("id ASC").Find(&carts).Error
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Cart, 0, len(carts))
	for _, cart := range carts {
		if cart.Items == nil {
			cart.Items = []models.CartLine{}
		}
		if f.MinPrice != nil && cart.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && cart.Price > *f.MaxPrice {
			continue
		}
		var total uint
		for _, line := range cart.Items {
			total += line.Quantity
		}
		if f.MinQuantity != nil && total < *f.MinQuantity {
			continue
		}
		if f.MaxQuantity != nil && total > *f.MaxQuantity {
			continue
		}
		filtered = append(filtered, cart)
	}

	if f.Offset >= len(filtered) {
		return []models.Cart{}, nil
	}
	end := f.Offset + f.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[f.Offset:end], nil
}

// AddItem links an item into a cart: an existing line gets quantity+1,
// otherwise a new line with quantity 1 is appended. The cart price grows by
// the item's current unit price; later item price changes do not revisit it.
// The whole read-modify-write runs in one transaction.
func (s *CartStore) AddItem(ctx context.Context, cartID, itemID uint) (*models.Cart, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.First(&cart, cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("cart %d: %w", cartID, ErrNotFound)
			}
			return err
		}

		var item models.Item
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("item %d: %w", itemID, ErrNotFound)
			}
			return err
		}
		if item.Deleted {
			return fmt.Errorf("item %d: %w", itemID, ErrNotFound)
		}

		var line models.CartLine
		res := tx.Where("cart_id = ? AND item_id = ?", cartID, itemID).First(&line)
		if res.Error == nil {
			line.Quantity += 1
			if err := tx.Save(&line).Error; err != nil {
				return err
			}
		} else if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			line = models.CartLine{
				CartID:    cartID,
				ItemID:    item.ID,
				Name:      item.Name,
				Quantity:  1,
				Available: !item.Deleted,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		} else {
			return res.Error
		}

		return tx.Model(&cart).Update("price", gorm.Expr("price + ?", item.Price)).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, cartID)
}
