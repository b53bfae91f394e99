package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nstepanov-hw/shop-api/internal/models"
)

type ItemStore struct {
	DB *gorm.DB
}

// ItemFilter describes a filtered, paginated listing. Nil price bounds mean
// no bound; bounds are inclusive.
type ItemFilter struct {
	Offset      int
	Limit       int
	MinPrice    *float64
	MaxPrice    *float64
	ShowDeleted bool
}

// ItemPatch carries a partial update. A nil field means "leave as is", which
// is distinct from setting a zero value.
type ItemPatch struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

func (f ItemFilter) validate() error {
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

// Create stores a new item. A zero id lets the database assign the next
// sequential one; a caller-supplied id must not already be taken, deleted
// rows included.
func (s *ItemStore) Create(ctx context.Context, id uint, name string, price float64) (*models.Item, error) {
	if price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrInvalidArgument)
	}

	item := models.Item{ID: id, Name: name, Price: price}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if id != 0 {
			var existing models.Item
			if err := tx.First(&existing, id).Error; err == nil {
				return fmt.Errorf("item %d: %w", id, ErrDuplicateKey)
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Get returns the item, treating a soft-deleted row as absent.
func (s *ItemStore) Get(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := s.DB.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if item.Deleted {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return &item, nil
}

// List filters first, then slices [offset, offset+limit). Slicing past the
// end yields fewer or zero rows. Insertion order is id order.
func (s *ItemStore) List(ctx context.Context, f ItemFilter) ([]models.Item, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	q := s.DB.WithContext(ctx).Model(&models.Item{}).Order("id ASC")
	if !f.ShowDeleted {
		q = q.Where("deleted = ?", false)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	items := make([]models.Item, 0, f.Limit)
	if err := q.Offset(f.Offset).Limit(f.Limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Patch applies only the supplied fields. A soft-deleted target is rejected.
func (s *ItemStore) Patch(ctx context.Context, id uint, patch ItemPatch) (*models.Item, error) {
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrInvalidArgument)
	}

	var item models.Item
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("item %d: %w", id, ErrNotFound)
			}
			return err
		}
		if item.Deleted {
			return fmt.Errorf("item %d: %w", id, ErrAlreadyDeleted)
		}
		if patch.Name != nil {
			item.Name = *patch.Name
		}
		if patch.Price != nil {
			item.Price = *patch.Price
		}
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Replace overwrites name and price, keeping the id and the stored deleted
// flag untouched.
func (s *ItemStore) Replace(ctx context.Context, id uint, name string, price float64) (*models.Item, error) {
	if price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrInvalidArgument)
	}

	var item models.Item
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("item %d: %w", id, ErrNotFound)
			}
			return err
		}
		item.Name = name
		item.Price = price
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SoftDelete marks the item deleted, never removing the row. The second
// delete of the same item reports alreadyDeleted instead of failing.
func (s *ItemStore) SoftDelete(ctx context.Context, id uint) (alreadyDeleted bool, err error) {
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("item %d: %w", id, ErrNotFound)
			}
			return err
		}
		if item.Deleted {
			alreadyDeleted = true
			return nil
		}
		return tx.Model(&item).Update("deleted", true).Error
	})
	if err != nil {
		return false, err
	}
	return alreadyDeleted, nil
}
