package database

import (
	"context"
	"fmt"

	"bistro-backend/models"

	"gorm.io/gorm"
)

type Carts struct {
	db *gorm.DB
}

func (s *Carts) Add(ctx context.Context, item *models.CartItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Carts) Get(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (s *Carts) ListByEmail(ctx context.Context, email string) ([]models.CartItem, error) {
	items := []models.CartItem{}
	if err := s.db.WithContext(ctx).Where("email = ?", email).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Carts) Delete(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

type Payments struct {
	db *gorm.DB
}

// Record stores payment and removes the paid cart items in one
// transaction. Only cart items owned by the payer are removed. It returns
// the number of deleted cart items.
func (s *Payments) Record(ctx context.Context, payment *models.Payment) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		if len(payment.CartIDs) == 0 {
			return nil
		}
		res := tx.Where("id IN ? AND email = ?", payment.CartIDs, payment.Email).Delete(&models.CartItem{})
		if res.Error != nil {
			return fmt.Errorf("clear cart: %w", res.Error)
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *Payments) ListByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := s.db.WithContext(ctx).Where("email = ?", email).Order("date desc").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
