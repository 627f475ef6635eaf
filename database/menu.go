package database

import (
	"context"

	"bistro-backend/models"

	"gorm.io/gorm"
)

type Menu struct {
	db *gorm.DB
}

func (s *Menu) List(ctx context.Context) ([]models.MenuItem, error) {
	items := []models.MenuItem{}
	if err := s.db.WithContext(ctx).Order("category, name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Menu) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (s *Menu) Create(ctx context.Context, item *models.MenuItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// Update overwrites the editable fields of the item with id, zero values
// included. It returns the number of matched rows.
func (s *Menu) Update(ctx context.Context, id string, item *models.MenuItem) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":     item.Name,
		"category": item.Category,
		"price":    item.Price,
		"recipe":   item.Recipe,
		"image":    item.Image,
	})
	return res.RowsAffected, res.Error
}

func (s *Menu) Delete(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{})
	return res.RowsAffected, res.Error
}

type Reviews struct {
	db *gorm.DB
}

func (s *Reviews) List(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := s.db.WithContext(ctx).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *Reviews) Create(ctx context.Context, review *models.Review) error {
	return s.db.WithContext(ctx).Create(review).Error
}
