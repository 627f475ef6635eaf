package database

import (
	"context"
	"fmt"

	"bistro-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Users is the identity store.
type Users struct {
	db *gorm.DB
}

// FindByEmail returns the user with exactly this email or ErrNotFound.
func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (s *Users) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Order("email").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Register inserts user unless one with the same email exists. It reports
// whether a row was created. Registration never changes an existing role,
// and concurrent registrations of one email create exactly one row.
// On a no-op user.ID is left empty.
func (s *Users) Register(ctx context.Context, user *models.User) (bool, error) {
	user.Role = ""
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(user)
	if res.Error != nil {
		return false, fmt.Errorf("create user: %w", res.Error)
	}
	if res.RowsAffected != 1 {
		user.ID = "" // the generated ID was never stored
		return false, nil
	}
	return true, nil
}

// Promote sets the admin role on the user with id. It returns the number of
// matched and modified rows.
func (s *Users) Promote(ctx context.Context, id string) (matched, modified int64, err error) {
	return s.promote(ctx, "id = ?", id)
}

// PromoteByEmail is Promote keyed by email.
func (s *Users) PromoteByEmail(ctx context.Context, email string) (int64, error) {
	_, modified, err := s.promote(ctx, "email = ?", email)
	return modified, err
}

func (s *Users) promote(ctx context.Context, query string, arg string) (int64, int64, error) {
	var matched, modified int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where(query, arg).Count(&matched).Error; err != nil {
			return err
		}
		res := tx.Model(&models.User{}).
			Where(query, arg).
			Where("role <> ?", models.RoleAdmin).
			Update("role", models.RoleAdmin)
		if res.Error != nil {
			return res.Error
		}
		modified = res.RowsAffected
		return nil
	})
	return matched, modified, err
}

// Delete removes the user with id and returns the number of deleted rows.
func (s *Users) Delete(ctx context.Context, id string) (int64, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	return res.RowsAffected, res.Error
}
