package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository persists phone-keyed users.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a repository tied to the provided GORM DB.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertByPhone finds or creates the user for a verified phone number
// and stamps the login time.
func (r *UserRepository) UpsertByPhone(ctx context.Context, phone string, now time.Time) (*models.User, error) {
	user := models.User{
		ID:          uuid.New(),
		Phone:       phone,
		LastLoginAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_login_at", "updated_at"}),
		}).
		Create(&user).Error
	if err != nil {
		return nil, err
	}

	var persisted models.User
	if err := r.db.WithContext(ctx).First(&persisted, "phone = ?", phone).Error; err != nil {
		return nil, err
	}
	return &persisted, nil
}

// FindByID loads a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
