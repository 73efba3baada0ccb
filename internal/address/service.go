package address

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Input is the validated payload for saving a delivery address.
type Input struct {
	HouseNo      string
	Floor        *string
	Area         string
	Landmark     *string
	ReceiverName string
	Label        models.AddressLabel
}

// Service manages the single saved delivery address per user.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Address, error)
	Save(ctx context.Context, userID uuid.UUID, input Input) (*models.Address, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	db *gorm.DB
}

// NewService builds the address service on the shared DB handle.
func NewService(db *gorm.DB) Service {
	return &service{db: db}
}

// Get returns the user's saved address, nil when none exists.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*models.Address, error) {
	var addr models.Address
	err := s.db.WithContext(ctx).First(&addr, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading address")
	}
	return &addr, nil
}

// Save validates and upserts the user's address. Each user keeps at
// most one address; saving replaces any previous one.
func (s *service) Save(ctx context.Context, userID uuid.UUID, input Input) (*models.Address, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	addr := models.Address{
		ID:           uuid.New(),
		UserID:       userID,
		HouseNo:      strings.TrimSpace(input.HouseNo),
		Floor:        trimOptional(input.Floor),
		Area:         strings.TrimSpace(input.Area),
		Landmark:     trimOptional(input.Landmark),
		ReceiverName: strings.TrimSpace(input.ReceiverName),
		Label:        input.Label,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"house_no", "floor", "area", "landmark",
				"receiver_name", "label", "updated_at",
			}),
		}).
		Create(&addr).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving address")
	}

	return s.Get(ctx, userID)
}

// Clear removes the user's saved address. Clearing when none exists
// is not an error.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Address{}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting address")
	}
	return nil
}

func validate(input Input) error {
	if strings.TrimSpace(input.HouseNo) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "house number is required")
	}
	if strings.TrimSpace(input.Area) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "area is required")
	}
	if strings.TrimSpace(input.ReceiverName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "receiver name is required")
	}
	if !input.Label.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid address label")
	}
	return nil
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
