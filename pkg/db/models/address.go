package models

import (
	"time"

	"github.com/google/uuid"
)

// AddressLabel mirrors the labels offered on the address form.
type AddressLabel string

const (
	AddressLabelHome  AddressLabel = "home"
	AddressLabelWork  AddressLabel = "work"
	AddressLabelHotel AddressLabel = "hotel"
	AddressLabelOther AddressLabel = "other"
)

func (l AddressLabel) IsValid() bool {
	switch l {
	case AddressLabelHome, AddressLabelWork, AddressLabelHotel, AddressLabelOther:
		return true
	}
	return false
}

// Address is the single delivery address kept per user.
type Address struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID    `gorm:"column:user_id;type:uuid;uniqueIndex;not null"`
	HouseNo      string       `gorm:"column:house_no;not null"`
	Floor        *string      `gorm:"column:floor"`
	Area         string       `gorm:"column:area;not null"`
	Landmark     *string      `gorm:"column:landmark"`
	ReceiverName string       `gorm:"column:receiver_name;not null"`
	Label        AddressLabel `gorm:"column:label;not null"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
