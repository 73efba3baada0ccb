package address

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftbasket/swiftbasket-backend/pkg/db/models"
	pkgerrors "github.com/swiftbasket/swiftbasket-backend/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAddressTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS addresses (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL UNIQUE,
  house_no TEXT NOT NULL,
  floor TEXT,
  area TEXT NOT NULL,
  landmark TEXT,
  receiver_name TEXT NOT NULL,
  label TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func validInput() Input {
	floor := "2nd"
	return Input{
		HouseNo:      "B-204",
		Floor:        &floor,
		Area:         "Indiranagar, Bengaluru",
		ReceiverName: "Priya Sharma",
		Label:        models.AddressLabelHome,
	}
}

func TestSaveAndGet(t *testing.T) {
	svc := NewService(setupAddressTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	saved, err := svc.Save(ctx, userID, validInput())
	require.NoError(t, err)
	assert.Equal(t, "B-204", saved.HouseNo)
	assert.Equal(t, models.AddressLabelHome, saved.Label)

	loaded, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, saved.ID, loaded.ID)
}

func TestGetMissingReturnsNil(t *testing.T) {
	svc := NewService(setupAddressTestDB(t))

	addr, err := svc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, addr)
}

func TestSaveReplacesExisting(t *testing.T) {
	svc := NewService(setupAddressTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Save(ctx, userID, validInput())
	require.NoError(t, err)

	updated := validInput()
	updated.HouseNo = "C-17"
	updated.Label = models.AddressLabelWork
	_, err = svc.Save(ctx, userID, updated)
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "C-17", loaded.HouseNo)
	assert.Equal(t, models.AddressLabelWork, loaded.Label)

	var count int64
	require.NoError(t, svc.(*service).db.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveValidation(t *testing.T) {
	svc := NewService(setupAddressTestDB(t))
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*Input)
	}{
		{"missing house no", func(in *Input) { in.HouseNo = "  " }},
		{"missing area", func(in *Input) { in.Area = "" }},
		{"missing receiver", func(in *Input) { in.ReceiverName = "" }},
		{"bad label", func(in *Input) { in.Label = "castle" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := svc.Save(ctx, uuid.New(), input)
			require.Error(t, err)

			coded := pkgerrors.As(err)
			require.NotNil(t, coded)
			assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
		})
	}
}

func TestClear(t *testing.T) {
	svc := NewService(setupAddressTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Save(ctx, userID, validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, userID))

	addr, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, addr)

	// clearing twice stays quiet
	require.NoError(t, svc.Clear(ctx, userID))
}
