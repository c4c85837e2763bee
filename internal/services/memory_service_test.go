package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"memories-backend/internal/common"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryColumns() []string {
	return []string{"id", "user_id", "date", "description", "photo_path", "created_at"}
}

func TestList_OrderedNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMemoryService(db)

	now := time.Now()
	mock.ExpectQuery(`ORDER BY date DESC, id ASC`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(memoryColumns()).
			AddRow(3, 1, "2024-03-01", "beach", "/uploads/3.jpg", now).
			AddRow(1, 1, "2024-01-01", "trip", "/uploads/1.jpg", now).
			AddRow(2, 1, "2024-01-01", "same day, added later", "/uploads/2.jpg", now))

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-03-01", list[0].Date)
	assert.Equal(t, 1, list[1].ID)
	assert.Equal(t, 2, list[2].ID)
}

func TestList_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMemoryService(db)

	mock.ExpectQuery(`FROM memories`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(memoryColumns()))

	list, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCreate_Validation(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMemoryService(db)

	tests := []struct {
		name                         string
		date, description, photoPath string
	}{
		{"missing date", "", "trip", "/uploads/1.jpg"},
		{"malformed date", "01/01/2024", "trip", "/uploads/1.jpg"},
		{"missing description", "2024-01-01", "", "/uploads/1.jpg"},
		{"missing photo", "2024-01-01", "trip", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.date, tt.description, tt.photoPath)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	// Rejected requests must not have touched the database.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Success(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMemoryService(db)

	created := time.Now()
	mock.ExpectQuery(`INSERT INTO memories`).
		WithArgs("2024-01-01", "trip", "/uploads/1700000000.jpg", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(5, created))

	memory, err := svc.Create(context.Background(), 1, "2024-01-01", "trip", "/uploads/1700000000.jpg")
	require.NoError(t, err)
	assert.Equal(t, 5, memory.ID)
	assert.Equal(t, 1, memory.UserID)
	assert.Equal(t, "2024-01-01", memory.Date)
	assert.Equal(t, "/uploads/1700000000.jpg", memory.PhotoPath)
}

func TestUpdate_Success(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMemoryService(db)

	mock.ExpectQuery(`UPDATE memories SET date`).
		WithArgs("2024-02-02", "edited", 5, 1).
		WillReturnRows(sqlmock.NewRows(memoryColumns()).
			AddRow(5, 1, "2024-02-02", "edited", "/uploads/1700000000.jpg", time.Now()))

	memory, err := svc.Update(context.Background(), 1, 5, "2024-02-02", "edited")
	require.NoError(t, err)
	assert.Equal(t, 5, memory.ID)
	assert.Equal(t, "edited", memory.Description)
	// The photo reference survives every edit.
	assert.Equal(t, "/uploads/1700000000.jpg", memory.PhotoPath)
}

func TestUpdate_NotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMemoryService(db)

	// Scoping by owner makes someone else's row and a missing row identical:
	// zero rows match, and the caller learns nothing either way.
	mock.ExpectQuery(`UPDATE memories SET date`).
		WithArgs("2024-02-02", "edited", 5, 2).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Update(context.Background(), 2, 5, "2024-02-02", "edited")
	assert.ErrorIs(t, err, common.ErrMemoryNotFound)
}

func TestUpdate_Validation(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMemoryService(db)

	_, err := svc.Update(context.Background(), 1, 5, "2024-02-02", "")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Update(context.Background(), 1, 5, "", "edited")
	assert.ErrorIs(t, err, common.ErrValidation)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_ReturnsPhotoPath(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMemoryService(db)

	mock.ExpectQuery(`DELETE FROM memories`).
		WithArgs(5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"photo_path"}).AddRow("/uploads/1700000000.jpg"))

	photoPath, err := svc.Delete(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000.jpg", photoPath)
}

func TestDelete_NotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewMemoryService(db)

	mock.ExpectQuery(`DELETE FROM memories`).
		WithArgs(5, 2).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Delete(context.Background(), 2, 5)
	assert.ErrorIs(t, err, common.ErrMemoryNotFound)
}
