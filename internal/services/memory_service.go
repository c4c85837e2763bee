package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"memories-backend/internal/common"
	"memories-backend/internal/models"
)

const dateLayout = "2006-01-02"

// MemoryService owns every access to the memories table. All reads and writes
// are scoped by the caller's user id, so a memory belonging to someone else is
// indistinguishable from one that does not exist.
type MemoryService struct {
	db *sql.DB
}

func NewMemoryService(db *sql.DB) *MemoryService {
	return &MemoryService{db: db}
}

// List returns the caller's timeline, newest date first. Entries sharing a
// date keep their insertion order.
func (s *MemoryService) List(ctx context.Context, userID int) ([]models.Memory, error) {
	query := `SELECT id, user_id, to_char(date, 'YYYY-MM-DD'), description, photo_path, created_at
	          FROM memories
	          WHERE user_id = $1
	          ORDER BY date DESC, id ASC`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	memories := []models.Memory{}
	for rows.Next() {
		var m models.Memory
		if err := rows.Scan(&m.ID, &m.UserID, &m.Date, &m.Description, &m.PhotoPath, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		memories = append(memories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return memories, nil
}

func (s *MemoryService) Create(ctx context.Context, userID int, date, description, photoPath string) (*models.Memory, error) {
	if err := validateEntry(date, description); err != nil {
		return nil, err
	}
	if photoPath == "" {
		return nil, fmt.Errorf("%w: photo is required", common.ErrValidation)
	}

	memory := models.Memory{
		UserID:      userID,
		Date:        date,
		Description: description,
		PhotoPath:   photoPath,
	}
	query := `INSERT INTO memories (date, description, photo_path, user_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query, date, description, photoPath, userID).
		Scan(&memory.ID, &memory.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &memory, nil
}

// Update changes date and description only. The photo is immutable after
// creation, as is the owner.
func (s *MemoryService) Update(ctx context.Context, userID, memoryID int, date, description string) (*models.Memory, error) {
	if err := validateEntry(date, description); err != nil {
		return nil, err
	}

	var m models.Memory
	query := `UPDATE memories SET date = $1, description = $2
	          WHERE id = $3 AND user_id = $4
	          RETURNING id, user_id, to_char(date, 'YYYY-MM-DD'), description, photo_path, created_at`
	err := s.db.QueryRowContext(ctx, query, date, description, memoryID, userID).
		Scan(&m.ID, &m.UserID, &m.Date, &m.Description, &m.PhotoPath, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrMemoryNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &m, nil
}

// Delete removes the row and returns the photo path so the caller can remove
// the file afterwards. The row delete is the authoritative step; the file is
// cleaned up best-effort by the caller.
func (s *MemoryService) Delete(ctx context.Context, userID, memoryID int) (string, error) {
	var photoPath string
	query := `DELETE FROM memories WHERE id = $1 AND user_id = $2 RETURNING photo_path`
	err := s.db.QueryRowContext(ctx, query, memoryID, userID).Scan(&photoPath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrMemoryNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return photoPath, nil
}

func validateEntry(date, description string) error {
	if date == "" {
		return fmt.Errorf("%w: date is required", common.ErrValidation)
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", common.ErrValidation)
	}
	if description == "" {
		return fmt.Errorf("%w: description is required", common.ErrValidation)
	}
	return nil
}
