package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"memories-backend/internal/common"
	"memories-backend/internal/models"

	"github.com/google/uuid"
)

// SessionService manages the server-side session records behind the cookie.
// The cookie carries only the opaque token; everything else is looked up here
// on every request, so logout revokes access immediately.
type SessionService struct {
	db  *sql.DB
	ttl time.Duration
}

func NewSessionService(db *sql.DB, ttl time.Duration) *SessionService {
	return &SessionService{db: db, ttl: ttl}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) Create(ctx context.Context, userID int) (*models.Session, error) {
	session := models.Session{
		Token:  uuid.NewString(),
		UserID: userID,
	}
	query := `INSERT INTO sessions (token, user_id, expires_at)
	          VALUES ($1, $2, $3)
	          RETURNING created_at, expires_at`
	err := s.db.QueryRowContext(ctx, query, session.Token, userID, time.Now().Add(s.ttl)).
		Scan(&session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &session, nil
}

// Get resolves a token to its session. Unknown and expired tokens look the
// same to the caller; expired rows are cleaned up on the way out.
func (s *SessionService) Get(ctx context.Context, token string) (*models.Session, error) {
	session := models.Session{Token: token}
	query := `SELECT user_id, created_at, expires_at FROM sessions WHERE token = $1`
	err := s.db.QueryRowContext(ctx, query, token).
		Scan(&session.UserID, &session.CreatedAt, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.Delete(ctx, token)
		return nil, common.ErrNotAuthenticated
	}

	return &session, nil
}

func (s *SessionService) Delete(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry and reports how many went.
func (s *SessionService) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}
