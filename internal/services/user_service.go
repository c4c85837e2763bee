package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"memories-backend/internal/common"
	"memories-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const pgUniqueViolation = "23505"

type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	switch {
	case req.FirstName == "":
		return nil, fmt.Errorf("%w: first name is required", common.ErrValidation)
	case req.LastName == "":
		return nil, fmt.Errorf("%w: last name is required", common.ErrValidation)
	case req.Email == "":
		return nil, fmt.Errorf("%w: email is required", common.ErrValidation)
	case req.Password == "":
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	case req.Password != req.ConfirmPassword:
		return nil, fmt.Errorf("%w: passwords do not match", common.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	query := `INSERT INTO users (first_name, last_name, email, password_hash)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err = s.db.QueryRowContext(ctx, query, req.FirstName, req.LastName, req.Email, string(hash)).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &user, nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	var user models.User
	query := `SELECT id, first_name, last_name, email, password_hash, created_at
	          FROM users WHERE email = $1`
	err := s.db.QueryRowContext(ctx, query, req.Email).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	query := `SELECT id, first_name, last_name, email, created_at
	          FROM users WHERE id = $1`
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &user, nil
}
