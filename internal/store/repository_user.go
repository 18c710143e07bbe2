package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts a new user row and returns it with the generated id and
// creation timestamp. A duplicate login maps to [ErrLoginAlreadyExists].
func (u *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := u.DB.QueryRowContext(ctx, createUser, user.Login, user.PasswordHash, user.Name)

	var created models.User
	err := row.Scan(&created.UserID, &created.Login, &created.PasswordHash, &created.Name, &created.CreatedAt)
	if err != nil {
		if postgresErrorCode(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).
			Str("func", "userRepository.CreateUser").
			Str("login", user.Login).
			Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// FindUserByLogin fetches a user by login. A missing row maps to
// [ErrNoUserWasFound].
func (u *userRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := u.DB.QueryRowContext(ctx, findUserByLogin, login)

	var found models.User
	err := row.Scan(&found.UserID, &found.Login, &found.PasswordHash, &found.Name, &found.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).
			Str("func", "userRepository.FindUserByLogin").
			Str("login", login).
			Msg("failed to scan user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}
