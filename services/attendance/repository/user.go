package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"attendance/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(database *gorm.DB) domain.UserRepo {
	return &userRepository{
		db: database,
	}
}

// isUniqueViolation reports whether err is the store rejecting a duplicate
// row (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (ur *userRepository) FindUserByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	var user domain.User
	err := ur.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no user for identity %s: %w", externalID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}
	return &user, nil
}

func (ur *userRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	emailLowered := strings.ToLower(email)
	err := ur.db.WithContext(ctx).Where("email = ?", emailLowered).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no user with email %s: %w", emailLowered, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("could not find user: %w", err)
	}
	return &user, nil
}

func (ur *userRepository) CreateUser(ctx context.Context, user *domain.User) error {
	user.Email = strings.ToLower(user.Email)
	if err := ur.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, domain.ErrConflict)
		}
		return fmt.Errorf("could not create user: %w", err)
	}
	return nil
}

func (ur *userRepository) GetAllUsers(ctx context.Context) (*[]domain.User, error) {
	var users []domain.User
	if err := ur.db.WithContext(ctx).Order("name").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("could not get all users: %w", err)
	}
	return &users, nil
}
