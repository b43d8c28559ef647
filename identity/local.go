// Package identity holds the concrete identity provider sitting behind
// domain.IdentityProvider. The local provider keeps credentials in its own
// identities table and issues HS256 session tokens; the application tables
// never see a password hash.
package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"attendance/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Identity is the provider-owned credential row. ExternalID is the only
// value the rest of the application ever references.
type Identity struct {
	ID           int       `gorm:"primaryKey;autoIncrement"`
	ExternalID   string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Username     string    `gorm:"type:varchar(150);not null"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (Identity) TableName() string {
	return "identities"
}

type LocalProvider struct {
	db         *gorm.DB
	signingKey []byte
	sessionTTL time.Duration
}

// NewLocalProvider migrates the provider's own table and returns a ready
// provider. The signing key comes from BYTE_KEY.
func NewLocalProvider(db *gorm.DB) (*LocalProvider, error) {
	if err := db.AutoMigrate(&Identity{}); err != nil {
		return nil, fmt.Errorf("failed to migrate identities table: %w", err)
	}

	key := os.Getenv("BYTE_KEY")
	if key == "" {
		return nil, fmt.Errorf("BYTE_KEY is not set")
	}

	return &LocalProvider{
		db:         db,
		signingKey: []byte(key),
		sessionTTL: 24 * time.Hour,
	}, nil
}

func (p *LocalProvider) CreateIdentity(ctx context.Context, email, username, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}

	ident := Identity{
		ExternalID:   uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hashed),
	}

	if err := p.db.WithContext(ctx).Create(&ident).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fmt.Errorf("identity for %s already exists: %w", email, domain.ErrConflict)
		}
		return "", fmt.Errorf("could not create identity: %w", err)
	}

	return ident.ExternalID, nil
}

func (p *LocalProvider) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	var ident Identity
	err := p.db.WithContext(ctx).Where("email = ?", email).First(&ident).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("could not look up identity: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(p.sessionTTL)
	claims := &domain.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.ExternalID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(p.signingKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &domain.Session{Token: signed, ExpiresAt: expiresAt}, nil
}

func (p *LocalProvider) VerifySession(ctx context.Context, tokenString string) (string, error) {
	if tokenString == "" {
		return "", domain.ErrUnauthorized
	}

	claims := &domain.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session token: %w", domain.ErrUnauthorized)
	}

	return claims.Subject, nil
}

func (p *LocalProvider) DeleteIdentity(ctx context.Context, externalID string) error {
	res := p.db.WithContext(ctx).Where("external_id = ?", externalID).Delete(&Identity{})
	if res.Error != nil {
		return fmt.Errorf("could not delete identity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("identity %s: %w", externalID, domain.ErrNotFound)
	}
	return nil
}
