package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"attendance/config"
	"attendance/domain"
)

type authUseCase struct {
	users    domain.UserRepo
	provider domain.IdentityProvider
	TimeOut  time.Duration
}

func NewAuthUseCase(users domain.UserRepo, provider domain.IdentityProvider, to time.Duration) domain.AuthUseCase {
	return &authUseCase{
		users:    users,
		provider: provider,
		TimeOut:  to,
	}
}

// Register provisions the credential upstream first, then mirrors the user
// locally. When the local insert fails the upstream identity is deleted
// again so no orphaned credential survives.
func (au *authUseCase) Register(ctx context.Context, req *domain.RegisterRequest) error {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	email := strings.ToLower(req.Email)

	if _, err := au.users.FindUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("user with this email already exists: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("could not check existing user: %w", err)
	}

	externalID, err := au.provider.CreateIdentity(ctx, email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to create identity upstream: %w", err)
	}

	newUser := &domain.User{
		ExternalID: externalID,
		Email:      email,
		Name:       req.Username,
		Role:       domain.RoleUser,
	}
	if err := au.users.CreateUser(ctx, newUser); err != nil {
		if derr := au.provider.DeleteIdentity(ctx, externalID); derr != nil {
			config.GetLogrusInstance().Errorf("failed to roll back identity %s: %v", externalID, derr)
		}
		if errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to create user locally: %w", err)
	}

	return nil
}

// Login delegates the password check and session issuance to the provider,
// then resolves the local role. An identity without a local user row reads
// as unauthenticated, same as a bad password.
func (au *authUseCase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	email := strings.ToLower(req.Email)

	session, err := au.provider.Login(ctx, email, req.Password)
	if err != nil {
		return nil, err
	}

	user, err := au.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("identity is not provisioned: %w", domain.ErrUnauthorized)
		}
		return nil, err
	}

	return &domain.LoginResponse{
		Token: session.Token,
		Role:  user.Role,
	}, nil
}
