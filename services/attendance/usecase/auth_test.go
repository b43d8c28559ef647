package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"attendance/domain"
)

func TestRegisterCreatesIdentityThenUser(t *testing.T) {
	users := &fakeUserRepo{}
	provider := &fakeProvider{}
	uc := NewAuthUseCase(users, provider, time.Second)

	err := uc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "Danu@Example.com",
		Username: "Danu",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.created) != 1 {
		t.Fatalf("expected one upstream identity, got %d", len(provider.created))
	}
	if len(users.users) != 1 {
		t.Fatalf("expected one local user, got %d", len(users.users))
	}
	u := users.users[0]
	if u.Email != "danu@example.com" {
		t.Errorf("email must be stored lowercased, got %s", u.Email)
	}
	if u.Role != domain.RoleUser {
		t.Errorf("self-registration must yield role USER, got %s", u.Role)
	}
	if u.ExternalID != provider.created[0] {
		t.Errorf("user must reference the upstream identity: %s != %s", u.ExternalID, provider.created[0])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{}
	provider := &fakeProvider{}
	uc := NewAuthUseCase(users, provider, time.Second)

	req := &domain.RegisterRequest{Email: "danu@example.com", Username: "Danu", Password: "password123"}
	if err := uc.Register(context.Background(), req); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	err := uc.Register(context.Background(), req)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(provider.created) != 1 {
		t.Errorf("duplicate registration must not reach the provider, created %d identities", len(provider.created))
	}
}

func TestRegisterRollsBackIdentityWhenUserInsertFails(t *testing.T) {
	users := &fakeUserRepo{failCreate: fmt.Errorf("insert failed: %w", domain.ErrInternal)}
	provider := &fakeProvider{}
	uc := NewAuthUseCase(users, provider, time.Second)

	err := uc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "danu@example.com",
		Username: "Danu",
		Password: "password123",
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(provider.created) != 1 || len(provider.deleted) != 1 {
		t.Fatalf("expected identity created then deleted, got created=%d deleted=%d",
			len(provider.created), len(provider.deleted))
	}
	if provider.deleted[0] != provider.created[0] {
		t.Errorf("rollback deleted the wrong identity: %s != %s", provider.deleted[0], provider.created[0])
	}
	if len(users.users) != 0 {
		t.Errorf("no local user must survive, got %d", len(users.users))
	}
}

func TestRegisterProviderFailureLeavesNothingBehind(t *testing.T) {
	users := &fakeUserRepo{}
	provider := &fakeProvider{createErr: fmt.Errorf("email is already registered: %w", domain.ErrConflict)}
	uc := NewAuthUseCase(users, provider, time.Second)

	err := uc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "danu@example.com",
		Username: "Danu",
		Password: "password123",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(users.users) != 0 {
		t.Errorf("provider failure must not create a local user, got %d", len(users.users))
	}
}

func TestLoginReturnsTokenAndRole(t *testing.T) {
	users := &fakeUserRepo{}
	provider := &fakeProvider{}
	uc := NewAuthUseCase(users, provider, time.Second)

	users.CreateUser(context.Background(), &domain.User{
		ExternalID: "ext-1",
		Email:      "admin@example.com",
		Name:       "Admin",
		Role:       domain.RoleAdmin,
	})

	resp, err := uc.Login(context.Background(), &domain.LoginRequest{
		Email:    "Admin@Example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.Role != domain.RoleAdmin {
		t.Errorf("expected role ADMIN, got %s", resp.Role)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	provider := &fakeProvider{loginErr: fmt.Errorf("invalid email or password: %w", domain.ErrUnauthorized)}
	uc := NewAuthUseCase(&fakeUserRepo{}, provider, time.Second)

	_, err := uc.Login(context.Background(), &domain.LoginRequest{
		Email:    "danu@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestLoginUnprovisionedIdentity(t *testing.T) {
	// The provider knows the credential but no local user row exists.
	uc := NewAuthUseCase(&fakeUserRepo{}, &fakeProvider{}, time.Second)

	_, err := uc.Login(context.Background(), &domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
