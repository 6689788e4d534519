package service

import (
	"context"
	"strings"

	"bookstore-catalog/internal/models"
)

type UserService struct {
	store UserStore
}

func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// CreateOrUpdate sincroniza la foto del usuario autenticado y lo crea si no existe.
// El nombre solo se fija al crearlo: el del token o, si no trae, la parte local del email.
func (s *UserService) CreateOrUpdate(ctx context.Context, email, name, picture string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, &ValidationError{Field: "email", Message: "email is required"}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	user, err := s.store.UpsertProfile(ctx, email, name, picture)
	if err != nil {
		return nil, duplicate(err, "user", email)
	}
	return user, nil
}

func (s *UserService) Current(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, notFound(err, "user", email)
	}
	return user, nil
}

// IsAdmin indica si el usuario con ese email tiene rol admin.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.Current(ctx, email)
	if err != nil {
		return false, err
	}
	return user.Role == models.RoleAdmin, nil
}
