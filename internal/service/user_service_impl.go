package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/sprout/internal/domain"
	"github.com/alexanderramin/sprout/internal/repository"
	"github.com/google/uuid"
)

type userService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users}
}

func (s *userService) Create(ctx context.Context, name string) (*domain.User, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, "", validationErr("name is required")
	}
	token := newToken()
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      name,
		TokenHash: domain.HashToken(token),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *userService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, validationErr("token is required")
	}
	return s.users.GetByTokenHash(ctx, domain.HashToken(token))
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func newToken() string {
	return "spr_" + strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
