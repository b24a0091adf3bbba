package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/auth"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/repository"
)

type CreateUserParams struct {
	Email    string
	Password string
	Role     model.Role
}

type LoginResult struct {
	Token auth.Token
	User  model.User
}

type UserService interface {
	CreateUser(ctx context.Context, params CreateUserParams) (model.User, error)
	GetUser(ctx context.Context, id int64) (model.User, error)
	// Login checks the credentials of an active user and issues an access token.
	Login(ctx context.Context, email, password string) (LoginResult, error)
	// Authenticate resolves an access token to its active user.
	Authenticate(ctx context.Context, accessToken string) (model.User, error)
}

type userService struct {
	userRepo    repository.UserRepository
	tokenIssuer *auth.TokenIssuer
}

func NewUserService(userRepo repository.UserRepository, tokenIssuer *auth.TokenIssuer) UserService {
	return &userService{
		userRepo:    userRepo,
		tokenIssuer: tokenIssuer,
	}
}

func (s *userService) CreateUser(ctx context.Context, params CreateUserParams) (model.User, error) {
	if err := params.Role.Validate(); err != nil {
		return model.User{}, apperr.ValidationErr.WrapParent(err)
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(ctx, model.User{
		Email:        normalizeEmail(params.Email),
		PasswordHash: hash,
		Role:         params.Role,
		IsActive:     true,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, apperr.EmailTakenErr
		}
		return model.User{}, fmt.Errorf("user repository create user: %w", err)
	}

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, apperr.UserNotFoundErr.WithMsgf("user %d not found", id)
		}
		return model.User{}, fmt.Errorf("user repository get user by id: %w", err)
	}

	return user, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, apperr.InvalidCredentialsErr
		}
		return LoginResult{}, fmt.Errorf("user repository get user by email: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return LoginResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok || !user.IsActive {
		return LoginResult{}, apperr.InvalidCredentialsErr
	}

	token, err := s.tokenIssuer.Issue(user)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{Token: token, User: user}, nil
}

func (s *userService) Authenticate(ctx context.Context, accessToken string) (model.User, error) {
	userID, err := s.tokenIssuer.Parse(accessToken)
	if err != nil {
		return model.User{}, apperr.UnauthorizedErr.WrapParent(err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, apperr.UnauthorizedErr.WithMsgf("user not found")
		}
		return model.User{}, fmt.Errorf("user repository get user by id: %w", err)
	}
	if !user.IsActive {
		return model.User{}, apperr.UnauthorizedErr.WithMsgf("user inactive")
	}

	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
