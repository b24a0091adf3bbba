package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tuanvumaihuynh/pos-backoffice/internal/apperr"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/auth"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/model"
	"github.com/tuanvumaihuynh/pos-backoffice/internal/service"
	"github.com/tuanvumaihuynh/pos-backoffice/pkg/validator"
)

type authHandler struct {
	userSvc   service.UserService
	validator validator.Validator
}

func newAuthHandler(userSvc service.UserService, v validator.Validator) *authHandler {
	return &authHandler{
		userSvc:   userSvc,
		validator: v,
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        userResponse `json:"user"`
}

type createUserRequest struct {
	Email    string     `json:"email" validate:"required,email,max=255"`
	Password string     `json:"password" validate:"required,min=8,max=72"`
	Role     model.Role `json:"role" validate:"required,enum"`
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) error {
	var body loginRequest
	if err := decodeBody(r, h.validator, &body); err != nil {
		return err
	}

	res, err := h.userSvc.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		return fmt.Errorf("user service login: %w", err)
	}

	return writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: res.Token.AccessToken,
		TokenType:   "bearer",
		ExpiresAt:   res.Token.ExpiresAt,
		User:        toUserResponse(res.User),
	})
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) error {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		return apperr.UnauthorizedErr
	}

	user, err := h.userSvc.GetUser(r.Context(), p.UserID)
	if err != nil {
		return fmt.Errorf("user service get user: %w", err)
	}

	return writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *authHandler) CreateUser(w http.ResponseWriter, r *http.Request) error {
	var body createUserRequest
	if err := decodeBody(r, h.validator, &body); err != nil {
		return err
	}

	user, err := h.userSvc.CreateUser(r.Context(), service.CreateUserParams{
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		return fmt.Errorf("user service create user: %w", err)
	}

	return writeJSON(w, http.StatusCreated, toUserResponse(user))
}
