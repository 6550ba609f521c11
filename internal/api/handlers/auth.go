package handlers

import (
	"net/http"

	"github.com/dom/members-api/internal/api/respond"
	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/service"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authService *service.AuthService
	log         logrus.FieldLogger
}

func NewAuthHandler(authService *service.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    domain.PublicUser `json:"user"`
}

type UserResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, h.log, "handlers.Auth.Login", err)
		return
	}

	respond.JSON(w, http.StatusOK, LoginResponse{
		Message: "login successful",
		Token:   result.Token,
		User:    result.User.Public(),
	})
}

// Register creates a regular user on behalf of an administrator.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Auth.Register", auth.ActionCreate, auth.ResourceUser); !ok {
		return
	}

	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, h.log, "handlers.Auth.Register", err)
		return
	}

	respond.JSON(w, http.StatusCreated, UserResponse{
		Message: "user registered",
		User:    user.Public(),
	})
}
