package handlers

import (
	"net/http"
	"strconv"

	"github.com/dom/members-api/internal/api/respond"
	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	userService  *service.UserService
	watchService *service.WatchService
	log          logrus.FieldLogger
}

func NewUserHandler(userService *service.UserService, watchService *service.WatchService, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{
		userService:  userService,
		watchService: watchService,
		log:          log,
	}
}

// UpdateProfileRequest targets the caller unless UUID names another user.
type UpdateProfileRequest struct {
	UUID     *string `json:"uuid" validate:"omitempty,uuid"`
	Name     *string `json:"name" validate:"omitempty,min=3"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=user adm"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

type UserListResponse struct {
	Users       []domain.PublicUser `json:"users"`
	TotalCount  int64               `json:"totalCount"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := authorize(w, r, h.log, "handlers.User.GetProfile", auth.ActionRead, auth.ResourceProfile)
	if !ok {
		return
	}

	user, err := h.userService.FindByPublicID(r.Context(), p.SubjectID)
	if err != nil {
		writeServiceError(w, h.log, "handlers.User.GetProfile", err)
		return
	}

	respond.JSON(w, http.StatusOK, user.Public())
}

// UpdateProfile lets anyone edit their own name, email and password.
// Editing another user or changing a role requires an administrator.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.User.UpdateProfile"

	p, ok := authorize(w, r, h.log, op, auth.ActionUpdate, auth.ResourceProfile)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	target := p.SubjectID
	if req.UUID != nil {
		id, err := uuid.Parse(*req.UUID)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "uuid must be a valid UUID")
			return
		}
		target = id
	}

	input := service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		input.Role = &role
	}

	changesRole := input.Role != nil && *input.Role != p.Role
	if target != p.SubjectID || changesRole {
		if _, ok := authorize(w, r, h.log, op, auth.ActionUpdate, auth.ResourceUser); !ok {
			return
		}
	}

	user, err := h.userService.Update(r.Context(), target, input)
	if err != nil {
		writeServiceError(w, h.log, op, err)
		return
	}

	respond.JSON(w, http.StatusOK, user.Public())
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.User.List", auth.ActionRead, auth.ResourceUser); !ok {
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respond.Error(w, http.StatusBadRequest, "page must be an integer greater than or equal to 1")
			return
		}
		page = n
	}

	role := r.URL.Query().Get("role")
	if err := validate.Var(role, "omitempty,oneof=user adm"); err != nil {
		respond.Error(w, http.StatusBadRequest, "role must be one of: user adm")
		return
	}

	result, err := h.userService.ListByRole(r.Context(), page, domain.Role(role))
	if err != nil {
		writeServiceError(w, h.log, "handlers.User.List", err)
		return
	}

	respond.JSON(w, http.StatusOK, UserListResponse{
		Users:       domain.PublicUsers(result.Users),
		TotalCount:  result.TotalCount,
		TotalPages:  result.TotalPages(),
		CurrentPage: result.Page,
	})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.User.Delete", auth.ActionDelete, auth.ResourceUser); !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "uuid"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "uuid must be a valid UUID")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, "handlers.User.Delete", err)
		return
	}

	respond.Message(w, http.StatusOK, "user deleted")
}

func (h *UserHandler) ListWatched(w http.ResponseWriter, r *http.Request) {
	p, ok := authorize(w, r, h.log, "handlers.User.ListWatched", auth.ActionRead, auth.ResourceWatched)
	if !ok {
		return
	}

	watched, err := h.watchService.ListWatched(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(w, h.log, "handlers.User.ListWatched", err)
		return
	}

	respond.JSON(w, http.StatusOK, watched)
}
