package handlers

import (
	"net/http"

	"github.com/dom/members-api/internal/api/respond"
	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/service"
	"github.com/sirupsen/logrus"
)

type ModuleHandler struct {
	moduleService *service.ModuleService
	log           logrus.FieldLogger
}

func NewModuleHandler(moduleService *service.ModuleService, log logrus.FieldLogger) *ModuleHandler {
	return &ModuleHandler{moduleService: moduleService, log: log}
}

type CreateModuleRequest struct {
	Title         string  `json:"title" validate:"required,min=3"`
	Description   string  `json:"description" validate:"required,min=10"`
	CoverURL      string  `json:"cover_url" validate:"required,url"`
	VideoCoverURL *string `json:"video_cover_url" validate:"omitempty,url"`
}

type UpdateModuleRequest struct {
	Title         *string `json:"title" validate:"omitempty,min=3"`
	Description   *string `json:"description" validate:"omitempty,min=10"`
	CoverURL      *string `json:"cover_url" validate:"omitempty,url"`
	VideoCoverURL *string `json:"video_cover_url" validate:"omitempty,url"`
}

func (h *ModuleHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Module.List", auth.ActionRead, auth.ResourceModule); !ok {
		return
	}

	modules, err := h.moduleService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "handlers.Module.List", err)
		return
	}
	respond.JSON(w, http.StatusOK, modules)
}

func (h *ModuleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Module.Get", auth.ActionRead, auth.ResourceModule); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	module, err := h.moduleService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, "handlers.Module.Get", err)
		return
	}
	respond.JSON(w, http.StatusOK, module)
}

func (h *ModuleHandler) ListLessons(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Module.ListLessons", auth.ActionRead, auth.ResourceLesson); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	lessons, err := h.moduleService.ListLessons(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, "handlers.Module.ListLessons", err)
		return
	}
	respond.JSON(w, http.StatusOK, lessons)
}

func (h *ModuleHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Module.Create", auth.ActionCreate, auth.ResourceModule); !ok {
		return
	}

	var req CreateModuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	module, err := h.moduleService.Create(r.Context(), service.ModuleInput{
		Title:         req.Title,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
		VideoCoverURL: req.VideoCoverURL,
	})
	if err != nil {
		writeServiceError(w, h.log, "handlers.Module.Create", err)
		return
	}
	respond.JSON(w, http.StatusCreated, module)
}

func (h *ModuleHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Module.Update", auth.ActionUpdate, auth.ResourceModule); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateModuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	module, err := h.moduleService.Update(r.Context(), id, service.ModuleUpdate{
		Title:         req.Title,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
		VideoCoverURL: req.VideoCoverURL,
	})
	if err != nil {
		writeServiceError(w, h.log, "handlers.Module.Update", err)
		return
	}
	respond.JSON(w, http.StatusOK, module)
}

func (h *ModuleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Module.Delete", auth.ActionDelete, auth.ResourceModule); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.moduleService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, "handlers.Module.Delete", err)
		return
	}
	respond.Message(w, http.StatusOK, "module deleted")
}
