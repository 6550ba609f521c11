package handlers

import (
	"net/http"

	"github.com/dom/members-api/internal/api/respond"
	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/domain"
	"github.com/dom/members-api/internal/service"
	"github.com/sirupsen/logrus"
)

type LessonHandler struct {
	lessonService *service.LessonService
	watchService  *service.WatchService
	log           logrus.FieldLogger
}

func NewLessonHandler(lessonService *service.LessonService, watchService *service.WatchService, log logrus.FieldLogger) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		watchService:  watchService,
		log:           log,
	}
}

type CreateLessonRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=10"`
	Video       string `json:"video" validate:"required,url"`
	Platform    string `json:"platform" validate:"required,oneof=AWS Vimeo Panda YouTube"`
	ModuleID    uint   `json:"moduleId" validate:"required"`
}

type UpdateLessonRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3"`
	Description *string `json:"description" validate:"omitempty,min=10"`
	Video       *string `json:"video" validate:"omitempty,url"`
	Platform    *string `json:"platform" validate:"omitempty,oneof=AWS Vimeo Panda YouTube"`
	ModuleID    *uint   `json:"moduleId" validate:"omitempty,min=1"`
}

func (h *LessonHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Lesson.Get", auth.ActionRead, auth.ResourceLesson); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	lesson, err := h.lessonService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, "handlers.Lesson.Get", err)
		return
	}
	respond.JSON(w, http.StatusOK, lesson)
}

func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Lesson.Create", auth.ActionCreate, auth.ResourceLesson); !ok {
		return
	}

	var req CreateLessonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lesson, err := h.lessonService.Create(r.Context(), service.LessonInput{
		Title:       req.Title,
		Description: req.Description,
		Video:       req.Video,
		Platform:    domain.Platform(req.Platform),
		ModuleID:    req.ModuleID,
	})
	if err != nil {
		writeServiceError(w, h.log, "handlers.Lesson.Create", err)
		return
	}
	respond.JSON(w, http.StatusCreated, lesson)
}

func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Lesson.Update", auth.ActionUpdate, auth.ResourceLesson); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateLessonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := service.LessonUpdate{
		Title:       req.Title,
		Description: req.Description,
		Video:       req.Video,
		ModuleID:    req.ModuleID,
	}
	if req.Platform != nil {
		platform := domain.Platform(*req.Platform)
		input.Platform = &platform
	}

	lesson, err := h.lessonService.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, h.log, "handlers.Lesson.Update", err)
		return
	}
	respond.JSON(w, http.StatusOK, lesson)
}

func (h *LessonHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Lesson.Delete", auth.ActionDelete, auth.ResourceLesson); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.lessonService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, "handlers.Lesson.Delete", err)
		return
	}
	respond.Message(w, http.StatusOK, "lesson deleted")
}

// MarkWatched appends the lesson to the caller's history.
func (h *LessonHandler) MarkWatched(w http.ResponseWriter, r *http.Request) {
	p, ok := authorize(w, r, h.log, "handlers.Lesson.MarkWatched", auth.ActionCreate, auth.ResourceWatched)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	watched, err := h.watchService.MarkWatched(r.Context(), p.UserID, id)
	if err != nil {
		writeServiceError(w, h.log, "handlers.Lesson.MarkWatched", err)
		return
	}
	respond.JSON(w, http.StatusCreated, watched)
}
