package handlers

import (
	"net/http"

	"github.com/dom/members-api/internal/api/respond"
	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/service"
	"github.com/sirupsen/logrus"
)

type BannerHandler struct {
	bannerService *service.BannerService
	log           logrus.FieldLogger
}

func NewBannerHandler(bannerService *service.BannerService, log logrus.FieldLogger) *BannerHandler {
	return &BannerHandler{bannerService: bannerService, log: log}
}

type CreateBannerRequest struct {
	Title    string `json:"title" validate:"required,min=3"`
	Link     string `json:"link" validate:"required,url"`
	ImageURL string `json:"image_url" validate:"required,url"`
}

type UpdateBannerRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=3"`
	Link     *string `json:"link" validate:"omitempty,url"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Banner.List", auth.ActionRead, auth.ResourceBanner); !ok {
		return
	}

	banners, err := h.bannerService.ListAll(r.Context())
	if err != nil {
		writeServiceError(w, h.log, "handlers.Banner.List", err)
		return
	}
	respond.JSON(w, http.StatusOK, banners)
}

func (h *BannerHandler) Get(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Banner.Get", auth.ActionRead, auth.ResourceBanner); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	banner, err := h.bannerService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.log, "handlers.Banner.Get", err)
		return
	}
	respond.JSON(w, http.StatusOK, banner)
}

func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Banner.Create", auth.ActionCreate, auth.ResourceBanner); !ok {
		return
	}

	var req CreateBannerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	banner, err := h.bannerService.Create(r.Context(), service.BannerInput{
		Title:    req.Title,
		Link:     req.Link,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, h.log, "handlers.Banner.Create", err)
		return
	}
	respond.JSON(w, http.StatusCreated, banner)
}

func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Banner.Update", auth.ActionUpdate, auth.ResourceBanner); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateBannerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	banner, err := h.bannerService.Update(r.Context(), id, service.BannerUpdate{
		Title:    req.Title,
		Link:     req.Link,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		writeServiceError(w, h.log, "handlers.Banner.Update", err)
		return
	}
	respond.JSON(w, http.StatusOK, banner)
}

func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.log, "handlers.Banner.Delete", auth.ActionDelete, auth.ResourceBanner); !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.bannerService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.log, "handlers.Banner.Delete", err)
		return
	}
	respond.Message(w, http.StatusOK, "banner deleted")
}
