package service

import (
	"github.com/dom/members-api/internal/auth"
	"github.com/dom/members-api/internal/config"
	"github.com/dom/members-api/internal/repository"
)

type Services struct {
	User   *UserService
	Auth   *AuthService
	Module *ModuleService
	Lesson *LessonService
	Banner *BannerService
	Watch  *WatchService
	Tokens *auth.TokenService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	hasher := auth.NewPasswordHasher()
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiration)
	users := NewUserService(repos.User, hasher)

	return &Services{
		User:   users,
		Auth:   NewAuthService(users, hasher, tokens),
		Module: NewModuleService(repos.Module, repos.Lesson),
		Lesson: NewLessonService(repos.Lesson, repos.Module),
		Banner: NewBannerService(repos.Banner),
		Watch:  NewWatchService(repos.WatchedLesson, repos.Lesson),
		Tokens: tokens,
	}
}
