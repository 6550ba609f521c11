// Command seed creates the first administrator from SEED_ADMIN_* settings.
// Running it again is a no-op once the account exists.
package main

import (
	"context"
	"time"

	"github.com/dom/members-api/internal/config"
	"github.com/dom/members-api/internal/logging"
	"github.com/dom/members-api/internal/repository/gormstore"
	"github.com/dom/members-api/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	store, err := gormstore.Open(gormstore.OptionsFromConfig(cfg, logging.GormLogger(log)))
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer store.Close()

	services := service.NewServices(store.Repositories(), cfg)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	user, created, err := services.Auth.SeedAdmin(ctx, service.RegisterInput{
		Name:     cfg.SeedAdminName,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
	})
	if err != nil {
		store.Close()
		log.WithError(err).Fatal("failed to seed admin")
	}

	entry := log.WithFields(logrus.Fields{"uuid": user.UUID, "email": user.Email})
	switch {
	case created:
		entry.Info("admin created")
	case !user.Role.IsAdmin():
		entry.Warn("seed email belongs to a non-admin account, left unchanged")
	default:
		entry.Info("admin already exists, nothing to do")
	}
}
