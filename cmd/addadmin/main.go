package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/divelink/backoffice-backend/internal/admins"
	"github.com/divelink/backoffice-backend/pkg/config"
	"github.com/divelink/backoffice-backend/pkg/db"
	"github.com/divelink/backoffice-backend/pkg/db/models"
	"github.com/divelink/backoffice-backend/pkg/enums"
	"github.com/divelink/backoffice-backend/pkg/logger"
	"github.com/divelink/backoffice-backend/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "addadmin"})

	_ = godotenv.Load()

	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "initial password (required)")
	name := flag.String("name", "", "display name (required)")
	role := flag.String("role", string(enums.AdminRoleModerator), "role: moderator|admin|super_admin")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || *password == "" || strings.TrimSpace(*name) == "" {
		fmt.Fprintln(os.Stderr, "usage: addadmin -email ops@example.com -password secret -name \"Name\" [-role admin]")
		os.Exit(1)
	}

	parsedRole, err := enums.ParseAdminRole(*role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid role: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	hash, err := security.HashPassword(*password, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to hash password", err)
		os.Exit(1)
	}

	repo := admins.NewRepository(dbClient.DB())
	admin := &models.Admin{
		UID:          uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		Name:         strings.TrimSpace(*name),
		PasswordHash: hash,
		Role:         parsedRole,
	}

	if err := repo.Upsert(context.Background(), admin); err != nil {
		logg.Error(context.Background(), "failed to upsert admin", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"email": admin.Email,
		"role":  string(admin.Role),
	})
	logg.Info(ctx, "admin account ready")
}
