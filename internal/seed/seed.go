package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/oyilmaz/deptportal/internal/app/models"
	appRepos "github.com/oyilmaz/deptportal/internal/app/repositories"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
	pkgAuth "github.com/oyilmaz/deptportal/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "hod@department.edu"
	defaultAdminPassword = "ChangeMe123!"
	defaultAdminName     = "Head of Department"
)

// CreateDefaultData seeds the initial SUPER_ADMIN account so the portal is
// administrable on first boot. Existing accounts are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
		lgr.Warn().Str("email", email).Msg("Seeding SUPER_ADMIN with the default password, change it immediately")
	}

	hash, err := pkgAuth.HashPassword(password)
	if err != nil {
		return err
	}

	name := defaultAdminName
	admin := &appModels.User{
		Email:    email,
		Name:     &name,
		Password: hash,
		Role:     appModels.RoleSuperAdmin,
	}

	if err := userRepo.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Info().Str("email", email).Msg("SUPER_ADMIN account already present, skipping seed")
			return nil
		}
		lgr.Error().Err(err).Msg("Error seeding SUPER_ADMIN account")
		return err
	}

	lgr.Info().Str("email", email).Int64("userID", admin.ID).Msg("Seeded SUPER_ADMIN account")
	return nil
}
