package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/repositories"
	"github.com/vhce/collegehub/internal/config"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

// CreateDefaultData seeds the default admin account and fixes up legacy
// rows. Safe to run on every boot.
func CreateDefaultData(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool) error {
	repos := repositories.NewRepositories(dbPool)

	exists, err := repos.Users.Exists(ctx, cfg.Admin.UserID)
	if err != nil {
		return err
	}
	if !exists {
		err := repos.Users.Create(ctx, &models.User{
			ID:       cfg.Admin.UserID,
			Role:     models.RoleAdmin,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			return err
		}
		logger.Info().Str("userID", cfg.Admin.UserID).Msg("Default admin account created")
	}

	// Imported rows can carry course codes in mixed case; canonicalize them
	// so code-based lookups behave.
	if err := repos.Materials.NormalizeCourseCodes(ctx); err != nil {
		logger.Warn().Err(err).Msg("Could not normalize stored course codes")
	}
	return nil
}
