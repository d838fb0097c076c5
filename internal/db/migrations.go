package db

import (
	"fmt"

	"repaircafe_server/internal/models"
	"repaircafe_server/pkg/colors"
)

// RunMigrations runs all database migrations
func RunMigrations() error {
	colors.PrintSubHeader("Running Database Migrations")

	colors.PrintInfo("Creating/updating database tables...")

	// Users first, devices reference them
	if err := DB.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("user table migration failed: %v", err)
	}
	colors.PrintSuccess("✓ Users table ready")

	if err := DB.AutoMigrate(&models.Device{}); err != nil {
		return fmt.Errorf("device table migration failed: %v", err)
	}
	colors.PrintSuccess("✓ Devices table ready")

	if err := fixIntakerConstraint(); err != nil {
		return fmt.Errorf("failed to fix intaker constraint: %v", err)
	}
	colors.PrintSuccess("✓ Device-intaker relationship ready")

	colors.PrintHeader("DATABASE MIGRATIONS COMPLETED SUCCESSFULLY")
	return nil
}

// fixIntakerConstraint makes sure deleting a user keeps their intaken devices
// by nulling the reference instead of cascading.
func fixIntakerConstraint() error {
	var constraintExists int64
	DB.Raw(`
		SELECT COUNT(*)
		FROM information_schema.referential_constraints
		WHERE constraint_name = 'fk_devices_intaker'
		AND delete_rule = 'SET NULL'
	`).Scan(&constraintExists)

	if constraintExists > 0 {
		return nil
	}

	colors.PrintInfo("Rebuilding devices.intaker_id foreign key with ON DELETE SET NULL...")
	if err := DB.Exec("ALTER TABLE devices DROP CONSTRAINT IF EXISTS fk_devices_intaker").Error; err != nil {
		return err
	}
	return DB.Exec(`
		ALTER TABLE devices
		ADD CONSTRAINT fk_devices_intaker
		FOREIGN KEY (intaker_id) REFERENCES users(id) ON DELETE SET NULL
	`).Error
}
