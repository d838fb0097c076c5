// Command sync-user-roles re-mirrors the staff flag from the admin flag for
// every account, for databases touched outside the application.
package main

import (
	"log"

	"repaircafe_server/internal/db"
	"repaircafe_server/internal/models"
	"repaircafe_server/pkg/colors"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		colors.PrintWarning("No .env file found, using system environment variables")
	}

	if err := db.Initialize(); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer db.Close()

	var users []models.User
	if err := db.GetDB().Find(&users).Error; err != nil {
		log.Fatalf("Failed to load users: %v", err)
	}

	updated := 0
	for i := range users {
		user := &users[i]
		beforeStaff, beforeAdmin := user.IsStaff, user.IsAdmin
		user.SyncRoleFlags()
		if user.IsStaff == beforeStaff && user.IsAdmin == beforeAdmin {
			continue
		}
		if err := db.GetDB().Save(user).Error; err != nil {
			log.Fatalf("Failed to update user %q: %v", user.Username, err)
		}
		updated++
		colors.PrintSuccess("Updated %s: is_staff=%v, is_admin=%v", user.Username, user.IsStaff, user.IsAdmin)
	}

	if updated == 0 {
		colors.PrintInfo("All users are already in sync.")
	} else {
		colors.PrintSuccess("Successfully synced %d user(s).", updated)
	}
}
