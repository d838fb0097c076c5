// Command create-admin bootstraps an initial admin account.
package main

import (
	"flag"
	"fmt"
	"log"

	"repaircafe_server/internal/db"
	"repaircafe_server/internal/models"
	"repaircafe_server/pkg/colors"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	username := flag.String("username", "admin", "Admin username")
	password := flag.String("password", "admin", "Admin password")
	firstName := flag.String("first-name", "Admin", "First name")
	lastName := flag.String("last-name", "User", "Last name")
	email := flag.String("email", "admin@repaircafe.com", "Email address")
	update := flag.Bool("update", false, "Update user if already exists")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		colors.PrintWarning("No .env file found, using system environment variables")
	}

	if err := db.Initialize(); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer db.Close()

	var user models.User
	err := db.GetDB().Where("username = ?", *username).First(&user).Error
	switch {
	case err == nil:
		if !*update {
			colors.PrintWarning("User %q already exists! Use -update to update it.", *username)
			return
		}
		if err := user.SetPassword(*password); err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user.FirstName = *firstName
		user.LastName = *lastName
		user.Email = *email
		user.IsAdmin = true
		user.IsSuperuser = true
		user.IsActive = true
		if err := db.GetDB().Save(&user).Error; err != nil {
			log.Fatalf("Failed to update admin user: %v", err)
		}
		colors.PrintSuccess("Admin user %q updated successfully!", *username)

	case err == gorm.ErrRecordNotFound:
		user = models.User{
			Username:    *username,
			Password:    *password, // Hashed by the BeforeCreate hook
			FirstName:   *firstName,
			LastName:    *lastName,
			Email:       *email,
			IsAdmin:     true,
			IsSuperuser: true,
			IsActive:    true,
		}
		if err := db.GetDB().Create(&user).Error; err != nil {
			log.Fatalf("Failed to create admin user: %v", err)
		}
		colors.PrintSuccess("Admin user %q created successfully!", *username)

	default:
		log.Fatalf("Failed to look up user: %v", err)
	}

	fmt.Printf("Username: %s\n", *username)
	fmt.Printf("Full Name: %s %s\n", *firstName, *lastName)
	fmt.Printf("Email: %s\n", *email)
	fmt.Println("\nYou can now log in with these credentials.")
}
