// Package main provides admin management utilities for Kindred.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"kindred/internal/config"
	"kindred/internal/database"
	"kindred/internal/models"

	"gorm.io/gorm"
)

// AdminSetup provides a utility to promote a user to admin or inspect admin accounts
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/admin/main.go promote <user_id>      - Promote user to admin")
		fmt.Println("  go run ./cmd/admin/main.go demote <user_id>       - Demote user from admin")
		fmt.Println("  go run ./cmd/admin/main.go list-admins            - List all admins")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go promote <user_id>")
			os.Exit(1)
		}
		setRole(db, os.Args[2], models.UserRoleAdmin)

	case "demote":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin/main.go demote <user_id>")
			os.Exit(1)
		}
		setRole(db, os.Args[2], models.UserRoleMember)

	case "list-admins":
		listAdmins(db)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func setRole(db *gorm.DB, rawID string, role models.UserRole) {
	userID, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		log.Fatalf("Invalid user ID %q: %v", rawID, err)
	}

	var user models.User
	if err := db.First(&user, uint(userID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("User %d not found", userID)
		}
		log.Fatalf("Failed to load user %d: %v", userID, err)
	}

	if user.Role == role {
		fmt.Printf("User %d (%s) already has role %s\n", user.ID, user.Email, role)
		return
	}

	if err := db.Model(&user).Update("role", role).Error; err != nil {
		log.Fatalf("Failed to update role: %v", err)
	}
	fmt.Printf("User %d (%s) is now %s\n", user.ID, user.Email, role)
}

func listAdmins(db *gorm.DB) {
	var admins []models.User
	if err := db.Where("role = ?", models.UserRoleAdmin).Find(&admins).Error; err != nil {
		log.Fatalf("Failed to list admins: %v", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admin accounts found")
		return
	}

	fmt.Printf("Found %d admin(s):\n", len(admins))
	for _, admin := range admins {
		fmt.Printf("  %d  %s %s  <%s>\n", admin.ID, admin.FirstName, admin.LastName, admin.Email)
	}
}
