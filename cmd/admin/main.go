package main

import (
	"fmt"
	"log"
	"os"

	"roomchat/backend/internal/config"
	"roomchat/backend/internal/models"
	"roomchat/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "deactivate":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin deactivate <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := setActive(storageSvc, userID, false); err != nil {
			log.Fatalf("Error deactivating user: %v", err)
		}
		fmt.Printf("User %s has been deactivated.\n", userID)
	case "activate":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin activate <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := setActive(storageSvc, userID, true); err != nil {
			log.Fatalf("Error activating user: %v", err)
		}
		fmt.Printf("User %s has been activated.\n", userID)
	case "set-role":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin set-role <user_id> <USER|ADMIN>")
			os.Exit(1)
		}
		userID, role := os.Args[2], os.Args[3]
		if role != models.RoleUser && role != models.RoleAdmin {
			fmt.Println("Invalid role. Must be USER or ADMIN.")
			os.Exit(1)
		}
		if err := setRole(storageSvc, userID, role); err != nil {
			log.Fatalf("Error changing role: %v", err)
		}
		fmt.Printf("User %s is now %s.\n", userID, role)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func setActive(s storage.Storage, userID string, active bool) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.IsActive = active
	return s.UpdateUser(user)
}

func setRole(s storage.Storage, userID, role string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Role = role
	return s.UpdateUser(user)
}
