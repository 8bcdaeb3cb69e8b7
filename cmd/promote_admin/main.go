package main

import (
	"fmt"
	"log"
	"os"

	"github.com/yasyhadav121/codecrack/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Promotes an existing user to admin. Registration never assigns the admin
// role, so this is the only way to mint one.
//
// Usage: promote_admin <emailId>
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: promote_admin <emailId>")
	}
	email := os.Args[1]

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=codecrack port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var user models.User
	if err := db.Where("\"emailId\" = ?", email).First(&user).Error; err != nil {
		log.Fatalf("User with email %s not found: %v", email, err)
	}

	user.Role = models.RoleAdmin
	if err := db.Save(&user).Error; err != nil {
		log.Fatalf("Failed to update user role: %v", err)
	}

	fmt.Printf("Successfully promoted %s %s (%s) to admin.\n", user.FirstName, user.LastName, user.EmailID)
}
