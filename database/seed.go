package database

import (
	"errors"
	"log"

	"acadmin/config"
	"acadmin/model"
	"acadmin/utils/auth"

	"gorm.io/gorm"
)

// EnsureRootAdmin seeds the designated root administrative account on
// startup. The account is protected: the user handler refuses to soft-delete
// it under any circumstances.
func EnsureRootAdmin(db *gorm.DB, getEnv *config.EnviornmentVariable) error {
	email := getEnv.ROOT_ADMIN_EMAIL
	if email == "" {
		log.Println("ROOT_ADMIN_EMAIL not set, skipping root admin seed")
		return nil
	}

	var existing model.User
	err := db.Where("email = ?", email).Take(&existing).Error
	if err == nil {
		// Root flag may be missing on accounts created before the seeder ran.
		if !existing.Root {
			return db.Model(&existing).Update("root", true).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := getEnv.ROOT_ADMIN_PASSWORD
	if password == "" {
		return errors.New("ROOT_ADMIN_PASSWORD must be set to seed the root admin")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	root := model.User{
		Email:        email,
		Name:         "Root Administrator",
		Role:         "admin",
		PasswordHash: hash,
		Root:         true,
	}

	if err := db.Create(&root).Error; err != nil {
		return err
	}

	log.Println("Seeded root administrator account:", email)
	return nil
}
