package model

import (
	"fmt"

	"gorm.io/gorm"
)

type Role struct {
	gorm.Model
	ID   uint32 `gorm:"primary_key;auto_increment" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

// SeedRoles creates the built-in roles when missing.
func SeedRoles(db *gorm.DB) error {
	roles := []Role{
		{Name: "Admin"},
		{Name: "Moderator"},
	}

	for _, role := range roles {
		var existingRole Role
		err := db.Where("name = ?", role.Name).First(&existingRole).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role.Name, err)
		}
	}
	return nil
}
