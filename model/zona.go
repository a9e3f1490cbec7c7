package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Zona is a geographic service area.
type Zona struct {
	gorm.Model
	Nombre    string `json:"nombre" gorm:"column:nombre;type:varchar(100);not null" example:"La Banda"`
	Slug      string `json:"slug" gorm:"column:slug;type:varchar(100);uniqueIndex;not null" example:"la-banda"`
	Provincia string `json:"provincia" gorm:"column:provincia;type:varchar(100)" example:"Santiago del Estero"`
	Pais      string `json:"pais" gorm:"column:pais;type:varchar(64);default:Argentina"`
	Activo    bool   `json:"activo" gorm:"column:activo;default:true"`
}

func (Zona) TableName() string { return "zonas" }

// SeedZonas inserts the initial set of service areas if they are not present.
func SeedZonas(db *gorm.DB) error {
	zonas := []Zona{
		{Nombre: "Santiago del Estero", Slug: "santiago-del-estero", Provincia: "Santiago del Estero", Pais: "Argentina", Activo: true},
		{Nombre: "La Banda", Slug: "la-banda", Provincia: "Santiago del Estero", Pais: "Argentina", Activo: true},
		{Nombre: "Termas de Río Hondo", Slug: "termas-de-rio-hondo", Provincia: "Santiago del Estero", Pais: "Argentina", Activo: true},
	}

	for _, zona := range zonas {
		var existing Zona
		err := db.Where("slug = ?", zona.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&zona).Error; err != nil {
			return fmt.Errorf("failed to seed zona %s: %w", zona.Slug, err)
		}
	}
	return nil
}
