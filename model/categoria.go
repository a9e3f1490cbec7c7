package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Categoria is a trade/oficio classification (e.g. electrician, plumber).
// Rows are managed by admins; the API only reads them.
type Categoria struct {
	gorm.Model
	Nombre      string `json:"nombre" gorm:"column:nombre;type:varchar(100);not null" example:"Electricista"`
	Slug        string `json:"slug" gorm:"column:slug;type:varchar(100);uniqueIndex;not null" example:"electricista"`
	Descripcion string `json:"descripcion" gorm:"column:descripcion;type:varchar(255)"`
	Icono       string `json:"icono" gorm:"column:icono;type:varchar(64)" example:"zap"`
	Color       string `json:"color" gorm:"column:color;type:varchar(16)" example:"#f59e0b"`
	Activo      bool   `json:"activo" gorm:"column:activo;default:true"`
	Orden       int    `json:"orden" gorm:"column:orden;default:0"`
}

// TableName overrides GORM's pluralization for the Spanish table name.
func (Categoria) TableName() string { return "categorias" }

// SeedCategorias inserts the initial set of trades if they are not present.
func SeedCategorias(db *gorm.DB) error {
	categorias := []Categoria{
		{Nombre: "Electricista", Slug: "electricista", Icono: "zap", Orden: 1, Activo: true},
		{Nombre: "Plomero", Slug: "plomero", Icono: "droplet", Orden: 2, Activo: true},
		{Nombre: "Gasista", Slug: "gasista", Icono: "flame", Orden: 3, Activo: true},
		{Nombre: "Albañil", Slug: "albanil", Icono: "hammer", Orden: 4, Activo: true},
		{Nombre: "Pintor", Slug: "pintor", Icono: "paintbrush", Orden: 5, Activo: true},
		{Nombre: "Carpintero", Slug: "carpintero", Icono: "ruler", Orden: 6, Activo: true},
	}

	for _, categoria := range categorias {
		var existing Categoria
		err := db.Where("slug = ?", categoria.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&categoria).Error; err != nil {
			return fmt.Errorf("failed to seed categoria %s: %w", categoria.Slug, err)
		}
	}
	return nil
}
