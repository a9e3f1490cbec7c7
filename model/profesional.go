package model

import "gorm.io/gorm"

// Profesional is a service provider. A row is publicly listed only while
// Activo is true; Telefono is stored digits-only and doubles as the WhatsApp
// contact target and the registration uniqueness key.
type Profesional struct {
	gorm.Model
	Nombre         string `json:"nombre" gorm:"column:nombre;type:varchar(150);not null" example:"Juan Pérez"`
	Telefono       string `json:"telefono" gorm:"column:telefono;type:varchar(20);index;not null" example:"5493854123456"`
	FotoURL        string `json:"foto_url" gorm:"column:foto_url;type:varchar(512)"`
	Descripcion    string `json:"descripcion" gorm:"column:descripcion;type:text"`
	Horarios       string `json:"horarios" gorm:"column:horarios;type:varchar(255)" example:"Lun a Sáb 8 a 18"`
	Disponible     bool   `json:"disponible" gorm:"column:disponible;default:true"`
	Verificado     bool   `json:"verificado" gorm:"column:verificado;default:false"`
	Destacado      bool   `json:"destacado" gorm:"column:destacado;default:false"`
	Activo         bool   `json:"activo" gorm:"column:activo;default:true"`
	CategoriaID    uint   `json:"categoria_id" gorm:"column:categoria_id;index"`
	ZonaID         uint   `json:"zona_id" gorm:"column:zona_id;index"`
	ContactosCount int    `json:"contactos_count" gorm:"column:contactos_count;default:0"`
	FacebookURL    string `json:"facebook_url" gorm:"column:facebook_url;type:varchar(255)"`
	InstagramURL   string `json:"instagram_url" gorm:"column:instagram_url;type:varchar(255)"`
	TiktokURL      string `json:"tiktok_url" gorm:"column:tiktok_url;type:varchar(255)"`

	Servicios []Servicio       `json:"servicios,omitempty" gorm:"foreignKey:ProfesionalID;constraint:OnDelete:CASCADE"`
	Galeria   []GaleriaTrabajo `json:"galeria,omitempty" gorm:"foreignKey:ProfesionalID;constraint:OnDelete:CASCADE"`
	Resenas   []Resena         `json:"resenas,omitempty" gorm:"foreignKey:ProfesionalID;constraint:OnDelete:CASCADE"`
}

func (Profesional) TableName() string { return "profesionales" }

// ProfesionalCompleto is the read-optimized listing projection: professional
// joined with category and zone data, aggregated service descriptions and
// rating statistics. Built by the listing query, not stored.
type ProfesionalCompleto struct {
	Profesional
	CategoriaNombre      string   `json:"categoria_nombre"`
	CategoriaSlug        string   `json:"categoria_slug"`
	CategoriaIcono       string   `json:"categoria_icono"`
	CategoriaColor       string   `json:"categoria_color"`
	ZonaNombre           string   `json:"zona_nombre"`
	ZonaSlug             string   `json:"zona_slug"`
	ZonaProvincia        string   `json:"zona_provincia"`
	ServiciosDescripcion []string `json:"servicios_descripcion"`
	CalificacionPromedio float64  `json:"calificacion_promedio"`
	TotalResenas         int64    `json:"total_resenas"`
}
