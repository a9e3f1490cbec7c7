package model

import "gorm.io/gorm"

// GaleriaTrabajo is a work-sample photo owned by exactly one professional.
// Rows are removed together with their professional.
type GaleriaTrabajo struct {
	gorm.Model
	ProfesionalID uint   `json:"profesional_id" gorm:"column:profesional_id;index;not null"`
	URL           string `json:"url" gorm:"column:url;type:varchar(512);not null"`
	Caption       string `json:"caption" gorm:"column:caption;type:varchar(255)"`
	Orden         int    `json:"orden" gorm:"column:orden;default:0"`
}

func (GaleriaTrabajo) TableName() string { return "galeria_trabajos" }
