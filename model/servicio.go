package model

import "gorm.io/gorm"

// Servicio is one free-text service a professional offers (1:N).
type Servicio struct {
	gorm.Model
	ProfesionalID uint   `json:"profesional_id" gorm:"column:profesional_id;index;not null"`
	Descripcion   string `json:"descripcion" gorm:"column:descripcion;type:varchar(150);not null" example:"Instalaciones eléctricas"`
}

func (Servicio) TableName() string { return "servicios" }
