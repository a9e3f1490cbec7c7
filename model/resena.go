package model

import "gorm.io/gorm"

// Resena is a public star rating with an optional comment. Rows start
// unapproved and stay hidden from public queries until an admin approves them.
type Resena struct {
	gorm.Model
	ProfesionalID uint   `json:"profesional_id" gorm:"column:profesional_id;index;not null"`
	AutorNombre   string `json:"autor_nombre" gorm:"column:autor_nombre;type:varchar(80);not null" example:"María García"`
	Calificacion  int    `json:"calificacion" gorm:"column:calificacion;not null" example:"5"`
	Comentario    string `json:"comentario" gorm:"column:comentario;type:varchar(500)"`
	Aprobada      bool   `json:"aprobada" gorm:"column:aprobada;default:false"`
}

func (Resena) TableName() string { return "resenas" }
