package model

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Registration request states. A request never returns to "pendiente" once
// resolved.
const (
	EstadoPendiente = "pendiente"
	EstadoAprobada  = "aprobada"
	EstadoRechazada = "rechazada"
)

// SolicitudRegistro is a professional's self-submitted application awaiting
// admin review. GaleriaURLs is canonically a JSON string array; legacy rows
// may carry other encodings, which ParseGaleriaURLs tolerates.
type SolicitudRegistro struct {
	gorm.Model
	Nombre         string         `json:"nombre" gorm:"column:nombre;type:varchar(150);not null"`
	Telefono       string         `json:"telefono" gorm:"column:telefono;type:varchar(20);index;not null"`
	CategoriaID    *uint          `json:"categoria_id" gorm:"column:categoria_id;index"`
	ZonaID         *uint          `json:"zona_id" gorm:"column:zona_id;index"`
	ServiciosTexto string         `json:"servicios_texto" gorm:"column:servicios_texto;type:text"`
	Horarios       string         `json:"horarios" gorm:"column:horarios;type:varchar(255)"`
	Descripcion    string         `json:"descripcion" gorm:"column:descripcion;type:text"`
	FotoURL        string         `json:"foto_url" gorm:"column:foto_url;type:varchar(512)"`
	GaleriaURLs    datatypes.JSON `json:"galeria_urls" gorm:"column:galeria_urls;type:json"`
	FacebookURL    string         `json:"facebook_url" gorm:"column:facebook_url;type:varchar(255)"`
	InstagramURL   string         `json:"instagram_url" gorm:"column:instagram_url;type:varchar(255)"`
	TiktokURL      string         `json:"tiktok_url" gorm:"column:tiktok_url;type:varchar(255)"`
	Estado         string         `json:"estado" gorm:"column:estado;type:varchar(16);default:pendiente;index"`
	NotasAdmin     string         `json:"notas_admin" gorm:"column:notas_admin;type:text"`
}

func (SolicitudRegistro) TableName() string { return "solicitudes_registro" }

// GaleriaJSON encodes a URL list in the canonical form for storage.
func GaleriaJSON(urls []string) datatypes.JSON {
	if len(urls) == 0 {
		return nil
	}
	b, err := json.Marshal(urls)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// ParseGaleriaURLs decodes the stored gallery URL list. Three encodings are
// accepted for the same logical list:
//   - a JSON string array (canonical),
//   - a JSON string whose content is itself a JSON-encoded array,
//   - a JSON string with a brace-delimited comma list ("{a,b}").
//
// Unparseable content yields an empty list, never an error: a broken gallery
// must not block the approval that reads it.
func ParseGaleriaURLs(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		return compactURLs(urls)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		if err := json.Unmarshal([]byte(s), &urls); err == nil {
			return compactURLs(urls)
		}
		return nil
	}

	// Legacy brace-delimited encoding: {url1,url2}
	s = strings.ReplaceAll(s, "{", "")
	s = strings.ReplaceAll(s, "}", "")
	return compactURLs(strings.Split(s, ","))
}

func compactURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
