package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/middleware"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
)

// Dashboard godoc
// @Summary      Admin dashboard counters
// @Description  Totals for professionals, pending/approved requests, unmoderated reviews, plus recent requests
// @Tags         Admin
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=object} "Dashboard retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/dashboard [get]
func Dashboard(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var totalProfesionales, profesionalesActivos int64
	var solicitudesPendientes, solicitudesAprobadas int64
	var resenasSinModerar int64

	db.Model(&model.Profesional{}).Count(&totalProfesionales)
	db.Model(&model.Profesional{}).Where("activo = ?", true).Count(&profesionalesActivos)
	db.Model(&model.SolicitudRegistro{}).Where("estado = ?", model.EstadoPendiente).Count(&solicitudesPendientes)
	db.Model(&model.SolicitudRegistro{}).Where("estado = ?", model.EstadoAprobada).Count(&solicitudesAprobadas)
	db.Model(&model.Resena{}).Where("aprobada = ?", false).Count(&resenasSinModerar)

	var recientes []model.SolicitudRegistro
	if err := db.Order("created_at DESC").Limit(5).Find(&recientes).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve dashboard data",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Dashboard retrieved",
		Data: map[string]interface{}{
			"profesionales_total":    totalProfesionales,
			"profesionales_activos":  profesionalesActivos,
			"solicitudes_pendientes": solicitudesPendientes,
			"solicitudes_aprobadas":  solicitudesAprobadas,
			"resenas_sin_moderar":    resenasSinModerar,
			"solicitudes_recientes":  recientes,
		},
	})
}

type topContactado struct {
	ID              uint   `json:"id"`
	Nombre          string `json:"nombre"`
	ContactosCount  int64  `json:"contactos_count"`
	CategoriaNombre string `json:"categoria_nombre"`
	ZonaNombre      string `json:"zona_nombre"`
}

// Analytics godoc
// @Summary      Contact-click analytics
// @Description  Total contact clicks and the most contacted professionals with category/zone names
// @Tags         Admin
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=object} "Analytics retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/analytics [get]
func Analytics(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var totalContactos int64
	db.Model(&model.Profesional{}).
		Select("COALESCE(SUM(contactos_count), 0)").Scan(&totalContactos)

	var top []topContactado
	err := db.Table("profesionales").
		Select("profesionales.id, profesionales.nombre, profesionales.contactos_count, categorias.nombre as categoria_nombre, zonas.nombre as zona_nombre").
		Joins("LEFT JOIN categorias ON categorias.id = profesionales.categoria_id").
		Joins("LEFT JOIN zonas ON zonas.id = profesionales.zona_id").
		Where("profesionales.deleted_at IS NULL AND profesionales.contactos_count > 0").
		Order("profesionales.contactos_count DESC").
		Limit(10).
		Scan(&top).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve analytics",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Analytics retrieved",
		Data: map[string]interface{}{
			"contactos_total": totalContactos,
			"top_contactados": top,
		},
	})
}
