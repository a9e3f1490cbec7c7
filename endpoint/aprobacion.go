package endpoint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/middleware"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
	"gorm.io/gorm"
)

// errSolicitudYaProcesada marks the optimistic estado guard losing the race:
// the request was approved or rejected by someone else first.
var errSolicitudYaProcesada = fmt.Errorf("solicitud already processed")

// ListSolicitudes godoc
// @Summary      List registration requests
// @Description  Admin listing of registration requests filtered by estado, newest first
// @Tags         Solicitud
// @Produce      json
// @Security     SessionToken
// @Param        estado query string false "pendiente|aprobada|rechazada|todas"
// @Success      200 {object} util.APIResponse{data=object} "Requests retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/solicitudes [get]
func ListSolicitudes(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	estado := strings.TrimSpace(c.DefaultQuery("estado", model.EstadoPendiente))
	query := db.Model(&model.SolicitudRegistro{})
	if estado != "todas" {
		query = query.Where("estado = ?", estado)
	}

	var solicitudes []model.SolicitudRegistro
	if err := query.Order("created_at DESC").Find(&solicitudes).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve solicitudes",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Solicitudes retrieved",
		Data: map[string]interface{}{"total": len(solicitudes), "solicitudes": solicitudes},
	})
}

// aprobarSolicitudTx performs the whole approval inside one transaction. The
// estado transition is a conditional update; zero rows affected means the
// request was already processed and nothing else runs.
func aprobarSolicitudTx(db *gorm.DB, solicitudID uint, notas string) (*model.Profesional, error) {
	var profesional *model.Profesional
	err := db.Transaction(func(tx *gorm.DB) error {
		var solicitud model.SolicitudRegistro
		if err := tx.First(&solicitud, solicitudID).Error; err != nil {
			return err
		}

		result := tx.Model(&model.SolicitudRegistro{}).
			Where("id = ? AND estado = ?", solicitudID, model.EstadoPendiente).
			Updates(map[string]interface{}{"estado": model.EstadoAprobada, "notas_admin": notas})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errSolicitudYaProcesada
		}

		nuevo := model.Profesional{
			Nombre:       solicitud.Nombre,
			Telefono:     solicitud.Telefono,
			FotoURL:      solicitud.FotoURL,
			Descripcion:  solicitud.Descripcion,
			Horarios:     solicitud.Horarios,
			FacebookURL:  solicitud.FacebookURL,
			InstagramURL: solicitud.InstagramURL,
			TiktokURL:    solicitud.TiktokURL,
			Disponible:   true,
			Verificado:   false,
			Destacado:    false,
			Activo:       true,
		}
		if solicitud.CategoriaID != nil {
			nuevo.CategoriaID = *solicitud.CategoriaID
		}
		if solicitud.ZonaID != nil {
			nuevo.ZonaID = *solicitud.ZonaID
		}
		if err := tx.Create(&nuevo).Error; err != nil {
			return err
		}

		for _, descripcion := range strings.Split(solicitud.ServiciosTexto, ",") {
			descripcion = strings.TrimSpace(descripcion)
			if descripcion == "" {
				continue
			}
			servicio := model.Servicio{ProfesionalID: nuevo.ID, Descripcion: descripcion}
			if err := tx.Create(&servicio).Error; err != nil {
				return err
			}
		}

		for i, url := range model.ParseGaleriaURLs(solicitud.GaleriaURLs) {
			trabajo := model.GaleriaTrabajo{ProfesionalID: nuevo.ID, URL: url, Orden: i}
			if err := tx.Create(&trabajo).Error; err != nil {
				return err
			}
		}

		profesional = &nuevo
		return nil
	})
	return profesional, err
}

// AprobarSolicitud godoc
// @Summary      Approve a registration request
// @Description  Atomically transitions the request to aprobada and creates the professional with services and gallery
// @Tags         Solicitud
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Request ID"
// @Success      200 {object} util.APIResponse{data=object} "Request approved"
// @Failure      400 {object} util.APIResponse "Already processed"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/solicitudes/{id}/aprobar [post]
func AprobarSolicitud(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request ID",
			Err: err,
		})
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var body struct {
		NotasAdmin string `json:"notas_admin"`
	}
	_ = c.ShouldBindJSON(&body)

	profesional, err := aprobarSolicitudTx(db, uint(id), body.NotasAdmin)
	switch {
	case err == errSolicitudYaProcesada:
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Request already processed",
			Err: err,
		})
		return
	case err == gorm.ErrRecordNotFound:
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Request not found",
			Err: err,
		})
		return
	case err != nil:
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to approve request",
			Err: err,
		})
		return
	}

	userID, _ := middleware.GetUserID(c)
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventSolicitudAprobada,
		UserID:    fmt.Sprintf("%d", userID),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Request %d approved, professional %d created", id, profesional.ID),
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Request approved",
		Data: map[string]interface{}{"profesional_id": profesional.ID},
	})
}

// RechazarSolicitud godoc
// @Summary      Reject a registration request
// @Description  Guarded single update from pendiente to rechazada with admin notes
// @Tags         Solicitud
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Request ID"
// @Success      200 {object} util.APIResponse "Request rejected"
// @Failure      400 {object} util.APIResponse "Already processed"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/solicitudes/{id}/rechazar [post]
func RechazarSolicitud(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request ID",
			Err: err,
		})
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var solicitud model.SolicitudRegistro
	if err := db.First(&solicitud, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Request not found",
			Err: err,
		})
		return
	}

	var body struct {
		NotasAdmin string `json:"notas_admin"`
	}
	_ = c.ShouldBindJSON(&body)

	result := db.Model(&model.SolicitudRegistro{}).
		Where("id = ? AND estado = ?", id, model.EstadoPendiente).
		Updates(map[string]interface{}{"estado": model.EstadoRechazada, "notas_admin": body.NotasAdmin})
	if result.Error != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to reject request",
			Err: result.Error,
		})
		return
	}
	if result.RowsAffected == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Request already processed",
			Err: errSolicitudYaProcesada,
		})
		return
	}

	userID, _ := middleware.GetUserID(c)
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventSolicitudRechazada,
		UserID:    fmt.Sprintf("%d", userID),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Request %d rejected", id),
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Request rejected",
	})
}
