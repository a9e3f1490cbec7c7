package endpoint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/middleware"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
)

const maxComentarioRunes = 500

// ListResenas godoc
// @Summary      List approved reviews
// @Description  Approved reviews for a professional, newest first
// @Tags         Resena
// @Produce      json
// @Param        id path int true "Professional ID"
// @Success      200 {object} util.APIResponse{data=object} "Reviews retrieved"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /profesionales/{id}/resenas [get]
func ListResenas(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid professional ID",
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

	var profesional model.Profesional
	if err := db.Where("activo = ?", true).First(&profesional, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Professional not found",
			Err: err,
		})
		return
	}

	var resenas []model.Resena
	if err := db.Where("profesional_id = ? AND aprobada = ?", profesional.ID, true).
		Order("created_at DESC").Find(&resenas).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve reviews",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Reviews retrieved",
		Data: map[string]interface{}{"total": len(resenas), "resenas": resenas},
	})
}

type createResenaRequest struct {
	AutorNombre  string `json:"autor_nombre" example:"Maria Gomez"`
	Calificacion int    `json:"calificacion" example:"5"`
	Comentario   string `json:"comentario" example:"Excelente trabajo"`
}

// CreateResena godoc
// @Summary      Submit a review
// @Description  Inserts an unapproved review; it stays hidden until an admin approves it
// @Tags         Resena
// @Accept       json
// @Produce      json
// @Param        id path int true "Professional ID"
// @Success      200 {object} util.APIResponse{data=object} "Review submitted"
// @Failure      400 {object} util.APIResponse "Validation error"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /profesionales/{id}/resenas [post]
func CreateResena(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid professional ID",
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

	var profesional model.Profesional
	if err := db.Where("activo = ?", true).First(&profesional, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Professional not found",
			Err: err,
		})
		return
	}

	var req createResenaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	autor := util.NormalizeName(req.AutorNombre)
	if autor == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "autor_nombre is required",
			Err: fmt.Errorf("missing autor_nombre"),
		})
		return
	}
	if req.Calificacion < 1 || req.Calificacion > 5 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "calificacion must be between 1 and 5",
			Err: fmt.Errorf("invalid calificacion: %d", req.Calificacion),
		})
		return
	}

	comentario := strings.TrimSpace(req.Comentario)
	if runes := []rune(comentario); len(runes) > maxComentarioRunes {
		comentario = string(runes[:maxComentarioRunes])
	}

	resena := model.Resena{
		ProfesionalID: profesional.ID,
		AutorNombre:   autor,
		Calificacion:  req.Calificacion,
		Comentario:    comentario,
		Aprobada:      false,
	}
	if err := db.Create(&resena).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to submit review",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Review submitted and pending moderation",
		Data: map[string]interface{}{"resena_id": resena.ID},
	})
}

// ListResenasAdmin godoc
// @Summary      List reviews (admin)
// @Description  Moderation listing, optionally filtered by approval state
// @Tags         Resena
// @Produce      json
// @Security     SessionToken
// @Param        aprobada query bool false "Filter by approval state"
// @Success      200 {object} util.APIResponse{data=object} "Reviews retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/resenas [get]
func ListResenasAdmin(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	query := db.Model(&model.Resena{}).Order("created_at DESC")
	if v := c.Query("aprobada"); v != "" {
		aprobada, err := strconv.ParseBool(v)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "aprobada must be true or false",
				Err: err,
			})
			return
		}
		query = query.Where("aprobada = ?", aprobada)
	}

	var resenas []model.Resena
	if err := query.Find(&resenas).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve reviews",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Reviews retrieved",
		Data: map[string]interface{}{"total": len(resenas), "resenas": resenas},
	})
}

type moderateResenaRequest struct {
	Aprobada *bool `json:"aprobada" binding:"required"`
}

// ModerateResena godoc
// @Summary      Moderate a review
// @Description  Sets the aprobada flag in either direction
// @Tags         Resena
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Review ID"
// @Success      200 {object} util.APIResponse{data=object} "Review updated"
// @Failure      400 {object} util.APIResponse "Validation error"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/resenas/{id} [patch]
func ModerateResena(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid review ID",
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

	var resena model.Resena
	if err := db.First(&resena, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Review not found",
			Err: err,
		})
		return
	}

	var req moderateResenaRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Aprobada == nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "aprobada field is required",
			Err: fmt.Errorf("invalid request body"),
		})
		return
	}

	if err := db.Model(&resena).UpdateColumn("aprobada", *req.Aprobada).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update review",
			Err: err,
		})
		return
	}

	userID, _ := middleware.GetUserID(c)
	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventResenaModerada,
		UserID:    fmt.Sprintf("%d", userID),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Review %d set aprobada=%t", resena.ID, *req.Aprobada),
	})

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Review updated",
		Data: map[string]interface{}{"resena_id": resena.ID, "aprobada": *req.Aprobada},
	})
}

// DeleteResena godoc
// @Summary      Delete a review
// @Tags         Resena
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Review ID"
// @Success      200 {object} util.APIResponse "Review deleted"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/resenas/{id} [delete]
func DeleteResena(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid review ID",
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

	var resena model.Resena
	if err := db.First(&resena, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Review not found",
			Err: err,
		})
		return
	}

	if err := db.Unscoped().Delete(&resena).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete review",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Review deleted",
	})
}
