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

// ListProfesionalesAdmin godoc
// @Summary      List professionals (admin)
// @Description  Admin listing including inactive rows, with keyword search and pagination
// @Tags         Profesional
// @Produce      json
// @Security     SessionToken
// @Param        keyword query string false "Search keyword for name, phone or description"
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Success      200 {object} util.APIResponse{data=object} "Professionals retrieved"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/profesionales [get]
func ListProfesionalesAdmin(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	keyword := strings.TrimSpace(c.Query("keyword"))

	query := db.Model(&model.Profesional{}).Order("created_at DESC")
	if keyword != "" {
		kw := "%" + keyword + "%"
		query = query.Where("nombre LIKE ? OR telefono LIKE ? OR descripcion LIKE ?", kw, kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve profesionales",
			Err: err,
		})
		return
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var profesionales []model.Profesional
	if err := query.Find(&profesionales).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve profesionales",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Profesionales retrieved",
		Data: map[string]interface{}{"total": total, "total_fetched": len(profesionales), "profesionales": profesionales},
	})
}

type updateProfesionalRequest struct {
	Nombre       *string `json:"nombre"`
	Telefono     *string `json:"telefono"`
	FotoURL      *string `json:"foto_url"`
	Descripcion  *string `json:"descripcion"`
	Horarios     *string `json:"horarios"`
	CategoriaID  *uint   `json:"categoria_id"`
	ZonaID       *uint   `json:"zona_id"`
	FacebookURL  *string `json:"facebook_url"`
	InstagramURL *string `json:"instagram_url"`
	TiktokURL    *string `json:"tiktok_url"`
	Disponible   *bool   `json:"disponible"`
	Verificado   *bool   `json:"verificado"`
	Destacado    *bool   `json:"destacado"`
	Activo       *bool   `json:"activo"`
}

// UpdateProfesional godoc
// @Summary      Update a professional
// @Description  Partial update of profile fields and visibility flags
// @Tags         Profesional
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Professional ID"
// @Success      200 {object} util.APIResponse{data=object} "Professional updated"
// @Failure      400 {object} util.APIResponse "Validation error"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/profesionales/{id} [patch]
func UpdateProfesional(c *gin.Context) {
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
	if err := db.First(&profesional, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Professional not found",
			Err: err,
		})
		return
	}

	var req updateProfesionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}

	updates := map[string]interface{}{}
	if req.Nombre != nil {
		nombre := util.NormalizeName(*req.Nombre)
		if nombre == "" {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "nombre cannot be empty",
				Err: fmt.Errorf("empty nombre"),
			})
			return
		}
		updates["nombre"] = nombre
	}
	if req.Telefono != nil {
		if !util.TelefonoValido(*req.Telefono) {
			util.CallUserError(c, util.APIErrorParams{
				Msg: fmt.Sprintf("telefono must contain at least %d digits", util.MinDigitosTelefono),
				Err: fmt.Errorf("invalid telefono"),
			})
			return
		}
		updates["telefono"] = util.NormalizarTelefono(*req.Telefono)
	}
	if req.FotoURL != nil {
		updates["foto_url"] = *req.FotoURL
	}
	if req.Descripcion != nil {
		updates["descripcion"] = *req.Descripcion
	}
	if req.Horarios != nil {
		updates["horarios"] = *req.Horarios
	}
	if req.CategoriaID != nil {
		updates["categoria_id"] = *req.CategoriaID
	}
	if req.ZonaID != nil {
		updates["zona_id"] = *req.ZonaID
	}
	if req.FacebookURL != nil {
		updates["facebook_url"] = *req.FacebookURL
	}
	if req.InstagramURL != nil {
		updates["instagram_url"] = *req.InstagramURL
	}
	if req.TiktokURL != nil {
		updates["tiktok_url"] = *req.TiktokURL
	}
	if req.Disponible != nil {
		updates["disponible"] = *req.Disponible
	}
	if req.Verificado != nil {
		updates["verificado"] = *req.Verificado
	}
	if req.Destacado != nil {
		updates["destacado"] = *req.Destacado
	}
	if req.Activo != nil {
		updates["activo"] = *req.Activo
	}

	if len(updates) == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "No fields to update",
			Err: fmt.Errorf("empty update"),
		})
		return
	}

	if err := db.Model(&profesional).Updates(updates).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update professional",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Professional updated",
		Data: map[string]interface{}{"profesional": profesional},
	})
}

// DeleteProfesional godoc
// @Summary      Delete a professional
// @Description  Deletes the professional along with its services and gallery rows
// @Tags         Profesional
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Professional ID"
// @Success      200 {object} util.APIResponse "Professional deleted"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/profesionales/{id} [delete]
func DeleteProfesional(c *gin.Context) {
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
	if err := db.First(&profesional, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Professional not found",
			Err: err,
		})
		return
	}

	// Sqlite test databases do not enforce the FK cascade, so dependents are
	// removed explicitly inside the transaction.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("profesional_id = ?", profesional.ID).Delete(&model.Servicio{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profesional_id = ?", profesional.ID).Delete(&model.GaleriaTrabajo{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profesional_id = ?", profesional.ID).Delete(&model.Resena{}).Error; err != nil {
			return err
		}
		return tx.Delete(&profesional).Error
	})
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete professional",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Professional deleted",
	})
}
