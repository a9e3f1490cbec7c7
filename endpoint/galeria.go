package endpoint

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/config"
	"github.com/oficiossde/directorio-api/middleware"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
	"gorm.io/gorm"
)

// ListGaleria godoc
// @Summary      List gallery photos
// @Description  Gallery rows for a professional in display order
// @Tags         Galeria
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Professional ID"
// @Success      200 {object} util.APIResponse{data=object} "Gallery retrieved"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/profesionales/{id}/galeria [get]
func ListGaleria(c *gin.Context) {
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

	var galeria []model.GaleriaTrabajo
	if err := db.Where("profesional_id = ?", profesional.ID).
		Order("orden ASC, id ASC").Find(&galeria).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve gallery",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Gallery retrieved",
		Data: map[string]interface{}{"total": len(galeria), "galeria": galeria},
	})
}

// UploadGaleria godoc
// @Summary      Upload a gallery photo
// @Description  Uploads a photo to the gallery bucket and appends it to the professional's gallery
// @Tags         Galeria
// @Accept       multipart/form-data
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Professional ID"
// @Param        foto formData file true "Photo, max 5MB"
// @Param        caption formData string false "Optional caption"
// @Success      200 {object} util.APIResponse{data=object} "Photo uploaded"
// @Failure      400 {object} util.APIResponse "Validation error"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/profesionales/{id}/galeria [post]
func UploadGaleria(c *gin.Context) {
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

	file, err := c.FormFile("foto")
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "foto file is required",
			Err: err,
		})
		return
	}
	if file.Size > maxGaleriaBytes {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "foto exceeds the 5MB size limit",
			Err: fmt.Errorf("file too large: %d bytes", file.Size),
		})
		return
	}

	cfg := config.LoadConfig()
	if util.GetUploader() == nil || cfg.GaleriaBucket == "" {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Photo storage is not configured",
			Err: fmt.Errorf("uploader unavailable"),
		})
		return
	}

	url := subirFoto(c.Request.Context(), file, cfg.GaleriaBucket, "galeria", maxGaleriaBytes)
	if url == "" {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to upload photo",
			Err: fmt.Errorf("upload failed"),
		})
		return
	}

	var maxOrden int
	db.Model(&model.GaleriaTrabajo{}).
		Where("profesional_id = ?", profesional.ID).
		Select("COALESCE(MAX(orden), -1)").Scan(&maxOrden)

	trabajo := model.GaleriaTrabajo{
		ProfesionalID: profesional.ID,
		URL:           url,
		Caption:       c.PostForm("caption"),
		Orden:         maxOrden + 1,
	}
	if err := db.Create(&trabajo).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to save gallery photo",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Photo uploaded",
		Data: map[string]interface{}{"trabajo": trabajo},
	})
}

// DeleteGaleria godoc
// @Summary      Delete a gallery photo
// @Tags         Galeria
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Gallery row ID"
// @Success      200 {object} util.APIResponse "Photo deleted"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/galeria/{id} [delete]
func DeleteGaleria(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid gallery ID",
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

	var trabajo model.GaleriaTrabajo
	if err := db.First(&trabajo, id).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Gallery photo not found",
			Err: err,
		})
		return
	}

	if err := db.Delete(&trabajo).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete gallery photo",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Photo deleted",
	})
}

type reorderGaleriaRequest struct {
	// IDs lists the professional's gallery row IDs in the desired order.
	IDs []uint `json:"ids"`
}

// ReorderGaleria godoc
// @Summary      Reorder gallery photos
// @Description  Rewrites the orden column to match the given ID sequence
// @Tags         Galeria
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        id path int true "Professional ID"
// @Success      200 {object} util.APIResponse "Gallery reordered"
// @Failure      400 {object} util.APIResponse "Validation error"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /admin/profesionales/{id}/galeria/orden [patch]
func ReorderGaleria(c *gin.Context) {
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

	var req reorderGaleriaRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "ids array is required",
			Err: fmt.Errorf("invalid request body"),
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

	err = db.Transaction(func(tx *gorm.DB) error {
		for i, trabajoID := range req.IDs {
			result := tx.Model(&model.GaleriaTrabajo{}).
				Where("id = ? AND profesional_id = ?", trabajoID, profesional.ID).
				UpdateColumn("orden", i)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("gallery row %d does not belong to professional %d", trabajoID, profesional.ID)
			}
		}
		return nil
	})
	if err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Failed to reorder gallery",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Gallery reordered",
	})
}
