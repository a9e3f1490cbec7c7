package endpoint

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/middleware"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
	gocache "github.com/patrickmn/go-cache"
)

const (
	cacheKeyCategorias = "catalogo:categorias"
	cacheKeyZonas      = "catalogo:zonas"
)

// catalogoCache holds the categoria/zona listings. Both tables change rarely
// (admin inserts only), so a 30 minute TTL is acceptable staleness.
var catalogoCache = gocache.New(30*time.Minute, 10*time.Minute)

// FlushCatalogoCache drops the cached catalog listings. Called after admin
// mutations so the public site picks changes up immediately.
func FlushCatalogoCache() {
	catalogoCache.Delete(cacheKeyCategorias)
	catalogoCache.Delete(cacheKeyZonas)
}

// ListCategorias godoc
// @Summary      List active categories
// @Description  Get all active trade categories ordered for display
// @Tags         Catalogo
// @Produce      json
// @Success      200 {object} util.APIResponse{data=object} "Categories retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /categorias [get]
func ListCategorias(c *gin.Context) {
	if cached, found := catalogoCache.Get(cacheKeyCategorias); found {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Categorias retrieved",
			Data: map[string]interface{}{"categorias": cached},
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

	var categorias []model.Categoria
	if err := db.Where("activo = ?", true).Order("orden ASC, nombre ASC").Find(&categorias).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve categorias",
			Err: err,
		})
		return
	}

	catalogoCache.SetDefault(cacheKeyCategorias, categorias)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Categorias retrieved",
		Data: map[string]interface{}{"categorias": categorias},
	})
}

// ListZonas godoc
// @Summary      List active zones
// @Description  Get all active coverage zones ordered by name
// @Tags         Catalogo
// @Produce      json
// @Success      200 {object} util.APIResponse{data=object} "Zones retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /zonas [get]
func ListZonas(c *gin.Context) {
	if cached, found := catalogoCache.Get(cacheKeyZonas); found {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Zonas retrieved",
			Data: map[string]interface{}{"zonas": cached},
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

	var zonas []model.Zona
	if err := db.Where("activo = ?", true).Order("nombre ASC").Find(&zonas).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve zonas",
			Err: err,
		})
		return
	}

	catalogoCache.SetDefault(cacheKeyZonas, zonas)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Zonas retrieved",
		Data: map[string]interface{}{"zonas": zonas},
	})
}
