package endpoint

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/middleware"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
	"gorm.io/gorm"
)

const (
	// TamanoPagina is the fixed public listing page size.
	TamanoPagina = 12

	// CategoriaTodas and ZonaTodas are the sentinel slugs meaning "no filter".
	CategoriaTodas = "todos"
	ZonaTodas      = "todas"
)

// FiltrosListado is the listing filter state. Its zero value is not valid;
// use NuevosFiltros or ParseFiltros.
type FiltrosListado struct {
	Categoria string
	Zona      string
	Q         string
	Pagina    int
}

// NuevosFiltros returns the default filter state: everything, page 1.
func NuevosFiltros() FiltrosListado {
	return FiltrosListado{Categoria: CategoriaTodas, Zona: ZonaTodas, Pagina: 1}
}

// ParseFiltros decodes the filter state from URL query parameters. Missing or
// malformed values fall back to the defaults, so any URL decodes to a valid
// state.
func ParseFiltros(query url.Values) FiltrosListado {
	f := NuevosFiltros()
	if v := strings.TrimSpace(query.Get("categoria")); v != "" {
		f.Categoria = v
	}
	if v := strings.TrimSpace(query.Get("zona")); v != "" {
		f.Zona = v
	}
	f.Q = strings.TrimSpace(query.Get("q"))
	if v, err := strconv.Atoi(query.Get("pagina")); err == nil && v > 1 {
		f.Pagina = v
	}
	return f
}

// ConCategoria returns the state with the category changed and the page reset.
func (f FiltrosListado) ConCategoria(slug string) FiltrosListado {
	f.Categoria = slug
	f.Pagina = 1
	return f
}

// ConZona returns the state with the zone changed and the page reset.
func (f FiltrosListado) ConZona(slug string) FiltrosListado {
	f.Zona = slug
	f.Pagina = 1
	return f
}

// ConBusqueda returns the state with the free-text term changed and the page
// reset.
func (f FiltrosListado) ConBusqueda(termino string) FiltrosListado {
	f.Q = strings.TrimSpace(termino)
	f.Pagina = 1
	return f
}

// ConPagina returns the state on a different page with the filters intact.
func (f FiltrosListado) ConPagina(pagina int) FiltrosListado {
	if pagina < 1 {
		pagina = 1
	}
	f.Pagina = pagina
	return f
}

// QueryString encodes the state canonically: parameters appear in the fixed
// order categoria, zona, q, pagina, and defaults are omitted entirely. The
// default state encodes to the empty string.
func (f FiltrosListado) QueryString() string {
	var parts []string
	if f.Categoria != "" && f.Categoria != CategoriaTodas {
		parts = append(parts, "categoria="+url.QueryEscape(f.Categoria))
	}
	if f.Zona != "" && f.Zona != ZonaTodas {
		parts = append(parts, "zona="+url.QueryEscape(f.Zona))
	}
	if f.Q != "" {
		parts = append(parts, "q="+url.QueryEscape(f.Q))
	}
	if f.Pagina > 1 {
		parts = append(parts, "pagina="+strconv.Itoa(f.Pagina))
	}
	return strings.Join(parts, "&")
}

// aplicarFiltros applies the slug filters to a profesionales query.
func aplicarFiltros(db *gorm.DB, f FiltrosListado) *gorm.DB {
	query := db.Model(&model.Profesional{}).Where("profesionales.activo = ?", true)
	if f.Categoria != CategoriaTodas {
		query = query.Joins("JOIN categorias ON categorias.id = profesionales.categoria_id").
			Where("categorias.slug = ?", f.Categoria)
	}
	if f.Zona != ZonaTodas {
		query = query.Joins("JOIN zonas ON zonas.id = profesionales.zona_id").
			Where("zonas.slug = ?", f.Zona)
	}
	return query
}

// fetchPagina runs the SQL side of the listing: slug filters, fixed ordering
// and pagination. The free-text term is applied afterwards in memory.
func fetchPagina(db *gorm.DB, f FiltrosListado) ([]model.Profesional, int64, error) {
	var total int64
	if err := aplicarFiltros(db, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profesionales []model.Profesional
	err := aplicarFiltros(db, f).
		Order("profesionales.destacado DESC, profesionales.verificado DESC, profesionales.contactos_count DESC, profesionales.id ASC").
		Limit(TamanoPagina).
		Offset((f.Pagina - 1) * TamanoPagina).
		Find(&profesionales).Error
	if err != nil {
		return nil, 0, err
	}
	return profesionales, total, nil
}

// completarProfesionales joins in category/zone display data, service
// descriptions and review aggregates for an already-fetched set of rows.
func completarProfesionales(db *gorm.DB, profesionales []model.Profesional) ([]model.ProfesionalCompleto, error) {
	completos := make([]model.ProfesionalCompleto, 0, len(profesionales))
	for _, p := range profesionales {
		completo := model.ProfesionalCompleto{Profesional: p}

		var categoria model.Categoria
		if err := db.First(&categoria, p.CategoriaID).Error; err == nil {
			completo.CategoriaNombre = categoria.Nombre
			completo.CategoriaSlug = categoria.Slug
			completo.CategoriaIcono = categoria.Icono
			completo.CategoriaColor = categoria.Color
		}

		var zona model.Zona
		if err := db.First(&zona, p.ZonaID).Error; err == nil {
			completo.ZonaNombre = zona.Nombre
			completo.ZonaSlug = zona.Slug
			completo.ZonaProvincia = zona.Provincia
		}

		var servicios []model.Servicio
		if err := db.Where("profesional_id = ?", p.ID).Order("id ASC").Find(&servicios).Error; err != nil {
			return nil, err
		}
		for _, s := range servicios {
			completo.ServiciosDescripcion = append(completo.ServiciosDescripcion, s.Descripcion)
		}

		type resenaAgg struct {
			Promedio float64
			Total    int64
		}
		var agg resenaAgg
		db.Model(&model.Resena{}).
			Select("COALESCE(AVG(calificacion), 0) as promedio, COUNT(*) as total").
			Where("profesional_id = ? AND aprobada = ?", p.ID, true).
			Scan(&agg)
		completo.CalificacionPromedio = agg.Promedio
		completo.TotalResenas = agg.Total

		completos = append(completos, completo)
	}
	return completos, nil
}

// FiltrarPorServicio applies the free-text term to a fetched page. The match
// is diacritic and case insensitive against the space-joined service
// descriptions; an empty term returns the input unchanged.
func FiltrarPorServicio(profesionales []model.ProfesionalCompleto, termino string) []model.ProfesionalCompleto {
	if strings.TrimSpace(termino) == "" {
		return profesionales
	}
	filtrados := make([]model.ProfesionalCompleto, 0, len(profesionales))
	for _, p := range profesionales {
		if util.CoincideServicio(p.ServiciosDescripcion, termino) {
			filtrados = append(filtrados, p)
		}
	}
	return filtrados
}

// ListProfesionales godoc
// @Summary      List professionals
// @Description  Public paginated listing with category/zone/free-text filters
// @Tags         Profesional
// @Produce      json
// @Param        categoria query string false "Category slug, 'todos' for all"
// @Param        zona query string false "Zone slug, 'todas' for all"
// @Param        q query string false "Free-text service filter"
// @Param        pagina query int false "1-indexed page, page size 12"
// @Success      200 {object} util.APIResponse{data=object} "Professionals retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /profesionales [get]
func ListProfesionales(c *gin.Context) {
	filtros := ParseFiltros(c.Request.URL.Query())

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	profesionales, total, err := fetchPagina(db, filtros)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve profesionales",
			Err: err,
		})
		return
	}

	completos, err := completarProfesionales(db, profesionales)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve profesionales",
			Err: err,
		})
		return
	}
	completos = FiltrarPorServicio(completos, filtros.Q)

	totalPaginas := int((total + TamanoPagina - 1) / TamanoPagina)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Profesionales retrieved",
		Data: map[string]interface{}{
			"total":         total,
			"total_fetched": len(completos),
			"pagina":        filtros.Pagina,
			"total_paginas": totalPaginas,
			"query":         filtros.QueryString(),
			"profesionales": completos,
		},
	})
}

// GetProfesional godoc
// @Summary      Get a professional
// @Description  Single joined profile with services, gallery and approved review stats
// @Tags         Profesional
// @Produce      json
// @Param        id path int true "Professional ID"
// @Success      200 {object} util.APIResponse{data=object} "Professional retrieved"
// @Failure      404 {object} util.APIResponse "Not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /profesionales/{id} [get]
func GetProfesional(c *gin.Context) {
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

	completos, err := completarProfesionales(db, []model.Profesional{profesional})
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve professional",
			Err: err,
		})
		return
	}

	var galeria []model.GaleriaTrabajo
	db.Where("profesional_id = ?", profesional.ID).Order("orden ASC, id ASC").Find(&galeria)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Professional retrieved",
		Data: map[string]interface{}{
			"profesional": completos[0],
			"galeria":     galeria,
		},
	})
}

// RegistrarContacto godoc
// @Summary      Register a contact click
// @Description  Increments the professional's contact counter, best-effort
// @Tags         Profesional
// @Produce      json
// @Param        id path int true "Professional ID"
// @Success      200 {object} util.APIResponse "Contact registered"
// @Failure      404 {object} util.APIResponse "Not found"
// @Router       /profesionales/{id}/contacto [post]
func RegistrarContacto(c *gin.Context) {
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

	// The counter is informative only; a failed increment should not surface
	// to the caller.
	if err := db.Model(&profesional).
		UpdateColumn("contactos_count", gorm.Expr("contactos_count + 1")).Error; err != nil {
		fmt.Printf("RegistrarContacto: failed to increment counter for %d: %v\n", profesional.ID, err)
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Contact registered",
	})
}
