package endpoint

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/config"
	"github.com/oficiossde/directorio-api/middleware"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
	"gorm.io/gorm"
)

const (
	maxFotoBytes    = 3 << 20
	maxGaleriaBytes = 5 << 20
	maxGaleriaFotos = 6
	maxServicioTags = 12
)

var (
	errTelefonoRegistrado = fmt.Errorf("duplicate phone in profesionales")
	errTelefonoEnRevision = fmt.Errorf("duplicate phone in solicitudes")
)

// duplicadoTelefono reports whether the digits-only phone already belongs to
// an active professional or a pending request. Query errors are treated as
// "no duplicate": the check must never block a registration on its own.
func duplicadoTelefono(db *gorm.DB, telefono string) (profesional, pendiente bool) {
	var countProfesional int64
	if err := db.Model(&model.Profesional{}).
		Where("telefono = ? AND activo = ?", telefono, true).
		Count(&countProfesional).Error; err != nil {
		fmt.Printf("duplicadoTelefono: professional check failed: %v\n", err)
	}

	var countSolicitud int64
	if err := db.Model(&model.SolicitudRegistro{}).
		Where("telefono = ? AND estado = ?", telefono, model.EstadoPendiente).
		Count(&countSolicitud).Error; err != nil {
		fmt.Printf("duplicadoTelefono: solicitud check failed: %v\n", err)
	}

	return countProfesional > 0, countSolicitud > 0
}

func chequearDuplicado(db *gorm.DB, telefono string) error {
	esProfesional, esPendiente := duplicadoTelefono(db, telefono)
	if esProfesional {
		return errTelefonoRegistrado
	}
	if esPendiente {
		return errTelefonoEnRevision
	}
	return nil
}

func responderDuplicado(c *gin.Context, err error) {
	msg := "This phone number is already registered"
	if err == errTelefonoEnRevision {
		msg = "A request with this phone number is already under review"
	}
	util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
}

// construirServiciosTexto builds the comma-joined service text: the category
// display name first, then up to maxServicioTags extra tags trimmed and
// deduplicated. The category name does not count against the cap.
func construirServiciosTexto(categoriaNombre string, tags []string) string {
	servicios := []string{categoriaNombre}
	seen := map[string]struct{}{categoriaNombre: {}}
	extras := 0
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		servicios = append(servicios, trimmed)
		extras++
		if extras == maxServicioTags {
			break
		}
	}
	return strings.Join(servicios, ", ")
}

// subirFoto uploads a single multipart file through the configured uploader
// and returns its public URL. Nil uploader or oversized files return "".
func subirFoto(ctx context.Context, file *multipart.FileHeader, bucket, prefix string, maxBytes int64) string {
	uploader := util.GetUploader()
	if uploader == nil || bucket == "" || file == nil {
		return ""
	}
	if file.Size > maxBytes {
		fmt.Printf("subirFoto: %s exceeds size limit (%d > %d)\n", file.Filename, file.Size, maxBytes)
		return ""
	}

	src, err := file.Open()
	if err != nil {
		fmt.Printf("subirFoto: failed to open %s: %v\n", file.Filename, err)
		return ""
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	objectName := util.NombreObjeto(prefix, file.Filename)
	url, err := uploader.Upload(ctx, bucket, objectName, contentType, src)
	if err != nil {
		fmt.Printf("subirFoto: upload of %s failed: %v\n", file.Filename, err)
		return ""
	}
	return url
}

// CreateSolicitud godoc
// @Summary      Submit a registration request
// @Description  Multipart registration funnel: validation, duplicate phone check, media upload, pending insert, admin notification
// @Tags         Solicitud
// @Accept       multipart/form-data
// @Produce      json
// @Param        nombre formData string true "Full name"
// @Param        telefono formData string true "Phone, at least 10 digits"
// @Param        categoria_id formData int true "Category ID"
// @Param        zona_id formData int true "Zone ID"
// @Param        servicios formData string false "Comma-separated extra service tags"
// @Param        horarios formData string false "Working hours"
// @Param        descripcion formData string false "Self description"
// @Param        facebook_url formData string false "Facebook URL"
// @Param        instagram_url formData string false "Instagram URL"
// @Param        tiktok_url formData string false "TikTok URL"
// @Param        foto formData file false "Profile photo, max 3MB"
// @Param        galeria formData file false "Up to 6 gallery photos, max 5MB each"
// @Success      200 {object} util.APIResponse{data=object} "Request submitted"
// @Failure      400 {object} util.APIResponse "Validation or duplicate error"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /solicitudes [post]
func CreateSolicitud(c *gin.Context) {
	nombre := util.NormalizeName(c.PostForm("nombre"))
	telefono := util.NormalizarTelefono(c.PostForm("telefono"))
	categoriaID, _ := strconv.Atoi(c.PostForm("categoria_id"))
	zonaID, _ := strconv.Atoi(c.PostForm("zona_id"))

	if nombre == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "nombre is required",
			Err: fmt.Errorf("missing nombre"),
		})
		return
	}
	if !util.TelefonoValido(c.PostForm("telefono")) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("telefono must contain at least %d digits", util.MinDigitosTelefono),
			Err: fmt.Errorf("invalid telefono"),
		})
		return
	}
	if categoriaID <= 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "categoria_id is required",
			Err: fmt.Errorf("missing categoria_id"),
		})
		return
	}
	if zonaID <= 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "zona_id is required",
			Err: fmt.Errorf("missing zona_id"),
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

	var categoria model.Categoria
	if err := db.First(&categoria, categoriaID).Error; err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown categoria_id",
			Err: err,
		})
		return
	}
	var zona model.Zona
	if err := db.First(&zona, zonaID).Error; err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Unknown zona_id",
			Err: err,
		})
		return
	}

	// Early check before any upload work; re-run inside the insert
	// transaction below to narrow the concurrent-duplicate window.
	if err := chequearDuplicado(db, telefono); err != nil {
		responderDuplicado(c, err)
		return
	}

	cfg := config.LoadConfig()
	ctx := c.Request.Context()

	var fotoURL string
	if file, err := c.FormFile("foto"); err == nil {
		fotoURL = subirFoto(ctx, file, cfg.FotosBucket, "foto", maxFotoBytes)
	}

	var galeriaURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["galeria"]
		if len(files) > maxGaleriaFotos {
			files = files[:maxGaleriaFotos]
		}
		for _, file := range files {
			if url := subirFoto(ctx, file, cfg.GaleriaBucket, "galeria", maxGaleriaBytes); url != "" {
				galeriaURLs = append(galeriaURLs, url)
			}
		}
	}

	tags := strings.Split(c.PostForm("servicios"), ",")
	serviciosTexto := construirServiciosTexto(categoria.Nombre, tags)

	catID := uint(categoriaID)
	zID := uint(zonaID)
	solicitud := model.SolicitudRegistro{
		Nombre:         nombre,
		Telefono:       telefono,
		CategoriaID:    &catID,
		ZonaID:         &zID,
		ServiciosTexto: serviciosTexto,
		Horarios:       strings.TrimSpace(c.PostForm("horarios")),
		Descripcion:    strings.TrimSpace(c.PostForm("descripcion")),
		FotoURL:        fotoURL,
		GaleriaURLs:    model.GaleriaJSON(galeriaURLs),
		FacebookURL:    strings.TrimSpace(c.PostForm("facebook_url")),
		InstagramURL:   strings.TrimSpace(c.PostForm("instagram_url")),
		TiktokURL:      strings.TrimSpace(c.PostForm("tiktok_url")),
		Estado:         model.EstadoPendiente,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := chequearDuplicado(tx, telefono); err != nil {
			return err
		}
		return tx.Create(&solicitud).Error
	})
	if err == errTelefonoRegistrado || err == errTelefonoEnRevision {
		responderDuplicado(c, err)
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to submit registration request",
			Err: err,
		})
		return
	}

	util.LogSecurityEvent(util.SecurityEvent{
		EventType: util.EventSolicitudCreada,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   fmt.Sprintf("Registration request %d created", solicitud.ID),
		Details:   map[string]interface{}{"solicitud_id": solicitud.ID, "categoria": categoria.Slug, "zona": zona.Slug},
	})

	notificarSolicitud(solicitud, categoria.Nombre, zona.Nombre)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Registration request submitted",
		Data: map[string]interface{}{"solicitud_id": solicitud.ID, "estado": solicitud.Estado},
	})
}

// notificarSolicitud sends the admin notification in the background. Absent
// mailer configuration or send failures are ignored.
func notificarSolicitud(solicitud model.SolicitudRegistro, categoriaNombre, zonaNombre string) {
	mailer := util.GetMailer()
	if mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := mailer.Send(ctx, map[string]string{
			"nombre":    solicitud.Nombre,
			"telefono":  solicitud.Telefono,
			"categoria": categoriaNombre,
			"zona":      zonaNombre,
			"servicios": solicitud.ServiciosTexto,
		})
		if err != nil {
			fmt.Printf("notificarSolicitud: admin notification failed: %v\n", err)
		}
	}()
}
