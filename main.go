// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oficiossde/directorio-api/config"
	"github.com/oficiossde/directorio-api/endpoint"
	"github.com/oficiossde/directorio-api/middleware"
	"github.com/oficiossde/directorio-api/model"
	"github.com/oficiossde/directorio-api/util"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("Error connecting to MySQL: %v", err)
	}
	err = db.AutoMigrate(
		&model.Categoria{},
		&model.Zona{},
		&model.Profesional{},
		&model.Servicio{},
		&model.GaleriaTrabajo{},
		&model.Resena{},
		&model.SolicitudRegistro{},
		&model.User{},
		&model.Role{},
		&model.Session{},
		&model.SecurityLog{},
	)
	if err != nil {
		log.Fatalf("Error running migrations: %v", err)
	}
	if err := model.SeedRoles(db); err != nil {
		log.Printf("Warning: failed to seed roles: %v", err)
	}
	if err := model.SeedCategorias(db); err != nil {
		log.Printf("Warning: failed to seed categorias: %v", err)
	}
	if err := model.SeedZonas(db); err != nil {
		log.Printf("Warning: failed to seed zonas: %v", err)
	}

	// Redis is optional; middleware falls back to MySQL when it is absent.
	config.ConnectRedis()

	util.SetSecurityLoggerDB(db)
	util.InitGeoIP("")
	defer util.CloseGeoIP()
	util.InitUserEmailCache(0)

	setupIntegrations(cfg)

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))
	router.Use(middleware.EndpointCallLogger())

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	// Public catalog and listing
	router.GET("/categorias", endpoint.ListCategorias)
	router.GET("/zonas", endpoint.ListZonas)
	router.GET("/profesionales", endpoint.ListProfesionales)
	router.GET("/profesionales/:id", endpoint.GetProfesional)
	router.POST("/profesionales/:id/contacto", endpoint.RegistrarContacto)
	router.GET("/profesionales/:id/resenas", endpoint.ListResenas)
	router.POST("/profesionales/:id/resenas", endpoint.CreateResena)

	// Registration funnel and AI rewrite, both rate limited
	funnelLimit := middleware.RateLimiter(middleware.RateLimitConfig{Limit: 10, Window: time.Minute})
	router.POST("/solicitudes", funnelLimit, endpoint.CreateSolicitud)
	router.POST("/descripcion/reescribir", funnelLimit, endpoint.ReescribirDescripcion)

	// Admin authentication
	loginLimit := middleware.RateLimiter(middleware.RateLimitConfig{Limit: 5, Window: time.Minute, Prefix: "ratelimit:login"})
	router.POST("/login", loginLimit, endpoint.Login)
	router.DELETE("/logout", endpoint.Logout)
	router.GET("/token/validate", endpoint.ValidateToken)

	// Admin area
	admin := router.Group("/admin", middleware.SessionAuth())
	admin.GET("/solicitudes", endpoint.ListSolicitudes)
	admin.POST("/solicitudes/:id/aprobar", endpoint.AprobarSolicitud)
	admin.POST("/solicitudes/:id/rechazar", endpoint.RechazarSolicitud)
	admin.GET("/profesionales", endpoint.ListProfesionalesAdmin)
	admin.PATCH("/profesionales/:id", endpoint.UpdateProfesional)
	admin.DELETE("/profesionales/:id", endpoint.DeleteProfesional)
	admin.GET("/profesionales/:id/galeria", endpoint.ListGaleria)
	admin.POST("/profesionales/:id/galeria", endpoint.UploadGaleria)
	admin.PATCH("/profesionales/:id/galeria/orden", endpoint.ReorderGaleria)
	admin.DELETE("/galeria/:id", endpoint.DeleteGaleria)
	admin.GET("/resenas", endpoint.ListResenasAdmin)
	admin.PATCH("/resenas/:id", endpoint.ModerateResena)
	admin.DELETE("/resenas/:id", endpoint.DeleteResena)
	admin.GET("/dashboard", endpoint.Dashboard)
	admin.GET("/analytics", endpoint.Analytics)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}

// setupIntegrations wires the optional external services. Each one is a
// feature gate: missing configuration leaves the integration nil and the
// dependent endpoints degrade gracefully.
func setupIntegrations(cfg *config.Config) {
	ctx := context.Background()

	if cfg.FotosBucket != "" || cfg.GaleriaBucket != "" {
		uploader, err := util.NewGCSUploader(ctx)
		if err != nil {
			log.Printf("Warning: photo uploads disabled, GCS client failed: %v", err)
		} else {
			util.SetUploader(uploader)
		}
	}

	if mailer := util.NewEmailJSMailer(cfg.EmailJSServiceID, cfg.EmailJSTemplateID, cfg.EmailJSPublicKey, cfg.AdminEmail); mailer != nil {
		util.SetMailer(mailer)
	}

	if cfg.GeminiAPIKey != "" {
		reescritor, err := util.NewGeminiReescritor(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("Warning: description rewriting disabled, Gemini client failed: %v", err)
		} else {
			util.SetReescritor(reescritor)
		}
	}
}
