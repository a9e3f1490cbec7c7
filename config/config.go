package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config holds the application's configuration values. The database settings
// are required; the storage buckets, EmailJS settings and Gemini key are
// optional feature gates, leaving them empty silently disables the feature.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`
	DBHost  string `json:"dbhost"`
	DBPort  uint16 `json:"dbport"`
	DBName  string `json:"dbname"`
	DBUser  string `json:"dbuser"`
	DBPass  string `json:"dbpass"`

	FotosBucket   string `json:"fotos_bucket"`
	GaleriaBucket string `json:"galeria_bucket"`

	EmailJSServiceID  string `json:"emailjs_service_id"`
	EmailJSTemplateID string `json:"emailjs_template_id"`
	EmailJSPublicKey  string `json:"emailjs_public_key"`
	AdminEmail        string `json:"admin_email"`

	GeminiAPIKey string `json:"gemini_api_key"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env file is fine in containerized deployments; the
		// variables may come from the environment directly.
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(os.Getenv("APPPORT"), 10, 16)
		dbPort, _ := strconv.ParseUint(os.Getenv("DBPORT"), 10, 16)

		config = &Config{
			AppName: os.Getenv("APPNAME"),
			AppEnv:  os.Getenv("APPENV"),
			AppPort: uint16(appPort),
			GinMode: os.Getenv("GINMODE"),
			DBHost:  os.Getenv("DBHOST"),
			DBPort:  uint16(dbPort),
			DBName:  os.Getenv("DBNAME"),
			DBUser:  os.Getenv("DBUSER"),
			DBPass:  os.Getenv("DBPASS"),

			FotosBucket:   os.Getenv("FOTOS_BUCKET"),
			GaleriaBucket: os.Getenv("GALERIA_BUCKET"),

			EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
			EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
			EmailJSPublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
			AdminEmail:        os.Getenv("ADMIN_EMAIL"),

			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		}
	})
	return config
}

// ConnectMySQL establishes a connection to a MySQL database using the configuration values.
func ConnectMySQL() (*gorm.DB, error) {
	// Tests run against in-memory sqlite so no external database is needed.
	if os.Getenv("APPENV") == "test" {
		return gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	}

	cfg := LoadConfig()
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
