package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Logging  LoggingConfig
	Database DatabaseConfig
	Server   ServerConfig
	Storage  StorageConfig
	OCR      OCRConfig
	Extract  ExtractConfig
}

// LoggingConfig holds logger-related configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	MaxUploadMB     int
	ShutdownTimeout time.Duration
}

// StorageConfig holds uploaded-file storage configuration
type StorageConfig struct {
	Dir string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	TesseractBin string
	TessdataDir  string
	Language     string
	PageSegMode  int
	DPI          int
	MaxPages     int
	Enhance      bool
	PageWorkers  int
	UseTextLayer bool
}

// ExtractConfig holds field-extraction configuration
type ExtractConfig struct {
	GSTRate float64
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_DSN", "gst-helper.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			Addr:            getEnv("ADDR", ":8000"),
			MaxUploadMB:     getEnvAsInt("UPLOAD_MAX_MB", 15),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Storage: StorageConfig{
			Dir: getEnv("STORAGE_DIR", "./uploads"),
		},
		OCR: OCRConfig{
			TesseractBin: getEnv("TESSERACT", "tesseract"),
			TessdataDir:  getEnv("TESSDATA_PREFIX", ""),
			Language:     getEnv("OCR_LANG", "eng"),
			PageSegMode:  getEnvAsInt("OCR_PSM", 0),
			DPI:          getEnvAsInt("OCR_DPI", 300),
			MaxPages:     getEnvAsInt("OCR_MAX_PAGES", 10),
			Enhance:      getEnvAsBool("OCR_ENHANCE", true),
			PageWorkers:  getEnvAsInt("OCR_PAGE_WORKERS", 1),
			UseTextLayer: getEnvAsBool("OCR_TEXT_LAYER", true),
		},
		Extract: ExtractConfig{
			GSTRate: getEnvAsFloat64("GST_RATE", 0.10),
			Timeout: getEnvAsDuration("EXTRACT_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_DSN is required", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "ADDR is required", ErrInvalidInput)
	}
	if c.Extract.GSTRate <= 0 || c.Extract.GSTRate >= 1 {
		return NewAppError("CONFIG_ERROR", "GST_RATE must be between 0 and 1", ErrInvalidInput)
	}
	if c.Extract.Timeout <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_TIMEOUT must be positive", ErrInvalidInput)
	}
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	if c.OCR.PageWorkers < 1 {
		return NewAppError("CONFIG_ERROR", "OCR_PAGE_WORKERS must be at least 1", ErrInvalidInput)
	}
	return nil
}
