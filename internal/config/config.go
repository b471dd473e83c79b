package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Blob stores used in remote mode
const (
	BlobS3 = "s3"
	BlobR2 = "r2"
)

type Config struct {
	// Server
	Port            string
	Env             string
	ShutdownTimeout time.Duration

	// Admin gate
	AdminPassword string

	// CORS
	AllowedOrigins []string

	// Front-end
	PublicDir string

	// Storage backend selection, resolved once at startup
	StorageBackend string

	// Local mode
	DataDir    string
	UploadsDir string
	UploadsURL string

	// Remote mode: database
	DatabaseURL string

	// Remote mode: object storage
	BlobStore     string
	S3Endpoint    string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3PublicURL   string
	R2AccountID   string
	R2PublicURL   string
	UploadMaxSize int64

	// Images
	ImageMaxWidth  int
	ImageMaxHeight int
	ImageQuality   int

	// Redis (optional, enables submission rate limiting)
	RedisURL          string
	MessageRateLimit  int
	MessageRateWindow time.Duration

	// Logging
	LogLevel string
	LogFile  string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port:            getEnv("PORT", "3000"),
		Env:             getEnv("ENV", "development"),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "30s"), 30*time.Second),

		AdminPassword: getEnv("ADMIN_PASSWORD", "YourSecurePassword123"),

		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "*")),

		PublicDir: getEnv("PUBLIC_DIR", "public"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendLocal)),

		DataDir:    getEnv("DATA_DIR", "data"),
		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),
		UploadsURL: getEnv("UPLOADS_URL", "/uploads"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		BlobStore:     strings.ToLower(getEnv("BLOB_STORE", BlobS3)),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Bucket:      getEnv("S3_BUCKET", "portfolio"),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),
		S3PublicURL:   getEnv("S3_PUBLIC_URL", ""),
		R2AccountID:   getEnv("R2_ACCOUNT_ID", ""),
		R2PublicURL:   getEnv("R2_PUBLIC_URL", ""),
		UploadMaxSize: int64(parseInt(getEnv("UPLOAD_MAX_MB", "10"), 10)) * 1024 * 1024,

		ImageMaxWidth:  parseInt(getEnv("IMAGE_MAX_WIDTH", "2400"), 2400),
		ImageMaxHeight: parseInt(getEnv("IMAGE_MAX_HEIGHT", "2400"), 2400),
		ImageQuality:   parseInt(getEnv("IMAGE_QUALITY", "85"), 85),

		RedisURL:          getEnv("REDIS_URL", ""),
		MessageRateLimit:  parseInt(getEnv("MESSAGE_RATE_LIMIT", "5"), 5),
		MessageRateWindow: parseDuration(getEnv("MESSAGE_RATE_WINDOW", "10m"), 10*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "debug"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

// Validate reports configuration that cannot start a server.
func (c *Config) Validate() error {
	var errs []error

	if c.AdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD must not be empty"))
	}

	switch c.StorageBackend {
	case BackendLocal:
	case BackendRemote:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORAGE_BACKEND=remote"))
		}
		switch c.BlobStore {
		case BlobS3:
			if c.S3Bucket == "" {
				errs = append(errs, errors.New("S3_BUCKET is required when BLOB_STORE=s3"))
			}
		case BlobR2:
			if c.R2AccountID == "" {
				errs = append(errs, errors.New("R2_ACCOUNT_ID is required when BLOB_STORE=r2"))
			}
		default:
			errs = append(errs, errors.New("BLOB_STORE must be s3 or r2"))
		}
	default:
		errs = append(errs, errors.New("STORAGE_BACKEND must be local or remote"))
	}

	if c.UploadMaxSize <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_MB must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func parseInt(s string, defaultValue int) int {
	value, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return value
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}

	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// IsRemote returns true when records live in Postgres and blobs in object storage
func (c *Config) IsRemote() bool {
	return c.StorageBackend == BackendRemote
}
