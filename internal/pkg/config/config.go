package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/piresc/mfs/internal/pkg/models"
)

const (
	defaultPort           = 5000
	defaultTokenLifetime  = 365 * 24 * 60 // minutes
	defaultBcryptCost     = 10
	defaultMongoHost      = "cluster0.talr0yk.mongodb.net"
	defaultDatabaseName   = "mfsDB"
	defaultCollectionName = "users"
)

var defaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:5174"}

func InitConfig(configPath string) *models.Config {
	local := GetEnv("APP_ENV", "local")
	if local == "local" {
		// Load config from file
		err := godotenv.Load(configPath)
		if err != nil {
			log.Println("error loading config from file", err)
		}
	}
	// Create config from environment variables
	return loadConfigFromEnv()
}

func loadConfigFromEnv() *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = GetEnv("APP_NAME", "mfs-users")
	configs.App.Environment = GetEnv("APP_ENV", "local")
	configs.App.Debug = GetEnvAsBool("APP_DEBUG", false)
	configs.App.Version = GetEnv("APP_VERSION", "")

	// Server config, PORT wins over SERVER_PORT
	configs.Server.Host = GetEnv("SERVER_HOST", "")
	configs.Server.Port = GetEnvAsInt("PORT", GetEnvAsInt("SERVER_PORT", defaultPort))
	configs.Server.ShutdownTimeout = GetEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30)

	// Database config
	configs.Database.Driver = strings.ToLower(GetEnv("DB_DRIVER", "mongo"))
	configs.Database.URI = GetEnv("MONGO_URI", GetEnv("DATABASE_URL", ""))
	configs.Database.Host = GetEnv("DB_HOST", defaultMongoHost)
	configs.Database.Port = GetEnvAsInt("DB_PORT", 5432)
	configs.Database.Username = GetEnv("DB_USER", "")
	configs.Database.Password = GetEnv("DB_PASS", "")
	configs.Database.Database = GetEnv("DB_NAME", defaultDatabaseName)
	configs.Database.Collection = GetEnv("DB_COLLECTION", defaultCollectionName)
	configs.Database.SSLMode = GetEnv("DB_SSL_MODE", "disable")
	configs.Database.MaxConns = GetEnvAsInt("DB_MAX_CONNS", 0)
	configs.Database.ConnectTimeout = GetEnvAsInt("DB_CONNECT_TIMEOUT", 10)
	configs.Database.ConnectRetries = GetEnvAsInt("DB_CONNECT_RETRIES", 3)

	// JWT config
	configs.JWT.Secret = GetEnv("JWT_SECRET", "")
	configs.JWT.Expiration = GetEnvAsInt("JWT_EXPIRATION", defaultTokenLifetime)

	// Credential hashing
	configs.Auth.BcryptCost = GetEnvAsInt("BCRYPT_COST", defaultBcryptCost)

	// CORS config
	configs.CORS.AllowedOrigins = GetEnvAsSlice("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins)
	configs.CORS.AllowCredentials = GetEnvAsBool("CORS_ALLOW_CREDENTIALS", true)

	// NewRelic config
	configs.NewRelic.LicenseKey = GetEnv("NEW_RELIC_LICENSE_KEY", "")
	configs.NewRelic.AppName = GetEnv("NEW_RELIC_APP_NAME", configs.App.Name)
	configs.NewRelic.Enabled = GetEnvAsBool("NEW_RELIC_ENABLED", false)
	configs.NewRelic.ForwardLogs = GetEnvAsBool("NEW_RELIC_FORWARD_LOGS", false)

	// Logger config
	configs.Logger.Level = GetEnv("LOG_LEVEL", "info")
	configs.Logger.FilePath = GetEnv("LOG_FILE_PATH", "")

	return configs
}

// Helper functions to get environment variables with different types
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

// GetEnvAsSlice splits a comma separated variable, dropping empty items
func GetEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
