package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort       string        // Application port
	DBDriver      string        // Database driver: mysql or sqlite
	DBUser        string        // Database user
	DBPassword    string        // Database password
	DBHost        string        // Database host
	DBPort        string        // Database port
	DBName        string        // Database name
	DBPath        string        // SQLite database file
	JWTSecret     string        // JWT secret key
	JWTTTL        time.Duration // Session token lifetime
	RedisAddr     string        // Redis server address, empty disables caching
	RedisPass     string        // Redis password
	RedisDB       int           // Redis database number
	CacheTTL      time.Duration // Response cache lifetime
	CORSOrigins   []string      // Allowed browser origins
	IsProd        bool          // Is production environment
	LogLevel      string        // logrus level name
	CreateAdmin   bool          // Seed a default admin on migration
	AdminEmail    string        // Default admin email
	AdminPassword string        // Default admin password
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBName:        getEnv("DB_NAME", "storefront"),
		DBPath:        getEnv("DB_PATH", "storefront.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        time.Duration(getInt("JWT_TTL_HOURS", 24)) * time.Hour,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPass:     os.Getenv("REDIS_PASS"),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      time.Duration(getInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		IsProd:        os.Getenv("IS_PROD") == "true",
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CreateAdmin:   os.Getenv("CREATE_ADMIN") == "true",
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=true&loc=UTC"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
