package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the environment driven configuration for the service.
// Secrets have no in-code defaults and must come from the environment.
type Config struct {
	Port              string
	MongoURI          string
	DBName            string
	JWTSecret         string
	AppEnv            string
	ClientOrigin      string
	LogPath           string
	LogLevel          string
	LogMaxSizeMB      int
	LogMaxBackups     int
	LogMaxAgeDays     int
	AuthRatePerMinute int
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:              getenv("PORT", "8000"),
		MongoURI:          getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:            getenv("DB_NAME", "debugdiary"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AppEnv:            getenv("APP_ENV", "development"),
		ClientOrigin:      getenv("CLIENT_ORIGIN", "http://localhost:5173"),
		LogPath:           os.Getenv("LOG_PATH"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		LogMaxSizeMB:      getint("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups:     getint("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays:     getint("LOG_MAX_AGE_DAYS", 7),
		AuthRatePerMinute: getint("AUTH_RATE_PER_MINUTE", 30),
	}
}

// IsProduction reports whether the service runs with production cookie
// attributes (Secure, SameSite=None).
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
