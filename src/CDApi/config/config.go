package config

import (
	"os"
)

type Config struct {
	MySQLDSN    string
	RedisURL    string
	JWTSecret   string
	Port        string
	CatalogPath string
	CacheTTL    string
	AllowOrigin string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func Load() Config {
	return Config{
		MySQLDSN:    getenv("MYSQL_DSN", "dev:test@tcp(localhost:3306)/crewdesk"),
		RedisURL:    getenv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:   getenv("JWT_SECRET", "dev-only-secret"),
		Port:        getenv("PORT", "8080"),
		// Empty means the catalog loads from MySQL instead of a YAML file.
		CatalogPath: os.Getenv("AGENT_CATALOG"),
		CacheTTL:    getenv("MISSION_CACHE_TTL", "30s"),
		AllowOrigin: getenv("ALLOW_ORIGIN", "http://localhost:3000"),
	}
}
