package config

import (
	"os"
	"strings"
)

type Config struct {
	Port       string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret       string
	JWTExpiresHours string // token lifetime in hours (default 168 = 7 days)

	AdminEmail    string
	AdminPassword string
	AdminName     string

	// When true, listing/read endpoints for attendance and rosters also require a
	// valid token. Mutating endpoints are always protected.
	ProtectReads bool
}

func Load() *Config {
	return &Config{
		Port:       getenv("PORT", "8080"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenv("DB_PORT", "5432"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD", "postgres"),
		DBName:     getenv("DB_NAME", "escola_db"),
		DBSSLMode:  getenv("DB_SSLMODE", "disable"),

		JWTSecret:       getenv("JWT_SECRET", "supersecret_change_me"),
		JWTExpiresHours: getenv("JWT_EXPIRES_HOURS", "168"),

		AdminEmail:    getenv("ADMIN_EMAIL", "admin@escola.local"),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
		AdminName:     getenv("ADMIN_NAME", "Administrador"),

		ProtectReads: parseBool(getenv("AUTH_PROTECT_READS", "false")),
	}
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "y":
		return true
	}
	return false
}
