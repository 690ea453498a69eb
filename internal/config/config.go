package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	MongoURI string
	MongoDB  string

	// Distinct signing secrets, one per token kind.
	JWTAccessSecret  string
	JWTRefreshSecret string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OTELEndpoint   string
	AllowedOrigins []string

	// When true, internal error detail is included in responses.
	// Defaults to true outside prod, overridable with EXPOSE_ERRORS.
	ExposeErrors bool

	Auth AuthPolicy
}

// AuthPolicy declares which resource route groups sit behind the auth gate.
// Keeping this as data rather than wiring makes the current coverage
// (orders protected, users/products open) a visible policy choice.
type AuthPolicy struct {
	Users    bool
	Products bool
	Orders   bool
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")

	return Config{
		Env:  env,
		Port: getEnvInt("PORT", 3001),

		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:  getEnv("MONGO_DB", "shophub"),

		JWTAccessSecret:  getEnv("JWT_KEY", ""),
		JWTRefreshSecret: getEnv("JWT_REFRESH_KEY", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OTELEndpoint:   getEnv("OTEL_EXPORTER_ENDPOINT", ""),
		AllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		ExposeErrors: getEnvBool("EXPOSE_ERRORS", env != "prod"),

		Auth: AuthPolicy{
			Users:    getEnvBool("AUTH_PROTECT_USERS", false),
			Products: getEnvBool("AUTH_PROTECT_PRODUCTS", false),
			Orders:   getEnvBool("AUTH_PROTECT_ORDERS", true),
		},
	}
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return b
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
