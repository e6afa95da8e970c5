package infra

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	Environment        string
	RdwBaseUrl         string
	RdwAppToken        string
	RdwTimeout         time.Duration
	RdwIncludeBody     bool
	FailurePolicy      string
	SupabaseUrl        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	CorsAllowOrigins   []string
	StaticDir          string

	ResourceBasis                string
	ResourceBrandstof            string
	ResourceKleur                string
	ResourceCarrosserie          string
	ResourceCarrosserieSpecifiek string
	ResourceAssen                string
}

func NewConfig() Config {
	if os.Getenv("ENVIRONMENT") == "" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("no .env file found, relying on process environment")
		}
	}

	return Config{
		ServerPort:         getEnv("SERVER_PORT", ":8080"),
		Environment:        os.Getenv("ENVIRONMENT"),
		RdwBaseUrl:         getEnv("RDW_BASE_URL", "https://opendata.rdw.nl"),
		RdwAppToken:        os.Getenv("RDW_APP_TOKEN"),
		RdwTimeout:         getDuration("RDW_TIMEOUT", 10*time.Second),
		RdwIncludeBody:     getEnv("RDW_INCLUDE_BODY", "true") == "true",
		FailurePolicy:      getEnv("FAILURE_POLICY", "partial"),
		SupabaseUrl:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		CorsAllowOrigins:   splitOrigins(getEnv("CORS_ALLOW_ORIGINS", "*")),
		StaticDir:          getEnv("STATIC_DIR", "public"),

		ResourceBasis:                getEnv("RDW_RESOURCE_BASIS", "m9d7-ebf2"),
		ResourceBrandstof:            getEnv("RDW_RESOURCE_BRANDSTOF", "8ys7-d773"),
		ResourceKleur:                getEnv("RDW_RESOURCE_KLEUR", "m9d7-ebf2"),
		ResourceCarrosserie:          getEnv("RDW_RESOURCE_CARROSSERIE", "vezc-m2t6"),
		ResourceCarrosserieSpecifiek: getEnv("RDW_RESOURCE_CARROSSERIE_SPECIFIEK", "jhie-znh9"),
		ResourceAssen:                getEnv("RDW_RESOURCE_ASSEN", "3huj-srit"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s value %q, using default %s", key, value, fallback)
		return fallback
	}
	return parsed
}

func splitOrigins(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
