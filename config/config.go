package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings for the site builder services.
// Everything comes from environment variables; a .env file is honored
// in development.
type Config struct {
	Port            string
	SupabaseURL     string
	SupabaseKey     string
	JWTSecret       string
	SiteDomain      string
	TemplatesBucket string
	PublicBucket    string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; missing Supabase credentials are.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only.")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseKey:     os.Getenv("SUPABASE_SERVICE_KEY"),
		JWTSecret:       os.Getenv("SUPABASE_JWT_SECRET"),
		SiteDomain:      getEnv("SITE_DOMAIN", "ctcsite.com"),
		TemplatesBucket: getEnv("TEMPLATES_BUCKET", "site-templates"),
		PublicBucket:    getEnv("PUBLIC_BUCKET", "public-sites"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
