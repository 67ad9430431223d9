package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	Port      string
	DBDriver  string
	DBSource  string
	JWTSecret string
	JWTTTL    time.Duration

	// External collaborators. Empty URLs select the local fallbacks
	// (sandbox gateway, log notifier).
	PaymentGatewayURL string
	NotifierURL       string

	CORSOrigins []string
	CartTTL     time.Duration
	SeedDemo    bool
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	return &Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8000"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBSource:          getEnv("DB_SOURCE", "localeats.db"),
		JWTSecret:         getEnv("JWT_SECRET", "changeme"),
		JWTTTL:            24 * time.Hour,
		PaymentGatewayURL: os.Getenv("PAYMENT_GATEWAY_URL"),
		NotifierURL:       os.Getenv("NOTIFIER_URL"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "*")),
		CartTTL:           time.Duration(getEnvInt("CART_TTL_MINUTES", 240)) * time.Minute,
		SeedDemo:          getEnv("SEED_DEMO", "true") == "true",
	}
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
