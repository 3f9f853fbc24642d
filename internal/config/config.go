package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	HTTPPort         string
	DataPath         string // flat data file holding all outgoing records
	JWTSecret        string
	OperatorUsername string
	OperatorPassword string
	CORSOrigins      string
	PDFFontPath      string // optional Unicode TTF for the summary PDF
	LogLevel         string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DataPath:         getEnv("DATA_PATH", "outgoing_data.csv"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		OperatorUsername: getEnv("OPERATOR_USERNAME", "abdulsalam"),
		OperatorPassword: getEnv("OPERATOR_PASSWORD", ""),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		PDFFontPath:      getEnv("PDF_FONT_PATH", "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set; it is required")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal().Msg("JWT_SECRET must be at least 32 characters")
	}
	if cfg.OperatorPassword == "" {
		log.Fatal().Msg("OPERATOR_PASSWORD is not set; it is required")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Warn().Msg("CORS_ALLOWED_ORIGINS is using the default value; set your own origin for production")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
