package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL    string `validate:"required"`
	Port           string `validate:"required,numeric"`
	DBMaxOpenConns int    `validate:"gte=1"`
	DBMaxIdleConns int    `validate:"gte=0"`
	RunMigrations  bool
	CORSOrigins    []string

	// Pixel e token podem faltar: o servidor sobe e o webhook devolve erro de configuração.
	PixelID         string
	AccessToken     string
	MetaBaseURL     string `validate:"required,url"`
	MetaAPIVersion  string `validate:"required,startswith=v"`
	MetaTestCode    string
	DispatchTimeout time.Duration `validate:"gt=0"`

	RabbitMQURL string `validate:"omitempty,url"`

	MailHost   string
	MailPort   int `validate:"gte=0,lte=65535"`
	MailUser   string
	MailPass   string
	AlertEmail string `validate:"omitempty,email"`
}

var validate = validator.New()

// Load lê o .env (se existir) e as variáveis de ambiente.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}
	return FromEnv()
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Port:           getEnv("PORT", "10000"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		RunMigrations:  getEnvBool("RUN_MIGRATIONS", true),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),

		PixelID:         os.Getenv("PIXEL_ID"),
		AccessToken:     os.Getenv("FB_ACCESS_TOKEN"),
		MetaBaseURL:     getEnv("META_BASE_URL", "https://graph.facebook.com"),
		MetaAPIVersion:  getEnv("META_API_VERSION", "v24.0"),
		MetaTestCode:    os.Getenv("META_TEST_EVENT_CODE"),
		DispatchTimeout: getEnvDuration("META_TIMEOUT", 10*time.Second),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		MailHost:   os.Getenv("MAIL_HOST"),
		MailPort:   getEnvInt("MAIL_PORT", 587),
		MailUser:   os.Getenv("MAIL_USER"),
		MailPass:   os.Getenv("MAIL_PASS"),
		AlertEmail: os.Getenv("ALERT_EMAIL"),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuração inválida: %w", err)
	}

	return cfg, nil
}

func (c *Config) MetaConfigured() bool {
	return c.PixelID != "" && c.AccessToken != ""
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("⚠️ %s inválido (%q), usando %d", key, val, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Printf("⚠️ %s inválido (%q), usando %t", key, val, def)
		return def
	}
	return b
}

// getEnvDuration aceita "10s", "500ms" ou só segundos ("10").
func getEnvDuration(key string, def time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("⚠️ %s inválido (%q), usando %s", key, val, def)
		return def
	}
	return d
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
