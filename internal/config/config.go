package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const devJWTSecret = "dev-secret-change-me"

var defaultDomains = []string{"SAP", "DevOps", "Java", "Python", "Data Science", "Testing", "PowerBI"}

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	S3       S3Config
	Kafka    KafkaConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Location *time.Location
	Domains  []string
}

func (a AppConfig) IsProduction() bool { return a.Env == EnvProduction }

// ExposeOTP is true only for local development, where mail is usually not wired.
func (a AppConfig) ExposeOTP() bool { return a.Env == EnvDevelopment }

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled mirrors the mail gateway contract: without credentials mail is skipped.
func (s SMTPConfig) Enabled() bool { return s.Username != "" && s.Password != "" }

type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

func (s S3Config) Enabled() bool { return s.AccessKeyID != "" && s.SecretAccessKey != "" }

type KafkaConfig struct {
	Broker  string
	GroupID string
}

func (k KafkaConfig) Enabled() bool { return k.Broker != "" }

type SeedConfig struct {
	AdminEmail      string
	AdminPassword   string
	AdminEmployeeID string
	AdminName       string
}

// Load reads configuration from the environment. godotenv.Load is expected to
// have run already in main.
func Load() (*Config, error) {
	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Local"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:     getEnv("APP_NAME", "Priacc Attendance Portal"),
			Env:      getEnv("APP_ENV", EnvProduction),
			Port:     getEnv("PORT", "8001"),
			Location: loc,
			Domains:  getList("APP_DOMAINS", defaultDomains),
		},
		Database: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   os.Getenv("DB_PASSWORD"),
			Name:       getEnv("DB_NAME", "attendance"),
			Port:       getEnv("DB_PORT", "5432"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxRetries: getInt("DB_MAX_RETRIES", 5),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Expiry: time.Duration(getInt("ACCESS_TOKEN_EXPIRE_MINUTES", 1440)) * time.Minute,
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "noreply@priacc.com"),
		},
		S3: S3Config{
			Bucket:          getEnv("S3_BUCKET_NAME", "priacc-attendance-photos"),
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
		},
		Kafka: KafkaConfig{
			Broker:  os.Getenv("KAFKA_BROKER"),
			GroupID: getEnv("KAFKA_GROUP_ID", "attendance-audit"),
		},
		Seed: SeedConfig{
			AdminEmail:      getEnv("SEED_ADMIN_EMAIL", "admin@priacc.com"),
			AdminPassword:   getEnv("SEED_ADMIN_PASSWORD", "Admin@123"),
			AdminEmployeeID: getEnv("SEED_ADMIN_EMPLOYEE_ID", "HR001"),
			AdminName:       getEnv("SEED_ADMIN_NAME", "HR Admin"),
		},
	}

	if cfg.App.Port == "" {
		return nil, errors.New("config: PORT is required")
	}
	if cfg.JWT.Secret == "" {
		if cfg.App.IsProduction() {
			return nil, errors.New("config: JWT_SECRET is required in production")
		}
		cfg.JWT.Secret = devJWTSecret
	}
	if cfg.JWT.Expiry <= 0 {
		return nil, errors.New("config: ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}

	return cfg, nil
}

// Warnings lists settings that are unsafe outside a developer machine.
func (c *Config) Warnings() []string {
	var out []string
	if c.App.ExposeOTP() {
		out = append(out, "APP_ENV=development: password reset OTP is returned in the API response")
	}
	if c.JWT.Secret == devJWTSecret {
		out = append(out, "JWT_SECRET unset: tokens are signed with the built-in development secret")
	}
	return out
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
