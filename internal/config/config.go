package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWTIssuer string `mapstructure:"JWT_ISSUER"`
	JWTTTL    string `mapstructure:"JWT_TTL"`

	GeminiAPIKey        string `mapstructure:"GEMINI_API_KEY"`
	GeminiBaseURL       string `mapstructure:"GEMINI_BASE_URL"`
	GeminiModel         string `mapstructure:"GEMINI_MODEL"`
	GeminiFallbackModel string `mapstructure:"GEMINI_FALLBACK_MODEL"`
	AIMinIntervalMs     int    `mapstructure:"AI_MIN_INTERVAL_MS"`

	DoctorEmail string `mapstructure:"DOCTOR_EMAIL"`
	FamilyPhone string `mapstructure:"FAMILY_PHONE"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("JWT_ISSUER", "medassist")
	v.SetDefault("JWT_TTL", "12h")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_FALLBACK_MODEL", "gemini-1.5-flash")
	v.SetDefault("AI_MIN_INTERVAL_MS", 6000)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("JWT_ISSUER")
	v.BindEnv("JWT_TTL")
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("GEMINI_BASE_URL")
	v.BindEnv("GEMINI_MODEL")
	v.BindEnv("GEMINI_FALLBACK_MODEL")
	v.BindEnv("AI_MIN_INTERVAL_MS")
	v.BindEnv("DOCTOR_EMAIL")
	v.BindEnv("FAMILY_PHONE")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TokenTTL parses JWT_TTL, falling back to 12 hours on a bad value.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d <= 0 {
		return 12 * time.Hour
	}
	return d
}

// AIMinInterval returns the minimum spacing between AI requests.
func (c *Config) AIMinInterval() time.Duration {
	return time.Duration(c.AIMinIntervalMs) * time.Millisecond
}

// Validate checks that the configuration is safe to run. DATABASE_URL is
// always required; outside development a JWT secret must be set so real
// authentication is enforced.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q. "+
			"Refusing to start without authentication configuration", c.Env)
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}
