package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig
	Cache    CacheConfig
	Uploads  UploadsConfig
	Exports  ExportsConfig
	Contact  ContactConfig
	Event    EventConfig
	Admin    AdminConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig governs caching of public listings.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// UploadsConfig controls where uploaded images live and how they are served.
type UploadsConfig struct {
	Dir              string
	PublicURL        string
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// ExportsConfig signs short-lived download links for admin exports. Dir must
// sit outside the statically served uploads directory.
type ExportsConfig struct {
	Dir             string
	SignedURLSecret string
	SignedURLTTL    time.Duration
}

// ContactConfig points at the third-party form relay.
type ContactConfig struct {
	RelayURL string
	Timeout  time.Duration
}

// EventConfig describes the conference itself.
type EventConfig struct {
	Name      string
	Start     time.Time
	End       time.Time
	Timezone  string
	Location  *time.Location
	Venue     string
	Address   string
	City      string
	Region    string
	Country   string
	Postal    string
	Website   string
	Email     string
	Organizer string
}

// AdminConfig seeds the first back-office account.
type AdminConfig struct {
	Email    string
	Password string
	FullName string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled: v.GetBool("ENABLE_CACHE"),
		TTL:     parseDuration(v.GetString("PUBLIC_CACHE_TTL"), 5*time.Minute),
	}

	maxUpload := v.GetInt64("UPLOADS_MAX_FILE_SIZE")
	if maxUpload <= 0 {
		maxUpload = 5 * 1024 * 1024
	}
	cfg.Uploads = UploadsConfig{
		Dir:              v.GetString("UPLOADS_DIR"),
		PublicURL:        strings.TrimRight(v.GetString("UPLOADS_PUBLIC_URL"), "/"),
		MaxFileSizeBytes: maxUpload,
		AllowedMIMEs:     splitAndTrim(v.GetString("UPLOADS_ALLOWED_MIME_TYPES")),
	}

	cfg.Exports = ExportsConfig{
		Dir:             v.GetString("EXPORTS_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 15*time.Minute),
	}
	if within(cfg.Exports.Dir, cfg.Uploads.Dir) {
		return nil, fmt.Errorf("EXPORTS_DIR %q must not be inside UPLOADS_DIR %q", cfg.Exports.Dir, cfg.Uploads.Dir)
	}

	cfg.Contact = ContactConfig{
		RelayURL: v.GetString("CONTACT_RELAY_URL"),
		Timeout:  parseDuration(v.GetString("CONTACT_RELAY_TIMEOUT"), 10*time.Second),
	}

	event, err := loadEvent(v)
	if err != nil {
		return nil, err
	}
	cfg.Event = event

	cfg.Admin = AdminConfig{
		Email:    v.GetString("ADMIN_EMAIL"),
		Password: v.GetString("ADMIN_PASSWORD"),
		FullName: v.GetString("ADMIN_FULL_NAME"),
	}

	return cfg, nil
}

func loadEvent(v *viper.Viper) (EventConfig, error) {
	tz := v.GetString("EVENT_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return EventConfig{}, err
	}
	start, err := time.ParseInLocation(time.RFC3339, v.GetString("EVENT_START"), loc)
	if err != nil {
		return EventConfig{}, err
	}
	end, err := time.ParseInLocation(time.RFC3339, v.GetString("EVENT_END"), loc)
	if err != nil {
		return EventConfig{}, err
	}
	return EventConfig{
		Name:      v.GetString("EVENT_NAME"),
		Start:     start,
		End:       end,
		Timezone:  tz,
		Location:  loc,
		Venue:     v.GetString("EVENT_VENUE"),
		Address:   v.GetString("EVENT_ADDRESS"),
		City:      v.GetString("EVENT_CITY"),
		Region:    v.GetString("EVENT_REGION"),
		Country:   v.GetString("EVENT_COUNTRY"),
		Postal:    v.GetString("EVENT_POSTAL_CODE"),
		Website:   strings.TrimRight(v.GetString("EVENT_WEBSITE"), "/"),
		Email:     v.GetString("EVENT_EMAIL"),
		Organizer: v.GetString("EVENT_ORGANIZER"),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "community_day")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "acd2026-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("PUBLIC_CACHE_TTL", "5m")

	v.SetDefault("UPLOADS_DIR", "./uploads")
	v.SetDefault("UPLOADS_PUBLIC_URL", "http://localhost:8080/uploads")
	v.SetDefault("UPLOADS_MAX_FILE_SIZE", 5*1024*1024)
	v.SetDefault("UPLOADS_ALLOWED_MIME_TYPES", "image/png,image/jpeg,image/webp,image/svg+xml")

	v.SetDefault("EXPORTS_DIR", "./data/exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "15m")

	v.SetDefault("CONTACT_RELAY_URL", "https://formspree.io/f/YOUR_FORM_ID")
	v.SetDefault("CONTACT_RELAY_TIMEOUT", "10s")

	v.SetDefault("EVENT_NAME", "AWS Community Day 2026")
	v.SetDefault("EVENT_START", "2026-02-28T09:00:00+05:30")
	v.SetDefault("EVENT_END", "2026-02-28T18:00:00+05:30")
	v.SetDefault("EVENT_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("EVENT_VENUE", "Parul University, Vadodara")
	v.SetDefault("EVENT_ADDRESS", "Parul University, Limda, Vadodara, Gujarat 391110, India")
	v.SetDefault("EVENT_CITY", "Vadodara")
	v.SetDefault("EVENT_REGION", "GJ")
	v.SetDefault("EVENT_COUNTRY", "IN")
	v.SetDefault("EVENT_POSTAL_CODE", "391110")
	v.SetDefault("EVENT_WEBSITE", "https://acdahm2026.vercel.app")
	v.SetDefault("EVENT_EMAIL", "contact@awscommunityday2026.com")
	v.SetDefault("EVENT_ORGANIZER", "AWS User Group Ahmedabad")

	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("ADMIN_FULL_NAME", "Organizer")
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// within reports whether dir is root or lies below it.
func within(dir, root string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absDir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
