package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Redis   RedisConfig
	DB      DBConfig
	Log     LogConfig
	Drafter DrafterConfig
	CORS    CORSConfig
	Seller  SellerConfig
	Email   EmailConfig
	S3      S3Config
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// StoreConfig selects and keys the invoice store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend"` // memory, redis, postgres
	Key     string `mapstructure:"key"`     // key the invoice list lives under
}

// RedisConfig holds Redis connection settings for the redis store backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DBConfig holds PostgreSQL connection settings for the postgres store backend.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DrafterProviderConfig holds settings for a single LLM drafter provider.
type DrafterProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// DrafterConfig holds AI drafter settings with primary/secondary fallback.
type DrafterConfig struct {
	Primary   DrafterProviderConfig `mapstructure:"primary"`
	Secondary DrafterProviderConfig `mapstructure:"secondary"`
}

// SecondaryConfig returns the secondary drafter provider config, or nil if
// not configured.
func (d *DrafterConfig) SecondaryConfig() *DrafterProviderConfig {
	if d.Secondary.Provider != "" {
		return &d.Secondary
	}
	return nil
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SellerConfig seeds the default seller identity for a fresh session.
type SellerConfig struct {
	Name       string `mapstructure:"name"`
	Address    string `mapstructure:"address"`
	Pincode    string `mapstructure:"pincode"`
	State      string `mapstructure:"state"`
	Email      string `mapstructure:"email"`
	MobNo      string `mapstructure:"mob_no"`
	GSTIN      string `mapstructure:"gstin"`
	PAN        string `mapstructure:"pan"`
	BankName   string `mapstructure:"bank_name"`
	BranchName string `mapstructure:"branch_name"`
	AccountNo  string `mapstructure:"account_no"`
	IFSCCode   string `mapstructure:"ifsc_code"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"` // noop or ses
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// S3Config holds the optional S3 PDF archive settings. An empty bucket
// disables archiving.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Prefix        string `mapstructure:"prefix"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// Load reads configuration from environment variables with the BILLFORGE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Store defaults
	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.key", "invoices")

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "billforge")
	v.SetDefault("db.password", "billforge_secret")
	v.SetDefault("db.name", "billforge_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Drafter defaults
	v.SetDefault("drafter.primary.provider", "gemini")
	v.SetDefault("drafter.primary.api_key", "")
	v.SetDefault("drafter.primary.default_model", "gemini-2.5-flash")
	v.SetDefault("drafter.primary.timeout_secs", 60)
	v.SetDefault("drafter.secondary.provider", "")
	v.SetDefault("drafter.secondary.api_key", "")
	v.SetDefault("drafter.secondary.default_model", "")
	v.SetDefault("drafter.secondary.timeout_secs", 60)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Seller defaults (the identity a fresh session is seeded with)
	v.SetDefault("seller.name", "Gift Plus")
	v.SetDefault("seller.address", "Ground Floor, 9TH MAIN, DWARAKANAGAR, Chikkabanavara, Bengaluru")
	v.SetDefault("seller.pincode", "560090")
	v.SetDefault("seller.state", "Karnataka")
	v.SetDefault("seller.email", "giftplus0024@gmail.com")
	v.SetDefault("seller.mob_no", "8920310249")
	v.SetDefault("seller.gstin", "29BXCPT1687G1ZZ")
	v.SetDefault("seller.pan", "BXCPT1687G")
	v.SetDefault("seller.bank_name", "HDFC Bank")
	v.SetDefault("seller.branch_name", "CHIKKABANAVARA")
	v.SetDefault("seller.account_no", "50200094338859")
	v.SetDefault("seller.ifsc_code", "HDFC0007222")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@billforge.in")
	v.SetDefault("email.from_name", "BillForge")

	// S3 defaults (archiving disabled until a bucket is set)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.prefix", "invoices")
	v.SetDefault("s3.presign_expiry", 3600)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "BILLFORGE_SERVER_PORT",
		"server.read_timeout":  "BILLFORGE_SERVER_READ_TIMEOUT",
		"server.write_timeout": "BILLFORGE_SERVER_WRITE_TIMEOUT",
		"server.environment":   "BILLFORGE_SERVER_ENVIRONMENT",
		"store.backend":        "BILLFORGE_STORE_BACKEND",
		"store.key":            "BILLFORGE_STORE_KEY",
		"redis.addr":           "BILLFORGE_REDIS_ADDR",
		"redis.password":       "BILLFORGE_REDIS_PASSWORD",
		"redis.db":             "BILLFORGE_REDIS_DB",
		"db.host":              "BILLFORGE_DB_HOST",
		"db.port":              "BILLFORGE_DB_PORT",
		"db.user":              "BILLFORGE_DB_USER",
		"db.password":          "BILLFORGE_DB_PASSWORD",
		"db.name":              "BILLFORGE_DB_NAME",
		"db.sslmode":           "BILLFORGE_DB_SSLMODE",
		"db.max_open":          "BILLFORGE_DB_MAX_OPEN",
		"db.max_idle":          "BILLFORGE_DB_MAX_IDLE",
		"log.level":            "BILLFORGE_LOG_LEVEL",
		"log.format":           "BILLFORGE_LOG_FORMAT",
		"cors.allowed_origins": "BILLFORGE_CORS_ALLOWED_ORIGINS",
		"drafter.primary.provider":        "BILLFORGE_DRAFTER_PRIMARY_PROVIDER",
		"drafter.primary.api_key":         "BILLFORGE_DRAFTER_PRIMARY_API_KEY",
		"drafter.primary.default_model":   "BILLFORGE_DRAFTER_PRIMARY_DEFAULT_MODEL",
		"drafter.primary.timeout_secs":    "BILLFORGE_DRAFTER_PRIMARY_TIMEOUT_SECS",
		"drafter.secondary.provider":      "BILLFORGE_DRAFTER_SECONDARY_PROVIDER",
		"drafter.secondary.api_key":       "BILLFORGE_DRAFTER_SECONDARY_API_KEY",
		"drafter.secondary.default_model": "BILLFORGE_DRAFTER_SECONDARY_DEFAULT_MODEL",
		"drafter.secondary.timeout_secs":  "BILLFORGE_DRAFTER_SECONDARY_TIMEOUT_SECS",
		"seller.name":        "BILLFORGE_SELLER_NAME",
		"seller.address":     "BILLFORGE_SELLER_ADDRESS",
		"seller.pincode":     "BILLFORGE_SELLER_PINCODE",
		"seller.state":       "BILLFORGE_SELLER_STATE",
		"seller.email":       "BILLFORGE_SELLER_EMAIL",
		"seller.mob_no":      "BILLFORGE_SELLER_MOB_NO",
		"seller.gstin":       "BILLFORGE_SELLER_GSTIN",
		"seller.pan":         "BILLFORGE_SELLER_PAN",
		"seller.bank_name":   "BILLFORGE_SELLER_BANK_NAME",
		"seller.branch_name": "BILLFORGE_SELLER_BRANCH_NAME",
		"seller.account_no":  "BILLFORGE_SELLER_ACCOUNT_NO",
		"seller.ifsc_code":   "BILLFORGE_SELLER_IFSC_CODE",
		"email.provider":     "BILLFORGE_EMAIL_PROVIDER",
		"email.region":       "BILLFORGE_EMAIL_REGION",
		"email.from_address": "BILLFORGE_EMAIL_FROM_ADDRESS",
		"email.from_name":    "BILLFORGE_EMAIL_FROM_NAME",
		"s3.region":          "BILLFORGE_S3_REGION",
		"s3.bucket":          "BILLFORGE_S3_BUCKET",
		"s3.endpoint":        "BILLFORGE_S3_ENDPOINT",
		"s3.access_key":      "BILLFORGE_S3_ACCESS_KEY",
		"s3.secret_key":      "BILLFORGE_S3_SECRET_KEY",
		"s3.prefix":          "BILLFORGE_S3_PREFIX",
		"s3.presign_expiry":  "BILLFORGE_S3_PRESIGN_EXPIRY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BILLFORGE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BILLFORGE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Store = StoreConfig{
		Backend: v.GetString("store.backend"),
		Key:     v.GetString("store.key"),
	}
	cfg.Redis = RedisConfig{
		Addr:     v.GetString("redis.addr"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Drafter = DrafterConfig{
		Primary: DrafterProviderConfig{
			Provider:     v.GetString("drafter.primary.provider"),
			APIKey:       v.GetString("drafter.primary.api_key"),
			DefaultModel: v.GetString("drafter.primary.default_model"),
			TimeoutSecs:  v.GetInt("drafter.primary.timeout_secs"),
		},
		Secondary: DrafterProviderConfig{
			Provider:     v.GetString("drafter.secondary.provider"),
			APIKey:       v.GetString("drafter.secondary.api_key"),
			DefaultModel: v.GetString("drafter.secondary.default_model"),
			TimeoutSecs:  v.GetInt("drafter.secondary.timeout_secs"),
		},
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Seller = SellerConfig{
		Name:       v.GetString("seller.name"),
		Address:    v.GetString("seller.address"),
		Pincode:    v.GetString("seller.pincode"),
		State:      v.GetString("seller.state"),
		Email:      v.GetString("seller.email"),
		MobNo:      v.GetString("seller.mob_no"),
		GSTIN:      v.GetString("seller.gstin"),
		PAN:        v.GetString("seller.pan"),
		BankName:   v.GetString("seller.bank_name"),
		BranchName: v.GetString("seller.branch_name"),
		AccountNo:  v.GetString("seller.account_no"),
		IFSCCode:   v.GetString("seller.ifsc_code"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		Prefix:        v.GetString("s3.prefix"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}

	return cfg, nil
}
