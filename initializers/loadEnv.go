package initializers

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nilamroots/nilamroots-api/payments"
	"github.com/nilamroots/nilamroots-api/utils"
	"github.com/spf13/viper"
)

const (
	devJWTSecret = "dev-secret-change-me"

	DefaultOrderEmailTemplate = "templates/order_notification.html"
)

type AppConfig struct {
	Env  string
	Port string

	DBDriver     string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPass       string
	DBName       string
	DBPath       string
	SeedProducts bool

	JWTSecret        string
	RegisterTokenTTL time.Duration
	LoginTokenTTL    time.Duration
	// AuthEnforce turns on admin and ownership checks on mutating endpoints.
	AuthEnforce bool

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	RazorpayTimeout   time.Duration

	StorageDriver string
	UploadDir     string
	S3Bucket      string
	S3Prefix      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CORSOrigins []string
	LogLevel    string
	LogFormat   string

	WhatsAppNumber string
	NotifyEmailTo  string
	// OrderEmailTemplate is the seller notification template; relative paths
	// resolve against the working directory.
	OrderEmailTemplate string
	SMTP               utils.SMTPConfig
}

var Config *AppConfig

// LoadEnv copies a local .env file into the process environment, if there is one.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "5000")

	v.SetDefault("db_driver", "mysql")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "3306")
	v.SetDefault("db_user", "root")
	v.SetDefault("db_name", "nilamroots")
	v.SetDefault("db_path", "nilamroots.db")
	v.SetDefault("seed_products", false)

	v.SetDefault("jwt_register_ttl", time.Hour)
	v.SetDefault("jwt_login_ttl", 24*time.Hour)
	v.SetDefault("auth_enforce", false)

	v.SetDefault("razorpay_base_url", payments.DefaultBaseURL)
	v.SetDefault("razorpay_timeout", 30*time.Second)

	v.SetDefault("storage_driver", "local")
	v.SetDefault("upload_dir", "uploads")
	v.SetDefault("s3_prefix", "profiles")

	v.SetDefault("redis_db", 0)

	v.SetDefault("cors_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "")

	v.SetDefault("whatsapp_number", utils.DefaultWhatsAppNumber)
	v.SetDefault("order_email_template", DefaultOrderEmailTemplate)
}

// LoadConfig reads settings from the environment, falling back to defaults.
func LoadConfig() (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &AppConfig{
		Env:  v.GetString("app_env"),
		Port: v.GetString("port"),

		DBDriver:     strings.ToLower(v.GetString("db_driver")),
		DBHost:       v.GetString("db_host"),
		DBPort:       v.GetString("db_port"),
		DBUser:       v.GetString("db_user"),
		DBPass:       v.GetString("db_pass"),
		DBName:       v.GetString("db_name"),
		DBPath:       v.GetString("db_path"),
		SeedProducts: v.GetBool("seed_products"),

		JWTSecret:        v.GetString("jwt_secret"),
		RegisterTokenTTL: v.GetDuration("jwt_register_ttl"),
		LoginTokenTTL:    v.GetDuration("jwt_login_ttl"),
		AuthEnforce:      v.GetBool("auth_enforce"),

		RazorpayKeyID:     v.GetString("razorpay_key_id"),
		RazorpayKeySecret: v.GetString("razorpay_key_secret"),
		RazorpayBaseURL:   v.GetString("razorpay_base_url"),
		RazorpayTimeout:   v.GetDuration("razorpay_timeout"),

		StorageDriver: strings.ToLower(v.GetString("storage_driver")),
		UploadDir:     v.GetString("upload_dir"),
		S3Bucket:      v.GetString("s3_bucket"),
		S3Prefix:      v.GetString("s3_prefix"),

		RedisAddr:     v.GetString("redis_addr"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),

		CORSOrigins: splitList(v.GetString("cors_origins")),
		LogLevel:    v.GetString("log_level"),
		LogFormat:   v.GetString("log_format"),

		WhatsAppNumber:     v.GetString("whatsapp_number"),
		NotifyEmailTo:      v.GetString("notify_email_to"),
		OrderEmailTemplate: v.GetString("order_email_template"),
		SMTP: utils.SMTPConfig{
			From:     v.GetString("from_email"),
			Password: v.GetString("from_email_password"),
			Host:     v.GetString("from_email_smtp"),
			Address:  v.GetString("smtp_address"),
		},
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
		if cfg.IsProduction() {
			cfg.LogFormat = "json"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func (c *AppConfig) validate() error {
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.JWTSecret = devJWTSecret
	}

	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.RegisterTokenTTL <= 0 || c.LoginTokenTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}

// DSN builds the connection string for the configured driver.
func (c *AppConfig) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort)
	case "sqlite":
		return c.DBPath
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
