package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Posts    PostsConfig    `yaml:"posts"`
	DB       DBConfig       `yaml:"db"`
	Cart     CartConfig     `yaml:"cart"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`
	PayPal   PayPalConfig   `yaml:"paypal"`
	Shopify  ShopifyConfig  `yaml:"shopify"`
	Airtable AirtableConfig `yaml:"airtable"`
	EmailJS  EmailJSConfig  `yaml:"emailjs"`
}

type ServerConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	PublicDir string `yaml:"public_dir"`
}

type PostsConfig struct {
	Dir string `yaml:"dir"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type CartConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// AdminConfig holds the single admin login plus session lifetime.
type AdminConfig struct {
	Username   string        `yaml:"username"`
	Password   string        `yaml:"password"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type PayPalConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	APIBase      string `yaml:"api_base"`
	// WidgetClientID is the public key served to the checkout widget.
	WidgetClientID string `yaml:"widget_client_id"`
}

type ShopifyConfig struct {
	StoreDomain     string `yaml:"store_domain"`
	StorefrontToken string `yaml:"storefront_token"`
}

type AirtableConfig struct {
	APIKey string `yaml:"api_key"`
	BaseID string `yaml:"base_id"`
	Table  string `yaml:"table"`
}

type EmailJSConfig struct {
	ServiceID  string `yaml:"service_id"`
	TemplateID string `yaml:"template_id"`
	PublicKey  string `yaml:"public_key"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			PublicDir: "public",
		},
		Posts: PostsConfig{
			Dir: "data/posts",
		},
		DB: DBConfig{
			Path: "data/site.db",
		},
		Cart: CartConfig{
			Path: "data/cart.json",
		},
		Log: LogConfig{
			Level: "info",
		},
		Admin: AdminConfig{
			SessionTTL: 24 * time.Hour,
		},
		PayPal: PayPalConfig{
			APIBase: "https://api-m.paypal.com",
		},
	}

	if path := os.Getenv("SITE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("SITE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("SITE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SITE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dir := os.Getenv("SITE_PUBLIC_DIR"); dir != "" {
		cfg.Server.PublicDir = dir
	}
	if dir := os.Getenv("SITE_POSTS_DIR"); dir != "" {
		cfg.Posts.Dir = dir
	}
	if path := os.Getenv("SITE_DB_PATH"); path != "" {
		cfg.DB.Path = path
	}
	if path := os.Getenv("SITE_CART_PATH"); path != "" {
		cfg.Cart.Path = path
	}
	if level := os.Getenv("SITE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if user := os.Getenv("SITE_ADMIN_USER"); user != "" {
		cfg.Admin.Username = user
	}
	if pass := os.Getenv("SITE_ADMIN_PASSWORD"); pass != "" {
		cfg.Admin.Password = pass
	}
	if ttlStr := os.Getenv("SITE_SESSION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SITE_SESSION_TTL: %w", err)
		}
		cfg.Admin.SessionTTL = ttl
	}

	loadUpstreamEnv(&cfg)

	return cfg, nil
}

func loadUpstreamEnv(cfg *Config) {
	if v := os.Getenv("PAYPAL_CLIENT_ID"); v != "" {
		cfg.PayPal.ClientID = v
	}
	if v := os.Getenv("PAYPAL_CLIENT_SECRET"); v != "" {
		cfg.PayPal.ClientSecret = v
	}
	if v := os.Getenv("PAYPAL_API_BASE"); v != "" {
		cfg.PayPal.APIBase = v
	}
	if v := os.Getenv("PAYPAL_WIDGET_CLIENT_ID"); v != "" {
		cfg.PayPal.WidgetClientID = v
	}
	if v := os.Getenv("SHOPIFY_STORE_DOMAIN"); v != "" {
		cfg.Shopify.StoreDomain = v
	}
	if v := os.Getenv("SHOPIFY_STOREFRONT_TOKEN"); v != "" {
		cfg.Shopify.StorefrontToken = v
	}
	if v := os.Getenv("AIRTABLE_API_KEY"); v != "" {
		cfg.Airtable.APIKey = v
	}
	if v := os.Getenv("AIRTABLE_BASE_ID"); v != "" {
		cfg.Airtable.BaseID = v
	}
	if v := os.Getenv("AIRTABLE_TABLE"); v != "" {
		cfg.Airtable.Table = v
	}
	if v := os.Getenv("EMAILJS_SERVICE_ID"); v != "" {
		cfg.EmailJS.ServiceID = v
	}
	if v := os.Getenv("EMAILJS_TEMPLATE_ID"); v != "" {
		cfg.EmailJS.TemplateID = v
	}
	if v := os.Getenv("EMAILJS_PUBLIC_KEY"); v != "" {
		cfg.EmailJS.PublicKey = v
	}
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
