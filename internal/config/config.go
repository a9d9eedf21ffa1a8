package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration values.
type Config struct {
	// HTTP server
	HTTPAddr string

	// Booking provider (Calendly)
	BookingBaseURL     string
	BookingToken       string
	WebhookCallbackURL string

	// CRM (RetailCRM)
	CRMBaseURL string
	CRMAPIKey  string

	// Analytics (Amplitude)
	AnalyticsURL    string
	AnalyticsAPIKey string

	// Outbound HTTP
	HTTPClientTimeout time.Duration

	// Key-value store
	StoreBackend   string // "file" (default) or "redis"
	StoreDir       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	// Kafka order events; publishing is disabled when no brokers are set.
	KafkaBrokers []string
	KafkaTopic   string

	// Manager mapping refresh; zero disables the background worker.
	ManagerRefreshInterval time.Duration

	// Phone numbers without a country code are parsed against this region.
	DefaultPhoneRegion string

	// Static CRM constants loaded from BusinessConfigPath.
	BusinessConfigPath string
	Business           Business

	// Application
	Environment string
	LogLevel    string
}

// Business holds the CRM-side constants the handlers write into orders.
type Business struct {
	Site         string            `yaml:"site"`
	OrderType    string            `yaml:"order_type"`
	OrderMethod  string            `yaml:"order_method"`
	EventName    string            `yaml:"event_name"`
	CustomFields CustomFields      `yaml:"custom_fields"`
	Scoring      map[string]string `yaml:"scoring"`
}

// CustomFields names the CRM custom field codes.
type CustomFields struct {
	Date        string `yaml:"date"`
	Time        string `yaml:"time"`
	Flag        string `yaml:"flag"`
	Scoring     string `yaml:"scoring"`
	TrackingURL string `yaml:"tracking_url"`
}

// DefaultBusiness returns the constants used when no business file is configured.
func DefaultBusiness() Business {
	return Business{
		EventName: "Successful demo",
		CustomFields: CustomFields{
			Date:        "demo_date",
			Time:        "demo_time",
			Flag:        "demo_scheduled",
			Scoring:     "scoring",
			TrackingURL: "crm",
		},
		Scoring: map[string]string{},
	}
}

// New creates a Config populated from environment variables with sensible defaults.
func New() *Config {
	cfg := &Config{
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		BookingBaseURL:     getEnv("BOOKING_BASE_URL", "https://api.calendly.com/"),
		BookingToken:       getEnv("BOOKING_TOKEN", ""),
		WebhookCallbackURL: getEnv("WEBHOOK_CALLBACK_URL", ""),
		CRMBaseURL:         getEnv("CRM_BASE_URL", ""),
		CRMAPIKey:          getEnv("CRM_API_KEY", ""),
		AnalyticsURL:       getEnv("ANALYTICS_URL", "https://api2.amplitude.com/2/httpapi"),
		AnalyticsAPIKey:    getEnv("ANALYTICS_API_KEY", ""),
		HTTPClientTimeout:  getDuration("HTTP_CLIENT_TIMEOUT", 30*time.Second),
		StoreBackend:       getEnv("STORE_BACKEND", "file"),
		StoreDir:           getEnv("STORE_DIR", "./var"),
		RedisAddr:          getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getInt("REDIS_DB", 0),
		RedisKeyPrefix:     getEnv("REDIS_KEY_PREFIX", "demobridge:"),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "demobridge.orders"),
		DefaultPhoneRegion: getEnv("DEFAULT_PHONE_REGION", ""),
		BusinessConfigPath: getEnv("BUSINESS_CONFIG_PATH", ""),
		Business:           DefaultBusiness(),
		Environment:        getEnv("ENVIRONMENT", "local"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	cfg.ManagerRefreshInterval = getDuration("MANAGER_REFRESH_INTERVAL", 0)

	if v := getEnv("KAFKA_BROKERS", ""); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}

	return cfg
}

// Load builds the environment config and overlays the business constants file, if any.
func Load() (*Config, error) {
	cfg := New()
	if cfg.BusinessConfigPath == "" {
		return cfg, nil
	}

	business, err := LoadBusiness(cfg.BusinessConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.Business = business
	return cfg, nil
}

// LoadBusiness reads the YAML constants file. Unset fields keep their defaults.
func LoadBusiness(path string) (Business, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Business{}, fmt.Errorf("reading business config: %w", err)
	}

	business := DefaultBusiness()
	if err := yaml.Unmarshal(data, &business); err != nil {
		return Business{}, fmt.Errorf("parsing business config %q: %w", path, err)
	}
	if business.Scoring == nil {
		business.Scoring = map[string]string{}
	}
	return business, nil
}

// ValidateServer reports the settings the webhook server cannot run without.
func (c *Config) ValidateServer() error {
	var errs []error
	if c.CRMBaseURL == "" {
		errs = append(errs, errors.New("CRM_BASE_URL is required"))
	}
	if c.CRMAPIKey == "" {
		errs = append(errs, errors.New("CRM_API_KEY is required"))
	}
	if c.AnalyticsAPIKey == "" {
		errs = append(errs, errors.New("ANALYTICS_API_KEY is required"))
	}
	if c.Business.Site == "" {
		errs = append(errs, errors.New("business site is required"))
	}
	errs = append(errs, c.validateStore()...)
	return errors.Join(errs...)
}

// ValidateBootstrap reports the settings the subscription command cannot run without.
func (c *Config) ValidateBootstrap() error {
	var errs []error
	if c.BookingToken == "" {
		errs = append(errs, errors.New("BOOKING_TOKEN is required"))
	}
	if c.WebhookCallbackURL == "" {
		errs = append(errs, errors.New("WEBHOOK_CALLBACK_URL is required"))
	}
	errs = append(errs, c.validateStore()...)
	return errors.Join(errs...)
}

func (c *Config) validateStore() []error {
	switch c.StoreBackend {
	case "file":
		if c.StoreDir == "" {
			return []error{errors.New("STORE_DIR is required for the file store")}
		}
	case "redis":
	default:
		return []error{fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
